package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace used for host runtime errors.
const ModuleName = "host"

// Host runtime sentinel errors
var (
	ErrUnknownCode       = errors.Register(ModuleName, 2, "unknown code id")
	ErrContractNotFound  = errors.Register(ModuleName, 3, "contract not found")
	ErrInvalidMsg        = errors.Register(ModuleName, 4, "invalid contract message")
	ErrNoReplyHandler    = errors.Register(ModuleName, 5, "contract does not handle replies")
	ErrInvalidAddress    = errors.Register(ModuleName, 6, "invalid address")
	ErrMaxCallDepth      = errors.Register(ModuleName, 7, "maximum contract call depth exceeded")
	ErrInvalidSubMsg     = errors.Register(ModuleName, 8, "invalid sub message")
	ErrInsufficientFunds = errors.Register(ModuleName, 9, "insufficient funds")
)
