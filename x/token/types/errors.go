package types

import (
	"cosmossdk.io/errors"
)

// Token contract sentinel errors
var (
	ErrUnauthorized          = errors.Register(ModuleName, 2, "unauthorized")
	ErrInsufficientFunds     = errors.Register(ModuleName, 3, "insufficient funds")
	ErrInsufficientAllowance = errors.Register(ModuleName, 4, "insufficient allowance")
	ErrInvalidZeroAmount     = errors.Register(ModuleName, 5, "invalid zero amount")
	ErrCannotExceedCap       = errors.Register(ModuleName, 6, "minting cannot exceed the cap")
	ErrInvalidName           = errors.Register(ModuleName, 7, "name is not in the expected format (3-50 UTF-8 bytes)")
	ErrInvalidSymbol         = errors.Register(ModuleName, 8, "ticker symbol is not in expected format [a-zA-Z\\-]{3,12}")
	ErrInvalidDecimals       = errors.Register(ModuleName, 9, "decimals must not exceed 18")
	ErrInvalidAddress        = errors.Register(ModuleName, 10, "invalid address")
	ErrInvalidRequest        = errors.Register(ModuleName, 11, "invalid request")
	ErrDuplicateBalance      = errors.Register(ModuleName, 12, "duplicate initial balance address")
	ErrOverflow              = errors.Register(ModuleName, 13, "amount overflow")
	ErrCannotSetOwnAccount   = errors.Register(ModuleName, 14, "cannot set allowance to own account")
)
