package cli

// Flag constants for token CLI commands
const (
	FlagInitialBalance = "initial-balance"
	FlagMinter         = "minter"
	FlagCap            = "cap"
	FlagCodeID         = "code-id"
	FlagLabel          = "label"
)

// DefaultCodeID is the code id the host registers the token contract under.
const DefaultCodeID uint64 = 1
