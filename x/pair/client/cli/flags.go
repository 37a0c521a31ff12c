package cli

// Flag constants for pair CLI commands
const (
	// Pair creation flags
	FlagProtocolFeeRate      = "protocol-fee-rate"
	FlagLpFeeRate            = "lp-fee-rate"
	FlagProtocolFeeRecipient = "fee-recipient"
	FlagTokenCodeID          = "token-code-id"
	FlagPairCodeID           = "pair-code-id"
	FlagLabel                = "label"

	// Liquidity flags
	FlagReceiver    = "receiver"
	FlagSkipApprove = "skip-approve"

	// Swap flags
	FlagMinOutput = "min-output"
	FlagMaxSpread = "max-spread"
	FlagTo        = "to"
)

// Code ids the host registers at startup.
const (
	DefaultTokenCodeID uint64 = 1
	DefaultPairCodeID  uint64 = 2

	DefaultProtocolFeeRate = "0.3"
	DefaultLpFeeRate       = "0"
)
