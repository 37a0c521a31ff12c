package types

const (
	// ModuleName defines the pair contract name, also its error codespace
	ModuleName = "pair"

	// ContractName is recorded in the contract version record
	ContractName = "ysip-pair-contract"

	// ContractVersion is the version of the pair contract
	ContractVersion = "0.1.0"

	// InstantiateTokenReplyID correlates the liquidity token instantiation reply
	InstantiateTokenReplyID uint64 = 1

	// LPTokenSymbol is the symbol of every liquidity token
	LPTokenSymbol = "uLP"

	// LPTokenDecimals is the precision of every liquidity token
	LPTokenDecimals uint8 = 6

	// LPTokenLabel labels the liquidity token contract
	LPTokenLabel = "YSIP LP token"
)

// Store keys, relative to the contract's own storage
var (
	ConfigKey          = []byte{0x01}
	ReservesKey        = []byte{0x02}
	ContractVersionKey = []byte{0x03}
)
