package types

const (
	// ModuleName defines the token contract name, also its error codespace
	ModuleName = "token"

	// ContractName is recorded in the contract version record
	ContractName = "ysip-token"

	// ContractVersion is the version of the token contract
	ContractVersion = "1.0.0"
)

// Store key prefixes, relative to the contract's own storage
var (
	TokenInfoKey       = []byte{0x01}
	MinterKey          = []byte{0x02}
	BalanceKeyPrefix   = []byte{0x03}
	AllowanceKeyPrefix = []byte{0x04}
)

// BalanceKey returns the store key for an account balance
func BalanceKey(addr string) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), []byte(addr)...)
}

// AllowanceKey returns the store key for an owner/spender allowance
func AllowanceKey(owner, spender string) []byte {
	key := append([]byte{}, AllowanceKeyPrefix...)
	key = append(key, byte(len(owner)))
	key = append(key, []byte(owner)...)
	return append(key, []byte(spender)...)
}
