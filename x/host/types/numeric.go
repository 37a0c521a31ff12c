package types

import (
	"cosmossdk.io/math"
)

// UintOrZero returns u, or zero when u was never set (for example an amount
// missing from a decoded message).
func UintOrZero(u math.Uint) math.Uint {
	if u == (math.Uint{}) {
		return math.ZeroUint()
	}
	return u
}

// ValidateAddress checks that addr decodes with the host address codec.
func (d Deps) ValidateAddress(addr string) error {
	if addr == "" {
		return ErrInvalidAddress.Wrap("empty address")
	}
	if _, err := d.AddressCodec.StringToBytes(addr); err != nil {
		return ErrInvalidAddress.Wrapf("%s: %v", addr, err)
	}
	return nil
}
