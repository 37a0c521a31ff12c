package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/ysip-labs/ysip/x/pair/types"
)

func percentFees(protocol, lp string) types.Fees {
	return types.Fees{
		ProtocolFeeRate: math.LegacyMustNewDecFromStr(protocol),
		LpFeeRate:       math.LegacyMustNewDecFromStr(lp),
	}
}

func TestComputeSwapRegression(t *testing.T) {
	fees := percentFees("0.3", "0")

	tests := []struct {
		offerReserve uint64
		askReserve   uint64
		amount       uint64
		want         string
	}{
		{100_000_000, 3_000_000_000, 10_000_000, "271983269"},
		{100_000_000, 4_000_000_000, 20_000_000, "664999167"},
		{100_000_000, 5_000_000_000, 40_000_000, "1425507578"},
	}

	for _, tc := range tests {
		res, err := ComputeSwap(math.NewUint(tc.amount), math.NewUint(tc.offerReserve), math.NewUint(tc.askReserve), fees)
		require.NoError(t, err)
		require.Equal(t, tc.want, res.NetOutput.String())
		require.Equal(t, res.GrossOutput.String(), res.NetOutput.String())
		require.True(t, res.InputFee.IsZero())
	}
}

func TestComputeSwapFeeBreakdown(t *testing.T) {
	res, err := ComputeSwap(math.NewUint(1_000), math.NewUint(10_000), math.NewUint(10_000), percentFees("0", "1"))
	require.NoError(t, err)

	require.Equal(t, "0", res.ProtocolFee.String())
	require.Equal(t, "1000", res.NetInput.String())
	require.Equal(t, "910", res.GrossOutput.String())
	require.Equal(t, "10", res.InputFee.String())
	require.Equal(t, "9", res.OutputFee.String())
	require.Equal(t, "901", res.NetOutput.String())

	res, err = ComputeSwap(math.NewUint(10_000_000), math.NewUint(100_000_000), math.NewUint(3_000_000_000), percentFees("0.3", "0"))
	require.NoError(t, err)
	require.Equal(t, "30000", res.ProtocolFee.String())
	require.Equal(t, "9970000", res.NetInput.String())
}

func TestComputeSwapOverflow(t *testing.T) {
	max := math.NewUintFromBigInt(maxUint128)
	_, err := ComputeSwap(max, max, math.NewUint(1), percentFees("0", "0"))
	require.ErrorIs(t, err, types.ErrArithmetic)
}

func TestSafeMath(t *testing.T) {
	max := math.NewUintFromBigInt(maxUint128)

	_, err := SafeAdd(max, math.OneUint())
	require.ErrorIs(t, err, types.ErrArithmetic)

	_, err = SafeSub(math.NewUint(1), math.NewUint(2))
	require.ErrorIs(t, err, types.ErrArithmetic)

	_, err = SafeMul(max, math.NewUint(2))
	require.ErrorIs(t, err, types.ErrArithmetic)

	_, err = SafeMulDiv(math.NewUint(1), math.NewUint(1), math.ZeroUint())
	require.ErrorIs(t, err, types.ErrArithmetic)

	// the intermediate product may exceed 128 bits
	got, err := SafeMulDiv(max, max, max)
	require.NoError(t, err)
	require.True(t, got.Equal(max))

	got, err = SafeMulDiv(math.NewUint(7), math.NewUint(3), math.NewUint(2))
	require.NoError(t, err)
	require.Equal(t, "10", got.String())

	got, err = SafeMulParts(math.NewUint(12_345), 30)
	require.NoError(t, err)
	require.Equal(t, "37", got.String())
}

func TestAssertMaxSpread(t *testing.T) {
	uintPtr := func(v uint64) *math.Uint {
		u := math.NewUint(v)
		return &u
	}
	decPtr := func(s string) *math.LegacyDec {
		d := math.LegacyMustNewDecFromStr(s)
		return &d
	}

	tests := []struct {
		name      string
		net       uint64
		minOutput *math.Uint
		maxSpread *math.LegacyDec
		wantErr   bool
	}{
		{"no bounds", 10, nil, nil, false},
		{"below minimum", 100, uintPtr(101), nil, true},
		{"at minimum", 101, uintPtr(101), nil, false},
		{"minimum with tight spread", 110, uintPtr(100), decPtr("0.05"), true},
		{"minimum with loose spread", 110, uintPtr(100), decPtr("0.2"), false},
		{"spread without minimum", 950, nil, decPtr("0"), false},
		{"regression output with spread only", 271_983_269, nil, decPtr("0.05"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := AssertMaxSpread(math.NewUint(tc.net), tc.minOutput, tc.maxSpread)
			if tc.wantErr {
				require.ErrorIs(t, err, types.ErrSlippageExceeded)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestShareOf(t *testing.T) {
	reserves := types.NewReserves(types.AssetInfos{
		types.NewNativeAssetInfo("uusd"), types.NewNativeAssetInfo("uluna"),
	})
	reserves.Set(true, math.NewUint(1_000), math.NewUint(333))

	a, b, err := ShareOf(math.NewUint(10), math.NewUint(30), reserves)
	require.NoError(t, err)
	require.Equal(t, "333", a.String())
	require.Equal(t, "111", b.String())

	_, _, err = ShareOf(math.NewUint(10), math.ZeroUint(), reserves)
	require.ErrorIs(t, err, types.ErrArithmetic)
}
