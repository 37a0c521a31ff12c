package types

import (
	"testing"

	"cosmossdk.io/math"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

func testAddress(t *testing.T, seed string) string {
	t.Helper()
	addr, err := addresscodec.NewBech32Codec("ysip").BytesToString([]byte(seed))
	require.NoError(t, err)
	return addr
}

func TestAssetInfoKindAndEqual(t *testing.T) {
	token := NewTokenAssetInfo("ysip1token")
	native := NewNativeAssetInfo("uusd")

	require.Equal(t, AssetKindToken, token.Kind())
	require.Equal(t, AssetKindNative, native.Kind())
	require.Equal(t, AssetKindInvalid, AssetInfo{}.Kind())
	require.Equal(t, AssetKindInvalid, AssetInfo{Token: token.Token, NativeToken: native.NativeToken}.Kind())

	require.True(t, token.Equal(NewTokenAssetInfo("ysip1token")))
	require.True(t, native.Equal(NewNativeAssetInfo("uusd")))
	require.False(t, native.Equal(NewNativeAssetInfo("uluna")))
	require.False(t, NewTokenAssetInfo("uusd").Equal(NewNativeAssetInfo("uusd")))
	require.False(t, AssetInfo{}.Equal(AssetInfo{}))
}

func TestAssetInfoJSONShape(t *testing.T) {
	bz, err := hosttypes.JSON.Marshal(NewNativeAssetInfo("uusd"))
	require.NoError(t, err)
	require.JSONEq(t, `{"native_token":{"denom":"uusd"}}`, string(bz))

	bz, err = hosttypes.JSON.Marshal(NewTokenAssetInfo("ysip1abc"))
	require.NoError(t, err)
	require.JSONEq(t, `{"token":{"contract_addr":"ysip1abc"}}`, string(bz))

	var info AssetInfo
	require.NoError(t, hosttypes.JSON.Unmarshal([]byte(`{"native_token":{"denom":"uluna"}}`), &info))
	require.True(t, info.Equal(NewNativeAssetInfo("uluna")))
}

func TestAssetInfoCheckIsValid(t *testing.T) {
	codec := addresscodec.NewBech32Codec("ysip")
	valid := testAddress(t, "token_contract______")

	tests := []struct {
		name    string
		info    AssetInfo
		wantErr bool
	}{
		{"valid token", NewTokenAssetInfo(valid), false},
		{"valid native", NewNativeAssetInfo("uusd"), false},
		{"ibc denom keeps case", NewNativeAssetInfo("ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"), false},
		{"uppercase native", NewNativeAssetInfo("UUSD"), true},
		{"bad token address", NewTokenAssetInfo("cosmos1notours"), true},
		{"empty token address", NewTokenAssetInfo(""), true},
		{"too short denom", NewNativeAssetInfo("u"), true},
		{"no variant", AssetInfo{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.info.CheckIsValid(codec)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidAsset)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAssertSentNativeTokenBalance(t *testing.T) {
	native := NewAsset(NewNativeAssetInfo("uusd"), math.NewUint(100))

	require.NoError(t, native.AssertSentNativeTokenBalance(sdk.NewCoins(sdk.NewInt64Coin("uusd", 100))))
	require.NoError(t, native.AssertSentNativeTokenBalance(sdk.NewCoins(
		sdk.NewInt64Coin("uusd", 100), sdk.NewInt64Coin("uluna", 5),
	)))
	require.ErrorIs(t, native.AssertSentNativeTokenBalance(sdk.NewCoins(sdk.NewInt64Coin("uusd", 99))), ErrNativeTokenMismatch)
	require.ErrorIs(t, native.AssertSentNativeTokenBalance(nil), ErrNativeTokenMismatch)

	zero := NewAsset(NewNativeAssetInfo("uusd"), math.ZeroUint())
	require.NoError(t, zero.AssertSentNativeTokenBalance(nil))

	token := NewAsset(NewTokenAssetInfo("ysip1token"), math.NewUint(100))
	require.NoError(t, token.AssertSentNativeTokenBalance(nil))
}

func TestFormatLPTokenName(t *testing.T) {
	require.Equal(t, "UUSD-ULUNA-LP", FormatLPTokenName("uusd", "uluna"))
	require.Equal(t, "ABCDEFGHIJ-MIR-LP", FormatLPTokenName("abcdefghijklmnop", "mir"))
	require.Equal(t, "ÄÖÜÄÖÜÄÖÜÄ-X-LP", FormatLPTokenName("äöüäöüäöüäöü", "x"))
}

func TestAssetNormalized(t *testing.T) {
	var a Asset
	require.NoError(t, hosttypes.JSON.Unmarshal([]byte(`{"info":{"native_token":{"denom":"uusd"}}}`), &a))
	require.True(t, a.Normalized().Amount.IsZero())
	require.Equal(t, "7uusd", NewAsset(NewNativeAssetInfo("uusd"), math.NewUint(7)).String())
}
