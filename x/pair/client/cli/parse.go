package cli

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/x/pair/types"
)

// ParseAssetInfo reads a token contract address or a native denom.
func ParseAssetInfo(s string) (types.AssetInfo, error) {
	if s == "" {
		return types.AssetInfo{}, fmt.Errorf("empty asset")
	}
	if _, err := sdk.AccAddressFromBech32(s); err == nil {
		return types.NewTokenAssetInfo(s), nil
	}
	if err := sdk.ValidateDenom(s); err != nil {
		return types.AssetInfo{}, fmt.Errorf("asset %q is neither an address nor a denom: %w", s, err)
	}
	return types.NewNativeAssetInfo(s), nil
}

// ParseAmount reads a positive integer amount.
func ParseAmount(name, s string) (math.Uint, error) {
	amount, err := math.ParseUint(s)
	if err != nil {
		return math.Uint{}, fmt.Errorf("invalid %s: %s (must be integer)", name, s)
	}
	if amount.IsZero() {
		return math.Uint{}, fmt.Errorf("%s must be positive", name)
	}
	return amount, nil
}

func parseRate(cmd *cobra.Command, flag string) (math.LegacyDec, error) {
	s, _ := cmd.Flags().GetString(flag)
	rate, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("invalid %s: %w", flag, err)
	}
	return rate, nil
}

// optionalUint reads an unset-or-integer flag.
func optionalUint(cmd *cobra.Command, flag string) (*math.Uint, error) {
	s, _ := cmd.Flags().GetString(flag)
	if s == "" {
		return nil, nil
	}
	v, err := math.ParseUint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", flag, s)
	}
	return &v, nil
}

// optionalDec reads an unset-or-decimal flag.
func optionalDec(cmd *cobra.Command, flag string) (*math.LegacyDec, error) {
	s, _ := cmd.Flags().GetString(flag)
	if s == "" {
		return nil, nil
	}
	v, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flag, err)
	}
	return &v, nil
}

// nativeFunds returns the coins that must accompany assets.
func nativeFunds(assets ...types.Asset) sdk.Coins {
	coins := sdk.NewCoins()
	for _, a := range assets {
		if a.Info.IsNative() && !a.Amount.IsZero() {
			coins = coins.Add(sdk.NewCoin(a.Info.NativeToken.Denom, math.NewIntFromBigInt(a.Amount.BigInt())))
		}
	}
	return coins
}
