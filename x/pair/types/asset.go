package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/core/address"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TokenSymbolMaxLength bounds each symbol in a liquidity token name.
const TokenSymbolMaxLength = 10

// AssetKind discriminates AssetInfo variants.
type AssetKind int

const (
	AssetKindInvalid AssetKind = iota
	AssetKindToken
	AssetKindNative
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindToken:
		return "token"
	case AssetKindNative:
		return "native_token"
	default:
		return "invalid"
	}
}

// TokenInfo identifies an asset issued by a token contract.
type TokenInfo struct {
	ContractAddr string `json:"contract_addr"`
}

// NativeTokenInfo identifies a bank denomination.
type NativeTokenInfo struct {
	Denom string `json:"denom"`
}

// AssetInfo is either an issued token or a native denomination. Exactly one
// field is set.
type AssetInfo struct {
	Token       *TokenInfo       `json:"token,omitempty"`
	NativeToken *NativeTokenInfo `json:"native_token,omitempty"`
}

// NewTokenAssetInfo returns the AssetInfo of a token contract.
func NewTokenAssetInfo(contractAddr string) AssetInfo {
	return AssetInfo{Token: &TokenInfo{ContractAddr: contractAddr}}
}

// NewNativeAssetInfo returns the AssetInfo of a bank denomination.
func NewNativeAssetInfo(denom string) AssetInfo {
	return AssetInfo{NativeToken: &NativeTokenInfo{Denom: denom}}
}

// Kind returns the variant of the asset.
func (a AssetInfo) Kind() AssetKind {
	switch {
	case a.Token != nil && a.NativeToken == nil:
		return AssetKindToken
	case a.NativeToken != nil && a.Token == nil:
		return AssetKindNative
	default:
		return AssetKindInvalid
	}
}

// IsNative reports whether the asset is a bank denomination.
func (a AssetInfo) IsNative() bool {
	return a.Kind() == AssetKindNative
}

// Equal compares two asset infos structurally.
func (a AssetInfo) Equal(b AssetInfo) bool {
	switch a.Kind() {
	case AssetKindToken:
		return b.Kind() == AssetKindToken && a.Token.ContractAddr == b.Token.ContractAddr
	case AssetKindNative:
		return b.Kind() == AssetKindNative && a.NativeToken.Denom == b.NativeToken.Denom
	default:
		return false
	}
}

// Key is the contract address or the denom.
func (a AssetInfo) Key() string {
	switch a.Kind() {
	case AssetKindToken:
		return a.Token.ContractAddr
	case AssetKindNative:
		return a.NativeToken.Denom
	default:
		return ""
	}
}

func (a AssetInfo) String() string {
	return a.Key()
}

// CheckIsValid validates the contract address or the denomination.
func (a AssetInfo) CheckIsValid(codec address.Codec) error {
	switch a.Kind() {
	case AssetKindToken:
		bz, err := codec.StringToBytes(a.Token.ContractAddr)
		if err != nil {
			return ErrInvalidAsset.Wrapf("token address %q: %v", a.Token.ContractAddr, err)
		}
		canonical, err := codec.BytesToString(bz)
		if err != nil || canonical != a.Token.ContractAddr {
			return ErrInvalidAsset.Wrapf("token address %q is not in canonical form", a.Token.ContractAddr)
		}
		return nil
	case AssetKindNative:
		denom := a.NativeToken.Denom
		if !strings.HasPrefix(denom, "ibc/") && denom != strings.ToLower(denom) {
			return ErrInvalidAsset.Wrapf("non-IBC token denom %s should be lowercase", denom)
		}
		if err := sdk.ValidateDenom(denom); err != nil {
			return ErrInvalidAsset.Wrap(err.Error())
		}
		return nil
	default:
		return ErrInvalidAsset.Wrap("asset info must set exactly one of token or native_token")
	}
}

// AssetInfos is the ordered pair of assets a pool trades.
type AssetInfos [2]AssetInfo

// Contains reports whether info is one of the pair's assets.
func (a AssetInfos) Contains(info AssetInfo) bool {
	return a[0].Equal(info) || a[1].Equal(info)
}

// Asset is an amount of an asset.
type Asset struct {
	Info   AssetInfo `json:"info"`
	Amount math.Uint `json:"amount"`
}

// NewAsset returns an Asset.
func NewAsset(info AssetInfo, amount math.Uint) Asset {
	return Asset{Info: info, Amount: amount}
}

func (a Asset) String() string {
	return fmt.Sprintf("%s%s", a.Amount, a.Info)
}

// AssertSentNativeTokenBalance checks that the attached funds carry exactly
// the amount of a native asset. Issued assets need no attachment.
func (a Asset) AssertSentNativeTokenBalance(funds sdk.Coins) error {
	switch a.Info.Kind() {
	case AssetKindNative:
		sent := funds.AmountOfNoDenomValidation(a.Info.NativeToken.Denom)
		if !sent.Equal(math.NewIntFromBigInt(a.Amount.BigInt())) {
			return ErrNativeTokenMismatch.Wrapf("expected %s%s, sent %s", a.Amount, a.Info.NativeToken.Denom, sent)
		}
		return nil
	case AssetKindToken:
		return nil
	default:
		return ErrInvalidAsset.Wrap("asset info must set exactly one of token or native_token")
	}
}

// ShortSymbol truncates a symbol for use in the liquidity token name.
func ShortSymbol(symbol string) string {
	runes := []rune(symbol)
	if len(runes) > TokenSymbolMaxLength {
		runes = runes[:TokenSymbolMaxLength]
	}
	return string(runes)
}

// FormatLPTokenName builds "<S1>-<S2>-LP" in upper case.
func FormatLPTokenName(symbol1, symbol2 string) string {
	return strings.ToUpper(fmt.Sprintf("%s-%s-LP", ShortSymbol(symbol1), ShortSymbol(symbol2)))
}

// Normalized returns the asset with an unset amount replaced by zero.
func (a Asset) Normalized() Asset {
	if a.Amount == (math.Uint{}) {
		a.Amount = math.ZeroUint()
	}
	return a
}
