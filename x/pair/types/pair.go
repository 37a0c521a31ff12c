package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// FeeScaleFactor is the denominator of fee parts: a rate of 1 (one percent)
// is 100 parts.
const FeeScaleFactor = 10_000

// PairInfo describes a pool and its liquidity token.
type PairInfo struct {
	AssetInfos     AssetInfos `json:"asset_infos"`
	ContractAddr   string     `json:"contract_addr"`
	LiquidityToken string     `json:"liquidity_token"`
}

// NewPairInfo returns a PairInfo whose liquidity token is not yet known.
func NewPairInfo(contractAddr string, infos AssetInfos) PairInfo {
	return PairInfo{AssetInfos: infos, ContractAddr: contractAddr}
}

// Fees configures the protocol and LP fee rates, expressed in percent: "0.3"
// is 0.3%, or 30 parts of FeeScaleFactor.
//
// Validate bounds each rate and their sum below 1, which in these units means
// below 1%. A pair cannot charge a total fee of 1% or more.
type Fees struct {
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
	ProtocolFeeRate      math.LegacyDec `json:"protocol_fee_rate"`
	LpFeeRate            math.LegacyDec `json:"lp_fee_rate"`
}

// Validate checks that each rate lies in [0, 1) and that their sum stays
// below 1.
func (f Fees) Validate() error {
	if f.ProtocolFeeRate.IsNil() || f.LpFeeRate.IsNil() {
		return ErrInvalidFees.Wrap("fee rates must be set")
	}
	one := math.LegacyOneDec()
	if f.ProtocolFeeRate.IsNegative() || f.ProtocolFeeRate.GTE(one) {
		return ErrInvalidFees.Wrapf("protocol_fee_rate %s must be in [0, 1)", f.ProtocolFeeRate)
	}
	if f.LpFeeRate.IsNegative() || f.LpFeeRate.GTE(one) {
		return ErrInvalidFees.Wrapf("lp_fee_rate %s must be in [0, 1)", f.LpFeeRate)
	}
	if sum := f.ProtocolFeeRate.Add(f.LpFeeRate); sum.GTE(one) {
		return ErrInvalidFees.Wrapf("protocol_fee_rate + lp_fee_rate = %s must be below 1", sum)
	}
	return nil
}

// ProtocolFeeParts returns the protocol fee in parts of FeeScaleFactor.
func (f Fees) ProtocolFeeParts() uint64 {
	return feeParts(f.ProtocolFeeRate)
}

// LpFeeParts returns the LP fee in parts of FeeScaleFactor.
func (f Fees) LpFeeParts() uint64 {
	return feeParts(f.LpFeeRate)
}

// feeParts converts a percent rate to parts of FeeScaleFactor, rounding down.
func feeParts(rate math.LegacyDec) uint64 {
	if rate.IsNil() || !rate.IsPositive() {
		return 0
	}
	return rate.MulInt64(100).TruncateInt().Uint64()
}

// TokenStatus tracks the liquidity token provisioning handshake.
type TokenStatus int

const (
	TokenStatusUnset TokenStatus = iota
	TokenStatusProvisioning
	TokenStatusSet
)

func (s TokenStatus) String() string {
	switch s {
	case TokenStatusUnset:
		return "unset"
	case TokenStatusProvisioning:
		return "provisioning"
	case TokenStatusSet:
		return "set"
	default:
		return fmt.Sprintf("TokenStatus(%d)", int(s))
	}
}

// Config is the pair's stored configuration.
type Config struct {
	PairInfo       PairInfo    `json:"pair_info"`
	FactoryAddr    string      `json:"factory_addr"`
	Fees           Fees        `json:"fees"`
	TokenStatus    TokenStatus `json:"token_status"`
	PendingReplyID uint64      `json:"pending_reply_id"`
}

// Reserves is the pool's tracked holding of each asset, in PairInfo order.
type Reserves struct {
	ReserveA Asset `json:"reserve_a"`
	ReserveB Asset `json:"reserve_b"`
}

// NewReserves returns empty reserves for the given assets.
func NewReserves(infos AssetInfos) Reserves {
	return Reserves{
		ReserveA: NewAsset(infos[0], math.ZeroUint()),
		ReserveB: NewAsset(infos[1], math.ZeroUint()),
	}
}

// Side returns the reserve matching info, the other reserve, and whether info
// is the first asset.
func (r Reserves) Side(info AssetInfo) (offer Asset, ask Asset, isA bool, err error) {
	switch {
	case r.ReserveA.Info.Equal(info):
		return r.ReserveA, r.ReserveB, true, nil
	case r.ReserveB.Info.Equal(info):
		return r.ReserveB, r.ReserveA, false, nil
	default:
		return Asset{}, Asset{}, false, ErrAssetMismatch.Wrapf("%s is not traded by this pair", info)
	}
}

// Set replaces the amounts of both sides, given in (offer, ask) orientation.
func (r *Reserves) Set(isA bool, offer, ask math.Uint) {
	if isA {
		r.ReserveA.Amount, r.ReserveB.Amount = offer, ask
		return
	}
	r.ReserveB.Amount, r.ReserveA.Amount = offer, ask
}

// Slice returns both reserves in PairInfo order.
func (r Reserves) Slice() [2]Asset {
	return [2]Asset{r.ReserveA, r.ReserveB}
}

// ContractVersionInfo identifies the code that wrote a contract's storage.
type ContractVersionInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}
