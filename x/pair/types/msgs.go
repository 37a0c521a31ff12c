package types

import (
	"cosmossdk.io/math"
)

// InstantiateMsg creates a pair.
type InstantiateMsg struct {
	AssetInfos           AssetInfos     `json:"asset_infos"`
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
	ProtocolFeeRate      math.LegacyDec `json:"protocol_fee_rate"`
	LpFeeRate            math.LegacyDec `json:"lp_fee_rate"`
	TokenCodeID          uint64         `json:"token_code_id"`
	FactoryAddr          string         `json:"factory_addr,omitempty"`
}

// Fees returns the fee configuration carried by the message.
func (m InstantiateMsg) Fees() Fees {
	return Fees{
		ProtocolFeeRecipient: m.ProtocolFeeRecipient,
		ProtocolFeeRate:      m.ProtocolFeeRate,
		LpFeeRate:            m.LpFeeRate,
	}
}

// ExecuteMsg is the tagged union of pair operations. Exactly one field is set.
type ExecuteMsg struct {
	Receive          *ReceiveMsg          `json:"receive,omitempty"`
	ProvideLiquidity *ProvideLiquidityMsg `json:"provide_liquidity,omitempty"`
	Swap             *SwapMsg             `json:"swap,omitempty"`
	RemoveLiquidity  *RemoveLiquidityMsg  `json:"remove_liquidity,omitempty"`
}

// ProvideLiquidityMsg deposits both assets for newly minted liquidity tokens.
type ProvideLiquidityMsg struct {
	Assets   [2]Asset `json:"assets"`
	Receiver string   `json:"receiver,omitempty"`
}

// SwapMsg trades offer_asset for the other asset of the pair.
type SwapMsg struct {
	OfferAsset      Asset           `json:"offer_asset"`
	MinOutputAmount *math.Uint      `json:"min_output_amount,omitempty"`
	MaxSpread       *math.LegacyDec `json:"max_spread,omitempty"`
	To              string          `json:"to,omitempty"`
}

// RemoveLiquidityMsg burns liquidity tokens for the underlying assets. The
// sender must have granted the pair an allowance on the liquidity token.
type RemoveLiquidityMsg struct {
	Amount math.Uint `json:"amount"`
}

// ReceiveMsg is delivered by a token contract after a send to the pair.
type ReceiveMsg struct {
	Sender string    `json:"sender"`
	Amount math.Uint `json:"amount"`
	Msg    []byte    `json:"msg"`
}

// HookMsg is the payload of a token send to the pair.
type HookMsg struct {
	Swap              *SwapHook              `json:"swap,omitempty"`
	WithdrawLiquidity *WithdrawLiquidityHook `json:"withdraw_liquidity,omitempty"`
}

// SwapHook swaps the received tokens.
type SwapHook struct {
	MinOutputAmount *math.Uint      `json:"min_output_amount,omitempty"`
	MaxSpread       *math.LegacyDec `json:"max_spread,omitempty"`
	To              string          `json:"to,omitempty"`
}

// WithdrawLiquidityHook burns the received liquidity tokens.
type WithdrawLiquidityHook struct{}

// QueryMsg is the tagged union of pair queries.
type QueryMsg struct {
	Pair       *PairQuery       `json:"pair,omitempty"`
	Liquidity  *LiquidityQuery  `json:"liquidity,omitempty"`
	Fees       *FeesQuery       `json:"fees,omitempty"`
	Status     *StatusQuery     `json:"status,omitempty"`
	Simulation *SimulationQuery `json:"simulation,omitempty"`
	Share      *ShareQuery      `json:"share,omitempty"`
}

type (
	PairQuery      struct{}
	LiquidityQuery struct{}
	FeesQuery      struct{}
	StatusQuery    struct{}
)

// SimulationQuery computes a swap without executing it.
type SimulationQuery struct {
	OfferAsset Asset `json:"offer_asset"`
}

// ShareQuery returns the assets redeemable for an amount of liquidity tokens.
type ShareQuery struct {
	Amount math.Uint `json:"amount"`
}

// PairInfoResponse answers PairQuery.
type PairInfoResponse struct {
	AssetInfos            AssetInfos `json:"asset_infos"`
	ContractAddress       string     `json:"contract_address"`
	LiquidityTokenAddress string     `json:"liquidity_token_address"`
}

// LiquidityResponse answers LiquidityQuery.
type LiquidityResponse struct {
	Reserves [2]Asset `json:"reserves"`
}

// StatusResponse answers StatusQuery.
type StatusResponse struct {
	TokenStatus           string `json:"token_status"`
	LiquidityTokenAddress string `json:"liquidity_token_address"`
}

// SimulationResponse answers SimulationQuery.
type SimulationResponse struct {
	AskAsset    AssetInfo `json:"ask_asset"`
	ProtocolFee math.Uint `json:"protocol_fee"`
	NetInput    math.Uint `json:"net_input"`
	GrossOutput math.Uint `json:"gross_output"`
	InputFee    math.Uint `json:"input_fee"`
	OutputFee   math.Uint `json:"output_fee"`
	NetOutput   math.Uint `json:"net_output"`
}

// ShareResponse answers ShareQuery.
type ShareResponse struct {
	Assets [2]Asset `json:"assets"`
}

// NewPairQuery builds a pair info query.
func NewPairQuery() QueryMsg { return QueryMsg{Pair: &PairQuery{}} }

// NewLiquidityQuery builds a liquidity query.
func NewLiquidityQuery() QueryMsg { return QueryMsg{Liquidity: &LiquidityQuery{}} }

// NewSimulationQuery builds a simulation query.
func NewSimulationQuery(offer Asset) QueryMsg {
	return QueryMsg{Simulation: &SimulationQuery{OfferAsset: offer}}
}
