package types

// Response attribute keys
const (
	AttributeKeyAction              = "action"
	AttributeKeySender              = "sender"
	AttributeKeyReceiver            = "receiver"
	AttributeKeyOfferAsset          = "offer_asset"
	AttributeKeyAskAsset            = "ask_asset"
	AttributeKeyTokenInAmount       = "token_in_amount"
	AttributeKeyTokenOutAmount      = "token_out_amount"
	AttributeKeyProtocolFeeAmount   = "protocol_fee_amount"
	AttributeKeyLpFeeInputAmount    = "lp_fee_input_amount"
	AttributeKeyLpFeeOutputAmount   = "lp_fee_output_amount"
	AttributeKeySpreadAmount        = "spread_amount"
	AttributeKeyToken1Amount        = "token_1_amount"
	AttributeKeyToken2Amount        = "token_2_amount"
	AttributeKeyShare               = "share"
	AttributeKeyRefundAmount        = "refund_amount"
	AttributeKeyLiquidityBurned     = "liquidity_burned"
	AttributeKeyToken1Returned      = "token1_returned"
	AttributeKeyToken2Returned      = "token2_returned"
	AttributeKeyLiquidityTokenAddr  = "liquidity_token_addr"
	AttributeKeyPairContractAddress = "pair_contract_addr"
)

// Action values
const (
	ActionInstantiate      = "instantiate"
	ActionSwap             = "swap"
	ActionProvideLiquidity = "provide_liquidity"
	ActionRemoveLiquidity  = "remove_liquidity"
)
