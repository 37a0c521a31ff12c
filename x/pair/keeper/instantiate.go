package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// Instantiate validates the pair configuration, stores it with empty reserves
// and requests the liquidity token. The pair stays in the provisioning state
// until the reply arrives.
func (k Keeper) Instantiate(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, bz []byte) (*hosttypes.Response, error) {
	var msg types.InstantiateMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode instantiate msg: %v", err)
	}

	for _, assetInfo := range msg.AssetInfos {
		if err := assetInfo.CheckIsValid(deps.AddressCodec); err != nil {
			return nil, err
		}
	}
	if msg.AssetInfos[0].Equal(msg.AssetInfos[1]) {
		return nil, types.ErrOverlappingAssets
	}

	fees := msg.Fees()
	if err := fees.Validate(); err != nil {
		return nil, err
	}
	if err := deps.ValidateAddress(fees.ProtocolFeeRecipient); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("protocol fee recipient: %v", err)
	}
	if msg.FactoryAddr != "" {
		if err := deps.ValidateAddress(msg.FactoryAddr); err != nil {
			return nil, types.ErrInvalidRequest.Wrapf("factory address: %v", err)
		}
	}

	if err := setContractVersion(deps.Storage); err != nil {
		return nil, err
	}

	lpName, err := k.lpTokenName(ctx, deps, msg.AssetInfos)
	if err != nil {
		return nil, err
	}

	cfg := types.Config{
		PairInfo:       types.NewPairInfo(env.Contract.Address, msg.AssetInfos),
		FactoryAddr:    msg.FactoryAddr,
		Fees:           fees,
		TokenStatus:    types.TokenStatusProvisioning,
		PendingReplyID: types.InstantiateTokenReplyID,
	}
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	if err := saveReserves(deps.Storage, types.NewReserves(msg.AssetInfos)); err != nil {
		return nil, err
	}

	tokenMsg, err := hosttypes.NewWasmInstantiateMsg(env.Contract.Address, msg.TokenCodeID, tokentypes.InstantiateMsg{
		Name:            lpName,
		Symbol:          types.LPTokenSymbol,
		Decimals:        types.LPTokenDecimals,
		InitialBalances: []tokentypes.Coin{},
		Mint:            &tokentypes.MinterResponse{Minter: env.Contract.Address},
	}, types.LPTokenLabel)
	if err != nil {
		return nil, types.ErrGeneric.Wrap(err.Error())
	}

	k.metrics.PairsInstantiated.Inc()
	k.Logger(ctx).Info("pair instantiated",
		"contract", env.Contract.Address,
		"asset_a", msg.AssetInfos[0].Key(),
		"asset_b", msg.AssetInfos[1].Key(),
		"lp_token_name", lpName,
	)

	return hosttypes.NewResponse().
		AddAttribute(types.AttributeKeyAction, types.ActionInstantiate).
		AddAttribute(types.AttributeKeyPairContractAddress, env.Contract.Address).
		AddSubMessage(hosttypes.SubMsg{
			ID:      types.InstantiateTokenReplyID,
			Msg:     tokenMsg,
			ReplyOn: hosttypes.ReplySuccess,
		}), nil
}

// lpTokenName queries issued token symbols and builds the liquidity token name.
func (k Keeper) lpTokenName(ctx sdk.Context, deps hosttypes.Deps, infos types.AssetInfos) (string, error) {
	var symbols [2]string
	for i, assetInfo := range infos {
		switch assetInfo.Kind() {
		case types.AssetKindNative:
			symbols[i] = assetInfo.NativeToken.Denom
		case types.AssetKindToken:
			var resp tokentypes.TokenInfoResponse
			if err := hosttypes.QuerySmart(ctx, deps.Querier, assetInfo.Token.ContractAddr, tokentypes.NewTokenInfoQuery(), &resp); err != nil {
				return "", types.ErrInvalidAsset.Wrapf("query symbol of %s: %v", assetInfo.Token.ContractAddr, err)
			}
			symbols[i] = resp.Symbol
		default:
			return "", types.ErrInvalidAsset
		}
	}
	return types.FormatLPTokenName(symbols[0], symbols[1]), nil
}
