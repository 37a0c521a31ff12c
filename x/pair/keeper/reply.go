package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

// Reply completes liquidity token provisioning. It is accepted once.
func (k Keeper) Reply(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, reply hosttypes.Reply) (*hosttypes.Response, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}

	if cfg.TokenStatus == types.TokenStatusSet || cfg.PairInfo.LiquidityToken != "" {
		return nil, types.ErrUnauthorized.Wrap("liquidity token already provisioned")
	}
	if cfg.TokenStatus != types.TokenStatusProvisioning || reply.ID != cfg.PendingReplyID {
		return nil, types.ErrUnknownReplyID.Wrapf("reply id %d, pending %d", reply.ID, cfg.PendingReplyID)
	}
	if !reply.Result.IsOk() {
		return nil, types.ErrGeneric.Wrapf("liquidity token instantiation failed: %s", reply.Result.Err)
	}

	var data hosttypes.InstantiateResponse
	if err := hosttypes.JSON.Unmarshal(reply.Result.Ok.Data, &data); err != nil {
		return nil, types.ErrGeneric.Wrapf("parse instantiate reply data: %v", err)
	}
	if err := deps.ValidateAddress(data.ContractAddress); err != nil {
		return nil, types.ErrGeneric.Wrapf("liquidity token address: %v", err)
	}

	cfg.PairInfo.LiquidityToken = data.ContractAddress
	cfg.TokenStatus = types.TokenStatusSet
	cfg.PendingReplyID = 0
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}

	k.metrics.LPTokensProvisioned.Inc()
	k.Logger(ctx).Info("liquidity token provisioned",
		"pair", env.Contract.Address,
		"liquidity_token", data.ContractAddress,
	)

	return hosttypes.NewResponse().
		AddAttribute(types.AttributeKeyLiquidityTokenAddr, data.ContractAddress), nil
}
