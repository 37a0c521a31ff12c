package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// Receive handles tokens sent to the pair with a hook message. The calling
// contract is the token: only the pair's issued assets may swap and only the
// liquidity token may withdraw.
func (k Keeper) Receive(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, msg types.ReceiveMsg) (*hosttypes.Response, error) {
	cfg, err := readyConfig(deps)
	if err != nil {
		return nil, err
	}

	var hook types.HookMsg
	if err := hosttypes.JSON.Unmarshal(msg.Msg, &hook); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode receive hook: %v", err)
	}
	amount := hosttypes.UintOrZero(msg.Amount)

	switch {
	case hook.Swap != nil:
		offerInfo := types.NewTokenAssetInfo(info.Sender)
		if !cfg.PairInfo.AssetInfos.Contains(offerInfo) {
			return nil, types.ErrUnauthorized.Wrapf("%s is not an asset of this pair", info.Sender)
		}
		return k.swap(ctx, deps, env, swapParams{
			sender:    msg.Sender,
			offer:     types.NewAsset(offerInfo, amount),
			minOutput: hook.Swap.MinOutputAmount,
			maxSpread: hook.Swap.MaxSpread,
			to:        hook.Swap.To,
		})

	case hook.WithdrawLiquidity != nil:
		if info.Sender != cfg.PairInfo.LiquidityToken {
			return nil, types.ErrUnauthorized.Wrapf("%s is not the liquidity token", info.Sender)
		}
		if amount.IsZero() {
			return nil, types.ErrInvalidZeroAmount.Wrap("liquidity amount is zero")
		}
		burn, err := tokenExecuteMsg(cfg.PairInfo.LiquidityToken, tokentypes.ExecuteMsg{
			Burn: &tokentypes.BurnMsg{Amount: amount},
		})
		if err != nil {
			return nil, err
		}
		return k.withdraw(ctx, deps, env, cfg, msg.Sender, amount, burn)

	default:
		return nil, types.ErrInvalidRequest.Wrap("unknown receive hook")
	}
}
