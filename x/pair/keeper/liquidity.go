package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// ProvideLiquidity deposits both assets and mints liquidity tokens. The
// first deposit sets the price; later deposits are priced by asset A and
// only the matching amount of asset B is taken.
func (k Keeper) ProvideLiquidity(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, msg types.ProvideLiquidityMsg) (*hosttypes.Response, error) {
	cfg, err := readyConfig(deps)
	if err != nil {
		return nil, err
	}

	for i := range msg.Assets {
		msg.Assets[i] = msg.Assets[i].Normalized()
		if err := msg.Assets[i].Info.CheckIsValid(deps.AddressCodec); err != nil {
			return nil, err
		}
		if err := msg.Assets[i].AssertSentNativeTokenBalance(info.Funds); err != nil {
			return nil, err
		}
	}
	assetA, assetB, err := orderAssets(cfg.PairInfo.AssetInfos, msg.Assets)
	if err != nil {
		return nil, err
	}
	if assetA.Amount.IsZero() && assetB.Amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("both deposit amounts are zero")
	}

	receiver := info.Sender
	if msg.Receiver != "" {
		if err := deps.ValidateAddress(msg.Receiver); err != nil {
			return nil, types.ErrInvalidRequest.Wrapf("receiver: %v", err)
		}
		receiver = msg.Receiver
	}

	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return nil, err
	}
	lpToken := cfg.PairInfo.LiquidityToken
	totalSupply, err := queryTotalSupply(ctx, deps, lpToken)
	if err != nil {
		return nil, err
	}

	var minted, requiredB math.Uint
	if totalSupply.IsZero() {
		if assetB.Amount.IsZero() {
			k.Logger(ctx).Info("initial deposit without second asset", "pair", env.Contract.Address, "amount_a", assetA.Amount.String())
		}
		minted = assetA.Amount
		requiredB = assetB.Amount
	} else {
		reserveA, reserveB := reserves.ReserveA.Amount, reserves.ReserveB.Amount
		if minted, err = SafeMulDiv(assetA.Amount, totalSupply, reserveA); err != nil {
			return nil, err
		}
		if requiredB, err = SafeMulDiv(assetA.Amount, reserveB, reserveA); err != nil {
			return nil, err
		}
		if requiredB.IsZero() && !reserveA.IsZero() {
			requiredB = math.OneUint()
		}
		if assetB.Amount.LT(requiredB) {
			return nil, types.ErrInsufficientSecondAsset.Wrapf("required %s, supplied %s", requiredB, assetB.Amount)
		}
	}
	if minted.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("deposit mints no liquidity tokens")
	}

	newA, err := SafeAdd(reserves.ReserveA.Amount, assetA.Amount)
	if err != nil {
		return nil, err
	}
	newB, err := SafeAdd(reserves.ReserveB.Amount, requiredB)
	if err != nil {
		return nil, err
	}
	reserves.Set(true, newA, newB)
	if err := saveReserves(deps.Storage, reserves); err != nil {
		return nil, err
	}

	res := hosttypes.NewResponse()
	pair := env.Contract.Address
	for _, pull := range []types.Asset{assetA, types.NewAsset(assetB.Info, requiredB)} {
		if pull.Info.Kind() != types.AssetKindToken || pull.Amount.IsZero() {
			continue
		}
		m, err := transferFromMsg(pull.Info.Token.ContractAddr, info.Sender, pair, pull.Amount)
		if err != nil {
			return nil, err
		}
		res.AddMessage(m)
	}

	refund := math.ZeroUint()
	if assetB.Info.IsNative() && assetB.Amount.GT(requiredB) {
		refund = assetB.Amount.Sub(requiredB)
		if err := appendTransfer(res, assetB.Info, info.Sender, refund); err != nil {
			return nil, err
		}
	}

	mint, err := tokenExecuteMsg(lpToken, tokentypes.ExecuteMsg{
		Mint: &tokentypes.MintMsg{Recipient: receiver, Amount: minted},
	})
	if err != nil {
		return nil, err
	}
	res.AddMessage(mint)

	res.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionProvideLiquidity),
		sdk.NewAttribute(types.AttributeKeySender, info.Sender),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyToken1Amount, assetA.Amount.String()),
		sdk.NewAttribute(types.AttributeKeyToken2Amount, requiredB.String()),
		sdk.NewAttribute(types.AttributeKeyShare, minted.String()),
		sdk.NewAttribute(types.AttributeKeyRefundAmount, refund.String()),
	)

	mintedF, _ := math.LegacyNewDecFromBigInt(minted.BigInt()).Float64()
	k.metrics.LiquidityAdded.WithLabelValues(pair).Add(mintedF)
	k.recordReserves(pair, reserves)
	k.Logger(ctx).Debug("liquidity provided",
		"pair", pair,
		"sender", info.Sender,
		"amount_a", assetA.Amount.String(),
		"amount_b", requiredB.String(),
		"minted", minted.String(),
	)
	return res, nil
}

// orderAssets matches the deposited assets against the pair's asset order.
func orderAssets(infos types.AssetInfos, assets [2]types.Asset) (types.Asset, types.Asset, error) {
	switch {
	case assets[0].Info.Equal(infos[0]) && assets[1].Info.Equal(infos[1]):
		return assets[0], assets[1], nil
	case assets[0].Info.Equal(infos[1]) && assets[1].Info.Equal(infos[0]):
		return assets[1], assets[0], nil
	default:
		return types.Asset{}, types.Asset{}, types.ErrAssetMismatch.Wrapf("deposit %s, %s does not match the pair", assets[0].Info, assets[1].Info)
	}
}

// RemoveLiquidity burns amount of the sender's liquidity tokens, which the
// pair must be allowed to burn, and pays out the pro-rata reserves.
func (k Keeper) RemoveLiquidity(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, amount math.Uint) (*hosttypes.Response, error) {
	cfg, err := readyConfig(deps)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("liquidity amount is zero")
	}

	balance, err := queryTokenBalance(ctx, deps, cfg.PairInfo.LiquidityToken, info.Sender)
	if err != nil {
		return nil, err
	}
	if amount.GT(balance) {
		return nil, types.ErrInsufficientBalance.Wrapf("available %s, requested %s", balance, amount)
	}

	burn, err := tokenExecuteMsg(cfg.PairInfo.LiquidityToken, tokentypes.ExecuteMsg{
		BurnFrom: &tokentypes.BurnFromMsg{Owner: info.Sender, Amount: amount},
	})
	if err != nil {
		return nil, err
	}
	return k.withdraw(ctx, deps, env, cfg, info.Sender, amount, burn)
}

// withdraw pays out the share of amount liquidity tokens and appends burn.
func (k Keeper) withdraw(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, cfg types.Config, sender string, amount math.Uint, burn hosttypes.CosmosMsg) (*hosttypes.Response, error) {
	totalSupply, err := queryTotalSupply(ctx, deps, cfg.PairInfo.LiquidityToken)
	if err != nil {
		return nil, err
	}
	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return nil, err
	}
	outA, outB, err := ShareOf(amount, totalSupply, reserves)
	if err != nil {
		return nil, err
	}

	newA, err := SafeSub(reserves.ReserveA.Amount, outA)
	if err != nil {
		return nil, err
	}
	newB, err := SafeSub(reserves.ReserveB.Amount, outB)
	if err != nil {
		return nil, err
	}
	reserves.Set(true, newA, newB)
	if err := saveReserves(deps.Storage, reserves); err != nil {
		return nil, err
	}

	res := hosttypes.NewResponse()
	if err := appendTransfer(res, reserves.ReserveA.Info, sender, outA); err != nil {
		return nil, err
	}
	if err := appendTransfer(res, reserves.ReserveB.Info, sender, outB); err != nil {
		return nil, err
	}
	res.AddMessage(burn)

	res.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionRemoveLiquidity),
		sdk.NewAttribute(types.AttributeKeySender, sender),
		sdk.NewAttribute(types.AttributeKeyLiquidityBurned, amount.String()),
		sdk.NewAttribute(types.AttributeKeyToken1Returned, outA.String()),
		sdk.NewAttribute(types.AttributeKeyToken2Returned, outB.String()),
	)

	pair := env.Contract.Address
	burned, _ := math.LegacyNewDecFromBigInt(amount.BigInt()).Float64()
	k.metrics.LiquidityRemoved.WithLabelValues(pair).Add(burned)
	k.recordReserves(pair, reserves)
	k.Logger(ctx).Debug("liquidity removed",
		"pair", pair,
		"sender", sender,
		"burned", amount.String(),
		"out_a", outA.String(),
		"out_b", outB.String(),
	)
	return res, nil
}
