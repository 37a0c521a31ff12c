package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

// swapParams is a swap request after decoding, from either Execute or a
// token receive hook.
type swapParams struct {
	sender    string
	offer     types.Asset
	minOutput *math.Uint
	maxSpread *math.LegacyDec
	to        string
	pullOffer bool
	funds     sdk.Coins
}

// Swap trades the offered asset for the other asset of the pair. Issued
// offer tokens are pulled from the sender with transfer_from.
func (k Keeper) Swap(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, msg types.SwapMsg) (*hosttypes.Response, error) {
	return k.swap(ctx, deps, env, swapParams{
		sender:    info.Sender,
		offer:     msg.OfferAsset.Normalized(),
		minOutput: msg.MinOutputAmount,
		maxSpread: msg.MaxSpread,
		to:        msg.To,
		pullOffer: true,
		funds:     info.Funds,
	})
}

func (k Keeper) swap(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, p swapParams) (*hosttypes.Response, error) {
	cfg, err := readyConfig(deps)
	if err != nil {
		return nil, err
	}
	if p.offer.Amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("offer amount is zero")
	}
	if err := p.offer.AssertSentNativeTokenBalance(p.funds); err != nil {
		return nil, err
	}
	if p.maxSpread != nil && p.maxSpread.IsNegative() {
		return nil, types.ErrInvalidRequest.Wrapf("negative max spread %s", p.maxSpread)
	}

	receiver := p.sender
	if p.to != "" {
		if err := deps.ValidateAddress(p.to); err != nil {
			return nil, types.ErrInvalidRequest.Wrapf("receiver: %v", err)
		}
		receiver = p.to
	}

	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return nil, err
	}
	offerReserve, askReserve, isA, err := reserves.Side(p.offer.Info)
	if err != nil {
		return nil, err
	}
	if offerReserve.Amount.IsZero() || askReserve.Amount.IsZero() {
		return nil, types.ErrNoLiquidity
	}

	result, err := ComputeSwap(p.offer.Amount, offerReserve.Amount, askReserve.Amount, cfg.Fees)
	if err != nil {
		return nil, err
	}
	if result.NetOutput.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("swap output rounds to zero")
	}

	spot, err := SpotOutput(p.offer.Amount, offerReserve.Amount, askReserve.Amount)
	if err != nil {
		return nil, err
	}
	if err := AssertMaxSpread(result.NetOutput, p.minOutput, p.maxSpread); err != nil {
		return nil, err
	}

	// InputFee is already inside NetInput.
	newOffer, err := SafeAdd(offerReserve.Amount, result.NetInput)
	if err != nil {
		return nil, err
	}
	newAsk, err := SafeSub(askReserve.Amount, result.NetOutput)
	if err != nil {
		return nil, err
	}
	reserves.Set(isA, newOffer, newAsk)
	if err := saveReserves(deps.Storage, reserves); err != nil {
		return nil, err
	}

	res := hosttypes.NewResponse()
	if p.pullOffer && p.offer.Info.Kind() == types.AssetKindToken {
		pull, err := transferFromMsg(p.offer.Info.Token.ContractAddr, p.sender, env.Contract.Address, p.offer.Amount)
		if err != nil {
			return nil, err
		}
		res.AddMessage(pull)
	}
	if err := appendTransfer(res, askReserve.Info, receiver, result.NetOutput); err != nil {
		return nil, err
	}
	if err := appendTransfer(res, p.offer.Info, cfg.Fees.ProtocolFeeRecipient, result.ProtocolFee); err != nil {
		return nil, err
	}

	spread := math.ZeroUint()
	if spot.GT(result.NetOutput) {
		spread = spot.Sub(result.NetOutput)
	}

	res.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionSwap),
		sdk.NewAttribute(types.AttributeKeySender, p.sender),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyOfferAsset, p.offer.Info.Key()),
		sdk.NewAttribute(types.AttributeKeyAskAsset, askReserve.Info.Key()),
		sdk.NewAttribute(types.AttributeKeyTokenInAmount, p.offer.Amount.String()),
		sdk.NewAttribute(types.AttributeKeyTokenOutAmount, result.NetOutput.String()),
		sdk.NewAttribute(types.AttributeKeyProtocolFeeAmount, result.ProtocolFee.String()),
		sdk.NewAttribute(types.AttributeKeyLpFeeInputAmount, result.InputFee.String()),
		sdk.NewAttribute(types.AttributeKeyLpFeeOutputAmount, result.OutputFee.String()),
		sdk.NewAttribute(types.AttributeKeySpreadAmount, spread.String()),
	)

	pair := env.Contract.Address
	k.metrics.SwapsTotal.WithLabelValues(pair, p.offer.Info.Key(), askReserve.Info.Key()).Inc()
	volume, _ := math.LegacyNewDecFromBigInt(p.offer.Amount.BigInt()).Float64()
	k.metrics.SwapVolume.WithLabelValues(pair, p.offer.Info.Key()).Add(volume)
	if !result.ProtocolFee.IsZero() {
		fee, _ := math.LegacyNewDecFromBigInt(result.ProtocolFee.BigInt()).Float64()
		k.metrics.ProtocolFees.WithLabelValues(pair, p.offer.Info.Key()).Add(fee)
	}
	if !spot.IsZero() {
		ratio, _ := math.LegacyNewDecFromBigInt(spread.BigInt()).QuoInt(math.NewIntFromBigInt(spot.BigInt())).Float64()
		k.metrics.SwapSpread.Observe(ratio)
	}
	k.recordReserves(pair, reserves)

	k.Logger(ctx).Debug("swap executed",
		"pair", pair,
		"sender", p.sender,
		"offer", p.offer.String(),
		"net_output", result.NetOutput.String(),
		"protocol_fee", result.ProtocolFee.String(),
	)
	return res, nil
}
