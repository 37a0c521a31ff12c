package keeper

import (
	"cosmossdk.io/math"

	"github.com/ysip-labs/ysip/x/pair/types"
)

// SwapResult is the breakdown of a constant-product swap.
type SwapResult struct {
	ProtocolFee math.Uint
	NetInput    math.Uint
	GrossOutput math.Uint
	InputFee    math.Uint
	OutputFee   math.Uint
	NetOutput   math.Uint
}

// ComputeSwap prices offerAmount against the reserves. The protocol fee is
// taken from the input first; the LP fee is then applied to both the net
// input and the gross output. All divisions round down.
func ComputeSwap(offerAmount, offerReserve, askReserve math.Uint, fees types.Fees) (SwapResult, error) {
	var res SwapResult
	var err error

	if res.ProtocolFee, err = SafeMulParts(offerAmount, fees.ProtocolFeeParts()); err != nil {
		return SwapResult{}, err
	}
	if res.NetInput, err = SafeSub(offerAmount, res.ProtocolFee); err != nil {
		return SwapResult{}, err
	}

	newOffer, err := SafeAdd(offerReserve, res.NetInput)
	if err != nil {
		return SwapResult{}, err
	}
	// k / (offer + net_input), with k = offer * ask
	remaining, err := SafeMulDiv(offerReserve, askReserve, newOffer)
	if err != nil {
		return SwapResult{}, err
	}
	if res.GrossOutput, err = SafeSub(askReserve, remaining); err != nil {
		return SwapResult{}, err
	}

	lpParts := fees.LpFeeParts()
	if res.InputFee, err = SafeMulParts(res.NetInput, lpParts); err != nil {
		return SwapResult{}, err
	}
	if res.OutputFee, err = SafeMulParts(res.GrossOutput, lpParts); err != nil {
		return SwapResult{}, err
	}
	if res.NetOutput, err = SafeSub(res.GrossOutput, res.OutputFee); err != nil {
		return SwapResult{}, err
	}
	return res, nil
}

// SpotOutput returns floor(offerAmount * askReserve / offerReserve), the
// output at the current price with no fees and no price impact.
func SpotOutput(offerAmount, offerReserve, askReserve math.Uint) (math.Uint, error) {
	return SafeMulDiv(offerAmount, askReserve, offerReserve)
}

// AssertMaxSpread enforces the caller's slippage bounds on netOutput.
//
// netOutput below minOutput fails. When maxSpread is also set, the relative
// distance |netOutput - minOutput| / minOutput must not exceed it. maxSpread
// alone bounds nothing.
func AssertMaxSpread(netOutput math.Uint, minOutput *math.Uint, maxSpread *math.LegacyDec) error {
	if minOutput == nil {
		return nil
	}
	if netOutput.LT(*minOutput) {
		return types.ErrSlippageExceeded.Wrapf("output %s is below minimum %s", netOutput, minOutput)
	}
	if maxSpread != nil && !minOutput.IsZero() {
		diff := netOutput.Sub(*minOutput)
		ratio := math.LegacyNewDecFromBigInt(diff.BigInt()).
			QuoInt(math.NewIntFromBigInt(minOutput.BigInt()))
		if ratio.GT(*maxSpread) {
			return types.ErrSlippageExceeded.Wrapf("output %s deviates from %s by %s, max %s", netOutput, minOutput, ratio, maxSpread)
		}
	}
	return nil
}

// ShareOf returns floor(amount * reserve / supply) for both reserves.
func ShareOf(amount, totalSupply math.Uint, reserves types.Reserves) (math.Uint, math.Uint, error) {
	outA, err := SafeMulDiv(amount, reserves.ReserveA.Amount, totalSupply)
	if err != nil {
		return math.Uint{}, math.Uint{}, err
	}
	outB, err := SafeMulDiv(amount, reserves.ReserveB.Amount, totalSupply)
	if err != nil {
		return math.Uint{}, math.Uint{}, err
	}
	return outA, outB, nil
}
