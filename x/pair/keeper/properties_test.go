package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/ysip-labs/ysip/testutil/keeper"
	"github.com/ysip-labs/ysip/x/pair/keeper"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

func drawFees(t *rapid.T) types.Fees {
	return types.Fees{
		ProtocolFeeRate: math.LegacyMustNewDecFromStr(rapid.SampledFrom([]string{"0.3", "0.5", "1"}).Draw(t, "protocolFee")),
		LpFeeRate:       math.LegacyMustNewDecFromStr(rapid.SampledFrom([]string{"0", "0.3"}).Draw(t, "lpFee")),
	}
}

// Property: every unit offered is either a protocol fee or pool input, and
// the output never exceeds the ask reserve.
func TestPropertySwapAccounting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offer := math.NewUint(rapid.Uint64Range(1, 1e15).Draw(t, "offerReserve"))
		ask := math.NewUint(rapid.Uint64Range(1, 1e15).Draw(t, "askReserve"))
		amount := math.NewUint(rapid.Uint64Range(1, 1e15).Draw(t, "amount"))
		fees := drawFees(t)

		res, err := keeper.ComputeSwap(amount, offer, ask, fees)
		if err != nil {
			t.Fatalf("compute swap: %v", err)
		}
		if !res.ProtocolFee.Add(res.NetInput).Equal(amount) {
			t.Fatalf("protocol fee %s + net input %s != %s", res.ProtocolFee, res.NetInput, amount)
		}
		if !res.NetOutput.Add(res.OutputFee).Equal(res.GrossOutput) {
			t.Fatalf("net output %s + output fee %s != gross %s", res.NetOutput, res.OutputFee, res.GrossOutput)
		}
		if res.NetOutput.GT(ask) {
			t.Fatalf("output %s exceeds ask reserve %s", res.NetOutput, ask)
		}
	})
}

// Property: swapping there and back again always returns strictly less than
// was offered.
func TestPropertySwapRoundTripLoses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offer := rapid.Uint64Range(1e6, 1e12).Draw(t, "offerReserve")
		ask := math.NewUint(rapid.Uint64Range(1e6, 1e12).Draw(t, "askReserve"))
		amount := math.NewUint(rapid.Uint64Range(1e4, offer).Draw(t, "amount"))
		fees := drawFees(t)

		there, err := keeper.ComputeSwap(amount, math.NewUint(offer), ask, fees)
		if err != nil {
			t.Fatalf("compute swap: %v", err)
		}

		newOffer := math.NewUint(offer).Add(there.NetInput)
		newAsk := ask.Sub(there.NetOutput)
		back, err := keeper.ComputeSwap(there.NetOutput, newAsk, newOffer, fees)
		if err != nil {
			t.Fatalf("compute swap back: %v", err)
		}
		if !back.NetOutput.LT(amount) {
			t.Fatalf("round trip of %s returned %s", amount, back.NetOutput)
		}
	})
}

// Property: the share of a supply never exceeds the reserves, and the whole
// supply redeems the whole pool.
func TestPropertyShareBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		supply := rapid.Uint64Range(1, 1e15).Draw(t, "supply")
		amount := math.NewUint(rapid.Uint64Range(1, supply).Draw(t, "amount"))
		reserves := types.NewReserves(types.AssetInfos{types.NewNativeAssetInfo("uusd"), types.NewNativeAssetInfo("uluna")})
		reserves.ReserveA.Amount = math.NewUint(rapid.Uint64Range(0, 1e15).Draw(t, "reserveA"))
		reserves.ReserveB.Amount = math.NewUint(rapid.Uint64Range(0, 1e15).Draw(t, "reserveB"))

		a, b, err := keeper.ShareOf(amount, math.NewUint(supply), reserves)
		if err != nil {
			t.Fatalf("share: %v", err)
		}
		if a.GT(reserves.ReserveA.Amount) || b.GT(reserves.ReserveB.Amount) {
			t.Fatalf("share %s/%s exceeds reserves %s/%s", a, b, reserves.ReserveA.Amount, reserves.ReserveB.Amount)
		}
		if amount.Equal(math.NewUint(supply)) && (!a.Equal(reserves.ReserveA.Amount) || !b.Equal(reserves.ReserveB.Amount)) {
			t.Fatalf("full supply redeemed %s/%s of %s/%s", a, b, reserves.ReserveA.Amount, reserves.ReserveB.Amount)
		}
	})
}

// Property: any sequence of deposits, swaps and withdrawals keeps the ledger
// equal to what the pair holds, and a deposit withdrawn at once never
// returns more than was deposited.
func TestPropertyLedgerReconciles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a, ctx := keepertest.SetupTestApp(t)
		creator := keepertest.TestAddr("creator")
		users := []sdk.AccAddress{keepertest.TestAddr("alice"), keepertest.TestAddr("bob")}

		balances := map[string]uint64{}
		for _, u := range users {
			require.NoError(t, a.FundAccount(ctx, u, sdk.NewCoins(sdk.NewInt64Coin(denom, 1e15))))
			balances[u.String()] = 1e15
		}
		mir := keepertest.CreateToken(t, a, ctx, creator, "MIR", balances)
		pair := keepertest.CreatePair(t, a, ctx, creator,
			types.AssetInfos{types.NewNativeAssetInfo(denom), types.NewTokenAssetInfo(mir)},
			keepertest.PairOptions{
				ProtocolFeeRecipient: keepertest.TestAddr("fee_recipient"),
				ProtocolFeeRate:      math.LegacyMustNewDecFromStr("0.3"),
				LpFeeRate:            math.LegacyMustNewDecFromStr("0.3"),
			})
		mirInfo := types.NewTokenAssetInfo(mir)
		usdInfo := types.NewNativeAssetInfo(denom)

		provide := func(user sdk.AccAddress, usdAmt, mirAmt uint64) error {
			keepertest.IncreaseAllowance(t, a, ctx, mir, user, pair.ContractAddress, mirAmt)
			_, err := a.ExecuteContract(ctx, pair.ContractAddress, user, types.ExecuteMsg{
				ProvideLiquidity: &types.ProvideLiquidityMsg{Assets: [2]types.Asset{
					types.NewAsset(usdInfo, math.NewUint(usdAmt)), types.NewAsset(mirInfo, math.NewUint(mirAmt)),
				}},
			}, usdCoins(usdAmt))
			return err
		}
		require.NoError(t, provide(users[0], rapid.Uint64Range(1e6, 1e12).Draw(rt, "seedUSD"), rapid.Uint64Range(1e6, 1e12).Draw(rt, "seedMIR")))

		steps := rapid.IntRange(1, 6).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			user := users[rapid.IntRange(0, 1).Draw(rt, "user")]
			switch rapid.IntRange(0, 2).Draw(rt, "action") {
			case 0:
				amt := rapid.Uint64Range(1, 1e11).Draw(rt, "swapUSD")
				_, _ = a.ExecuteContract(ctx, pair.ContractAddress, user, types.ExecuteMsg{
					Swap: &types.SwapMsg{OfferAsset: types.NewAsset(usdInfo, math.NewUint(amt))},
				}, usdCoins(amt))
			case 1:
				amt := rapid.Uint64Range(1, 1e11).Draw(rt, "swapMIR")
				keepertest.IncreaseAllowance(t, a, ctx, mir, user, pair.ContractAddress, amt)
				_, _ = a.ExecuteContract(ctx, pair.ContractAddress, user, types.ExecuteMsg{
					Swap: &types.SwapMsg{OfferAsset: types.NewAsset(mirInfo, math.NewUint(amt))},
				}, nil)
			case 2:
				usdAmt := rapid.Uint64Range(1, 1e11).Draw(rt, "depositUSD")
				mirAmt := rapid.Uint64Range(1, 1e13).Draw(rt, "depositMIR")
				lpBefore := keepertest.TokenBalance(t, a, ctx, pair.LiquidityTokenAddress, user.String())
				reserveBBefore := keepertest.Reserves(t, a, ctx, pair.ContractAddress)[1].Amount
				if err := provide(user, usdAmt, mirAmt); err != nil {
					continue
				}
				minted := keepertest.TokenBalance(t, a, ctx, pair.LiquidityTokenAddress, user.String()).Sub(lpBefore)
				requiredB := keepertest.Reserves(t, a, ctx, pair.ContractAddress)[1].Amount.Sub(reserveBBefore)

				usdBefore := keepertest.NativeBalance(a, ctx, user.String(), denom)
				mirBefore := keepertest.TokenBalance(t, a, ctx, mir, user.String())
				send := tokentypes.ExecuteMsg{Send: &tokentypes.SendMsg{
					Contract: pair.ContractAddress,
					Amount:   minted,
					Msg:      []byte(`{"withdraw_liquidity":{}}`),
				}}
				_, err := a.ExecuteContract(ctx, pair.LiquidityTokenAddress, user, send, nil)
				require.NoError(t, err)

				gotUSD := keepertest.NativeBalance(a, ctx, user.String(), denom).Sub(usdBefore)
				gotMIR := keepertest.TokenBalance(t, a, ctx, mir, user.String()).Sub(mirBefore)
				if gotUSD.GT(math.NewIntFromUint64(usdAmt)) || gotMIR.GT(requiredB) {
					rt.Fatalf("deposit %d/%s withdrew %s/%s", usdAmt, requiredB, gotUSD, gotMIR)
				}
			}

			deps, err := a.ContractKeeper.ContractDeps(ctx, pair.ContractAddress)
			require.NoError(t, err)
			for _, reserve := range keepertest.Reserves(t, a, ctx, pair.ContractAddress) {
				held, err := a.PairKeeper.Holding(ctx, deps, pair.ContractAddress, reserve.Info)
				require.NoError(t, err)
				if !held.Equal(reserve.Amount) {
					rt.Fatalf("reserve %s recorded %s, held %s", reserve.Info, reserve.Amount, held)
				}
			}
			if msg, broken := a.AssertInvariants(ctx); broken {
				rt.Fatal(msg)
			}
		}
	})
}

// Property: on a freshly seeded pool, a deposit withdrawn at once returns
// both assets with at most one unit lost to rounding on each.
func TestPropertyDepositWithdrawLosesAtMostOneUnit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a, ctx := keepertest.SetupTestApp(t)
		creator := keepertest.TestAddr("creator")
		seeder, user := keepertest.TestAddr("alice"), keepertest.TestAddr("bob")

		balances := map[string]uint64{}
		for _, u := range []sdk.AccAddress{seeder, user} {
			require.NoError(t, a.FundAccount(ctx, u, sdk.NewCoins(sdk.NewInt64Coin(denom, 1e15))))
			balances[u.String()] = 1e18
		}
		mir := keepertest.CreateToken(t, a, ctx, creator, "MIR", balances)
		pair := keepertest.CreatePair(t, a, ctx, creator,
			types.AssetInfos{types.NewNativeAssetInfo(denom), types.NewTokenAssetInfo(mir)},
			keepertest.PairOptions{
				ProtocolFeeRecipient: keepertest.TestAddr("fee_recipient"),
				ProtocolFeeRate:      math.LegacyMustNewDecFromStr("0.3"),
				LpFeeRate:            math.LegacyZeroDec(),
			})
		mirInfo := types.NewTokenAssetInfo(mir)
		usdInfo := types.NewNativeAssetInfo(denom)

		provide := func(from sdk.AccAddress, usdAmt, mirAmt uint64) {
			keepertest.IncreaseAllowance(t, a, ctx, mir, from, pair.ContractAddress, mirAmt)
			_, err := a.ExecuteContract(ctx, pair.ContractAddress, from, types.ExecuteMsg{
				ProvideLiquidity: &types.ProvideLiquidityMsg{Assets: [2]types.Asset{
					types.NewAsset(usdInfo, math.NewUint(usdAmt)), types.NewAsset(mirInfo, math.NewUint(mirAmt)),
				}},
			}, usdCoins(usdAmt))
			require.NoError(t, err)
		}

		seedUSD := rapid.Uint64Range(1e6, 1e12).Draw(rt, "seedUSD")
		seedMIR := rapid.Uint64Range(1, 1e12).Draw(rt, "seedMIR")
		provide(seeder, seedUSD, seedMIR)

		usdAmt := rapid.Uint64Range(1, 1e9).Draw(rt, "depositUSD")
		// Always covers required_b: floor(usd * seedMIR / seedUSD), bumped to 1.
		mirAmt := math.NewUint(seedMIR).MulUint64(usdAmt).QuoUint64(seedUSD).
			AddUint64(1 + rapid.Uint64Range(0, 1e6).Draw(rt, "extraMIR")).Uint64()

		lpBefore := keepertest.TokenBalance(t, a, ctx, pair.LiquidityTokenAddress, user.String())
		reserveBBefore := keepertest.Reserves(t, a, ctx, pair.ContractAddress)[1].Amount
		provide(user, usdAmt, mirAmt)
		minted := keepertest.TokenBalance(t, a, ctx, pair.LiquidityTokenAddress, user.String()).Sub(lpBefore)
		requiredB := keepertest.Reserves(t, a, ctx, pair.ContractAddress)[1].Amount.Sub(reserveBBefore)

		usdBefore := keepertest.NativeBalance(a, ctx, user.String(), denom)
		mirBefore := keepertest.TokenBalance(t, a, ctx, mir, user.String())
		_, err := a.ExecuteContract(ctx, pair.LiquidityTokenAddress, user, tokentypes.ExecuteMsg{Send: &tokentypes.SendMsg{
			Contract: pair.ContractAddress,
			Amount:   minted,
			Msg:      []byte(`{"withdraw_liquidity":{}}`),
		}}, nil)
		require.NoError(t, err)

		gotUSD := math.NewUintFromBigInt(keepertest.NativeBalance(a, ctx, user.String(), denom).Sub(usdBefore).BigInt())
		gotMIR := keepertest.TokenBalance(t, a, ctx, mir, user.String()).Sub(mirBefore)

		one := math.OneUint()
		deposited := math.NewUint(usdAmt)
		if gotUSD.GT(deposited) || deposited.Sub(gotUSD).GT(one) {
			rt.Fatalf("deposited %s of asset A, withdrew %s", deposited, gotUSD)
		}
		if gotMIR.GT(requiredB) || requiredB.Sub(gotMIR).GT(one) {
			rt.Fatalf("deposited %s of asset B, withdrew %s", requiredB, gotMIR)
		}
	})
}
