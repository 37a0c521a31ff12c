package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ysip-labs/ysip/app"
	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// CreateToken instantiates a token with initial balances and returns its
// address.
func CreateToken(t testing.TB, a *app.App, ctx sdk.Context, creator sdk.AccAddress, symbol string, balances map[string]uint64) string {
	t.Helper()

	initial := make([]tokentypes.Coin, 0, len(balances))
	for addr, amt := range balances {
		initial = append(initial, tokentypes.Coin{Address: addr, Amount: math.NewUint(amt)})
	}
	addr, _, err := a.InstantiateContract(ctx, app.TokenCodeID, creator, tokentypes.InstantiateMsg{
		Name:            symbol + " token",
		Symbol:          symbol,
		Decimals:        6,
		InitialBalances: initial,
		Mint:            &tokentypes.MinterResponse{Minter: creator.String()},
	}, nil, symbol)
	require.NoError(t, err)
	return addr
}

// PairOptions configures CreatePair.
type PairOptions struct {
	ProtocolFeeRecipient sdk.AccAddress
	ProtocolFeeRate      math.LegacyDec
	LpFeeRate            math.LegacyDec
}

// CreatePair instantiates a pair, which provisions its liquidity token in the
// same transaction, and returns the pair info.
func CreatePair(t testing.TB, a *app.App, ctx sdk.Context, creator sdk.AccAddress, infos pairtypes.AssetInfos, opts PairOptions) pairtypes.PairInfoResponse {
	t.Helper()

	addr, _, err := a.InstantiateContract(ctx, app.PairCodeID, creator, pairtypes.InstantiateMsg{
		AssetInfos:           infos,
		ProtocolFeeRecipient: opts.ProtocolFeeRecipient.String(),
		ProtocolFeeRate:      opts.ProtocolFeeRate,
		LpFeeRate:            opts.LpFeeRate,
		TokenCodeID:          app.TokenCodeID,
	}, nil, "pair")
	require.NoError(t, err)

	var info pairtypes.PairInfoResponse
	require.NoError(t, a.QueryContract(ctx, addr, pairtypes.NewPairQuery(), &info))
	require.NotEmpty(t, info.LiquidityTokenAddress)
	return info
}

// TokenBalance queries a token balance.
func TokenBalance(t testing.TB, a *app.App, ctx sdk.Context, token, holder string) math.Uint {
	t.Helper()
	var resp tokentypes.BalanceResponse
	require.NoError(t, a.QueryContract(ctx, token, tokentypes.NewBalanceQuery(holder), &resp))
	return resp.Balance
}

// TokenSupply queries a token's total supply.
func TokenSupply(t testing.TB, a *app.App, ctx sdk.Context, token string) math.Uint {
	t.Helper()
	var resp tokentypes.TokenInfoResponse
	require.NoError(t, a.QueryContract(ctx, token, tokentypes.NewTokenInfoQuery(), &resp))
	return resp.TotalSupply
}

// Reserves queries the pair's reserve ledger.
func Reserves(t testing.TB, a *app.App, ctx sdk.Context, pair string) [2]pairtypes.Asset {
	t.Helper()
	var resp pairtypes.LiquidityResponse
	require.NoError(t, a.QueryContract(ctx, pair, pairtypes.NewLiquidityQuery(), &resp))
	return resp.Reserves
}

// IncreaseAllowance grants spender an allowance on token.
func IncreaseAllowance(t testing.TB, a *app.App, ctx sdk.Context, token string, owner sdk.AccAddress, spender string, amount uint64) {
	t.Helper()
	_, err := a.ExecuteContract(ctx, token, owner, tokentypes.ExecuteMsg{
		IncreaseAllowance: &tokentypes.AllowanceMsg{Spender: spender, Amount: math.NewUint(amount)},
	}, nil)
	require.NoError(t, err)
}

// NativeBalance returns the bank balance of addr in denom.
func NativeBalance(a *app.App, ctx sdk.Context, addr string, denom string) math.Int {
	return a.BankKeeper.GetBalance(ctx, sdk.MustAccAddressFromBech32(addr), denom).Amount
}
