package cli

import (
	"bytes"
	"context"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

type executed struct {
	from     string
	contract string
	msg      any
	funds    sdk.Coins
}

type fakeClient struct {
	pairInfo     types.PairInfoResponse
	executed     []executed
	instantiated []any
	queries      []any
}

func (f *fakeClient) Instantiate(_ context.Context, from string, codeID uint64, msg any, funds sdk.Coins, label string) (hostclient.Result, error) {
	f.instantiated = append(f.instantiated, msg)
	return hostclient.Result{Contract: "new"}, nil
}

func (f *fakeClient) Execute(_ context.Context, from, contract string, msg any, funds sdk.Coins) (hostclient.Result, error) {
	f.executed = append(f.executed, executed{from: from, contract: contract, msg: msg, funds: funds})
	return hostclient.Result{Height: 2}, nil
}

func (f *fakeClient) Query(_ context.Context, contract string, req, resp any) error {
	f.queries = append(f.queries, req)
	bz, err := hosttypes.JSON.Marshal(f.pairInfo)
	if err != nil {
		return err
	}
	return hosttypes.JSON.Unmarshal(bz, resp)
}

func (f *fakeClient) Contracts(context.Context, uint64) ([]string, error) {
	return []string{f.pairInfo.ContractAddress}, nil
}

func (f *fakeClient) ResolveAddress(_ context.Context, nameOrAddr string) (string, error) {
	return nameOrAddr, nil
}

var (
	pairAddr  = sdk.AccAddress([]byte("pair________________")).String()
	tokenAddr = sdk.AccAddress([]byte("token_______________")).String()
	lpAddr    = sdk.AccAddress([]byte("lp__________________")).String()
	alice     = sdk.AccAddress([]byte("alice_______________")).String()
)

func newFakeClient() *fakeClient {
	return &fakeClient{pairInfo: types.PairInfoResponse{
		AssetInfos:            types.AssetInfos{types.NewNativeAssetInfo("uusd"), types.NewTokenAssetInfo(tokenAddr)},
		ContractAddress:       pairAddr,
		LiquidityTokenAddress: lpAddr,
	}}
}

func run(t *testing.T, root *cobra.Command, fc *fakeClient, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	hostclient.SetContractClient(root, fc)
	err := root.Execute()
	return out.String(), err
}

func TestFlagConstants(t *testing.T) {
	t.Parallel()

	require.Equal(t, "protocol-fee-rate", FlagProtocolFeeRate)
	require.Equal(t, "lp-fee-rate", FlagLpFeeRate)
	require.Equal(t, "min-output", FlagMinOutput)
	require.Equal(t, "max-spread", FlagMaxSpread)
	require.Equal(t, "receiver", FlagReceiver)
}

func TestParseAssetInfo(t *testing.T) {
	info, err := ParseAssetInfo("uusd")
	require.NoError(t, err)
	require.True(t, info.IsNative())

	info, err = ParseAssetInfo(tokenAddr)
	require.NoError(t, err)
	require.Equal(t, types.AssetKindToken, info.Kind())
	require.Equal(t, tokenAddr, info.Key())

	_, err = ParseAssetInfo("")
	require.Error(t, err)
	_, err = ParseAssetInfo("1bad")
	require.Error(t, err)

	_, err = ParseAmount("amount", "0")
	require.Error(t, err)
	_, err = ParseAmount("amount", "-5")
	require.Error(t, err)
	amount, err := ParseAmount("amount", "42")
	require.NoError(t, err)
	require.Equal(t, "42", amount.String())
}

func TestCreatePair(t *testing.T) {
	fc := newFakeClient()
	_, err := run(t, GetTxCmd(), fc, "create-pair", "uusd", tokenAddr, "--lp-fee-rate", "0.05", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.instantiated, 1)

	msg := fc.instantiated[0].(types.InstantiateMsg)
	require.Equal(t, alice, msg.ProtocolFeeRecipient)
	require.Equal(t, DefaultTokenCodeID, msg.TokenCodeID)
	require.Equal(t, "0.300000000000000000", msg.ProtocolFeeRate.String())
	require.Equal(t, "0.050000000000000000", msg.LpFeeRate.String())

	_, err = run(t, GetTxCmd(), fc, "create-pair", "uusd", "uusd", "--from", alice)
	require.ErrorContains(t, err, "assets must be different")

	_, err = run(t, GetTxCmd(), fc, "create-pair", "uusd", tokenAddr, "--lp-fee-rate", "0.8", "--from", alice)
	require.ErrorIs(t, err, types.ErrInvalidFees)

	_, err = run(t, GetTxCmd(), fc, "create-pair", "uusd", tokenAddr)
	require.ErrorContains(t, err, "--from is required")
	require.Len(t, fc.instantiated, 1)
}

func TestProvideLiquidityApprovesTokens(t *testing.T) {
	fc := newFakeClient()
	_, err := run(t, GetTxCmd(), fc, "provide-liquidity", pairAddr, "100", "3000", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.executed, 2)

	approve := fc.executed[0]
	require.Equal(t, tokenAddr, approve.contract)
	allowance := approve.msg.(tokentypes.ExecuteMsg).IncreaseAllowance
	require.NotNil(t, allowance)
	require.Equal(t, pairAddr, allowance.Spender)
	require.Equal(t, "3000", allowance.Amount.String())

	provide := fc.executed[1]
	require.Equal(t, pairAddr, provide.contract)
	require.Equal(t, "100uusd", provide.funds.String())
	msg := provide.msg.(types.ExecuteMsg).ProvideLiquidity
	require.NotNil(t, msg)
	require.Equal(t, "100", msg.Assets[0].Amount.String())
	require.Equal(t, "3000", msg.Assets[1].Amount.String())

	fc = newFakeClient()
	_, err = run(t, GetTxCmd(), fc, "provide-liquidity", pairAddr, "100", "3000", "--skip-approve", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.executed, 1)
}

func TestSwapNativeAttachesFunds(t *testing.T) {
	fc := newFakeClient()
	_, err := run(t, GetTxCmd(), fc, "swap", pairAddr, "uusd", "10000000", "--max-spread", "0.05", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.executed, 1)

	call := fc.executed[0]
	require.Equal(t, pairAddr, call.contract)
	require.Equal(t, "10000000uusd", call.funds.String())
	swap := call.msg.(types.ExecuteMsg).Swap
	require.NotNil(t, swap)
	require.Nil(t, swap.MinOutputAmount)
	require.NotNil(t, swap.MaxSpread)
	require.Equal(t, "0.050000000000000000", swap.MaxSpread.String())
}

func TestSwapTokenUsesSendHook(t *testing.T) {
	fc := newFakeClient()
	_, err := run(t, GetTxCmd(), fc, "swap", pairAddr, tokenAddr, "300", "--min-output", "9", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.executed, 1)

	call := fc.executed[0]
	require.Equal(t, tokenAddr, call.contract)
	require.True(t, call.funds.Empty())
	send := call.msg.(tokentypes.ExecuteMsg).Send
	require.NotNil(t, send)
	require.Equal(t, pairAddr, send.Contract)
	require.Equal(t, "300", send.Amount.String())

	var hook types.HookMsg
	require.NoError(t, hosttypes.JSON.Unmarshal(send.Msg, &hook))
	require.NotNil(t, hook.Swap)
	require.Equal(t, "9", hook.Swap.MinOutputAmount.String())
}

func TestRemoveLiquiditySendsWithdrawHook(t *testing.T) {
	fc := newFakeClient()
	_, err := run(t, GetTxCmd(), fc, "remove-liquidity", pairAddr, "50", "--from", alice)
	require.NoError(t, err)
	require.Len(t, fc.executed, 1)

	call := fc.executed[0]
	require.Equal(t, lpAddr, call.contract)
	send := call.msg.(tokentypes.ExecuteMsg).Send
	require.NotNil(t, send)

	var hook types.HookMsg
	require.NoError(t, hosttypes.JSON.Unmarshal(send.Msg, &hook))
	require.NotNil(t, hook.WithdrawLiquidity)
	require.Nil(t, hook.Swap)

	fc.pairInfo.LiquidityTokenAddress = ""
	_, err = run(t, GetTxCmd(), fc, "remove-liquidity", pairAddr, "50", "--from", alice)
	require.ErrorIs(t, err, types.ErrLiquidityTokenNotReady)
}

func TestQueryCommands(t *testing.T) {
	fc := newFakeClient()
	out, err := run(t, GetQueryCmd(), fc, "pair", pairAddr)
	require.NoError(t, err)
	require.Contains(t, out, lpAddr)

	_, err = run(t, GetQueryCmd(), fc, "simulate", pairAddr, "uusd", "100")
	require.NoError(t, err)
	req := fc.queries[len(fc.queries)-1].(types.QueryMsg)
	require.NotNil(t, req.Simulation)
	require.Equal(t, "uusd", req.Simulation.OfferAsset.Info.Key())

	out, err = run(t, GetQueryCmd(), fc, "pairs")
	require.NoError(t, err)
	require.Contains(t, out, pairAddr)
}

func TestGetQueryCmdStructure(t *testing.T) {
	t.Parallel()

	queryCmd := GetQueryCmd()
	require.Equal(t, "pair", queryCmd.Use)

	names := make(map[string]bool)
	for _, sub := range queryCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"pairs", "pair", "liquidity", "fees", "status", "simulate", "share"} {
		require.True(t, names[expected], "missing query command %s", expected)
	}

	txNames := make(map[string]bool)
	for _, sub := range GetTxCmd().Commands() {
		txNames[sub.Name()] = true
	}
	for _, expected := range []string{"create-pair", "provide-liquidity", "swap", "remove-liquidity"} {
		require.True(t, txNames[expected], "missing tx command %s", expected)
	}
}
