package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	hostclient "github.com/ysip-labs/ysip/x/host/client"
	"github.com/ysip-labs/ysip/x/token/types"
)

var (
	tokenAddr = sdk.AccAddress([]byte("token_______________")).String()
	aliceAddr = sdk.AccAddress([]byte("alice_______________")).String()
	bobAddr   = sdk.AccAddress([]byte("bob_________________")).String()
)

type call struct {
	contract string
	msg      any
	funds    sdk.Coins
}

type fakeClient struct {
	calls        []call
	instantiated []types.InstantiateMsg
	queries      []types.QueryMsg
}

func (f *fakeClient) Instantiate(_ context.Context, _ string, _ uint64, msg any, _ sdk.Coins, _ string) (hostclient.Result, error) {
	f.instantiated = append(f.instantiated, msg.(types.InstantiateMsg))
	return hostclient.Result{Contract: tokenAddr}, nil
}

func (f *fakeClient) Execute(_ context.Context, _, contract string, msg any, funds sdk.Coins) (hostclient.Result, error) {
	f.calls = append(f.calls, call{contract: contract, msg: msg, funds: funds})
	return hostclient.Result{}, nil
}

func (f *fakeClient) Query(_ context.Context, _ string, req, _ any) error {
	f.queries = append(f.queries, req.(types.QueryMsg))
	return nil
}

func (f *fakeClient) Contracts(context.Context, uint64) ([]string, error) {
	return []string{tokenAddr}, nil
}

func (f *fakeClient) ResolveAddress(_ context.Context, nameOrAddr string) (string, error) {
	switch nameOrAddr {
	case "alice":
		return aliceAddr, nil
	case "bob":
		return bobAddr, nil
	case "":
		return "", fmt.Errorf("empty name")
	}
	return nameOrAddr, nil
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

func TestCreate(t *testing.T) {
	fc := &fakeClient{}
	out, err := run(t, GetTxCmd(), fc, "create", "Mirror Token", "MIR", "6",
		"--initial-balance", "alice=1000", "--initial-balance", "bob=500",
		"--minter", "alice", "--cap", "5000", "--from", "alice")
	require.NoError(t, err)
	require.Contains(t, out, tokenAddr)
	require.Len(t, fc.instantiated, 1)

	msg := fc.instantiated[0]
	require.Equal(t, "Mirror Token", msg.Name)
	require.Equal(t, uint8(6), msg.Decimals)
	require.Equal(t, []types.Coin{
		{Address: aliceAddr, Amount: msg.InitialBalances[0].Amount},
		{Address: bobAddr, Amount: msg.InitialBalances[1].Amount},
	}, msg.InitialBalances)
	require.Equal(t, "1000", msg.InitialBalances[0].Amount.String())
	require.Equal(t, aliceAddr, msg.Mint.Minter)
	require.Equal(t, "5000", msg.Mint.Cap.String())
}

func TestCreateValidation(t *testing.T) {
	fc := &fakeClient{}

	_, err := run(t, GetTxCmd(), fc, "create", "Mirror Token", "M1", "6", "--from", "alice")
	require.ErrorIs(t, err, types.ErrInvalidSymbol)

	_, err = run(t, GetTxCmd(), fc, "create", "Mirror Token", "MIR", "six", "--from", "alice")
	require.ErrorContains(t, err, "invalid decimals")

	_, err = run(t, GetTxCmd(), fc, "create", "Mirror Token", "MIR", "6", "--initial-balance", "alice:5", "--from", "alice")
	require.ErrorContains(t, err, "address=amount")

	_, err = run(t, GetTxCmd(), fc, "create", "Mirror Token", "MIR", "6", "--initial-balance", "alice=x", "--from", "alice")
	require.ErrorIs(t, err, types.ErrInvalidRequest)

	require.Empty(t, fc.instantiated)
}

func TestExecuteCommands(t *testing.T) {
	fc := &fakeClient{}

	_, err := run(t, GetTxCmd(), fc, "transfer", tokenAddr, "bob", "10", "--from", "alice")
	require.NoError(t, err)
	_, err = run(t, GetTxCmd(), fc, "increase-allowance", tokenAddr, "bob", "20", "--from", "alice")
	require.NoError(t, err)
	_, err = run(t, GetTxCmd(), fc, "burn-from", tokenAddr, "alice", "5", "--from", "bob")
	require.NoError(t, err)
	_, err = run(t, GetTxCmd(), fc, "send", tokenAddr, bobAddr, "7", `{"swap":{}}`, "--from", "alice")
	require.NoError(t, err)
	require.Len(t, fc.calls, 4)

	for _, c := range fc.calls {
		require.Equal(t, tokenAddr, c.contract)
		require.True(t, c.funds.Empty())
	}

	transfer := fc.calls[0].msg.(types.ExecuteMsg)
	require.Equal(t, "transfer", transfer.Action())
	require.Equal(t, bobAddr, transfer.Transfer.Recipient)
	require.Equal(t, "10", transfer.Transfer.Amount.String())

	allowance := fc.calls[1].msg.(types.ExecuteMsg)
	require.Equal(t, "increase_allowance", allowance.Action())
	require.Equal(t, bobAddr, allowance.IncreaseAllowance.Spender)

	burnFrom := fc.calls[2].msg.(types.ExecuteMsg)
	require.Equal(t, aliceAddr, burnFrom.BurnFrom.Owner)

	send := fc.calls[3].msg.(types.ExecuteMsg)
	require.Equal(t, `{"swap":{}}`, string(send.Send.Msg))

	_, err = run(t, GetTxCmd(), fc, "mint", tokenAddr, "bob", "nope", "--from", "alice")
	require.ErrorIs(t, err, types.ErrInvalidRequest)
	_, err = run(t, GetTxCmd(), fc, "burn", tokenAddr, "3")
	require.ErrorContains(t, err, "--from is required")
	require.Len(t, fc.calls, 4)
}

func TestQueryCommands(t *testing.T) {
	fc := &fakeClient{}

	_, err := run(t, GetQueryCmd(), fc, "balance", tokenAddr, "alice")
	require.NoError(t, err)
	_, err = run(t, GetQueryCmd(), fc, "allowance", tokenAddr, "alice", "bob")
	require.NoError(t, err)
	_, err = run(t, GetQueryCmd(), fc, "minter", tokenAddr)
	require.NoError(t, err)
	require.Len(t, fc.queries, 3)

	require.Equal(t, aliceAddr, fc.queries[0].Balance.Address)
	require.Equal(t, aliceAddr, fc.queries[1].Allowance.Owner)
	require.Equal(t, bobAddr, fc.queries[1].Allowance.Spender)
	require.NotNil(t, fc.queries[2].Minter)

	out, err := run(t, GetQueryCmd(), fc, "tokens")
	require.NoError(t, err)
	require.Contains(t, out, tokenAddr)
}
