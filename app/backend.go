package app

import (
	"context"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
)

// ReadBackend serves queries against the committed state of an App to
// concurrent readers.
type ReadBackend struct {
	mu  sync.Mutex
	app *App
}

// NewReadBackend wraps a.
func NewReadBackend(a *App) *ReadBackend {
	return &ReadBackend{app: a}
}

// ChainID returns the chain id of the app.
func (b *ReadBackend) ChainID() string {
	return b.app.ChainID()
}

// Height returns the last committed height.
func (b *ReadBackend) Height() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.app.LastBlockHeight()
}

// Pairs returns the info of every pair contract.
func (b *ReadBackend) Pairs(_ context.Context) ([]pairtypes.PairInfoResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := b.app.NewContext()
	addrs := b.app.ContractKeeper.PairContracts(ctx)
	pairs := make([]pairtypes.PairInfoResponse, 0, len(addrs))
	for _, addr := range addrs {
		var info pairtypes.PairInfoResponse
		if err := b.app.QueryContract(ctx, addr, pairtypes.NewPairQuery(), &info); err != nil {
			return nil, err
		}
		pairs = append(pairs, info)
	}
	return pairs, nil
}

// QueryContract runs a smart query.
func (b *ReadBackend) QueryContract(_ context.Context, contract string, req, resp any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.app.QueryContract(b.app.NewContext(), contract, req, resp)
}

// Balances returns the native balances of addr.
func (b *ReadBackend) Balances(_ context.Context, addr string) (sdk.Coins, error) {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.app.BankKeeper.GetAllBalances(b.app.NewContext(), acc), nil
}
