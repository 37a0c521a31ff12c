package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

// TxResult is the outcome of a successful transaction.
type TxResult struct {
	Data   []byte
	Events sdk.Events
}

// RunTx runs fn in a cache of ctx and writes the cache back only when fn
// succeeds, so a failure anywhere in the call tree leaves no trace.
func (app *App) RunTx(ctx sdk.Context, fn func(ctx sdk.Context) ([]byte, error)) (TxResult, error) {
	cacheCtx, write := ctx.CacheContext()
	data, err := fn(cacheCtx)
	if err != nil {
		app.logger.Debug("transaction failed", "height", ctx.BlockHeight(), "error", err)
		return TxResult{}, err
	}
	events := cacheCtx.EventManager().Events()
	write()
	return TxResult{Data: data, Events: events}, nil
}

// InstantiateContract creates a contract in its own transaction and returns
// its address.
func (app *App) InstantiateContract(ctx sdk.Context, codeID uint64, creator sdk.AccAddress, msg any, funds sdk.Coins, label string) (string, TxResult, error) {
	bz, err := hosttypes.JSON.Marshal(msg)
	if err != nil {
		return "", TxResult{}, hosttypes.ErrInvalidMsg.Wrap(err.Error())
	}

	var contractAddr string
	res, err := app.RunTx(ctx, func(ctx sdk.Context) ([]byte, error) {
		addr, data, err := app.ContractKeeper.Instantiate(ctx, codeID, creator, creator.String(), bz, funds, label)
		contractAddr = addr
		return data, err
	})
	if err != nil {
		return "", TxResult{}, err
	}
	return contractAddr, res, nil
}

// ExecuteContract calls a contract in its own transaction.
func (app *App) ExecuteContract(ctx sdk.Context, contractAddr string, sender sdk.AccAddress, msg any, funds sdk.Coins) (TxResult, error) {
	bz, err := hosttypes.JSON.Marshal(msg)
	if err != nil {
		return TxResult{}, hosttypes.ErrInvalidMsg.Wrap(err.Error())
	}
	return app.RunTx(ctx, func(ctx sdk.Context) ([]byte, error) {
		return app.ContractKeeper.Execute(ctx, contractAddr, sender, bz, funds)
	})
}

// QueryContract runs a smart query and decodes the answer into resp.
func (app *App) QueryContract(ctx sdk.Context, contractAddr string, req, resp any) error {
	return hosttypes.QuerySmart(ctx, querier{k: app.ContractKeeper}, contractAddr, req, resp)
}

// SendCoins moves native coins between accounts in its own transaction.
func (app *App) SendCoins(ctx sdk.Context, from, to sdk.AccAddress, coins sdk.Coins) (TxResult, error) {
	return app.RunTx(ctx, func(ctx sdk.Context) ([]byte, error) {
		return nil, app.BankKeeper.SendCoins(ctx, from, to, coins)
	})
}

// FundAccount mints coins through the faucet module account and sends them
// to addr.
func (app *App) FundAccount(ctx sdk.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	_, err := app.RunTx(ctx, func(ctx sdk.Context) ([]byte, error) {
		if err := app.BankKeeper.MintCoins(ctx, FaucetModuleName, coins); err != nil {
			return nil, err
		}
		return nil, app.BankKeeper.SendCoinsFromModuleToAccount(ctx, FaucetModuleName, addr, coins)
	})
	return err
}
