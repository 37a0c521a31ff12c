package app

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// GenesisState represents the genesis state of the host: a map from module
// name to module genesis state.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns auth and bank defaults with sends enabled.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	genesis := make(GenesisState)

	authGenesis := authtypes.DefaultGenesisState()
	genesis[authtypes.ModuleName] = cdc.MustMarshalJSON(authGenesis)

	bankGenesis := banktypes.DefaultGenesisState()
	bankGenesis.Params = banktypes.Params{
		SendEnabled:        []*banktypes.SendEnabled{},
		DefaultSendEnabled: true,
	}
	genesis[banktypes.ModuleName] = cdc.MustMarshalJSON(bankGenesis)

	return genesis
}

// AddGenesisBalance credits coins to addr in the bank genesis and keeps the
// recorded supply consistent.
func AddGenesisBalance(cdc codec.JSONCodec, genesis GenesisState, addr string, coins sdk.Coins) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return fmt.Errorf("invalid address %s: %w", addr, err)
	}
	if !coins.IsValid() || coins.Empty() {
		return fmt.Errorf("invalid coins %s", coins)
	}

	var bankGenesis banktypes.GenesisState
	if err := cdc.UnmarshalJSON(genesis[banktypes.ModuleName], &bankGenesis); err != nil {
		return fmt.Errorf("decode bank genesis: %w", err)
	}

	found := false
	for i, b := range bankGenesis.Balances {
		if b.Address == addr {
			bankGenesis.Balances[i].Coins = b.Coins.Add(coins...)
			found = true
			break
		}
	}
	if !found {
		bankGenesis.Balances = append(bankGenesis.Balances, banktypes.Balance{Address: addr, Coins: coins})
	}
	bankGenesis.Supply = bankGenesis.Supply.Add(coins...)

	bz, err := cdc.MarshalJSON(&bankGenesis)
	if err != nil {
		return fmt.Errorf("encode bank genesis: %w", err)
	}
	genesis[banktypes.ModuleName] = bz
	return nil
}

// InitChain loads genesis into an empty state and commits height 1.
func (app *App) InitChain(genesis GenesisState) error {
	if app.LastBlockHeight() != 0 {
		return fmt.Errorf("state already initialized at height %d", app.LastBlockHeight())
	}
	ctx := app.NewContext()

	var authGenesis authtypes.GenesisState
	if err := app.appCodec.UnmarshalJSON(genesis[authtypes.ModuleName], &authGenesis); err != nil {
		return fmt.Errorf("decode auth genesis: %w", err)
	}
	if err := authtypes.ValidateGenesis(authGenesis); err != nil {
		return err
	}
	app.AccountKeeper.InitGenesis(ctx, authGenesis)

	var bankGenesis banktypes.GenesisState
	if err := app.appCodec.UnmarshalJSON(genesis[banktypes.ModuleName], &bankGenesis); err != nil {
		return fmt.Errorf("decode bank genesis: %w", err)
	}
	if err := bankGenesis.Validate(); err != nil {
		return err
	}
	app.BankKeeper.InitGenesis(ctx, &bankGenesis)

	id := app.Commit()
	app.logger.Info("initialized chain", "chain_id", app.chainID, "height", id.Version)
	return nil
}
