package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ysip-labs/ysip/app"
	hostclient "github.com/ysip-labs/ysip/x/host/client"
	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

// GenesisDoc is the content of <home>/config/genesis.json.
type GenesisDoc struct {
	ChainID     string           `json:"chain_id"`
	GenesisTime time.Time        `json:"genesis_time"`
	AppState    app.GenesisState `json:"app_state"`
}

// GenesisPath returns the path of genesis.json under home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// DataDir returns the application database directory under home.
func DataDir(home string) string {
	return filepath.Join(home, "data")
}

// ReadGenesis loads genesis.json under home.
func ReadGenesis(home string) (GenesisDoc, error) {
	bz, err := os.ReadFile(GenesisPath(home))
	if err != nil {
		return GenesisDoc{}, fmt.Errorf("read genesis: %w", err)
	}
	var doc GenesisDoc
	if err := hosttypes.JSON.Unmarshal(bz, &doc); err != nil {
		return GenesisDoc{}, fmt.Errorf("decode genesis: %w", err)
	}
	return doc, nil
}

// WriteGenesis stores doc as genesis.json under home.
func WriteGenesis(home string, doc GenesisDoc) error {
	bz, err := hosttypes.JSON.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(GenesisPath(home)), 0o755); err != nil {
		return err
	}
	return os.WriteFile(GenesisPath(home), bz, 0o644)
}

// localNode runs transactions against the application database in home. Each
// call opens the database, commits on success and closes it again.
type localNode struct {
	home           string
	config         Config
	logger         log.Logger
	keyringBackend string
	input          io.Reader
}

var _ hostclient.ContractClient = (*localNode)(nil)

// openApp opens the application and loads genesis on first use.
func (n *localNode) openApp() (*app.App, error) {
	db, err := dbm.NewDB("application", dbm.GoLevelDBBackend, DataDir(n.home))
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	a, err := app.New(n.logger, db, n.config.ChainID)
	if err != nil {
		db.Close()
		return nil, err
	}
	if a.LastBlockHeight() > 0 {
		return a, nil
	}

	doc, err := ReadGenesis(n.home)
	if err != nil {
		a.Close()
		return nil, err
	}
	if doc.ChainID != n.config.ChainID {
		a.Close()
		return nil, fmt.Errorf("genesis chain id %q does not match configured chain id %q", doc.ChainID, n.config.ChainID)
	}
	if err := a.InitChain(doc.AppState); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// withApp runs fn on an open application and closes it afterwards.
func (n *localNode) withApp(fn func(a *app.App) error) (err error) {
	a, err := n.openApp()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

// commitTx runs fn at the next height and commits when it succeeds.
func (n *localNode) commitTx(fn func(a *app.App, ctx sdk.Context) (string, app.TxResult, error)) (hostclient.Result, error) {
	var res hostclient.Result
	err := n.withApp(func(a *app.App) error {
		ctx := a.NewContext()
		contract, txRes, err := fn(a, ctx)
		if err != nil {
			return err
		}
		id := a.Commit()
		res = hostclient.NewResult(contract, id.Version, txRes.Events)
		return nil
	})
	return res, err
}

func (n *localNode) keyring() (keyring.Keyring, error) {
	cdc := app.MakeEncodingConfig().Codec
	return keyring.New(app.Name, n.keyringBackend, n.home, n.input, cdc)
}

// ResolveAddress accepts a bech32 address or the name of a key.
func (n *localNode) ResolveAddress(_ context.Context, nameOrAddr string) (string, error) {
	if nameOrAddr == "" {
		return "", errors.New("empty address or key name")
	}
	if _, err := sdk.AccAddressFromBech32(nameOrAddr); err == nil {
		return nameOrAddr, nil
	}
	kr, err := n.keyring()
	if err != nil {
		return "", err
	}
	record, err := kr.Key(nameOrAddr)
	if err != nil {
		return "", fmt.Errorf("%q is neither an address nor a known key: %w", nameOrAddr, err)
	}
	addr, err := record.GetAddress()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

func (n *localNode) sender(ctx context.Context, from string) (sdk.AccAddress, error) {
	addr, err := n.ResolveAddress(ctx, from)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddressFromBech32(addr)
}

// Instantiate creates a contract and commits.
func (n *localNode) Instantiate(ctx context.Context, from string, codeID uint64, msg any, funds sdk.Coins, label string) (hostclient.Result, error) {
	sender, err := n.sender(ctx, from)
	if err != nil {
		return hostclient.Result{}, err
	}
	return n.commitTx(func(a *app.App, sdkCtx sdk.Context) (string, app.TxResult, error) {
		return a.InstantiateContract(sdkCtx, codeID, sender, msg, funds, label)
	})
}

// Execute calls a contract and commits.
func (n *localNode) Execute(ctx context.Context, from, contract string, msg any, funds sdk.Coins) (hostclient.Result, error) {
	sender, err := n.sender(ctx, from)
	if err != nil {
		return hostclient.Result{}, err
	}
	return n.commitTx(func(a *app.App, sdkCtx sdk.Context) (string, app.TxResult, error) {
		res, err := a.ExecuteContract(sdkCtx, contract, sender, msg, funds)
		return contract, res, err
	})
}

// SendCoins moves native coins and commits.
func (n *localNode) SendCoins(ctx context.Context, from, to string, coins sdk.Coins) (hostclient.Result, error) {
	sender, err := n.sender(ctx, from)
	if err != nil {
		return hostclient.Result{}, err
	}
	recipient, err := n.sender(ctx, to)
	if err != nil {
		return hostclient.Result{}, err
	}
	return n.commitTx(func(a *app.App, sdkCtx sdk.Context) (string, app.TxResult, error) {
		res, err := a.SendCoins(sdkCtx, sender, recipient, coins)
		return "", res, err
	})
}

// Query runs a smart query against the committed state.
func (n *localNode) Query(_ context.Context, contract string, req, resp any) error {
	return n.withApp(func(a *app.App) error {
		return a.QueryContract(a.NewContext(), contract, req, resp)
	})
}

// Contracts lists contract addresses of a code, or all when codeID is 0.
func (n *localNode) Contracts(_ context.Context, codeID uint64) ([]string, error) {
	var out []string
	err := n.withApp(func(a *app.App) error {
		for _, info := range a.ContractKeeper.ListContracts(a.NewContext(), codeID) {
			out = append(out, info.Address)
		}
		return nil
	})
	return out, err
}

// ContractInfo returns the stored metadata of a contract.
func (n *localNode) ContractInfo(contract string) (app.ContractInfo, error) {
	var info app.ContractInfo
	err := n.withApp(func(a *app.App) error {
		var err error
		info, err = a.ContractKeeper.GetContractInfo(a.NewContext(), contract)
		return err
	})
	return info, err
}

// Balances returns the native balances of addr.
func (n *localNode) Balances(addr string) (sdk.Coins, error) {
	var coins sdk.Coins
	err := n.withApp(func(a *app.App) error {
		var err error
		coins, err = app.NewReadBackend(a).Balances(context.Background(), addr)
		return err
	})
	return coins, err
}
