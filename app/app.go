// Package app provides the ysip host application.
//
// The App owns the committed multistore and the native modules (auth and
// bank) and runs the contract runtime that executes the pair and token
// contracts. Every transaction runs in a cache context that is written back
// only when the whole call tree succeeds.
package app

import (
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	pairkeeper "github.com/ysip-labs/ysip/x/pair/keeper"
	tokenkeeper "github.com/ysip-labs/ysip/x/token/keeper"
)

const (
	Name = "ysip"

	// FaucetModuleName is the module account that mints native funds for
	// genesis and devnet accounts.
	FaucetModuleName = "faucet"

	// TokenCodeID and PairCodeID are the codes registered at startup.
	TokenCodeID uint64 = 1
	PairCodeID  uint64 = 2
)

// DefaultNodeHome is the default home directory for the application daemon.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".ysip")
}

// App holds the stores, the native keepers and the contract runtime.
type App struct {
	logger  log.Logger
	chainID string
	db      dbm.DB
	cms     storetypes.CommitMultiStore

	appCodec          codec.Codec
	interfaceRegistry types.InterfaceRegistry
	addressCodec      address.Codec

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// keepers
	AccountKeeper  authkeeper.AccountKeeper
	BankKeeper     bankkeeper.BaseKeeper
	ContractKeeper *ContractKeeper

	PairKeeper  pairkeeper.Keeper
	TokenKeeper tokenkeeper.Keeper

	// blockTime overrides the wall clock for new contexts when set
	blockTime time.Time
}

// New returns an App over db with every store mounted and the latest version
// loaded.
func New(logger log.Logger, db dbm.DB, chainID string) (*App, error) {
	SetConfig()

	encodingConfig := MakeEncodingConfig()
	appCodec := encodingConfig.Codec

	keys := storetypes.NewKVStoreKeys(authtypes.StoreKey, banktypes.StoreKey, WasmStoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, err
	}

	app := &App{
		logger:            logger,
		chainID:           chainID,
		db:                db,
		cms:               cms,
		appCodec:          appCodec,
		interfaceRegistry: encodingConfig.InterfaceRegistry,
		addressCodec:      addresscodec.NewBech32Codec(Bech32PrefixAccAddr),
		keys:              keys,
	}

	authority := authtypes.NewModuleAddress(FaucetModuleName).String()
	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec, runtime.NewKVStoreService(keys[authtypes.StoreKey]), authtypes.ProtoBaseAccount, maccPerms, app.addressCodec, Bech32PrefixAccAddr, authority,
	)
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec, runtime.NewKVStoreService(keys[banktypes.StoreKey]), app.AccountKeeper, BlockedModuleAccountAddrs(), authority, logger,
	)

	app.TokenKeeper = tokenkeeper.NewKeeper()
	app.PairKeeper = pairkeeper.NewKeeper()

	app.ContractKeeper = NewContractKeeper(keys[WasmStoreKey], app.BankKeeper, app.addressCodec, logger)
	app.ContractKeeper.RegisterCode(TokenCodeID, "token", app.TokenKeeper)
	app.ContractKeeper.RegisterCode(PairCodeID, "pair", app.PairKeeper)

	return app, nil
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger { return app.logger }

// ChainID returns the chain id new contexts are built with.
func (app *App) ChainID() string { return app.chainID }

// AppCodec returns the app codec.
func (app *App) AppCodec() codec.Codec { return app.appCodec }

// AddressCodec returns the account address codec.
func (app *App) AddressCodec() address.Codec { return app.addressCodec }

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight returns the height of the last committed version.
func (app *App) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// SetBlockTime fixes the block time of future contexts.
func (app *App) SetBlockTime(t time.Time) {
	app.blockTime = t
}

// NewContext returns a context over the working state at the next height.
func (app *App) NewContext() sdk.Context {
	blockTime := app.blockTime
	if blockTime.IsZero() {
		blockTime = time.Now().UTC()
	}
	header := cmtproto.Header{
		ChainID: app.chainID,
		Height:  app.LastBlockHeight() + 1,
		Time:    blockTime,
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists the working state and returns the new version.
func (app *App) Commit() storetypes.CommitID {
	id := app.cms.Commit()
	app.logger.Debug("committed state", "height", id.Version, "hash", id.String())
	return id
}

// Close releases the database.
func (app *App) Close() error {
	return app.db.Close()
}

// GetMaccPerms returns a copy of the module account permissions
func GetMaccPerms() map[string][]string {
	dupMaccPerms := make(map[string][]string)
	for k, v := range maccPerms {
		dupMaccPerms[k] = v
	}
	return dupMaccPerms
}

// BlockedModuleAccountAddrs returns all the app's blocked module account
// addresses.
func BlockedModuleAccountAddrs() map[string]bool {
	modAccAddrs := make(map[string]bool)
	for acc := range GetMaccPerms() {
		modAccAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	return modAccAddrs
}

// module account permissions
var maccPerms = map[string][]string{
	authtypes.FeeCollectorName: nil,
	FaucetModuleName:           {authtypes.Minter, authtypes.Burner},
}
