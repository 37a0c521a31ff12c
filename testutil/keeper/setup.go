package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ysip-labs/ysip/app"
)

// TestChainID is the chain id of test applications.
const TestChainID = "ysip-test-1"

// SetupTestApp initializes an in-memory application with genesis loaded and
// returns a context at the next height.
func SetupTestApp(t testing.TB) (*app.App, sdk.Context) {
	t.Helper()

	testApp, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), TestChainID)
	require.NoError(t, err)
	testApp.SetBlockTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, testApp.InitChain(app.NewDefaultGenesisState(testApp.AppCodec())))

	return testApp, testApp.NewContext()
}

// TestAddr returns a deterministic account address derived from seed.
func TestAddr(seed string) sdk.AccAddress {
	app.SetConfig()
	bz := make([]byte, 20)
	copy(bz, seed)
	return sdk.AccAddress(bz)
}
