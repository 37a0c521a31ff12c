package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysip-labs/ysip/app"
	keepertest "github.com/ysip-labs/ysip/testutil/keeper"
	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

type testEnv struct {
	server *Server
	alice  sdk.AccAddress
	mir    string
	pair   pairtypes.PairInfoResponse
}

// setupTestServer builds an app with a funded uusd/MIR pair and a server over it.
func setupTestServer(t *testing.T, config *Config) testEnv {
	t.Helper()

	a, ctx := keepertest.SetupTestApp(t)
	alice := keepertest.TestAddr("alice")
	require.NoError(t, a.FundAccount(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("uusd", 1_000_000_000))))

	mir := keepertest.CreateToken(t, a, ctx, alice, "MIR", map[string]uint64{alice.String(): 10_000_000_000})
	pair := keepertest.CreatePair(t, a, ctx, alice, pairtypes.AssetInfos{
		pairtypes.NewNativeAssetInfo("uusd"),
		pairtypes.NewTokenAssetInfo(mir),
	}, keepertest.PairOptions{
		ProtocolFeeRecipient: keepertest.TestAddr("fee_recipient"),
		ProtocolFeeRate:      math.LegacyMustNewDecFromStr("0.3"),
		LpFeeRate:            math.LegacyZeroDec(),
	})

	keepertest.IncreaseAllowance(t, a, ctx, mir, alice, pair.ContractAddress, 3_000_000_000)
	_, err := a.ExecuteContract(ctx, pair.ContractAddress, alice, pairtypes.ExecuteMsg{
		ProvideLiquidity: &pairtypes.ProvideLiquidityMsg{Assets: [2]pairtypes.Asset{
			pairtypes.NewAsset(pairtypes.NewNativeAssetInfo("uusd"), math.NewUint(100_000_000)),
			pairtypes.NewAsset(pairtypes.NewTokenAssetInfo(mir), math.NewUint(3_000_000_000)),
		}},
	}, sdk.NewCoins(sdk.NewInt64Coin("uusd", 100_000_000)))
	require.NoError(t, err)
	a.Commit()

	if config == nil {
		config = DefaultConfig()
		config.CORSOrigins = []string{"http://localhost:3000"}
		config.RateLimitRPS = 1000
		config.RateLimitBurst = 1000
	}
	return testEnv{
		server: NewServer(app.NewReadBackend(a), config, log.NewNopLogger()),
		alice:  alice,
		mir:    mir,
		pair:   pair,
	}
}

func (e testEnv) get(t *testing.T, path string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, keepertest.TestChainID, resp.ChainID)
	assert.Equal(t, int64(2), resp.Height)
}

func TestGetPairs(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/api/pairs")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pairs []pairtypes.PairInfoResponse `json:"pairs"`
		Total int                          `json:"total"`
	}
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, env.pair.ContractAddress, resp.Pairs[0].ContractAddress)
	require.Equal(t, env.pair.LiquidityTokenAddress, resp.Pairs[0].LiquidityTokenAddress)

	w = env.get(t, "/api/pairs/"+env.pair.ContractAddress+"/liquidity")
	require.Equal(t, http.StatusOK, w.Code)
	var liquidity pairtypes.LiquidityResponse
	decode(t, w, &liquidity)
	require.Equal(t, "100000000", liquidity.Reserves[0].Amount.String())
	require.Equal(t, "3000000000", liquidity.Reserves[1].Amount.String())

	w = env.get(t, "/api/pairs/"+env.pair.ContractAddress+"/status")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), env.pair.LiquidityTokenAddress)
}

func TestSimulate(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/api/pairs/"+env.pair.ContractAddress+"/simulate?offer=uusd&amount=10000000")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp pairtypes.SimulationResponse
	decode(t, w, &resp)
	require.Equal(t, "271983269", resp.NetOutput.String())
	require.Equal(t, "30000", resp.ProtocolFee.String())
	require.Equal(t, env.mir, resp.AskAsset.Key())
}

func TestSimulateErrors(t *testing.T) {
	env := setupTestServer(t, nil)
	base := "/api/pairs/" + env.pair.ContractAddress + "/simulate"

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing amount", "?offer=uusd", http.StatusBadRequest, "INVALID_REQUEST"},
		{"zero amount", "?offer=uusd&amount=0", http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad offer", "?offer=1bad&amount=5", http.StatusBadRequest, "INVALID_REQUEST"},
		{"asset not traded", "?offer=uluna&amount=5", http.StatusBadRequest, "pair/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.get(t, base+tc.query)
			require.Equal(t, tc.status, w.Code, w.Body.String())

			var resp ErrorResponse
			decode(t, w, &resp)
			require.True(t, strings.HasPrefix(resp.Code, tc.code), resp.Code)
		})
	}
}

func TestUnknownContract(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/api/pairs/"+keepertest.TestAddr("nobody").String())
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.get(t, "/api/pairs/not-an-address")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBalances(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/api/tokens/"+env.mir+"/balances/"+env.alice.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokenBalance TokenBalanceResponse
	decode(t, w, &tokenBalance)
	require.Equal(t, "7000000000", tokenBalance.Balance)

	w = env.get(t, "/api/tokens/"+env.mir)
	require.Equal(t, http.StatusOK, w.Code)
	var info tokentypes.TokenInfoResponse
	decode(t, w, &info)
	require.Equal(t, "MIR", info.Symbol)

	w = env.get(t, "/api/accounts/"+env.alice.String()+"/balances")
	require.Equal(t, http.StatusOK, w.Code)
	var native AccountBalancesResponse
	decode(t, w, &native)
	require.Equal(t, "900000000uusd", native.Balances.String())
}

func TestRequestID(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/health")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	id := uuid.NewString()
	w = env.get(t, "/health", RequestIDHeader, id)
	require.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = env.get(t, "/health", RequestIDHeader, "not-a-uuid")
	require.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	config := DefaultConfig()
	config.RateLimitRPS = 0.001
	config.RateLimitBurst = 2
	env := setupTestServer(t, config)

	require.Equal(t, http.StatusOK, env.get(t, "/health").Code)
	require.Equal(t, http.StatusOK, env.get(t, "/health").Code)

	w := env.get(t, "/health")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	require.Equal(t, "RATE_LIMIT", resp.Code)
}

func TestCORS(t *testing.T) {
	env := setupTestServer(t, nil)

	w := env.get(t, "/health", "Origin", "http://localhost:3000")
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = env.get(t, "/health", "Origin", "http://evil.example")
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t, nil)

	require.Equal(t, http.StatusOK, env.get(t, "/health").Code)

	w := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "ysip_api_requests_total")
}

func TestValidateAmount(t *testing.T) {
	_, err := ValidateAmount("")
	require.Error(t, err)
	_, err = ValidateAmount("1.5")
	require.Error(t, err)
	_, err = ValidateAmount(strings.Repeat("9", MaxAmountLength+1))
	require.Error(t, err)
	v, err := ValidateAmount("12")
	require.NoError(t, err)
	require.Equal(t, "12", v.String())
}
