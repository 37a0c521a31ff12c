package keeper

import (
	"errors"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

var (
	_ hosttypes.Contract = Keeper{}
	_ hosttypes.Replier  = Keeper{}
)

// Keeper implements the constant-product pair contract. All pool state lives
// in the contract storage handed over in Deps.
type Keeper struct {
	metrics *PairMetrics
}

// NewKeeper returns the pair contract.
func NewKeeper() Keeper {
	return Keeper{metrics: NewPairMetrics()}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("contract/%s", types.ModuleName))
}

// Execute dispatches a pair operation.
func (k Keeper) Execute(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, bz []byte) (*hosttypes.Response, error) {
	var msg types.ExecuteMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode execute msg: %v", err)
	}

	var (
		res *hosttypes.Response
		err error
		op  string
	)
	switch {
	case msg.Receive != nil:
		op = "receive"
		res, err = k.Receive(ctx, deps, env, info, *msg.Receive)
	case msg.ProvideLiquidity != nil:
		op = types.ActionProvideLiquidity
		res, err = k.ProvideLiquidity(ctx, deps, env, info, *msg.ProvideLiquidity)
	case msg.Swap != nil:
		op = types.ActionSwap
		res, err = k.Swap(ctx, deps, env, info, *msg.Swap)
	case msg.RemoveLiquidity != nil:
		op = types.ActionRemoveLiquidity
		res, err = k.RemoveLiquidity(ctx, deps, env, info, hosttypes.UintOrZero(msg.RemoveLiquidity.Amount))
	default:
		return nil, types.ErrInvalidRequest.Wrap("unknown execute variant")
	}
	if err != nil {
		k.metrics.OperationErrors.WithLabelValues(op, errorLabel(err)).Inc()
		return nil, err
	}
	return res, nil
}

// errorLabel returns the registered error message, keeping label cardinality bounded.
func errorLabel(err error) string {
	for _, sentinel := range []error{
		types.ErrAssetMismatch, types.ErrNoLiquidity, types.ErrSlippageExceeded,
		types.ErrInvalidZeroAmount, types.ErrInsufficientSecondAsset, types.ErrInsufficientBalance,
		types.ErrNativeTokenMismatch, types.ErrArithmetic, types.ErrUnauthorized,
		types.ErrLiquidityTokenNotReady, types.ErrInvalidAsset, types.ErrInvalidRequest,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "other"
}

func (k Keeper) recordReserves(pair string, reserves types.Reserves) {
	for _, r := range reserves.Slice() {
		f, _ := math.LegacyNewDecFromBigInt(r.Amount.BigInt()).Float64()
		k.metrics.PoolReserves.WithLabelValues(pair, r.Info.Key()).Set(f)
	}
}

// readyConfig loads the config and requires a provisioned liquidity token.
func readyConfig(deps hosttypes.Deps) (types.Config, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return cfg, err
	}
	if cfg.TokenStatus != types.TokenStatusSet {
		return cfg, types.ErrLiquidityTokenNotReady.Wrapf("token status is %s", cfg.TokenStatus)
	}
	return cfg, nil
}
