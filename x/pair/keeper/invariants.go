package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

// PairRegistry gives invariants access to every instantiated pair.
type PairRegistry interface {
	PairContracts(ctx sdk.Context) []string
	ContractDeps(ctx sdk.Context, contractAddr string) (hosttypes.Deps, error)
}

// RegisterInvariants registers all pair invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper, registry PairRegistry) {
	ir.RegisterRoute(types.ModuleName, "reserves-backed", ReservesBackedInvariant(k, registry))
	ir.RegisterRoute(types.ModuleName, "empty-pool", EmptyPoolInvariant(k, registry))
}

// AllInvariants runs all invariants of the pair contract
func AllInvariants(k Keeper, registry PairRegistry) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesBackedInvariant(k, registry)(ctx)
		if stop {
			return res, stop
		}
		return EmptyPoolInvariant(k, registry)(ctx)
	}
}

// ReservesBackedInvariant checks that every reserve is covered by what the
// pair actually holds of that asset.
func ReservesBackedInvariant(k Keeper, registry PairRegistry) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pair := range registry.PairContracts(ctx) {
			deps, err := registry.ContractDeps(ctx, pair)
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: %v\n", pair, err)
				continue
			}
			reserves, err := loadReserves(deps.Storage)
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: %v\n", pair, err)
				continue
			}
			for _, reserve := range reserves.Slice() {
				held, err := k.Holding(ctx, deps, pair, reserve.Info)
				if err != nil {
					count++
					msg += fmt.Sprintf("pair %s: %v\n", pair, err)
					continue
				}
				if held.LT(reserve.Amount) {
					count++
					msg += fmt.Sprintf("pair %s: holding of %s (%s) < reserve (%s)\n",
						pair, reserve.Info, held, reserve.Amount)
				}
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserves-backed",
			fmt.Sprintf("found %d reserves not backed by holdings\n%s", count, msg),
		), broken
	}
}

// EmptyPoolInvariant checks that a pair with no liquidity tokens outstanding
// holds no reserves.
func EmptyPoolInvariant(k Keeper, registry PairRegistry) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pair := range registry.PairContracts(ctx) {
			deps, err := registry.ContractDeps(ctx, pair)
			if err != nil {
				continue
			}
			cfg, err := loadConfig(deps.Storage)
			if err != nil || cfg.TokenStatus != types.TokenStatusSet {
				continue
			}
			supply, err := queryTotalSupply(ctx, deps, cfg.PairInfo.LiquidityToken)
			if err != nil || !supply.IsZero() {
				continue
			}
			reserves, err := loadReserves(deps.Storage)
			if err != nil {
				continue
			}
			if !reserves.ReserveA.Amount.IsZero() || !reserves.ReserveB.Amount.IsZero() {
				count++
				msg += fmt.Sprintf("pair %s: zero supply with reserves %s, %s\n",
					pair, reserves.ReserveA, reserves.ReserveB)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "empty-pool",
			fmt.Sprintf("found %d empty pools holding reserves\n%s", count, msg),
		), broken
	}
}

// Holding returns what holder owns of an asset: a bank balance for native
// assets, a token balance for issued ones.
func (k Keeper) Holding(ctx sdk.Context, deps hosttypes.Deps, holder string, info types.AssetInfo) (math.Uint, error) {
	switch info.Kind() {
	case types.AssetKindNative:
		coin, err := deps.Querier.QueryBalance(ctx, holder, info.NativeToken.Denom)
		if err != nil {
			return math.Uint{}, err
		}
		return math.NewUintFromBigInt(coin.Amount.BigInt()), nil
	case types.AssetKindToken:
		return queryTokenBalance(ctx, deps, info.Token.ContractAddr, holder)
	default:
		return math.Uint{}, types.ErrInvalidAsset
	}
}
