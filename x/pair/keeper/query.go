package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

// Query answers pair, liquidity, fees, status, simulation and share queries.
func (k Keeper) Query(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, bz []byte) ([]byte, error) {
	var msg types.QueryMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode query msg: %v", err)
	}

	var (
		resp any
		err  error
	)
	switch {
	case msg.Pair != nil:
		resp, err = k.queryPair(deps)
	case msg.Liquidity != nil:
		resp, err = k.queryLiquidity(deps)
	case msg.Fees != nil:
		resp, err = k.queryFees(deps)
	case msg.Status != nil:
		resp, err = k.queryStatus(deps)
	case msg.Simulation != nil:
		resp, err = k.querySimulation(deps, msg.Simulation.OfferAsset.Normalized())
	case msg.Share != nil:
		resp, err = k.queryShare(ctx, deps, hosttypes.UintOrZero(msg.Share.Amount))
	default:
		return nil, types.ErrInvalidRequest.Wrap("unknown query variant")
	}
	if err != nil {
		return nil, err
	}

	out, err := hosttypes.JSON.Marshal(resp)
	if err != nil {
		return nil, types.ErrGeneric.Wrapf("encode query response: %v", err)
	}
	return out, nil
}

func (k Keeper) queryPair(deps hosttypes.Deps) (types.PairInfoResponse, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return types.PairInfoResponse{}, err
	}
	return types.PairInfoResponse{
		AssetInfos:            cfg.PairInfo.AssetInfos,
		ContractAddress:       cfg.PairInfo.ContractAddr,
		LiquidityTokenAddress: cfg.PairInfo.LiquidityToken,
	}, nil
}

func (k Keeper) queryLiquidity(deps hosttypes.Deps) (types.LiquidityResponse, error) {
	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return types.LiquidityResponse{}, err
	}
	return types.LiquidityResponse{Reserves: reserves.Slice()}, nil
}

func (k Keeper) queryFees(deps hosttypes.Deps) (types.Fees, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return types.Fees{}, err
	}
	return cfg.Fees, nil
}

func (k Keeper) queryStatus(deps hosttypes.Deps) (types.StatusResponse, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return types.StatusResponse{}, err
	}
	return types.StatusResponse{
		TokenStatus:           cfg.TokenStatus.String(),
		LiquidityTokenAddress: cfg.PairInfo.LiquidityToken,
	}, nil
}

func (k Keeper) querySimulation(deps hosttypes.Deps, offer types.Asset) (types.SimulationResponse, error) {
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	offerReserve, askReserve, _, err := reserves.Side(offer.Info)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	if offerReserve.Amount.IsZero() || askReserve.Amount.IsZero() {
		return types.SimulationResponse{}, types.ErrNoLiquidity
	}
	result, err := ComputeSwap(offer.Amount, offerReserve.Amount, askReserve.Amount, cfg.Fees)
	if err != nil {
		return types.SimulationResponse{}, err
	}
	return types.SimulationResponse{
		AskAsset:    askReserve.Info,
		ProtocolFee: result.ProtocolFee,
		NetInput:    result.NetInput,
		GrossOutput: result.GrossOutput,
		InputFee:    result.InputFee,
		OutputFee:   result.OutputFee,
		NetOutput:   result.NetOutput,
	}, nil
}

func (k Keeper) queryShare(ctx sdk.Context, deps hosttypes.Deps, amount math.Uint) (types.ShareResponse, error) {
	cfg, err := readyConfig(deps)
	if err != nil {
		return types.ShareResponse{}, err
	}
	reserves, err := loadReserves(deps.Storage)
	if err != nil {
		return types.ShareResponse{}, err
	}
	totalSupply, err := queryTotalSupply(ctx, deps, cfg.PairInfo.LiquidityToken)
	if err != nil {
		return types.ShareResponse{}, err
	}
	if totalSupply.IsZero() {
		return types.ShareResponse{Assets: [2]types.Asset{
			types.NewAsset(reserves.ReserveA.Info, math.ZeroUint()),
			types.NewAsset(reserves.ReserveB.Info, math.ZeroUint()),
		}}, nil
	}
	outA, outB, err := ShareOf(amount, totalSupply, reserves)
	if err != nil {
		return types.ShareResponse{}, err
	}
	return types.ShareResponse{Assets: [2]types.Asset{
		types.NewAsset(reserves.ReserveA.Info, outA),
		types.NewAsset(reserves.ReserveB.Info, outB),
	}}, nil
}
