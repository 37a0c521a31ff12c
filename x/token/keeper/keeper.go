package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/token/types"
)

var (
	_ hosttypes.Contract = Keeper{}
)

// Keeper implements the fungible token contract. It carries no instance state;
// every call works on the storage handed over in Deps.
type Keeper struct {
	metrics *TokenMetrics
}

// NewKeeper returns the token contract.
func NewKeeper() Keeper {
	return Keeper{metrics: NewTokenMetrics()}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("contract/%s", types.ModuleName))
}

// Instantiate stores token metadata, initial balances and the minter.
func (k Keeper) Instantiate(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, bz []byte) (*hosttypes.Response, error) {
	var msg types.InstantiateMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode instantiate msg: %v", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	store := newTokenStore(deps.Storage)
	supply := math.ZeroUint()
	seen := make(map[string]struct{}, len(msg.InitialBalances))
	for _, c := range msg.InitialBalances {
		if err := deps.ValidateAddress(c.Address); err != nil {
			return nil, types.ErrInvalidAddress.Wrap(err.Error())
		}
		if _, dup := seen[c.Address]; dup {
			return nil, types.ErrDuplicateBalance.Wrap(c.Address)
		}
		seen[c.Address] = struct{}{}
		amt := hosttypes.UintOrZero(c.Amount)
		store.setBalance(c.Address, amt)
		supply = supply.Add(amt)
	}

	if msg.Mint != nil {
		if err := deps.ValidateAddress(msg.Mint.Minter); err != nil {
			return nil, types.ErrInvalidAddress.Wrap(err.Error())
		}
		if msg.Mint.Cap != nil && supply.GT(*msg.Mint.Cap) {
			return nil, types.ErrCannotExceedCap.Wrapf("initial supply %s exceeds cap %s", supply, msg.Mint.Cap)
		}
		if err := store.setMinter(*msg.Mint); err != nil {
			return nil, err
		}
	}

	if err := store.setTokenInfo(types.TokenInfoResponse{
		Name:        msg.Name,
		Symbol:      msg.Symbol,
		Decimals:    msg.Decimals,
		TotalSupply: supply,
	}); err != nil {
		return nil, err
	}

	k.Logger(ctx).Debug("token instantiated",
		"contract", env.Contract.Address,
		"symbol", msg.Symbol,
		"supply", supply.String(),
	)
	return hosttypes.NewResponse(), nil
}
