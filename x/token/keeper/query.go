package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/token/types"
)

// Query answers balance, token_info, minter and allowance queries.
func (k Keeper) Query(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, bz []byte) ([]byte, error) {
	var msg types.QueryMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode query msg: %v", err)
	}

	store := newTokenStore(deps.Storage)
	var resp any
	switch {
	case msg.Balance != nil:
		resp = types.BalanceResponse{Balance: store.balance(msg.Balance.Address)}
	case msg.TokenInfo != nil:
		info, err := store.tokenInfo()
		if err != nil {
			return nil, err
		}
		resp = info
	case msg.Minter != nil:
		m, err := store.minter()
		if err != nil {
			return nil, err
		}
		resp = m
	case msg.Allowance != nil:
		resp = types.AllowanceResponse{Allowance: store.allowance(msg.Allowance.Owner, msg.Allowance.Spender)}
	default:
		return nil, types.ErrInvalidRequest.Wrap("unknown query variant")
	}

	out, err := hosttypes.JSON.Marshal(resp)
	if err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("encode query response: %v", err)
	}
	return out, nil
}
