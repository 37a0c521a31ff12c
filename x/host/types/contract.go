package types

import (
	"cosmossdk.io/core/address"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Querier gives contracts read access to other contracts and to native balances.
type Querier interface {
	QueryWasmSmart(ctx sdk.Context, contractAddr string, req []byte) ([]byte, error)
	QueryBalance(ctx sdk.Context, addr, denom string) (sdk.Coin, error)
}

// Deps is the handle a contract receives on every call: its own storage, the
// querier and the address codec of the host.
type Deps struct {
	Storage      storetypes.KVStore
	Querier      Querier
	AddressCodec address.Codec
}

// Contract is a code registered with the host. Implementations hold no
// per-instance state: everything lives in Deps.Storage.
type Contract interface {
	Instantiate(ctx sdk.Context, deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Execute(ctx sdk.Context, deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)
	Query(ctx sdk.Context, deps Deps, env Env, msg []byte) ([]byte, error)
}

// Replier is implemented by contracts that emit sub messages with replies.
type Replier interface {
	Reply(ctx sdk.Context, deps Deps, env Env, reply Reply) (*Response, error)
}

// QuerySmart encodes req, queries contractAddr and decodes the answer into resp.
func QuerySmart(ctx sdk.Context, q Querier, contractAddr string, req, resp any) error {
	bz, err := JSON.Marshal(req)
	if err != nil {
		return ErrInvalidMsg.Wrapf("encode query: %v", err)
	}
	out, err := q.QueryWasmSmart(ctx, contractAddr, bz)
	if err != nil {
		return err
	}
	if err := JSON.Unmarshal(out, resp); err != nil {
		return ErrInvalidMsg.Wrapf("decode query response from %s: %v", contractAddr, err)
	}
	return nil
}
