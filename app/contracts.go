package app

import (
	"encoding/binary"
	"fmt"
	"sort"

	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkaddress "github.com/cosmos/cosmos-sdk/types/address"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

// WasmStoreKey is the store holding contract metadata and contract storage.
const WasmStoreKey = "wasm"

// MaxCallDepth bounds nested contract calls.
const MaxCallDepth = 10

// Keys in the wasm store
var (
	ContractInfoPrefix  = []byte{0x01}
	ContractStorePrefix = []byte{0x02}
	ContractSequenceKey = []byte{0x03}
)

// ContractInfo is the stored metadata of an instantiated contract.
type ContractInfo struct {
	Address string `json:"address"`
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Admin   string `json:"admin,omitempty"`
	Label   string `json:"label"`
	Created int64  `json:"created"`
}

type code struct {
	name     string
	contract hosttypes.Contract
}

// ContractKeeper is the contract runtime: it registers codes, derives
// contract addresses, isolates contract storage and dispatches the messages
// contracts return.
type ContractKeeper struct {
	storeKey     storetypes.StoreKey
	bankKeeper   bankkeeper.Keeper
	addressCodec address.Codec
	logger       log.Logger
	telemetry    *ContractTelemetry

	codes map[uint64]code
}

// NewContractKeeper returns a runtime without registered codes.
func NewContractKeeper(storeKey storetypes.StoreKey, bk bankkeeper.Keeper, ac address.Codec, logger log.Logger) *ContractKeeper {
	return &ContractKeeper{
		storeKey:     storeKey,
		bankKeeper:   bk,
		addressCodec: ac,
		logger:       logger.With("module", "x/host"),
		codes:        make(map[uint64]code),
	}
}

// RegisterCode makes a contract implementation available under codeID.
func (k *ContractKeeper) RegisterCode(codeID uint64, name string, contract hosttypes.Contract) {
	if _, ok := k.codes[codeID]; ok {
		panic(fmt.Sprintf("code %d already registered", codeID))
	}
	k.codes[codeID] = code{name: name, contract: contract}
}

// SetTelemetry records entry point calls on t from now on.
func (k *ContractKeeper) SetTelemetry(t *ContractTelemetry) {
	k.telemetry = t
}

// CodeName returns the name a code was registered with.
func (k *ContractKeeper) CodeName(codeID uint64) (string, bool) {
	c, ok := k.codes[codeID]
	return c.name, ok
}

func (k *ContractKeeper) nextSequence(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	var seq uint64 = 1
	if bz := store.Get(ContractSequenceKey); bz != nil {
		seq = binary.BigEndian.Uint64(bz)
	}
	store.Set(ContractSequenceKey, sdk.Uint64ToBigEndian(seq+1))
	return seq
}

// contractAddress derives a contract address from the code id and a global
// instance sequence.
func contractAddress(codeID, seq uint64) sdk.AccAddress {
	key := append(sdk.Uint64ToBigEndian(codeID), sdk.Uint64ToBigEndian(seq)...)
	return sdkaddress.Module(WasmStoreKey, key)
}

func contractInfoKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, ContractInfoPrefix...), addr...)
}

func contractStoreKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, ContractStorePrefix...), sdkaddress.MustLengthPrefix(addr)...)
}

// GetContractInfo returns the metadata of a contract.
func (k *ContractKeeper) GetContractInfo(ctx sdk.Context, contractAddr string) (ContractInfo, error) {
	addr, err := k.addressCodec.StringToBytes(contractAddr)
	if err != nil {
		return ContractInfo{}, hosttypes.ErrInvalidAddress.Wrapf("%s: %v", contractAddr, err)
	}
	bz := ctx.KVStore(k.storeKey).Get(contractInfoKey(addr))
	if bz == nil {
		return ContractInfo{}, hosttypes.ErrContractNotFound.Wrap(contractAddr)
	}
	var info ContractInfo
	if err := hosttypes.JSON.Unmarshal(bz, &info); err != nil {
		return ContractInfo{}, hosttypes.ErrInvalidMsg.Wrapf("decode contract info: %v", err)
	}
	return info, nil
}

func (k *ContractKeeper) setContractInfo(ctx sdk.Context, addr sdk.AccAddress, info ContractInfo) {
	ctx.KVStore(k.storeKey).Set(contractInfoKey(addr), hosttypes.MustMarshalJSON(info))
}

// ListContracts returns every contract instantiated from codeID, ordered by
// address. A zero codeID lists all contracts.
func (k *ContractKeeper) ListContracts(ctx sdk.Context, codeID uint64) []ContractInfo {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), ContractInfoPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()

	var out []ContractInfo
	for ; iter.Valid(); iter.Next() {
		var info ContractInfo
		if err := hosttypes.JSON.Unmarshal(iter.Value(), &info); err != nil {
			k.logger.Error("skipping undecodable contract info", "key", fmt.Sprintf("%X", iter.Key()), "error", err)
			continue
		}
		if codeID == 0 || info.CodeID == codeID {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// ContractDeps returns the storage, querier and codec a contract runs with.
func (k *ContractKeeper) ContractDeps(ctx sdk.Context, contractAddr string) (hosttypes.Deps, error) {
	addr, err := k.addressCodec.StringToBytes(contractAddr)
	if err != nil {
		return hosttypes.Deps{}, hosttypes.ErrInvalidAddress.Wrapf("%s: %v", contractAddr, err)
	}
	return k.deps(ctx, addr), nil
}

func (k *ContractKeeper) deps(ctx sdk.Context, addr sdk.AccAddress) hosttypes.Deps {
	return hosttypes.Deps{
		Storage:      prefix.NewStore(ctx.KVStore(k.storeKey), contractStoreKey(addr)),
		Querier:      querier{k: k},
		AddressCodec: k.addressCodec,
	}
}

func (k *ContractKeeper) env(ctx sdk.Context, contractAddr string) hosttypes.Env {
	return hosttypes.Env{
		Block: hosttypes.BlockInfo{
			Height:  ctx.BlockHeight(),
			Time:    ctx.BlockTime(),
			ChainID: ctx.ChainID(),
		},
		Contract: hosttypes.ContractInfo{Address: contractAddr},
	}
}

// loadContract resolves an address to its info and implementation.
func (k *ContractKeeper) loadContract(ctx sdk.Context, contractAddr string) (ContractInfo, sdk.AccAddress, hosttypes.Contract, error) {
	info, err := k.GetContractInfo(ctx, contractAddr)
	if err != nil {
		return ContractInfo{}, nil, nil, err
	}
	c, ok := k.codes[info.CodeID]
	if !ok {
		return ContractInfo{}, nil, nil, hosttypes.ErrUnknownCode.Wrapf("code %d", info.CodeID)
	}
	addr, err := k.addressCodec.StringToBytes(contractAddr)
	if err != nil {
		return ContractInfo{}, nil, nil, hosttypes.ErrInvalidAddress.Wrap(err.Error())
	}
	return info, addr, c.contract, nil
}

// PairContracts lists pair contract addresses.
func (k *ContractKeeper) PairContracts(ctx sdk.Context) []string {
	infos := k.ListContracts(ctx, PairCodeID)
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Address)
	}
	return out
}
