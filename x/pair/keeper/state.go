package keeper

import (
	storetypes "cosmossdk.io/store/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/pair/types"
)

func getJSON(store storetypes.KVStore, key []byte, v any, what string) error {
	bz := store.Get(key)
	if bz == nil {
		return types.ErrGeneric.Wrapf("%s not found", what)
	}
	if err := hosttypes.JSON.Unmarshal(bz, v); err != nil {
		return types.ErrGeneric.Wrapf("decode %s: %v", what, err)
	}
	return nil
}

func setJSON(store storetypes.KVStore, key []byte, v any, what string) error {
	bz, err := hosttypes.JSON.Marshal(v)
	if err != nil {
		return types.ErrGeneric.Wrapf("encode %s: %v", what, err)
	}
	store.Set(key, bz)
	return nil
}

func loadConfig(store storetypes.KVStore) (types.Config, error) {
	var cfg types.Config
	err := getJSON(store, types.ConfigKey, &cfg, "config")
	return cfg, err
}

func saveConfig(store storetypes.KVStore, cfg types.Config) error {
	return setJSON(store, types.ConfigKey, cfg, "config")
}

func loadReserves(store storetypes.KVStore) (types.Reserves, error) {
	var r types.Reserves
	if err := getJSON(store, types.ReservesKey, &r, "reserves"); err != nil {
		return r, err
	}
	r.ReserveA = r.ReserveA.Normalized()
	r.ReserveB = r.ReserveB.Normalized()
	return r, nil
}

func saveReserves(store storetypes.KVStore, r types.Reserves) error {
	return setJSON(store, types.ReservesKey, r, "reserves")
}

func setContractVersion(store storetypes.KVStore) error {
	return setJSON(store, types.ContractVersionKey, types.ContractVersionInfo{
		Contract: types.ContractName,
		Version:  types.ContractVersion,
	}, "contract version")
}

// GetContractVersion returns the version record written at instantiation.
func GetContractVersion(store storetypes.KVStore) (types.ContractVersionInfo, error) {
	var v types.ContractVersionInfo
	err := getJSON(store, types.ContractVersionKey, &v, "contract version")
	return v, err
}
