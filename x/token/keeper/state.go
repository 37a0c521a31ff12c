package keeper

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/token/types"
)

type tokenStore struct {
	kv storetypes.KVStore
}

func newTokenStore(kv storetypes.KVStore) tokenStore {
	return tokenStore{kv: kv}
}

func (s tokenStore) tokenInfo() (types.TokenInfoResponse, error) {
	var info types.TokenInfoResponse
	bz := s.kv.Get(types.TokenInfoKey)
	if bz == nil {
		return info, types.ErrInvalidRequest.Wrap("token info not found")
	}
	if err := hosttypes.JSON.Unmarshal(bz, &info); err != nil {
		return info, types.ErrInvalidRequest.Wrapf("decode token info: %v", err)
	}
	info.TotalSupply = hosttypes.UintOrZero(info.TotalSupply)
	return info, nil
}

func (s tokenStore) setTokenInfo(info types.TokenInfoResponse) error {
	bz, err := hosttypes.JSON.Marshal(info)
	if err != nil {
		return types.ErrInvalidRequest.Wrapf("encode token info: %v", err)
	}
	s.kv.Set(types.TokenInfoKey, bz)
	return nil
}

func (s tokenStore) minter() (*types.MinterResponse, error) {
	bz := s.kv.Get(types.MinterKey)
	if bz == nil {
		return nil, nil
	}
	var m types.MinterResponse
	if err := hosttypes.JSON.Unmarshal(bz, &m); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode minter: %v", err)
	}
	return &m, nil
}

func (s tokenStore) setMinter(m types.MinterResponse) error {
	bz, err := hosttypes.JSON.Marshal(m)
	if err != nil {
		return types.ErrInvalidRequest.Wrapf("encode minter: %v", err)
	}
	s.kv.Set(types.MinterKey, bz)
	return nil
}

func (s tokenStore) balance(addr string) math.Uint {
	bz := s.kv.Get(types.BalanceKey(addr))
	if bz == nil {
		return math.ZeroUint()
	}
	return math.NewUintFromString(string(bz))
}

func (s tokenStore) setBalance(addr string, amt math.Uint) {
	if amt.IsZero() {
		s.kv.Delete(types.BalanceKey(addr))
		return
	}
	s.kv.Set(types.BalanceKey(addr), []byte(amt.String()))
}

func (s tokenStore) allowance(owner, spender string) math.Uint {
	bz := s.kv.Get(types.AllowanceKey(owner, spender))
	if bz == nil {
		return math.ZeroUint()
	}
	return math.NewUintFromString(string(bz))
}

func (s tokenStore) setAllowance(owner, spender string, amt math.Uint) {
	if amt.IsZero() {
		s.kv.Delete(types.AllowanceKey(owner, spender))
		return
	}
	s.kv.Set(types.AllowanceKey(owner, spender), []byte(amt.String()))
}

// subBalance debits addr, failing with ErrInsufficientFunds on underflow.
func (s tokenStore) subBalance(addr string, amt math.Uint) error {
	bal := s.balance(addr)
	if bal.LT(amt) {
		return types.ErrInsufficientFunds.Wrapf("balance %s, required %s", bal, amt)
	}
	s.setBalance(addr, bal.Sub(amt))
	return nil
}

func (s tokenStore) addBalance(addr string, amt math.Uint) {
	s.setBalance(addr, s.balance(addr).Add(amt))
}

// spendAllowance debits the allowance owner granted spender.
func (s tokenStore) spendAllowance(owner, spender string, amt math.Uint) error {
	allowance := s.allowance(owner, spender)
	if allowance.LT(amt) {
		return types.ErrInsufficientAllowance.Wrapf("allowance %s, required %s", allowance, amt)
	}
	s.setAllowance(owner, spender, allowance.Sub(amt))
	return nil
}

func (s tokenStore) transfer(from, to string, amt math.Uint) error {
	if err := s.subBalance(from, amt); err != nil {
		return err
	}
	s.addBalance(to, amt)
	return nil
}

func (s tokenStore) changeSupply(delta math.Uint, increase bool) error {
	info, err := s.tokenInfo()
	if err != nil {
		return err
	}
	if increase {
		info.TotalSupply = info.TotalSupply.Add(delta)
	} else {
		info.TotalSupply = info.TotalSupply.Sub(delta)
	}
	return s.setTokenInfo(info)
}
