package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	"github.com/ysip-labs/ysip/x/token/types"
)

// Execute dispatches a token operation.
func (k Keeper) Execute(ctx sdk.Context, deps hosttypes.Deps, env hosttypes.Env, info hosttypes.MessageInfo, bz []byte) (*hosttypes.Response, error) {
	var msg types.ExecuteMsg
	if err := hosttypes.JSON.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("decode execute msg: %v", err)
	}
	if !info.Funds.IsZero() {
		return nil, types.ErrInvalidRequest.Wrap("token contract does not accept native funds")
	}

	res, err := k.dispatch(ctx, deps, info.Sender, msg)
	k.recordExecution(env, msg, err)
	return res, err
}

func (k Keeper) dispatch(ctx sdk.Context, deps hosttypes.Deps, sender string, msg types.ExecuteMsg) (*hosttypes.Response, error) {
	store := newTokenStore(deps.Storage)
	switch {
	case msg.Transfer != nil:
		return k.executeTransfer(deps, store, sender, *msg.Transfer)
	case msg.TransferFrom != nil:
		return k.executeTransferFrom(deps, store, sender, *msg.TransferFrom)
	case msg.Send != nil:
		return k.executeSend(deps, store, sender, *msg.Send)
	case msg.Burn != nil:
		return k.executeBurn(store, sender, *msg.Burn)
	case msg.BurnFrom != nil:
		return k.executeBurnFrom(store, sender, *msg.BurnFrom)
	case msg.Mint != nil:
		return k.executeMint(ctx, deps, store, sender, *msg.Mint)
	case msg.IncreaseAllowance != nil:
		return k.executeAllowance(deps, store, sender, *msg.IncreaseAllowance, true)
	case msg.DecreaseAllowance != nil:
		return k.executeAllowance(deps, store, sender, *msg.DecreaseAllowance, false)
	default:
		return nil, types.ErrInvalidRequest.Wrap("unknown execute variant")
	}
}

func (k Keeper) recordExecution(env hosttypes.Env, msg types.ExecuteMsg, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	k.metrics.Operations.WithLabelValues(msg.Action(), status).Inc()
	if err != nil {
		return
	}

	token := env.Contract.Address
	switch {
	case msg.Mint != nil:
		k.metrics.Minted.WithLabelValues(token).Add(amountFloat(msg.Mint.Amount))
	case msg.Burn != nil:
		k.metrics.Burned.WithLabelValues(token).Add(amountFloat(msg.Burn.Amount))
	case msg.BurnFrom != nil:
		k.metrics.Burned.WithLabelValues(token).Add(amountFloat(msg.BurnFrom.Amount))
	}
}

func amountFloat(amt math.Uint) float64 {
	f, _ := math.LegacyNewDecFromBigInt(hosttypes.UintOrZero(amt).BigInt()).Float64()
	return f
}

func nonZero(amt math.Uint) (math.Uint, error) {
	amt = hosttypes.UintOrZero(amt)
	if amt.IsZero() {
		return amt, types.ErrInvalidZeroAmount
	}
	return amt, nil
}

func (k Keeper) executeTransfer(deps hosttypes.Deps, store tokenStore, sender string, msg types.TransferMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := deps.ValidateAddress(msg.Recipient); err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}
	if err := store.transfer(sender, msg.Recipient, amt); err != nil {
		return nil, err
	}
	return hosttypes.NewResponse().
		AddAttribute("action", "transfer").
		AddAttribute("from", sender).
		AddAttribute("to", msg.Recipient).
		AddAttribute("amount", amt.String()), nil
}

func (k Keeper) executeTransferFrom(deps hosttypes.Deps, store tokenStore, sender string, msg types.TransferFromMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := deps.ValidateAddress(msg.Recipient); err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}
	if err := store.spendAllowance(msg.Owner, sender, amt); err != nil {
		return nil, err
	}
	if err := store.transfer(msg.Owner, msg.Recipient, amt); err != nil {
		return nil, err
	}
	return hosttypes.NewResponse().
		AddAttribute("action", "transfer_from").
		AddAttribute("from", msg.Owner).
		AddAttribute("to", msg.Recipient).
		AddAttribute("by", sender).
		AddAttribute("amount", amt.String()), nil
}

// executeSend moves tokens to a contract and asks the host to call its
// receive entry point in the same transaction.
func (k Keeper) executeSend(deps hosttypes.Deps, store tokenStore, sender string, msg types.SendMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := deps.ValidateAddress(msg.Contract); err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}
	if err := store.transfer(sender, msg.Contract, amt); err != nil {
		return nil, err
	}

	hook, err := hosttypes.NewWasmExecuteMsg(msg.Contract, types.ReceiverExecuteMsg{
		Receive: &types.ReceiveMsg{Sender: sender, Amount: amt, Msg: msg.Msg},
	}, nil)
	if err != nil {
		return nil, err
	}
	return hosttypes.NewResponse().
		AddAttribute("action", "send").
		AddAttribute("from", sender).
		AddAttribute("to", msg.Contract).
		AddAttribute("amount", amt.String()).
		AddMessage(hook), nil
}

func (k Keeper) executeBurn(store tokenStore, sender string, msg types.BurnMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := store.subBalance(sender, amt); err != nil {
		return nil, err
	}
	if err := store.changeSupply(amt, false); err != nil {
		return nil, err
	}
	return hosttypes.NewResponse().
		AddAttribute("action", "burn").
		AddAttribute("from", sender).
		AddAttribute("amount", amt.String()), nil
}

func (k Keeper) executeBurnFrom(store tokenStore, sender string, msg types.BurnFromMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := store.spendAllowance(msg.Owner, sender, amt); err != nil {
		return nil, err
	}
	if err := store.subBalance(msg.Owner, amt); err != nil {
		return nil, err
	}
	if err := store.changeSupply(amt, false); err != nil {
		return nil, err
	}
	return hosttypes.NewResponse().
		AddAttribute("action", "burn_from").
		AddAttribute("from", msg.Owner).
		AddAttribute("by", sender).
		AddAttribute("amount", amt.String()), nil
}

func (k Keeper) executeMint(ctx sdk.Context, deps hosttypes.Deps, store tokenStore, sender string, msg types.MintMsg) (*hosttypes.Response, error) {
	amt, err := nonZero(msg.Amount)
	if err != nil {
		return nil, err
	}
	minter, err := store.minter()
	if err != nil {
		return nil, err
	}
	if minter == nil || minter.Minter != sender {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the minter", sender)
	}
	if err := deps.ValidateAddress(msg.Recipient); err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	info, err := store.tokenInfo()
	if err != nil {
		return nil, err
	}
	newSupply := info.TotalSupply.Add(amt)
	if minter.Cap != nil && newSupply.GT(*minter.Cap) {
		return nil, types.ErrCannotExceedCap.Wrapf("supply %s would exceed cap %s", newSupply, minter.Cap)
	}
	info.TotalSupply = newSupply
	if err := store.setTokenInfo(info); err != nil {
		return nil, err
	}
	store.addBalance(msg.Recipient, amt)

	k.Logger(ctx).Debug("minted tokens", "recipient", msg.Recipient, "amount", amt.String())
	return hosttypes.NewResponse().
		AddAttribute("action", "mint").
		AddAttribute("to", msg.Recipient).
		AddAttribute("amount", amt.String()), nil
}

func (k Keeper) executeAllowance(deps hosttypes.Deps, store tokenStore, owner string, msg types.AllowanceMsg, increase bool) (*hosttypes.Response, error) {
	if msg.Spender == owner {
		return nil, types.ErrCannotSetOwnAccount
	}
	if err := deps.ValidateAddress(msg.Spender); err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}
	amt := hosttypes.UintOrZero(msg.Amount)
	current := store.allowance(owner, msg.Spender)
	action := "increase_allowance"
	if increase {
		current = current.Add(amt)
	} else {
		action = "decrease_allowance"
		if current.LTE(amt) {
			current = math.ZeroUint()
		} else {
			current = current.Sub(amt)
		}
	}
	store.setAllowance(owner, msg.Spender, current)
	return hosttypes.NewResponse().
		AddAttribute("action", action).
		AddAttribute("owner", owner).
		AddAttribute("spender", msg.Spender).
		AddAttribute("amount", amt.String()), nil
}
