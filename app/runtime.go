package app

import (
	"errors"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
)

// Event types and attributes emitted by the runtime
const (
	EventTypeWasm        = "wasm"
	EventTypeInstantiate = "instantiate"
	EventTypeExecute     = "execute"
	EventTypeReply       = "reply"

	AttributeKeyContractAddr = "_contract_address"
	AttributeKeyCodeID       = "code_id"
)

// Instantiate creates a contract from codeID. Funds move from creator to the
// new contract before its entry point runs.
func (k *ContractKeeper) Instantiate(ctx sdk.Context, codeID uint64, creator sdk.AccAddress, admin string, msg []byte, funds sdk.Coins, label string) (string, []byte, error) {
	return k.instantiate(ctx, codeID, creator, admin, msg, funds, label, 0)
}

// Execute calls a contract. Funds move from sender to the contract first.
func (k *ContractKeeper) Execute(ctx sdk.Context, contractAddr string, sender sdk.AccAddress, msg []byte, funds sdk.Coins) ([]byte, error) {
	return k.execute(ctx, contractAddr, sender, msg, funds, 0)
}

// QuerySmart runs a read-only contract query. Writes made by the contract
// are discarded.
func (k *ContractKeeper) QuerySmart(ctx sdk.Context, contractAddr string, req []byte) ([]byte, error) {
	_, addr, contract, err := k.loadContract(ctx, contractAddr)
	if err != nil {
		return nil, err
	}
	cacheCtx, _ := ctx.CacheContext()
	return contract.Query(cacheCtx, k.deps(cacheCtx, addr), k.env(cacheCtx, contractAddr), req)
}

func (k *ContractKeeper) instantiate(ctx sdk.Context, codeID uint64, creator sdk.AccAddress, admin string, msg []byte, funds sdk.Coins, label string, depth int) (string, []byte, error) {
	c, ok := k.codes[codeID]
	if !ok {
		return "", nil, hosttypes.ErrUnknownCode.Wrapf("code %d", codeID)
	}

	addr := contractAddress(codeID, k.nextSequence(ctx))
	contractAddr, err := k.addressCodec.BytesToString(addr)
	if err != nil {
		return "", nil, hosttypes.ErrInvalidAddress.Wrap(err.Error())
	}
	creatorAddr, err := k.addressCodec.BytesToString(creator)
	if err != nil {
		return "", nil, hosttypes.ErrInvalidAddress.Wrap(err.Error())
	}

	k.setContractInfo(ctx, addr, ContractInfo{
		Address: contractAddr,
		CodeID:  codeID,
		Creator: creatorAddr,
		Admin:   admin,
		Label:   label,
		Created: ctx.BlockHeight(),
	})

	if err := k.sendFunds(ctx, creator, addr, funds); err != nil {
		return "", nil, err
	}

	info := hosttypes.MessageInfo{Sender: creatorAddr, Funds: funds}
	callCtx, done := k.observe(ctx, c.name, "instantiate", contractAddr, depth)
	res, err := c.contract.Instantiate(callCtx, k.deps(ctx, addr), k.env(ctx, contractAddr), info, msg)
	done(err)
	if err != nil {
		return "", nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeInstantiate,
		sdk.NewAttribute(AttributeKeyContractAddr, contractAddr),
		sdk.NewAttribute(AttributeKeyCodeID, c.name),
	))
	if err := k.handleResponse(ctx, contractAddr, addr, res, depth); err != nil {
		return "", nil, err
	}

	k.logger.Debug("contract instantiated", "code", c.name, "address", contractAddr, "label", label)
	return contractAddr, res.Data, nil
}

func (k *ContractKeeper) execute(ctx sdk.Context, contractAddr string, sender sdk.AccAddress, msg []byte, funds sdk.Coins, depth int) ([]byte, error) {
	contractInfo, addr, contract, err := k.loadContract(ctx, contractAddr)
	if err != nil {
		return nil, err
	}
	senderAddr, err := k.addressCodec.BytesToString(sender)
	if err != nil {
		return nil, hosttypes.ErrInvalidAddress.Wrap(err.Error())
	}

	if err := k.sendFunds(ctx, sender, addr, funds); err != nil {
		return nil, err
	}

	info := hosttypes.MessageInfo{Sender: senderAddr, Funds: funds}
	callCtx, done := k.observe(ctx, k.codes[contractInfo.CodeID].name, "execute", contractAddr, depth)
	res, err := contract.Execute(callCtx, k.deps(ctx, addr), k.env(ctx, contractAddr), info, msg)
	done(err)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeExecute,
		sdk.NewAttribute(AttributeKeyContractAddr, contractAddr),
	))
	if err := k.handleResponse(ctx, contractAddr, addr, res, depth); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (k *ContractKeeper) sendFunds(ctx sdk.Context, from, to sdk.AccAddress, funds sdk.Coins) error {
	if funds.Empty() {
		return nil
	}
	if !funds.IsValid() {
		return hosttypes.ErrInvalidMsg.Wrapf("invalid funds %s", funds)
	}
	if err := k.bankKeeper.SendCoins(ctx, from, to, funds); err != nil {
		return hosttypes.ErrInsufficientFunds.Wrap(err.Error())
	}
	return nil
}

// handleResponse emits the contract's events and dispatches its messages in
// order.
func (k *ContractKeeper) handleResponse(ctx sdk.Context, contractAddr string, addr sdk.AccAddress, res *hosttypes.Response, depth int) error {
	if res == nil {
		return nil
	}

	attrs := append([]sdk.Attribute{sdk.NewAttribute(AttributeKeyContractAddr, contractAddr)}, res.Attributes...)
	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeWasm, attrs...))
	for _, ev := range res.Events {
		custom := sdk.NewEvent(EventTypeWasm+"-"+ev.Type, sdk.NewAttribute(AttributeKeyContractAddr, contractAddr))
		custom.Attributes = append(custom.Attributes, ev.Attributes...)
		ctx.EventManager().EmitEvent(custom)
	}

	for _, sub := range res.Messages {
		if err := k.dispatchSubMsg(ctx, contractAddr, addr, sub, depth); err != nil {
			return err
		}
	}
	return nil
}

// dispatchSubMsg runs one message. Messages without a reply share the
// caller's state; messages with a reply run in their own cache so a failure
// can be handed to the contract instead of aborting.
func (k *ContractKeeper) dispatchSubMsg(ctx sdk.Context, contractAddr string, addr sdk.AccAddress, sub hosttypes.SubMsg, depth int) error {
	if depth+1 > MaxCallDepth {
		return hosttypes.ErrMaxCallDepth.Wrapf("depth %d", depth+1)
	}
	if err := sub.Msg.ValidateBasic(); err != nil {
		return err
	}

	if sub.ReplyOn == hosttypes.ReplyNever {
		_, err := k.dispatchMsg(ctx, addr, sub.Msg, depth+1)
		return err
	}

	subCtx, write := ctx.CacheContext()
	data, err := k.dispatchMsg(subCtx, addr, sub.Msg, depth+1)

	var result hosttypes.SubMsgResult
	switch {
	case err == nil:
		write()
		result.Ok = &hosttypes.SubMsgResponse{Events: subCtx.EventManager().Events(), Data: data}
		if sub.ReplyOn == hosttypes.ReplyError {
			return nil
		}
	case sub.ReplyOn == hosttypes.ReplySuccess:
		return err
	default:
		result.Err = redactError(err)
	}

	return k.reply(ctx, contractAddr, addr, hosttypes.Reply{ID: sub.ID, Result: result}, depth)
}

func (k *ContractKeeper) reply(ctx sdk.Context, contractAddr string, addr sdk.AccAddress, reply hosttypes.Reply, depth int) error {
	contractInfo, _, contract, err := k.loadContract(ctx, contractAddr)
	if err != nil {
		return err
	}
	replier, ok := contract.(hosttypes.Replier)
	if !ok {
		return hosttypes.ErrNoReplyHandler.Wrapf("contract %s", contractAddr)
	}

	callCtx, done := k.observe(ctx, k.codes[contractInfo.CodeID].name, "reply", contractAddr, depth)
	res, err := replier.Reply(callCtx, k.deps(ctx, addr), k.env(ctx, contractAddr), reply)
	done(err)
	if err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeReply,
		sdk.NewAttribute(AttributeKeyContractAddr, contractAddr),
	))
	return k.handleResponse(ctx, contractAddr, addr, res, depth)
}

// dispatchMsg executes a message on behalf of the contract at sender and
// returns the message's result data.
func (k *ContractKeeper) dispatchMsg(ctx sdk.Context, sender sdk.AccAddress, msg hosttypes.CosmosMsg, depth int) ([]byte, error) {
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		to, err := k.addressCodec.StringToBytes(msg.Bank.Send.ToAddress)
		if err != nil {
			return nil, hosttypes.ErrInvalidAddress.Wrapf("%s: %v", msg.Bank.Send.ToAddress, err)
		}
		return nil, k.sendFunds(ctx, sender, to, msg.Bank.Send.Amount)

	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		m := msg.Wasm.Execute
		return k.execute(ctx, m.ContractAddr, sender, m.Msg, m.Funds, depth)

	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		m := msg.Wasm.Instantiate
		addr, data, err := k.instantiate(ctx, m.CodeID, sender, m.Admin, m.Msg, m.Funds, m.Label, depth)
		if err != nil {
			return nil, err
		}
		return hosttypes.JSON.Marshal(hosttypes.InstantiateResponse{ContractAddress: addr, Data: data})

	default:
		return nil, hosttypes.ErrInvalidSubMsg.Wrapf("unsupported message %s", msg)
	}
}

// redactError keeps the registered error of a failed sub message and drops
// the wrapped detail.
func redactError(err error) string {
	var coded *errorsmod.Error
	if errors.As(err, &coded) {
		return coded.Error()
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	return errorsmod.Wrapf(hosttypes.ErrInvalidSubMsg, "codespace: %s, code: %d", codespace, code).Error()
}

// observe traces one entry point call and records it on the contract
// telemetry when configured.
func (k *ContractKeeper) observe(ctx sdk.Context, code, entry, contractAddr string, depth int) (sdk.Context, func(error)) {
	start := time.Now()
	callCtx, end := traceContractCall(ctx, code, entry, contractAddr, depth)
	return callCtx, func(err error) {
		end(err)
		if k.telemetry != nil {
			k.telemetry.RecordCall(callCtx.Context(), code, entry, depth, time.Since(start), err == nil)
		}
	}
}

// querier answers contract queries against the current state.
type querier struct {
	k *ContractKeeper
}

var _ hosttypes.Querier = querier{}

func (q querier) QueryWasmSmart(ctx sdk.Context, contractAddr string, req []byte) ([]byte, error) {
	return q.k.QuerySmart(ctx, contractAddr, req)
}

func (q querier) QueryBalance(ctx sdk.Context, addr, denom string) (sdk.Coin, error) {
	bz, err := q.k.addressCodec.StringToBytes(addr)
	if err != nil {
		return sdk.Coin{}, hosttypes.ErrInvalidAddress.Wrapf("%s: %v", addr, err)
	}
	return q.k.bankKeeper.GetBalance(ctx, bz, denom), nil
}
