package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CosmosMsg is an outbound request emitted by a contract. Exactly one variant
// must be set.
type CosmosMsg struct {
	Bank *BankMsg `json:"bank,omitempty"`
	Wasm *WasmMsg `json:"wasm,omitempty"`
}

// BankMsg moves native funds held by the emitting contract.
type BankMsg struct {
	Send *BankSendMsg `json:"send,omitempty"`
}

// BankSendMsg sends native coins from the contract to an address.
type BankSendMsg struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

// WasmMsg calls into another contract or instantiates a new one.
type WasmMsg struct {
	Execute     *WasmExecuteMsg     `json:"execute,omitempty"`
	Instantiate *WasmInstantiateMsg `json:"instantiate,omitempty"`
}

// WasmExecuteMsg executes a contract with the emitting contract as sender.
type WasmExecuteMsg struct {
	ContractAddr string    `json:"contract_addr"`
	Msg          []byte    `json:"msg"`
	Funds        sdk.Coins `json:"funds"`
}

// WasmInstantiateMsg creates a new contract from a registered code id.
type WasmInstantiateMsg struct {
	Admin  string    `json:"admin,omitempty"`
	CodeID uint64    `json:"code_id"`
	Msg    []byte    `json:"msg"`
	Funds  sdk.Coins `json:"funds"`
	Label  string    `json:"label"`
}

// InstantiateResponse is the data returned by the host for a successful
// instantiation, delivered to replies.
type InstantiateResponse struct {
	ContractAddress string `json:"contract_address"`
	Data            []byte `json:"data,omitempty"`
}

// ValidateBasic checks that exactly one variant is populated.
func (m CosmosMsg) ValidateBasic() error {
	switch {
	case m.Bank != nil && m.Wasm == nil:
		if m.Bank.Send == nil {
			return ErrInvalidSubMsg.Wrap("empty bank message")
		}
		return nil
	case m.Wasm != nil && m.Bank == nil:
		if (m.Wasm.Execute == nil) == (m.Wasm.Instantiate == nil) {
			return ErrInvalidSubMsg.Wrap("wasm message must set exactly one of execute or instantiate")
		}
		return nil
	default:
		return ErrInvalidSubMsg.Wrap("message must set exactly one of bank or wasm")
	}
}

// String renders a short description used in logs.
func (m CosmosMsg) String() string {
	switch {
	case m.Bank != nil && m.Bank.Send != nil:
		return fmt.Sprintf("bank/send %s -> %s", m.Bank.Send.Amount, m.Bank.Send.ToAddress)
	case m.Wasm != nil && m.Wasm.Execute != nil:
		return fmt.Sprintf("wasm/execute %s", m.Wasm.Execute.ContractAddr)
	case m.Wasm != nil && m.Wasm.Instantiate != nil:
		return fmt.Sprintf("wasm/instantiate code %d", m.Wasm.Instantiate.CodeID)
	default:
		return "empty"
	}
}

// NewBankSendMsg builds a native transfer out of the emitting contract.
func NewBankSendMsg(toAddress string, amount sdk.Coins) CosmosMsg {
	return CosmosMsg{Bank: &BankMsg{Send: &BankSendMsg{ToAddress: toAddress, Amount: amount}}}
}

// NewWasmExecuteMsg encodes msg with the contract codec and wraps it in an
// execute request.
func NewWasmExecuteMsg(contractAddr string, msg any, funds sdk.Coins) (CosmosMsg, error) {
	bz, err := JSON.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, ErrInvalidMsg.Wrapf("encode execute msg for %s: %v", contractAddr, err)
	}
	return CosmosMsg{Wasm: &WasmMsg{Execute: &WasmExecuteMsg{ContractAddr: contractAddr, Msg: bz, Funds: funds}}}, nil
}

// NewWasmInstantiateMsg encodes msg and wraps it in an instantiate request.
func NewWasmInstantiateMsg(admin string, codeID uint64, msg any, label string) (CosmosMsg, error) {
	bz, err := JSON.Marshal(msg)
	if err != nil {
		return CosmosMsg{}, ErrInvalidMsg.Wrapf("encode instantiate msg for code %d: %v", codeID, err)
	}
	return CosmosMsg{Wasm: &WasmMsg{Instantiate: &WasmInstantiateMsg{
		Admin:  admin,
		CodeID: codeID,
		Msg:    bz,
		Label:  label,
	}}}, nil
}

// ReplyOn selects when the host calls back into the emitting contract.
type ReplyOn int

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplySuccess:
		return "success"
	case ReplyError:
		return "error"
	case ReplyAlways:
		return "always"
	default:
		return fmt.Sprintf("reply_on(%d)", int(r))
	}
}

// SubMsg is a CosmosMsg with an optional reply continuation.
type SubMsg struct {
	ID      uint64    `json:"id"`
	Msg     CosmosMsg `json:"msg"`
	ReplyOn ReplyOn   `json:"reply_on"`
}

// SubMsgResponse is the successful outcome of a sub message.
type SubMsgResponse struct {
	Events sdk.Events `json:"events"`
	Data   []byte     `json:"data,omitempty"`
}

// SubMsgResult holds either the response or the error string of a sub message.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

// IsOk reports whether the sub message succeeded.
func (r SubMsgResult) IsOk() bool {
	return r.Ok != nil
}

// Reply is delivered to a contract after one of its sub messages completed.
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}
