package types

import (
	"regexp"

	"cosmossdk.io/math"
)

const maxDecimals = 18

var symbolRegexp = regexp.MustCompile(`^[a-zA-Z\-]{3,12}$`)

// Coin is an initial balance entry.
type Coin struct {
	Address string    `json:"address"`
	Amount  math.Uint `json:"amount"`
}

// MinterResponse names the account allowed to mint and an optional supply cap.
type MinterResponse struct {
	Minter string     `json:"minter"`
	Cap    *math.Uint `json:"cap,omitempty"`
}

// InstantiateMsg creates a token.
type InstantiateMsg struct {
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	Decimals        uint8           `json:"decimals"`
	InitialBalances []Coin          `json:"initial_balances"`
	Mint            *MinterResponse `json:"mint,omitempty"`
}

// Validate checks name, symbol and decimals.
func (m InstantiateMsg) Validate() error {
	if n := len(m.Name); n < 3 || n > 50 {
		return ErrInvalidName.Wrapf("got %q", m.Name)
	}
	if !symbolRegexp.MatchString(m.Symbol) {
		return ErrInvalidSymbol.Wrapf("got %q", m.Symbol)
	}
	if m.Decimals > maxDecimals {
		return ErrInvalidDecimals.Wrapf("got %d", m.Decimals)
	}
	return nil
}

// ExecuteMsg is the tagged union of token operations. Exactly one field is set.
type ExecuteMsg struct {
	Transfer          *TransferMsg     `json:"transfer,omitempty"`
	TransferFrom      *TransferFromMsg `json:"transfer_from,omitempty"`
	Send              *SendMsg         `json:"send,omitempty"`
	Burn              *BurnMsg         `json:"burn,omitempty"`
	BurnFrom          *BurnFromMsg     `json:"burn_from,omitempty"`
	Mint              *MintMsg         `json:"mint,omitempty"`
	IncreaseAllowance *AllowanceMsg    `json:"increase_allowance,omitempty"`
	DecreaseAllowance *AllowanceMsg    `json:"decrease_allowance,omitempty"`
}

// Action names the variant set on m.
func (m ExecuteMsg) Action() string {
	switch {
	case m.Transfer != nil:
		return "transfer"
	case m.TransferFrom != nil:
		return "transfer_from"
	case m.Send != nil:
		return "send"
	case m.Burn != nil:
		return "burn"
	case m.BurnFrom != nil:
		return "burn_from"
	case m.Mint != nil:
		return "mint"
	case m.IncreaseAllowance != nil:
		return "increase_allowance"
	case m.DecreaseAllowance != nil:
		return "decrease_allowance"
	default:
		return "unknown"
	}
}

// TransferMsg moves tokens from the sender.
type TransferMsg struct {
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// TransferFromMsg moves tokens from owner using the sender's allowance.
type TransferFromMsg struct {
	Owner     string    `json:"owner"`
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// SendMsg moves tokens to a contract and calls its receive hook with Msg.
type SendMsg struct {
	Contract string    `json:"contract"`
	Amount   math.Uint `json:"amount"`
	Msg      []byte    `json:"msg"`
}

// BurnMsg destroys tokens held by the sender.
type BurnMsg struct {
	Amount math.Uint `json:"amount"`
}

// BurnFromMsg destroys tokens held by owner using the sender's allowance.
type BurnFromMsg struct {
	Owner  string    `json:"owner"`
	Amount math.Uint `json:"amount"`
}

// MintMsg creates new tokens; only the minter may call it.
type MintMsg struct {
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// AllowanceMsg changes the allowance granted to spender.
type AllowanceMsg struct {
	Spender string    `json:"spender"`
	Amount  math.Uint `json:"amount"`
}

// ReceiveMsg is delivered to a contract that receives tokens through Send.
type ReceiveMsg struct {
	Sender string    `json:"sender"`
	Amount math.Uint `json:"amount"`
	Msg    []byte    `json:"msg"`
}

// ReceiverExecuteMsg wraps ReceiveMsg in the receiving contract's execute API.
type ReceiverExecuteMsg struct {
	Receive *ReceiveMsg `json:"receive"`
}

// QueryMsg is the tagged union of token queries.
type QueryMsg struct {
	Balance   *BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *TokenInfoQuery `json:"token_info,omitempty"`
	Minter    *MinterQuery    `json:"minter,omitempty"`
	Allowance *AllowanceQuery `json:"allowance,omitempty"`
}

// BalanceQuery asks for the balance of an address.
type BalanceQuery struct {
	Address string `json:"address"`
}

// TokenInfoQuery asks for name, symbol, decimals and total supply.
type TokenInfoQuery struct{}

// MinterQuery asks for the minter.
type MinterQuery struct{}

// AllowanceQuery asks for the allowance owner granted spender.
type AllowanceQuery struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

// BalanceResponse answers BalanceQuery.
type BalanceResponse struct {
	Balance math.Uint `json:"balance"`
}

// TokenInfoResponse answers TokenInfoQuery and is also the stored token record.
type TokenInfoResponse struct {
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Decimals    uint8     `json:"decimals"`
	TotalSupply math.Uint `json:"total_supply"`
}

// AllowanceResponse answers AllowanceQuery.
type AllowanceResponse struct {
	Allowance math.Uint `json:"allowance"`
}

// NewBalanceQuery builds a balance query message.
func NewBalanceQuery(addr string) QueryMsg {
	return QueryMsg{Balance: &BalanceQuery{Address: addr}}
}

// NewTokenInfoQuery builds a token info query message.
func NewTokenInfoQuery() QueryMsg {
	return QueryMsg{TokenInfo: &TokenInfoQuery{}}
}
