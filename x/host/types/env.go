package types

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockInfo describes the block a contract call executes in.
type BlockInfo struct {
	Height  int64     `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
}

// ContractInfo identifies the contract being called.
type ContractInfo struct {
	Address string `json:"address"`
}

// Env is the execution environment handed to every contract entry point.
type Env struct {
	Block    BlockInfo    `json:"block"`
	Contract ContractInfo `json:"contract"`
}

// MessageInfo carries the caller and the native funds attached to the call.
// Funds have already been moved to the contract when the entry point runs.
type MessageInfo struct {
	Sender string    `json:"sender"`
	Funds  sdk.Coins `json:"funds"`
}
