package api

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse answers /health.
type HealthResponse struct {
	Status    string `json:"status"`
	ChainID   string `json:"chain_id"`
	Height    int64  `json:"height"`
	Timestamp int64  `json:"timestamp"`
}

// AccountBalancesResponse lists the native balances of an account.
type AccountBalancesResponse struct {
	Address  string    `json:"address"`
	Balances sdk.Coins `json:"balances"`
}

// TokenBalanceResponse is the issued-token balance of an account.
type TokenBalanceResponse struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Balance string `json:"balance"`
}
