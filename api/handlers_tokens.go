package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tokentypes "github.com/ysip-labs/ysip/x/token/types"
)

// handleGetToken returns name, symbol, decimals and supply of a token
func (s *Server) handleGetToken(c *gin.Context) {
	s.queryContract(c, c.Param("address"), tokentypes.NewTokenInfoQuery(), &tokentypes.TokenInfoResponse{})
}

// handleGetMinter returns the minter and cap of a token
func (s *Server) handleGetMinter(c *gin.Context) {
	s.queryContract(c, c.Param("address"), tokentypes.QueryMsg{Minter: &tokentypes.MinterQuery{}}, &tokentypes.MinterResponse{})
}

// handleGetTokenBalance returns the token balance of an account
func (s *Server) handleGetTokenBalance(c *gin.Context) {
	token, account := c.Param("address"), c.Param("account")
	if err := ValidateAddress(account); err != nil {
		verrs := &ValidationErrors{}
		verrs.Add("account", err.Error())
		s.writeError(c, verrs)
		return
	}
	if err := ValidateAddress(token); err != nil {
		verrs := &ValidationErrors{}
		verrs.Add("address", err.Error())
		s.writeError(c, verrs)
		return
	}

	var resp tokentypes.BalanceResponse
	if err := s.backend.QueryContract(c.Request.Context(), token, tokentypes.NewBalanceQuery(account), &resp); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenBalanceResponse{Token: token, Address: account, Balance: resp.Balance.String()})
}

// handleGetAccountBalances returns the native balances of an account
func (s *Server) handleGetAccountBalances(c *gin.Context) {
	account := c.Param("account")
	if err := ValidateAddress(account); err != nil {
		verrs := &ValidationErrors{}
		verrs.Add("account", err.Error())
		s.writeError(c, verrs)
		return
	}
	balances, err := s.backend.Balances(c.Request.Context(), account)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccountBalancesResponse{Address: account, Balances: balances})
}
