package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	hosttypes "github.com/ysip-labs/ysip/x/host/types"
	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
)

// handleHealth returns server health status
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		ChainID:   s.backend.ChainID(),
		Height:    s.backend.Height(),
		Timestamp: time.Now().Unix(),
	})
}

// handleGetPairs lists every pair
func (s *Server) handleGetPairs(c *gin.Context) {
	pairs, err := s.backend.Pairs(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pairs": pairs, "total": len(pairs)})
}

// handleGetPair returns the assets and the liquidity token of a pair
func (s *Server) handleGetPair(c *gin.Context) {
	s.queryPair(c, pairtypes.NewPairQuery(), &pairtypes.PairInfoResponse{})
}

// handleGetLiquidity returns the reserves of a pair
func (s *Server) handleGetLiquidity(c *gin.Context) {
	s.queryPair(c, pairtypes.NewLiquidityQuery(), &pairtypes.LiquidityResponse{})
}

// handleGetFees returns the fee configuration of a pair
func (s *Server) handleGetFees(c *gin.Context) {
	s.queryPair(c, pairtypes.QueryMsg{Fees: &pairtypes.FeesQuery{}}, &pairtypes.Fees{})
}

// handleGetStatus returns the liquidity token provisioning status
func (s *Server) handleGetStatus(c *gin.Context) {
	s.queryPair(c, pairtypes.QueryMsg{Status: &pairtypes.StatusQuery{}}, &pairtypes.StatusResponse{})
}

// handleSimulate simulates a swap given ?offer=<asset>&amount=<n>
func (s *Server) handleSimulate(c *gin.Context) {
	verrs := &ValidationErrors{}
	info, err := ValidateAssetInfo(c.Query("offer"))
	if err != nil {
		verrs.Add("offer", err.Error())
	}
	amount, err := ValidateAmount(c.Query("amount"))
	if err != nil {
		verrs.Add("amount", err.Error())
	}
	if verrs.HasErrors() {
		s.writeError(c, verrs)
		return
	}
	s.queryPair(c, pairtypes.NewSimulationQuery(pairtypes.NewAsset(info, amount)), &pairtypes.SimulationResponse{})
}

// handleGetShare returns the assets redeemable for ?amount=<lp tokens>
func (s *Server) handleGetShare(c *gin.Context) {
	amount, err := ValidateAmount(c.Query("amount"))
	if err != nil {
		verrs := &ValidationErrors{}
		verrs.Add("amount", err.Error())
		s.writeError(c, verrs)
		return
	}
	s.queryPair(c, pairtypes.QueryMsg{Share: &pairtypes.ShareQuery{Amount: amount}}, &pairtypes.ShareResponse{})
}

func (s *Server) queryPair(c *gin.Context, req pairtypes.QueryMsg, resp any) {
	s.queryContract(c, c.Param("address"), req, resp)
}

func (s *Server) queryContract(c *gin.Context, contract string, req, resp any) {
	if err := ValidateAddress(contract); err != nil {
		verrs := &ValidationErrors{}
		verrs.Add("address", err.Error())
		s.writeError(c, verrs)
		return
	}
	if err := s.backend.QueryContract(c.Request.Context(), contract, req, resp); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps validation, lookup and contract errors to HTTP answers.
func (s *Server) writeError(c *gin.Context, err error) {
	var verrs *ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Code: "INVALID_REQUEST", Details: verrs.Error()})
	case errors.Is(err, hosttypes.ErrContractNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	default:
		codespace, code, _ := errorsmod.ABCIInfo(err, false)
		if codespace == errorsmod.UndefinedCodespace {
			s.logger.Error("query failed", "path", c.Request.URL.Path, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "INTERNAL"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: fmt.Sprintf("%s/%d", codespace, code)})
	}
}
