package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		pairs := api.Group("/pairs")
		{
			pairs.GET("", s.handleGetPairs)
			pairs.GET("/:address", s.handleGetPair)
			pairs.GET("/:address/liquidity", s.handleGetLiquidity)
			pairs.GET("/:address/fees", s.handleGetFees)
			pairs.GET("/:address/status", s.handleGetStatus)
			pairs.GET("/:address/simulate", s.handleSimulate)
			pairs.GET("/:address/share", s.handleGetShare)
		}

		tokens := api.Group("/tokens")
		{
			tokens.GET("/:address", s.handleGetToken)
			tokens.GET("/:address/minter", s.handleGetMinter)
			tokens.GET("/:address/balances/:account", s.handleGetTokenBalance)
		}

		api.GET("/accounts/:account/balances", s.handleGetAccountBalances)
	}
}
