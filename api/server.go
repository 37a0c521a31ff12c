// Package api serves a read-only REST view of the pairs and tokens of a node.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	pairtypes "github.com/ysip-labs/ysip/x/pair/types"
)

// Backend is the node state the server reads.
type Backend interface {
	ChainID() string
	Height() int64
	Pairs(ctx context.Context) ([]pairtypes.PairInfoResponse, error)
	QueryContract(ctx context.Context, contract string, req, resp any) error
	Balances(ctx context.Context, addr string) (sdk.Coins, error)
}

// Server represents the API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	backend Backend
	config  *Config
	logger  log.Logger
}

// Config holds server configuration
type Config struct {
	Address         string
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:1317",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(backend Backend, config *Config, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Server{
		backend: backend,
		config:  config,
		logger:  logger.With("module", "api"),
	}
	s.setupRouter()
	return s
}

// setupRouter configures the middleware chain and the routes
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(MetricsMiddleware())
	if s.config.RateLimitRPS > 0 {
		s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS, s.config.RateLimitBurst))
	}

	s.registerRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}).Handler(s.router)
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down API server")
	return srv.Shutdown(shutdownCtx)
}
