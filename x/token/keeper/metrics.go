package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TokenMetrics holds the Prometheus metrics of token contracts.
type TokenMetrics struct {
	Operations *prometheus.CounterVec
	Minted     *prometheus.CounterVec
	Burned     *prometheus.CounterVec
}

var (
	tokenMetricsOnce sync.Once
	tokenMetrics     *TokenMetrics
)

// NewTokenMetrics creates and registers token metrics once per process.
func NewTokenMetrics() *TokenMetrics {
	tokenMetricsOnce.Do(func() {
		tokenMetrics = &TokenMetrics{
			Operations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "token",
					Name:      "operations_total",
					Help:      "Token executions by action and outcome",
				},
				[]string{"action", "status"},
			),
			Minted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "token",
					Name:      "minted_total",
					Help:      "Total amount minted in base units",
				},
				[]string{"token"},
			),
			Burned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "token",
					Name:      "burned_total",
					Help:      "Total amount burned in base units",
				},
				[]string{"token"},
			),
		}
	})
	return tokenMetrics
}
