package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PairMetrics holds all Prometheus metrics for the pair contract
type PairMetrics struct {
	// Swap metrics
	SwapsTotal   *prometheus.CounterVec
	SwapVolume   *prometheus.CounterVec
	ProtocolFees *prometheus.CounterVec
	SwapSpread   prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec

	// Lifecycle metrics
	PairsInstantiated   prometheus.Counter
	LPTokensProvisioned prometheus.Counter
	OperationErrors     *prometheus.CounterVec
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// NewPairMetrics creates and registers pair metrics (singleton pattern)
func NewPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pair", "offer_asset", "ask_asset"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "swap_volume_total",
					Help:      "Total offered amount in base units",
				},
				[]string{"pair", "asset"},
			),
			ProtocolFees: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "protocol_fees_total",
					Help:      "Total protocol fees forwarded to the fee recipient",
				},
				[]string{"pair", "asset"},
			),
			SwapSpread: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "swap_spread_ratio",
					Help:      "Shortfall of the swap output against the spot price output",
					Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5},
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity tokens minted",
				},
				[]string{"pair"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity tokens burned",
				},
				[]string{"pair"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "reserves",
					Help:      "Current reserve of each pool asset",
				},
				[]string{"pair", "asset"},
			),
			PairsInstantiated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "instantiated_total",
					Help:      "Total number of pairs instantiated",
				},
			),
			LPTokensProvisioned: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "lp_tokens_provisioned_total",
					Help:      "Total number of liquidity tokens provisioned",
				},
			),
			OperationErrors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "ysip",
					Subsystem: "pair",
					Name:      "operation_errors_total",
					Help:      "Total failed pair operations by operation and error",
				},
				[]string{"operation", "error"},
			),
		}
	})
	return pairMetrics
}
