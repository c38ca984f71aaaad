// Package metrics defines the Prometheus collectors for the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger engine
	BalanceComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_balance_computations_total",
			Help: "Total balance computations by scope kind",
		},
		[]string{"scope"}, // pair|group
	)
	SimplifiedTransactions = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledger_simplified_transactions",
			Help:    "Number of suggested transactions per group simplification",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Init registers all collectors. Call once at startup.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(BalanceComputations)
	prometheus.MustRegister(SimplifiedTransactions)
}
