// Package observability provides prometheus metrics for the score ledger.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry
	Ledger   *LedgerMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	ledgerMetrics, err := NewLedgerMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Ledger:   ledgerMetrics,
	}, nil
}

// Handler returns an HTTP handler exposing the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
