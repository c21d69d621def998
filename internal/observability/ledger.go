package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Batch outcome label values.
const (
	BatchCommitted = "committed"
	BatchDiscarded = "discarded"
)

// LedgerMetrics contains Prometheus metrics for revision batch processing.
type LedgerMetrics struct {
	batchesTotal   *prometheus.CounterVec
	recordsBuilt   prometheus.Counter
	entriesSkipped prometheus.Counter
	commitDuration prometheus.Histogram
}

// NewLedgerMetrics creates and registers the ledger metric collectors.
func NewLedgerMetrics(registry *prometheus.Registry) (*LedgerMetrics, error) {
	m := &LedgerMetrics{
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jukevis_batches_total",
			Help: "Total number of submitted score batches by outcome",
		}, []string{"outcome"}),
		recordsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jukevis_records_built_total",
			Help: "Total number of score records built across all batches",
		}),
		entriesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jukevis_entries_skipped_total",
			Help: "Total number of submitted entries skipped for unknown tunes",
		}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jukevis_commit_duration_seconds",
			Help:    "Time spent building and committing one revision",
			Buckets: prometheus.DefBuckets,
		}),
	}

	collectors := []prometheus.Collector{
		m.batchesTotal, m.recordsBuilt, m.entriesSkipped, m.commitDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordBatch counts one finished batch with the given outcome.
func (m *LedgerMetrics) RecordBatch(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.batchesTotal.WithLabelValues(outcome).Inc()
	m.commitDuration.Observe(duration.Seconds())
}

// RecordsBuilt counts records built during a batch.
func (m *LedgerMetrics) RecordsBuilt(n int) {
	if m == nil {
		return
	}
	m.recordsBuilt.Add(float64(n))
}

// EntriesSkipped counts entries dropped for unknown tune identifiers.
func (m *LedgerMetrics) EntriesSkipped(n int) {
	if m == nil {
		return
	}
	m.entriesSkipped.Add(float64(n))
}
