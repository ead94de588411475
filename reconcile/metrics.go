package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK          = "ok"
	outcomeIndexError  = "index_error"
	outcomeWalletError = "wallet_error"
)

// Metrics holds the reconciliation Prometheus collectors.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Held     prometheus.Gauge
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ord_reconcile_runs_total",
				Help: "Number of reconciliation runs by outcome",
			},
			[]string{"outcome"},
		),
		Held: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ord_reconcile_held_inscriptions",
				Help: "Inscriptions on unspent wallet outputs at the last successful run",
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ord_reconcile_duration_seconds",
				Help:    "Latency of reconciliation runs",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Held, m.Duration)
	}
	return m
}

func (m *Metrics) observe(outcome string, start time.Time, held int) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	m.Duration.Observe(time.Since(start).Seconds())
	if outcome == outcomeOK {
		m.Held.Set(float64(held))
	}
}
