package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Planning instruments MRP runs and capacity checks. A nil *Planning is a
// no-op so tests and the CLI can skip registration entirely.
type Planning struct {
	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	capacityChecks prometheus.Counter
}

// NewPlanning registers planning metrics on the given registerer
func NewPlanning(reg prometheus.Registerer) *Planning {
	factory := promauto.With(reg)
	return &Planning{
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrp_runs_total",
			Help: "MRP runs by outcome.",
		}, []string{"outcome"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mrp_run_duration_seconds",
			Help:    "Wall time of MRP runs.",
			Buckets: prometheus.DefBuckets,
		}),
		capacityChecks: factory.NewCounter(prometheus.CounterOpts{
			Name: "mrp_capacity_checks_total",
			Help: "Capacity validation runs.",
		}),
	}
}

// ObserveRun records one MRP run with its outcome and duration
func (p *Planning) ObserveRun(outcome string, d time.Duration) {
	if p == nil {
		return
	}
	p.runsTotal.WithLabelValues(outcome).Inc()
	p.runDuration.Observe(d.Seconds())
}

// ObserveCapacityCheck records one capacity validation run
func (p *Planning) ObserveCapacityCheck() {
	if p == nil {
		return
	}
	p.capacityChecks.Inc()
}
