package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the advisor.
type Metrics struct {
	Evaluations      *prometheus.CounterVec // labels: outcome={matched,no_match,unknown_region,invalid_month}
	MatchesPerResult prometheus.Histogram

	// Reference data size, set once at startup.
	Regions prometheus.Gauge
	Crops   prometheus.Gauge
	Zones   prometheus.Gauge
}

const namespace = "crop_advisor"

func newMetrics() *Metrics {
	return &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		MatchesPerResult: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matches_per_evaluation",
			Help:      "Number of crops recommended per evaluation.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		Regions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_regions",
			Help:      "Regions in the loaded reference data.",
		}),
		Crops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_crops",
			Help:      "Crops in the loaded reference data.",
		}),
		Zones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_zones",
			Help:      "Climate zones with a monthly temperature table.",
		}),
	}
}

// NewMetrics creates the advisor metrics and registers them with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Evaluations, m.MatchesPerResult, m.Regions, m.Crops, m.Zones)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics { return newMetrics() }
