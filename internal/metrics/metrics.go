package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the submission pipeline.
type Metrics struct {
	Submissions     *prometheus.CounterVec
	BookingsHeld    prometheus.Counter
	ProviderLatency prometheus.Histogram
	Errors          *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Flight request submissions by outcome status",
		}, []string{"status"}),
		BookingsHeld: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_held_total",
			Help:      "Bookings created and held with the provider",
		}),
		ProviderLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_seconds",
			Help:      "Duration of outbound provider calls",
			Buckets:   prometheus.DefBuckets,
		}),
		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors by operation",
		}, []string{"operation"}),
	}
}
