package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics of the planner service
type Metrics struct {
	TripsGenerated  prometheus.Counter
	TripMutations   *prometheus.CounterVec
	Failures        *prometheus.CounterVec
	PlaceholderLegs prometheus.Counter
	TransportSearch prometheus.Counter
	OperationTime   *prometheus.HistogramVec
}

// NewMetrics registers the planner metrics with reg. A nil reg uses the
// default prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TripsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_generated_total",
			Help:      "The total number of successfully generated trips",
		}),
		TripMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trip_mutations_total",
			Help:      "The total number of successful trip edits",
		}, []string{"operation"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "The total number of failed planner operations",
		}, []string{"operation", "code"}),
		PlaceholderLegs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placeholder_legs_total",
			Help:      "The total number of legs estimated without a search result",
		}),
		TransportSearch: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_searches_total",
			Help:      "The total number of direct transport searches",
		}),
		OperationTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time taken by planner operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
