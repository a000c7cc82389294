package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesInserted   prometheus.Counter
	SearchesSkipped    prometheus.Counter
	SearchesDeleted    prometheus.Counter
	ItinerariesStored  prometheus.Counter
	RoutesCreated      prometheus.Counter
	RoutesUpdated      prometheus.Counter
	RoutesPruned       prometheus.Counter
	RouteFieldChanges  *prometheus.CounterVec
	CurrentFlagsClears prometheus.Counter
	IngestTime         prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_inserted_total",
			Help:      "The total number of searches stored",
		}),
		SearchesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_skipped_total",
			Help:      "The total number of payloads skipped because the search was already stored",
		}),
		SearchesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_deleted_total",
			Help:      "The total number of searches deleted",
		}),
		ItinerariesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_stored_total",
			Help:      "The total number of itineraries committed",
		}),
		RoutesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_created_total",
			Help:      "The total number of new route rows",
		}),
		RoutesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_updated_total",
			Help:      "The total number of stored routes updated in place",
		}),
		RoutesPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_pruned_total",
			Help:      "The total number of orphan routes deleted with their last search",
		}),
		RouteFieldChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_field_changes_total",
			Help:      "The total number of route field differences seen on re-ingestion",
		}, []string{"field", "applied"}),
		CurrentFlagsClears: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "current_flags_cleared_total",
			Help:      "The total number of searches whose current flag was cleared",
		}),
		IngestTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_ingest_time_seconds",
			Help:      "Time taken to store one search payload",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
