// README: Prometheus metrics for matching, bookings, and HTTP traffic.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool", Name: "match_queries_total", Help: "Total match queries served"})
	GeocodeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool", Name: "geocode_cache_hits_total", Help: "Geocode lookups served from cache"})
	GeocodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool", Name: "geocode_failures_total", Help: "Geocode lookups that failed"})
	BookingsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool", Name: "bookings_accepted_total", Help: "Bookings accepted by drivers"})
	BookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "carpool", Name: "bookings_rejected_total", Help: "Bookings rejected by drivers"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carpool", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carpool",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
