package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ScrapeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_runs_total",
			Help: "Total number of scrape runs by pipeline and outcome.",
		},
		[]string{"pipeline", "outcome"}, // outcome: success, empty, failure
	)

	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_duration_seconds",
			Help:    "Duration of scrape runs.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"pipeline"},
	)

	ScrapeItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_items_total",
			Help: "Total number of structured records extracted.",
		},
		[]string{"pipeline"},
	)

	PriceLocatorAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_locator_attempts_total",
			Help: "Total number of price-grid locator attempts.",
		},
	)

	TripCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_cache_lookups_total",
			Help: "Trip cache lookups by result.",
		},
		[]string{"result"}, // hit, miss, error
	)
)

const (
	PipelineDeals     = "deals"
	PipelinePriceGrid = "price_grid"
)
