// Package metrics holds the Prometheus collectors for the pagination
// controller and its content sources.
//
// Metrics:
//   - newsdeck_page_fetches_total{result} (Counter): page fetches by result (ok, error)
//   - newsdeck_stale_responses_total (Counter): fetch results dropped because a newer navigation superseded them
//   - newsdeck_probes_total{result} (Counter): existence probes by result (hit, miss, error)
//   - newsdeck_total_pages (Gauge): page count found by discovery
//   - newsdeck_fetch_duration_seconds (Histogram): page fetch latency
//   - newsdeck_navigations_total{origin} (Counter): accepted navigations by origin
//   - newsdeck_site_requests_total{method,code} (Counter): requests answered by the site server
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PageFetches tracks page fetches by result
	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdeck_page_fetches_total",
			Help: "Total number of page content fetches",
		},
		[]string{"result"}, // "ok", "error"
	)

	// StaleResponses tracks superseded fetch results
	StaleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsdeck_stale_responses_total",
			Help: "Total number of fetch results discarded as stale",
		},
	)

	// Probes tracks page existence probes
	Probes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdeck_probes_total",
			Help: "Total number of page existence probes",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// TotalPages is the discovered page count
	TotalPages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdeck_total_pages",
			Help: "Number of content pages found at startup",
		},
	)

	// FetchDuration tracks page fetch latency
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsdeck_fetch_duration_seconds",
			Help:    "Page fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Navigations tracks accepted navigations by origin
	Navigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdeck_navigations_total",
			Help: "Total number of accepted navigations",
		},
		[]string{"origin"},
	)

	// SiteRequests tracks requests served by `newsdeck serve`
	SiteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdeck_site_requests_total",
			Help: "Total number of requests answered by the site server",
		},
		[]string{"method", "code"},
	)
)

// Handler returns the scrape handler for the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
