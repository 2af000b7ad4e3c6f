package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpv_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fpv_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	MessagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_messages_processed_total",
			Help: "Group messages run through the detection pipeline",
		},
	)

	ItemsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpv_items_detected_total",
			Help: "Listings detected from messages",
		},
		[]string{"category"},
	)

	ItemsMarkedSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_items_marked_sold_total",
			Help: "Listings flipped to sold via quoted replies",
		},
	)

	ExtractionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_extraction_failures_total",
			Help: "Messages skipped because listing extraction failed",
		},
	)

	// Scan metrics
	ScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_scans_total",
			Help: "Completed windowed historical scans",
		},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fpv_scan_duration_seconds",
			Help:    "Windowed scan duration",
			Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	ScanCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_scan_cache_hits_total",
			Help: "Windowed-scan requests served from cache",
		},
	)

	ScanCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fpv_scan_cache_misses_total",
			Help: "Windowed-scan requests that triggered a fresh scan",
		},
	)
)
