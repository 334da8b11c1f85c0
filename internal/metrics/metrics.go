package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend API calls made by the client
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memenem_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "endpoint", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memenem_api_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Companion server requests
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Collection changes
	CollectionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memenem_collection_operations_total",
			Help: "Total number of saved collection operations",
		},
		[]string{"operation", "status"},
	)

	CollectionSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "memenem_collection_size",
			Help: "Number of memes in the saved collection",
		},
	)

	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memenem_downloads_total",
			Help: "Total number of meme image downloads",
		},
		[]string{"status"},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version"},
	)
)

// Init records static application info.
func Init(serviceName, version string) {
	ApplicationInfo.WithLabelValues(serviceName, version).Set(1)
}
