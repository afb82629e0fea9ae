package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted *prometheus.CounterVec
	TransfersFailed    *prometheus.CounterVec
	TransferDuration   prometheus.Histogram

	// Event publication metrics
	PublishAttempts  prometheus.Counter
	PublishFailures  prometheus.Counter
	PublishDeferrals prometheus.Counter

	// Remote gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotransfers_transfers_completed_total",
				Help: "Total number of completed transfers by request kind",
			},
			[]string{"kind"},
		),
		TransfersFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotransfers_transfers_failed_total",
				Help: "Total number of failed transfers by error type",
			},
			[]string{"error_type"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gotransfers_transfer_duration_seconds",
			Help:    "Duration of the full transfer saga",
			Buckets: prometheus.DefBuckets,
		}),

		PublishAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gotransfers_publish_attempts_total",
			Help: "Total number of event publish attempts",
		}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gotransfers_publish_failures_total",
			Help: "Total number of failed event publish attempts",
		}),
		PublishDeferrals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gotransfers_publish_deferrals_total",
			Help: "Total number of deferred event redeliveries scheduled",
		}),

		GatewayRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotransfers_gateway_requests_total",
				Help: "Total number of remote service requests by target and outcome",
			},
			[]string{"target", "outcome"},
		),
		GatewayDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotransfers_gateway_duration_seconds",
				Help:    "Duration of remote service requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"target"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotransfers_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotransfers_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotransfers_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path"},
		),
	}
}
