package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Artist status transitions by target status and outcome",
		},
		[]string{"status", "result"},
	)

	mediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Gallery uploads by media kind and outcome",
		},
		[]string{"kind", "result"},
	)

	cascadeDivergences = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_divergences_total",
			Help: "Status cascades that failed after the account write committed",
		},
	)

	cascadeRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_repairs_total",
			Help: "Repair attempts of diverged cascades by outcome",
		},
		[]string{"result"},
	)
)

const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultPartial = "partial"
)

func StatusTransition(status, result string) {
	statusTransitions.WithLabelValues(status, result).Inc()
}

func MediaUpload(kind, result string) {
	mediaUploads.WithLabelValues(kind, result).Inc()
}

func CascadeDivergence() {
	cascadeDivergences.Inc()
}

func CascadeRepair(result string) {
	cascadeRepairs.WithLabelValues(result).Inc()
}
