package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wird_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wird_request_duration_seconds",
			Help: "Request duration in seconds",
		},
		[]string{"method", "path"},
	)

	EntriesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wird_entries_submitted_total",
			Help: "Total activity entries appended to the ledger",
		},
	)

	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wird_login_failures_total",
			Help: "Total failed login attempts",
		},
	)
)

func Register() {
	prometheus.MustRegister(RequestCount, RequestDuration, EntriesSubmitted, LoginFailures)
}
