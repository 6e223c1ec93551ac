package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DCTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dc_transitions_total",
			Help: "Delivery challan status transitions by action and result",
		},
		[]string{"action", "result"},
	)

	ApprovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approvals_total",
			Help: "Payment and expense review decisions by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)
)
