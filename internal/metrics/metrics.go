package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DeliveriesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deliveries_recorded_total",
			Help: "Delivery records created",
		},
	)

	DuplicateDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deliveries_duplicate_total",
			Help: "Delivery submissions absorbed by the duplicate guard",
		},
	)

	ReconciliationRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciliation_runs_total",
			Help: "End-of-day verification submissions",
		},
	)

	ReconciliationLineFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciliation_line_failures_total",
			Help: "Verification lines rejected or failed inside a run",
		},
	)

	BillsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bills_generated_total",
			Help: "Bills generated",
		},
	)
)
