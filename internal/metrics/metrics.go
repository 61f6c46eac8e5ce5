package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts relying-party requests by operation and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankid_rp_requests_total",
			Help: "Total number of BankID relying-party requests",
		},
		[]string{"operation", "outcome"},
	)

	// RequestDuration tracks request round-trip time per operation
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankid_rp_request_duration_seconds",
			Help:    "BankID request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CollectStatus counts collect poll results by status and hint code
	CollectStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankid_rp_collect_status_total",
			Help: "Total number of collect responses by status and hint",
		},
		[]string{"status", "hint"},
	)
)
