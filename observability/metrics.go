// Package observability exposes process metrics and the health endpoint.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics
	TransactionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatstore_transactions_applied_total",
			Help: "Total transactions committed",
		},
		[]string{"op"},
	)

	TransactionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatstore_transactions_rejected_total",
			Help: "Total transactions rejected",
		},
		[]string{"op", "reason"}, // "validation", "corruption" or "storage"
	)

	ApplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatstore_apply_duration_seconds",
			Help:    "Time spent applying one transaction",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	CommitStreams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatstore_commit_streams_total",
			Help: "Total commit streams by outcome",
		},
		[]string{"outcome"}, // "ok" or "aborted"
	)

	// Subscription metrics
	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatstore_active_subscriptions",
			Help: "Subscriptions currently open",
		},
	)

	SubscriptionRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatstore_subscription_refreshes_total",
			Help: "Total subscription result recomputations",
		},
	)

	// Search metrics
	IndexedMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatstore_indexed_messages_total",
			Help: "Total message index updates",
		},
	)

	SearchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatstore_search_queries_total",
			Help: "Total search queries",
		},
	)

	// Supervision metrics
	WorkerRestarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatstore_worker_restarts_total",
			Help: "Total worker restarts after a failure or a panic",
		},
		[]string{"worker"},
	)

	// Storage metrics
	StoreBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chatstore_store_bytes",
			Help: "On-disk size of the document store",
		},
		[]string{"part"}, // "lsm" or "vlog"
	)

	ValueLogRewrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatstore_value_log_rewrites_total",
			Help: "Total value log files rewritten by GC",
		},
	)
)
