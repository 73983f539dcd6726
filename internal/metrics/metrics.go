package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GateDecisions counts gate evaluations by outcome ("allow" or one of
	// the deny reasons).
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "visithub",
		Name:      "gate_decisions_total",
		Help:      "Contribution gate evaluations by outcome.",
	}, []string{"outcome"})

	// BulkItems counts per-item bulk outcomes by action and result.
	BulkItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "visithub",
		Name:      "bulk_items_total",
		Help:      "Bulk mutation items processed by action and outcome.",
	}, []string{"action", "outcome"})

	// BulkReplays counts bulk requests answered from the idempotency cache.
	BulkReplays = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "visithub",
		Name:      "bulk_replays_total",
		Help:      "Bulk requests replayed from a prior idempotency key.",
	})
)
