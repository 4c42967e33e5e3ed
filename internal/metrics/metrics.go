package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics. Observability hooks only; nothing in the
// sync path depends on them.
var (
	CommitsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_commits_indexed_total",
		Help: "Number of commits newly linked to a repository.",
	})

	BranchUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_branch_updates_total",
		Help: "Number of stored commits whose branch list was refreshed.",
	})

	SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_sync_failures_total",
		Help: "Number of repository syncs that ended with an error.",
	})

	RequestsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_requests_indexed_total",
		Help: "Number of merge or pull requests recorded.",
	})
)
