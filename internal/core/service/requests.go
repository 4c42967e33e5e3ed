package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vinolab/git-indexer/internal/adapters/db"
	"github.com/vinolab/git-indexer/internal/core/domain/entities"
	"github.com/vinolab/git-indexer/internal/metrics"
)

// requestProgressEvery is how many ingested requests pass between progress
// lines.
const requestProgressEvery = 50

// PlatformRequest is a merge or pull request as one hosting platform
// reports it. Each platform adapter implements the mapping onto the
// canonical entity; state vocabularies stay platform-native.
type PlatformRequest interface {
	RequestID() string
	State() string
	// IsTerminal reports whether the request reached a durable state. Open
	// requests are never ingested.
	IsTerminal() bool
	ToMergeRequest() (entities.MergeRequest, error)
}

// RequestTracker records merge and pull requests against registered
// repositories. Rows are written once; a request already on file is never
// updated.
type RequestTracker struct {
	repos    db.RepositoryStore
	requests db.MergeRequestStore
	log      *zap.SugaredLogger
}

// NewRequestTracker wires a RequestTracker.
func NewRequestTracker(repos db.RepositoryStore, requests db.MergeRequestStore, log *zap.SugaredLogger) *RequestTracker {
	return &RequestTracker{repos: repos, requests: requests, log: log}
}

// IngestRequests records every terminal request not yet on file for the
// repository and returns the number of newly created rows.
func (t *RequestTracker) IngestRequests(ctx context.Context, repo *entities.Repository, requests []PlatformRequest) (int, error) {
	created := 0

	for _, request := range requests {
		if !request.IsTerminal() {
			continue
		}

		exists, err := t.requests.Exists(ctx, repo.ID, request.RequestID())
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		record, err := request.ToMergeRequest()
		if err != nil {
			return created, fmt.Errorf("failed to map request %s: %w", request.RequestID(), err)
		}
		record.RepoID = repo.ID

		if err := t.requests.Create(ctx, &record); err != nil {
			return created, err
		}
		created++
		metrics.RequestsIndexed.Inc()

		if created%requestProgressEvery == 0 {
			t.log.Infow("request ingestion progress",
				"repo", repo.RepoName, "created", created)
		}
	}

	t.log.Infow("request ingestion finished", "repo", repo.RepoName, "created", created)
	return created, nil
}
