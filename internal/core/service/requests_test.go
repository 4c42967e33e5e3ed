package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

type stubRequest struct {
	id       string
	state    string
	terminal bool
}

func (r stubRequest) RequestID() string { return r.id }
func (r stubRequest) State() string     { return r.state }
func (r stubRequest) IsTerminal() bool  { return r.terminal }
func (r stubRequest) ToMergeRequest() (entities.MergeRequest, error) {
	return entities.MergeRequest{
		RequestID: r.id,
		State:     r.state,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, nil
}

func TestIngestRequestsSkipsOpenAndDuplicates(t *testing.T) {
	store := &fakeMergeRequestStore{}
	tracker := NewRequestTracker(newFakeRepositoryStore(), store, zap.NewNop().Sugar())
	repo := &entities.Repository{ID: 1, RepoName: "app"}

	requests := []PlatformRequest{
		stubRequest{id: "1", state: "merged", terminal: true},
		stubRequest{id: "2", state: "opened", terminal: false},
		stubRequest{id: "3", state: "closed", terminal: true},
	}

	created, err := tracker.IngestRequests(context.Background(), repo, requests)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.Len(t, store.requests, 2)
	assert.Equal(t, "merged", store.requests[0].State)
	assert.Equal(t, uint(1), store.requests[0].RepoID)

	// a second ingestion of the same batch creates nothing
	created, err = tracker.IngestRequests(context.Background(), repo, requests)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, store.requests, 2)
}

func TestIngestRequestsPerRepositoryDedup(t *testing.T) {
	store := &fakeMergeRequestStore{}
	tracker := NewRequestTracker(newFakeRepositoryStore(), store, zap.NewNop().Sugar())

	requests := []PlatformRequest{stubRequest{id: "1", state: "merged", terminal: true}}

	created, err := tracker.IngestRequests(context.Background(), &entities.Repository{ID: 1}, requests)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// same request id on another repository is a separate row
	created, err = tracker.IngestRequests(context.Background(), &entities.Repository{ID: 2}, requests)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, store.requests, 2)
}
