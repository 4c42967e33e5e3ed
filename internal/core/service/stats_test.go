package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinolab/git-indexer/internal/adapters/db"
)

type fakeStatsStore struct {
	rows       []db.ExportRow
	recomputes int
	errs       []error
}

func (s *fakeStatsStore) Recompute(_ context.Context) []error {
	s.recomputes++
	return s.errs
}

func (s *fakeStatsStore) ExportRows(_ context.Context) ([]db.ExportRow, error) {
	return s.rows, nil
}

func TestExportColumnOrder(t *testing.T) {
	store := &fakeStatsStore{rows: []db.ExportRow{{
		AuthorID:   7,
		Name:       "alice smith",
		Email:      "alice@example.com",
		RealName:   "alice smith",
		RealEmail:  "alice@example.com",
		SHA:        "aaa",
		CommitDate: "2024-05-01T10:00:00Z",
		IsMerge:    1,
		ChangeType: "MODIFY",
		FilePath:   "src/main.go",
		FileName:   "main.go",
		FileType:   "go",
		RepoName:   "app",
		RepoType:   "gitlab",
		CloneURL:   "https://gitlab.com/team/app.git",
		RepoID:     3,
	}}}
	stats := NewStats(store, zap.NewNop().Sugar())

	var out bytes.Buffer
	require.NoError(t, stats.Export(context.Background(), &out))

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "author_id", header[0])
	assert.Equal(t, "sha", header[8])
	assert.Equal(t, "is_merge", header[10])
	assert.Equal(t, "repo_inlude_in_stats", header[len(header)-2])
	assert.Equal(t, "last_indexed_at", header[len(header)-1])

	row := records[1]
	assert.Len(t, row, len(header))
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "aaa", row[8])
	assert.Equal(t, "1", row[10])
	assert.Equal(t, "app", row[32])
	assert.Equal(t, "gitlab", row[34])
}

func TestRecomputeRunsAllStatements(t *testing.T) {
	store := &fakeStatsStore{errs: []error{errors.New("view locked")}}
	stats := NewStats(store, zap.NewNop().Sugar())

	stats.Recompute(context.Background())

	assert.Equal(t, 1, store.recomputes)
}
