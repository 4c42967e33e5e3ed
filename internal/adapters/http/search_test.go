package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

type stubStores struct {
	commit  *entities.Commit
	authors []entities.Author
	repo    *entities.Repository
	commits []entities.Commit
}

func (s *stubStores) GetBySHA(_ context.Context, sha string) (*entities.Commit, error) {
	return s.commit, nil
}
func (s *stubStores) CreateWithFiles(context.Context, *entities.Commit, []entities.CommittedFile) error {
	return nil
}
func (s *stubStores) UpdateBranches(context.Context, string, string) error { return nil }
func (s *stubStores) Link(context.Context, uint, string) error             { return nil }
func (s *stubStores) LinkedBranches(context.Context, uint) (map[string]string, error) {
	return nil, nil
}
func (s *stubStores) ListByAuthorIDs(context.Context, []uint, int) ([]entities.Commit, error) {
	return s.commits, nil
}
func (s *stubStores) ListByRepositoryID(context.Context, uint, int) ([]entities.Commit, error) {
	return s.commits, nil
}
func (s *stubStores) GetOrCreate(_ context.Context, name, email string) (*entities.Author, error) {
	return nil, nil
}
func (s *stubStores) GetByRealEmail(context.Context, string) ([]entities.Author, error) {
	return s.authors, nil
}

type stubRepoStore struct {
	repo *entities.Repository
}

func (s *stubRepoStore) GetOrCreate(_ context.Context, candidate *entities.Repository) (*entities.Repository, error) {
	return candidate, nil
}
func (s *stubRepoStore) Save(context.Context, *entities.Repository) error { return nil }
func (s *stubRepoStore) GetByName(context.Context, string) (*entities.Repository, error) {
	return s.repo, nil
}
func (s *stubRepoStore) GetAll(context.Context) ([]entities.Repository, error) { return nil, nil }

func doSearch(t *testing.T, handler *SearchHandler, query string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/search?q="+query, nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestSearchRequiresQuery(t *testing.T) {
	handler := NewSearchHandler(&stubStores{}, &stubStores{}, &stubRepoStore{})

	code, body := doSearch(t, handler, "")
	assert.Equal(t, 400, code)
	assert.Equal(t, "error", body["status"])
}

func TestSearchBySHA(t *testing.T) {
	sha := strings.Repeat("a", 40)
	stores := &stubStores{commit: &entities.Commit{SHA: sha}}
	handler := NewSearchHandler(stores, stores, &stubRepoStore{})

	code, body := doSearch(t, handler, sha)
	assert.Equal(t, 200, code)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, sha, data[0].(map[string]interface{})["sha"])
}

func TestSearchByEmail(t *testing.T) {
	stores := &stubStores{
		authors: []entities.Author{{ID: 1, RealEmail: "alice@example.com"}},
		commits: []entities.Commit{{SHA: strings.Repeat("b", 40)}},
	}
	handler := NewSearchHandler(stores, stores, &stubRepoStore{})

	code, body := doSearch(t, handler, "alice@example.com")
	assert.Equal(t, 200, code)
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestSearchByRepositoryName(t *testing.T) {
	stores := &stubStores{commits: []entities.Commit{{SHA: strings.Repeat("c", 40)}}}
	handler := NewSearchHandler(stores, stores, &stubRepoStore{repo: &entities.Repository{ID: 3, RepoName: "app"}})

	code, body := doSearch(t, handler, "app")
	assert.Equal(t, 200, code)
	assert.Len(t, body["data"].([]interface{}), 1)
}

func TestSearchUnknownRepositoryIsEmpty(t *testing.T) {
	stores := &stubStores{}
	handler := NewSearchHandler(stores, stores, &stubRepoStore{})

	code, body := doSearch(t, handler, "ghost")
	assert.Equal(t, 200, code)
	assert.Nil(t, body["data"])
}
