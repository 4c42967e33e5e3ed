package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vinolab/git-indexer/internal/adapters/vcs"
	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// Stateful in-memory stores. They accumulate across calls so multi-run
// properties like idempotence can be asserted on row counts.

type fakeRepositoryStore struct {
	repos  []*entities.Repository
	nextID uint
}

func newFakeRepositoryStore() *fakeRepositoryStore {
	return &fakeRepositoryStore{nextID: 1}
}

func (s *fakeRepositoryStore) GetOrCreate(_ context.Context, candidate *entities.Repository) (*entities.Repository, error) {
	for _, repo := range s.repos {
		if repo.CloneURL == candidate.CloneURL && repo.RepoType == candidate.RepoType {
			return repo, nil
		}
	}
	candidate.ID = s.nextID
	s.nextID++
	s.repos = append(s.repos, candidate)
	return candidate, nil
}

func (s *fakeRepositoryStore) Save(_ context.Context, repo *entities.Repository) error {
	for i, existing := range s.repos {
		if existing.ID == repo.ID {
			s.repos[i] = repo
			return nil
		}
	}
	return errors.New("repository not found")
}

func (s *fakeRepositoryStore) GetByName(_ context.Context, name string) (*entities.Repository, error) {
	for _, repo := range s.repos {
		if repo.RepoName == name {
			return repo, nil
		}
	}
	return nil, nil
}

func (s *fakeRepositoryStore) GetAll(_ context.Context) ([]entities.Repository, error) {
	all := make([]entities.Repository, 0, len(s.repos))
	for _, repo := range s.repos {
		all = append(all, *repo)
	}
	return all, nil
}

type fakeCommitStore struct {
	commits map[string]*entities.Commit
	files   map[string][]entities.CommittedFile
	links   map[uint]map[string]bool
}

func newFakeCommitStore() *fakeCommitStore {
	return &fakeCommitStore{
		commits: make(map[string]*entities.Commit),
		files:   make(map[string][]entities.CommittedFile),
		links:   make(map[uint]map[string]bool),
	}
}

func (s *fakeCommitStore) GetBySHA(_ context.Context, sha string) (*entities.Commit, error) {
	return s.commits[sha], nil
}

func (s *fakeCommitStore) CreateWithFiles(_ context.Context, commit *entities.Commit, files []entities.CommittedFile) error {
	if _, ok := s.commits[commit.SHA]; ok {
		return errors.New("duplicate commit")
	}
	s.commits[commit.SHA] = commit
	s.files[commit.SHA] = files
	return nil
}

func (s *fakeCommitStore) UpdateBranches(_ context.Context, sha, branches string) error {
	commit, ok := s.commits[sha]
	if !ok {
		return errors.New("commit not found")
	}
	commit.Branches = branches
	return nil
}

func (s *fakeCommitStore) Link(_ context.Context, repoID uint, sha string) error {
	if s.links[repoID] == nil {
		s.links[repoID] = make(map[string]bool)
	}
	s.links[repoID][sha] = true
	return nil
}

func (s *fakeCommitStore) LinkedBranches(_ context.Context, repoID uint) (map[string]string, error) {
	known := make(map[string]string)
	for sha := range s.links[repoID] {
		known[sha] = s.commits[sha].Branches
	}
	return known, nil
}

func (s *fakeCommitStore) ListByAuthorIDs(_ context.Context, authorIDs []uint, limit int) ([]entities.Commit, error) {
	var commits []entities.Commit
	for _, commit := range s.commits {
		for _, id := range authorIDs {
			if commit.AuthorID == id {
				commits = append(commits, *commit)
			}
		}
	}
	return commits, nil
}

func (s *fakeCommitStore) ListByRepositoryID(_ context.Context, repoID uint, limit int) ([]entities.Commit, error) {
	var commits []entities.Commit
	for sha := range s.links[repoID] {
		commits = append(commits, *s.commits[sha])
	}
	return commits, nil
}

type fakeAuthorStore struct {
	authors map[string]*entities.Author
	nextID  uint
}

func newFakeAuthorStore() *fakeAuthorStore {
	return &fakeAuthorStore{authors: make(map[string]*entities.Author), nextID: 1}
}

func (s *fakeAuthorStore) GetOrCreate(_ context.Context, name, email string) (*entities.Author, error) {
	key := strings.ToLower(name) + "|" + strings.ToLower(email)
	if author, ok := s.authors[key]; ok {
		return author, nil
	}
	author := &entities.Author{
		ID:        s.nextID,
		Name:      strings.ToLower(name),
		Email:     strings.ToLower(email),
		RealName:  strings.ToLower(name),
		RealEmail: strings.ToLower(email),
	}
	s.nextID++
	s.authors[key] = author
	return author, nil
}

func (s *fakeAuthorStore) GetByRealEmail(_ context.Context, email string) ([]entities.Author, error) {
	var authors []entities.Author
	for _, author := range s.authors {
		if author.RealEmail == strings.ToLower(email) {
			authors = append(authors, *author)
		}
	}
	return authors, nil
}

type fakeMergeRequestStore struct {
	requests []entities.MergeRequest
}

func (s *fakeMergeRequestStore) Exists(_ context.Context, repoID uint, requestID string) (bool, error) {
	for _, request := range s.requests {
		if request.RepoID == repoID && request.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeMergeRequestStore) Create(_ context.Context, request *entities.MergeRequest) error {
	s.requests = append(s.requests, *request)
	return nil
}

// fakeSource replays a fixed commit list, honoring the since bound and the
// stop sentinel the way the real traversal does.
type fakeSource struct {
	commits []vcs.LogCommit
	walks   int
}

func (s *fakeSource) Walk(_ context.Context, since *time.Time, fn func(vcs.LogCommit) error) error {
	s.walks++
	for _, c := range s.commits {
		if since != nil && c.CommittedAt.Before(*since) {
			continue
		}
		if err := fn(c); err != nil {
			if errors.Is(err, vcs.ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

func singleSourceFactory(source *fakeSource) vcs.SourceFactory {
	return func(string) vcs.CommitSource { return source }
}
