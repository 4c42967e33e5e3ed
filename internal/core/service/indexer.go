package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vinolab/git-indexer/internal/adapters/db"
	"github.com/vinolab/git-indexer/internal/adapters/vcs"
	"github.com/vinolab/git-indexer/internal/core/domain/entities"
	"github.com/vinolab/git-indexer/internal/metrics"
	"github.com/vinolab/git-indexer/pkg/gitutil"
)

// progressEvery is how many affected commits pass between progress lines.
const progressEvery = 200

// SyncResult is the outcome of one repository sync. Callers that only need
// the historical integer contract use Total; Partial and Err carry the
// richer outcome for logging and scheduling.
type SyncResult struct {
	NewCommits    int
	BranchUpdates int
	Partial       bool
	Err           error
}

// Total is the number of affected commits, new plus branch-updated. A
// failed sync always totals zero.
func (r SyncResult) Total() int { return r.NewCommits + r.BranchUpdates }

// Indexer reconciles commits observed in a repository's history into the
// store. Commits are global and keyed by hash; per-repository membership
// lives in the link table.
//
// Two syncs of the same repository must not run concurrently: the linked
// commit snapshot taken at the start would race the check-then-create in
// the loop.
type Indexer struct {
	repos   db.RepositoryStore
	commits db.CommitStore
	authors db.AuthorStore
	source  vcs.SourceFactory
	log     *zap.SugaredLogger

	timeout     time.Duration
	incremental bool
}

// NewIndexer wires an Indexer. A timeout of zero disables the traversal
// budget; incremental restricts traversal to commits at or after the
// repository's last recorded commit timestamp.
func NewIndexer(
	repos db.RepositoryStore,
	commits db.CommitStore,
	authors db.AuthorStore,
	source vcs.SourceFactory,
	log *zap.SugaredLogger,
	timeout time.Duration,
	incremental bool,
) *Indexer {
	return &Indexer{
		repos:       repos,
		commits:     commits,
		authors:     authors,
		source:      source,
		log:         log,
		timeout:     timeout,
		incremental: incremental,
	}
}

// EnsureRepository registers a repository, redacting credentials from the
// clone URL before it is validated and stored. Existing rows are returned
// as-is.
func (s *Indexer) EnsureRepository(ctx context.Context, cloneURL, repoType string) (*entities.Repository, error) {
	candidate, err := entities.NewRepository(gitutil.RedactHTTPURL(cloneURL), repoType)
	if err != nil {
		return nil, err
	}
	return s.repos.GetOrCreate(ctx, candidate)
}

// IndexRepository registers the repository and reconciles its history.
// Traversal and storage failures are logged here and reported through the
// result, never raised; counts accumulated before a failure stay persisted
// but are not reported.
func (s *Indexer) IndexRepository(ctx context.Context, cloneURL, repoType string) SyncResult {
	repo, err := s.EnsureRepository(ctx, cloneURL, repoType)
	if err != nil {
		s.log.Errorw("repository registration failed",
			"repo", gitutil.DisplayURL(cloneURL), "error", err)
		metrics.SyncFailures.Inc()
		return SyncResult{Err: err}
	}

	result := s.sync(ctx, repo, cloneURL)
	if result.Err != nil {
		s.log.Errorw("sync failed",
			"repo", gitutil.DisplayURL(cloneURL), "error", result.Err)
		metrics.SyncFailures.Inc()
		return SyncResult{Err: result.Err}
	}

	if result.Partial {
		s.log.Warnw("sync stopped early on timeout",
			"repo", gitutil.DisplayURL(cloneURL),
			"new", result.NewCommits, "updated", result.BranchUpdates)
	} else {
		s.log.Infow("sync finished",
			"repo", gitutil.DisplayURL(cloneURL),
			"new", result.NewCommits, "updated", result.BranchUpdates)
	}
	return result
}

func (s *Indexer) sync(ctx context.Context, repo *entities.Repository, cloneURL string) SyncResult {
	if !repo.IsActive {
		s.log.Infow("skipping inactive repository", "repo", repo.RepoName)
		return SyncResult{}
	}

	known, err := s.commits.LinkedBranches(ctx, repo.ID)
	if err != nil {
		return SyncResult{Err: err}
	}

	var since *time.Time
	if s.incremental && repo.LastCommitAt != nil {
		since = repo.LastCommitAt
	}

	start := time.Now()
	var result SyncResult

	err = s.source(cloneURL).Walk(ctx, since, func(c vcs.LogCommit) error {
		if s.timeout > 0 && time.Since(start) > s.timeout {
			result.Partial = true
			return vcs.ErrStopWalk
		}

		branches := gitutil.NormalizeBranches(c.Branches)

		if stored, linked := known[c.SHA]; linked {
			if branches == stored {
				return nil
			}
			if err := s.commits.UpdateBranches(ctx, c.SHA, branches); err != nil {
				return err
			}
			known[c.SHA] = branches
			result.BranchUpdates++
			metrics.BranchUpdates.Inc()
		} else {
			if err := s.linkCommit(ctx, repo, c, branches); err != nil {
				return err
			}
			known[c.SHA] = branches
			result.NewCommits++
			metrics.CommitsIndexed.Inc()

			if s.incremental {
				committedAt := c.CommittedAt.UTC()
				if repo.LastCommitAt == nil || committedAt.After(*repo.LastCommitAt) {
					repo.LastCommitAt = &committedAt
				}
			}
		}

		if total := result.Total(); total%progressEvery == 0 {
			s.log.Infow("sync progress",
				"repo", gitutil.DisplayURL(cloneURL),
				"new", result.NewCommits, "updated", result.BranchUpdates)
		}
		return nil
	})
	if err != nil {
		return SyncResult{Err: err}
	}

	now := time.Now().UTC()
	repo.LastIndexedAt = &now
	if err := s.repos.Save(ctx, repo); err != nil {
		return SyncResult{Err: err}
	}

	return result
}

// linkCommit makes a traversed commit visible from the repository. The
// commit may already exist through another repository's history; only a
// genuinely new hash goes through ingestion.
func (s *Indexer) linkCommit(ctx context.Context, repo *entities.Repository, c vcs.LogCommit, branches string) error {
	existing, err := s.commits.GetBySHA(ctx, c.SHA)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := s.ingestCommit(ctx, c, branches); err != nil {
			return err
		}
	}
	return s.commits.Link(ctx, repo.ID, c.SHA)
}

// ingestCommit creates the commit row and its file rows. Runs inside one
// storage transaction so a failure leaves no half-written commit behind.
func (s *Indexer) ingestCommit(ctx context.Context, c vcs.LogCommit, branches string) error {
	author, err := s.authors.GetOrCreate(ctx, c.CommitterName, c.CommitterEmail)
	if err != nil {
		return fmt.Errorf("failed to resolve author for commit %s: %w", c.SHA, err)
	}

	commit := &entities.Commit{
		SHA:         c.SHA,
		Branches:    branches,
		Message:     entities.TruncateMessage(c.Message),
		CommittedAt: c.CommittedAt.UTC(),
		IsMerge:     c.IsMerge,
		NLines:      c.Lines,
		NFiles:      c.Files,
		NInsertions: c.Insertions,
		NDeletions:  c.Deletions,
		AuthorID:    author.ID,
	}

	files := make([]entities.CommittedFile, 0, len(c.ModifiedFiles))
	for _, fc := range c.ModifiedFiles {
		file := entities.NewCommittedFile(c.SHA, fc.ChangeType, fc.Path(), fc.Filename)
		file.NLinesAdded = fc.AddedLines
		file.NLinesDeleted = fc.DeletedLines
		file.NLinesChanged = fc.AddedLines + fc.DeletedLines
		file.NLinesOfCode = fc.NLinesOfCode
		file.NMethods = fc.NMethods
		file.NMethodsChanged = fc.NMethodsChanged
		files = append(files, file)
	}

	return s.commits.CreateWithFiles(ctx, commit, files)
}
