package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GitSource walks commit history with go-git. Local paths are opened in
// place; remote URLs are cloned bare into a temporary directory that is
// removed when the walk finishes.
type GitSource struct {
	cloneURL string
}

// NewGitSource builds a CommitSource for the given clone URL or path.
func NewGitSource(cloneURL string) CommitSource {
	return &GitSource{cloneURL: cloneURL}
}

func (s *GitSource) Walk(ctx context.Context, since *time.Time, fn func(LogCommit) error) error {
	repo, cleanup, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	membership, err := branchMembership(repo)
	if err != nil {
		return err
	}

	iter, err := repo.Log(&git.LogOptions{
		All:   true,
		Since: since,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// empty repository, zero commits is a valid outcome
			return nil
		}
		return fmt.Errorf("failed to read commit log: %w", err)
	}

	return iter.ForEach(func(c *object.Commit) error {
		logCommit, err := toLogCommit(ctx, c, membership[c.Hash.String()])
		if err != nil {
			return err
		}
		if err := fn(logCommit); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return storer.ErrStop
			}
			return err
		}
		return nil
	})
}

func (s *GitSource) open(ctx context.Context) (*git.Repository, func(), error) {
	noop := func() {}

	if info, err := os.Stat(s.cloneURL); err == nil && info.IsDir() {
		repo, err := git.PlainOpen(s.cloneURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open repository %s: %w", s.cloneURL, err)
		}
		return repo, noop, nil
	}

	dir, err := os.MkdirTemp("", "indexer-clone-*")
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create clone directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	repo, err := git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{URL: s.cloneURL})
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("failed to clone %s: %w", s.cloneURL, err)
	}
	return repo, cleanup, nil
}

// branchMembership maps every reachable commit hash to the branch refs
// (local and remote) it is on. Walking each branch head is quadratic in
// the worst case but bounded by the per-repository sync timeout upstream.
func branchMembership(repo *git.Repository) (map[string][]string, error) {
	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	membership := make(map[string][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if ref.Type() != plumbing.HashReference || (!name.IsBranch() && !name.IsRemote()) {
			return nil
		}

		head, err := repo.CommitObject(ref.Hash())
		if err != nil {
			// ref pointing at a tag object or missing commit
			return nil
		}

		branch := name.Short()
		iter := object.NewCommitPreorderIter(head, nil, nil)
		return iter.ForEach(func(c *object.Commit) error {
			membership[c.Hash.String()] = append(membership[c.Hash.String()], branch)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch membership: %w", err)
	}
	return membership, nil
}

func toLogCommit(ctx context.Context, c *object.Commit, branches []string) (LogCommit, error) {
	logCommit := LogCommit{
		SHA:            c.Hash.String(),
		Message:        c.Message,
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommittedAt:    c.Committer.When,
		IsMerge:        c.NumParents() > 1,
		Branches:       branches,
	}

	tree, err := c.Tree()
	if err != nil {
		return logCommit, fmt.Errorf("failed to load tree for %s: %w", logCommit.SHA, err)
	}

	// merge commits are diffed against their first parent
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return logCommit, fmt.Errorf("failed to load parent of %s: %w", logCommit.SHA, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return logCommit, fmt.Errorf("failed to load parent tree of %s: %w", logCommit.SHA, err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return logCommit, fmt.Errorf("failed to diff %s: %w", logCommit.SHA, err)
	}

	for _, change := range changes {
		fileChange, err := toFileChange(ctx, change)
		if err != nil {
			return logCommit, err
		}
		logCommit.ModifiedFiles = append(logCommit.ModifiedFiles, fileChange)
		logCommit.Insertions += fileChange.AddedLines
		logCommit.Deletions += fileChange.DeletedLines
	}
	logCommit.Files = len(changes)
	logCommit.Lines = logCommit.Insertions + logCommit.Deletions

	return logCommit, nil
}

func toFileChange(ctx context.Context, change *object.Change) (FileChange, error) {
	fileChange := FileChange{
		ChangeType: changeType(change.From.Name, change.To.Name),
		OldPath:    change.From.Name,
		NewPath:    change.To.Name,
	}
	fileChange.Filename = path.Base(fileChange.Path())

	patch, err := change.PatchContext(ctx)
	if err != nil {
		return fileChange, fmt.Errorf("failed to compute patch for %s: %w", fileChange.Path(), err)
	}
	for _, stat := range patch.Stats() {
		fileChange.AddedLines += stat.Addition
		fileChange.DeletedLines += stat.Deletion
	}

	return fileChange, nil
}

func changeType(fromPath, toPath string) string {
	switch {
	case fromPath == "" && toPath != "":
		return "ADD"
	case fromPath != "" && toPath == "":
		return "DELETE"
	case fromPath != "" && toPath != "" && fromPath != toPath:
		return "RENAME"
	case fromPath != "" && toPath != "":
		return "MODIFY"
	default:
		return "UNKNOWN"
	}
}
