package vcs

import (
	"context"
	"errors"
	"time"
)

// ErrStopWalk can be returned from a walk callback to end the traversal
// early without reporting an error.
var ErrStopWalk = errors.New("stop walk")

// FileChange is one file modification inside a commit. NLinesOfCode,
// NMethods and NMethodsChanged are zero when the traversal backend cannot
// compute them.
type FileChange struct {
	ChangeType string
	OldPath    string
	NewPath    string
	Filename   string

	AddedLines   int
	DeletedLines int

	NLinesOfCode    int
	NMethods        int
	NMethodsChanged int
}

// Path is the file path the change should be recorded under: the new path
// when present, the old path otherwise.
func (fc FileChange) Path() string {
	if fc.NewPath != "" {
		return fc.NewPath
	}
	return fc.OldPath
}

// LogCommit is a single commit as reported by the traversal backend.
type LogCommit struct {
	SHA            string
	Message        string
	CommitterName  string
	CommitterEmail string
	CommittedAt    time.Time
	IsMerge        bool
	Branches       []string

	Lines      int
	Files      int
	Insertions int
	Deletions  int

	ModifiedFiles []FileChange
}

// CommitSource produces a lazy, finite, forward-only sequence of commits
// from a repository. When since is non-nil only commits at or after the
// bound are visited. The callback may return ErrStopWalk to stop early.
type CommitSource interface {
	Walk(ctx context.Context, since *time.Time, fn func(LogCommit) error) error
}

// SourceFactory builds a CommitSource for a clone URL or local path.
type SourceFactory func(cloneURL string) CommitSource
