package entities

import (
	"time"
)

// MessageMaxLen bounds stored commit messages; squash merges can carry
// arbitrarily long bodies.
const MessageMaxLen = 2048

// Commit is a single VCS commit, stored once globally and keyed by its
// hash. A commit observed from several repositories (mirrors, forks) gets
// one row here and one RepositoryCommitLink row per repository.
//
// NLines through NDeletions are the aggregate counts reported by the
// traversal layer. NLinesChanged through NFilesIgnored are derived from
// committed_files by the stats rollup, never by the reconciler.
type Commit struct {
	SHA         string    `json:"sha" gorm:"column:sha;primaryKey;size:40"`
	Branches    string    `json:"branches" gorm:"size:1024"`
	Message     string    `json:"message" gorm:"size:2048"`
	CommittedAt time.Time `json:"commit_date" gorm:"column:created_at"`
	IsMerge     bool      `json:"is_merge"`

	NLines      int `json:"n_lines"`
	NFiles      int `json:"n_files"`
	NInsertions int `json:"n_insertions"`
	NDeletions  int `json:"n_deletions"`

	NLinesChanged int `json:"n_lines_changed"`
	NLinesIgnored int `json:"n_lines_ignored"`
	NFilesChanged int `json:"n_files_changed"`
	NFilesIgnored int `json:"n_files_ignored"`

	AuthorID uint   `json:"author_id"`
	Author   Author `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`

	Files []CommittedFile `json:"-" gorm:"foreignKey:CommitID;references:SHA"`
}

func (Commit) TableName() string { return "commits" }

// TruncateMessage bounds a commit message to MessageMaxLen.
func TruncateMessage(message string) string {
	if len(message) > MessageMaxLen {
		return message[:MessageMaxLen]
	}
	return message
}
