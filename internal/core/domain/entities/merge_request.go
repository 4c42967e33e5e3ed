package entities

import (
	"time"
)

// MergeRequest is a merge request (GitLab) or pull request (GitHub) on a
// repository, unique per (repo, request_id). Rows are created once, the
// first time a terminal request is seen, and never updated afterwards: the
// recorded state is a snapshot as of first ingestion.
//
// State keeps the platform's native vocabulary. All timestamps are UTC
// instants, converted once at the platform adapter boundary. HasTests and
// HasTestPassed are reserved for CI-signal enrichment and not populated
// here.
type MergeRequest struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	RepoID    uint   `json:"repo_id" gorm:"uniqueIndex:idx_merge_requests_request"`
	RequestID string `json:"request_id" gorm:"size:40;uniqueIndex:idx_merge_requests_request"`
	Title     string `json:"title" gorm:"size:1024"`
	State     string `json:"state" gorm:"size:32"`

	SourceSHA    string `json:"source_sha" gorm:"size:256"`
	SourceBranch string `json:"source_branch" gorm:"size:256"`
	TargetBranch string `json:"target_branch" gorm:"size:256"`
	MergeSHA     string `json:"merge_sha" gorm:"size:256"`

	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	MergedAt       *time.Time `json:"merged_at"`
	UpdatedAt      *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
	FirstCommentAt *time.Time `json:"first_comment_at"`

	IsMerged         bool   `json:"is_merged"`
	MergedByUsername string `json:"merged_by_username,omitempty" gorm:"size:32"`

	HasTests      bool `json:"has_tests"`
	HasTestPassed bool `json:"has_test_passed"`

	Repo Repository `json:"-" gorm:"foreignKey:RepoID;constraint:OnDelete:CASCADE"`
}

func (MergeRequest) TableName() string { return "merge_requests" }
