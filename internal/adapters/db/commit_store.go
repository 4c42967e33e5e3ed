package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// CommitStore persists commits, their file rows and the repository links.
type CommitStore interface {
	// GetBySHA returns nil without error when no commit exists.
	GetBySHA(ctx context.Context, sha string) (*entities.Commit, error)
	// CreateWithFiles inserts the commit and all of its file rows in one
	// transaction so a failure cannot leave a half-written commit behind.
	CreateWithFiles(ctx context.Context, commit *entities.Commit, files []entities.CommittedFile) error
	UpdateBranches(ctx context.Context, sha, branches string) error
	// Link adds the (repository, commit) join row; linking the same pair
	// twice is a no-op.
	Link(ctx context.Context, repoID uint, sha string) error
	// LinkedBranches returns sha -> stored branch list for every commit
	// linked to the repository.
	LinkedBranches(ctx context.Context, repoID uint) (map[string]string, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit int) ([]entities.Commit, error)
	ListByRepositoryID(ctx context.Context, repoID uint, limit int) ([]entities.Commit, error)
}

// GormCommitStore is a GORM-based implementation of CommitStore
type GormCommitStore struct {
	db *gorm.DB
}

// NewGormCommitStore initializes a new GormCommitStore
func NewGormCommitStore(db *gorm.DB) *GormCommitStore {
	return &GormCommitStore{db: db}
}

func (s *GormCommitStore) GetBySHA(ctx context.Context, sha string) (*entities.Commit, error) {
	var commit entities.Commit
	err := s.db.WithContext(ctx).Where("sha = ?", sha).Limit(1).Find(&commit).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commit: %w", err)
	}
	if commit.SHA == "" {
		return nil, nil
	}
	return &commit, nil
}

func (s *GormCommitStore) CreateWithFiles(ctx context.Context, commit *entities.Commit, files []entities.CommittedFile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(commit).Error; err != nil {
			return fmt.Errorf("failed to create commit %s: %w", commit.SHA, err)
		}
		if len(files) > 0 {
			if err := tx.Create(&files).Error; err != nil {
				return fmt.Errorf("failed to create file rows for commit %s: %w", commit.SHA, err)
			}
		}
		return nil
	})
}

func (s *GormCommitStore) UpdateBranches(ctx context.Context, sha, branches string) error {
	err := s.db.WithContext(ctx).
		Model(&entities.Commit{}).
		Where("sha = ?", sha).
		Update("branches", branches).Error
	if err != nil {
		return fmt.Errorf("failed to update branches for commit %s: %w", sha, err)
	}
	return nil
}

func (s *GormCommitStore) Link(ctx context.Context, repoID uint, sha string) error {
	link := entities.RepositoryCommitLink{RepoID: repoID, CommitID: sha}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to link commit %s to repository %d: %w", sha, repoID, err)
	}
	return nil
}

func (s *GormCommitStore) LinkedBranches(ctx context.Context, repoID uint) (map[string]string, error) {
	type row struct {
		SHA      string
		Branches string
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("commits").
		Select("commits.sha, commits.branches").
		Joins("JOIN repo_to_commits ON repo_to_commits.commit_id = commits.sha").
		Where("repo_to_commits.repo_id = ?", repoID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load linked commits: %w", err)
	}

	known := make(map[string]string, len(rows))
	for _, r := range rows {
		known[r.SHA] = r.Branches
	}
	return known, nil
}

func (s *GormCommitStore) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit int) ([]entities.Commit, error) {
	var commits []entities.Commit
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&commits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commits: %w", err)
	}
	return commits, nil
}

func (s *GormCommitStore) ListByRepositoryID(ctx context.Context, repoID uint, limit int) ([]entities.Commit, error) {
	var commits []entities.Commit
	err := s.db.WithContext(ctx).
		Preload("Author").
		Joins("JOIN repo_to_commits ON repo_to_commits.commit_id = commits.sha").
		Where("repo_to_commits.repo_id = ?", repoID).
		Order("commits.created_at DESC").
		Limit(limit).
		Find(&commits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commits: %w", err)
	}
	return commits, nil
}
