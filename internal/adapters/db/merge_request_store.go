package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// MergeRequestStore persists merge/pull request snapshots.
type MergeRequestStore interface {
	Exists(ctx context.Context, repoID uint, requestID string) (bool, error)
	Create(ctx context.Context, request *entities.MergeRequest) error
}

// GormMergeRequestStore is a GORM-based implementation of MergeRequestStore
type GormMergeRequestStore struct {
	db *gorm.DB
}

// NewGormMergeRequestStore initializes a new GormMergeRequestStore
func NewGormMergeRequestStore(db *gorm.DB) *GormMergeRequestStore {
	return &GormMergeRequestStore{db: db}
}

func (s *GormMergeRequestStore) Exists(ctx context.Context, repoID uint, requestID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entities.MergeRequest{}).
		Where("repo_id = ? AND request_id = ?", repoID, requestID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check merge request existence: %w", err)
	}
	return count > 0, nil
}

func (s *GormMergeRequestStore) Create(ctx context.Context, request *entities.MergeRequest) error {
	if err := s.db.WithContext(ctx).Omit("Repo").Create(request).Error; err != nil {
		return fmt.Errorf("failed to create merge request %s: %w", request.RequestID, err)
	}
	return nil
}
