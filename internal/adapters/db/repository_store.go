package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// RepositoryStore persists repository records.
type RepositoryStore interface {
	// GetOrCreate looks up a repository by (clone_url, repo_type) and
	// inserts the candidate row when no match exists.
	GetOrCreate(ctx context.Context, candidate *entities.Repository) (*entities.Repository, error)
	Save(ctx context.Context, repo *entities.Repository) error
	GetByName(ctx context.Context, name string) (*entities.Repository, error)
	GetAll(ctx context.Context) ([]entities.Repository, error)
}

// GormRepositoryStore is a GORM-based implementation of RepositoryStore
type GormRepositoryStore struct {
	db *gorm.DB
}

// NewGormRepositoryStore initializes a new GormRepositoryStore
func NewGormRepositoryStore(db *gorm.DB) *GormRepositoryStore {
	return &GormRepositoryStore{db: db}
}

func (s *GormRepositoryStore) GetOrCreate(ctx context.Context, candidate *entities.Repository) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.WithContext(ctx).
		Where("clone_url = ? AND repo_type = ?", candidate.CloneURL, candidate.RepoType).
		Limit(1).
		Find(&repo).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve repository: %w", err)
	}

	if repo.ID == 0 {
		if err := s.db.WithContext(ctx).Create(candidate).Error; err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		return candidate, nil
	}

	return &repo, nil
}

func (s *GormRepositoryStore) Save(ctx context.Context, repo *entities.Repository) error {
	if err := s.db.WithContext(ctx).Save(repo).Error; err != nil {
		return fmt.Errorf("failed to save repository: %w", err)
	}
	return nil
}

func (s *GormRepositoryStore) GetByName(ctx context.Context, name string) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.WithContext(ctx).Where("repo_name = ?", name).Limit(1).Find(&repo).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve repository: %w", err)
	}
	if repo.ID == 0 {
		return nil, nil
	}
	return &repo, nil
}

func (s *GormRepositoryStore) GetAll(ctx context.Context) ([]entities.Repository, error) {
	var repos []entities.Repository
	if err := s.db.WithContext(ctx).Find(&repos).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve repositories: %w", err)
	}
	return repos, nil
}
