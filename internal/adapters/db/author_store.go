package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// AuthorStore resolves committer identities.
type AuthorStore interface {
	// GetOrCreate looks up an author by the lower-cased (name, email) pair
	// and creates one when missing. On creation real_name and real_email
	// are initialized from the same lower-cased values; on a hit the
	// existing row is returned unchanged, no field is ever overwritten.
	GetOrCreate(ctx context.Context, name, email string) (*entities.Author, error)
	GetByRealEmail(ctx context.Context, email string) ([]entities.Author, error)
}

// GormAuthorStore is a GORM-based implementation of AuthorStore
type GormAuthorStore struct {
	db *gorm.DB
}

// NewGormAuthorStore initializes a new GormAuthorStore
func NewGormAuthorStore(db *gorm.DB) *GormAuthorStore {
	return &GormAuthorStore{db: db}
}

func (s *GormAuthorStore) GetOrCreate(ctx context.Context, name, email string) (*entities.Author, error) {
	name = strings.ToLower(name)
	email = strings.ToLower(email)

	var author entities.Author
	err := s.db.WithContext(ctx).Where("name = ? AND email = ?", name, email).Limit(1).Find(&author).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve author: %w", err)
	}

	if author.ID == 0 {
		author = entities.Author{
			Name:      name,
			Email:     email,
			RealName:  name,
			RealEmail: email,
		}
		if err := s.db.WithContext(ctx).Create(&author).Error; err != nil {
			return nil, fmt.Errorf("failed to create author: %w", err)
		}
	}

	return &author, nil
}

func (s *GormAuthorStore) GetByRealEmail(ctx context.Context, email string) ([]entities.Author, error) {
	var authors []entities.Author
	err := s.db.WithContext(ctx).Where("real_email = ?", strings.ToLower(email)).Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve authors: %w", err)
	}
	return authors, nil
}
