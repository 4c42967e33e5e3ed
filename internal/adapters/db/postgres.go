package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// Open connects to PostgreSQL and migrates the schema. The returned handle
// is owned by the caller: opened once at process start, closed at shutdown,
// and threaded explicitly through every store.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.AutoMigrate(
		&entities.Author{},
		&entities.Repository{},
		&entities.Commit{},
		&entities.CommittedFile{},
		&entities.RepositoryCommitLink{},
		&entities.MergeRequest{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return conn, nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
