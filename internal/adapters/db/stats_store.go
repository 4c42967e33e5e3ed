package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Rollup statements recomputing the derived per-commit counters from
// committed_files, plus the flattened export view. Each statement is
// executed independently; one failure does not abort the rest.
var statsStatements = []string{
	`update commits
	set n_lines_changed = (
		select COALESCE(sum(n_lines_changed),0)
		from committed_files
		where committed_files.commit_id = commits.sha
		and is_superfluous is false
	)
	where true`,
	`update commits
	set n_files_changed = (
		select count(1)
		from committed_files
		where committed_files.commit_id = commits.sha
		and is_superfluous is false
	)
	where true`,
	`update commits
	set n_lines_ignored = (
		select COALESCE(sum(n_lines_changed),0)
		from committed_files
		where committed_files.commit_id = commits.sha
		and is_superfluous is true
	)
	where true`,
	`update commits
	set n_files_ignored = (
		select count(1)
		from committed_files
		where committed_files.commit_id = commits.sha
		and is_superfluous is true
	)
	where true`,
	`drop view if exists all_commit_data`,
	// is_merge is converted to an integer for compatibility with the
	// pre-existing schema consumers.
	`create view all_commit_data
	as
	select
		authors.id as author_id,
		authors.name,
		authors.email,
		authors.real_name,
		authors.real_email,
		authors.company,
		authors.team,
		authors.author_group,
		commits.sha,
		commits.created_at as commit_date,
		case commits.is_merge when true then 1 else 0 end as is_merge,
		commits.n_lines as commit_n_lines,
		commits.n_files as commit_n_files,
		commits.n_insertions as commit_n_insertions,
		commits.n_deletions as commit_n_deletions,
		commits.n_lines_changed as commit_n_lines_changed,
		commits.n_lines_ignored as commit_n_lines_ignored,
		commits.n_files_changed as commit_n_files_changed,
		commits.n_files_ignored as commit_n_files_ignored,
		committed_files.id as committed_file_id,
		committed_files.change_type,
		committed_files.file_path,
		committed_files.file_name,
		committed_files.file_type,
		committed_files.n_lines_added,
		committed_files.n_lines_deleted,
		committed_files.n_lines_changed,
		committed_files.n_lines_of_code,
		committed_files.n_methods,
		committed_files.n_methods_changed,
		committed_files.is_on_exclude_list,
		committed_files.is_superfluous,
		repo.repo_name,
		repo.repo_group,
		repo.repo_type,
		repo.component,
		repo.clone_url,
		repo.id as repo_id,
		repo.is_active as repo_inlude_in_stats,
		repo.last_indexed_at
	from authors
		inner join commits on commits.author_id = authors.id
		inner join committed_files on committed_files.commit_id = commits.sha
		inner join repo_to_commits rtc on commits.sha = rtc.commit_id
		inner join repositories repo on rtc.repo_id = repo.id`,
}

const exportQuery = `select * from all_commit_data limit 1000000`

// ExportRow is one line of the flattened all_commit_data view.
type ExportRow struct {
	AuthorID            uint   `gorm:"column:author_id"`
	Name                string `gorm:"column:name"`
	Email               string `gorm:"column:email"`
	RealName            string `gorm:"column:real_name"`
	RealEmail           string `gorm:"column:real_email"`
	Company             string `gorm:"column:company"`
	Team                string `gorm:"column:team"`
	AuthorGroup         string `gorm:"column:author_group"`
	SHA                 string `gorm:"column:sha"`
	CommitDate          string `gorm:"column:commit_date"`
	IsMerge             int    `gorm:"column:is_merge"`
	CommitNLines        int    `gorm:"column:commit_n_lines"`
	CommitNFiles        int    `gorm:"column:commit_n_files"`
	CommitNInsertions   int    `gorm:"column:commit_n_insertions"`
	CommitNDeletions    int    `gorm:"column:commit_n_deletions"`
	CommitNLinesChanged int    `gorm:"column:commit_n_lines_changed"`
	CommitNLinesIgnored int    `gorm:"column:commit_n_lines_ignored"`
	CommitNFilesChanged int    `gorm:"column:commit_n_files_changed"`
	CommitNFilesIgnored int    `gorm:"column:commit_n_files_ignored"`
	CommittedFileID     uint   `gorm:"column:committed_file_id"`
	ChangeType          string `gorm:"column:change_type"`
	FilePath            string `gorm:"column:file_path"`
	FileName            string `gorm:"column:file_name"`
	FileType            string `gorm:"column:file_type"`
	NLinesAdded         int    `gorm:"column:n_lines_added"`
	NLinesDeleted       int    `gorm:"column:n_lines_deleted"`
	NLinesChanged       int    `gorm:"column:n_lines_changed"`
	NLinesOfCode        int    `gorm:"column:n_lines_of_code"`
	NMethods            int    `gorm:"column:n_methods"`
	NMethodsChanged     int    `gorm:"column:n_methods_changed"`
	IsOnExcludeList     bool   `gorm:"column:is_on_exclude_list"`
	IsSuperfluous       bool   `gorm:"column:is_superfluous"`
	RepoName            string `gorm:"column:repo_name"`
	RepoGroup           string `gorm:"column:repo_group"`
	RepoType            string `gorm:"column:repo_type"`
	Component           string `gorm:"column:component"`
	CloneURL            string `gorm:"column:clone_url"`
	RepoID              uint   `gorm:"column:repo_id"`
	RepoIncludeInStats  bool   `gorm:"column:repo_inlude_in_stats"`
	LastIndexedAt       string `gorm:"column:last_indexed_at"`
}

// StatsStore recomputes derived commit counters and reads the export view.
type StatsStore interface {
	// Recompute runs every rollup statement, returning one error per
	// failed statement without aborting the batch.
	Recompute(ctx context.Context) []error
	ExportRows(ctx context.Context) ([]ExportRow, error)
}

// GormStatsStore is a GORM-based implementation of StatsStore
type GormStatsStore struct {
	db *gorm.DB
}

// NewGormStatsStore initializes a new GormStatsStore
func NewGormStatsStore(db *gorm.DB) *GormStatsStore {
	return &GormStatsStore{db: db}
}

func (s *GormStatsStore) Recompute(ctx context.Context) []error {
	var errs []error
	for _, statement := range statsStatements {
		if err := s.db.WithContext(ctx).Exec(statement).Error; err != nil {
			errs = append(errs, fmt.Errorf("failed to execute stats statement: %w", err))
		}
	}
	return errs
}

func (s *GormStatsStore) ExportRows(ctx context.Context) ([]ExportRow, error) {
	var rows []ExportRow
	if err := s.db.WithContext(ctx).Raw(exportQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query all_commit_data: %w", err)
	}
	return rows, nil
}
