package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/vinolab/git-indexer/internal/adapters/db"
)

// exportHeader is the fixed column order of the CSV export, kept stable
// for downstream spreadsheet consumers.
var exportHeader = []string{
	"author_id", "name", "email", "real_name", "real_email",
	"company", "team", "author_group",
	"sha", "commit_date", "is_merge",
	"commit_n_lines", "commit_n_files", "commit_n_insertions", "commit_n_deletions",
	"commit_n_lines_changed", "commit_n_lines_ignored",
	"commit_n_files_changed", "commit_n_files_ignored",
	"committed_file_id", "change_type", "file_path", "file_name", "file_type",
	"n_lines_added", "n_lines_deleted", "n_lines_changed",
	"n_lines_of_code", "n_methods", "n_methods_changed",
	"is_on_exclude_list", "is_superfluous",
	"repo_name", "repo_group", "repo_type", "component", "clone_url",
	"repo_id", "repo_inlude_in_stats", "last_indexed_at",
}

// Stats recomputes the derived per-commit counters and serves the
// flattened export.
type Stats struct {
	store db.StatsStore
	log   *zap.SugaredLogger
}

// NewStats wires a Stats service.
func NewStats(store db.StatsStore, log *zap.SugaredLogger) *Stats {
	return &Stats{store: store, log: log}
}

// Recompute runs the rollup statements. Each statement's failure is logged
// on its own; the batch always runs to the end.
func (s *Stats) Recompute(ctx context.Context) {
	s.log.Infow("recomputing stats")
	for _, err := range s.store.Recompute(ctx) {
		s.log.Errorw("stats statement failed", "error", err)
	}
}

// Export writes the flattened commit data as CSV.
func (s *Stats) Export(ctx context.Context, w io.Writer) error {
	rows, err := s.store.ExportRows(ctx)
	if err != nil {
		return err
	}

	out := csv.NewWriter(w)
	if err := out.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.AuthorID), 10),
			row.Name, row.Email, row.RealName, row.RealEmail,
			row.Company, row.Team, row.AuthorGroup,
			row.SHA, row.CommitDate, strconv.Itoa(row.IsMerge),
			strconv.Itoa(row.CommitNLines), strconv.Itoa(row.CommitNFiles),
			strconv.Itoa(row.CommitNInsertions), strconv.Itoa(row.CommitNDeletions),
			strconv.Itoa(row.CommitNLinesChanged), strconv.Itoa(row.CommitNLinesIgnored),
			strconv.Itoa(row.CommitNFilesChanged), strconv.Itoa(row.CommitNFilesIgnored),
			strconv.FormatUint(uint64(row.CommittedFileID), 10),
			row.ChangeType, row.FilePath, row.FileName, row.FileType,
			strconv.Itoa(row.NLinesAdded), strconv.Itoa(row.NLinesDeleted),
			strconv.Itoa(row.NLinesChanged), strconv.Itoa(row.NLinesOfCode),
			strconv.Itoa(row.NMethods), strconv.Itoa(row.NMethodsChanged),
			strconv.FormatBool(row.IsOnExcludeList), strconv.FormatBool(row.IsSuperfluous),
			row.RepoName, row.RepoGroup, row.RepoType, row.Component, row.CloneURL,
			strconv.FormatUint(uint64(row.RepoID), 10),
			strconv.FormatBool(row.RepoIncludeInStats), row.LastIndexedAt,
		}
		if err := out.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	s.log.Infow("export finished", "rows", len(rows))
	return nil
}
