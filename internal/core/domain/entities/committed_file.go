package entities

import (
	"github.com/vinolab/git-indexer/pkg/gitutil"
)

// Change types reported by the traversal layer.
const (
	ChangeTypeAdd     = "ADD"
	ChangeTypeDelete  = "DELETE"
	ChangeTypeModify  = "MODIFY"
	ChangeTypeRename  = "RENAME"
	ChangeTypeUnknown = "UNKNOWN"
)

// CommittedFile is one file touched by one commit. Rows are created once at
// commit ingestion and never updated. CommitSHA denormalizes the owning
// commit hash for query convenience next to the CommitID foreign key.
type CommittedFile struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CommitSHA  string `json:"commit_sha" gorm:"size:40"`
	ChangeType string `json:"change_type" gorm:"size:16;default:UNKNOWN"`
	FilePath   string `json:"file_path" gorm:"size:256"`
	FileName   string `json:"file_name" gorm:"size:128"`
	FileType   string `json:"file_type" gorm:"size:128"`

	NLinesAdded     int `json:"n_lines_added"`
	NLinesDeleted   int `json:"n_lines_deleted"`
	NLinesChanged   int `json:"n_lines_changed"`
	NLinesOfCode    int `json:"n_lines_of_code"`
	NMethods        int `json:"n_methods"`
	NMethodsChanged int `json:"n_methods_changed"`

	IsOnExcludeList bool `json:"is_on_exclude_list"`
	IsSuperfluous   bool `json:"is_superfluous"`

	CommitID string `json:"-" gorm:"column:commit_id;size:40;index"`
	Commit   Commit `json:"-" gorm:"foreignKey:CommitID;references:SHA;constraint:OnDelete:CASCADE"`
}

func (CommittedFile) TableName() string { return "committed_files" }

// NewCommittedFile builds a file row for a commit, inferring the file type
// and the exclude verdict from the path. Both exclude flags are set to the
// same classifier verdict at creation time.
func NewCommittedFile(commitSHA, changeType, filePath, fileName string) CommittedFile {
	excluded := gitutil.ShouldExcludeFromStats(filePath)
	return CommittedFile{
		CommitSHA:       commitSHA,
		CommitID:        commitSHA,
		ChangeType:      changeType,
		FilePath:        filePath,
		FileName:        fileName,
		FileType:        gitutil.FileTypeOf(filePath),
		IsOnExcludeList: excluded,
		IsSuperfluous:   excluded,
	}
}
