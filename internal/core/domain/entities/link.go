package entities

// RepositoryCommitLink is the pure join row between repositories and
// commits. It carries no business attributes and deletes do not cascade in
// either direction; removing a Commit or Repository row is guarded at a
// higher level. The table name predates this project and cannot change.
type RepositoryCommitLink struct {
	ID       uint   `gorm:"primaryKey"`
	RepoID   uint   `gorm:"uniqueIndex:idx_repo_commit"`
	CommitID string `gorm:"size:40;uniqueIndex:idx_repo_commit"`
}

func (RepositoryCommitLink) TableName() string { return "repo_to_commits" }
