package entities

// Author is the stable identity behind commit committer metadata. Name and
// Email hold the lower-cased raw pair exactly as seen in the VCS; RealName
// and RealEmail default to those values at creation and are never
// overwritten when later commits carry case or format variants of the same
// identity.
type Author struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:128;uniqueIndex:idx_authors_identity"`
	Email       string `json:"email" gorm:"size:1024;uniqueIndex:idx_authors_identity"`
	RealName    string `json:"real_name" gorm:"size:128"`
	RealEmail   string `json:"real_email" gorm:"size:1024"`
	Company     string `json:"company,omitempty" gorm:"size:64"`
	Team        string `json:"team,omitempty" gorm:"size:64"`
	AuthorGroup string `json:"author_group,omitempty" gorm:"size:64"`
	LoginName   string `json:"login_name,omitempty" gorm:"size:128"`

	Commits []Commit `json:"-" gorm:"foreignKey:AuthorID"`
}

func (Author) TableName() string { return "authors" }
