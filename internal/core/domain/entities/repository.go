package entities

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Repository types that can be tracked.
const (
	RepoTypeGitLab           = "gitlab"
	RepoTypeGitLabPrivate    = "gitlab_private"
	RepoTypeGitHub           = "github"
	RepoTypeBitbucket        = "bitbucket"
	RepoTypeBitbucketPrivate = "bitbucket_private"
	RepoTypeLocal            = "local"
	RepoTypeOther            = "other"
)

var repoTypes = []string{
	RepoTypeGitLab,
	RepoTypeGitLabPrivate,
	RepoTypeGitHub,
	RepoTypeBitbucket,
	RepoTypeBitbucketPrivate,
	RepoTypeLocal,
	RepoTypeOther,
}

// Repository is a trackable source of commits, unique per (clone_url,
// repo_type). CloneURL is stored with credentials already redacted.
// Inactive repositories are skipped on sync.
type Repository struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	RepoType  string `json:"repo_type" gorm:"size:20;uniqueIndex:idx_repositories_url"`
	RepoName  string `json:"repo_name" gorm:"size:128;index"`
	RepoGroup string `json:"repo_group,omitempty" gorm:"size:64"`
	Component string `json:"component,omitempty" gorm:"size:64"`
	CloneURL  string `json:"clone_url" gorm:"size:256;uniqueIndex:idx_repositories_url"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	LastIndexedAt *time.Time `json:"last_indexed_at"`
	LastCommitAt  *time.Time `json:"last_commit_at"`
}

func (Repository) TableName() string { return "repositories" }

// NewRepository validates the clone URL and repository type, infers the
// type from the URL shape when not supplied, and derives the repository
// name from the URL basename. Only http(s) URLs and local filesystem paths
// are accepted; ssh-style URLs are a hard input-validation error.
func NewRepository(cloneURL, repoType string) (*Repository, error) {
	if strings.HasPrefix(cloneURL, "git@") || strings.HasPrefix(cloneURL, "ssh://") {
		return nil, fmt.Errorf("ssh clone url is not supported: %s", cloneURL)
	}

	if repoType != "" && !isValidRepoType(repoType) {
		return nil, fmt.Errorf("repo_type must be one of %v, got %q", repoTypes, repoType)
	}

	if repoType == "" {
		if strings.HasPrefix(cloneURL, "http") {
			switch {
			case strings.Contains(cloneURL, "gitlab"):
				repoType = RepoTypeGitLab
			case strings.Contains(cloneURL, "github.com"):
				repoType = RepoTypeGitHub
			case strings.Contains(cloneURL, "bitbucket"):
				repoType = RepoTypeBitbucket
			default:
				repoType = RepoTypeOther
			}
		} else {
			repoType = RepoTypeLocal
		}
	}

	return &Repository{
		RepoType: repoType,
		RepoName: strings.TrimSuffix(path.Base(cloneURL), ".git"),
		CloneURL: cloneURL,
		IsActive: true,
	}, nil
}

func isValidRepoType(repoType string) bool {
	for _, t := range repoTypes {
		if t == repoType {
			return true
		}
	}
	return false
}

// BrowseURL is the address where humans can browse the repository.
func (r *Repository) BrowseURL() string {
	if r.RepoType == RepoTypeLocal {
		return "http://localhost:9000/gitweb/"
	}
	return strings.TrimSuffix(r.CloneURL, ".git")
}

// URLForCommit is the base URL that displays a single commit's details.
func (r *Repository) URLForCommit() string {
	switch {
	case r.RepoType == RepoTypeGitHub:
		return r.BrowseURL() + "/commit"
	case strings.HasPrefix(r.RepoType, "gitlab"):
		return r.BrowseURL() + "/-/commit"
	case strings.HasPrefix(r.RepoType, "bitbucket"):
		return r.BrowseURL() + "/commits"
	default:
		return ""
	}
}
