package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// GitHubClient wraps the go-github client for the two narrow concerns the
// indexer has: pull request listing and repository search.
type GitHubClient struct {
	client *github.Client
	token  string
}

// NewGitHubClient creates a new instance of GitHubClient. An empty token
// falls back to unauthenticated access.
func NewGitHubClient(token string) *GitHubClient {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubClient{client: client, token: token}
}

// GitHubPullRequest adapts a GitHub pull request to the canonical request
// shape.
type GitHubPullRequest struct {
	PR *github.PullRequest
}

// RequestID returns the platform-native request id.
func (pr GitHubPullRequest) RequestID() string { return strconv.Itoa(pr.PR.GetNumber()) }

// State returns the platform-native state string, stored verbatim.
func (pr GitHubPullRequest) State() string { return pr.PR.GetState() }

// IsTerminal reports whether the request reached a durable state. GitHub
// folds merged pull requests into state "closed".
func (pr GitHubPullRequest) IsTerminal() bool { return pr.PR.GetState() == "closed" }

// ToMergeRequest maps the GitHub shape onto the canonical entity. All
// timestamps are converted to UTC instants exactly once, here.
func (pr GitHubPullRequest) ToMergeRequest() (entities.MergeRequest, error) {
	p := pr.PR
	if p.CreatedAt == nil {
		return entities.MergeRequest{}, fmt.Errorf("pull request %d has no created_at", p.GetNumber())
	}

	request := entities.MergeRequest{
		RequestID:    pr.RequestID(),
		Title:        p.GetTitle(),
		State:        p.GetState(),
		SourceBranch: p.GetHead().GetRef(),
		TargetBranch: p.GetBase().GetRef(),
		SourceSHA:    p.GetHead().GetSHA(),
		CreatedAt:    p.GetCreatedAt().Time.UTC(),
		UpdatedAt:    githubTime(p.UpdatedAt),
		MergedAt:     githubTime(p.MergedAt),
	}

	if p.GetMerged() || p.MergedAt != nil {
		request.IsMerged = true
		request.MergeSHA = p.GetMergeCommitSHA()
		request.MergedByUsername = p.GetMergedBy().GetLogin()
	}

	return request, nil
}

func githubTime(ts *github.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	utc := ts.Time.UTC()
	return &utc
}

// ListPullRequests fetches every pull request of a repository, following
// pagination until the API reports no next page.
func (c *GitHubClient) ListPullRequests(ctx context.Context, owner, repo string) ([]GitHubPullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []GitHubPullRequest
	for {
		pulls, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
		}
		for _, p := range pulls {
			all = append(all, GitHubPullRequest{PR: p})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// SearchRepositories enumerates clone URLs of repositories matching the
// query. Private repositories get the token injected into their clone URL
// so the traversal layer can fetch them; the registry redacts it again
// before storage.
func (c *GitHubClient) SearchRepositories(ctx context.Context, query string) ([]string, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 100}}

	var urls []string
	for {
		result, resp, err := c.client.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search repositories: %w", err)
		}
		for _, repo := range result.Repositories {
			cloneURL := repo.GetCloneURL()
			if repo.GetPrivate() && c.token != "" {
				cloneURL = strings.Replace(cloneURL, "://", fmt.Sprintf("://%s@", c.token), 1)
			}
			urls = append(urls, cloneURL)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return urls, nil
}

// SplitOwnerRepo extracts the owner and repository name from an HTTP
// clone URL.
func SplitOwnerRepo(cloneURL string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(cloneURL, "/"), ".git")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot derive owner and repository from %s", cloneURL)
	}
	owner, repo := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || repo == "" || strings.Contains(owner, ":") {
		return "", "", fmt.Errorf("cannot derive owner and repository from %s", cloneURL)
	}
	return owner, repo, nil
}
