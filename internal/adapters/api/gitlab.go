package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vinolab/git-indexer/internal/core/domain/entities"
)

// GitLabClient is a simple client for the GitLab v4 REST API.
type GitLabClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewGitLabClient creates a new instance of GitLabClient with a timeout
func NewGitLabClient(baseURL, token string) *GitLabClient {
	return &GitLabClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GitLabProject represents the JSON structure of a GitLab project
type GitLabProject struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
	HTTPURLToRepo     string `json:"http_url_to_repo"`
	Visibility        string `json:"visibility"`
}

// GitLabUser represents the JSON structure of a GitLab user reference
type GitLabUser struct {
	Username string `json:"username"`
}

// GitLabMergeRequest represents the JSON structure of a GitLab merge request
type GitLabMergeRequest struct {
	IID             int         `json:"iid"`
	Title           string      `json:"title"`
	MRState         string      `json:"state"`
	SourceBranch    string      `json:"source_branch"`
	TargetBranch    string      `json:"target_branch"`
	SHA             string      `json:"sha"`
	Squash          bool        `json:"squash"`
	SquashCommitSHA string      `json:"squash_commit_sha"`
	MergeCommitSHA  string      `json:"merge_commit_sha"`
	MergeUser       *GitLabUser `json:"merge_user"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	MergedAt        string      `json:"merged_at"`
}

// RequestID returns the platform-native request id.
func (mr GitLabMergeRequest) RequestID() string { return strconv.Itoa(mr.IID) }

// State returns the platform-native state string, stored verbatim.
func (mr GitLabMergeRequest) State() string { return mr.MRState }

// IsTerminal reports whether the request reached a durable state. Open
// merge requests are never ingested.
func (mr GitLabMergeRequest) IsTerminal() bool {
	return mr.MRState == "closed" || mr.MRState == "merged"
}

// ToMergeRequest maps the GitLab shape onto the canonical entity. GitLab
// timestamps arrive as ISO-8601 strings with fractional seconds and a
// trailing Z; they are converted to UTC instants exactly once, here.
func (mr GitLabMergeRequest) ToMergeRequest() (entities.MergeRequest, error) {
	createdAt, err := parseGitLabTime(mr.CreatedAt)
	if err != nil {
		return entities.MergeRequest{}, fmt.Errorf("merge request %d: %w", mr.IID, err)
	}
	if createdAt == nil {
		return entities.MergeRequest{}, fmt.Errorf("merge request %d has no created_at", mr.IID)
	}
	updatedAt, err := parseGitLabTime(mr.UpdatedAt)
	if err != nil {
		return entities.MergeRequest{}, fmt.Errorf("merge request %d: %w", mr.IID, err)
	}
	mergedAt, err := parseGitLabTime(mr.MergedAt)
	if err != nil {
		return entities.MergeRequest{}, fmt.Errorf("merge request %d: %w", mr.IID, err)
	}

	request := entities.MergeRequest{
		RequestID:    mr.RequestID(),
		Title:        mr.Title,
		State:        mr.MRState,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		SourceSHA:    mr.SHA,
		CreatedAt:    *createdAt,
		UpdatedAt:    updatedAt,
		MergedAt:     mergedAt,
	}

	if mr.MRState == "merged" {
		request.IsMerged = true
		if mr.MergeUser != nil {
			request.MergedByUsername = mr.MergeUser.Username
		}
		if mr.Squash {
			request.MergeSHA = mr.SquashCommitSHA
		} else {
			request.MergeSHA = mr.MergeCommitSHA
		}
	}

	return request, nil
}

func parseGitLabTime(ts string) (*time.Time, error) {
	if ts == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gitlab timestamp %q: %w", ts, err)
	}
	utc := t.UTC()
	return &utc, nil
}

// ListMergeRequests fetches every merge request of a project, following
// pagination until a short page is returned.
func (c *GitLabClient) ListMergeRequests(ctx context.Context, projectID int) ([]GitLabMergeRequest, error) {
	var all []GitLabMergeRequest
	perPage := 100

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/api/v4/projects/%d/merge_requests?state=all&per_page=%d&page=%d",
			c.BaseURL, projectID, perPage, page)

		var requests []GitLabMergeRequest
		if err := c.getJSON(ctx, endpoint, &requests); err != nil {
			return nil, err
		}

		all = append(all, requests...)
		if len(requests) < perPage {
			break
		}
	}

	return all, nil
}

// SearchProjects enumerates projects matching the query. Private projects
// get the token injected into their clone URL so the traversal layer can
// fetch them; the registry redacts it again before storage.
func (c *GitLabClient) SearchProjects(ctx context.Context, query string) ([]GitLabProject, error) {
	var all []GitLabProject
	perPage := 20

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/api/v4/projects?search=%s&per_page=%d&page=%d",
			c.BaseURL, url.QueryEscape(query), perPage, page)

		var projects []GitLabProject
		if err := c.getJSON(ctx, endpoint, &projects); err != nil {
			return nil, err
		}

		for _, project := range projects {
			if project.Visibility == "private" && c.Token != "" {
				project.HTTPURLToRepo = strings.Replace(
					project.HTTPURLToRepo, "://", fmt.Sprintf("://oauth2:%s@", c.Token), 1)
			}
			all = append(all, project)
		}

		if len(projects) < perPage {
			break
		}
	}

	return all, nil
}

func (c *GitLabClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call gitlab: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gitlab returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gitlab response: %w", err)
	}
	return nil
}
