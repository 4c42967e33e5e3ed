package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinolab/git-indexer/internal/adapters/api"
	"github.com/vinolab/git-indexer/internal/core/service"
	"github.com/vinolab/git-indexer/pkg/gitutil"
)

func newRequestsCmd(opts *rootOptions) *cobra.Command {
	var (
		source string
		query  string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Record closed and merged requests for matching repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			switch source {
			case "gitlab":
				return ingestGitLabRequests(cmd, a, query, filter)
			case "github":
				return ingestGitHubRequests(cmd, a, query, filter)
			default:
				return fmt.Errorf("unknown source %q, want github or gitlab", source)
			}
		},
	}

	cmd.Flags().StringVar(&source, "source", "gitlab", "platform to read requests from: github or gitlab")
	cmd.Flags().StringVar(&query, "query", "", "project or repository search term")
	cmd.Flags().StringVar(&filter, "filter", "", "comma-separated glob patterns applied to clone URLs")

	return cmd
}

func ingestGitLabRequests(cmd *cobra.Command, a *app, query, filter string) error {
	ctx := cmd.Context()
	client := api.NewGitLabClient(a.cfg.GitLab.BaseURL, a.cfg.GitLab.Token)

	projects, err := client.SearchProjects(ctx, query)
	if err != nil {
		return err
	}

	for _, project := range projects {
		if filter != "" && !gitutil.MatchAny(project.HTTPURLToRepo, filter) {
			continue
		}

		repo, err := a.indexer.EnsureRepository(ctx, project.HTTPURLToRepo, "")
		if err != nil {
			a.log.Errorw("skipping project", "project", project.PathWithNamespace, "error", err)
			continue
		}

		mergeRequests, err := client.ListMergeRequests(ctx, project.ID)
		if err != nil {
			a.log.Errorw("failed to list merge requests",
				"project", project.PathWithNamespace, "error", err)
			continue
		}

		requests := make([]service.PlatformRequest, 0, len(mergeRequests))
		for _, mr := range mergeRequests {
			requests = append(requests, mr)
		}
		if _, err := a.tracker.IngestRequests(ctx, repo, requests); err != nil {
			a.log.Errorw("request ingestion failed", "repo", repo.RepoName, "error", err)
		}
	}
	return nil
}

func ingestGitHubRequests(cmd *cobra.Command, a *app, query, filter string) error {
	ctx := cmd.Context()
	client := api.NewGitHubClient(a.cfg.GitHub.Token)

	urls, err := client.SearchRepositories(ctx, query)
	if err != nil {
		return err
	}

	for _, url := range urls {
		if filter != "" && !gitutil.MatchAny(url, filter) {
			continue
		}

		owner, name, err := api.SplitOwnerRepo(gitutil.RedactHTTPURL(url))
		if err != nil {
			a.log.Errorw("skipping repository", "repo", gitutil.DisplayURL(url), "error", err)
			continue
		}

		repo, err := a.indexer.EnsureRepository(ctx, url, "")
		if err != nil {
			a.log.Errorw("skipping repository", "repo", gitutil.DisplayURL(url), "error", err)
			continue
		}

		pulls, err := client.ListPullRequests(ctx, owner, name)
		if err != nil {
			a.log.Errorw("failed to list pull requests", "repo", repo.RepoName, "error", err)
			continue
		}

		requests := make([]service.PlatformRequest, 0, len(pulls))
		for _, pr := range pulls {
			requests = append(requests, pr)
		}
		if _, err := a.tracker.IngestRequests(ctx, repo, requests); err != nil {
			a.log.Errorw("request ingestion failed", "repo", repo.RepoName, "error", err)
		}
	}
	return nil
}
