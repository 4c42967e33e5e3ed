package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinolab/git-indexer/internal/adapters/api"
	"github.com/vinolab/git-indexer/internal/adapters/discovery"
	"github.com/vinolab/git-indexer/internal/core/domain/entities"
	"github.com/vinolab/git-indexer/pkg/config"
)

// statsQuery short-circuits indexing and only recomputes the rollup.
const statsQuery = "_stats_"

// target is one repository to sync. An empty repoType lets the registry
// infer it from the URL.
type target struct {
	cloneURL string
	repoType string
}

func newIndexCmd(opts *rootOptions) *cobra.Command {
	var (
		source string
		query  string
		filter string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Discover repositories and reconcile their commit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()

			if query == statsQuery {
				a.stats.Recompute(ctx)
				return nil
			}

			targets, err := enumerate(ctx, a.cfg, source, query)
			if err != nil {
				return err
			}
			targets = filterTargets(targets, filter)

			if dryRun {
				for _, t := range targets {
					fmt.Fprintln(cmd.OutOrStdout(), t.cloneURL)
				}
				return nil
			}

			affected := 0
			for _, t := range targets {
				affected += a.indexer.IndexRepository(ctx, t.cloneURL, t.repoType).Total()
			}
			a.log.Infow("indexing finished", "repos", len(targets), "affected", affected)

			if affected > 0 {
				a.stats.Recompute(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "gitlab", "repository source: local, list, github or gitlab")
	cmd.Flags().StringVar(&query, "query", "", "search term, directory or list file depending on source")
	cmd.Flags().StringVar(&filter, "filter", "", "comma-separated glob patterns applied to clone URLs")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print discovered repositories without indexing")

	return cmd
}

func enumerate(ctx context.Context, cfg config.Config, source, query string) ([]target, error) {
	switch source {
	case "local":
		paths, err := discovery.LocalRepositories(query)
		if err != nil {
			return nil, err
		}
		return toTargets(paths, entities.RepoTypeLocal), nil

	case "list":
		urls, err := discovery.ListFile(query)
		if err != nil {
			return nil, err
		}
		return toTargets(urls, ""), nil

	case "github":
		urls, err := api.NewGitHubClient(cfg.GitHub.Token).SearchRepositories(ctx, query)
		if err != nil {
			return nil, err
		}
		return toTargets(urls, entities.RepoTypeGitHub), nil

	case "gitlab":
		projects, err := api.NewGitLabClient(cfg.GitLab.BaseURL, cfg.GitLab.Token).SearchProjects(ctx, query)
		if err != nil {
			return nil, err
		}
		targets := make([]target, 0, len(projects))
		for _, project := range projects {
			repoType := entities.RepoTypeGitLab
			if project.Visibility == "private" {
				repoType = entities.RepoTypeGitLabPrivate
			}
			targets = append(targets, target{cloneURL: project.HTTPURLToRepo, repoType: repoType})
		}
		return targets, nil

	default:
		return nil, fmt.Errorf("unknown source %q, want local, list, github or gitlab", source)
	}
}

func toTargets(urls []string, repoType string) []target {
	targets := make([]target, 0, len(urls))
	for _, url := range urls {
		targets = append(targets, target{cloneURL: url, repoType: repoType})
	}
	return targets
}

func filterTargets(targets []target, patterns string) []target {
	if patterns == "" {
		return targets
	}
	urls := make([]string, 0, len(targets))
	byURL := make(map[string]target, len(targets))
	for _, t := range targets {
		urls = append(urls, t.cloneURL)
		byURL[t.cloneURL] = t
	}

	kept := make([]target, 0, len(targets))
	for _, url := range discovery.Filter(urls, patterns) {
		kept = append(kept, byURL[url])
	}
	return kept
}
