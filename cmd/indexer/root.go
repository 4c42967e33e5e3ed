package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinolab/git-indexer/internal/adapters/db"
	"github.com/vinolab/git-indexer/internal/adapters/vcs"
	"github.com/vinolab/git-indexer/internal/core/service"
	"github.com/vinolab/git-indexer/pkg/config"
	"github.com/vinolab/git-indexer/pkg/logging"
)

type rootOptions struct {
	configPath string
	dev        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "indexer",
		Short:         "Incremental git history indexer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "human-readable development logging")

	cmd.AddCommand(
		newIndexCmd(opts),
		newRequestsCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}

// app is the wired process: one database handle, one logger, services on
// top. Built per command invocation and closed when the command ends.
type app struct {
	cfg  config.Config
	log  *zap.SugaredLogger
	conn *gorm.DB

	repos    db.RepositoryStore
	commits  db.CommitStore
	authors  db.AuthorStore
	requests db.MergeRequestStore

	indexer *service.Indexer
	tracker *service.RequestTracker
	stats   *service.Stats
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(opts.dev)
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	repos := db.NewGormRepositoryStore(conn)
	commits := db.NewGormCommitStore(conn)
	authors := db.NewGormAuthorStore(conn)
	requests := db.NewGormMergeRequestStore(conn)

	return &app{
		cfg:      cfg,
		log:      log,
		conn:     conn,
		repos:    repos,
		commits:  commits,
		authors:  authors,
		requests: requests,
		indexer: service.NewIndexer(
			repos, commits, authors,
			vcs.NewGitSource, log,
			cfg.Sync.Timeout, cfg.Sync.Incremental,
		),
		tracker: service.NewRequestTracker(repos, requests, log),
		stats:   service.NewStats(db.NewGormStatsStore(conn), log),
	}, nil
}

func (a *app) close() {
	if err := db.Close(a.conn); err != nil {
		a.log.Errorw("failed to close database", "error", err)
	}
	_ = a.log.Sync()
}
