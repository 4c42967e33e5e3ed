package main

import (
	"net/http"

	"github.com/spf13/cobra"

	indexerhttp "github.com/vinolab/git-indexer/internal/adapters/http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API, Swagger docs and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			router := indexerhttp.NewRouter(
				indexerhttp.NewSearchHandler(a.commits, a.authors, a.repos),
			)

			a.log.Infow("server listening", "addr", a.cfg.HTTP.Addr)
			return http.ListenAndServe(a.cfg.HTTP.Addr, router)
		},
	}
}
