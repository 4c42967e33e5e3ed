package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Recompute derived commit counters and the export view",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			a.stats.Recompute(cmd.Context())
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the flattened commit data as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if out == "" {
				return a.stats.Export(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return a.stats.Export(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file, stdout when empty")

	return cmd
}
