package cli

import (
	"github.com/spf13/cobra"

	"github.com/vzwadmin/beheer/internal/entrypoint"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API with the background task queue",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := entrypoint.OpenDatabase(a.cfg, a.logger)
			if err != nil {
				return withCode(exitDB, err)
			}
			defer db.Close()

			sink, err := entrypoint.OpenSink(ctx, a.cfg)
			if err != nil {
				return withCode(exitConfig, err)
			}

			return entrypoint.Run(ctx, a.cfg, db, sink, a.logger, a.version)
		},
	}
}
