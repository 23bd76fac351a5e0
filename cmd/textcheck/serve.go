package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/textcheck/internal/app"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP check API",
		Long:  "Serve POST /api/v1/check, POST /api/v1/fix and health probes until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), c.cfg, c.serverLogger())
		},
	}
}
