package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shreyaw333/portfolio/internal/web"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(ctx context.Context, flags *rootFlags) error {
	rt, err := setup(flags, false)
	if err != nil {
		return err
	}
	defer rt.close()

	srv, err := web.New(rt.cfg, rt.site, web.WithLogger(rt.logger))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
