package cli

import (
	"github.com/spf13/cobra"

	"github.com/shreyaw333/portfolio/internal/tui"
)

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the hero and its typewriter in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags, true)
			if err != nil {
				return err
			}
			defer rt.close()

			return tui.Run(cmd.Context(), rt.site.Profile, rt.typewriterConfig(), rt.logger)
		},
	}
}
