// Package cli wires configuration, content and logging into the serve and
// preview commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreyaw333/portfolio/internal/config"
	"github.com/shreyaw333/portfolio/internal/content"
	"github.com/shreyaw333/portfolio/internal/logger"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

type rootFlags struct {
	configFile string
	debug      bool
}

// NewRootCmd returns the portfolio command. Run without a subcommand it
// serves the site.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Serve the portfolio site",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default: ./portfolio.yaml)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newPreviewCmd(flags))
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// app is everything a command needs after startup.
type app struct {
	cfg    *config.Config
	site   *content.Site
	logger *slog.Logger
	close  func()
}

func (r *app) typewriterConfig() typewriter.Config {
	return typewriter.Config{
		Phrases:        r.site.Profile.Roles,
		TypeInterval:   r.cfg.Typewriter.TypeInterval,
		DeleteInterval: r.cfg.Typewriter.DeleteInterval,
		Hold:           r.cfg.Typewriter.Hold,
	}
}

// setup loads config and content and builds the logger. quiet drops the
// stderr log destination, which the terminal preview needs.
func setup(flags *rootFlags, quiet bool) (*app, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Log.Debug = true
	}

	var opts []logger.Option
	opts = append(opts, logger.WithFormat(cfg.Log.Format))
	if cfg.Log.Debug {
		opts = append(opts, logger.WithDebug())
	}
	if quiet {
		opts = append(opts, logger.WithQuiet())
	}

	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		opts = append(opts, logger.WithWriter(f))
		closeFn = func() { _ = f.Close() }
	}
	log := logger.New(opts...)

	site, err := content.Load(cfg.Content.File)
	if err != nil {
		closeFn()
		return nil, err
	}

	if cfg.ConfigFileUsed != "" {
		log.Debug("Config loaded", "file", cfg.ConfigFileUsed)
	}
	return &app{cfg: cfg, site: site, logger: log, close: closeFn}, nil
}
