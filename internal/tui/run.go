package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shreyaw333/portfolio/internal/clock"
	"github.com/shreyaw333/portfolio/internal/content"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

// Run shows the hero in the terminal until the user quits or ctx ends.
// The driver lives exactly as long as the program.
func Run(ctx context.Context, profile content.Profile, cfg typewriter.Config, logger *slog.Logger) error {
	driver, err := typewriter.New(cfg,
		typewriter.WithClock(clock.Real()),
		typewriter.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("typewriter: %w", err)
	}
	defer driver.Close()

	updates, unsubscribe := driver.Subscribe()
	defer unsubscribe()

	if err := driver.Start(); err != nil {
		return fmt.Errorf("typewriter: %w", err)
	}

	program := tea.NewProgram(NewModel(profile, updates), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
