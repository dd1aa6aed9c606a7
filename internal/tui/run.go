package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcanete/agendum/internal/config"
	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/tui/theme"
)

// Run starts the calendar TUI and blocks until it exits. debugPath
// enables JSON-lines event tracing when non-empty.
func Run(repo schedule.Repository, cfg *config.Config, debugPath string) error {
	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return err
	}

	debug, err := NewDebugLogger(debugPath)
	if err != nil {
		return err
	}
	defer debug.Close()

	p := tea.NewProgram(
		NewModel(repo, cfg, th, debug),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running calendar: %w", err)
	}
	return nil
}
