// Package ui implements the agendum command-line interface.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/config"
	"github.com/jcanete/agendum/internal/db"
	"github.com/jcanete/agendum/internal/schedule"
	"github.com/jcanete/agendum/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "agendum",
		Short: "A booking calendar for service businesses",
		Long: `Agendum is an appointment calendar for service businesses.

Running it without arguments opens the interactive week view, where
appointments can be created, moved and resized with the mouse.
Subcommands cover scripted booking, availability lookups and the
HTTP booking API.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config, a.debugPath())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.confirmCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.assistCmd())

	return a
}

// ensureRepo opens the database on first use. Commands that never touch
// storage, like version and config, skip the open entirely.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// debugPath returns the debug log location, or empty when disabled.
func (a *App) debugPath() string {
	if !a.debug {
		return ""
	}
	return filepath.Join(os.TempDir(), "agendum-debug.log")
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("agendum %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
