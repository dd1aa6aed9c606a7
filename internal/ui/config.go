package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  agendum config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Business.OpenTime = promptValue(reader, "Open time", cfg.Business.OpenTime)
	cfg.Business.CloseTime = promptValue(reader, "Close time", cfg.Business.CloseTime)
	cfg.Business.StepMinutes = promptInt(reader, "Slot step minutes (15, 30 or 60)", cfg.Business.StepMinutes)
	cfg.Business.MinMinutes = promptInt(reader, "Minimum booking minutes", cfg.Business.MinMinutes)
	cfg.Server.Listen = promptValue(reader, "HTTP listen address", cfg.Server.Listen)
	cfg.Assist.Provider = promptValue(reader, "Assist provider (empty to disable)", cfg.Assist.Provider)
	cfg.Assist.Model = promptValue(reader, "Assist model", cfg.Assist.Model)
	cfg.Assist.BaseURL = promptValue(reader, "Assist base URL (empty for default)", cfg.Assist.BaseURL)
	cfg.UI.Theme = promptValue(reader, "Theme (mocha, latte or auto)", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved.")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(formatHeader("Business"))
	fmt.Printf("  Hours:    %s-%s\n", cfg.Business.OpenTime, cfg.Business.CloseTime)
	fmt.Printf("  Step:     %d min\n", cfg.Business.StepMinutes)
	fmt.Printf("  Minimum:  %d min\n", cfg.Business.MinMinutes)
	fmt.Println(formatHeader("Storage"))
	fmt.Printf("  Database: %s\n", cfg.Storage.DBPath)
	fmt.Println(formatHeader("Server"))
	fmt.Printf("  Listen:   %s\n", cfg.Server.Listen)
	fmt.Println(formatHeader("Assist"))
	if cfg.Assist.Provider == "" {
		fmt.Println("  Disabled")
	} else {
		fmt.Printf("  Provider: %s\n", cfg.Assist.Provider)
		fmt.Printf("  Model:    %s\n", cfg.Assist.Model)
		if cfg.Assist.BaseURL != "" {
			fmt.Printf("  Base URL: %s\n", cfg.Assist.BaseURL)
		}
	}
	fmt.Println(formatHeader("UI"))
	fmt.Printf("  Theme:    %s\n", cfg.UI.Theme)
}

func promptValue(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	s := promptValue(reader, label, strconv.Itoa(current))
	v, err := strconv.Atoi(s)
	if err != nil {
		return current
	}
	return v
}

func promptYesNo(label string) bool {
	fmt.Printf("%s (y/N): ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
