// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Theme holds all colors for a TUI theme as hex strings.
type Theme struct {
	Name        string
	Bg          string // base background
	BgHighlight string // grid cells, subtle highlight
	BgSelection string // selected appointment
	Fg          string // primary foreground
	FgMuted     string // past/cancelled items, labels
	Accent      string // title, today marker, borders
	Pending     string // pending appointments
	Confirmed   string // confirmed appointments
	Completed   string // completed appointments
	Warning     string // live session previews, errors
}

// builtins holds the embedded themes. Catppuccin mocha for dark
// terminals, latte for light ones.
var builtins = map[string]Theme{
	"mocha": {
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#6c7086",
		Accent:      "#89b4fa",
		Pending:     "#f9e2af",
		Confirmed:   "#a6e3a1",
		Completed:   "#585b70",
		Warning:     "#fab387",
	},
	"latte": {
		Name:        "latte",
		Bg:          "#eff1f5",
		BgHighlight: "#ccd0da",
		BgSelection: "#bcc0cc",
		Fg:          "#4c4f69",
		FgMuted:     "#9ca0b0",
		Accent:      "#1e66f5",
		Pending:     "#df8e1d",
		Confirmed:   "#40a02b",
		Completed:   "#acb0be",
		Warning:     "#fe640b",
	},
}

// Load returns a theme by name. Empty or "auto" picks a built-in based
// on the terminal background.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		if termenv.HasDarkBackground() {
			name = "mocha"
		} else {
			name = "latte"
		}
	}

	t, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return &t, nil
}

// Names returns the available theme names.
func Names() []string {
	return []string{"mocha", "latte"}
}
