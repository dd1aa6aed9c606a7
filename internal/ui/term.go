package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// colorPending is for appointments awaiting confirmation
	colorPending = color.New(color.FgYellow)

	// colorConfirmed is for confirmed appointments
	colorConfirmed = color.New(color.FgGreen, color.Bold)

	// colorDone is for completed and cancelled appointments
	colorDone = color.New(color.FgWhite, color.Faint)

	// colorFree is for available slots
	colorFree = color.New(color.FgGreen)

	// colorBusy is for taken or past slots
	colorBusy = color.New(color.FgRed, color.Faint)

	// colorHeader is for section headers
	colorHeader = color.New(color.Bold)

	// colorMuted is for secondary text
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, defaulting to 80.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// DisableColor turns off colored output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor turns on colored output.
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
