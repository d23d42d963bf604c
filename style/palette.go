package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Overlay  = lipgloss.Color("#6c7086")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Teal     = lipgloss.Color("#94e2d5")
	Lavender = lipgloss.Color("#b4befe")
)

var (
	AccentColor    = Mauve
	SecondaryColor = Lavender
	HiRed          = Red
	FaintColor     = Overlay

	// The meter fades from MeterLow at its floor to MeterHigh at its top row.
	MeterLow  = Teal
	MeterHigh = Peach
)
