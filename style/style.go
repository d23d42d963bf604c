// Package style renders the player's text and meter styles.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/melodeck/melodeck/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer applying the foreground c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// ActiveLyric highlights the line being sung.
var ActiveLyric = New().Foreground(AccentColor).Bold(true)

// MeterCap draws the falling peak mark.
var MeterCap = New().Foreground(SecondaryColor)

// MeterRows returns one style per meter row, floor first, blending MeterLow into MeterHigh.
func MeterRows(height int) []lipgloss.Style {
	rows := make([]lipgloss.Style, height)
	low, errLow := colorful.Hex(string(MeterLow))
	high, errHigh := colorful.Hex(string(MeterHigh))

	for i := range rows {
		switch {
		case errLow != nil || errHigh != nil || height == 1:
			rows[i] = New().Foreground(AccentColor)
		case i == 0:
			rows[i] = New().Foreground(MeterLow)
		case i == height-1:
			rows[i] = New().Foreground(MeterHigh)
		default:
			blend := low.BlendLab(high, float64(i)/float64(height-1))
			rows[i] = New().Foreground(lipgloss.Color(blend.Hex()))
		}
	}
	return rows
}
