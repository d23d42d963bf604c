package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/melodeck/melodeck/color"
	"github.com/melodeck/melodeck/icon"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/lyric"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/style"
	"github.com/melodeck/melodeck/util"
	"github.com/melodeck/melodeck/visual"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

const (
	meterHeight     = 6
	listingRadius   = 3
	unknownDuration = "--:--"
	noLyrics        = "no lyrics available"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	meterRows    = style.MeterRows(meterHeight)
)

func (b *bubble) View() string {
	state := b.machine.State()

	lines := []string{
		style.Title("Now Playing"),
		"",
		b.fit(b.viewTrack()),
		"",
		b.fit(b.viewStatus(state)),
		b.progressC.ViewAs(state.Progress()),
	}

	if state.Status == playback.Errored {
		lines = append(lines, "", wrap.String(style.Fg(color.Red)(icon.Get(icon.Fail)+" could not play "+b.options.Track.URL), b.width))
	}

	if b.pipeline != nil && len(b.bars) > 0 {
		lines = append(lines, "", renderMeter(b.bars, meterHeight,
			columns(viper.GetFloat64(key.VisualBarWidth), 1),
			columns(viper.GetFloat64(key.VisualBarSpace), 0),
		))
	}

	if b.options.Lyrics {
		lines = append(lines, "")
		if b.showLyrics {
			lines = append(lines, b.viewListing(state.CurrentTime)...)
		} else {
			lines = append(lines, b.fit(b.viewInlineLyric(state.CurrentTime)))
		}
	}

	return b.renderLines(lines)
}

func (b *bubble) viewTrack() string {
	track := b.options.Track
	line := icon.Get(icon.Track) + " " + style.Fg(color.Purple)(track.Name)
	if track.Artist != "" {
		line += " " + style.Faint("by "+track.Artist)
	}
	return line
}

func (b *bubble) viewStatus(state playback.State) string {
	parts := []string{
		b.statusIcon(state),
		timeLabel(state),
		volumeLabel(state.Volume),
	}

	if state.BufferedRatio < 1 {
		parts = append(parts, style.Faint(fmt.Sprintf("buffered %d%%", int(state.BufferedRatio*100))))
	}

	if state.Repeat {
		parts = append(parts, icon.Get(icon.Repeat))
	}

	return strings.Join(parts, "  ")
}

func (b *bubble) statusIcon(state playback.State) string {
	switch {
	case state.Status == playback.Errored:
		return icon.Get(icon.Fail)
	case state.Loading:
		return b.spinnerC.View()
	case state.Status == playback.Playing:
		return icon.Get(icon.Play)
	case state.Status == playback.Ended:
		return icon.Get(icon.Success)
	default:
		return icon.Get(icon.Pause)
	}
}

// timeLabel renders "current / duration", with a placeholder while the duration is unknown.
func timeLabel(state playback.State) string {
	duration := unknownDuration
	if d, ok := state.Duration.Get(); ok {
		duration = util.FormatTime(d)
	}
	return util.FormatTime(state.CurrentTime) + " / " + duration
}

func volumeLabel(volume float64) string {
	if volume <= 0 {
		return icon.Get(icon.Mute)
	}
	return fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(math.Round(volume*100)))
}

func (b *bubble) viewInlineLyric(at float64) string {
	return icon.Get(icon.Lyrics) + " " + lyric.Display(b.lines.ActiveText(at), b.placeholder)
}

// viewListing shows the lines around the active one.
func (b *bubble) viewListing(at float64) []string {
	if len(b.lines) == 0 {
		return []string{style.Faint(noLyrics)}
	}

	active := b.lines.ActiveIndex(at)
	from := util.Clamp(active-listingRadius, 0, max(len(b.lines)-2*listingRadius-1, 0))
	to := min(from+2*listingRadius+1, len(b.lines))

	listing := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		text := b.fit(lyric.Display(b.lines[i].Text, b.placeholder))
		if i == active {
			listing = append(listing, style.ActiveLyric.Render(text))
		} else {
			listing = append(listing, style.Faint(text))
		}
	}
	return listing
}

// renderMeter draws the bars bottom-up, height rows tall, with the cap as a thin mark above each bar.
func renderMeter(bars []visual.Bar, height, barWidth, barSpace int) string {
	rowStyles := meterRows
	if len(rowStyles) != height {
		rowStyles = style.MeterRows(height)
	}

	rows := make([]string, height)
	gap := strings.Repeat(" ", barSpace)
	full := strings.Repeat("█", barWidth)
	mark := strings.Repeat("▔", barWidth)
	empty := strings.Repeat(" ", barWidth)

	for r := range height {
		level := height - 1 - r
		var row strings.Builder
		for i, bar := range bars {
			if i > 0 {
				row.WriteString(gap)
			}

			switch {
			case scale(bar.Instant, height) > level:
				row.WriteString(rowStyles[level].Render(full))
			case bar.Cap > 0 && scale(bar.Cap, height) == level:
				row.WriteString(style.MeterCap.Render(mark))
			default:
				row.WriteString(empty)
			}
		}
		rows[r] = row.String()
	}

	return strings.Join(rows, "\n")
}

// scale maps a 0-255 magnitude onto a number of filled rows.
func scale(value, height int) int {
	return value * height / 255
}

func columns(value float64, least int) int {
	return max(int(math.Round(value)), least)
}

func (b *bubble) fit(s string) string {
	if b.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width), "…")
}

func (b *bubble) renderLines(lines []string) string {
	l := strings.Join(lines, "\n")

	if h := len(lines) + 1; b.height > h {
		l += strings.Repeat("\n", b.height-h)
	}

	footer := ""
	if b.showHelp {
		footer = b.helpC.View(b.keymap)
	}
	if n := b.notifierC.View(); n != "" {
		footer += "  " + n
	}

	return paddingStyle.Render(l + "\n" + footer)
}
