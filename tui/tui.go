// Package tui is the interactive terminal player.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/session"
)

// Options encapsulates the runtime configuration for the terminal player.
type Options struct {
	Track   playback.Track
	Backend string
	Repeat  bool
	// Paused starts with the play intent off even when autoplay is configured.
	Paused bool
	Visual bool
	Lyrics bool
}

// Run plays options.Track until the user quits.
func Run(options *Options) error {
	b := newBubble(options)

	s, err := session.New(session.Options{
		Backend: options.Backend,
		Repeat:  options.Repeat,
		Playing: b.playing,
	}, b.sink, b.signals())
	if err != nil {
		return err
	}
	b.attach(s)

	defer func() {
		if err := s.Close(); err != nil {
			log.Warnf("close media: %v", err)
		}
	}()
	defer close(b.done)

	_, err = tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}
