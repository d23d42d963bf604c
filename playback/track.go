// Package playback drives a media element through its load, play, seek and end lifecycle.
package playback

import (
	"fmt"

	"github.com/samber/mo"
)

// Track is the media being played. Poster and Lyrics are empty when absent.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Poster string `json:"poster,omitempty"`
	Lyrics string `json:"lyrics,omitempty"`
}

func (t Track) String() string {
	if t.Artist == "" {
		return t.Name
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Name)
}

// State is a snapshot of the derived playback state.
type State struct {
	Status Status
	// CurrentTime follows the scrub position while seeking.
	CurrentTime   float64
	Duration      mo.Option[float64]
	BufferedRatio float64
	Repeat        bool
	Loading       bool
	Volume        float64
}

// Progress returns CurrentTime as a fraction of the duration, or 0 while the duration is unknown.
func (s State) Progress() float64 {
	duration, ok := s.Duration.Get()
	if !ok || duration <= 0 {
		return 0
	}
	return min(max(s.CurrentTime/duration, 0), 1)
}
