package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/melodeck/melodeck/playback"
)

// ErrPlayback is reported when mpv gives up on the loaded file.
var ErrPlayback = errors.New("mpv could not play the file")

// properties caches the mpv properties the media element reads back.
type properties struct {
	duration  float64
	timePos   float64
	cacheTime float64
	volume    float64
	paused    bool
	seeking   bool
	local     bool
}

func newProperties() properties {
	return properties{
		duration: math.NaN(),
		volume:   1,
		paused:   true,
	}
}

// apply records one mpv notification and returns the media events it amounts to.
// name is an observed property, or an event name with the raw event as data.
func (p *properties) apply(name string, data any) []playback.Event {
	switch name {
	case "start-file":
		p.duration = math.NaN()
		p.timePos = 0
		p.cacheTime = 0
		p.seeking = false
		return events(playback.LoadStart)
	case "end-file":
		event, _ := data.(map[string]any)
		if event["reason"] != "error" {
			return nil
		}
		err := ErrPlayback
		if reason, ok := event["file_error"].(string); ok && reason != "" {
			err = fmt.Errorf("%w: %s", ErrPlayback, reason)
		}
		return []playback.Event{{Kind: playback.Error, Err: err}}
	case "playback-restart":
		return events(playback.CanPlay)
	case "duration":
		if v, ok := data.(float64); ok && v > 0 {
			p.duration = v
			return events(playback.LoadedMetadata)
		}
	case "time-pos":
		if v, ok := data.(float64); ok {
			p.timePos = max(v, 0)
			return events(playback.TimeUpdate)
		}
	case "pause":
		if v, ok := data.(bool); ok && v != p.paused {
			p.paused = v
			if v {
				return events(playback.Pause)
			}
			return events(playback.Play)
		}
	case "seeking":
		v, ok := data.(bool)
		if !ok || v == p.seeking {
			return nil
		}
		p.seeking = v
		if v {
			return events(playback.SeekingEvent)
		}
		return events(playback.Seeked, playback.TimeUpdate)
	case "eof-reached":
		if v, ok := data.(bool); ok && v {
			return events(playback.EndedEvent)
		}
	case "paused-for-cache":
		if v, ok := data.(bool); ok {
			if v {
				return events(playback.Waiting)
			}
			return events(playback.CanPlay)
		}
	case "volume":
		if v, ok := data.(float64); ok {
			p.volume = min(max(v/100, 0), 1)
			return events(playback.VolumeChange)
		}
	case "demuxer-cache-time":
		if v, ok := data.(float64); ok {
			p.cacheTime = v
			return events(playback.Progress)
		}
	}

	return nil
}

// buffered reports local files as fully buffered once their duration is known.
func (p *properties) buffered() []playback.TimeRange {
	switch {
	case math.IsNaN(p.duration):
		return nil
	case p.local:
		return []playback.TimeRange{{Start: 0, End: p.duration}}
	case p.cacheTime > 0:
		return []playback.TimeRange{{Start: 0, End: p.cacheTime}}
	default:
		return nil
	}
}

func events(kinds ...playback.EventKind) []playback.Event {
	out := make([]playback.Event, len(kinds))
	for i, kind := range kinds {
		out[i] = playback.Event{Kind: kind}
	}
	return out
}
