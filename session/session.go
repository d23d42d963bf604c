// Package session wires a media backend, the volume store and the playback state machine for a host.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/melodeck/melodeck/audio"
	"github.com/melodeck/melodeck/constant"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/player"
	"github.com/melodeck/melodeck/storage"
	"github.com/melodeck/melodeck/visual"
	"github.com/melodeck/melodeck/volume"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrUnknownBackend is returned for a backend name other than beep or mpv.
var ErrUnknownBackend = errors.New("unknown player backend")

// Backends lists the selectable media backends.
func Backends() []string {
	return []string{constant.BackendBeep, constant.BackendMPV}
}

type Options struct {
	// Backend is one of Backends(); empty means the configured default.
	Backend string
	Repeat  bool
	Playing bool
	// Store persists the volume. Nil means the default gache store.
	Store volume.KeyValueStore
	// Media overrides the backend, mainly for tests. It receives the session's event sink.
	Media func(playback.EventSink) playback.MediaHandle
}

// InitialIntent is the play intent a host starts with. The track autoplays only when
// player.autoplay is on and the user did not ask to start paused.
func InitialIntent(paused bool) bool {
	return !paused && viper.GetBool(key.PlayerAutoplay)
}

// Session is one playing host: its media element, volume and state machine.
// Everything but Media must be used from the host's loop.
type Session struct {
	Media   playback.MediaHandle
	Volume  *volume.Store
	Machine *playback.Machine

	spectral func() visual.SpectralSource
}

// New builds a session. sink receives the media events, which the host must hand to
// Machine.Handle on its loop.
func New(options Options, sink playback.EventSink, signals playback.Signals) (*Session, error) {
	s := &Session{}

	if options.Media != nil {
		s.Media = options.Media(sink)
	} else {
		if err := s.openBackend(lo.Ternary(options.Backend == "", viper.GetString(key.PlayerBackend), options.Backend), sink); err != nil {
			return nil, err
		}
	}

	kv := options.Store
	if kv == nil {
		kv = storage.NewGache("")
	}

	s.Volume = volume.NewStore(kv, viper.GetFloat64(key.VolumeDefault))
	s.Machine = playback.New(
		s.Media,
		s.Volume,
		signals,
		playback.WithRepeat(options.Repeat),
		playback.WithPlaying(options.Playing),
	)

	return s, nil
}

func (s *Session) openBackend(name string, sink playback.EventSink) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case constant.BackendBeep:
		if !audio.Available {
			log.Warn("sound output unavailable in this build, use the mpv backend")
		}
		element := audio.NewElement(audio.NewSpeaker(), sink)
		size := viper.GetInt(key.VisualFFTSize)
		s.Media = element
		s.spectral = func() visual.SpectralSource {
			return element.Analyser(size)
		}
	case constant.BackendMPV:
		s.Media = player.NewMPV(viper.GetString(key.PlayerMPVPath), sink)
	default:
		return fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}

	log.Infof("using %s backend", name)
	return nil
}

// Spectral returns a fresh spectral source over the current track, if the backend has one.
func (s *Session) Spectral() (visual.SpectralSource, bool) {
	if s.spectral == nil {
		return nil, false
	}
	return s.spectral(), true
}

// Start assigns track and hydrates the volume. Call it from the host's loop.
func (s *Session) Start(track playback.Track) {
	s.Machine.Assign(track)
	s.Volume.Hydrate()
}

// Close releases the media backend.
func (s *Session) Close() error {
	return s.Media.Close()
}
