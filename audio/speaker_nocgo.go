//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep/v2"
)

// Available reports whether this build can drive a sound device.
// Sound output needs cgo on this platform.
const Available = false

// ErrNoDevice is returned when the binary was built without sound support.
var ErrNoDevice = errors.New("built without sound support, rebuild with cgo or use the mpv backend")

type silentOutput struct {
	mu sync.Mutex
}

// NewSpeaker returns an output that refuses to initialize.
func NewSpeaker() Output {
	return &silentOutput{}
}

func (s *silentOutput) Init() error {
	return ErrNoDevice
}

func (s *silentOutput) SampleRate() beep.SampleRate {
	return beep.SampleRate(44100)
}

func (s *silentOutput) Play(beep.Streamer) {}

func (s *silentOutput) Lock() {
	s.mu.Lock()
}

func (s *silentOutput) Unlock() {
	s.mu.Unlock()
}
