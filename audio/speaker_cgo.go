//go:build (linux && cgo) || windows || darwin

package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Available reports whether this build can drive a sound device.
const Available = true

const speakerRate = beep.SampleRate(44100)

type speakerOutput struct {
	once sync.Once
	err  error
}

// NewSpeaker returns the system sound device. It is initialized on first use.
func NewSpeaker() Output {
	return &speakerOutput{}
}

func (s *speakerOutput) Init() error {
	s.once.Do(func() {
		s.err = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return s.err
}

func (s *speakerOutput) SampleRate() beep.SampleRate {
	return speakerRate
}

func (s *speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (s *speakerOutput) Lock() {
	speaker.Lock()
}

func (s *speakerOutput) Unlock() {
	speaker.Unlock()
}
