package audio

import (
	"math"
	"math/cmplx"

	"github.com/melodeck/melodeck/visual"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	minDecibels = -100.0
	maxDecibels = -30.0
	smoothing   = 0.8
)

// Analyser reads spectral frames from the tap of an Element's current track.
// Each frame covers twice FrameSize samples so every bin of the frame is filled.
type Analyser struct {
	element *Element
	size    int
	tap     *Tap
	prev    []float64
}

// Analyser returns a spectral source over the element's audio with size bins per frame.
// size is capped at half the tap length.
func (e *Element) Analyser(size int) *Analyser {
	size = min(max(size, 1), tapSize/2)
	return &Analyser{
		element: e,
		size:    size,
		prev:    make([]float64, size),
	}
}

var _ visual.SpectralSource = (*Analyser)(nil)

func (a *Analyser) FrameSize() int {
	return a.size
}

// Connect binds the analyser to the tap of the track currently loaded.
func (a *Analyser) Connect() error {
	tap := a.element.currentTap()
	if tap == nil {
		return ErrNotLoaded
	}

	a.tap = tap
	clear(a.prev)
	return nil
}

func (a *Analyser) Disconnect() {
	a.tap = nil
}

func (a *Analyser) ReadFrame(frame visual.Frame) {
	if a.tap == nil {
		clear(frame)
		return
	}

	samples := a.tap.Samples(2 * a.size)
	window.Apply(samples, window.Hann)
	coefficients := fft.FFTReal(samples)

	scale := float64(len(samples))
	for i := range frame {
		if i >= a.size {
			break
		}
		magnitude := cmplx.Abs(coefficients[i]) / scale
		a.prev[i] = smoothing*a.prev[i] + (1-smoothing)*magnitude
		frame[i] = toByte(a.prev[i])
	}
}

// toByte maps a linear magnitude onto 0..255 over the decibel window.
func toByte(magnitude float64) uint8 {
	if magnitude <= 0 {
		return 0
	}

	db := 20 * math.Log10(magnitude)
	scaled := (db - minDecibels) / (maxDecibels - minDecibels) * 255
	return uint8(min(max(scaled, 0), 255))
}
