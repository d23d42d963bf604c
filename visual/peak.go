package visual

// Bar is the displayed state of one bucket.
type Bar struct {
	Instant int
	Cap     int
}

// PeakMeter keeps the peak-hold caps of every bucket.
type PeakMeter struct {
	bars  []Bar
	decay int
}

// NewPeakMeter creates an empty meter whose caps fall by decay per update.
func NewPeakMeter(decay int) *PeakMeter {
	if decay < 1 {
		decay = 1
	}
	return &PeakMeter{decay: decay}
}

// Resize reallocates the meter with n zeroed bars when n differs from the current length.
// It reports whether a reallocation happened.
func (m *PeakMeter) Resize(n int) bool {
	if n < 0 {
		n = 0
	}
	if n == len(m.bars) {
		return false
	}

	m.bars = make([]Bar, n)
	return true
}

// Update feeds one tick of instant values. Extra values beyond the meter length are ignored.
func (m *PeakMeter) Update(instants []int) {
	for i := range m.bars {
		if i >= len(instants) {
			break
		}

		bar := &m.bars[i]
		bar.Instant = instants[i]
		// The cap decays first and never drops below the current instant.
		bar.Cap = max(bar.Cap-m.decay, bar.Instant, 0)
	}
}

// Bars returns the current bars. The slice is owned by the meter.
func (m *PeakMeter) Bars() []Bar {
	return m.bars
}

// Len returns the number of bars.
func (m *PeakMeter) Len() int {
	return len(m.bars)
}
