// Package visual turns spectral frames into a decaying peak-meter display.
package visual

import "math"

// Frame is one spectral sample, a magnitude in 0..255 per frequency bin.
type Frame []uint8

// Layout describes how bars are laid out over the output width.
type Layout struct {
	// BarWidth and BarSpace are measured in output units, the same as the width passed to Buckets.
	BarWidth  float64
	BarSpace  float64
	FrameSize int
}

// Buckets returns how many consecutive bins form one bar and how many bars fit the frame.
// A non-positive width yields no bars.
func (l Layout) Buckets(width int) (step, count int) {
	if width <= 0 || l.FrameSize <= 0 {
		return 0, 0
	}

	step = int(math.Floor((l.BarWidth + l.BarSpace) * float64(l.FrameSize) / float64(width)))
	if step < 1 {
		step = 1
	}

	return step, l.FrameSize / step
}

// Bucketize averages each run of step samples into one rounded instant value.
// Buckets that would read past the frame are averaged over the samples that exist.
func Bucketize(frame Frame, step, count int) []int {
	instants := make([]int, count)
	if step <= 0 {
		return instants
	}

	for i := range instants {
		start := i * step
		if start >= len(frame) {
			break
		}
		end := start + step
		if end > len(frame) {
			end = len(frame)
		}

		var sum int
		for _, sample := range frame[start:end] {
			sum += int(sample)
		}
		instants[i] = int(math.Round(float64(sum) / float64(end-start)))
	}

	return instants
}
