package playback

import (
	"math"

	"github.com/samber/mo"
)

// BufferedRatio returns the end of the last buffered range as a fraction of duration, clamped to [0,1].
// It is 0 when nothing is buffered or the duration is unknown.
func BufferedRatio(ranges []TimeRange, duration mo.Option[float64]) float64 {
	d, ok := duration.Get()
	if !ok || d <= 0 || len(ranges) == 0 {
		return 0
	}

	ratio := ranges[len(ranges)-1].End / d
	if math.IsNaN(ratio) {
		return 0
	}
	return min(max(ratio, 0), 1)
}

// knownDuration wraps a media-reported duration, treating non-finite and non-positive values as unknown.
func knownDuration(seconds float64) mo.Option[float64] {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return mo.None[float64]()
	}
	return mo.Some(seconds)
}
