package util

import (
	"fmt"
	"math"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * 60
)

// FormatTime renders a playback offset in seconds as mm:ss, or hh:mm:ss once it reaches an hour.
// Negative and NaN inputs render as 00:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	s := int64(math.Floor(seconds))

	segments := make([]int64, 0, 3)
	if s >= secondsPerHour {
		segments = append(segments, s/secondsPerHour)
		s %= secondsPerHour
	}
	segments = append(segments, s/secondsPerMinute, s%secondsPerMinute)

	parts := make([]string, len(segments))
	for i, v := range segments {
		parts[i] = fmt.Sprintf("%02d", v)
	}
	return strings.Join(parts, ":")
}
