package lyric

import (
	"sort"
	"strings"
)

// ActiveIndex returns the index of the line active at currentTime: the position of the
// first line starting after currentTime, minus one. Once playback has passed every line
// this is the last index. It is -1 before the first line or when there are no lines.
func (l Lines) ActiveIndex(currentTime float64) int {
	next := sort.Search(len(l), func(i int) bool {
		return l[i].Time > currentTime
	})
	return next - 1
}

// ActiveText returns the text of the line active at currentTime, or "" when none is.
func (l Lines) ActiveText(currentTime float64) string {
	if i := l.ActiveIndex(currentTime); i >= 0 {
		return l[i].Text
	}
	return ""
}

// Display substitutes placeholder for blank lyric text.
func Display(text, placeholder string) string {
	if strings.TrimSpace(text) == "" {
		return placeholder
	}
	return text
}
