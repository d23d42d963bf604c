// Package lyric parses timestamped (LRC-style) lyric text and resolves the line active at a playback offset.
package lyric

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/melodeck/melodeck/util"
)

// Line is a single lyric entry shown from Time (seconds) onward.
type Line struct {
	Time float64 `json:"time" jsonschema:"minimum=0,description=Offset in seconds at which the line becomes active"`
	Text string  `json:"text" jsonschema:"description=Lyric text; may be empty"`
}

// Lines is a lyric track, ordered ascending by Time.
type Lines []Line

var (
	// tagsPattern captures the run of leading timestamp tags and the free text that follows them.
	tagsPattern = regexp.MustCompile(`^((?:\[\d+:\d{1,2}(?:[.:]\d*)?\])+)(.*)$`)
	tagPattern  = regexp.MustCompile(`\[(?P<min>\d+):(?P<sec>\d{1,2})(?:[.:](?P<frac>\d*))?\]`)
)

// Parse reads newline-delimited LRC text. Blank lines and lines without a timestamp
// (including metadata tags such as [ar:...]) are dropped silently. A line carrying
// several timestamps yields one entry per timestamp. The result is stable-sorted by time.
func Parse(text string) Lines {
	var lines Lines

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if raw == "" {
			continue
		}

		match := tagsPattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}

		body := strings.TrimSpace(match[2])
		for _, tag := range tagPattern.FindAllString(match[1], -1) {
			at, ok := parseTimestamp(tag)
			if !ok {
				continue
			}
			lines = append(lines, Line{Time: at, Text: body})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})

	return lines
}

// parseTimestamp converts a single [mm:ss.ff] tag into seconds rounded to two decimals.
func parseTimestamp(tag string) (float64, bool) {
	groups := util.ReGroups(tagPattern, tag)

	minutes, err := strconv.Atoi(groups["min"])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(groups["sec"])
	if err != nil {
		return 0, false
	}

	var fraction float64
	if frac := groups["frac"]; frac != "" {
		fraction, err = strconv.ParseFloat("0."+frac, 64)
		if err != nil {
			return 0, false
		}
	}

	total := float64(minutes*60+seconds) + fraction
	return math.Round(total*100) / 100, true
}
