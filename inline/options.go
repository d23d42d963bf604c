package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

type Options struct {
	Out io.Writer
	// Source names where the lyrics came from, echoed in the JSON output.
	Source      string
	Lyrics      string
	At          mo.Option[float64]
	Json        bool
	Placeholder string
}

// ParseAt parses a playback offset given either in seconds ("83.5") or as a clock ("1:23.5", "1:02:03").
func ParseAt(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty offset")
	}

	var total float64
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid offset: %s", value)
	}

	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid offset: %s", value)
		}
		// only the last segment may carry a fraction or exceed 59
		if i < len(parts)-1 && n != float64(int(n)) {
			return 0, fmt.Errorf("invalid offset: %s", value)
		}
		total = total*60 + n
	}

	return total, nil
}
