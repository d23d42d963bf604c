package inline

import (
	"encoding/json"

	"github.com/melodeck/melodeck/lyric"
)

// Active is the line in effect at the requested offset.
type Active struct {
	// Index into Lines, -1 before the first line.
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Display is Text with the placeholder substituted when it is blank.
	Display string `json:"display"`
}

type Output struct {
	Source string      `json:"source,omitempty"`
	At     *float64    `json:"at,omitempty"`
	Active *Active     `json:"active,omitempty"`
	Lines  lyric.Lines `json:"lines"`
}

func asJson(lines lyric.Lines, options *Options) ([]byte, error) {
	if lines == nil {
		lines = lyric.Lines{}
	}

	output := &Output{
		Source: options.Source,
		Lines:  lines,
	}

	if at, ok := options.At.Get(); ok {
		output.At = &at
		output.Active = active(lines, at, options.Placeholder)
	}

	return json.Marshal(output)
}

func active(lines lyric.Lines, at float64, placeholder string) *Active {
	text := lines.ActiveText(at)
	return &Active{
		Index:   lines.ActiveIndex(at),
		Text:    text,
		Display: lyric.Display(text, placeholder),
	}
}
