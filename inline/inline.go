// Package inline implements the non-interactive lyric tool: parse, resolve the active line, print.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/lyric"
	"github.com/melodeck/melodeck/util"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	lines := lyric.Parse(options.Lyrics)
	log.Infof("parsed %d lyric lines from %s", len(lines), options.Source)

	if options.Json {
		return writeJson(options.Out, lines, options)
	}

	if at, ok := options.At.Get(); ok {
		_, err := fmt.Fprintln(options.Out, active(lines, at, options.Placeholder).Display)
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(options.Out, "[%s] %s\n", util.FormatTime(line.Time), line.Text); err != nil {
			return err
		}
	}

	return nil
}

func writeJson(out io.Writer, lines lyric.Lines, options *Options) error {
	data, err := asJson(lines, options)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}
