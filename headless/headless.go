// Package headless plays a track without a terminal UI, printing status changes and lyric lines as they become active.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/lyric"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/session"
	"github.com/melodeck/melodeck/util"
	"github.com/samber/lo"
)

// ErrPlaybackFailed is returned when the track ends unsuccessfully.
var ErrPlaybackFailed = errors.New("playback failed")

type Options struct {
	Out     io.Writer
	Track   playback.Track
	Session session.Options
	Lyrics  bool
}

type host struct {
	out     io.Writer
	loop    *playback.Loop
	session *session.Session
	lines   lyric.Lines
	active  int
	err     error
}

// Run plays options.Track until it ends or ctx is cancelled.
func Run(ctx context.Context, options *Options) error {
	h := &host{
		out:    lo.Ternary[io.Writer](options.Out == nil, os.Stdout, options.Out),
		loop:   playback.NewLoop(),
		active: -1,
	}

	if options.Lyrics {
		h.lines = lyric.Parse(options.Track.Lyrics)
	}

	s, err := session.New(options.Session, h.loop.Sink(h.handle), playback.Signals{
		PlayStateChanged: h.onPlayState,
		PlayEnded:        h.onEnded,
	})
	if err != nil {
		return err
	}
	h.session = s

	defer func() {
		if err := s.Close(); err != nil {
			log.Warnf("close media: %v", err)
		}
	}()

	h.loop.Post(func() {
		h.printf("loading %s", options.Track)
		s.Start(options.Track)
	})

	if err := h.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return h.err
}

func (h *host) handle(event playback.Event) {
	h.session.Machine.Handle(event)

	if event.Kind != playback.TimeUpdate || len(h.lines) == 0 {
		return
	}

	state := h.session.Machine.State()
	if i := h.lines.ActiveIndex(state.CurrentTime); i != h.active {
		h.active = i
		if i >= 0 {
			h.printf("[%s] %s", util.FormatTime(h.lines[i].Time), h.lines[i].Text)
		}
	}
}

func (h *host) onPlayState(playing bool) {
	state := h.session.Machine.State()
	h.printf("%s at %s", lo.Ternary(playing, "playing", "paused"), util.FormatTime(state.CurrentTime))
}

func (h *host) onEnded(success bool) {
	if success {
		h.printf("finished %s", h.session.Machine.Track())
	} else {
		h.err = fmt.Errorf("%w: %s", ErrPlaybackFailed, h.session.Machine.Track().URL)
	}
	h.loop.Stop()
}

func (h *host) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(h.out, format+"\n", args...); err != nil {
		log.Warnf("write: %v", err)
	}
}
