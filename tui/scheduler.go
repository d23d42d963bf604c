package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg int

// frameScheduler runs requested frames on the update loop. Requests are collected while a
// message is handled and turned into tick commands by flush.
type frameScheduler struct {
	interval time.Duration
	next     int
	pending  map[int]func()
	queued   []int
}

func newFrameScheduler(interval time.Duration) *frameScheduler {
	return &frameScheduler{
		interval: interval,
		pending:  make(map[int]func()),
	}
}

func (s *frameScheduler) RequestFrame(fn func()) (cancel func()) {
	id := s.next
	s.next++
	s.pending[id] = fn
	s.queued = append(s.queued, id)

	return func() {
		delete(s.pending, id)
	}
}

// run executes the frame unless it was cancelled.
func (s *frameScheduler) run(id frameMsg) {
	fn, ok := s.pending[int(id)]
	if !ok {
		return
	}
	delete(s.pending, int(id))
	fn()
}

func (s *frameScheduler) flush() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, id := range s.queued {
		if _, ok := s.pending[id]; !ok {
			continue
		}
		cmds = append(cmds, tea.Tick(s.interval, func(time.Time) tea.Msg {
			return frameMsg(id)
		}))
	}
	s.queued = s.queued[:0]
	return cmds
}
