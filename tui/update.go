package tui

import (
	"fmt"
	"strconv"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/open"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/recent"
)

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		b.waitForEvent(),
		b.spinnerC.Tick,
	)
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifierC.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case startMsg:
		b.start()
		cmds = append(cmds, rememberTrack(b.options.Track.URL))
	case mediaMsg:
		b.machine.Handle(playback.Event(msg))
		b.syncMeter()
		cmds = append(cmds, b.waitForEvent())
	case frameMsg:
		b.frames.run(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if cmd := b.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		b.syncMeter()
	}

	cmds = append(cmds, b.frames.flush()...)
	return b, tea.Batch(cmds...)
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := b.machine.State()

	switch {
	case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
		b.close()
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.playing = !b.playing
		b.machine.SetPlaying(b.playing)
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		b.machine.CommitSeek(state.CurrentTime - seekStep)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		b.machine.CommitSeek(state.CurrentTime + seekStep)
	case bubblesKey.Matches(msg, b.keymap.jump):
		tenth, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil
		}
		if duration, ok := state.Duration.Get(); ok {
			b.machine.CommitSeek(float64(tenth) / 10 * duration)
		}
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		return b.changeVolume(state.Volume + volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		return b.changeVolume(state.Volume - volumeStep)
	case bubblesKey.Matches(msg, b.keymap.mute):
		if b.machine.Ready() {
			b.machine.ToggleMute()
		}
	case bubblesKey.Matches(msg, b.keymap.repeat):
		if b.machine.ToggleRepeat() {
			return notify("repeat on")
		}
		return notify("repeat off")
	case bubblesKey.Matches(msg, b.keymap.lyrics):
		b.showLyrics = !b.showLyrics
	case bubblesKey.Matches(msg, b.keymap.openPoster):
		return b.openPoster()
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

// changeVolume is disabled until the track is ready.
func (b *bubble) changeVolume(value float64) tea.Cmd {
	if !b.machine.Ready() {
		return nil
	}

	b.machine.SetVolume(value)
	return notify(fmt.Sprintf("volume %d%%", int(min(max(value, 0), 1)*100+0.5)))
}

func (b *bubble) openPoster() tea.Cmd {
	poster := b.options.Track.Poster
	if poster == "" {
		return notify("no poster")
	}

	return func() tea.Msg {
		if err := open.Start(poster); err != nil {
			log.Warnf("open poster: %v", err)
			return notifyMsg("could not open poster")
		}
		return nil
	}
}

func rememberTrack(url string) tea.Cmd {
	return func() tea.Msg {
		if err := recent.Remember(url, 1); err != nil {
			log.Warnf("remember %s: %v", url, err)
		}
		return nil
	}
}
