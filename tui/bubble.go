package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/lyric"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/session"
	"github.com/melodeck/melodeck/style"
	"github.com/melodeck/melodeck/visual"
	"github.com/spf13/viper"
)

const (
	seekStep   = 5.0
	volumeStep = 0.05
	eventQueue = 256
)

type (
	mediaMsg playback.Event
	startMsg struct{}
)

// bubble is the player model. The state machine, the pipeline and the frame scheduler are
// only touched from Update.
type bubble struct {
	options *Options
	session *session.Session
	machine *playback.Machine

	pipeline *visual.Pipeline
	frames   *frameScheduler
	bars     []visual.Bar

	lines       lyric.Lines
	placeholder string
	showLyrics  bool

	// playing is the play intent handed to the machine. It follows the machine's play state signal.
	playing bool
	ended   bool
	failed  bool

	keymap     *keymap
	helpC      help.Model
	progressC  progress.Model
	spinnerC   spinner.Model
	notifierC  *notifier
	showHelp   bool
	width      int
	height     int
	meterWidth int

	events chan playback.Event
	done   chan struct{}
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		options:     options,
		frames:      newFrameScheduler(time.Second / time.Duration(max(viper.GetInt(key.VisualFPS), 1))),
		placeholder: viper.GetString(key.LyricsPlaceholder),
		playing:     session.InitialIntent(options.Paused),
		keymap:      newKeymap(),
		helpC:       help.New(),
		progressC:   progress.New(progress.WithSolidFill(string(style.AccentColor)), progress.WithoutPercentage()),
		spinnerC:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		notifierC:   &notifier{},
		showHelp:    viper.GetBool(key.TUIShowHelp),
		events:      make(chan playback.Event, eventQueue),
		done:        make(chan struct{}),
	}
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	if options.Lyrics {
		b.lines = lyric.Parse(options.Track.Lyrics)
	}

	if options.Visual {
		b.pipeline = visual.NewPipeline(visual.Layout{
			BarWidth: viper.GetFloat64(key.VisualBarWidth),
			BarSpace: viper.GetFloat64(key.VisualBarSpace),
		}, viper.GetInt(key.VisualCapDecay), b.frames)
		b.pipeline.OnFrame(func(bars []visual.Bar) {
			b.bars = bars
		})
	}

	return b
}

func (b *bubble) attach(s *session.Session) {
	b.session = s
	b.machine = s.Machine
}

// sink hands media events to the update loop. It blocks while the queue is full so that no
// event is lost, and gives up once the program has exited.
func (b *bubble) sink(event playback.Event) {
	select {
	case b.events <- event:
	case <-b.done:
	}
}

func (b *bubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-b.events:
			return mediaMsg(event)
		case <-b.done:
			return nil
		}
	}
}

func (b *bubble) signals() playback.Signals {
	return playback.Signals{
		PlayStateChanged: b.onPlayState,
		PlayEnded:        b.onEnded,
	}
}

func (b *bubble) onPlayState(playing bool) {
	b.playing = playing
	if playing {
		b.ended = false
	}
	b.syncMeter()
}

// syncMeter runs the peak meter only while the machine is Playing, so a seek or an
// error stops it even when the play state has not changed.
func (b *bubble) syncMeter() {
	if b.pipeline == nil || b.machine == nil {
		return
	}
	if err := b.pipeline.SetPlaying(b.machine.State().Status == playback.Playing); err != nil {
		log.Warnf("peak meter: %v", err)
	}
}

func (b *bubble) onEnded(success bool) {
	b.ended = true
	b.failed = !success
}

// start assigns the track, attaches the spectral source and hydrates the volume.
func (b *bubble) start() {
	b.session.Start(b.options.Track)

	if b.pipeline == nil {
		return
	}

	source, ok := b.session.Spectral()
	if !ok {
		log.Info("peak meter unavailable with this backend")
		b.pipeline = nil
		return
	}

	if err := b.pipeline.Attach(source); err != nil {
		log.Warnf("attach spectral source: %v", err)
	}
	b.pipeline.Resize(b.meterWidth)
}

func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.meterWidth = b.width
	b.progressC.Width = b.width
	b.helpC.Width = b.width

	if b.pipeline != nil {
		b.pipeline.Resize(b.meterWidth)
	}
}

func (b *bubble) close() {
	if b.pipeline != nil {
		b.pipeline.Close()
	}
}
