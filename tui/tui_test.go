package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/melodeck/melodeck/config"
	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/session"
	"github.com/melodeck/melodeck/storage"
	"github.com/melodeck/melodeck/visual"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

type fakeMedia struct {
	loaded   string
	paused   bool
	current  float64
	duration float64
	volume   float64
	plays    int
	pauses   int
	seeks    []float64
}

func (m *fakeMedia) Load(url string) error          { m.loaded = url; return nil }
func (m *fakeMedia) Play() error                    { m.plays++; m.paused = false; return nil }
func (m *fakeMedia) Pause() error                   { m.pauses++; m.paused = true; return nil }
func (m *fakeMedia) Seek(s float64) error           { m.seeks = append(m.seeks, s); return nil }
func (m *fakeMedia) SetVolume(v float64) error      { m.volume = v; return nil }
func (m *fakeMedia) Volume() float64                { return m.volume }
func (m *fakeMedia) Duration() float64              { return m.duration }
func (m *fakeMedia) CurrentTime() float64           { return m.current }
func (m *fakeMedia) Buffered() []playback.TimeRange { return nil }
func (m *fakeMedia) Paused() bool                   { return m.paused }
func (m *fakeMedia) Close() error                   { return nil }

type steadySource struct{ connected bool }

func (s *steadySource) FrameSize() int { return 8 }
func (s *steadySource) Connect() error { s.connected = true; return nil }
func (s *steadySource) ReadFrame(frame visual.Frame) {
	for i := range frame {
		frame[i] = 200
	}
}
func (s *steadySource) Disconnect() { s.connected = false }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble(media *fakeMedia, options *Options) *bubble {
	b := newBubble(options)
	s := lo.Must(session.New(session.Options{
		Media:   func(playback.EventSink) playback.MediaHandle { return media },
		Store:   storage.NewMemory(),
		Playing: b.playing,
	}, b.sink, b.signals()))
	b.attach(s)
	b.resize(80, 40)
	return b
}

func TestBubble(t *testing.T) {
	Convey("Given a player over a fake media element", t, func() {
		media := &fakeMedia{paused: true, duration: 10, volume: 1}
		b := newTestBubble(media, &Options{
			Track:  playback.Track{Name: "Song", Artist: "Someone", URL: "/music/song.wav", Lyrics: "[00:01.00]hello\n[00:03.00]"},
			Lyrics: true,
			Visual: true,
		})

		b.Update(startMsg{})
		So(media.loaded, ShouldEqual, "/music/song.wav")
		So(b.pipeline, ShouldBeNil)

		Convey("Before metadata the duration is a placeholder", func() {
			So(b.View(), ShouldContainSubstring, "00:00 / --:--")
		})

		Convey("Once ready it autoplays", func() {
			b.Update(mediaMsg{Kind: playback.LoadedMetadata})
			So(media.plays, ShouldEqual, 1)
			b.Update(mediaMsg{Kind: playback.Play})
			So(b.playing, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "00:00 / 00:10")

			Convey("Space pauses", func() {
				b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
				So(b.playing, ShouldBeFalse)
				So(media.pauses, ShouldEqual, 1)
			})

			Convey("The active lyric follows the time", func() {
				So(b.View(), ShouldContainSubstring, "♪")
				media.current = 2
				b.Update(mediaMsg{Kind: playback.TimeUpdate})
				So(b.View(), ShouldContainSubstring, "hello")

				media.current = 4
				b.Update(mediaMsg{Kind: playback.TimeUpdate})
				So(b.View(), ShouldNotContainSubstring, "hello")
			})

			Convey("The listing shows every line", func() {
				b.Update(runes("l"))
				So(b.showLyrics, ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "hello")
			})

			Convey("Arrows and digits seek", func() {
				media.current = 2
				b.Update(mediaMsg{Kind: playback.TimeUpdate})
				b.Update(tea.KeyMsg{Type: tea.KeyRight})
				b.Update(runes("5"))
				So(media.seeks, ShouldResemble, []float64{7, 5})
			})

			Convey("Volume keys change the volume", func() {
				b.Update(runes("-"))
				So(media.volume, ShouldAlmostEqual, 0.95)

				b.Update(runes("m"))
				So(media.volume, ShouldEqual, 0)
			})

			Convey("Repeat toggles", func() {
				_, cmd := b.Update(runes("r"))
				So(cmd, ShouldNotBeNil)
				So(b.machine.State().Repeat, ShouldBeTrue)
			})

			Convey("Ending stops the play state", func() {
				b.Update(mediaMsg{Kind: playback.Pause})
				b.Update(mediaMsg{Kind: playback.EndedEvent})
				So(b.ended, ShouldBeTrue)
				So(b.failed, ShouldBeFalse)
				So(b.playing, ShouldBeFalse)
			})
		})

		Convey("A media error is shown", func() {
			b.Update(mediaMsg{Kind: playback.Error})
			So(b.failed, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "could not play")
		})

		Convey("Volume keys are ignored until ready", func() {
			_, cmd := b.Update(runes("+"))
			So(cmd, ShouldBeNil)
			So(media.volume, ShouldEqual, 1)
		})

		Convey("Quitting returns the quit command", func() {
			_, cmd := b.Update(runes("q"))
			So(cmd, ShouldNotBeNil)
		})
	})

	Convey("Given a player with a peak meter", t, func() {
		media := &fakeMedia{paused: true, duration: 10, volume: 1}
		b := newTestBubble(media, &Options{Track: playback.Track{Name: "Song", URL: "/music/song.wav"}})
		b.Update(startMsg{})

		source := &steadySource{}
		b.pipeline = visual.NewPipeline(visual.Layout{BarWidth: 1, BarSpace: 0}, 1, b.frames)
		So(b.pipeline.Attach(source), ShouldBeNil)

		b.Update(mediaMsg{Kind: playback.LoadedMetadata})
		b.Update(mediaMsg{Kind: playback.Play})
		So(b.machine.State().Status, ShouldEqual, playback.Playing)
		So(b.pipeline.Running(), ShouldBeTrue)
		So(source.connected, ShouldBeTrue)

		Convey("A seek key stops the meter until the media reports Seeked", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(b.machine.State().Status, ShouldEqual, playback.Seeking)
			So(b.pipeline.Running(), ShouldBeFalse)
			So(source.connected, ShouldBeFalse)

			b.Update(mediaMsg{Kind: playback.Seeked})
			So(b.machine.State().Status, ShouldEqual, playback.Playing)
			So(b.pipeline.Running(), ShouldBeTrue)
		})

		Convey("A seek started by the media stops the meter too", func() {
			b.Update(mediaMsg{Kind: playback.SeekingEvent})
			So(b.playing, ShouldBeTrue)
			So(b.pipeline.Running(), ShouldBeFalse)
		})

		Convey("A media error stops the meter", func() {
			b.Update(mediaMsg{Kind: playback.Error})
			So(b.pipeline.Running(), ShouldBeFalse)
		})
	})

	Convey("Without lyrics the listing says so", t, func() {
		b := newTestBubble(&fakeMedia{paused: true, duration: math.NaN()}, &Options{Lyrics: true})
		b.showLyrics = true
		So(b.View(), ShouldContainSubstring, noLyrics)
	})
}

func TestFrameScheduler(t *testing.T) {
	Convey("Given a frame scheduler", t, func() {
		s := newFrameScheduler(0)
		var ran []int

		first := s.RequestFrame(func() { ran = append(ran, 1) })
		s.RequestFrame(func() { ran = append(ran, 2) })

		Convey("Each request becomes one tick", func() {
			So(s.flush(), ShouldHaveLength, 2)
			So(s.flush(), ShouldBeEmpty)
		})

		Convey("Cancelled frames do not run", func() {
			first()
			first()
			So(s.flush(), ShouldHaveLength, 1)
			s.run(0)
			s.run(1)
			So(ran, ShouldResemble, []int{2})
		})

		Convey("A frame runs once", func() {
			s.run(1)
			s.run(1)
			So(ran, ShouldResemble, []int{2})
		})
	})

	Convey("A pipeline ticks through the scheduler", t, func() {
		s := newFrameScheduler(0)
		p := visual.NewPipeline(visual.Layout{BarWidth: 1, BarSpace: 0}, 1, s)
		So(p.SetPlaying(true), ShouldBeNil)
		So(s.flush(), ShouldHaveLength, 1)

		So(p.SetPlaying(false), ShouldBeNil)
		s.run(0)
		So(s.flush(), ShouldBeEmpty)
	})
}

func TestRender(t *testing.T) {
	Convey("timeLabel", t, func() {
		So(timeLabel(playback.State{CurrentTime: 65, Duration: mo.Some(3700.0)}), ShouldEqual, "01:05 / 01:01:40")
		So(timeLabel(playback.State{CurrentTime: 3, Duration: mo.None[float64]()}), ShouldEqual, "00:03 / --:--")
	})

	Convey("renderMeter", t, func() {
		out := renderMeter([]visual.Bar{{Instant: 255, Cap: 255}, {Instant: 0, Cap: 128}, {}}, 4, 1, 1)
		rows := strings.Split(out, "\n")
		So(rows, ShouldHaveLength, 4)
		So(rows[0], ShouldContainSubstring, "█")
		So(rows[3], ShouldContainSubstring, "█")
		So(out, ShouldContainSubstring, "▔")
		So(strings.Count(out, "▔"), ShouldEqual, 1)
	})

	Convey("columns", t, func() {
		So(columns(2.4, 1), ShouldEqual, 2)
		So(columns(0.2, 1), ShouldEqual, 1)
		So(columns(0.2, 0), ShouldEqual, 0)
	})
}
