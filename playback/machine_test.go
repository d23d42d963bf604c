package playback

import (
	"errors"
	"math"
	"testing"

	"github.com/melodeck/melodeck/volume"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeMedia struct {
	loaded   []string
	loadErr  error
	playErr  error
	seekErr  error
	plays    int
	pauses   int
	seeks    []float64
	volumes  []float64
	volume   float64
	duration float64
	current  float64
	buffered []TimeRange
	paused   bool
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{volume: 1, duration: math.NaN(), paused: true}
}

func (f *fakeMedia) Load(url string) error {
	f.loaded = append(f.loaded, url)
	f.paused = true
	return f.loadErr
}

func (f *fakeMedia) Play() error {
	f.plays++
	if f.playErr != nil {
		return f.playErr
	}
	f.paused = false
	return nil
}

func (f *fakeMedia) Pause() error {
	f.pauses++
	f.paused = true
	return nil
}

func (f *fakeMedia) Seek(seconds float64) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.seeks = append(f.seeks, seconds)
	f.current = seconds
	return nil
}

func (f *fakeMedia) SetVolume(v float64) error {
	f.volumes = append(f.volumes, v)
	f.volume = v
	return nil
}

func (f *fakeMedia) Volume() float64       { return f.volume }
func (f *fakeMedia) Duration() float64     { return f.duration }
func (f *fakeMedia) CurrentTime() float64  { return f.current }
func (f *fakeMedia) Buffered() []TimeRange { return f.buffered }
func (f *fakeMedia) Paused() bool          { return f.paused }
func (f *fakeMedia) Close() error          { return nil }

type memoryKV map[string]float64

func (m memoryKV) Get(key string) (float64, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memoryKV) Set(key string, value float64) error {
	m[key] = value
	return nil
}

type recorder struct {
	playStates []bool
	ended      []bool
}

func (r *recorder) signals() Signals {
	return Signals{
		PlayStateChanged: func(playing bool) { r.playStates = append(r.playStates, playing) },
		PlayEnded:        func(success bool) { r.ended = append(r.ended, success) },
	}
}

var song = Track{Name: "Song", Artist: "Band", URL: "song.wav"}

// ready drives the fake through metadata with the given duration.
func ready(m *Machine, media *fakeMedia, duration float64) {
	media.duration = duration
	m.Handle(Event{Kind: LoadStart})
	m.Handle(Event{Kind: LoadedMetadata})
	m.Handle(Event{Kind: CanPlay})
}

// playing drives the fake into the Playing status.
func playing(m *Machine, media *fakeMedia, duration float64) {
	ready(m, media, duration)
	m.SetPlaying(true)
	m.Handle(Event{Kind: Play})
}

func TestAssign(t *testing.T) {
	Convey("Given an idle machine", t, func() {
		media := newFakeMedia()
		rec := &recorder{}
		m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals())

		Convey("It starts idle and ignores stray events", func() {
			m.Handle(Event{Kind: Play})
			So(m.State().Status, ShouldEqual, Idle)
			So(rec.playStates, ShouldBeEmpty)
		})

		Convey("Assigning a track loads it", func() {
			m.Assign(song)
			So(media.loaded, ShouldResemble, []string{"song.wav"})
			So(m.State().Status, ShouldEqual, Loading)
			So(m.State().Loading, ShouldBeTrue)
			So(m.Track(), ShouldResemble, song)
		})

		Convey("Metadata makes it ready with a known duration", func() {
			m.Assign(song)
			ready(m, media, 200)
			state := m.State()
			So(state.Status, ShouldEqual, Ready)
			So(state.Duration, ShouldResemble, mo.Some(200.0))
			So(state.Loading, ShouldBeFalse)
			So(media.plays, ShouldEqual, 0)
		})

		Convey("Reassigning resets time, readiness and buffering", func() {
			m.Assign(song)
			playing(m, media, 100)
			media.current = 42
			media.buffered = []TimeRange{{0, 80}}
			m.Handle(Event{Kind: TimeUpdate})
			m.Scrub(70)

			next := Track{Name: "Next", URL: "next.mp3"}
			m.Assign(next)
			state := m.State()
			So(state.CurrentTime, ShouldEqual, 0)
			So(state.BufferedRatio, ShouldEqual, 0)
			So(state.Duration.IsAbsent(), ShouldBeTrue)
			So(state.Status, ShouldEqual, Loading)
			So(m.Ready(), ShouldBeFalse)
		})

		Convey("A load failure errors the track", func() {
			media.loadErr = errors.New("no such file")
			m.Assign(song)
			So(m.State().Status, ShouldEqual, Errored)
			So(rec.ended, ShouldResemble, []bool{false})
			So(rec.playStates, ShouldResemble, []bool{false})
		})
	})
}

func TestPlayIntent(t *testing.T) {
	Convey("Given a loading track", t, func() {
		media := newFakeMedia()
		rec := &recorder{}
		m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals())
		m.Assign(song)

		Convey("Requests before Ready are not queued; the last intent wins", func() {
			m.SetPlaying(true)
			m.SetPlaying(false)
			m.SetPlaying(true)
			So(media.plays, ShouldEqual, 0)

			ready(m, media, 100)
			So(media.plays, ShouldEqual, 1)

			m.Handle(Event{Kind: Play})
			So(m.State().Status, ShouldEqual, Playing)
			So(rec.playStates, ShouldResemble, []bool{true})
		})

		Convey("An intent withdrawn before Ready does not autoplay", func() {
			m.SetPlaying(true)
			m.SetPlaying(false)
			ready(m, media, 100)
			So(media.plays, ShouldEqual, 0)
			So(m.State().Status, ShouldEqual, Ready)
		})

		Convey("A blocked autoplay pauses and reports not playing", func() {
			media.playErr = errors.New("denied by policy")
			m.SetPlaying(true)
			ready(m, media, 100)

			So(m.State().Status, ShouldEqual, Paused)
			So(m.State().Loading, ShouldBeFalse)
			So(rec.playStates, ShouldResemble, []bool{false})
			So(rec.ended, ShouldBeEmpty)
		})

		Convey("Pause while playing asks the media to pause", func() {
			playing(m, media, 100)
			m.SetPlaying(false)
			So(media.pauses, ShouldEqual, 1)
			m.Handle(Event{Kind: Pause})
			So(m.State().Status, ShouldEqual, Paused)
			So(rec.playStates, ShouldResemble, []bool{true, false})
		})

		Convey("Playing twice does not call the media twice", func() {
			playing(m, media, 100)
			m.SetPlaying(true)
			So(media.plays, ShouldEqual, 1)
		})
	})
}

func TestEnded(t *testing.T) {
	Convey("Given a playing track", t, func() {
		media := newFakeMedia()
		rec := &recorder{}

		Convey("With repeat enabled, the end rewinds and plays again silently", func() {
			m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals(), WithRepeat(true))
			m.Assign(song)
			playing(m, media, 100)
			media.current = 100
			m.Handle(Event{Kind: TimeUpdate})

			m.Handle(Event{Kind: EndedEvent})
			So(media.seeks, ShouldResemble, []float64{0})
			So(m.State().CurrentTime, ShouldEqual, 0)
			So(media.plays, ShouldEqual, 2)
			So(rec.ended, ShouldBeEmpty)
		})

		Convey("With repeat disabled, the end is reported exactly once", func() {
			m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals())
			m.Assign(song)
			playing(m, media, 100)

			m.Handle(Event{Kind: EndedEvent})
			m.Handle(Event{Kind: Pause})
			So(rec.ended, ShouldResemble, []bool{true})
			So(m.State().Status, ShouldEqual, Ended)
			So(m.State().CurrentTime, ShouldEqual, 100)
		})

		Convey("A refused restart breaks playback and ends unsuccessfully", func() {
			m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals(), WithRepeat(true))
			m.Assign(song)
			playing(m, media, 100)
			media.playErr = errors.New("denied")

			m.Handle(Event{Kind: EndedEvent})
			So(m.State().Status, ShouldEqual, Paused)
			So(rec.playStates, ShouldResemble, []bool{true, false})
			So(rec.ended, ShouldResemble, []bool{false})
		})

		Convey("Repeat can be toggled at runtime", func() {
			m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals())
			So(m.ToggleRepeat(), ShouldBeTrue)
			So(m.State().Repeat, ShouldBeTrue)
			m.SetRepeat(false)
			So(m.State().Repeat, ShouldBeFalse)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given a playing track", t, func() {
		media := newFakeMedia()
		rec := &recorder{}
		m := New(media, volume.NewStore(memoryKV{}, 1), rec.signals())
		m.Assign(song)
		playing(m, media, 100)

		Convey("A media error is terminal for the track", func() {
			m.Handle(Event{Kind: Waiting})
			m.Handle(Event{Kind: Error, Err: errors.New("decode failed")})

			So(m.State().Status, ShouldEqual, Errored)
			So(m.State().Loading, ShouldBeFalse)
			So(rec.ended, ShouldResemble, []bool{false})
			So(rec.playStates, ShouldResemble, []bool{true, false})

			Convey("Later pause events do not change it", func() {
				m.Handle(Event{Kind: Pause})
				So(m.State().Status, ShouldEqual, Errored)
				So(rec.playStates, ShouldResemble, []bool{true, false})
			})

			Convey("Play requests are ignored until a track is reassigned", func() {
				m.SetPlaying(true)
				So(media.plays, ShouldEqual, 1)
			})

			Convey("Seek events and a second error leave it errored and silent", func() {
				m.Handle(Event{Kind: SeekingEvent})
				So(m.State().Status, ShouldEqual, Errored)
				m.Handle(Event{Kind: Seeked})
				So(m.State().Status, ShouldEqual, Errored)
				m.Handle(Event{Kind: Error, Err: errors.New("again")})
				m.Handle(Event{Kind: EndedEvent})

				So(m.State().Status, ShouldEqual, Errored)
				So(rec.ended, ShouldResemble, []bool{false})
				So(rec.playStates, ShouldResemble, []bool{true, false})
			})

			Convey("Scrubbing and committing a seek are ignored", func() {
				m.Handle(Event{Kind: SeekingEvent})
				m.Handle(Event{Kind: Seeked})
				m.Handle(Event{Kind: Error, Err: errors.New("again")})
				m.Scrub(10)
				So(m.State().Status, ShouldEqual, Errored)
				m.CommitSeek(10)
				So(m.State().Status, ShouldEqual, Errored)
				So(media.seeks, ShouldBeEmpty)
			})

			Convey("Volume changes still reach the state", func() {
				media.volume = 0.25
				m.Handle(Event{Kind: VolumeChange})
				So(m.State().Volume, ShouldEqual, 0.25)
			})

			Convey("Reassigning recovers", func() {
				m.Assign(song)
				So(m.State().Status, ShouldEqual, Loading)
			})
		})

		Convey("MediaError matches the sentinel and the cause", func() {
			cause := errors.New("boom")
			err := error(&MediaError{URL: "x", Err: cause})
			So(errors.Is(err, ErrMediaFailed), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(errors.Is(err, ErrAutoplayBlocked), ShouldBeFalse)
		})
	})
}

func TestSeek(t *testing.T) {
	Convey("Given a playing track", t, func() {
		media := newFakeMedia()
		m := New(media, volume.NewStore(memoryKV{}, 1), Signals{})
		m.Assign(song)
		playing(m, media, 100)
		media.current = 10
		m.Handle(Event{Kind: TimeUpdate})

		Convey("While scrubbing, the display follows the drag, not the media", func() {
			m.Scrub(50)
			So(m.State().Status, ShouldEqual, Seeking)
			So(m.State().CurrentTime, ShouldEqual, 50)

			media.current = 11
			m.Handle(Event{Kind: TimeUpdate})
			So(m.State().CurrentTime, ShouldEqual, 50)
			So(media.seeks, ShouldBeEmpty)
		})

		Convey("Committing seeks the media and exits on Seeked", func() {
			m.Scrub(50)
			m.CommitSeek(60)
			So(media.seeks, ShouldResemble, []float64{60})
			So(m.State().Status, ShouldEqual, Seeking)

			m.Handle(Event{Kind: Seeked})
			So(m.State().Status, ShouldEqual, Playing)
			m.Handle(Event{Kind: TimeUpdate})
			So(m.State().CurrentTime, ShouldEqual, 60)
		})

		Convey("A seek while paused returns to Paused", func() {
			m.SetPlaying(false)
			m.Handle(Event{Kind: Pause})
			m.CommitSeek(30)
			m.Handle(Event{Kind: Seeked})
			So(m.State().Status, ShouldEqual, Paused)
		})

		Convey("Seek targets are clamped to the duration", func() {
			m.CommitSeek(500)
			So(media.seeks, ShouldResemble, []float64{100})
		})

		Convey("A failed seek exits seeking immediately", func() {
			media.seekErr = errors.New("not seekable")
			m.CommitSeek(20)
			So(m.State().Status, ShouldEqual, Playing)
			So(m.State().CurrentTime, ShouldEqual, 10)
		})

		Convey("Seeks before Ready are ignored", func() {
			m.Assign(song)
			m.Scrub(5)
			m.CommitSeek(5)
			So(m.State().Status, ShouldEqual, Loading)
			So(media.seeks, ShouldBeEmpty)
		})
	})
}

func TestTimeAndBuffering(t *testing.T) {
	Convey("Given a ready track", t, func() {
		media := newFakeMedia()
		m := New(media, volume.NewStore(memoryKV{}, 1), Signals{})
		m.Assign(song)
		ready(m, media, 100)

		Convey("Current time never exceeds the duration", func() {
			media.current = 100.4
			m.Handle(Event{Kind: TimeUpdate})
			So(m.State().CurrentTime, ShouldEqual, 100)
		})

		Convey("The buffered ratio is clamped to one", func() {
			media.buffered = []TimeRange{{0, 100.02}}
			m.Handle(Event{Kind: Progress})
			So(m.State().BufferedRatio, ShouldEqual, 1)
		})

		Convey("No buffered range means a ratio of zero", func() {
			m.Handle(Event{Kind: Progress})
			So(m.State().BufferedRatio, ShouldEqual, 0)
		})

		Convey("The ratio never decreases within a track", func() {
			media.buffered = []TimeRange{{0, 50}}
			m.Handle(Event{Kind: Progress})
			media.buffered = []TimeRange{{0, 20}}
			m.Handle(Event{Kind: TimeUpdate})
			So(m.State().BufferedRatio, ShouldEqual, 0.5)
		})
	})

	Convey("BufferedRatio", t, func() {
		So(BufferedRatio([]TimeRange{{0, 10}, {20, 30}}, mo.Some(60.0)), ShouldEqual, 0.5)
		So(BufferedRatio([]TimeRange{{0, 10}}, mo.None[float64]()), ShouldEqual, 0)
		So(BufferedRatio(nil, mo.Some(60.0)), ShouldEqual, 0)
		So(BufferedRatio([]TimeRange{{0, 61}}, mo.Some(60.0)), ShouldEqual, 1)
	})
}

func TestVolume(t *testing.T) {
	Convey("Given an unhydrated volume store", t, func() {
		media := newFakeMedia()
		kv := memoryKV{volume.Key: 0.3}
		store := volume.NewStore(kv, 1)
		m := New(media, store, Signals{})
		m.Assign(song)
		ready(m, media, 100)

		Convey("Nothing is written to the media volume before hydration", func() {
			m.SetVolume(0.9)
			m.ToggleMute()
			So(media.volumes, ShouldBeEmpty)
		})

		Convey("Element changes are not mirrored before hydration", func() {
			media.volume = 0.7
			m.Handle(Event{Kind: VolumeChange})
			So(kv[volume.Key], ShouldEqual, 0.3)
		})

		Convey("Hydration applies the stored value once", func() {
			store.Hydrate()
			store.Hydrate()
			So(media.volumes, ShouldResemble, []float64{0.3})
			So(m.State().Volume, ShouldEqual, 0.3)
		})

		Convey("After hydration", func() {
			store.Hydrate()

			Convey("Element changes are mirrored into the store", func() {
				m.SetVolume(0.8)
				m.Handle(Event{Kind: VolumeChange})
				So(kv[volume.Key], ShouldEqual, 0.8)
				So(m.State().Volume, ShouldEqual, 0.8)
			})

			Convey("Mute and unmute restore the last non-zero volume", func() {
				m.ToggleMute()
				So(media.volume, ShouldEqual, 0)
				m.Handle(Event{Kind: VolumeChange})

				m.ToggleMute()
				So(media.volume, ShouldEqual, 0.3)
			})
		})
	})

	Convey("Unmuting without a previous volume falls back to half", t, func() {
		media := newFakeMedia()
		store := volume.NewStore(memoryKV{volume.Key: 0}, 1)
		m := New(media, store, Signals{})
		store.Hydrate()

		m.ToggleMute()
		So(media.volume, ShouldEqual, 0.5)
	})
}
