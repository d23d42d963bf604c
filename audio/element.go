package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/util"
)

const (
	tapSize        = 8192
	resampleRatio  = 4
	tickerInterval = 250 * time.Millisecond
	eventBuffer    = 128
)

// Output is the device the decoded audio is mixed into.
// Lock guards every streamer passed to Play while the device is pulling samples.
type Output interface {
	Init() error
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Element is a media element over local audio files.
// Its events are delivered in order on a dedicated goroutine.
type Element struct {
	out Output

	mu         sync.Mutex
	generation int
	source     beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	gain       *effects.Volume
	tap        *Tap
	end        *endDetector
	volume     float64
	stopTicker chan struct{}

	paused atomic.Bool
	events *playback.Dispatcher
}

var _ playback.MediaHandle = (*Element)(nil)

// NewElement creates an element playing into out and reporting to sink.
func NewElement(out Output, sink playback.EventSink) *Element {
	e := &Element{
		out:    out,
		volume: 1,
		events: playback.NewDispatcher(sink, eventBuffer),
	}
	e.paused.Store(true)
	return e
}

// Load stops the current track and decodes url in the background.
func (e *Element) Load(url string) error {
	path, err := localPath(url)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.generation++
	generation := e.generation
	e.teardown()
	e.mu.Unlock()

	e.emit(playback.LoadStart)
	go e.open(generation, path)
	return nil
}

func (e *Element) open(generation int, path string) {
	source, format, err := Decode(path)
	if err == nil {
		err = e.out.Init()
	}
	if err != nil {
		if e.current(generation) {
			e.emitEvent(playback.Event{Kind: playback.Error, Err: err})
		}
		return
	}

	e.mu.Lock()
	if generation != e.generation || e.events.Closed() {
		e.mu.Unlock()
		_ = source.Close()
		return
	}

	var stream beep.Streamer = source
	if rate := e.out.SampleRate(); rate != format.SampleRate {
		stream = beep.Resample(resampleRatio, format.SampleRate, rate, source)
	}

	e.source = source
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: stream, Paused: true}
	e.gain = &effects.Volume{Streamer: e.ctrl, Base: 2}
	applyGain(e.gain, e.volume)
	e.tap = NewTap(e.gain, tapSize)
	ctrl := e.ctrl
	e.end = &endDetector{s: e.tap, onEnd: func() {
		ctrl.Paused = true
		e.ended()
	}}
	e.paused.Store(true)
	e.out.Play(e.end)

	e.stopTicker = make(chan struct{})
	go e.tick(e.stopTicker)
	e.mu.Unlock()

	log.Infof("decoded %s: %d Hz, %d channels", path, format.SampleRate, format.NumChannels)
	e.emit(playback.LoadedMetadata)
	e.emit(playback.CanPlay)
	e.emit(playback.CanPlayThrough)
	e.emit(playback.Progress)
}

func (e *Element) Play() error {
	e.mu.Lock()
	if e.ctrl == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	e.out.Lock()
	if e.end.finished {
		if err := e.source.Seek(0); err != nil {
			log.Warnf("rewind before play: %v", err)
		}
		e.end.finished = false
	}
	e.ctrl.Paused = false
	e.out.Unlock()
	e.mu.Unlock()

	if e.paused.Swap(false) {
		e.emit(playback.Play)
	}
	return nil
}

func (e *Element) Pause() error {
	e.mu.Lock()
	if e.ctrl == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	e.out.Lock()
	e.ctrl.Paused = true
	e.out.Unlock()
	e.mu.Unlock()

	if !e.paused.Swap(true) {
		e.emit(playback.Pause)
	}
	return nil
}

func (e *Element) Seek(seconds float64) error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	e.emit(playback.SeekingEvent)
	length := e.source.Len()
	position := util.Clamp(e.format.SampleRate.N(time.Duration(seconds*float64(time.Second))), 0, max(length-1, 0))

	e.out.Lock()
	err := e.source.Seek(position)
	if err == nil {
		e.end.finished = false
	}
	e.out.Unlock()
	e.mu.Unlock()

	if err != nil {
		return err
	}

	e.emit(playback.Seeked)
	e.emit(playback.TimeUpdate)
	return nil
}

func (e *Element) SetVolume(volume float64) error {
	volume = util.Clamp(volume, 0, 1)

	e.mu.Lock()
	e.volume = volume
	if e.gain != nil {
		e.out.Lock()
		applyGain(e.gain, volume)
		e.out.Unlock()
	}
	e.mu.Unlock()

	e.emit(playback.VolumeChange)
	return nil
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return math.NaN()
	}
	return e.format.SampleRate.D(e.source.Len()).Seconds()
}

func (e *Element) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return 0
	}

	e.out.Lock()
	position := e.source.Position()
	e.out.Unlock()
	return e.format.SampleRate.D(position).Seconds()
}

// Buffered reports the whole file once it is decoded.
func (e *Element) Buffered() []playback.TimeRange {
	duration := e.Duration()
	if math.IsNaN(duration) {
		return nil
	}
	return []playback.TimeRange{{Start: 0, End: duration}}
}

func (e *Element) Paused() bool {
	return e.paused.Load()
}

// Close stops playback and the event goroutine. The element cannot be reused.
func (e *Element) Close() error {
	e.mu.Lock()
	e.generation++
	e.teardown()
	e.mu.Unlock()

	e.events.Close()
	return nil
}

func (e *Element) currentTap() *Tap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tap
}

func (e *Element) current(generation int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return generation == e.generation
}

// teardown detaches the current chain from the output. e.mu must be held.
func (e *Element) teardown() {
	if e.stopTicker != nil {
		close(e.stopTicker)
		e.stopTicker = nil
	}

	if e.end != nil {
		e.out.Lock()
		e.end.detached = true
		e.out.Unlock()
	}

	if e.source != nil {
		if err := e.source.Close(); err != nil {
			log.Warnf("close source: %v", err)
		}
	}

	e.source = nil
	e.ctrl = nil
	e.gain = nil
	e.tap = nil
	e.end = nil
	e.paused.Store(true)
}

// ended runs on the output goroutine with the output locked.
func (e *Element) ended() {
	if !e.paused.Swap(true) {
		e.emit(playback.Pause)
	}
	e.emit(playback.EndedEvent)
}

func (e *Element) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.paused.Load() {
				e.emit(playback.TimeUpdate)
			}
		}
	}
}

func (e *Element) emit(kind playback.EventKind) {
	e.emitEvent(playback.Event{Kind: kind})
}

func (e *Element) emitEvent(event playback.Event) {
	e.events.Emit(event)
}

func applyGain(gain *effects.Volume, volume float64) {
	gain.Silent = volume <= 0
	if volume > 0 {
		gain.Volume = math.Log2(volume)
	}
}

// endDetector keeps the chain in the mixer after the source runs dry, streaming silence
// and reporting the end once until the source is rewound.
type endDetector struct {
	s        beep.Streamer
	onEnd    func()
	finished bool
	detached bool
}

func (d *endDetector) Stream(samples [][2]float64) (int, bool) {
	if d.detached {
		return 0, false
	}

	if d.finished {
		clear(samples)
		return len(samples), true
	}

	n, ok := d.s.Stream(samples)
	if !ok || n < len(samples) {
		clear(samples[n:])
		d.finished = true
		d.onEnd()
	}
	return len(samples), true
}

func (d *endDetector) Err() error {
	return nil
}
