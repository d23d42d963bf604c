package playback

import (
	"fmt"

	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/util"
	"github.com/melodeck/melodeck/volume"
	"github.com/samber/mo"
)

const fallbackVolume = 0.5

// Signals are the only outputs of the machine. Nil funcs are skipped.
type Signals struct {
	PlayStateChanged func(playing bool)
	PlayEnded        func(success bool)
}

// Option configures a Machine.
type Option func(*Machine)

// WithRepeat sets the initial repeat mode.
func WithRepeat(repeat bool) Option {
	return func(m *Machine) {
		m.repeat = repeat
	}
}

// WithPlaying sets the initial play intent.
func WithPlaying(playing bool) Option {
	return func(m *Machine) {
		m.intent = playing
	}
}

// Machine owns the playback state of one media element.
//
// Media events passed to Handle are the only transition triggers. User requests made
// before the media is ready are not queued: the play intent is re-read when Ready is reached.
// A Machine is not safe for concurrent use.
type Machine struct {
	media   MediaHandle
	store   *volume.Store
	signals Signals

	track  Track
	status Status

	ready   bool
	loading bool
	seeking bool
	intent  bool
	repeat  bool

	currentTime float64
	scrubTime   float64
	duration    mo.Option[float64]
	buffered    float64

	volume            float64
	lastNonZeroVolume float64
}

// New creates an idle machine driving media. The stored volume is applied to media once store is hydrated.
func New(media MediaHandle, store *volume.Store, signals Signals, options ...Option) *Machine {
	m := &Machine{
		media:    media,
		store:    store,
		signals:  signals,
		status:   Idle,
		duration: mo.None[float64](),
		volume:   store.Volume().Value,
	}

	for _, option := range options {
		option(m)
	}

	store.OnHydrated(m.applyStoredVolume)
	return m
}

// Track returns the assigned track.
func (m *Machine) Track() Track {
	return m.track
}

// State returns a snapshot of the derived state.
func (m *Machine) State() State {
	current := m.currentTime
	if m.seeking {
		current = m.scrubTime
	}

	return State{
		Status:        m.status,
		CurrentTime:   current,
		Duration:      m.duration,
		BufferedRatio: m.buffered,
		Repeat:        m.repeat,
		Loading:       m.loading,
		Volume:        m.volume,
	}
}

// Ready reports whether metadata of the current track is known.
func (m *Machine) Ready() bool {
	return m.ready
}

// Assign loads track, resetting time, readiness, any pending seek and the buffered ratio.
func (m *Machine) Assign(track Track) {
	m.track = track
	m.status = Loading
	m.ready = false
	m.seeking = false
	m.loading = true
	m.currentTime = 0
	m.scrubTime = 0
	m.duration = mo.None[float64]()
	m.buffered = 0

	log.Infof("loading %s (%s)", track, track.URL)
	if err := m.media.Load(track.URL); err != nil {
		m.fail(&MediaError{URL: track.URL, Err: err})
	}
}

// SetPlaying records the external play intent. The latest value wins; before Ready it only takes effect
// once the media reports its metadata.
func (m *Machine) SetPlaying(playing bool) {
	m.intent = playing
	if !m.ready || m.status == Errored {
		return
	}

	if playing {
		if m.status == Playing {
			return
		}
		m.play(false)
		return
	}

	if m.status == Playing || m.status == Seeking && !m.media.Paused() {
		if err := m.media.Pause(); err != nil {
			log.Warnf("pause: %v", err)
		}
	}
}

// Scrub moves the displayed position to seconds while the user drags, without touching the media.
func (m *Machine) Scrub(seconds float64) {
	if !m.seekable() {
		return
	}

	m.seeking = true
	m.scrubTime = m.clampTime(seconds)
	m.status = Seeking
}

// CommitSeek writes the position to the media. Seeking ends on the media's Seeked event.
func (m *Machine) CommitSeek(seconds float64) {
	if !m.seekable() {
		return
	}

	target := m.clampTime(seconds)
	m.seeking = true
	m.scrubTime = target
	m.status = Seeking

	if err := m.media.Seek(target); err != nil {
		log.Warnf("seek to %s: %v", util.FormatTime(target), err)
		m.endSeek()
		return
	}
	m.currentTime = target
}

// SetRepeat sets whether the track restarts when it ends.
func (m *Machine) SetRepeat(repeat bool) {
	m.repeat = repeat
}

// ToggleRepeat flips the repeat mode and returns the new value.
func (m *Machine) ToggleRepeat() bool {
	m.repeat = !m.repeat
	return m.repeat
}

// SetVolume writes volume to the media. It has no effect until the volume store is hydrated.
func (m *Machine) SetVolume(value float64) {
	if !m.store.Hydrated() {
		log.Debug("volume change ignored before hydration")
		return
	}

	value = util.Clamp(value, 0, 1)
	if err := m.media.SetVolume(value); err != nil {
		log.Warnf("set volume: %v", err)
	}
}

// ToggleMute mutes, or restores the last non-zero volume (0.5 if there never was one).
func (m *Machine) ToggleMute() {
	if !m.store.Hydrated() {
		return
	}

	if current := m.media.Volume(); current > 0 {
		m.lastNonZeroVolume = current
		m.SetVolume(0)
		return
	}

	restore := m.lastNonZeroVolume
	if restore <= 0 {
		restore = fallbackVolume
	}
	m.SetVolume(restore)
}

// Handle applies one media event.
func (m *Machine) Handle(event Event) {
	if m.status == Idle {
		return
	}
	// Errored holds until the next Assign. Volume still follows the media.
	if m.status == Errored && event.Kind != VolumeChange {
		return
	}

	log.Tracef("media event %s in %s", event.Kind, m.status)

	switch event.Kind {
	case LoadStart, Waiting:
		m.loading = true
	case CanPlay, CanPlayThrough:
		m.loading = false
	case LoadedMetadata:
		m.onMetadata()
	case Play:
		m.onPlay()
	case Pause:
		m.onPause()
	case TimeUpdate:
		m.onTimeUpdate()
	case Progress:
		m.updateBuffered()
	case SeekingEvent:
		if !m.seeking && m.ready {
			m.seeking = true
			m.scrubTime = m.currentTime
			m.status = Seeking
		}
	case Seeked:
		if m.seeking {
			m.endSeek()
		}
	case EndedEvent:
		m.onEnded()
	case VolumeChange:
		m.onVolumeChange()
	case Error:
		m.fail(&MediaError{URL: m.track.URL, Err: event.Err})
	}
}

func (m *Machine) onMetadata() {
	if m.status == Errored {
		return
	}

	m.duration = knownDuration(m.media.Duration())
	m.currentTime = m.clampTime(m.currentTime)
	if m.ready {
		return
	}

	m.ready = true
	m.status = Ready
	log.Infof("ready: %s", m.track)

	if m.intent {
		m.play(false)
	}
}

func (m *Machine) onPlay() {
	if m.status == Errored {
		return
	}
	if !m.seeking {
		m.status = Playing
	}
	m.emitPlayState(true)
}

func (m *Machine) onPause() {
	if m.status == Errored {
		return
	}
	if !m.seeking && m.status != Ended {
		m.status = Paused
	}
	m.emitPlayState(false)
}

func (m *Machine) onTimeUpdate() {
	if !m.seeking {
		m.currentTime = m.clampTime(m.media.CurrentTime())
	}
	m.updateBuffered()
}

func (m *Machine) onEnded() {
	if m.status == Errored {
		return
	}

	if !m.repeat {
		m.status = Ended
		if d, ok := m.duration.Get(); ok {
			m.currentTime = d
		}
		m.emitEnded(true)
		return
	}

	log.Debugf("repeating %s", m.track)
	m.seeking = false
	m.currentTime = 0
	if err := m.media.Seek(0); err != nil {
		log.Warnf("rewind: %v", err)
	}
	m.play(true)
}

func (m *Machine) onVolumeChange() {
	m.volume = m.media.Volume()
	if m.volume > 0 {
		m.lastNonZeroVolume = m.volume
	}

	if m.store.Hydrated() {
		m.store.Set(m.volume)
	}
}

// play asks the media to start. restarting marks a repeat restart, where a refusal breaks
// playback the user had already started and so also ends the track unsuccessfully.
func (m *Machine) play(restarting bool) {
	err := m.media.Play()
	if err == nil {
		return
	}

	err = fmt.Errorf("%w: %w", ErrAutoplayBlocked, err)
	log.Warn(err)

	m.loading = false
	m.status = Paused
	m.emitPlayState(false)
	if restarting {
		m.emitEnded(false)
	}
}

func (m *Machine) fail(err error) {
	log.Error(err)

	m.status = Errored
	m.loading = false
	m.seeking = false
	m.emitEnded(false)
	m.emitPlayState(false)
}

func (m *Machine) seekable() bool {
	return m.ready && m.status != Errored
}

func (m *Machine) endSeek() {
	m.seeking = false
	switch {
	case m.status != Seeking:
	case m.media.Paused():
		m.status = Paused
	default:
		m.status = Playing
	}
}

func (m *Machine) updateBuffered() {
	if ratio := BufferedRatio(m.media.Buffered(), m.duration); ratio > m.buffered {
		m.buffered = ratio
	}
}

func (m *Machine) applyStoredVolume(value float64) {
	m.volume = value
	if value > 0 {
		m.lastNonZeroVolume = value
	}

	if err := m.media.SetVolume(value); err != nil {
		log.Warnf("apply stored volume: %v", err)
	}
}

func (m *Machine) clampTime(seconds float64) float64 {
	seconds = max(seconds, 0)
	if d, ok := m.duration.Get(); ok {
		seconds = min(seconds, d)
	}
	return seconds
}

func (m *Machine) emitPlayState(playing bool) {
	if m.signals.PlayStateChanged != nil {
		m.signals.PlayStateChanged(playing)
	}
}

func (m *Machine) emitEnded(success bool) {
	if m.signals.PlayEnded != nil {
		m.signals.PlayEnded(success)
	}
}
