package playback

// TimeRange is one contiguous buffered span of the media, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// MediaHandle is the host media element the machine drives.
// Implementations report lifecycle changes asynchronously as Events; none of these calls may block on playback.
type MediaHandle interface {
	// Load replaces the current source. Progress is reported through LoadStart, LoadedMetadata and friends.
	Load(url string) error
	// Play requests playback. An error means the request was refused, e.g. by a host autoplay policy.
	Play() error
	Pause() error
	Seek(seconds float64) error
	// SetVolume sets the element volume in [0,1].
	SetVolume(volume float64) error

	Volume() float64
	// Duration returns the media length in seconds; zero, NaN or Inf when unknown.
	Duration() float64
	CurrentTime() float64
	Buffered() []TimeRange
	Paused() bool

	Close() error
}

// EventKind names a media lifecycle callback.
type EventKind int

const (
	LoadStart EventKind = iota + 1
	LoadedMetadata
	CanPlay
	CanPlayThrough
	Play
	Pause
	Waiting
	TimeUpdate
	Progress
	SeekingEvent
	Seeked
	EndedEvent
	VolumeChange
	Error
)

var eventNames = map[EventKind]string{
	LoadStart:      "loadstart",
	LoadedMetadata: "loadedmetadata",
	CanPlay:        "canplay",
	CanPlayThrough: "canplaythrough",
	Play:           "play",
	Pause:          "pause",
	Waiting:        "waiting",
	TimeUpdate:     "timeupdate",
	Progress:       "progress",
	SeekingEvent:   "seeking",
	Seeked:         "seeked",
	EndedEvent:     "ended",
	VolumeChange:   "volumechange",
	Error:          "error",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a single media lifecycle notification. Err is set only for Error events.
type Event struct {
	Kind EventKind
	Err  error
}

// EventSink receives events from a media backend. Backends call it from their own goroutines.
type EventSink func(Event)
