package constant

// Playback backends selectable through the player.backend setting.
const (
	BackendBeep = "beep"
	BackendMPV  = "mpv"
)

// Audio file extensions decoded by the local backend.
const (
	ExtWAV = ".wav"
	ExtMP3 = ".mp3"
)

// DefaultPlaceholder is shown in place of an empty lyric line.
const DefaultPlaceholder = "♪"
