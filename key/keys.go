// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback - these keys select the media backend and the initial playback intent.
const (
	PlayerBackend  = "player.backend"
	PlayerAutoplay = "player.autoplay"
	PlayerRepeat   = "player.repeat"
	PlayerMPVPath  = "player.mpv_path"
)

// Visualization - these keys configure the peak meter.
const (
	VisualEnable   = "visual.enable"
	VisualFFTSize  = "visual.fft_size"
	VisualBarWidth = "visual.bar_width"
	VisualBarSpace = "visual.bar_space"
	VisualCapDecay = "visual.cap_decay"
	VisualFPS      = "visual.fps"
)

// Lyrics - these keys control lyric rendering.
const (
	LyricsEnable      = "lyrics.enable"
	LyricsPlaceholder = "lyrics.placeholder"
)

// Volume - the fallback used until a persisted volume has been read.
const (
	VolumeDefault = "volume.default"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive player's chrome.
const (
	TUIShowHelp = "tui.show_help"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite    = "logs.write"
	LogsLevel    = "logs.level"
	LogsJson     = "logs.json"
	LogsKeepDays = "logs.keep_days"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
