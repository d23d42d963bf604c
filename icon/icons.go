package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Play
	Pause
	Repeat
	Mute
	Volume
	Lyrics
	Loading
	Track
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－)",
		squares: "🟨",
	},
	Repeat: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "R",
		kaomoji: "(↻)",
		squares: "🟪",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "M",
		kaomoji: "(・x・)",
		squares: "⬛",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "V",
		kaomoji: "(°o°)",
		squares: "🟧",
	},
	Lyrics: {
		emoji:   "🎤",
		nerd:    "",
		plain:   "~",
		kaomoji: "(♪´▽｀)",
		squares: "🟫",
	},
	Loading: {
		emoji:   "🌀",
		nerd:    "",
		plain:   "*",
		kaomoji: "(@_@)",
		squares: "⬜",
	},
	Track: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "#",
		kaomoji: "♪(´ε｀ )",
		squares: "🟦",
	},
}
