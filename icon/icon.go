// Package icon renders player symbols in the variant picked by icons.variant:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or colored squares.
package icon

import (
	"strings"

	"github.com/melodeck/melodeck/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) variant(name string) string {
	switch name {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get renders i. Unknown variants fall back to plain ASCII.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.variant(strings.ToLower(strings.TrimSpace(viper.GetString(key.IconsVariant))))
}
