package platformer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// Sprite is a small block of glyphs drawn in one color.
type Sprite struct {
	Lines []string
	Color core.Color
}

// spriteFile is the YAML layout of a sprite sheet.
//
//	player:
//	  color: cyan
//	  lines: ["(o.o)", "/|_|\\"]
type spriteFile map[string]struct {
	Color string   `yaml:"color"`
	Lines []string `yaml:"lines"`
}

// SpriteSet maps render slots to sprites.
type SpriteSet struct {
	slots map[string]Sprite
}

// slotPlayerLeft is drawn while the player faces left, when present.
const slotPlayerLeft = "player_left"

// DefaultSprites returns the built-in glyph sprites.
func DefaultSprites() *SpriteSet {
	return &SpriteSet{slots: map[string]Sprite{
		string(engine.SpritePlayer): {Lines: []string{"(o.o)", "/|_|\\"}, Color: core.ColorCyan},
		slotPlayerLeft:              {Lines: []string{"(o.o)", "/|_|\\"}, Color: core.ColorCyan},
		string(engine.SpriteGift):   {Lines: []string{"╔╬╬╗", "╚══╝"}, Color: core.ColorBrightMagenta},
		string(engine.SpriteGoal):   {Lines: []string{"(^_^)", "<\\♥/>"}, Color: core.ColorPink},
	}}
}

// placeholder is drawn for slots that have no usable sprite.
var placeholder = Sprite{Lines: []string{"?"}, Color: core.ColorRed}

// LoadSprites reads a sprite sheet. Slots missing from the file, or a file
// that cannot be read, fall back to the built-in sprites with a warning.
// Loading never fails the game.
func LoadSprites(path string, logger *log.Logger) *SpriteSet {
	set := DefaultSprites()
	if path == "" {
		return set
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("sprite sheet unavailable, using built-in sprites", "path", path, "error", err)
		return set
	}
	var file spriteFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		logger.Warn("sprite sheet malformed, using built-in sprites", "path", path, "error", err)
		return set
	}

	for _, slot := range []string{string(engine.SpritePlayer), slotPlayerLeft, string(engine.SpriteGift), string(engine.SpriteGoal)} {
		entry, ok := file[slot]
		if !ok || len(entry.Lines) == 0 {
			logger.Warn("sprite missing, using built-in", "slot", slot, "path", path)
			continue
		}
		color, err := parseColor(entry.Color)
		if err != nil {
			logger.Warn("sprite color invalid", "slot", slot, "error", err)
		}
		set.slots[slot] = Sprite{Lines: entry.Lines, Color: color}
	}
	return set
}

// Get returns the sprite for a slot, or a placeholder.
func (s *SpriteSet) Get(slot string) Sprite {
	if s == nil {
		return placeholder
	}
	if sp, ok := s.slots[slot]; ok && len(sp.Lines) > 0 {
		return sp
	}
	return placeholder
}

var colorNames = map[string]core.Color{
	"":               core.ColorDefault,
	"default":        core.ColorDefault,
	"red":            core.ColorRed,
	"green":          core.ColorGreen,
	"yellow":         core.ColorYellow,
	"blue":           core.ColorBlue,
	"magenta":        core.ColorMagenta,
	"cyan":           core.ColorCyan,
	"white":          core.ColorWhite,
	"bright_yellow":  core.ColorBrightYellow,
	"bright_magenta": core.ColorBrightMagenta,
	"orange":         core.ColorOrange,
	"brown":          core.ColorBrown,
	"pink":           core.ColorPink,
	"gray":           core.ColorGray,
}

func parseColor(name string) (core.Color, error) {
	if c, ok := colorNames[strings.ToLower(name)]; ok {
		return c, nil
	}
	return core.ColorDefault, fmt.Errorf("unknown color %q", name)
}
