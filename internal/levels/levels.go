// Package levels loads, validates, exports and watches platformer levels.
// Built-in levels are embedded JSON; user levels are JSON or YAML files.
package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// Level is a named level description with its origin.
type Level struct {
	ID     string
	Name   string
	Source string // "builtin" or a file path
	Data   engine.LevelData
}

// Builtin returns the embedded levels sorted by ID.
func Builtin() ([]Level, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: read builtin: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		raw, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: read builtin %s: %w", e.Name(), err)
		}
		lvl, err := decode(e.Name(), raw)
		if err != nil {
			return nil, err
		}
		lvl.Source = "builtin"
		levels = append(levels, lvl)
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// LoadFile reads a level from a .json, .yaml or .yml file.
func LoadFile(path string) (Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := decode(path, raw)
	if err != nil {
		return Level{}, err
	}
	lvl.Source = path
	return lvl, nil
}

// LoadDir reads every level file in dir. A missing directory yields no levels.
func LoadDir(dir string) ([]Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("levels: read dir %s: %w", dir, err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		lvl, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// All returns built-in levels followed by user levels from dir.
// User levels cannot shadow a built-in ID; such files are skipped.
func All(dir string) ([]Level, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	user, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(builtin)+len(user))
	all := make([]Level, 0, len(builtin)+len(user))
	for _, l := range append(builtin, user...) {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		all = append(all, l)
	}
	return all, nil
}

// Find looks a level up by ID in levels.
func Find(levels []Level, id string) (Level, error) {
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("levels: unknown level %q", id)
}

// UserDir returns ~/.platformer/levels, or "" when home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "levels")
}

// IsLevelFile reports whether path has a level file extension.
func IsLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// idFromPath derives a level ID from its file name.
func idFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Validate loads the file at path and lints it against phys.
// A parse failure is returned as an error; layout problems as warnings.
func Validate(path string, phys engine.Physics) ([]engine.Warning, error) {
	lvl, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return engine.Lint(lvl.Data, phys), nil
}
