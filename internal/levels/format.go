package levels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// decode parses raw level bytes, choosing the format from name's extension.
func decode(name string, raw []byte) (Level, error) {
	var data engine.LevelData

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return Level{}, fmt.Errorf("levels: parse %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return Level{}, fmt.Errorf("levels: parse %s: %w", name, err)
		}
	}

	if data.ID == "" {
		data.ID = idFromPath(name)
	}
	if data.Name == "" {
		data.Name = data.ID
	}
	return Level{ID: data.ID, Name: data.Name, Data: data}, nil
}

// Encode serializes level data. JSON is indented with two spaces; files
// ending in .yaml or .yml are written as YAML.
func Encode(name string, data engine.LevelData) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("levels: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("levels: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("levels: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
}

// Export writes a world's current layout to path. Gifts are always written
// uncollected.
func Export(path string, w *engine.World) error {
	out, err := Encode(path, engine.ExportLevel(w))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("levels: create dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("levels: write %s: %w", path, err)
	}
	return nil
}
