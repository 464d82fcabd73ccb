package levels

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuiltin(t *testing.T) {
	levels, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}

	ids := make([]string, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
	}
	if got := strings.Join(ids, ","); got != "birthday,garden,tower" {
		t.Fatalf("builtin ids = %s", got)
	}

	birthday, err := Find(levels, "birthday")
	if err != nil {
		t.Fatal(err)
	}
	if len(birthday.Data.Platforms) != 13 || len(birthday.Data.Gifts) != 23 {
		t.Errorf("birthday has %d platforms and %d gifts, expected 13 and 23",
			len(birthday.Data.Platforms), len(birthday.Data.Gifts))
	}

	phys := engine.DefaultPhysics()
	for _, l := range levels {
		if warns := engine.Lint(l.Data, phys); len(warns) != 0 {
			t.Errorf("builtin %s has lint warnings: %v", l.ID, warns)
		}
	}
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "hop.json", `{"platforms":[{"x":0,"y":400,"width":300,"height":20}],"gifts":[{"x":50,"y":350,"width":40,"height":40,"collected":true}]}`)
	yamlPath := writeFile(t, dir, "hop.yaml", "id: hop-yaml\nname: Hop\nplatforms:\n  - {x: 0, y: 400, width: 300, height: 20}\ngifts: []\n")

	lvl, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json) failed: %v", err)
	}
	if lvl.ID != "hop" || lvl.Name != "hop" || lvl.Source != jsonPath {
		t.Errorf("unexpected level metadata %+v", lvl)
	}

	// Collected flags in files are ignored
	w := engine.LoadLevel(lvl.Data, engine.DefaultPhysics())
	if w.Collectibles[0].Collected {
		t.Error("loaded gift should start uncollected")
	}

	lvl, err = LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml) failed: %v", err)
	}
	if lvl.ID != "hop-yaml" || lvl.Name != "Hop" || len(lvl.Data.Platforms) != 1 {
		t.Errorf("unexpected yaml level %+v", lvl)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	bad := writeFile(t, dir, "bad.json", `{"platforms": [`)
	if _, err := LoadFile(bad); err == nil {
		t.Error("malformed json should fail")
	}
}

func TestAllKeepsBuiltinIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tower.json", `{"id":"tower","name":"My Tower","platforms":[],"gifts":[]}`)
	writeFile(t, dir, "extra.yml", "platforms: []\ngifts: []\n")
	writeFile(t, dir, "notes.txt", "ignored")

	all, err := All(dir)
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(all))
	}
	tower, _ := Find(all, "tower")
	if tower.Source != "builtin" {
		t.Errorf("built-in level should win over a user file, got %q", tower.Source)
	}
	if _, err := Find(all, "extra"); err != nil {
		t.Error("user level missing")
	}
	if _, err := Find(all, "nope"); err == nil {
		t.Error("unknown level should fail")
	}

	none, err := LoadDir(filepath.Join(dir, "absent"))
	if err != nil || len(none) != 0 {
		t.Errorf("missing dir should yield nothing, got %v, %v", none, err)
	}
}

func TestExport(t *testing.T) {
	levels, _ := Builtin()
	birthday, _ := Find(levels, "birthday")
	w := engine.LoadLevel(birthday.Data, engine.DefaultPhysics())
	w.Collectibles[0].Collected = true

	path := filepath.Join(t.TempDir(), "out", "birthday.json")
	if err := Export(path, w); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n  \"platforms\": [") {
		t.Error("export should be indented with two spaces")
	}

	var data engine.LevelData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	for i, g := range data.Gifts {
		if g.Collected {
			t.Errorf("gift %d exported as collected", i)
		}
	}
	if len(data.Platforms) != 13 || len(data.Gifts) != 23 {
		t.Error("export lost objects")
	}

	// YAML round trip
	ypath := filepath.Join(t.TempDir(), "birthday.yaml")
	if err := Export(ypath, w); err != nil {
		t.Fatalf("Export(yaml) failed: %v", err)
	}
	back, err := LoadFile(ypath)
	if err != nil {
		t.Fatalf("reloading yaml export failed: %v", err)
	}
	if len(back.Data.Gifts) != 23 || back.Data.Goal == nil || back.Data.Goal.X != 3100 {
		t.Errorf("yaml export round trip mismatch: %+v", back.Data.Goal)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.json", `{"gifts":[{"x":10,"y":10}]}`)

	warns, err := Validate(path, engine.DefaultPhysics())
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if len(warns) < 2 {
		t.Errorf("expected warnings for missing platforms and zero-size gift, got %v", warns)
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.json", `{"platforms":[],"gifts":[]}`)
	other := filepath.Join(dir, "other.json")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"platforms":[],"gifts":[],"name":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(path)
		if got != abs && got != path {
			t.Errorf("event for %q, expected %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	// Second close is a no-op
	if err := w.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
