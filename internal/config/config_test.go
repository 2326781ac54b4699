package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	tests := []struct {
		id    string
		check func(t *testing.T, data []byte)
	}{
		{"stack", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultStackConfig) }},
		{"runner", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultRunnerConfig) }},
		{"arena", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultArenaConfig) }},
		{"slingshot", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultSlingshotConfig) }},
		{"match3", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultMatch3Config) }},
		{"memory", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultMemoryConfig) }},
		{"catcher", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultCatcherConfig) }},
		{"whack", func(t *testing.T, data []byte) { sameAsBuiltin(t, data, DefaultWhackConfig) }},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			data := DefaultYAML(tc.id)
			if data == nil {
				t.Fatalf("no embedded default for %s", tc.id)
			}
			tc.check(t, data)
		})
	}
}

// sameAsBuiltin decodes the YAML over a zero value so every field must be spelled out.
func sameAsBuiltin[T any](t *testing.T, data []byte, builtin func() T) {
	t.Helper()
	var zero T
	got, err := decode(data, func() T { return zero })
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if want := builtin(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded YAML differs from builtin:\n got  %+v\n want %+v", got, want)
	}
}

func TestDefaultYAMLUnknownGame(t *testing.T) {
	if DefaultYAML("tetris") != nil {
		t.Error("unknown game should have no embedded default")
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	yaml := "scoring:\n  perfect_threshold: 8\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("stack", path, DefaultStackConfig)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scoring.PerfectThreshold != 8 {
		t.Errorf("PerfectThreshold = %g, expected 8", cfg.Scoring.PerfectThreshold)
	}
	// Unmentioned fields keep their defaults
	if cfg.Block.BaseWidth != DefaultStackConfig().Block.BaseWidth {
		t.Errorf("BaseWidth = %g, expected default", cfg.Block.BaseWidth)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("stack", filepath.Join(dir, "missing.yaml"), DefaultStackConfig)
	if err == nil || !IsNotFound(err) {
		t.Errorf("missing file should return a not-found error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("block: [oops"), 0o600)
	if _, err := Load("stack", bad, DefaultStackConfig); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("board:\n  cols: 3\n  rows: 3\n"), 0o600)
	_, err = Load("memory", invalid, DefaultMemoryConfig)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("odd card count should fail validation, got %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	cfg, err := Load("whack", "", DefaultWhackConfig)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Cols <= 0 || cfg.Board.Rows <= 0 {
		t.Errorf("expected a usable board, got %+v", cfg.Board)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyDefault, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", DifficultyDefault, true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if tc.wantErr && !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("ParsePreset(%q) should wrap ErrUnknownPreset", tc.in)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultStackConfig().Difficulty

	ApplyPreset(&d, DifficultyHard)
	if !d.Enabled || d.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", d)
	}
	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset should disable progression")
	}
	before := d
	ApplyPreset(&d, DifficultyDefault)
	if d != before {
		t.Error("default preset should leave config untouched")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, IntervalReduction: 0.5, SpacingReduction: 0.25},
	}
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %f, expected 0", got)
	}
	if got := dm.Level(50, 0); got != 0.5 {
		t.Errorf("Level(50) = %f, expected 0.5", got)
	}
	if got := dm.Level(1000, 0); got != 1 {
		t.Errorf("Level should clamp at 1, got %f", got)
	}
	if got := dm.Speed(100, 100, 0); got != 200 {
		t.Errorf("Speed at max = %f, expected 200", got)
	}
	if got := dm.Interval(2, 100, 0); got != 1 {
		t.Errorf("Interval at max = %f, expected 1", got)
	}
	if got := dm.Spacing(400, 100, 0); got != 300 {
		t.Errorf("Spacing at max = %f, expected 300", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	fixed := NewDifficultyManager(cfg)
	if got := fixed.Level(1000, 1000); got != 0.3 {
		t.Errorf("disabled progression should stay at initial level, got %f", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})

	if got := dm.Level(99999, 300); got != 0.5 {
		t.Errorf("time progression ignores score, Level = %f", got)
	}
}

func TestLoadApp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcade.yaml")
	os.WriteFile(path, []byte("tick_rate: 30\nanalytics: log\n"), 0o600)

	cfg, err := LoadApp(path)
	if err != nil {
		t.Fatalf("LoadApp() failed: %v", err)
	}
	if cfg.TickRate != 30 || cfg.Analytics != AnalyticsLog {
		t.Errorf("LoadApp() = %+v", cfg)
	}
	if cfg.DBPath != DefaultAppConfig().DBPath {
		t.Error("unset fields should keep defaults")
	}

	os.WriteFile(path, []byte("analytics: carrier-pigeon\n"), 0o600)
	if _, err := LoadApp(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown analytics backend should fail, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("absolute paths should pass through, got %q %v", got, err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, _ = ExpandHome("~/.arcade/scores.db")
	if got != filepath.Join(home, ".arcade", "scores.db") {
		t.Errorf("ExpandHome = %q", got)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	if err := Check("stack", ""); err != nil {
		t.Errorf("empty path should pass, got %v", err)
	}
	if err := Check("no-such-game", filepath.Join(dir, "missing.yaml")); err != nil {
		t.Errorf("a game without config should pass, got %v", err)
	}
	if err := Check("stack", filepath.Join(dir, "missing.yaml")); !IsNotFound(err) {
		t.Errorf("missing file should be not-found, got %v", err)
	}

	wide := filepath.Join(dir, "wide.yaml")
	os.WriteFile(wide, []byte("world:\n  width: 100\nblock:\n  base_width: 500\n"), 0o600)
	if err := Check("stack", wide); !errors.Is(err, ErrInvalid) {
		t.Errorf("base wider than the world should be invalid, got %v", err)
	}
	// The same file is valid for a game that ignores those keys
	if err := Check("whack", wide); err != nil {
		t.Errorf("whack should accept unrelated keys, got %v", err)
	}
}
