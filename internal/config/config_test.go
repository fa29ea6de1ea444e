package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}

	want := DefaultBlockfallConfig()
	if cfg.Board != want.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, want.Board)
	}
	if cfg.Timing != want.Timing {
		t.Errorf("Timing = %+v, expected %+v", cfg.Timing, want.Timing)
	}
	if len(cfg.Shapes) != len(want.Shapes) {
		t.Fatalf("len(Shapes) = %d, expected %d", len(cfg.Shapes), len(want.Shapes))
	}
	for i := range want.Shapes {
		if cfg.Shapes[i].Name != want.Shapes[i].Name || cfg.Shapes[i].Color != want.Shapes[i].Color {
			t.Errorf("Shapes[%d] = %+v, expected %+v", i, cfg.Shapes[i], want.Shapes[i])
		}
	}
	if cfg.Difficulty != want.Difficulty {
		t.Errorf("Difficulty = %+v, expected %+v", cfg.Difficulty, want.Difficulty)
	}
}

func TestEngineConfigFromDefaults(t *testing.T) {
	ec, err := DefaultBlockfallConfig().EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig() error: %v", err)
	}
	std := engine.StandardShapes()
	if len(ec.Shapes) != len(std) {
		t.Fatalf("len(Shapes) = %d, expected %d", len(ec.Shapes), len(std))
	}
	for i := range std {
		if ec.Shapes[i].Name != std[i].Name || ec.Shapes[i].Color != std[i].Color || !ec.Shapes[i].Matrix.Equal(std[i].Matrix) {
			t.Errorf("Shapes[%d] = %v, expected %v", i, ec.Shapes[i], std[i])
		}
	}
	if ec.Scores.Points(4) != 800 {
		t.Errorf("Points(4) = %d, expected 800", ec.Scores.Points(4))
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  width: 6\n  height: 12\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 12 {
		t.Errorf("Board = %dx%d, expected 6x12", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Board.CellWidth != 2 {
		t.Errorf("CellWidth = %d, expected default 2", cfg.Board.CellWidth)
	}
	if cfg.FallInterval() != 500*time.Millisecond {
		t.Errorf("FallInterval() = %v, expected 500ms", cfg.FallInterval())
	}
	if len(cfg.Shapes) != 7 {
		t.Errorf("len(Shapes) = %d, expected 7", len(cfg.Shapes))
	}
}

func TestParseCustomShapesReplaceDefaults(t *testing.T) {
	doc := `
shapes:
  - name: dot
    color: white
    cells: ["X"]
  - name: bar
    color: Grey
    cells: ["XX"]
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.Shapes) != 2 {
		t.Fatalf("len(Shapes) = %d, expected 2", len(cfg.Shapes))
	}
	ec, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig() error: %v", err)
	}
	if ec.Shapes[1].Matrix.Width() != 2 {
		t.Errorf("bar width = %d, expected 2", ec.Shapes[1].Matrix.Width())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockfallConfig)
	}{
		{"zero width", func(c *BlockfallConfig) { c.Board.Width = 0 }},
		{"negative height", func(c *BlockfallConfig) { c.Board.Height = -3 }},
		{"zero cell width", func(c *BlockfallConfig) { c.Board.CellWidth = 0 }},
		{"zero interval", func(c *BlockfallConfig) { c.Timing.FallIntervalMs = 0 }},
		{"no shapes", func(c *BlockfallConfig) { c.Shapes = nil }},
		{"unknown color", func(c *BlockfallConfig) { c.Shapes[0].Color = "chartreuse" }},
		{"ragged cells", func(c *BlockfallConfig) { c.Shapes[1].Cells = []string{"X..", "XX"} }},
		{"blank cells", func(c *BlockfallConfig) { c.Shapes[2].Cells = []string{"..."} }},
		{"unnamed shape", func(c *BlockfallConfig) { c.Shapes[3].Name = "" }},
		{"shape too wide", func(c *BlockfallConfig) { c.Board.Width = 3 }},
		{"shape too tall", func(c *BlockfallConfig) { c.Board.Height = 1 }},
		{"score table starts above zero", func(c *BlockfallConfig) { c.Scoring.Table = []int{10, 100} }},
		{"score table decreasing", func(c *BlockfallConfig) { c.Scoring.Table = []int{0, 300, 100} }},
		{"bad progression", func(c *BlockfallConfig) { c.Difficulty.Progression.Type = "vibes" }},
		{"initial level above one", func(c *BlockfallConfig) { c.Difficulty.InitialLevel = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, expected error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected to wrap ErrInvalid", err)
			}
		})
	}

	if err := DefaultBlockfallConfig().Validate(); err != nil {
		t.Errorf("Validate(default) = %v, expected nil", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  fall_interval_ms: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if source != SourceCustom {
		t.Errorf("source = %q, expected %q", source, SourceCustom)
	}
	if cfg.Timing.FallIntervalMs != 250 {
		t.Errorf("FallIntervalMs = %d, expected 250", cfg.Timing.FallIntervalMs)
	}

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error, expected failure")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad); err == nil {
		t.Error("Load(invalid) = nil error, expected failure")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	cfg.Board.Width = 8
	cfg.Timing.FallIntervalMs = 321

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error: %v", err)
	}
	if got.Board.Width != 8 || got.Timing.FallIntervalMs != 321 {
		t.Errorf("round trip = %+v %+v", got.Board, got.Timing)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left progression enabled")
	}

	before := cfg.Difficulty
	ApplyPreset(&cfg, "")
	if cfg.Difficulty != before {
		t.Error("empty preset changed the config")
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset(brutal) = nil error")
	}
	if p, err := ParsePreset("easy"); err != nil || p != DifficultyEasy {
		t.Errorf("ParsePreset(easy) = %q, %v", p, err)
	}
}
