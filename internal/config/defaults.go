package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default configuration: a 10x20 board,
// the seven tetrominoes and a half-second fall interval.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:     10,
			Height:    20,
			CellWidth: 2,
		},
		Timing: TimingConfig{
			FallIntervalMs: 500,
		},
		Scoring: ScoringConfig{
			Table: []int{0, 100, 300, 500, 800},
		},
		Shapes: []ShapeConfig{
			{Name: "I", Color: "cyan", Cells: []string{"XXXX"}},
			{Name: "J", Color: "blue", Cells: []string{"X..", "XXX"}},
			{Name: "L", Color: "orange", Cells: []string{"..X", "XXX"}},
			{Name: "O", Color: "yellow", Cells: []string{"XX", "XX"}},
			{Name: "S", Color: "green", Cells: []string{".XX", "XX."}},
			{Name: "T", Color: "purple", Cells: []string{".X.", "XXX"}},
			{Name: "Z", Color: "red", Cells: []string{"XX.", ".XX"}},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   4.0,
				MinFallIntervalMs: 80,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, suitable as a starting
// point for a user config file.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
