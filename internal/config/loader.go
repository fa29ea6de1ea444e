package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "blockfall.yaml"

// Where a loaded config came from.
const (
	SourceCustom   = "custom"
	SourceUser     = "user"
	SourceLocal    = "local"
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load loads the game configuration and reports where it came from.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml ->
// ./configs/blockfall.yaml -> embedded default -> hard-coded default.
// A custom path must exist and be valid; the other candidates are skipped
// when missing or malformed.
func Load(customPath string) (BlockfallConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockfallConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockfallConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, SourceLocal, nil
	}

	if cfg, err := Parse(defaultBlockfallYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultBlockfallConfig(), SourceBuiltin, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Sections missing from data keep their default values.
func Parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	// Replace, not merge, lists the document provides.
	cfg.Shapes = nil
	cfg.Scoring.Table = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, err
	}
	if len(cfg.Shapes) == 0 {
		cfg.Shapes = DefaultBlockfallConfig().Shapes
	}
	if len(cfg.Scoring.Table) == 0 {
		cfg.Scoring.Table = DefaultBlockfallConfig().Scoring.Table
	}
	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML. Replays store this snapshot so the
// exact engine can be rebuilt later.
func Marshal(cfg BlockfallConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func tryFile(path string) (BlockfallConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlockfallConfig{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return BlockfallConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// The empty preset leaves it untouched.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
