package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing blockfall. The variant defaults to "blockfall".

Controls:
  Left/Right, A/D   - Move
  Down, S           - Soft drop
  Up, W, X          - Rotate
  Space             - Hard drop
  P                 - Pause
  R                 - Restart (after game over)
  Esc/B             - Leave (when paused or over)
  Ctrl+S            - Screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options (marathon variant):
  easy   - Start slow, speeds up with cleared lines
  normal - Start at 30% speed-up
  hard   - Start at 70% speed-up
  fixed  - No progression, stays at the config's initial level

Examples:
  blockfall play
  blockfall play blockfall_marathon --difficulty hard
  blockfall play --config ./wide-board.yaml
  blockfall play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockfall.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (see 'blockfall list')", err)
	}

	logger, closeLog, err := newLogger("blockfall", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := prepareGames(logger); err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	return tui.Run(game, store, logger, runtimeConfig())
}

// prepareGames hands --config and --difficulty to the game package and
// loads the config once so a bad file fails before the screen switches.
func prepareGames(logger *log.Logger) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger.Info("config loaded",
		"source", source,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"shapes", len(cfg.Shapes),
	)
	if source == config.SourceBuiltin {
		logger.Warn("embedded config unusable, using built-in defaults")
	}

	blockfall.SetConfigPath(flagConfig)
	blockfall.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openStore opens the replay journal. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replay journal disabled", "error", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
