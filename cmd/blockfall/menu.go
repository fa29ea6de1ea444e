package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Show the variant picker. Leaving a finished or paused game with Esc
brings the picker back; Tab opens the replay browser.

Examples:
  blockfall menu
  blockfall menu --difficulty easy --fps 30`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
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

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsReplays:
			back, err := tui.RunReplays(store, verifyRecording, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			if err := tui.Run(game, store, logger, cfg); err != nil {
				return fmt.Errorf("running %s: %w", res.GameID, err)
			}
		}
	}
}
