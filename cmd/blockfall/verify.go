package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagShowBoard bool

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-run a recorded game and check its outcome",
	Long: `Load a replay by id (a unique prefix is enough), re-run it headlessly with
its recorded seed, config and inputs, and check that it ends with the
recorded score, lines and pieces.

Exits with status 1 when the replay does not reproduce.

Examples:
  blockfall verify 3f2a9c1e
  blockfall verify 3f2a --board`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Replay(args[0])
	if err != nil {
		return err
	}

	snap, err := blockfall.Verify(entry.Recording)
	if flagShowBoard {
		for _, row := range snap.Board {
			fmt.Fprintf(out, "  |%s|\n", row)
		}
		fmt.Fprintln(out)
	}
	if errors.Is(err, blockfall.ErrReplayMismatch) {
		return fmt.Errorf("replay %s does not reproduce: %w", entry.ID, err)
	}
	if err != nil {
		return fmt.Errorf("replaying %s: %w", entry.ID, err)
	}

	fmt.Fprintf(out, "Replay %s reproduces (%s, seed %d)\n", entry.ID, entry.GameID, entry.Seed)
	fmt.Fprintf(out, "  score %d, lines %d, pieces %d, %d ticks\n", snap.Score, snap.Lines, snap.Pieces, snap.Tick)
	return nil
}
