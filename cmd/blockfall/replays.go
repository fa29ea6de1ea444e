package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagReplayLimit int
	flagClear       bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays [variant]",
	Short: "List recorded games",
	Long: `Show the newest recorded games, optionally for one variant only.

On a terminal this opens the interactive browser, where Enter re-runs the
highlighted replay. Otherwise a plain table is printed.

Examples:
  blockfall replays
  blockfall replays blockfall_marathon --limit 5
  blockfall replays blockfall --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to print")
	replaysCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the replays instead of listing them")
}

func runReplays(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q (see 'blockfall list')", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearReplays(gameID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d replay(s).\n", n)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if gameID == "" && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		_, err := tui.RunReplays(store, verifyRecording, width, height)
		return err
	}

	replays, err := store.RecentReplays(gameID, flagReplayLimit)
	if err != nil {
		return err
	}
	if len(replays) == 0 {
		fmt.Fprintln(out, "No replays recorded yet.")
		return nil
	}

	const row = "  %-8s  %-18s  %-7v  %-5v  %-6v  %-7v  %s\n"
	fmt.Fprintf(out, row, "ID", "Game", "Score", "Lines", "Pieces", "Time", "Date")
	for _, r := range replays {
		fmt.Fprintf(out, row,
			r.ID[:8], r.GameID, r.Score, r.Lines, r.Pieces,
			r.Duration().Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out, "\nRe-run one with: blockfall verify <id>")
	return nil
}
