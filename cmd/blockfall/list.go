package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playable variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		games := registry.List()
		if len(games) == 0 {
			fmt.Fprintln(out, "No variants registered.")
			return nil
		}

		header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("ID", "TITLE", "RULES").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})
		for _, g := range games {
			t.Row(g.ID, g.Title, g.Description)
		}

		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, "Start one with: blockfall play <id>")
		return nil
	},
}
