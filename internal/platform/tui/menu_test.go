package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func TestMenuSelectsVariant(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown}) // Stops at the last item
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after Enter")
	}
	if sel.GameID != blockfall.IDMarathon {
		t.Errorf("Selected().GameID = %q, expected %q", sel.GameID, blockfall.IDMarathon)
	}
}

func TestMenuReplaysAndQuit(t *testing.T) {
	m := sendMenu(t, NewMenuModel(core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsReplays() {
		t.Error("Tab did not request the replay browser")
	}

	m = sendMenu(t, NewMenuModel(core.DefaultConfig()), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := sendMenu(t, NewMenuModel(core.DefaultConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
