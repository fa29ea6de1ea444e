package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func verifyWithGame(rec core.Recording) error {
	_, err := blockfall.Verify(rec)
	return err
}

// finishedReplay plays shortGame to the end and journals it.
func finishedReplay(t *testing.T, store *storage.Store) string {
	t.Helper()
	g := shortGame()
	g.Reset(core.RuntimeConfig{Seed: 3, TickRate: 60})
	drop := core.NewInputFrame()
	drop.Set(core.ActionHardDrop)
	g.Step(drop)
	if !g.State().GameOver {
		t.Fatal("short game did not end")
	}

	id, err := store.SaveReplay(g.Recording())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	return id
}

func sendReplays(t *testing.T, m ReplaysModel, msg tea.Msg) ReplaysModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(ReplaysModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func TestReplaysLists(t *testing.T) {
	store := openStore(t)
	id := finishedReplay(t, store)

	m := NewReplaysModel(store, verifyWithGame, 100, 30)
	if len(m.replays) != 1 || m.replays[0].ID != id {
		t.Fatalf("replays = %+v, expected %s", m.replays, id)
	}

	view := m.View()
	for _, want := range []string{"REPLAYS - All games", id[:8], "> All games"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestReplaysVerify(t *testing.T) {
	store := openStore(t)
	id := finishedReplay(t, store)

	m := NewReplaysModel(store, verifyWithGame, 100, 30)
	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.HasPrefix(m.status, "✓ "+id[:8]) {
		t.Errorf("status = %q, expected a passing verdict", m.status)
	}

	failing := func(core.Recording) error { return errors.New("boom") }
	m = NewReplaysModel(store, failing, 100, 30)
	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "✗") || !strings.Contains(m.status, "boom") {
		t.Errorf("status = %q, expected a failing verdict", m.status)
	}
}

func TestReplaysFilterCycles(t *testing.T) {
	store := openStore(t)
	finishedReplay(t, store)

	m := NewReplaysModel(store, nil, 60, 30)
	if m.showSidebar {
		t.Error("sidebar shown on a narrow terminal")
	}

	// All games -> blockfall -> blockfall_marathon -> All games.
	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.games[m.gameCursor].ID; got != blockfall.IDClassic {
		t.Fatalf("filter = %q, expected %q", got, blockfall.IDClassic)
	}
	if len(m.replays) != 1 {
		t.Errorf("classic filter shows %d replays, expected 1", len(m.replays))
	}

	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.replays) != 0 {
		t.Errorf("marathon filter shows %d replays, expected 0", len(m.replays))
	}

	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = sendReplays(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.gameCursor != 0 {
		t.Errorf("gameCursor = %d after cycling back, expected 0", m.gameCursor)
	}
}

func TestReplaysBackAndQuit(t *testing.T) {
	m := NewReplaysModel(nil, nil, 80, 24)
	if len(m.replays) != 0 {
		t.Fatal("replays loaded without a store")
	}

	back := sendReplays(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc did not go back")
	}

	quit := sendReplays(t, m, runeKey('q'))
	if !quit.IsQuitting() || quit.IsGoingBack() {
		t.Error("q did not quit")
	}
}
