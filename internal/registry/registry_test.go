package registry

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }

type describedGame struct{ stubGame }

func (describedGame) Description() string { return "has rules" }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_plain", func() Game { return &stubGame{id: "zz_stub_plain"} })
	Register("zz_stub_described", func() Game {
		return &describedGame{stubGame{id: "zz_stub_described"}}
	})

	info, ok := Lookup("zz_stub_described")
	if !ok {
		t.Fatal("Lookup() did not find a registered game")
	}
	if info.Title != "Stub zz_stub_described" || info.Description != "has rules" {
		t.Errorf("Lookup() = %+v", info)
	}
	if info, _ := Lookup("zz_stub_plain"); info.Description != "" {
		t.Errorf("plain game Description = %q, expected empty", info.Description)
	}

	g, err := Create("zz_stub_plain")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub_plain" {
		t.Errorf("Create().ID() = %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create(unknown) = nil error")
	}
	if Exists("zz_missing") {
		t.Error("Exists(unknown) = true")
	}
}

func TestListSortedByID(t *testing.T) {
	Register("zz_list_b", func() Game { return &stubGame{id: "zz_list_b"} })
	Register("zz_list_a", func() Game { return &stubGame{id: "zz_list_a"} })

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	for name, id := range map[string]string{"duplicate": "zz_dup", "empty": " "} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", id)
				}
			}()
			Register(id, func() Game { return &stubGame{id: id} })
		})
	}
}
