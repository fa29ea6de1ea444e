package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"blockfall_marathon", "Blockfall (Marathon)", "gravity speeds up"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	out, err := execute(t, "config", "--defaults")
	if err != nil {
		t.Fatalf("config --defaults: %v", err)
	}
	if out != string(config.DefaultYAML()) {
		t.Error("config --defaults did not print the embedded config")
	}
}

func TestReplaysRejectsUnknownVariant(t *testing.T) {
	_, err := execute(t, "replays", "tetris", "--db", t.TempDir()+"/r.db")
	if err == nil || !strings.Contains(err.Error(), "tetris") {
		t.Errorf("replays tetris error = %v", err)
	}
}
