package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
)

// writeConfig pins the config so a file in the user's home cannot leak in.
// Keys missing from yamlText keep their defaults.
func writeConfig(t *testing.T, yamlText string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(yamlText), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func simArgs(cfgPath string, extra ...string) []string {
	args := []string{"--config", cfgPath, "--log-level", "error", "--seed", "42",
		"--ticks", "30", "--bots", "2", "--every", "0"}
	return append(args, extra...)
}

func TestSimReturnsErrors(t *testing.T) {
	cfgPath := writeConfig(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"zero ticks", append([]string{"sim", "classic"}, simArgs(cfgPath, "--ticks", "0")...)},
		{"negative bots", append([]string{"sim", "classic"}, simArgs(cfgPath, "--bots", "-1")...)},
		{"unknown level", append([]string{"sim", "nowhere"}, simArgs(cfgPath)...)},
		{"missing config", append([]string{"sim", "classic"}, simArgs(filepath.Join(t.TempDir(), "none.yaml"))...)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, tc.args...); err == nil {
				t.Errorf("sim %v should fail", tc.args)
			}
		})
	}

	_, err := execute(t, append([]string{"sim", "nowhere"}, simArgs(cfgPath)...)...)
	if !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("unknown level error = %v, expected ErrLevelNotFound", err)
	}
}

func TestSimFailsAfterLoggerIsOpen(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sim.log")
	cfgPath := writeConfig(t, "enemies:\n  brain: nobody\nlogging:\n  file: "+logPath+"\n")

	_, err := execute(t, append([]string{"sim", "classic"}, simArgs(cfgPath)...)...)
	if err == nil || !strings.Contains(err.Error(), "nobody") {
		t.Fatalf("sim with an unknown brain = %v, expected an error naming the brain", err)
	}
}

func TestSimIsReproducible(t *testing.T) {
	cfgPath := writeConfig(t, "")
	args := append([]string{"sim", "classic"}, simArgs(cfgPath)...)

	first, err := execute(t, args...)
	if err != nil {
		t.Fatalf("sim failed: %v", err)
	}
	second, err := execute(t, args...)
	if err != nil {
		t.Fatalf("sim failed: %v", err)
	}

	if first != second {
		t.Errorf("same seed gave different runs:\n%s\n---\n%s", first, second)
	}
	for _, want := range []string{"seed 42", "Tick 30", "bot1", "bot2"} {
		if !strings.Contains(first, want) {
			t.Errorf("output missing %q:\n%s", want, first)
		}
	}
}
