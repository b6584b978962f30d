package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/core"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/logging"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
	"github.com/vovakirdan/tui-loderunner/internal/platform/tui"
)

var flagPlayerName string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level locally",
	Long: `Play Lode Runner in this terminal. Without a level the menu opens.

Controls:
  arrows / wasd    Move and climb
  z / q            Drill left
  x / e            Drill right
  ?                Toggle help
  esc              Back to the menu

Examples:
  loderunner play
  loderunner play tower
  loderunner play classic --seed 42 --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayerName, "name", defaultPlayerName(), "Player name recorded with results")
}

func defaultPlayerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loader := levels.NewLoader(cfg.Simulation.LevelsDir)
	lvls, err := loader.LoadAll()
	if err != nil {
		return err
	}

	start := ""
	if len(args) == 1 {
		start = args[0]
		if _, err := loader.LoadByID(start); err != nil {
			return err
		}
	}

	// The terminal belongs to the UI, so only log when a file is configured.
	logger, closer := localLogger(cfg)
	defer closer.Close()

	var (
		saver   multiplayer.ResultSaver
		results tui.ResultSource
	)
	store := openStore(cfg.Server.DBPath)
	if store != nil {
		saver, results = store, store
	}

	rooms := tui.NewLocalRooms(cfg, loader, saver, logger, flagSeed)

	w, h := terminalSize()
	runErr := tui.Run(tui.SessionConfig{
		Name:    flagPlayerName,
		Levels:  lvls,
		Rooms:   rooms,
		Local:   true,
		Results: results,
		Runtime: core.RuntimeConfig{
			ScreenW:  w,
			ScreenH:  h,
			TickRate: cfg.Simulation.TickRate,
			Seed:     flagSeed,
		},
		StartLevel: start,
	})

	// Saves run in the background; wait for them before the store closes.
	rooms.Flush()
	if store != nil {
		store.Close()
	}
	return runErr
}

func localLogger(cfg config.Config) (*log.Logger, io.Closer) {
	if cfg.Logging.File == "" {
		return logging.Discard(), io.NopCloser(nil)
	}
	return logging.New(cfg.Logging, "loderunner")
}

// terminalSize falls back to 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		fmt.Fprintln(os.Stderr, "Warning: cannot read terminal size, assuming 80x24")
		return 80, 24
	}
	return w, h
}
