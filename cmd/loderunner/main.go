// loderunner is a multiplayer Lode Runner for the terminal.
//
// Usage:
//
//	loderunner play [level]     - Play a level locally
//	loderunner serve            - Start the SSH server and spectator feed
//	loderunner levels [id]      - List levels or show one
//	loderunner scores [level]   - Show best results
//	loderunner sim [level]      - Run a headless simulation with bots
//
// Global flags:
//
//	--config <path>       - Config file (default: search order, then embedded)
//	--difficulty <name>   - easy, normal or hard
//	--levels <dir>        - Extra level files
//	--db <path>           - Results database (default: ~/.loderunner/scores.db)
//	--seed <value>        - RNG seed for reproducible games
//	--tps <rate>          - Simulation ticks per second
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import brains to register them
	_ "github.com/vovakirdan/tui-loderunner/internal/games/loderunner/ai"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagDBPath     string
	flagSeed       int64
	flagTPS        int
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loderunner",
	Short: "Multiplayer Lode Runner in your terminal",
	Long: `Dig holes, grab gold and trap your rivals in the bricks.

Available commands:
  play     - Play a level locally against the enemies
  serve    - Host shared rooms over SSH with a websocket spectator feed
  levels   - List the available levels
  scores   - View best results
  sim      - Run bots headless and print the final board

Examples:
  loderunner play
  loderunner play tower --difficulty hard
  loderunner serve --ssh :2222 --ws :8080
  loderunner scores classic
  loderunner sim classic --ticks 500 --bots 3 --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Simulation ticks per second")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig loads the config file, applies the difficulty preset and then
// any global flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	flags := cmd.Flags()
	if flags.Changed("levels") {
		cfg.Simulation.LevelsDir = flagLevelsDir
	}
	if flags.Changed("db") {
		cfg.Server.DBPath = flagDBPath
	}
	if flags.Changed("tps") {
		if flagTPS <= 0 {
			return cfg, fmt.Errorf("--tps must be positive, got %d", flagTPS)
		}
		cfg.Simulation.TickRate = flagTPS
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

// openStore opens the results database. Games still work without it.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}
