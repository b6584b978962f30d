package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	Long: `Shows the built-in levels and any level files found in --levels.
Files with the same id as a built-in level replace it.

Examples:
  loderunner levels
  loderunner levels --levels ./my-levels
  loderunner levels show tower`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as it looks at the start",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lvls, err := levels.NewLoader(cfg.Simulation.LevelsDir).LoadAll()
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Description")
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "-----------")
	for _, l := range lvls {
		size := fmt.Sprintf("%dx%d", l.Layout.Size, l.Layout.Size)
		fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, size, l.Description)
	}

	fmt.Println()
	fmt.Println("Enemy brains:")
	for _, b := range registry.List() {
		marker := " "
		if b.ID == cfg.Enemies.Brain {
			marker = "*"
		}
		fmt.Printf(" %s%-8s  %s\n", marker, b.ID, b.Description)
	}

	fmt.Println()
	fmt.Println("Run 'loderunner play <id>' to play a level.")
	return nil
}

func runLevelsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lvl, err := levels.NewLoader(cfg.Simulation.LevelsDir).LoadByID(args[0])
	if err != nil {
		return err
	}

	board := engine.NewBoard(lvl.Layout, engine.NewRandomDice(1), engine.Options{})
	fmt.Printf("%s (%s)\n", lvl.Name, lvl.ID)
	if lvl.Description != "" {
		fmt.Println(lvl.Description)
	}
	fmt.Println()
	fmt.Println(engine.RenderASCII(board.Snapshot(), ""))
	fmt.Println()
	fmt.Printf("Gold: %d  Enemies: %d  Spawns: %d\n",
		len(lvl.Layout.Gold), len(lvl.Layout.Enemies), len(lvl.Layout.Spawns))
	return nil
}
