package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresStats  bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best results",
	Long: `Display the best results for a level (default: the configured level).

Examples:
  loderunner scores
  loderunner scores tower --limit 20
  loderunner scores --player alice
  loderunner scores --stats
  loderunner scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's recent results instead")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-level statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results of the level")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresStats:
		err = printLevelStats(store)
	case flagScoresPlayer != "":
		err = printPlayerHistory(store, flagScoresPlayer)
	default:
		levelID := cfg.Simulation.Level
		if len(args) == 1 {
			levelID = args[0]
		}
		lvl, lerr := levels.NewLoader(cfg.Simulation.LevelsDir).LoadByID(levelID)
		if lerr != nil {
			return lerr
		}
		if flagScoresClear {
			if err = store.ClearResults(lvl.ID); err == nil {
				fmt.Printf("Cleared results for %s.\n", lvl.Name)
			}
			break
		}
		err = printTopResults(store, lvl)
	}
	return err
}

func printTopResults(store *storage.Store, lvl levels.Level) error {
	results, err := store.TopResults(lvl.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", lvl.Name)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'loderunner play %s' to set the first high score!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-4s  %-5s  %s\n", "Rank", "Player", "Score", "Gold", "Kills", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-4s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-12s  %-6d  %-4d  %-5d  %s\n",
			i+1, r.Player, r.Score, r.Gold, r.Kills, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(lvl.ID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printPlayerHistory(store *storage.Store, player string) error {
	results, err := store.PlayerHistory(player, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent results - %s\n", player)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-4s  %-5s  %-6s  %-8s  %s\n", "Level", "Score", "Gold", "Kills", "Deaths", "Time", "Date")
	fmt.Printf("  %-10s  %-6s  %-4s  %-5s  %-6s  %-8s  %s\n", "-----", "-----", "----", "-----", "------", "----", "----")
	for _, r := range results {
		fmt.Printf("  %-10s  %-6d  %-4d  %-5d  %-6d  %-8s  %s\n",
			r.LevelID, r.Score, r.Gold, r.Kills, r.Deaths,
			formatDuration(r.DurationSecs), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelStats(store *storage.Store) error {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %-6s  %-7s  %-4s  %-7s  %-5s  %-5s  %s\n",
		"Level", "Rounds", "Players", "Best", "Average", "Gold", "Kills", "Last played")
	fmt.Printf("  %-10s  %-6s  %-7s  %-4s  %-7s  %-5s  %-5s  %s\n",
		"-----", "------", "-------", "----", "-------", "----", "-----", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-10s  %-6d  %-7d  %-4d  %-7.1f  %-5d  %-5d  %s\n",
			s.LevelID, s.Rounds, s.Players, s.HighScore, s.AvgScore,
			s.TotalGold, s.TotalKills, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
