package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/logging"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
)

var (
	flagSimTicks int
	flagSimBots  int
	flagSimEvery int
)

var simCmd = &cobra.Command{
	Use:   "sim [level]",
	Short: "Run bots headless and print the final board",
	Long: `Runs a room without a terminal UI. Bots pick random commands and the
enemies use the configured brain. With the same --seed two runs print the
same boards, which makes sim handy for checking rule changes.

Examples:
  loderunner sim
  loderunner sim tower --ticks 1000 --bots 4 --seed 7
  loderunner sim classic --every 50 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 500, "Number of ticks to run")
	simCmd.Flags().IntVar(&flagSimBots, "bots", 2, "Number of bot players")
	simCmd.Flags().IntVar(&flagSimEvery, "every", 0, "Print the board every n ticks (0 = final board only)")
}

var botCommands = []engine.Command{
	engine.CommandLeft,
	engine.CommandRight,
	engine.CommandUp,
	engine.CommandDown,
	engine.CommandDrillLeft,
	engine.CommandDrillRight,
}

// bot holds a random command for a few ticks so it actually gets somewhere.
type bot struct {
	session *multiplayer.ChannelSession
	dice    engine.Dice
	cmd     engine.Command
}

func (b *bot) next() engine.Command {
	if b.cmd == engine.CommandNone || b.dice.Next(4) == 0 {
		b.cmd = botCommands[b.dice.Next(len(botCommands))]
	}
	return b.cmd
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagSimTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagSimTicks)
	}
	if flagSimBots < 0 {
		return fmt.Errorf("--bots must not be negative, got %d", flagSimBots)
	}

	levelID := cfg.Simulation.Level
	if len(args) == 1 {
		levelID = args[0]
	}
	lvl, err := levels.NewLoader(cfg.Simulation.LevelsDir).LoadByID(levelID)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	logger, closer := logging.New(cfg.Logging, "sim")
	defer closer.Close()

	rc := multiplayer.RoomConfigFrom(cfg, lvl, seed)
	rc.MaxPlayers = max(rc.MaxPlayers, flagSimBots)
	room, err := multiplayer.NewRoom(rc, logger, nil)
	if err != nil {
		return err
	}

	botDice := engine.NewRandomDice(seed + 2)
	bots := make([]*bot, 0, flagSimBots)
	for i := 1; i <= flagSimBots; i++ {
		s := multiplayer.NewChannelSession(multiplayer.SessionID(fmt.Sprintf("bot-%d", i)), 1)
		if _, err := room.Join(s, fmt.Sprintf("bot%d", i)); err != nil {
			return err
		}
		bots = append(bots, &bot{session: s, dice: botDice})
	}

	fmt.Fprintf(out, "Simulating %s: %d ticks, %d bots, seed %d\n\n", lvl.Name, flagSimTicks, flagSimBots, seed)

	var gold, kills, deaths int
	for t := 1; t <= flagSimTicks; t++ {
		for _, b := range bots {
			room.SendInput(b.session.ID(), b.next())
		}
		res := room.Step()

		deaths += len(res.Dead)
		for _, pe := range res.Events {
			switch pe.Event {
			case engine.EventGetGold:
				gold++
			case engine.EventKillEnemy:
				kills++
			}
		}

		if flagSimEvery > 0 && t%flagSimEvery == 0 && t != flagSimTicks {
			fmt.Fprintf(out, "Tick %d\n%s\n\n", res.Tick, engine.RenderASCII(room.Snapshot(), ""))
		}
	}

	snap := room.Snapshot()
	fmt.Fprintf(out, "Tick %d\n%s\n\n", snap.Tick, engine.RenderASCII(snap, ""))
	fmt.Fprintf(out, "Gold picked: %d  Drill kills: %d  Deaths: %d\n\n", gold, kills, deaths)

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-4s  %-5s  %s\n", "Rank", "Player", "Score", "Gold", "Kills", "Deaths")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-4s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "------")
	for i, t := range room.Standings() {
		fmt.Fprintf(out, "  %-4d  %-8s  %-6d  %-4d  %-5d  %d\n", i+1, t.Player, t.Score, t.Gold, t.Kills, t.Deaths)
	}

	for _, b := range bots {
		room.Leave(b.session.ID())
		b.session.Close()
	}
	return nil
}
