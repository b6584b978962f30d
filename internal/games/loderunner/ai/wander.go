package ai

import "github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"

var wanderMoves = [...]engine.Command{
	engine.CommandLeft,
	engine.CommandRight,
	engine.CommandUp,
	engine.CommandDown,
}

// WanderBrain keeps a random direction for a few ticks, then picks another.
// A carrying wanderer sometimes lets its gold go.
type WanderBrain struct {
	dice engine.Dice
	dir  engine.Command
	left int
}

// NewWanderBrain creates a wanderer drawing from dice.
func NewWanderBrain(dice engine.Dice) *WanderBrain {
	if dice == nil {
		dice = engine.NewRandomDice(0)
	}
	return &WanderBrain{dice: dice}
}

// Decide implements engine.Brain.
func (w *WanderBrain) Decide(v engine.View, e *engine.Enemy) engine.Command {
	if e.WithGold() && w.dice.Next(dropOdds) == 0 {
		return engine.CommandDropGold
	}

	if w.left <= 0 {
		w.dir = wanderMoves[w.dice.Next(len(wanderMoves))]
		w.left = 2 + w.dice.Next(4)
	}
	w.left--
	return w.dir
}

// dropOdds is one in how many decisions a carrying wanderer drops gold.
const dropOdds = 20
