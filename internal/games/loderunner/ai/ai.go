// Package ai holds the enemy brains. Each brain registers itself with the
// registry under a short name that levels and config refer to.
package ai

import (
	"fmt"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/registry"
)

// Brain names.
const (
	Idle   = "idle"
	Wander = "wander"
	Chaser = "chaser"
)

// Default is the brain used when neither level nor config names one.
const Default = Chaser

func init() {
	registry.Register(Idle, "stands still", func(engine.Dice) engine.Brain {
		return IdleBrain{}
	})
	registry.Register(Wander, "walks about at random", func(d engine.Dice) engine.Brain {
		return NewWanderBrain(d)
	})
	registry.Register(Chaser, "hunts the nearest hero", func(engine.Dice) engine.Brain {
		return NewChaserBrain(DefaultCarryTicks)
	})
}

// Factory resolves a brain name into the constructor the board calls
// once per enemy. An empty name selects Default.
func Factory(name string, dice engine.Dice) (func() engine.Brain, error) {
	if name == "" {
		name = Default
	}
	if !registry.Exists(name) {
		return nil, fmt.Errorf("ai: unknown brain %q", name)
	}
	return func() engine.Brain {
		b, _ := registry.Create(name, dice)
		return b
	}, nil
}

// IdleBrain never moves.
type IdleBrain struct{}

// Decide implements engine.Brain.
func (IdleBrain) Decide(engine.View, *engine.Enemy) engine.Command {
	return engine.CommandNone
}

func falling(v engine.View, p engine.Point) bool {
	return v.IsPit(p.X, p.Y) && !v.IsLadder(p.X, p.Y) && !v.IsPipe(p.X, p.Y)
}
