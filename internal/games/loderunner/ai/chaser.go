package ai

import "github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"

// DefaultCarryTicks is how many decisions a chaser holds gold before dropping it.
const DefaultCarryTicks = 30

// ChaserBrain walks the shortest enemy path to the nearest live hero.
type ChaserBrain struct {
	carryTicks int
	carried    int
}

// NewChaserBrain creates a chaser that drops gold after carryTicks decisions.
func NewChaserBrain(carryTicks int) *ChaserBrain {
	if carryTicks <= 0 {
		carryTicks = DefaultCarryTicks
	}
	return &ChaserBrain{carryTicks: carryTicks}
}

// Decide implements engine.Brain.
func (c *ChaserBrain) Decide(v engine.View, e *engine.Enemy) engine.Command {
	if e.WithGold() {
		c.carried++
		if c.carried >= c.carryTicks {
			c.carried = 0
			return engine.CommandDropGold
		}
	} else {
		c.carried = 0
	}

	return NextStep(v, e.Pos())
}

type move struct {
	cmd engine.Command
	to  engine.Point
}

// moves lists the cells an enemy at p can reach in one step.
func moves(v engine.View, p engine.Point) []move {
	if falling(v, p) {
		return nil
	}

	candidates := []move{
		{engine.CommandLeft, p.Add(-1, 0)},
		{engine.CommandRight, p.Add(1, 0)},
		{engine.CommandDown, p.Below()},
	}
	if v.IsLadder(p.X, p.Y) {
		candidates = append(candidates, move{engine.CommandUp, p.Above()})
	}

	out := candidates[:0]
	for _, m := range candidates {
		if !engine.EnemyBlocked(v, m.to) {
			out = append(out, m)
		}
	}
	return out
}

// landing follows a fall from p to the cell where the agent comes to rest.
func landing(v engine.View, p engine.Point) engine.Point {
	for falling(v, p) && !engine.EnemyBlocked(v, p.Below()) {
		p = p.Below()
	}
	return p
}

// NextStep returns the first command of a shortest path from p to any live
// hero, or CommandNone when no hero is reachable.
func NextStep(v engine.View, from engine.Point) engine.Command {
	targets := make(map[engine.Point]bool)
	for _, h := range v.HeroPositions() {
		targets[h] = true
	}
	if len(targets) == 0 || targets[from] {
		return engine.CommandNone
	}

	type node struct {
		at    engine.Point
		first engine.Command
	}

	seen := map[engine.Point]bool{from: true}
	queue := []node{}
	for _, m := range moves(v, from) {
		to := landing(v, m.to)
		if seen[to] {
			continue
		}
		seen[to] = true
		queue = append(queue, node{at: to, first: m.cmd})
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if targets[n.at] {
			return n.first
		}
		for _, m := range moves(v, n.at) {
			to := landing(v, m.to)
			if seen[to] {
				continue
			}
			seen[to] = true
			queue = append(queue, node{at: to, first: n.first})
		}
	}

	return engine.CommandNone
}
