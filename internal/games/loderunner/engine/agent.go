package engine

// Agent is the state shared by heroes and enemies.
type Agent struct {
	pos    Point
	facing Dir
	alive  bool
}

// Pos returns the agent's cell.
func (a *Agent) Pos() Point {
	return a.pos
}

// Facing returns the agent's horizontal direction.
func (a *Agent) Facing() Dir {
	return a.facing
}

// falling reports whether the agent has no support under it.
// Ladders and pipes hold an agent in place.
func (a *Agent) falling(v View) bool {
	p := a.pos
	return v.IsPit(p.X, p.Y) && !v.IsLadder(p.X, p.Y) && !v.IsPipe(p.X, p.Y)
}

// step resolves a movement command into a target cell.
// ok is false when the command does not move the agent.
func (a *Agent) step(v View, cmd Command) (target Point, ok bool) {
	p := a.pos
	switch cmd {
	case CommandLeft:
		a.facing = DirLeft
		return p.Add(-1, 0), true
	case CommandRight:
		a.facing = DirRight
		return p.Add(1, 0), true
	case CommandUp:
		if !v.IsLadder(p.X, p.Y) {
			return p, false
		}
		return p.Above(), true
	case CommandDown:
		return p.Below(), true
	}
	return p, false
}
