package engine

// Brain is an enemy's decision source.
type Brain interface {
	Decide(v View, e *Enemy) Command
}

// Enemy is an AI-controlled agent. Enemies never die.
type Enemy struct {
	Agent
	brain    Brain
	withGold bool
	dropping bool
}

// NewEnemy creates an enemy at p. A nil brain never moves.
func NewEnemy(p Point, brain Brain) *Enemy {
	return &Enemy{
		Agent: Agent{pos: p, alive: true},
		brain: brain,
	}
}

// WithGold reports whether the enemy carries a gold unit.
func (e *Enemy) WithGold() bool {
	return e.withGold
}

// Tick runs one enemy step. Heroes do not block enemies.
func (e *Enemy) Tick(f Field) {
	cmd := CommandNone
	if e.brain != nil {
		cmd = e.brain.Decide(f, e)
	}

	if e.falling(f) {
		e.moveTo(f, e.pos.Below())
		return
	}

	if cmd == CommandDropGold {
		e.dropping = e.withGold
		return
	}
	if target, ok := e.step(f, cmd); ok {
		e.moveTo(f, target)
	}
}

func (e *Enemy) moveTo(v View, p Point) {
	if EnemyBlocked(v, p) {
		return
	}
	e.pos = p
}

// EnemyBlocked reports whether an enemy may not enter p.
func EnemyBlocked(v View, p Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= v.Size() || p.Y >= v.Size() {
		return true
	}
	return v.IsBorder(p.X, p.Y) || v.IsFullBrick(p.X, p.Y)
}
