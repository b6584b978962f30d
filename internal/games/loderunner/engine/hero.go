package engine

// Controller is the source of a hero's per-tick command.
// It is pulled exactly once per tick while the hero is alive.
type Controller interface {
	NextCommand() Command
}

// Joystick is a Controller holding the latest queued command.
// A command is consumed by the tick that reads it.
type Joystick struct {
	cmd Command
}

// NewJoystick creates an idle joystick.
func NewJoystick() *Joystick {
	return &Joystick{}
}

// Set queues a command, replacing any command not yet consumed.
func (j *Joystick) Set(cmd Command) {
	j.cmd = cmd
}

// NextCommand returns and clears the queued command.
func (j *Joystick) NextCommand() Command {
	cmd := j.cmd
	j.cmd = CommandNone
	return cmd
}

// Hero is a player-controlled agent.
type Hero struct {
	Agent
	id         HeroID
	controller Controller
}

func newHero(id HeroID, pos Point, ctrl Controller) *Hero {
	return &Hero{
		Agent:      Agent{pos: pos, alive: true},
		id:         id,
		controller: ctrl,
	}
}

// ID returns the hero's handle.
func (h *Hero) ID() HeroID {
	return h.id
}

// IsAlive reports whether the hero is still alive.
func (h *Hero) IsAlive() bool {
	return h.alive
}

// Tick runs one hero step against the field.
// Falling pre-empts the command; a blocked move is a no-op.
func (h *Hero) Tick(f Field) {
	if !h.alive {
		return
	}

	cmd := CommandNone
	if h.controller != nil {
		cmd = h.controller.NextCommand()
	}

	if h.falling(f) {
		h.moveTo(f, h.pos.Below())
		return
	}

	switch cmd {
	case CommandDrillLeft, CommandDrillRight:
		h.facing = DirRight
		if cmd == CommandDrillLeft {
			h.facing = DirLeft
		}
		f.TryDrill(h, h.pos.X+h.facing.DX(), h.pos.Y-1)
	default:
		if target, ok := h.step(f, cmd); ok {
			h.moveTo(f, target)
		}
	}
}

func (h *Hero) moveTo(f Field, p Point) {
	if f.IsBarrier(p.X, p.Y) {
		return
	}
	h.pos = p
}

// checkAlive kills the hero when its cell has become a solid brick.
// Returns true only on the transition from alive to dead.
func (h *Hero) checkAlive(v View) bool {
	if !h.alive {
		return false
	}
	if v.IsFullBrick(h.pos.X, h.pos.Y) {
		h.alive = false
		return true
	}
	return false
}
