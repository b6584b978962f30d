package engine

// DefaultRecoveryTicks is how long a drilled brick stays open.
const DefaultRecoveryTicks = 13

// BrickState is the state of a brick.
type BrickState uint8

const (
	BrickSolid BrickState = iota
	BrickDrilled
)

// String returns the name of the state.
func (s BrickState) String() string {
	if s == BrickDrilled {
		return "drilled"
	}
	return "solid"
}

// HeroID is a non-owning handle to a hero. Zero means no hero.
type HeroID uint64

// NoHero is the zero handle.
const NoHero HeroID = 0

// Brick is a drillable terrain cell.
//
// State machine:
//
//	SOLID --Drill(by)--> DRILLED(recovery, by) --Tick x recovery--> SOLID
//
// The driller handle survives the transition back to SOLID so that a kill
// caused by the closing brick can still be attributed in the same tick.
type Brick struct {
	pos       Point
	recovery  int
	remaining int
	drilledBy HeroID
}

// NewBrick creates a solid brick. Non-positive recovery uses the default.
func NewBrick(p Point, recoveryTicks int) *Brick {
	if recoveryTicks <= 0 {
		recoveryTicks = DefaultRecoveryTicks
	}
	return &Brick{pos: p, recovery: recoveryTicks}
}

// Pos returns the brick's cell.
func (b *Brick) Pos() Point {
	return b.pos
}

// State returns the current state.
func (b *Brick) State() BrickState {
	if b.remaining > 0 {
		return BrickDrilled
	}
	return BrickSolid
}

// Remaining returns the ticks left until the brick closes (0 when solid).
func (b *Brick) Remaining() int {
	return b.remaining
}

// RecoveryTicks returns the fixed drilled duration.
func (b *Brick) RecoveryTicks() int {
	return b.recovery
}

// DrilledBy returns the hero that drilled the brick most recently.
func (b *Brick) DrilledBy() HeroID {
	return b.drilledBy
}

// Drill opens a solid brick. Drilling an open brick does nothing and
// returns false. Clearance above the brick is the board's concern.
func (b *Brick) Drill(by HeroID) bool {
	if b.State() != BrickSolid {
		return false
	}
	b.remaining = b.recovery
	b.drilledBy = by
	return true
}

// Tick advances the countdown; at zero the brick is solid again.
func (b *Brick) Tick() {
	if b.remaining > 0 {
		b.remaining--
	}
}
