// Package engine is the per-tick simulation core of Lode Runner.
// It owns the board state and is UI-agnostic and deterministic: given the
// same layout, dice and commands it always produces the same ticks.
package engine

import "fmt"

// Point is a cell coordinate on the board.
// X increases to the right, Y increases upward: row y-1 is the row below.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Below returns the cell directly under p.
func (p Point) Below() Point {
	return p.Add(0, -1)
}

// Above returns the cell directly over p.
func (p Point) Above() Point {
	return p.Add(0, 1)
}

// Dir is the horizontal facing of an agent.
type Dir uint8

const (
	DirRight Dir = iota
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	if d == DirLeft {
		return "left"
	}
	return "right"
}

// DX returns the x offset of one step in this direction.
func (d Dir) DX() int {
	if d == DirLeft {
		return -1
	}
	return 1
}

// MarshalText encodes the direction as its name.
func (d Dir) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Dir) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*d = DirLeft
	case "right":
		*d = DirRight
	default:
		return fmt.Errorf("engine: unknown direction %q", b)
	}
	return nil
}

// Command is one per-tick intent of an agent.
type Command uint8

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandUp
	CommandDown
	CommandDrillLeft
	CommandDrillRight
	CommandDropGold // enemies only
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandDrillLeft:
		return "drill-left"
	case CommandDrillRight:
		return "drill-right"
	case CommandDropGold:
		return "drop-gold"
	default:
		return "unknown"
	}
}

// ParseCommand maps a command name back to a Command.
func ParseCommand(s string) (Command, bool) {
	for c := CommandNone; c <= CommandDropGold; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return CommandNone, false
}
