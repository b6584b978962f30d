package engine

import "testing"

// box returns a layout of the given size enclosed by borders.
func box(size int) Layout {
	l := Layout{Size: size}
	for i := 0; i < size; i++ {
		l.Borders = append(l.Borders, Pt(i, 0), Pt(i, size-1))
		if i > 0 && i < size-1 {
			l.Borders = append(l.Borders, Pt(0, i), Pt(size-1, i))
		}
	}
	return l
}

// floor adds a row of bricks at height y between x0 and x1 inclusive.
func floor(l Layout, y, x0, x1 int) Layout {
	for x := x0; x <= x1; x++ {
		l.Bricks = append(l.Bricks, Pt(x, y))
	}
	return l
}

type brainFunc func(v View, e *Enemy) Command

func (f brainFunc) Decide(v View, e *Enemy) Command { return f(v, e) }

func join(t *testing.T, b *Board, id PlayerID) (*Player, *Joystick) {
	t.Helper()
	js := NewJoystick()
	p := NewPlayer(id, js)
	b.NewGame(p)
	if p.Hero() == nil {
		t.Fatalf("player %s has no hero after NewGame", id)
	}
	return p, js
}

func sameEvents(got, want []Event) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
