package ai

import (
	"testing"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/registry"
)

func board(t *testing.T, rows ...string) *engine.Board {
	t.Helper()
	layout, err := levels.ParseMap(rows)
	if err != nil {
		t.Fatalf("ParseMap() failed: %v", err)
	}
	b := engine.NewBoard(layout, engine.NewScriptedDice(0), engine.Options{RecoveryTicks: 5})
	for i := range layout.Spawns {
		b.NewGame(engine.NewPlayer(engine.PlayerID(string(rune('a'+i))), engine.NewJoystick()))
	}
	return b
}

func TestBrainsRegistered(t *testing.T) {
	for _, id := range []string{Idle, Wander, Chaser} {
		if !registry.Exists(id) {
			t.Errorf("brain %q not registered", id)
		}
	}
}

func TestFactory(t *testing.T) {
	newBrain, err := Factory("", engine.NewScriptedDice(0))
	if err != nil {
		t.Fatalf("Factory() failed: %v", err)
	}
	if _, ok := newBrain().(*ChaserBrain); !ok {
		t.Error("empty name should select the chaser")
	}
	if newBrain() == newBrain() {
		t.Error("each enemy should get its own brain")
	}

	if _, err := Factory("telepath", nil); err == nil {
		t.Error("expected an error for an unknown brain")
	}
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		from engine.Point
		want engine.Command
	}{
		{
			name: "hero to the right",
			rows: []string{
				"☼☼☼☼☼☼",
				"☼    ☼",
				"☼    ☼",
				"☼   @☼",
				"☼☼☼☼☼☼",
				"☼☼☼☼☼☼",
			},
			from: engine.Pt(1, 2),
			want: engine.CommandRight,
		},
		{
			name: "hero to the left",
			rows: []string{
				"☼☼☼☼☼☼",
				"☼    ☼",
				"☼    ☼",
				"☼@   ☼",
				"☼☼☼☼☼☼",
				"☼☼☼☼☼☼",
			},
			from: engine.Pt(4, 2),
			want: engine.CommandLeft,
		},
		{
			name: "around by the ladder",
			rows: []string{
				"☼☼☼☼☼☼☼☼",
				"☼      ☼",
				"☼      ☼",
				"☼    @ ☼",
				"☼H#####☼",
				"☼H     ☼",
				"☼H     ☼",
				"☼☼☼☼☼☼☼☼",
			},
			from: engine.Pt(3, 1),
			want: engine.CommandLeft,
		},
		{
			name: "no hero",
			rows: []string{
				"☼☼☼☼",
				"☼  ☼",
				"☼  ☼",
				"☼☼☼☼",
			},
			from: engine.Pt(1, 1),
			want: engine.CommandNone,
		},
		{
			name: "unreachable hero",
			rows: []string{
				"☼☼☼☼☼☼",
				"☼  @ ☼",
				"☼####☼",
				"☼    ☼",
				"☼    ☼",
				"☼☼☼☼☼☼",
			},
			from: engine.Pt(1, 1),
			want: engine.CommandNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board(t, tc.rows...)
			if got := NextStep(b, tc.from); got != tc.want {
				t.Errorf("NextStep() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestChaserDropsGold(t *testing.T) {
	b := board(t,
		"☼☼☼☼",
		"☼  ☼",
		"☼$ ☼",
		"☼☼☼☼",
	)
	e := engine.NewEnemy(engine.Pt(1, 1), NewChaserBrain(2))
	b.AddEnemy(e)

	b.Tick()
	if !e.WithGold() {
		t.Fatal("enemy should pick up the gold it stands on")
	}
	b.Tick()
	if !e.WithGold() {
		t.Fatal("enemy dropped gold too early")
	}
	b.Tick()
	if e.WithGold() || !b.IsGoldAt(1, 1) {
		t.Error("enemy should drop its gold after carrying it")
	}
}

func TestWanderKeepsDirection(t *testing.T) {
	dice := engine.NewScriptedDice(1, 0)
	w := NewWanderBrain(dice)
	b := board(t,
		"☼☼☼☼",
		"☼  ☼",
		"☼  ☼",
		"☼☼☼☼",
	)
	e := engine.NewEnemy(engine.Pt(1, 1), nil)

	for i := 0; i < 2; i++ {
		if got := w.Decide(b, e); got != engine.CommandRight {
			t.Errorf("decision %d = %v, expected right", i, got)
		}
	}
	if dice.Calls != 2 {
		t.Errorf("dice rolled %d times, expected 2", dice.Calls)
	}
}

func TestIdle(t *testing.T) {
	if got := (IdleBrain{}).Decide(nil, nil); got != engine.CommandNone {
		t.Errorf("Decide() = %v", got)
	}
}
