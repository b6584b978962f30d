package engine

import "testing"

// trapLayout is a 6x6 box with a brick floor at y=1 and spawns on it.
func trapLayout() Layout {
	l := floor(box(6), 1, 1, 4)
	l.Spawns = []Point{Pt(1, 2), Pt(3, 2)}
	return l
}

func TestDrillCrushCreditsDriller(t *testing.T) {
	b := NewBoard(trapLayout(), NewScriptedDice(0), Options{RecoveryTicks: 3})
	a, ja := join(t, b, "a")
	v, jv := join(t, b, "v")

	var aEvents, vEvents []Event
	a.OnEvent(func(e Event) { aEvents = append(aEvents, e) })
	v.OnEvent(func(e Event) { vEvents = append(vEvents, e) })

	ja.Set(CommandDrillRight)
	b.Tick()
	br := b.Grid().Brick(Pt(2, 1))
	if br.State() != BrickDrilled {
		t.Fatal("brick should be drilled after the drill command")
	}
	if br.DrilledBy() != a.Hero().ID() {
		t.Errorf("DrilledBy = %d, expected %d", br.DrilledBy(), a.Hero().ID())
	}

	jv.Set(CommandLeft)
	b.Tick()
	if v.Hero().Pos() != Pt(2, 2) {
		t.Fatalf("victim at %v, expected (2,2)", v.Hero().Pos())
	}

	// The victim falls into the hole and the brick closes in the same tick.
	res := b.Tick()
	if v.Hero().Pos() != Pt(2, 1) {
		t.Fatalf("victim at %v, expected (2,1)", v.Hero().Pos())
	}
	if v.Hero().IsAlive() {
		t.Fatal("victim should be dead")
	}
	if len(res.Dead) != 1 || res.Dead[0] != "v" {
		t.Errorf("Dead = %v, expected [v]", res.Dead)
	}
	if got := res.EventsFor("a"); !sameEvents(got, []Event{EventKillEnemy}) {
		t.Errorf("driller events = %v, expected [KILL_ENEMY]", got)
	}
	if got := res.EventsFor("v"); !sameEvents(got, []Event{EventKillHero}) {
		t.Errorf("victim events = %v, expected [KILL_HERO]", got)
	}

	// A dead hero is not reported again.
	for i := 0; i < 3; i++ {
		if res := b.Tick(); len(res.Events) != 0 || len(res.Dead) != 0 {
			t.Errorf("tick %d: unexpected events %v dead %v", res.Tick, res.Events, res.Dead)
		}
	}

	if !sameEvents(aEvents, []Event{EventKillEnemy}) {
		t.Errorf("driller listener got %v", aEvents)
	}
	if !sameEvents(vEvents, []Event{EventKillHero}) {
		t.Errorf("victim listener got %v", vEvents)
	}
}

func TestDrillCrushWithoutCredit(t *testing.T) {
	tests := []struct {
		name string
		// between runs after the drill tick.
		between func(b *Board, a *Player)
	}{
		{"driller removed", func(b *Board, a *Player) { b.Remove(a.ID()) }},
		{"driller respawned", func(b *Board, a *Player) { b.NewGame(a) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(trapLayout(), NewScriptedDice(0), Options{RecoveryTicks: 3})
			a, ja := join(t, b, "a")
			v, jv := join(t, b, "v")

			ja.Set(CommandDrillRight)
			b.Tick()
			tc.between(b, a)

			jv.Set(CommandLeft)
			b.Tick()
			res := b.Tick()

			if v.Hero().IsAlive() {
				t.Fatal("victim should be dead")
			}
			if got := res.EventsFor("a"); len(got) != 0 {
				t.Errorf("stale driller got %v", got)
			}
			if got := res.EventsFor("v"); !sameEvents(got, []Event{EventKillHero}) {
				t.Errorf("victim events = %v, expected [KILL_HERO]", got)
			}
		})
	}
}

func TestDrillSelfKillGivesNoCredit(t *testing.T) {
	b := NewBoard(trapLayout(), NewScriptedDice(0), Options{RecoveryTicks: 3})
	a, ja := join(t, b, "a")

	ja.Set(CommandDrillRight)
	b.Tick()
	ja.Set(CommandRight)
	b.Tick()
	res := b.Tick()

	if a.Hero().IsAlive() {
		t.Fatal("hero should be trapped in its own hole")
	}
	if got := res.EventsFor("a"); !sameEvents(got, []Event{EventKillHero}) {
		t.Errorf("events = %v, expected only [KILL_HERO]", got)
	}
}

// 10x10 board, hero at (1,1), brick at (2,1) with (2,2) clear.
func TestTrapScenario(t *testing.T) {
	l := box(10)
	l.Bricks = []Point{Pt(2, 1)}
	l.Spawns = []Point{Pt(1, 1), Pt(2, 1)}
	b := NewBoard(l, NewScriptedDice(0), Options{})

	a, _ := join(t, b, "a")
	if a.Hero().Pos() != Pt(1, 1) {
		t.Fatalf("driller at %v, expected (1,1)", a.Hero().Pos())
	}
	if !b.TryDrill(a.Hero(), 2, 1) {
		t.Fatal("drill failed")
	}
	br := b.Grid().Brick(Pt(2, 1))
	if br.State() != BrickDrilled || br.Remaining() != DefaultRecoveryTicks {
		t.Fatalf("brick state %v remaining %d", br.State(), br.Remaining())
	}

	// The open brick is the next usable spawn.
	v, _ := join(t, b, "v")
	if v.Hero().Pos() != Pt(2, 1) {
		t.Fatalf("victim at %v, expected (2,1)", v.Hero().Pos())
	}

	for i := 1; i < DefaultRecoveryTicks; i++ {
		if res := b.Tick(); len(res.Dead) != 0 {
			t.Fatalf("tick %d: unexpected deaths %v", i, res.Dead)
		}
	}

	res := b.Tick()
	if res.Tick != DefaultRecoveryTicks {
		t.Errorf("Tick = %d, expected %d", res.Tick, DefaultRecoveryTicks)
	}
	if v.Hero().IsAlive() {
		t.Error("victim should die when the brick closes")
	}
	if !a.Hero().IsAlive() {
		t.Error("driller should survive")
	}
	if got := res.EventsFor("a"); !sameEvents(got, []Event{EventKillEnemy}) {
		t.Errorf("driller events = %v, expected [KILL_ENEMY]", got)
	}
}

func TestCollectDeadDeduplicates(t *testing.T) {
	b := NewBoard(box(6), NewScriptedDice(0), Options{})
	var res TickResult
	seen := make(map[PlayerID]bool)

	b.collectDead(&res, seen, []PlayerID{"a", "b"})
	b.collectDead(&res, seen, []PlayerID{"b"})
	b.collectDead(&res, seen, []PlayerID{"a", "c"})

	want := []PlayerID{"a", "b", "c"}
	if len(res.Dead) != len(want) {
		t.Fatalf("Dead = %v, expected %v", res.Dead, want)
	}
	for i := range want {
		if res.Dead[i] != want[i] {
			t.Errorf("Dead[%d] = %s, expected %s", i, res.Dead[i], want[i])
		}
	}
}

// A hero left alive inside a brick that is already solid when the tick
// starts qualifies for the movement check and for the brick check. Death
// latches on the hero, so the player is reported once and the brick's
// driller gets no credit for a hero the brick did not crush.
func TestDeathCountedOnceAcrossPhases(t *testing.T) {
	b := NewBoard(trapLayout(), NewScriptedDice(0), Options{RecoveryTicks: 5})
	_, ja := join(t, b, "a")
	v, jv := join(t, b, "v")

	var vEvents []Event
	v.OnEvent(func(e Event) { vEvents = append(vEvents, e) })

	ja.Set(CommandDrillRight)
	b.Tick()
	jv.Set(CommandLeft)
	b.Tick()
	b.Tick()
	if v.Hero().Pos() != Pt(2, 1) || !v.Hero().IsAlive() {
		t.Fatalf("victim at %v alive=%v, expected alive in the hole at (2,1)", v.Hero().Pos(), v.Hero().IsAlive())
	}

	br := b.Grid().Brick(Pt(2, 1))
	br.remaining = 0
	if !b.IsFullBrick(2, 1) {
		t.Fatal("brick should be solid")
	}

	res := b.Tick()
	if len(res.Dead) != 1 || res.Dead[0] != "v" {
		t.Errorf("Dead = %v, expected [v]", res.Dead)
	}
	if got := res.EventsFor("v"); !sameEvents(got, []Event{EventKillHero}) {
		t.Errorf("victim events = %v, expected one KILL_HERO", got)
	}
	if got := res.EventsFor("a"); len(got) != 0 {
		t.Errorf("driller events = %v, expected none", got)
	}

	for i := 0; i < 3; i++ {
		if res := b.Tick(); len(res.Dead) != 0 || len(res.EventsFor("v")) != 0 {
			t.Errorf("tick %d: dead %v events %v for a hero already dead", res.Tick, res.Dead, res.EventsFor("v"))
		}
	}
	if !sameEvents(vEvents, []Event{EventKillHero}) {
		t.Errorf("victim got %v over the whole game, expected one KILL_HERO", vEvents)
	}
}

func TestGoldPickupRespawns(t *testing.T) {
	l := floor(box(6), 1, 1, 4)
	l.Spawns = []Point{Pt(1, 2)}
	l.Gold = []Point{Pt(2, 2)}
	b := NewBoard(l, NewScriptedDice(3, 3), Options{})
	a, ja := join(t, b, "a")

	before := b.Gold().Len()
	ja.Set(CommandRight)
	res := b.Tick()

	if a.Hero().Pos() != Pt(2, 2) {
		t.Fatalf("hero at %v, expected (2,2)", a.Hero().Pos())
	}
	if b.IsGoldAt(2, 2) {
		t.Error("picked gold is still on the board")
	}
	if !b.IsGoldAt(3, 3) {
		t.Error("gold should respawn at the sampled free cell (3,3)")
	}
	if b.Gold().Len() != before {
		t.Errorf("gold count %d, expected %d", b.Gold().Len(), before)
	}
	if got := res.EventsFor("a"); !sameEvents(got, []Event{EventGetGold}) {
		t.Errorf("events = %v, expected [GET_GOLD]", got)
	}
}

func TestHeroMovement(t *testing.T) {
	tests := []struct {
		name   string
		layout func() Layout
		cmds   []Command
		want   Point
		facing Dir
	}{
		{
			name:   "walk right",
			layout: func() Layout { l := box(6); l.Spawns = []Point{Pt(1, 1)}; return l },
			cmds:   []Command{CommandRight, CommandRight},
			want:   Pt(3, 1),
		},
		{
			name:   "blocked by border",
			layout: func() Layout { l := box(6); l.Spawns = []Point{Pt(1, 1)}; return l },
			cmds:   []Command{CommandLeft},
			want:   Pt(1, 1),
			facing: DirLeft,
		},
		{
			name:   "falling pre-empts command",
			layout: func() Layout { l := box(6); l.Spawns = []Point{Pt(2, 3)}; return l },
			cmds:   []Command{CommandRight},
			want:   Pt(2, 2),
		},
		{
			name: "climb ladder",
			layout: func() Layout {
				l := box(6)
				l.Ladders = []Point{Pt(2, 1), Pt(2, 2)}
				l.Spawns = []Point{Pt(2, 1)}
				return l
			},
			cmds: []Command{CommandUp, CommandUp, CommandUp},
			want: Pt(2, 3),
		},
		{
			name:   "up needs a ladder",
			layout: func() Layout { l := box(6); l.Spawns = []Point{Pt(2, 1)}; return l },
			cmds:   []Command{CommandUp},
			want:   Pt(2, 1),
		},
		{
			name: "hang on pipe",
			layout: func() Layout {
				l := box(6)
				l.Pipes = []Point{Pt(2, 3), Pt(3, 3)}
				l.Spawns = []Point{Pt(2, 3)}
				return l
			},
			cmds: []Command{CommandNone, CommandRight},
			want: Pt(3, 3),
		},
		{
			name: "drop from pipe",
			layout: func() Layout {
				l := box(6)
				l.Pipes = []Point{Pt(2, 3)}
				l.Spawns = []Point{Pt(2, 3)}
				return l
			},
			cmds: []Command{CommandDown},
			want: Pt(2, 2),
		},
		{
			name: "walk off pipe and fall",
			layout: func() Layout {
				l := box(6)
				l.Pipes = []Point{Pt(2, 3)}
				l.Spawns = []Point{Pt(2, 3)}
				return l
			},
			cmds: []Command{CommandRight, CommandNone},
			want: Pt(3, 2),
		},
		{
			name: "drill turns the hero",
			layout: func() Layout {
				l := floor(box(6), 1, 1, 4)
				l.Spawns = []Point{Pt(3, 2)}
				return l
			},
			cmds:   []Command{CommandDrillLeft},
			want:   Pt(3, 2),
			facing: DirLeft,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(tc.layout(), NewScriptedDice(0), Options{})
			a, js := join(t, b, "a")
			for _, cmd := range tc.cmds {
				js.Set(cmd)
				b.Tick()
			}
			if got := a.Hero().Pos(); got != tc.want {
				t.Errorf("hero at %v, expected %v", got, tc.want)
			}
			if got := a.Hero().Facing(); got != tc.facing {
				t.Errorf("facing %v, expected %v", got, tc.facing)
			}
		})
	}
}

func TestHeroesBlockHeroes(t *testing.T) {
	l := box(6)
	l.Spawns = []Point{Pt(1, 1), Pt(2, 1)}
	b := NewBoard(l, NewScriptedDice(0), Options{})
	a, ja := join(t, b, "a")
	join(t, b, "c")

	ja.Set(CommandRight)
	b.Tick()
	if a.Hero().Pos() != Pt(1, 1) {
		t.Errorf("hero walked into another hero: %v", a.Hero().Pos())
	}
}

func TestEnemyAbsorbsGold(t *testing.T) {
	l := floor(box(6), 1, 1, 4)
	l.Gold = []Point{Pt(2, 2), Pt(3, 2)}
	b := NewBoard(l, NewScriptedDice(0), Options{})
	b.AddEnemy(NewEnemy(Pt(1, 2), brainFunc(func(View, *Enemy) Command { return CommandRight })))
	e := b.Enemies()[0]

	res := b.Tick()
	if len(res.Events) != 0 {
		t.Errorf("enemy pickup should be silent, got %v", res.Events)
	}
	if !e.WithGold() || b.IsGoldAt(2, 2) {
		t.Fatal("enemy should carry the gold it walked onto")
	}

	b.Tick()
	if e.Pos() != Pt(3, 2) {
		t.Fatalf("enemy at %v, expected (3,2)", e.Pos())
	}
	if !b.IsGoldAt(3, 2) {
		t.Error("a carrying enemy should leave further gold in place")
	}
}

func TestEnemyDropsGold(t *testing.T) {
	l := floor(box(6), 1, 1, 4)
	l.Gold = []Point{Pt(2, 2)}
	cmds := []Command{CommandRight, CommandDropGold}
	brain := brainFunc(func(v View, e *Enemy) Command {
		cmd := cmds[0]
		cmds = cmds[1:]
		return cmd
	})
	b := NewBoard(l, NewScriptedDice(0), Options{})
	b.AddEnemy(NewEnemy(Pt(1, 2), brain))
	e := b.Enemies()[0]

	b.Tick()
	b.Tick()

	if e.WithGold() {
		t.Error("enemy should have dropped its gold")
	}
	if !b.IsGoldAt(2, 2) {
		t.Error("dropped gold should lie on the enemy's cell")
	}
	if b.Gold().Len() != 1 {
		t.Errorf("gold count %d, expected 1", b.Gold().Len())
	}
}

func TestEnemyKeepsGoldWhereNotFree(t *testing.T) {
	l := box(6)
	l.Ladders = []Point{Pt(2, 1)}
	l.Gold = []Point{Pt(2, 1)}
	b := NewBoard(l, NewScriptedDice(0), Options{})
	b.AddEnemy(NewEnemy(Pt(2, 1), brainFunc(func(View, *Enemy) Command { return CommandDropGold })))
	e := b.Enemies()[0]

	b.Tick()
	if !e.WithGold() {
		t.Fatal("enemy should pick up the gold under it")
	}
	b.Tick()
	if !e.WithGold() || b.IsGoldAt(2, 1) {
		t.Error("gold must not be dropped on a ladder")
	}
}

func TestEnemyPace(t *testing.T) {
	l := floor(box(6), 1, 1, 4)
	b := NewBoard(l, NewScriptedDice(0), Options{EnemyMoveEvery: 2})
	b.AddEnemy(NewEnemy(Pt(1, 2), brainFunc(func(View, *Enemy) Command { return CommandRight })))
	e := b.Enemies()[0]

	b.Tick()
	if e.Pos() != Pt(1, 2) {
		t.Errorf("enemy moved on an off tick: %v", e.Pos())
	}
	b.Tick()
	if e.Pos() != Pt(2, 2) {
		t.Errorf("enemy at %v, expected (2,2)", e.Pos())
	}
}

func TestEnemySurvivesClosingBrick(t *testing.T) {
	l := floor(box(6), 1, 1, 4)
	b := NewBoard(l, NewScriptedDice(0), Options{RecoveryTicks: 3})
	b.TryDrill(nil, 2, 1)
	b.AddEnemy(NewEnemy(Pt(3, 2), brainFunc(func(View, *Enemy) Command { return CommandLeft })))
	e := b.Enemies()[0]

	for i := 0; i < 3; i++ {
		b.Tick()
	}
	if e.Pos() != Pt(2, 1) {
		t.Fatalf("enemy at %v, expected in the hole (2,1)", e.Pos())
	}
	if !b.IsFullBrick(2, 1) {
		t.Error("brick should have closed")
	}
	if len(b.Enemies()) != 1 {
		t.Error("enemies are immortal")
	}
}

func TestTickIsDeterministic(t *testing.T) {
	run := func() string {
		l := floor(box(8), 1, 1, 6)
		l.Spawns = []Point{Pt(1, 2), Pt(5, 2)}
		l.Gold = []Point{Pt(3, 2), Pt(4, 4)}
		b := NewBoard(l, NewRandomDice(42), Options{RecoveryTicks: 4})
		_, ja := join(t, b, "a")
		_, jc := join(t, b, "c")
		script := []Command{CommandRight, CommandDrillRight, CommandRight, CommandLeft, CommandNone}
		for i := 0; i < 20; i++ {
			ja.Set(script[i%len(script)])
			jc.Set(script[(i+2)%len(script)])
			b.Tick()
		}
		return RenderASCII(b.Snapshot(), "a")
	}

	if first, second := run(), run(); first != second {
		t.Errorf("same seed produced different boards:\n%s\n---\n%s", first, second)
	}
}
