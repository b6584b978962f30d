package engine

// Tick advances the board by one step. The phases run in a fixed order:
//
//  1. heroes move and pick up gold, then newly dead heroes are collected;
//  2. enemies move and pick up or drop gold, then deaths are collected again;
//  3. every brick ticks once; heroes crushed by a closing brick die and the
//     kill is credited to the brick's driller;
//  4. every distinct dead player gets exactly one KILL_HERO.
func (b *Board) Tick() TickResult {
	b.tick++
	res := TickResult{Tick: b.tick}
	dead := make(map[PlayerID]bool)

	b.heroesGo(&res)
	b.collectDead(&res, dead, b.diedPlayers())

	b.enemiesGo()
	b.collectDead(&res, dead, b.diedPlayers())

	b.collectDead(&res, dead, b.bricksGo(&res))

	for _, id := range res.Dead {
		if p := b.Player(id); p != nil {
			b.fire(&res, p, EventKillHero)
		}
	}

	return res
}

func (b *Board) heroesGo(res *TickResult) {
	for _, p := range b.players {
		h := p.hero
		if h == nil {
			continue
		}
		h.Tick(b)

		if !h.alive || !b.gold.Remove(h.pos) {
			continue
		}
		b.fire(res, p, EventGetGold)

		pos := b.GetFreeRandom()
		b.LeaveGold(pos.X, pos.Y)
	}
}

func (b *Board) enemiesGo() {
	every := uint64(b.opts.EnemyMoveEvery)
	for _, e := range b.enemies {
		if every <= 1 || b.tick%every == 0 {
			e.Tick(b)
		}

		if e.dropping {
			e.dropping = false
			if e.withGold && b.IsFree(e.pos.X, e.pos.Y) {
				b.LeaveGold(e.pos.X, e.pos.Y)
				e.withGold = false
				continue
			}
		}

		if !e.withGold && b.gold.Remove(e.pos) {
			e.withGold = true
		}
	}
}

// diedPlayers returns players whose hero died since the last check.
func (b *Board) diedPlayers() []PlayerID {
	var died []PlayerID
	for _, p := range b.players {
		if p.hero != nil && p.hero.checkAlive(b) {
			died = append(died, p.id)
		}
	}
	return died
}

// bricksGo ticks every brick, then kills heroes trapped by a closed brick
// and credits their drillers.
func (b *Board) bricksGo(res *TickResult) []PlayerID {
	for _, br := range b.grid.Bricks() {
		br.Tick()
	}

	var died []PlayerID
	for _, p := range b.players {
		h := p.hero
		if h == nil || !h.checkAlive(b) {
			continue
		}
		died = append(died, p.id)

		killer := b.playerOf(b.grid.Brick(h.pos).DrilledBy())
		if killer != nil && killer != p {
			b.fire(res, killer, EventKillEnemy)
		}
	}
	return died
}

func (b *Board) collectDead(res *TickResult, seen map[PlayerID]bool, ids []PlayerID) {
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		res.Dead = append(res.Dead, id)
	}
}

func (b *Board) fire(res *TickResult, p *Player, e Event) {
	res.Events = append(res.Events, PlayerEvent{Player: p.id, Event: e})
	p.event(e)
}
