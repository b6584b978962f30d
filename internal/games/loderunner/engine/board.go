package engine

// FreeCellAttempts bounds GetFreeRandom's sampling.
const FreeCellAttempts = 100

// Layout is the initial content of a board, as produced by a level loader.
type Layout struct {
	Size    int
	Borders []Point
	Bricks  []Point
	Ladders []Point
	Pipes   []Point
	Gold    []Point
	Enemies []Point
	Spawns  []Point // preferred hero spawn cells, in order
}

// Options tunes a board.
type Options struct {
	// RecoveryTicks is how long a drilled brick stays open.
	RecoveryTicks int

	// EnemyMoveEvery makes enemies act only every n-th tick (n <= 1: every tick).
	EnemyMoveEvery int

	// NewBrain creates the brain of each level enemy. Nil leaves enemies idle.
	NewBrain func() Brain
}

// Board owns the terrain, the agents, the gold and the dice, and runs ticks.
// A Board is not safe for concurrent use; one goroutine drives it.
type Board struct {
	size    int
	grid    *Grid
	players []*Player
	enemies []*Enemy
	gold    *GoldSet
	spawns  []Point
	dice    Dice
	opts    Options

	tick       uint64
	nextHeroID HeroID

	// OnAnomaly, when set, is told about degenerate outcomes that the
	// board resolves with a fallback (for example no free cell found).
	OnAnomaly func(msg string, keyvals ...any)
}

// NewBoard builds a board from a layout.
func NewBoard(layout Layout, dice Dice, opts Options) *Board {
	if dice == nil {
		dice = NewRandomDice(0)
	}
	if opts.RecoveryTicks <= 0 {
		opts.RecoveryTicks = DefaultRecoveryTicks
	}

	grid := NewGrid(layout.Size)
	for _, p := range layout.Borders {
		grid.Place(p, ElementBorder)
	}
	for _, p := range layout.Bricks {
		grid.PlaceBrick(p, opts.RecoveryTicks)
	}
	for _, p := range layout.Ladders {
		grid.Place(p, ElementLadder)
	}
	for _, p := range layout.Pipes {
		grid.Place(p, ElementPipe)
	}

	b := &Board{
		size:   layout.Size,
		grid:   grid,
		gold:   NewGoldSet(layout.Gold),
		spawns: append([]Point(nil), layout.Spawns...),
		dice:   dice,
		opts:   opts,
	}

	for _, p := range layout.Enemies {
		var brain Brain
		if opts.NewBrain != nil {
			brain = opts.NewBrain()
		}
		b.enemies = append(b.enemies, NewEnemy(p, brain))
	}

	return b
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// CurrentTick returns the number of ticks run so far.
func (b *Board) CurrentTick() uint64 {
	return b.tick
}

// Grid returns the terrain grid.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Players returns the registered players in join order.
func (b *Board) Players() []*Player {
	return b.players
}

// Enemies returns the enemies in level order.
func (b *Board) Enemies() []*Enemy {
	return b.enemies
}

// Gold returns the gold registry.
func (b *Board) Gold() *GoldSet {
	return b.gold
}

// AddEnemy places an extra enemy on the board.
func (b *Board) AddEnemy(e *Enemy) {
	b.enemies = append(b.enemies, e)
}

// --- legality predicates ---

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// IsBarrier reports whether a hero may not enter (x, y): out of bounds,
// a solid brick, a border, or another hero. Enemies are never barriers.
func (b *Board) IsBarrier(x, y int) bool {
	return !b.inBounds(x, y) || b.IsFullBrick(x, y) || b.IsBorder(x, y) || b.IsHeroAt(x, y)
}

// IsFullBrick reports whether (x, y) is a brick in the solid state.
func (b *Board) IsFullBrick(x, y int) bool {
	br := b.grid.Brick(Pt(x, y))
	return br != nil && br.State() == BrickSolid
}

// IsBrick reports whether (x, y) is a brick in any state.
func (b *Board) IsBrick(x, y int) bool {
	return b.grid.Is(Pt(x, y), ElementBrick)
}

// IsLadder reports whether (x, y) is a ladder.
func (b *Board) IsLadder(x, y int) bool {
	return b.grid.Is(Pt(x, y), ElementLadder)
}

// IsPipe reports whether (x, y) is a pipe.
func (b *Board) IsPipe(x, y int) bool {
	return b.grid.Is(Pt(x, y), ElementPipe)
}

// IsBorder reports whether (x, y) is a border.
func (b *Board) IsBorder(x, y int) bool {
	return b.grid.Is(Pt(x, y), ElementBorder)
}

// IsGoldAt reports whether (x, y) holds gold.
func (b *Board) IsGoldAt(x, y int) bool {
	return b.gold.Has(Pt(x, y))
}

// IsFree reports whether (x, y) is open space fit for gold: no gold,
// border, brick, hero, pipe or ladder. Enemies do not matter here.
func (b *Board) IsFree(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	p := Pt(x, y)
	switch b.grid.At(p).Kind {
	case ElementBorder, ElementBrick, ElementPipe, ElementLadder:
		return false
	}
	return !b.gold.Has(p) && !b.IsHeroAt(x, y)
}

// IsPit reports whether an agent at (x, y) has nothing holding it from below.
func (b *Board) IsPit(x, y int) bool {
	bx, by := x, y-1
	return !b.IsFullBrick(bx, by) &&
		!b.IsLadder(bx, by) &&
		!b.IsBorder(bx, by) &&
		!b.IsHeroAt(bx, by) &&
		!b.IsEnemyAt(bx, by)
}

// IsHeroAt reports whether any hero occupies (x, y).
func (b *Board) IsHeroAt(x, y int) bool {
	p := Pt(x, y)
	for _, pl := range b.players {
		if pl.hero != nil && pl.hero.pos == p {
			return true
		}
	}
	return false
}

// IsEnemyAt reports whether any enemy occupies (x, y).
func (b *Board) IsEnemyAt(x, y int) bool {
	p := Pt(x, y)
	for _, e := range b.enemies {
		if e.pos == p {
			return true
		}
	}
	return false
}

// HeroPositions returns the cells of all live heroes in join order.
func (b *Board) HeroPositions() []Point {
	pts := make([]Point, 0, len(b.players))
	for _, pl := range b.players {
		if pl.hero != nil && pl.hero.alive {
			pts = append(pts, pl.hero.pos)
		}
	}
	return pts
}

// --- mutations ---

// TryDrill opens the brick at (x, y) on behalf of a hero.
// It fails silently unless the brick is solid and the cell above holds no
// ladder, gold, solid brick, hero or enemy.
func (b *Board) TryDrill(by *Hero, x, y int) bool {
	if !b.IsFullBrick(x, y) {
		return false
	}

	ox, oy := x, y+1
	if b.IsLadder(ox, oy) || b.IsGoldAt(ox, oy) || b.IsFullBrick(ox, oy) ||
		b.IsHeroAt(ox, oy) || b.IsEnemyAt(ox, oy) {
		return false
	}

	id := NoHero
	if by != nil {
		id = by.id
	}
	return b.grid.Brick(Pt(x, y)).Drill(id)
}

// LeaveGold puts a gold unit at (x, y). Returns false if one is already
// there or the cell is off the board.
func (b *Board) LeaveGold(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.gold.Add(Pt(x, y))
}

// GetFreeRandom samples uniform cells until one IsFree, giving up after
// FreeCellAttempts samples and returning (0,0).
func (b *Board) GetFreeRandom() Point {
	for i := 0; i < FreeCellAttempts; i++ {
		x := b.dice.Next(b.size)
		y := b.dice.Next(b.size)
		if b.IsFree(x, y) {
			return Pt(x, y)
		}
	}
	b.anomaly("no free cell found", "attempts", FreeCellAttempts, "size", b.size)
	return Pt(0, 0)
}

func (b *Board) anomaly(msg string, keyvals ...any) {
	if b.OnAnomaly != nil {
		b.OnAnomaly(msg, keyvals...)
	}
}

// --- lifecycle ---

// NewGame registers the player if needed and gives it a fresh hero, at the
// first unoccupied level spawn or else at a free random cell.
func (b *Board) NewGame(p *Player) {
	if i := b.playerIndex(p.id); i >= 0 {
		b.players[i] = p
	} else {
		b.players = append(b.players, p)
	}
	// The old hero no longer occupies a cell while we look for a spawn.
	p.hero = nil

	b.nextHeroID++
	p.hero = newHero(b.nextHeroID, b.spawnPoint(), p.controller)
}

func (b *Board) spawnPoint() Point {
	for _, s := range b.spawns {
		if !b.IsBarrier(s.X, s.Y) {
			return s
		}
	}
	return b.GetFreeRandom()
}

// Remove deregisters a player together with its hero.
// Bricks drilled by that hero keep a stale handle and credit nobody.
func (b *Board) Remove(id PlayerID) bool {
	i := b.playerIndex(id)
	if i < 0 {
		return false
	}
	b.players = append(b.players[:i], b.players[i+1:]...)
	return true
}

// Player returns a registered player by id.
func (b *Board) Player(id PlayerID) *Player {
	if i := b.playerIndex(id); i >= 0 {
		return b.players[i]
	}
	return nil
}

func (b *Board) playerIndex(id PlayerID) int {
	for i, p := range b.players {
		if p.id == id {
			return i
		}
	}
	return -1
}

// playerOf resolves a hero handle to the player currently owning it.
func (b *Board) playerOf(id HeroID) *Player {
	if id == NoHero {
		return nil
	}
	for _, p := range b.players {
		if p.hero != nil && p.hero.id == id {
			return p
		}
	}
	return nil
}
