package engine

// View is the read-only set of board queries agents consult while deciding.
type View interface {
	Size() int
	IsBarrier(x, y int) bool
	IsFullBrick(x, y int) bool
	IsBrick(x, y int) bool
	IsLadder(x, y int) bool
	IsPipe(x, y int) bool
	IsBorder(x, y int) bool
	IsFree(x, y int) bool
	IsPit(x, y int) bool
	IsHeroAt(x, y int) bool
	IsEnemyAt(x, y int) bool
	IsGoldAt(x, y int) bool

	// HeroPositions returns the cells of all live heroes.
	HeroPositions() []Point
}

// Field is the capability handed to agents during their tick.
// Drilling is the only mutation an agent may request.
type Field interface {
	View
	TryDrill(by *Hero, x, y int) bool
}

// Board implements Field.
var _ Field = (*Board)(nil)
