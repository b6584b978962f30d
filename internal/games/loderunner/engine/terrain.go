package engine

// ElementKind tags the static element stored in a grid cell.
type ElementKind uint8

const (
	ElementNone ElementKind = iota
	ElementBorder
	ElementLadder
	ElementPipe
	ElementBrick
)

// String returns the name of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementNone:
		return "none"
	case ElementBorder:
		return "border"
	case ElementLadder:
		return "ladder"
	case ElementPipe:
		return "pipe"
	case ElementBrick:
		return "brick"
	default:
		return "unknown"
	}
}

// Element is the content of one grid cell.
// Brick is non-nil exactly when Kind is ElementBrick.
type Element struct {
	Kind  ElementKind
	Brick *Brick
}

// Grid is the dense size*size terrain map.
// Cells are stored in row-major order: index = y*size + x.
type Grid struct {
	size   int
	cells  []Element
	bricks []*Brick
}

// NewGrid creates an empty square grid.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		size:  size,
		cells: make([]Element, size*size),
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) index(p Point) int {
	return p.Y*g.size + p.X
}

// InBounds returns true if the point lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// At returns the element at p, or an empty element when out of bounds.
func (g *Grid) At(p Point) Element {
	if !g.InBounds(p) {
		return Element{}
	}
	return g.cells[g.index(p)]
}

// Is reports whether the element at p is exactly the given kind.
func (g *Grid) Is(p Point, kind ElementKind) bool {
	return g.At(p).Kind == kind
}

// Place stores a static element. Bricks must go through PlaceBrick.
// Out-of-bounds points are ignored.
func (g *Grid) Place(p Point, kind ElementKind) {
	if !g.InBounds(p) || kind == ElementBrick {
		return
	}
	g.cells[g.index(p)] = Element{Kind: kind}
}

// PlaceBrick creates a solid brick at p.
func (g *Grid) PlaceBrick(p Point, recoveryTicks int) *Brick {
	if !g.InBounds(p) {
		return nil
	}
	b := NewBrick(p, recoveryTicks)
	g.cells[g.index(p)] = Element{Kind: ElementBrick, Brick: b}
	g.bricks = append(g.bricks, b)
	return b
}

// Bricks returns every brick in placement order.
func (g *Grid) Bricks() []*Brick {
	return g.bricks
}

// Brick returns the brick at p, or nil.
func (g *Grid) Brick(p Point) *Brick {
	return g.At(p).Brick
}
