package engine

import "sort"

// GoldSet is the set of cells holding gold.
type GoldSet struct {
	cells map[Point]struct{}
}

// NewGoldSet creates a set from the given points; duplicates collapse.
func NewGoldSet(points []Point) *GoldSet {
	s := &GoldSet{cells: make(map[Point]struct{}, len(points))}
	for _, p := range points {
		s.Add(p)
	}
	return s
}

// Has reports whether p holds gold.
func (s *GoldSet) Has(p Point) bool {
	_, ok := s.cells[p]
	return ok
}

// Add puts gold at p. Returns false if p already had gold.
func (s *GoldSet) Add(p Point) bool {
	if s.Has(p) {
		return false
	}
	s.cells[p] = struct{}{}
	return true
}

// Remove takes the gold at p. Returns false if there was none.
func (s *GoldSet) Remove(p Point) bool {
	if !s.Has(p) {
		return false
	}
	delete(s.cells, p)
	return true
}

// Len returns the number of gold units.
func (s *GoldSet) Len() int {
	return len(s.cells)
}

// Points returns all gold cells ordered by row then column.
func (s *GoldSet) Points() []Point {
	pts := make([]Point, 0, len(s.cells))
	for p := range s.cells {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}
