package track

import (
	"fmt"
	"strings"
)

// Size limits for a playable track, both inclusive.
const (
	MinSize = 10
	MaxSize = 40
)

// Grid is the rectangular terrain of a track.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int       // Width of the grid
	H     int       // Height of the grid
	Cells []Terrain // Flat array of cells, length W*H
}

// NewGrid creates a grid of the given size filled with Gravel.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Terrain, w*h),
	}
}

// FromRows builds a grid from rows of terrain (rows[y][x]).
// All rows must have the same length.
func FromRows(rows [][]Terrain) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("track: no rows")
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("track: row %d has %d cells, expected %d", y, len(row), g.W)
		}
		for x, t := range row {
			g.Cells[g.index(P(x, y))] = t.Base()
		}
	}
	return g, nil
}

// ParseRows builds a grid from digit strings, one per row, where '0' is
// Gravel, '1' Road and '2' Start.
func ParseRows(rows ...string) (*Grid, error) {
	terrain := make([][]Terrain, len(rows))
	for y, row := range rows {
		terrain[y] = make([]Terrain, 0, len(row))
		for x, r := range row {
			t := Terrain(r - '0')
			if !t.Valid() {
				return nil, fmt.Errorf("track: invalid cell %q at (%d,%d)", r, x, y)
			}
			terrain[y] = append(terrain[y], t)
		}
	}
	return FromRows(terrain)
}

// MustParseRows is ParseRows for literals known to be well formed.
func MustParseRows(rows ...string) *Grid {
	g, err := ParseRows(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// index converts a position to a flat array index.
func (g *Grid) index(p Position) int {
	return p.Y*g.W + p.X
}

// InBounds returns true if the position is within the grid boundaries.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the terrain at p. Callers must bounds-check first; an
// out-of-bounds position panics.
func (g *Grid) At(p Position) Terrain {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("track: position %v outside %dx%d grid", p, g.W, g.H))
	}
	return g.Cells[g.index(p)]
}

// TerrainAt returns the terrain at p and whether p is inside the grid.
func (g *Grid) TerrainAt(p Position) (Terrain, bool) {
	if !g.InBounds(p) {
		return Gravel, false
	}
	return g.Cells[g.index(p)], true
}

// Is reports whether p is inside the grid and has terrain t.
func (g *Grid) Is(p Position, t Terrain) bool {
	got, ok := g.TerrainAt(p)
	return ok && got == t
}

// Set replaces the terrain at p. Highlights are stored as their base terrain.
// Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, t Terrain) {
	if g.InBounds(p) {
		g.Cells[g.index(p)] = t.Base()
	}
}

// Neighbor returns the adjacent cell on side d, or false at the grid edge.
func (g *Grid) Neighbor(p Position, d Direction) (Position, bool) {
	n := p.Step(d)
	if !g.InBounds(n) {
		return Position{}, false
	}
	return n, true
}

// Neighbors returns the top, right, bottom and left neighbors of p.
// ok[i] is false where the grid ends.
func (g *Grid) Neighbors(p Position) (ns [4]Position, ok [4]bool) {
	for i, d := range Directions {
		ns[i], ok[i] = g.Neighbor(p, d)
	}
	return ns, ok
}

// Positions returns every position holding terrain t, in row-major order.
func (g *Grid) Positions(t Terrain) []Position {
	var out []Position
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Cells[y*g.W+x] == t {
				out = append(out, P(x, y))
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Terrain, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if both grids have the same size and terrain.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the terrain as integers, rows[y][x], the persisted layout.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.H)
	for y := range rows {
		rows[y] = make([]int, g.W)
		for x := range rows[y] {
			rows[y][x] = int(g.Cells[y*g.W+x])
		}
	}
	return rows
}

// String renders the grid as digit rows separated by newlines.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.W*g.H + g.H)
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			sb.WriteByte(byte('0' + g.Cells[y*g.W+x]))
		}
	}
	return sb.String()
}
