package track

import "github.com/vovakirdan/tui-racetrack/internal/core"

// StartLine is the contiguous straight run of Start cells.
type StartLine struct {
	// Cells runs from the reference cell (first Start in row-major order)
	// to the far end: left to right, or top to bottom.
	Cells []Position
	// Vertical lines run along Y and are crossed by horizontal moves.
	Vertical bool
}

// Ref returns the reference cell of the line.
func (l StartLine) Ref() Position {
	return l.Cells[0]
}

// Along returns the direction in which the line extends from its reference cell.
func (l StartLine) Along() Direction {
	if l.Vertical {
		return Down
	}
	return Right
}

// Departure returns the side the round-course walk leaves the line on.
func (l StartLine) Departure() Direction {
	if l.Vertical {
		return Right
	}
	return Up
}

// Ends returns the cells just beyond both ends of the line. They may lie
// outside the grid.
func (l StartLine) Ends() (before, after Position) {
	along := l.Along()
	return l.Cells[0].Step(along.Opposite()), l.Cells[len(l.Cells)-1].Step(along)
}

// Contains reports whether p is part of the line.
func (l StartLine) Contains(p Position) bool {
	for _, c := range l.Cells {
		if c == p {
			return true
		}
	}
	return false
}

// FindStartLine locates the starting line and checks that it is a single
// straight run capped by Gravel or the grid edge on both ends.
func FindStartLine(g *Grid) (StartLine, error) {
	starts := g.Positions(Start)
	if len(starts) == 0 {
		return StartLine{}, core.Errorf(core.StartMissing, "track has no start cells")
	}

	ref := starts[0]
	line := StartLine{Vertical: lineIsVertical(g, ref)}

	along := line.Along()
	for p := ref; g.Is(p, Start); p = p.Step(along) {
		line.Cells = append(line.Cells, p)
	}

	if len(line.Cells) != len(starts) {
		return line, core.Errorf(core.StartNotComplete,
			"start cells do not form one straight line (%d of %d connected)", len(line.Cells), len(starts))
	}

	before, after := line.Ends()
	if g.Is(before, Road) || g.Is(after, Road) {
		return line, core.Errorf(core.StartNotComplete, "road continues past the end of the starting line")
	}

	return line, nil
}

// lineIsVertical decides the orientation from the reference cell. A single
// tile counts as horizontal unless road can only pass through it sideways.
func lineIsVertical(g *Grid, ref Position) bool {
	if g.Is(ref.Step(Down), Start) {
		return true
	}
	if g.Is(ref.Step(Right), Start) {
		return false
	}
	return !g.Is(ref.Step(Up), Road) && !g.Is(ref.Step(Down), Road)
}

// PlaceStartLine returns a copy of g whose starting line crosses the road
// at p, together with the matching default crossing direction. The old line
// is turned back into Road. The new line spans the shorter of the two
// straight road runs through p; a horizontal line is crossed downward and a
// vertical one to the right. It reports false when p is not Road.
func PlaceStartLine(g *Grid, p Position) (*Grid, Direction, bool) {
	if !g.Is(p, Road) {
		return g, Up, false
	}
	out := clearStartLine(g)
	return layStartLine(out, p, roadRun(out, p, Down) <= roadRun(out, p, Right))
}

// RotateStartLine re-lays the starting line through the Start cell p on the
// other axis. It reports false when p is not part of a line.
func RotateStartLine(g *Grid, p Position) (*Grid, Direction, bool) {
	if !g.Is(p, Start) {
		return g, Up, false
	}
	vertical := g.Is(p.Step(Up), Start) || g.Is(p.Step(Down), Start)
	if !vertical && !g.Is(p.Step(Left), Start) && !g.Is(p.Step(Right), Start) {
		vertical = lineIsVertical(g, p)
	}
	return layStartLine(clearStartLine(g), p, !vertical)
}

// clearStartLine returns a copy of g with every Start cell turned into Road.
func clearStartLine(g *Grid) *Grid {
	out := g.Clone()
	for _, s := range out.Positions(Start) {
		out.Set(s, Road)
	}
	return out
}

// layStartLine paints Start through p across the road run on one axis of
// out and returns out with the default crossing direction.
func layStartLine(out *Grid, p Position, vertical bool) (*Grid, Direction, bool) {
	along := Right
	dir := Down
	if vertical {
		along = Down
		dir = Right
	}

	out.Set(p, Start)
	for _, d := range []Direction{along, along.Opposite()} {
		for q := p.Step(d); out.Is(q, Road); q = q.Step(d) {
			out.Set(q, Start)
		}
	}
	return out, dir, true
}

// roadRun counts the contiguous Road cells through p along d's axis.
func roadRun(g *Grid, p Position, d Direction) int {
	n := 1
	for _, dir := range []Direction{d, d.Opposite()} {
		for q := p.Step(dir); g.Is(q, Road); q = q.Step(dir) {
			n++
		}
	}
	return n
}
