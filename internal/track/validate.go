package track

import "github.com/vovakirdan/tui-racetrack/internal/core"

// ValidateImport checks a raw imported track (rows[y][x]) for shape and
// content before it is turned into a Grid.
func ValidateImport(rows [][]int) error {
	if len(rows) < MinSize || len(rows) > MaxSize {
		return core.Errorf(core.WrongBoardSize, "track has %d rows, expected %d..%d", len(rows), MinSize, MaxSize)
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) < MinSize || len(row) > MaxSize {
			return core.Errorf(core.WrongBoardSize, "row %d has %d cells, expected %d..%d", y, len(row), MinSize, MaxSize)
		}
		if len(row) != width {
			return core.Errorf(core.WrongBoardSize, "row %d has %d cells, first row has %d", y, len(row), width)
		}
	}

	for y, row := range rows {
		for x, v := range row {
			if !Terrain(v).Valid() {
				return core.Errorf(core.WrongBoardContents, "cell (%d,%d) has value %d", x, y, v)
			}
		}
	}
	return nil
}

// GridFromImport converts validated import rows into a Grid.
func GridFromImport(rows [][]int) (*Grid, error) {
	if err := ValidateImport(rows); err != nil {
		return nil, err
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			g.Cells[g.index(P(x, y))] = Terrain(v)
		}
	}
	return g, nil
}

// ValidateRace checks that a race can be held on g: a complete starting
// line exists and the road forms a loop that leaves the line on one side
// and comes back to it from the other.
func ValidateRace(g *Grid) error {
	line, err := FindStartLine(g)
	if err != nil {
		return err
	}
	if !hasRoundCourse(g, line) {
		return core.Errorf(core.NoRoundCourse, "no closed loop back to the starting line")
	}
	return nil
}

// hasRoundCourse walks the road from the departure side of the line with an
// explicit stack. Start cells are never entered, so reaching a cell whose
// departure-side neighbor is Start means the walk came around to the far side.
func hasRoundCourse(g *Grid, line StartLine) bool {
	depart := line.Departure()
	visited := make([]bool, len(g.Cells))
	var stack []Position

	push := func(p Position) {
		if g.Is(p, Road) && !visited[g.index(p)] {
			visited[g.index(p)] = true
			stack = append(stack, p)
		}
	}

	for _, c := range line.Cells {
		push(c.Step(depart))
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if g.Is(cur.Step(depart), Start) {
			return true
		}
		for _, d := range Directions {
			push(cur.Step(d))
		}
	}
	return false
}
