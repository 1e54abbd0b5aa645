package track

// AddLine returns a copy of the grid with one Gravel row (Up, Down) or
// column (Left, Right) inserted at that edge. The receiver is returned
// unchanged when the grid would grow past MaxSize.
func (g *Grid) AddLine(d Direction) *Grid {
	w, h := g.W, g.H
	var offset Position
	switch d {
	case Up:
		h++
		offset = P(0, 1)
	case Down:
		h++
	case Left:
		w++
		offset = P(1, 0)
	case Right:
		w++
	default:
		return g
	}
	if w > MaxSize || h > MaxSize {
		return g
	}

	out := NewGrid(w, h)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := P(x, y)
			out.Cells[out.index(p.Add(offset))] = g.Cells[g.index(p)]
		}
	}
	return out
}

// RemoveLine returns a copy of the grid without its outermost row or column
// on edge d. The receiver is returned unchanged when the grid would shrink
// below MinSize.
func (g *Grid) RemoveLine(d Direction) *Grid {
	w, h := g.W, g.H
	var offset Position
	switch d {
	case Up:
		h--
		offset = P(0, 1)
	case Down:
		h--
	case Left:
		w--
		offset = P(1, 0)
	case Right:
		w--
	default:
		return g
	}
	if w < MinSize || h < MinSize {
		return g
	}

	out := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := P(x, y)
			out.Cells[out.index(p)] = g.Cells[g.index(p.Add(offset))]
		}
	}
	return out
}
