package race

import (
	"math"

	"github.com/vovakirdan/tui-racetrack/internal/track"
)

const unreached = -1

// DistanceField holds, for each road cell, the breadth-first step count
// from the starting line measured around the track.
type DistanceField struct {
	w, h int
	dir  track.Direction
	dist []int
}

// BuildDistanceField floods the road from every Start cell. On the first
// step the neighbor on the dir side of each Start cell is skipped, so the
// flood runs backward around the loop instead of across the line: the cell
// just past the line ends up with the largest value and values fall toward
// the line from behind.
func BuildDistanceField(g *track.Grid, dir track.Direction) *DistanceField {
	f := &DistanceField{w: g.W, h: g.H, dir: dir, dist: make([]int, len(g.Cells))}
	for i := range f.dist {
		f.dist[i] = unreached
	}

	queue := g.Positions(track.Start)
	for _, s := range queue {
		f.dist[f.index(s)] = 0
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		onLine := g.Is(cur, track.Start)
		for _, d := range track.Directions {
			if onLine && d == dir {
				continue
			}
			n := cur.Step(d)
			if !g.Is(n, track.Road) || f.dist[f.index(n)] != unreached {
				continue
			}
			f.dist[f.index(n)] = f.dist[f.index(cur)] + 1
			queue = append(queue, n)
		}
	}
	return f
}

func (f *DistanceField) index(p track.Position) int {
	return p.Y*f.w + p.X
}

// At returns the distance at p and whether the flood reached it.
func (f *DistanceField) At(p track.Position) (int, bool) {
	if p.X < 0 || p.X >= f.w || p.Y < 0 || p.Y >= f.h {
		return 0, false
	}
	d := f.dist[f.index(p)]
	return d, d != unreached
}

// ChooseAutomatedMove picks the target of an automated player.
//
// Candidates off the grid, on Gravel or outside the field are ignored, as
// are Start cells that would be entered against the line direction.
// Normally the lowest distance wins, which drives the car toward the line.
// If the path to any remaining candidate runs over a Start cell before its
// end, the next leg has begun and the highest distance wins instead. The
// current cell is the incumbent, so the car holds position when nothing is
// strictly better. Ties keep the first candidate in row-major order.
func ChooseAutomatedMove(g *track.Grid, f *DistanceField, p Player) track.Position {
	type scored struct {
		pos  track.Position
		dist int
	}
	var eligible []scored
	fresh := false
	for _, c := range CandidateMoves(p).List() {
		t, in := g.TerrainAt(c)
		if !in || t == track.Gravel {
			continue
		}
		if t == track.Start && !forward(c.Sub(p.Current), f.dir) {
			continue
		}
		d, ok := f.At(c)
		if !ok {
			continue
		}
		eligible = append(eligible, scored{c, d})
		fresh = fresh || crossesStart(g, Rasterize(p.Current, c))
	}

	best := p.Current
	bestDist, ok := f.At(p.Current)
	if !ok {
		bestDist = math.MaxInt
		if fresh {
			bestDist = -1
		}
	}

	for _, c := range eligible {
		if (fresh && c.dist > bestDist) || (!fresh && c.dist < bestDist) {
			best, bestDist = c.pos, c.dist
		}
	}
	return best
}

// forward reports whether a move with displacement v has a positive
// component along dir.
func forward(v track.Position, dir track.Direction) bool {
	d := dir.Delta()
	return v.X*d.X+v.Y*d.Y > 0
}

// crossesStart reports whether a Start cell appears on route before its last cell.
func crossesStart(g *track.Grid, route []track.Position) bool {
	for i := 0; i < len(route)-1; i++ {
		if g.Is(route[i], track.Start) {
			return true
		}
	}
	return false
}

// FreeStartPosition finds a starting cell for an automated player: the cell
// behind each Start cell (against dir) in order, then the nearest legal cell
// found by a breadth-first search outward from those cells. Start cells are
// never searched through.
func FreeStartPosition(g *track.Grid, dir track.Direction, legal Legality) (track.Position, bool) {
	starts := g.Positions(track.Start)
	behind := dir.Opposite()

	visited := make([]bool, len(g.Cells))
	mark := func(p track.Position) { visited[p.Y*g.W+p.X] = true }
	seen := func(p track.Position) bool { return visited[p.Y*g.W+p.X] }

	for _, s := range starts {
		mark(s)
	}

	var queue []track.Position
	for _, s := range starts {
		n, ok := g.Neighbor(s, behind)
		if !ok || seen(n) {
			continue
		}
		if legal(n) {
			return n, true
		}
		mark(n)
		queue = append(queue, n)
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if legal(cur) {
			return cur, true
		}
		for _, d := range track.Directions {
			n, ok := g.Neighbor(cur, d)
			if !ok || seen(n) {
				continue
			}
			mark(n)
			queue = append(queue, n)
		}
	}
	return track.Position{}, false
}
