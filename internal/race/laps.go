package race

import "github.com/vovakirdan/tui-racetrack/internal/track"

// DetectCrossing returns the lap count after a move along route.
//
// path is the mover's recorded path including the cell the move ended on.
// When the route passes a Start cell before its last cell, the first Road
// cell after it is compared with the last Road cell the player held before
// this move. Crossing the line in dir adds a lap; coming back over it from
// the far side takes one away, never below zero.
func DetectCrossing(g *track.Grid, dir track.Direction, path, route []track.Position, lap int) int {
	for i := 0; i < len(route)-1; i++ {
		if !g.Is(route[i], track.Start) {
			continue
		}
		line := route[i]
		for i < len(route)-1 && !g.Is(route[i], track.Road) {
			i++
		}
		if !g.Is(route[i], track.Road) {
			return lap
		}
		return applyCrossing(dir, line, roadBefore(g, path, route), route[i], lap)
	}
	return lap
}

// roadBefore scans the recorded path backward, skipping the newest entry,
// for the last Road cell.
func roadBefore(g *track.Grid, path, route []track.Position) track.Position {
	for i := len(path) - 2; i >= 0; i-- {
		if g.Is(path[i], track.Road) {
			return path[i]
		}
	}
	return route[0]
}

func applyCrossing(dir track.Direction, line, before, after track.Position, lap int) int {
	var from, to, at int
	if dir.Vertical() {
		from, to, at = before.Y, after.Y, line.Y
	} else {
		from, to, at = before.X, after.X, line.X
	}
	// Normalize so that forward travel always increases the coordinate.
	if dir == track.Up || dir == track.Left {
		from, to, at = -from, -to, -at
	}

	switch {
	case from < at && to > at:
		return lap + 1
	case from > at && to < at:
		if lap > 0 {
			return lap - 1
		}
		return 0
	default:
		return lap
	}
}

// Winners returns the seats that won a finished race. Every active seat
// with LapsToWin laps is scored by how far its last move carried it past the
// starting line; the highest score wins and ties share the win.
func Winners(g *track.Grid, players [MaxPlayers]Player, paths [MaxPlayers][]track.Position) []int {
	best := -1
	var winners []int
	for seat, p := range players {
		if !p.Active || p.Lap < LapsToWin {
			continue
		}
		score := overshoot(g, paths[seat])
		switch {
		case score > best:
			best = score
			winners = []int{seat}
		case score == best:
			winners = append(winners, seat)
		}
	}
	return winners
}

// overshoot measures the distance from the Start cell crossed on the last
// segment of path to the final cell.
func overshoot(g *track.Grid, path []track.Position) int {
	if len(path) < 2 {
		return 0
	}
	last := path[len(path)-1]
	best := 0
	for _, p := range Rasterize(path[len(path)-2], last) {
		if g.Is(p, track.Start) {
			if d := len(Rasterize(p, last)); d > best {
				best = d
			}
		}
	}
	return best
}
