package race

import "github.com/vovakirdan/tui-racetrack/internal/track"

// RouteResult is where a move actually ends.
type RouteResult struct {
	Crashed bool
	Final   track.Position
}

// Legality reports whether a cell may be occupied under the current game mode.
type Legality func(track.Position) bool

// ResolveRoute walks a rasterized route and finds where the car stops.
//
// The car crashes on the first cell that is off the grid or Gravel, and,
// for automated drivers only, on the first cell that fails legal. It then
// backs up over the cells it already passed until one satisfies legal.
//
// A route longer than two cells also crashes when it touches column 0 or
// row 0. The touching cell is kept when it is legal; otherwise the car backs
// up from it the same way.
func ResolveRoute(g *track.Grid, route []track.Position, target track.Position, automated bool, legal Legality) RouteResult {
	for i, p := range route {
		t, ok := g.TerrainAt(p)
		if !ok || t.Base() == track.Gravel || (automated && !legal(p)) {
			return RouteResult{Crashed: true, Final: backUp(route, i-1, legal)}
		}
		if (p.X == 0 || p.Y == 0) && len(route) > 2 {
			return RouteResult{Crashed: true, Final: backUp(route, i, legal)}
		}
	}
	return RouteResult{Final: target}
}

// backUp returns the last legal cell at or before index i. The first cell
// of a route is where the car stands, so it is the floor.
func backUp(route []track.Position, i int, legal Legality) track.Position {
	if i < 0 {
		return route[0]
	}
	for i > 0 && !legal(route[i]) {
		i--
	}
	return route[i]
}
