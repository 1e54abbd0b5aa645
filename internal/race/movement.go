package race

import (
	"math"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Rasterize returns the cells of the straight segment from one cell to
// another, both ends included. It steps one cell at a time along the axis
// with the larger delta and rounds the other coordinate half up.
func Rasterize(from, to track.Position) []track.Position {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if core.Abs(dx) >= core.Abs(dy) {
		route := make([]track.Position, 0, core.Abs(dx)+1)
		step := stepToward(dx)
		slope := 0.0
		if dx != 0 {
			slope = float64(dy) / float64(dx)
		}
		for x := from.X; x != to.X+step; x += step {
			y := from.Y + roundHalfUp(slope*float64(x-from.X))
			route = append(route, track.P(x, y))
		}
		return route
	}

	route := make([]track.Position, 0, core.Abs(dy)+1)
	step := stepToward(dy)
	inverse := 1 / (float64(dy) / float64(dx))
	for y := from.Y; y != to.Y+step; y += step {
		x := from.X + roundHalfUp(inverse*float64(y-from.Y))
		route = append(route, track.P(x, y))
	}
	return route
}

// stepToward returns +1 for a positive delta and -1 otherwise. A zero
// delta still needs a step so the loop in Rasterize emits its single cell.
func stepToward(d int) int {
	if d > 0 {
		return 1
	}
	return -1
}

// roundHalfUp rounds to the nearest integer with .5 going toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Candidates is the 3x3 block of cells a player may target. Row index is
// dy+1 and column index dx+1 relative to the center.
type Candidates [3][3]track.Position

// CandidateMoves returns the cells reachable by keeping the current velocity
// or changing it by one unit along either axis.
func CandidateMoves(p Player) Candidates {
	center := p.Current.Add(p.Velocity())
	var c Candidates
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			c[row][col] = center.Add(track.P(col-1, row-1))
		}
	}
	return c
}

// Center returns the cell reached by holding velocity.
func (c Candidates) Center() track.Position {
	return c[1][1]
}

// Contains reports whether p is one of the nine candidates.
func (c Candidates) Contains(p track.Position) bool {
	for _, row := range c {
		for _, q := range row {
			if q == p {
				return true
			}
		}
	}
	return false
}

// List returns the candidates in row-major order.
func (c Candidates) List() []track.Position {
	out := make([]track.Position, 0, 9)
	for _, row := range c {
		out = append(out, row[:]...)
	}
	return out
}
