// Package track implements the racetrack grid: terrain storage, neighbor
// queries, structural edits, the starting line and the playability checks.
package track

import "fmt"

// Terrain is the surface of one grid cell.
type Terrain int

const (
	Gravel Terrain = iota
	Road
	Start
	HighlightedGravel // presentation hint only
	HighlightedRoad   // presentation hint only
)

// Base strips presentation-only highlighting.
func (t Terrain) Base() Terrain {
	switch t {
	case HighlightedGravel:
		return Gravel
	case HighlightedRoad:
		return Road
	default:
		return t
	}
}

// Highlighted returns the highlighted variant used when a cell is shown as
// a move candidate. Start cells have no highlighted form.
func (t Terrain) Highlighted() Terrain {
	switch t {
	case Gravel:
		return HighlightedGravel
	case Road:
		return HighlightedRoad
	default:
		return t
	}
}

// Drivable reports whether a car may pass over the terrain.
func (t Terrain) Drivable() bool {
	b := t.Base()
	return b == Road || b == Start
}

// Valid reports whether t is one of the persisted terrain values.
func (t Terrain) Valid() bool {
	return t >= Gravel && t <= Start
}

// String returns the name of the terrain.
func (t Terrain) String() string {
	switch t {
	case Gravel:
		return "Gravel"
	case Road:
		return "Road"
	case Start:
		return "Start"
	case HighlightedGravel:
		return "HighlightedGravel"
	case HighlightedRoad:
		return "HighlightedRoad"
	default:
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
}
