// Package race is the rules engine: move rasterization, crash resolution,
// lap counting, the automated driver and the turn sequencer that ties them
// together. It has no presentation or persistence dependencies.
package race

import "github.com/vovakirdan/tui-racetrack/internal/track"

// MaxPlayers is the fixed number of seats.
const MaxPlayers = 4

// LapsToWin is the lap count that ends the race.
const LapsToWin = 2

// Player is one seat in the race.
type Player struct {
	Active    bool
	Automated bool
	Name      string
	Last      track.Position
	Current   track.Position
	Lap       int
}

// Velocity is the displacement of the player's last move.
func (p Player) Velocity() track.Position {
	return p.Current.Sub(p.Last)
}

// Seat configures one seat when a race is set up.
type Seat struct {
	Active    bool
	Automated bool
	Name      string
}

// Mode is the phase of the game.
type Mode int

const (
	Menu Mode = iota
	Editor
	Preparation
	Race
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Menu:
		return "Menu"
	case Editor:
		return "Editor"
	case Preparation:
		return "Preparation"
	case Race:
		return "Race"
	default:
		return "Unknown"
	}
}
