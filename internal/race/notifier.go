package race

import (
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Snapshot is a copy of the whole observable game state.
type Snapshot struct {
	Mode      Mode
	Grid      *track.Grid
	Direction track.Direction
	Players   [MaxPlayers]Player
	Current   int
	Moves     int
	Won       bool
	Winners   []int
}

// MoveEvent describes one resolved move or a starting placement.
type MoveEvent struct {
	Seat      int
	From      track.Position
	To        track.Position
	Route     []track.Position // cells actually driven, From through To
	Crashed   bool
	Automated bool
	Lap       int
}

// Notifier receives state changes from a GameState. Calls are made
// synchronously from the goroutine driving the game.
type Notifier interface {
	GameInitialized(s Snapshot)
	CellChanged(p track.Position, t track.Terrain)
	PlayerMoved(ev MoveEvent)
	CandidatesShown(seat int, c Candidates, legal [3][3]bool)
	Notice(err *core.Error)
	RaceWon(winners []int, moves int)
}

// NopNotifier ignores every event. Embed it to implement only some methods.
type NopNotifier struct{}

func (NopNotifier) GameInitialized(Snapshot)                    {}
func (NopNotifier) CellChanged(track.Position, track.Terrain)   {}
func (NopNotifier) PlayerMoved(MoveEvent)                       {}
func (NopNotifier) CandidatesShown(int, Candidates, [3][3]bool) {}
func (NopNotifier) Notice(*core.Error)                          {}
func (NopNotifier) RaceWon([]int, int)                          {}

// Notifiers fans every event out to each member in order.
type Notifiers []Notifier

func (ns Notifiers) GameInitialized(s Snapshot) {
	for _, n := range ns {
		n.GameInitialized(s)
	}
}

func (ns Notifiers) CellChanged(p track.Position, t track.Terrain) {
	for _, n := range ns {
		n.CellChanged(p, t)
	}
}

func (ns Notifiers) PlayerMoved(ev MoveEvent) {
	for _, n := range ns {
		n.PlayerMoved(ev)
	}
}

func (ns Notifiers) CandidatesShown(seat int, c Candidates, legal [3][3]bool) {
	for _, n := range ns {
		n.CandidatesShown(seat, c, legal)
	}
}

func (ns Notifiers) Notice(err *core.Error) {
	for _, n := range ns {
		n.Notice(err)
	}
}

func (ns Notifiers) RaceWon(winners []int, moves int) {
	for _, n := range ns {
		n.RaceWon(winners, moves)
	}
}
