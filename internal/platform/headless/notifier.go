package headless

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// LogNotifier writes engine events to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

var _ race.Notifier = LogNotifier{}

func (n LogNotifier) GameInitialized(s race.Snapshot) {
	active := 0
	for _, p := range s.Players {
		if p.Active {
			active++
		}
	}
	n.Logger.Info("game initialized", "mode", s.Mode, "direction", s.Direction, "seats", active)
}

func (n LogNotifier) CellChanged(p track.Position, t track.Terrain) {
	n.Logger.Debug("cell changed", "at", p, "terrain", t)
}

func (n LogNotifier) PlayerMoved(ev race.MoveEvent) {
	n.Logger.Info("player moved",
		"seat", ev.Seat+1,
		"from", ev.From,
		"to", ev.To,
		"crashed", ev.Crashed,
		"lap", ev.Lap,
	)
}

func (n LogNotifier) CandidatesShown(seat int, c race.Candidates, _ [3][3]bool) {
	n.Logger.Debug("candidates shown", "seat", seat+1, "center", c.Center())
}

func (n LogNotifier) Notice(err *core.Error) {
	n.Logger.Warn("notice", "code", err.Code, "message", err.Message)
}

func (n LogNotifier) RaceWon(winners []int, moves int) {
	seats := make([]int, len(winners))
	for i, w := range winners {
		seats[i] = w + 1
	}
	n.Logger.Info("race won", "winners", seats, "moves", moves)
}
