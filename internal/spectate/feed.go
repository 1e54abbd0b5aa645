package spectate

import (
	"strings"
	"sync"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Event names sent to spectators.
const (
	EventState  = "state"
	EventCell   = "cell"
	EventMove   = "move"
	EventNotice = "notice"
	EventWon    = "won"
)

// View is the JSON form of a race as spectators see it.
type View struct {
	Race      string       `json:"race"`
	Title     string       `json:"title"`
	Mode      string       `json:"mode"`
	Track     []string     `json:"track"`
	Direction string       `json:"direction"`
	Players   []PlayerView `json:"players"`
	Current   int          `json:"current"`
	Moves     int          `json:"moves"`
	Won       bool         `json:"won"`
	Winners   []int        `json:"winners,omitempty"`
}

// PlayerView is one seat of a View.
type PlayerView struct {
	Seat    int    `json:"seat"`
	Name    string `json:"name,omitempty"`
	Active  bool   `json:"active"`
	AI      bool   `json:"ai"`
	Last    [2]int `json:"last"`
	Current [2]int `json:"current"`
	Lap     int    `json:"lap"`
}

// MoveView is the payload of a move event.
type MoveView struct {
	Seat    int      `json:"seat"`
	Route   [][2]int `json:"route"`
	Crashed bool     `json:"crashed"`
	AI      bool     `json:"ai"`
	Lap     int      `json:"lap"`
}

// CellView is the payload of a cell event.
type CellView struct {
	At      [2]int `json:"at"`
	Terrain int    `json:"terrain"`
}

// NoticeView is the payload of a notice event.
type NoticeView struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// WonView is the payload of a won event.
type WonView struct {
	Winners []int `json:"winners"`
	Moves   int   `json:"moves"`
}

// Feed publishes one race. It implements race.Notifier and is called from
// the goroutine driving the game; View may be called from any goroutine.
type Feed struct {
	id  string
	hub *Hub

	mu   sync.RWMutex
	view View
}

var _ race.Notifier = (*Feed)(nil)

// ID returns the race ID spectators connect with.
func (f *Feed) ID() string { return f.id }

// View returns a copy of the latest state.
func (f *Feed) View() View {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v := f.view
	v.Track = append([]string(nil), v.Track...)
	v.Players = append([]PlayerView(nil), v.Players...)
	v.Winners = append([]int(nil), v.Winners...)
	return v
}

// Sync replaces the cached state with s and broadcasts it. Drivers call it
// after engine steps that change the mode or the turn.
func (f *Feed) Sync(s race.Snapshot) {
	f.mu.Lock()
	f.view = viewOf(f.id, f.view.Title, s)
	v := f.view
	f.mu.Unlock()
	f.hub.Broadcast(f.id, EventState, v)
}

func (f *Feed) GameInitialized(s race.Snapshot) {
	f.Sync(s)
}

func (f *Feed) CellChanged(p track.Position, t track.Terrain) {
	f.mu.Lock()
	if p.Y >= 0 && p.Y < len(f.view.Track) {
		row := []byte(f.view.Track[p.Y])
		if p.X >= 0 && p.X < len(row) {
			row[p.X] = byte('0' + t)
			f.view.Track[p.Y] = string(row)
		}
	}
	f.mu.Unlock()
	f.hub.Broadcast(f.id, EventCell, CellView{At: pair(p), Terrain: int(t)})
}

func (f *Feed) PlayerMoved(ev race.MoveEvent) {
	f.mu.Lock()
	if ev.Seat >= 0 && ev.Seat < len(f.view.Players) {
		pv := &f.view.Players[ev.Seat]
		pv.Last, pv.Current, pv.Lap = pair(ev.From), pair(ev.To), ev.Lap
	}
	f.mu.Unlock()

	route := make([][2]int, len(ev.Route))
	for i, p := range ev.Route {
		route[i] = pair(p)
	}
	f.hub.Broadcast(f.id, EventMove, MoveView{
		Seat:    ev.Seat,
		Route:   route,
		Crashed: ev.Crashed,
		AI:      ev.Automated,
		Lap:     ev.Lap,
	})
}

// CandidatesShown is not forwarded; spectators only see resolved moves.
func (f *Feed) CandidatesShown(int, race.Candidates, [3][3]bool) {}

func (f *Feed) Notice(err *core.Error) {
	f.hub.Broadcast(f.id, EventNotice, NoticeView{Code: err.Code.String(), Message: err.Message})
}

func (f *Feed) RaceWon(winners []int, moves int) {
	f.mu.Lock()
	f.view.Won, f.view.Winners, f.view.Moves = true, append([]int(nil), winners...), moves
	f.mu.Unlock()
	f.hub.Broadcast(f.id, EventWon, WonView{Winners: winners, Moves: moves})
}

func viewOf(id, title string, s race.Snapshot) View {
	v := View{
		Race:      id,
		Title:     title,
		Mode:      s.Mode.String(),
		Direction: s.Direction.String(),
		Current:   s.Current,
		Moves:     s.Moves,
		Won:       s.Won,
		Winners:   append([]int(nil), s.Winners...),
	}
	if s.Grid != nil {
		v.Track = strings.Split(s.Grid.String(), "\n")
	}
	for i, p := range s.Players {
		v.Players = append(v.Players, PlayerView{
			Seat:    i,
			Name:    p.Name,
			Active:  p.Active,
			AI:      p.Automated,
			Last:    pair(p.Last),
			Current: pair(p.Current),
			Lap:     p.Lap,
		})
	}
	return v
}

func pair(p track.Position) [2]int { return [2]int{p.X, p.Y} }
