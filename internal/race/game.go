package race

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

var (
	ErrWrongMode     = errors.New("race: not allowed in this mode")
	ErrSeatAutomated = errors.New("race: seat to move is automated")
	ErrSeatHuman     = errors.New("race: seat to move is not automated")
	ErrRaceOver      = errors.New("race: race is over")
	ErrNotWon        = errors.New("race: no finished race to replay")
)

// GameState is the turn sequencer. It owns the grid, the seats and the
// current mode, validates every request against them and reports changes
// to its Notifier. It is not safe for concurrent use; one goroutine drives
// a game.
type GameState struct {
	grid      *track.Grid
	direction track.Direction
	mode      Mode

	players [MaxPlayers]Player
	placed  [MaxPlayers]bool
	paths   [MaxPlayers][]track.Position
	current int

	candidates Candidates
	moves      int
	won        bool
	winners    []int

	busy      bool
	replaying bool

	field    *DistanceField
	fieldLap [MaxPlayers]int

	notify Notifier
}

// Option configures a GameState.
type Option func(*GameState)

// WithNotifier sets the receiver of game events.
func WithNotifier(n Notifier) Option {
	return func(s *GameState) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithGrid starts the game on a copy of g with the given line direction.
func WithGrid(g *track.Grid, dir track.Direction) Option {
	return func(s *GameState) {
		s.grid = g.Clone()
		s.direction = dir
	}
}

// New returns a game in Menu mode on an empty gravel grid.
func New(opts ...Option) *GameState {
	s := &GameState{
		grid:      track.NewGrid(track.MinSize, track.MinSize),
		direction: track.Right,
		notify:    NopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetFieldCache()
	return s
}

func (s *GameState) Mode() Mode                  { return s.mode }
func (s *GameState) Direction() track.Direction  { return s.direction }
func (s *GameState) Current() int                { return s.current }
func (s *GameState) Players() [MaxPlayers]Player { return s.players }
func (s *GameState) Moves() int                  { return s.moves }
func (s *GameState) Won() bool                   { return s.won }
func (s *GameState) Busy() bool                  { return s.busy }
func (s *GameState) Replaying() bool             { return s.replaying }
func (s *GameState) Candidates() Candidates      { return s.candidates }

// Grid returns a copy of the track.
func (s *GameState) Grid() *track.Grid { return s.grid.Clone() }

// Winners returns the winning seats of a finished race.
func (s *GameState) Winners() []int {
	return append([]int(nil), s.winners...)
}

// Path returns the cells a seat has stood on since the race began.
func (s *GameState) Path(seat int) []track.Position {
	if seat < 0 || seat >= MaxPlayers {
		return nil
	}
	return append([]track.Position(nil), s.paths[seat]...)
}

// CurrentAutomated reports whether the seat to move is driven by the engine.
func (s *GameState) CurrentAutomated() bool {
	return s.players[s.current].Automated
}

// SetBusy marks an animation in progress. While busy every state-changing
// request is rejected with GameInAnimation.
func (s *GameState) SetBusy(b bool) { s.busy = b }

// Snapshot copies the observable state.
func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Mode:      s.mode,
		Grid:      s.grid.Clone(),
		Direction: s.direction,
		Players:   s.players,
		Current:   s.current,
		Moves:     s.moves,
		Won:       s.won,
		Winners:   s.Winners(),
	}
}

// Load replaces the whole game with rec. A record that fails validation
// leaves everything but the mode untouched and drops the game to Menu.
// A record with active seats resumes the race at its current player.
func (s *GameState) Load(rec Record) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	d, err := rec.decode()
	if err != nil {
		return s.fail(err)
	}

	s.grid = d.grid
	s.direction = d.direction
	s.players = d.players
	s.current = d.current
	s.clearRace()
	for i, p := range s.players {
		s.placed[i] = p.Active
		if p.Active {
			s.paths[i] = []track.Position{p.Current}
		}
	}

	s.mode = Menu
	if s.anyActive() {
		s.mode = Race
		if !s.players[s.current].Active {
			s.current = s.nextActive(s.current)
		}
	}
	s.notify.GameInitialized(s.Snapshot())
	if s.mode == Race {
		s.beginTurn()
	}
	return nil
}

// Record returns the persisted form of the game.
func (s *GameState) Record() Record {
	rec := Record{
		Track:         s.grid.Rows(),
		Direction:     int(s.direction),
		CurrentPlayer: s.current,
	}
	for _, p := range s.players {
		rec.Players = append(rec.Players, encodePlayer(p))
	}
	return rec
}

// Stop aborts preparation or a race, or leaves a finished one, and returns
// to Menu with every seat reset.
func (s *GameState) Stop() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Preparation && s.mode != Race {
		return s.wrongMode("stop")
	}
	s.resetSeats()
	s.clearRace()
	s.mode = Menu
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

// checkIdle rejects requests during an animation.
func (s *GameState) checkIdle() error {
	if s.busy {
		return s.reject(core.Errorf(core.GameInAnimation, "wait for the animation to finish"))
	}
	return nil
}

// reject reports a notice and returns it without touching state.
func (s *GameState) reject(e *core.Error) error {
	s.notify.Notice(e)
	return e
}

// fail reports err and, for fatal codes, drops the game to Menu.
func (s *GameState) fail(err error) error {
	var e *core.Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Code.Fatal() {
		s.mode = Menu
	}
	s.notify.Notice(e)
	return err
}

func (s *GameState) wrongMode(op string) error {
	return fmt.Errorf("%w: %s in %s", ErrWrongMode, op, s.mode)
}

func (s *GameState) clearRace() {
	s.paths = [MaxPlayers][]track.Position{}
	s.placed = [MaxPlayers]bool{}
	s.candidates = Candidates{}
	s.moves = 0
	s.won = false
	s.winners = nil
	s.replaying = false
	s.resetFieldCache()
}

func (s *GameState) resetSeats() {
	for i := range s.players {
		s.players[i].Lap = 0
		s.players[i].Last = track.Position{}
		s.players[i].Current = track.Position{}
	}
}

func (s *GameState) resetFieldCache() {
	s.field = nil
	for i := range s.fieldLap {
		s.fieldLap[i] = -1
	}
}

func (s *GameState) anyActive() bool {
	for _, p := range s.players {
		if p.Active {
			return true
		}
	}
	return false
}

func (s *GameState) firstActive() int {
	for i, p := range s.players {
		if p.Active {
			return i
		}
	}
	return 0
}

func (s *GameState) lastActive() int {
	for i := MaxPlayers - 1; i >= 0; i-- {
		if s.players[i].Active {
			return i
		}
	}
	return 0
}

// nextActive returns the next active seat after seat, wrapping around.
func (s *GameState) nextActive(seat int) int {
	for i := 1; i <= MaxPlayers; i++ {
		k := (seat + i) % MaxPlayers
		if s.players[k].Active {
			return k
		}
	}
	return seat
}

// occupied reports whether another active, placed seat stands on p.
func (s *GameState) occupied(p track.Position) bool {
	for k, q := range s.players {
		if k == s.current || !q.Active || !s.placed[k] {
			continue
		}
		if q.Current == p {
			return true
		}
	}
	return false
}

// legalForStart is the Preparation rule: a free Road cell.
func (s *GameState) legalForStart(p track.Position) bool {
	return s.grid.Is(p, track.Road) && !s.occupied(p)
}

// legalInRace is the Race rule: on the grid and free.
func (s *GameState) legalInRace(p track.Position) bool {
	return s.grid.InBounds(p) && !s.occupied(p)
}
