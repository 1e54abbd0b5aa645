package race

import (
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// StartPreparation checks the track, seats the players and places every
// automated seat that comes before the first human one. Humans then pick
// their cells with ChooseStart. When every seat is placed the race begins.
func (s *GameState) StartPreparation(seats [MaxPlayers]Seat) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Menu {
		return s.wrongMode("prepare")
	}
	if err := track.ValidateRace(s.grid); err != nil {
		return s.fail(err)
	}

	var players [MaxPlayers]Player
	active := false
	for i, seat := range seats {
		players[i] = Player{Active: seat.Active, Automated: seat.Automated, Name: seat.Name}
		active = active || seat.Active
	}
	if !active {
		return s.fail(core.Errorf(core.NoActivePlayers, "activate at least one seat"))
	}

	s.players = players
	s.clearRace()
	s.mode = Preparation
	s.current = s.firstActive()
	s.notify.GameInitialized(s.Snapshot())
	return s.advancePreparation()
}

// ChooseStart places the human seat to move on p.
func (s *GameState) ChooseStart(p track.Position) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Preparation {
		return s.wrongMode("choose start")
	}
	if s.players[s.current].Automated {
		return ErrSeatAutomated
	}
	if !s.legalForStart(p) {
		return s.reject(core.Errorf(core.ChosenPositionInvalid, "%s is not a free road cell", p))
	}
	s.place(p)
	return s.advancePreparation()
}

// StartCandidates returns the cells the seat to move may start on.
func (s *GameState) StartCandidates() []track.Position {
	var out []track.Position
	for _, p := range s.grid.Positions(track.Road) {
		if s.legalForStart(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *GameState) advancePreparation() error {
	for {
		if s.allPlaced() {
			s.mode = Race
			s.current = s.firstActive()
			s.beginTurn()
			return nil
		}
		if !s.players[s.current].Automated {
			return nil
		}
		p, ok := FreeStartPosition(s.grid, s.direction, s.legalForStart)
		if !ok {
			s.resetSeats()
			s.clearRace()
			s.mode = Menu
			return s.reject(core.Errorf(core.NoAvailableFields, "no free cell for %s", s.seatName(s.current)))
		}
		s.place(p)
	}
}

func (s *GameState) place(p track.Position) {
	seat := s.current
	pl := &s.players[seat]
	pl.Last, pl.Current = p, p
	s.placed[seat] = true
	s.paths[seat] = []track.Position{p}
	s.notify.PlayerMoved(MoveEvent{
		Seat:      seat,
		From:      p,
		To:        p,
		Route:     []track.Position{p},
		Automated: pl.Automated,
	})
	s.current = s.nextActive(seat)
}

func (s *GameState) allPlaced() bool {
	for i, p := range s.players {
		if p.Active && !s.placed[i] {
			return false
		}
	}
	return true
}

// LegalCandidates marks which of the current candidates the seat to move
// may target.
func (s *GameState) LegalCandidates() [3][3]bool {
	var legal [3][3]bool
	for row := range s.candidates {
		for col, p := range s.candidates[row] {
			legal[row][col] = s.legalInRace(p)
		}
	}
	return legal
}

// Move drives the human seat to move toward target. When no candidate is
// legal a NoAvailableFields notice is sent and the car holds its velocity.
func (s *GameState) Move(target track.Position) (RouteResult, error) {
	if err := s.movable(); err != nil {
		return RouteResult{}, err
	}
	if s.players[s.current].Automated {
		return RouteResult{}, ErrSeatAutomated
	}

	legal := s.LegalCandidates()
	if !anyLegal(legal) {
		s.notify.Notice(core.Errorf(core.NoAvailableFields, "%s has no legal move", s.seatName(s.current)))
		return s.resolve(s.candidates.Center(), false), nil
	}
	if !s.isLegalCandidate(target, legal) {
		return RouteResult{}, s.reject(core.Errorf(core.ChosenPositionInvalid, "%s is not a legal target", target))
	}
	return s.resolve(target, false), nil
}

// MoveAutomated lets the engine drive the automated seat to move.
func (s *GameState) MoveAutomated() (RouteResult, error) {
	if err := s.movable(); err != nil {
		return RouteResult{}, err
	}
	seat := s.current
	p := s.players[seat]
	if !p.Automated {
		return RouteResult{}, ErrSeatHuman
	}
	if s.field == nil || s.fieldLap[seat] != p.Lap {
		s.field = BuildDistanceField(s.grid, s.direction)
		s.fieldLap[seat] = p.Lap
	}
	return s.resolve(ChooseAutomatedMove(s.grid, s.field, p), true), nil
}

func (s *GameState) movable() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Race || s.replaying {
		return s.wrongMode("move")
	}
	if s.won {
		return ErrRaceOver
	}
	return nil
}

func (s *GameState) isLegalCandidate(target track.Position, legal [3][3]bool) bool {
	for row := range s.candidates {
		for col, p := range s.candidates[row] {
			if p == target && legal[row][col] {
				return true
			}
		}
	}
	return false
}

func anyLegal(legal [3][3]bool) bool {
	for _, row := range legal {
		for _, ok := range row {
			if ok {
				return true
			}
		}
	}
	return false
}

// resolve applies one move of the seat to move, counts laps, closes the
// round after the last active seat and hands the turn on.
func (s *GameState) resolve(target track.Position, automated bool) RouteResult {
	seat := s.current
	p := &s.players[seat]
	from := p.Current

	route := Rasterize(from, target)
	res := ResolveRoute(s.grid, route, target, automated, s.legalInRace)
	driven := drivenPrefix(route, res)

	p.Last, p.Current = from, res.Final
	s.paths[seat] = append(s.paths[seat], res.Final)
	p.Lap = min(DetectCrossing(s.grid, s.direction, s.paths[seat], driven, p.Lap), LapsToWin)

	s.notify.PlayerMoved(MoveEvent{
		Seat:      seat,
		From:      from,
		To:        res.Final,
		Route:     driven,
		Crashed:   res.Crashed,
		Automated: automated,
		Lap:       p.Lap,
	})

	if seat == s.lastActive() {
		s.moves++
		if s.anyFinished() {
			s.won = true
			s.winners = Winners(s.grid, s.players, s.paths)
			s.notify.RaceWon(s.Winners(), s.moves)
			return res
		}
	}
	s.current = s.nextActive(seat)
	s.beginTurn()
	return res
}

// drivenPrefix cuts route at the cell the move ended on.
func drivenPrefix(route []track.Position, res RouteResult) []track.Position {
	if !res.Crashed {
		return route
	}
	for i, p := range route {
		if p == res.Final {
			return route[:i+1]
		}
	}
	return route[:1]
}

func (s *GameState) anyFinished() bool {
	for _, p := range s.players {
		if p.Active && p.Lap >= LapsToWin {
			return true
		}
	}
	return false
}

// beginTurn computes the candidates of the seat to move and shows them to
// a human driver.
func (s *GameState) beginTurn() {
	p := s.players[s.current]
	s.candidates = CandidateMoves(p)
	if p.Automated {
		return
	}
	s.notify.CandidatesShown(s.current, s.candidates, s.LegalCandidates())
}

func (s *GameState) seatName(seat int) string {
	if n := s.players[seat].Name; n != "" {
		return n
	}
	return "player " + string(rune('1'+seat))
}
