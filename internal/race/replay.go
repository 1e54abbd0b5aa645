package race

import "github.com/vovakirdan/tui-racetrack/internal/track"

// StartReplay enters replay of a finished race. Moves are refused until
// StopReplay.
func (s *GameState) StartReplay() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Race || !s.won {
		return ErrNotWon
	}
	s.replaying = true
	return nil
}

// StopReplay leaves replay.
func (s *GameState) StopReplay() {
	s.replaying = false
}

// ReplayFrames returns one frame per recorded step with the cell of every
// seat. Seats whose path is shorter stay on their last cell; inactive seats
// keep the zero position.
func (s *GameState) ReplayFrames() [][MaxPlayers]track.Position {
	longest := 0
	for i, p := range s.players {
		if p.Active && len(s.paths[i]) > longest {
			longest = len(s.paths[i])
		}
	}
	frames := make([][MaxPlayers]track.Position, longest)
	for k := range frames {
		for seat, p := range s.players {
			path := s.paths[seat]
			if !p.Active || len(path) == 0 {
				continue
			}
			frames[k][seat] = path[min(k, len(path)-1)]
		}
	}
	return frames
}
