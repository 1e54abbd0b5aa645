package storage

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-racetrack/internal/race"
)

// ResultFromRace builds the stored form of a finished race. Inactive seats
// are left out.
func ResultFromRace(trackID string, players [race.MaxPlayers]race.Player, winners []int, moves int) RaceResult {
	r := RaceResult{Track: trackID, Moves: moves}
	for i, p := range players {
		if !p.Active {
			continue
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		r.Seats = append(r.Seats, SeatResult{
			Seat:      i,
			Name:      name,
			Automated: p.Automated,
			Lap:       p.Lap,
			Winner:    slices.Contains(winners, i),
		})
	}
	return r
}
