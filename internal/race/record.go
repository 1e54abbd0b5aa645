package race

import (
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Record is the persisted form of a game: the track as rows[y][x] of
// terrain codes, the line direction, the seat to move and all four seats.
type Record struct {
	Track         [][]int        `json:"track" yaml:"track"`
	Direction     int            `json:"direction" yaml:"direction"`
	CurrentPlayer int            `json:"currentPlayer" yaml:"currentPlayer"`
	Players       []PlayerRecord `json:"players" yaml:"players"`
}

// PlayerRecord is one persisted seat. Positions are [x, y].
type PlayerRecord struct {
	Active  bool   `json:"active" yaml:"active"`
	AI      bool   `json:"ai" yaml:"ai"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Last    []int  `json:"last" yaml:"last"`
	Current []int  `json:"current" yaml:"current"`
	Lap     int    `json:"lap" yaml:"lap"`
}

// TrackRecord wraps a bare track in a Record with every seat empty.
func TrackRecord(g *track.Grid, dir track.Direction) Record {
	rec := Record{Track: g.Rows(), Direction: int(dir)}
	for i := 0; i < MaxPlayers; i++ {
		rec.Players = append(rec.Players, PlayerRecord{Last: []int{0, 0}, Current: []int{0, 0}})
	}
	return rec
}

// decodedRecord is a Record that passed validation.
type decodedRecord struct {
	grid      *track.Grid
	direction track.Direction
	current   int
	players   [MaxPlayers]Player
}

// decode validates rec in a fixed order: board size, board contents,
// direction and current player, then the seats.
func (rec Record) decode() (decodedRecord, error) {
	var out decodedRecord

	g, err := track.GridFromImport(rec.Track)
	if err != nil {
		return out, err
	}
	out.grid = g

	dir := track.Direction(rec.Direction)
	if !dir.Valid() || rec.CurrentPlayer < 0 || rec.CurrentPlayer >= MaxPlayers {
		return out, core.Errorf(core.WrongCurrentPlayerOrDirection, "direction %d, current player %d", rec.Direction, rec.CurrentPlayer)
	}
	out.direction = dir
	out.current = rec.CurrentPlayer

	if len(rec.Players) != MaxPlayers {
		return out, core.Errorf(core.InvalidPlayerData, "%d players, expected %d", len(rec.Players), MaxPlayers)
	}
	for i, pr := range rec.Players {
		if pr.Lap < 0 || pr.Lap > LapsToWin {
			return out, core.Errorf(core.InvalidPlayerData, "player %d has lap %d", i, pr.Lap)
		}
		if len(pr.Last) != 2 || len(pr.Current) != 2 {
			return out, core.Errorf(core.InvalidPlayerData, "player %d positions must be [x, y]", i)
		}
		p := Player{
			Active:    pr.Active,
			Automated: pr.AI,
			Name:      pr.Name,
			Last:      track.P(pr.Last[0], pr.Last[1]),
			Current:   track.P(pr.Current[0], pr.Current[1]),
			Lap:       pr.Lap,
		}
		if p.Active && (!g.InBounds(p.Last) || !g.InBounds(p.Current)) {
			return out, core.Errorf(core.InvalidPlayerData, "player %d is off the track", i)
		}
		out.players[i] = p
	}

	for i := 0; i < MaxPlayers; i++ {
		for j := i + 1; j < MaxPlayers; j++ {
			a, b := out.players[i], out.players[j]
			if !a.Active || !b.Active {
				continue
			}
			if a.Current == b.Current || a.Last == b.Last {
				return out, core.Errorf(core.InvalidPlayerData, "players %d and %d share a position", i, j)
			}
		}
	}
	return out, nil
}

func encodePlayer(p Player) PlayerRecord {
	return PlayerRecord{
		Active:  p.Active,
		AI:      p.Automated,
		Name:    p.Name,
		Last:    []int{p.Last.X, p.Last.Y},
		Current: []int{p.Current.X, p.Current.Y},
		Lap:     p.Lap,
	}
}
