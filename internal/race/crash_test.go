package race

import (
	"testing"

	"github.com/vovakirdan/tui-racetrack/internal/track"
)

var loopRows = []string{
	"0000000000",
	"0111111000",
	"0100001000",
	"0121111000",
	"0000000000",
}

// blockedBy returns a legality check that only rejects cells held by cars.
func blockedBy(g *track.Grid, cars ...track.Position) Legality {
	return func(p track.Position) bool {
		if !g.InBounds(p) {
			return false
		}
		for _, c := range cars {
			if c == p {
				return false
			}
		}
		return true
	}
}

func TestResolveRoute(t *testing.T) {
	longRoute := []string{
		"0000000000",
		"0111111000",
		"0110001100",
		"0111001100",
		"0110000100",
		"0110000100",
		"0012000100",
		"0002010100",
		"0002110100",
		"0000011100",
	}

	tests := []struct {
		name      string
		rows      []string
		cars      []track.Position
		from, to  track.Position
		target    track.Position
		automated bool
		wantCrash bool
		wantFinal track.Position
	}{
		{
			name: "long straight route",
			rows: longRoute,
			from: track.P(2, 6), to: track.P(2, 1), target: track.P(2, 1),
			wantFinal: track.P(2, 1),
		},
		{
			name: "long route over start cells",
			rows: longRoute,
			from: track.P(3, 8), to: track.P(2, 5), target: track.P(2, 5),
			wantFinal: track.P(2, 5),
		},
		{
			name: "human passes through a car",
			rows: []string{"0000000000", "0111111000", "0100001000", "0112111000", "0000000000"},
			cars: []track.Position{track.P(5, 3)},
			from: track.P(3, 3), to: track.P(6, 3), target: track.P(6, 3),
			wantFinal: track.P(6, 3),
		},
		{
			name: "automated driver hits a car",
			rows: []string{"0000000000", "0111111000", "0100001000", "0112111000", "0000000000"},
			cars: []track.Position{track.P(5, 3)},
			from: track.P(3, 3), to: track.P(6, 3), target: track.P(6, 3),
			automated: true,
			wantCrash: true, wantFinal: track.P(4, 3),
		},
		{
			name: "backs up past a car",
			rows: []string{"0111111000", "0000001000", "0000001000", "0100001000", "0112111000", "0112111000"},
			cars: []track.Position{track.P(6, 2)},
			from: track.P(6, 3), to: track.P(5, 1), target: track.P(6, 2),
			wantCrash: true, wantFinal: track.P(6, 3),
		},
		{
			name: "backs up onto start",
			rows: []string{"0111111000", "0000001000", "0000001000", "0100002000", "0111111000", "0111111000"},
			from: track.P(6, 3), to: track.P(5, 1), target: track.P(6, 2),
			wantCrash: true, wantFinal: track.P(6, 2),
		},
		{
			name: "gravel in the way",
			rows: loopRows,
			from: track.P(4, 1), to: track.P(4, 3), target: track.P(4, 3),
			wantCrash: true, wantFinal: track.P(4, 1),
		},
		{
			name: "off the grid",
			rows: []string{"1111111111", "1111111111", "1111111111", "1111111111", "1111111111"},
			from: track.P(7, 2), to: track.P(11, 2), target: track.P(11, 2),
			wantCrash: true, wantFinal: track.P(9, 2),
		},
		{
			name: "long route along the edge",
			rows: []string{"1111111111", "1111111111", "1111111111", "1111111111", "1111111111"},
			from: track.P(1, 2), to: track.P(3, 0), target: track.P(3, 0),
			wantCrash: true, wantFinal: track.P(3, 0),
		},
		{
			name: "edge cell taken by another car",
			rows: []string{"1111111111", "1111111111", "1111111111", "1111111111", "1111111111"},
			cars: []track.Position{track.P(3, 0)},
			from: track.P(1, 2), to: track.P(3, 0), target: track.P(3, 0),
			wantCrash: true, wantFinal: track.P(2, 1),
		},
		{
			name: "edge cell and the one before it taken",
			rows: []string{"1111111111", "1111111111", "1111111111", "1111111111", "1111111111"},
			cars: []track.Position{track.P(3, 0), track.P(2, 1)},
			from: track.P(1, 2), to: track.P(3, 0), target: track.P(3, 0),
			wantCrash: true, wantFinal: track.P(1, 2),
		},
		{
			name: "short hop onto the edge",
			rows: []string{"1111111111", "1111111111", "1111111111", "1111111111", "1111111111"},
			from: track.P(1, 1), to: track.P(1, 0), target: track.P(1, 0),
			wantFinal: track.P(1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := track.MustParseRows(tt.rows...)
			route := Rasterize(tt.from, tt.to)
			got := ResolveRoute(g, route, tt.target, tt.automated, blockedBy(g, tt.cars...))
			if got.Crashed != tt.wantCrash {
				t.Errorf("Crashed = %v, want %v (route %v)", got.Crashed, tt.wantCrash, route)
			}
			if got.Final != tt.wantFinal {
				t.Errorf("Final = %v, want %v (route %v)", got.Final, tt.wantFinal, route)
			}
		})
	}
}
