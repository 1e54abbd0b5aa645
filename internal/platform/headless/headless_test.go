package headless

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

var loop = []string{
	"0000000000",
	"0111111000",
	"0100001000",
	"0121111000",
	"0000000000",
}

func loopGame(n race.Notifier) *race.GameState {
	opts := []race.Option{race.WithGrid(track.MustParseRows(loop...), track.Right)}
	if n != nil {
		opts = append(opts, race.WithNotifier(n))
	}
	return race.New(opts...)
}

func TestSimulateFinishes(t *testing.T) {
	var snapshots int
	r := Runner{MaxMoves: 200, OnMove: func(race.Snapshot) { snapshots++ }}

	res, err := r.Simulate(context.Background(), loopGame(nil), [race.MaxPlayers]race.Seat{{Active: true, Name: "bot"}})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if !res.Won || len(res.Winners) != 1 || res.Winners[0] != 0 {
		t.Errorf("Simulate() = %+v", res)
	}
	if res.Players[0].Lap != race.LapsToWin || !res.Players[0].Automated {
		t.Errorf("player 0 = %+v", res.Players[0])
	}
	if snapshots != res.Moves {
		t.Errorf("OnMove called %d times for %d moves of a single seat", snapshots, res.Moves)
	}
}

func TestRunStops(t *testing.T) {
	tests := []struct {
		name    string
		seats   [race.MaxPlayers]race.Seat
		runner  Runner
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "human to move",
			seats:   [race.MaxPlayers]race.Seat{{Active: true, Automated: true}, {Active: true}},
			ctx:     context.Background,
			wantErr: ErrHumanSeat,
		},
		{
			name:    "move limit",
			seats:   [race.MaxPlayers]race.Seat{{Active: true, Automated: true}},
			runner:  Runner{MaxMoves: 2},
			ctx:     context.Background,
			wantErr: ErrMoveLimit,
		},
		{
			name:  "cancelled",
			seats: [race.MaxPlayers]race.Seat{{Active: true, Automated: true}},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := loopGame(nil)
			if err := g.StartPreparation(tc.seats); err != nil && g.Mode() != race.Preparation {
				t.Fatalf("StartPreparation() error = %v", err)
			}
			if g.Mode() == race.Preparation {
				// Place the human behind the automated seat.
				if err := g.ChooseStart(track.P(3, 3)); err != nil {
					t.Fatalf("ChooseStart() error = %v", err)
				}
			}
			_, err := tc.runner.Run(tc.ctx(), g)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunRequiresRace(t *testing.T) {
	_, err := Runner{}.Run(context.Background(), loopGame(nil))
	if !errors.Is(err, race.ErrWrongMode) {
		t.Errorf("Run() in Menu error = %v, want ErrWrongMode", err)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	r := Runner{MaxMoves: 200}
	if _, err := r.Simulate(context.Background(), loopGame(LogNotifier{Logger: logger}), [race.MaxPlayers]race.Seat{{Active: true}}); err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"game initialized", "player moved", "race won"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output is missing %q", want)
		}
	}
}

func TestRender(t *testing.T) {
	g := loopGame(nil)
	if err := g.StartPreparation([race.MaxPlayers]race.Seat{{Active: true, Name: "Ann"}}); err != nil {
		t.Fatal(err)
	}
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(Render(g.Snapshot()), "\n")
	if len(lines) != len(loop)+4 {
		t.Fatalf("Render() has %d lines, want %d", len(lines), len(loop)+4)
	}
	if got := strings.TrimRight(lines[4], " "); got != "│#.=1...###│" {
		t.Errorf("row 3 = %q", got)
	}
	if !strings.HasPrefix(lines[0], "┌──────────┐") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "1 Ann (human) lap 0/2") {
		t.Errorf("status = %q", lines[len(lines)-1])
	}
	if Render(race.Snapshot{}) != "" {
		t.Error("Render() without a grid is not empty")
	}
}
