// Package headless drives races without a terminal UI: the simulate
// command, scripted checks and the spectator demo all run through it.
package headless

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-racetrack/internal/race"
)

var (
	// ErrHumanSeat is returned when the seat to move needs a human driver.
	ErrHumanSeat = errors.New("headless: a human seat is to move")

	// ErrMoveLimit is returned when the race is still open after MaxMoves.
	ErrMoveLimit = errors.New("headless: move limit reached")
)

// Result summarizes a headless run.
type Result struct {
	Won     bool
	Winners []int
	Moves   int
	Players [race.MaxPlayers]race.Player
}

// Runner moves automated seats until the race is won.
type Runner struct {
	MaxMoves int                 // moves before giving up, 0 for no limit
	Delay    time.Duration       // pause after every move
	OnMove   func(race.Snapshot) // called after every move when set
}

// Run drives g, which must already be in the Race mode with only automated
// seats left to move.
func (r Runner) Run(ctx context.Context, g *race.GameState) (Result, error) {
	for !g.Won() {
		if err := ctx.Err(); err != nil {
			return resultOf(g), err
		}
		if g.Mode() != race.Race {
			return resultOf(g), fmt.Errorf("headless: %w: game is in %s", race.ErrWrongMode, g.Mode())
		}
		if r.MaxMoves > 0 && g.Moves() >= r.MaxMoves {
			return resultOf(g), ErrMoveLimit
		}
		if !g.CurrentAutomated() {
			return resultOf(g), ErrHumanSeat
		}
		if _, err := g.MoveAutomated(); err != nil {
			return resultOf(g), fmt.Errorf("headless: move failed: %w", err)
		}
		if r.OnMove != nil {
			r.OnMove(g.Snapshot())
		}
		if r.Delay > 0 {
			select {
			case <-ctx.Done():
				return resultOf(g), ctx.Err()
			case <-time.After(r.Delay):
			}
		}
	}
	return resultOf(g), nil
}

// Simulate prepares an all-automated race on g and runs it.
func (r Runner) Simulate(ctx context.Context, g *race.GameState, seats [race.MaxPlayers]race.Seat) (Result, error) {
	for i := range seats {
		seats[i].Automated = seats[i].Active
	}
	if err := g.StartPreparation(seats); err != nil {
		return Result{}, fmt.Errorf("headless: cannot prepare race: %w", err)
	}
	return r.Run(ctx, g)
}

func resultOf(g *race.GameState) Result {
	return Result{
		Won:     g.Won(),
		Winners: g.Winners(),
		Moves:   g.Moves(),
		Players: g.Players(),
	}
}
