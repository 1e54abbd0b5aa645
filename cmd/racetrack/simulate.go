package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/platform/headless"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/storage"
)

var (
	flagSimDrivers  int
	flagSimMoves    int
	flagSimDelay    time.Duration
	flagSimWatch    bool
	flagSimSave     bool
	flagSimSpectate string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [track|file]",
	Short: "Run a race between computer drivers",
	Long: `Race computer drivers against each other without the terminal UI.
Every move is logged. With --watch the board is printed after each move.
Without a track the configured default track is used.

Examples:
  racetrack simulate
  racetrack simulate stadium --drivers 4 --watch --delay 200ms
  racetrack simulate ./my-track.yaml --moves 500 --save
  racetrack simulate oval --spectate :8080 --delay 500ms`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimDrivers, "drivers", 2, "Number of computer drivers (1-4)")
	simulateCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Give up after this many moves (default from config)")
	simulateCmd.Flags().DurationVar(&flagSimDelay, "delay", 0, "Pause after every move")
	simulateCmd.Flags().BoolVar(&flagSimWatch, "watch", false, "Print the board after every move")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the result in the results database")
	simulateCmd.Flags().StringVar(&flagSimSpectate, "spectate", "", "Serve the race to WebSocket spectators on this address")
}

func runSimulate(_ *cobra.Command, args []string) {
	if flagSimDrivers < 1 || flagSimDrivers > race.MaxPlayers {
		fmt.Fprintf(os.Stderr, "Error: --drivers must be between 1 and %d\n", race.MaxPlayers)
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	trackArg := cfg.Track
	if len(args) > 0 {
		trackArg = args[0]
	}
	lt, err := resolveTrack(trackArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifiers := race.Notifiers{headless.LogNotifier{Logger: logger}}
	spectator := startSpectator(ctx, cfg, flagSimSpectate, logger)
	var syncFeed func(race.Snapshot)
	if spectator != nil {
		feed := spectator.NewFeed(lt.Title)
		defer spectator.Remove(feed.ID())
		notifiers = append(notifiers, feed)
		syncFeed = feed.Sync
		logger.Info("spectators can follow the race", "race", feed.ID())
	}

	var seats [race.MaxPlayers]race.Seat
	for i := 0; i < flagSimDrivers; i++ {
		seats[i] = race.Seat{Active: true, Automated: true, Name: fmt.Sprintf("Computer %d", i+1)}
	}

	maxMoves := cfg.Simulate.MaxMoves
	if flagSimMoves > 0 {
		maxMoves = flagSimMoves
	}
	runner := headless.Runner{
		MaxMoves: maxMoves,
		Delay:    flagSimDelay,
		OnMove: func(s race.Snapshot) {
			if flagSimWatch {
				fmt.Println(headless.Render(s))
			}
			if syncFeed != nil {
				syncFeed(s)
			}
		},
	}

	g := race.New(race.WithGrid(lt.Grid, lt.Direction), race.WithNotifier(notifiers))
	result, err := runner.Simulate(ctx, g, seats)
	if err != nil && !errors.Is(err, headless.ErrMoveLimit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if !result.Won {
		fmt.Printf("No winner after %d moves.\n", result.Moves)
		return
	}
	names := make([]string, 0, len(result.Winners))
	for _, seat := range result.Winners {
		names = append(names, result.Players[seat].Name)
	}
	fmt.Printf("%s won on %s after %d moves.\n", strings.Join(names, " & "), lt.Title, result.Moves)

	if flagSimSave {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		id, err := store.SaveResult(storage.ResultFromRace(lt.ID, result.Players, result.Winners, result.Moves))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved as %s\n", id)
	}
}
