package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/config"
	"github.com/vovakirdan/tui-racetrack/internal/platform/tui"
	"github.com/vovakirdan/tui-racetrack/internal/registry"
	"github.com/vovakirdan/tui-racetrack/internal/spectate"
	"github.com/vovakirdan/tui-racetrack/internal/storage"
)

var (
	flagPlaySave     string
	flagPlaySpectate string
)

var playCmd = &cobra.Command{
	Use:   "play [track|file]",
	Short: "Race on a track",
	Long: `Start a race on a built-in track or on a track file (.yaml or .json).
A file holding a race in progress resumes that race. Without an argument
the track picker menu opens and you return to it after every race.

Controls:
  Arrows/wasd  - Move the cursor
  Enter/Space  - Choose the start cell or the target cell
  R            - Replay the finished race
  Ctrl+S       - Save the session
  Esc          - Stop the race
  Q/Ctrl+C     - Quit

Examples:
  racetrack play
  racetrack play oval
  racetrack play ./saved-race.json
  racetrack play stadium --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySave, "save", "", "File written by Ctrl+S (default: <track>-session.yaml)")
	playCmd.Flags().StringVar(&flagPlaySpectate, "spectate", "", "Serve the race to WebSocket spectators on this address")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger, closeLog := tuiLogger(cfg)
	defer closeLog()

	store := openStore(cfg)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spectator := startSpectator(ctx, cfg, flagPlaySpectate, logger)

	if len(args) == 0 {
		runMenuLoop(cfg, store, spectator, logger)
		return
	}

	lt, err := resolveTrack(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'racetrack tracks' to see built-in tracks.")
		os.Exit(1)
	}

	savePath := flagPlaySave
	if savePath == "" {
		savePath = lt.ID + "-session.yaml"
	}
	opts := raceOptions(cfg, store, logger, lt.ID, lt.Title)
	opts.Grid = lt.Grid
	opts.Direction = lt.Direction
	opts.Resume = lt.Session
	opts.SavePath = savePath
	if spectator != nil {
		feed := spectator.NewFeed(lt.Title)
		defer spectator.Remove(feed.ID())
		opts.Notifier = feed
	}

	if _, err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running race: %v\n", err)
		os.Exit(1)
	}
}

// runMenuLoop shows the track picker until the user quits.
func runMenuLoop(cfg config.RaceConfig, store *storage.Store, spectator *spectate.Server, logger *log.Logger) {
	rt := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsResults {
			goBack, resErr := tui.RunResults(store, rt.ScreenW, rt.ScreenH)
			if resErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", resErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.TrackID == "" {
			return
		}
		t, err := registry.Create(menuResult.TrackID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating track: %v\n", err)
			continue
		}

		opts := raceOptions(cfg, store, logger, t.ID, t.Title)
		opts.Runtime = rt
		opts.Grid = t.Grid
		opts.Direction = t.Direction
		opts.Edit = menuResult.Edit
		if opts.Edit {
			opts.SavePath = t.ID + ".yaml"
		} else {
			opts.SavePath = t.ID + "-session.yaml"
		}

		var feedID string
		if spectator != nil && !opts.Edit {
			feed := spectator.NewFeed(t.Title)
			feedID = feed.ID()
			opts.Notifier = feed
		}

		goBack, err := tui.Run(opts)
		if feedID != "" {
			spectator.Remove(feedID)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running race: %v\n", err)
			continue
		}
		if !goBack {
			return
		}
	}
}

func raceOptions(cfg config.RaceConfig, store *storage.Store, logger *log.Logger, id, title string) tui.Options {
	return tui.Options{
		TrackID:   id,
		Title:     title,
		Seats:     cfg.SeatSetup(),
		Animation: cfg.Animation,
		Runtime:   runtimeConfig(),
		Store:     store,
		Logger:    logger,
	}
}

// startSpectator serves the spectator feed in the background when an
// address is set by flag or config. Returns nil otherwise.
func startSpectator(ctx context.Context, cfg config.RaceConfig, addr string, logger *log.Logger) *spectate.Server {
	if addr == "" {
		addr = cfg.Spectator.Address
	}
	if addr == "" {
		return nil
	}
	srv := spectate.NewServer(logger)
	go func() {
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			logger.Error("spectator server stopped", "error", err)
		}
	}()
	return srv
}
