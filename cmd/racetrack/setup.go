package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-racetrack/internal/config"
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/registry"
	"github.com/vovakirdan/tui-racetrack/internal/storage"
	"github.com/vovakirdan/tui-racetrack/internal/track"
	"github.com/vovakirdan/tui-racetrack/internal/trackfile"
)

// mustLoadConfig loads the game config and applies the global flags.
func mustLoadConfig() config.RaceConfig {
	cfg, err := config.LoadRace(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

func newLogger(cfg config.RaceConfig) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "racetrack",
	})
	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}

// tuiLogger keeps log output off the alternate screen. With --log-level set
// it appends to racetrack.log in the working directory, otherwise it
// discards everything.
func tuiLogger(cfg config.RaceConfig) (*log.Logger, func()) {
	logger := newLogger(cfg)
	if flagLogLevel == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	f, err := os.OpenFile("racetrack.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	return rt
}

// openStore opens the results database. Races still work without it.
func openStore(cfg config.RaceConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

// loadedTrack is a track picked by registry ID or read from a file.
type loadedTrack struct {
	ID        string
	Title     string
	Grid      *track.Grid
	Direction track.Direction
	Path      string       // source file, empty for built-in tracks
	Session   *race.Record // set when the file holds a race in progress
}

// resolveTrack looks arg up in the registry first and falls back to reading
// it as a track or session file.
func resolveTrack(arg string) (loadedTrack, error) {
	if registry.Exists(arg) {
		t, err := registry.Create(arg)
		if err != nil {
			return loadedTrack{}, err
		}
		return loadedTrack{ID: t.ID, Title: t.Title, Grid: t.Grid, Direction: t.Direction}, nil
	}

	rec, err := trackfile.ReadFile(arg)
	if err != nil {
		return loadedTrack{}, err
	}
	grid, err := track.GridFromImport(rec.Track)
	if err != nil {
		return loadedTrack{}, fmt.Errorf("%s: %w", arg, err)
	}
	dir := track.Direction(rec.Direction)
	if !dir.Valid() {
		return loadedTrack{}, fmt.Errorf("%s: %w", arg,
			core.Errorf(core.WrongCurrentPlayerOrDirection, "direction %d is not 0-3", rec.Direction))
	}

	base := filepath.Base(arg)
	lt := loadedTrack{
		ID:        strings.TrimSuffix(base, filepath.Ext(base)),
		Title:     base,
		Grid:      grid,
		Direction: dir,
		Path:      arg,
	}
	for _, p := range rec.Players {
		if p.Active {
			lt.Session = &rec
			break
		}
	}
	return lt, nil
}

// record returns the file form of the track, with the session if any.
func (t loadedTrack) record() race.Record {
	if t.Session != nil {
		return *t.Session
	}
	return race.TrackRecord(t.Grid, t.Direction)
}
