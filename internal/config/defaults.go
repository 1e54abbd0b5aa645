package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/race.yaml
var defaultRaceYAML []byte

// DefaultRaceConfig returns the default configuration. It mirrors
// defaults/race.yaml and is used when the embedded file cannot be parsed.
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		Track: "oval",
		Seats: []SeatConfig{
			{Name: "Player 1", Active: true},
			{Name: "Computer", Active: true, AI: true},
			{Name: "Player 3"},
			{Name: "Player 4"},
		},
		Animation: AnimationConfig{
			CellMillis: 60,
			Easing:     "out_quad",
			AIDelayMS:  250,
		},
		Storage: StorageConfig{
			Path: "~/.racetrack/results.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Simulate: SimulateConfig{
			MaxMoves: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
