// Package config provides YAML-based configuration for the racetrack game:
// seat setup, animation timing, storage location and server addresses.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-racetrack/internal/race"
)

// RaceConfig contains all configuration for the game.
type RaceConfig struct {
	Track     string          `yaml:"track"` // built-in track played when none is given
	Seats     []SeatConfig    `yaml:"seats"`
	Animation AnimationConfig `yaml:"animation"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Spectator SpectatorConfig `yaml:"spectator"`
	Simulate  SimulateConfig  `yaml:"simulate"`
	Log       LogConfig       `yaml:"log"`
}

// SeatConfig configures one of the four seats.
type SeatConfig struct {
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`
	AI     bool   `yaml:"ai"`
}

// AnimationConfig controls how moves are animated in the terminal.
type AnimationConfig struct {
	CellMillis int    `yaml:"cell_ms"`     // time to drive across one cell
	Easing     string `yaml:"easing"`      // linear, in_quad, out_quad, in_out_quad, out_cubic
	AIDelayMS  int    `yaml:"ai_delay_ms"` // pause before an automated seat moves
}

// StorageConfig locates the results database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// SpectatorConfig configures the WebSocket spectator feed. An empty address
// disables it.
type SpectatorConfig struct {
	Address string `yaml:"address"`
}

// SimulateConfig bounds headless races.
type SimulateConfig struct {
	MaxMoves int `yaml:"max_moves"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CellDuration returns the animation time per cell.
func (a AnimationConfig) CellDuration() time.Duration {
	return time.Duration(a.CellMillis) * time.Millisecond
}

// AIDelay returns the pause before an automated move.
func (a AnimationConfig) AIDelay() time.Duration {
	return time.Duration(a.AIDelayMS) * time.Millisecond
}

// SeatSetup converts the configured seats into engine seats. Missing seats
// are inactive; extra seats are ignored.
func (c RaceConfig) SeatSetup() [race.MaxPlayers]race.Seat {
	var seats [race.MaxPlayers]race.Seat
	for i := 0; i < len(c.Seats) && i < race.MaxPlayers; i++ {
		s := c.Seats[i]
		seats[i] = race.Seat{Active: s.Active, Automated: s.AI, Name: s.Name}
		if seats[i].Name == "" {
			seats[i].Name = fmt.Sprintf("Player %d", i+1)
		}
	}
	return seats
}

// Validate checks values that would make the game misbehave.
func (c RaceConfig) Validate() error {
	if len(c.Seats) > race.MaxPlayers {
		return fmt.Errorf("config: %d seats configured, at most %d", len(c.Seats), race.MaxPlayers)
	}
	if c.Animation.CellMillis < 0 || c.Animation.AIDelayMS < 0 {
		return fmt.Errorf("config: animation timings must not be negative")
	}
	if c.Simulate.MaxMoves < 0 {
		return fmt.Errorf("config: simulate.max_moves must not be negative")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}
