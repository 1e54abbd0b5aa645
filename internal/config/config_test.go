package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg RaceConfig
	if err := yaml.Unmarshal(defaultRaceYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRaceConfig()) {
		t.Errorf("embedded defaults = %+v\nwant %+v", cfg, DefaultRaceConfig())
	}
}

func TestLoadRaceCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.yaml")
	data := []byte("track: square\nseats:\n  - name: Ann\n    active: true\n    ai: true\nanimation:\n  cell_ms: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRace(path)
	if err != nil {
		t.Fatalf("LoadRace() error = %v", err)
	}
	if cfg.Track != "square" || cfg.Animation.CellDuration() != 10*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset values keep their defaults.
	if cfg.Server.IdleTimeout != 30*time.Minute || cfg.Animation.Easing != "out_quad" {
		t.Errorf("defaults lost: %+v", cfg)
	}

	seats := cfg.SeatSetup()
	if !seats[0].Active || !seats[0].Automated || seats[0].Name != "Ann" {
		t.Errorf("seat 0 = %+v", seats[0])
	}
	if seats[1].Active {
		t.Errorf("seat 1 = %+v, want inactive", seats[1])
	}
}

func TestLoadRaceErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "seats: [\n"},
		{"too many seats", "seats: [{}, {}, {}, {}, {}]\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"negative timing", "animation:\n  cell_ms: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "race.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRace(path); err == nil {
				t.Error("LoadRace() succeeded")
			}
		})
	}

	if _, err := LoadRace(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRace() of a missing file succeeded")
	}
}

func TestSeatSetupNames(t *testing.T) {
	cfg := RaceConfig{Seats: []SeatConfig{{Active: true}, {}}}
	seats := cfg.SeatSetup()
	if seats[0].Name != "Player 1" || seats[3].Active {
		t.Errorf("SeatSetup() = %+v", seats)
	}
}
