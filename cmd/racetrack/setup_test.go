package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/registry"
	"github.com/vovakirdan/tui-racetrack/internal/track"
	"github.com/vovakirdan/tui-racetrack/internal/trackfile"
)

func writeRecord(t *testing.T, name string, rec race.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := trackfile.WriteFile(path, rec); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func ovalRecord(t *testing.T) race.Record {
	t.Helper()
	oval, err := registry.Create("oval")
	if err != nil {
		t.Fatalf("Create(oval) error = %v", err)
	}
	return race.TrackRecord(oval.Grid, oval.Direction)
}

func TestResolveTrackBuiltIn(t *testing.T) {
	lt, err := resolveTrack("oval")
	if err != nil {
		t.Fatalf("resolveTrack() error = %v", err)
	}
	if lt.ID != "oval" || lt.Path != "" || lt.Session != nil || lt.Grid == nil {
		t.Errorf("lt = %+v", lt)
	}
}

func TestResolveTrackFile(t *testing.T) {
	path := writeRecord(t, "loop.json", ovalRecord(t))

	lt, err := resolveTrack(path)
	if err != nil {
		t.Fatalf("resolveTrack() error = %v", err)
	}
	if lt.ID != "loop" || lt.Title != "loop.json" || lt.Path != path {
		t.Errorf("lt = %+v", lt)
	}
	if lt.Session != nil {
		t.Error("bare track resolved as a session")
	}
	if got := lt.record(); len(got.Players) != race.MaxPlayers {
		t.Errorf("record() has %d players", len(got.Players))
	}
}

func TestResolveTrackSession(t *testing.T) {
	rec := ovalRecord(t)
	rec.Players[0].Active = true
	path := writeRecord(t, "session.yaml", rec)

	lt, err := resolveTrack(path)
	if err != nil {
		t.Fatalf("resolveTrack() error = %v", err)
	}
	if lt.Session == nil || !lt.Session.Players[0].Active {
		t.Errorf("Session = %+v", lt.Session)
	}
}

func TestResolveTrackErrors(t *testing.T) {
	badDir := ovalRecord(t)
	badDir.Direction = 7

	tests := []struct {
		name string
		arg  string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"bad direction", writeRecord(t, "bad.yaml", badDir)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveTrack(tt.arg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	good := writeRecord(t, "good.yaml", ovalRecord(t))
	if err := validateFile(good); err != nil {
		t.Errorf("validateFile(good) error = %v", err)
	}

	noLine := writeRecord(t, "empty.yaml", race.TrackRecord(track.NewGrid(10, 10), track.Right))
	if err := validateFile(noLine); err == nil {
		t.Error("validateFile(no start line) should fail")
	}
}
