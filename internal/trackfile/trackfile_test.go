package trackfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

const ringJSON = `{
  "track": [
    [0,0,0,0,0,0,0,0,0,0],
    [0,1,1,1,1,1,1,1,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,0,0,0,0,0,0,1,0],
    [0,1,1,2,1,1,1,1,1,0],
    [0,0,0,0,0,0,0,0,0,0]
  ],
  "direction": 1,
  "currentPlayer": 0,
  "players": [
    {"active": true, "ai": false, "name": "Ann", "last": [4,8], "current": [5,8], "lap": 0},
    {"active": false, "ai": false, "name": "", "last": [0,0], "current": [0,0], "lap": 0},
    {"active": true, "ai": true, "name": "Bot", "last": [2,8], "current": [2,8], "lap": 1},
    {"active": false, "ai": false, "name": "", "last": [0,0], "current": [0,0], "lap": 0}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	rec, err := Decode("ring.json", []byte(ringJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rec.Track) != 10 || rec.Track[8][3] != int(track.Start) {
		t.Fatalf("track not decoded as rows[y][x]: %v", rec.Track)
	}
	if rec.Players[2].Name != "Bot" || !rec.Players[2].AI || rec.Players[2].Lap != 1 {
		t.Errorf("player 2 = %+v", rec.Players[2])
	}

	g := race.New()
	if err := g.Load(rec); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Mode() != race.Race {
		t.Errorf("Mode() = %v, want Race", g.Mode())
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"truncated json", "bad.json", `{"track": [[0,1`},
		{"wrong type", "bad.json", `{"track": "road"}`},
		{"broken yaml", "bad.yaml", "track: [\n  - [0, 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, []byte(tt.data))
			if !errors.Is(err, core.ErrWrongMapSyntax) {
				t.Errorf("Decode() error = %v, want WrongMapSyntax", err)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rec, err := Decode("ring.json", []byte(ringJSON))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"saves/ring.yaml", "saves/ring.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(path, rec); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			a, b := race.New(), race.New()
			if err := a.Load(rec); err != nil {
				t.Fatal(err)
			}
			if err := b.Load(got); err != nil {
				t.Fatalf("Load() of re-read record error = %v", err)
			}
			if a.Players() != b.Players() || !a.Grid().Equal(b.Grid()) || a.Direction() != b.Direction() {
				t.Error("round trip changed the game")
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.yaml": YAML,
		"a.YML":  YAML,
		"a.json": JSON,
		"a":      JSON,
	}
	for name, want := range tests {
		if got := FormatOf(name); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", name, got, want)
		}
	}
}
