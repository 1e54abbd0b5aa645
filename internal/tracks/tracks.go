// Package tracks registers the built-in tracks. Import it for its side
// effect:
//
//	import _ "github.com/vovakirdan/tui-racetrack/internal/tracks"
package tracks

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-racetrack/internal/registry"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

//go:embed data/*.yaml
var files embed.FS

// definition is the on-disk form of a built-in track: digit rows with
// '0' Gravel, '1' Road and '2' Start.
type definition struct {
	Title     string   `yaml:"title"`
	Direction string   `yaml:"direction"`
	Rows      []string `yaml:"rows"`
}

func init() {
	entries, err := files.ReadDir("data")
	if err != nil {
		panic(fmt.Sprintf("tracks: %v", err))
	}
	for _, e := range entries {
		id := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		data, err := files.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("tracks: %v", err))
		}
		t, err := parse(id, data)
		if err != nil {
			panic(err)
		}
		registry.Register(id, func() registry.Track {
			c := t
			c.Grid = t.Grid.Clone()
			return c
		})
	}
}

func parse(id string, data []byte) (registry.Track, error) {
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return registry.Track{}, fmt.Errorf("tracks: %s: %w", id, err)
	}
	g, err := track.ParseRows(def.Rows...)
	if err != nil {
		return registry.Track{}, fmt.Errorf("tracks: %s: %w", id, err)
	}
	dir, err := track.ParseDirection(def.Direction)
	if err != nil {
		return registry.Track{}, fmt.Errorf("tracks: %s: %w", id, err)
	}
	return registry.Track{ID: id, Title: def.Title, Grid: g, Direction: dir}, nil
}
