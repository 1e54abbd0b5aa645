// Package registry provides a global registry of named tracks.
// Built-in tracks register themselves in init() functions, so the CLI and
// the SSH server can list and load them without knowing where they live.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Track is a named, ready-to-race track.
type Track struct {
	ID        string
	Title     string
	Grid      *track.Grid
	Direction track.Direction
}

// TrackInfo contains metadata about a registered track.
type TrackInfo struct {
	ID     string
	Title  string
	Width  int
	Height int
}

// Factory builds a fresh copy of a track. Every call must return a grid
// the caller may mutate.
type Factory func() Track

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]TrackInfo)
	mu        sync.RWMutex
)

// Register adds a track factory to the registry.
// Panics if a track with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: track %q already registered", id))
	}

	factories[id] = f

	t := f()
	infos[id] = TrackInfo{ID: id, Title: t.Title, Width: t.Grid.W, Height: t.Grid.H}
}

// List returns information about all registered tracks, sorted by ID.
func List() []TrackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TrackInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a track by its ID.
func Create(id string) (Track, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Track{}, fmt.Errorf("registry: unknown track %q", id)
	}

	t := f()
	t.ID = id
	return t, nil
}

// Exists checks if a track with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
