package headless

import (
	"fmt"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Glyphs used for plain text boards.
const (
	GlyphGravel = '#'
	GlyphRoad   = '.'
	GlyphStart  = '='
)

func glyph(t track.Terrain) rune {
	switch t.Base() {
	case track.Road:
		return GlyphRoad
	case track.Start:
		return GlyphStart
	default:
		return GlyphGravel
	}
}

// Render draws the board of s in a box, cars as their seat number, with a
// status line per active seat below it.
func Render(s race.Snapshot) string {
	if s.Grid == nil {
		return ""
	}
	status := 1
	for _, p := range s.Players {
		if p.Active {
			status++
		}
	}

	scr := core.NewScreen(max(s.Grid.W+2, 48), s.Grid.H+2+status)
	scr.DrawBox(core.NewRect(0, 0, s.Grid.W+2, s.Grid.H+2))

	for y := 0; y < s.Grid.H; y++ {
		for x := 0; x < s.Grid.W; x++ {
			scr.Set(x+1, y+1, glyph(s.Grid.At(track.P(x, y))))
		}
	}
	for i, p := range s.Players {
		if p.Active && s.Mode != race.Menu {
			scr.Set(p.Current.X+1, p.Current.Y+1, rune('1'+i))
		}
	}

	row := s.Grid.H + 2
	scr.DrawText(0, row, fmt.Sprintf("%s  moves %d  heading %s", s.Mode, s.Moves, s.Direction))
	for i, p := range s.Players {
		if !p.Active {
			continue
		}
		row++
		kind := "human"
		if p.Automated {
			kind = "ai"
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("player %d", i+1)
		}
		scr.DrawText(0, row, fmt.Sprintf("%d %s (%s) lap %d/%d", i+1, name, kind, p.Lap, race.LapsToWin))
	}
	return scr.String()
}
