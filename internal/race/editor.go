package race

import (
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// EnterEditor switches from Menu to the track editor.
func (s *GameState) EnterEditor() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Menu {
		return s.wrongMode("enter editor")
	}
	s.mode = Editor
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

// ExitEditor returns to Menu.
func (s *GameState) ExitEditor() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Editor {
		return s.wrongMode("exit editor")
	}
	s.mode = Menu
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

// SetTerrain paints one cell. Start cells are only created through
// PlaceStartLine, so painting Start is rejected.
func (s *GameState) SetTerrain(p track.Position, t track.Terrain) error {
	if err := s.editable(); err != nil {
		return err
	}
	t = t.Base()
	if !s.grid.InBounds(p) || t == track.Start || !t.Valid() {
		return s.reject(core.Errorf(core.ChosenPositionInvalid, "cannot paint %s at %s", t, p))
	}
	if s.grid.At(p) == t {
		return nil
	}
	s.grid.Set(p, t)
	s.resetFieldCache()
	s.notify.CellChanged(p, t)
	return nil
}

// AddLine grows the track by one row or column on side d. It reports
// whether the grid changed; at MaxSize it does nothing.
func (s *GameState) AddLine(d track.Direction) (bool, error) {
	if err := s.editable(); err != nil {
		return false, err
	}
	return s.replaceGrid(s.grid.AddLine(d)), nil
}

// RemoveLine shrinks the track by one row or column on side d. It reports
// whether the grid changed; at MinSize it does nothing.
func (s *GameState) RemoveLine(d track.Direction) (bool, error) {
	if err := s.editable(); err != nil {
		return false, err
	}
	return s.replaceGrid(s.grid.RemoveLine(d)), nil
}

// PlaceStartLine draws a starting line through the road at p. Clicking an
// existing Start cell flips the direction instead.
func (s *GameState) PlaceStartLine(p track.Position) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.grid.Is(p, track.Start) {
		s.direction = s.direction.Opposite()
		s.notify.GameInitialized(s.Snapshot())
		return nil
	}
	g, dir, ok := track.PlaceStartLine(s.grid, p)
	if !ok {
		return s.reject(core.Errorf(core.ChosenPositionInvalid, "no road at %s", p))
	}
	s.grid = g
	s.direction = dir
	s.resetFieldCache()
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

// RotateStartLine re-lays the starting line through the Start cell p on the
// other axis and resets the direction to that axis' default.
func (s *GameState) RotateStartLine(p track.Position) error {
	if err := s.editable(); err != nil {
		return err
	}
	g, dir, ok := track.RotateStartLine(s.grid, p)
	if !ok {
		return s.reject(core.Errorf(core.ChosenPositionInvalid, "no start cell at %s", p))
	}
	s.grid = g
	s.direction = dir
	s.resetFieldCache()
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

// SetDirection sets the direction the line must be crossed in.
func (s *GameState) SetDirection(d track.Direction) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !d.Valid() {
		return s.reject(core.Errorf(core.WrongCurrentPlayerOrDirection, "direction %d", int(d)))
	}
	s.direction = d
	s.resetFieldCache()
	s.notify.GameInitialized(s.Snapshot())
	return nil
}

func (s *GameState) editable() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.mode != Editor {
		return s.wrongMode("edit")
	}
	return nil
}

func (s *GameState) replaceGrid(g *track.Grid) bool {
	if g == s.grid {
		return false
	}
	s.grid = g
	s.resetFieldCache()
	s.notify.GameInitialized(s.Snapshot())
	return true
}
