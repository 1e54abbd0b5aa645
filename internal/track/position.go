package track

import (
	"fmt"
	"strings"
)

// Position is a cell coordinate. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// P is shorthand for constructing a Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Step returns the adjacent position in direction d.
func (p Position) Step(d Direction) Position {
	return p.Add(d.Delta())
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction names a grid side and a direction of travel. The numbering
// matches the persisted direction field: Up=0, Right=1, Down=2, Left=3.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all directions in neighbor order (top, right, bottom, left).
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the unit step for the direction.
func (d Direction) Delta() Position {
	switch d {
	case Up:
		return Position{0, -1}
	case Right:
		return Position{1, 0}
	case Down:
		return Position{0, 1}
	case Left:
		return Position{-1, 0}
	}
	return Position{}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Vertical reports whether d moves along the Y axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a case-insensitive direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return 0, fmt.Errorf("track: unknown direction %q", s)
}
