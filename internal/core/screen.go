package core

import (
	"strings"
)

// Screen is a fixed-size character buffer. Headless output draws a track
// and its cars into one and prints it as plain text.
type Screen struct {
	w, h  int
	cells []rune // row-major
}

// NewScreen returns a w x h screen filled with spaces.
func NewScreen(w, h int) *Screen {
	s := &Screen{w: max(w, 0), h: max(h, 0)}
	s.cells = make([]rune, s.w*s.h)
	for i := range s.cells {
		s.cells[i] = ' '
	}
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.w && y >= 0 && y < s.h
}

// Set places r at (x, y). Off-screen writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	if s.inside(x, y) {
		s.cells[y*s.w+x] = r
	}
}

// Get returns the rune at (x, y), or a space off-screen.
func (s *Screen) Get(x, y int) rune {
	if !s.inside(x, y) {
		return ' '
	}
	return s.cells[y*s.w+x]
}

// DrawText writes text from (x, y) to the right, clipped at the edge.
func (s *Screen) DrawText(x, y int, text string) {
	for _, r := range text {
		s.Set(x, y, r)
		x++
	}
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, bottom, '─')
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

// Row returns row y with trailing spaces removed.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return ""
	}
	return strings.TrimRight(string(s.cells[y*s.w:(y+1)*s.w]), " ")
}

// String joins all rows with newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
