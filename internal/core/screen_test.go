package core

import "testing"

func TestNewScreen(t *testing.T) {
	s := NewScreen(5, 3)
	if s.Width() != 5 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 5x3", s.Width(), s.Height())
	}
	if got := s.Get(4, 2); got != ' ' {
		t.Errorf("new cell = %q, expected space", got)
	}
	if got := s.String(); got != "\n\n" {
		t.Errorf("blank screen = %q", got)
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 2, '#')

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"written", 1, 2, '#'},
		{"untouched", 2, 1, ' '},
		{"left of screen", -1, 0, ' '},
		{"below screen", 0, 4, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Get(tt.x, tt.y); got != tt.want {
				t.Errorf("Get(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Off-screen writes must not wrap into the next row.
	s.Set(4, 0, 'x')
	if s.Get(0, 1) != ' ' {
		t.Error("write past the right edge wrapped")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(2, 0, "lap 1/2")
	if got := s.Row(0); got != "  lap" {
		t.Errorf("Row(0) = %q, expected %q", got, "  lap")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 4, 3))

	want := []string{
		"┌──┐",
		"│  │",
		"└──┘",
		"",
	}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("Row(%d) = %q, expected %q", y, got, w)
		}
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 2)
	if s.Row(-1) != "" || s.Row(2) != "" {
		t.Error("out-of-range rows should be empty")
	}
}
