package track

import "testing"

func TestParseRows(t *testing.T) {
	g, err := ParseRows(
		"0000000000",
		"0111111000",
		"0100001000",
		"0121111000",
		"0000000000",
	)
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}

	if g.W != 10 || g.H != 5 {
		t.Fatalf("expected 10x5 grid, got %dx%d", g.W, g.H)
	}

	tests := []struct {
		pos      Position
		expected Terrain
	}{
		{P(0, 0), Gravel},
		{P(1, 1), Road},
		{P(2, 3), Start},
		{P(6, 2), Road},
		{P(9, 4), Gravel},
	}
	for _, tc := range tests {
		if got := g.At(tc.pos); got != tc.expected {
			t.Errorf("At(%v) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestParseRowsRejectsBadInput(t *testing.T) {
	if _, err := ParseRows("0120", "013"); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := ParseRows("0150"); err == nil {
		t.Error("expected error for unknown terrain digit")
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(10, 5)

	tests := []struct {
		pos      Position
		expected bool
	}{
		{P(0, 0), true},
		{P(9, 4), true},
		{P(-1, 0), false},
		{P(0, -1), false},
		{P(10, 0), false},
		{P(0, 5), false},
	}
	for _, tc := range tests {
		if got := g.InBounds(tc.pos); got != tc.expected {
			t.Errorf("InBounds(%v) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestGridAtPanicsOutOfBounds(t *testing.T) {
	g := NewGrid(10, 10)
	defer func() {
		if recover() == nil {
			t.Error("expected At to panic outside the grid")
		}
	}()
	g.At(P(10, 0))
}

func TestGridSetStoresBaseTerrain(t *testing.T) {
	g := NewGrid(10, 10)
	g.Set(P(3, 3), HighlightedRoad)
	if got := g.At(P(3, 3)); got != Road {
		t.Errorf("expected highlighted road to be stored as Road, got %v", got)
	}
	g.Set(P(-1, 3), Road) // ignored
}

func TestGridNeighbors(t *testing.T) {
	g := NewGrid(10, 10)

	tests := []struct {
		name string
		pos  Position
		ok   [4]bool
	}{
		{"corner", P(0, 0), [4]bool{false, true, true, false}},
		{"center", P(5, 5), [4]bool{true, true, true, true}},
		{"bottom right", P(9, 9), [4]bool{true, false, false, true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ns, ok := g.Neighbors(tc.pos)
			if ok != tc.ok {
				t.Fatalf("Neighbors(%v) ok = %v, expected %v", tc.pos, ok, tc.ok)
			}
			for i, d := range Directions {
				if ok[i] && ns[i] != tc.pos.Step(d) {
					t.Errorf("neighbor %v of %v = %v", d, tc.pos, ns[i])
				}
				if ok[i] && !g.InBounds(ns[i]) {
					t.Errorf("neighbor %v of %v out of bounds", d, tc.pos)
				}
			}
		})
	}
}

func TestGridCloneAndEqual(t *testing.T) {
	g := MustParseRows("0110", "0120")
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.Set(P(0, 0), Road)
	if g.Equal(c) {
		t.Error("modifying clone should not affect original")
	}
	if g.At(P(0, 0)) != Gravel {
		t.Error("original changed through clone")
	}
}

func TestGridRowsAndString(t *testing.T) {
	g := MustParseRows("012", "210")

	rows := g.Rows()
	if rows[0][1] != 1 || rows[1][0] != 2 {
		t.Errorf("Rows() = %v", rows)
	}
	if got := g.String(); got != "012\n210" {
		t.Errorf("String() = %q", got)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		delta    Position
		opposite Direction
	}{
		{Up, P(0, -1), Down},
		{Right, P(1, 0), Left},
		{Down, P(0, 1), Up},
		{Left, P(-1, 0), Right},
	}
	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			if tc.d.Delta() != tc.delta {
				t.Errorf("Delta() = %v, expected %v", tc.d.Delta(), tc.delta)
			}
			if tc.d.Opposite() != tc.opposite {
				t.Errorf("Opposite() = %v, expected %v", tc.d.Opposite(), tc.opposite)
			}
			parsed, err := ParseDirection(tc.d.String())
			if err != nil || parsed != tc.d {
				t.Errorf("ParseDirection(%q) = %v, %v", tc.d.String(), parsed, err)
			}
		})
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
