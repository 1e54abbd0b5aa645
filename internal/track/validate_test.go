package track

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-racetrack/internal/core"
)

func TestValidateRace(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected error
	}{
		{
			name: "closed loop",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100001000",
				"0121111000",
				"0000000000",
			},
		},
		{
			name: "gap in the loop",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100000000",
				"0121111000",
				"0000000000",
			},
			expected: core.ErrNoRoundCourse,
		},
		{
			name: "no starting line",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100001000",
				"0111111000",
				"0000000000",
			},
			expected: core.ErrStartMissing,
		},
		{
			name: "road beyond the end of the line",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100001000",
				"0112111000",
				"0001000000",
			},
			expected: core.ErrStartNotComplete,
		},
		{
			name: "two separate start cells",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100002000",
				"0112111000",
				"0000000000",
			},
			expected: core.ErrStartNotComplete,
		},
		{
			name: "wide road with vertical line",
			rows: loopRows,
		},
		{
			name: "dead ends off the loop",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100001100",
				"0111000100",
				"0100000100",
				"0110101100",
				"0010100100",
				"0012110111",
				"0012110100",
				"0000011100",
			},
		},
		{
			name: "two tile vertical line",
			rows: []string{
				"0000000000",
				"0111111000",
				"0100001100",
				"0111000100",
				"0100000100",
				"0110000100",
				"0010000100",
				"0012110100",
				"0012110100",
				"0000011100",
			},
		},
		{
			name: "horizontal line on a vertical straight",
			rows: []string{
				"0000000000",
				"0111111110",
				"0100000010",
				"0100000010",
				"0200000010",
				"0100000010",
				"0100000010",
				"0100000010",
				"0111111110",
				"0000000000",
			},
		},
		{
			name: "horizontal line without a loop",
			rows: []string{
				"0000000000",
				"0100000000",
				"0100000000",
				"0100000000",
				"0200000000",
				"0100000000",
				"0100000000",
				"0100000000",
				"0100000000",
				"0000000000",
			},
			expected: core.ErrNoRoundCourse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := MustParseRows(tc.rows...)
			err := ValidateRace(g)
			if tc.expected == nil {
				if err != nil {
					t.Fatalf("ValidateRace() = %v, expected no error", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Fatalf("ValidateRace() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestValidateImport(t *testing.T) {
	square := func(n int, v int) [][]int {
		rows := make([][]int, n)
		for y := range rows {
			rows[y] = make([]int, n)
			for x := range rows[y] {
				rows[y][x] = v
			}
		}
		return rows
	}

	ragged := square(12, 0)
	ragged[5] = ragged[5][:11]

	badCell := square(12, 1)
	badCell[3][4] = 3

	negative := square(10, 0)
	negative[0][0] = -1

	tests := []struct {
		name     string
		rows     [][]int
		expected core.Code
	}{
		{"minimum size", square(10, 0), core.NoError},
		{"maximum size", square(40, 2), core.NoError},
		{"too small", square(9, 0), core.WrongBoardSize},
		{"too large", square(41, 0), core.WrongBoardSize},
		{"empty", nil, core.WrongBoardSize},
		{"ragged rows", ragged, core.WrongBoardSize},
		{"value out of range", badCell, core.WrongBoardContents},
		{"negative value", negative, core.WrongBoardContents},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := core.CodeOf(ValidateImport(tc.rows)); got != tc.expected {
				t.Errorf("ValidateImport() code = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestValidateImportChecksSizeBeforeContents(t *testing.T) {
	rows := [][]int{{7, 7, 7}}
	if got := core.CodeOf(ValidateImport(rows)); got != core.WrongBoardSize {
		t.Errorf("expected WrongBoardSize first, got %v", got)
	}
}

func TestGridFromImport(t *testing.T) {
	rows := make([][]int, 10)
	for y := range rows {
		rows[y] = make([]int, 12)
	}
	rows[2][7] = 2

	g, err := GridFromImport(rows)
	if err != nil {
		t.Fatalf("GridFromImport() failed: %v", err)
	}
	if g.W != 12 || g.H != 10 {
		t.Errorf("expected 12x10, got %dx%d", g.W, g.H)
	}
	if g.At(P(7, 2)) != Start {
		t.Error("expected rows to be indexed [y][x]")
	}
}
