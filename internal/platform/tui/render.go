package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

// Each cell is drawn two characters wide so the board looks square.
const cellWidth = 2

var (
	gravelStyle     = lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("100"))
	roadStyle       = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	startStyle      = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("232"))
	candidateStyle  = lipgloss.NewStyle().Background(lipgloss.Color("244")).Foreground(lipgloss.Color("255"))
	blockedStyle    = lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(lipgloss.Color("208"))
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	winStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	currentSeatMark = "▶ "
)

// seatColors are the car colors of seats 1 to 4.
var seatColors = [race.MaxPlayers]lipgloss.Color{"9", "12", "10", "11"}

func carStyle(seat int) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(seatColors[seat]).Bold(true)
}

// boardView is everything needed to draw the board.
type boardView struct {
	grid       *track.Grid
	cars       [race.MaxPlayers]track.Position
	active     [race.MaxPlayers]bool
	candidates map[track.Position]bool // candidate cell -> legal
	cursor     track.Position
	showCursor bool
}

func terrainCell(t track.Terrain, dir track.Direction) (lipgloss.Style, string) {
	switch t.Base() {
	case track.Road:
		return roadStyle, "  "
	case track.Start:
		return startStyle, startGlyph(dir)
	default:
		return gravelStyle, "░░"
	}
}

func startGlyph(dir track.Direction) string {
	switch dir {
	case track.Up:
		return "▲▲"
	case track.Down:
		return "▼▼"
	case track.Left:
		return "◀◀"
	default:
		return "▶▶"
	}
}

// renderBoard draws the grid with cars, candidates and the cursor.
func renderBoard(b boardView, dir track.Direction) string {
	if b.grid == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.grid.W * b.grid.H * cellWidth * 8)

	for y := 0; y < b.grid.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.grid.W; x++ {
			p := track.P(x, y)
			style, text := terrainCell(b.grid.At(p), dir)

			if legal, ok := b.candidates[p]; ok {
				if legal {
					style, text = candidateStyle, "··"
				} else {
					style = blockedStyle
				}
			}
			for seat := race.MaxPlayers - 1; seat >= 0; seat-- {
				if b.active[seat] && b.cars[seat] == p {
					style, text = carStyle(seat), "◆"+string(rune('1'+seat))
				}
			}
			if b.showCursor && b.cursor == p {
				style = style.Reverse(true).Bold(true)
			}
			sb.WriteString(style.Render(text))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
