// Package tui provides the Bubble Tea front end of the racetrack game: the
// track picker, the race and editor screen, the results table and the SSH
// server that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances a running animation.
type TickMsg time.Time

// aiMoveMsg asks the model to let the automated seat move.
type aiMoveMsg struct{}

// stuckMsg asks the model to move a human seat that has no legal target.
type stuckMsg struct{}

// tickCmd returns a command that sends one TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// aiCmd schedules the next automated move.
func aiCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return aiMoveMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return aiMoveMsg{}
	})
}

// stuckCmd schedules the forced move of a human seat with no legal target.
func stuckCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return stuckMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return stuckMsg{}
	})
}
