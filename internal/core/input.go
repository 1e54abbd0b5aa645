package core

// Action represents a semantic user intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionConfirm        // Enter, Space - choose the cell under the cursor
	ActionBack           // B, Escape - stop the race or leave the editor
	ActionReplay         // R - replay a finished race
	ActionSave           // Ctrl+S - write the track file
	ActionQuit           // Q, Ctrl+C - exit
	ActionGravel         // 0 - paint gravel
	ActionRoad           // 1 - paint road
	ActionStart          // 2 - place the starting line
	ActionGrow           // + - add a line at the edge named by the next arrow
	ActionShrink         // - - remove a line at the edge named by the next arrow
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionReplay:
		return "Replay"
	case ActionSave:
		return "Save"
	case ActionQuit:
		return "Quit"
	case ActionGravel:
		return "Gravel"
	case ActionRoad:
		return "Road"
	case ActionStart:
		return "Start"
	case ActionGrow:
		return "Grow"
	case ActionShrink:
		return "Shrink"
	default:
		return "Unknown"
	}
}

// IsCursor reports whether the action moves the cursor.
func (a Action) IsCursor() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// CursorDelta returns the cursor step for a cursor action.
func (a Action) CursorDelta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}
