package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-racetrack/internal/config"
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
	"github.com/vovakirdan/tui-racetrack/internal/storage"
	"github.com/vovakirdan/tui-racetrack/internal/track"
	"github.com/vovakirdan/tui-racetrack/internal/trackfile"
)

// Options configures a race screen.
type Options struct {
	TrackID   string // stored with the result
	Title     string
	Grid      *track.Grid
	Direction track.Direction
	Resume    *race.Record // load this session instead of preparing a race
	Edit      bool         // open the editor instead of a race
	Seats     [race.MaxPlayers]race.Seat
	Animation config.AnimationConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store
	SavePath  string        // where ctrl+s writes the track or session
	Notifier  race.Notifier // extra receiver of engine events, may be nil
	Logger    *log.Logger   // may be nil
}

// syncer takes a full snapshot after every step.
type syncer interface {
	Sync(race.Snapshot)
}

// statusNotifier keeps what the screen shows about the last events.
type statusNotifier struct {
	race.NopNotifier
	notice   string
	lastMove *race.MoveEvent
}

func (n *statusNotifier) PlayerMoved(ev race.MoveEvent) {
	n.lastMove = &ev
}

func (n *statusNotifier) Notice(err *core.Error) {
	if err.Message != "" {
		n.notice = err.Message
		return
	}
	n.notice = err.Code.String()
}

// Model is the Bubble Tea model for one race or editing session.
type Model struct {
	opts   Options
	game   *race.GameState
	status *statusNotifier
	keys   *KeyMapper
	help   help.Model
	easing ease.TweenFunc

	cursor   track.Position
	anim     *Animation
	animPos  track.Position
	lastTick time.Time
	pending  core.Action // Grow or Shrink waiting for a side

	replay   [][race.MaxPlayers]track.Position
	replayAt int

	resultSaved bool
	message     string
	width       int
	height      int
	standalone  bool // back quits the program
	quitting    bool
	backToMenu  bool
}

// NewModel creates the game and starts it as opts asks: resume a session,
// open the editor or prepare a race.
func NewModel(opts Options) Model {
	if opts.Runtime.TickRate == 0 {
		opts.Runtime = core.DefaultConfig()
	}
	status := &statusNotifier{}
	notifiers := race.Notifiers{status}
	if opts.Notifier != nil {
		notifiers = append(notifiers, opts.Notifier)
	}
	gameOpts := []race.Option{race.WithNotifier(notifiers)}
	if opts.Grid != nil {
		gameOpts = append(gameOpts, race.WithGrid(opts.Grid, opts.Direction))
	}

	m := Model{
		opts:   opts,
		game:   race.New(gameOpts...),
		status: status,
		keys:   NewKeyMapper(),
		help:   help.New(),
		easing: Easing(opts.Animation.Easing),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}

	var err error
	switch {
	case opts.Resume != nil:
		err = m.game.Load(*opts.Resume)
	case opts.Edit:
		err = m.game.EnterEditor()
	default:
		err = m.game.StartPreparation(opts.Seats)
	}
	m.report(err)
	m.placeCursor()
	m.sync()
	return m
}

// Init starts the automated seats if one of them moves first.
func (m Model) Init() tea.Cmd {
	return m.next()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case aiMoveMsg:
		return m.handleAIMove()

	case stuckMsg:
		return m.handleStuck()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if action == core.ActionNone {
		return m, nil
	}

	m.message = ""
	m.status.notice = ""

	if m.replay != nil {
		m.stopReplay()
		return m, nil
	}

	switch m.game.Mode() {
	case race.Editor:
		return m.editorKey(action)
	case race.Preparation:
		return m.preparationKey(action)
	case race.Race:
		return m.raceKey(action)
	}
	if action == core.ActionBack || action == core.ActionConfirm {
		return m.back()
	}
	return m, nil
}

func (m Model) preparationKey(action core.Action) (tea.Model, tea.Cmd) {
	switch {
	case action.IsCursor():
		m.moveCursor(action)
	case action == core.ActionConfirm:
		m.report(m.game.ChooseStart(m.cursor))
		cmd := m.settle()
		return m, cmd
	case action == core.ActionBack:
		if err := m.game.Stop(); err != nil {
			m.report(err)
			return m, nil
		}
		return m.back()
	}
	return m, nil
}

func (m Model) raceKey(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionReplay:
		return m.startReplay()
	case core.ActionSave:
		m.save()
		return m, nil
	case core.ActionBack:
		if err := m.game.Stop(); err != nil {
			m.report(err)
			return m, nil
		}
		return m.back()
	case core.ActionConfirm:
		if m.game.Won() || m.game.CurrentAutomated() {
			return m, nil
		}
		if _, err := m.game.Move(m.cursor); err != nil {
			m.report(err)
			return m, nil
		}
		cmd := m.afterMove()
		return m, cmd
	}

	if action.IsCursor() && !m.game.Won() {
		dx, dy := action.CursorDelta()
		p := m.cursor.Add(track.P(dx, dy))
		if m.game.Candidates().Contains(p) {
			m.cursor = p
		}
	}
	return m, nil
}

func (m Model) editorKey(action core.Action) (tea.Model, tea.Cmd) {
	if m.pending != core.ActionNone && action.IsCursor() {
		d := sideOf(action)
		var err error
		if m.pending == core.ActionGrow {
			_, err = m.game.AddLine(d)
		} else {
			_, err = m.game.RemoveLine(d)
		}
		m.pending = core.ActionNone
		m.report(err)
		m.clampCursor()
		cmd := m.settle()
		return m, cmd
	}
	m.pending = core.ActionNone

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveCursor(action)
	case core.ActionGravel:
		m.report(m.game.SetTerrain(m.cursor, track.Gravel))
	case core.ActionRoad:
		m.report(m.game.SetTerrain(m.cursor, track.Road))
	case core.ActionStart:
		if m.game.Grid().Is(m.cursor, track.Start) {
			m.report(m.game.RotateStartLine(m.cursor))
		} else {
			m.report(m.game.PlaceStartLine(m.cursor))
		}
	case core.ActionConfirm:
		switch m.game.Grid().At(m.cursor) {
		case track.Gravel:
			m.report(m.game.SetTerrain(m.cursor, track.Road))
		case track.Road:
			m.report(m.game.SetTerrain(m.cursor, track.Gravel))
		case track.Start:
			m.report(m.game.PlaceStartLine(m.cursor))
		}
	case core.ActionGrow, core.ActionShrink:
		m.pending = action
		m.message = "press an arrow to pick the side"
		return m, nil
	case core.ActionSave:
		m.save()
		return m, nil
	case core.ActionBack:
		if err := m.game.ExitEditor(); err != nil {
			m.report(err)
			return m, nil
		}
		return m.back()
	}
	cmd := m.settle()
	return m, cmd
}

// sideOf maps a cursor action to the grid side it names.
func sideOf(a core.Action) track.Direction {
	switch a {
	case core.ActionUp:
		return track.Up
	case core.ActionDown:
		return track.Down
	case core.ActionLeft:
		return track.Left
	default:
		return track.Right
	}
}

func (m Model) handleAIMove() (tea.Model, tea.Cmd) {
	if m.game.Mode() != race.Race || m.game.Won() || m.game.Busy() || m.replay != nil {
		return m, nil
	}
	if !m.game.CurrentAutomated() {
		return m, nil
	}
	if _, err := m.game.MoveAutomated(); err != nil {
		m.report(err)
		return m, nil
	}
	cmd := m.afterMove()
	return m, cmd
}

// handleStuck drives a human seat with no legal target along its current
// velocity; the engine reports NoAvailableFields for it.
func (m Model) handleStuck() (tea.Model, tea.Cmd) {
	if !m.humanStuck() || m.game.Busy() || m.replay != nil {
		return m, nil
	}
	if _, err := m.game.Move(m.game.Candidates().Center()); err != nil {
		m.report(err)
		return m, nil
	}
	cmd := m.afterMove()
	return m, cmd
}

func (m Model) humanStuck() bool {
	if m.game.Mode() != race.Race || m.game.Won() || m.game.CurrentAutomated() {
		return false
	}
	for _, row := range m.game.LegalCandidates() {
		for _, ok := range row {
			if ok {
				return false
			}
		}
	}
	return true
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.replay != nil {
		m.replayAt++
		if m.replayAt >= len(m.replay) {
			m.stopReplay()
			return m, nil
		}
		return m, tickCmd(m.replayInterval())
	}
	if m.anim == nil {
		return m, nil
	}

	dt := now.Sub(m.lastTick)
	if dt < 0 {
		dt = 0
	}
	m.lastTick = now
	pos, done := m.anim.Update(dt)
	m.animPos = pos
	if !done {
		return m, tickCmd(m.opts.Runtime.FrameDuration())
	}
	m.anim = nil
	m.game.SetBusy(false)
	cmd := m.settle()
	return m, cmd
}

// afterMove starts the animation of the move just made, or settles at once
// when there is nothing to animate.
func (m *Model) afterMove() tea.Cmd {
	ev := m.status.lastMove
	perCell := m.opts.Animation.CellDuration()
	if ev == nil || perCell <= 0 || len(ev.Route) < 2 {
		return m.settle()
	}
	m.anim = NewAnimation(ev.Seat, ev.Route, perCell, m.easing)
	m.animPos = ev.Route[0]
	m.lastTick = time.Now()
	m.game.SetBusy(true)
	return tickCmd(m.opts.Runtime.FrameDuration())
}

// settle runs after every step: it stores a won race, moves the cursor to
// the seat to move, publishes the state and schedules the next AI move.
func (m *Model) settle() tea.Cmd {
	m.saveResult()
	m.placeCursor()
	m.sync()
	return m.next()
}

func (m Model) next() tea.Cmd {
	if m.anim != nil {
		return tickCmd(m.opts.Runtime.FrameDuration())
	}
	if m.game.Mode() == race.Race && !m.game.Won() && m.game.CurrentAutomated() {
		return aiCmd(m.opts.Animation.AIDelay())
	}
	if m.humanStuck() {
		return stuckCmd(m.opts.Animation.AIDelay())
	}
	return nil
}

func (m *Model) sync() {
	if s, ok := m.opts.Notifier.(syncer); ok {
		s.Sync(m.game.Snapshot())
	}
}

func (m *Model) saveResult() {
	if !m.game.Won() || m.resultSaved {
		return
	}
	m.resultSaved = true
	if m.opts.Store == nil {
		return
	}
	result := storage.ResultFromRace(m.opts.TrackID, m.game.Players(), m.game.Winners(), m.game.Moves())
	id, err := m.opts.Store.SaveResult(result)
	if err != nil {
		m.message = fmt.Sprintf("result not saved: %v", err)
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("cannot save result", "error", err)
		}
		return
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Info("race saved", "id", id, "track", m.opts.TrackID, "moves", result.Moves)
	}
}

func (m *Model) save() {
	if m.opts.SavePath == "" {
		m.message = "no save path given"
		return
	}
	if err := trackfile.WriteFile(m.opts.SavePath, m.game.Record()); err != nil {
		m.message = err.Error()
		return
	}
	m.message = "saved to " + m.opts.SavePath
}

func (m Model) startReplay() (tea.Model, tea.Cmd) {
	if err := m.game.StartReplay(); err != nil {
		m.report(err)
		return m, nil
	}
	m.replay = m.game.ReplayFrames()
	m.replayAt = 0
	return m, tickCmd(m.replayInterval())
}

func (m *Model) stopReplay() {
	m.game.StopReplay()
	m.replay = nil
	m.replayAt = 0
}

func (m Model) replayInterval() time.Duration {
	if d := 4 * m.opts.Animation.CellDuration(); d > 0 {
		return d
	}
	return 250 * time.Millisecond
}

func (m Model) back() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	m.sync()
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// report shows errors that did not already reach the status notifier.
func (m *Model) report(err error) {
	if err == nil {
		return
	}
	var e *core.Error
	if errors.As(err, &e) {
		return
	}
	m.message = err.Error()
}

func (m *Model) moveCursor(a core.Action) {
	dx, dy := a.CursorDelta()
	m.cursor = m.cursor.Add(track.P(dx, dy))
	m.clampCursor()
}

func (m *Model) clampCursor() {
	g := m.game.Grid()
	m.cursor.X = core.Clamp(m.cursor.X, 0, g.W-1)
	m.cursor.Y = core.Clamp(m.cursor.Y, 0, g.H-1)
}

// placeCursor moves the cursor to a sensible cell for the seat to move.
func (m *Model) placeCursor() {
	switch m.game.Mode() {
	case race.Preparation:
		starts := m.game.StartCandidates()
		for _, p := range starts {
			if p == m.cursor {
				return
			}
		}
		if len(starts) > 0 {
			m.cursor = starts[0]
		}
	case race.Race:
		if m.game.Won() || m.game.CurrentAutomated() {
			return
		}
		c := m.game.Candidates()
		legal := m.game.LegalCandidates()
		if legal[1][1] {
			m.cursor = c.Center()
			return
		}
		for row := range c {
			for col, p := range c[row] {
				if legal[row][col] {
					m.cursor = p
					return
				}
			}
		}
		m.cursor = c.Center()
	default:
		m.clampCursor()
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "R A C E T R A C K"
	if m.opts.Title != "" {
		title += "  ·  " + m.opts.Title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	board := renderBoard(m.boardView(), m.game.Direction())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", panelStyle.Render(m.sidebar())))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

func (m Model) boardView() boardView {
	v := boardView{grid: m.game.Grid(), cursor: m.cursor}
	players := m.game.Players()
	mode := m.game.Mode()

	for i, p := range players {
		v.cars[i] = p.Current
		switch mode {
		case race.Race:
			v.active[i] = p.Active
		case race.Preparation:
			// Seats are placed in order, so every seat before the current
			// one already has its cell.
			v.active[i] = p.Active && i < m.game.Current()
		}
	}
	if m.replay != nil {
		v.cars = m.replay[m.replayAt]
		return v
	}
	if m.anim != nil {
		v.cars[m.anim.Seat] = m.animPos
		return v
	}

	switch {
	case mode == race.Editor:
		v.showCursor = true
	case mode == race.Preparation:
		v.showCursor = true
		v.candidates = make(map[track.Position]bool)
		for _, p := range m.game.StartCandidates() {
			v.candidates[p] = true
		}
	case mode == race.Race && !m.game.Won() && !m.game.CurrentAutomated():
		v.showCursor = true
		v.candidates = make(map[track.Position]bool)
		legal := m.game.LegalCandidates()
		for row, cells := range m.game.Candidates() {
			for col, p := range cells {
				if v.grid.InBounds(p) {
					v.candidates[p] = legal[row][col]
				}
			}
		}
	}
	return v
}

func (m Model) sidebar() string {
	var b strings.Builder
	mode := m.game.Mode()
	b.WriteString(fmt.Sprintf("%s  heading %s\n", mode, m.game.Direction()))

	if mode == race.Editor || mode == race.Menu {
		g := m.game.Grid()
		b.WriteString(fmt.Sprintf("size %dx%d\ncursor %s\n", g.W, g.H, m.cursor))
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString(fmt.Sprintf("moves %d\n\n", m.game.Moves()))
	for i, p := range m.game.Players() {
		if !p.Active {
			continue
		}
		mark := "  "
		if i == m.game.Current() && !m.game.Won() {
			mark = currentSeatMark
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		if p.Automated {
			name += " (ai)"
		}
		b.WriteString(mark + carStyle(i).UnsetBackground().Render(name))
		v := p.Velocity()
		b.WriteString(fmt.Sprintf("\n   lap %d/%d  v %+d,%+d\n", p.Lap, race.LapsToWin, v.X, v.Y))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) statusLine() string {
	if m.message != "" {
		return noticeStyle.Render(m.message)
	}
	if m.status.notice != "" {
		return noticeStyle.Render(m.status.notice)
	}

	players := m.game.Players()
	name := func(seat int) string {
		if n := players[seat].Name; n != "" {
			return n
		}
		return fmt.Sprintf("Player %d", seat+1)
	}

	switch m.game.Mode() {
	case race.Editor:
		if m.pending != core.ActionNone {
			return "press an arrow to pick the side"
		}
		return "0 gravel · 1 road · 2 start line · +/- add or remove a line"
	case race.Preparation:
		return fmt.Sprintf("%s: choose a start cell", name(m.game.Current()))
	case race.Race:
		if m.replay != nil {
			return fmt.Sprintf("replay %d/%d · any key stops", m.replayAt+1, len(m.replay))
		}
		if m.game.Won() {
			var names []string
			for _, w := range m.game.Winners() {
				names = append(names, name(w))
			}
			return winStyle.Render(fmt.Sprintf("%s won after %d moves", strings.Join(names, " & "), m.game.Moves()))
		}
		if m.game.CurrentAutomated() {
			return fmt.Sprintf("%s is driving…", name(m.game.Current()))
		}
		return fmt.Sprintf("%s: pick a target", name(m.game.Current()))
	}
	return "press esc to go back"
}

// Game returns the engine behind the screen.
func (m Model) Game() *race.GameState {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone race or editor screen.
// Returns true if user wants to go back to menu, false if quitting.
func Run(opts Options) (goBack bool, err error) {
	model := NewModel(opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
