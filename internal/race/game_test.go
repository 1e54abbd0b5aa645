package race

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/track"
)

type recorder struct {
	NopNotifier
	inits   int
	cells   int
	moves   []MoveEvent
	shown   []int
	notices []core.Code
	won     [][]int
}

func (r *recorder) GameInitialized(Snapshot)                  { r.inits++ }
func (r *recorder) CellChanged(track.Position, track.Terrain) { r.cells++ }
func (r *recorder) PlayerMoved(ev MoveEvent)                  { r.moves = append(r.moves, ev) }
func (r *recorder) Notice(err *core.Error)                    { r.notices = append(r.notices, err.Code) }
func (r *recorder) RaceWon(winners []int, moves int)          { r.won = append(r.won, winners) }
func (r *recorder) CandidatesShown(seat int, c Candidates, legal [3][3]bool) {
	r.shown = append(r.shown, seat)
}

// lapOfLoop drives once around loopRows from (3,3) back to (3,3).
var lapOfLoop = []track.Position{
	track.P(4, 3), track.P(5, 3), track.P(6, 3), track.P(6, 2), track.P(6, 1),
	track.P(5, 1), track.P(4, 1), track.P(3, 1), track.P(2, 1), track.P(1, 1),
	track.P(1, 2), track.P(1, 3), track.P(2, 3), track.P(3, 3),
}

func newLoopGame(t *testing.T, seats [MaxPlayers]Seat) (*GameState, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := New(WithGrid(track.MustParseRows(loopRows...), track.Right), WithNotifier(rec))
	if err := g.StartPreparation(seats); err != nil {
		t.Fatalf("StartPreparation() error = %v", err)
	}
	return g, rec
}

func TestHumanDrivesTwoLaps(t *testing.T) {
	g, rec := newLoopGame(t, [MaxPlayers]Seat{{Active: true, Name: "solo"}})

	if g.Mode() != Preparation {
		t.Fatalf("Mode() = %v, want Preparation", g.Mode())
	}
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatalf("ChooseStart() error = %v", err)
	}
	if g.Mode() != Race {
		t.Fatalf("Mode() = %v, want Race", g.Mode())
	}

	for lap := 1; lap <= LapsToWin; lap++ {
		for _, target := range lapOfLoop {
			res, err := g.Move(target)
			if err != nil {
				t.Fatalf("lap %d: Move(%v) error = %v", lap, target, err)
			}
			if res.Crashed || res.Final != target {
				t.Fatalf("lap %d: Move(%v) = %+v", lap, target, res)
			}
		}
		if got := g.Players()[0].Lap; got != lap {
			t.Fatalf("lap counter = %d, want %d", got, lap)
		}
	}

	if !g.Won() {
		t.Fatal("Won() = false after two laps")
	}
	if !slices.Equal(g.Winners(), []int{0}) {
		t.Errorf("Winners() = %v, want [0]", g.Winners())
	}
	if g.Moves() != 2*len(lapOfLoop) {
		t.Errorf("Moves() = %d, want %d", g.Moves(), 2*len(lapOfLoop))
	}
	if len(rec.won) != 1 {
		t.Errorf("RaceWon called %d times, want 1", len(rec.won))
	}
	if _, err := g.Move(track.P(4, 3)); !errors.Is(err, ErrRaceOver) {
		t.Errorf("Move() after win error = %v, want ErrRaceOver", err)
	}
}

func TestAutomatedRaceFinishes(t *testing.T) {
	g, _ := newLoopGame(t, [MaxPlayers]Seat{{Active: true, Automated: true}})

	if g.Mode() != Race {
		t.Fatalf("Mode() = %v, want Race", g.Mode())
	}
	if got := g.Players()[0].Current; got != track.P(1, 3) {
		t.Fatalf("automated start = %v, want (1,3)", got)
	}

	for i := 0; i < 200 && !g.Won(); i++ {
		if _, err := g.MoveAutomated(); err != nil {
			t.Fatalf("MoveAutomated() error = %v", err)
		}
	}
	if !g.Won() {
		t.Fatal("automated race did not finish")
	}
	if got := g.Players()[0].Lap; got != LapsToWin {
		t.Errorf("lap = %d, want %d", got, LapsToWin)
	}
}

func TestAutomatedSeatsStartApart(t *testing.T) {
	g, rec := newLoopGame(t, [MaxPlayers]Seat{
		{Active: true, Automated: true},
		{},
		{Active: true, Automated: true},
	})

	if g.Mode() != Race {
		t.Fatalf("Mode() = %v, want Race", g.Mode())
	}
	players := g.Players()
	if players[0].Current != track.P(1, 3) || players[2].Current != track.P(1, 2) {
		t.Errorf("starts = %v, %v; want (1,3), (1,2)", players[0].Current, players[2].Current)
	}
	if g.Current() != 0 {
		t.Errorf("Current() = %d, want 0", g.Current())
	}
	if len(rec.moves) != 2 {
		t.Errorf("placements reported = %d, want 2", len(rec.moves))
	}
}

func TestTurnsSkipInactiveSeats(t *testing.T) {
	g, _ := newLoopGame(t, [MaxPlayers]Seat{{}, {Active: true}, {}, {Active: true}})

	if g.Current() != 1 {
		t.Fatalf("Current() = %d, want 1", g.Current())
	}
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}
	if err := g.ChooseStart(track.P(3, 3)); !errors.Is(err, core.ErrChosenPositionInvalid) {
		t.Fatalf("ChooseStart() on a taken cell error = %v", err)
	}
	if err := g.ChooseStart(track.P(4, 3)); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != Race || g.Current() != 1 {
		t.Fatalf("Mode() = %v, Current() = %d", g.Mode(), g.Current())
	}

	if _, err := g.Move(track.P(4, 3)); !errors.Is(err, core.ErrChosenPositionInvalid) {
		t.Fatalf("Move() onto another car error = %v", err)
	}
	if _, err := g.Move(track.P(2, 3)); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if g.Current() != 3 {
		t.Errorf("Current() = %d after seat 1 moved, want 3", g.Current())
	}
	if g.Moves() != 0 {
		t.Errorf("Moves() = %d before the round closed", g.Moves())
	}
}

func TestMoveIntoGravelCrashes(t *testing.T) {
	g, _ := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}
	res, err := g.Move(track.P(3, 2))
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !res.Crashed || res.Final != track.P(3, 3) {
		t.Errorf("Move() = %+v, want crash at (3,3)", res)
	}
}

func TestMoveRejectsNonCandidate(t *testing.T) {
	g, rec := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}
	before := g.Players()

	_, err := g.Move(track.P(6, 3))
	if !errors.Is(err, core.ErrChosenPositionInvalid) {
		t.Fatalf("Move() error = %v, want ChosenPositionInvalid", err)
	}
	if g.Players() != before {
		t.Error("rejected move changed the players")
	}
	if !slices.Contains(rec.notices, core.ChosenPositionInvalid) {
		t.Errorf("notices = %v", rec.notices)
	}
	if _, err := g.MoveAutomated(); !errors.Is(err, ErrSeatHuman) {
		t.Errorf("MoveAutomated() error = %v, want ErrSeatHuman", err)
	}
}

func TestBusyRejectsRequests(t *testing.T) {
	g, rec := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}

	g.SetBusy(true)
	if _, err := g.Move(track.P(4, 3)); !errors.Is(err, core.ErrGameInAnimation) {
		t.Fatalf("Move() while busy error = %v", err)
	}
	if err := g.Stop(); !errors.Is(err, core.ErrGameInAnimation) {
		t.Fatalf("Stop() while busy error = %v", err)
	}
	if g.Players()[0].Current != track.P(3, 3) || g.Mode() != Race {
		t.Fatal("busy request changed state")
	}
	if n := len(rec.notices); n != 2 {
		t.Errorf("notices = %d, want 2", n)
	}

	g.SetBusy(false)
	if _, err := g.Move(track.P(4, 3)); err != nil {
		t.Fatalf("Move() after busy cleared error = %v", err)
	}
}

func TestStopResetsRace(t *testing.T) {
	g, _ := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}
	for _, target := range lapOfLoop {
		if _, err := g.Move(target); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	p := g.Players()[0]
	if g.Mode() != Menu || p.Lap != 0 || p.Current != (track.Position{}) || g.Moves() != 0 {
		t.Errorf("after Stop: mode %v, player %+v, moves %d", g.Mode(), p, g.Moves())
	}
	if err := g.Stop(); !errors.Is(err, ErrWrongMode) {
		t.Errorf("Stop() in Menu error = %v, want ErrWrongMode", err)
	}
}

func TestStartPreparationErrors(t *testing.T) {
	t.Run("no start line", func(t *testing.T) {
		rec := &recorder{}
		g := New(WithNotifier(rec))
		err := g.StartPreparation([MaxPlayers]Seat{{Active: true}})
		if !errors.Is(err, core.ErrStartMissing) {
			t.Fatalf("error = %v, want StartMissing", err)
		}
		if g.Mode() != Menu {
			t.Errorf("Mode() = %v, want Menu", g.Mode())
		}
	})

	t.Run("no active seats", func(t *testing.T) {
		g := New(WithGrid(track.MustParseRows(loopRows...), track.Right))
		err := g.StartPreparation([MaxPlayers]Seat{})
		if !errors.Is(err, core.ErrNoActivePlayers) {
			t.Fatalf("error = %v, want NoActivePlayers", err)
		}
	})

	t.Run("wrong mode", func(t *testing.T) {
		g, _ := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
		if err := g.StartPreparation([MaxPlayers]Seat{{Active: true}}); !errors.Is(err, ErrWrongMode) {
			t.Fatalf("error = %v, want ErrWrongMode", err)
		}
	})
}

func TestReplay(t *testing.T) {
	g, _ := newLoopGame(t, [MaxPlayers]Seat{{Active: true}})
	if err := g.StartReplay(); !errors.Is(err, ErrNotWon) {
		t.Fatalf("StartReplay() before a win error = %v", err)
	}
	if err := g.ChooseStart(track.P(3, 3)); err != nil {
		t.Fatal(err)
	}
	for lap := 0; lap < LapsToWin; lap++ {
		for _, target := range lapOfLoop {
			if _, err := g.Move(target); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := g.StartReplay(); err != nil {
		t.Fatalf("StartReplay() error = %v", err)
	}
	frames := g.ReplayFrames()
	if len(frames) != 1+2*len(lapOfLoop) {
		t.Fatalf("frames = %d, want %d", len(frames), 1+2*len(lapOfLoop))
	}
	if frames[0][0] != track.P(3, 3) || frames[1][0] != track.P(4, 3) {
		t.Errorf("first frames = %v, %v", frames[0][0], frames[1][0])
	}
	if _, err := g.Move(track.P(4, 3)); !errors.Is(err, ErrWrongMode) {
		t.Errorf("Move() during replay error = %v, want ErrWrongMode", err)
	}
	g.StopReplay()
	if g.Replaying() {
		t.Error("Replaying() after StopReplay")
	}
}

// loopRecord is loopRows padded with gravel to the minimum persisted height.
func loopRecord() Record {
	rec := TrackRecord(track.MustParseRows(loopRows...), track.Right)
	for len(rec.Track) < track.MinSize {
		rec.Track = append(rec.Track, make([]int, track.MinSize))
	}
	rec.Players[0] = PlayerRecord{Active: true, Name: "a", Last: []int{3, 3}, Current: []int{4, 3}}
	rec.Players[2] = PlayerRecord{Active: true, AI: true, Name: "b", Last: []int{1, 3}, Current: []int{1, 2}, Lap: 1}
	rec.CurrentPlayer = 2
	return rec
}

func TestLoad(t *testing.T) {
	rec := &recorder{}
	g := New(WithNotifier(rec))
	if err := g.Load(loopRecord()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Mode() != Race || g.Current() != 2 || !g.CurrentAutomated() {
		t.Fatalf("Mode() = %v, Current() = %d", g.Mode(), g.Current())
	}
	p := g.Players()[0]
	if p.Velocity() != track.P(1, 0) {
		t.Errorf("Velocity() = %v, want (1,0)", p.Velocity())
	}
	if _, err := g.MoveAutomated(); err != nil {
		t.Fatalf("MoveAutomated() error = %v", err)
	}
	if g.Current() != 0 || len(rec.shown) == 0 {
		t.Errorf("Current() = %d, candidates shown %v", g.Current(), rec.shown)
	}

	again := New()
	if err := again.Load(g.Record()); err != nil {
		t.Fatalf("Load(Record()) error = %v", err)
	}
	if again.Players() != g.Players() || !again.Grid().Equal(g.Grid()) || again.Current() != g.Current() {
		t.Error("Record round trip changed the game")
	}
}

func TestLoadTrackOnly(t *testing.T) {
	g := New()
	rec := loopRecord()
	rec.Players = TrackRecord(track.NewGrid(track.MinSize, track.MinSize), track.Left).Players
	rec.Direction = int(track.Left)
	if err := g.Load(rec); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Mode() != Menu || g.Direction() != track.Left {
		t.Errorf("Mode() = %v, Direction() = %v", g.Mode(), g.Direction())
	}
}

// openRecord is an all-road 10x10 board with the given seats placed.
func openRecord(players ...PlayerRecord) Record {
	rows := make([]string, track.MinSize)
	for i := range rows {
		rows[i] = "1111111111"
	}
	rec := TrackRecord(track.MustParseRows(rows...), track.Right)
	copy(rec.Players, players)
	return rec
}

func TestMoveWithNoLegalCandidate(t *testing.T) {
	rec := &recorder{}
	g := New(WithNotifier(rec))
	err := g.Load(openRecord(
		PlayerRecord{Active: true, Name: "fast", Last: []int{5, 2}, Current: []int{5, 8}},
		PlayerRecord{Active: true, Name: "slow", Last: []int{1, 1}, Current: []int{1, 1}},
	))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if anyLegal(g.LegalCandidates()) {
		t.Fatal("every candidate should be off the grid")
	}

	res, err := g.Move(track.P(5, 14))
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !slices.Contains(rec.notices, core.NoAvailableFields) {
		t.Errorf("notices = %v, want NoAvailableFields", rec.notices)
	}
	if !res.Crashed || res.Final != track.P(5, 9) {
		t.Errorf("Move() = %+v, want a crash backed up to (5,9)", res)
	}
	if got := g.Players()[0].Current; got != track.P(5, 9) {
		t.Errorf("Current = %v, want (5,9)", got)
	}
	if g.Current() != 1 {
		t.Errorf("Current() = %d, want the turn to pass to seat 1", g.Current())
	}
}

func TestMoveAlongEdgeDoesNotStackCars(t *testing.T) {
	g := New()
	err := g.Load(openRecord(
		PlayerRecord{Active: true, Last: []int{1, 1}, Current: []int{1, 5}},
		PlayerRecord{Active: true, Last: []int{0, 7}, Current: []int{0, 8}},
	))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	res, err := g.Move(track.P(0, 9))
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !res.Crashed || res.Final != track.P(1, 7) {
		t.Errorf("Move() = %+v, want a crash backed up to (1,7)", res)
	}
	ps := g.Players()
	if ps[0].Current == ps[1].Current {
		t.Errorf("both cars on %v", ps[0].Current)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   core.Code
	}{
		{"too few rows", func(r *Record) { r.Track = r.Track[:4] }, core.WrongBoardSize},
		{"ragged rows", func(r *Record) { r.Track[7] = r.Track[7][:9] }, core.WrongBoardSize},
		{"unknown terrain", func(r *Record) { r.Track[0][0] = 7 }, core.WrongBoardContents},
		{"contents before direction", func(r *Record) { r.Track[0][0] = 7; r.Direction = 9 }, core.WrongBoardContents},
		{"bad direction", func(r *Record) { r.Direction = 4 }, core.WrongCurrentPlayerOrDirection},
		{"bad current player", func(r *Record) { r.CurrentPlayer = 4 }, core.WrongCurrentPlayerOrDirection},
		{"three players", func(r *Record) { r.Players = r.Players[:3] }, core.InvalidPlayerData},
		{"lap out of range", func(r *Record) { r.Players[0].Lap = 3 }, core.InvalidPlayerData},
		{"off the grid", func(r *Record) { r.Players[0].Current = []int{10, 3} }, core.InvalidPlayerData},
		{"shared current", func(r *Record) { r.Players[2].Current = []int{4, 3} }, core.InvalidPlayerData},
		{"shared last", func(r *Record) { r.Players[2].Last = []int{3, 3} }, core.InvalidPlayerData},
		{"short position", func(r *Record) { r.Players[1].Last = []int{1} }, core.InvalidPlayerData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := loopRecord()
			tt.mutate(&rec)

			n := &recorder{}
			g := New(WithNotifier(n))
			before := g.Grid()
			err := g.Load(rec)
			if got := core.CodeOf(err); got != tt.want {
				t.Fatalf("Load() code = %v (%v), want %v", got, err, tt.want)
			}
			if g.Mode() != Menu || !g.Grid().Equal(before) {
				t.Error("failed Load changed the game")
			}
			if !slices.Equal(n.notices, []core.Code{tt.want}) {
				t.Errorf("notices = %v", n.notices)
			}
		})
	}
}
