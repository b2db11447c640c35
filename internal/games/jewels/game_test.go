package jewels

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

type soundLog struct{ ids []core.SoundID }

func (s *soundLog) PlaySound(id core.SoundID) { s.ids = append(s.ids, id) }

func (s *soundLog) last() core.SoundID {
	if len(s.ids) == 0 {
		return 0
	}
	return s.ids[len(s.ids)-1]
}

func testOptions() Options {
	return Options{
		Width:        8,
		Height:       6,
		Moves:        10,
		Difficulty:   2,
		SoundEnabled: true,
		Sparkles:     true,
		MaxSparkles:  40,
		Logger:       log.New(io.Discard),
	}
}

func newTestGame(t *testing.T, opts Options, seed int64) *Game {
	t.Helper()
	g := New(opts)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

// settle steps with no input until the board is idle.
func settle(t *testing.T, g *Game) {
	t.Helper()
	empty := platformcore.NewInputFrame()
	for range 600 {
		if g.Board().State() == core.StateIdle {
			return
		}
		g.Step(empty)
	}
	t.Fatalf("board never settled (state %v)", g.Board().State())
}

func frameWith(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// load replaces the board with a fixed layout.
func load(t *testing.T, g *Game, moves uint, rows ...string) {
	t.Helper()
	var s core.SaveState
	s.Moves = moves
	for y, row := range rows {
		for x, ch := range row {
			rec := core.EntityState{X: x, Y: y}
			switch {
			case ch >= '1' && ch <= '6':
				rec.Kind, rec.Color = core.KindGem, core.EntityType(ch-'0')
			case ch == '.':
				rec.Kind, rec.Color = core.KindGem, core.EntityType(5+(x+y)%2)
			case ch == 'B':
				rec.Kind = core.KindBomb
			default:
				continue
			}
			s.Entities = append(s.Entities, rec)
		}
	}
	if err := g.Board().Restore(s); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	g.restart()
}

func TestGameMetadata(t *testing.T) {
	g := New(testOptions())
	if g.ID() != "jewels" {
		t.Errorf("ID() = %q", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() is empty")
	}
}

func TestResetDealsFullBoard(t *testing.T) {
	g := newTestGame(t, testOptions(), 7)
	b := g.Board()

	if b.Width() != 8 || b.Height() != 6 {
		t.Fatalf("board is %dx%d, want 8x6", b.Width(), b.Height())
	}
	if b.ColorCount() != 4 {
		t.Errorf("ColorCount() = %d, want 4 for difficulty 2", b.ColorCount())
	}
	if st := g.State(); st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("State() = %+v, want a fresh game", st)
	}
}

func TestCursorClampsToBoard(t *testing.T) {
	g := newTestGame(t, testOptions(), 1)
	for range 20 {
		g.Step(frameWith(platformcore.ActionLeft))
		g.Step(frameWith(platformcore.ActionUp))
	}
	if g.Cursor() != core.C(0, 0) {
		t.Errorf("Cursor() = %v, want (0,0)", g.Cursor())
	}
	for range 20 {
		g.Step(frameWith(platformcore.ActionRight))
		g.Step(frameWith(platformcore.ActionDown))
	}
	if g.Cursor() != core.C(7, 5) {
		t.Errorf("Cursor() = %v, want (7,5)", g.Cursor())
	}
}

func TestSelectionRules(t *testing.T) {
	sounds := &soundLog{}
	opts := testOptions()
	opts.Sound = sounds
	g := newTestGame(t, opts, 3)
	load(t, g, 10,
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)

	g.cursor = core.C(2, 2)
	g.Step(frameWith(platformcore.ActionSelect))
	if sel, ok := g.Selection(); !ok || sel != core.C(2, 2) {
		t.Fatalf("Selection() = %v,%v, want (2,2)", sel, ok)
	}
	if sounds.last() != core.SoundSelect {
		t.Errorf("last sound = %d, want select", sounds.last())
	}

	// A far cell moves the selection.
	g.cursor = core.C(5, 4)
	g.Step(frameWith(platformcore.ActionSelect))
	if sel, _ := g.Selection(); sel != core.C(5, 4) {
		t.Errorf("Selection() = %v, want (5,4)", sel)
	}

	// The selected cell again deselects.
	g.Step(frameWith(platformcore.ActionSelect))
	if _, ok := g.Selection(); ok {
		t.Error("selection survived a second select")
	}
	if sounds.last() != core.SoundDeselect {
		t.Errorf("last sound = %d, want deselect", sounds.last())
	}
}

func TestCancelDropsSelection(t *testing.T) {
	g := newTestGame(t, testOptions(), 3)
	settle(t, g)
	g.Step(frameWith(platformcore.ActionSelect))
	g.Step(frameWith(platformcore.ActionCancel))
	if _, ok := g.Selection(); ok {
		t.Error("Cancel did not drop the selection")
	}
}

func TestAdjacentSelectSwaps(t *testing.T) {
	sounds := &soundLog{}
	opts := testOptions()
	opts.Sound = sounds
	g := newTestGame(t, opts, 3)
	load(t, g, 10,
		"........",
		"..1.....",
		"11......",
		"........",
		"........",
		"........",
	)

	g.cursor = core.C(2, 1)
	g.Step(frameWith(platformcore.ActionSelect))
	g.Step(frameWith(platformcore.ActionDown))
	g.Step(frameWith(platformcore.ActionSelect))

	if _, ok := g.Selection(); ok {
		t.Error("selection kept after a swap")
	}
	if g.Board().State() != core.StateSwapping {
		t.Fatalf("State() = %v, want Swapping", g.Board().State())
	}
	if sounds.last() != core.SoundSwap {
		t.Errorf("last sound = %d, want swap", sounds.last())
	}

	for i := 0; g.Board().State() == core.StateSwapping; i++ {
		if i > 300 {
			t.Fatal("swap never finished")
		}
		g.Step(platformcore.NewInputFrame())
	}
	if g.Board().Moves() != 9 {
		t.Errorf("Moves() = %d, want 9 after a matching swap", g.Board().Moves())
	}
}

func TestSelectingPowerUpFiresIt(t *testing.T) {
	g := newTestGame(t, testOptions(), 3)
	load(t, g, 10,
		"........",
		"........",
		"...B....",
		"........",
		"........",
		"........",
	)

	g.cursor = core.C(3, 2)
	g.Step(frameWith(platformcore.ActionSelect))

	if _, ok := g.Selection(); ok {
		t.Error("power-up was selected instead of fired")
	}
	if g.Board().EntityAt(3, 2) != nil {
		t.Error("bomb still on the board after firing")
	}
}

func TestInputIgnoredWhileBusy(t *testing.T) {
	g := newTestGame(t, testOptions(), 3)
	load(t, g, 10,
		"........",
		"........",
		"........",
		"________",
		"........",
		"........",
	)
	g.Step(platformcore.NewInputFrame())
	if g.Board().State() != core.StateFalling {
		t.Fatalf("State() = %v, want Falling", g.Board().State())
	}

	g.Step(frameWith(platformcore.ActionSelect))
	if _, ok := g.Selection(); ok {
		t.Error("selection accepted while the board was falling")
	}
}

func TestMouseClickSelectsCell(t *testing.T) {
	g := newTestGame(t, testOptions(), 3)
	settle(t, g)

	in := g.inner()
	frame := platformcore.NewInputFrame()
	frame.SetClick(in.X+3*cellW+1, in.Y+2*cellH)
	g.Step(frame)

	if g.Cursor() != core.C(3, 2) {
		t.Errorf("Cursor() = %v, want (3,2)", g.Cursor())
	}
	if sel, ok := g.Selection(); !ok || sel != core.C(3, 2) {
		t.Errorf("Selection() = %v,%v, want (3,2)", sel, ok)
	}

	if _, ok := g.cellAt(platformcore.Point{X: 0, Y: 0}); ok {
		t.Error("cellAt accepted a point outside the board")
	}
}

func TestDifficultyCyclesAndResets(t *testing.T) {
	g := newTestGame(t, testOptions(), 5)
	want := []int{3, 4, 1, 2}
	for _, level := range want {
		g.Step(frameWith(platformcore.ActionDifficulty))
		if g.Difficulty() != level {
			t.Fatalf("Difficulty() = %d, want %d", g.Difficulty(), level)
		}
		if g.Board().ColorCount() != 2+level {
			t.Errorf("ColorCount() = %d, want %d", g.Board().ColorCount(), 2+level)
		}
		if g.Board().Moves() != 10 {
			t.Errorf("Moves() = %d, want a fresh board", g.Board().Moves())
		}
	}
}

func TestPauseStopsTheClock(t *testing.T) {
	g := newTestGame(t, testOptions(), 5)
	g.Step(platformcore.NewInputFrame())
	before := g.Now()

	g.Step(frameWith(platformcore.ActionPause))
	for range 10 {
		g.Step(platformcore.NewInputFrame())
	}
	if !g.State().Paused {
		t.Fatal("game not paused")
	}
	if !g.Now().Equal(before) {
		t.Errorf("clock advanced while paused: %v -> %v", before, g.Now())
	}

	g.Step(frameWith(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause did not resume")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New(testOptions())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})
	if !g.State().Paused {
		t.Fatal("tiny screen should pause the game")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize to a large screen did not unpause")
	}
}

func TestScoreRollsUp(t *testing.T) {
	g := newTestGame(t, testOptions(), 3)
	load(t, g, 10,
		"........",
		"..1.....",
		"11......",
		"........",
		"........",
		"........",
	)
	g.cursor = core.C(2, 1)
	g.Step(frameWith(platformcore.ActionSelect))
	g.cursor = core.C(2, 2)
	g.Step(frameWith(platformcore.ActionSelect))

	for i := 0; g.Board().Score() == 0; i++ {
		if i > 600 {
			t.Fatal("matched tokens never scored")
		}
		g.Step(platformcore.NewInputFrame())
	}
	if g.shownScore >= float64(g.Board().Score()) {
		t.Errorf("shown score jumped straight to %v", g.shownScore)
	}

	for range 600 {
		g.Step(platformcore.NewInputFrame())
	}
	if g.shownScore != float64(g.Board().Score()) {
		t.Errorf("shown score %v never reached %d", g.shownScore, g.Board().Score())
	}
	if g.hiScore != int(g.Board().Score()) {
		t.Errorf("hiScore = %d, want %d", g.hiScore, g.Board().Score())
	}
}

func TestSparklesAreCappedAndExpire(t *testing.T) {
	opts := testOptions()
	opts.MaxSparkles = 5
	g := newTestGame(t, opts, 3)

	for range 10 {
		g.sparkles.SpawnEffects(40, core.C(1, 1), 21275)
	}
	if g.sparkles.Len() != 5 {
		t.Fatalf("Len() = %d, want cap of 5", g.sparkles.Len())
	}

	for range 100 {
		g.sparkles.step(g.dt)
	}
	if g.sparkles.Len() != 0 {
		t.Errorf("Len() = %d after 1.6s, want 0", g.sparkles.Len())
	}
}

func TestSuspendResume(t *testing.T) {
	src := newTestGame(t, testOptions(), 11)
	settle(t, src)

	blob, ok := src.Suspend()
	if !ok || blob == "" {
		t.Fatal("Suspend() returned nothing for a live game")
	}

	dst := newTestGame(t, testOptions(), 99)
	if err := dst.Resume(blob); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	for y := range 6 {
		for x := range 8 {
			if src.Board().TypeAt(x, y) != dst.Board().TypeAt(x, y) {
				t.Fatalf("cell (%d,%d) differs after resume", x, y)
			}
		}
	}

	if err := dst.Resume("garbage!"); err == nil {
		t.Error("Resume accepted garbage")
	}
}

func TestSuspendAfterGameOver(t *testing.T) {
	g := newTestGame(t, testOptions(), 11)
	load(t, g, 0,
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	for range 120 {
		g.Step(platformcore.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("board with no moves never ended")
	}
	if _, ok := g.Suspend(); ok {
		t.Error("Suspend() kept a finished game")
	}
}

func TestDeterminism(t *testing.T) {
	script := []platformcore.Action{
		platformcore.ActionSelect, platformcore.ActionRight, platformcore.ActionSelect,
		platformcore.ActionDown, platformcore.ActionSelect, platformcore.ActionUp,
		platformcore.ActionSelect, platformcore.ActionLeft, platformcore.ActionSelect,
	}
	run := func() Snapshot {
		g := newTestGame(t, testOptions(), 42)
		for i := range 900 {
			f := platformcore.NewInputFrame()
			if i%30 == 0 {
				f.Set(script[(i/30)%len(script)])
			}
			g.Step(f)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Tick != b.Tick || a.State != b.State || a.Board.Score != b.Board.Score ||
		a.Board.Moves != b.Board.Moves || a.Cursor != b.Cursor || a.Sparkles != b.Sparkles {
		t.Fatalf("runs diverged:\n%+v\n%+v", a, b)
	}
	if len(a.Board.Entities) != len(b.Board.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(a.Board.Entities), len(b.Board.Entities))
	}
	for i := range a.Board.Entities {
		if a.Board.Entities[i] != b.Board.Entities[i] {
			t.Fatalf("entity %d differs: %+v vs %+v", i, a.Board.Entities[i], b.Board.Entities[i])
		}
	}
}
