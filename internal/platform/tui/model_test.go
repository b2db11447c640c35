package tui

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

// stubGame records what the platform asks of it.
type stubGame struct {
	state    core.GameState
	resumed  string
	hiScore  int
	resets   int
	actions  []core.Action
	resizedW int
	resizedH int
	badSave  bool
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) SetHiScore(score int) { g.hiScore = score }
func (g *stubGame) Resize(width, height int) { g.resizedW, g.resizedH = width, height }
func (g *stubGame) Suspend() (string, bool) { return "blob", !g.state.GameOver }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	for a := range in.Actions {
		g.actions = append(g.actions, a)
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Resume(blob string) error {
	if g.badSave {
		return errors.New("corrupt")
	}
	g.resumed = blob
	return nil
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "jewels.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(game core.Game, store *storage.Store, fresh bool) Model {
	cfg := core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60, Seed: 1}
	return NewModel(game, cfg, Session{
		Store:  store,
		Slot:   "alice",
		Fresh:  fresh,
		Logger: log.New(io.Discard),
	})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitResumesSaveAndBestScore(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore("stub", 300)
	require.NoError(t, err)
	require.NoError(t, store.SaveGame("alice", "stub", "saved-board", 4, 20))

	game := &stubGame{}
	m := newTestModel(game, store, false)
	m.Init()

	assert.Equal(t, 1, game.resets)
	assert.Equal(t, "saved-board", game.resumed)
	assert.Equal(t, 300, game.hiScore)
}

func TestInitFreshDropsSave(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("alice", "stub", "saved-board", 4, 20))

	game := &stubGame{}
	m := newTestModel(game, store, true)
	m.Init()

	assert.Empty(t, game.resumed)
	_, err := store.LoadGame("alice", "stub")
	assert.ErrorIs(t, err, storage.ErrNoSave)
}

func TestInitDiscardsUnreadableSave(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("alice", "stub", "garbage", 1, 0))

	m := newTestModel(&stubGame{badSave: true}, store, false)
	m.Init()

	_, err := store.LoadGame("alice", "stub")
	assert.ErrorIs(t, err, storage.ErrNoSave)
}

func TestQuitSuspendsToSlot(t *testing.T) {
	store := openStore(t)
	game := &stubGame{state: core.GameState{Score: 42, Moves: 6}}
	m := newTestModel(game, store, false)
	m.Init()

	next, _ := m.Update(TickMsg{})
	_, cmd := next.Update(keyMsg("q"))
	require.NotNil(t, cmd)

	save, err := store.LoadGame("alice", "stub")
	require.NoError(t, err)
	assert.Equal(t, "blob", save.Data)
	assert.Equal(t, 6, save.Moves)
	assert.Equal(t, 42, save.Score)
}

func TestGameOverRecordsScoreOnce(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveGame("alice", "stub", "old", 1, 1))

	game := &stubGame{state: core.GameState{Score: 120, GameOver: true}}
	var m tea.Model = newTestModel(game, store, true)
	for range 3 {
		m, _ = m.Update(TickMsg{})
	}

	scores, err := store.TopScores("stub", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 120, scores[0].Score)

	_, err = store.LoadGame("alice", "stub")
	assert.ErrorIs(t, err, storage.ErrNoSave)
}

func TestKeysAndClicksReachTheGame(t *testing.T) {
	game := &stubGame{}
	var m tea.Model = newTestModel(game, nil, false)

	m, _ = m.Update(keyMsg("h"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(TickMsg{})

	assert.ElementsMatch(t, []core.Action{core.ActionLeft, core.ActionSelect}, game.actions)

	// Input is cleared after the tick
	game.actions = nil
	m.Update(TickMsg{})
	assert.Empty(t, game.actions)
}

func TestHelpToggleResizesGame(t *testing.T) {
	game := &stubGame{}
	var m tea.Model = newTestModel(game, nil, false)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	assert.Equal(t, 70, game.resizedW)
	assert.Equal(t, 30-shortHelpRows, game.resizedH)

	m.Update(keyMsg("?"))
	assert.Equal(t, 30-fullHelpRows, game.resizedH)
}

func TestViewShowsGameAndHelp(t *testing.T) {
	m := newTestModel(&stubGame{}, nil, false)
	view := m.View()
	assert.Contains(t, view, "stub")
	assert.Contains(t, view, "select")
}
