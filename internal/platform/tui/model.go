package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

// Rows reserved under the game for the short and full key help.
const (
	shortHelpRows = 1
	fullHelpRows  = 4
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// hiScorer is implemented by games that show the stored best score.
type hiScorer interface {
	SetHiScore(score int)
}

// Session describes where a player's progress is kept.
type Session struct {
	Store  *storage.Store // nil disables scores and saves
	Slot   string         // save slot name
	Fresh  bool           // ignore any saved board
	Logger *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       core.Game
	screen     *core.Screen
	session    Session
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, session Session) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if session.Slot == "" {
		session.Slot = "default"
	}
	if session.Logger == nil {
		session.Logger = log.Default()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-shortHelpRows, 1)),
		session:    session,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game, resumes a saved board if there is one and starts
// the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)
	m.resume()
	return tickCmd(m.config)
}

// resume loads the slot's save and the stored best score.
func (m Model) resume() {
	store := m.session.Store
	if store == nil {
		return
	}

	if hs, ok := m.game.(hiScorer); ok {
		if best, err := store.HighScore(m.game.ID()); err == nil {
			hs.SetHiScore(best)
		} else {
			m.session.Logger.Warn("could not read high score", "err", err)
		}
	}

	susp, ok := m.game.(core.Suspender)
	if !ok {
		return
	}
	if m.session.Fresh {
		if err := store.DeleteGame(m.session.Slot, m.game.ID()); err != nil {
			m.session.Logger.Warn("could not clear save", "slot", m.session.Slot, "err", err)
		}
		return
	}

	save, err := store.LoadGame(m.session.Slot, m.game.ID())
	switch {
	case errors.Is(err, storage.ErrNoSave):
		return
	case err != nil:
		m.session.Logger.Warn("could not load save", "slot", m.session.Slot, "err", err)
		return
	}
	if err := susp.Resume(save.Data); err != nil {
		m.session.Logger.Warn("discarding unreadable save", "slot", m.session.Slot, "err", err)
		//nolint:errcheck // Best-effort cleanup
		store.DeleteGame(m.session.Slot, m.game.ID())
		return
	}
	m.session.Logger.Info("resumed saved board", "slot", m.session.Slot, "moves", save.Moves, "score", save.Score)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.SetClick(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.suspend()
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize follows the terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout sizes the game screen to the space above the help. Games that
// can't resize in place are restarted.
func (m *Model) layout() {
	rows := shortHelpRows
	if m.help.ShowAll {
		rows = fullHelpRows
	}
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-rows, 1))

	if r, ok := m.game.(core.Resizer); ok {
		r.Resize(m.screen.Width(), m.screen.Height())
	} else if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = m.screen.Height()
		m.game.Reset(cfg)
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	wasOver := m.gameState.GameOver
	m.gameState = result.State
	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Record the result once per finished game
	if m.gameState.GameOver && !m.scoreSaved {
		m.finish()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config)
}

// finish stores the final score and drops the slot's save.
func (m Model) finish() {
	store := m.session.Store
	if store == nil {
		return
	}
	if m.gameState.Score > 0 {
		if _, err := store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.session.Logger.Warn("could not save score", "err", err)
		}
	}
	if err := store.DeleteGame(m.session.Slot, m.game.ID()); err != nil {
		m.session.Logger.Warn("could not clear save", "slot", m.session.Slot, "err", err)
	}
	m.session.Logger.Info("game over", "score", m.gameState.Score)
}

// suspend saves an unfinished game to the session's slot.
func (m Model) suspend() {
	store := m.session.Store
	susp, ok := m.game.(core.Suspender)
	if store == nil || !ok {
		return
	}
	blob, ok := susp.Suspend()
	if !ok {
		return
	}
	if err := store.SaveGame(m.session.Slot, m.game.ID(), blob, m.gameState.Moves, m.gameState.Score); err != nil {
		m.session.Logger.Warn("could not save game", "slot", m.session.Slot, "err", err)
		return
	}
	m.session.Logger.Debug("saved board", "slot", m.session.Slot)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".jewels", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game and the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a game.
func Run(game core.Game, cfg core.RuntimeConfig, session Session) error {
	p := tea.NewProgram(
		NewModel(game, cfg, session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
