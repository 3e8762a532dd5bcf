package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

// Options configures a game model beyond the runtime config.
type Options struct {
	Sound  audio.Player // nil plays nothing
	Logger *log.Logger  // nil keeps the game's default logger
	// Embedded models hand control back to a menu on B instead of quitting.
	Embedded bool
	// HoldSeconds is how long a key press counts as held. Zero uses the default.
	HoldSeconds float64
}

// soundSetter is implemented by games that emit sounds.
type soundSetter interface {
	SetSound(audio.Player)
}

// loggerSetter is implemented by games that log run events.
type loggerSetter interface {
	SetLogger(*log.Logger)
}

// Model is the Bubble Tea model for running a Rewind game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	width      int // terminal width
	height     int // terminal height, HUD included
	inputFrame core.InputFrame
	controls   *Controls
	hud        *hudView
	gameState  core.GameState
	embedded   bool
	quitting   bool
	backToMenu bool
	ticks      int  // simulated ticks in the current run
	scoreSaved bool // Whether the run has been saved for current game over
	lastRun    *storage.Run
}

// NewModel creates a new Bubble Tea model for the given game. cfg holds
// the terminal size; the play field is what remains after the HUD.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if s, ok := game.(soundSetter); ok && opts.Sound != nil {
		s.SetSound(opts.Sound)
	}
	if l, ok := game.(loggerSetter); ok && opts.Logger != nil {
		l.SetLogger(opts.Logger)
	}

	width, height := cfg.ScreenW, cfg.ScreenH
	cfg.ScreenH = fieldHeight(height)
	keys := DefaultKeyMap()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		width:      width,
		height:     height,
		inputFrame: core.NewInputFrame(),
		controls:   NewControls(keys, cfg.TickRate, opts.HoldSeconds),
		hud:        newHUDView(keys, width),
		embedded:   opts.Embedded,
	}
}

// fieldHeight is the number of rows left for the play field.
func fieldHeight(height int) int {
	return max(height-hudRows, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.controls.Mouse(msg, &m.inputFrame, 0)
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
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.hud.toggleHelp()
		return m, nil
	case "r":
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
			return m, nil
		}
	case "b":
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
	}

	if m.controls.Key(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going and only resizes the view.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = fieldHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.hud.setWidth(msg.Width)
	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

// resizer is implemented by games whose camera follows the terminal size.
type resizer interface {
	Resize(w, h int)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.ticks = 0
		m.inputFrame.Clear()
		m.controls.Release(&m.inputFrame)
		return m, tickCmd(m.config.TickRate)
	}

	m.controls.Tick(&m.inputFrame)

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	if !result.State.Paused && !result.State.GameOver {
		m.ticks++
	}
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Runs that never started, such as a
// level that failed to load, are not recorded.
func (m *Model) saveRun() {
	if m.ticks == 0 || (m.gameState.Score == 0 && !m.gameState.Cleared) {
		return
	}
	run := storage.Run{
		GameID:   m.game.ID(),
		Level:    m.gameState.Level,
		Score:    m.gameState.Score,
		Cleared:  m.gameState.Cleared,
		Duration: time.Duration(m.ticks) * time.Second / time.Duration(m.config.TickRate),
	}
	if m.store == nil {
		m.lastRun = &run
		return
	}
	saved, err := m.store.SaveRun(run)
	if err != nil {
		log.Warn("cannot save run", "game", run.GameID, "error", err)
		return
	}
	log.Info("run saved", "game", saved.GameID, "run", saved.RunID, "score", saved.Score, "cleared", saved.Cleared)
	m.lastRun = &saved
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)

	// Create screenshots directory
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".rewind", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.screen.Clear()
	m.game.Render(m.screen)

	field := RenderScreen(m.screen, m.gameState.Paused || m.gameState.GameOver)
	src, ok := m.game.(hudSource)
	if !ok {
		return field
	}
	return field + "\n" + m.hud.view(src.HUD(), m.gameState)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRun returns the run recorded at the last game over, nil if none.
func (m Model) LastRun() *storage.Run {
	return m.lastRun
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Aim follows the pointer
	)

	_, err := p.Run()
	return err
}
