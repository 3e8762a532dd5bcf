package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

// MenuItem is one mode in the picker with its record so far.
type MenuItem struct {
	GameID string
	Title  string
	Stats  storage.GameStats // zero when the mode was never played
}

// menuBlurbs describes the modes in the menu.
var menuBlurbs = map[string]string{
	"rewind":       "the campaign, room by room",
	"rewind_arena": "endless waves, one room",
}

// MenuModel is the mode picker shown before a run.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered mode with its stats from store,
// which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var played map[string]*storage.GameStats
	if store != nil {
		played, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if st, ok := played[g.ID]; ok {
			items[i].Stats = *st
		}
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

// handleKey moves the cursor, wrapping at both ends, or leaves the menu.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case MenuActionSelect:
		if n > 0 {
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// record summarizes a mode's stats in one line.
func (it MenuItem) record() string {
	st := it.Stats
	if st.GamesCount == 0 {
		return "not played yet"
	}
	line := fmt.Sprintf("best %d, %d runs", st.HighScore, st.GamesCount)
	if st.Clears > 0 {
		line += fmt.Sprintf(", %d cleared", st.Clears)
	}
	return line + ", last " + st.LastPlayed.Format("Jan 02")
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		centerText(menuTitleStyle.Render("R E W I N D"), m.width),
		"",
		centerText("Select a mode", m.width),
		"",
	}
	for i, item := range m.items {
		entry := fmt.Sprintf("  %-14s %s", item.Title, menuBlurbs[item.GameID])
		if i == m.cursor {
			entry = menuCursorStyle.Render("> " + entry[2:])
		}
		lines = append(lines, centerText(entry, m.width))
	}
	if len(m.items) > 0 {
		lines = append(lines, "", centerText(menuHelpStyle.Render(m.items[m.cursor].record()), m.width))
	}
	lines = append(lines, "",
		centerText(menuHelpStyle.Render("↑/↓ move  enter play  tab scores  q quit"), m.width), "")
	return strings.Join(lines, "\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// centerText pads text so it sits in the middle of width cells. Styled
// text is measured without its escape codes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
	} else {
		result.Quit = true
	}

	return result, nil
}
