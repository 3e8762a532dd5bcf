package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/game"
)

// LevelSelection holds the user's choice from the campaign menu.
type LevelSelection struct {
	Level string // empty = start from the first level
}

// LevelMenuModel lets users start the campaign or pick a starting level.
type LevelMenuModel struct {
	levels        []game.LevelInfo
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelMenuModel creates a campaign menu over the given levels.
func NewLevelMenuModel(levels []game.LevelInfo, width, height int) LevelMenuModel {
	return LevelMenuModel{
		levels:   levels,
		width:    width,
		height:   height,
		choosing: true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m LevelMenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 { // 2 options: Campaign, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0: // Campaign
			m.choosing = false
			m.selection = LevelSelection{}
			return m, tea.Quit
		case 1: // Select Level
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.levels[m.levelCursor].ID}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m LevelMenuModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("C A M P A I G N", m.width)))
	b.WriteString("\n\n")

	modes := []string{
		fmt.Sprintf("Start (%d levels)", len(m.levels)),
		"Select Level...",
	}

	for i, mode := range modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuHelpStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

func (m LevelMenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("SELECT LEVEL", m.width)))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, lvl.Name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuHelpStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector lists the campaign levels and returns the choice, nil
// when the user backed out or quit.
func RunLevelSelector(cfg core.RuntimeConfig) (*LevelSelection, error) {
	levels, err := game.CampaignLevels()
	if err != nil {
		return nil, err
	}
	model := NewLevelMenuModel(levels, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
