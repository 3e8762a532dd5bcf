package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

func pressMain(m MenuModel, keys ...tea.KeyMsg) MenuModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuShowsRecordOfHighlightedMode(t *testing.T) {
	m := NewMenuModel(boardStore(t), core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	if got := m.items[0].record(); !strings.Contains(got, "best 9, 2 runs, 1 cleared") {
		t.Errorf("campaign record = %q", got)
	}
	if !strings.Contains(m.View(), "best 9") {
		t.Error("menu should show the campaign record")
	}

	m = pressMain(m, keyDown)
	if !strings.Contains(m.View(), "best 21, 1 runs") {
		t.Error("menu should follow the cursor to the arena record")
	}
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if got := m.items[0].record(); got != "not played yet" {
		t.Errorf("record without store = %q", got)
	}

	m = pressMain(m, tea.KeyMsg{Type: tea.KeyUp}, keyEnter)
	sel := m.Selected()
	if sel == nil || sel.GameID != m.items[len(m.items)-1].GameID {
		t.Errorf("selected = %+v, expected up from the top to wrap to the last mode", sel)
	}
}

func TestMenuTabOpensScoreboard(t *testing.T) {
	m := pressMain(NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("tab should ask for the scoreboard")
	}
}
