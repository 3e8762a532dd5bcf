package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/game"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

// stubGame records the frames it is stepped with.
type stubGame struct {
	frames  []core.InputFrame
	state   core.GameState
	resets  int
	resized [2]int
	sound   audio.Player
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{Level: "one"} }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *stubGame) SetSound(p audio.Player) { g.sound = p }
func (g *stubGame) HUD() game.HUD { return game.HUD{Title: "Stub", MaxHealth: 10, Health: 5} }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *stubGame) last() core.InputFrame { return g.frames[len(g.frames)-1] }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(g *stubGame, store *storage.Store) Model {
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}, Options{Sound: &audio.Recorder{}})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestControlsHoldsMovement(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.3) // 3 ticks
	in := core.NewInputFrame()

	c.Key(keyMsg("d"), &in)
	c.Tick(&in)
	if !in.MoveChanged || in.Move != core.V(1, 0) {
		t.Fatalf("move = %v changed=%v, expected right", in.Move, in.MoveChanged)
	}

	in.Clear()
	c.Tick(&in)
	if in.MoveChanged {
		t.Error("held key should not resend movement")
	}

	in.Clear()
	c.Tick(&in)
	in.Clear()
	c.Tick(&in)
	if !in.MoveChanged || in.Move != core.Zero {
		t.Errorf("move = %v, expected a stop after the latch ran out", in.Move)
	}
}

func TestControlsOppositeDirectionsCancel(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.3)
	in := core.NewInputFrame()

	c.Key(keyMsg("w"), &in)
	c.Key(keyMsg("s"), &in)
	c.Key(keyMsg("a"), &in)
	c.Tick(&in)
	if in.Move != core.V(-1, -1) {
		t.Errorf("move = %v, expected down-left", in.Move)
	}
}

func TestControlsShiftedMoveRolls(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.3)
	in := core.NewInputFrame()

	c.Key(keyMsg("D"), &in)
	c.Tick(&in)
	if !in.Has(core.ActionRoll) || in.Move != core.V(1, 0) {
		t.Errorf("frame = %+v, expected roll with right movement", in)
	}
}

func TestControlsFireEdges(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.1) // 1 tick
	in := core.NewInputFrame()

	c.Mouse(tea.MouseMsg{X: 5, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, &in, 0)
	c.Tick(&in)
	if !in.Has(core.ActionFire) || in.PointerX != 5 || in.PointerY != 3 {
		t.Fatalf("frame = %+v, expected fire at the pointer", in)
	}

	in.Clear()
	c.Tick(&in)
	if in.Has(core.ActionFire) {
		t.Error("held button should fire once")
	}

	in.Clear()
	c.Mouse(tea.MouseMsg{X: 6, Y: 3, Action: tea.MouseActionRelease}, &in, 0)
	c.Tick(&in)
	if !in.Has(core.ActionFireRelease) {
		t.Error("release should be reported")
	}
}

func TestControlsClickWithinOneTickFires(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.1)
	in := core.NewInputFrame()

	c.Mouse(tea.MouseMsg{X: 4, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, &in, 0)
	c.Mouse(tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionRelease}, &in, 0)
	c.Tick(&in)
	if !in.Has(core.ActionFire) {
		t.Fatalf("frame = %+v, expected a quick click to fire", in)
	}

	in.Clear()
	c.Tick(&in)
	if !in.Has(core.ActionFireRelease) || in.Has(core.ActionFire) {
		t.Errorf("frame = %+v, expected the click to release on the next tick", in)
	}
}

func TestControlsKeyboardFireReleases(t *testing.T) {
	c := NewControls(DefaultKeyMap(), 10, 0.2) // 2 ticks
	in := core.NewInputFrame()

	c.Key(keyMsg("f"), &in)
	c.Tick(&in)
	if !in.Has(core.ActionFire) {
		t.Fatal("f should fire")
	}
	var released bool
	for i := 0; i < 3; i++ {
		in.Clear()
		c.Tick(&in)
		released = released || in.Has(core.ActionFireRelease)
	}
	if !released {
		t.Error("keyboard fire should release when the key stops repeating")
	}
}

func TestControlsActions(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{"r", core.ActionReload},
		{" ", core.ActionRoll},
		{"q", core.ActionRewind},
		{"e", core.ActionInteract},
		{"enter", core.ActionAdvance},
		{"g", core.ActionNextGun},
		{"p", core.ActionPause},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			c := NewControls(DefaultKeyMap(), 60, 0)
			in := core.NewInputFrame()
			if c.Key(keyMsg(tt.key), &in) {
				t.Fatal("unexpected quit")
			}
			if !in.Has(tt.want) {
				t.Errorf("key %q did not set %v", tt.key, tt.want)
			}
		})
	}

	c := NewControls(DefaultKeyMap(), 60, 0)
	in := core.NewInputFrame()
	if !c.Key(keyMsg("ctrl+c"), &in) {
		t.Error("ctrl+c should quit")
	}
}

func TestModelReservesHUDRows(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	if m.config.ScreenH != 24-hudRows || m.screen.Height() != 24-hudRows {
		t.Errorf("field height = %d, expected %d", m.config.ScreenH, 24-hudRows)
	}
	if _, ok := g.sound.(*audio.Recorder); !ok {
		t.Error("sound player not handed to the game")
	}

	out := m.View()
	if !strings.Contains(out, "stub") || !strings.Contains(out, "Stub") {
		t.Error("view should hold the field and the HUD")
	}
	if n := strings.Count(out, "\n"); n != 24-1 {
		t.Errorf("view has %d rows, expected 24", n+1)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("resize reset the game %d times", g.resets-1)
	}
	if g.resized != [2]int{100, 40 - hudRows} {
		t.Errorf("game resized to %v", g.resized)
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m := newTestModel(g, store)
	for i := 0; i < 20; i++ {
		m = update(t, m, TickMsg{})
	}
	g.state = core.GameState{Score: 7, GameOver: true, Level: "two"}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Score != 7 || runs[0].Level != "two" || runs[0].Duration.Seconds() != 2 {
		t.Errorf("run = %+v", runs[0])
	}
	if m.LastRun() == nil || m.LastRun().RunID != runs[0].RunID {
		t.Error("LastRun should match the stored run")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	g.state = core.GameState{GameOver: true}
	m = update(t, m, TickMsg{})

	m = update(t, m, keyMsg("r"))
	m = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, expected a restart", g.resets)
	}
	if m.gameState.GameOver {
		t.Error("state should come from the new run")
	}
}

func TestModelReloadIsNotRestartWhileAlive(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	m = update(t, m, keyMsg("r"))
	m = update(t, m, TickMsg{})

	if g.resets != 1 || !g.last().Has(core.ActionReload) {
		t.Error("r should reload during a run")
	}
}

func TestModelBackToMenuWhenEmbedded(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, Options{Embedded: true})
	m.Init()

	m = update(t, m, keyMsg("b"))
	if m.BackToMenu() {
		t.Fatal("b should do nothing during play")
	}

	g.state.Paused = true
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("b"))
	if !m.BackToMenu() {
		t.Error("b should leave a paused game")
	}
}
