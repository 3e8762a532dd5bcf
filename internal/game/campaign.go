package game

import (
	"fmt"

	"github.com/vovakirdan/tui-rewind/internal/config"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/world"
)

// Campaign plays the configured levels in order. Reaching a level exit
// moves on; leaving the last level clears the run.
type Campaign struct {
	session
	levels []config.Level
	index  int
}

// NewCampaign creates a campaign game instance.
func NewCampaign() *Campaign {
	return &Campaign{session: newSession("campaign")}
}

// ID returns the unique identifier for this game.
func (g *Campaign) ID() string {
	return "rewind"
}

// Title returns the display name for this game.
func (g *Campaign) Title() string {
	return "Rewind"
}

// Reset loads tuning and levels and starts the first level.
func (g *Campaign) Reset(rt core.RuntimeConfig) {
	g.resetRun(rt)
	g.cfg = loadConfig(rt, g.logger)

	levels, err := config.LoadLevels(levelDir)
	if err != nil {
		g.fail("cannot load levels", err)
		return
	}
	g.levels, err = config.CampaignOrder(g.cfg.Campaign, levels)
	if err != nil {
		g.fail("bad campaign order", err)
		return
	}
	if len(g.levels) == 0 {
		g.fail("no levels", fmt.Errorf("game: campaign is empty"))
		return
	}

	g.index = 0
	if startLevel != "" {
		i := g.find(startLevel)
		if i < 0 {
			g.fail("unknown start level", fmt.Errorf("game: level %q not found", startLevel))
			return
		}
		g.index = i
	}
	g.load(g.index)
}

// LevelInfo names a campaign level for level pickers.
type LevelInfo struct {
	ID   string
	Name string
}

// CampaignLevels lists the campaign levels in play order using the current
// config and level directory.
func CampaignLevels() ([]LevelInfo, error) {
	cfg, err := config.LoadRewind(configPath)
	if err != nil {
		return nil, err
	}
	levels, err := config.LoadLevels(levelDir)
	if err != nil {
		return nil, err
	}
	ordered, err := config.CampaignOrder(cfg.Campaign, levels)
	if err != nil {
		return nil, err
	}
	infos := make([]LevelInfo, 0, len(ordered))
	for _, lvl := range ordered {
		name := lvl.Name
		if name == "" {
			name = lvl.ID
		}
		infos = append(infos, LevelInfo{ID: lvl.ID, Name: name})
	}
	return infos, nil
}

// find returns the campaign index of the level id, or -1.
func (g *Campaign) find(id string) int {
	for i, lvl := range g.levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// load builds the scene for level i, banking the kills of the old scene.
func (g *Campaign) load(i int) {
	if g.scene != nil {
		g.banked += g.scene.Kills()
		g.scene.Stop()
		g.scene = nil
	}
	lvl := g.levels[i]
	scene, err := world.Build(lvl, g.cfg, g.sounds)
	if err != nil {
		g.fail("cannot build level", err)
		return
	}
	scene.SetScreen(g.runtime.ScreenW, g.runtime.ScreenH)
	g.index = i
	g.scene = scene
	g.logger.Info("level started", "level", lvl.ID, "score", g.banked)
}

// Step advances the game by one tick.
func (g *Campaign) Step(in core.InputFrame) core.StepResult {
	if !g.advance(in) {
		return core.StepResult{State: g.State()}
	}
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if id, ok := g.scene.LevelRequest(); ok {
		g.changeLevel(id)
	}
	return core.StepResult{State: g.State()}
}

// changeLevel follows a level exit. An empty id means the next level in
// the campaign; an unknown one is logged and treated the same way.
func (g *Campaign) changeLevel(id string) {
	next := g.index + 1
	if id != "" {
		if i := g.find(id); i >= 0 {
			next = i
		} else {
			g.logger.Warn("exit names an unknown level", "level", id)
		}
	}
	g.logger.Info("level finished", "level", g.levels[g.index].ID, "kills", g.scene.Kills())

	if next >= len(g.levels) {
		g.banked += g.scene.Kills()
		g.scene.Stop()
		g.scene = nil
		g.cleared = true
		g.gameOver = true
		g.logger.Info("campaign cleared", "score", g.banked, "ticks", g.ticks)
		return
	}
	g.load(next)
}

// Level returns the id of the current level.
func (g *Campaign) Level() string {
	if g.index < 0 || g.index >= len(g.levels) {
		return ""
	}
	return g.levels[g.index].ID
}

// Render draws the current game state to the screen.
func (g *Campaign) Render(dst *core.Screen) {
	dst.Clear()
	if g.scene != nil {
		drawScene(dst, g.scene)
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	switch {
	case g.failure != "":
		drawCenteredMessage(dst, "ERROR", g.failure)
	case g.cleared:
		drawCenteredMessage(dst, "CAMPAIGN CLEARED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score()))
	case g.gameOver:
		drawCenteredMessage(dst, "YOU DIED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score()))
	}
}

// HUD returns the status line values.
func (g *Campaign) HUD() HUD {
	name := g.Level()
	if g.index >= 0 && g.index < len(g.levels) && g.levels[g.index].Name != "" {
		name = g.levels[g.index].Name
	}
	return g.hud(g.Title(), name, 0)
}

// State returns the current game state.
func (g *Campaign) State() core.GameState {
	return g.state(g.Level())
}

// Register the game with the registry
func init() {
	registry.Register("rewind", func() registry.Game {
		return NewCampaign()
	})
}
