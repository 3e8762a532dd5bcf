package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-rewind/internal/config"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/world"
)

// spawnTries bounds the search for a free spawn point.
const spawnTries = 32

// Arena is the endless mode: one room, waves of enemies that grow with
// the difficulty level until the player dies.
type Arena struct {
	session
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	room       *world.Room
	wave       int
	spawned    int
	nextWave   float64 // seconds until the next wave, negative while one is live
}

// NewArena creates an arena game instance.
func NewArena() *Arena {
	return &Arena{session: newSession("arena")}
}

// ID returns the unique identifier for this game.
func (g *Arena) ID() string {
	return "rewind_arena"
}

// Title returns the display name for this game.
func (g *Arena) Title() string {
	return "Rewind Arena"
}

// Reset builds the arena and schedules the first wave.
func (g *Arena) Reset(rt core.RuntimeConfig) {
	g.resetRun(rt)
	g.cfg = loadConfig(rt, g.logger)

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.wave = 0
	g.spawned = 0
	g.nextWave = 0

	scene, err := world.NewSceneFor(g.cfg, g.sounds)
	if err != nil {
		g.fail("cannot build arena", err)
		return
	}
	a := g.cfg.Arena
	g.room = world.NewRoom("arena", core.Zero, core.V(a.Width, a.Height))
	scene.AddRoom(g.room)
	for i, p := range pillars(a) {
		scene.AddObstacle(world.NewObstacle(fmt.Sprintf("pillar_%d", i), p, core.V(4, 2)))
	}
	scene.SetScreen(rt.ScreenW, rt.ScreenH)
	scene.Start(g.room)
	g.scene = scene
	g.logger.Info("arena started", "width", a.Width, "height", a.Height)
}

// pillars returns cover positions at the quarter points of the arena.
func pillars(a config.ArenaConfig) []core.Vec2 {
	x, y := a.Width/4, a.Height/4
	return []core.Vec2{core.V(-x, -y), core.V(x, -y), core.V(-x, y), core.V(x, y)}
}

// Step advances the game by one tick.
func (g *Arena) Step(in core.InputFrame) core.StepResult {
	if !g.advance(in) || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if g.nextWave < 0 {
		if g.scene.Manager.EnemyCount() == 0 {
			g.logger.Info("wave cleared", "wave", g.wave, "score", g.score())
			g.nextWave = g.cfg.Arena.WaveDelay
		}
		return core.StepResult{State: g.State()}
	}
	g.nextWave -= g.runtime.DT()
	if g.nextWave <= 0 {
		g.spawnWave()
	}
	return core.StepResult{State: g.State()}
}

// spawnWave adds the next wave. Size, health, speed and shooter cooldown
// follow the difficulty level for the current score.
func (g *Arena) spawnWave() {
	g.wave++
	g.nextWave = -1
	a := g.cfg.Arena
	score := g.score()

	size := g.difficulty.WaveSize(a.BaseWave, a.MaxExtra, score, g.ticks)
	shooters := int(math.Round(float64(size) * core.ClampF(a.ShooterRatio, 0, 1)))

	for i := 0; i < size; i++ {
		kind := enemy.KindMelee
		if i < shooters {
			kind = enemy.KindShooter
		}
		ecfg := world.EnemyTuning(kind, g.cfg.Enemies)
		ecfg.MaxHealth = g.difficulty.Health(ecfg.MaxHealth, score, g.ticks)
		ecfg.MoveSpeed = g.difficulty.Speed(ecfg.MoveSpeed, score, g.ticks)
		if kind == enemy.KindShooter {
			ecfg.ShotCooldown = g.difficulty.Cooldown(ecfg.ShotCooldown, score, g.ticks)
		}
		g.spawned++
		g.scene.AddEnemy(fmt.Sprintf("w%d_%d", g.wave, g.spawned), ecfg, g.spawnPoint(), true)
	}
	g.logger.Info("wave spawned", "wave", g.wave, "size", size, "shooters", shooters,
		"level", g.difficulty.Level(score, g.ticks))
}

// spawnPoint picks a free spot inside the arena away from the player.
// After spawnTries misses the best candidate seen is used.
func (g *Arena) spawnPoint() core.Vec2 {
	area := g.room.Area()
	player := g.scene.Player.Pos()
	var best core.Vec2
	bestDist := -1.0
	for i := 0; i < spawnTries; i++ {
		p := core.V(
			area.MinX+1+g.rng.Float64()*(area.MaxX-area.MinX-2),
			area.MinY+1+g.rng.Float64()*(area.MaxY-area.MinY-2),
		)
		if g.scene.Blocked(p, 0.5) {
			continue
		}
		d := core.Dist(p, player)
		if d >= g.cfg.Arena.SpawnMargin {
			return p
		}
		if d > bestDist {
			best, bestDist = p, d
		}
	}
	if bestDist < 0 {
		return g.room.Pos
	}
	return best
}

// Wave returns the number of the current wave.
func (g *Arena) Wave() int { return g.wave }

// Render draws the current game state to the screen.
func (g *Arena) Render(dst *core.Screen) {
	dst.Clear()
	if g.scene != nil {
		drawScene(dst, g.scene)
	}
	if g.nextWave > 0 && g.wave > 0 && !g.gameOver {
		dst.DrawTextCentered(1, fmt.Sprintf(" Wave %d cleared ", g.wave))
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	switch {
	case g.failure != "":
		drawCenteredMessage(dst, "ERROR", g.failure)
	case g.gameOver:
		drawCenteredMessage(dst, "YOU DIED", fmt.Sprintf("Wave %d  |  Score: %d  |  Press R to restart", g.wave, g.score()))
	}
}

// HUD returns the status line values.
func (g *Arena) HUD() HUD {
	return g.hud(g.Title(), "arena", g.wave)
}

// State returns the current game state.
func (g *Arena) State() core.GameState {
	return g.state("arena")
}

// Register the game with the registry
func init() {
	registry.Register("rewind_arena", func() registry.Game {
		return NewArena()
	})
}
