// Package game implements the Rewind game modes on top of the world
// simulation. Each mode owns one Scene, steps it at the platform's tick rate
// and draws it into a core.Screen.
package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/config"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/world"
)

// configPath stores the custom config path set via CLI
var configPath string

// levelDir stores the custom level directory set via CLI
var levelDir string

// startLevel is the campaign level to begin with, empty for the first one
var startLevel string

var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelDir sets a directory searched for level files before the defaults.
func SetLevelDir(dir string) {
	levelDir = dir
}

// SetStartLevel makes the campaign begin at the level with the given id.
func SetStartLevel(id string) {
	startLevel = id
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok {
		difficultyPreset = p
		return
	}
	difficultyPreset = "" // Use config default
}

// loadConfig reads tuning the way every mode does: file search order, then
// the preset, then the play area size.
func loadConfig(rt core.RuntimeConfig, logger *log.Logger) config.RewindConfig {
	cfg, err := config.LoadRewind(configPath)
	if err != nil {
		logger.Warn("using default tuning", "err", err)
		cfg = config.DefaultRewindConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRewindPreset(&cfg, difficultyPreset)
	}
	if rt.ScreenW > 0 && rt.ScreenH > 0 {
		cfg.Camera.Width = float64(rt.ScreenW)
		cfg.Camera.Height = float64(rt.ScreenH)
	}
	return cfg
}

// HUD is the per-frame status the platform shows around the play field.
type HUD struct {
	Title          string
	Level          string
	Health         float64
	MaxHealth      float64
	Gun            string
	Ammo           int
	MaxAmmo        int
	Reloading      bool
	ReloadFraction float64
	RollReady      bool
	RewindReady    bool
	Kills          int
	Wave           int
	Dialogue       bool
}

// session is the state shared by both modes: the running scene and the
// run flags the platform reads through State.
type session struct {
	runtime core.RuntimeConfig
	cfg     config.RewindConfig
	scene   *world.Scene
	sounds  audio.Player
	logger  *log.Logger

	banked   int // kills from finished scenes
	ticks    int
	paused   bool
	gameOver bool
	cleared  bool
	failure  string
}

func newSession(prefix string) session {
	return session{
		sounds: audio.Nop{},
		logger: log.Default().WithPrefix(prefix),
	}
}

// SetSound routes gameplay sounds to p. Takes effect on the next Reset.
func (s *session) SetSound(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	s.sounds = p
}

// SetLogger replaces the logger used for run events.
func (s *session) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Scene returns the running scene, nil before Reset.
func (s *session) Scene() *world.Scene { return s.scene }

// Resize changes the camera viewport to the new play field size without
// restarting the run.
func (s *session) Resize(w, h int) {
	s.runtime.ScreenW, s.runtime.ScreenH = w, h
	if s.scene != nil {
		s.scene.Resize(w, h)
	}
}

func (s *session) resetRun(rt core.RuntimeConfig) {
	if s.scene != nil {
		s.scene.Stop()
		s.scene = nil
	}
	s.runtime = rt
	s.banked = 0
	s.ticks = 0
	s.paused = false
	s.gameOver = false
	s.cleared = false
	s.failure = ""
}

// fail ends the run with a message instead of crashing the platform.
func (s *session) fail(msg string, err error) {
	s.logger.Error(msg, "err", err)
	s.failure = msg
	s.gameOver = true
}

// advance handles pause and steps the scene. It reports whether the scene
// actually ran this tick.
func (s *session) advance(in core.InputFrame) bool {
	if s.gameOver || s.scene == nil {
		return false
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return false
	}
	s.ticks++
	s.scene.Step(s.runtime.DT(), in)
	if s.scene.PlayerDead() {
		s.gameOver = true
		s.logger.Info("player died", "score", s.score(), "ticks", s.ticks)
	}
	return true
}

func (s *session) score() int {
	if s.scene == nil {
		return s.banked
	}
	return s.banked + s.scene.Kills()
}

func (s *session) hud(title, level string, wave int) HUD {
	h := HUD{Title: title, Level: level, Kills: s.score(), Wave: wave}
	if s.scene == nil {
		return h
	}
	p := s.scene.Player
	h.Health = p.Body.Health()
	h.MaxHealth = p.Body.MaxHealth()
	if bar := p.Body.Healthbar(); bar != nil {
		h.Health = bar.Value()
	}
	if gun := p.Gun(); gun != nil {
		h.Gun = gun.Name
		h.MaxAmmo = gun.MaxAmmo
	}
	h.Ammo = p.Ammo()
	h.Reloading = p.Reloading()
	h.ReloadFraction = p.ReloadFraction()
	h.RollReady = !p.Rolling() && p.RollCooldown() <= 0
	h.RewindReady = p.RewindCooldown() <= 0 && p.MarkerReady()
	h.Dialogue = s.scene.DialogueActive()
	return h
}

func (s *session) state(level string) core.GameState {
	return core.GameState{
		Score:    s.score(),
		GameOver: s.gameOver,
		Cleared:  s.cleared,
		Paused:   s.paused,
		Level:    level,
	}
}
