package config

import (
	"math"
	"testing"
)

func arenaDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling: ScalingConfig{
			SpeedMultiplier:  1,
			HealthMultiplier: 1,
			CooldownFactor:   0.5,
		},
	}
}

func TestDifficultyLevel(t *testing.T) {
	tests := []struct {
		name  string
		cfg   func(*DifficultyConfig)
		score int
		ticks int
		want  float64
	}{
		{"start", func(*DifficultyConfig) {}, 0, 0, 0},
		{"halfway", func(*DifficultyConfig) {}, 5, 0, 0.5},
		{"capped", func(*DifficultyConfig) {}, 50, 0, 1},
		{"initial level", func(c *DifficultyConfig) { c.InitialLevel = 0.5 }, 5, 0, 0.75},
		{"time based", func(c *DifficultyConfig) { c.Progression.Type = "time" }, 0, 5, 0.5},
		{"disabled", func(c *DifficultyConfig) { c.Enabled = false; c.InitialLevel = 0.3 }, 10, 0, 0.3},
		{"none", func(c *DifficultyConfig) { c.Progression.Type = "none" }, 10, 0, 0},
		{"zero max_at", func(c *DifficultyConfig) { c.Progression.MaxAt = 0 }, 1, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := arenaDifficulty()
			tc.cfg(&cfg)
			d := NewDifficultyManager(cfg)
			if got := d.Level(tc.score, tc.ticks); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Level(%d, %d) = %v, expected %v", tc.score, tc.ticks, got, tc.want)
			}
		})
	}
}

func TestDifficultyArenaScaling(t *testing.T) {
	d := NewDifficultyManager(arenaDifficulty())

	if got := d.Health(2, 10, 0); got != 4 {
		t.Errorf("Health at max = %v, expected 4", got)
	}
	if got := d.Speed(5, 0, 0); got != 5 {
		t.Errorf("Speed at start = %v, expected 5", got)
	}
	if got := d.Cooldown(2, 10, 0); got != 1 {
		t.Errorf("Cooldown at max = %v, expected 1", got)
	}
	if got := d.Cooldown(0.1, 10, 0); got != 0.2 {
		t.Errorf("Cooldown floor = %v, expected 0.2", got)
	}
	if got := d.WaveSize(3, 6, 0, 0); got != 3 {
		t.Errorf("WaveSize at start = %d, expected 3", got)
	}
	if got := d.WaveSize(3, 6, 10, 0); got != 9 {
		t.Errorf("WaveSize at max = %d, expected 9", got)
	}
	if got := d.WaveSize(0, 0, 0, 0); got != 1 {
		t.Errorf("WaveSize floor = %d, expected 1", got)
	}
}

func TestSetInitialLevelClamps(t *testing.T) {
	cfg := arenaDifficulty()
	cfg.Enabled = false
	d := NewDifficultyManager(cfg)
	d.SetInitialLevel(3)
	if d.Level(0, 0) != 1 {
		t.Errorf("initial level should clamp to 1, got %v", d.Level(0, 0))
	}
	if d.IsEnabled() {
		t.Error("disabled manager reports enabled")
	}
	d.SetEnabled(true)
	if !d.IsEnabled() {
		t.Error("SetEnabled(true) had no effect")
	}
}
