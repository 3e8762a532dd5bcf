// Package config provides YAML-based configuration loading for game tuning
// and level layouts, plus difficulty management for the arena mode.
package config

import "github.com/vovakirdan/tui-rewind/internal/core"

// RewindConfig contains all tuning for the game.
type RewindConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Guns       []GunConfig      `yaml:"guns"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Text       TextConfig       `yaml:"text"`
	Camera     CameraConfig     `yaml:"camera"`
	Campaign   CampaignConfig   `yaml:"campaign"`
	Arena      ArenaConfig      `yaml:"arena"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines movement, roll and rewind parameters for the player.
type PlayerConfig struct {
	MaxHealth      float64   `yaml:"max_health"`
	Speed          core.Vec2 `yaml:"speed"` // cells per second on each axis
	RollDuration   float64   `yaml:"roll_duration"`
	RollMultiplier float64   `yaml:"roll_multiplier"`
	RollCooldown   float64   `yaml:"roll_cooldown"`
	RewindCooldown float64   `yaml:"rewind_cooldown"`
	RewindPeriod   float64   `yaml:"rewind_period"`
	RewindCapacity int       `yaml:"rewind_capacity"`
	RewindDepth    int       `yaml:"rewind_depth"`
	MarkerEase     float64   `yaml:"marker_ease"`
	HealthbarRate  float64   `yaml:"healthbar_rate"`
}

// GunConfig defines one gun in the armory.
type GunConfig struct {
	ID               int              `yaml:"id"`
	Name             string           `yaml:"name"`
	MaxAmmo          int              `yaml:"max_ammo"`
	ReloadTime       float64          `yaml:"reload_time"`
	ShotsPerSecond   int              `yaml:"shots_per_second"`
	FireContinuously bool             `yaml:"fire_continuously"`
	PoolSize         int              `yaml:"pool_size"`
	Projectile       ProjectileConfig `yaml:"projectile"`
}

// ProjectileConfig defines projectile damage and speed for the normal and
// final-shot variants.
type ProjectileConfig struct {
	Damage      float64 `yaml:"damage"`
	Speed       float64 `yaml:"speed"`
	FinalDamage float64 `yaml:"final_damage"`
	FinalSpeed  float64 `yaml:"final_speed"`
	Radius      float64 `yaml:"radius"`
}

// EnemiesConfig holds per-kind enemy tuning.
type EnemiesConfig struct {
	Melee   EnemyConfig `yaml:"melee"`
	Shooter EnemyConfig `yaml:"shooter"`
}

// EnemyConfig defines tuning for one enemy kind.
type EnemyConfig struct {
	MaxHealth     float64          `yaml:"max_health"`
	MoveSpeed     float64          `yaml:"move_speed"`
	Damage        float64          `yaml:"damage"`
	SwingRange    float64          `yaml:"swing_range"`
	HitRange      float64          `yaml:"hit_range"`
	Windup        float64          `yaml:"windup"`
	BurstCount    int              `yaml:"burst_count"`
	BurstInterval float64          `yaml:"burst_interval"`
	ShotCooldown  float64          `yaml:"shot_cooldown"`
	AggroRange    float64          `yaml:"aggro_range"` // 0 = always aggressive
	HealthbarRate float64          `yaml:"healthbar_rate"`
	Projectile    ProjectileConfig `yaml:"projectile"`
}

// TextConfig defines typing speeds for dialogue and popup text.
type TextConfig struct {
	TextSpeed  float64 `yaml:"text_speed"`  // seconds per dialogue character
	PopupSpeed float64 `yaml:"popup_speed"` // seconds per popup character
}

// CameraConfig defines the viewport in world units.
type CameraConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CampaignConfig lists the campaign levels in play order.
type CampaignConfig struct {
	Levels []string `yaml:"levels"`
}

// ArenaConfig defines the wave-survival arena.
type ArenaConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BaseWave     int     `yaml:"base_wave"`     // enemies in the first wave
	MaxExtra     int     `yaml:"max_extra"`     // extra enemies per wave at max difficulty
	ShooterRatio float64 `yaml:"shooter_ratio"` // fraction of each wave that shoots
	WaveDelay    float64 `yaml:"wave_delay"`    // seconds between a cleared wave and the next
	SpawnMargin  float64 `yaml:"spawn_margin"`  // min distance between a spawn and the player
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to enemy move speed at max difficulty
	HealthMultiplier float64 `yaml:"health_multiplier"` // Added to enemy health at max difficulty
	CooldownFactor   float64 `yaml:"cooldown_factor"`   // Shooter cooldown reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown names fall back to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
