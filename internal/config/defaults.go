package config

import (
	"embed"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

//go:embed defaults/rewind.yaml
var defaultRewindYAML []byte

//go:embed levels/*.yaml
var defaultLevels embed.FS

// DefaultRewindConfig returns the default game tuning.
func DefaultRewindConfig() RewindConfig {
	return RewindConfig{
		Player: PlayerConfig{
			MaxHealth:      10,
			Speed:          core.V(12, 6),
			RollDuration:   0.25,
			RollMultiplier: 2.5,
			RollCooldown:   0.6,
			RewindCooldown: 3,
			RewindPeriod:   0.2,
			RewindCapacity: 25,
			RewindDepth:    5,
			MarkerEase:     8,
			HealthbarRate:  6,
		},
		Guns: []GunConfig{
			{
				ID:             0,
				Name:           "revolver",
				MaxAmmo:        6,
				ReloadTime:     1.2,
				ShotsPerSecond: 3,
				PoolSize:       12,
				Projectile: ProjectileConfig{
					Damage:      1,
					Speed:       40,
					FinalDamage: 3,
					FinalSpeed:  60,
				},
			},
			{
				ID:               1,
				Name:             "smg",
				MaxAmmo:          24,
				ReloadTime:       1.8,
				ShotsPerSecond:   10,
				FireContinuously: true,
				PoolSize:         40,
				Projectile: ProjectileConfig{
					Damage:      0.5,
					Speed:       45,
					FinalDamage: 2,
					FinalSpeed:  60,
				},
			},
		},
		Enemies: EnemiesConfig{
			Melee: EnemyConfig{
				MaxHealth:     3,
				MoveSpeed:     5,
				Damage:        1,
				SwingRange:    2,
				HitRange:      1,
				Windup:        0.5,
				HealthbarRate: 6,
			},
			Shooter: EnemyConfig{
				MaxHealth:     2,
				BurstCount:    3,
				BurstInterval: 0.15,
				ShotCooldown:  2,
				AggroRange:    30,
				HealthbarRate: 6,
				Projectile: ProjectileConfig{
					Damage:      1,
					Speed:       16,
					FinalDamage: 1,
					FinalSpeed:  16,
				},
			},
		},
		Text: TextConfig{
			TextSpeed:  0.03,
			PopupSpeed: 0.05,
		},
		Camera: CameraConfig{
			Width:  80,
			Height: 22,
		},
		Campaign: CampaignConfig{
			Levels: []string{"tutorial", "warehouse"},
		},
		Arena: ArenaConfig{
			Width:        120,
			Height:       40,
			BaseWave:     3,
			MaxExtra:     6,
			ShooterRatio: 0.34,
			WaveDelay:    2,
			SpawnMargin:  12,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.8,
				HealthMultiplier: 1.0,
				CooldownFactor:   0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name:
// "rewind" or a level id.
func GetDefaultYAML(name string) []byte {
	if name == "rewind" {
		return defaultRewindYAML
	}
	data, err := defaultLevels.ReadFile("levels/" + name + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
