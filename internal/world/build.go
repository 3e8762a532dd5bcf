package world

import (
	"fmt"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/config"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/entity"
	"github.com/vovakirdan/tui-rewind/internal/player"
)

// PlayerTuning converts the player config section.
func PlayerTuning(c config.PlayerConfig) player.Config {
	return player.Config{
		MaxHealth:      c.MaxHealth,
		Speed:          c.Speed,
		RollDuration:   c.RollDuration,
		RollMultiplier: c.RollMultiplier,
		RollCooldown:   c.RollCooldown,
		RewindCooldown: c.RewindCooldown,
		RewindPeriod:   c.RewindPeriod,
		RewindCapacity: c.RewindCapacity,
		RewindDepth:    c.RewindDepth,
		MarkerEase:     c.MarkerEase,
		HealthbarRate:  c.HealthbarRate,
	}
}

func projectileSpec(c config.ProjectileConfig, targets entity.Tag) combat.ProjectileSpec {
	return combat.ProjectileSpec{
		Damage:          c.Damage,
		Speed:           c.Speed,
		FinalShotDamage: c.FinalDamage,
		FinalShotSpeed:  c.FinalSpeed,
		Targets:         targets,
		Radius:          c.Radius,
	}
}

// NewArmory builds the player's guns. Player shots hit enemies and
// destructible obstacles.
func NewArmory(guns []config.GunConfig) (*combat.Armory, error) {
	out := make([]combat.Gun, 0, len(guns))
	for _, g := range guns {
		out = append(out, combat.Gun{
			ID:               g.ID,
			Name:             g.Name,
			MaxAmmo:          g.MaxAmmo,
			ReloadTime:       g.ReloadTime,
			ShotsPerSecond:   g.ShotsPerSecond,
			FireContinuously: g.FireContinuously,
			PoolSize:         g.PoolSize,
			Projectile:       projectileSpec(g.Projectile, entity.TagEnemy|entity.TagObstacle),
		})
	}
	return combat.NewArmory(out...)
}

// EnemyTuning converts the config section for kind. Enemy shots hit the player.
func EnemyTuning(kind enemy.Kind, c config.EnemiesConfig) enemy.Config {
	src := c.Melee
	if kind == enemy.KindShooter {
		src = c.Shooter
	}
	return enemy.Config{
		Kind:          kind,
		MaxHealth:     src.MaxHealth,
		MoveSpeed:     src.MoveSpeed,
		Damage:        src.Damage,
		SwingRange:    src.SwingRange,
		HitRange:      src.HitRange,
		Windup:        src.Windup,
		BurstCount:    src.BurstCount,
		BurstInterval: src.BurstInterval,
		ShotCooldown:  src.ShotCooldown,
		AggroRange:    src.AggroRange,
		HealthbarRate: src.HealthbarRate,
		Projectile:    projectileSpec(src.Projectile, entity.TagPlayer),
	}
}

// NewSceneFor creates an empty scene from game tuning.
func NewSceneFor(cfg config.RewindConfig, sounds audio.Player) (*Scene, error) {
	armory, err := NewArmory(cfg.Guns)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	return NewScene(SceneConfig{
		Player:     PlayerTuning(cfg.Player),
		Armory:     armory,
		Viewport:   core.V(cfg.Camera.Width, cfg.Camera.Height),
		TextSpeed:  cfg.Text.TextSpeed,
		PopupSpeed: cfg.Text.PopupSpeed,
	}, sounds), nil
}

// Build assembles a scene for lvl and places the player in its start room.
func Build(lvl config.Level, cfg config.RewindConfig, sounds audio.Player) (*Scene, error) {
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	s, err := NewSceneFor(cfg, sounds)
	if err != nil {
		return nil, err
	}

	var start *Room
	for _, rs := range lvl.Rooms {
		r := NewRoom(rs.ID, rs.Pos, rs.Size)
		r.Bounds = rs.Bounds
		if rs.PlayerStart != nil {
			r.PlayerStart = *rs.PlayerStart
		}
		if rs.CameraStart != nil {
			r.CameraStart = *rs.CameraStart
		}
		s.AddRoom(r)
		if start == nil || rs.ID == lvl.StartRoom {
			start = r
		}
	}

	for _, o := range lvl.Obstacles {
		if o.Health > 0 {
			rate := 0.0
			if o.Healthbar {
				rate = cfg.Player.HealthbarRate
			}
			s.AddObstacle(NewDestructibleObstacle(o.ID, o.Pos, o.Size, o.Health, rate))
			continue
		}
		s.AddObstacle(NewObstacle(o.ID, o.Pos, o.Size))
	}
	fogs := make(map[string]*Fog, len(lvl.Fogs))
	for _, f := range lvl.Fogs {
		fog := NewFog(f.ID, f.Pos, f.Size)
		fogs[f.ID] = fog
		s.AddFog(fog)
	}
	for _, d := range lvl.Doors {
		door := NewDoor(d.ID, d.Pos, d.Size, fogs[d.Fog], sounds)
		door.Priority = d.Priority
		s.AddDoor(door)
	}

	enemies := make(map[string]*enemy.Enemy, len(lvl.Enemies))
	for _, es := range lvl.Enemies {
		kind, ok := enemy.ParseKind(es.Kind)
		if !ok {
			return nil, fmt.Errorf("world: level %s: enemy %s has unknown kind %q", lvl.ID, es.ID, es.Kind)
		}
		enemies[es.ID] = s.AddEnemy(es.ID, EnemyTuning(kind, cfg.Enemies), es.Pos, !es.Inactive)
	}
	for _, sp := range lvl.Spawners {
		linked := make([]*enemy.Enemy, 0, len(sp.Enemies))
		for _, id := range sp.Enemies {
			linked = append(linked, enemies[id])
		}
		s.AddTrigger(sp.ID, NewEnemySpawner(sp.ID, sp.Pos, sp.Radius, linked))
	}

	for _, ts := range lvl.Texts {
		kind := TextPopup
		if ts.Type == "dialogue" {
			kind = TextDialogue
		}
		src := NewTextSource(ts.ID, kind, ts.Pos, ts.Radius, ts.Lines, s.Dialogue, s.Popup)
		src.TypeLine = ts.TypeLine
		src.Cooldown = ts.Cooldown
		src.OneTimeUse = ts.OneTimeUse
		src.Priority = ts.Priority
		src.OnEnd = s.activations(ts.OnEnd)
		s.AddTrigger(ts.ID, src)
	}

	for _, x := range lvl.Exits {
		s.AddTrigger(x.ID, NewLevelEnd(x.ID, x.Pos, x.Radius, x.Level, s.RequestLevel))
	}

	s.Start(start)
	if len(lvl.Intro) > 0 {
		s.Dialogue.Display(nil, lvl.Intro...)
	}
	return s, nil
}

// activations returns a dialogue end action that switches objects on or
// off, or nil when there is nothing to do.
func (s *Scene) activations(specs []config.ActivationSpec) func() {
	if len(specs) == 0 {
		return nil
	}
	return func() {
		for _, a := range specs {
			if obj, ok := s.Object(a.Target); ok {
				obj.SetActive(a.Active)
			}
		}
	}
}
