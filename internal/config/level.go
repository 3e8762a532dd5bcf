package config

import (
	"fmt"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

// Level describes one campaign level: its rooms and everything placed in them.
type Level struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	StartRoom string         `yaml:"start_room"`
	Intro     []string       `yaml:"intro"` // dialogue shown when the level starts
	Rooms     []RoomSpec     `yaml:"rooms"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
	Doors     []DoorSpec     `yaml:"doors"`
	Fogs      []FogSpec      `yaml:"fogs"`
	Enemies   []EnemySpec    `yaml:"enemies"`
	Spawners  []SpawnerSpec  `yaml:"spawners"`
	Texts     []TextSpec     `yaml:"texts"`
	Exits     []ExitSpec     `yaml:"exits"`
}

// RoomSpec places a room. Zero bounds are derived from pos and size; nil
// start positions default to the room centre.
type RoomSpec struct {
	ID          string      `yaml:"id"`
	Pos         core.Vec2   `yaml:"pos"`
	Size        core.Vec2   `yaml:"size"`
	Bounds      core.Bounds `yaml:"bounds"`
	PlayerStart *core.Vec2  `yaml:"player_start"`
	CameraStart *core.Vec2  `yaml:"camera_start"`
}

// ObstacleSpec places a solid block. Positive health makes it
// destructible by player shots.
type ObstacleSpec struct {
	ID        string    `yaml:"id"`
	Pos       core.Vec2 `yaml:"pos"`
	Size      core.Vec2 `yaml:"size"`
	Health    float64   `yaml:"health"`
	Healthbar bool      `yaml:"healthbar"`
}

// DoorSpec places a door that opens on interact and reveals its fog.
type DoorSpec struct {
	ID       string    `yaml:"id"`
	Pos      core.Vec2 `yaml:"pos"`
	Size     core.Vec2 `yaml:"size"`
	Fog      string    `yaml:"fog"`
	Priority int       `yaml:"priority"`
}

// FogSpec covers an unexplored area until a door reveals it.
type FogSpec struct {
	ID   string    `yaml:"id"`
	Pos  core.Vec2 `yaml:"pos"`
	Size core.Vec2 `yaml:"size"`
}

// EnemySpec places an enemy. Inactive enemies wait for a spawner.
type EnemySpec struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Pos      core.Vec2 `yaml:"pos"`
	Inactive bool      `yaml:"inactive"`
}

// SpawnerSpec places a trigger that activates its linked enemies.
type SpawnerSpec struct {
	ID      string    `yaml:"id"`
	Pos     core.Vec2 `yaml:"pos"`
	Radius  float64   `yaml:"radius"`
	Enemies []string  `yaml:"enemies"`
}

// TextSpec places a popup or dialogue source.
type TextSpec struct {
	ID         string           `yaml:"id"`
	Type       string           `yaml:"type"` // "popup" or "dialogue"
	Pos        core.Vec2        `yaml:"pos"`
	Radius     float64          `yaml:"radius"`
	Lines      []string         `yaml:"lines"`
	TypeLine   bool             `yaml:"type_line"`
	Cooldown   float64          `yaml:"cooldown"`
	OneTimeUse bool             `yaml:"one_time_use"`
	Priority   int              `yaml:"priority"`
	OnEnd      []ActivationSpec `yaml:"on_end"`
}

// ActivationSpec sets a named object active or inactive when dialogue ends.
type ActivationSpec struct {
	Target string `yaml:"target"`
	Active bool   `yaml:"active"`
}

// ExitSpec places the level end. An empty Level means the campaign's next level.
type ExitSpec struct {
	ID     string    `yaml:"id"`
	Pos    core.Vec2 `yaml:"pos"`
	Radius float64   `yaml:"radius"`
	Level  string    `yaml:"level"`
}

// Validate checks ids are unique and every reference resolves.
func (l *Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("level has no id")
	}
	if len(l.Rooms) == 0 {
		return fmt.Errorf("level %s: no rooms", l.ID)
	}

	ids := make(map[string]string)
	add := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("level %s: %s without id", l.ID, kind)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("level %s: id %q used by %s and %s", l.ID, id, prev, kind)
		}
		ids[id] = kind
		return nil
	}

	for _, r := range l.Rooms {
		if err := add("room", r.ID); err != nil {
			return err
		}
		if r.Size.X <= 0 || r.Size.Y <= 0 {
			return fmt.Errorf("level %s: room %s has no size", l.ID, r.ID)
		}
	}
	for _, o := range l.Obstacles {
		if err := add("obstacle", o.ID); err != nil {
			return err
		}
		if o.Health < 0 {
			return fmt.Errorf("level %s: obstacle %s has negative health", l.ID, o.ID)
		}
	}
	for _, f := range l.Fogs {
		if err := add("fog", f.ID); err != nil {
			return err
		}
	}
	for _, d := range l.Doors {
		if err := add("door", d.ID); err != nil {
			return err
		}
	}
	for _, e := range l.Enemies {
		if err := add("enemy", e.ID); err != nil {
			return err
		}
	}
	for _, s := range l.Spawners {
		if err := add("spawner", s.ID); err != nil {
			return err
		}
	}
	for _, t := range l.Texts {
		if err := add("text", t.ID); err != nil {
			return err
		}
		if t.Type != "popup" && t.Type != "dialogue" {
			return fmt.Errorf("level %s: text %s has unknown type %q", l.ID, t.ID, t.Type)
		}
		if len(t.Lines) == 0 {
			return fmt.Errorf("level %s: text %s has no lines", l.ID, t.ID)
		}
	}
	for _, x := range l.Exits {
		if err := add("exit", x.ID); err != nil {
			return err
		}
	}

	if l.StartRoom != "" && ids[l.StartRoom] != "room" {
		return fmt.Errorf("level %s: start room %q not found", l.ID, l.StartRoom)
	}
	for _, d := range l.Doors {
		if d.Fog != "" && ids[d.Fog] != "fog" {
			return fmt.Errorf("level %s: door %s links unknown fog %q", l.ID, d.ID, d.Fog)
		}
	}
	for _, s := range l.Spawners {
		for _, id := range s.Enemies {
			if ids[id] != "enemy" {
				return fmt.Errorf("level %s: spawner %s links unknown enemy %q", l.ID, s.ID, id)
			}
		}
	}
	for _, t := range l.Texts {
		for _, a := range t.OnEnd {
			if _, ok := ids[a.Target]; !ok {
				return fmt.Errorf("level %s: text %s targets unknown object %q", l.ID, t.ID, a.Target)
			}
		}
	}
	return nil
}
