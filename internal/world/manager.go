// Package world assembles a playable level: rooms and camera, the enemy
// registry, solid geometry, interactables and the text boxes. Scene steps
// everything in a fixed order once per frame.
package world

import (
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/player"
)

// Manager owns the current room, the gun lookup and the set of active
// enemies.
type Manager struct {
	armory  *combat.Armory
	camera  *Camera
	player  *player.Controller
	current *Room
	rooms   []*Room
	enemies []*enemy.Enemy
}

// NewManager creates a manager over armory moving camera.
func NewManager(armory *combat.Armory, camera *Camera) *Manager {
	return &Manager{armory: armory, camera: camera}
}

// SetPlayer attaches the player teleported by MoveToNewRoom.
func (m *Manager) SetPlayer(p *player.Controller) { m.player = p }

// AddRoom registers a room of the level.
func (m *Manager) AddRoom(r *Room) { m.rooms = append(m.rooms, r) }

// Rooms returns every room in insertion order.
func (m *Manager) Rooms() []*Room { return m.rooms }

// CurrentRoom returns the room the player is in, or nil before the first move.
func (m *Manager) CurrentRoom() *Room { return m.current }

// MoveToNewRoom makes r current and teleports the player and the camera to
// the room's start positions.
func (m *Manager) MoveToNewRoom(r *Room) {
	m.current = r
	if m.player != nil {
		m.player.Teleport(r.PlayerStart)
	}
	if m.camera != nil {
		m.camera.Pos = r.CameraStart
	}
}

// EnterRoom makes r current without moving anything, for walking across a
// room border.
func (m *Manager) EnterRoom(r *Room) {
	m.current = r
}

// RoomAt returns the room containing p, preferring the current one where
// rooms touch.
func (m *Manager) RoomAt(p core.Vec2) *Room {
	if m.current != nil && m.current.Contains(p) {
		return m.current
	}
	for _, r := range m.rooms {
		if r.Contains(p) {
			return r
		}
	}
	return nil
}

// GunByID looks up a gun in the armory.
func (m *Manager) GunByID(id int) (*combat.Gun, bool) {
	if m.armory == nil {
		return nil, false
	}
	return m.armory.ByID(id)
}

// GunByName looks up a gun in the armory.
func (m *Manager) GunByName(name string) (*combat.Gun, bool) {
	if m.armory == nil {
		return nil, false
	}
	return m.armory.ByName(name)
}

// RegisterEnemy adds e to the active set. Registering twice is a no-op.
func (m *Manager) RegisterEnemy(e *enemy.Enemy) {
	for _, x := range m.enemies {
		if x == e {
			return
		}
	}
	m.enemies = append(m.enemies, e)
}

// UnregisterEnemy removes e from the active set, if present.
func (m *Manager) UnregisterEnemy(e *enemy.Enemy) {
	for i, x := range m.enemies {
		if x == e {
			m.enemies = append(m.enemies[:i], m.enemies[i+1:]...)
			return
		}
	}
}

// ActiveEnemies returns a snapshot of the active set in registration order.
func (m *Manager) ActiveEnemies() []*enemy.Enemy {
	out := make([]*enemy.Enemy, len(m.enemies))
	copy(out, m.enemies)
	return out
}

// EnemyCount returns the number of active enemies.
func (m *Manager) EnemyCount() int { return len(m.enemies) }
