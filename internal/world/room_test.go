package world

import (
	"testing"

	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/player"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

func TestRoomInitDerivesBounds(t *testing.T) {
	r := NewRoom("big", core.V(10, 5), core.V(100, 40))
	r.Init()
	want := core.Bounds{MinX: -40, MaxX: 60, MinY: -15, MaxY: 25}
	if r.Bounds != want {
		t.Errorf("bounds = %+v, expected %+v", r.Bounds, want)
	}
	if r.PlayerStart != r.Pos || r.CameraStart != r.Pos {
		t.Errorf("starts should default to the room centre: %v %v", r.PlayerStart, r.CameraStart)
	}

	small := NewRoom("narrow", core.V(0, 3), core.V(40, 40))
	small.Init()
	if small.Bounds != (core.Bounds{MinX: -20, MaxX: 20, MinY: -17, MaxY: 23}) {
		t.Errorf("bounds should cover the room even when narrower than the view, got %+v", small.Bounds)
	}

	set := NewRoom("set", core.Zero, core.V(10, 10))
	set.Bounds = core.Bounds{MinX: -1, MaxX: 1, MinY: -2, MaxY: 2}
	set.PlayerStart = core.V(3, 3)
	set.Init()
	if set.Bounds.MaxY != 2 || set.PlayerStart != core.V(3, 3) {
		t.Error("explicit bounds and start must be kept")
	}
}

func TestRoomContains(t *testing.T) {
	r := NewRoom("r", core.V(0, 0), core.V(10, 4))
	tests := []struct {
		p    core.Vec2
		want bool
	}{
		{core.V(0, 0), true},
		{core.V(5, 2), true},
		{core.V(5.1, 0), false},
		{core.V(0, -2.1), false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.want)
		}
	}
}

func TestCameraFollow(t *testing.T) {
	tests := []struct {
		name   string
		bounds core.Bounds
		target core.Vec2
		want   core.Vec2
	}{
		{"inside", core.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}, core.V(50, 40), core.V(50, 40)},
		{"clamped low", core.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}, core.V(1, 1), core.V(10, 5)},
		{"clamped high", core.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}, core.V(99, 99), core.V(90, 95)},
		{"pinned axis", core.Bounds{MinX: 5, MaxX: 5, MinY: 0, MaxY: 100}, core.V(50, 50), core.V(5, 50)},
		{"extent below viewport", core.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 8}, core.V(1, 1), core.V(5, 4)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Camera{Viewport: core.V(20, 10)}
			c.Follow(tc.target, tc.bounds)
			if c.Pos != tc.want {
				t.Errorf("camera at %v, expected %v", c.Pos, tc.want)
			}
		})
	}
}

func TestManagerMoveToNewRoom(t *testing.T) {
	tasks := sched.New()
	p := player.New(player.DefaultConfig(), core.Zero, nil, nil, tasks, nil)
	cam := &Camera{Viewport: core.V(20, 10)}
	m := NewManager(nil, cam)
	m.SetPlayer(p)

	r := NewRoom("r", core.V(50, 0), core.V(40, 20))
	r.PlayerStart = core.V(45, 1)
	r.Init()
	m.AddRoom(r)

	m.MoveToNewRoom(r)
	if m.CurrentRoom() != r {
		t.Fatal("room not current")
	}
	if p.Pos() != core.V(45, 1) {
		t.Errorf("player at %v, expected the player start", p.Pos())
	}
	if cam.Pos != core.V(50, 0) {
		t.Errorf("camera at %v, expected the camera start", cam.Pos)
	}

	other := NewRoom("o", core.V(100, 0), core.V(40, 20))
	other.Init()
	m.EnterRoom(other)
	if m.CurrentRoom() != other || p.Pos() != core.V(45, 1) {
		t.Error("EnterRoom should switch rooms without teleporting")
	}
}

func TestManagerEnemyRegistry(t *testing.T) {
	m := NewManager(nil, nil)
	tasks := sched.New()
	a := enemy.New("a", enemy.DefaultConfig(enemy.KindMelee), core.Zero, tasks, nil)
	b := enemy.New("b", enemy.DefaultConfig(enemy.KindShooter), core.Zero, tasks, nil)

	m.RegisterEnemy(a)
	m.RegisterEnemy(a)
	m.RegisterEnemy(b)
	if m.EnemyCount() != 2 {
		t.Fatalf("count = %d, expected 2 after a duplicate register", m.EnemyCount())
	}
	if got := m.ActiveEnemies(); got[0] != a || got[1] != b {
		t.Error("active enemies should keep registration order")
	}

	m.UnregisterEnemy(a)
	m.UnregisterEnemy(a)
	if m.EnemyCount() != 1 || m.ActiveEnemies()[0] != b {
		t.Error("unregister should remove exactly the enemy once")
	}
}

func TestManagerGunLookup(t *testing.T) {
	armory, err := combat.NewArmory(
		combat.Gun{ID: 0, Name: "revolver", MaxAmmo: 6},
		combat.Gun{ID: 3, Name: "smg", MaxAmmo: 20},
	)
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(armory, nil)

	if g, ok := m.GunByID(3); !ok || g.Name != "smg" {
		t.Errorf("GunByID(3) = %v,%v", g, ok)
	}
	if g, ok := m.GunByName("revolver"); !ok || g.ID != 0 {
		t.Errorf("GunByName(revolver) = %v,%v", g, ok)
	}
	if _, ok := m.GunByID(9); ok {
		t.Error("unknown id should miss")
	}
	if _, ok := NewManager(nil, nil).GunByName("smg"); ok {
		t.Error("manager without armory should miss")
	}
}
