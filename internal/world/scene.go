package world

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/entity"
	"github.com/vovakirdan/tui-rewind/internal/player"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// SceneConfig holds what a scene needs besides its level contents.
type SceneConfig struct {
	Player     player.Config
	Armory     *combat.Armory
	Viewport   core.Vec2 // camera size in world units
	TextSpeed  float64
	PopupSpeed float64
}

// Scene is one running level. It implements enemy.Context.
type Scene struct {
	Manager  *Manager
	Camera   *Camera
	Player   *player.Controller
	Field    *combat.Field
	Dialogue *Dialogue
	Popup    *Popup

	sounds      audio.Player
	playerTasks *sched.Scheduler
	enemyTasks  *sched.Scheduler
	uiTasks     *sched.Scheduler

	enemies   []*enemy.Enemy
	obstacles []*Obstacle
	doors     []*Door
	fogs      []*Fog
	triggers  []Trigger
	texts     []*TextSource
	objects   map[string]Toggle
	inside    map[Trigger]bool
	space     *space
	zones     map[Trigger]*resolv.Object

	screenW, screenH int
	moveInput        core.Vec2
	frozen           bool
	kills            int
	elapsed          float64
	request          string
	requested        bool
}

// NewScene creates an empty scene with the player at the origin.
func NewScene(cfg SceneConfig, sounds audio.Player) *Scene {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	s := &Scene{
		Camera:      &Camera{Viewport: cfg.Viewport},
		Field:       combat.NewField(),
		sounds:      sounds,
		playerTasks: sched.New(),
		enemyTasks:  sched.New(),
		uiTasks:     sched.New(),
		objects:     make(map[string]Toggle),
		inside:      make(map[Trigger]bool),
		zones:       make(map[Trigger]*resolv.Object),
		screenW:     int(cfg.Viewport.X),
		screenH:     int(cfg.Viewport.Y),
	}
	s.Manager = NewManager(cfg.Armory, s.Camera)
	s.Player = player.New(cfg.Player, core.Zero, cfg.Armory, s.Field, s.playerTasks, sounds)
	s.Manager.SetPlayer(s.Player)
	s.Dialogue = NewDialogue(s.uiTasks, cfg.TextSpeed, sounds)
	s.Popup = NewPopup(s.uiTasks, cfg.PopupSpeed)
	return s
}

// SetScreen sets the size of the screen the camera is mapped onto.
func (s *Scene) SetScreen(w, h int) {
	s.screenW, s.screenH = w, h
}

// Resize maps the camera onto a new screen of w by h cells and refollows
// the player, so rooms pin or unpin for the new viewport at once.
func (s *Scene) Resize(w, h int) {
	s.SetScreen(w, h)
	s.Camera.Viewport = core.V(float64(w), float64(h))
	if room := s.Manager.CurrentRoom(); room != nil {
		s.Camera.Follow(s.Player.Pos(), room.Bounds)
	}
}

// AddRoom initializes and registers a room.
func (s *Scene) AddRoom(r *Room) {
	r.Init()
	s.Manager.AddRoom(r)
}

// AddObstacle adds solid geometry.
func (s *Scene) AddObstacle(o *Obstacle) {
	s.obstacles = append(s.obstacles, o)
	s.objects[o.ID] = o
	if s.space != nil {
		s.indexObstacle(o)
	}
}

// AddFog adds a fog region.
func (s *Scene) AddFog(f *Fog) {
	s.fogs = append(s.fogs, f)
	s.objects[f.ID] = f
}

// AddDoor adds a door. Doors are both solid and interactable.
func (s *Scene) AddDoor(d *Door) {
	s.doors = append(s.doors, d)
	s.AddTrigger(d.ID, d)
	if s.space != nil {
		s.indexDoor(d)
	}
}

// AddTrigger adds an interactable zone under id.
func (s *Scene) AddTrigger(id string, t Trigger) {
	s.triggers = append(s.triggers, t)
	s.objects[id] = t
	if ts, ok := t.(*TextSource); ok {
		s.texts = append(s.texts, ts)
	}
	if s.space != nil {
		s.indexTrigger(t)
	}
}

// AddEnemy creates an enemy. Inactive enemies wait for a spawner or a
// dialogue to bring them in. Deaths count as kills.
func (s *Scene) AddEnemy(id string, cfg enemy.Config, pos core.Vec2, active bool) *enemy.Enemy {
	e := enemy.New(id, cfg, pos, s.enemyTasks, s.Manager)
	e.Body.OnDisable(func(b *entity.Entity) {
		if b.Health() <= 0 {
			s.kills++
		}
	})
	if !active {
		e.Body.SetActive(false)
	}
	s.enemies = append(s.enemies, e)
	s.objects[id] = enemyToggle{e}
	return e
}

// Object returns the toggle registered under id.
func (s *Scene) Object(id string) (Toggle, bool) {
	t, ok := s.objects[id]
	return t, ok
}

// Start indexes the level for collision and places the player and the
// camera in room.
func (s *Scene) Start(room *Room) {
	if s.space == nil {
		s.buildSpace()
	}
	s.Manager.MoveToNewRoom(room)
}

// Step advances the scene one frame:
// input, player, enemies, projectiles, tasks, solids, overlaps, rooms, camera.
func (s *Scene) Step(dt float64, in core.InputFrame) {
	s.elapsed += dt
	if in.HasPointer {
		s.Player.SetAim(s.PointerWorld(in.PointerX, in.PointerY))
	}
	s.handleInput(in)
	s.syncDialogue()

	prevPlayer := s.Player.Body.Pos
	active := s.Manager.ActiveEnemies()
	prevEnemies := make([]core.Vec2, len(active))
	for i, e := range active {
		prevEnemies[i] = e.Body.Pos
	}

	s.Player.Tick(dt)
	for _, e := range active {
		e.Tick(s, dt)
	}
	s.Field.Tick(dt)

	s.playerTasks.Tick(dt)
	s.enemyTasks.SetPaused(s.Dialogue.Active())
	s.enemyTasks.Tick(dt)
	s.uiTasks.Tick(dt)

	s.syncSpace()
	s.Player.Body.Pos = s.resolve(prevPlayer, s.Player.Body.Pos, s.Player.Body.Radius)
	for i, e := range active {
		e.Body.Pos = s.resolve(prevEnemies[i], e.Body.Pos, e.Body.Radius)
	}
	s.trackBodies()

	s.collideProjectiles()
	s.updateTriggers()
	s.updateRoom()
	for _, t := range s.texts {
		t.Tick(dt)
	}
	for _, o := range s.obstacles {
		if o.Body != nil && o.Body.Healthbar() != nil {
			o.Body.Healthbar().Tick(dt)
		}
	}
	if room := s.Manager.CurrentRoom(); room != nil {
		s.Camera.Follow(s.Player.Pos(), room.Bounds)
	}
}

func (s *Scene) handleInput(in core.InputFrame) {
	if in.MoveChanged {
		s.moveInput = in.Move
		if !s.frozen {
			s.Player.OnMove(in.Move)
		}
	}
	if in.Has(core.ActionFireRelease) {
		s.Player.FireReleased()
	}

	if s.Dialogue.Active() {
		if in.Has(core.ActionAdvance) || in.Has(core.ActionInteract) || in.Has(core.ActionFire) {
			s.Dialogue.Next()
		}
		return
	}

	if in.Has(core.ActionNextGun) {
		s.Player.NextGun()
	}
	if in.Has(core.ActionReload) {
		s.Player.Reload()
	}
	if in.Has(core.ActionRewind) {
		s.Player.Rewind()
	}
	if in.Has(core.ActionRoll) {
		s.Player.Roll()
	}
	if in.Has(core.ActionFire) {
		s.Player.FirePressed()
	}
	if in.Has(core.ActionInteract) {
		s.Player.Interact()
	}
}

// syncDialogue freezes the player while dialogue is open and restores the
// held movement input once it closes.
func (s *Scene) syncDialogue() {
	active := s.Dialogue.Active()
	if active == s.frozen {
		return
	}
	s.frozen = active
	s.Player.SetCanMove(!active)
	if !active {
		s.Player.OnMove(s.moveInput)
	}
}

// Stop cancels every running task.
func (s *Scene) Stop() {
	s.Player.Stop()
	s.playerTasks.StopAll()
	s.enemyTasks.StopAll()
	s.uiTasks.StopAll()
	s.Field.Clear()
}

// PointerWorld converts a screen cell to the world point at its centre.
func (s *Scene) PointerWorld(col, row int) core.Vec2 {
	return core.V(
		s.Camera.Pos.X+float64(col)+0.5-float64(s.screenW)/2,
		s.Camera.Pos.Y+float64(s.screenH)/2-float64(row)-0.5,
	)
}

// ToScreen converts a world point to the screen cell containing it.
func (s *Scene) ToScreen(p core.Vec2) (col, row int) {
	col = int(math.Floor(p.X - s.Camera.Pos.X + float64(s.screenW)/2))
	row = int(math.Floor(s.Camera.Pos.Y - p.Y + float64(s.screenH)/2))
	return col, row
}

// RequestLevel asks the game to leave for level once the frame ends.
func (s *Scene) RequestLevel(level string) {
	s.request = level
	s.requested = true
}

// LevelRequest returns the pending level change, if any.
func (s *Scene) LevelRequest() (string, bool) { return s.request, s.requested }

// Kills returns the number of enemies killed in this scene.
func (s *Scene) Kills() int { return s.kills }

// Elapsed returns the simulated seconds since the scene started.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// PlayerDead reports whether the player has died.
func (s *Scene) PlayerDead() bool { return !s.Player.Body.Active() }

// Enemies returns every enemy in the scene, active or not.
func (s *Scene) Enemies() []*enemy.Enemy { return s.enemies }

// Obstacles returns the solid geometry.
func (s *Scene) Obstacles() []*Obstacle { return s.obstacles }

// Doors returns the doors.
func (s *Scene) Doors() []*Door { return s.doors }

// Fogs returns the fog regions.
func (s *Scene) Fogs() []*Fog { return s.fogs }

// Triggers returns the interactable zones.
func (s *Scene) Triggers() []Trigger { return s.triggers }

// Hidden reports whether p is under active fog.
func (s *Scene) Hidden(p core.Vec2) bool {
	for _, f := range s.fogs {
		if f.Covers(p) {
			return true
		}
	}
	return false
}

// enemy.Context

func (s *Scene) PlayerPos() core.Vec2 { return s.Player.Pos() }

func (s *Scene) DamagePlayer(amount float64) { s.Player.Body.ApplyDamage(amount) }

func (s *Scene) SpawnProjectile(spec combat.ProjectileSpec, pos, dir core.Vec2) {
	s.Field.Spawn(spec, pos, dir)
}

func (s *Scene) DialogueActive() bool { return s.Dialogue.Active() }

func (s *Scene) Play(snd audio.Sound) { s.sounds.Play(snd) }

// enemyToggle re-initializes an enemy brought back by a level script.
type enemyToggle struct{ e *enemy.Enemy }

func (t enemyToggle) Active() bool { return t.e.Body.Active() }

func (t enemyToggle) SetActive(v bool) {
	if v && !t.e.Body.Active() {
		t.e.Body.SetActive(true)
		t.e.Initialize()
		return
	}
	t.e.Body.SetActive(v)
}
