package player

import (
	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/diag"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// Gun returns the equipped gun, or nil.
func (c *Controller) Gun() *combat.Gun { return c.gun }

// Ammo returns the rounds left in the magazine.
func (c *Controller) Ammo() int { return c.ammo }

// ShotsFired returns the number of projectiles launched so far.
func (c *Controller) ShotsFired() int { return c.shots }

// Reloading reports whether a reload is in progress.
func (c *Controller) Reloading() bool { return c.reloading }

// ReloadProgress returns the seconds spent in the current reload.
func (c *Controller) ReloadProgress() float64 { return c.reloadElapsed }

// ReloadFraction returns reload progress in [0, 1].
func (c *Controller) ReloadFraction() float64 {
	if !c.reloading || c.gun == nil || c.gun.ReloadTime <= 0 {
		return 0
	}
	return core.ClampF(c.reloadElapsed/c.gun.ReloadTime, 0, 1)
}

// Equip switches to gun with a full magazine. Any reload is cancelled.
func (c *Controller) Equip(gun *combat.Gun) {
	if !diag.Assert(gun != nil, "equip called with nil gun") {
		return
	}
	c.cancelReload()
	c.gun = gun
	c.ammo = gun.MaxAmmo
	c.sinceLastShot = 1e9

	pool, ok := c.pools[gun.ID]
	if !ok {
		pool = combat.NewPool(gun.Projectile, gun.PoolSize)
		c.pools[gun.ID] = pool
		if c.field != nil {
			c.field.AddPool(pool)
		}
	}
	c.pool = pool
}

// NextGun cycles to the next gun in the armory.
func (c *Controller) NextGun() {
	if c.armory == nil || c.armory.Len() < 2 {
		return
	}
	c.Equip(c.armory.After(c.gun))
}

// FirePressed handles the press edge of the fire control.
func (c *Controller) FirePressed() {
	c.fireHeld = true
	c.fire()
}

// FireReleased handles the release edge of the fire control.
func (c *Controller) FireReleased() {
	c.fireHeld = false
}

// FireHeld reports whether the fire control is down.
func (c *Controller) FireHeld() bool { return c.fireHeld }

func (c *Controller) fire() {
	if !diag.Assert(c.gun != nil, "player has no gun equipped") {
		return
	}
	if !c.canMove || c.rolling || c.reloading || !c.Body.Active() {
		return
	}
	if c.ammo <= 0 {
		c.sounds.Play(audio.SoundEmpty)
		c.Reload()
		return
	}
	if c.sinceLastShot+timeEps < c.gun.MinShotInterval() {
		return
	}
	if !diag.Assert(c.pool != nil, "player has no projectile pool", "gun", c.gun.Name) {
		return
	}
	pr := c.pool.Acquire()
	if pr == nil {
		return
	}

	dir := c.aim.Sub(c.Body.Pos)
	if dir.IsZero() {
		dir = core.Up
	}
	c.ammo--
	c.shots++
	c.sinceLastShot = 0
	final := c.ammo == 0
	pr.Launch(c.Body.Pos, dir, final)
	if final {
		c.sounds.Play(audio.SoundFinalShot)
		c.Reload()
	} else {
		c.sounds.Play(audio.SoundShot)
	}
}

// Reload starts refilling the magazine. It is a no-op at full ammo or while
// a reload is already running.
func (c *Controller) Reload() {
	if !diag.Assert(c.gun != nil, "reload with no gun equipped") {
		return
	}
	if c.reloading || c.ammo >= c.gun.MaxAmmo {
		return
	}
	gun := c.gun
	c.reloading = true
	c.reloadElapsed = 0
	c.reloadTask = c.tasks.Start(sched.Seq(
		sched.For(gun.ReloadTime, func(dt float64) {
			c.reloadElapsed += dt
		}),
		sched.Do(func() {
			c.ammo = gun.MaxAmmo
			c.reloading = false
			c.reloadElapsed = 0
			c.sounds.Play(audio.SoundReload)
		}),
	))
}

func (c *Controller) cancelReload() {
	c.tasks.Stop(c.reloadTask)
	c.reloadTask = nil
	c.reloading = false
	c.reloadElapsed = 0
}
