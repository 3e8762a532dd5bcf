package player

import (
	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// Rolling reports whether a dodge-roll is in progress.
func (c *Controller) Rolling() bool { return c.rolling }

// RollCooldown returns the seconds left before the next roll.
func (c *Controller) RollCooldown() float64 { return c.rollCooldown }

// Roll starts a dodge-roll in the current movement direction, or up when
// standing still. The player is invulnerable for exactly RollDuration.
// Movement input arriving during the roll is applied when it ends; with no
// new input the player comes out of the roll standing still.
func (c *Controller) Roll() {
	if c.rolling || c.rollCooldown > timeEps || !c.canMove || !c.Body.Active() {
		return
	}
	dir := c.velocity
	if dir.IsZero() {
		dir = core.Up
	}
	c.buffered = core.Zero

	c.rollTask = c.tasks.Start(sched.Seq(
		sched.Do(func() {
			c.rolling = true
			c.Body.SetInvulnerable(true)
			c.sounds.Play(audio.SoundRoll)
		}),
		sched.For(c.cfg.RollDuration, func(dt float64) {
			step := dir.Mul(c.Body.Speed()).Scale(c.cfg.RollMultiplier * dt)
			c.Body.Pos = c.Body.Pos.Add(step)
		}),
		sched.Do(c.finishRoll),
	))
}

func (c *Controller) finishRoll() {
	c.velocity = c.buffered
	c.buffered = core.Zero
	c.Body.SetInvulnerable(false)
	c.rolling = false
	c.rollCooldown = c.cfg.RollCooldown
}

func (c *Controller) sample() {
	if !c.Body.Active() {
		return
	}
	c.rewind.Push(SavePoint{Pos: c.Body.Pos, Ammo: c.ammo})
}

// RewindHistory exposes the sample ring.
func (c *Controller) RewindHistory() *RewindBuffer { return c.rewind }

// Marker returns where a rewind would currently land.
func (c *Controller) Marker() core.Vec2 { return c.marker }

// MarkerReady reports whether enough history exists to rewind.
func (c *Controller) MarkerReady() bool {
	_, ok := c.rewind.At(c.cfg.RewindDepth)
	return ok
}

// RewindCooldown returns the seconds left before the next rewind.
func (c *Controller) RewindCooldown() float64 { return c.rewindCooldown }

// Rewind teleports the player to the marker, restores the ammo count of the
// target sample and discards the history that was rewound over.
func (c *Controller) Rewind() {
	if c.rewindCooldown > timeEps || c.rolling || !c.Body.Active() {
		return
	}
	target, ok := c.rewind.At(c.cfg.RewindDepth)
	if !ok {
		return
	}
	c.cancelReload()
	c.Body.Pos = c.marker
	c.ammo = target.Ammo
	c.rewindCooldown = c.cfg.RewindCooldown
	c.rewind.Discard(c.cfg.RewindDepth)
	c.sounds.Play(audio.SoundRewind)
}
