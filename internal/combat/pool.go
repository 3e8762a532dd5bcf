package combat

import "github.com/vovakirdan/tui-rewind/internal/core"

// Pool holds a fixed set of projectiles allocated once and reused.
type Pool struct {
	items []*Projectile
}

// NewPool allocates size inactive projectiles from spec.
func NewPool(spec ProjectileSpec, size int) *Pool {
	p := &Pool{items: make([]*Projectile, size)}
	for i := range p.items {
		p.items[i] = NewProjectile(spec, false)
	}
	return p
}

// Acquire returns the first inactive projectile, or nil when every
// projectile is in flight.
func (p *Pool) Acquire() *Projectile {
	for _, pr := range p.items {
		if !pr.Active() {
			return pr
		}
	}
	return nil
}

// Size returns the pool capacity.
func (p *Pool) Size() int { return len(p.items) }

// InUse returns the number of projectiles in flight.
func (p *Pool) InUse() int {
	n := 0
	for _, pr := range p.items {
		if pr.Active() {
			n++
		}
	}
	return n
}

// Reset deactivates every projectile.
func (p *Pool) Reset() {
	for _, pr := range p.items {
		pr.Deactivate()
	}
}

// Field tracks every projectile in the world: the player's pools plus
// one-off shots spawned by enemies.
type Field struct {
	pools   []*Pool
	oneOffs []*Projectile
}

// NewField creates an empty projectile field.
func NewField() *Field {
	return &Field{}
}

// AddPool makes a pool's projectiles visible to the world.
func (f *Field) AddPool(p *Pool) {
	for _, existing := range f.pools {
		if existing == p {
			return
		}
	}
	f.pools = append(f.pools, p)
}

// RemovePool detaches a pool, deactivating its projectiles.
func (f *Field) RemovePool(p *Pool) {
	for i, existing := range f.pools {
		if existing == p {
			p.Reset()
			f.pools = append(f.pools[:i], f.pools[i+1:]...)
			return
		}
	}
}

// Spawn instantiates a one-off projectile that is removed from the world
// when it deactivates.
func (f *Field) Spawn(spec ProjectileSpec, pos, direction core.Vec2) *Projectile {
	pr := NewProjectile(spec, true)
	pr.Launch(pos, direction, false)
	pr.Tint = core.TintEnemyShot
	f.oneOffs = append(f.oneOffs, pr)
	return pr
}

// Tick moves every active projectile and drops destroyed one-offs.
func (f *Field) Tick(dt float64) {
	f.Each(func(pr *Projectile) { pr.Tick(dt) })
	f.Sweep()
}

// Sweep removes destroyed one-offs.
func (f *Field) Sweep() {
	live := f.oneOffs[:0]
	for _, pr := range f.oneOffs {
		if !pr.Destroyed() {
			live = append(live, pr)
		}
	}
	for i := len(live); i < len(f.oneOffs); i++ {
		f.oneOffs[i] = nil
	}
	f.oneOffs = live
}

// Each calls fn for every active projectile, pooled first.
func (f *Field) Each(fn func(*Projectile)) {
	for _, p := range f.pools {
		for _, pr := range p.items {
			if pr.Active() {
				fn(pr)
			}
		}
	}
	for _, pr := range f.oneOffs {
		if pr.Active() {
			fn(pr)
		}
	}
}

// Count returns the number of active projectiles.
func (f *Field) Count() int {
	n := 0
	f.Each(func(*Projectile) { n++ })
	return n
}

// OneOffs returns the number of spawned projectiles still in the world.
func (f *Field) OneOffs() int {
	return len(f.oneOffs)
}

// Clear deactivates everything and drops all one-offs.
func (f *Field) Clear() {
	for _, p := range f.pools {
		p.Reset()
	}
	for i := range f.oneOffs {
		f.oneOffs[i] = nil
	}
	f.oneOffs = f.oneOffs[:0]
}
