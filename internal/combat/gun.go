// Package combat contains weapons, projectiles and the projectile pool.
package combat

import (
	"fmt"

	"github.com/vovakirdan/tui-rewind/internal/entity"
)

// ProjectileSpec is the template a projectile is launched from.
type ProjectileSpec struct {
	Damage          float64
	Speed           float64
	FinalShotDamage float64
	FinalShotSpeed  float64
	Targets         entity.Tag
	Radius          float64
}

// Gun is a static weapon record. It is read-only after the armory is built.
type Gun struct {
	ID               int
	Name             string
	MaxAmmo          int
	ReloadTime       float64
	ShotsPerSecond   int
	FireContinuously bool
	Projectile       ProjectileSpec
	PoolSize         int
}

// MinShotInterval returns the shortest legal time between two shots.
func (g *Gun) MinShotInterval() float64 {
	if g.ShotsPerSecond <= 0 {
		return 0
	}
	return 1 / float64(g.ShotsPerSecond)
}

// Armory looks guns up by id and by name. Guns keep their load order.
type Armory struct {
	byID   map[int]*Gun
	byName map[string]*Gun
	order  []*Gun
}

// NewArmory builds the lookup tables. Ids and names must be unique.
func NewArmory(guns ...Gun) (*Armory, error) {
	a := &Armory{
		byID:   make(map[int]*Gun, len(guns)),
		byName: make(map[string]*Gun, len(guns)),
	}
	for i := range guns {
		g := guns[i]
		if _, ok := a.byID[g.ID]; ok {
			return nil, fmt.Errorf("combat: duplicate gun id %d", g.ID)
		}
		if _, ok := a.byName[g.Name]; ok {
			return nil, fmt.Errorf("combat: duplicate gun name %q", g.Name)
		}
		if g.MaxAmmo <= 0 {
			return nil, fmt.Errorf("combat: gun %q: max ammo must be positive", g.Name)
		}
		a.byID[g.ID] = &g
		a.byName[g.Name] = &g
		a.order = append(a.order, &g)
	}
	return a, nil
}

// ByID returns the gun with the given id.
func (a *Armory) ByID(id int) (*Gun, bool) {
	g, ok := a.byID[id]
	return g, ok
}

// ByName returns the gun with the given name.
func (a *Armory) ByName(name string) (*Gun, bool) {
	g, ok := a.byName[name]
	return g, ok
}

// Guns returns every gun in load order.
func (a *Armory) Guns() []*Gun {
	return a.order
}

// Len returns the number of guns.
func (a *Armory) Len() int {
	return len(a.order)
}

// After returns the gun following cur in load order, wrapping around.
// A nil cur yields the first gun.
func (a *Armory) After(cur *Gun) *Gun {
	if len(a.order) == 0 {
		return nil
	}
	if cur == nil {
		return a.order[0]
	}
	for i, g := range a.order {
		if g.ID == cur.ID {
			return a.order[(i+1)%len(a.order)]
		}
	}
	return a.order[0]
}
