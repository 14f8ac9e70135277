package attack

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Object is the contract every attack variant implements. An inactive
// object is never drawn or collision-tested and is pruned from its owning
// collection by the next frame.
type Object interface {
	Update(env *Env)
	Draw(dst *ebiten.Image)
	Bounds() cp.BB
	Active() bool
	Deactivate()
	Damage() float64
	Kind() string
	CanDealDamage() bool
}

// PointCollider is an optional capability for variants whose hit shape is
// not a rectangle (beams, walls, blasters). The collision arbiter prefers
// this over the default bounds-overlap test when present.
type PointCollider interface {
	CollidesWith(p cp.Vector, radius float64) bool
}

// MoverState is the view of the player avatar a conditional-damage gate
// may inspect.
type MoverState interface {
	Center() cp.Vector
	Radius() float64
	IsMoving() bool
}

// ConditionalDamager is an optional capability for variants that damage
// only under a condition of the target's state (blue/orange attacks). A
// false result skips the damage, not the collision.
type ConditionalDamager interface {
	ShouldDamage(m MoverState) bool
}

// ContactNotifiee is an optional capability for variants that react to a
// confirmed collision with the player (contact-triggered explosions). The
// arbiter invokes it after arbitration, at most once per tick.
type ContactNotifiee interface {
	NotifyContact(env *Env)
}

// Env is the per-tick environment handed to every Update. The pool view
// and spawn hook are owned by the orchestrating pattern layer; objects
// must not retain them across ticks.
type Env struct {
	// Arena is the battle box bounding player movement and attack culling.
	Arena cp.BB
	// Target is the player avatar's center this tick.
	Target cp.Vector
	// Frame is the orchestrator's frame counter.
	Frame int

	// Spawn appends a new object to the owning live set. May be nil.
	Spawn func(Object)
	// Pool is a read-only view of the owning live set, for chain triggers.
	// May be nil.
	Pool []Object
}

// SpawnObject forwards to the spawn hook if one is wired.
func (e *Env) SpawnObject(o Object) {
	if e == nil || e.Spawn == nil || o == nil {
		return
	}
	e.Spawn(o)
}
