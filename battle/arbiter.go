package battle

import (
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/attack"
	"github.com/milk9111/battlebox/soul"
)

const defaultInvincibilityFrames = 60

// DamageEvent is published to collision listeners when the soul takes a
// hit. HP bookkeeping, VFX, and audio all hang off these instead of the
// arbiter calling into them directly.
type DamageEvent struct {
	Damage     float64
	AttackKind string
}

// blocker is satisfied by movement modes that can deflect attacks from
// a direction (the shield).
type blocker interface {
	Blocks(angle float64) bool
}

// Arbiter resolves soul-vs-attack collisions once per tick. At most one
// damage event is emitted per tick, and a confirmed hit opens the
// soul's invincibility window.
type Arbiter struct {
	// InvincibilityFrames granted on a confirmed hit.
	InvincibilityFrames int

	listeners map[uuid.UUID]func(DamageEvent)
}

func NewArbiter() *Arbiter {
	return &Arbiter{
		InvincibilityFrames: defaultInvincibilityFrames,
		listeners:           map[uuid.UUID]func(DamageEvent){},
	}
}

// OnCollision registers a damage listener and returns a removal token.
func (a *Arbiter) OnCollision(cb func(DamageEvent)) uuid.UUID {
	token := uuid.New()
	a.listeners[token] = cb
	return token
}

// RemoveListener drops a damage listener. Unknown tokens are ignored.
func (a *Arbiter) RemoveListener(token uuid.UUID) {
	delete(a.listeners, token)
}

// Resolve tests the soul against every live object and returns the
// damage event if a hit landed, or nil. Invincibility suppresses all
// tests until it expires.
func (a *Arbiter) Resolve(s *soul.Soul, objs []attack.Object, env *attack.Env) *DamageEvent {
	if a == nil || s == nil || s.Invincible() {
		return nil
	}

	for _, o := range objs {
		if o == nil || !o.Active() {
			continue
		}
		if !a.collides(s, o) {
			continue
		}
		// contact fires even when the damage gate below says no
		if n, ok := o.(attack.ContactNotifiee); ok {
			n.NotifyContact(env)
		}
		if !o.CanDealDamage() {
			continue
		}
		if cd, ok := o.(attack.ConditionalDamager); ok && !cd.ShouldDamage(s) {
			continue
		}
		if a.blocked(s, o) {
			continue
		}

		ev := DamageEvent{Damage: o.Damage(), AttackKind: o.Kind()}
		s.GrantInvincibility(a.InvincibilityFrames)
		for _, cb := range a.listeners {
			cb(ev)
		}
		return &ev
	}
	return nil
}

// collides prefers a variant's custom point predicate over the default
// rectangle overlap. Beams, walls, and blasters are not representable
// as boxes.
func (a *Arbiter) collides(s *soul.Soul, o attack.Object) bool {
	if pc, ok := o.(attack.PointCollider); ok {
		return pc.CollidesWith(s.Center(), s.Radius())
	}
	return o.Bounds().Intersects(s.Bounds())
}

// blocked consults the movement mode's deflection predicate, when it
// has one, with the direction from the soul toward the attack.
func (a *Arbiter) blocked(s *soul.Soul, o attack.Object) bool {
	b, ok := s.Mode().(blocker)
	if !ok {
		return false
	}
	bb := o.Bounds()
	center := cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
	dir := center.Sub(s.Center())
	if dir.LengthSq() == 0 {
		return false
	}
	return b.Blocks(dir.ToAngle())
}
