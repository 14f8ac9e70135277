package attack

import (
	"github.com/jakecoffman/cp"
)

// ArcProjectile integrates gravity for parabolic motion, with optional
// air resistance and ground bounces. Screen coordinates: +Y is down, so
// gravity is positive and "rising" means a negative Y velocity.
type ArcProjectile struct {
	Base

	// Gravity is added to the Y velocity each frame after the position
	// step.
	Gravity float64
	// AirResistance is the per-frame velocity fraction lost, in [0,1).
	AirResistance float64
	// GroundBounce reflects the projectile off the arena floor.
	GroundBounce bool
	// BounceDamping scales speed on each ground bounce, in [0,1].
	BounceDamping float64
	// MaxGroundBounces deactivates after this many floor hits. Zero or
	// negative means unlimited.
	MaxGroundBounces int

	// OnPeak fires once per arc when vertical velocity crosses from
	// rising to falling.
	OnPeak func()
	// OnGround fires on every floor contact.
	OnGround func(bounce int)

	groundBounces int
	wasRising     bool
}

func NewArcProjectile(x, y, vx, vy, damage, gravity float64) *ArcProjectile {
	return &ArcProjectile{
		Base:          NewBase(KindArc, x, y, vx, vy, damage),
		Gravity:       gravity,
		BounceDamping: 1,
		wasRising:     vy < 0,
	}
}

// SolveArcVelocity returns the initial velocity that lands a projectile
// launched at from on to after exactly frames ticks under the given
// per-frame gravity, matching the discrete integration used by Update
// (position step first, then gravity).
func SolveArcVelocity(from, to cp.Vector, frames int, gravity float64) cp.Vector {
	if frames <= 0 {
		return cp.Vector{}
	}
	n := float64(frames)
	return cp.Vector{
		X: (to.X - from.X) / n,
		Y: (to.Y-from.Y)/n - gravity*(n-1)/2,
	}
}

func (a *ArcProjectile) Update(env *Env) {
	if !a.Step() {
		return
	}
	a.Move(env)

	rising := a.Vel.Y < 0
	if a.wasRising && !rising && a.OnPeak != nil {
		a.OnPeak()
	}
	a.wasRising = rising

	a.Vel.Y += a.Gravity
	if a.AirResistance > 0 {
		a.Vel = a.Vel.Mult(1 - a.AirResistance)
	}

	if env == nil {
		return
	}
	a.groundContact(env.Arena)
	a.CullOutOfBounds(env.Arena)
}

func (a *ArcProjectile) groundContact(arena cp.BB) {
	if !a.Active() {
		return
	}
	hh := a.HitboxH * a.Scale / 2
	floor := arena.T
	if a.Pos.Y+hh < floor {
		return
	}

	a.groundBounces++
	if a.OnGround != nil {
		a.OnGround(a.groundBounces)
	}
	if !a.GroundBounce {
		return
	}
	a.Pos.Y = floor - hh
	a.Vel.Y = -a.Vel.Y * a.BounceDamping
	a.Vel.X *= a.BounceDamping
	a.wasRising = a.Vel.Y < 0
	if a.MaxGroundBounces > 0 && a.groundBounces >= a.MaxGroundBounces {
		a.Deactivate()
	}
}
