package attack

import (
	"github.com/jakecoffman/cp"
)

// BouncingProjectile reflects its velocity component-wise on arena-wall
// contact. Each bounce optionally bleeds energy; the projectile
// deactivates after MaxBounces bounces or once it drops below MinSpeed.
type BouncingProjectile struct {
	Base

	// EnergyLoss is the fraction of speed lost per bounce, in [0,1).
	EnergyLoss float64
	// MaxBounces deactivates the projectile after this many reflections.
	// Zero or negative means unlimited.
	MaxBounces int
	// MinSpeed deactivates the projectile when speed falls below it.
	MinSpeed float64
	// OnBounce is invoked after each reflection with the bounce ordinal.
	OnBounce func(bounce int)

	bounces int
}

func NewBouncingProjectile(x, y, vx, vy, damage float64, maxBounces int, energyLoss float64) *BouncingProjectile {
	return &BouncingProjectile{
		Base:       NewBase(KindBouncing, x, y, vx, vy, damage),
		EnergyLoss: energyLoss,
		MaxBounces: maxBounces,
	}
}

// Bounces returns how many wall reflections have occurred.
func (p *BouncingProjectile) Bounces() int { return p.bounces }

func (p *BouncingProjectile) Update(env *Env) {
	if !p.Step() {
		return
	}
	p.Move(env)
	if env == nil {
		return
	}
	p.reflect(env.Arena)
	// Bouncers live inside the arena; the cull only catches runaways from
	// a degenerate arena or an external velocity override.
	p.CullOutOfBounds(env.Arena)
}

func (p *BouncingProjectile) reflect(arena cp.BB) {
	hw := p.HitboxW * p.Scale / 2
	hh := p.HitboxH * p.Scale / 2
	bounced := false

	if p.Pos.X-hw < arena.L {
		p.Pos.X = arena.L + hw
		p.Vel.X = -p.Vel.X
		bounced = true
	} else if p.Pos.X+hw > arena.R {
		p.Pos.X = arena.R - hw
		p.Vel.X = -p.Vel.X
		bounced = true
	}
	if p.Pos.Y-hh < arena.B {
		p.Pos.Y = arena.B + hh
		p.Vel.Y = -p.Vel.Y
		bounced = true
	} else if p.Pos.Y+hh > arena.T {
		p.Pos.Y = arena.T - hh
		p.Vel.Y = -p.Vel.Y
		bounced = true
	}
	if !bounced {
		return
	}

	if p.EnergyLoss > 0 {
		p.Vel = p.Vel.Mult(1 - p.EnergyLoss)
	}
	p.bounces++
	if p.OnBounce != nil {
		p.OnBounce(p.bounces)
	}
	if p.MaxBounces > 0 && p.bounces >= p.MaxBounces {
		p.Deactivate()
		return
	}
	if p.MinSpeed > 0 && p.Vel.Length() < p.MinSpeed {
		p.Deactivate()
	}
}
