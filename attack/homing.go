package attack

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
)

// HomingProjectile steers toward the live target position. Heading
// changes are clamped to MaxTurn radians per tick, with an optional
// acceleration ramp toward MaxSpeed and an optional delay before homing
// engages.
type HomingProjectile struct {
	Base

	// MaxTurn is the largest heading change per tick, radians.
	MaxTurn float64
	// Accel is speed gained per tick while below MaxSpeed. Zero disables
	// the ramp.
	Accel float64
	// MaxSpeed bounds the acceleration ramp.
	MaxSpeed float64
	// DelayFrames is how long the projectile flies straight before homing
	// activates.
	DelayFrames int

	age int
}

func NewHomingProjectile(x, y, vx, vy, damage, maxTurn float64) *HomingProjectile {
	return &HomingProjectile{
		Base:    NewBase(KindHoming, x, y, vx, vy, damage),
		MaxTurn: maxTurn,
	}
}

func (h *HomingProjectile) Update(env *Env) {
	if !h.Step() {
		return
	}
	h.age++
	if env != nil && h.age > h.DelayFrames {
		h.steerToward(env.Target)
	}
	h.Move(env)
	if env != nil {
		h.CullOutOfBounds(env.Arena)
	}
}

func (h *HomingProjectile) steerToward(target cp.Vector) {
	to := target.Sub(h.Pos)
	speed := h.Vel.Length()
	// Zero-length direction or stationary projectile: no turn this tick.
	if to.Length() < common.Epsilon || speed < common.Epsilon {
		return
	}
	heading := h.Vel.ToAngle()
	desired := to.ToAngle()
	diff := common.AngleDiff(heading, desired)
	turn := common.Clamp(diff, -h.MaxTurn, h.MaxTurn)
	heading += turn

	if h.Accel > 0 {
		speed += h.Accel
		if h.MaxSpeed > 0 && speed > h.MaxSpeed {
			speed = h.MaxSpeed
		}
	}
	h.Vel = cp.ForAngle(heading).Mult(speed)
	h.Angle = common.WrapAngle(heading)
}

// Heading returns the current travel direction in radians, or the visual
// angle when stationary.
func (h *HomingProjectile) Heading() float64 {
	if h.Vel.Length() < common.Epsilon {
		return h.Angle
	}
	return math.Atan2(h.Vel.Y, h.Vel.X)
}
