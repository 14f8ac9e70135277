package attack

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
)

// FragmentPattern selects the spatial layout of explosion fragments.
type FragmentPattern int

const (
	// FragmentsUniform spaces fragments evenly around the full circle.
	FragmentsUniform FragmentPattern = iota
	// FragmentsRandom scatters fragments at random headings.
	FragmentsRandom
	// FragmentsDirectional sends fragments along the current heading with
	// a small spread.
	FragmentsDirectional
	// FragmentsCone spreads fragments inside ConeAngle around the heading.
	FragmentsCone
)

// ExplodingProjectile flies straight until a fuse, a bounds exit, or
// (optionally) player contact detonates it, then spawns fragments into
// the owning pool. Other exploding projectiles inside ChainRadius
// detonate with it.
type ExplodingProjectile struct {
	Base

	// FuseFrames counts down to detonation. Zero or negative disables the
	// fuse.
	FuseFrames int
	// ContactTrigger detonates on confirmed player contact.
	ContactTrigger bool

	FragmentCount  int
	FragmentSpeed  float64
	FragmentDamage float64
	Pattern        FragmentPattern
	// ConeAngle is the full cone width for FragmentsCone, radians.
	ConeAngle float64
	// ChainRadius triggers other exploding projectiles within range.
	// Zero disables chaining.
	ChainRadius float64

	// Rand supplies fragment scatter; the shared source is used when nil.
	Rand *rand.Rand

	age      int
	exploded bool
}

func NewExplodingProjectile(x, y, vx, vy, damage float64, fuseFrames, fragments int, fragmentSpeed float64) *ExplodingProjectile {
	e := &ExplodingProjectile{
		Base:           NewBase(KindExploding, x, y, vx, vy, damage),
		FuseFrames:     fuseFrames,
		FragmentCount:  fragments,
		FragmentSpeed:  fragmentSpeed,
		FragmentDamage: damage,
	}
	e.Col = color.RGBA{R: 0xff, G: 0x55, B: 0x44, A: 0xff}
	return e
}

// Exploded reports whether detonation already happened.
func (e *ExplodingProjectile) Exploded() bool { return e.exploded }

func (e *ExplodingProjectile) Update(env *Env) {
	if !e.Step() {
		return
	}
	e.age++
	if e.FuseFrames > 0 && e.age >= e.FuseFrames {
		e.Detonate(env)
		return
	}
	e.Move(env)
	if env != nil && e.outOfArena(env.Arena) {
		e.Detonate(env)
	}
}

// NotifyContact lets the collision arbiter detonate contact-triggered
// projectiles.
func (e *ExplodingProjectile) NotifyContact(env *Env) {
	if e.ContactTrigger {
		e.Detonate(env)
	}
}

// Detonate spawns fragments into the owning pool, chains to nearby
// exploding projectiles, and deactivates the shell. Detonating twice is a
// no-op.
func (e *ExplodingProjectile) Detonate(env *Env) {
	if e == nil || e.exploded || !e.Active() {
		return
	}
	e.exploded = true
	e.Deactivate()
	if env == nil {
		return
	}

	for _, angle := range e.fragmentAngles() {
		frag := NewProjectile(e.Pos.X, e.Pos.Y, 0, 0, e.FragmentDamage)
		frag.kind = KindFragment
		frag.Vel = cp.ForAngle(angle).Mult(e.FragmentSpeed)
		frag.HitboxW = e.HitboxW / 2
		frag.HitboxH = e.HitboxH / 2
		frag.Col = e.Col
		env.SpawnObject(frag)
	}

	if e.ChainRadius > 0 {
		for _, o := range env.Pool {
			other, ok := o.(*ExplodingProjectile)
			if !ok || other == e || !other.Active() {
				continue
			}
			if other.Pos.Distance(e.Pos) <= e.ChainRadius {
				other.Detonate(env)
			}
		}
	}
}

func (e *ExplodingProjectile) fragmentAngles() []float64 {
	n := e.FragmentCount
	if n <= 0 {
		return nil
	}
	heading := e.Angle
	if e.Vel.Length() > common.Epsilon {
		heading = e.Vel.ToAngle()
	}
	angles := make([]float64, 0, n)

	switch e.Pattern {
	case FragmentsRandom:
		for i := 0; i < n; i++ {
			angles = append(angles, e.randFloat()*2*math.Pi)
		}
	case FragmentsDirectional:
		// tight spread around the heading
		const spread = math.Pi / 12
		for i := 0; i < n; i++ {
			angles = append(angles, heading+(e.randFloat()*2-1)*spread)
		}
	case FragmentsCone:
		cone := e.ConeAngle
		if cone <= 0 {
			cone = math.Pi / 3
		}
		if n == 1 {
			return []float64{heading}
		}
		for i := 0; i < n; i++ {
			t := float64(i)/float64(n-1) - 0.5
			angles = append(angles, heading+t*cone)
		}
	default: // FragmentsUniform
		for i := 0; i < n; i++ {
			angles = append(angles, float64(i)*2*math.Pi/float64(n))
		}
	}
	return angles
}

func (e *ExplodingProjectile) randFloat() float64 {
	if e.Rand != nil {
		return e.Rand.Float64()
	}
	return rand.Float64()
}

func (e *ExplodingProjectile) outOfArena(arena cp.BB) bool {
	return !arena.ContainsVect(e.Pos)
}
