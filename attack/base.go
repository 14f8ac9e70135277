package attack

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// defaultBoundsMargin is how far outside the arena an object may drift
// before it is culled.
const defaultBoundsMargin = 64.0

// Base carries the state shared by every attack variant: position,
// velocity, damage, the optional lifecycle machine, the modifier pipeline,
// and the visual transform derived from them. Variants embed Base and
// drive it through Step/Move/CullOutOfBounds.
type Base struct {
	ID uuid.UUID

	Pos cp.Vector
	Vel cp.Vector

	// HitboxOffset shifts the hitbox center away from the visual origin.
	HitboxOffset cp.Vector
	// HitboxW/HitboxH are the unscaled hitbox extents.
	HitboxW, HitboxH float64

	// Visual transform state, mutated by the lifecycle and modifiers.
	Alpha float64
	Scale float64
	Angle float64
	Col   color.RGBA

	// Life is the optional telegraph/active/fade machine. Objects without
	// one deal damage for as long as they are active.
	Life *Lifecycle

	// OnUpdate, when set, replaces the default linear motion step. Custom
	// per-spawn behavior is data on the object, not a subclass.
	OnUpdate func(b *Base, env *Env)
	// OnDraw, when set, replaces the default draw.
	OnDraw func(b *Base, dst *ebiten.Image)

	// BoundsMargin overrides the default cull margin when positive.
	BoundsMargin float64

	kind   string
	dmg    float64
	active bool
	mods   []Modifier
}

// NewBase constructs an active base object with sane visual defaults.
func NewBase(kind string, x, y, vx, vy, damage float64) Base {
	return Base{
		ID:      uuid.New(),
		Pos:     cp.Vector{X: x, Y: y},
		Vel:     cp.Vector{X: vx, Y: vy},
		HitboxW: 16,
		HitboxH: 16,
		Alpha:   1,
		Scale:   1,
		Col:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		kind:    kind,
		dmg:     damage,
		active:  true,
	}
}

func (b *Base) Active() bool    { return b != nil && b.active }
func (b *Base) Deactivate()     { b.active = false }
func (b *Base) Damage() float64 { return b.dmg }
func (b *Base) Kind() string    { return b.kind }

// SetDamage replaces the current damage value.
func (b *Base) SetDamage(d float64) { b.dmg = d }

// CanDealDamage is true in the lifecycle's active phase, or whenever the
// object is active if it has no lifecycle.
func (b *Base) CanDealDamage() bool {
	if b == nil || !b.active {
		return false
	}
	if b.Life != nil {
		return b.Life.CanDealDamage()
	}
	return true
}

// AddModifier appends a modifier to the pipeline. Order matters for
// multiplicative effects; callers sequence intentionally.
func (b *Base) AddModifier(m Modifier) {
	if b == nil || m == nil {
		return
	}
	b.mods = append(b.mods, m)
}

// ModifierCount returns the number of modifiers still in the pipeline.
func (b *Base) ModifierCount() int {
	return len(b.mods)
}

// Step advances the lifecycle and runs the modifier pipeline. It returns
// false once the object is inactive so variant Update methods can bail
// out; updating an inactive object is a no-op.
func (b *Base) Step() bool {
	if b == nil || !b.active {
		return false
	}
	if b.Life != nil {
		b.Life.Update()
		b.Alpha = b.Life.Alpha()
		if b.Life.Complete() {
			b.active = false
			return false
		}
	}
	b.runModifiers()
	return true
}

// Move applies one frame of motion: the OnUpdate hook when present,
// otherwise straight-line velocity.
func (b *Base) Move(env *Env) {
	if b == nil || !b.active {
		return
	}
	if b.OnUpdate != nil {
		b.OnUpdate(b, env)
		return
	}
	b.Pos = b.Pos.Add(b.Vel)
}

// CullOutOfBounds deactivates the object once it leaves the arena by more
// than the cull margin.
func (b *Base) CullOutOfBounds(arena cp.BB) {
	if b == nil || !b.active {
		return
	}
	m := b.BoundsMargin
	if m <= 0 {
		m = defaultBoundsMargin
	}
	if b.Pos.X < arena.L-m || b.Pos.X > arena.R+m ||
		b.Pos.Y < arena.B-m || b.Pos.Y > arena.T+m {
		b.active = false
	}
}

// Update is the default variant behavior: lifecycle, modifiers, linear
// motion, bounds cull.
func (b *Base) Update(env *Env) {
	if !b.Step() {
		return
	}
	b.Move(env)
	if env != nil {
		b.CullOutOfBounds(env.Arena)
	}
}

// Bounds returns the axis-aligned hitbox, scaled and offset from the
// visual origin.
func (b *Base) Bounds() cp.BB {
	center := b.Pos.Add(b.HitboxOffset)
	return cp.NewBBForExtents(center, b.HitboxW*b.Scale/2, b.HitboxH*b.Scale/2)
}

// Draw renders the default rectangle, or defers to the OnDraw hook.
func (b *Base) Draw(dst *ebiten.Image) {
	if b == nil || !b.active || dst == nil {
		return
	}
	if b.OnDraw != nil {
		b.OnDraw(b, dst)
		return
	}
	bb := b.Bounds()
	vector.FillRect(dst, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), b.DrawColor(), false)
}

// DrawColor returns the object's color with lifecycle/modifier alpha
// folded in.
func (b *Base) DrawColor() color.RGBA {
	a := b.Alpha
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(b.Col.R) * a),
		G: uint8(float64(b.Col.G) * a),
		B: uint8(float64(b.Col.B) * a),
		A: uint8(255 * a),
	}
}

// runModifiers updates each active modifier in insertion order and prunes
// completed ones. A pipeline with zero active modifiers is a pass-through.
func (b *Base) runModifiers() {
	if len(b.mods) == 0 {
		return
	}
	writeIdx := 0
	for _, m := range b.mods {
		if m == nil || !m.Active() {
			continue
		}
		m.Update(b)
		if !m.Active() {
			continue
		}
		b.mods[writeIdx] = m
		writeIdx++
	}
	b.mods = b.mods[:writeIdx]
}
