package attack

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
)

// RotatingBeam sweeps a damaging line segment around a fixed origin. The
// telegraph/active/fade phases come from the shared lifecycle; collision
// is a point-to-segment distance test that excludes a safe zone around
// the origin.
type RotatingBeam struct {
	Base

	Origin cp.Vector
	Length float64
	Width  float64
	// AngularVel is radians swept per frame; negative sweeps the other way.
	AngularVel float64
	// SafeRadius excludes a disc around the origin from collision.
	SafeRadius float64

	// ClampMin/ClampMax bound the sweep when Clamped; the beam reverses
	// at each limit instead of wrapping.
	Clamped  bool
	ClampMin float64
	ClampMax float64
}

func NewRotatingBeam(origin cp.Vector, length, startAngle, angularVel, damage float64, telegraph, active, fade int) *RotatingBeam {
	b := &RotatingBeam{
		Base:       NewBase(KindBeam, origin.X, origin.Y, 0, 0, damage),
		Origin:     origin,
		Length:     length,
		Width:      8,
		AngularVel: angularVel,
		SafeRadius: 24,
	}
	b.Angle = common.WrapAngle(startAngle)
	b.Life = NewLifecycle(telegraph, active, fade)
	b.Col = color.RGBA{R: 0xff, G: 0xf0, B: 0x66, A: 0xff}
	return b
}

func (b *RotatingBeam) Update(env *Env) {
	if !b.Step() {
		return
	}
	if b.Clamped {
		next := b.Angle + b.AngularVel
		if next > b.ClampMax {
			next = b.ClampMax
			b.AngularVel = -b.AngularVel
		} else if next < b.ClampMin {
			next = b.ClampMin
			b.AngularVel = -b.AngularVel
		}
		b.Angle = next
	} else {
		b.Angle = common.WrapAngle(b.Angle + b.AngularVel)
	}
	// Fixed origin: never culled by bounds, only by lifecycle completion.
}

// CollidesWith tests the point against the swept segment, excluding the
// safe zone around the origin.
func (b *RotatingBeam) CollidesWith(p cp.Vector, radius float64) bool {
	if !b.CanDealDamage() {
		return false
	}
	if p.Distance(b.Origin) <= b.SafeRadius {
		return false
	}
	dir := cp.ForAngle(b.Angle)
	start := b.Origin.Add(dir.Mult(b.SafeRadius))
	end := b.Origin.Add(dir.Mult(b.Length))
	return common.PointSegmentDistance(p, start, end) <= radius+b.Width/2
}

// Bounds covers the whole sweep disc so pool-level culling never drops a
// live beam.
func (b *RotatingBeam) Bounds() cp.BB {
	return cp.NewBBForCircle(b.Origin, b.Length)
}

func (b *RotatingBeam) Draw(dst *ebiten.Image) {
	if !b.Active() || dst == nil {
		return
	}
	dir := cp.ForAngle(b.Angle)
	end := b.Origin.Add(dir.Mult(b.Length))
	w := float32(b.Width)
	if b.Life != nil && b.Life.Phase() == PhaseWarmup {
		w = 1 // thin telegraph line
	}
	vector.StrokeLine(dst, float32(b.Origin.X), float32(b.Origin.Y), float32(end.X), float32(end.Y), w, b.DrawColor(), true)
}
