package attack

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
)

// BlasterPhase is a stage of the four-phase blaster lifecycle.
type BlasterPhase int

const (
	BlasterAppear BlasterPhase = iota
	BlasterCharge
	BlasterFire
	BlasterFade
	BlasterDone
)

// GasterBlaster materializes at a fixed origin aimed at a target point,
// charges, fires a directional beam, then fades. The beam damages only
// during the fire phase; collision is a segment-to-circle test from the
// muzzle.
type GasterBlaster struct {
	Base

	Origin cp.Vector
	// aim is the unit beam direction, fixed at spawn.
	aim cp.Vector

	AppearFrames int
	ChargeFrames int
	FireFrames   int
	FadeFrames   int

	BeamLength float64
	BeamWidth  float64
	// MuzzleOffset is where the beam starts along the aim direction.
	MuzzleOffset float64

	phase BlasterPhase
	timer int
}

func NewGasterBlaster(origin, target cp.Vector, damage float64, appear, charge, fire, fade int) *GasterBlaster {
	g := &GasterBlaster{
		Base:         NewBase(KindBlaster, origin.X, origin.Y, 0, 0, damage),
		Origin:       origin,
		AppearFrames: appear,
		ChargeFrames: charge,
		FireFrames:   fire,
		FadeFrames:   fade,
		BeamLength:   900,
		BeamWidth:    28,
		MuzzleOffset: 20,
	}
	to := target.Sub(origin)
	if to.Length() < common.Epsilon {
		// Degenerate aim: fire straight down rather than propagating NaN.
		to = cp.Vector{Y: 1}
	}
	g.aim = to.Normalize()
	g.Angle = common.WrapAngle(g.aim.ToAngle())
	g.Alpha = 0
	g.Col = color.RGBA{R: 0xf4, G: 0xf4, B: 0xff, A: 0xff}
	return g
}

// Phase returns the current blaster phase.
func (g *GasterBlaster) Phase() BlasterPhase { return g.phase }

// Aim returns the fixed unit beam direction.
func (g *GasterBlaster) Aim() cp.Vector { return g.aim }

// CanDealDamage is true only while firing.
func (g *GasterBlaster) CanDealDamage() bool {
	return g.Active() && g.phase == BlasterFire
}

func (g *GasterBlaster) Update(env *Env) {
	if !g.Step() {
		return
	}
	g.timer++
	switch g.phase {
	case BlasterAppear:
		if g.AppearFrames > 0 {
			g.Alpha = common.Clamp(float64(g.timer)/float64(g.AppearFrames), 0, 1)
		} else {
			g.Alpha = 1
		}
		g.advanceAt(g.AppearFrames, BlasterCharge)
	case BlasterCharge:
		g.Alpha = 1
		g.advanceAt(g.ChargeFrames, BlasterFire)
	case BlasterFire:
		g.Alpha = 1
		g.advanceAt(g.FireFrames, BlasterFade)
	case BlasterFade:
		if g.FadeFrames > 0 {
			g.Alpha = common.Clamp(1-float64(g.timer)/float64(g.FadeFrames), 0, 1)
		} else {
			g.Alpha = 0
		}
		if g.timer >= g.FadeFrames {
			g.phase = BlasterDone
			g.Deactivate()
		}
	}
}

func (g *GasterBlaster) advanceAt(duration int, next BlasterPhase) {
	if g.timer >= duration {
		g.phase = next
		g.timer = 0
	}
}

// CollidesWith tests the point against the beam segment, active only
// during the fire phase.
func (g *GasterBlaster) CollidesWith(p cp.Vector, radius float64) bool {
	if !g.CanDealDamage() {
		return false
	}
	start := g.Origin.Add(g.aim.Mult(g.MuzzleOffset))
	end := g.Origin.Add(g.aim.Mult(g.BeamLength))
	return common.PointSegmentDistance(p, start, end) <= radius+g.BeamWidth/2
}

// Bounds covers the full beam reach.
func (g *GasterBlaster) Bounds() cp.BB {
	return cp.NewBBForCircle(g.Origin, g.BeamLength)
}

func (g *GasterBlaster) Draw(dst *ebiten.Image) {
	if !g.Active() || dst == nil {
		return
	}
	col := g.DrawColor()
	// skull proxy
	vector.FillRect(dst, float32(g.Origin.X-14), float32(g.Origin.Y-14), 28, 28, col, false)
	switch g.phase {
	case BlasterCharge:
		end := g.Origin.Add(g.aim.Mult(g.BeamLength))
		vector.StrokeLine(dst, float32(g.Origin.X), float32(g.Origin.Y), float32(end.X), float32(end.Y), 1, col, true)
	case BlasterFire:
		start := g.Origin.Add(g.aim.Mult(g.MuzzleOffset))
		end := g.Origin.Add(g.aim.Mult(g.BeamLength))
		vector.StrokeLine(dst, float32(start.X), float32(start.Y), float32(end.X), float32(end.Y), float32(g.BeamWidth), col, true)
	}
}
