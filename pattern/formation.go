// Package pattern composes attack objects in space (formations), time
// (patterns and choreography), and phases (the composer). Spatial layout
// is deliberately decoupled from temporal scheduling so any barrage is
// "where" x "when" x "which phase".
package pattern

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/attack"
)

// Factory builds one attack object at a formation slot. The angle is the
// slot's outward or travel direction, radians.
type Factory func(x, y, angle float64) attack.Object

// Circular places count objects evenly on a circle, each angled outward.
func Circular(center cp.Vector, radius float64, count int, f Factory) []attack.Object {
	if f == nil || count <= 0 {
		return nil
	}
	out := make([]attack.Object, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(count)
		p := center.Add(cp.ForAngle(angle).Mult(radius))
		if o := f(p.X, p.Y, angle); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Spiral winds count objects outward from the center, advancing both
// angle and radius per slot.
func Spiral(center cp.Vector, startRadius, radiusStep, angleStep float64, count int, f Factory) []attack.Object {
	if f == nil || count <= 0 {
		return nil
	}
	out := make([]attack.Object, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * angleStep
		radius := startRadius + float64(i)*radiusStep
		p := center.Add(cp.ForAngle(angle).Mult(radius))
		if o := f(p.X, p.Y, angle); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Grid fills rows x cols slots spaced by spacing, top-left at origin.
// Slot angles are zero.
func Grid(origin cp.Vector, rows, cols int, spacing float64, f Factory) []attack.Object {
	if f == nil || rows <= 0 || cols <= 0 {
		return nil
	}
	out := make([]attack.Object, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := origin.X + float64(c)*spacing
			y := origin.Y + float64(r)*spacing
			if o := f(x, y, 0); o != nil {
				out = append(out, o)
			}
		}
	}
	return out
}

// Line places count objects evenly between two endpoints, angled along
// the segment's normal.
func Line(from, to cp.Vector, count int, f Factory) []attack.Object {
	if f == nil || count <= 0 {
		return nil
	}
	normal := to.Sub(from).Perp().ToAngle()
	out := make([]attack.Object, 0, count)
	for i := 0; i < count; i++ {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		p := from.Lerp(to, t)
		if o := f(p.X, p.Y, normal); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// SineLine is Line with a sine displacement along the segment normal,
// giving the row a standing-wave shape.
func SineLine(from, to cp.Vector, count int, amplitude, cycles float64, f Factory) []attack.Object {
	if f == nil || count <= 0 {
		return nil
	}
	dir := to.Sub(from)
	perp := cp.Vector{X: 0, Y: 1}
	if dir.Length() > 0 {
		perp = dir.Normalize().Perp()
	}
	normal := perp.ToAngle()
	out := make([]attack.Object, 0, count)
	for i := 0; i < count; i++ {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		p := from.Lerp(to, t).Add(perp.Mult(amplitude * math.Sin(t*cycles*2*math.Pi)))
		if o := f(p.X, p.Y, normal); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Random scatters count objects uniformly inside the box. A nil rng uses
// the shared source.
func Random(box cp.BB, count int, rng *rand.Rand, f Factory) []attack.Object {
	if f == nil || count <= 0 {
		return nil
	}
	rnd := rand.Float64
	if rng != nil {
		rnd = rng.Float64
	}
	out := make([]attack.Object, 0, count)
	for i := 0; i < count; i++ {
		x := box.L + rnd()*(box.R-box.L)
		y := box.B + rnd()*(box.T-box.B)
		if o := f(x, y, rnd()*2*math.Pi); o != nil {
			out = append(out, o)
		}
	}
	return out
}
