package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the threshold below which vector lengths and durations are
// treated as zero to avoid NaN propagation in direction math.
const Epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle to [0, 2*pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed smallest difference between two angles,
// in (-pi, pi].
func AngleDiff(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// ClampVec clamps a point into a bounding box.
func ClampVec(v cp.Vector, bb cp.BB) cp.Vector {
	return cp.Vector{
		X: Clamp(v.X, bb.L, bb.R),
		Y: Clamp(v.Y, bb.B, bb.T),
	}
}

// PointSegmentDistance returns the distance from point p to the segment a-b.
// Degenerate segments (a == b within epsilon) fall back to point distance.
func PointSegmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < Epsilon {
		return p.Distance(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	closest := a.Add(ab.Mult(t))
	return p.Distance(closest)
}
