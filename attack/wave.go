package attack

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
)

// Oscillation selects the perpendicular displacement curve of a wave
// projectile.
type Oscillation int

const (
	OscSine Oscillation = iota
	OscCosine
	// OscCombined mixes sine and cosine for a slanted weave.
	OscCombined
	// OscSpiral grows the amplitude over time.
	OscSpiral
	// OscFigureEight traces a lissajous figure around the base path.
	OscFigureEight
)

// OscillationByName resolves oscillation names from pattern specs.
// Unknown names fall back to sine.
func OscillationByName(name string) Oscillation {
	switch name {
	case "cosine":
		return OscCosine
	case "combined":
		return OscCombined
	case "spiral":
		return OscSpiral
	case "figure_eight":
		return OscFigureEight
	default:
		return OscSine
	}
}

// WaveProjectile follows a straight base heading with a perpendicular
// oscillation layered on top. PhaseOffset lets synchronized groups weave
// in formation.
type WaveProjectile struct {
	Base

	Amplitude float64
	// Frequency is radians of phase advanced per frame.
	Frequency   float64
	PhaseOffset float64
	Osc         Oscillation

	basePos cp.Vector
	age     int
}

func NewWaveProjectile(x, y, vx, vy, damage, amplitude, frequency float64) *WaveProjectile {
	return &WaveProjectile{
		Base:      NewBase(KindWave, x, y, vx, vy, damage),
		Amplitude: amplitude,
		Frequency: frequency,
		basePos:   cp.Vector{X: x, Y: y},
	}
}

func (w *WaveProjectile) Update(env *Env) {
	if !w.Step() {
		return
	}
	w.age++
	w.basePos = w.basePos.Add(w.Vel)

	phase := float64(w.age)*w.Frequency + w.PhaseOffset
	along, across := w.displacement(phase)

	dir := w.Vel
	if dir.Length() < common.Epsilon {
		dir = cp.ForAngle(w.Angle)
	} else {
		dir = dir.Normalize()
	}
	perp := dir.Perp()
	w.Pos = w.basePos.Add(perp.Mult(across)).Add(dir.Mult(along))

	if env != nil {
		// Cull on the base path so a wide swing does not drop the object
		// early while its carrier is still inside the arena.
		if w.baseOut(env.Arena) {
			w.Deactivate()
		}
	}
}

func (w *WaveProjectile) displacement(phase float64) (along, across float64) {
	switch w.Osc {
	case OscCosine:
		return 0, w.Amplitude * math.Cos(phase)
	case OscCombined:
		return 0, w.Amplitude * 0.5 * (math.Sin(phase) + math.Cos(phase*1.5))
	case OscSpiral:
		grow := math.Min(float64(w.age)/120.0, 1)
		return 0, w.Amplitude * grow * math.Sin(phase)
	case OscFigureEight:
		return w.Amplitude * 0.5 * math.Sin(2*phase), w.Amplitude * math.Sin(phase)
	default:
		return 0, w.Amplitude * math.Sin(phase)
	}
}

func (w *WaveProjectile) baseOut(arena cp.BB) bool {
	m := w.BoundsMargin
	if m <= 0 {
		m = defaultBoundsMargin
	}
	return w.basePos.X < arena.L-m || w.basePos.X > arena.R+m ||
		w.basePos.Y < arena.B-m || w.basePos.Y > arena.T+m
}
