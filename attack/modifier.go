package attack

import (
	"image/color"
	"math"

	"github.com/milk9111/battlebox/common"
)

// Modifier is a self-contained, time-bounded transform applied to an
// object each frame. A modifier flags its own completion; a completed
// modifier is pruned from the pipeline and never re-applied.
type Modifier interface {
	Update(b *Base)
	Active() bool
}

// ScaleModifier interpolates the object's size multiplier.
type ScaleModifier struct {
	interp *common.Interpolator
}

func NewScaleModifier(from, to float64, durationFrames int, easing common.Ease) *ScaleModifier {
	return &ScaleModifier{interp: common.NewInterpolator(from, to, durationFrames, easing)}
}

func (m *ScaleModifier) Update(b *Base) {
	if m == nil || b == nil || m.interp == nil {
		return
	}
	m.interp.Step()
	b.Scale = m.interp.Value()
}

func (m *ScaleModifier) Active() bool {
	return m != nil && m.interp != nil && !m.interp.Done()
}

// RotationModifier increments the object's angle each frame, wrapped to
// [0, 2*pi). DurationFrames <= 0 spins forever.
type RotationModifier struct {
	Speed          float64 // radians per frame
	DurationFrames int

	elapsed int
	done    bool
}

func NewRotationModifier(speed float64, durationFrames int) *RotationModifier {
	return &RotationModifier{Speed: speed, DurationFrames: durationFrames}
}

func (m *RotationModifier) Update(b *Base) {
	if m == nil || b == nil || m.done {
		return
	}
	b.Angle = common.WrapAngle(b.Angle + m.Speed)
	if m.DurationFrames > 0 {
		m.elapsed++
		if m.elapsed >= m.DurationFrames {
			m.done = true
		}
	}
}

func (m *RotationModifier) Active() bool { return m != nil && !m.done }

// ColorFadeModifier interpolates each RGB channel with eased progress.
type ColorFadeModifier struct {
	From, To color.RGBA
	interp   *common.Interpolator
}

func NewColorFadeModifier(from, to color.RGBA, durationFrames int, easing common.Ease) *ColorFadeModifier {
	return &ColorFadeModifier{
		From:   from,
		To:     to,
		interp: common.NewInterpolator(0, 1, durationFrames, easing),
	}
}

func (m *ColorFadeModifier) Update(b *Base) {
	if m == nil || b == nil || m.interp == nil {
		return
	}
	m.interp.Step()
	t := m.interp.Value()
	b.Col = color.RGBA{
		R: lerpChannel(m.From.R, m.To.R, t),
		G: lerpChannel(m.From.G, m.To.G, t),
		B: lerpChannel(m.From.B, m.To.B, t),
		A: b.Col.A,
	}
}

func (m *ColorFadeModifier) Active() bool {
	return m != nil && m.interp != nil && !m.interp.Done()
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(common.Lerp(float64(a), float64(b), t)))
}

// SpeedModifier interpolates a velocity multiplier. The factor is applied
// relative to the previous frame's factor so it composes with velocity
// changes made elsewhere (bounces, mirrors). When not permanent, the
// original speed is restored on completion.
type SpeedModifier struct {
	Permanent bool

	interp     *common.Interpolator
	prevFactor float64
	done       bool
}

func NewSpeedModifier(from, to float64, durationFrames int, easing common.Ease, permanent bool) *SpeedModifier {
	return &SpeedModifier{
		Permanent:  permanent,
		interp:     common.NewInterpolator(from, to, durationFrames, easing),
		prevFactor: 1,
	}
}

func (m *SpeedModifier) Update(b *Base) {
	if m == nil || b == nil || m.done || m.interp == nil {
		return
	}
	m.interp.Step()
	factor := m.interp.Value()
	if m.prevFactor > common.Epsilon {
		b.Vel = b.Vel.Mult(factor / m.prevFactor)
	}
	m.prevFactor = factor
	if m.interp.Done() {
		if !m.Permanent && factor > common.Epsilon {
			b.Vel = b.Vel.Mult(1 / factor)
		}
		m.done = true
	}
}

func (m *SpeedModifier) Active() bool { return m != nil && !m.done }

// AlphaModifier interpolates the object's opacity.
type AlphaModifier struct {
	interp *common.Interpolator
}

func NewAlphaModifier(from, to float64, durationFrames int, easing common.Ease) *AlphaModifier {
	return &AlphaModifier{interp: common.NewInterpolator(from, to, durationFrames, easing)}
}

func (m *AlphaModifier) Update(b *Base) {
	if m == nil || b == nil || m.interp == nil {
		return
	}
	m.interp.Step()
	b.Alpha = m.interp.Value()
}

func (m *AlphaModifier) Active() bool {
	return m != nil && m.interp != nil && !m.interp.Done()
}

// MirrorModifier flips the velocity sign once on the selected axes, then
// deactivates itself.
type MirrorModifier struct {
	FlipX, FlipY bool
	applied      bool
}

func NewMirrorModifier(flipX, flipY bool) *MirrorModifier {
	return &MirrorModifier{FlipX: flipX, FlipY: flipY}
}

func (m *MirrorModifier) Update(b *Base) {
	if m == nil || b == nil || m.applied {
		return
	}
	if m.FlipX {
		b.Vel.X = -b.Vel.X
	}
	if m.FlipY {
		b.Vel.Y = -b.Vel.Y
	}
	m.applied = true
}

func (m *MirrorModifier) Active() bool { return m != nil && !m.applied }

// DamageModifier interpolates the object's damage value. When Restore is
// set the original damage returns after the duration elapses (a
// time-bounded spike); otherwise the final value sticks.
type DamageModifier struct {
	Restore bool

	interp   *common.Interpolator
	original float64
	started  bool
	done     bool
}

func NewDamageModifier(from, to float64, durationFrames int, easing common.Ease, restore bool) *DamageModifier {
	return &DamageModifier{
		Restore: restore,
		interp:  common.NewInterpolator(from, to, durationFrames, easing),
	}
}

func (m *DamageModifier) Update(b *Base) {
	if m == nil || b == nil || m.done || m.interp == nil {
		return
	}
	if !m.started {
		m.original = b.Damage()
		m.started = true
	}
	m.interp.Step()
	b.SetDamage(m.interp.Value())
	if m.interp.Done() {
		if m.Restore {
			b.SetDamage(m.original)
		}
		m.done = true
	}
}

func (m *DamageModifier) Active() bool { return m != nil && !m.done }
