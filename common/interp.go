package common

// Interpolator advances a value from Start to End over a fixed number of
// frames, applying an easing curve to the progress. Timers in this package
// are frame-counted, never wall-clock, so simulation stays deterministic
// under render cadence jitter.
type Interpolator struct {
	Start, End float64
	Duration   int // frames; <= 0 completes immediately at End
	Easing     Ease

	elapsed int
}

func NewInterpolator(start, end float64, durationFrames int, easing Ease) *Interpolator {
	if easing == nil {
		easing = Linear
	}
	return &Interpolator{Start: start, End: end, Duration: durationFrames, Easing: easing}
}

// Step advances one frame. Stepping a finished interpolator is a no-op.
func (i *Interpolator) Step() {
	if i == nil || i.Done() {
		return
	}
	i.elapsed++
}

// Value returns the current eased value.
func (i *Interpolator) Value() float64 {
	if i == nil {
		return 0
	}
	if i.Duration <= 0 || i.elapsed >= i.Duration {
		return i.End
	}
	t := float64(i.elapsed) / float64(i.Duration)
	return Lerp(i.Start, i.End, i.Easing(t))
}

// Done reports whether the interpolator has reached its end value.
func (i *Interpolator) Done() bool {
	if i == nil {
		return true
	}
	return i.Duration <= 0 || i.elapsed >= i.Duration
}

// Reset rewinds the interpolator to its start.
func (i *Interpolator) Reset() {
	if i == nil {
		return
	}
	i.elapsed = 0
}

// Progress returns raw (un-eased) progress in [0,1].
func (i *Interpolator) Progress() float64 {
	if i == nil || i.Duration <= 0 {
		return 1
	}
	return Clamp(float64(i.elapsed)/float64(i.Duration), 0, 1)
}
