package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":       Linear,
		"in_quad":      EaseInQuad,
		"out_quad":     EaseOutQuad,
		"in_out_quad":  EaseInOutQuad,
		"in_cubic":     EaseInCubic,
		"out_cubic":    EaseOutCubic,
		"in_out_cubic": EaseInOutCubic,
		"in_sine":      EaseInSine,
		"out_sine":     EaseOutSine,
		"out_elastic":  EaseOutElastic,
		"out_bounce":   EaseOutBounce,
	}
	for name, fn := range eases {
		t.Run(name, func(t *testing.T) {
			if v := fn(0); math.Abs(v) > 1e-9 {
				t.Fatalf("%s(0) = %v, want 0", name, v)
			}
			if v := fn(1); math.Abs(v-1) > 1e-9 {
				t.Fatalf("%s(1) = %v, want 1", name, v)
			}
			// clamped outside [0,1]
			if v := fn(-2); math.Abs(v) > 1e-9 {
				t.Fatalf("%s(-2) = %v, want 0", name, v)
			}
			if v := fn(3); math.Abs(v-1) > 1e-9 {
				t.Fatalf("%s(3) = %v, want 1", name, v)
			}
		})
	}
}

func TestEaseByNameUnknownFallsBack(t *testing.T) {
	fn := EaseByName("definitely_not_an_easing")
	if v := fn(0.25); v != 0.25 {
		t.Fatalf("unknown easing should be linear, got %v", v)
	}
}

func TestInterpolator(t *testing.T) {
	cases := []struct {
		name     string
		start    float64
		end      float64
		duration int
	}{
		{"ten_frames", 0, 10, 10},
		{"reverse", 5, 1, 4},
		{"zero_duration", 2, 8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := NewInterpolator(c.start, c.end, c.duration, Linear)
			for i := 0; i < c.duration; i++ {
				if in.Done() {
					t.Fatalf("done after %d of %d frames", i, c.duration)
				}
				in.Step()
			}
			if !in.Done() {
				t.Fatalf("not done after %d frames", c.duration)
			}
			if v := in.Value(); v != c.end {
				t.Fatalf("final value = %v, want %v", v, c.end)
			}
			// stepping a finished interpolator is a no-op
			in.Step()
			if v := in.Value(); v != c.end {
				t.Fatalf("value changed after extra step: %v", v)
			}
		})
	}
}

func TestInterpolatorMidpoint(t *testing.T) {
	in := NewInterpolator(0, 100, 10, Linear)
	for i := 0; i < 5; i++ {
		in.Step()
	}
	if v := in.Value(); math.Abs(v-50) > 1e-9 {
		t.Fatalf("midpoint value = %v, want 50", v)
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("WrapAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPointSegmentDistance(t *testing.T) {
	a := cp.Vector{X: 0, Y: 0}
	b := cp.Vector{X: 10, Y: 0}
	cases := []struct {
		name string
		p    cp.Vector
		want float64
	}{
		{"above_middle", cp.Vector{X: 5, Y: 3}, 3},
		{"past_end", cp.Vector{X: 14, Y: 3}, 5},
		{"on_segment", cp.Vector{X: 2, Y: 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PointSegmentDistance(c.p, a, b); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
	// degenerate segment
	if got := PointSegmentDistance(cp.Vector{X: 3, Y: 4}, a, a); math.Abs(got-5) > 1e-9 {
		t.Fatalf("degenerate segment distance = %v, want 5", got)
	}
}
