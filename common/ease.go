package common

import "math"

// Ease maps progress in [0,1] to eased progress in [0,1]. Inputs outside
// the range are clamped before easing.
type Ease func(t float64) float64

func Linear(t float64) float64 {
	return clamp01(t)
}

func EaseInQuad(t float64) float64 {
	t = clamp01(t)
	return t * t
}

func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

func EaseInOutQuad(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func EaseInCubic(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

func EaseOutCubic(t float64) float64 {
	t = clamp01(t) - 1
	return t*t*t + 1
}

func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

func EaseInSine(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Cos(t*math.Pi/2)
}

func EaseOutSine(t float64) float64 {
	t = clamp01(t)
	return math.Sin(t * math.Pi / 2)
}

func EaseOutElastic(t float64) float64 {
	t = clamp01(t)
	if t == 0 || t == 1 {
		return t
	}
	const c4 = 2 * math.Pi / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

func EaseOutBounce(t float64) float64 {
	t = clamp01(t)
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// EaseByName resolves easings referenced from pattern specs. Unknown names
// fall back to Linear.
func EaseByName(name string) Ease {
	switch name {
	case "", "linear":
		return Linear
	case "in_quad":
		return EaseInQuad
	case "out_quad":
		return EaseOutQuad
	case "in_out_quad":
		return EaseInOutQuad
	case "in_cubic":
		return EaseInCubic
	case "out_cubic":
		return EaseOutCubic
	case "in_out_cubic":
		return EaseInOutCubic
	case "in_sine":
		return EaseInSine
	case "out_sine":
		return EaseOutSine
	case "out_elastic":
		return EaseOutElastic
	case "out_bounce":
		return EaseOutBounce
	default:
		return Linear
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
