package sway

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Evaluator interpolates between two values. fraction is the position
// between start (0) and end (1); it may fall outside [0, 1] for overshooting
// curves. Evaluators are stateless and may be shared between tracks.
type Evaluator[V any] func(fraction float64, start, end V) V

// IntEvaluator blends linearly and rounds to the nearest integer.
func IntEvaluator(fraction float64, start, end int) int {
	return int(math.Round(float64(start) + fraction*float64(end-start)))
}

// Int64Evaluator is IntEvaluator for int64 values.
func Int64Evaluator(fraction float64, start, end int64) int64 {
	return int64(math.Round(float64(start) + fraction*float64(end-start)))
}

// FloatEvaluator blends linearly.
func FloatEvaluator(fraction float64, start, end float64) float64 {
	return start + fraction*(end-start)
}

// Float32Evaluator blends linearly in float32.
func Float32Evaluator(fraction float64, start, end float32) float32 {
	return start + float32(fraction)*(end-start)
}

// ColorEvaluator blends in CIE L*a*b* space, which keeps perceived
// brightness even across the transition.
func ColorEvaluator(fraction float64, start, end colorful.Color) colorful.Color {
	return start.BlendLab(end, fraction).Clamped()
}

// HueEvaluator blends in HCL space, travelling around the hue wheel.
func HueEvaluator(fraction float64, start, end colorful.Color) colorful.Color {
	return start.BlendHcl(end, fraction).Clamped()
}

// DefaultEvaluator returns the built-in evaluator for V, or nil when V has
// none and a custom evaluator is required.
func DefaultEvaluator[V any]() Evaluator[V] {
	var zero V
	var e any
	switch any(zero).(type) {
	case int:
		e = Evaluator[int](IntEvaluator)
	case int64:
		e = Evaluator[int64](Int64Evaluator)
	case float64:
		e = Evaluator[float64](FloatEvaluator)
	case float32:
		e = Evaluator[float32](Float32Evaluator)
	case colorful.Color:
		e = Evaluator[colorful.Color](ColorEvaluator)
	default:
		return nil
	}
	return e.(Evaluator[V])
}
