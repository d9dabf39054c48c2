package sway

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// Curve remaps linear progress in [0, 1] to eased progress. Curves must map
// 0 to 0 and 1 to 1; values in between may overshoot.
type Curve func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// FromTween adapts a gween easing function to a Curve.
func FromTween(fn gease.TweenFunc) Curve {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var curves = map[string]Curve{
	"linear": Linear,

	// Android-style aliases.
	"accelerate":           ease.InQuad,
	"decelerate":           ease.OutQuad,
	"accelerateDecelerate": ease.InOutSine,
	"anticipate":           ease.InBack,
	"overshoot":            ease.OutBack,
	"bounce":               ease.OutBounce,

	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    FromTween(gease.InElastic),
	"outElastic":   FromTween(gease.OutElastic),
	"inOutElastic": FromTween(gease.InOutElastic),
	"outInQuad":    FromTween(gease.OutInQuad),
	"outInCubic":   FromTween(gease.OutInCubic),
	"outInSine":    FromTween(gease.OutInSine),
	"outInBack":    FromTween(gease.OutInBack),
	"outInBounce":  FromTween(gease.OutInBounce),
}

// CurveByName returns a registered curve.
func CurveByName(name string) (Curve, error) {
	c, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("sway: unknown curve %q", name)
	}
	return c, nil
}

// RegisterCurve adds or replaces a named curve. It is not safe to call
// concurrently with CurveByName.
func RegisterCurve(name string, c Curve) {
	if c == nil {
		panic("sway: cannot register nil curve")
	}
	curves[name] = c
}

// CurveNames returns the registered curve names in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
