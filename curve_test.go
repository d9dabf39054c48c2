package sway

import (
	"testing"

	gease "github.com/tanema/gween/ease"
)

func TestCurvesMapEndpoints(t *testing.T) {
	for _, name := range CurveNames() {
		c, err := CurveByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := c(0); !approxEqual(got, 0, 1e-6) {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := c(1); !approxEqual(got, 1, 1e-6) {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCurveByNameUnknown(t *testing.T) {
	if _, err := CurveByName("wobble"); err == nil {
		t.Error("expected error for unknown curve")
	}
}

func TestFromTween(t *testing.T) {
	c := FromTween(gease.Linear)
	assertNear(t, "linear(0.25)", c(0.25), 0.25)

	q := FromTween(gease.InQuad)
	if !approxEqual(q(0.5), 0.25, 1e-6) {
		t.Errorf("InQuad(0.5) = %v, want 0.25", q(0.5))
	}
}

func TestOvershootCurveLeavesRange(t *testing.T) {
	c, _ := CurveByName("overshoot")
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = max(peak, c(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("overshoot peak = %v, want > 1", peak)
	}
}

func TestRegisterCurve(t *testing.T) {
	RegisterCurve("testStep", func(t float64) float64 {
		if t < 1 {
			return 0
		}
		return 1
	})
	defer delete(curves, "testStep")

	c, err := CurveByName("testStep")
	if err != nil {
		t.Fatal(err)
	}
	if c(0.9) != 0 {
		t.Errorf("testStep(0.9) = %v, want 0", c(0.9))
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil curve")
		}
	}()
	RegisterCurve("nil", nil)
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}
