package sway

import (
	"fmt"
	"reflect"
)

// Keyframe pins a value to a fraction of an animation's duration. A keyframe
// without a value takes the target's current value when the animation
// starts; only the first and last keyframes of a track may be empty.
type Keyframe[V any] struct {
	Fraction float64
	Value    V
	HasValue bool
}

// KeyAt returns a keyframe holding value at fraction.
func KeyAt[V any](fraction float64, value V) Keyframe[V] {
	return Keyframe[V]{Fraction: fraction, Value: value, HasValue: true}
}

// KeyEmpty returns a keyframe whose value is read from the target at start.
func KeyEmpty[V any](fraction float64) Keyframe[V] {
	return Keyframe[V]{Fraction: fraction}
}

// Track is an ordered keyframe sequence plus the evaluator that blends
// between neighbours. The first keyframe sits at 0 and the last at 1.
type Track[V any] struct {
	frames []Keyframe[V]
	eval   Evaluator[V]
}

// NewTrack validates frames and builds a track using the default evaluator
// for V. Missing 0 and 1 endpoints are synthesised as empty keyframes.
func NewTrack[V any](frames ...Keyframe[V]) (*Track[V], error) {
	if len(frames) == 0 {
		return nil, configErrorf("new track", ErrNoKeyframes, "at least one keyframe is required")
	}
	fs := make([]Keyframe[V], 0, len(frames)+2)
	if frames[0].Fraction > 0 {
		fs = append(fs, KeyEmpty[V](0))
	}
	fs = append(fs, frames...)
	if last := frames[len(frames)-1]; last.Fraction < 1 {
		fs = append(fs, KeyEmpty[V](1))
	}

	prev := 0.0
	for i, kf := range fs {
		if kf.Fraction < 0 || kf.Fraction > 1 {
			return nil, configErrorf("new track", ErrKeyframeOrder, "keyframe %d fraction %v outside [0, 1]", i, kf.Fraction)
		}
		if kf.Fraction < prev {
			return nil, configErrorf("new track", ErrKeyframeOrder, "keyframe %d fraction %v precedes %v", i, kf.Fraction, prev)
		}
		if !kf.HasValue && i != 0 && i != len(fs)-1 {
			return nil, configErrorf("new track", ErrKeyframeOrder, "interior keyframe %d has no value", i)
		}
		prev = kf.Fraction
	}
	return &Track[V]{frames: fs, eval: DefaultEvaluator[V]()}, nil
}

// TrackOf spaces values evenly over [0, 1]. A single value animates from
// the target's current value to it.
func TrackOf[V any](values ...V) (*Track[V], error) {
	switch len(values) {
	case 0:
		return nil, configErrorf("new track", ErrNoKeyframes, "at least one value is required")
	case 1:
		return NewTrack(KeyEmpty[V](0), KeyAt(1, values[0]))
	}
	frames := make([]Keyframe[V], len(values))
	step := 1 / float64(len(values)-1)
	for i, v := range values {
		f := float64(i) * step
		if i == len(values)-1 {
			f = 1
		}
		frames[i] = KeyAt(f, v)
	}
	return NewTrack(frames...)
}

// WithEvaluator sets a custom evaluator and returns the track.
func (t *Track[V]) WithEvaluator(e Evaluator[V]) *Track[V] {
	t.eval = e
	return t
}

// Len returns the number of keyframes, including synthesised endpoints.
func (t *Track[V]) Len() int {
	return len(t.frames)
}

// Keyframe returns the i-th keyframe.
func (t *Track[V]) Keyframe(i int) Keyframe[V] {
	return t.frames[i]
}

// validate reports a missing evaluator as a configuration error.
func (t *Track[V]) validate() error {
	if t.eval == nil {
		var zero V
		return configErrorf("evaluate", ErrNoEvaluator, "%v needs a custom evaluator", reflect.TypeOf(&zero).Elem())
	}
	return nil
}

// missing reports whether any endpoint still lacks a value.
func (t *Track[V]) missing() bool {
	return !t.frames[0].HasValue || !t.frames[len(t.frames)-1].HasValue
}

// fill sets every empty keyframe to v.
func (t *Track[V]) fill(v V) {
	for i := range t.frames {
		if !t.frames[i].HasValue {
			t.frames[i].Value = v
			t.frames[i].HasValue = true
		}
	}
}

// Value returns the track's value at fraction. Fractions 0 and 1 return the
// stored endpoint values exactly; fractions outside [0, 1] extrapolate along
// the first or last interval.
func (t *Track[V]) Value(fraction float64) (V, error) {
	if err := t.validate(); err != nil {
		var zero V
		return zero, err
	}
	n := len(t.frames)
	switch {
	case fraction == 0:
		return t.frames[0].Value, nil
	case fraction == 1:
		return t.frames[n-1].Value, nil
	case fraction < 0:
		return t.blend(0, fraction), nil
	case fraction > 1:
		return t.blend(n-2, fraction), nil
	}
	for i := 0; i < n-1; i++ {
		if fraction <= t.frames[i+1].Fraction {
			return t.blend(i, fraction), nil
		}
	}
	return t.frames[n-1].Value, nil
}

// blend evaluates the interval starting at keyframe i.
func (t *Track[V]) blend(i int, fraction float64) V {
	a, b := t.frames[i], t.frames[i+1]
	local := 0.0
	if span := b.Fraction - a.Fraction; span > 0 {
		local = (fraction - a.Fraction) / span
	}
	return t.eval(local, a.Value, b.Value)
}

func (t *Track[V]) String() string {
	s := ""
	for i, kf := range t.frames {
		if i > 0 {
			s += " "
		}
		if kf.HasValue {
			s += fmt.Sprintf("%g:%v", kf.Fraction, kf.Value)
		} else {
			s += fmt.Sprintf("%g:_", kf.Fraction)
		}
	}
	return s
}
