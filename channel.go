package sway

import (
	"fmt"
	"reflect"
)

// Channel drives one property of an Animation's target from a keyframe
// track. Channels are created with Bind or BindName and belong to a single
// Animation.
type Channel interface {
	// Name returns the property name the channel animates.
	Name() string
	setup(target any) error
	apply(target any, fraction float64)
}

// valueChannel is the Channel implementation for values of type V. It
// either holds a direct get/set pair or falls back to resolver lookup.
type valueChannel[V any] struct {
	name  string
	track *Track[V]

	// direct binding; nil for name-bound channels
	get     func(target any) (V, bool)
	set     func(target any, v V) bool
	matches func(target any) bool

	resolver *Resolver
	entry    AccessorEntry
	sink     bool // unresolvable; apply does nothing
	last     V
}

// Bind couples a track to a direct property binding. A property without a
// setter is looked up by name instead.
func Bind[H any, V any](p Property[H, V], track *Track[V]) Channel {
	c := &valueChannel[V]{name: p.Name, track: track, resolver: DefaultResolver}
	if p.Set == nil {
		return c
	}
	c.matches = func(target any) bool {
		_, ok := target.(H)
		return ok
	}
	c.set = func(target any, v V) bool {
		h, ok := target.(H)
		if !ok {
			return false
		}
		p.Set(h, v)
		return true
	}
	c.get = func(target any) (V, bool) {
		h, ok := target.(H)
		if !ok || p.Get == nil {
			var zero V
			return zero, false
		}
		return p.Get(h), true
	}
	return c
}

// BindName couples a track to the property called name, discovered on the
// target's type through DefaultResolver when the animation starts.
func BindName[V any](name string, track *Track[V]) Channel {
	return &valueChannel[V]{name: name, track: track, resolver: DefaultResolver}
}

// BindNameWith is BindName with an explicit resolver.
func BindNameWith[V any](r *Resolver, name string, track *Track[V]) Channel {
	return &valueChannel[V]{name: name, track: track, resolver: r}
}

func (c *valueChannel[V]) Name() string {
	return c.name
}

// Last returns the value most recently applied.
func (c *valueChannel[V]) Last() V {
	return c.last
}

func (c *valueChannel[V]) String() string {
	return fmt.Sprintf("%s: %v", c.name, c.track)
}

// setup checks the evaluator, resolves accessors and fills empty keyframes
// from the target's current value.
func (c *valueChannel[V]) setup(target any) error {
	if err := c.track.validate(); err != nil {
		return err
	}

	if c.matches != nil && !c.matches(target) {
		logger.Warn("sway: property does not match target, trying lookup by name",
			"property", c.name, "host", fmt.Sprintf("%T", target))
		c.get, c.set, c.matches = nil, nil, nil
	}
	if c.set == nil {
		var zero V
		c.entry = c.resolver.Resolve(reflect.TypeOf(target), c.name, reflect.TypeOf(&zero).Elem())
		if !c.entry.Resolved() {
			logger.Warn("sway: no setter for property, channel disabled",
				"property", c.name, "host", fmt.Sprintf("%T", target))
			c.sink = true
			return nil
		}
	}

	if c.track.missing() {
		v, ok := c.current(target)
		if !ok {
			logger.Warn("sway: no getter for property with empty keyframes, channel disabled",
				"property", c.name, "host", fmt.Sprintf("%T", target))
			c.sink = true
			return nil
		}
		c.track.fill(v)
	}
	return nil
}

// current reads the target's value through whichever binding is active.
func (c *valueChannel[V]) current(target any) (V, bool) {
	var zero V
	if c.get != nil {
		return c.get(target)
	}
	if c.entry.Getter == nil {
		return zero, false
	}
	rv, ok := c.entry.Getter.Get(target)
	if !ok {
		return zero, false
	}
	cv, ok := convertValue(rv, reflect.TypeOf(&zero).Elem())
	if !ok {
		return zero, false
	}
	return cv.Interface().(V), true
}

func (c *valueChannel[V]) apply(target any, fraction float64) {
	if c.sink {
		return
	}
	v, err := c.track.Value(fraction)
	if err != nil {
		return
	}
	c.last = v
	if c.set != nil {
		c.set(target, v)
		return
	}
	c.entry.Setter.Set(target, reflect.ValueOf(v))
}
