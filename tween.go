package sway

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// The Tween helpers build and start an Animation over direct node
// properties. Each animates from the node's current values, read when the
// animation starts, to the given targets. The returned Animation is running;
// cancel or end it like any other. If the node is disposed while the tween
// runs, the timeline continues but nothing is written.

// TweenPosition animates X and Y.
func TweenPosition(loop *Looper, node *Node, toX, toY float64, duration time.Duration, curve Curve) (*Animation, error) {
	return tween(loop, node, duration, curve,
		Bind(NodeProperty(TagX), toward(toX)),
		Bind(NodeProperty(TagY), toward(toY)))
}

// TweenScale animates ScaleX and ScaleY.
func TweenScale(loop *Looper, node *Node, toSX, toSY float64, duration time.Duration, curve Curve) (*Animation, error) {
	return tween(loop, node, duration, curve,
		Bind(NodeProperty(TagScaleX), toward(toSX)),
		Bind(NodeProperty(TagScaleY), toward(toSY)))
}

// TweenRotation animates Rotation, in radians.
func TweenRotation(loop *Looper, node *Node, to float64, duration time.Duration, curve Curve) (*Animation, error) {
	return tween(loop, node, duration, curve, Bind(NodeProperty(TagRotation), toward(to)))
}

// TweenAlpha animates Alpha.
func TweenAlpha(loop *Looper, node *Node, to float64, duration time.Duration, curve Curve) (*Animation, error) {
	return tween(loop, node, duration, curve, Bind(NodeProperty(TagAlpha), toward(to)))
}

// TweenColor animates the tint through CIE L*a*b* space.
func TweenColor(loop *Looper, node *Node, to colorful.Color, duration time.Duration, curve Curve) (*Animation, error) {
	return tween(loop, node, duration, curve, Bind(NodeColor, toward(to)))
}

func tween(loop *Looper, node *Node, duration time.Duration, curve Curve, channels ...Channel) (*Animation, error) {
	a := NewAnimation(loop)
	if err := a.SetDuration(duration); err != nil {
		return nil, err
	}
	if curve != nil {
		a.SetCurve(curve)
	}
	a.SetTarget(node, channels...)
	if err := a.Start(); err != nil {
		return nil, err
	}
	return a, nil
}

// toward is a two-keyframe track from the current value to v.
func toward[V any](v V) *Track[V] {
	return &Track[V]{
		frames: []Keyframe[V]{KeyEmpty[V](0), KeyAt(1, v)},
		eval:   DefaultEvaluator[V](),
	}
}
