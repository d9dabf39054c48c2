package sway

// Property is a compile-time checked accessor pair for one property of host
// type H. It is the preferred way to bind a Channel: no lookup happens and
// no reflection is involved. Get may be nil when every keyframe has a value.
//
//	var NodeScaleX = sway.Property[*sway.Node, float64]{
//		Name: "scaleX", Get: (*sway.Node).ScaleX, Set: (*sway.Node).SetScaleX,
//	}
type Property[H any, V any] struct {
	Name string
	Get  func(H) V
	Set  func(H, V)
}

// ReadOnly reports whether the property has no setter.
func (p Property[H, V]) ReadOnly() bool {
	return p.Set == nil
}

// TagProperty returns a Property that reads and writes tag through the Host
// interface.
func TagProperty(tag Tag) Property[Host, float64] {
	return Property[Host, float64]{
		Name: tag.String(),
		Get:  func(h Host) float64 { return h.Value(tag) },
		Set:  func(h Host, v float64) { h.SetValue(tag, v) },
	}
}
