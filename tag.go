package sway

import "fmt"

// Tag identifies one built-in animatable property of a Host. Tags are bit
// flags so a batch can record the set of properties it drives in one word.
type Tag uint16

const (
	TagTranslationX Tag = 1 << iota // horizontal offset from the layout position
	TagTranslationY                 // vertical offset from the layout position
	TagScaleX                       // horizontal scale factor
	TagScaleY                       // vertical scale factor
	TagRotation                     // rotation around the pivot, in radians
	TagRotationX                    // tilt around the horizontal axis, in radians
	TagRotationY                    // tilt around the vertical axis, in radians
	TagX                            // absolute x (layout left + translation)
	TagY                            // absolute y (layout top + translation)
	TagAlpha                        // opacity in [0, 1]
)

// TagNone is the empty tag set.
const TagNone Tag = 0

// TransformMask holds the tags that change geometry. A batch touching any of
// them marks its host dirty once per tick.
const TransformMask = TagTranslationX | TagTranslationY | TagScaleX | TagScaleY |
	TagRotation | TagRotationX | TagRotationY | TagX | TagY

// Tags lists every built-in tag in bit order.
var Tags = []Tag{
	TagTranslationX, TagTranslationY,
	TagScaleX, TagScaleY,
	TagRotation, TagRotationX, TagRotationY,
	TagX, TagY,
	TagAlpha,
}

var tagNames = map[Tag]string{
	TagTranslationX: "translationX",
	TagTranslationY: "translationY",
	TagScaleX:       "scaleX",
	TagScaleY:       "scaleY",
	TagRotation:     "rotation",
	TagRotationX:    "rotationX",
	TagRotationY:    "rotationY",
	TagX:            "x",
	TagY:            "y",
	TagAlpha:        "alpha",
}

// String returns the property name of a single tag, or a hex mask for sets.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%#x)", uint16(t))
}

// ParseTag returns the tag for a property name such as "alpha" or "scaleX".
func ParseTag(name string) (Tag, error) {
	for tag, n := range tagNames {
		if n == name {
			return tag, nil
		}
	}
	return TagNone, fmt.Errorf("sway: unknown property %q", name)
}

// Host is an object whose built-in properties can be animated by an
// Animator. All methods are called from the Looper goroutine.
type Host interface {
	// Value returns the current value of the property named by tag.
	Value(tag Tag) float64
	// SetValue writes a property. Only single tags are passed.
	SetValue(tag Tag, v float64)
	// MarkDirty requests a redraw after geometric changes.
	MarkDirty()
	// IsDisposed reports whether the host is gone. Values are never written
	// to a disposed host.
	IsDisposed() bool
}
