package sway

import (
	"github.com/lucasb-eyer/go-colorful"
)

// nodeIDCounter is a plain counter (no atomic, nodes live on one Looper).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of a Scene's tree and the standard animation Host. Its
// position is the layout position (Left, Top) plus a translation, so X and Y
// can be animated without disturbing layout.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout
	left, top     float64
	Width, Height float64

	// Transform (local)
	translationX, translationY float64
	scaleX, scaleY             float64
	rotation                   float64
	rotationX, rotationY       float64
	pivotX, pivotY             float64

	// Appearance
	alpha   float64
	color   colorful.Color
	Visible bool

	// Computed during Scene.Update
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Metadata
	UserData any

	animator *Animator
	disposed bool
}

// NewNode creates a node with unit scale, full opacity and a white color.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		scaleX:         1,
		scaleY:         1,
		alpha:          1,
		color:          colorful.Color{R: 1, G: 1, B: 1},
		Visible:        true,
		worldAlpha:     1,
		transformDirty: true,
	}
}

// NewRect creates a node laid out at (left, top) with the given size.
func NewRect(name string, left, top, width, height float64) *Node {
	n := NewNode(name)
	n.SetLayout(left, top, width, height)
	return n
}

// SetLayout sets the layout rectangle and marks the node dirty.
func (n *Node) SetLayout(left, top, width, height float64) {
	n.left, n.top = left, top
	n.Width, n.Height = width, height
	n.transformDirty = true
}

// Left returns the layout x position.
func (n *Node) Left() float64 { return n.left }

// Top returns the layout y position.
func (n *Node) Top() float64 { return n.top }

// --- Animatable properties ---

func (n *Node) X() float64            { return n.left + n.translationX }
func (n *Node) Y() float64            { return n.top + n.translationY }
func (n *Node) TranslationX() float64 { return n.translationX }
func (n *Node) TranslationY() float64 { return n.translationY }
func (n *Node) ScaleX() float64       { return n.scaleX }
func (n *Node) ScaleY() float64       { return n.scaleY }
func (n *Node) Rotation() float64     { return n.rotation }
func (n *Node) RotationX() float64    { return n.rotationX }
func (n *Node) RotationY() float64    { return n.rotationY }
func (n *Node) Alpha() float64        { return n.alpha }
func (n *Node) PivotX() float64       { return n.pivotX }
func (n *Node) PivotY() float64       { return n.pivotY }

// SetX moves the node so its x position is v, by adjusting TranslationX.
func (n *Node) SetX(v float64) {
	n.translationX = v - n.left
	n.transformDirty = true
}

// SetY moves the node so its y position is v, by adjusting TranslationY.
func (n *Node) SetY(v float64) {
	n.translationY = v - n.top
	n.transformDirty = true
}

func (n *Node) SetTranslationX(v float64) {
	n.translationX = v
	n.transformDirty = true
}

func (n *Node) SetTranslationY(v float64) {
	n.translationY = v
	n.transformDirty = true
}

func (n *Node) SetScaleX(v float64) {
	n.scaleX = v
	n.transformDirty = true
}

func (n *Node) SetScaleY(v float64) {
	n.scaleY = v
	n.transformDirty = true
}

// SetRotation sets the rotation in radians.
func (n *Node) SetRotation(v float64) {
	n.rotation = v
	n.transformDirty = true
}

func (n *Node) SetRotationX(v float64) {
	n.rotationX = v
	n.transformDirty = true
}

func (n *Node) SetRotationY(v float64) {
	n.rotationY = v
	n.transformDirty = true
}

// SetAlpha sets the opacity. World alpha is recomputed on the next update.
func (n *Node) SetAlpha(v float64) {
	n.alpha = v
	n.transformDirty = true
}

// Color returns the tint color.
func (n *Node) Color() colorful.Color { return n.color }

// SetColor sets the tint color.
func (n *Node) SetColor(c colorful.Color) { n.color = c }

// Value implements Host.
func (n *Node) Value(tag Tag) float64 {
	switch tag {
	case TagTranslationX:
		return n.translationX
	case TagTranslationY:
		return n.translationY
	case TagScaleX:
		return n.scaleX
	case TagScaleY:
		return n.scaleY
	case TagRotation:
		return n.rotation
	case TagRotationX:
		return n.rotationX
	case TagRotationY:
		return n.rotationY
	case TagX:
		return n.X()
	case TagY:
		return n.Y()
	case TagAlpha:
		return n.alpha
	}
	return 0
}

// SetValue implements Host.
func (n *Node) SetValue(tag Tag, v float64) {
	switch tag {
	case TagTranslationX:
		n.translationX = v
	case TagTranslationY:
		n.translationY = v
	case TagScaleX:
		n.scaleX = v
	case TagScaleY:
		n.scaleY = v
	case TagRotation:
		n.rotation = v
	case TagRotationX:
		n.rotationX = v
	case TagRotationY:
		n.rotationY = v
	case TagX:
		n.translationX = v - n.left
	case TagY:
		n.translationY = v - n.top
	case TagAlpha:
		// alpha feeds world alpha, which is recomputed with the transform
		n.alpha = v
		n.transformDirty = true
	}
}

// NodeProperty returns a direct Property for tag on *Node.
func NodeProperty(tag Tag) Property[*Node, float64] {
	return Property[*Node, float64]{
		Name: tag.String(),
		Get:  func(n *Node) float64 { return n.Value(tag) },
		Set: func(n *Node, v float64) {
			n.SetValue(tag, v)
			n.transformDirty = true
		},
	}
}

// NodeColor is the direct Property for a node's tint.
var NodeColor = Property[*Node, colorful.Color]{
	Name: "color",
	Get:  (*Node).Color,
	Set:  (*Node).SetColor,
}

// Animator returns the node's Animator, or nil if the node has never been
// animated through a Scene.
func (n *Node) Animator() *Animator {
	return n.animator
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sway: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("sway: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("sway: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Find returns the first node named name in this subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Running animations keep their
// timelines but stop writing to the node.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
