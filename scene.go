package sway

import "time"

// Scene is the top-level object that owns the node tree and the Looper that
// drives its animations.
type Scene struct {
	root   *Node
	loop   *Looper
	debug  bool
	script *ScriptRun
}

// NewScene creates a new scene with a pre-created root node and its own
// Looper.
func NewScene() *Scene {
	return &Scene{
		root: NewNode("root"),
		loop: NewLooper(),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Looper returns the loop that drives this scene's animations.
func (s *Scene) Looper() *Looper {
	return s.loop
}

// Update advances the scene by dt: the attached script runs its next steps,
// the Looper runs one turn, and world transforms are refreshed for dirty
// subtrees.
func (s *Scene) Update(dt time.Duration) error {
	if s.script != nil {
		if err := s.script.step(s); err != nil {
			return err
		}
	}
	s.loop.Frame(dt)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return nil
}

// Animate returns the Animator for n, creating it on first use. Every call
// for the same node returns the same Animator, so requests made during one
// turn coalesce into a single Animation.
func (s *Scene) Animate(n *Node) *Animator {
	if n.animator == nil {
		n.animator = NewAnimator(n, s.loop)
	}
	return n.animator
}

// Find returns the first node named name, searching from the root.
func (s *Scene) Find(name string) *Node {
	return s.root.Find(name)
}

// SetScript attaches a script to run from the next Update, replacing any
// current one. A nil script detaches the current one.
func (s *Scene) SetScript(sc *Script) error {
	if sc == nil {
		s.script = nil
		return nil
	}
	r, err := sc.run()
	if err != nil {
		return err
	}
	s.script = r
	return nil
}

// ScriptDone reports whether the attached script, if any, has run all its
// steps.
func (s *Scene) ScriptDone() bool {
	return s.script == nil || s.script.done()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, deep trees are warned about, off-loop access to the
// Looper panics and per-frame stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	s.loop.SetDebug(enabled)
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
