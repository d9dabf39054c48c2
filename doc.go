// Package sway is a property animation engine for retained-mode 2D scenes
// on [Ebitengine].
//
// Sway drives values over time: an [Animation] runs a timeline from 0 to 1,
// remaps it through a [Curve] and writes the result through one or more
// channels, each pairing a property with a [Track] of keyframes. Animations
// are ticked by a single-threaded [Looper] that also runs posted tasks.
//
// # Quick start
//
// The usual entry point is a [Scene], which owns a node tree and a Looper.
// Requests made through [Scene.Animate] in the same frame are batched into a
// single animation:
//
//	scene := sway.NewScene()
//	box := sway.NewRect("box", 10, 10, 80, 40)
//	scene.Root().AddChild(box)
//
//	scene.Animate(box).X(200).Alpha(0.5)
//
//	for {
//		scene.Update(16 * time.Millisecond)
//	}
//
// To open a window, hand the scene to the game package:
//
//	game.Run(scene, game.DefaultConfig(), nil)
//
// # Keyframes and channels
//
// A [Track] holds keyframes at fractions in [0, 1]. Endpoints left empty
// with [KeyEmpty] are filled from the target's current value when the
// animation starts. Values are blended by an [Evaluator]; numbers, points
// and colors (via [go-colorful], in L*a*b* space) have built-in ones.
//
//	tr, _ := sway.NewTrack(sway.KeyEmpty[float64](0), sway.KeyAt(0.5, 2.0), sway.KeyAt(1, 1.0))
//	anim := sway.NewAnimation(scene.Looper())
//	anim.SetTarget(box, sway.Bind(sway.NodeProperty(sway.TagScaleX), tr))
//	anim.Start()
//
// Properties can be bound directly with a [Property] or looked up by name on
// any type with [BindName]. Lookups go through a [Resolver] that finds Name
// or GetName getters and SetName setters once per type and caches them.
//
// # Curves
//
// Curves map linear progress to eased progress. The built-in set comes from
// [ease] and can be extended with [RegisterCurve]; [FromTween] adapts a
// [gween] easing function.
//
// # Scripts
//
// A [Script] is a YAML list of animate, animateBy, cancel, start and wait
// steps. Attach one to a scene with [Scene.SetScript] to play it back one
// frame at a time.
//
// # Debug mode
//
// [Scene.SetDebugMode] makes off-loop access panic, flags tree operations
// on disposed nodes and logs per-frame stats through the package logger
// (see [SetLogger]).
//
// [Ebitengine]: https://ebitengine.org
// [ease]: https://github.com/fogleman/ease
// [gween]: https://github.com/tanema/gween
// [go-colorful]: https://github.com/lucasb-eyer/go-colorful
package sway
