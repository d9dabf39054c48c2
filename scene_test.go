package sway

import (
	"testing"
	"time"
)

func newBoxScene(t *testing.T) (*Scene, *Node) {
	t.Helper()
	s := NewScene()
	box := NewRect("box", 10, 20, 4, 4)
	s.Root().AddChild(box)
	a := s.Animate(box)
	a.SetCurve(Linear)
	if err := a.SetDuration(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	return s, box
}

func TestSceneAnimateReturnsSameAnimator(t *testing.T) {
	s, box := newBoxScene(t)
	if s.Animate(box) != s.Animate(box) {
		t.Error("Animate should cache the node's Animator")
	}
	if box.Animator() != s.Animate(box) {
		t.Error("Node.Animator should return the cached Animator")
	}
	if NewNode("fresh").Animator() != nil {
		t.Error("unanimated node should have no Animator")
	}
}

func TestSceneUpdateDrivesAnimator(t *testing.T) {
	s, box := newBoxScene(t)
	s.Animate(box).X(30).Alpha(0)

	for i := 0; i < 2; i++ {
		if err := s.Update(frame); err != nil {
			t.Fatal(err)
		}
	}
	assertNear(t, "x", box.X(), 20)
	assertNear(t, "translationX", box.TranslationX(), 10)
	assertNear(t, "world tx", box.WorldTransform()[4], 20)
	assertNear(t, "world alpha", box.WorldAlpha(), 0.5)

	if err := s.Update(frame); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "x", box.X(), 30)
	assertNear(t, "world alpha", box.WorldAlpha(), 0)
	if s.Looper().Active() != 0 {
		t.Errorf("Active = %d, want 0", s.Looper().Active())
	}
}

func TestSceneWorldAlphaInherits(t *testing.T) {
	s, box := newBoxScene(t)
	child := NewRect("child", 1, 1, 1, 1)
	child.SetAlpha(0.5)
	box.AddChild(child)
	box.SetAlpha(0.5)
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "child world alpha", child.WorldAlpha(), 0.25)
	assertNear(t, "child world tx", child.WorldTransform()[4], 11)
}

func TestSceneFind(t *testing.T) {
	s, box := newBoxScene(t)
	if s.Find("box") != box {
		t.Error("Find(box) failed")
	}
	if s.Find("root") != s.Root() {
		t.Error("Find(root) should return the root")
	}
	if s.Find("missing") != nil {
		t.Error("Find(missing) should be nil")
	}
}

func TestSceneScriptDoneWithoutScript(t *testing.T) {
	s := NewScene()
	if !s.ScriptDone() {
		t.Error("a scene with no script is done")
	}
}
