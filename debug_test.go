package sway

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func withDebug(t *testing.T, s *Scene) {
	t.Helper()
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
}

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", contains)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, contains) {
			t.Errorf("panic = %q, want containing %q", msg, contains)
		}
	}()
	fn()
}

func TestDebugDisposedAddChildPanics(t *testing.T) {
	s := NewScene()
	withDebug(t, s)
	gone := NewNode("gone")
	gone.Dispose()
	expectPanic(t, `AddChild (child) on disposed node "gone"`, func() {
		s.Root().AddChild(gone)
	})
}

func TestDebugDisposedRemoveChildPanics(t *testing.T) {
	s := NewScene()
	withDebug(t, s)
	parent := NewNode("parent")
	parent.Dispose()
	expectPanic(t, "RemoveChild (parent)", func() {
		parent.RemoveChild(NewNode("child"))
	})
}

func TestDisposedAddChildWithoutDebug(t *testing.T) {
	s := NewScene()
	gone := NewNode("gone")
	gone.Dispose()
	s.Root().AddChild(gone)
	if gone.Parent != s.Root() {
		t.Error("without debug mode the add goes through")
	}
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureLog(t, slog.LevelWarn)
	s := NewScene()
	withDebug(t, s)
	n := s.Root()
	for i := 0; i < debugMaxTreeDepth; i++ {
		child := NewNode(fmt.Sprintf("n%d", i))
		n.AddChild(child)
		n = child
	}
	if !strings.Contains(buf.String(), "tree too deep") {
		t.Errorf("expected depth warning, got %q", buf.String())
	}
}

func TestDebugLooperOwner(t *testing.T) {
	s := NewScene()
	withDebug(t, s)
	done := make(chan any)
	go func() {
		defer func() { done <- recover() }()
		s.Looper().Frame(0)
	}()
	if r := <-done; r == nil || !strings.Contains(fmt.Sprint(r), "Frame from goroutine") {
		t.Errorf("recovered %v, want owner panic", r)
	}
}
