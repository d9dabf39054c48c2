package sway

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const fadeScript = `
steps:
  - {action: animate, node: box, tag: alpha, value: 0, duration: 100ms, curve: linear}
  - {action: wait, frames: 3}
  - {action: animateBy, node: box, tag: translationX, value: 10}
`

func mustScript(t *testing.T, doc string) *Script {
	t.Helper()
	sc, err := LoadScript([]byte(doc))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	return sc
}

func runUpdates(t *testing.T, s *Scene, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.Update(frame); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func TestScriptPlayback(t *testing.T) {
	s := NewScene()
	box := NewNode("box")
	s.Root().AddChild(box)
	if err := s.SetScript(mustScript(t, fadeScript)); err != nil {
		t.Fatal(err)
	}

	runUpdates(t, s, 2)
	assertNear(t, "alpha", box.Alpha(), 0.5)
	runUpdates(t, s, 1)
	assertNear(t, "alpha", box.Alpha(), 0)
	if s.ScriptDone() {
		t.Fatal("script should still be waiting")
	}

	runUpdates(t, s, 1)
	if !s.ScriptDone() {
		t.Fatal("script should be done after the last step")
	}
	runUpdates(t, s, 1)
	assertNear(t, "translationX", box.TranslationX(), 5)
	runUpdates(t, s, 1)
	assertNear(t, "translationX", box.TranslationX(), 10)
}

func TestScriptCancelAndStart(t *testing.T) {
	s := NewScene()
	box := NewNode("box")
	s.Root().AddChild(box)
	sc := &Script{Steps: []ScriptStep{
		{Action: ActionAnimate, Node: "box", Tag: "alpha", Value: 0, Duration: 100 * time.Millisecond, Curve: "linear"},
		{Action: ActionStart, Node: "box"},
		{Action: ActionWait, Frames: 1},
		{Action: ActionCancel, Node: "box"},
	}}
	if err := s.SetScript(sc); err != nil {
		t.Fatal(err)
	}
	// start flushes before the turn advances the clock
	runUpdates(t, s, 1)
	assertNear(t, "alpha", box.Alpha(), 0.5)
	runUpdates(t, s, 1)
	assertNear(t, "alpha", box.Alpha(), 0.5)
	if s.Animate(box).Running() != 0 {
		t.Error("cancel step should stop the batch")
	}
}

func TestScriptNodeNotFound(t *testing.T) {
	s := NewScene()
	if err := s.SetScript(mustScript(t, "steps: [{action: cancel, node: ghost}]")); err != nil {
		t.Fatal(err)
	}
	err := s.Update(frame)
	if err == nil || !strings.Contains(err.Error(), `node "ghost" not found`) {
		t.Errorf("err = %v", err)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "no steps"},
		{"no steps", "steps: []", "no steps"},
		{"unknown action", "steps: [{action: jump, node: a}]", `unknown action "jump"`},
		{"unknown tag", "steps: [{action: animate, node: a, tag: depth}]", `unknown property "depth"`},
		{"missing node", "steps: [{action: animate, tag: alpha}]", "animate needs a node"},
		{"bad curve", "steps: [{action: animate, node: a, tag: alpha, curve: wobble}]", "wobble"},
		{"negative", "steps: [{action: animate, node: a, tag: alpha, duration: -1s}]", "negative duration"},
		{"not yaml", "steps: [", "parse script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScriptNegativeDurationWrapped(t *testing.T) {
	_, err := LoadScript([]byte("steps: [{action: animate, node: a, tag: alpha, delay: -5ms}]"))
	if !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("err = %v, want ErrNegativeDuration", err)
	}
}

func TestScriptBuiltInCodeIsChecked(t *testing.T) {
	s := NewScene()
	err := s.SetScript(&Script{Steps: []ScriptStep{{Action: "fly", Node: "box"}}})
	if err == nil || !strings.Contains(err.Error(), "step 0") {
		t.Errorf("err = %v", err)
	}
	if !s.ScriptDone() {
		t.Error("failed SetScript should leave no script attached")
	}
}

func TestScriptEmbedded(t *testing.T) {
	var doc struct {
		Name   string  `yaml:"name"`
		Script *Script `yaml:"script"`
	}
	err := yaml.Unmarshal([]byte("name: demo\nscript:\n  steps:\n    - {action: start, node: a}\n    - {action: cancel, node: b}\n    - {action: start, node: a}\n"), &doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(doc.Script.Nodes(), ","); got != "a,b" {
		t.Errorf("Nodes = %q, want a,b", got)
	}
}

func TestScriptDetach(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewNode("box"))
	if err := s.SetScript(mustScript(t, "steps: [{action: wait, frames: 10}]")); err != nil {
		t.Fatal(err)
	}
	runUpdates(t, s, 1)
	if s.ScriptDone() {
		t.Fatal("script should be waiting")
	}
	if err := s.SetScript(nil); err != nil {
		t.Fatal(err)
	}
	if !s.ScriptDone() {
		t.Error("detached script should report done")
	}
}
