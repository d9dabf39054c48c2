package sway

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single action in a Script.
type ScriptStep struct {
	Action   string        `yaml:"action"`
	Node     string        `yaml:"node,omitempty"`
	Tag      string        `yaml:"tag,omitempty"`
	Value    float64       `yaml:"value,omitempty"`
	Frames   int           `yaml:"frames,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Delay    time.Duration `yaml:"delay,omitempty"`
	Curve    string        `yaml:"curve,omitempty"`

	tag   Tag
	curve Curve
}

// Script is a parsed, validated sequence of steps. Attach it to a Scene with
// SetScript; the same Script can be attached to several scenes.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// Script actions.
const (
	ActionAnimate   = "animate"
	ActionAnimateBy = "animateBy"
	ActionCancel    = "cancel"
	ActionStart     = "start"
	ActionWait      = "wait"
)

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	return &sc, nil
}

// UnmarshalYAML decodes and validates a script, so one can be embedded in a
// larger YAML document.
func (sc *Script) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Steps []ScriptStep `yaml:"steps"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw.Steps) == 0 {
		return errors.New("no steps")
	}
	for i := range raw.Steps {
		if err := raw.Steps[i].compile(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	sc.Steps = raw.Steps
	return nil
}

// Nodes returns the names of the nodes the script refers to, in order of
// first use.
func (sc *Script) Nodes() []string {
	var names []string
	for _, st := range sc.Steps {
		if st.Node != "" && !slices.Contains(names, st.Node) {
			names = append(names, st.Node)
		}
	}
	return names
}

func (st *ScriptStep) compile() error {
	switch st.Action {
	case ActionWait:
		return nil
	case ActionCancel, ActionStart:
	case ActionAnimate, ActionAnimateBy:
		tag, err := ParseTag(st.Tag)
		if err != nil {
			return err
		}
		st.tag = tag
	default:
		return configErrorf("script", nil, "unknown action %q", st.Action)
	}
	if st.Node == "" {
		return configErrorf("script", nil, "%s needs a node", st.Action)
	}
	if st.Duration < 0 || st.Delay < 0 {
		return configErrorf("script", ErrNegativeDuration, "%s on %q", st.Action, st.Node)
	}
	if st.Curve != "" {
		c, err := CurveByName(st.Curve)
		if err != nil {
			return err
		}
		st.curve = c
	}
	return nil
}

// ScriptRun is the playback state of a Script attached to a Scene.
type ScriptRun struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
}

// run compiles a private copy of the steps, so scripts built in code are
// checked the same way as parsed ones.
func (sc *Script) run() (*ScriptRun, error) {
	steps := slices.Clone(sc.Steps)
	for i := range steps {
		if err := steps[i].compile(); err != nil {
			return nil, fmt.Errorf("script: step %d: %w", i, err)
		}
	}
	return &ScriptRun{steps: steps}, nil
}

func (r *ScriptRun) done() bool {
	return r.cursor >= len(r.steps) && r.waitCount == 0
}

// step runs steps until a wait or the end of the script. Called from
// Scene.Update before the Looper turn, so requests made here flush this turn.
func (r *ScriptRun) step(s *Scene) error {
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	for r.cursor < len(r.steps) {
		st := &r.steps[r.cursor]
		r.cursor++

		if st.Action == ActionWait {
			if st.Frames > 1 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
			return nil
		}

		n := s.Find(st.Node)
		if n == nil {
			return fmt.Errorf("script: step %d: node %q not found", r.cursor-1, st.Node)
		}
		anim := s.Animate(n)
		switch st.Action {
		case ActionCancel:
			anim.Cancel()
		case ActionStart:
			anim.Start()
		case ActionAnimate, ActionAnimateBy:
			if err := st.configure(anim); err != nil {
				return err
			}
			if st.Action == ActionAnimate {
				anim.Animate(st.tag, st.Value)
			} else {
				anim.AnimateBy(st.tag, st.Value)
			}
		}
	}
	return nil
}

func (st *ScriptStep) configure(anim *Animator) error {
	if st.Duration > 0 {
		if err := anim.SetDuration(st.Duration); err != nil {
			return err
		}
	}
	if st.Delay > 0 {
		if err := anim.SetStartDelay(st.Delay); err != nil {
			return err
		}
	}
	if st.curve != nil {
		anim.SetCurve(st.curve)
	}
	return nil
}
