package sway

import (
	"slices"
	"time"
)

// State is the lifecycle position of an Animation. Transitions only move
// forward: Idle -> Running -> Ended or Cancelled.
type State uint8

const (
	StateIdle      State = iota // configured, not started
	StateRunning                // started, possibly still inside its start delay
	StateEnded                  // reached its final value
	StateCancelled              // stopped early by Cancel
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// RepeatMode selects how a repeating Animation restarts.
type RepeatMode uint8

const (
	RepeatRestart RepeatMode = iota // jump back to the start values
	RepeatReverse                   // play the next iteration backwards
)

// RepeatInfinite repeats until cancelled or ended.
const RepeatInfinite = -1

// Listener receives lifecycle callbacks. Callbacks run on the Looper and
// may start, cancel or end any animation, including the one reporting.
type Listener interface {
	OnStart(a *Animation)
	OnEnd(a *Animation)
	OnCancel(a *Animation)
	OnRepeat(a *Animation)
}

// ListenerFuncs adapts optional callbacks to the Listener interface. Use a
// pointer so the listener can be removed again.
type ListenerFuncs struct {
	Start  func(a *Animation)
	End    func(a *Animation)
	Cancel func(a *Animation)
	Repeat func(a *Animation)
}

func (l *ListenerFuncs) OnStart(a *Animation) {
	if l.Start != nil {
		l.Start(a)
	}
}

func (l *ListenerFuncs) OnEnd(a *Animation) {
	if l.End != nil {
		l.End(a)
	}
}

func (l *ListenerFuncs) OnCancel(a *Animation) {
	if l.Cancel != nil {
		l.Cancel(a)
	}
}

func (l *ListenerFuncs) OnRepeat(a *Animation) {
	if l.Repeat != nil {
		l.Repeat(a)
	}
}

// Animation runs a timeline from 0 to 1 over its duration, remaps progress
// through its curve and applies the result to its channels and update
// functions on every Looper frame.
type Animation struct {
	loop *Looper

	state      State
	duration   time.Duration
	delay      time.Duration
	curve      Curve
	repeat     int
	repeatMode RepeatMode

	startTime time.Duration
	begun     bool // OnStart delivered
	iteration int
	reversing bool
	fraction  float64

	target    any
	channels  []Channel
	updates   []func(*Animation)
	listeners []Listener
}

// NewAnimation returns an idle Animation using loop's defaults.
func NewAnimation(loop *Looper) *Animation {
	d := loop.Defaults()
	return &Animation{
		loop:     loop,
		duration: d.Duration,
		delay:    d.StartDelay,
		curve:    d.curve(),
	}
}

// SetDuration sets the length of one iteration.
func (a *Animation) SetDuration(d time.Duration) error {
	if d < 0 {
		return configErrorf("set duration", ErrNegativeDuration, "%v", d)
	}
	a.duration = d
	return nil
}

// Duration returns the length of one iteration.
func (a *Animation) Duration() time.Duration {
	return a.duration
}

// SetStartDelay sets the time between Start and the first frame.
func (a *Animation) SetStartDelay(d time.Duration) error {
	if d < 0 {
		return configErrorf("set start delay", ErrNegativeDuration, "%v", d)
	}
	a.delay = d
	return nil
}

// StartDelay returns the configured start delay.
func (a *Animation) StartDelay() time.Duration {
	return a.delay
}

// SetCurve sets the interpolation curve. A nil curve means Linear.
func (a *Animation) SetCurve(c Curve) {
	if c == nil {
		c = Linear
	}
	a.curve = c
}

// Curve returns the interpolation curve.
func (a *Animation) Curve() Curve {
	return a.curve
}

// SetRepeatCount sets how many times the animation repeats after its first
// iteration. Use RepeatInfinite to repeat until cancelled.
func (a *Animation) SetRepeatCount(n int, mode RepeatMode) {
	a.repeat = n
	a.repeatMode = mode
}

// SetTarget sets the object the channels write to.
func (a *Animation) SetTarget(target any, channels ...Channel) {
	a.target = target
	a.channels = channels
}

// Target returns the animated object.
func (a *Animation) Target() any {
	return a.target
}

// Channels returns the animation's channels. The slice must not be mutated.
func (a *Animation) Channels() []Channel {
	return a.channels
}

// OnUpdate registers fn to run after the channels on every frame.
func (a *Animation) OnUpdate(fn func(*Animation)) {
	a.updates = append(a.updates, fn)
}

// AddListener registers a lifecycle listener.
func (a *Animation) AddListener(l Listener) {
	a.listeners = append(a.listeners, l)
}

// RemoveListener unregisters a listener. No-op if it was not registered.
func (a *Animation) RemoveListener(l Listener) {
	if i := slices.Index(a.listeners, l); i >= 0 {
		a.listeners = slices.Delete(a.listeners, i, i+1)
	}
}

// State returns the lifecycle state.
func (a *Animation) State() State {
	return a.state
}

// IsRunning reports whether the animation started and has not finished.
func (a *Animation) IsRunning() bool {
	return a.state == StateRunning
}

// Fraction returns the curve-mapped progress applied on the latest frame.
func (a *Animation) Fraction() float64 {
	return a.fraction
}

// Start validates the channels against the target and schedules the
// animation on its Looper. Configuration errors are returned before the
// state changes.
func (a *Animation) Start() error {
	if a.state != StateIdle {
		return ErrNotIdle
	}
	if err := a.setup(); err != nil {
		return err
	}
	a.state = StateRunning
	a.startTime = a.loop.Now()
	a.loop.add(a)
	return nil
}

func (a *Animation) setup() error {
	for _, ch := range a.channels {
		if err := ch.setup(a.target); err != nil {
			return err
		}
	}
	return nil
}

// Cancel stops a running animation where it is and fires OnCancel. OnEnd is
// not fired. Cancelling an animation that is not running does nothing.
func (a *Animation) Cancel() {
	if a.state != StateRunning {
		return
	}
	a.state = StateCancelled
	for _, l := range slices.Clone(a.listeners) {
		l.OnCancel(a)
	}
}

// End jumps to the final value and fires OnEnd. An idle animation is
// started first; a finished one is left alone.
func (a *Animation) End() {
	switch a.state {
	case StateIdle:
		if err := a.Start(); err != nil {
			logger.Warn("sway: cannot end animation", "err", err)
			return
		}
	case StateEnded, StateCancelled:
		return
	}
	if !a.begun {
		a.begin()
		if a.state != StateRunning {
			return
		}
	}
	a.reversing = a.repeatMode == RepeatReverse && a.repeat > 0 && a.repeat%2 == 1
	a.animate(1)
	a.finish()
}

// tick advances the animation to frame time now.
func (a *Animation) tick(now time.Duration) {
	if a.state != StateRunning {
		return
	}
	if !a.begun {
		if now <= a.startTime+a.delay {
			return
		}
		a.begin()
		if a.state != StateRunning {
			return
		}
	}

	elapsed := now - a.startTime - a.delay
	raw := 1.0
	if a.duration > 0 {
		raw = float64(elapsed) / float64(a.duration)
	}

	if raw >= 1 && a.duration > 0 && (a.repeat == RepeatInfinite || a.iteration < a.repeat) {
		n := int(raw)
		if a.repeat != RepeatInfinite {
			n = min(n, a.repeat-a.iteration)
		}
		a.iteration += n
		a.startTime += time.Duration(n) * a.duration
		if a.repeatMode == RepeatReverse && n%2 == 1 {
			a.reversing = !a.reversing
		}
		raw -= float64(n)
		for _, l := range slices.Clone(a.listeners) {
			l.OnRepeat(a)
		}
		if a.state != StateRunning {
			return
		}
	}

	raw = min(max(raw, 0), 1)
	a.animate(raw)
	if raw >= 1 && a.state == StateRunning {
		a.finish()
	}
}

func (a *Animation) begin() {
	a.begun = true
	for _, l := range slices.Clone(a.listeners) {
		l.OnStart(a)
	}
}

// animate applies linear progress raw to the channels and update functions.
func (a *Animation) animate(raw float64) {
	if a.reversing {
		raw = 1 - raw
	}
	a.fraction = a.curve(raw)
	if len(a.channels) > 0 && !disposed(a.target) {
		for _, ch := range a.channels {
			ch.apply(a.target, a.fraction)
		}
	}
	for _, fn := range a.updates {
		fn(a)
	}
}

func (a *Animation) finish() {
	a.state = StateEnded
	for _, l := range slices.Clone(a.listeners) {
		l.OnEnd(a)
	}
}

// disposed reports whether target is a host that has gone away.
func disposed(target any) bool {
	if h, ok := target.(interface{ IsDisposed() bool }); ok {
		return h.IsDisposed()
	}
	return false
}
