package sway

import (
	"maps"
	"slices"
	"time"
)

// pendingValue is one property request: the value at request time and the
// distance to travel.
type pendingValue struct {
	tag   Tag
	from  float64
	delta float64
}

// batch is a set of property requests sharing one Animation. mask is the
// OR of the tags in values; no tag appears twice.
type batch struct {
	mask   Tag
	values []pendingValue
	anim   *Animation
}

// remove drops the request for tag. It reports whether one was found.
func (b *batch) remove(tag Tag) bool {
	if b.mask&tag == 0 {
		return false
	}
	for i, v := range b.values {
		if v.tag == tag {
			b.values = slices.Delete(b.values, i, i+1)
			b.mask &^= tag
			return true
		}
	}
	return false
}

// Animator animates the built-in properties of one Host. Requests made in
// the same Looper turn are collected into a pending batch and started
// together on the next turn, sharing one Animation. A new request for a
// property replaces any earlier request for it, pending or running.
//
//	scene.Animate(node).X(120).Alpha(0.5)
//
// An Animator must only be used from its Looper's goroutine.
type Animator struct {
	host Host
	loop *Looper

	duration    time.Duration
	durationSet bool
	delay       time.Duration
	delaySet    bool
	curve       Curve
	curveSet    bool

	listener Listener

	pending []pendingValue
	active  map[*Animation]*batch
	starter *Task
	relay   *batchRelay
}

// NewAnimator returns an Animator for host that flushes on loop.
func NewAnimator(host Host, loop *Looper) *Animator {
	a := &Animator{
		host:   host,
		loop:   loop,
		active: make(map[*Animation]*batch),
	}
	a.starter = NewTask(a.flush)
	a.relay = &batchRelay{a: a}
	return a
}

// Host returns the animated host.
func (a *Animator) Host() Host {
	return a.host
}

// SetDuration sets the duration of batches started from now on.
func (a *Animator) SetDuration(d time.Duration) error {
	if d < 0 {
		return configErrorf("set duration", ErrNegativeDuration, "%v", d)
	}
	a.duration = d
	a.durationSet = true
	return nil
}

// Duration returns the configured duration, or the Looper default.
func (a *Animator) Duration() time.Duration {
	if a.durationSet {
		return a.duration
	}
	return a.loop.Defaults().Duration
}

// SetStartDelay sets the start delay of batches started from now on.
func (a *Animator) SetStartDelay(d time.Duration) error {
	if d < 0 {
		return configErrorf("set start delay", ErrNegativeDuration, "%v", d)
	}
	a.delay = d
	a.delaySet = true
	return nil
}

// StartDelay returns the configured start delay, or the Looper default.
func (a *Animator) StartDelay() time.Duration {
	if a.delaySet {
		return a.delay
	}
	return a.loop.Defaults().StartDelay
}

// SetCurve sets the curve of batches started from now on.
func (a *Animator) SetCurve(c Curve) {
	a.curve = c
	a.curveSet = true
}

// SetListener sets the listener that receives the lifecycle callbacks of
// every batch. It is dropped once no batch is running or pending, so it must
// be set again for later requests. A request that evicts the last running
// batch keeps it for the batch that replaces it.
func (a *Animator) SetListener(l Listener) {
	a.listener = l
}

// Start flushes pending requests now instead of on the next turn.
func (a *Animator) Start() {
	a.loop.Remove(a.starter)
	a.flush()
}

// Cancel stops every running batch and discards pending requests. It is
// safe to call from a listener callback.
func (a *Animator) Cancel() {
	a.pending = a.pending[:0]
	a.loop.Remove(a.starter)
	for _, anim := range slices.Collect(maps.Keys(a.active)) {
		anim.Cancel()
	}
}

// Running returns the number of batches in flight.
func (a *Animator) Running() int {
	return len(a.active)
}

// Animate requests that tag move to value.
func (a *Animator) Animate(tag Tag, value float64) *Animator {
	from := a.host.Value(tag)
	a.request(tag, from, value-from)
	return a
}

// AnimateBy requests that tag move by delta from its current value.
func (a *Animator) AnimateBy(tag Tag, delta float64) *Animator {
	a.request(tag, a.host.Value(tag), delta)
	return a
}

func (a *Animator) X(v float64) *Animator              { return a.Animate(TagX, v) }
func (a *Animator) XBy(v float64) *Animator            { return a.AnimateBy(TagX, v) }
func (a *Animator) Y(v float64) *Animator              { return a.Animate(TagY, v) }
func (a *Animator) YBy(v float64) *Animator            { return a.AnimateBy(TagY, v) }
func (a *Animator) TranslationX(v float64) *Animator   { return a.Animate(TagTranslationX, v) }
func (a *Animator) TranslationXBy(v float64) *Animator { return a.AnimateBy(TagTranslationX, v) }
func (a *Animator) TranslationY(v float64) *Animator   { return a.Animate(TagTranslationY, v) }
func (a *Animator) TranslationYBy(v float64) *Animator { return a.AnimateBy(TagTranslationY, v) }
func (a *Animator) ScaleX(v float64) *Animator         { return a.Animate(TagScaleX, v) }
func (a *Animator) ScaleXBy(v float64) *Animator       { return a.AnimateBy(TagScaleX, v) }
func (a *Animator) ScaleY(v float64) *Animator         { return a.Animate(TagScaleY, v) }
func (a *Animator) ScaleYBy(v float64) *Animator       { return a.AnimateBy(TagScaleY, v) }
func (a *Animator) Rotation(v float64) *Animator       { return a.Animate(TagRotation, v) }
func (a *Animator) RotationBy(v float64) *Animator     { return a.AnimateBy(TagRotation, v) }
func (a *Animator) RotationX(v float64) *Animator      { return a.Animate(TagRotationX, v) }
func (a *Animator) RotationXBy(v float64) *Animator    { return a.AnimateBy(TagRotationX, v) }
func (a *Animator) RotationY(v float64) *Animator      { return a.Animate(TagRotationY, v) }
func (a *Animator) RotationYBy(v float64) *Animator    { return a.AnimateBy(TagRotationY, v) }
func (a *Animator) Alpha(v float64) *Animator          { return a.Animate(TagAlpha, v) }
func (a *Animator) AlphaBy(v float64) *Animator        { return a.AnimateBy(TagAlpha, v) }

// request evicts older requests for tag and queues the new one.
func (a *Animator) request(tag Tag, from, delta float64) {
	for i, v := range a.pending {
		if v.tag == tag {
			a.pending = slices.Delete(a.pending, i, i+1)
			break
		}
	}

	var emptied []*Animation
	for anim, b := range a.active {
		if b.remove(tag) && b.mask == TagNone {
			emptied = append(emptied, anim)
		}
	}

	// queued before the cancels so the listener survives for this request
	a.pending = append(a.pending, pendingValue{tag: tag, from: from, delta: delta})
	a.loop.Post(a.starter)

	// nothing left to animate
	for _, anim := range emptied {
		anim.Cancel()
	}
}

// flush turns the pending requests into a running batch.
func (a *Animator) flush() {
	if len(a.pending) == 0 {
		return
	}
	values := slices.Clone(a.pending)
	a.pending = a.pending[:0]

	b := &batch{values: values}
	for _, v := range values {
		b.mask |= v.tag
	}
	anim := NewAnimation(a.loop)
	anim.SetTarget(a.host)
	b.anim = anim
	a.active[anim] = b

	anim.OnUpdate(func(*Animation) { a.update(b) })
	anim.AddListener(a.relay)
	if a.delaySet {
		anim.delay = a.delay
	}
	if a.durationSet {
		anim.duration = a.duration
	}
	if a.curveSet {
		anim.SetCurve(a.curve)
	}
	if err := anim.Start(); err != nil {
		logger.Error("sway: batch failed to start", "err", err)
		a.done(anim)
	}
}

// update applies the batch's shared fraction to every request.
func (a *Animator) update(b *batch) {
	if a.host.IsDisposed() {
		return
	}
	f := b.anim.Fraction()
	for _, v := range b.values {
		a.host.SetValue(v.tag, v.from+f*v.delta)
	}
	if b.mask&TransformMask != 0 {
		a.host.MarkDirty()
	}
}

// done unregisters a finished batch and drops the listener once nothing is
// running or pending.
func (a *Animator) done(anim *Animation) {
	delete(a.active, anim)
	if len(a.active) == 0 && len(a.pending) == 0 {
		a.listener = nil
	}
}

// batchRelay forwards batch lifecycle callbacks to the Animator's listener.
type batchRelay struct {
	a *Animator
}

func (r *batchRelay) OnStart(anim *Animation) {
	if l := r.a.listener; l != nil {
		l.OnStart(anim)
	}
}

func (r *batchRelay) OnRepeat(anim *Animation) {
	if l := r.a.listener; l != nil {
		l.OnRepeat(anim)
	}
}

func (r *batchRelay) OnEnd(anim *Animation) {
	if l := r.a.listener; l != nil {
		l.OnEnd(anim)
	}
	r.a.done(anim)
}

func (r *batchRelay) OnCancel(anim *Animation) {
	if l := r.a.listener; l != nil {
		l.OnCancel(anim)
	}
	r.a.done(anim)
}
