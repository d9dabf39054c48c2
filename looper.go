package sway

import (
	"slices"
	"time"
)

// Task is a callback that can be posted to a Looper. A task is queued at
// most once; posting it again before it runs does nothing.
type Task struct {
	fn     func()
	queued bool
}

// NewTask wraps fn in a postable task.
func NewTask(fn func()) *Task {
	return &Task{fn: fn}
}

// Queued reports whether the task is waiting to run.
func (t *Task) Queued() bool {
	return t.queued
}

// Stats are cumulative Looper counters.
type Stats struct {
	Frames              uint64
	TasksRun            uint64
	AnimationsStarted   uint64
	AnimationsEnded     uint64
	AnimationsCancelled uint64
	Active              int
}

// Looper is the single-threaded frame loop that runs posted tasks and ticks
// animations. Nothing in a Looper is safe for concurrent use: every call
// must come from the goroutine that drives Frame.
//
// Each Frame is one turn: tasks queued before the turn began run first, in
// post order, then every running animation is ticked. Tasks posted while
// the turn runs wait for the next one.
type Looper struct {
	now      time.Duration
	defaults Defaults

	queue   []*Task
	running []*Task

	anims   []*Animation
	animBuf []*Animation

	stats Stats
	debug debugState
}

// NewLooper returns a Looper at time zero with the built-in defaults.
func NewLooper() *Looper {
	return &Looper{defaults: DefaultDefaults()}
}

// Now returns the frame time of the current turn.
func (l *Looper) Now() time.Duration {
	return l.now
}

// Defaults returns the settings new animations start from.
func (l *Looper) Defaults() Defaults {
	return l.defaults
}

// SetDefaults validates and installs d.
func (l *Looper) SetDefaults(d Defaults) error {
	if err := d.Validate(); err != nil {
		return err
	}
	l.defaults = d
	return nil
}

// Post queues t for the next turn.
func (l *Looper) Post(t *Task) {
	l.checkOwner("Post")
	if t.queued {
		return
	}
	t.queued = true
	l.queue = append(l.queue, t)
}

// Remove unqueues t. No-op if t is not queued.
func (l *Looper) Remove(t *Task) {
	l.checkOwner("Remove")
	if !t.queued {
		return
	}
	t.queued = false
	if i := slices.Index(l.queue, t); i >= 0 {
		l.queue = slices.Delete(l.queue, i, i+1)
	}
}

// Active returns the number of running animations.
func (l *Looper) Active() int {
	n := 0
	for _, a := range l.anims {
		if a.state == StateRunning {
			n++
		}
	}
	return n
}

// Stats returns a snapshot of the loop counters.
func (l *Looper) Stats() Stats {
	s := l.stats
	s.Active = l.Active()
	return s
}

// Frame advances the clock by dt and runs one turn. Negative dt counts as 0.
func (l *Looper) Frame(dt time.Duration) {
	l.checkOwner("Frame")
	var t0 time.Time
	if l.debug.enabled {
		t0 = time.Now()
	}

	if dt > 0 {
		l.now += dt
	}
	l.stats.Frames++

	l.running = append(l.running[:0], l.queue...)
	clear(l.queue)
	l.queue = l.queue[:0]
	for i, t := range l.running {
		l.running[i] = nil
		// removed by an earlier task this turn
		if !t.queued {
			continue
		}
		t.queued = false
		l.stats.TasksRun++
		t.fn()
	}
	tasks := len(l.running)
	l.running = l.running[:0]

	l.animBuf = append(l.animBuf[:0], l.anims...)
	for _, a := range l.animBuf {
		a.tick(l.now)
	}
	clear(l.animBuf)
	ticked := len(l.animBuf)
	l.animBuf = l.animBuf[:0]

	l.anims = slices.DeleteFunc(l.anims, func(a *Animation) bool {
		switch a.state {
		case StateEnded:
			l.stats.AnimationsEnded++
			return true
		case StateCancelled:
			l.stats.AnimationsCancelled++
			return true
		}
		return false
	})

	if l.debug.enabled {
		l.debugLog(frameStats{
			elapsed:  time.Since(t0),
			tasks:    tasks,
			ticked:   ticked,
			active:   len(l.anims),
			frameNow: l.now,
		})
	}
}

func (l *Looper) add(a *Animation) {
	l.checkOwner("Start")
	l.stats.AnimationsStarted++
	l.anims = append(l.anims, a)
}
