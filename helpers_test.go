package sway

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	red  = colorful.Color{R: 1}
	blue = colorful.Color{B: 1}
)

// gauge is a plain host with accessor methods for name-based lookup.
type gauge struct {
	level    float64
	count    int
	ratio    float32
	label    string
	only     float64
	disposed bool
}

func (g *gauge) Level() float64     { return g.level }
func (g *gauge) SetLevel(v float64) { g.level = v }
func (g *gauge) GetCount() int      { return g.count }
func (g *gauge) SetCount(v int)     { g.count = v }
func (g *gauge) Ratio() float32     { return g.ratio }
func (g *gauge) SetRatio(v float32) { g.ratio = v }
func (g *gauge) Label() string      { return g.label }
func (g *gauge) SetOnly(v float64)  { g.only = v }
func (g *gauge) IsDisposed() bool   { return g.disposed }
func (g *gauge) Scale(by float64)   { g.level *= by }

// SetPair takes two values and is never an accessor.
func (g *gauge) SetPair(a, b float64) {}

// recorder logs lifecycle callbacks in order.
type recorder struct {
	events []string
}

func (r *recorder) OnStart(a *Animation)  { r.events = append(r.events, "start") }
func (r *recorder) OnEnd(a *Animation)    { r.events = append(r.events, "end") }
func (r *recorder) OnCancel(a *Animation) { r.events = append(r.events, "cancel") }
func (r *recorder) OnRepeat(a *Animation) { r.events = append(r.events, "repeat") }

func assertEvents(t *testing.T, r *recorder, want ...string) {
	t.Helper()
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", r.events, want)
		}
	}
}

// frames runs n Looper turns of dt each.
func frames(l *Looper, n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		l.Frame(dt)
	}
}

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Logger()
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { SetLogger(old) })
	return &buf
}

func mustStart(t *testing.T, a *Animation) {
	t.Helper()
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}
