package sway

import (
	"fmt"
	"time"

	"github.com/petermattis/goid"
)

// debugState tracks which goroutine owns a Looper while debug mode is on.
type debugState struct {
	enabled bool
	owner   int64
}

// frameStats holds per-frame timing and counters. Only populated in debug
// mode.
type frameStats struct {
	elapsed  time.Duration
	tasks    int
	ticked   int
	active   int
	frameNow time.Duration
}

// SetDebug enables or disables debug mode. When enabled, the calling
// goroutine becomes the loop's owner and any Post, Remove, Frame or Start
// from another goroutine panics; per-frame stats are logged at debug level.
func (l *Looper) SetDebug(enabled bool) {
	l.debug.enabled = enabled
	if enabled {
		l.debug.owner = goid.Get()
	}
}

// checkOwner panics when debug mode is on and the caller is not the owner.
func (l *Looper) checkOwner(op string) {
	if !l.debug.enabled {
		return
	}
	if gid := goid.Get(); gid != l.debug.owner {
		panic(fmt.Sprintf("sway debug: %s from goroutine %d, looper owned by goroutine %d", op, gid, l.debug.owner))
	}
}

func (l *Looper) debugLog(s frameStats) {
	logger.Debug("sway: frame",
		"now", s.frameNow,
		"elapsed", s.elapsed,
		"tasks", s.tasks,
		"ticked", s.ticked,
		"active", s.active)
}

// debugCheckDisposed panics when a disposed node is used in a tree
// operation. Callers skip it unless debug mode is on.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sway debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("sway: tree too deep", "depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}
