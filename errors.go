package sway

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeDuration is wrapped by a ConfigError for a negative duration
	// or start delay.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrNoEvaluator is wrapped by a ConfigError when a track holds a value
	// kind with no built-in evaluator and none was supplied.
	ErrNoEvaluator = errors.New("no evaluator for value type")

	// ErrKeyframeOrder is wrapped by a ConfigError for keyframes outside
	// [0, 1], out of order, or missing interior values.
	ErrKeyframeOrder = errors.New("malformed keyframes")

	// ErrNoKeyframes is wrapped by a ConfigError for an empty track.
	ErrNoKeyframes = errors.New("no keyframes")

	// ErrNotIdle is returned by Start on an Animation that already started.
	ErrNotIdle = errors.New("sway: animation already started")
)

// ConfigError reports a misconfigured animation. It is returned before any
// state is changed.
type ConfigError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sway: %s: %s", e.Op, e.Reason)
	}
	if e.Reason == "" {
		return fmt.Sprintf("sway: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sway: %s: %v: %s", e.Op, e.Err, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(op string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Err: err, Reason: fmt.Sprintf(format, args...)}
}
