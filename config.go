package sway

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults are the settings an Animation starts from when it does not set
// its own.
type Defaults struct {
	Duration   time.Duration `yaml:"duration"`
	StartDelay time.Duration `yaml:"startDelay"`
	Curve      string        `yaml:"curve"`
}

// DefaultDefaults returns the built-in settings: 300ms, no delay, and an
// accelerate/decelerate curve.
func DefaultDefaults() Defaults {
	return Defaults{
		Duration: 300 * time.Millisecond,
		Curve:    "accelerateDecelerate",
	}
}

// Validate rejects negative times and unknown curve names.
func (d Defaults) Validate() error {
	if d.Duration < 0 {
		return configErrorf("defaults", ErrNegativeDuration, "duration %v", d.Duration)
	}
	if d.StartDelay < 0 {
		return configErrorf("defaults", ErrNegativeDuration, "start delay %v", d.StartDelay)
	}
	if d.Curve != "" {
		if _, err := CurveByName(d.Curve); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
	}
	return nil
}

// curve resolves the named curve, falling back to Linear.
func (d Defaults) curve() Curve {
	if c, err := CurveByName(d.Curve); err == nil {
		return c
	}
	return Linear
}

// LoadDefaults decodes YAML over the built-in defaults and validates the
// result. An empty document yields the built-in defaults.
func LoadDefaults(r io.Reader) (Defaults, error) {
	d := DefaultDefaults()
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Defaults{}, fmt.Errorf("decode defaults: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Defaults{}, err
	}
	return d, nil
}
