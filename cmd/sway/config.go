package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/sway"
	"github.com/phanxgames/sway/game"
	"gopkg.in/yaml.v3"
)

// Config is the sway.yaml document.
type Config struct {
	Animation sway.Defaults `yaml:"animation"`
	Window    game.Config   `yaml:"window"`
	Mqtt      MqttConfig    `yaml:"mqtt"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Log       LogConfig     `yaml:"log"`
	FrameRate int           `yaml:"frameRate"`
	Nodes     []NodeConfig  `yaml:"nodes"`
	Script    *sway.Script  `yaml:"script"`
}

// MqttConfig holds the broker settings for `sway stream`.
type MqttConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientId"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// NodeConfig declares one node. Parent must name an earlier node; empty
// means the scene root.
type NodeConfig struct {
	Name   string   `yaml:"name"`
	Parent string   `yaml:"parent"`
	Left   float64  `yaml:"left"`
	Top    float64  `yaml:"top"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	PivotX float64  `yaml:"pivotX"`
	PivotY float64  `yaml:"pivotY"`
	Alpha  *float64 `yaml:"alpha"`
	Color  string   `yaml:"color"`
}

func defaultConfig() Config {
	return Config{
		Animation: sway.DefaultDefaults(),
		Window:    game.DefaultConfig(),
		Mqtt: MqttConfig{
			ClientID: "sway",
			Topic:    "sway/frames",
		},
		Log:       LogConfig{Level: "info"},
		FrameRate: 30,
	}
}

func loadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return loadConfig(f)
}

// loadConfig decodes YAML over the defaults and validates the result.
func loadConfig(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := c.Animation.Validate(); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frameRate must be positive, got %d", c.FrameRate)
	}
	seen := make(map[string]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		if n.Name == "" {
			return fmt.Errorf("nodes[%d]: missing name", i)
		}
		if seen[n.Name] {
			return fmt.Errorf("nodes[%d]: duplicate name %q", i, n.Name)
		}
		if n.Parent != "" && !seen[n.Parent] {
			return fmt.Errorf("nodes[%d]: parent %q must be declared first", i, n.Parent)
		}
		if n.Color != "" {
			if _, err := colorful.Hex(n.Color); err != nil {
				return fmt.Errorf("nodes[%d]: color: %w", i, err)
			}
		}
		seen[n.Name] = true
	}
	if c.Script != nil {
		for _, name := range c.Script.Nodes() {
			if !seen[name] {
				return fmt.Errorf("script: unknown node %q", name)
			}
		}
	}
	return nil
}

// buildScene creates the configured nodes and attaches the script.
func buildScene(c Config) (*sway.Scene, error) {
	scene := sway.NewScene()
	if err := scene.Looper().SetDefaults(c.Animation); err != nil {
		return nil, err
	}
	for _, nc := range c.Nodes {
		n := sway.NewRect(nc.Name, nc.Left, nc.Top, nc.Width, nc.Height)
		n.SetPivot(nc.PivotX, nc.PivotY)
		if nc.Alpha != nil {
			n.SetAlpha(*nc.Alpha)
		}
		if nc.Color != "" {
			col, err := colorful.Hex(nc.Color)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", nc.Name, err)
			}
			n.SetColor(col)
		}
		parent := scene.Root()
		if nc.Parent != "" {
			parent = scene.Find(nc.Parent)
		}
		parent.AddChild(n)
	}
	if c.Script != nil {
		if err := scene.SetScript(c.Script); err != nil {
			return nil, err
		}
	}
	return scene, nil
}
