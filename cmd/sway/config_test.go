package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
animation:
  duration: 100ms
  curve: linear
frameRate: 10
nodes:
  - name: panel
    left: 10
    top: 20
    width: 100
    height: 50
    color: "#ff0000"
  - name: badge
    parent: panel
    width: 8
    height: 8
    alpha: 0.5
script:
  steps:
    - {action: animate, node: panel, tag: alpha, value: 0}
    - {action: wait, frames: 2}
    - {action: animateBy, node: badge, tag: x, value: 30, duration: 200ms}
mqtt:
  url: tcp://localhost:1883
  topic: test/frames
`

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.Animation.Duration)
	assert.Equal(t, "linear", cfg.Animation.Curve)
	assert.Equal(t, 10, cfg.FrameRate)
	assert.Equal(t, "test/frames", cfg.Mqtt.Topic)
	assert.Equal(t, "sway", cfg.Mqtt.ClientID, "default survives a partial mqtt section")
	require.Len(t, cfg.Nodes, 2)
	require.NotNil(t, cfg.Script)
	assert.Len(t, cfg.Script.Steps, 3)
	assert.Equal(t, []string{"panel", "badge"}, cfg.Script.Nodes())
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().FrameRate, cfg.FrameRate)
	assert.Nil(t, cfg.Script)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "bogus: 1\n", "bogus"},
		{"negative duration", "animation: {duration: -1s}\n", "negative duration"},
		{"unknown curve", "animation: {curve: wobble}\n", "wobble"},
		{"zero frame rate", "frameRate: 0\n", "frameRate"},
		{"duplicate node", "nodes: [{name: a}, {name: a}]\n", "duplicate"},
		{"late parent", "nodes: [{name: a, parent: b}, {name: b}]\n", "declared first"},
		{"bad color", "nodes: [{name: a, color: red}]\n", "color"},
		{"unknown script node", "script: {steps: [{action: cancel, node: ghost}]}\n", "ghost"},
		{"unknown action", "nodes: [{name: a}]\nscript: {steps: [{action: jump, node: a}]}\n", "jump"},
		{"unknown tag", "nodes: [{name: a}]\nscript: {steps: [{action: animate, node: a, tag: depth}]}\n", "depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildScene(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	scene, err := buildScene(cfg)
	require.NoError(t, err)

	panel := scene.Find("panel")
	require.NotNil(t, panel)
	assert.Equal(t, 10.0, panel.X())
	assert.Equal(t, 20.0, panel.Y())
	assert.Equal(t, "#ff0000", panel.Color().Hex())

	badge := scene.Find("badge")
	require.NotNil(t, badge)
	assert.Same(t, panel, badge.Parent)
	assert.Equal(t, 0.5, badge.Alpha())

	assert.Equal(t, 100*time.Millisecond, scene.Looper().Defaults().Duration)
	assert.False(t, scene.ScriptDone())
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate", "--config", path, "--log-level", "error"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Config is valid: 2 nodes, 3 script steps")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"validate", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open config")
}
