package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/phanxgames/sway"
	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Play the script and publish frame snapshots over MQTT",
	Long: `Advances the scene at frameRate and publishes every frame as a JSON
snapshot of all nodes to the configured MQTT topic.`,
	RunE: runStream,
}

func init() {
	streamCmd.Flags().Int("frames", 0, "Stop after this many frames (0 runs until interrupted or the script ends)")
	streamCmd.Flags().String("metrics", "", "Serve Prometheus metrics on this address; overrides metrics.addr")
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if cfg.Mqtt.URL == "" {
		return fmt.Errorf("stream: mqtt.url is required")
	}
	scene, err := buildScene(cfg)
	if err != nil {
		return err
	}
	frames, _ := cmd.Flags().GetInt("frames")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.Metrics.Addr
	if flag, _ := cmd.Flags().GetString("metrics"); flag != "" {
		addr = flag
	}
	var box *statsBox
	if addr != "" {
		srv, b, err := serveMetrics(addr)
		if err != nil {
			return err
		}
		defer srv.Close()
		box = b
	}

	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(cfg.Mqtt.ClientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			sway.Logger().Info("connected", "broker", cfg.Mqtt.URL)
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("stream: connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	s := newStreamer(scene, client, cfg.Mqtt.Topic, cfg.Mqtt.QoS, time.Second/time.Duration(cfg.FrameRate))
	s.stats = box
	sent, err := s.run(ctx, frames)
	sway.Logger().Info("stream finished", "frames", sent)
	return err
}

// publisher is the part of mqtt.Client the streamer needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// nodeState is one node in a frame snapshot.
type nodeState struct {
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	Alpha    float64 `json:"alpha"`
	Color    string  `json:"color"`
}

// frame is the JSON payload published per tick.
type frame struct {
	Seq   uint64      `json:"seq"`
	Time  float64     `json:"time"` // seconds since start
	Nodes []nodeState `json:"nodes"`
}

// streamer advances a scene at a fixed step and publishes each frame.
type streamer struct {
	scene *sway.Scene
	pub   publisher
	topic string
	qos   byte
	step  time.Duration
	seq   uint64
	buf   []nodeState
	stats *statsBox // nil without a metrics server
}

func newStreamer(scene *sway.Scene, pub publisher, topic string, qos byte, step time.Duration) *streamer {
	return &streamer{scene: scene, pub: pub, topic: topic, qos: qos, step: step}
}

// sendFrame advances the scene one step and publishes the result.
func (s *streamer) sendFrame() error {
	if err := s.scene.Update(s.step); err != nil {
		return err
	}
	s.seq++
	if s.stats != nil {
		s.stats.store(s.scene.Looper().Stats())
	}
	b, err := json.Marshal(s.snapshot())
	if err != nil {
		return fmt.Errorf("stream: encode frame: %w", err)
	}
	token := s.pub.Publish(s.topic, s.qos, false, b)
	token.Wait()
	return token.Error()
}

func (s *streamer) snapshot() frame {
	s.buf = s.buf[:0]
	var walk func(n *sway.Node)
	walk = func(n *sway.Node) {
		for _, c := range n.Children() {
			s.buf = append(s.buf, nodeState{
				Name:     c.Name,
				X:        c.X(),
				Y:        c.Y(),
				ScaleX:   c.ScaleX(),
				ScaleY:   c.ScaleY(),
				Rotation: c.Rotation(),
				Alpha:    c.Alpha(),
				Color:    c.Color().Clamped().Hex(),
			})
			walk(c)
		}
	}
	walk(s.scene.Root())
	return frame{
		Seq:   s.seq,
		Time:  s.scene.Looper().Now().Seconds(),
		Nodes: s.buf,
	}
}

// done reports whether there is nothing left to play.
func (s *streamer) done() bool {
	return s.scene.ScriptDone() && s.scene.Looper().Active() == 0
}

// run sends frames on a ticker until ctx ends, limit frames have been sent
// (limit > 0), or the script and every animation have finished.
func (s *streamer) run(ctx context.Context, limit int) (int, error) {
	publishTimer := time.NewTicker(s.step)
	defer publishTimer.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			return sent, nil
		case <-publishTimer.C:
		}
		if err := s.sendFrame(); err != nil {
			return sent, err
		}
		sent++
		if (limit > 0 && sent >= limit) || (limit == 0 && s.done()) {
			return sent, nil
		}
	}
}
