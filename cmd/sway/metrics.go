package main

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/phanxgames/sway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// statsBox holds the latest Looper stats for scrapes, which run on the HTTP
// server's goroutines.
type statsBox struct {
	mu    sync.Mutex
	stats sway.Stats
}

func (b *statsBox) store(s sway.Stats) {
	b.mu.Lock()
	b.stats = s
	b.mu.Unlock()
}

func (b *statsBox) load() sway.Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// registerMetrics exposes the stats in box on reg.
func registerMetrics(reg prometheus.Registerer, box *statsBox) error {
	stats := box.load
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sway_frames_total",
			Help: "Total number of loop turns.",
		}, func() float64 { return float64(stats().Frames) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sway_tasks_run_total",
			Help: "Total number of posted tasks run.",
		}, func() float64 { return float64(stats().TasksRun) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sway_animations_started_total",
			Help: "Total number of animations started.",
		}, func() float64 { return float64(stats().AnimationsStarted) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sway_animations_ended_total",
			Help: "Total number of animations that ran to completion.",
		}, func() float64 { return float64(stats().AnimationsEnded) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "sway_animations_cancelled_total",
			Help: "Total number of cancelled animations.",
		}, func() float64 { return float64(stats().AnimationsCancelled) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sway_animations_active",
			Help: "Number of running animations.",
		}, func() float64 { return float64(stats().Active) }),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// serveMetrics starts a metrics server on addr in the background. The
// caller stores fresh stats in the returned box after every frame.
func serveMetrics(addr string) (*http.Server, *statsBox, error) {
	box := &statsBox{}
	reg := prometheus.NewRegistry()
	if err := registerMetrics(reg, box); err != nil {
		return nil, nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		sway.Logger().Info("starting metrics server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sway.Logger().Error("metrics server failed", "err", err)
		}
	}()
	return srv, box, nil
}
