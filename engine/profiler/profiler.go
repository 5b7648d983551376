// Package profiler tracks frame timing and memory statistics for the engine
// loop and reports them to the log at a fixed interval.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one interval's worth of frame and memory measurements.
type Stats struct {
	// FPS is the average frames per second over the interval.
	FPS float64
	// FrameTimeMs is the average frame time in milliseconds.
	FrameTimeMs float64
	// HeapMB is the live heap size in megabytes at sample time.
	HeapMB float64
	// SysMB is the total memory obtained from the OS in megabytes.
	SysMB float64
	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
}

// Profiler tracks frame rate and memory statistics for the render loop.
// Outputs stats to the log once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
}

// NewProfiler creates a new Profiler. The reporting interval defaults to one
// second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ProfilerBuilderOption is a functional option for configuring a Profiler
// during creation.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets the reporting interval.
//
// Parameters:
//   - interval: time between log lines
//
// Returns:
//   - ProfilerBuilderOption: the option to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// Tick must be called once per frame. When the reporting interval has
// elapsed it samples memory stats, logs one line, resets the interval, and
// returns the sampled stats.
//
// Returns:
//   - *Stats: the interval's stats, or nil if the interval has not elapsed
func (p *Profiler) Tick() *Stats {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return nil
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	frameTimeMs := elapsed.Seconds() * 1000 / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	stats := &Stats{
		FPS:         fps,
		FrameTimeMs: frameTimeMs,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:     p.memStats.NumGC,
	}

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms | Heap: %.2f MB | Sys: %.2f MB | GC: %d",
		stats.FPS, stats.FrameTimeMs, stats.HeapMB, stats.SysMB, stats.GCCount)

	p.frameCount = 0
	p.lastTime = currentTime
	return stats
}
