package profiler

import (
	"testing"
	"time"
)

func TestTickBelowInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Hour))
	for i := 0; i < 10; i++ {
		if stats := p.Tick(); stats != nil {
			t.Fatalf("Tick %d reported stats before the interval elapsed", i)
		}
	}
}

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0))
	p.lastTime = time.Now().Add(-time.Second)

	stats := p.Tick()
	if stats == nil {
		t.Fatal("Tick returned nil after the interval elapsed")
	}
	if stats.FPS <= 0 {
		t.Errorf("FPS = %v, want > 0", stats.FPS)
	}
	if stats.FrameTimeMs <= 0 {
		t.Errorf("FrameTimeMs = %v, want > 0", stats.FrameTimeMs)
	}
	if stats.HeapMB <= 0 {
		t.Errorf("HeapMB = %v, want > 0", stats.HeapMB)
	}
}

func TestTickResetsInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Hour))
	p.lastTime = time.Now().Add(-2 * time.Hour)

	if p.Tick() == nil {
		t.Fatal("first Tick did not report")
	}
	if p.Tick() != nil {
		t.Error("second Tick reported again immediately")
	}
	if p.frameCount != 1 {
		t.Errorf("frameCount = %d after reset and one tick, want 1", p.frameCount)
	}
}
