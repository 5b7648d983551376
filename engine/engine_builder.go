package engine

import (
	"github.com/pulsar3d/pulsar-go/engine/profiler"
	"github.com/pulsar3d/pulsar-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine during
// creation.
type EngineBuilderOption func(*engineImpl)

// WithWindow supplies a pre-built window instead of the default 800x600 one.
//
// Parameters:
//   - w: the window to use
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.window = w
	}
}

// WithProfiling enables per-second frame and memory stats in the log.
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithProfiling() EngineBuilderOption {
	return func(e *engineImpl) {
		e.profiler = profiler.NewProfiler()
	}
}

// WithFrameLimit stops the loop after the given number of frames. Zero means
// unlimited.
//
// Parameters:
//   - frames: number of frames to render before exiting
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithFrameLimit(frames uint64) EngineBuilderOption {
	return func(e *engineImpl) {
		e.frameLimit = frames
	}
}

// WithUpdateCallback sets a function called once per frame before rendering,
// after window events have been applied. Use it for camera movement and other
// per-frame state updates.
//
// Parameters:
//   - callback: the per-frame function
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithUpdateCallback(callback func()) EngineBuilderOption {
	return func(e *engineImpl) {
		e.onUpdate = callback
	}
}
