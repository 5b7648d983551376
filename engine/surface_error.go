package engine

import "strings"

// surfaceErrorAction is the per-frame policy applied when the surface cannot
// provide the next texture.
type surfaceErrorAction int

const (
	// surfaceErrorSkip logs the error and drops the frame. The next frame
	// retries normally. Used for outdated surfaces, timeouts, and anything
	// unrecognized.
	surfaceErrorSkip surfaceErrorAction = iota
	// surfaceErrorReconfigure reconfigures the surface at the current window
	// size before retrying. Used when the swapchain is lost.
	surfaceErrorReconfigure
	// surfaceErrorFatal stops the engine. Used for device memory exhaustion.
	surfaceErrorFatal
)

// classifySurfaceError maps a surface acquisition error to the action the
// frame loop takes. The wgpu bindings report these as plain error strings, so
// classification matches on the message text.
func classifySurfaceError(err error) surfaceErrorAction {
	if err == nil {
		return surfaceErrorSkip
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"):
		return surfaceErrorReconfigure
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return surfaceErrorFatal
	default:
		return surfaceErrorSkip
	}
}
