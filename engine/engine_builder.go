package engine

import (
	"github.com/Carmen-Shannon/gridview/engine/camera"
	"github.com/Carmen-Shannon/gridview/engine/profiler"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/Carmen-Shannon/gridview/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler, e.g. to add counters.
//
// Parameters:
//   - p: the profiler ticked once per presented frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that owns the frame lifecycle.
//
// Parameters:
//   - r: the renderer, usually a renderer.Renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera applied to the renderer each frame.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithDisplay sets the display settings. A default settings.NewDisplay() is used otherwise.
//
// Parameters:
//   - d: the display settings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDisplay(d settings.Display) EngineBuilderOption {
	return func(e *engine) {
		e.display = d
	}
}

// WithRenderable registers a Renderable during construction.
//
// Parameters:
//   - r: the Renderable to draw each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderable(r Renderable) EngineBuilderOption {
	return func(e *engine) {
		e.renderables = append(e.renderables, r)
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
