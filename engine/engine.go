package engine

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/camera"
	"github.com/Carmen-Shannon/gridview/engine/profiler"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/Carmen-Shannon/gridview/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameRenderer is the part of renderer.Renderer the engine drives each frame.
type FrameRenderer interface {
	Resize(width, height int)
	SetViewProjection(m mgl32.Mat4)
	BeginFrame() error
	EndFrame()
	Present()
}

// Renderable is anything drawn once per frame with the current display settings.
// scene_grid.SceneGrid implements it.
type Renderable interface {
	Render(p settings.Provider) error
	Label() string
}

// engine implements the Engine interface.
// Everything runs on the thread that called Run, which owns the graphics context.
type engine struct {
	window   window.Window
	renderer FrameRenderer
	camera   camera.Camera
	display  settings.Display

	renderables []Renderable
	// failing tracks renderables whose last Render returned an error, to log transitions only.
	failing map[string]bool

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickCallback     func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
}

// Engine is the main entry point for the viewer.
// It owns the frame loop: input tick, camera update, then one render pass over every Renderable.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil
	Window() window.Window

	// Display returns the display settings passed to every Renderable.
	//
	// Returns:
	//   - settings.Display: the mutable settings
	Display() settings.Display

	// Camera returns the camera whose matrix is applied each frame, or nil.
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of each frame, before the camera
	// update. Use this for continuous input such as held keys.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Add appends a Renderable. Renderables draw in insertion order.
	//
	// Parameters:
	//   - r: the Renderable to draw each frame
	Add(r Renderable)

	// Remove drops every Renderable with the given label.
	//
	// Parameters:
	//   - label: the label to remove
	Remove(label string)

	// Renderables returns a copy of the registered Renderables in draw order.
	Renderables() []Renderable

	// Run drives frames from the window message loop. Blocks until the window closes.
	Run()

	// Quit asks the window to close, ending Run after the current frame.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		failing:  make(map[string]bool),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.display == nil {
		e.display = settings.NewDisplay()
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		if e.camera != nil && e.window.Height() > 0 {
			e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
		}
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Display() settings.Display {
	return e.display
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(e.lastFrame).Seconds())
		e.lastFrame = now

		e.frame(dt)

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

// resize is registered as the window's framebuffer resize callback.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.camera != nil {
		e.camera.SetAspect(float32(width) / float32(height))
	}
}

// frame runs one full frame and reports whether it was presented.
// A frame whose surface image cannot be acquired is skipped.
func (e *engine) frame(dt float32) bool {
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.renderer == nil {
		return false
	}

	if e.camera != nil {
		e.camera.Update()
		e.renderer.SetViewProjection(e.camera.ViewProjection())
	}

	if err := e.renderer.BeginFrame(); err != nil {
		common.Logger().Debug("frame skipped", "error", err)
		return false
	}

	snapshot := e.display.Snapshot()
	for _, r := range e.renderables {
		err := r.Render(snapshot)
		switch {
		case err != nil && !e.failing[r.Label()]:
			e.failing[r.Label()] = true
			common.Logger().Warn("render failed, retrying every frame", "renderable", r.Label(), "error", err)
		case err == nil && e.failing[r.Label()]:
			delete(e.failing, r.Label())
			common.Logger().Info("render recovered", "renderable", r.Label())
		}
	}

	e.renderer.EndFrame()
	e.renderer.Present()

	if e.profilingEnabled.Load() && e.profiler != nil {
		e.profiler.Tick()
	}
	return true
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Add(r Renderable) {
	e.renderables = append(e.renderables, r)
}

func (e *engine) Remove(label string) {
	e.renderables = slices.DeleteFunc(e.renderables, func(r Renderable) bool {
		return r.Label() == label
	})
	delete(e.failing, label)
}

func (e *engine) Renderables() []Renderable {
	return slices.Clone(e.renderables)
}
