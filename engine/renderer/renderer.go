package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoDevice is returned when the backend has no usable device or context.
	ErrNoDevice = errors.New("no graphics device")

	// ErrDeadHandle is returned when operating on a buffer handle that is not live.
	ErrDeadHandle = errors.New("buffer handle is not live")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	maxDrawsPerFrame     int

	frames int
}

// Renderer defines the interface for the rendering system.
//
// The Renderer is a LineBackend, so renderables draw through it directly, and it owns the
// frame lifecycle (BeginFrame, EndFrame, Present) and surface configuration for the window.
// The concrete GPU API is selected at construction by RendererBackendType.
type Renderer interface {
	LineBackend

	// BackendType returns the GPU API this renderer draws with.
	//
	// Returns:
	//   - RendererBackendType: the backend in use
	BackendType() RendererBackendType

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetViewProjection sets the camera matrix applied to every subsequent draw.
	//
	// Parameters:
	//   - m: the combined projection * view matrix (OpenGL clip conventions)
	SetViewProjection(m mgl32.Mat4)

	// BeginFrame acquires the next surface image, clears it, and begins recording draws.
	//
	// Returns:
	//   - error: an error if the surface image cannot be acquired; skip the frame on error
	BeginFrame() error

	// EndFrame finishes recording and submits the frame's draws.
	EndFrame()

	// Present shows the most recently submitted frame.
	Present()

	// Frames returns the number of frames presented so far.
	//
	// Returns:
	//   - int: the presented frame count
	Frames() int

	// InvalidateResources drops every vertex buffer, simulating device or context loss.
	// Renderables rebuild their buffers on the next frame via their liveness check.
	InvalidateResources()

	// Release destroys the backend and every GPU object it owns.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and options.
// The window must already be created with a client API matching backendType: no API for
// BackendTypeWGPU, an OpenGL 3.3 core context for BackendTypeGL.
//
// Parameters:
//   - backendType: the GPU API to use
//   - w: the window to present to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the backend cannot be initialized
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:               &sync.Mutex{},
		backendType:      backendType,
		maxDrawsPerFrame: 1024,
	}

	// Apply options first so config flags are available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeGL:
		if w.ClientAPI() != window.ClientAPIOpenGL {
			return nil, fmt.Errorf("gl backend: window created with client api %s: %w", w.ClientAPI(), ErrNoDevice)
		}
		b, err := newGLRendererBackend(w)
		if err != nil {
			return nil, fmt.Errorf("gl backend: %w", err)
		}
		r.backend = b
	case BackendTypeWGPU:
		msaa := MSAA4x
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		desc := w.SurfaceDescriptor()
		if desc == nil {
			return nil, fmt.Errorf("wgpu backend: window has no surface: %w", ErrNoDevice)
		}
		r.backend = newWGPURendererBackend(desc, r.forceFallbackAdapter, msaa, r.maxDrawsPerFrame)
	default:
		return nil, fmt.Errorf("unsupported backend type %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(w.Width(), w.Height())
	common.Logger().Info("renderer created", "backend", backendType.String(), "width", w.Width(), "height", w.Height())
	return r, nil
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetViewProjection(m mgl32.Mat4) {
	r.backend.SetViewProjection(m)
}

func (r *renderer) CreateBuffer() (BufferHandle, error) {
	return r.backend.CreateBuffer()
}

func (r *renderer) UploadStatic(h BufferHandle, vertices []mgl32.Vec3) error {
	return r.backend.UploadStatic(h, vertices)
}

func (r *renderer) IsLiveResource(h BufferHandle) bool {
	return r.backend.IsLiveResource(h)
}

func (r *renderer) ReleaseBuffer(h BufferHandle) {
	r.backend.ReleaseBuffer(h)
}

func (r *renderer) DrawLineSegments(h BufferHandle, rng common.DrawRange, width float32, color common.Color) {
	r.backend.DrawLineSegments(h, rng, width, color)
}

func (r *renderer) PushState(flags StateFlags) {
	r.backend.PushState(flags)
}

func (r *renderer) PopState() {
	r.backend.PopState()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

func (r *renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) InvalidateResources() {
	r.backend.InvalidateResources()
}

func (r *renderer) Release() {
	r.backend.Release()
}
