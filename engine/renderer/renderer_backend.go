package renderer

import (
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeGL selects the OpenGL 3.3 core rendering backend.
	BackendTypeGL
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeGL:
		return "gl"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4. The GL backend relies on the window's default framebuffer
// and ignores this value.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// BufferHandle names a vertex buffer owned by a backend. The zero handle never refers to a live buffer.
type BufferHandle uint32

// StateFlags is a set of fixed-function states enabled around a group of draws.
type StateFlags uint8

const (
	// StateDepthTest enables depth testing against the frame's depth buffer.
	StateDepthTest StateFlags = 1 << iota

	// StateBlend enables src-alpha / one-minus-src-alpha blending.
	StateBlend

	// StateLineSmooth requests anti-aliased lines where the backend supports it.
	StateLineSmooth
)

// Has reports whether every flag in other is set in f.
func (f StateFlags) Has(other StateFlags) bool {
	return f&other == other
}

// LineBackend is the graphics surface needed to draw static line-list geometry.
// Every method must be called on the thread that owns the graphics context.
type LineBackend interface {
	// CreateBuffer reserves a new vertex buffer handle. The buffer has no storage until UploadStatic.
	//
	// Returns:
	//   - BufferHandle: the new handle, never zero
	//   - error: an error if the backend cannot allocate a handle
	CreateBuffer() (BufferHandle, error)

	// UploadStatic replaces the contents of the buffer with the given vertices.
	// The data is expected to be written once and drawn many times.
	//
	// Parameters:
	//   - h: a handle returned by CreateBuffer
	//   - vertices: the vertex positions to upload
	//
	// Returns:
	//   - error: an error if h is not live or the upload fails
	UploadStatic(h BufferHandle, vertices []mgl32.Vec3) error

	// IsLiveResource reports whether h still refers to a buffer owned by the backend.
	// Handles stop being live when released or when the backend loses its device or context.
	//
	// Parameters:
	//   - h: the handle to check
	//
	// Returns:
	//   - bool: true if h can be drawn from
	IsLiveResource(h BufferHandle) bool

	// ReleaseBuffer destroys the buffer behind h. Releasing a dead handle is a no-op.
	//
	// Parameters:
	//   - h: the handle to release
	ReleaseBuffer(h BufferHandle)

	// DrawLineSegments draws the vertices in r as independent segments (line-list topology).
	//
	// Parameters:
	//   - h: the vertex buffer to draw from
	//   - r: the vertex range to draw
	//   - width: the line width in pixels, where supported
	//   - color: the straight-alpha line color
	DrawLineSegments(h BufferHandle, r common.DrawRange, width float32, color common.Color)

	// PushState saves the current fixed-function state and enables flags on top of it.
	//
	// Parameters:
	//   - flags: the states to enable
	PushState(flags StateFlags)

	// PopState restores the state saved by the matching PushState.
	PopState()
}

// RendererBackend is the top-level backend interface for the Renderer: line drawing plus the frame
// and surface lifecycle.
type RendererBackend interface {
	LineBackend

	// ConfigureSurface (re)creates the swapchain and depth targets for the given pixel size.
	ConfigureSurface(width, height int)

	// SetPresentMode changes the present mode used at the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetViewProjection sets the matrix applied to every vertex drawn afterwards.
	SetViewProjection(m mgl32.Mat4)

	// BeginFrame acquires the next surface image and opens the frame's render pass.
	BeginFrame() error

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present shows the submitted frame.
	Present()

	// InvalidateResources drops every buffer the backend has handed out, as happens when the
	// device or context is lost. Outstanding handles stop being live.
	InvalidateResources()

	// Release destroys every GPU object owned by the backend.
	Release()
}
