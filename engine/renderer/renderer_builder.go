package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the wgpu backend.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
// Multisampling is what smooths lines under WebGPU, which has no line smoothing state.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithMaxDrawsPerFrame sets how many DrawLineSegments calls the wgpu backend can record per frame.
// Each draw takes one 256-byte uniform slot. Values <= 0 keep the default of 1024.
//
// Parameters:
//   - n: the per-frame draw capacity
//
// Returns:
//   - RendererBuilderOption: a function that applies the capacity option to a renderer
func WithMaxDrawsPerFrame(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.maxDrawsPerFrame = n
		}
	}
}
