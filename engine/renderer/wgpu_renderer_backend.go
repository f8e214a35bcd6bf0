package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// lineUniformSize is the byte size of LineUniforms in lineShaderWGSL (mat4x4 + vec4).
	lineUniformSize = 80

	// lineUniformStride is the dynamic offset step; WebGPU's default minUniformBufferOffsetAlignment.
	lineUniformStride = 256

	vertexStride = 12
)

// glToWGPUDepth remaps clip-space z from OpenGL's [-w, w] to WebGPU's [0, w] so mgl32 projections can be used unchanged.
var glToWGPUDepth = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// lineUniforms mirrors LineUniforms in lineShaderWGSL.
type lineUniforms struct {
	ViewProj mgl32.Mat4
	Color    [4]float32
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	// Line pipelines keyed by the depth-test and blend bits of StateFlags.
	shaderModule    *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pipelines       map[StateFlags]*wgpu.RenderPipeline

	// Per-draw uniforms live in one buffer addressed by dynamic offset; slots reset every frame.
	uniformBuffer  *wgpu.Buffer
	uniformGroup   *wgpu.BindGroup
	uniformSlots   int
	nextSlot       int
	overflowLogged bool
	viewProj       mgl32.Mat4

	buffers *handleTable[*wgpuLineBuffer]
	state   stateStack

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// wgpuLineBuffer is the storage behind a BufferHandle. buffer is nil until the first upload.
type wgpuLineBuffer struct {
	buffer      *wgpu.Buffer
	vertexCount int
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, maxDraws int) *wgpuRendererBackendImpl {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:           &sync.Mutex{},
		instance:     wgpu.CreateInstance(nil),
		presentMode:  wgpu.PresentModeFifo,
		sampleCount:  sampleCount,
		clearColor:   wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		pipelines:    make(map[StateFlags]*wgpu.RenderPipeline),
		uniformSlots: maxDraws,
		viewProj:     glToWGPUDepth,
		buffers:      newHandleTable[*wgpuLineBuffer](),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Grid View Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.initLineResources(); err != nil {
		panic(fmt.Sprintf("failed to create line resources: %v", err))
	}

	common.Logger().Info("wgpu backend ready", "msaa", uint32(sampleCount), "fallback", forceFallbackAdapter)
	return w
}

// initLineResources creates the shader, layouts and per-draw uniform buffer shared by every line pipeline.
func (b *wgpuRendererBackendImpl) initLineResources() error {
	var err error
	b.shaderModule, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Line Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: lineShaderWGSL,
		},
	})
	if err != nil {
		return err
	}

	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Line Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   lineUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create line bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Line Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return err
	}

	b.uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Line Uniform Buffer",
		Size:  uint64(b.uniformSlots) * lineUniformStride,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	b.uniformGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Line Uniform Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.uniformBuffer,
				Offset:  0,
				Size:    lineUniformSize,
			},
		},
	})
	return err
}

// linePipeline returns the pipeline for the depth and blend bits of flags, creating it on first use.
// Caller must hold the mutex and the surface must be configured.
func (b *wgpuRendererBackendImpl) linePipeline(flags StateFlags) (*wgpu.RenderPipeline, error) {
	key := flags & (StateDepthTest | StateBlend)
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	if b.surfaceFormat == nil {
		return nil, errors.New("surface is not configured")
	}

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if key.Has(StateBlend) {
		target.Blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	}

	depthCompare := wgpu.CompareFunctionLess
	if !key.Has(StateDepthTest) {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("Line Render Pipeline (depth=%t blend=%t)", key.Has(StateDepthTest), key.Has(StateBlend)),
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.shaderModule,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: key.Has(StateDepthTest),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	b.pipelines[key] = created
	return created, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	format := capabilities.Formats[0]
	if b.surfaceFormat != nil && *b.surfaceFormat != format {
		b.releasePipelines()
	}
	b.surfaceFormat = &format

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetViewProjection(m mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewProj = glToWGPUDepth.Mul4(m)
}

func (b *wgpuRendererBackendImpl) CreateBuffer() (BufferHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return 0, ErrNoDevice
	}
	return b.buffers.reserve(), nil
}

func (b *wgpuRendererBackendImpl) UploadStatic(h BufferHandle, vertices []mgl32.Vec3) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.buffers.get(h)
	if !ok {
		return fmt.Errorf("upload to buffer %d: %w", h, ErrDeadHandle)
	}
	if entry != nil && entry.buffer != nil {
		entry.buffer.Release()
	}

	data := common.SliceToBytes(vertices)
	if len(data) == 0 {
		b.buffers.set(h, &wgpuLineBuffer{})
		return nil
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("Line Vertex Buffer %d", h),
		Size:             common.AlignUp(uint64(len(data)), 4),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		b.buffers.set(h, &wgpuLineBuffer{})
		return fmt.Errorf("create vertex buffer %d: %w", h, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.buffers.set(h, &wgpuLineBuffer{buffer: buf, vertexCount: len(vertices)})
	return nil
}

func (b *wgpuRendererBackendImpl) IsLiveResource(h BufferHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.buffers.get(h)
	return ok
}

func (b *wgpuRendererBackendImpl) ReleaseBuffer(h BufferHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.buffers.remove(h); ok && entry != nil && entry.buffer != nil {
		entry.buffer.Release()
	}
}

func (b *wgpuRendererBackendImpl) PushState(flags StateFlags) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.push(flags)
}

func (b *wgpuRendererBackendImpl) PopState() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.state.pop(); !ok {
		common.Logger().Warn("wgpu backend: PopState without matching PushState")
	}
}

// DrawLineSegments records a line-list draw into the current frame's render pass.
// WebGPU rasterizes lines one pixel wide, so width is accepted and ignored.
func (b *wgpuRendererBackendImpl) DrawLineSegments(h BufferHandle, r common.DrawRange, width float32, color common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || r.Empty() {
		return
	}
	entry, ok := b.buffers.get(h)
	if !ok || entry == nil || entry.buffer == nil {
		return
	}
	if r.First < 0 || r.End() > entry.vertexCount {
		common.Logger().Warn("wgpu backend: draw range out of bounds", "buffer", h, "first", r.First, "count", r.Count, "vertices", entry.vertexCount)
		return
	}
	if b.nextSlot >= b.uniformSlots {
		if !b.overflowLogged {
			common.Logger().Warn("wgpu backend: per-frame draw limit reached, dropping draws", "limit", b.uniformSlots)
			b.overflowLogged = true
		}
		return
	}

	p, err := b.linePipeline(b.state.current)
	if err != nil {
		common.Logger().Warn("wgpu backend: line pipeline unavailable", "err", err)
		return
	}

	offset := uint64(b.nextSlot) * lineUniformStride
	b.nextSlot++
	u := lineUniforms{ViewProj: b.viewProj, Color: color.Array()}
	b.queue.WriteBuffer(b.uniformBuffer, offset, common.StructToBytes(&u))

	b.framePass.SetPipeline(p)
	b.framePass.SetBindGroup(0, b.uniformGroup, []uint32{uint32(offset)})
	b.framePass.SetVertexBuffer(0, entry.buffer, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(r.Count), 1, uint32(r.First), 0)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A previous frame's surface texture is still held; acquiring another would fail validation.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.nextSlot = 0
	b.overflowLogged = false

	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		common.Logger().Warn("wgpu backend: failed to finish frame", "err", err)
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) InvalidateResources() {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.buffers.len()
	b.releaseBuffers()
	common.Logger().Info("wgpu backend: invalidated vertex buffers", "count", n)
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseBuffers()
	b.releasePipelines()
	b.releaseTargets()
	if b.uniformGroup != nil {
		b.uniformGroup.Release()
		b.uniformGroup = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
		b.shaderModule = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// releaseBuffers destroys every vertex buffer. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseBuffers() {
	b.buffers.drain(func(_ BufferHandle, entry *wgpuLineBuffer) {
		if entry != nil && entry.buffer != nil {
			entry.buffer.Release()
		}
	})
}

// releasePipelines drops the cached line pipelines. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releasePipelines() {
	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
}

// releaseTargets drops the MSAA and depth attachments. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}
