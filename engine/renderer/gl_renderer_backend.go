package renderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLContext is the part of a window the GL backend needs. The context must be current on the
// calling thread before the backend is created.
type GLContext interface {
	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// SwapInterval sets the number of vertical blanks to wait per swap (0 = uncapped, 1 = vsync).
	SwapInterval(interval int)
}

// glStateSnapshot is the fixed-function state saved by PushState.
type glStateSnapshot struct {
	depthTest  bool
	blend      bool
	lineSmooth bool
	blendSrc   int32
	blendDst   int32
	lineWidth  float32
}

type glRendererBackendImpl struct {
	mu      *sync.Mutex
	context GLContext

	program      uint32
	vao          uint32
	viewProjLoc  int32
	colorLoc     int32
	width        int32
	height       int32
	clearColor   common.Color
	presentMode  PresentMode
	inFrame      bool
	vertexCounts *handleTable[int]
	saved        []glStateSnapshot
}

var _ RendererBackend = &glRendererBackendImpl{}

func newGLRendererBackend(ctx GLContext) (*glRendererBackendImpl, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	b := &glRendererBackendImpl{
		mu:           &sync.Mutex{},
		context:      ctx,
		clearColor:   common.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		presentMode:  PresentModeVSync,
		vertexCounts: newHandleTable[int](),
	}

	program, err := linkProgram(lineVertexGLSL, lineFragmentGLSL)
	if err != nil {
		return nil, err
	}
	b.program = program
	b.viewProjLoc = gl.GetUniformLocation(program, gl.Str("view_proj\x00"))
	b.colorLoc = gl.GetUniformLocation(program, gl.Str("color\x00"))

	gl.GenVertexArrays(1, &b.vao)

	gl.UseProgram(b.program)
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(b.viewProjLoc, 1, false, &ident[0])

	common.Logger().Info("gl backend ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return b, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func (b *glRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = int32(width), int32(height)
	gl.Viewport(0, 0, b.width, b.height)
}

func (b *glRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
	if mode == PresentModeUncapped {
		b.context.SwapInterval(0)
		return
	}
	b.context.SwapInterval(1)
}

func (b *glRendererBackendImpl) SetViewProjection(m mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.viewProjLoc, 1, false, &m[0])
}

// CreateBuffer generates a GL buffer name and binds it once so glIsBuffer recognizes it.
func (b *glRendererBackendImpl) CreateBuffer() (BufferHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var name uint32
	gl.GenBuffers(1, &name)
	if name == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no name: %w", ErrNoDevice)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, name)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	h := BufferHandle(name)
	b.vertexCounts.insert(h, 0)
	return h, nil
}

func (b *glRendererBackendImpl) UploadStatic(h BufferHandle, vertices []mgl32.Vec3) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.live(h) {
		return fmt.Errorf("upload to buffer %d: %w", h, ErrDeadHandle)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexStride, gl.Ptr(vertices), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.vertexCounts.set(h, len(vertices))
	return nil
}

func (b *glRendererBackendImpl) IsLiveResource(h BufferHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live(h)
}

// live reports whether h is tracked and still a buffer in the current context. Caller must hold the mutex.
func (b *glRendererBackendImpl) live(h BufferHandle) bool {
	if h == 0 {
		return false
	}
	if _, ok := b.vertexCounts.get(h); !ok {
		return false
	}
	return gl.IsBuffer(uint32(h))
}

func (b *glRendererBackendImpl) ReleaseBuffer(h BufferHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.vertexCounts.remove(h); ok {
		name := uint32(h)
		gl.DeleteBuffers(1, &name)
	}
}

// PushState saves depth, blend and line state, then enables flags, matching
// glPushAttrib(GL_DEPTH_BUFFER_BIT | GL_COLOR_BUFFER_BIT) semantics.
func (b *glRendererBackendImpl) PushState(flags StateFlags) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := glStateSnapshot{
		depthTest:  gl.IsEnabled(gl.DEPTH_TEST),
		blend:      gl.IsEnabled(gl.BLEND),
		lineSmooth: gl.IsEnabled(gl.LINE_SMOOTH),
	}
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &snap.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &snap.blendDst)
	gl.GetFloatv(gl.LINE_WIDTH, &snap.lineWidth)
	b.saved = append(b.saved, snap)

	if flags.Has(StateDepthTest) {
		gl.Enable(gl.DEPTH_TEST)
	}
	if flags.Has(StateBlend) {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	if flags.Has(StateLineSmooth) {
		gl.Enable(gl.LINE_SMOOTH)
		gl.Hint(gl.LINE_SMOOTH_HINT, gl.NICEST)
	}
}

func (b *glRendererBackendImpl) PopState() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.saved) == 0 {
		common.Logger().Warn("gl backend: PopState without matching PushState")
		return
	}
	snap := b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]

	setCap(gl.DEPTH_TEST, snap.depthTest)
	setCap(gl.BLEND, snap.blend)
	setCap(gl.LINE_SMOOTH, snap.lineSmooth)
	gl.BlendFunc(uint32(snap.blendSrc), uint32(snap.blendDst))
	gl.LineWidth(snap.lineWidth)
}

func setCap(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
		return
	}
	gl.Disable(capability)
}

func (b *glRendererBackendImpl) DrawLineSegments(h BufferHandle, r common.DrawRange, width float32, color common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Empty() {
		return
	}
	count, ok := b.vertexCounts.get(h)
	if !ok {
		return
	}
	if r.First < 0 || r.End() > count {
		common.Logger().Warn("gl backend: draw range out of bounds", "buffer", h, "first", r.First, "count", r.Count, "vertices", count)
		return
	}

	gl.UseProgram(b.program)
	gl.Uniform4f(b.colorLoc, color.R, color.G, color.B, color.A)
	gl.LineWidth(width)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.DrawArrays(gl.LINES, int32(r.First), int32(r.Count))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (b *glRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inFrame {
		return fmt.Errorf("previous frame not yet presented")
	}
	b.inFrame = true
	gl.ClearColor(b.clearColor.R, b.clearColor.G, b.clearColor.B, b.clearColor.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *glRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	gl.Flush()
}

func (b *glRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return
	}
	b.context.SwapBuffers()
	b.inFrame = false
}

func (b *glRendererBackendImpl) InvalidateResources() {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.vertexCounts.len()
	b.deleteBuffers()
	common.Logger().Info("gl backend: invalidated vertex buffers", "count", n)
}

func (b *glRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.deleteBuffers()
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}

// deleteBuffers deletes every tracked buffer name. Caller must hold the mutex.
func (b *glRendererBackendImpl) deleteBuffers() {
	b.vertexCounts.drain(func(h BufferHandle, _ int) {
		name := uint32(h)
		gl.DeleteBuffers(1, &name)
	})
}
