package scene_grid

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/bbox"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/renderer"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// drawState is enabled around every grid draw and restored afterwards.
const drawState = renderer.StateDepthTest | renderer.StateBlend | renderer.StateLineSmooth

type sceneGrid struct {
	mu      *sync.Mutex
	backend renderer.LineBackend

	label     string
	grid      grid.Grid
	baseColor common.Color
	selected  atomic.Bool

	// buffer is zero while no GPU buffer is held.
	buffer      renderer.BufferHandle
	vertexCount int
	builds      int
}

// SceneGrid is a renderable wireframe of a Grid.
//
// The vertex buffer is built lazily on the first Render after construction or SetGrid, and
// rebuilt whenever the backend reports the held buffer as no longer live.
// All methods except Selected/SetSelected must be called on the graphics thread.
type SceneGrid interface {
	// SetGrid replaces the grid and releases the current buffer. The rebuild happens on the next Render.
	//
	// Parameters:
	//   - g: the new grid
	SetGrid(g grid.Grid)

	// Grid returns the current grid.
	Grid() grid.Grid

	// Render builds the buffer if needed, then draws the bounding box and the face lines
	// selected by the display mode, unless the provider hides the grid.
	//
	// Parameters:
	//   - p: the display settings for this frame
	//
	// Returns:
	//   - error: an error if the buffer could not be created or uploaded; the next Render retries
	Render(p settings.Provider) error

	// RenderForPicker draws exactly what Render draws.
	//
	// Parameters:
	//   - p: the display settings for this frame
	//
	// Returns:
	//   - error: see Render
	RenderForPicker(p settings.Provider) error

	// BoundingBox returns the world-space bounds of the grid.
	//
	// Parameters:
	//   - transform: the model-to-world matrix
	//
	// Returns:
	//   - r3.Box: the axis-aligned bounds
	BoundingBox(transform mgl32.Mat4) r3.Box

	// Centroid returns the world-space center of the grid.
	//
	// Parameters:
	//   - transform: the model-to-world matrix
	//
	// Returns:
	//   - mgl32.Vec3: the transformed box center
	Centroid(transform mgl32.Mat4) mgl32.Vec3

	// Selected reports whether the grid is drawn with the selection highlight.
	Selected() bool

	// SetSelected sets the selection flag. Safe to call from any goroutine.
	SetSelected(selected bool)

	// Label returns the name used in log messages.
	Label() string

	// VertexCount returns the vertex count of the held buffer, or 0 when none is held.
	VertexCount() int

	// Builds returns how many times a buffer has been built.
	Builds() int

	// Release destroys the held buffer. A later Render builds a new one.
	Release()
}

var _ SceneGrid = &sceneGrid{}

// NewSceneGrid creates a SceneGrid drawing through backend.
// No GPU work happens until the first Render.
//
// Parameters:
//   - backend: the line backend that owns the vertex buffer
//   - options: functional options to configure the grid
//
// Returns:
//   - SceneGrid: the new renderable
func NewSceneGrid(backend renderer.LineBackend, options ...SceneGridBuilderOption) SceneGrid {
	s := &sceneGrid{
		mu:        &sync.Mutex{},
		backend:   backend,
		label:     "grid",
		grid:      grid.New([3]int{1, 1, 1}, 1, mgl32.Vec3{}),
		baseColor: DefaultBaseColor,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sceneGrid) SetGrid(g grid.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid = g
	s.releaseBuffer()
}

func (s *sceneGrid) Grid() grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

func (s *sceneGrid) Render(p settings.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureBuffer(); err != nil {
		return err
	}
	if !p.ShowGrid() {
		return nil
	}

	cmds := Plan(s.vertexCount, p.GridMode(), s.selected.Load(), p.SelectionColor(), s.baseColor)
	renderer.Scoped(s.backend, drawState, func() {
		for _, c := range cmds {
			s.backend.DrawLineSegments(s.buffer, c.Range, c.Width, c.Color)
		}
	})
	return nil
}

// RenderForPicker shares the blended visual draw with Render. Picking against translucent
// lines is only as reliable as the picker's color read-back.
func (s *sceneGrid) RenderForPicker(p settings.Provider) error {
	return s.Render(p)
}

func (s *sceneGrid) BoundingBox(transform mgl32.Mat4) r3.Box {
	return bbox.Of(s.Grid(), transform)
}

func (s *sceneGrid) Centroid(transform mgl32.Mat4) mgl32.Vec3 {
	return bbox.Centroid(s.Grid(), transform)
}

func (s *sceneGrid) Selected() bool {
	return s.selected.Load()
}

func (s *sceneGrid) SetSelected(selected bool) {
	s.selected.Store(selected)
}

func (s *sceneGrid) Label() string {
	return s.label
}

func (s *sceneGrid) VertexCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vertexCount
}

func (s *sceneGrid) Builds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds
}

func (s *sceneGrid) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseBuffer()
}

// ensureBuffer makes s.buffer a live handle holding the current grid's wireframe.
// Must be called with s.mu held.
func (s *sceneGrid) ensureBuffer() error {
	if s.buffer != 0 {
		if s.backend.IsLiveResource(s.buffer) {
			return nil
		}
		common.Logger().Debug("grid buffer lost", "grid", s.label, "handle", s.buffer)
		s.releaseBuffer()
	}

	wf := grid.Generate(s.grid)

	h, err := s.backend.CreateBuffer()
	if err != nil {
		return fmt.Errorf("grid %q: create buffer: %w", s.label, err)
	}
	if err := s.backend.UploadStatic(h, wf.Vertices); err != nil {
		s.backend.ReleaseBuffer(h)
		common.Logger().Warn("grid upload failed", "grid", s.label, "error", err)
		return fmt.Errorf("grid %q: upload %d vertices: %w", s.label, len(wf.Vertices), err)
	}

	s.buffer = h
	s.vertexCount = len(wf.Vertices)
	s.builds++
	common.Logger().Debug("grid buffer built", "grid", s.label, "handle", h, "vertices", s.vertexCount, "dims", s.grid.String())
	return nil
}

// releaseBuffer drops the held buffer, if any. Must be called with s.mu held.
func (s *sceneGrid) releaseBuffer() {
	if s.buffer == 0 {
		return
	}
	s.backend.ReleaseBuffer(s.buffer)
	common.Logger().Debug("grid buffer released", "grid", s.label, "handle", s.buffer)
	s.buffer = 0
	s.vertexCount = 0
}
