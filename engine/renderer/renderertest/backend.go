// Package renderertest provides an in-memory renderer.LineBackend that records every call,
// for testing renderables without a GPU.
package renderertest

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Op names a recorded backend call.
type Op string

const (
	OpCreate  Op = "create"
	OpUpload  Op = "upload"
	OpRelease Op = "release"
	OpDraw    Op = "draw"
	OpPush    Op = "push"
	OpPop     Op = "pop"
)

// Call is one recorded backend call. Fields not used by Op are zero.
type Call struct {
	Op     Op
	Handle renderer.BufferHandle
	Range  common.DrawRange
	Width  float32
	Color  common.Color
	Flags  renderer.StateFlags
	// Vertices is the number of vertices passed to an upload.
	Vertices int
}

// Backend is a recording LineBackend. The zero value is not usable; call New.
type Backend struct {
	next    renderer.BufferHandle
	buffers map[renderer.BufferHandle][]mgl32.Vec3
	depth   int

	// Calls holds every call in order.
	Calls []Call

	// CreateErr and UploadErr, when set, are returned by the next CreateBuffer or UploadStatic
	// calls until cleared.
	CreateErr error
	UploadErr error
}

var _ renderer.LineBackend = &Backend{}

// New returns an empty recording backend.
func New() *Backend {
	return &Backend{buffers: make(map[renderer.BufferHandle][]mgl32.Vec3)}
}

func (b *Backend) CreateBuffer() (renderer.BufferHandle, error) {
	if b.CreateErr != nil {
		return 0, b.CreateErr
	}
	b.next++
	b.buffers[b.next] = nil
	b.Calls = append(b.Calls, Call{Op: OpCreate, Handle: b.next})
	return b.next, nil
}

func (b *Backend) UploadStatic(h renderer.BufferHandle, vertices []mgl32.Vec3) error {
	if b.UploadErr != nil {
		return b.UploadErr
	}
	if _, ok := b.buffers[h]; !ok {
		return fmt.Errorf("upload to %d: %w", h, renderer.ErrDeadHandle)
	}
	b.buffers[h] = slices.Clone(vertices)
	b.Calls = append(b.Calls, Call{Op: OpUpload, Handle: h, Vertices: len(vertices)})
	return nil
}

func (b *Backend) IsLiveResource(h renderer.BufferHandle) bool {
	_, ok := b.buffers[h]
	return ok
}

func (b *Backend) ReleaseBuffer(h renderer.BufferHandle) {
	if _, ok := b.buffers[h]; !ok {
		return
	}
	delete(b.buffers, h)
	b.Calls = append(b.Calls, Call{Op: OpRelease, Handle: h})
}

func (b *Backend) DrawLineSegments(h renderer.BufferHandle, r common.DrawRange, width float32, color common.Color) {
	b.Calls = append(b.Calls, Call{Op: OpDraw, Handle: h, Range: r, Width: width, Color: color})
}

func (b *Backend) PushState(flags renderer.StateFlags) {
	b.depth++
	b.Calls = append(b.Calls, Call{Op: OpPush, Flags: flags})
}

func (b *Backend) PopState() {
	b.depth--
	b.Calls = append(b.Calls, Call{Op: OpPop})
}

// Kill drops h without recording a release, as a lost context would.
func (b *Backend) Kill(h renderer.BufferHandle) {
	delete(b.buffers, h)
}

// KillAll drops every buffer without recording releases.
func (b *Backend) KillAll() {
	clear(b.buffers)
}

// Vertices returns the data last uploaded to h.
func (b *Backend) Vertices(h renderer.BufferHandle) ([]mgl32.Vec3, bool) {
	v, ok := b.buffers[h]
	return v, ok
}

// LiveCount returns the number of live buffers.
func (b *Backend) LiveCount() int {
	return len(b.buffers)
}

// Depth returns the current push/pop nesting. Balanced callers leave it at zero.
func (b *Backend) Depth() int {
	return b.depth
}

// Count returns how many calls of op were recorded.
func (b *Backend) Count(op Op) int {
	n := 0
	for _, c := range b.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Draws returns the recorded draw calls in order.
func (b *Backend) Draws() []Call {
	var draws []Call
	for _, c := range b.Calls {
		if c.Op == OpDraw {
			draws = append(draws, c)
		}
	}
	return draws
}

// Reset forgets the recorded calls but keeps the buffers.
func (b *Backend) Reset() {
	b.Calls = nil
}
