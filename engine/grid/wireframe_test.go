package grid

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexCount(t *testing.T) {
	tests := []struct {
		dim  [3]int
		want int
	}{
		{[3]int{0, 0, 0}, 24},
		{[3]int{1, 1, 1}, 24},
		{[3]int{2, 1, 1}, 32},
		{[3]int{2, 2, 2}, 48},
		{[3]int{3, 0, 5}, 24 + 8*(2+0+4)},
		{[3]int{10, 20, 30}, 24 + 8*(9+19+29)},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.dim), func(t *testing.T) {
			assert.Equal(t, tt.want, VertexCount(tt.dim))

			wf := Generate(New(tt.dim, 0.5, mgl32.Vec3{1, -2, 3}))
			assert.Len(t, wf.Vertices, tt.want)
			assert.Equal(t, FaceSegmentCount(tt.dim), (len(wf.Vertices)-BoxVertexCount)/2)
		})
	}
}

func TestGenerateRanges(t *testing.T) {
	wf := Generate(New([3]int{3, 4, 5}, 1, mgl32.Vec3{}))

	assert.Equal(t, 0, wf.Box.First)
	assert.Equal(t, BoxVertexCount, wf.Box.Count)
	assert.Equal(t, BoxVertexCount, wf.MinFaces.First)
	assert.Equal(t, wf.MinFaces.Count, wf.MaxFaces.Count)
	assert.Equal(t, wf.MinFaces.End(), wf.MaxFaces.First)
	assert.Equal(t, len(wf.Vertices), wf.MaxFaces.End())
	assert.Equal(t, len(wf.Vertices)-BoxVertexCount, wf.Faces().Count)
	assert.Equal(t, len(wf.Vertices)/2, wf.Segments())
}

func TestGenerateBoxOrder(t *testing.T) {
	wf := Generate(New([3]int{2, 1, 1}, 1, mgl32.Vec3{}))

	want := []mgl32.Vec3{
		{0, 0, 0}, {0, 0, 1},
		{0, 0, 1}, {0, 1, 1},
		{0, 1, 1}, {0, 1, 0},
		{0, 1, 0}, {0, 0, 0},
		{2, 0, 0}, {2, 0, 1},
		{2, 0, 1}, {2, 1, 1},
		{2, 1, 1}, {2, 1, 0},
		{2, 1, 0}, {2, 0, 0},
		{0, 0, 0}, {2, 0, 0},
		{0, 0, 1}, {2, 0, 1},
		{0, 1, 1}, {2, 1, 1},
		{0, 1, 0}, {2, 1, 0},
	}
	if diff := cmp.Diff(want, wf.Vertices[:BoxVertexCount]); diff != "" {
		t.Errorf("box vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateBoxTracesEdges(t *testing.T) {
	g := New([3]int{3, 2, 4}, 0.75, mgl32.Vec3{-1, 2, 0.5})
	wf := Generate(g)
	lo, hi := g.Min(), g.Max()

	type edge struct{ a, b mgl32.Vec3 }
	key := func(a, b mgl32.Vec3) edge {
		if fmt.Sprint(b) < fmt.Sprint(a) {
			a, b = b, a
		}
		return edge{a, b}
	}

	corner := func(bits int) mgl32.Vec3 {
		c := lo
		for axis := 0; axis < 3; axis++ {
			if bits&(1<<axis) != 0 {
				c[axis] = hi[axis]
			}
		}
		return c
	}
	want := map[edge]bool{}
	for bits := 0; bits < 8; bits++ {
		for axis := 0; axis < 3; axis++ {
			if bits&(1<<axis) == 0 {
				want[key(corner(bits), corner(bits|1<<axis))] = true
			}
		}
	}
	require.Len(t, want, 12)

	got := map[edge]bool{}
	for i := 0; i < BoxVertexCount; i += 2 {
		got[key(wf.Vertices[i], wf.Vertices[i+1])] = true
	}
	assert.Equal(t, want, got)
}

func TestGenerateScenarioTwoByOneByOne(t *testing.T) {
	wf := Generate(New([3]int{2, 1, 1}, 1, mgl32.Vec3{}))

	require.Len(t, wf.Vertices, 32)

	minFaces := wf.Vertices[wf.MinFaces.First:wf.MinFaces.End()]
	wantMin := []mgl32.Vec3{
		{1, 0, 0}, {1, 1, 0}, // z = 0 face, line along y at x = 1
		{1, 0, 0}, {1, 0, 1}, // y = 0 face, line along z at x = 1
	}
	if diff := cmp.Diff(wantMin, minFaces); diff != "" {
		t.Errorf("min faces mismatch (-want +got):\n%s", diff)
	}

	maxFaces := wf.Vertices[wf.MaxFaces.First:wf.MaxFaces.End()]
	wantMax := []mgl32.Vec3{
		{1, 0, 1}, {1, 1, 1},
		{1, 1, 0}, {1, 1, 1},
	}
	if diff := cmp.Diff(wantMax, maxFaces); diff != "" {
		t.Errorf("max faces mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateZeroDim(t *testing.T) {
	pos := mgl32.Vec3{3, 4, 5}
	wf := Generate(New([3]int{0, 0, 0}, 2, pos))

	require.Len(t, wf.Vertices, BoxVertexCount)
	for i, v := range wf.Vertices {
		assert.Equal(t, pos, v, "vertex %d", i)
	}
	assert.True(t, wf.MinFaces.Empty())
	assert.True(t, wf.MaxFaces.Empty())
}

func TestGenerateFaceBlocksPinned(t *testing.T) {
	g := New([3]int{4, 3, 5}, 0.5, mgl32.Vec3{-2, 1, 7})
	wf := Generate(g)
	lo, hi := g.Min(), g.Max()

	pinned := func(a, b, bound mgl32.Vec3) bool {
		for axis := 0; axis < 3; axis++ {
			if a[axis] == bound[axis] && b[axis] == bound[axis] {
				return true
			}
		}
		return false
	}

	for i := wf.MinFaces.First; i < wf.MinFaces.End(); i += 2 {
		assert.True(t, pinned(wf.Vertices[i], wf.Vertices[i+1], lo), "min segment %d: %v-%v", i, wf.Vertices[i], wf.Vertices[i+1])
	}
	for i := wf.MaxFaces.First; i < wf.MaxFaces.End(); i += 2 {
		assert.True(t, pinned(wf.Vertices[i], wf.Vertices[i+1], hi), "max segment %d: %v-%v", i, wf.Vertices[i], wf.Vertices[i+1])
	}
}

func TestGenerateMirrorsFaces(t *testing.T) {
	g := New([3]int{3, 2, 2}, 1, mgl32.Vec3{})
	wf := Generate(g)
	hi := g.Max()

	// Each max-face segment is the min-face segment at the same index moved to the far bound.
	faceAxis := []int{}
	for range g.Dim[1] - 1 {
		faceAxis = append(faceAxis, 0)
	}
	for range g.Dim[2] - 1 {
		faceAxis = append(faceAxis, 0)
	}
	for range g.Dim[0] - 1 {
		faceAxis = append(faceAxis, 2)
	}
	for range g.Dim[1] - 1 {
		faceAxis = append(faceAxis, 2)
	}
	for range g.Dim[0] - 1 {
		faceAxis = append(faceAxis, 1)
	}
	for range g.Dim[2] - 1 {
		faceAxis = append(faceAxis, 1)
	}
	require.Len(t, faceAxis, wf.MinFaces.Count/2)

	for s, axis := range faceAxis {
		for end := 0; end < 2; end++ {
			minV := wf.Vertices[wf.MinFaces.First+2*s+end]
			maxV := wf.Vertices[wf.MaxFaces.First+2*s+end]
			minV[axis] = hi[axis]
			assert.Equal(t, minV, maxV, "segment %d end %d", s, end)
		}
	}
}

func TestGenerateInteriorPlanes(t *testing.T) {
	g := New([3]int{1, 3, 1}, 0.25, mgl32.Vec3{0, 10, 0})
	wf := Generate(g)

	// Only y has interior planes: x=min face lines along z, then z=min face lines along x.
	minFaces := wf.Vertices[wf.MinFaces.First:wf.MinFaces.End()]
	want := []mgl32.Vec3{
		{0, 10.25, 0}, {0, 10.25, 0.25},
		{0, 10.5, 0}, {0, 10.5, 0.25},
		{0, 10.25, 0}, {0.25, 10.25, 0},
		{0, 10.5, 0}, {0.25, 10.5, 0},
	}
	if diff := cmp.Diff(want, minFaces); diff != "" {
		t.Errorf("interior planes mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	g := New([3]int{7, 3, 9}, 0.1, mgl32.Vec3{0.3, -0.7, 1.1})

	first := Generate(g)
	second := Generate(g)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Generate is not deterministic (-first +second):\n%s", diff)
	}
}
