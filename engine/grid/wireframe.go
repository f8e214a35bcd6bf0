package grid

import (
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxVertexCount is the number of vertices used for the 12 bounding box edges.
const BoxVertexCount = 24

// Wireframe is the line-list expansion of a Grid. Every consecutive pair of Vertices is one
// independent segment.
//
// Layout:
//   - [0, 24): the 12 bounding box edges
//   - MinFaces: interior lines of the three faces touching Min()
//   - MaxFaces: interior lines of the three faces touching Max()
//
// MinFaces and MaxFaces always have the same length and MaxFaces directly follows MinFaces.
type Wireframe struct {
	// Vertices holds the segment endpoints in draw order.
	Vertices []mgl32.Vec3
	// Box addresses the bounding box edges.
	Box common.DrawRange
	// MinFaces addresses the interior lines on the x=min, z=min and y=min faces.
	MinFaces common.DrawRange
	// MaxFaces addresses the interior lines on the x=max, z=max and y=max faces.
	MaxFaces common.DrawRange
}

// Faces returns the range covering both face blocks.
func (w Wireframe) Faces() common.DrawRange {
	return common.DrawRange{First: w.MinFaces.First, Count: w.MinFaces.Count + w.MaxFaces.Count}
}

// Segments returns the number of line segments in the wireframe.
func (w Wireframe) Segments() int {
	return len(w.Vertices) / 2
}

// interior returns the number of interior planes along an axis with n cells.
func interior(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}

// FaceSegmentCount returns the number of interior segments across all six faces for the given
// cell counts: 4 * [(dx-1) + (dy-1) + (dz-1)] with each term clamped at zero. Every interior
// plane along an axis crosses two faces on each side of the box.
//
// Parameters:
//   - dim: cell counts along x, y and z
//
// Returns:
//   - int: the number of interior segments
func FaceSegmentCount(dim [3]int) int {
	return 4 * (interior(dim[0]) + interior(dim[1]) + interior(dim[2]))
}

// FaceVertexCount returns the combined vertex count of the min and max face blocks, two
// vertices per interior segment.
//
// Parameters:
//   - dim: cell counts along x, y and z
//
// Returns:
//   - int: the combined length of the min and max face blocks
func FaceVertexCount(dim [3]int) int {
	return 2 * FaceSegmentCount(dim)
}

// VertexCount returns the number of vertices Generate produces for the given cell counts
// without generating them.
//
// Parameters:
//   - dim: cell counts along x, y and z
//
// Returns:
//   - int: 24 + FaceVertexCount(dim)
func VertexCount(dim [3]int) int {
	return BoxVertexCount + FaceVertexCount(dim)
}

// Generate expands g into its wireframe. It is pure and deterministic: identical grids produce
// identical vertex sequences. Cell counts of 0 or 1 along an axis produce no interior lines
// for that axis; a zero-size grid still yields 24 coincident box vertices.
//
// Parameters:
//   - g: the grid to expand, assumed valid
//
// Returns:
//   - Wireframe: the vertices and their named ranges
func Generate(g Grid) Wireframe {
	lo, hi := g.Min(), g.Max()
	half := FaceVertexCount(g.Dim) / 2

	b := &builder{
		grid:     g,
		vertices: make([]mgl32.Vec3, 0, BoxVertexCount+2*half),
	}

	b.box(lo, hi)

	// Minimum faces: x = lo.x, z = lo.z, y = lo.y.
	b.faceX(lo.X())
	b.faceZ(lo.Z())
	b.faceY(lo.Y())

	// Maximum faces, same axis order.
	b.faceX(hi.X())
	b.faceZ(hi.Z())
	b.faceY(hi.Y())

	return Wireframe{
		Vertices: b.vertices,
		Box:      common.DrawRange{First: 0, Count: BoxVertexCount},
		MinFaces: common.DrawRange{First: BoxVertexCount, Count: half},
		MaxFaces: common.DrawRange{First: BoxVertexCount + half, Count: half},
	}
}

// builder appends segments for a single Generate call.
type builder struct {
	grid     Grid
	vertices []mgl32.Vec3
}

func (b *builder) segment(from, to mgl32.Vec3) {
	b.vertices = append(b.vertices, from, to)
}

// plane returns the coordinate of interior plane i along axis.
func (b *builder) plane(axis, i int) float32 {
	return b.grid.Pos[axis] + float32(i)*b.grid.H
}

// box emits the 12 edges of [lo, hi]: the four edges of the x=lo face, the four edges of the
// x=hi face, then the four edges running along x.
func (b *builder) box(lo, hi mgl32.Vec3) {
	b.segment(lo, mgl32.Vec3{lo[0], lo[1], hi[2]})
	b.segment(mgl32.Vec3{lo[0], lo[1], hi[2]}, mgl32.Vec3{lo[0], hi[1], hi[2]})
	b.segment(mgl32.Vec3{lo[0], hi[1], hi[2]}, mgl32.Vec3{lo[0], hi[1], lo[2]})
	b.segment(mgl32.Vec3{lo[0], hi[1], lo[2]}, lo)

	b.segment(mgl32.Vec3{hi[0], lo[1], lo[2]}, mgl32.Vec3{hi[0], lo[1], hi[2]})
	b.segment(mgl32.Vec3{hi[0], lo[1], hi[2]}, hi)
	b.segment(hi, mgl32.Vec3{hi[0], hi[1], lo[2]})
	b.segment(mgl32.Vec3{hi[0], hi[1], lo[2]}, mgl32.Vec3{hi[0], lo[1], lo[2]})

	b.segment(lo, mgl32.Vec3{hi[0], lo[1], lo[2]})
	b.segment(mgl32.Vec3{lo[0], lo[1], hi[2]}, mgl32.Vec3{hi[0], lo[1], hi[2]})
	b.segment(mgl32.Vec3{lo[0], hi[1], hi[2]}, hi)
	b.segment(mgl32.Vec3{lo[0], hi[1], lo[2]}, mgl32.Vec3{hi[0], hi[1], lo[2]})
}

// faceX emits the interior lines of the face at the given x: lines along z at each y plane,
// then lines along y at each z plane.
func (b *builder) faceX(x float32) {
	lo, hi := b.grid.Min(), b.grid.Max()
	for i := 1; i < b.grid.Dim[1]; i++ {
		y := b.plane(1, i)
		b.segment(mgl32.Vec3{x, y, lo[2]}, mgl32.Vec3{x, y, hi[2]})
	}
	for i := 1; i < b.grid.Dim[2]; i++ {
		z := b.plane(2, i)
		b.segment(mgl32.Vec3{x, lo[1], z}, mgl32.Vec3{x, hi[1], z})
	}
}

// faceZ emits the interior lines of the face at the given z: lines along y at each x plane,
// then lines along x at each y plane.
func (b *builder) faceZ(z float32) {
	lo, hi := b.grid.Min(), b.grid.Max()
	for i := 1; i < b.grid.Dim[0]; i++ {
		x := b.plane(0, i)
		b.segment(mgl32.Vec3{x, lo[1], z}, mgl32.Vec3{x, hi[1], z})
	}
	for i := 1; i < b.grid.Dim[1]; i++ {
		y := b.plane(1, i)
		b.segment(mgl32.Vec3{lo[0], y, z}, mgl32.Vec3{hi[0], y, z})
	}
}

// faceY emits the interior lines of the face at the given y: lines along z at each x plane,
// then lines along x at each z plane.
func (b *builder) faceY(y float32) {
	lo, hi := b.grid.Min(), b.grid.Max()
	for i := 1; i < b.grid.Dim[0]; i++ {
		x := b.plane(0, i)
		b.segment(mgl32.Vec3{x, y, lo[2]}, mgl32.Vec3{x, y, hi[2]})
	}
	for i := 1; i < b.grid.Dim[2]; i++ {
		z := b.plane(2, i)
		b.segment(mgl32.Vec3{lo[0], y, z}, mgl32.Vec3{hi[0], y, z})
	}
}
