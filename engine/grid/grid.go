// Package grid describes a uniform 3D simulation grid and expands it into a line-list wireframe.
package grid

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNegativeDim is returned by Validate when any cell count is negative.
	ErrNegativeDim = errors.New("grid dimension must be non-negative")

	// ErrNonPositiveCellSize is returned by Validate when the cell edge length is not positive.
	ErrNonPositiveCellSize = errors.New("grid cell size must be positive")
)

// Grid is the geometric description of a uniform grid: Dim cells of edge H along each axis,
// starting at the minimum corner Pos. The grid spans the axis-aligned box [Pos, Pos + H*Dim].
//
// A Grid is a plain value; replace it rather than mutating it in place so owners can detect changes.
type Grid struct {
	// Dim is the number of cells along x, y and z.
	Dim [3]int
	// H is the edge length of every cell.
	H float32
	// Pos is the minimum (origin) corner of the grid.
	Pos mgl32.Vec3
}

// New creates a Grid from its cell counts, cell size and origin corner.
// The result is not validated; see Validate.
//
// Parameters:
//   - dim: cell counts along x, y and z
//   - h: cell edge length
//   - pos: minimum corner
//
// Returns:
//   - Grid: the grid description
func New(dim [3]int, h float32, pos mgl32.Vec3) Grid {
	return Grid{Dim: dim, H: h, Pos: pos}
}

// Min returns the minimum corner of the grid's bounding box.
func (g Grid) Min() mgl32.Vec3 {
	return g.Pos
}

// Max returns the maximum corner of the grid's bounding box, Pos + H*Dim component-wise.
func (g Grid) Max() mgl32.Vec3 {
	return mgl32.Vec3{
		g.Pos[0] + g.H*float32(g.Dim[0]),
		g.Pos[1] + g.H*float32(g.Dim[1]),
		g.Pos[2] + g.H*float32(g.Dim[2]),
	}
}

// Extent returns the size of the bounding box along each axis.
func (g Grid) Extent() mgl32.Vec3 {
	return g.Max().Sub(g.Min())
}

// CellCount returns the total number of cells in the grid.
func (g Grid) CellCount() int {
	return g.Dim[0] * g.Dim[1] * g.Dim[2]
}

// Validate checks the grid invariants: every Dim component non-negative and H positive.
// The wireframe generator and renderables assume a valid grid; callers building grids from
// user input should call Validate first.
//
// Returns:
//   - error: ErrNegativeDim or ErrNonPositiveCellSize wrapped with the offending value, or nil
func (g Grid) Validate() error {
	for axis, n := range g.Dim {
		if n < 0 {
			return fmt.Errorf("axis %c has %d cells: %w", "xyz"[axis], n, ErrNegativeDim)
		}
	}
	if !(g.H > 0) {
		return fmt.Errorf("h=%g: %w", g.H, ErrNonPositiveCellSize)
	}
	return nil
}

func (g Grid) String() string {
	return fmt.Sprintf("grid{dim=%dx%dx%d h=%g pos=(%g, %g, %g)}",
		g.Dim[0], g.Dim[1], g.Dim[2], g.H, g.Pos[0], g.Pos[1], g.Pos[2])
}
