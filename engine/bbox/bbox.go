// Package bbox computes axis-aligned bounds and centroids of grids under an affine transform.
package bbox

import (
	"math"

	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns the untransformed bounding box of g, [g.Min(), g.Max()].
//
// Parameters:
//   - g: the grid to bound
//
// Returns:
//   - r3.Box: the grid's bounding box in its own coordinates
func Box(g grid.Grid) r3.Box {
	return r3.Box{Min: ToR3(g.Min()), Max: ToR3(g.Max())}
}

// Of returns the axis-aligned box enclosing g's bounding box after applying transform to each
// of its eight corners. Degenerate (flat or point) grids yield degenerate boxes.
//
// Parameters:
//   - g: the grid to bound
//   - transform: the model-to-world matrix
//
// Returns:
//   - r3.Box: the world-space axis-aligned bounds
func Of(g grid.Grid, transform mgl32.Mat4) r3.Box {
	out := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, corner := range Box(g).Vertices() {
		p := ToR3(mgl32.TransformCoordinate(FromR3(corner), transform))
		out.Min = r3.Vec{X: math.Min(out.Min.X, p.X), Y: math.Min(out.Min.Y, p.Y), Z: math.Min(out.Min.Z, p.Z)}
		out.Max = r3.Vec{X: math.Max(out.Max.X, p.X), Y: math.Max(out.Max.Y, p.Y), Z: math.Max(out.Max.Z, p.Z)}
	}
	return out
}

// Centroid returns the center of g's bounding box mapped through transform.
//
// Parameters:
//   - g: the grid
//   - transform: the model-to-world matrix
//
// Returns:
//   - mgl32.Vec3: the world-space centroid
func Centroid(g grid.Grid, transform mgl32.Mat4) mgl32.Vec3 {
	return mgl32.TransformCoordinate(FromR3(Box(g).Center()), transform)
}

// ToR3 widens an mgl32 vector to a gonum vector.
func ToR3(v mgl32.Vec3) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// FromR3 narrows a gonum vector to an mgl32 vector.
func FromR3(v r3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
