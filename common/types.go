// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// Color is a straight (non-premultiplied) RGBA color with float32 channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Mix linearly interpolates between c and other by t, component-wise including alpha.
// t = 0 returns c, t = 1 returns other.
//
// Parameters:
//   - other: the color to blend towards
//   - t: the blend factor
//
// Returns:
//   - Color: the blended color
func (c Color) Mix(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WithAlpha returns a copy of c with the alpha channel replaced.
//
// Parameters:
//   - a: the new alpha value
//
// Returns:
//   - Color: the color with alpha a
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Array returns the color as a [4]float32 in RGBA order, the layout expected by shader uniforms.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%.3g, %.3g, %.3g, %.3g)", c.R, c.G, c.B, c.A)
}

// DrawRange addresses a contiguous run of vertices in a vertex buffer.
// For line-list topology each consecutive pair of vertices in the range is one segment.
type DrawRange struct {
	// First is the index of the first vertex in the range.
	First int
	// Count is the number of vertices in the range.
	Count int
}

// End returns the index one past the last vertex of the range.
func (r DrawRange) End() int {
	return r.First + r.Count
}

// Empty reports whether the range addresses no vertices.
func (r DrawRange) Empty() bool {
	return r.Count <= 0
}
