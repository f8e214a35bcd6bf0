package bbox

import (
	"testing"

	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertBox(t *testing.T, want, got r3.Box) {
	t.Helper()
	assert.InDelta(t, want.Min.X, got.Min.X, 1e-5)
	assert.InDelta(t, want.Min.Y, got.Min.Y, 1e-5)
	assert.InDelta(t, want.Min.Z, got.Min.Z, 1e-5)
	assert.InDelta(t, want.Max.X, got.Max.X, 1e-5)
	assert.InDelta(t, want.Max.Y, got.Max.Y, 1e-5)
	assert.InDelta(t, want.Max.Z, got.Max.Z, 1e-5)
}

func TestOfIdentity(t *testing.T) {
	g := grid.New([3]int{4, 2, 1}, 0.5, mgl32.Vec3{1, 1, 1})
	assertBox(t, r3.NewBox(1, 1, 1, 3, 2, 1.5), Of(g, mgl32.Ident4()))
}

func TestOfTranslateScale(t *testing.T) {
	g := grid.New([3]int{2, 2, 2}, 1, mgl32.Vec3{})
	m := mgl32.Translate3D(10, 0, -5).Mul4(mgl32.Scale3D(2, 3, 1))
	assertBox(t, r3.NewBox(10, 0, -5, 14, 6, -3), Of(g, m))
}

func TestOfRotationKeepsAxisAligned(t *testing.T) {
	g := grid.New([3]int{2, 1, 1}, 1, mgl32.Vec3{})
	// 90 degrees about y maps x to -z and z to x.
	got := Of(g, mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	assertBox(t, r3.NewBox(0, 0, -2, 1, 1, 0), got)
}

func TestOfDegenerateGrid(t *testing.T) {
	g := grid.New([3]int{0, 0, 0}, 1, mgl32.Vec3{2, 3, 4})
	got := Of(g, mgl32.Ident4())
	assertBox(t, r3.Box{Min: r3.Vec{X: 2, Y: 3, Z: 4}, Max: r3.Vec{X: 2, Y: 3, Z: 4}}, got)
}

func TestCentroid(t *testing.T) {
	g := grid.New([3]int{4, 2, 6}, 1, mgl32.Vec3{-2, 0, 0})

	assert.True(t, mgl32.Vec3{0, 1, 3}.ApproxEqualThreshold(Centroid(g, mgl32.Ident4()), 1e-6))
	assert.True(t, mgl32.Vec3{5, 1, 3}.ApproxEqualThreshold(Centroid(g, mgl32.Translate3D(5, 0, 0)), 1e-6))
}

func TestVectorConversions(t *testing.T) {
	v := mgl32.Vec3{1.5, -2, 3.25}
	assert.Equal(t, v, FromR3(ToR3(v)))
}
