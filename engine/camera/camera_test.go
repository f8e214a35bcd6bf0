package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerPositionFromAngles(t *testing.T) {
	cc := NewOrbitController(WithTarget(mgl32.Vec3{1, 2, 3}), WithRadius(5), WithAngles(0, 0))

	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{1, 2, 8}, 1e-5), "got %v", cc.Position())
	assert.InDelta(t, 5, cc.Position().Sub(cc.Target()).Len(), 1e-5)

	cc.Orbit(float32(math.Pi/2), 0)
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{6, 2, 3}, 1e-5), "got %v", cc.Position())
}

func TestControllerClamps(t *testing.T) {
	cc := NewOrbitController(WithRadiusBounds(1, 10), WithRadius(50))
	assert.Equal(t, float32(10), cc.Radius())

	cc.SetRadius(0.1)
	assert.Equal(t, float32(1), cc.Radius())

	cc.Orbit(0, 10)
	assert.Less(t, cc.Elevation(), float32(math.Pi/2))
	cc.Orbit(0, -20)
	assert.Greater(t, cc.Elevation(), float32(-math.Pi/2))

	cc.SetRadiusBounds(4, 2)
	assert.Equal(t, float32(4), cc.Radius())
}

func TestControllerZoom(t *testing.T) {
	cc := NewOrbitController(WithRadius(10), WithZoomSpeed(0.1))

	cc.Zoom(1)
	assert.InDelta(t, 9, cc.Radius(), 1e-5)
	cc.Zoom(-1)
	assert.InDelta(t, 9.9, cc.Radius(), 1e-5)
}

func TestControllerSteps(t *testing.T) {
	cc := NewOrbitController(WithAngles(1, 0), WithOrbitSpeed(0.25), WithMouseSensitivity(0.01))

	cc.OrbitRight()
	assert.InDelta(t, 1.25, cc.Azimuth(), 1e-6)
	cc.OrbitLeft()
	assert.InDelta(t, 1.0, cc.Azimuth(), 1e-6)
	cc.OrbitUp()
	assert.InDelta(t, 0.25, cc.Elevation(), 1e-6)
	cc.OrbitDown()
	assert.InDelta(t, 0.0, cc.Elevation(), 1e-6)

	cc.Drag(10, 5)
	assert.InDelta(t, 0.9, cc.Azimuth(), 1e-6)
	assert.InDelta(t, 0.05, cc.Elevation(), 1e-6)
}

func TestCameraTargetProjectsToCenter(t *testing.T) {
	ctrl := NewOrbitController(WithTarget(mgl32.Vec3{4, 0, -2}), WithRadius(20))
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0), WithClip(0.1, 100))

	ndc := mgl32.TransformCoordinate(ctrl.Target(), cam.ViewProjection())
	assert.InDelta(t, 0, ndc.X(), 1e-4)
	assert.InDelta(t, 0, ndc.Y(), 1e-4)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1, "target inside depth range: %v", ndc.Z())

	assert.Equal(t, cam.Projection().Mul4(cam.View()), cam.ViewProjection())
}

func TestCameraSetAspectIgnoresZero(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	before := cam.Projection()

	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, before, cam.Projection())

	cam.SetAspect(1)
	assert.NotEqual(t, before, cam.Projection())
}

func TestCameraFrame(t *testing.T) {
	ctrl := NewOrbitController()
	cam := NewCamera(WithController(ctrl), WithClip(0.1, 10))

	center := mgl32.Vec3{10, 10, 10}
	cam.Frame(center, 50)
	require.Equal(t, center, ctrl.Target())
	assert.Greater(t, ctrl.Radius(), float32(50))
	assert.GreaterOrEqual(t, cam.Far(), (ctrl.Radius()+50)*2-1e-3)

	// every point of the bounding sphere along the view axis fits in depth range
	back := ctrl.Target().Sub(ctrl.Position()).Normalize().Mul(50).Add(center)
	ndc := mgl32.TransformCoordinate(back, cam.ViewProjection())
	assert.Less(t, ndc.Z(), float32(1))
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera()
	assert.Nil(t, cam.Controller())
	assert.Equal(t, mgl32.Ident4(), cam.View())

	cam.Frame(mgl32.Vec3{}, 1)
	cam.Update()
	assert.Equal(t, mgl32.Ident4(), cam.View())
}
