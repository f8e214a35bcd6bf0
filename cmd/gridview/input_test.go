package main

import (
	"testing"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/camera"
	"github.com/Carmen-Shannon/gridview/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/stretchr/testify/assert"
)

func newTestControls() (*controls, settings.Display, scene_grid.SceneGrid, camera.CameraController, *int) {
	d := settings.NewDisplay()
	g := scene_grid.NewSceneGrid(renderertest.New())
	ctrl := camera.NewOrbitController(camera.WithRadius(10))
	invalidations := 0
	return newControls(d, g, ctrl, actions{invalidate: func() { invalidations++ }}), d, g, ctrl, &invalidations
}

func press(c *controls, key uint32) {
	c.keyDown(key)
	c.keyUp(key)
}

func TestToggles(t *testing.T) {
	c, d, g, _, invalidations := newTestControls()

	press(c, common.KeyG)
	assert.False(t, d.ShowGrid())

	before := d.GridMode()
	press(c, common.KeyM)
	assert.Equal(t, before.Next(), d.GridMode())

	press(c, common.Key1)
	assert.Equal(t, settings.GridModeHidden, d.GridMode())
	press(c, common.Key3)
	assert.Equal(t, settings.GridModeAllFaceCells, d.GridMode())
	press(c, common.Key2)
	assert.Equal(t, settings.GridModeMinFaceCells, d.GridMode())

	press(c, common.KeySpace)
	assert.True(t, g.Selected())

	press(c, common.KeyR)
	assert.Equal(t, 1, *invalidations)
}

func TestKeyRepeatTogglesOnce(t *testing.T) {
	c, d, _, _, _ := newTestControls()

	c.keyDown(common.KeyG)
	c.keyDown(common.KeyG)
	c.keyDown(common.KeyG)
	assert.False(t, d.ShowGrid())

	c.keyUp(common.KeyG)
	c.keyDown(common.KeyG)
	assert.True(t, d.ShowGrid())
}

func TestHeldKeysMoveCamera(t *testing.T) {
	c, _, _, ctrl, _ := newTestControls()
	az := ctrl.Azimuth()

	c.keyDown(common.KeyD)
	c.tick(1.0 / 60)
	c.tick(1.0 / 60)
	assert.Greater(t, ctrl.Azimuth(), az)

	c.keyUp(common.KeyD)
	az = ctrl.Azimuth()
	c.tick(1.0 / 60)
	assert.Equal(t, az, ctrl.Azimuth())

	c.keyDown(common.KeyQ)
	c.tick(0.1)
	assert.Less(t, ctrl.Radius(), float32(10))

	c.scroll(-1)
	c.drag(5, 0)
}

func TestViewerActions(t *testing.T) {
	quits := 0
	profiling := false
	c := newControls(settings.NewDisplay(), scene_grid.NewSceneGrid(renderertest.New()), nil, actions{
		quit:           func() { quits++ },
		toggleProfiler: func() bool { profiling = !profiling; return profiling },
	})

	press(c, common.KeyP)
	assert.True(t, profiling)
	press(c, common.KeyP)
	assert.False(t, profiling)

	press(c, common.KeyEsc)
	assert.Equal(t, 1, quits)

	// no controller and no invalidate hook
	press(c, common.KeyR)
	c.keyDown(common.KeyW)
	c.tick(0.1)
	c.scroll(1)
	c.drag(1, 1)
}
