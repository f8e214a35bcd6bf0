package main

import (
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/camera"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
)

// zoomRate is the zoom applied per second while Q or E is held.
const zoomRate = 5

// actions are the viewer-level effects keys can trigger. Nil fields are ignored.
type actions struct {
	invalidate     func()
	quit           func()
	toggleProfiler func() bool
}

// controls maps keys to display toggles and camera movement.
type controls struct {
	display settings.Display
	grid    scene_grid.SceneGrid
	ctrl    camera.CameraController
	act     actions

	held map[uint32]bool
}

func newControls(d settings.Display, g scene_grid.SceneGrid, ctrl camera.CameraController, act actions) *controls {
	return &controls{
		display: d,
		grid:    g,
		ctrl:    ctrl,
		act:     act,
		held:    make(map[uint32]bool),
	}
}

// keyDown handles toggles once per press; key repeats are ignored.
func (c *controls) keyDown(key uint32) {
	if c.held[key] {
		return
	}
	c.held[key] = true

	log := common.Logger()
	switch key {
	case common.KeyG:
		log.Info("show grid", "on", c.display.ToggleShowGrid())
	case common.KeyM:
		log.Info("grid mode", "mode", c.display.CycleGridMode())
	case common.Key1, common.Key2, common.Key3:
		mode := settings.GridMode(key - common.Key1)
		c.display.SetGridMode(mode)
		log.Info("grid mode", "mode", mode)
	case common.KeySpace:
		c.grid.SetSelected(!c.grid.Selected())
		log.Info("selected", "on", c.grid.Selected())
	case common.KeyR:
		if c.act.invalidate != nil {
			c.act.invalidate()
			log.Info("graphics resources invalidated")
		}
	case common.KeyP:
		if c.act.toggleProfiler != nil {
			log.Info("profiler", "on", c.act.toggleProfiler())
		}
	case common.KeyEsc:
		if c.act.quit != nil {
			c.act.quit()
		}
	}
}

func (c *controls) keyUp(key uint32) {
	delete(c.held, key)
}

// tick applies held movement keys.
func (c *controls) tick(dt float32) {
	if c.ctrl == nil {
		return
	}
	if c.held[common.KeyW] || c.held[common.KeyUp] {
		c.ctrl.OrbitUp()
	}
	if c.held[common.KeyS] || c.held[common.KeyDown] {
		c.ctrl.OrbitDown()
	}
	if c.held[common.KeyA] || c.held[common.KeyLeft] {
		c.ctrl.OrbitLeft()
	}
	if c.held[common.KeyD] || c.held[common.KeyRight] {
		c.ctrl.OrbitRight()
	}
	if c.held[common.KeyQ] {
		c.ctrl.Zoom(dt * zoomRate)
	}
	if c.held[common.KeyE] {
		c.ctrl.Zoom(-dt * zoomRate)
	}
}

func (c *controls) scroll(delta float32) {
	if c.ctrl != nil {
		c.ctrl.Zoom(delta)
	}
}

func (c *controls) drag(dx, dy float32) {
	if c.ctrl != nil {
		c.ctrl.Drag(dx, dy)
	}
}
