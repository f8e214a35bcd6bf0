// Command gridview opens a window showing a simulation grid as a wireframe.
//
// Keys: G toggles the grid, M cycles the grid mode, 1/2/3 pick hidden/min faces/all faces,
// Space toggles selection, R drops every GPU buffer to exercise rebuilds, WASD or arrows orbit,
// Q/E and the scroll wheel zoom, left-drag orbits, P toggles profiling, Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine"
	"github.com/Carmen-Shannon/gridview/engine/camera"
	"github.com/Carmen-Shannon/gridview/engine/profiler"
	"github.com/Carmen-Shannon/gridview/engine/renderer"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/Carmen-Shannon/gridview/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.logLevel}))
	common.SetLogger(logger)

	if err := run(opts); err != nil {
		logger.Error("gridview failed", "error", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	var cfg *settings.DisplayConfig
	if opts.config != "" {
		var err error
		if cfg, err = settings.LoadDisplayConfig(opts.config); err != nil {
			return err
		}
	}
	g, err := opts.resolveGrid(cfg)
	if err != nil {
		return err
	}

	api := window.ClientAPINone
	if opts.backend == renderer.BackendTypeGL {
		api = window.ClientAPIOpenGL
	}
	w, err := window.NewWindow(
		window.WithTitle("gridview - "+g.String()),
		window.WithClientAPI(api),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	presentMode := renderer.PresentModeVSync
	if !opts.vsync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(opts.backend, w, renderer.WithPresentMode(presentMode))
	if err != nil {
		return err
	}
	defer r.Release()

	display := settings.NewDisplay(settings.WithConfig(cfg))
	sg := scene_grid.NewSceneGrid(r, scene_grid.WithGrid(g), scene_grid.WithLabel("grid"))
	defer sg.Release()

	ctrl := camera.NewOrbitController()
	cam := camera.NewCamera(camera.WithController(ctrl))
	box := sg.BoundingBox(mgl32.Ident4())
	cam.Frame(sg.Centroid(mgl32.Ident4()), float32(r3.Norm(r3.Sub(box.Max, box.Min))/2))

	prof := profiler.NewProfiler(
		profiler.WithCounter("grid_builds", sg.Builds),
		profiler.WithCounter("grid_vertices", sg.VertexCount),
		profiler.WithCounter("frames", r.Frames),
	)

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithDisplay(display),
		engine.WithRenderable(sg),
		engine.WithProfiler(prof),
		engine.WithProfiling(opts.profile),
	)

	profiling := opts.profile
	in := newControls(display, sg, ctrl, actions{
		invalidate: r.InvalidateResources,
		quit:       eng.Quit,
		toggleProfiler: func() bool {
			profiling = !profiling
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
			return profiling
		},
	})
	w.SetKeyDownCallback(in.keyDown)
	w.SetKeyUpCallback(in.keyUp)
	w.SetScrollCallback(in.scroll)
	w.SetDragCallback(in.drag)
	eng.SetTickCallback(in.tick)

	common.Logger().Info("viewer started",
		"grid", g.String(),
		"vertices", sg.VertexCount(),
		"backend", opts.backend.String(),
		"mode", display.GridMode(),
	)
	eng.Run()
	return nil
}
