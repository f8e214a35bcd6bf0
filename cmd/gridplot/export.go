package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/grid_plot"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"gonum.org/v1/plot/vg"
)

// exportJob describes one grid rendered to every listed projection.
type exportJob struct {
	grid        grid.Grid
	mode        settings.GridMode
	selected    bool
	dir         string
	ext         string
	size        vg.Length
	projections []grid_plot.Projection
}

// exportAll generates the wireframe once and saves each projection on a worker pool.
// Paths are returned in projection order for every file written; errors from all failed
// projections are joined.
func exportAll(job exportJob, workers int) ([]string, error) {
	wf := grid.Generate(job.grid)
	cmds := scene_grid.Plan(len(wf.Vertices), job.mode, job.selected, settings.DefaultSelectionColor, scene_grid.DefaultBaseColor)

	pool := worker.NewDynamicWorkerPool(workers, len(job.projections), time.Second)
	defer pool.Stop()

	paths := make([]string, len(job.projections))
	errs := make([]error, len(job.projections))

	var wg sync.WaitGroup
	for i, proj := range job.projections {
		wg.Add(1)
		path := filepath.Join(job.dir, fmt.Sprintf("grid_%s%s", proj, job.ext))
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				start := time.Now()
				if err := render(job, wf, cmds, proj, path); err != nil {
					errs[i] = fmt.Errorf("%s: %w", proj, err)
					return nil, errs[i]
				}
				paths[i] = path
				common.Logger().Info("projection written", "path", path, "segments", wf.Segments(), "took", time.Since(start))
				return path, nil
			},
		})
	}
	wg.Wait()

	written := paths[:0]
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, errors.Join(errs...)
}

func render(job exportJob, wf grid.Wireframe, cmds []scene_grid.DrawCommand, proj grid_plot.Projection, path string) error {
	title := fmt.Sprintf("%s %s", job.grid, proj)
	if job.ext == ".html" {
		c, err := grid_plot.NewChart(wf, cmds, proj, title)
		if err != nil {
			return err
		}
		return grid_plot.SaveChart(c, path)
	}
	p, err := grid_plot.NewPlot(wf, cmds, proj, grid_plot.WithTitle(title))
	if err != nil {
		return err
	}
	return grid_plot.Save(p, path, job.size)
}
