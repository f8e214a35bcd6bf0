package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/grid_plot"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-dim", "2,3,4", "-h", "0.5", "-mode", "min_faces", "-format", "SVG", "-proj", "xz, zy", "-workers", "2"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, grid.New([3]int{2, 3, 4}, 0.5, mgl32.Vec3{}), o.job.grid)
	assert.Equal(t, settings.GridModeMinFaceCells, o.job.mode)
	assert.Equal(t, ".svg", o.job.ext)
	assert.Equal(t, []grid_plot.Projection{grid_plot.ProjectionXZ, grid_plot.ProjectionZY}, o.job.projections)
	assert.Equal(t, 2, o.workers)
	assert.Equal(t, 6*vg.Inch, o.job.size)
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-dim", "2,3"},
		{"-h", "0"},
		{"-mode", "wire"},
		{"-proj", "xy,yz"},
		{"-format", "gif"},
	} {
		_, err := parseFlags(args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	job := exportJob{
		grid:        grid.New([3]int{3, 2, 2}, 1, mgl32.Vec3{}),
		mode:        settings.GridModeAllFaceCells,
		dir:         dir,
		ext:         ".png",
		size:        2 * vg.Inch,
		projections: grid_plot.Projections,
	}

	paths, err := exportAll(job, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "grid_xy.png"),
		filepath.Join(dir, "grid_xz.png"),
		filepath.Join(dir, "grid_zy.png"),
	}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestExportAllReportsFailures(t *testing.T) {
	job := exportJob{
		grid:        grid.New([3]int{1, 1, 1}, 1, mgl32.Vec3{}),
		mode:        settings.GridModeHidden,
		dir:         filepath.Join(t.TempDir(), "missing"),
		ext:         ".png",
		size:        vg.Inch,
		projections: []grid_plot.Projection{grid_plot.ProjectionXY},
	}

	paths, err := exportAll(job, 1)
	assert.Error(t, err)
	assert.Empty(t, paths)
}

func TestExportAllHTML(t *testing.T) {
	dir := t.TempDir()
	job := exportJob{
		grid:        grid.New([3]int{2, 2, 2}, 1, mgl32.Vec3{}),
		mode:        settings.GridModeMinFaceCells,
		selected:    true,
		dir:         dir,
		ext:         ".html",
		projections: []grid_plot.Projection{grid_plot.ProjectionZY},
	}

	paths, err := exportAll(job, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "grid_zy.html")}, paths)
}
