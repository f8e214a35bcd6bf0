package grid_plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func testWireframe() (grid.Wireframe, []scene_grid.DrawCommand) {
	wf := grid.Generate(grid.New([3]int{4, 2, 3}, 0.5, mgl32.Vec3{1, 0, -1}))
	cmds := scene_grid.Plan(len(wf.Vertices), settings.GridModeAllFaceCells, false, common.Color{R: 1, G: 1, A: 1}, scene_grid.DefaultBaseColor)
	return wf, cmds
}

func TestProjectionNames(t *testing.T) {
	for _, p := range Projections {
		got, err := ParseProjection(" " + p.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParseProjection("XZ")
	require.NoError(t, err)
	assert.Equal(t, ProjectionXZ, got)

	_, err = ParseProjection("yz")
	assert.ErrorIs(t, err, ErrUnknownProjection)
	assert.Equal(t, "Projection(5)", Projection(5).String())
}

func TestProject(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, plotter.XY{X: 1, Y: 2}, ProjectionXY.Project(v))
	assert.Equal(t, plotter.XY{X: 1, Y: 3}, ProjectionXZ.Project(v))
	assert.Equal(t, plotter.XY{X: 3, Y: 2}, ProjectionZY.Project(v))
}

func TestNewPlotOneLinePerSegment(t *testing.T) {
	wf, cmds := testWireframe()

	p, err := NewPlot(wf, cmds, ProjectionXY, WithTitle("test"))
	require.NoError(t, err)
	assert.Equal(t, "test", p.Title.Text)
	assert.Equal(t, "x", p.X.Label.Text)
	assert.Equal(t, "y", p.Y.Label.Text)

	lines, err := segmentLines(wf, cmds, ProjectionXY, 2)
	require.NoError(t, err)
	// box plus all faces covers the whole buffer
	assert.Len(t, lines, wf.Segments())
	assert.Equal(t, vg.Points(6), lines[0].Width)
	assert.Equal(t, vg.Points(1), lines[len(lines)-1].Width)
}

func TestNewPlotSquareLimits(t *testing.T) {
	wf, cmds := testWireframe()

	p, err := NewPlot(wf, cmds, ProjectionXZ, WithPadding(0))
	require.NoError(t, err)

	// x spans [1, 3], z spans [-1, 0.5]
	assert.InDelta(t, 1, p.X.Min, 1e-9)
	assert.InDelta(t, 3, p.X.Max, 1e-9)
	assert.InDelta(t, p.X.Max-p.X.Min, p.Y.Max-p.Y.Min, 1e-9)
	assert.InDelta(t, -0.25, (p.Y.Min+p.Y.Max)/2, 1e-9)
}

func TestNewPlotRejectsOutOfRange(t *testing.T) {
	wf, _ := testWireframe()
	cmds := []scene_grid.DrawCommand{{Range: common.DrawRange{First: 24, Count: len(wf.Vertices)}}}

	_, err := NewPlot(wf, cmds, ProjectionXY)
	assert.Error(t, err)
}

func TestToNRGBA(t *testing.T) {
	c := toNRGBA(common.Color{R: 1, G: 0.5, B: -1, A: 2})
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestSaveEachProjection(t *testing.T) {
	wf, cmds := testWireframe()
	dir := t.TempDir()

	for _, proj := range Projections {
		for _, ext := range []string{".png", ".svg"} {
			p, err := NewPlot(wf, cmds, proj, WithHideAxes(true), WithLineScale(2))
			require.NoError(t, err)

			path := filepath.Join(dir, "grid_"+proj.String()+ext)
			require.NoError(t, Save(p, path, 4*vg.Inch))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		}
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	wf, cmds := testWireframe()
	p, err := NewPlot(wf, cmds, ProjectionXY)
	require.NoError(t, err)

	err = Save(p, filepath.Join(t.TempDir(), "grid.bmp"), vg.Inch)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestProjectSeries(t *testing.T) {
	wf, cmds := testWireframe()

	series, err := projectSeries(wf, cmds, ProjectionXZ)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "box", series[0].name)
	assert.Equal(t, "faces", series[1].name)
	assert.Len(t, series[0].data, grid.BoxVertexCount)
	assert.Len(t, series[1].data, len(wf.Vertices)-grid.BoxVertexCount)
	assert.Equal(t, cmds[0].Color, series[0].color)

	first := ProjectionXZ.Project(wf.Vertices[0])
	assert.Equal(t, []interface{}{first.X, first.Y}, series[0].data[0].Value)

	_, err = projectSeries(wf, []scene_grid.DrawCommand{{Range: common.DrawRange{First: 0, Count: len(wf.Vertices) + 2}}}, ProjectionXY)
	assert.Error(t, err)
}

func TestCSSColor(t *testing.T) {
	assert.Equal(t, "rgba(255,128,0,0.502)", cssColor(common.Color{R: 1, G: 0.5, B: 0, A: 0.5}))
}

func TestSaveChart(t *testing.T) {
	wf, cmds := testWireframe()
	c, err := NewChart(wf, cmds, ProjectionXY, "grid xy")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid_xy.html")
	require.NoError(t, SaveChart(c, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grid xy")

	assert.ErrorIs(t, SaveChart(c, filepath.Join(t.TempDir(), "grid.png")), ErrUnsupportedFormat)
}
