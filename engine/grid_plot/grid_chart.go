package grid_plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// chartSeries is the projected vertex set of one draw command.
type chartSeries struct {
	name  string
	color common.Color
	data  []opts.ScatterData
}

// NewChart builds an interactive HTML scatter of the vertices each command draws, projected
// with proj. Each command becomes one series, so the box and face lines can be toggled apart
// in the browser.
//
// Parameters:
//   - wf: the wireframe whose vertices the commands address
//   - cmds: the draws to chart, usually from scene_grid.Plan
//   - proj: the projection plane
//   - title: the chart and page title
//
// Returns:
//   - *charts.Scatter: the chart, ready for SaveChart
//   - error: an error if a command addresses vertices outside wf
func NewChart(wf grid.Wireframe, cmds []scene_grid.DrawCommand, proj Projection, title string) (*charts.Scatter, error) {
	series, err := projectSeries(wf, cmds, proj)
	if err != nil {
		return nil, err
	}

	xName, yName := proj.labels()
	minX, maxX, minY, maxY := bounds(wf, proj)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d vertices, %d segments", len(wf.Vertices), wf.Segments())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minX, Max: maxX, Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: minY, Max: maxY, Name: yName, NameLocation: "middle", NameGap: 30}),
	)
	for _, s := range series {
		scatter.AddSeries(s.name, s.data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(s.color)}),
		)
	}
	return scatter, nil
}

func projectSeries(wf grid.Wireframe, cmds []scene_grid.DrawCommand, proj Projection) ([]chartSeries, error) {
	series := make([]chartSeries, 0, len(cmds))
	for i, cmd := range cmds {
		if cmd.Range.First < 0 || cmd.Range.End() > len(wf.Vertices) {
			return nil, fmt.Errorf("draw range [%d, %d) outside %d vertices", cmd.Range.First, cmd.Range.End(), len(wf.Vertices))
		}
		name := "faces"
		if i == 0 {
			name = "box"
		}
		data := make([]opts.ScatterData, 0, cmd.Range.Count)
		for _, v := range wf.Vertices[cmd.Range.First:cmd.Range.End()] {
			pt := proj.Project(v)
			data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
		}
		series = append(series, chartSeries{name: name, color: cmd.Color, data: data})
	}
	return series, nil
}

// bounds returns axis limits around the projected vertices, widened to whole units plus one.
func bounds(wf grid.Wireframe, proj Projection) (minX, maxX, minY, maxY float64) {
	if len(wf.Vertices) == 0 {
		return -1, 1, -1, 1
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range wf.Vertices {
		pt := proj.Project(v)
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	return math.Floor(minX) - 1, math.Ceil(maxX) + 1, math.Floor(minY) - 1, math.Ceil(maxY) + 1
}

func cssColor(c common.Color) string {
	n := toNRGBA(c)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", n.R, n.G, n.B, float64(n.A)/255)
}

// SaveChart renders c as a standalone HTML page at path, which must end in .html.
//
// Parameters:
//   - c: the chart to write
//   - path: the output file path
//
// Returns:
//   - error: ErrUnsupportedFormat for other extensions, or the write error
func SaveChart(c *charts.Scatter, path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".html" {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
