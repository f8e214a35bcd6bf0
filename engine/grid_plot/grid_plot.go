// Package grid_plot renders a grid wireframe to an image file by projecting it onto one of the
// axis-aligned planes, using the same draw commands the interactive renderer issues.
package grid_plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/scene_grid"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrUnknownProjection is returned by ParseProjection for an unrecognized name.
	ErrUnknownProjection = errors.New("unknown projection")

	// ErrUnsupportedFormat is returned by Save for file extensions other than .png and .svg.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Projection selects the plane a wireframe is flattened onto.
type Projection int

const (
	// ProjectionXY looks down the z axis.
	ProjectionXY Projection = iota
	// ProjectionXZ looks down the y axis.
	ProjectionXZ
	// ProjectionZY looks down the x axis.
	ProjectionZY
)

// Projections lists every projection in declaration order.
var Projections = []Projection{ProjectionXY, ProjectionXZ, ProjectionZY}

var projectionNames = [...]string{"xy", "xz", "zy"}

func (p Projection) String() string {
	if p < 0 || int(p) >= len(projectionNames) {
		return fmt.Sprintf("Projection(%d)", int(p))
	}
	return projectionNames[p]
}

// ParseProjection parses "xy", "xz" or "zy", case-insensitively.
func ParseProjection(s string) (Projection, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range projectionNames {
		if s == name {
			return Projection(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownProjection)
}

// axes returns the vertex components mapped to the plot's X and Y axes.
func (p Projection) axes() (int, int) {
	switch p {
	case ProjectionXZ:
		return 0, 2
	case ProjectionZY:
		return 2, 1
	default:
		return 0, 1
	}
}

// Project maps a vertex onto the projection plane.
func (p Projection) Project(v mgl32.Vec3) plotter.XY {
	x, y := p.axes()
	return plotter.XY{X: float64(v[x]), Y: float64(v[y])}
}

func (p Projection) labels() (string, string) {
	name := p.String()
	if len(name) != 2 {
		return "", ""
	}
	return name[:1], name[1:]
}

type plotConfig struct {
	title     string
	hideAxes  bool
	padding   float64
	lineScale float64
}

// NewPlot draws every command's segments from wf onto a new plot, projected with proj.
// The data area is square and centered on the wireframe so cells keep their aspect ratio.
//
// Parameters:
//   - wf: the wireframe whose vertices the commands address
//   - cmds: the draws to plot, usually from scene_grid.Plan
//   - proj: the projection plane
//   - options: functional options to configure the plot
//
// Returns:
//   - *plot.Plot: the plot, ready for Save
//   - error: an error if a command addresses vertices outside wf
func NewPlot(wf grid.Wireframe, cmds []scene_grid.DrawCommand, proj Projection, options ...PlotBuilderOption) (*plot.Plot, error) {
	cfg := &plotConfig{
		title:     "grid " + proj.String(),
		padding:   0.05,
		lineScale: 1,
	}
	for _, opt := range options {
		opt(cfg)
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text, p.Y.Label.Text = proj.labels()

	lines, err := segmentLines(wf, cmds, proj, cfg.lineScale)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		p.Add(line)
	}

	if len(wf.Vertices) > 0 {
		fit(p, wf.Vertices, proj, cfg.padding)
	}
	if cfg.hideAxes {
		p.HideAxes()
	}
	return p, nil
}

// segmentLines returns one styled line per segment addressed by cmds.
func segmentLines(wf grid.Wireframe, cmds []scene_grid.DrawCommand, proj Projection, lineScale float64) ([]*plotter.Line, error) {
	var lines []*plotter.Line
	for _, cmd := range cmds {
		if cmd.Range.First < 0 || cmd.Range.End() > len(wf.Vertices) {
			return nil, fmt.Errorf("draw range [%d, %d) outside %d vertices", cmd.Range.First, cmd.Range.End(), len(wf.Vertices))
		}
		c := toNRGBA(cmd.Color)
		for i := cmd.Range.First; i+1 < cmd.Range.End(); i += 2 {
			line, err := plotter.NewLine(plotter.XYs{proj.Project(wf.Vertices[i]), proj.Project(wf.Vertices[i+1])})
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i/2, err)
			}
			line.Color = c
			line.Width = vg.Points(float64(cmd.Width) * lineScale)
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// fit sets square axis limits around the projected vertices.
func fit(p *plot.Plot, vertices []mgl32.Vec3, proj Projection, padding float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		pt := proj.Project(v)
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	half := span * (0.5 + padding)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half
}

func toNRGBA(c common.Color) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float32) uint8 {
	return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1)) * 255))
}

// Save writes p to path as a size x size image. The format follows the extension: .png or .svg.
//
// Parameters:
//   - p: the plot to write
//   - path: the output file path
//   - size: the edge length of the square image
//
// Returns:
//   - error: ErrUnsupportedFormat for other extensions, or the write error
func Save(p *plot.Plot, path string, size vg.Length) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg":
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
