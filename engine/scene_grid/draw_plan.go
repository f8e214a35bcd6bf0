package scene_grid

import (
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/Carmen-Shannon/gridview/engine/settings"
)

const (
	// BoxLineWidth is the line width of the bounding box edges.
	BoxLineWidth float32 = 3
	// FaceLineWidth is the line width of the face cell lines.
	FaceLineWidth float32 = 0.5

	boxAlpha  float32 = 0.5
	faceAlpha float32 = 0.25
)

// DefaultBaseColor is the unselected grid color.
var DefaultBaseColor = common.Color{R: 0.8, G: 0.5, B: 1.0, A: 1}

// DrawCommand is one line-list draw: a vertex range with its width and color.
type DrawCommand struct {
	Range common.DrawRange
	Width float32
	Color common.Color
}

// Plan decides what to draw for a wireframe buffer holding total vertices.
// The bounding box is always drawn. GridModeMinFaceCells adds the first half of the face lines
// and GridModeAllFaceCells adds all of them. When selected, the color is the midpoint of base
// and highlight.
//
// Parameters:
//   - total: the vertex count of the uploaded wireframe
//   - mode: the display mode
//   - selected: whether the grid is selected
//   - highlight: the selection highlight color
//   - base: the unselected color
//
// Returns:
//   - []DrawCommand: the draws in order, nil if total cannot hold a bounding box
func Plan(total int, mode settings.GridMode, selected bool, highlight, base common.Color) []DrawCommand {
	if total < grid.BoxVertexCount {
		return nil
	}

	color := base
	if selected {
		color = base.Mix(highlight, 0.5)
	}

	cmds := []DrawCommand{{
		Range: common.DrawRange{First: 0, Count: grid.BoxVertexCount},
		Width: BoxLineWidth,
		Color: color.WithAlpha(boxAlpha),
	}}

	faces := total - grid.BoxVertexCount
	switch mode {
	case settings.GridModeMinFaceCells:
		faces /= 2
	case settings.GridModeAllFaceCells:
	default:
		return cmds
	}

	return append(cmds, DrawCommand{
		Range: common.DrawRange{First: grid.BoxVertexCount, Count: faces},
		Width: FaceLineWidth,
		Color: color.WithAlpha(faceAlpha),
	})
}
