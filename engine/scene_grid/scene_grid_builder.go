package scene_grid

import (
	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
)

// SceneGridBuilderOption is a functional option for configuring a SceneGrid during construction.
type SceneGridBuilderOption func(*sceneGrid)

// WithGrid sets the grid drawn by the SceneGrid. The default is a single unit cell at the origin.
//
// Parameters:
//   - g: the grid to draw
//
// Returns:
//   - SceneGridBuilderOption: functional option to set the grid
func WithGrid(g grid.Grid) SceneGridBuilderOption {
	return func(s *sceneGrid) {
		s.grid = g
	}
}

// WithSelected sets the initial selection flag.
//
// Parameters:
//   - selected: true to start selected
//
// Returns:
//   - SceneGridBuilderOption: functional option to set the selection
func WithSelected(selected bool) SceneGridBuilderOption {
	return func(s *sceneGrid) {
		s.selected.Store(selected)
	}
}

// WithBaseColor overrides DefaultBaseColor. Alpha is ignored; the draw plan sets it.
//
// Parameters:
//   - c: the unselected color
//
// Returns:
//   - SceneGridBuilderOption: functional option to set the base color
func WithBaseColor(c common.Color) SceneGridBuilderOption {
	return func(s *sceneGrid) {
		s.baseColor = c
	}
}

// WithLabel names the grid in log messages and errors.
//
// Parameters:
//   - label: the grid name
//
// Returns:
//   - SceneGridBuilderOption: functional option to set the label
func WithLabel(label string) SceneGridBuilderOption {
	return func(s *sceneGrid) {
		s.label = label
	}
}
