package settings

import "github.com/Carmen-Shannon/gridview/common"

// DisplayBuilderOption is a functional option for configuring display settings.
// Use the With* functions to create options.
type DisplayBuilderOption func(*displaySettings)

// WithShowGrid sets whether grids are drawn.
//
// Parameters:
//   - show: true to draw grids
//
// Returns:
//   - DisplayBuilderOption: option function to apply
func WithShowGrid(show bool) DisplayBuilderOption {
	return func(d *displaySettings) {
		d.showGrid = show
	}
}

// WithGridMode sets the initial grid detail mode. Invalid modes keep the default.
//
// Parameters:
//   - mode: the grid mode
//
// Returns:
//   - DisplayBuilderOption: option function to apply
func WithGridMode(mode GridMode) DisplayBuilderOption {
	return func(d *displaySettings) {
		if mode.Valid() {
			d.gridMode = mode
		}
	}
}

// WithSelectionColor sets the selection highlight color.
//
// Parameters:
//   - c: the highlight color
//
// Returns:
//   - DisplayBuilderOption: option function to apply
func WithSelectionColor(c common.Color) DisplayBuilderOption {
	return func(d *displaySettings) {
		d.selectionColor = c
	}
}

// WithConfig applies every field set in cfg. A nil cfg is a no-op.
//
// Parameters:
//   - cfg: a loaded display config
//
// Returns:
//   - DisplayBuilderOption: option function to apply
func WithConfig(cfg *DisplayConfig) DisplayBuilderOption {
	return func(d *displaySettings) {
		if cfg == nil {
			return
		}
		if cfg.ShowGrid != nil {
			d.showGrid = *cfg.ShowGrid
		}
		if cfg.GridMode != nil && cfg.GridMode.Valid() {
			d.gridMode = *cfg.GridMode
		}
		if cfg.SelectionColor != nil {
			c := *cfg.SelectionColor
			d.selectionColor = common.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
	}
}
