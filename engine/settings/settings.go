// Package settings holds the user display toggles that control how grids are drawn.
package settings

import (
	"sync"

	"github.com/Carmen-Shannon/gridview/common"
)

// Provider is the read-only view of the display settings consumed by renderables each frame.
type Provider interface {
	// ShowGrid reports whether grids are drawn at all.
	//
	// Returns:
	//   - bool: true if grids are visible
	ShowGrid() bool

	// GridMode returns how much of each grid wireframe is drawn.
	//
	// Returns:
	//   - GridMode: the active mode
	GridMode() GridMode

	// SelectionColor returns the highlight color blended into selected objects.
	//
	// Returns:
	//   - common.Color: the highlight color
	SelectionColor() common.Color
}

// Display is the mutable display settings store. Input handlers toggle it while the render loop
// reads it through Provider; all methods are safe for concurrent use.
type Display interface {
	Provider

	// SetShowGrid turns grid drawing on or off.
	//
	// Parameters:
	//   - show: true to draw grids
	SetShowGrid(show bool)

	// ToggleShowGrid flips the show-grid flag.
	//
	// Returns:
	//   - bool: the new value
	ToggleShowGrid() bool

	// SetGridMode sets the grid detail mode. Invalid modes are ignored.
	//
	// Parameters:
	//   - mode: the new mode
	SetGridMode(mode GridMode)

	// CycleGridMode advances to the next grid mode.
	//
	// Returns:
	//   - GridMode: the new mode
	CycleGridMode() GridMode

	// SetSelectionColor sets the selection highlight color.
	//
	// Parameters:
	//   - c: the new highlight color
	SetSelectionColor(c common.Color)

	// Snapshot returns an immutable copy of the current values.
	//
	// Returns:
	//   - Snapshot: the copied settings
	Snapshot() Snapshot
}

// DefaultSelectionColor is the highlight color used when none is configured.
var DefaultSelectionColor = common.Color{R: 1, G: 1, B: 0, A: 1}

// displaySettings is the implementation of the Display interface.
type displaySettings struct {
	mu *sync.Mutex

	showGrid       bool
	gridMode       GridMode
	selectionColor common.Color
}

var _ Display = &displaySettings{}

// NewDisplay creates a Display with grids shown in GridModeMinFaceCells and the default selection color,
// then applies options in order.
//
// Parameters:
//   - options: functional options to configure the settings
//
// Returns:
//   - Display: the settings store
func NewDisplay(options ...DisplayBuilderOption) Display {
	d := &displaySettings{
		mu:             &sync.Mutex{},
		showGrid:       true,
		gridMode:       GridModeMinFaceCells,
		selectionColor: DefaultSelectionColor,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *displaySettings) ShowGrid() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.showGrid
}

func (d *displaySettings) GridMode() GridMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gridMode
}

func (d *displaySettings) SelectionColor() common.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectionColor
}

func (d *displaySettings) SetShowGrid(show bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.showGrid = show
}

func (d *displaySettings) ToggleShowGrid() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.showGrid = !d.showGrid
	return d.showGrid
}

func (d *displaySettings) SetGridMode(mode GridMode) {
	if !mode.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gridMode = mode
}

func (d *displaySettings) CycleGridMode() GridMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gridMode = d.gridMode.Next()
	return d.gridMode
}

func (d *displaySettings) SetSelectionColor(c common.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectionColor = c
}

func (d *displaySettings) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		Show:      d.showGrid,
		Mode:      d.gridMode,
		Highlight: d.selectionColor,
	}
}

// Snapshot is a plain-value Provider, useful for freezing settings for a frame or in tests.
type Snapshot struct {
	Show      bool
	Mode      GridMode
	Highlight common.Color
}

var _ Provider = Snapshot{}

func (s Snapshot) ShowGrid() bool               { return s.Show }
func (s Snapshot) GridMode() GridMode           { return s.Mode }
func (s Snapshot) SelectionColor() common.Color { return s.Highlight }
