package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrConfigExtension is returned when a config path does not end in .json.
var ErrConfigExtension = errors.New("config file must have .json extension")

const maxConfigSize = 1 * 1024 * 1024

// DisplayConfig is the on-disk form of the viewer configuration. Every field is optional;
// omitted fields keep their defaults, so partial configs are safe.
type DisplayConfig struct {
	ShowGrid       *bool       `json:"show_grid,omitempty"`
	GridMode       *GridMode   `json:"grid_mode,omitempty"`
	SelectionColor *[4]float32 `json:"selection_color,omitempty"` // RGBA in [0, 1]

	Grid *GridConfig `json:"grid,omitempty"`
}

// GridConfig optionally overrides the grid shown by the viewer.
type GridConfig struct {
	Dim *[3]int     `json:"dim,omitempty"`
	H   *float32    `json:"h,omitempty"`
	Pos *[3]float32 `json:"pos,omitempty"`
}

// LoadDisplayConfig reads and validates a DisplayConfig from a JSON file no larger than 1MB.
//
// Parameters:
//   - path: the config file path, which must have a .json extension
//
// Returns:
//   - *DisplayConfig: the parsed config
//   - error: an error if the file cannot be read, parsed or validated
func LoadDisplayConfig(path string) (*DisplayConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("%w, got %q", ErrConfigExtension, ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &DisplayConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *DisplayConfig) Validate() error {
	if c.SelectionColor != nil {
		for i, v := range c.SelectionColor {
			if v < 0 || v > 1 {
				return fmt.Errorf("selection_color[%d] must be between 0 and 1, got %g", i, v)
			}
		}
	}
	if c.Grid != nil {
		if err := c.Grid.Apply(grid.New([3]int{1, 1, 1}, 1, mgl32.Vec3{})).Validate(); err != nil {
			return fmt.Errorf("grid: %w", err)
		}
	}
	return nil
}

// Apply returns base with every set field of c replaced. A nil c returns base unchanged.
//
// Parameters:
//   - base: the grid to start from
//
// Returns:
//   - grid.Grid: the merged grid
func (c *GridConfig) Apply(base grid.Grid) grid.Grid {
	if c == nil {
		return base
	}
	if c.Dim != nil {
		base.Dim = *c.Dim
	}
	if c.H != nil {
		base.H = *c.H
	}
	if c.Pos != nil {
		base.Pos = mgl32.Vec3(*c.Pos)
	}
	return base
}
