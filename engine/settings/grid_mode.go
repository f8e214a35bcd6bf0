package settings

import (
	"errors"
	"fmt"
	"strings"
)

// GridMode selects how much of a grid wireframe is drawn when grids are shown.
type GridMode int

const (
	// GridModeHidden draws only the bounding box.
	GridModeHidden GridMode = iota

	// GridModeMinFaceCells draws the bounding box and the cell lines of the three faces touching the grid origin.
	GridModeMinFaceCells

	// GridModeAllFaceCells draws the bounding box and the cell lines of all six faces.
	GridModeAllFaceCells

	gridModeCount
)

var gridModeNames = [...]string{
	GridModeHidden:       "hidden",
	GridModeMinFaceCells: "min_faces",
	GridModeAllFaceCells: "all_faces",
}

// ErrUnknownGridMode is returned when parsing a grid mode name that does not exist.
var ErrUnknownGridMode = errors.New("unknown grid mode")

func (m GridMode) String() string {
	if m < 0 || m >= gridModeCount {
		return fmt.Sprintf("GridMode(%d)", int(m))
	}
	return gridModeNames[m]
}

// Valid reports whether m is one of the defined modes.
func (m GridMode) Valid() bool {
	return m >= 0 && m < gridModeCount
}

// Next returns the mode after m, wrapping from GridModeAllFaceCells back to GridModeHidden.
func (m GridMode) Next() GridMode {
	return (m + 1) % gridModeCount
}

// ParseGridMode parses a mode name as produced by String. Matching is case-insensitive.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - GridMode: the parsed mode
//   - error: ErrUnknownGridMode wrapped with the input if s names no mode
func ParseGridMode(s string) (GridMode, error) {
	for m, name := range gridModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return GridMode(m), nil
		}
	}
	return GridModeHidden, fmt.Errorf("%w %q", ErrUnknownGridMode, s)
}

// MarshalText implements encoding.TextMarshaler so modes serialize by name.
func (m GridMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownGridMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *GridMode) UnmarshalText(text []byte) error {
	parsed, err := ParseGridMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
