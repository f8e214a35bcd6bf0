package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/Carmen-Shannon/gridview/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDisplayConfigFull(t *testing.T) {
	path := writeConfig(t, "display.json", `{
		"show_grid": false,
		"grid_mode": "all_faces",
		"selection_color": [0, 1, 0, 1],
		"grid": {"dim": [8, 4, 2], "h": 0.5, "pos": [1, 2, 3]}
	}`)

	cfg, err := LoadDisplayConfig(path)
	require.NoError(t, err)

	d := NewDisplay(WithConfig(cfg))
	want := Snapshot{Show: false, Mode: GridModeAllFaceCells, Highlight: common.Color{G: 1, A: 1}}
	if diff := cmp.Diff(want, d.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	g := cfg.Grid.Apply(grid.New([3]int{1, 1, 1}, 1, mgl32.Vec3{}))
	assert.Equal(t, grid.New([3]int{8, 4, 2}, 0.5, mgl32.Vec3{1, 2, 3}), g)
}

func TestLoadDisplayConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"grid_mode": "hidden"}`)

	cfg, err := LoadDisplayConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.ShowGrid)
	assert.Nil(t, cfg.Grid)

	d := NewDisplay(WithConfig(cfg))
	assert.True(t, d.ShowGrid())
	assert.Equal(t, GridModeHidden, d.GridMode())
	assert.Equal(t, DefaultSelectionColor, d.SelectionColor())

	base := grid.New([3]int{2, 2, 2}, 1, mgl32.Vec3{})
	assert.Equal(t, base, cfg.Grid.Apply(base))
}

func TestLoadDisplayConfigErrors(t *testing.T) {
	t.Run("extension", func(t *testing.T) {
		_, err := LoadDisplayConfig(writeConfig(t, "display.yaml", `{}`))
		require.ErrorIs(t, err, ErrConfigExtension)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadDisplayConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"show_grid": true` + strings.Repeat(" ", maxConfigSize) + `}`
		_, err := LoadDisplayConfig(writeConfig(t, "big.json", body))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := LoadDisplayConfig(writeConfig(t, "mode.json", `{"grid_mode": "sparkly"}`))
		require.ErrorIs(t, err, ErrUnknownGridMode)
	})

	t.Run("color out of range", func(t *testing.T) {
		_, err := LoadDisplayConfig(writeConfig(t, "color.json", `{"selection_color": [2, 0, 0, 1]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "selection_color[0]")
	})

	t.Run("invalid grid", func(t *testing.T) {
		_, err := LoadDisplayConfig(writeConfig(t, "grid.json", `{"grid": {"h": 0}}`))
		require.ErrorIs(t, err, grid.ErrNonPositiveCellSize)
	})
}
