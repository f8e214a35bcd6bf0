package settings

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridModeString(t *testing.T) {
	assert.Equal(t, "hidden", GridModeHidden.String())
	assert.Equal(t, "min_faces", GridModeMinFaceCells.String())
	assert.Equal(t, "all_faces", GridModeAllFaceCells.String())
	assert.Equal(t, "GridMode(7)", GridMode(7).String())
}

func TestParseGridMode(t *testing.T) {
	for _, m := range []GridMode{GridModeHidden, GridModeMinFaceCells, GridModeAllFaceCells} {
		got, err := ParseGridMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseGridMode(" ALL_FACES ")
	require.NoError(t, err)
	assert.Equal(t, GridModeAllFaceCells, got)

	_, err = ParseGridMode("wireframe")
	require.ErrorIs(t, err, ErrUnknownGridMode)
}

func TestGridModeNext(t *testing.T) {
	assert.Equal(t, GridModeMinFaceCells, GridModeHidden.Next())
	assert.Equal(t, GridModeAllFaceCells, GridModeMinFaceCells.Next())
	assert.Equal(t, GridModeHidden, GridModeAllFaceCells.Next())
}

func TestNewDisplayDefaults(t *testing.T) {
	d := NewDisplay()
	assert.True(t, d.ShowGrid())
	assert.Equal(t, GridModeMinFaceCells, d.GridMode())
	assert.Equal(t, DefaultSelectionColor, d.SelectionColor())
}

func TestNewDisplayOptions(t *testing.T) {
	red := common.Color{R: 1, A: 1}
	d := NewDisplay(
		WithShowGrid(false),
		WithGridMode(GridModeAllFaceCells),
		WithSelectionColor(red),
		WithGridMode(GridMode(42)),
	)
	assert.Equal(t, Snapshot{Show: false, Mode: GridModeAllFaceCells, Highlight: red}, d.Snapshot())
}

func TestDisplayToggles(t *testing.T) {
	d := NewDisplay()

	assert.False(t, d.ToggleShowGrid())
	assert.True(t, d.ToggleShowGrid())

	d.SetGridMode(GridModeHidden)
	assert.Equal(t, GridModeMinFaceCells, d.CycleGridMode())

	d.SetGridMode(GridMode(-1))
	assert.Equal(t, GridModeMinFaceCells, d.GridMode())

	d.SetShowGrid(false)
	assert.False(t, d.ShowGrid())
}

func TestDisplayConcurrentToggles(t *testing.T) {
	d := NewDisplay()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.ToggleShowGrid()
		}()
		go func() {
			defer wg.Done()
			_ = d.Snapshot()
		}()
	}
	wg.Wait()
	// An even number of toggles restores the default.
	assert.True(t, d.ShowGrid())
}

func TestSnapshotIsProvider(t *testing.T) {
	var p Provider = Snapshot{Show: true, Mode: GridModeHidden, Highlight: DefaultSelectionColor}
	assert.True(t, p.ShowGrid())
	assert.Equal(t, GridModeHidden, p.GridMode())
	assert.Equal(t, DefaultSelectionColor, p.SelectionColor())
}
