package grid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCorners(t *testing.T) {
	g := New([3]int{4, 2, 3}, 0.5, mgl32.Vec3{-1, 0, 2})

	assert.Equal(t, mgl32.Vec3{-1, 0, 2}, g.Min())
	assert.Equal(t, mgl32.Vec3{1, 1, 3.5}, g.Max())
	assert.Equal(t, mgl32.Vec3{2, 1, 1.5}, g.Extent())
	assert.Equal(t, 24, g.CellCount())
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want error
	}{
		{"valid", New([3]int{1, 2, 3}, 1, mgl32.Vec3{}), nil},
		{"zero dims are valid", New([3]int{0, 0, 0}, 1, mgl32.Vec3{}), nil},
		{"negative y", New([3]int{1, -2, 3}, 1, mgl32.Vec3{}), ErrNegativeDim},
		{"zero cell size", New([3]int{1, 1, 1}, 0, mgl32.Vec3{}), ErrNonPositiveCellSize},
		{"negative cell size", New([3]int{1, 1, 1}, -0.5, mgl32.Vec3{}), ErrNonPositiveCellSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGridValidateNamesAxis(t *testing.T) {
	err := New([3]int{1, 1, -4}, 1, mgl32.Vec3{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axis z has -4 cells")
}

func TestGridString(t *testing.T) {
	g := New([3]int{8, 4, 2}, 0.25, mgl32.Vec3{1, 2, 3})
	assert.Equal(t, "grid{dim=8x4x2 h=0.25 pos=(1, 2, 3)}", g.String())
}
