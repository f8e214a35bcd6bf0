package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTable(t *testing.T) {
	tbl := newHandleTable[int]()

	a := tbl.reserve()
	b := tbl.reserve()
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, tbl.len())

	v, ok := tbl.get(a)
	require.True(t, ok)
	assert.Zero(t, v)

	assert.True(t, tbl.set(a, 7))
	assert.False(t, tbl.set(99, 1))
	v, _ = tbl.get(a)
	assert.Equal(t, 7, v)

	removed, ok := tbl.remove(a)
	assert.True(t, ok)
	assert.Equal(t, 7, removed)
	_, ok = tbl.remove(a)
	assert.False(t, ok)

	c := tbl.reserve()
	assert.NotEqual(t, a, c, "released handles must not be reused")

	tbl.insert(42, 3)
	seen := map[BufferHandle]int{}
	tbl.drain(func(h BufferHandle, v int) { seen[h] = v })
	assert.Equal(t, map[BufferHandle]int{b: 0, c: 0, 42: 3}, seen)
	assert.Zero(t, tbl.len())
}

func TestStateStack(t *testing.T) {
	var s stateStack

	assert.Equal(t, StateDepthTest, s.push(StateDepthTest))
	got := s.push(StateBlend | StateLineSmooth)
	assert.True(t, got.Has(StateDepthTest|StateBlend|StateLineSmooth))

	cur, ok := s.pop()
	assert.True(t, ok)
	assert.Equal(t, StateDepthTest, cur)

	cur, ok = s.pop()
	assert.True(t, ok)
	assert.Zero(t, cur)

	_, ok = s.pop()
	assert.False(t, ok, "unbalanced pop")
}

func TestStateFlagsHas(t *testing.T) {
	f := StateBlend | StateLineSmooth
	assert.True(t, f.Has(StateBlend))
	assert.True(t, f.Has(StateBlend|StateLineSmooth))
	assert.False(t, f.Has(StateDepthTest))
	assert.True(t, f.Has(0))
}

func TestBackendTypeString(t *testing.T) {
	assert.Equal(t, "wgpu", BackendTypeWGPU.String())
	assert.Equal(t, "gl", BackendTypeGL.String())
	assert.Equal(t, "unknown", RendererBackendType(9).String())
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{maxDrawsPerFrame: 1024}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithForceSoftwareRenderer(true),
		WithMaxDrawsPerFrame(0),
	} {
		opt(r)
	}

	require.NotNil(t, r.pendingPresentMode)
	assert.Equal(t, PresentModeUncapped, *r.pendingPresentMode)
	require.NotNil(t, r.pendingMSAA)
	assert.Equal(t, MSAAOff, *r.pendingMSAA)
	assert.True(t, r.forceFallbackAdapter)
	assert.Equal(t, 1024, r.maxDrawsPerFrame)

	WithMaxDrawsPerFrame(64)(r)
	assert.Equal(t, 64, r.maxDrawsPerFrame)
}
