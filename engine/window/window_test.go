package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestClientAPIString(t *testing.T) {
	assert.Equal(t, "none", ClientAPINone.String())
	assert.Equal(t, "opengl", ClientAPIOpenGL.String())
	assert.Equal(t, "ClientAPI(7)", ClientAPI(7).String())
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("grid"),
		WithClientAPI(ClientAPIOpenGL),
		WithSize(800, 600),
		WithSizeLimits(100, 50, 0, -1),
	} {
		opt(w)
	}

	assert.Equal(t, "grid", w.title)
	assert.Equal(t, ClientAPIOpenGL, w.ClientAPI())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 100, limit(w.minWidth))
	assert.Equal(t, glfw.DontCare, limit(w.maxWidth))
	assert.Equal(t, glfw.DontCare, limit(w.maxHeight))
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)

	// no context: these must not reach GLFW
	w.SwapBuffers()
	w.SwapInterval(1)
	w.RequestClose()
}
