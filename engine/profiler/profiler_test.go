package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/gridview/common"
	"github.com/stretchr/testify/assert"
)

func TestTickReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	clock := time.Unix(0, 0)
	builds := 3
	p := NewProfiler(
		WithInterval(time.Second),
		WithCounter("grid_builds", func() int { return builds }),
	)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 59 {
		clock = clock.Add(time.Second / 120)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock = time.Unix(1, 0)
	assert.True(t, p.Tick())
	out := buf.String()
	assert.Contains(t, out, "[Profiler]")
	assert.Contains(t, out, "fps=60")
	assert.Contains(t, out, "grid_builds=3")

	buf.Reset()
	clock = clock.Add(time.Millisecond)
	assert.False(t, p.Tick(), "frame count and clock reset after a report")
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
