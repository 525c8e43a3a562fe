package clock_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/signal-sim-rl/clock"
)

func TestLifecycle(t *testing.T) {
	c := clock.New()
	assert.False(t, c.Running())
	assert.False(t, c.Advance(1))
	assert.Equal(t, 0., c.T)

	c.Start()
	assert.True(t, c.Advance(1.5))
	assert.True(t, c.Advance(0.5))
	assert.Equal(t, 2., c.T)
	assert.Equal(t, int32(2), c.InternalStep)

	c.Pause()
	assert.False(t, c.Advance(1))
	assert.Equal(t, 2., c.T)

	c.Start()
	assert.False(t, c.Advance(0))
	assert.False(t, c.Advance(-1))
	assert.False(t, c.Advance(math.NaN()))
	assert.False(t, c.Advance(math.Inf(1)))
	assert.Equal(t, 2., c.T)
	assert.Equal(t, int32(2), c.InternalStep)

	c.Stop()
	assert.False(t, c.Running())
	assert.Equal(t, 2., c.T)

	c.Init()
	assert.Equal(t, 0., c.T)
	assert.Equal(t, int32(0), c.InternalStep)
}

func TestString(t *testing.T) {
	c := clock.New()
	c.Start()
	c.Advance(3600 + 2*60 + 3.5)
	assert.Equal(t, "01:02:03", c.String())
	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, m)
	assert.InDelta(t, 3.5, s, 1e-9)
}
