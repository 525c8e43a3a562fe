package junction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

type fakeContext struct {
	rc *config.RuntimeConfig
}

func (c *fakeContext) JunctionManager() entity.IJunctionManager { return nil }
func (c *fakeContext) RuntimeConfig() *config.RuntimeConfig { return c.rc }

func newManager(t *testing.T, signal config.Signal) *junction.JunctionManager {
	rc, err := config.NewRuntimeConfig(config.Config{
		Engine: config.Engine{
			Intersections: []string{"a", "b"},
			Signal:        signal,
		},
	})
	require.NoError(t, err)
	m := junction.NewManager(&fakeContext{rc: rc})
	m.Init(rc.Engine.Intersections)
	return m
}

func phase(t *testing.T, m *junction.JunctionManager, id string, pair entity.DirectionPair) entity.Phase {
	p, _, ok := m.Light(id, pair)
	require.True(t, ok)
	return p
}

func greenCount(t *testing.T, m *junction.JunctionManager, id string) int {
	n := 0
	for _, pair := range entity.Pairs {
		if phase(t, m, id, pair) == entity.Green {
			n++
		}
	}
	return n
}

func TestInitialPhases(t *testing.T) {
	m := newManager(t, config.Signal{})
	assert.Equal(t, []string{"a", "b"}, m.IDs())

	p, remaining, ok := m.Light("a", entity.NorthSouth)
	require.True(t, ok)
	assert.Equal(t, entity.Green, p)
	assert.InDelta(t, 30, remaining, 1e-9)

	p, remaining, ok = m.Light("a", entity.EastWest)
	require.True(t, ok)
	assert.Equal(t, entity.Red, p)
	assert.InDelta(t, 33, remaining, 1e-9)

	_, _, ok = m.Light("missing", entity.NorthSouth)
	assert.False(t, ok)
	assert.Len(t, m.TrafficLights(), 4)
}

func TestFixedCycleNeverBothGreen(t *testing.T) {
	m := newManager(t, config.Signal{})
	for i := 0; i < 500; i++ {
		m.Update(0.7)
		assert.LessOrEqual(t, greenCount(t, m, "a"), 1, "step %d", i)
	}
}

func TestFixedCycleHandover(t *testing.T) {
	m := newManager(t, config.Signal{})
	for i := 0; i < 30; i++ {
		m.Update(1)
	}
	assert.Equal(t, entity.Yellow, phase(t, m, "a", entity.NorthSouth))
	assert.Equal(t, entity.Red, phase(t, m, "a", entity.EastWest))
	for i := 0; i < 3; i++ {
		m.Update(1)
	}
	assert.Equal(t, entity.Red, phase(t, m, "a", entity.NorthSouth))
	assert.Equal(t, entity.Green, phase(t, m, "a", entity.EastWest))
}

func TestApplyAction(t *testing.T) {
	m := newManager(t, config.Signal{})
	ok := m.ApplyAction(junction.Action{Intersection: "a", Pair: entity.EastWest, Duration: 20})
	require.True(t, ok)
	assert.Equal(t, entity.Green, phase(t, m, "a", entity.EastWest))
	assert.Equal(t, entity.Red, phase(t, m, "a", entity.NorthSouth))
	// 其他路口不受影响
	assert.Equal(t, entity.Green, phase(t, m, "b", entity.NorthSouth))

	for i := 0; i < 20; i++ {
		m.Update(1)
		assert.Equal(t, entity.Green, phase(t, m, "a", entity.EastWest), "step %d", i)
		assert.Equal(t, entity.Red, phase(t, m, "a", entity.NorthSouth), "step %d", i)
	}
	assert.False(t, m.Get("a").Light(entity.EastWest).EmergencyOverride)
	assert.False(t, m.Get("a").Light(entity.NorthSouth).EmergencyOverride)

	// 恢复周期后仍然互斥
	for i := 0; i < 300; i++ {
		m.Update(1)
		assert.LessOrEqual(t, greenCount(t, m, "a"), 1, "step %d", i)
	}
}

func TestApplyActionFractionalStep(t *testing.T) {
	for _, tc := range []struct{ duration, dt float64 }{
		{10.1, .4},
		{10.1, .25},
		{7.3, .5},
	} {
		m := newManager(t, config.Signal{})
		require.True(t, m.ApplyAction(junction.Action{Intersection: "a", Pair: entity.EastWest, Duration: tc.duration}))
		for i := 0; i < 1000; i++ {
			m.Update(tc.dt)
			ns := phase(t, m, "a", entity.NorthSouth)
			ew := phase(t, m, "a", entity.EastWest)
			if ns == entity.Green {
				require.Equal(t, entity.Red, ew, "duration %v dt %v step %d", tc.duration, tc.dt, i)
			}
			if ew == entity.Green {
				require.Equal(t, entity.Red, ns, "duration %v dt %v step %d", tc.duration, tc.dt, i)
			}
		}
		// 对外展示的剩余时间不为负
		_, nsRemaining, _ := m.Light("a", entity.NorthSouth)
		_, ewRemaining, _ := m.Light("a", entity.EastWest)
		assert.GreaterOrEqual(t, nsRemaining, 0.)
		assert.GreaterOrEqual(t, ewRemaining, 0.)
	}
}

func TestApplyActionIgnored(t *testing.T) {
	m := newManager(t, config.Signal{})
	assert.False(t, m.ApplyAction(junction.Action{Intersection: "missing", Pair: entity.EastWest, Duration: 10}))
	assert.False(t, m.ApplyAction(junction.Action{Intersection: "a", Pair: entity.EastWest, Duration: 0}))
	assert.False(t, m.ApplyAction(junction.Action{Intersection: "a", Pair: "up-down", Duration: 10}))
	assert.Equal(t, entity.Green, phase(t, m, "a", entity.NorthSouth))
	assert.Equal(t, entity.Red, phase(t, m, "a", entity.EastWest))
}

func TestAdaptiveExtension(t *testing.T) {
	m := newManager(t, config.Signal{Adaptive: true})
	m.SetQueueLength("a", entity.NorthSouth, 5)
	m.SetQueueLength("a", entity.EastWest, 1)

	// 绿灯30秒，延长3次，每次10秒
	for i := 0; i < 59; i++ {
		m.Update(1)
		require.Equal(t, entity.Green, phase(t, m, "a", entity.NorthSouth), "step %d", i)
		require.Equal(t, entity.Red, phase(t, m, "a", entity.EastWest), "step %d", i)
	}
	m.Update(1)
	assert.Equal(t, entity.Yellow, phase(t, m, "a", entity.NorthSouth))
	for i := 0; i < 3; i++ {
		m.Update(1)
	}
	assert.Equal(t, entity.Red, phase(t, m, "a", entity.NorthSouth))
	assert.Equal(t, entity.Green, phase(t, m, "a", entity.EastWest))

	// 路口b未设置排队，按固定周期
	assert.Equal(t, entity.Red, phase(t, m, "b", entity.NorthSouth))
}

func TestAdaptiveShorterQueueNoExtension(t *testing.T) {
	m := newManager(t, config.Signal{Adaptive: true})
	m.SetQueueLength("a", entity.NorthSouth, 1)
	m.SetQueueLength("a", entity.EastWest, 5)
	for i := 0; i < 30; i++ {
		m.Update(1)
	}
	assert.Equal(t, entity.Yellow, phase(t, m, "a", entity.NorthSouth))
}

func TestGetOrError(t *testing.T) {
	m := newManager(t, config.Signal{})
	j, err := m.GetOrError("b")
	require.NoError(t, err)
	assert.Equal(t, "b", j.ID())

	_, err = m.GetOrError("missing")
	assert.ErrorIs(t, err, junction.ErrNoJunction)
	assert.Panics(t, func() { m.Get("missing") })
}
