package config_test

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

func TestDefault(t *testing.T) {
	rc := config.Default()
	assert.Equal(t, []string{"intersection-1", "intersection-2", "intersection-3", "intersection-4"}, rc.Engine.Intersections)
	assert.Equal(t, 30., rc.Engine.Signal.Green)
	assert.Equal(t, 3., rc.Engine.Signal.Yellow)
	assert.Equal(t, 33., rc.Engine.Signal.Red)
	assert.Equal(t, config.DefaultReward(), rc.Reward)
	assert.Equal(t, 1., rc.C.Step.Interval)
	assert.Equal(t, 100, rc.Output.Batch)
}

func TestParse(t *testing.T) {
	data := []byte(`
control:
  step:
    start: 0
    total: 600
    interval: 0.5
  seed: 7
  actions:
    - t: 60
      intersection: a
      pair: north-south
      duration: 30
engine:
  intersections: [a, b]
  signal:
    green: 20
    yellow: 4
    adaptive: true
  spawn:
    initial: 10
    probability: 0.2
  reward:
    wait: -1
    throughput: 1
    fuel: 0
    emission: 0
    emergency: -10
`)
	c, err := config.Parse(data)
	require.NoError(t, err)
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	assert.Equal(t, int32(600), rc.C.Step.Total)
	assert.Equal(t, 0.5, rc.C.Step.Interval)
	assert.Equal(t, uint64(7), rc.C.Seed)
	assert.Equal(t, 24., rc.Engine.Signal.Red)
	assert.Equal(t, 10., rc.Engine.Signal.Extension)
	assert.Equal(t, 3, rc.Engine.Signal.MaxExtensions)
	assert.Equal(t, -10., rc.Reward.Emergency)
	assert.Len(t, rc.C.Actions, 1)
}

func TestParseStrict(t *testing.T) {
	_, err := config.Parse([]byte("engine:\n  unknown_field: 1\n"))
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	cases := []config.Config{
		{Engine: config.Engine{Intersections: []string{"a", "a"}}},
		{Engine: config.Engine{Signal: config.Signal{Green: -1}}},
		{Engine: config.Engine{Spawn: config.Spawn{Probability: 2}}},
		{Control: config.Control{Actions: []config.Action{{Intersection: "nope"}}}},
		{Output: config.Output{URI: "mongodb://localhost"}},
	}
	for _, c := range cases {
		_, err := config.NewRuntimeConfig(c)
		assert.True(t, errors.Is(err, config.ErrInvalidConfig), "%+v", c)
	}
}

func TestExampleConfig(t *testing.T) {
	data, err := os.ReadFile("../../configs/example.yml")
	require.NoError(t, err)
	c, err := config.Parse(data)
	require.NoError(t, err)
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	assert.Equal(t, int32(3600), rc.C.Step.Total)
	assert.Len(t, rc.C.Actions, 1)
	assert.True(t, rc.Engine.Signal.Adaptive)
	assert.Equal(t, "frame.geojson", rc.Output.GeoJSON)
}
