package task_test

import (
	"context"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
	"github.com/tsinghua-fib-lab/signal-sim-rl/output"
	"github.com/tsinghua-fib-lab/signal-sim-rl/task"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

func newContext(t *testing.T, c config.Config) *task.Context {
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	return task.NewContext(rc)
}

func lightPhase(t *testing.T, ctx *task.Context, id string, pair entity.DirectionPair) entity.Phase {
	p, _, ok := ctx.JunctionManager().Light(id, pair)
	require.True(t, ok)
	return p
}

func TestUpdateRequiresRunning(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.AddRandomVehicles(5)
	before := ctx.GetVehicles()

	ctx.Update(1)
	assert.Equal(t, 0., ctx.GetSimulationTime())
	assert.Equal(t, before, ctx.GetVehicles())
	assert.Empty(t, ctx.GetRLRewards())

	ctx.Start()
	assert.True(t, ctx.IsRunning())
	ctx.Update(0)
	ctx.Update(-1)
	ctx.Update(math.Inf(1))
	ctx.Update(math.NaN())
	assert.Equal(t, 0., ctx.GetSimulationTime())
	assert.Equal(t, before, ctx.GetVehicles())

	ctx.Update(1)
	assert.Equal(t, 1., ctx.GetSimulationTime())
	assert.Len(t, ctx.GetRLRewards(), 1)

	ctx.Pause()
	ctx.Update(1)
	assert.Equal(t, 1., ctx.GetSimulationTime())
}

func TestStopAndReset(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.Start()
	ctx.AddRandomVehicles(10)
	for i := 0; i < 40; i++ {
		ctx.Update(1)
	}
	lights := ctx.GetTrafficLights()

	ctx.Stop()
	assert.False(t, ctx.IsRunning())
	assert.Empty(t, ctx.GetVehicles())
	assert.Equal(t, lights, ctx.GetTrafficLights())
	assert.Equal(t, 40., ctx.GetSimulationTime())

	ctx.Reset()
	assert.Equal(t, 0., ctx.GetSimulationTime())
	assert.Empty(t, ctx.GetRLRewards())
	assert.Equal(t, entity.Green, lightPhase(t, ctx, "intersection-1", entity.NorthSouth))
	assert.Equal(t, entity.Red, lightPhase(t, ctx, "intersection-1", entity.EastWest))
	assert.Len(t, ctx.GetTrafficLights(), 8)
}

func TestOverrideExclusivity(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.Start()
	ctx.AddRandomVehicles(20)
	ctx.ApplyAction("intersection-2", entity.NorthSouth, 30)
	for i := 0; i < 30; i++ {
		assert.Equal(t, entity.Green, lightPhase(t, ctx, "intersection-2", entity.NorthSouth), "t=%v", ctx.GetSimulationTime())
		assert.Equal(t, entity.Red, lightPhase(t, ctx, "intersection-2", entity.EastWest), "t=%v", ctx.GetSimulationTime())
		ctx.Update(1)
	}
	assert.Equal(t, 30., ctx.GetSimulationTime())
	assert.Equal(t, entity.Green, lightPhase(t, ctx, "intersection-2", entity.NorthSouth))
	assert.Equal(t, entity.Red, lightPhase(t, ctx, "intersection-2", entity.EastWest))
	// 未知路口不做任何事
	ctx.ApplyAction("nowhere", entity.NorthSouth, 30)
}

func TestRedLightScenario(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.Start()
	ctx.ApplyAction("intersection-1", entity.NorthSouth, 60)
	v, err := ctx.CreateVehicle(entity.Car, &vehicle.Overrides{
		Position:               &orb.Point{0, 210},
		Heading:                lo.ToPtr(entity.East),
		Speed:                  lo.ToPtr(40.),
		MaxSpeed:               lo.ToPtr(60.),
		Intersection:           lo.ToPtr("intersection-1"),
		DistanceToIntersection: lo.ToPtr(30.),
	})
	require.NoError(t, err)

	ctx.Update(1)
	got, ok := ctx.GetVehicle(v.ID)
	require.True(t, ok)
	assert.Less(t, got.Speed, 40.)

	for i := 0; i < 5; i++ {
		ctx.Update(1)
	}
	got, _ = ctx.GetVehicle(v.ID)
	assert.Equal(t, 0., got.Speed)
	assert.True(t, got.IsWaiting)
	assert.Greater(t, got.WaitTime, 0.)

	m := ctx.GetMetrics()
	assert.Equal(t, 1, m.TotalVehicles)
	assert.Equal(t, 10., m.CongestionIndex)
	assert.Equal(t, 1, ctx.GetRLState().QueueLengths[entity.East.Index()])

	ctx.RemoveVehicle(v.ID)
	ctx.RemoveVehicle(v.ID)
	assert.Equal(t, 0, ctx.GetMetrics().TotalVehicles)
}

func TestCreateVehicleInvalidCategory(t *testing.T) {
	ctx := newContext(t, config.Config{})
	_, err := ctx.CreateVehicle("spaceship", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidCategory)
	assert.Empty(t, ctx.GetVehicles())
}

func TestSetEnvironment(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.SetEnvironment(.25, 2)
	s := ctx.GetRLState()
	assert.Equal(t, .25, s.TimeOfDay)
	assert.Equal(t, 2., s.Weather)
	assert.Len(t, s.Phases, 4)
}

func TestRewardHistoryCapped(t *testing.T) {
	ctx := newContext(t, config.Config{})
	ctx.Start()
	ctx.AddRandomVehicles(3)
	for i := 0; i < 150; i++ {
		ctx.Update(.5)
	}
	rewards := ctx.GetRLRewards()
	require.Len(t, rewards, 100)
	assert.Equal(t, int32(51), rewards[0].Step)
	assert.Equal(t, int32(150), rewards[99].Step)
	for _, r := range rewards {
		assert.Equal(t, r.WaitTimePenalty+r.ThroughputBonus+r.FuelSavings+r.EmissionReduction+r.EmergencyBonus, r.Total)
	}
}

type memoryRecorder struct {
	records []output.StepRecord
	closed  bool
}

func (r *memoryRecorder) Record(rec output.StepRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryRecorder) Close(context.Context) error {
	r.closed = true
	return nil
}

func runConfig() config.Config {
	return config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 10, Total: 200, Interval: 1},
			Seed: 3,
			Actions: []config.Action{
				{T: 50, Intersection: "intersection-3", Pair: "east-west", Duration: 20},
				{T: 20, Intersection: "intersection-1", Pair: "east-west", Duration: 15},
			},
		},
		Engine: config.Engine{
			Signal: config.Signal{Adaptive: true},
			Spawn:  config.Spawn{Initial: 10, Probability: .3},
		},
	}
}

func TestRun(t *testing.T) {
	ctx := newContext(t, runConfig())
	rec := &memoryRecorder{}
	require.NoError(t, ctx.Run(rec))

	assert.True(t, rec.closed)
	require.Len(t, rec.records, 190)
	assert.Equal(t, int32(11), rec.records[0].Step)
	assert.Equal(t, int32(200), rec.records[189].Step)
	assert.False(t, ctx.IsRunning())
	assert.GreaterOrEqual(t, len(ctx.GetVehicles()), 10)
	for _, v := range ctx.GetVehicles() {
		assert.GreaterOrEqual(t, v.Speed, 0.)
		assert.LessOrEqual(t, v.Speed, v.MaxSpeed)
	}
}

func TestRunReproducible(t *testing.T) {
	a := newContext(t, runConfig())
	b := newContext(t, runConfig())
	ra, rb := &memoryRecorder{}, &memoryRecorder{}
	require.NoError(t, a.Run(ra))
	require.NoError(t, b.Run(rb))
	assert.Equal(t, ra.records, rb.records)
	assert.Equal(t, a.GetVehicles(), b.GetVehicles())
}

func TestRunClosed(t *testing.T) {
	ctx := newContext(t, runConfig())
	ctx.Close()
	rec := &memoryRecorder{}
	require.NoError(t, ctx.Run(rec))
	assert.Equal(t, 1., ctx.GetSimulationTime())
	assert.Empty(t, rec.records)
}
