package task

import (
	"context"
	"flag"

	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/output"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/container"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// applyScheduled 执行到期的预设干预动作
// 参数：schedule-以执行时刻为优先级的动作队列
func (ctx *Context) applyScheduled(schedule *container.PriorityQueue[config.Action]) {
	for _, a := range schedule.PopUntil(ctx.clock.T) {
		pair, err := entity.ParsePair(a.Pair)
		if err != nil {
			log.Warnf("skip scheduled action %+v: %v", a, err)
			continue
		}
		ctx.ApplyAction(a.Intersection, pair, a.Duration)
	}
}

// step 驱动循环的一步
// 算法说明：
// 1. 执行到期的预设干预
// 2. 按概率生成一辆新车
// 3. 统计排队长度提供给自适应信控
// 4. 推进仿真
func (ctx *Context) step(schedule *container.PriorityQueue[config.Action]) {
	e := ctx.runtimeConfig.Engine
	ctx.applyScheduled(schedule)
	if ctx.generator.PTrue(e.Spawn.Probability) {
		ctx.AddRandomVehicles(1)
	}
	ctx.feedQueueLengths()
	ctx.Update(ctx.runtimeConfig.C.Step.Interval)
}

// Run 运行
// 功能：按配置驱动仿真Total步，每步输出统计记录
// 参数：recorder-统计记录输出
// 算法说明：
// 1. 开始仿真并生成初始车辆
// 2. 循环执行step，前Start步为预热，不输出记录
// 3. 定期输出心跳日志
// 4. 结束后关闭输出
func (ctx *Context) Run(recorder output.Recorder) error {
	c := ctx.runtimeConfig.C
	schedule := container.NewPriorityQueue[config.Action]()
	for _, a := range c.Actions {
		schedule.HeapPush(a, a.T)
	}

	ctx.Start()
	ctx.AddRandomVehicles(ctx.runtimeConfig.Engine.Spawn.Initial)
	for i := int32(0); i < c.Step.Total; i++ {
		ctx.step(schedule)

		if ctx.clock.InternalStep > c.Step.Start {
			r, _ := ctx.rewards.Latest()
			rec := output.StepRecord{
				Step:    ctx.clock.InternalStep,
				T:       ctx.clock.T,
				Metrics: ctx.GetMetrics(),
				Reward:  r,
			}
			if err := recorder.Record(rec); err != nil {
				log.Errorf("record step %d: %v", ctx.clock.InternalStep, err)
			}
		}

		if *heartBeatInterval > 0 && ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
			r, _ := ctx.rewards.Latest()
			log.Infof(
				"STEP: %d(%v) vehicles=%d reward=%.3f",
				ctx.clock.InternalStep, ctx.clock, ctx.vehicleManager.Len(), r.Total,
			)
		}
		if ctx.closed.Load() {
			log.Info("engine closed")
			break
		}
	}
	ctx.Pause()
	log.Infof("engine complete")
	return recorder.Close(context.Background())
}
