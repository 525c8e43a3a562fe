package task

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/analytics"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

// Start 开始（或继续）仿真，之后的Update生效
func (ctx *Context) Start() {
	ctx.clock.Start()
	log.Info("simulation started")
}

// Pause 暂停仿真，之后的Update不生效
func (ctx *Context) Pause() {
	ctx.clock.Pause()
	log.Info("simulation paused")
}

// Stop 停止仿真并删除全部车辆
// 说明：信号灯与时间保持不变
func (ctx *Context) Stop() {
	ctx.clock.Stop()
	ctx.vehicleManager.Clear()
	log.Info("simulation stopped")
}

// Reset 停止仿真并恢复初始状态
// 功能：删除全部车辆，重新创建信号灯，时间归零，清空奖励历史
func (ctx *Context) Reset() {
	ctx.Stop()
	ctx.Init()
	log.Info("simulation reset")
}

// IsRunning 是否在运行
func (ctx *Context) IsRunning() bool {
	return ctx.clock.Running()
}

// GetSimulationTime 当前仿真时间（秒）
func (ctx *Context) GetSimulationTime() float64 {
	return ctx.clock.T
}

// Update 推进仿真dt秒
// 功能：未运行或dt<=0时不做任何事
// 算法说明：
// 1. 推进时钟
// 2. 推进信号灯（车辆决策读到的是本步的信控）
// 3. 车辆决策与运动学更新
// 4. 计算奖励并加入历史
func (ctx *Context) Update(dt float64) {
	if !ctx.clock.Advance(dt) {
		return
	}
	ctx.junctionManager.Update(dt)
	ctx.vehicleManager.Update(dt)
	r := analytics.ComputeReward(
		ctx.GetMetrics(), ctx.runtimeConfig.Reward,
		ctx.clock.InternalStep, ctx.clock.T,
	)
	ctx.rewards.Push(r)
}

// CreateVehicle 创建车辆
// 参数：category-类别（为空时随机），o-覆盖值（可为nil）
// 返回：新车辆的快照；类别非法返回entity.ErrInvalidCategory
func (ctx *Context) CreateVehicle(category entity.Category, o *vehicle.Overrides) (vehicle.Vehicle, error) {
	return ctx.vehicleManager.Create(category, o)
}

// AddRandomVehicles 随机生成n辆车
func (ctx *Context) AddRandomVehicles(n int) []vehicle.Vehicle {
	return ctx.vehicleManager.AddRandom(n)
}

// RemoveVehicle 删除车辆，不存在时不做任何事
func (ctx *Context) RemoveVehicle(id int32) {
	ctx.vehicleManager.Remove(id)
}

// GetVehicle 获取车辆快照
func (ctx *Context) GetVehicle(id int32) (vehicle.Vehicle, bool) {
	return ctx.vehicleManager.Get(id)
}

// GetVehicles 全部车辆的快照
func (ctx *Context) GetVehicles() []vehicle.Vehicle {
	return ctx.vehicleManager.Vehicles()
}

// GetTrafficLights 全部信号灯的快照
func (ctx *Context) GetTrafficLights() []trafficlight.TrafficLight {
	return ctx.junctionManager.TrafficLights()
}

// GetMetrics 当前统计指标
func (ctx *Context) GetMetrics() analytics.Metrics {
	return analytics.ComputeMetrics(ctx.vehicleManager.Vehicles(), ctx.junctionManager)
}

// GetRLState 当前RL观测
func (ctx *Context) GetRLState() analytics.State {
	return analytics.EncodeState(ctx.vehicleManager.Vehicles(), ctx.junctionManager, ctx.environment)
}

// GetRLRewards 奖励历史（从旧到新，最多100条）
func (ctx *Context) GetRLRewards() []analytics.Reward {
	return ctx.rewards.Items()
}

// ApplyAction 强制路口某方向对绿灯duration秒，正交方向对同时红灯
// 说明：路口不存在或duration<=0时不做任何事
func (ctx *Context) ApplyAction(intersection string, pair entity.DirectionPair, duration float64) {
	ctx.junctionManager.ApplyAction(junction.Action{
		Intersection: intersection,
		Pair:         pair,
		Duration:     duration,
	})
}

// SetQueueLength 设置路口某方向对的排队长度（自适应信控参考）
func (ctx *Context) SetQueueLength(intersection string, pair entity.DirectionPair, n int) {
	ctx.junctionManager.SetQueueLength(intersection, pair, n)
}

// SetEnvironment 设置环境指标（进入RL观测）
func (ctx *Context) SetEnvironment(timeOfDay, weather float64) {
	ctx.environment = config.Environment{TimeOfDay: timeOfDay, Weather: weather}
}

// queueKey 路口+方向对
type queueKey struct {
	intersection string
	pair         entity.DirectionPair
}

// feedQueueLengths 按车辆等待状态统计各路口各方向对的排队长度，并提供给信控
func (ctx *Context) feedQueueLengths() {
	waiting := lo.Filter(ctx.vehicleManager.Vehicles(), func(v vehicle.Vehicle, _ int) bool {
		return v.IsWaiting
	})
	queues := lo.CountValuesBy(waiting, func(v vehicle.Vehicle) queueKey {
		return queueKey{v.Intersection, v.Heading.Pair()}
	})
	for _, id := range ctx.junctionManager.IDs() {
		for _, pair := range entity.Pairs {
			ctx.junctionManager.SetQueueLength(id, pair, queues[queueKey{id, pair}])
		}
	}
}
