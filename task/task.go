package task

import (
	"sync/atomic"

	"github.com/tsinghua-fib-lab/signal-sim-rl/analytics"
	"github.com/tsinghua-fib-lab/signal-sim-rl/clock"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/randengine"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，是引擎对外的唯一入口
// 说明：单写者模型，所有方法都应在同一个goroutine中调用；
// 对外返回的车辆、信号灯都是拷贝
type Context struct {
	// 关闭指令（可由其他goroutine设置，Run在下一步结束）
	closed atomic.Bool

	// 时钟
	clock *clock.Clock
	// 随机数生成器
	generator *randengine.Engine

	// Junction管理器
	junctionManager *junction.JunctionManager
	// Vehicle管理器
	vehicleManager *vehicle.VehicleManager

	// 外部提供的环境指标
	environment config.Environment
	// 奖励历史
	rewards *analytics.RewardHistory

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
}

// NewContext 创建新的仿真任务上下文
// 功能：创建时钟、随机数引擎与各个管理器，并初始化路口信控
// 参数：rc-运行时配置
// 返回：初始化完成（处于停止状态）的Context实例
func NewContext(rc *config.RuntimeConfig) *Context {
	ctx := &Context{
		clock:         clock.New(),
		generator:     randengine.New(rc.C.Seed),
		environment:   rc.Engine.Environment,
		rewards:       analytics.NewRewardHistory(analytics.DefaultHistoryCapacity),
		runtimeConfig: rc,
	}
	ctx.junctionManager = junction.NewManager(ctx)
	ctx.vehicleManager = vehicle.NewManager(ctx, ctx.generator)
	ctx.Init()
	return ctx
}

// Init 初始化
// 功能：时钟归零，清空车辆与奖励历史，重新创建全部路口信控
func (ctx *Context) Init() {
	ctx.clock.Init()
	ctx.vehicleManager.Clear()
	ctx.junctionManager.Init(ctx.runtimeConfig.Engine.Intersections)
	ctx.rewards.Clear()
}

func (ctx *Context) JunctionManager() entity.IJunctionManager {
	return ctx.junctionManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Close 通知Run在当前步结束后退出
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
