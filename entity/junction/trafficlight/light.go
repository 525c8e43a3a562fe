// 提供单个方向对的信号灯状态机
// 正常情况下按 绿->黄->红->绿 循环，时间由Update(dt)推进；
// 强制相位（紧急干预）期间相位冻结，干预结束后从当前状态继续循环
package trafficlight

import (
	"fmt"

	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

// Timing 信号灯配时（秒）
type Timing struct {
	Green  float64
	Yellow float64
	Red    float64
}

// Cycle 一个完整周期的时长
func (t Timing) Cycle() float64 {
	return t.Green + t.Yellow + t.Red
}

// Duration 相位的配置时长
func (t Timing) Duration(p entity.Phase) float64 {
	switch p {
	case entity.Green:
		return t.Green
	case entity.Yellow:
		return t.Yellow
	default:
		return t.Red
	}
}

// TrafficLight 某路口某方向对的信号灯
// 功能：维护当前相位与剩余时间，支持强制相位与绿灯延长
// 说明：同一路口两个方向对的绿灯互斥由junction负责协调，本结构不感知另一方向
type TrafficLight struct {
	ID           string               // 路口ID-方向对
	Intersection string               // 所属路口ID
	Pair         entity.DirectionPair // 方向对

	Phase         entity.Phase // 当前相位
	TimeRemaining float64      // 当前相位剩余时间

	GreenTime  float64 // 绿灯时长
	YellowTime float64 // 黄灯时长
	RedTime    float64 // 红灯时长
	CycleTime  float64 // 周期时长

	Adaptive          bool // 是否允许根据排队延长绿灯
	QueueLength       int  // 排队长度（由调用方提供，仅供参考）
	EmergencyOverride bool // 是否处于强制相位

	overrideRemaining float64 // 强制相位剩余时间
}

// NewTrafficLight 创建信号灯
// 参数：intersection-路口ID，pair-方向对，timing-配时，adaptive-是否自适应，
// initial-初始相位，remaining-初始相位剩余时间
func NewTrafficLight(
	intersection string,
	pair entity.DirectionPair,
	timing Timing,
	adaptive bool,
	initial entity.Phase,
	remaining float64,
) *TrafficLight {
	return &TrafficLight{
		ID:            fmt.Sprintf("%s-%s", intersection, pair),
		Intersection:  intersection,
		Pair:          pair,
		Phase:         initial,
		TimeRemaining: remaining,
		GreenTime:     timing.Green,
		YellowTime:    timing.Yellow,
		RedTime:       timing.Red,
		CycleTime:     timing.Cycle(),
		Adaptive:      adaptive,
	}
}

// Timing 获取配时
func (l *TrafficLight) Timing() Timing {
	return Timing{Green: l.GreenTime, Yellow: l.YellowTime, Red: l.RedTime}
}

// OverrideRemaining 强制相位剩余时间，未处于强制相位时为0
func (l *TrafficLight) OverrideRemaining() float64 {
	return l.overrideRemaining
}

// Update 更新阶段，推进信号灯
// 功能：剩余时间减去dt，到期后切换到下一相位
// 参数：dt-时间步长
// 算法说明：
// 1. 强制相位期间：只倒计时，不切换相位；强制时间用完后清除标志。
// 剩余时间允许为负，超出部分在恢复后的第一次切换中扣除，
// 使同一路口两个方向对的倒计时保持同步
// 2. 正常情况：剩余时间<=0时切换相位，并把超出部分计入下一相位，保证周期总时长不漂移
func (l *TrafficLight) Update(dt float64) {
	if l.EmergencyOverride {
		l.overrideRemaining -= dt
		l.TimeRemaining -= dt
		if l.overrideRemaining <= 0 {
			l.overrideRemaining = 0
			l.EmergencyOverride = false
			log.Debugf("traffic light %s override released in %s", l.ID, l.Phase)
		}
		return
	}
	if l.CycleTime <= 0 {
		return
	}
	l.TimeRemaining -= dt
	// 切换相位
	for l.TimeRemaining <= 0 {
		l.Phase = l.Phase.Next()
		l.TimeRemaining += l.Timing().Duration(l.Phase)
	}
}

// Force 强制设置相位
// 功能：立即切换到指定相位并保持duration秒，期间不按周期切换
// 参数：phase-目标相位，remaining-相位剩余时间，duration-强制时长
func (l *TrafficLight) Force(phase entity.Phase, remaining, duration float64) {
	l.Phase = phase
	l.TimeRemaining = remaining
	l.EmergencyOverride = true
	l.overrideRemaining = duration
}

// Snapshot 对外展示的副本，剩余时间不小于0
func (l *TrafficLight) Snapshot() TrafficLight {
	c := *l
	c.TimeRemaining = max(c.TimeRemaining, 0)
	return c
}

// Extend 延长当前相位
func (l *TrafficLight) Extend(t float64) {
	l.TimeRemaining += t
}

// SetQueueLength 设置排队长度
func (l *TrafficLight) SetQueueLength(n int) {
	if n < 0 {
		n = 0
	}
	l.QueueLength = n
}

// PhaseIs 判断当前相位
func (l *TrafficLight) PhaseIs(p entity.Phase) bool {
	return l.Phase == p
}

func (l *TrafficLight) String() string {
	return fmt.Sprintf("TrafficLight{%s %s %.1fs override=%v}", l.ID, l.Phase, l.TimeRemaining, l.EmergencyOverride)
}
