package clock

import (
	"fmt"
	"math"
)

// Clock 仿真时钟管理器
// 功能：管理仿真的运行状态与时间推进
// 说明：时钟内部没有计时器，时间只通过外部驱动调用Advance推进；
// 暂停或停止时Advance不生效
type Clock struct {
	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数

	running bool // 是否在运行
}

// New 创建新的时钟实例
// 说明：新建的时钟处于停止状态，时间为0
func New() *Clock {
	c := &Clock{}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 功能：重置步数与时间，并停止运行
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
	c.running = false
}

// Start 开始（或继续）运行
func (c *Clock) Start() {
	c.running = true
}

// Pause 暂停运行，时间保持不变
func (c *Clock) Pause() {
	c.running = false
}

// Stop 停止运行
// 说明：与Pause相同地停止推进，时间保留；实体清理由调用方负责
func (c *Clock) Stop() {
	c.running = false
}

// Running 是否在运行
func (c *Clock) Running() bool {
	return c.running
}

// Advance 推进时间
// 功能：若时钟在运行且dt为有限正数则推进dt秒并增加步数
// 返回：本次是否推进
func (c *Clock) Advance(dt float64) bool {
	if !c.running || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return false
	}
	c.InternalStep++
	c.T += dt
	return true
}

// String 获取时钟的字符串表示
// 返回：格式化的时间字符串（HH:MM:SS）
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
