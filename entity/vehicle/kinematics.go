package vehicle

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

const (
	kmhToMs      = 1 / 3.6 // km/h转换为m/s
	waitingSpeed = .1      // 低于该速度视为等待（km/h）
)

// integrate 运动学更新
// 功能：速度向目标速度靠近（受加减速度限制），再沿行驶方向推进位置
// 参数：target-目标速度，dt-时间步长
// 返回：更新前的位置
// 算法说明：
// 1. 低于目标速度时按加速度加速，高于时按减速度减速，不越过目标
// 2. 速度截断到[0, MaxSpeed]
// 3. 位移 = 速度(m/s) * dt
// 4. 更新等待状态，等待中累计等待时间
func (v *Vehicle) integrate(target, dt float64) (from orb.Point) {
	v.TargetSpeed = target
	switch {
	case v.Speed < target:
		v.Speed = math.Min(v.Speed+v.Acceleration*dt, target)
	case v.Speed > target:
		v.Speed = math.Max(v.Speed-v.Deceleration*dt, target)
	}
	v.Speed = lo.Clamp(v.Speed, 0, v.MaxSpeed)

	from = v.Position
	ds := v.Speed * kmhToMs * dt
	dx, dy := v.Heading.Unit()
	v.Position = orb.Point{from.X() + dx*ds, from.Y() + dy*ds}

	v.IsWaiting = v.Speed < waitingSpeed
	if v.IsWaiting {
		v.WaitTime += dt
	}
	return
}
