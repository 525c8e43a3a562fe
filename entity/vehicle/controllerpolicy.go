package vehicle

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

// policySignal 策略1：信控
// 功能：车辆所在方向对为红灯且距离路口不足停车判定距离时，目标速度为0
// 说明：路口不存在时视为无灯
func (m *VehicleManager) policySignal(v *Vehicle) (ac Action) {
	ac.V = mathutil.INF
	phase, _, ok := m.ctx.JunctionManager().Light(v.Intersection, v.Heading.Pair())
	if !ok {
		return
	}
	if phase == entity.Red && v.DistanceToIntersection >= 0 && v.DistanceToIntersection < stopDistance {
		ac.V = 0
	}
	return
}

// policyCarFollow 策略2：跟车
// 功能：跟车判定距离内存在前车时，目标速度不超过前车速度，也不超过自身最大速度的80%
func policyCarFollow(v *Vehicle, e controllerEnv) (ac Action) {
	ac.V = mathutil.INF
	if e.leader != nil && e.leaderGap <= followDistance {
		ac.V = math.Min(e.leader.Speed, followSpeedFactor*v.MaxSpeed)
	}
	return
}

// policyFreeFlow 策略3：自由流，不超过最大速度
func policyFreeFlow(v *Vehicle) Action {
	return Action{V: v.MaxSpeed}
}
