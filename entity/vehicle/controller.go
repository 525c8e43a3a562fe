package vehicle

import (
	"git.fiblab.net/general/common/v2/mathutil"
)

const (
	stopDistance      = 50 // 红灯停车判定距离（米）
	followDistance    = 20 // 跟车判定距离（米）
	followSpeedFactor = .8 // 跟车时不超过自身最大速度的比例
)

// Action 车辆动作
// 功能：描述一个策略给出的目标速度上限
type Action struct {
	V float64 // 目标速度（km/h）
}

// Update 更新车辆动作
// 功能：采用取最小的方式合并多个策略的动作，取最保守的目标速度
func (a *Action) Update(others ...Action) {
	for _, o := range others {
		if o.V < a.V {
			a.V = o.V
		}
	}
}

// controllerEnv 车辆决策时感知到的环境
type controllerEnv struct {
	leader    *Vehicle // 前车，可能为nil
	leaderGap float64  // 与前车的间距
}

// plan 计算车辆本步的目标速度
// 功能：综合信控、跟车与自由流三个策略
// 参数：v-车辆，vehicles-全部车辆（用于前车查询）
// 返回：合并后的动作
// 算法说明：
// 1. 初始动作为无约束
// 2. 分别计算三个策略的速度上限，取最小值
func (m *VehicleManager) plan(v *Vehicle, vehicles []*Vehicle) Action {
	e := controllerEnv{}
	e.leader, e.leaderGap = m.leaders.Leader(v, vehicles)

	ac := Action{V: mathutil.INF}
	ac.Update(
		m.policySignal(v),
		policyCarFollow(v, e),
		policyFreeFlow(v),
	)
	return ac
}
