package junction

import (
	"fmt"

	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

// Action 外部决策的信控动作
// 功能：令路口的某方向对强制绿灯Duration秒，正交方向对同时红灯
type Action struct {
	Intersection string               // 路口ID
	Pair         entity.DirectionPair // 放行方向对
	Duration     float64              // 持续时长（秒）
}

func (a Action) String() string {
	return fmt.Sprintf("Action{%s %s %.1fs}", a.Intersection, a.Pair, a.Duration)
}
