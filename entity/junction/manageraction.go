package junction

import (
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

// ApplyAction 执行外部信控动作
// 功能：强制指定路口的方向对绿灯，正交方向对红灯，持续a.Duration秒
// 参数：a-信控动作
// 返回：是否执行；路口不存在或时长非正时不做任何事
func (m *JunctionManager) ApplyAction(a Action) bool {
	j, ok := m.data[a.Intersection]
	if !ok {
		log.Debugf("ignore %v: junction does not exist", a)
		return false
	}
	if a.Pair != entity.NorthSouth && a.Pair != entity.EastWest {
		log.Warnf("ignore %v: invalid direction pair", a)
		return false
	}
	if a.Duration <= 0 {
		log.Warnf("ignore %v: invalid duration", a)
		return false
	}
	j.force(a.Pair, a.Duration)
	log.Debugf("apply %v", a)
	return true
}

// SetQueueLength 设置路口某方向对的排队长度（仅供自适应信控参考）
// 说明：路口不存在时不做任何事
func (m *JunctionManager) SetQueueLength(intersection string, pair entity.DirectionPair, n int) {
	j, ok := m.data[intersection]
	if !ok {
		return
	}
	if l := j.Light(pair); l != nil {
		l.SetQueueLength(n)
	}
}
