package vehicle

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/randengine"
)

// IntersectionLocator 最近路口查询
// 功能：维护车辆的Intersection与DistanceToIntersection，保证策略总能读到某个路口与距离
type IntersectionLocator interface {
	// 新车辆加入时分配路口，keepIntersection/keepDistance表示该字段已由调用方指定
	Assign(v *Vehicle, keepIntersection, keepDistance bool)
	// 车辆从from移动到当前位置后刷新路口与距离
	Advance(v *Vehicle, from orb.Point)
}

const defaultBlockLength = 200. // 相邻路口间距（米）

// roundRobinLocator 简化的路口定位
// 功能：不做几何投影，保持分配的路口并按行驶距离倒数；
// 驶过路口后按路口ID顺序轮换到下一个路口，距离加上固定街区长度
type roundRobinLocator struct {
	junctions   entity.IJunctionManager
	generator   *randengine.Engine
	blockLength float64
}

// NewRoundRobinLocator 创建简化的路口定位器
func NewRoundRobinLocator(
	junctions entity.IJunctionManager,
	generator *randengine.Engine,
	blockLength float64,
) IntersectionLocator {
	if blockLength <= 0 {
		blockLength = defaultBlockLength
	}
	return &roundRobinLocator{
		junctions:   junctions,
		generator:   generator,
		blockLength: blockLength,
	}
}

func (l *roundRobinLocator) Assign(v *Vehicle, keepIntersection, keepDistance bool) {
	ids := l.junctions.IDs()
	if !keepIntersection && len(ids) > 0 {
		v.Intersection = ids[l.generator.Intn(len(ids))]
	}
	if !keepDistance {
		v.DistanceToIntersection = l.generator.Uniform(0, l.blockLength)
	}
}

func (l *roundRobinLocator) Advance(v *Vehicle, from orb.Point) {
	v.DistanceToIntersection -= planar.Distance(from, v.Position)
	if v.DistanceToIntersection >= 0 {
		return
	}
	ids := l.junctions.IDs()
	for v.DistanceToIntersection < 0 {
		v.DistanceToIntersection += l.blockLength
		if len(ids) > 0 {
			// 未知路口的下一个为第一个路口
			next := (lo.IndexOf(ids, v.Intersection) + 1) % len(ids)
			v.Intersection = ids[next]
		}
	}
}
