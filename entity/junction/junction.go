package junction

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

// Junction 信控路口
// 功能：持有南北、东西两个方向对的信号灯，并协调两者的互斥关系
type Junction struct {
	id     string
	lights map[entity.DirectionPair]*trafficlight.TrafficLight // 方向对->信号灯

	adaptive      bool    // 是否按排队长度延长绿灯
	extension     float64 // 每次延长时长
	maxExtensions int     // 每个绿灯最多延长次数
	extensions    int     // 当前绿灯已延长次数
}

// newJunction 创建并初始化一个新的Junction实例
// 功能：南北方向以绿灯开始，东西方向以红灯开始
// 参数：id-路口ID，signal-信号灯配时
// 说明：东西方向的初始红灯时长为南北绿灯+黄灯，使东西方向恰好在南北方向变红时转绿
func newJunction(id string, signal config.Signal) *Junction {
	timing := trafficlight.Timing{
		Green:  signal.Green,
		Yellow: signal.Yellow,
		Red:    signal.Red,
	}
	j := &Junction{
		id: id,
		lights: map[entity.DirectionPair]*trafficlight.TrafficLight{
			entity.NorthSouth: trafficlight.NewTrafficLight(
				id, entity.NorthSouth, timing, signal.Adaptive,
				entity.Green, signal.Green,
			),
			entity.EastWest: trafficlight.NewTrafficLight(
				id, entity.EastWest, timing, signal.Adaptive,
				entity.Red, signal.Green+signal.Yellow,
			),
		},
		adaptive:      signal.Adaptive,
		extension:     signal.Extension,
		maxExtensions: signal.MaxExtensions,
	}
	return j
}

// update 更新阶段，推进两个方向对的信号灯
// 参数：dt-时间步长
// 算法说明：
// 1. 自适应模式下，若当前绿灯将在本步结束且其排队长于正交方向，
// 则同时延长绿灯与正交方向的红灯（未达到最大延长次数时）
// 2. 推进两个信号灯
// 3. 绿灯结束后清零延长次数
func (j *Junction) update(dt float64) {
	green, other, ok := j.greenLight()
	if ok && j.adaptive && !j.overridden() &&
		green.TimeRemaining-dt <= 0 &&
		j.extensions < j.maxExtensions &&
		green.QueueLength > other.QueueLength {
		green.Extend(j.extension)
		other.Extend(j.extension)
		j.extensions++
		log.Debugf("junction %s extends %s green (%d/%d), queue %d > %d",
			j.id, green.Pair, j.extensions, j.maxExtensions, green.QueueLength, other.QueueLength)
	}
	for _, pair := range entity.Pairs {
		j.lights[pair].Update(dt)
	}
	if ok && !green.PhaseIs(entity.Green) {
		j.extensions = 0
	}
}

// greenLight 获取当前绿灯方向对及其正交方向对
func (j *Junction) greenLight() (green, other *trafficlight.TrafficLight, ok bool) {
	for _, pair := range entity.Pairs {
		if l := j.lights[pair]; l.PhaseIs(entity.Green) {
			return l, j.lights[pair.Orthogonal()], true
		}
	}
	return nil, nil, false
}

// overridden 是否有信号灯处于强制相位
func (j *Junction) overridden() bool {
	return lo.SomeBy(lo.Values(j.lights), func(l *trafficlight.TrafficLight) bool {
		return l.EmergencyOverride
	})
}

// force 强制放行
// 功能：目标方向对立即变为绿灯并保持duration，正交方向对变为红灯
// 参数：pair-放行方向对，duration-强制时长
// 说明：正交方向红灯的剩余时间额外包含目标方向的黄灯时长，
// 使干预结束恢复周期后，正交方向不会在目标方向黄灯期间转绿
func (j *Junction) force(pair entity.DirectionPair, duration float64) {
	target := j.lights[pair]
	other := j.lights[pair.Orthogonal()]
	target.Force(entity.Green, duration, duration)
	other.Force(entity.Red, duration+target.YellowTime, duration)
	j.extensions = 0
}

// ID 获取Junction的唯一标识符
func (j *Junction) ID() string {
	if j == nil {
		return ""
	}
	return j.id
}

// Light 获取方向对的信号灯
func (j *Junction) Light(pair entity.DirectionPair) *trafficlight.TrafficLight {
	return j.lights[pair]
}
