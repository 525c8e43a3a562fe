package analytics

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

const (
	numDirections = 4
	numCategories = 5
)

// State RL观测
// 说明：方向顺序为北、东、南、西，类别顺序同entity.Categories；
// Phases为每个路口南北方向信号灯的相位编码（绿0黄1红2），顺序为路口初始化顺序
type State struct {
	QueueLengths   [numDirections]int     `json:"queue_lengths"`   // 各方向等待车辆数
	WaitTimes      [numDirections]float64 `json:"wait_times"`      // 各方向车辆平均等待时间
	CategoryCounts [numCategories]int     `json:"category_counts"` // 各类别车辆数
	EmergencyCount int                    `json:"emergency_count"`
	TimeOfDay      float64                `json:"time_of_day"`
	Weather        float64                `json:"weather"`
	Phases         []int                  `json:"phases"`
}

// EncodeState 计算RL观测
// 参数：vehicles-车辆快照，lights-信控查询，env-环境指标
// 返回：定长（路口数固定时）的观测，与车辆数无关
func EncodeState(vehicles []vehicle.Vehicle, lights entity.IJunctionManager, env config.Environment) State {
	s := State{
		TimeOfDay: env.TimeOfDay,
		Weather:   env.Weather,
	}
	var counts [numDirections]int
	var waits [numDirections]float64
	for _, v := range vehicles {
		d := v.Heading.Index()
		if d >= 0 {
			counts[d]++
			waits[d] += v.WaitTime
			if v.IsWaiting {
				s.QueueLengths[d]++
			}
		} else {
			log.Warnf("vehicle %d has unknown heading %q", v.ID, v.Heading)
		}
		if c := v.Category.Index(); c >= 0 {
			s.CategoryCounts[c]++
		}
	}
	for d := range waits {
		if counts[d] > 0 {
			s.WaitTimes[d] = waits[d] / float64(counts[d])
		}
	}
	s.EmergencyCount = s.CategoryCounts[entity.Emergency.Index()]
	s.Phases = lo.Map(lights.IDs(), func(id string, _ int) int {
		phase, _, _ := lights.Light(id, entity.NorthSouth)
		return phase.Index()
	})
	return s
}

// Vector 展开为观测向量
// 返回：[队列x4, 等待x4, 类别x5, 紧急车辆数, 时段, 天气, 相位x路口数]
func (s State) Vector() []float64 {
	vec := make([]float64, 0, numDirections*2+numCategories+3+len(s.Phases))
	for _, q := range s.QueueLengths {
		vec = append(vec, float64(q))
	}
	vec = append(vec, s.WaitTimes[:]...)
	for _, c := range s.CategoryCounts {
		vec = append(vec, float64(c))
	}
	vec = append(vec, float64(s.EmergencyCount), s.TimeOfDay, s.Weather)
	for _, p := range s.Phases {
		vec = append(vec, float64(p))
	}
	return vec
}
