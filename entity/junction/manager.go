package junction

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/junction/trafficlight"
)

var (
	ErrNoJunction = errors.New("no such junction")
)

// JunctionManager Junction管理器
type JunctionManager struct {
	ctx entity.ITaskContext

	data      map[string]*Junction
	junctions []*Junction // 保持初始化顺序，保证遍历确定
}

// NewManager 创建Junction管理器实例
// 参数：ctx-任务上下文
// 返回：新创建的Junction管理器实例
func NewManager(ctx entity.ITaskContext) *JunctionManager {
	return &JunctionManager{
		ctx:       ctx,
		data:      make(map[string]*Junction),
		junctions: make([]*Junction, 0),
	}
}

// Init 初始化所有Junction及其信控
// 功能：按配置的路口ID重新创建全部路口，已有路口被丢弃
func (m *JunctionManager) Init(ids []string) {
	signal := m.ctx.RuntimeConfig().Engine.Signal
	m.junctions = lo.Map(ids, func(id string, _ int) *Junction {
		return newJunction(id, signal)
	})
	m.data = lo.SliceToMap(m.junctions, func(j *Junction) (string, *Junction) {
		return j.id, j
	})
	log.Infof("Junction: %v", len(m.junctions))
}

// Get 根据ID获取Junction实例
// 功能：通过Junction ID查找对应的Junction对象，如果不存在则panic
func (m *JunctionManager) Get(id string) *Junction {
	if junction, ok := m.data[id]; !ok {
		log.Panicf("no id %s in junction data", id)
		return nil
	} else {
		return junction
	}
}

// GetOrError 根据ID获取Junction实例（带错误处理）
func (m *JunctionManager) GetOrError(id string) (*Junction, error) {
	if junction, ok := m.data[id]; !ok {
		return nil, errors.Wrapf(ErrNoJunction, "id %s", id)
	} else {
		return junction, nil
	}
}

// IDs 所有路口ID（初始化顺序）
func (m *JunctionManager) IDs() []string {
	return lo.Map(m.junctions, func(j *Junction, _ int) string { return j.id })
}

// Light 读取路口某方向对的信号灯
// 返回：相位、剩余时间；路口不存在时ok=false
func (m *JunctionManager) Light(intersection string, pair entity.DirectionPair) (entity.Phase, float64, bool) {
	j, ok := m.data[intersection]
	if !ok {
		return "", 0, false
	}
	l := j.Light(pair)
	if l == nil {
		return "", 0, false
	}
	return l.Phase, max(l.TimeRemaining, 0), true
}

// Update 更新阶段，执行所有Junction的信号灯逻辑
// 参数：dt-时间步长
func (m *JunctionManager) Update(dt float64) {
	for _, j := range m.junctions {
		j.update(dt)
	}
}

// TrafficLights 所有信号灯的快照
// 返回：信号灯副本，顺序为路口初始化顺序、每个路口先南北后东西
func (m *JunctionManager) TrafficLights() []trafficlight.TrafficLight {
	return lo.FlatMap(m.junctions, func(j *Junction, _ int) []trafficlight.TrafficLight {
		return lo.Map(entity.Pairs, func(p entity.DirectionPair, _ int) trafficlight.TrafficLight {
			return j.lights[p].Snapshot()
		})
	})
}
