package vehicle

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/container"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/randengine"
)

var (
	ErrNoVehicle = errors.New("no such vehicle")
)

// VehicleManager Vehicle管理器
// 功能：持有全部车辆，负责创建、删除、查询与每步的决策和运动学更新
type VehicleManager struct {
	ctx entity.ITaskContext

	vehicles *container.Arena[int32, *Vehicle]
	nextID   int32

	generator *randengine.Engine
	leaders   LeaderFinder
	locator   IntersectionLocator
}

// NewManager 创建Vehicle管理器实例
// 参数：ctx-任务上下文，generator-随机数引擎（生成位置、类别、优先级等）
// 返回：新创建的Vehicle管理器实例，默认使用全量扫描前车查询与简化路口定位
func NewManager(ctx entity.ITaskContext, generator *randengine.Engine) *VehicleManager {
	return &VehicleManager{
		ctx:       ctx,
		vehicles:  container.NewArena[int32, *Vehicle](),
		nextID:    1,
		generator: generator,
		leaders:   NewScanLeaderFinder(),
		locator:   NewRoundRobinLocator(ctx.JunctionManager(), generator, defaultBlockLength),
	}
}

// SetLeaderFinder 替换前车查询
func (m *VehicleManager) SetLeaderFinder(f LeaderFinder) {
	m.leaders = f
}

// SetLocator 替换路口定位
func (m *VehicleManager) SetLocator(l IntersectionLocator) {
	m.locator = l
}

// Create 创建车辆并加入管理器
// 参数：category-类别（为空时按权重随机），o-覆盖值（可为nil）
// 返回：新车辆的快照
func (m *VehicleManager) Create(category entity.Category, o *Overrides) (Vehicle, error) {
	if o != nil && o.ID != nil && m.vehicles.Has(*o.ID) {
		return Vehicle{}, errors.Wrapf(ErrDuplicateVehicle, "id %d", *o.ID)
	}
	v, err := m.newVehicle(category, o)
	if err != nil {
		return Vehicle{}, err
	}
	if o != nil && o.ID != nil {
		v.ID = *o.ID
	} else {
		for m.vehicles.Has(m.nextID) {
			m.nextID++
		}
		v.ID = m.nextID
		m.nextID++
	}
	m.vehicles.Add(v.ID, v)
	log.Debugf("create %v", v)
	return v.Snapshot(), nil
}

// AddRandom 随机生成n辆车
// 返回：新车辆的快照
func (m *VehicleManager) AddRandom(n int) []Vehicle {
	vs := make([]Vehicle, 0, n)
	for i := 0; i < n; i++ {
		v, err := m.Create("", nil)
		if err != nil {
			log.Panicf("create random vehicle: %v", err)
		}
		vs = append(vs, v)
	}
	return vs
}

// Remove 删除车辆
// 返回：车辆是否存在
func (m *VehicleManager) Remove(id int32) bool {
	_, ok := m.vehicles.Remove(id)
	if ok {
		log.Debugf("remove vehicle %d", id)
	}
	return ok
}

// Get 根据ID获取车辆快照
func (m *VehicleManager) Get(id int32) (Vehicle, bool) {
	v, ok := m.vehicles.Get(id)
	if !ok {
		return Vehicle{}, false
	}
	return v.Snapshot(), true
}

// GetOrError 根据ID获取车辆快照（带错误处理）
func (m *VehicleManager) GetOrError(id int32) (Vehicle, error) {
	v, ok := m.Get(id)
	if !ok {
		return v, errors.Wrapf(ErrNoVehicle, "id %d", id)
	}
	return v, nil
}

// Vehicles 全部车辆的快照
func (m *VehicleManager) Vehicles() []Vehicle {
	return lo.Map(m.vehicles.Data(), func(v *Vehicle, _ int) Vehicle {
		return v.Snapshot()
	})
}

// Len 车辆数
func (m *VehicleManager) Len() int {
	return m.vehicles.Len()
}

// Clear 删除全部车辆
func (m *VehicleManager) Clear() {
	m.vehicles.Clear()
}

// Update 更新阶段
// 参数：dt-时间步长
// 算法说明：
// 1. 基于同一时刻的状态为所有车辆计算目标速度
// 2. 逐车执行运动学更新并刷新路口距离
// 说明：先全部决策再全部更新，结果与遍历顺序无关
func (m *VehicleManager) Update(dt float64) {
	vehicles := m.vehicles.Data()
	targets := lo.Map(vehicles, func(v *Vehicle, _ int) float64 {
		return m.plan(v, vehicles).V
	})
	for i, v := range vehicles {
		from := v.integrate(targets[i], dt)
		m.locator.Advance(v, from)
	}
}
