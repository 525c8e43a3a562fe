package vehicle

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

var (
	ErrDuplicateVehicle = errors.New("duplicate vehicle id")
	ErrInvalidAttribute = errors.New("invalid vehicle attribute")
)

const (
	minInitialSpeedRatio = .3 // 初始速度下限（占最大速度比例）
	maxInitialSpeedRatio = .7 // 初始速度上限（占最大速度比例）
)

// Overrides 创建车辆时覆盖默认值的属性，nil表示使用默认值
type Overrides struct {
	ID                     *int32
	Position               *orb.Point
	Heading                *entity.Direction
	Speed                  *float64 // 会被截断到[0, MaxSpeed]
	MaxSpeed               *float64 // 必须为正
	Priority               *float64
	Destination            *string
	Route                  []string
	Intersection           *string
	DistanceToIntersection *float64
	Color                  *string
}

// segment 可生成车辆的道路路段
type segment struct {
	name    string
	heading entity.Direction
	bound   orb.Bound // 合法坐标范围
}

// 路网：y=200主干道与y=400次干道（东西向），x=300主干道与x=600次干道（南北向）
// 主干道车道偏移10米，次干道偏移5米；车辆只在道路起始段生成
var spawnCatalog = []segment{
	{"main-eastbound", entity.East, orb.Bound{Min: orb.Point{0, 210}, Max: orb.Point{100, 210}}},
	{"main-westbound", entity.West, orb.Bound{Min: orb.Point{800, 190}, Max: orb.Point{900, 190}}},
	{"minor-eastbound", entity.East, orb.Bound{Min: orb.Point{0, 405}, Max: orb.Point{100, 405}}},
	{"minor-westbound", entity.West, orb.Bound{Min: orb.Point{800, 395}, Max: orb.Point{900, 395}}},
	{"main-northbound", entity.North, orb.Bound{Min: orb.Point{310, 0}, Max: orb.Point{310, 100}}},
	{"main-southbound", entity.South, orb.Bound{Min: orb.Point{290, 500}, Max: orb.Point{290, 600}}},
	{"minor-northbound", entity.North, orb.Bound{Min: orb.Point{605, 0}, Max: orb.Point{605, 100}}},
	{"minor-southbound", entity.South, orb.Bound{Min: orb.Point{595, 500}, Max: orb.Point{595, 600}}},
}

// newVehicle 创建车辆（不加入管理器）
// 功能：按类别的基础属性构造车辆，再应用覆盖值
// 参数：category-类别（为空时按权重随机），o-覆盖值（可为nil）
// 返回：车辆，类别非法返回entity.ErrInvalidCategory，属性非法返回ErrInvalidAttribute
// 算法说明：
// 1. 确定类别并读取基础属性
// 2. 从路段目录中均匀选择生成路段，在其坐标范围内均匀采样位置
// 3. 采样优先级与初始速度
// 4. 应用覆盖值
func (m *VehicleManager) newVehicle(category entity.Category, o *Overrides) (*Vehicle, error) {
	if category == "" {
		category = entity.Categories[m.generator.DiscreteDistribution(categoryWeights)]
	}
	p, err := ProfileOf(category)
	if err != nil {
		return nil, err
	}
	if o == nil {
		o = &Overrides{}
	}
	maxV := p.MaxSpeed
	if o.MaxSpeed != nil {
		if *o.MaxSpeed <= 0 {
			return nil, errors.Wrapf(ErrInvalidAttribute, "max speed %v", *o.MaxSpeed)
		}
		maxV = *o.MaxSpeed
	}

	seg := spawnCatalog[m.generator.Intn(len(spawnCatalog))]
	dest := spawnCatalog[m.generator.Intn(len(spawnCatalog))]
	v := &Vehicle{
		Category:        category,
		SizeClass:       p.SizeClass,
		Position:        m.samplePoint(seg.bound),
		Heading:         seg.heading,
		Speed:           maxV * m.generator.Uniform(minInitialSpeedRatio, maxInitialSpeedRatio),
		MaxSpeed:        maxV,
		Acceleration:    p.Acceleration,
		Deceleration:    p.Deceleration,
		Length:          p.Length,
		Width:           p.Width,
		Mass:            p.Mass,
		FuelConsumption: p.FuelConsumption,
		EmissionRate:    p.EmissionRate,
		Destination:     dest.name,
		Route:           []string{seg.name, dest.name},
		Color:           p.Color,
	}
	if category == entity.Emergency {
		v.Priority = emergencyPriority
	} else {
		v.Priority = m.generator.Uniform(minPriority, maxPriority)
	}

	if o.Position != nil {
		v.Position = *o.Position
	}
	if o.Heading != nil {
		if o.Heading.Index() < 0 {
			return nil, errors.Wrapf(entity.ErrUnknownDirection, "%q", *o.Heading)
		}
		v.Heading = *o.Heading
	}
	if o.Speed != nil {
		v.Speed = *o.Speed
	}
	v.Speed = lo.Clamp(v.Speed, 0, v.MaxSpeed)
	if o.Priority != nil {
		v.Priority = *o.Priority
	}
	if o.Destination != nil {
		v.Destination = *o.Destination
	}
	if o.Route != nil {
		v.Route = append([]string{}, o.Route...)
	}
	if o.Intersection != nil {
		v.Intersection = *o.Intersection
	}
	if o.DistanceToIntersection != nil {
		v.DistanceToIntersection = *o.DistanceToIntersection
	}
	if o.Color != nil {
		v.Color = *o.Color
	}
	v.IsWaiting = v.Speed < waitingSpeed
	m.locator.Assign(v, o.Intersection != nil, o.DistanceToIntersection != nil)
	return v, nil
}

// samplePoint 在范围内均匀采样
func (m *VehicleManager) samplePoint(b orb.Bound) orb.Point {
	return orb.Point{
		m.generator.Uniform(b.Min.X(), b.Max.X()),
		m.generator.Uniform(b.Min.Y(), b.Max.Y()),
	}
}
