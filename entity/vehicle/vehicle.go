package vehicle

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/container"
)

// Vehicle 车辆实体
// 功能：记录车辆的静态属性（由类别决定）与运行时状态（位置、速度、等待等）
// 说明：速度单位为km/h，加减速度单位为km/h每秒，坐标单位为米
type Vehicle struct {
	container.IncrementalItemBase

	ID        int32            // 车辆ID
	Category  entity.Category  // 类别
	SizeClass entity.SizeClass // 尺寸等级

	Position orb.Point        // 位置
	Heading  entity.Direction // 行驶方向

	Speed        float64 // 当前速度
	MaxSpeed     float64 // 最大速度
	Acceleration float64 // 最大加速度
	Deceleration float64 // 最大减速度（正数）
	TargetSpeed  float64 // 本步计算得到的目标速度

	Length float64 // 长度
	Width  float64 // 宽度
	Mass   float64 // 质量（千克）

	Priority float64 // 优先级权重
	WaitTime float64 // 累计等待时间（秒）

	FuelConsumption float64 // 燃油消耗系数
	EmissionRate    float64 // 排放系数

	Destination            string   // 目的地
	Route                  []string // 路径（不透明）
	Intersection           string   // 最近的路口ID
	DistanceToIntersection float64  // 到最近路口的距离
	IsWaiting              bool     // 是否在等待

	Color string // 显示颜色
}

// Snapshot 车辆的值拷贝
// 说明：Route单独复制，调用方修改快照不会影响引擎内部状态
func (v *Vehicle) Snapshot() Vehicle {
	s := *v
	s.Route = slices.Clone(v.Route)
	return s
}

// IsEmergency 是否为紧急车辆
func (v *Vehicle) IsEmergency() bool {
	return v.Category == entity.Emergency
}

func (v *Vehicle) String() string {
	return fmt.Sprintf(
		"Vehicle{id=%d %s %s pos=(%.1f,%.1f) v=%.1f/%.1f junc=%s d=%.1f}",
		v.ID, v.Category, v.Heading, v.Position.X(), v.Position.Y(),
		v.Speed, v.MaxSpeed, v.Intersection, v.DistanceToIntersection,
	)
}
