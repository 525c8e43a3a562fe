package vehicle

import (
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
)

// Profile 车辆类别的基础属性
type Profile struct {
	Length          float64 // 长度（米）
	Width           float64 // 宽度（米）
	Mass            float64 // 质量（千克）
	MaxSpeed        float64 // 最大速度（km/h）
	FuelConsumption float64 // 燃油消耗系数
	Acceleration    float64 // 最大加速度（km/h每秒）
	Deceleration    float64 // 最大减速度（km/h每秒）
	EmissionRate    float64 // 排放系数
	Color           string
	SizeClass       entity.SizeClass
}

const (
	emergencyPriority = 100 // 紧急车辆优先级
	minPriority       = 1   // 普通车辆优先级下限
	maxPriority       = 5   // 普通车辆优先级上限（不含）
)

var profiles = map[entity.Category]Profile{
	entity.Car: {
		Length: 4.5, Width: 1.8, Mass: 1500, MaxSpeed: 60,
		FuelConsumption: .08, Acceleration: 10, Deceleration: 25, EmissionRate: .12,
		Color: "#3b82f6", SizeClass: entity.Medium,
	},
	entity.Truck: {
		Length: 12, Width: 2.5, Mass: 12000, MaxSpeed: 45,
		FuelConsumption: .30, Acceleration: 5, Deceleration: 15, EmissionRate: .45,
		Color: "#f59e0b", SizeClass: entity.Large,
	},
	entity.Bus: {
		Length: 12, Width: 2.6, Mass: 11000, MaxSpeed: 50,
		FuelConsumption: .25, Acceleration: 6, Deceleration: 16, EmissionRate: .35,
		Color: "#10b981", SizeClass: entity.Large,
	},
	entity.Motorcycle: {
		Length: 2.2, Width: 0.8, Mass: 200, MaxSpeed: 70,
		FuelConsumption: .04, Acceleration: 15, Deceleration: 30, EmissionRate: .06,
		Color: "#8b5cf6", SizeClass: entity.Small,
	},
	entity.Emergency: {
		Length: 5.5, Width: 2.1, Mass: 3000, MaxSpeed: 80,
		FuelConsumption: .12, Acceleration: 14, Deceleration: 30, EmissionRate: .18,
		Color: "#ef4444", SizeClass: entity.Medium,
	},
}

// categoryWeights 随机生成车辆时各类别的权重，顺序同entity.Categories
var categoryWeights = []float64{.55, .1, .1, .2, .05}

// ProfileOf 获取类别的基础属性
// 返回：未知类别返回entity.ErrInvalidCategory
func ProfileOf(c entity.Category) (Profile, error) {
	p, ok := profiles[c]
	if !ok {
		return Profile{}, errors.Wrapf(entity.ErrInvalidCategory, "%q", c)
	}
	return p, nil
}
