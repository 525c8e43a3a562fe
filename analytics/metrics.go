// 由车辆与信号灯快照计算统计指标、RL状态与奖励
// 所有计算都是纯函数，不修改输入；车辆为空时各项指标为0
package analytics

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity"
	"github.com/tsinghua-fib-lab/signal-sim-rl/entity/vehicle"
)

const (
	idleFactor         = .1 // 怠速时的油耗/排放比例
	congestionScale    = 10 // 拥堵指数满分
	signalNearDistance = 50 // 统计信号效率的路口距离（米）
)

// Metrics 仿真统计指标
type Metrics struct {
	TotalVehicles         int     `bson:"total_vehicles" json:"total_vehicles"`
	EmergencyVehicles     int     `bson:"emergency_vehicles" json:"emergency_vehicles"`
	AverageWaitTime       float64 `bson:"average_wait_time" json:"average_wait_time"`
	AverageSpeed          float64 `bson:"average_speed" json:"average_speed"`
	Throughput            int     `bson:"throughput" json:"throughput"` // 正在行驶（未等待）的车辆数
	FuelConsumption       float64 `bson:"fuel_consumption" json:"fuel_consumption"`
	Emissions             float64 `bson:"emissions" json:"emissions"`
	CongestionIndex       float64 `bson:"congestion_index" json:"congestion_index"` // 0-10
	EmergencyResponseTime float64 `bson:"emergency_response_time" json:"emergency_response_time"`
	SignalEfficiency      float64 `bson:"signal_efficiency" json:"signal_efficiency"` // 百分比
}

// ComputeMetrics 计算统计指标
// 参数：vehicles-车辆快照，lights-信控查询
// 算法说明：
// 1. 平均等待时间、平均速度按车辆数平均
// 2. 油耗与排放 = Σ 系数 * (怠速比例 + 速度/最大速度)
// 3. 紧急车辆响应时间取紧急车辆的平均等待时间
// 4. 信号效率 = 路口附近车辆中本方向为绿灯的比例
// 5. 拥堵指数 = 等待车辆比例 * 10
func ComputeMetrics(vehicles []vehicle.Vehicle, lights entity.IJunctionManager) Metrics {
	m := Metrics{TotalVehicles: len(vehicles)}
	if len(vehicles) == 0 {
		return m
	}
	n := float64(len(vehicles))
	m.AverageWaitTime = lo.SumBy(vehicles, func(v vehicle.Vehicle) float64 { return v.WaitTime }) / n
	m.AverageSpeed = lo.SumBy(vehicles, func(v vehicle.Vehicle) float64 { return v.Speed }) / n

	waiting := lo.CountBy(vehicles, func(v vehicle.Vehicle) bool { return v.IsWaiting })
	m.Throughput = len(vehicles) - waiting
	m.CongestionIndex = float64(waiting) / n * congestionScale

	for _, v := range vehicles {
		load := idleFactor
		if v.MaxSpeed > 0 {
			load += v.Speed / v.MaxSpeed
		}
		m.FuelConsumption += v.FuelConsumption * load
		m.Emissions += v.EmissionRate * load
	}

	emergency := lo.Filter(vehicles, func(v vehicle.Vehicle, _ int) bool { return v.IsEmergency() })
	m.EmergencyVehicles = len(emergency)
	if len(emergency) > 0 {
		m.EmergencyResponseTime = lo.SumBy(emergency, func(v vehicle.Vehicle) float64 {
			return v.WaitTime
		}) / float64(len(emergency))
	}

	near, green := 0, 0
	for _, v := range vehicles {
		if v.DistanceToIntersection < 0 || v.DistanceToIntersection >= signalNearDistance {
			continue
		}
		phase, _, ok := lights.Light(v.Intersection, v.Heading.Pair())
		if !ok {
			continue
		}
		near++
		if phase == entity.Green {
			green++
		}
	}
	if near > 0 {
		m.SignalEfficiency = float64(green) / float64(near) * 100
	}
	return m
}
