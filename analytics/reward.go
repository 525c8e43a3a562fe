package analytics

import (
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

// Reward 单步奖励及其分解
// 说明：Total严格等于五项之和
type Reward struct {
	WaitTimePenalty   float64 `bson:"wait_time_penalty" json:"wait_time_penalty"`
	ThroughputBonus   float64 `bson:"throughput_bonus" json:"throughput_bonus"`
	FuelSavings       float64 `bson:"fuel_savings" json:"fuel_savings"`
	EmissionReduction float64 `bson:"emission_reduction" json:"emission_reduction"`
	EmergencyBonus    float64 `bson:"emergency_bonus" json:"emergency_bonus"`
	Total             float64 `bson:"total" json:"total"`

	Step int32   `bson:"step" json:"step"`
	T    float64 `bson:"t" json:"t"`
}

// ComputeReward 计算奖励
// 参数：m-统计指标，w-带符号的权重，step/t-当前步数与时间
// 算法说明：
// 1. 各项 = 权重 * 指标（平均等待、行驶车辆数、油耗、排放、紧急车辆响应时间）
// 2. 没有紧急车辆时紧急项为0
// 3. 总奖励为五项之和
func ComputeReward(m Metrics, w config.Reward, step int32, t float64) Reward {
	r := Reward{
		WaitTimePenalty:   w.Wait * m.AverageWaitTime,
		ThroughputBonus:   w.Throughput * float64(m.Throughput),
		FuelSavings:       w.Fuel * m.FuelConsumption,
		EmissionReduction: w.Emission * m.Emissions,
		Step:              step,
		T:                 t,
	}
	if m.EmergencyVehicles > 0 {
		r.EmergencyBonus = w.Emergency * m.EmergencyResponseTime
	}
	r.Total = r.WaitTimePenalty + r.ThroughputBonus + r.FuelSavings + r.EmissionReduction + r.EmergencyBonus
	return r
}
