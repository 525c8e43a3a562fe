// 仿真输出：逐步统计记录与帧导出
package output

import (
	"context"

	"github.com/tsinghua-fib-lab/signal-sim-rl/analytics"
)

// StepRecord 单步输出记录
type StepRecord struct {
	Step    int32             `bson:"step" json:"step"`
	T       float64           `bson:"t" json:"t"`
	Metrics analytics.Metrics `bson:"metrics" json:"metrics"`
	Reward  analytics.Reward  `bson:"reward" json:"reward"`
}

// Recorder 逐步统计记录输出
type Recorder interface {
	Record(r StepRecord) error
	Close(ctx context.Context) error
}

// NopRecorder 不输出
type NopRecorder struct{}

func (NopRecorder) Record(StepRecord) error { return nil }
func (NopRecorder) Close(context.Context) error { return nil }
