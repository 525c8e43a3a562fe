package entity

import (
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/config"
)

type ITaskContext interface {
	JunctionManager() IJunctionManager
	RuntimeConfig() *config.RuntimeConfig
}
