package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

const (
	defaultIntersectionCount = 4
	defaultGreen             = 30.
	defaultYellow            = 3.
	defaultExtension         = 10.
	defaultMaxExtensions     = 3
	defaultInterval          = 1.
	defaultBatch             = 100
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultReward 默认奖励权重，取自RL训练脚本中的取值
func DefaultReward() Reward {
	return Reward{
		Wait:       -0.1,
		Throughput: 0.5,
		Fuel:       -0.05,
		Emission:   -0.02,
		Emergency:  -5.0,
	}
}

// RuntimeConfig 运行时配置
// 功能：存储补全默认值并通过校验后的配置
type RuntimeConfig struct {
	All    Config  // 全部配置
	C      Control // 全局控制配置
	Engine Engine  // 引擎配置
	Reward Reward  // 奖励权重
	Output Output  // 输出配置
}

// Parse 解析YAML配置
// 说明：使用UnmarshalStrict，未知字段直接报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, errors.Wrap(err, "config file load err")
	}
	return c, nil
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：补全默认值并校验配置
// 参数：config-原始配置对象
// 返回：运行时配置指针，配置不合法时返回ErrInvalidConfig
// 算法说明：
// 1. 路口列表为空时生成intersection-1..4
// 2. 信号灯配时缺省为绿30秒、黄3秒，红灯缺省为绿+黄
// 3. 奖励权重缺省取DefaultReward
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}

	e := config.Engine
	if len(e.Intersections) == 0 {
		e.Intersections = lo.Times(defaultIntersectionCount, func(i int) string {
			return fmt.Sprintf("intersection-%d", i+1)
		})
	}
	if len(lo.Uniq(e.Intersections)) != len(e.Intersections) {
		return nil, errors.Wrapf(ErrInvalidConfig, "duplicated intersection id in %v", e.Intersections)
	}
	if e.Signal.Green == 0 {
		e.Signal.Green = defaultGreen
	}
	if e.Signal.Yellow == 0 {
		e.Signal.Yellow = defaultYellow
	}
	if e.Signal.Red == 0 {
		e.Signal.Red = e.Signal.Green + e.Signal.Yellow
	}
	if e.Signal.Green < 0 || e.Signal.Yellow < 0 || e.Signal.Red < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative signal timing %+v", e.Signal)
	}
	if e.Signal.Adaptive {
		if e.Signal.Extension == 0 {
			e.Signal.Extension = defaultExtension
		}
		if e.Signal.MaxExtensions == 0 {
			e.Signal.MaxExtensions = defaultMaxExtensions
		}
	}
	if e.Spawn.Probability < 0 || e.Spawn.Probability > 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "spawn probability %v out of [0,1]", e.Spawn.Probability)
	}
	if e.Reward == nil {
		rc.Reward = DefaultReward()
	} else {
		rc.Reward = *e.Reward
	}

	c := config.Control
	if c.Step.Interval == 0 {
		c.Step.Interval = defaultInterval
	}
	if c.Step.Interval < 0 || c.Step.Total < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "invalid step %+v", c.Step)
	}
	for _, a := range c.Actions {
		if !lo.Contains(e.Intersections, a.Intersection) {
			return nil, errors.Wrapf(ErrInvalidConfig, "action on unknown intersection %s", a.Intersection)
		}
	}

	o := config.Output
	if o.Batch <= 0 {
		o.Batch = defaultBatch
	}
	if o.URI != "" && (o.DB == "" || o.Col == "") {
		return nil, errors.Wrap(ErrInvalidConfig, "output db and col must be set when uri is set")
	}

	rc.All = config
	rc.C = c
	rc.Engine = e
	rc.Output = o
	return rc, nil
}

// Default 默认运行时配置（用于测试与嵌入式使用）
func Default() *RuntimeConfig {
	rc, err := NewRuntimeConfig(Config{})
	if err != nil {
		log.Panicf("default config err: %v", err)
	}
	return rc
}
