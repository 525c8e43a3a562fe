package config

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数（由外部驱动循环使用）
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 预热步数，预热期间不输出记录
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Action 预设的信号灯干预动作
// 功能：在指定仿真时间对某个路口执行一次强制相位
type Action struct {
	T            float64 `yaml:"t"`            // 执行时刻（秒）
	Intersection string  `yaml:"intersection"` // 路口ID
	Pair         string  `yaml:"pair"`         // 放行方向对（north-south|east-west）
	Duration     float64 `yaml:"duration"`     // 持续时长（秒）
}

// Control 模拟器控制配置
type Control struct {
	Step    ControlStep `yaml:"step"`
	Seed    uint64      `yaml:"seed,omitempty"`    // 随机数种子
	Actions []Action    `yaml:"actions,omitempty"` // 预设干预动作
}

// Signal 信号灯配时
// 说明：red为0时取green+yellow，保证同一路口两个方向对的绿灯互斥
type Signal struct {
	Green         float64 `yaml:"green"`                    // 绿灯时长（秒）
	Yellow        float64 `yaml:"yellow"`                   // 黄灯时长（秒）
	Red           float64 `yaml:"red,omitempty"`            // 红灯时长（秒）
	Adaptive      bool    `yaml:"adaptive,omitempty"`       // 是否根据排队长度延长绿灯
	Extension     float64 `yaml:"extension,omitempty"`      // 每次延长的时长（秒）
	MaxExtensions int     `yaml:"max_extensions,omitempty"` // 每个绿灯最多延长次数
}

// Spawn 驱动循环的车辆生成配置
type Spawn struct {
	Initial     int     `yaml:"initial,omitempty"`     // 初始车辆数
	Probability float64 `yaml:"probability,omitempty"` // 每步新生成一辆车的概率
}

// Reward 奖励函数权重
// 说明：权重带符号，惩罚项为负
type Reward struct {
	Wait       float64 `yaml:"wait"`
	Throughput float64 `yaml:"throughput"`
	Fuel       float64 `yaml:"fuel"`
	Emission   float64 `yaml:"emission"`
	Emergency  float64 `yaml:"emergency"`
}

// Environment 外部提供的环境指标
type Environment struct {
	TimeOfDay float64 `yaml:"time_of_day,omitempty"` // 时段指数
	Weather   float64 `yaml:"weather,omitempty"`     // 天气指数
}

// Engine 仿真引擎配置
type Engine struct {
	Intersections []string    `yaml:"intersections,omitempty"` // 路口ID列表
	Signal        Signal      `yaml:"signal"`
	Spawn         Spawn       `yaml:"spawn,omitempty"`
	Reward        *Reward     `yaml:"reward,omitempty"`
	Environment   Environment `yaml:"environment,omitempty"`
}

// Output 输出配置
type Output struct {
	URI     string `yaml:"uri,omitempty"`     // MongoDB连接字符串，为空则不输出到数据库
	DB      string `yaml:"db,omitempty"`      // 数据库名
	Col     string `yaml:"col,omitempty"`     // 集合名
	Batch   int    `yaml:"batch,omitempty"`   // 批量写入的记录数
	GeoJSON string `yaml:"geojson,omitempty"` // 运行结束时写出最后一帧的GeoJSON文件路径
}

// Config YAML配置文件的根结构
type Config struct {
	Control Control `yaml:"control"` // 模拟过程控制
	Engine  Engine  `yaml:"engine"`  // 引擎
	Output  Output  `yaml:"output,omitempty"`
}
