package entity

// Manager依赖倒置

// entity/junction/manager.go的依赖倒置
// 车辆只通过该接口读取信控
type IJunctionManager interface {
	// 所有路口ID（初始化顺序）
	IDs() []string
	// 读取路口某方向对的信号灯，路口不存在时ok=false
	Light(intersection string, pair DirectionPair) (phase Phase, remainingTime float64, ok bool)
}
