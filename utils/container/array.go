package container

// IIncrementalItem 支持O(1)删除的元素接口
// 功能：定义数组元素必须实现的索引维护方法
// 说明：元素自己记住在数组中的位置，删除时无需查找
type IIncrementalItem interface {
	Index() int         // 获取元素的索引
	SetIndex(index int) // 设置元素的索引
}

// IncrementalItemBase 元素基类
// 功能：提供索引管理的基础实现
// 说明：可以作为其他结构体的嵌入字段，快速实现IIncrementalItem接口
type IncrementalItemBase struct {
	index int // 元素在数组中的索引
}

// Index 获取元素的索引
func (b *IncrementalItemBase) Index() int {
	return b.index
}

// SetIndex 设置元素的索引
func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// Arena 实体数组，按ID索引并支持O(1)插入与删除
// 功能：保存仿真实体的唯一所有权，提供稳定的遍历顺序（与插入/删除历史相关，与map遍历顺序无关）
// 说明：删除时用末尾元素填补空位，因此遍历顺序只由操作序列决定，保证仿真可复现
type Arena[K comparable, T IIncrementalItem] struct {
	data  []T     // 主数据数组
	index map[K]T // ID->元素
}

// NewArena 创建实体数组
func NewArena[K comparable, T IIncrementalItem]() *Arena[K, T] {
	return &Arena[K, T]{
		data:  make([]T, 0),
		index: make(map[K]T),
	}
}

// Len 获取当前数组长度
func (a *Arena[K, T]) Len() int {
	return len(a.data)
}

// Data 获取原始数据
// 说明：返回内部切片，调用方只能读，不能保存或修改
func (a *Arena[K, T]) Data() []T {
	return a.data
}

// Get 根据ID获取元素
func (a *Arena[K, T]) Get(key K) (T, bool) {
	v, ok := a.index[key]
	return v, ok
}

// Has 检查ID是否存在
func (a *Arena[K, T]) Has(key K) bool {
	_, ok := a.index[key]
	return ok
}

// Add 增加元素（立即生效）
// 返回：如果ID已存在则返回false，数组不变
func (a *Arena[K, T]) Add(key K, value T) bool {
	if _, ok := a.index[key]; ok {
		return false
	}
	value.SetIndex(len(a.data))
	a.data = append(a.data, value)
	a.index[key] = value
	return true
}

// Remove 删除元素（立即生效）
// 功能：用末尾元素填补被删除元素的位置
// 返回：被删除的元素以及是否存在
func (a *Arena[K, T]) Remove(key K) (T, bool) {
	value, ok := a.index[key]
	if !ok {
		return value, false
	}
	delete(a.index, key)
	ind := value.Index()
	last := len(a.data) - 1
	if ind != last {
		a.data[ind] = a.data[last]
		a.data[ind].SetIndex(ind)
	}
	var zero T
	a.data[last] = zero
	a.data = a.data[:last]
	return value, true
}

// Clear 清空所有元素
func (a *Arena[K, T]) Clear() {
	a.data = make([]T, 0)
	a.index = make(map[K]T)
}
