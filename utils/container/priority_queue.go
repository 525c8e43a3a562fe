package container

import "container/heap"

// item 优先队列中单个元素
type item[T any] struct {
	Value    T       // 元素的值
	Priority float64 // 优先级（越小越优先）
	seq      uint64  // 加入顺序，优先级相同时先加入的先出
}

// priorityQueue 实现heap.Interface
type priorityQueue[T any] []*item[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

// Less 比较两个元素的优先级
// 说明：最小堆；优先级相同时按加入顺序，保证出队顺序确定
func (pq priorityQueue[T]) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue[T]) Push(x any) {
	*pq = append(*pq, x.(*item[T]))
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // 避免内存泄漏
	*pq = old[0 : n-1]
	return item
}

// PriorityQueue 稳定的优先队列
// 功能：按优先级出队，优先级相同的元素按加入顺序出队
// 说明：用于按时间排列的事件（如预设的信控干预），时间即优先级
type PriorityQueue[T any] struct {
	queue priorityQueue[T]
	seq   uint64
}

// NewPriorityQueue 创建优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(priorityQueue[T], 0)}
}

// Len 获取当前队列长度
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// First 查看优先级数值最小的元素，不出队
// 返回：队列为空时ok=false
func (q *PriorityQueue[T]) First() (value T, priority float64, ok bool) {
	if len(q.queue) == 0 {
		return value, 0, false
	}
	return q.queue[0].Value, q.queue[0].Priority, true
}

// HeapPush 加入元素
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{
		Value:    value,
		Priority: priority,
		seq:      q.seq,
	})
	q.seq++
}

// HeapPop 弹出优先级数值最小的元素
// 说明：队列为空时panic，调用前应检查Len或First
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	item := heap.Pop(&q.queue).(*item[T])
	return item.Value, item.Priority
}

// PopUntil 依次弹出优先级数值不超过limit的全部元素
func (q *PriorityQueue[T]) PopUntil(limit float64) []T {
	var out []T
	for {
		if _, p, ok := q.First(); !ok || p > limit {
			return out
		}
		v, _ := q.HeapPop()
		out = append(out, v)
	}
}
