package analytics

// DefaultHistoryCapacity 奖励历史的默认容量
const DefaultHistoryCapacity = 100

// RewardHistory 定长奖励历史（环形缓冲）
// 功能：超过容量时淘汰最早的记录
type RewardHistory struct {
	buf   []Reward
	start int // 最早记录的位置
	size  int
}

// NewRewardHistory 创建奖励历史，capacity<=0时使用默认容量
func NewRewardHistory(capacity int) *RewardHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &RewardHistory{buf: make([]Reward, capacity)}
}

// Push 追加一条记录
func (h *RewardHistory) Push(r Reward) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = r
		h.size++
		return
	}
	h.buf[h.start] = r
	h.start = (h.start + 1) % len(h.buf)
}

// Items 全部记录的拷贝，从旧到新
func (h *RewardHistory) Items() []Reward {
	items := make([]Reward, h.size)
	for i := range items {
		items[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return items
}

// Latest 最新一条记录
func (h *RewardHistory) Latest() (Reward, bool) {
	if h.size == 0 {
		return Reward{}, false
	}
	return h.buf[(h.start+h.size-1)%len(h.buf)], true
}

func (h *RewardHistory) Len() int {
	return h.size
}

// Clear 清空记录
func (h *RewardHistory) Clear() {
	h.start = 0
	h.size = 0
}
