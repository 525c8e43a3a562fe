package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/signal-sim-rl/utils/container"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	_, _, ok := q.First()
	assert.False(t, ok)

	q.HeapPush("c", 30)
	q.HeapPush("a1", 10)
	q.HeapPush("b", 20)
	q.HeapPush("a2", 10)
	require.Equal(t, 4, q.Len())

	v, p, ok := q.First()
	require.True(t, ok)
	assert.Equal(t, "a1", v)
	assert.Equal(t, 10., p)

	got := make([]string, 0)
	for q.Len() > 0 {
		v, _ := q.HeapPop()
		got = append(got, v)
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, got)
}

func TestPriorityQueuePopUntil(t *testing.T) {
	q := container.NewPriorityQueue[int]()
	for i, p := range []float64{5, 1, 3, 3, 9} {
		q.HeapPush(i, p)
	}
	assert.Empty(t, q.PopUntil(0))
	assert.Equal(t, []int{1, 2, 3}, q.PopUntil(3))
	assert.Equal(t, []int{0}, q.PopUntil(8.5))
	assert.Equal(t, []int{4}, q.PopUntil(100))
	assert.Equal(t, 0, q.Len())
}
