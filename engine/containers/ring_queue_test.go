package containers

import (
	"testing"

	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFOWithWraparound(t *testing.T) {
	rq := NewRingQueue[int](3)
	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), core.ErrQueueFull)

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, rq.Enqueue(4))
	got := []int{}
	for !rq.IsEmpty() {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)
}

func TestRingQueueEmpty(t *testing.T) {
	rq := NewRingQueue[string](0)
	assert.Equal(t, 1, rq.Cap())

	_, err := rq.Peek()
	assert.ErrorIs(t, err, core.ErrQueueEmpty)
	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, core.ErrQueueEmpty)

	require.NoError(t, rq.Enqueue("a"))
	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	assert.Equal(t, 1, rq.Len())
}
