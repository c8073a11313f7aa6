package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapOrdersByLess(t *testing.T) {
	h := NewHeap(func(a, b int) bool { return a < b })
	for _, v := range []int{5, 1, 4, 2, 3} {
		h.Push(v)
	}

	var out []int
	for !h.IsEmpty() {
		v, ok := h.Pop()
		require.True(t, ok)
		out = append(out, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)

	_, ok := h.Pop()
	assert.False(t, ok)
}

func TestHeapFixAndRemove(t *testing.T) {
	type entry struct{ key int }
	h := NewHeap(func(a, b *entry) bool { return a.key < b.key })

	a := h.Push(&entry{key: 1})
	b := h.Push(&entry{key: 2})
	h.Push(&entry{key: 3})

	a.Value.key = 10
	h.Fix(a)
	top, _ := h.Peek()
	assert.Equal(t, 2, top.key)

	h.Remove(b)
	assert.False(t, b.Queued())
	h.Remove(b)
	assert.Equal(t, 2, h.Len())

	top, _ = h.Peek()
	assert.Equal(t, 3, top.key)
}
