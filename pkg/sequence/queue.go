package sequence

import "container/heap"

// Item is a handle to a value stored in a Heap. Its index is -1 once the
// value has left the heap.
type Item[T any] struct {
	Value T
	index int
}

// Queued reports whether the item is still stored in its heap.
func (it *Item[T]) Queued() bool { return it != nil && it.index >= 0 }

type items[T any] struct {
	list []*Item[T]
	less func(a, b T) bool
}

func (q *items[T]) Len() int { return len(q.list) }

func (q *items[T]) Less(i, j int) bool { return q.less(q.list[i].Value, q.list[j].Value) }

func (q *items[T]) Swap(i, j int) {
	q.list[i], q.list[j] = q.list[j], q.list[i]
	q.list[i].index = i
	q.list[j].index = j
}

func (q *items[T]) Push(x any) {
	it := x.(*Item[T])
	it.index = len(q.list)
	q.list = append(q.list, it)
}

func (q *items[T]) Pop() any {
	old := q.list
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	q.list = old[:n-1]
	return it
}

// Heap is a min-heap ordered by less. Items may be fixed or removed in
// place through the handle returned by Push.
type Heap[T any] struct {
	q items[T]
}

func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{q: items[T]{less: less}}
}

func (h *Heap[T]) Push(value T) *Item[T] {
	it := &Item[T]{Value: value}
	heap.Push(&h.q, it)
	return it
}

func (h *Heap[T]) Pop() (T, bool) {
	if h.q.Len() == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&h.q).(*Item[T]).Value, true
}

func (h *Heap[T]) Peek() (T, bool) {
	if h.q.Len() == 0 {
		var zero T
		return zero, false
	}
	return h.q.list[0].Value, true
}

// Fix restores ordering after the item's value changed.
func (h *Heap[T]) Fix(it *Item[T]) {
	if it.Queued() {
		heap.Fix(&h.q, it.index)
	}
}

// Remove takes the item out of the heap; removing twice is a no-op.
func (h *Heap[T]) Remove(it *Item[T]) {
	if it.Queued() {
		heap.Remove(&h.q, it.index)
	}
}

func (h *Heap[T]) Len() int { return h.q.Len() }

func (h *Heap[T]) IsEmpty() bool { return h.q.Len() == 0 }
