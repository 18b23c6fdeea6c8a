// Package topk selects the k best-scoring items with a bounded heap.
package topk

import "sort"

// Item is a scored candidate.
type Item struct {
	// Slot identifies the candidate in the caller's snapshot.
	Slot int
	// Key breaks ties: on equal scores the smaller key ranks first.
	Key   string
	Score float64
}

// better reports whether a ranks before b.
func better(a, b Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Key < b.Key
}

// Heap keeps the best k items seen so far.
// The root holds the worst retained item so it can be evicted in O(log k).
type Heap struct {
	k     int
	items []Item
}

// New creates a heap retaining at most k items.
func New(k int) *Heap {
	return &Heap{
		k:     k,
		items: make([]Item, 0, min(max(k, 0), 1024)),
	}
}

// Len returns the number of retained items.
func (h *Heap) Len() int {
	return len(h.items)
}

// Push offers item to the heap. If the heap is full and item is not better than
// the worst retained item, it is dropped.
func (h *Heap) Push(item Item) {
	if h.k <= 0 {
		return
	}
	if len(h.items) < h.k {
		h.items = append(h.items, item)
		h.siftUp(len(h.items) - 1)
		return
	}
	if better(item, h.items[0]) {
		h.items[0] = item
		h.siftDown(0)
	}
}

// Sorted returns the retained items, best first, and resets the heap.
func (h *Heap) Sorted() []Item {
	out := h.items
	h.items = nil
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// less orders the heap so the worst item sits at the root.
func (h *Heap) less(i, j int) bool {
	return better(h.items[j], h.items[i])
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && h.less(right, left) {
			child = right
		}
		if !h.less(child, i) {
			break
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
}
