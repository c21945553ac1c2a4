package heap

// A min-heap keyed by float priorities, used by the Dijkstra searches in the graph package.
// Heap functions are based on the original Go implementation in the container/heap package.
// The original Go implementation is licensed under the BSD 3-Clause License, allowing use with modification, provided that the following is included:

// Copyright (c) 2009 The Go Authors. All rights reserved.
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// An Item is something we manage in a priority queue.
type Item[T any] struct {
	Value    T       // The value of the item; arbitrary.
	Priority float64 // The priority of the item in the queue.
	seq      uint64  // Insertion order, breaks priority ties
}

// PriorityQueue holds Items ordered by (priority, insertion order).
type PriorityQueue[T any] struct {
	items []*Item[T]
	next  uint64
}

// NewPriorityQueue creates an empty queue
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

// Len returns the number of items in the queue.
func (h *PriorityQueue[T]) Len() int {
	return len(h.items)
}

// Push pushes the value onto the heap.
// The complexity is O(log n) where n = h.Len().
func (h *PriorityQueue[T]) Push(value T, priority float64) {
	h.items = append(h.items, &Item[T]{Value: value, Priority: priority, seq: h.next})
	h.next++
	h.up(len(h.items) - 1)
}

// Pop removes and returns the minimum element from the heap.
// The complexity is O(log n) where n = h.Len().
func (h *PriorityQueue[T]) Pop() (T, float64, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, 0, false
	}

	old := h.items
	n := len(old) - 1
	old[0], old[n] = old[n], old[0]
	h.down(0, n)

	item := old[n]
	old[n] = nil // avoid memory leak
	h.items = old[:n]

	return item.Value, item.Priority, true
}

// Peek returns the minimum element without removing it.
func (h *PriorityQueue[T]) Peek() (T, float64, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, 0, false
	}
	return h.items[0].Value, h.items[0].Priority, true
}

func (h *PriorityQueue[T]) less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

func (h *PriorityQueue[T]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		j = i
	}
}

func (h *PriorityQueue[T]) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		i = j
	}
	return i > i0
}
