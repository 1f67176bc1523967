// Package heap implements the waitlist priority queue as a binomial min-heap.
// Lower priority values are served first.
package heap

import "errors"

// ErrEmpty is returned when a minimum is requested from a heap without entries.
var ErrEmpty = errors.New("heap is empty")

// An Entry is one waitlisted booking, a priority paired with a passenger id.
// The heap imposes no semantics on the passenger id.
type Entry struct {
	Priority  int
	Passenger int
}

// A node of degree d roots a binomial tree of exactly 2^d nodes. Its children
// are exclusively owned and stored in ascending degree order, degrees 0..d-1.
type node struct {
	e        Entry
	degree   int
	children []*node
}

// A Heap is a forest of binomial trees with at most one root per degree,
// roots kept in ascending degree order between operations. Within each tree
// a node's priority is never larger than any descendant's. A Heap is not
// safe for concurrent use.
type Heap struct {
	roots []*node
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{}
}

// Empty reports whether the heap holds no entries.
func (h *Heap) Empty() bool {
	return len(h.roots) == 0
}

// Insert adds the passenger with the given priority. Duplicate passenger ids
// are not detected, that is the caller's responsibility if it matters.
func (h *Heap) Insert(priority, passenger int) {
	n := &node{e: Entry{Priority: priority, Passenger: passenger}}
	h.roots = consolidate(mergeRoots(h.roots, []*node{n}))
}

// MinPriority returns the smallest priority value in the heap.
func (h *Heap) MinPriority() (int, error) {
	i := h.findMin()
	if i < 0 {
		return 0, ErrEmpty
	}
	return h.roots[i].e.Priority, nil
}

// MinPassenger returns the passenger id attached to the smallest priority.
func (h *Heap) MinPassenger() (int, error) {
	i := h.findMin()
	if i < 0 {
		return 0, ErrEmpty
	}
	return h.roots[i].e.Passenger, nil
}

// ExtractMin removes the minimum-priority entry and returns its passenger id.
// Ties are broken towards the first root in root-list order.
func (h *Heap) ExtractMin() (int, error) {
	i := h.findMin()
	if i < 0 {
		return 0, ErrEmpty
	}
	n := h.roots[i]
	h.roots = append(h.roots[:i], h.roots[i+1:]...)

	// the children of the removed root already form a valid forest in
	// ascending degree order, merge it back in
	kids := n.children
	n.children = nil
	h.roots = consolidate(mergeRoots(h.roots, kids))
	return n.e.Passenger, nil
}

// Size counts every node in every tree by traversal, it is not O(1).
func (h *Heap) Size() int {
	count := 0
	stack := make([]*node, len(h.roots))
	copy(stack, h.roots)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.children...)
	}
	return count
}

// Clear releases every node, the heap is empty afterwards.
func (h *Heap) Clear() {
	stack := h.roots
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, n.children...)
		n.children = nil
	}
	h.roots = nil
}

// Drain extracts every entry in ascending priority order. It is destructive,
// the heap is empty when it returns. This is the only way to observe the
// full waitlist order.
func (h *Heap) Drain() []Entry {
	out := make([]Entry, 0, len(h.roots))
	for !h.Empty() {
		p, _ := h.MinPriority()
		id, _ := h.ExtractMin()
		out = append(out, Entry{Priority: p, Passenger: id})
	}
	return out
}

// findMin scans the root list once and returns the index of the root with
// the globally minimum priority, or -1 when the heap is empty.
func (h *Heap) findMin() int {
	if len(h.roots) == 0 {
		return -1
	}
	min := 0
	for i := 1; i < len(h.roots); i++ {
		if h.roots[i].e.Priority < h.roots[min].e.Priority {
			min = i
		}
	}
	return min
}

// mergeRoots linearly merges two root lists that are each non-decreasing in
// degree into one non-decreasing list.
func mergeRoots(a, b []*node) []*node {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]*node, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].degree <= b[j].degree {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// consolidate walks a degree-sorted root list and, like carrying in binary
// addition, links adjacent roots of equal degree until every degree occurs
// at most once. When three equal-degree roots are adjacent the first is left
// alone and the latter two are linked.
func consolidate(roots []*node) []*node {
	for i := 0; i+1 < len(roots); {
		if roots[i].degree != roots[i+1].degree {
			i++
			continue
		}
		if i+2 < len(roots) && roots[i+2].degree == roots[i].degree {
			i++
			continue
		}
		roots[i] = link(roots[i], roots[i+1])
		roots = append(roots[:i+1], roots[i+2:]...)
		// the linked tree may now match the degree of its successor,
		// so re-check at the same position
	}
	return roots
}

// link combines two trees of equal degree, the root with the larger priority
// value becomes a child of the other. Returns the surviving root with its
// degree incremented.
func link(a, b *node) *node {
	if b.e.Priority < a.e.Priority {
		a, b = b, a
	}
	a.children = append(a.children, b)
	a.degree++
	return a
}
