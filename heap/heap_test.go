package heap

import (
	"math/rand"
	"sort"
	"testing"
)

// checkStructure verifies the binomial shape: root degrees strictly
// ascending and pairwise distinct, every node of degree d holding exactly
// d children with degrees 0..d-1, and no child with a smaller priority
// than its parent.
func checkStructure(t *testing.T, h *Heap) {
	t.Helper()
	for i := 1; i < len(h.roots); i++ {
		if h.roots[i-1].degree >= h.roots[i].degree {
			t.Error("root degrees not strictly ascending:", h.roots[i-1].degree, h.roots[i].degree)
		}
	}
	for _, r := range h.roots {
		checkTree(t, r)
	}
}

func checkTree(t *testing.T, n *node) {
	t.Helper()
	if len(n.children) != n.degree {
		t.Error("degree", n.degree, "but", len(n.children), "children")
	}
	for i, c := range n.children {
		if c.degree != i {
			t.Error("child", i, "has degree", c.degree)
		}
		if c.e.Priority < n.e.Priority {
			t.Error("heap order violated:", c.e.Priority, "<", n.e.Priority)
		}
		checkTree(t, c)
	}
}

// count is an independent size computation for cross-checking Size.
func count(h *Heap) int {
	n := 0
	var walk func(*node)
	walk = func(x *node) {
		n++
		for _, c := range x.children {
			walk(c)
		}
	}
	for _, r := range h.roots {
		walk(r)
	}
	return n
}

func TestAscendingExtraction(t *testing.T) {
	h := New()
	prios := []int{2, 9, 3, 8, 5, 6, 4}
	for i, p := range prios {
		h.Insert(p, 100+i)
		checkStructure(t, h)
	}

	want := append([]int{}, prios...)
	sort.Ints(want)
	for i := 0; i < len(prios); i++ {
		p, err := h.MinPriority()
		if err != nil {
			t.Fatal(err)
		}
		if p != want[i] {
			t.Error("expected priority", want[i], "got", p)
		}
		id, err := h.ExtractMin()
		if err != nil {
			t.Fatal(err)
		}
		// payload must belong to the extracted priority
		if prios[id-100] != p {
			t.Error("payload", id, "does not match priority", p)
		}
		checkStructure(t, h)
	}
	if !h.Empty() {
		t.Error("expected empty heap")
	}
}

func TestEmptyHeap(t *testing.T) {
	h := New()
	if !h.Empty() {
		t.Error("new heap should be empty")
	}
	if _, err := h.MinPriority(); err != ErrEmpty {
		t.Error("expected ErrEmpty, got", err)
	}
	if _, err := h.MinPassenger(); err != ErrEmpty {
		t.Error("expected ErrEmpty, got", err)
	}
	if _, err := h.ExtractMin(); err != ErrEmpty {
		t.Error("expected ErrEmpty, got", err)
	}
	// the failed calls must not have changed anything
	if !h.Empty() || h.Size() != 0 {
		t.Error("heap changed by failed calls")
	}
}

func TestMinDoesNotMutate(t *testing.T) {
	h := New()
	h.Insert(5, 1)
	h.Insert(3, 2)
	for i := 0; i < 3; i++ {
		p, err := h.MinPriority()
		if err != nil || p != 3 {
			t.Error("expected min priority 3, got", p, err)
		}
		id, err := h.MinPassenger()
		if err != nil || id != 2 {
			t.Error("expected min passenger 2, got", id, err)
		}
	}
	if h.Size() != 2 {
		t.Error("min lookups must not remove entries")
	}
}

func TestSizeConservation(t *testing.T) {
	rand.Seed(1)
	h := New()
	inserted, extracted := 0, 0
	for i := 0; i < 500; i++ {
		if h.Empty() || rand.Intn(3) != 0 {
			h.Insert(rand.Intn(1000), i)
			inserted++
		} else {
			if _, err := h.ExtractMin(); err != nil {
				t.Fatal(err)
			}
			extracted++
		}
		if i%50 == 0 {
			checkStructure(t, h)
			if h.Size() != inserted-extracted {
				t.Fatal("size", h.Size(), "but", inserted, "inserts and", extracted, "extracts")
			}
			if h.Size() != count(h) {
				t.Fatal("Size disagrees with independent count")
			}
		}
	}
	checkStructure(t, h)
	if h.Size() != inserted-extracted {
		t.Error("size", h.Size(), "but", inserted, "inserts and", extracted, "extracts")
	}
}

func TestDrain(t *testing.T) {
	rand.Seed(2)
	h := New()
	n := 100
	for i := 0; i < n; i++ {
		h.Insert(rand.Intn(50), i) // duplicate priorities on purpose
	}
	before := h.Size()
	out := h.Drain()
	if len(out) != before {
		t.Error("drained", len(out), "entries, size before was", before)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Priority < out[i-1].Priority {
			t.Error("drain not in ascending priority order at", i)
		}
	}
	if !h.Empty() {
		t.Error("heap should be empty after drain")
	}
}

func TestClear(t *testing.T) {
	h := New()
	for i := 0; i < 20; i++ {
		h.Insert(i, i)
	}
	h.Clear()
	if !h.Empty() || h.Size() != 0 {
		t.Error("heap not empty after clear")
	}
	h.Insert(1, 1)
	if id, err := h.ExtractMin(); err != nil || id != 1 {
		t.Error("heap not usable after clear")
	}
}

func TestEqualPriorities(t *testing.T) {
	h := New()
	for i := 0; i < 8; i++ {
		h.Insert(7, i)
	}
	checkStructure(t, h)
	seen := make(map[int]bool)
	for i := 0; i < 8; i++ {
		id, err := h.ExtractMin()
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Error("passenger", id, "extracted twice")
		}
		seen[id] = true
		checkStructure(t, h)
	}
}

func TestInterleavedMerge(t *testing.T) {
	// exercise the carry handling: extract from a full tree so its children
	// merge back into a forest that occupies the same degrees
	h := New()
	for i := 0; i < 15; i++ { // degrees 0,1,2,3 all occupied
		h.Insert(i, i)
	}
	checkStructure(t, h)
	for i := 0; i < 15; i++ {
		id, err := h.ExtractMin()
		if err != nil {
			t.Fatal(err)
		}
		if id != i {
			t.Error("expected", i, "got", id)
		}
		checkStructure(t, h)
	}
}
