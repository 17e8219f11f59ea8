package btree

import "testing"

// TestCloneIndependence matches spec.md §8 scenario 4: cloning a tree
// and mutating the clone must never affect the original.
func TestCloneIndependence(t *testing.T) {
	tr := newOrderedInts()
	const n = 1000
	for i := 0; i < n; i++ {
		tr.Insert(i)
	}

	clone := tr.Clone()
	for i := 0; i < n; i += 2 {
		if _, status := clone.Delete(i); status != Deleted {
			t.Fatalf("delete %d from clone = %v", i, status)
		}
	}

	if tr.Len() != n {
		t.Fatalf("original len = %d, want %d", tr.Len(), n)
	}
	for i := 0; i < n; i++ {
		if !tr.Contains(i) {
			t.Fatalf("original missing %d after clone mutation", i)
		}
	}
	if !tr.Sane() || !clone.Sane() {
		t.Fatal("original or clone not sane")
	}
	if clone.Len() != n/2 {
		t.Fatalf("clone len = %d, want %d", clone.Len(), n/2)
	}
}

func TestCopyIsIndependentLikeClone(t *testing.T) {
	tr := newOrderedInts()
	for i := 0; i < 100; i++ {
		tr.Insert(i)
	}
	cp := tr.Copy()
	cp.Delete(0)
	if !tr.Contains(0) {
		t.Fatal("Copy should not share mutations with the original")
	}
	if cp.Contains(0) {
		t.Fatal("deletion on the copy did not take effect")
	}
}

// TestCopyThenClearReleasesItems pins the fix for Copy's generation
// stamp: a freshly Copied tree is exclusively owned from creation, so
// clearing either the original or the copy (in either order, without
// any intervening mutation) must still release every item it owns.
func TestCopyThenClearReleasesItems(t *testing.T) {
	var released []int
	tr := New[int](Options[int]{
		Less:    func(a, b int) bool { return a < b },
		Release: func(item int) { released = append(released, item) },
	})
	const n = 50
	for i := 0; i < n; i++ {
		tr.Insert(i)
	}

	cp := tr.Copy()
	cp.Clear()
	if len(released) != n {
		t.Fatalf("released %d items after clearing the copy, want %d", len(released), n)
	}

	released = nil
	tr.Clear()
	if len(released) != n {
		t.Fatalf("released %d items after clearing the original, want %d", len(released), n)
	}
}

// TestClearAfterCloneDoesNotReleaseSharedItems pins the documented
// limitation of Clone's generation-stamp COW (see Tree.Clone): when
// neither the original nor the clone is ever mutated, clearing both
// never invokes Release on the shared subtree, because gen stamps
// only detect "is this a private copy", not "is this the last live
// reference", the way a true per-node reference count would. This is
// the known, accepted gap, not a regression target — if the COW
// strategy is ever upgraded to true refcounting, this test's
// expectation should flip along with it.
func TestClearAfterCloneDoesNotReleaseSharedItems(t *testing.T) {
	var released []int
	tr := New[int](Options[int]{
		Less:    func(a, b int) bool { return a < b },
		Release: func(item int) { released = append(released, item) },
	})
	const n = 50
	for i := 0; i < n; i++ {
		tr.Insert(i)
	}

	clone := tr.Clone()
	clone.Clear()
	tr.Clear()
	if len(released) != 0 {
		t.Fatalf("released %d items across an unmutated clone/clear pair, want 0 (see Tree.Clone's documented gap)", len(released))
	}
}

func TestClearReleasesItems(t *testing.T) {
	var released []int
	tr := New[int](Options[int]{
		Less:    func(a, b int) bool { return a < b },
		Release: func(item int) { released = append(released, item) },
	})
	for i := 0; i < 5; i++ {
		tr.Insert(i)
	}
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("len after clear = %d", tr.Len())
	}
	if len(released) != 5 {
		t.Fatalf("released %d items, want 5", len(released))
	}
}
