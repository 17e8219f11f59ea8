package btree

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"golang.org/x/exp/slices"
)

func init() {
	seed, err := strconv.ParseInt(os.Getenv("SEED"), 10, 64)
	if err != nil {
		seed = time.Now().UnixNano()
	}
	fmt.Printf("seed: %d\n", seed)
	rand.Seed(seed)
}

func newOrderedInts() *Tree[int] {
	return New[int](Options[int]{Less: func(a, b int) bool { return a < b }})
}

func collectAsc(tr *Tree[int]) []int {
	var out []int
	tr.Scan(func(item int) bool {
		out = append(out, item)
		return true
	})
	return out
}

func collectDesc(tr *Tree[int]) []int {
	var out []int
	tr.ScanDesc(func(item int) bool {
		out = append(out, item)
		return true
	})
	return out
}

// TestInsertScanDelete matches spec.md §8 scenario 1.
func TestInsertScanDelete(t *testing.T) {
	tr := newOrderedInts()
	for _, v := range []int{3, 8, 2, 5} {
		tr.Insert(v)
	}
	if got := collectAsc(tr); !slices.Equal(got, []int{2, 3, 5, 8}) {
		t.Fatalf("scan after insert = %v", got)
	}
	if prev, status := tr.Delete(3); status != Deleted || prev != 3 {
		t.Fatalf("delete 3 = %v, %v", prev, status)
	}
	if got := collectAsc(tr); !slices.Equal(got, []int{2, 5, 8}) {
		t.Fatalf("scan after delete = %v", got)
	}
	if !tr.Sane() {
		t.Fatal("tree not sane")
	}
}

// TestReplaceIdempotent matches spec.md §8 scenario 2 in spirit: inserting
// an equal item twice leaves the tree with one occurrence and reports
// Replaced the second time.
func TestReplaceIdempotent(t *testing.T) {
	tr := newOrderedInts()
	if _, status := tr.Insert(5); status != Inserted {
		t.Fatalf("first insert = %v", status)
	}
	if _, status := tr.Insert(5); status != Replaced {
		t.Fatalf("second insert = %v", status)
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
}

// TestOrderTraversal checks spec.md §8's "scan is ascending, scan_desc
// is descending, their concatenation covers the tree with no
// duplicates" property over random input.
func TestOrderTraversal(t *testing.T) {
	tr := newOrderedInts()
	const n = 2000
	want := rand.Perm(n)
	for _, v := range want {
		tr.Insert(v)
	}
	asc := collectAsc(tr)
	desc := collectDesc(tr)
	if !slices.IsSorted(asc) {
		t.Fatal("scan not ascending")
	}
	if len(desc) != len(asc) {
		t.Fatalf("scan_desc length = %d, want %d", len(desc), len(asc))
	}
	for i := range desc {
		if desc[i] != asc[len(asc)-1-i] {
			t.Fatalf("scan_desc is not the reverse of scan at %d", i)
		}
	}
}

// TestRandomInsertDeleteRoundTrip inserts and deletes a random subset,
// checking against a reference map, and keeps Sane() true throughout.
func TestRandomInsertDeleteRoundTrip(t *testing.T) {
	tr := newOrderedInts()
	ref := map[int]bool{}
	const n = 3000
	for _, v := range rand.Perm(n) {
		tr.Insert(v)
		ref[v] = true
		if !tr.Sane() {
			t.Fatalf("not sane after inserting %d", v)
		}
	}
	perm := rand.Perm(n)
	for i, v := range perm {
		if i%2 == 0 {
			prev, status := tr.Delete(v)
			if status != Deleted || prev != v {
				t.Fatalf("delete %d = %v, %v", v, prev, status)
			}
			delete(ref, v)
			if !tr.Sane() {
				t.Fatalf("not sane after deleting %d", v)
			}
		}
	}
	if tr.Len() != len(ref) {
		t.Fatalf("len = %d, want %d", tr.Len(), len(ref))
	}
	for v := range ref {
		if !tr.Contains(v) {
			t.Fatalf("missing %d", v)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	tr := newOrderedInts()
	tr.Insert(1)
	if _, status := tr.Delete(2); status != NotFound {
		t.Fatalf("delete missing key = %v", status)
	}
}

func TestUnsupportedOnUnorderedTree(t *testing.T) {
	tr := New[int](Options[int]{})
	if _, status := tr.Insert(1); status != Unsupported {
		t.Fatalf("insert on unordered tree = %v", status)
	}
	if _, status := tr.Delete(1); status != Unsupported {
		t.Fatalf("delete on unordered tree = %v", status)
	}
	if status := tr.Scan(func(int) bool { return true }); status != Unsupported {
		t.Fatalf("scan on unordered tree = %v", status)
	}
}

func TestPushFrontBackAndPop(t *testing.T) {
	tr := New[int](Options[int]{})
	tr.PushBack(1)
	tr.PushBack(2)
	tr.PushFront(0)
	if v, _ := tr.Front(); v != 0 {
		t.Fatalf("front = %d", v)
	}
	if v, _ := tr.Back(); v != 2 {
		t.Fatalf("back = %d", v)
	}
	if v, status := tr.PopFront(); v != 0 || status != Deleted {
		t.Fatalf("pop front = %v, %v", v, status)
	}
	if v, status := tr.PopBack(); v != 2 || status != Deleted {
		t.Fatalf("pop back = %v, %v", v, status)
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
}

func TestPushFrontRejectsOutOfOrder(t *testing.T) {
	tr := newOrderedInts()
	tr.PushBack(1)
	tr.PushBack(2)
	if status := tr.PushFront(5); status != OutOfOrder {
		t.Fatalf("push_front out of order = %v", status)
	}
	if status := tr.PushBack(0); status != OutOfOrder {
		t.Fatalf("push_back out of order = %v", status)
	}
}
