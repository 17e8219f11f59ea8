package btree

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func newCountedInts() *Tree[int] {
	return New[int](Options[int]{Less: func(a, b int) bool { return a < b }})
}

func TestIndexOfRankDuality(t *testing.T) {
	tr := newCountedInts()
	const n = 500
	keys := rand.Perm(n)
	for _, v := range keys {
		tr.Insert(v)
	}
	sorted := append([]int(nil), keys...)
	slices.Sort(sorted)

	for rank, key := range sorted {
		got, ok := tr.GetAt(rank)
		if !ok || got != key {
			t.Fatalf("GetAt(%d) = %v, %v; want %d", rank, got, ok, key)
		}
		gotRank, ok := tr.IndexOf(key)
		if !ok || gotRank != rank {
			t.Fatalf("IndexOf(%d) = %v, %v; want %d", key, gotRank, ok, rank)
		}
	}
}

func TestGetAtOutOfRange(t *testing.T) {
	tr := newCountedInts()
	tr.Insert(1)
	if _, ok := tr.GetAt(-1); ok {
		t.Fatal("GetAt(-1) should fail")
	}
	if _, ok := tr.GetAt(1); ok {
		t.Fatal("GetAt(len) should fail")
	}
}

func TestInsertAtReplaceAtDeleteAt(t *testing.T) {
	tr := New[int](Options[int]{})
	for _, v := range []int{8, 4, 5, 9} {
		tr.PushBack(v)
	}
	tr.PushBack(6)
	tr.PushBack(9)
	tr.ReplaceAt(2, -1)
	tr.InsertAt(2, 7)
	tr.DeleteAt(1)

	var got []int
	for i := 0; i < tr.Len(); i++ {
		v, _ := tr.GetAt(i)
		got = append(got, v)
	}
	want := []int{8, 7, -1, 9, 6, 9}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInsertAtRejectsOutOfOrder(t *testing.T) {
	tr := newCountedInts()
	tr.Insert(1)
	tr.Insert(2)
	tr.Insert(3)
	if _, status := tr.InsertAt(1, 100); status != OutOfOrder {
		t.Fatalf("insert_at breaking order = %v", status)
	}
}

func TestPositionalUnsupportedWhenNotCounted(t *testing.T) {
	f := false
	tr := New[int](Options[int]{
		Less:    func(a, b int) bool { return a < b },
		Counted: &f,
	})
	tr.Insert(1)
	if _, ok := tr.GetAt(0); ok {
		t.Fatal("GetAt should fail when not counted")
	}
	if _, status := tr.InsertAt(0, 2); status != Unsupported {
		t.Fatalf("InsertAt status = %v", status)
	}
	if _, status := tr.DeleteAt(0); status != Unsupported {
		t.Fatalf("DeleteAt status = %v", status)
	}
	if _, ok := tr.IndexOf(1); ok {
		t.Fatal("IndexOf should fail when not counted")
	}
}
