package btree

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func TestCursorScanMatchesCallbackScan(t *testing.T) {
	tr := newOrderedInts()
	for _, v := range rand.Perm(500) {
		tr.Insert(v)
	}
	want := collectAsc(tr)

	var got []int
	c := tr.Cursor()
	for ok := c.Scan(); ok; ok = c.Next() {
		got = append(got, c.Item())
	}
	if !slices.Equal(got, want) {
		t.Fatalf("cursor scan mismatch: got %d items, want %d", len(got), len(want))
	}
}

func TestCursorSeek(t *testing.T) {
	tr := newOrderedInts()
	for _, v := range []int{0, 2, 4, 6, 8, 10} {
		tr.Insert(v)
	}
	c := tr.Cursor()
	if !c.Seek(5) || c.Item() != 6 {
		t.Fatalf("seek(5) = %v, valid=%v", c.Item(), c.Valid())
	}
	c.Next()
	if c.Item() != 8 {
		t.Fatalf("after seek(5), next = %v", c.Item())
	}

	if !c.SeekDesc(5) || c.Item() != 4 {
		t.Fatalf("seek_desc(5) = %v", c.Item())
	}

	if !c.Seek(0) || c.Item() != 0 {
		t.Fatalf("seek(0) exact match = %v", c.Item())
	}
	if c.Seek(11) {
		t.Fatal("seek past the end should be invalid")
	}
}

func TestCursorSeekAt(t *testing.T) {
	tr := newOrderedInts()
	for _, v := range []int{10, 20, 30, 40, 50} {
		tr.Insert(v)
	}
	c := tr.Cursor()
	if !c.SeekAt(2) || c.Item() != 30 {
		t.Fatalf("seek_at(2) = %v", c.Item())
	}
	var forward []int
	for ok := true; ok; ok = c.Next() {
		forward = append(forward, c.Item())
	}
	if !slices.Equal(forward, []int{30, 40, 50}) {
		t.Fatalf("forward from seek_at(2) = %v", forward)
	}

	if !c.SeekAtDesc(2) || c.Item() != 30 {
		t.Fatalf("seek_at_desc(2) = %v", c.Item())
	}
	var backward []int
	for ok := true; ok; ok = c.Next() {
		backward = append(backward, c.Item())
	}
	if !slices.Equal(backward, []int{30, 20, 10}) {
		t.Fatalf("backward from seek_at_desc(2) = %v", backward)
	}
}

func TestCursorReleaseInvalidates(t *testing.T) {
	tr := newOrderedInts()
	tr.Insert(1)
	c := tr.Cursor()
	c.Scan()
	c.Release()
	if c.Valid() {
		t.Fatal("cursor should be invalid after Release")
	}
}
