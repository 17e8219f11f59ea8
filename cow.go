package btree

import "sync/atomic"

// genCounter is a global generation counter, the source of the per-tree
// generation stamps that back copy-on-write. Grounded on
// map_impl.go:newIsoID (tidwall's "isoid" mechanism): rather than a
// true per-node reference count, every node is stamped with the id of
// the tree generation that created it, and a node is "shared" exactly
// when its stamp no longer matches its owning tree's current stamp.
var genCounter uint64

func nextGenAtomic() uint64 {
	return atomic.AddUint64(&genCounter, 1)
}

func nextGenPlain() uint64 {
	genCounter++
	return genCounter
}

func (tr *Tree[T]) nextGen() uint64 {
	if tr.atomicGen {
		return nextGenAtomic()
	}
	return nextGenPlain()
}

// cowNode copies n into a fresh node stamped with the tree's current
// generation, deep-copying items via Options.Copy when configured, and
// duplicating (not deep-copying) child pointers and rects.
// Grounded on btreeg_impl.go:copy / map_impl.go:(*Map).copy.
func (tr *Tree[T]) cowNode(n *node[T]) *node[T] {
	n2 := &node[T]{gen: tr.gen, count: n.count}
	n2.items = make([]T, len(n.items), cap(n.items))
	copy(n2.items, n.items)
	if tr.opts.Copy != nil {
		for i := range n2.items {
			n2.items[i] = tr.opts.Copy(n2.items[i])
		}
	}
	if !n.leaf() {
		n2.children = new([]*node[T])
		*n2.children = make([]*node[T], len(*n.children), tr.maxItems+1)
		copy(*n2.children, *n.children)
		if n.rects != nil {
			n2.rects = new([]Rect)
			*n2.rects = make([]Rect, len(*n.rects), tr.maxItems+1)
			copy(*n2.rects, *n.rects)
		}
	}
	return n2
}

// load returns *cn, copy-on-writing it first if mut is requested and
// the node is stamped with a stale (shared) generation. Grounded on
// btreeg_impl.go:isoLoad.
func (tr *Tree[T]) load(cn **node[T], mut bool) *node[T] {
	if mut && (*cn).gen != tr.gen {
		*cn = tr.cowNode(*cn)
	}
	return *cn
}

// deepCopyNode allocates an entirely fresh subtree, independent of any
// generation sharing. Used by Tree.Copy / Options.NoCOW's Clone
// fallback (spec.md §4.7 "deep copy ... used ... when COW is
// disabled").
func (tr *Tree[T]) deepCopyNode(n *node[T]) *node[T] {
	if n == nil {
		return nil
	}
	n2 := tr.cowNode(n)
	if !n.leaf() {
		for i, c := range *n.children {
			(*n2.children)[i] = tr.deepCopyNode(c)
		}
	}
	return n2
}
