package btree

// Deletion mirrors insert.go: one recursive routine parameterized by
// mode. A branch-level match doesn't remove the item in place (that
// would leave a hole with no separator); instead it's swapped for the
// maximum item pulled out of its left child subtree, which is itself
// just a delete invoked in "popMax" mode — so by-key delete, delete-at-
// index, pop-front, and pop-back all share one walk with popMax as the
// shared internal primitive. Grounded on original_source/bgen.h's
// delete1/delete0 (BGEN_DELKEY/POPMAX/POPFRONT/POPBACK/DELAT modes).

type deleteMode int

const (
	delKey deleteMode = iota
	popMax
	popFront
	popBack
	delAt
)

// delete0 is the tree-level entry point: handles the empty-tree case,
// defers to nodeDelete, then collapses an emptied branch root or drops
// the root entirely once the last item is gone. Grounded on
// bgen.h:delete0.
func (tr *Tree[T]) delete0(mode deleteMode, key T, index int, hint *PathHint) (T, Status) {
	if tr.root == nil {
		var zero T
		return zero, NotFound
	}
	prev, st := tr.nodeDelete(&tr.root, mode, key, index, hint, 0)
	if st != Deleted {
		return prev, st
	}
	if len(tr.root.items) == 0 && !tr.root.leaf() {
		tr.root = (*tr.root.children)[0]
	}
	tr.count--
	if tr.count == 0 {
		tr.root = nil
	}
	return prev, Deleted
}

// nodeDelete locates the target within n under mode, COWing along the
// way, and on a branch match recurses into the left child under
// popMax to pull up a replacement. Grounded on bgen.h:delete1.
func (tr *Tree[T]) nodeDelete(cn **node[T], mode deleteMode, key T, index int, hint *PathHint, depth int) (T, Status) {
	n := tr.load(cn, true)

	var i int
	var found bool
	switch mode {
	case delKey:
		i, found = tr.search(n, key, hint, depth)
	case popMax:
		if n.leaf() {
			i = len(n.items) - 1
		} else {
			i = len(n.items)
		}
		found = true
	case popFront:
		i, found = 0, n.leaf()
	case popBack:
		if n.leaf() {
			i = len(n.items) - 1
		} else {
			i = len(n.items)
		}
		found = n.leaf()
	case delAt:
		if n.leaf() {
			if index < len(n.items) {
				i, found = index, true
			}
		} else {
			for i = 0; i < len(n.items); i++ {
				count := (*n.children)[i].count
				if index <= count {
					found = index == count
					break
				}
				index -= count + 1
			}
		}
	}

	if n.leaf() {
		if !found {
			var zero T
			return zero, NotFound
		}
		prev := n.items[i]
		tr.shiftLeft(n, i)
		n.count--
		return prev, Deleted
	}

	var deleted T
	haveDeleted := false
	childMode := mode
	if found && mode != popMax {
		deleted = n.items[i]
		haveDeleted = true
		childMode = popMax
	}
	popped, st := tr.nodeDelete(&(*n.children)[i], childMode, key, index, hint, depth+1)
	if st != Deleted {
		if haveDeleted {
			return deleted, st
		}
		return popped, st
	}
	n.count--
	if haveDeleted {
		n.items[i] = popped
	} else {
		deleted = popped
	}
	if tr.spatial {
		// bgen.h only recomputes when the popped item sat on the bounding
		// edge (rect_onedge); always recomputing is simpler and still
		// correct, just occasionally does one extra rect_calc walk.
		(*n.rects)[i] = tr.rectCalc(n, i)
	}
	if len((*n.children)[i].items) < tr.minItems {
		tr.rebalance(n, i)
	}
	return deleted, Deleted
}

// Delete removes the item equal to key. Returns Unsupported if the
// tree has no ordering.
func (tr *Tree[T]) Delete(key T) (prev T, status Status) {
	return tr.DeleteHint(key, nil)
}

// DeleteHint is Delete accelerated by a caller-owned PathHint.
func (tr *Tree[T]) DeleteHint(key T, hint *PathHint) (prev T, status Status) {
	if !tr.ordered {
		var zero T
		return zero, Unsupported
	}
	return tr.delete0(delKey, key, 0, hint)
}

// PopFront removes and returns the first item. Defined even on an
// unordered (pure positional) tree.
func (tr *Tree[T]) PopFront() (T, Status) {
	var zero T
	return tr.delete0(popFront, zero, 0, nil)
}

// PopBack removes and returns the last item. Defined even on an
// unordered (pure positional) tree.
func (tr *Tree[T]) PopBack() (T, Status) {
	var zero T
	return tr.delete0(popBack, zero, 0, nil)
}
