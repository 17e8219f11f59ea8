package btree

// This file holds the node algebra: the atomic shift/split/join/
// give/rebalance operations from which every higher-level mutation is
// composed (spec.md §4.2). Grounded on btreeg_impl.go:nodeSplit /
// nodeRebalance, generalized to also keep the spatial rects array
// current through every transfer; counts need no separate bookkeeping
// here since they live on node.count directly (see node.go).

// shiftRight opens a gap of one slot at position i in n's items (and,
// for branches, the child/rect arrays one slot to the right of
// the item gap), ready for an insert at i. Grounded on spec.md §4.2
// and bgen.h's shift_right; the teacher inlines this at each call site
// (e.g. btreeg_impl.go:nodeSet's append+copy dance) — named here to
// match the spec's node-algebra vocabulary.
func (tr *Tree[T]) shiftRight(n *node[T], i int) {
	var zero T
	n.items = append(n.items, zero)
	copy(n.items[i+1:], n.items[i:])
	if !n.leaf() {
		*n.children = append(*n.children, nil)
		copy((*n.children)[i+2:], (*n.children)[i+1:])
		if n.rects != nil {
			*n.rects = append(*n.rects, Rect{})
			copy((*n.rects)[i+2:], (*n.rects)[i+1:])
		}
	}
}

// shiftLeft closes the item slot at i (removing n.items[i]) and, for
// branches, the child slot at i+1 (the right side of the separator
// being removed). Grounded on btreeg_impl.go:delete's leaf-removal
// dance and nodeRebalance's merge-shift.
func (tr *Tree[T]) shiftLeft(n *node[T], i int) {
	var zero T
	copy(n.items[i:], n.items[i+1:])
	n.items[len(n.items)-1] = zero
	n.items = n.items[:len(n.items)-1]
	if !n.leaf() {
		copy((*n.children)[i+1:], (*n.children)[i+2:])
		(*n.children)[len(*n.children)-1] = nil
		*n.children = (*n.children)[:len(*n.children)-1]
		if n.rects != nil {
			copy((*n.rects)[i+1:], (*n.rects)[i+2:])
			*n.rects = (*n.rects)[:len(*n.rects)-1]
		}
	}
}

// nodeSplit splits a full node in half, returning the new right
// sibling and the separator item that used to sit between them.
// Grounded on btreeg_impl.go:nodeSplit.
func (tr *Tree[T]) nodeSplit(n *node[T]) (right *node[T], median T) {
	i := tr.maxItems / 2
	median = n.items[i]

	right = tr.newNode(n.leaf())
	right.items = append([]T{}, n.items[i+1:]...)
	if !n.leaf() {
		*right.children = append([]*node[T]{}, (*n.children)[i+1:]...)
		if n.rects != nil {
			*right.rects = append([]Rect{}, (*n.rects)[i+1:]...)
		}
	}
	right.updateCount()

	var zero T
	n.items[i] = zero
	n.items = n.items[:i:i]
	if !n.leaf() {
		*n.children = (*n.children)[: i+1 : i+1]
		if n.rects != nil {
			*n.rects = (*n.rects)[: i+1 : i+1]
			(*n.rects)[i] = tr.rectCalc(n, i)
		}
	}
	n.updateCount()
	return right, median
}

// splitRoot allocates a new branch root with the old root as its sole
// child, then splits that child in place, installing the separator.
// Grounded on btreeg_impl.go:setHint's inline root-split, lifted to a
// named routine per spec.md §4.2 "split_root".
func (tr *Tree[T]) splitRoot() {
	left := tr.load(&tr.root, true)
	right, median := tr.nodeSplit(left)
	newRoot := tr.newNode(false)
	*newRoot.children = append(*newRoot.children, left, right)
	newRoot.items = append(newRoot.items, median)
	if tr.spatial {
		*newRoot.rects = append(*newRoot.rects,
			tr.rectCalc(newRoot, 0), tr.rectCalc(newRoot, 1))
	}
	newRoot.updateCount()
	tr.root = newRoot
}

// rebalance repairs the child at index i after a deletion left it
// below the minimum item count, merging it with a sibling or
// transferring items through the parent separator. Grounded on
// btreeg_impl.go:nodeRebalance, extended to keep rects current.
func (tr *Tree[T]) rebalance(n *node[T], i int) {
	if i == len(n.items) {
		i--
	}
	left := tr.load(&(*n.children)[i], true)
	right := tr.load(&(*n.children)[i+1], true)

	if len(left.items)+len(right.items) < tr.maxItems {
		// merge (left, separator, right) into left; drop right
		sep := len(left.items)
		left.items = append(left.items, n.items[i])
		left.items = append(left.items, right.items...)
		if !left.leaf() {
			*left.children = append(*left.children, *right.children...)
			if left.rects != nil {
				*left.rects = append(*left.rects, *right.rects...)
				(*left.rects)[sep] = tr.rectCalc(left, sep)
			}
		}
		left.count += right.count + 1
		tr.shiftLeft(n, i)
		if n.rects != nil {
			(*n.rects)[i] = tr.rectCalc(n, i)
		}
		return
	}

	if len(left.items) > len(right.items) {
		// rotate one item: left's max -> separator -> right's min
		var zero T
		right.items = append(right.items, zero)
		copy(right.items[1:], right.items)
		right.items[0] = n.items[i]
		n.items[i] = left.items[len(left.items)-1]
		left.items[len(left.items)-1] = zero
		left.items = left.items[:len(left.items)-1]
		left.count--
		right.count++

		if !left.leaf() {
			*right.children = append(*right.children, nil)
			copy((*right.children)[1:], *right.children)
			moved := (*left.children)[len(*left.children)-1]
			(*right.children)[0] = moved
			(*left.children)[len(*left.children)-1] = nil
			*left.children = (*left.children)[:len(*left.children)-1]
			movedCount := moved.count
			left.count -= movedCount
			right.count += movedCount

			if left.rects != nil {
				movedRect := (*left.rects)[len(*left.rects)-1]
				*right.rects = append(*right.rects, Rect{})
				copy((*right.rects)[1:], *right.rects)
				(*right.rects)[0] = movedRect
				*left.rects = (*left.rects)[:len(*left.rects)-1]
				(*right.rects)[0] = tr.rectCalc(right, 0)
				last := len(*left.rects) - 1
				(*left.rects)[last] = tr.rectCalc(left, last)
			}
		}
	} else {
		// rotate one item the other direction
		var zero T
		left.items = append(left.items, n.items[i])
		left.count++
		n.items[i] = right.items[0]
		copy(right.items, right.items[1:])
		right.items[len(right.items)-1] = zero
		right.items = right.items[:len(right.items)-1]
		right.count--

		if !left.leaf() {
			moved := (*right.children)[0]
			*left.children = append(*left.children, moved)
			copy(*right.children, (*right.children)[1:])
			(*right.children)[len(*right.children)-1] = nil
			*right.children = (*right.children)[:len(*right.children)-1]
			movedCount := moved.count
			left.count += movedCount
			right.count -= movedCount

			if left.rects != nil {
				movedRect := (*right.rects)[0]
				*left.rects = append(*left.rects, movedRect)
				copy(*right.rects, (*right.rects)[1:])
				*right.rects = (*right.rects)[:len(*right.rects)-1]
				last := len(*left.rects) - 1
				(*left.rects)[last-1] = tr.rectCalc(left, last-1)
				(*left.rects)[last] = tr.rectCalc(left, last)
			}
		}
	}
	if n.rects != nil {
		(*n.rects)[i] = tr.rectCalc(n, i)
		(*n.rects)[i+1] = tr.rectCalc(n, i+1)
	}
}

// giveLeft relieves a full child at index i by moving one item (and,
// for branches, one child) from it into its left sibling at i-1 through
// the parent separator, rather than splitting. The left sibling must
// already have spare capacity; that check is the caller's
// responsibility (insertFast). Grounded on bgen.h's
// give_left (single-item, unbalanced form — "this will give items from
// right to left, node->children[i] to node->children[i-1]", lines
// ~2037-2068); the symmetric "balance half the difference" mode named
// in spec.md is not needed by any operation in this package and so is
// not implemented, since wiring dead flexibility would contradict the
// "build only what's exercised" rule.
func (tr *Tree[T]) giveLeft(n *node[T], i int) {
	left := tr.load(&(*n.children)[i-1], true)
	right := tr.load(&(*n.children)[i], true)

	left.items = append(left.items, n.items[i-1])
	n.items[i-1] = right.items[0]
	copy(right.items, right.items[1:])
	var zero T
	right.items[len(right.items)-1] = zero
	right.items = right.items[:len(right.items)-1]
	left.count++
	right.count--

	if !left.leaf() {
		moved := (*right.children)[0]
		*left.children = append(*left.children, moved)
		copy(*right.children, (*right.children)[1:])
		(*right.children)[len(*right.children)-1] = nil
		*right.children = (*right.children)[:len(*right.children)-1]
		movedCount := moved.count
		left.count += movedCount
		right.count -= movedCount
	}
	if n.rects != nil {
		(*n.rects)[i-1] = tr.rectCalc(n, i-1)
		(*n.rects)[i] = tr.rectCalc(n, i)
	}
}
