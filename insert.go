package btree

// Insertion is one recursive routine parameterized by mode, rather than
// a family of near-duplicate walks: Insert, InsertAt/ReplaceAt (used by
// positional.go) and PushFront/PushBack all fall out of the same
// traversal, distinguished only by how the target index in the current
// node is chosen and which order check applies. Grounded directly on
// original_source/bgen.h's insert1/insert0 (the BGEN_INSITEM/INSAT/
// REPAT/PUSHFRONT/PUSHBACK modes), adapted to Go's simpler recurse-and-
// retry-from-the-top split handling (matching tidwall's own
// btreeg_impl.go:nodeSet, rather than bgen's in-place goto retry).

type insertMode int

const (
	insItem insertMode = iota
	insAt
	repAt
	pushFront
	pushBack
)

// mustSplit is an internal sentinel distinct from every exported Status
// (those all start at 1 via iota+1 in status.go), signaling "this node
// is full; the caller must split the child before retrying".
const mustSplit Status = 0

// insert0 is the tree-level entry point shared by every insert mode: it
// handles the empty-tree and root-split cases, then defers to
// nodeInsert. Grounded on bgen.h:insert0.
func (tr *Tree[T]) insert0(mode insertMode, index int, item T, hint *PathHint) (T, Status) {
	if tr.root == nil {
		if mode == repAt || (mode == insAt && index > 0) {
			var zero T
			return zero, NotFound
		}
		tr.root = tr.newNode(true)
		tr.root.items = append(tr.root.items, item)
		tr.root.count = 1
		tr.count = 1
		var zero T
		return zero, Inserted
	}
	for {
		prev, st := tr.nodeInsert(&tr.root, mode, index, item, hint, 0)
		if st != mustSplit {
			if st == Inserted {
				tr.count++
			}
			return prev, st
		}
		tr.splitRoot()
	}
}

// nodeInsert descends into n looking for where item belongs under mode,
// COWing along the way. It returns mustSplit when n is full and must be
// split by the caller before the whole insert0 loop retries from the
// root. Grounded on bgen.h:insert1.
func (tr *Tree[T]) nodeInsert(cn **node[T], mode insertMode, index int, item T, hint *PathHint, depth int) (T, Status) {
	n := tr.load(cn, true)
	origIndex := index

	var i int
	var found bool
	switch mode {
	case insItem:
		i, found = tr.search(n, item, hint, depth)

	case insAt, repAt:
		if n.leaf() {
			if index > len(n.items) || (index == len(n.items) && mode == repAt) {
				var zero T
				return zero, NotFound
			}
			i, found = index, true
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
		if tr.ordered {
			if mode == repAt && !n.leaf() && found {
				if !tr.edgeOrderOK(n, i, item) {
					var zero T
					return zero, OutOfOrder
				}
			} else {
				i0 := i - 1
				i1 := i
				if mode == repAt && n.leaf() {
					i1 = i + 1
				}
				if i0 >= 0 && !tr.less(n.items[i0], item) {
					var zero T
					return zero, OutOfOrder
				}
				if i1 < len(n.items) && !tr.less(item, n.items[i1]) {
					var zero T
					return zero, OutOfOrder
				}
			}
		}
		if mode == insAt {
			found = false
		}

	case pushFront:
		i, found = 0, false
		if n.leaf() {
			if tr.ordered && len(n.items) > 0 && !tr.less(item, n.items[0]) {
				var zero T
				return zero, OutOfOrder
			}
			return tr.insertLeaf(n, i, item)
		}

	case pushBack:
		i, found = len(n.items), false
		if n.leaf() {
			if tr.ordered && len(n.items) > 0 && !tr.less(n.items[len(n.items)-1], item) {
				var zero T
				return zero, OutOfOrder
			}
			return tr.insertLeaf(n, i, item)
		}
	}

	if found {
		prev := n.items[i]
		n.items[i] = item
		if !n.leaf() && tr.spatial {
			(*n.rects)[i] = tr.rectCalc(n, i)
		}
		return prev, Replaced
	}

	if n.leaf() {
		return tr.insertLeaf(n, i, item)
	}

	prev, st := tr.nodeInsert(&(*n.children)[i], mode, index, item, hint, depth+1)
	if st == mustSplit {
		if len(n.items) == tr.maxItems {
			var zero T
			return zero, mustSplit
		}
		right, median := tr.nodeSplit((*n.children)[i])
		tr.shiftRight(n, i)
		(*n.children)[i+1] = right
		n.items[i] = median
		if tr.spatial {
			(*n.rects)[i] = tr.rectCalc(n, i)
			(*n.rects)[i+1] = tr.rectCalc(n, i+1)
		}
		return tr.nodeInsert(cn, mode, origIndex, item, hint, depth)
	}
	switch st {
	case Inserted:
		n.count++
		if tr.spatial {
			(*n.rects)[i] = rectJoin((*n.rects)[i], tr.itemRect(item))
		}
	case Replaced:
		if tr.spatial {
			(*n.rects)[i] = tr.rectCalc(n, i)
		}
	}
	return prev, st
}

func (tr *Tree[T]) insertLeaf(n *node[T], i int, item T) (T, Status) {
	if len(n.items) == tr.maxItems {
		var zero T
		return zero, mustSplit
	}
	tr.shiftRight(n, i)
	n.items[i] = item
	n.count++
	var zero T
	return zero, Inserted
}

// edgeOrderOK checks that replacing branch item n.items[i] with item
// keeps it strictly between the max of the left subtree and the min of
// the right subtree. Grounded on bgen.h:insert1's REPAT-at-branch
// order check (the two descend-to-edge-leaf loops).
func (tr *Tree[T]) edgeOrderOK(n *node[T], i int, item T) bool {
	left := (*n.children)[i]
	for !left.leaf() {
		left = (*left.children)[len(*left.children)-1]
	}
	if !tr.less(left.items[len(left.items)-1], item) {
		return false
	}
	right := (*n.children)[i+1]
	for !right.leaf() {
		right = (*right.children)[0]
	}
	return tr.less(item, right.items[0])
}

// Insert adds item to the tree, or replaces the equal existing item.
// Returns Unsupported if the tree has no ordering.
func (tr *Tree[T]) Insert(item T) (prev T, status Status) {
	return tr.InsertHint(item, nil)
}

// InsertHint is Insert accelerated by a caller-owned PathHint.
func (tr *Tree[T]) InsertHint(item T, hint *PathHint) (prev T, status Status) {
	if !tr.ordered {
		var zero T
		return zero, Unsupported
	}
	if !tr.spatial {
		if prev, st, ok := tr.insertFast(item); ok {
			return prev, st
		}
	}
	return tr.insert0(insItem, 0, item, hint)
}

// insertFast implements spec.md §4.4's fast-path insert: a
// non-recursive descent, tracking only the immediate parent and the
// child index taken, that relieves a full leaf by giving an item to a
// roomy left sibling rather than recursing back up through every
// ancestor to split. Count bookkeeping is done optimistically as the
// descent proceeds and rolled back on the path recorded so far whenever
// the fast path gives up and falls back to insert0. Restricted to
// ordered, non-spatial trees per spec.md §4.4. Grounded on
// bgen.h:insert_fastpath (lines ~2311-2421), which bgen itself only
// wires into its own plain insert() entry point, not insert_at/
// replace_at/push_front/push_back — matched here by only calling this
// from Insert/InsertHint.
//
// ok is false when the fast path declined to handle the insert (empty
// tree, a full leaf root, or a full leaf whose parent is also full); the caller must
// retry through insert0 in that case.
func (tr *Tree[T]) insertFast(item T) (prev T, status Status, ok bool) {
	var zero T
	if tr.root == nil {
		return zero, 0, false
	}

	type frame struct {
		n *node[T]
		i int
	}
	var path []frame
	unwind := func() {
		for _, f := range path {
			f.n.count--
		}
	}

	cur := tr.load(&tr.root, true)
	var parent *node[T]
	cidx := 0
	depth := 0

	for {
		i, found := tr.search(cur, item, nil, depth)
		if found {
			prev = cur.items[i]
			cur.items[i] = item
			unwind()
			return prev, Replaced, true
		}
		if !cur.leaf() {
			path = append(path, frame{cur, i})
			cur.count++
			depth++
			cidx = i
			parent = cur
			cur = tr.load(&(*cur.children)[i], true)
			continue
		}

		if len(cur.items) < tr.maxItems {
			tr.shiftRight(cur, i)
			cur.items[i] = item
			cur.count++
			tr.count++
			return zero, Inserted, true
		}

		// cur is a full leaf; only handle it here if its immediate
		// parent has room to take a new separator (from a give-left
		// or a split). Anything taller falls back to insert0, which
		// recurses all the way back up splitting as needed.
		if parent == nil || len(parent.items) == tr.maxItems {
			unwind()
			return zero, 0, false
		}

		// undo the optimistic bump made when we descended from parent
		// into this (now known to be unusable) leaf, and retry at the
		// parent's level with a fresh search.
		parent.count--
		path = path[:len(path)-1]
		depth--
		cur = parent

		if cidx > 0 {
			left := tr.load(&(*cur.children)[cidx-1], true)
			if len(left.items) < tr.minItems+1 {
				tr.giveLeft(cur, cidx)
				continue
			}
		}

		right, median := tr.nodeSplit((*cur.children)[cidx])
		tr.shiftRight(cur, cidx)
		(*cur.children)[cidx+1] = right
		cur.items[cidx] = median
		next := cidx
		if tr.less(median, item) {
			next++
		}
		path = append(path, frame{cur, next})
		cur.count++
		depth++
		cidx = next
		parent = cur
		cur = tr.load(&(*cur.children)[next], true)
	}
}

// PushFront inserts item as the new first element. If the tree is
// ordered, item must sort before the current first item or the call
// returns OutOfOrder and the tree is unchanged.
func (tr *Tree[T]) PushFront(item T) Status {
	_, st := tr.insert0(pushFront, 0, item, nil)
	return st
}

// PushBack inserts item as the new last element. If the tree is
// ordered, item must sort after the current last item or the call
// returns OutOfOrder and the tree is unchanged.
func (tr *Tree[T]) PushBack(item T) Status {
	_, st := tr.insert0(pushBack, 0, item, nil)
	return st
}

// Load is a bulk-append fast path for building an ordered tree from
// already-sorted input: when item sorts after the current last item,
// it is appended directly to the rightmost leaf without a full
// search. Falls back to Insert (and so accepts out-of-order input,
// just without the speed benefit) otherwise. Grounded on
// btreeg.go:Load; disabled for spatial trees since the fast branch
// never touches the rects augmentation.
func (tr *Tree[T]) Load(item T) Status {
	if !tr.ordered {
		return Unsupported
	}
	if tr.root != nil && !tr.spatial {
		if st, ok := tr.loadFast(item); ok {
			return st
		}
	}
	_, st := tr.insert0(insItem, 0, item, nil)
	return st
}

func (tr *Tree[T]) loadFast(item T) (Status, bool) {
	n := tr.load(&tr.root, true)
	for {
		n.count++ // optimistically update counts
		if n.leaf() {
			if len(n.items) < tr.maxItems && tr.less(n.items[len(n.items)-1], item) {
				n.items = append(n.items, item)
				tr.count++
				return Inserted, true
			}
			break
		}
		n = tr.load(&(*n.children)[len(*n.children)-1], true)
	}
	// revert the optimistic counts; caller falls back to insert0
	n = tr.root
	for {
		n.count--
		if n.leaf() {
			break
		}
		n = (*n.children)[len(*n.children)-1]
	}
	return 0, false
}

func (tr *Tree[T]) getHint(key T, hint *PathHint, mut bool) (T, bool) {
	if !tr.ordered || tr.root == nil {
		var zero T
		return zero, false
	}
	n := tr.load(&tr.root, mut)
	depth := 0
	for {
		i, found := tr.search(n, key, hint, depth)
		if found {
			return n.items[i], true
		}
		if n.leaf() {
			var zero T
			return zero, false
		}
		n = tr.load(&(*n.children)[i], mut)
		depth++
	}
}

// Get returns the item equal to key, if present.
func (tr *Tree[T]) Get(key T) (T, bool) {
	return tr.getHint(key, nil, false)
}

// GetHint is Get accelerated by a caller-owned PathHint.
func (tr *Tree[T]) GetHint(key T, hint *PathHint) (T, bool) {
	return tr.getHint(key, hint, false)
}

// GetMut is Get, but COWs every node on the path so the returned item
// may be observed through a handle safe to mutate in place without
// affecting any clone that shares this subtree.
func (tr *Tree[T]) GetMut(key T) (T, bool) {
	return tr.getHint(key, nil, true)
}

// Contains reports whether key is present.
func (tr *Tree[T]) Contains(key T) bool {
	_, ok := tr.Get(key)
	return ok
}
