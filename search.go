package btree

// PathHint is a per-traversal scratch buffer that caches the last hit
// index at each tree level, accelerating repeated searches for nearby
// keys (spec.md §4.1). It is a pure optimization: results never depend
// on it, and passing nil always works. Grounded on btreeg.go:PathHint,
// generalized to a caller-owned value (spec.md §9 design note:
// "Prefer the per-call buffer: it keeps search pure and avoids hidden
// global state").
type PathHint struct {
	used [maxHeight]bool
	path [maxHeight]uint8
}

// maxHeight bounds the depth of any tree this package can build. Even
// at the smallest legal fanout (4, so min items per non-root node is 1
// and minimum branching is 2), a tree taller than this could not address
// more items than fit in a 64-bit count, so this is a safe static
// bound for stack-allocated path/frame arrays. Grounded on bgen.h's
// BGEN_MAXHEIGHT table (lines ~67-80), generalized to one constant
// generous enough for every clamped fanout this package allows.
const maxHeight = 64

// search locates key within n's items, returning the leftmost index at
// which it would sort and whether it is already present. Dispatches to
// linear or binary scan per the tree's configured strategy, optionally
// accelerated by hint.
func (tr *Tree[T]) search(n *node[T], key T, hint *PathHint, depth int) (index int, found bool) {
	if hint != nil && depth < maxHeight {
		return tr.hintSearch(n, key, hint, depth)
	}
	if tr.useLinear(n) {
		return tr.linearSearch(n, key)
	}
	return tr.binarySearch(n, key)
}

func (tr *Tree[T]) useLinear(n *node[T]) bool {
	switch tr.opts.Search {
	case SearchLinear:
		return true
	case SearchBinary:
		return false
	default:
		return tr.maxItems <= 16
	}
}

// binarySearch is the standard midpoint search over [0, len).
// Grounded on btreeg_impl.go:bsearch.
func (tr *Tree[T]) binarySearch(n *node[T], key T) (index int, found bool) {
	low, high := 0, len(n.items)
	for low < high {
		h := (low + high) / 2
		if !tr.less(key, n.items[h]) {
			low = h + 1
		} else {
			high = h
		}
	}
	if low > 0 && !tr.less(n.items[low-1], key) {
		return low - 1, true
	}
	return low, false
}

// linearSearch scans items from the left, preferred at small fanout
// where branch prediction dominates (spec.md §4.1). When
// Options.LessEqual is set, it is used as a fused fast filter to
// reject non-matching items without a full two-sided compare.
func (tr *Tree[T]) linearSearch(n *node[T], key T) (index int, found bool) {
	lte := tr.opts.LessEqual
	for i, it := range n.items {
		if lte != nil && !lte(key, it) {
			continue
		}
		if !tr.less(it, key) {
			if !tr.less(key, it) {
				return i, true
			}
			return i, false
		}
	}
	return len(n.items), false
}

// hintSearch narrows the search range using the last hit index cached
// at this depth, then delegates to the configured strategy on the
// narrowed range. Grounded on btreeg_impl.go:hintsearch.
func (tr *Tree[T]) hintSearch(n *node[T], key T, hint *PathHint, depth int) (index int, found bool) {
	low := 0
	high := len(n.items) - 1
	if hint.used[depth] {
		index = int(hint.path[depth])
		if index >= len(n.items) {
			if tr.less(n.items[len(n.items)-1], key) {
				index = len(n.items)
				goto pathMatch
			}
			index = len(n.items) - 1
		}
		if tr.less(key, n.items[index]) {
			if index == 0 || tr.less(n.items[index-1], key) {
				goto pathMatch
			}
			high = index - 1
		} else if tr.less(n.items[index], key) {
			low = index + 1
		} else {
			found = true
			goto pathMatch
		}
	}

	for low <= high {
		mid := low + ((high + 1) - low) / 2
		if !tr.less(key, n.items[mid]) {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	if low > 0 && !tr.less(n.items[low-1], key) {
		index = low - 1
		found = true
	} else {
		index = low
		found = false
	}

pathMatch:
	hint.used[depth] = true
	var pathIndex uint8
	if n.leaf() && found {
		pathIndex = uint8(index + 1)
	} else {
		pathIndex = uint8(index)
	}
	if pathIndex != hint.path[depth] {
		hint.path[depth] = pathIndex
		for i := depth + 1; i < maxHeight; i++ {
			hint.used[i] = false
		}
	}
	return index, found
}
