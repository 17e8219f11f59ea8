package btree

// Sane walks the whole tree checking every structural invariant
// spec.md §4.9/§8 names: per-node item-count bounds, uniform leaf
// depth, item ordering (within a node and across each branch
// separator's neighboring subtrees), the counted augmentation's
// count agreement, and the spatial augmentation's rectangle
// agreement. It is a debug/test tool, not used on any hot path.
// Grounded on original_source/bgen.h's sane0 (lines ~724-797),
// flattened from bgen's stored height field (which this package does
// not keep) to an explicit leaf-depth comparison instead.
func (tr *Tree[T]) Sane() bool {
	if tr.root == nil {
		return tr.count == 0
	}
	leafDepth := -1
	if !tr.sane0(tr.root, 0, &leafDepth) {
		return false
	}
	return tr.root.count == tr.count
}

func (tr *Tree[T]) sane0(n *node[T], depth int, leafDepth *int) bool {
	minItems := tr.minItems
	if depth == 0 {
		minItems = 1
	}
	if len(n.items) < minItems || len(n.items) > tr.maxItems {
		return false
	}

	if n.leaf() {
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return false
		}
	}

	if tr.ordered {
		for i := 1; i < len(n.items); i++ {
			if !tr.less(n.items[i-1], n.items[i]) {
				return false
			}
		}
	}

	if n.leaf() {
		if n.count != len(n.items) {
			return false
		}
		return true
	}

	if len(*n.children) != len(n.items)+1 {
		return false
	}

	if tr.ordered {
		for i := 0; i < len(n.items); i++ {
			left := (*n.children)[i]
			right := (*n.children)[i+1]
			if len(left.items) > 0 && !tr.less(left.items[len(left.items)-1], n.items[i]) {
				return false
			}
			if len(right.items) > 0 && !tr.less(n.items[i], right.items[0]) {
				return false
			}
		}
	}

	total := len(n.items)
	for i, c := range *n.children {
		if !tr.sane0(c, depth+1, leafDepth) {
			return false
		}
		total += c.count
		if tr.spatial {
			want := tr.rectCalc(n, i)
			if !rectEqual((*n.rects)[i], want) {
				return false
			}
		}
	}
	if n.count != total {
		return false
	}
	return true
}
