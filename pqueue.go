package btree

// pqueue is the array-backed binary min-heap that drives Nearby/kNN:
// both subtrees (as node entries) and realized items compete in the
// same heap, ordered by distance with a three-level tie-break —
// distance, then insertion index, then (for two items) the item
// comparator. Grounded on original_source/bgen.h's BGEN_PQUEUE /
// pcompare / ppush0 / ppop (lines ~3505-3633).
//
// Every node pushed gets a small ascending index (the queue's own push
// counter); every item pushed gets maxPIndex, the largest possible
// value. Since indexes only break distance ties, this means a node and
// an item at the same distance always compare node-first — items never
// "jump the line" ahead of a subtree that might still contain a closer
// match. Between two nodes, the lower (earlier-pushed) index wins, so
// sibling subtrees are explored in a fixed, reproducible order. Between
// two items, the index tie (both maxPIndex) falls through to the item
// comparator.
const maxPIndex = ^uint64(0)

type pitem[T any] struct {
	dist   float64
	index  uint64
	isNode bool
	item   T
	node   *node[T]
}

type pqueue[T any] struct {
	tr    *Tree[T]
	items []pitem[T]
	next  uint64
}

func newPQueue[T any](tr *Tree[T]) *pqueue[T] {
	return &pqueue[T]{tr: tr}
}

func (q *pqueue[T]) len() int { return len(q.items) }

func (q *pqueue[T]) pushItem(item T, dist float64) {
	q.push(pitem[T]{dist: dist, index: maxPIndex, item: item})
}

func (q *pqueue[T]) pushNode(n *node[T], dist float64) {
	q.next++
	q.push(pitem[T]{dist: dist, index: q.next, isNode: true, node: n})
}

func (q *pqueue[T]) push(it pitem[T]) {
	q.items = append(q.items, it)
	i := len(q.items) - 1
	for i != 0 {
		parent := (i - 1) / 2
		if !q.less(i, parent) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

// pop removes and returns the minimum entry.
func (q *pqueue[T]) pop() pitem[T] {
	top := q.items[0]
	last := len(q.items) - 1
	q.items[0] = q.items[last]
	var zero pitem[T]
	q.items[last] = zero
	q.items = q.items[:last]

	i := 0
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < len(q.items) && q.less(left, smallest) {
			smallest = left
		}
		if right < len(q.items) && q.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.items[i], q.items[smallest] = q.items[smallest], q.items[i]
		i = smallest
	}
	return top
}

// less implements the pcompare tie-break chain: distance, then index,
// then (item vs item only) the tree's item comparator.
func (q *pqueue[T]) less(i, j int) bool {
	a, b := &q.items[i], &q.items[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.index != b.index {
		return a.index < b.index
	}
	if q.tr.ordered {
		return q.tr.less(a.item, b.item)
	}
	return false
}
