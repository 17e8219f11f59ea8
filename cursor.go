package btree

// Cursor walks a Tree as an explicit, resumable stack of frames rather
// than a recursive callback, so a caller can pause, inspect, resume, or
// hold the walk open across unrelated work. Grounded on
// btreeg_iter.go:IterG[T]'s frame-stack design for the SCAN/SCANDESC
// kinds, extended with INTERSECTS (rect-filtered) and NEARBY
// (priority-queue-driven) per original_source/bgen.h's BGEN_ITER union
// and its iter_next_asc/iter_next_desc/iter_next_nearby (lines
// ~3660-3900).
type CursorKind int

const (
	CursorScan CursorKind = iota
	CursorScanDesc
	CursorIntersects
	CursorNearby
)

type cursorFrame[T any] struct {
	n *node[T]
	i int
}

// Cursor is positioned over at most one item at a time (Item, Valid).
// Next (and, for SCAN/SCANDESC, Prev) advance it; Release drops any
// resources it holds (chiefly the kNN queue) once the caller is done.
type Cursor[T any] struct {
	tr    *Tree[T]
	mut   bool
	kind  CursorKind
	valid bool
	stack []cursorFrame[T]
	item  T

	target Rect // CursorIntersects

	queue   *pqueue[T] // CursorNearby
	distFn  DistFunc
	distArg any
}

// Cursor returns a read-only cursor over tr.
func (tr *Tree[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{tr: tr}
}

// CursorMut returns a cursor that COWs every node it visits, so the
// item it yields may be observed through a handle safe to mutate in
// place without affecting any clone sharing the subtree.
func (tr *Tree[T]) CursorMut() *Cursor[T] {
	return &Cursor[T]{tr: tr, mut: true}
}

func (c *Cursor[T]) reset(kind CursorKind) {
	if kind == CursorNearby {
		c.queue = newPQueue(c.tr)
	} else {
		c.queue = nil
	}
	c.stack = c.stack[:0]
	c.kind = kind
	c.valid = false
}

// Valid reports whether the cursor is currently positioned over an
// item.
func (c *Cursor[T]) Valid() bool {
	return c.valid
}

// Item returns the item the cursor is currently positioned over. Only
// meaningful when Valid reports true.
func (c *Cursor[T]) Item() T {
	return c.item
}

// Release drops the cursor's held resources (the kNN queue, chiefly)
// and invalidates it. Safe to call on an already-released cursor.
func (c *Cursor[T]) Release() {
	c.stack = nil
	c.queue = nil
	c.valid = false
}

// Scan resets the cursor to a forward, ascending walk starting at the
// first item. Requires an ordering.
func (c *Cursor[T]) Scan() bool {
	c.reset(CursorScan)
	if !c.tr.ordered || c.tr.root == nil {
		return false
	}
	c.seedFirst()
	return c.advanceAsc()
}

// ScanDesc resets the cursor to a backward, descending walk starting
// at the last item. Requires an ordering.
func (c *Cursor[T]) ScanDesc() bool {
	c.reset(CursorScanDesc)
	if !c.tr.ordered || c.tr.root == nil {
		return false
	}
	c.seedLast()
	return c.advanceDesc()
}

// Seek resets the cursor to a forward scan starting at the first item
// greater than or equal to key. Grounded on btreeg_iter.go:Seek.
func (c *Cursor[T]) Seek(key T) bool {
	c.reset(CursorScan)
	if !c.tr.ordered || c.tr.root == nil {
		return false
	}
	n := c.tr.load(&c.tr.root, c.mut)
	depth := 0
	for {
		i, found := c.tr.search(n, key, nil, depth)
		c.stack = append(c.stack, cursorFrame[T]{n: n, i: i})
		if found {
			c.item = n.items[i]
			c.valid = true
			return true
		}
		if n.leaf() {
			c.stack[len(c.stack)-1].i = i - 1
			return c.advanceAsc()
		}
		n = c.tr.load(&(*n.children)[i], c.mut)
		depth++
	}
}

// SeekDesc resets the cursor to a backward scan starting at the last
// item less than or equal to key.
func (c *Cursor[T]) SeekDesc(key T) bool {
	c.reset(CursorScanDesc)
	if !c.tr.ordered || c.tr.root == nil {
		return false
	}
	n := c.tr.load(&c.tr.root, c.mut)
	depth := 0
	for {
		i, found := c.tr.search(n, key, nil, depth)
		c.stack = append(c.stack, cursorFrame[T]{n: n, i: i})
		if found {
			c.item = n.items[i]
			c.valid = true
			return true
		}
		if n.leaf() {
			return c.advanceDesc()
		}
		n = c.tr.load(&(*n.children)[i], c.mut)
		depth++
	}
}

// SeekAt resets the cursor to a forward scan starting at rank index.
// Requires the counted augmentation.
func (c *Cursor[T]) SeekAt(index int) bool {
	c.reset(CursorScan)
	if !c.seekRank(index) {
		return false
	}
	c.item = c.stack[len(c.stack)-1].n.items[c.stack[len(c.stack)-1].i]
	c.valid = true
	return true
}

// SeekAtDesc resets the cursor to a backward scan starting at rank
// index. Requires the counted augmentation.
func (c *Cursor[T]) SeekAtDesc(index int) bool {
	c.reset(CursorScanDesc)
	if !c.seekRank(index) {
		return false
	}
	c.item = c.stack[len(c.stack)-1].n.items[c.stack[len(c.stack)-1].i]
	c.valid = true
	return true
}

func (c *Cursor[T]) seekRank(index int) bool {
	if !c.tr.counted || c.tr.root == nil || index < 0 || index >= c.tr.count {
		return false
	}
	n := c.tr.load(&c.tr.root, c.mut)
	for {
		if n.leaf() {
			c.stack = append(c.stack, cursorFrame[T]{n: n, i: index})
			return true
		}
		i := 0
		for ; i < len(n.items); i++ {
			cnt := (*n.children)[i].count
			if index < cnt {
				break
			} else if index == cnt {
				c.stack = append(c.stack, cursorFrame[T]{n: n, i: i})
				return true
			}
			index -= cnt + 1
		}
		c.stack = append(c.stack, cursorFrame[T]{n: n, i: i})
		n = c.tr.load(&(*n.children)[i], c.mut)
	}
}

// Intersects resets the cursor to a forward scan over every item whose
// rectangle intersects [min, max], pruning whole subtrees whose
// covering rectangle misses. Requires the spatial augmentation.
// Grounded on bgen.h's iter_skip_node/iter_skip_item.
func (c *Cursor[T]) Intersects(min, max []float64) bool {
	c.reset(CursorIntersects)
	if !c.tr.spatial || c.tr.root == nil {
		return false
	}
	c.target = Rect{Min: min, Max: max}
	c.seedFirst()
	return c.advanceAsc()
}

// Nearby resets the cursor to a forward scan over every item in
// increasing distance from target, as computed by dist. Requires the
// spatial augmentation. Grounded on bgen.h's BGEN_PQUEUE-driven
// iter_next_nearby.
func (c *Cursor[T]) Nearby(target any, dist DistFunc) bool {
	c.reset(CursorNearby)
	if !c.tr.spatial || c.tr.root == nil || dist == nil {
		return false
	}
	c.distFn = dist
	c.distArg = target
	root, ok := c.tr.deepRect(c.tr.root)
	if !ok {
		return false
	}
	c.queue.pushNode(c.tr.load(&c.tr.root, c.mut), dist(root.Min, root.Max, target))
	return c.advanceNearby()
}

// seedFirst pushes the frame -1, which the first advanceAsc call turns
// into a descent to the leftmost leaf (or, for INTERSECTS, the
// leftmost surviving leaf under the rect filter).
func (c *Cursor[T]) seedFirst() {
	c.stack = append(c.stack, cursorFrame[T]{n: c.tr.load(&c.tr.root, c.mut), i: -1})
}

// seedLast pushes the frame one past the end, which the first
// advanceDesc call turns into a descent to the rightmost leaf.
func (c *Cursor[T]) seedLast() {
	n := c.tr.load(&c.tr.root, c.mut)
	c.stack = append(c.stack, cursorFrame[T]{n: n, i: len(n.items)})
}

// Next advances the cursor to its next result: ascending for SCAN and
// INTERSECTS, descending for SCANDESC, next-nearest for NEARBY.
func (c *Cursor[T]) Next() bool {
	switch c.kind {
	case CursorScan, CursorIntersects:
		return c.advanceAsc()
	case CursorScanDesc:
		return c.advanceDesc()
	case CursorNearby:
		return c.advanceNearby()
	}
	return false
}

// Prev steps the cursor one position against its current direction:
// descending for a SCAN cursor, ascending for a SCANDESC cursor.
// INTERSECTS and NEARBY cursors don't support Prev; always false.
func (c *Cursor[T]) Prev() bool {
	switch c.kind {
	case CursorScan:
		return c.advanceDesc()
	case CursorScanDesc:
		return c.advanceAsc()
	default:
		return false
	}
}

// skipItem reports whether item n.items[i] should be skipped under the
// cursor's current filter. Only INTERSECTS filters.
func (c *Cursor[T]) skipItem(n *node[T], i int) bool {
	if c.kind != CursorIntersects {
		return false
	}
	return !rectIntersects(c.target, c.tr.itemRect(n.items[i]))
}

// skipNode reports whether the whole subtree/item rooted at slot i of
// branch n should be skipped. rects[i] already covers both child i's
// subtree and item i itself, so one check prunes both.
func (c *Cursor[T]) skipNode(n *node[T], i int) bool {
	if c.kind != CursorIntersects {
		return false
	}
	return !rectIntersects(c.target, (*n.rects)[i])
}

// advanceAsc is the classic in-order B-tree walk flattened onto an
// explicit stack: a branch frame's index visits child[i], then
// item[i], then child[i+1], and so on. Grounded on
// bgen.h:iter_next_asc, with skipNode/skipItem folded in for
// INTERSECTS.
func (c *Cursor[T]) advanceAsc() bool {
scan:
	for {
		if len(c.stack) == 0 {
			c.valid = false
			return false
		}
		top := &c.stack[len(c.stack)-1]
		top.i++
		if top.n.leaf() && top.i < len(top.n.items) {
			if c.skipItem(top.n, top.i) {
				continue scan
			}
			c.item = top.n.items[top.i]
			c.valid = true
			return true
		}
		if top.n.leaf() || top.i == len(top.n.items)+1 {
			for len(c.stack) > 1 {
				c.stack = c.stack[:len(c.stack)-1]
				top = &c.stack[len(c.stack)-1]
				if top.i < len(top.n.items) {
					if c.skipItem(top.n, top.i) {
						continue scan
					}
					c.item = top.n.items[top.i]
					c.valid = true
					return true
				}
			}
			c.valid = false
			return false
		}
		if c.skipNode(top.n, top.i) {
			continue scan
		}
		child := c.tr.load(&(*top.n.children)[top.i], c.mut)
		c.stack = append(c.stack, cursorFrame[T]{n: child, i: -1})
	}
}

// advanceDesc is the mirror image of advanceAsc: a branch frame visits
// child[i], then item[i-1], then child[i-1], descending from the
// rightmost spine. Grounded on bgen.h:iter_next_desc.
func (c *Cursor[T]) advanceDesc() bool {
	for {
		if len(c.stack) == 0 {
			c.valid = false
			return false
		}
		top := &c.stack[len(c.stack)-1]
		top.i--
		if top.n.leaf() && top.i > -1 {
			c.item = top.n.items[top.i]
			c.valid = true
			return true
		}
		if top.n.leaf() {
			for len(c.stack) > 1 {
				c.stack = c.stack[:len(c.stack)-1]
				top = &c.stack[len(c.stack)-1]
				top.i--
				if top.i > -1 {
					c.item = top.n.items[top.i]
					c.valid = true
					return true
				}
			}
			c.valid = false
			return false
		}
		top.i++ // undo the peek decrement; this child index is still valid
		child := c.tr.load(&(*top.n.children)[top.i], c.mut)
		c.stack = append(c.stack, cursorFrame[T]{n: child, i: len(child.items)})
	}
}

// advanceNearby pops the closest entry off the queue; if it is a node,
// its children and items are pushed back (re-ranked by their own
// distance) and popping continues; if it is an item, that's the next
// result. Grounded on bgen.h:iter_next_nearby/nearby_addnodecontents.
func (c *Cursor[T]) advanceNearby() bool {
	for c.queue.len() > 0 {
		top := c.queue.pop()
		if !top.isNode {
			c.item = top.item
			c.valid = true
			return true
		}
		n := top.node
		if n.leaf() {
			for _, it := range n.items {
				r := c.tr.itemRect(it)
				c.queue.pushItem(it, c.distFn(r.Min, r.Max, c.distArg))
			}
		} else {
			for i := range *n.children {
				r := (*n.rects)[i]
				child := c.tr.load(&(*n.children)[i], c.mut)
				c.queue.pushNode(child, c.distFn(r.Min, r.Max, c.distArg))
			}
			for _, it := range n.items {
				r := c.tr.itemRect(it)
				c.queue.pushItem(it, c.distFn(r.Min, r.Max, c.distArg))
			}
		}
	}
	c.valid = false
	return false
}
