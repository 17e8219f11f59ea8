package btree

// Tree is a generic B-tree that, depending on the Options it was
// constructed with, behaves as an ordered map/set, a random-access
// vector/deque, a priority queue, and/or a spatial index — the same
// node machinery backs all of them (spec.md §2). Grounded on
// btreeg.go:BTreeG[T].
type Tree[T any] struct {
	gen        uint64
	root       *node[T]
	count      int
	opts       Options[T]
	ordered    bool
	counted    bool
	spatial    bool
	cow        bool
	atomicGen  bool
	maxItems   int
	minItems   int
}

// New returns a Tree using the given Options. Fanout/Dims are clamped
// per spec.md §2/§6; Counted and AtomicGen default to true unless
// explicitly set false.
func New[T any](opts Options[T]) *Tree[T] {
	tr := new(Tree[T])
	tr.opts = opts
	tr.ordered = opts.Less != nil
	tr.counted = boolDefault(opts.Counted, true)
	tr.spatial = opts.Rect != nil
	tr.cow = !opts.NoCOW
	tr.atomicGen = boolDefault(opts.AtomicGen, true)
	fanout := clampFanout(opts.Fanout)
	tr.maxItems = fanout - 1
	tr.minItems = tr.maxItems / 2
	tr.opts.Dims = clampDims(opts.Dims)
	tr.gen = tr.nextGen()
	return tr
}

func (tr *Tree[T]) less(a, b T) bool {
	return tr.opts.Less(a, b)
}

// Len returns the number of items in the tree.
func (tr *Tree[T]) Len() int {
	return tr.count
}

// Height returns the number of levels from root to leaf, inclusive.
// Returns zero for an empty tree. Grounded on btreeg.go:Height.
func (tr *Tree[T]) Height() int {
	var height int
	n := tr.root
	for n != nil {
		height++
		if n.leaf() {
			break
		}
		n = (*n.children)[0]
	}
	return height
}

// Clear removes every item from the tree, invoking Options.Release on
// each one still owned by this generation (spec.md §3 "Lifecycle").
func (tr *Tree[T]) Clear() {
	if tr.root != nil {
		tr.clearNode(tr.root)
	}
	tr.root = nil
	tr.count = 0
}

func (tr *Tree[T]) clearNode(n *node[T]) {
	if n.gen != tr.gen {
		// Shared with another clone; releasing items here would drop
		// them while the other handle still references this node.
		return
	}
	if release := tr.opts.Release; release != nil {
		for _, it := range n.items {
			release(it)
		}
	}
	if !n.leaf() {
		for _, c := range *n.children {
			tr.clearNode(c)
		}
	}
}

// Clone returns an independent handle sharing the current tree
// contents in O(1) (spec.md §4.7), unless Options.NoCOW was set, in
// which case it performs a full deep Copy instead. Grounded on
// btreeg.go:IsoCopy.
//
// Known limitation: this package stamps each node with the generation
// of the tree that last wrote it rather than tracking a true reference
// count per node (see cow.go). A consequence is that Options.Release
// is not guaranteed to fire for a subtree that is Cloned and then has
// both the original and the clone cleared or dropped without either
// ever mutating it: neither handle's current generation will match the
// untouched nodes' stamp, so both Clear calls see them as "possibly
// still owned by the other side" and skip Release. bgen.h's own COW
// uses a true per-node reference count for exactly this reason; this
// package accepts the narrower gap in exchange for not threading a
// refcount increment/decrement through every split, merge, and COW
// site. Release still fires correctly for Copy (always exclusively
// owned from creation) and for any node that either handle goes on to
// mutate after the Clone (mutation COWs it into that handle's own
// current generation, so that handle's later Clear sees it as owned
// and releases it normally).
func (tr *Tree[T]) Clone() *Tree[T] {
	if !tr.cow {
		return tr.Copy()
	}
	tr.gen = tr.nextGen()
	tr2 := new(Tree[T])
	*tr2 = *tr
	tr2.gen = tr.nextGen()
	return tr2
}

// Copy returns a fully independent deep copy of the tree: every node
// is freshly allocated and every item is duplicated via Options.Copy
// if configured. Prefer Clone for the common O(1) case; Copy exists
// for materializing a standalone snapshot (spec.md §4.7).
//
// The copy is made by calling deepCopyNode on tr2, not tr: every fresh
// node must be stamped with tr2's own generation, not the source
// tree's, or tr2 would look "still shared" to its own Clear/Delete
// (which compare a node's stamp against the gen of the tree doing the
// clearing) and Options.Release would never fire for a Copy that is
// cleared without first being mutated.
func (tr *Tree[T]) Copy() *Tree[T] {
	tr2 := new(Tree[T])
	*tr2 = *tr
	tr2.gen = tr.nextGen()
	tr2.root = tr2.deepCopyNode(tr.root)
	return tr2
}

// Flags reports the capability configuration this tree was built
// with (spec.md §6 "introspection of configured flags/limits").
type Flags struct {
	Ordered   bool
	Counted   bool
	Spatial   bool
	COW       bool
	AtomicGen bool
	Fanout    int
	Dims      int
}

func (tr *Tree[T]) Flags() Flags {
	return Flags{
		Ordered:   tr.ordered,
		Counted:   tr.counted,
		Spatial:   tr.spatial,
		COW:       tr.cow,
		AtomicGen: tr.atomicGen,
		Fanout:    tr.maxItems + 1,
		Dims:      tr.opts.Dims,
	}
}

// Rect returns the bounding rectangle of the whole tree, or the
// ok=false zero value if the tree is empty or not spatial.
func (tr *Tree[T]) Rect() (r Rect, ok bool) {
	if !tr.spatial || tr.root == nil {
		return Rect{}, false
	}
	return tr.deepRect(tr.root)
}
