package btree

// SearchKind selects how a node's item array is scanned. Grounded on
// spec.md §4.1: linear scan is preferred at small fanout where branch
// prediction dominates; binary search wins once nodes hold many items.
type SearchKind int

const (
	// SearchAuto picks linear for small fanout (<=16 max items) and
	// binary otherwise, matching the threshold spec.md §4.1 names.
	SearchAuto SearchKind = iota
	SearchLinear
	SearchBinary
)

const (
	minFanout  = 4
	maxFanout  = 4096
	defaultDeg = 32 // teacher's default Degree, yields fanout 64
)

// Options configures a Tree at construction time. All fields are
// instantiation knobs (spec.md §6): none of them are read again once
// New returns, except Less/LessEqual/Rect/Copy/Release, which are
// invoked on every relevant operation, and Search, which is consulted
// on every node search.
type Options[T any] struct {
	// Less reports whether a sorts before b. Required unless the tree
	// is used purely as a positional vector/deque (spec.md's
	// "unordered" flag): Insert/Delete/Ascend/Descend return
	// Unsupported, and IndexOf reports false, when Less is nil.
	Less func(a, b T) bool

	// LessEqual is an optional fused fast filter (spec.md §4.1's
	// "maybe_less_equal"): when set, the linear search strategy calls
	// it first to reject an item without a full two-sided compare.
	// Purely an optimization; results never depend on it.
	LessEqual func(a, b T) bool

	// Rect projects an item onto its axis-aligned bounding box.
	// Required iff the tree is spatial (Intersects/Nearby); leave nil
	// for plain ordered/positional trees.
	Rect func(item T) Rect

	// Copy deep-copies an item when a shared node must be duplicated
	// for copy-on-write, or for a full structural Copy(). If nil,
	// items are copied by value assignment only (fine for value types;
	// required for items holding pointers/slices that must not alias
	// across clones).
	Copy func(item T) T

	// Release is called by Clear for each item held in a node owned by
	// the clearing tree's current generation. It is not called for items
	// that are merely moved during rebalancing, for items removed by
	// Delete/DeleteAt/PopFront/PopBack, or when a COW copy replaces a
	// shared node. Clear skips nodes still shared with a clone, so items
	// in a subtree that neither handle mutates after Clone are never
	// released (see Tree.Clone).
	Release func(item T)

	// Fanout is the maximum number of children per branch node,
	// clamped to [4, 4096] and rounded down to even (spec.md §2). Zero
	// selects the default of 64. Max items per node is Fanout-1.
	Fanout int

	// Dims is the number of coordinate axes for spatial trees,
	// validated to [1, 4096] (spec.md §6). Unused for non-spatial
	// trees (Rect == nil).
	Dims int

	// Counted enables the subtree-size augmentation that backs
	// GetAt/InsertAt/DeleteAt/IndexOf/ReplaceAt. Defaults to true.
	// Like the teacher, every node carries its subtree count whether or
	// not this is set; setting it false only disables the positional
	// operations: InsertAt/ReplaceAt/DeleteAt then return Unsupported,
	// and GetAt/IndexOf report false.
	Counted *bool

	// Search selects the node-local search strategy. SearchAuto (the
	// zero value) follows spec.md §4.1's linear-vs-binary threshold.
	Search SearchKind

	// NoCOW disables copy-on-write sharing: Clone falls back to a
	// full deep Copy instead of an O(1) generation-stamp share. Use
	// this only when clones are never taken, since it has no benefit
	// otherwise and COW is the zero-cost default.
	NoCOW bool

	// AtomicGen selects an atomically-incremented generation counter
	// (spec.md's atomic_rc flag) so that Clone may be called from
	// multiple goroutines concurrently (each resulting handle is then
	// safe to use on its own goroutine per spec.md §5). Defaults to
	// true; set false for a marginally cheaper non-atomic counter on
	// single-threaded workloads.
	AtomicGen *bool

	// No allocator-pair field: original_source/bgen.h is instantiated
	// with a malloc/free pair so a caller can inject a failing allocator
	// and exercise spec.md's OOM-safety invariant. Go's allocation
	// primitives (make/append/new) don't expose a hookable, recoverable
	// failure path the way a C allocator pair does, so there is nothing
	// for a field like this to plug into; see status.go's OutOfMemory
	// doc and DESIGN.md's Open Question decisions.
}

func boolDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// clampFanout applies spec.md §2's clamp: [4, 4096], rounded to even.
func clampFanout(fanout int) int {
	if fanout <= 0 {
		fanout = defaultDeg * 2
	}
	if fanout < minFanout {
		fanout = minFanout
	}
	if fanout > maxFanout {
		fanout = maxFanout
	}
	if fanout%2 != 0 {
		fanout--
		if fanout < minFanout {
			fanout = minFanout
		}
	}
	return fanout
}

func clampDims(dims int) int {
	if dims <= 0 {
		return 2
	}
	if dims > 4096 {
		return 4096
	}
	return dims
}
