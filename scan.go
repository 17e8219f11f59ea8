package btree

// Callback-driven scans are a convenience layer over Cursor (spec.md
// §9 "expose the callback form as a convenience over the cursor"):
// each one seeds a cursor of the appropriate kind and walks it until
// either the tree is exhausted (Finished) or iter returns false
// (Stopped), which is a normal terminal state, not an error. Naming
// and callback shape grounded on btreeg.go:Scan/Ascend/Descend/
// Reverse.

// Scan calls iter with every item in ascending order, stopping early
// if iter returns false. Returns Unsupported if the tree has no
// ordering.
func (tr *Tree[T]) Scan(iter func(item T) bool) Status {
	return tr.scan(false, iter)
}

// ScanMut is Scan, COWing every node visited so items may be mutated
// in place through iter without affecting a clone.
func (tr *Tree[T]) ScanMut(iter func(item T) bool) Status {
	return tr.scan(true, iter)
}

func (tr *Tree[T]) scan(mut bool, iter func(item T) bool) Status {
	if !tr.ordered {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	for ok := c.Scan(); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}

// ScanDesc calls iter with every item in descending order, stopping
// early if iter returns false.
func (tr *Tree[T]) ScanDesc(iter func(item T) bool) Status {
	return tr.scanDesc(false, iter)
}

// ScanDescMut is ScanDesc, COWing every node visited.
func (tr *Tree[T]) ScanDescMut(iter func(item T) bool) Status {
	return tr.scanDesc(true, iter)
}

func (tr *Tree[T]) scanDesc(mut bool, iter func(item T) bool) Status {
	if !tr.ordered {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	for ok := c.ScanDesc(); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}

// Ascend calls iter with every item greater than or equal to pivot, in
// ascending order, stopping early if iter returns false.
func (tr *Tree[T]) Ascend(pivot T, iter func(item T) bool) Status {
	return tr.ascend(false, pivot, iter)
}

// AscendMut is Ascend, COWing every node visited.
func (tr *Tree[T]) AscendMut(pivot T, iter func(item T) bool) Status {
	return tr.ascend(true, pivot, iter)
}

func (tr *Tree[T]) ascend(mut bool, pivot T, iter func(item T) bool) Status {
	if !tr.ordered {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	for ok := c.Seek(pivot); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}

// Descend calls iter with every item less than or equal to pivot, in
// descending order, stopping early if iter returns false.
func (tr *Tree[T]) Descend(pivot T, iter func(item T) bool) Status {
	return tr.descend(false, pivot, iter)
}

// DescendMut is Descend, COWing every node visited.
func (tr *Tree[T]) DescendMut(pivot T, iter func(item T) bool) Status {
	return tr.descend(true, pivot, iter)
}

func (tr *Tree[T]) descend(mut bool, pivot T, iter func(item T) bool) Status {
	if !tr.ordered {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	for ok := c.SeekDesc(pivot); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}
