package btree

// Callback convenience layer over the spatial Cursor kinds, grounded
// on spec.md §7/§9 and examples/spatial.c's usage of a target rect and
// a dist callback. Requires the spatial augmentation (Options.Rect set).

// Intersects calls iter with every item whose rectangle intersects
// [min, max], stopping early if iter returns false. Returns
// Unsupported if the tree is not spatial.
func (tr *Tree[T]) Intersects(min, max []float64, iter func(item T) bool) Status {
	return tr.intersects(false, min, max, iter)
}

// IntersectsMut is Intersects, COWing every node visited.
func (tr *Tree[T]) IntersectsMut(min, max []float64, iter func(item T) bool) Status {
	return tr.intersects(true, min, max, iter)
}

func (tr *Tree[T]) intersects(mut bool, min, max []float64, iter func(item T) bool) Status {
	if !tr.spatial {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	for ok := c.Intersects(min, max); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}

// Nearby calls iter with every item in non-decreasing dist(rect(item),
// target) order, stopping early if iter returns false. Returns
// Unsupported if the tree is not spatial.
func (tr *Tree[T]) Nearby(target any, dist DistFunc, iter func(item T) bool) Status {
	return tr.nearby(false, target, dist, iter)
}

// NearbyMut is Nearby, COWing every node visited.
func (tr *Tree[T]) NearbyMut(target any, dist DistFunc, iter func(item T) bool) Status {
	return tr.nearby(true, target, dist, iter)
}

func (tr *Tree[T]) nearby(mut bool, target any, dist DistFunc, iter func(item T) bool) Status {
	if !tr.spatial {
		return Unsupported
	}
	c := &Cursor[T]{tr: tr, mut: mut}
	defer c.Release()
	for ok := c.Nearby(target, dist); ok; ok = c.Next() {
		if !iter(c.Item()) {
			return Stopped
		}
	}
	return Finished
}
