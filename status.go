// Copyright 2020 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
package btree

// Status is the result of an operation on a Tree. Every mutating and
// many read operations return one of these instead of panicking, so
// that callers can distinguish "nothing happened" from "this operation
// doesn't apply to this tree" from "allocation failed".
type Status int

const (
	// Inserted means a new item was added to the tree.
	Inserted Status = iota + 1
	// Replaced means a new item overwrote an existing equal item.
	Replaced
	// Deleted means an item was removed from the tree.
	Deleted
	// Found means a read operation located the requested item.
	Found
	// NotFound means a read or delete operation found no matching item.
	NotFound
	// OutOfOrder means a push/insert-at call would have violated the
	// tree's ordering and was rejected; the tree is unchanged.
	OutOfOrder
	// Finished means a callback-driven scan ran to completion.
	Finished
	// Stopped means a callback-driven scan was stopped early by the
	// iteration function returning false. This is a normal terminal
	// state, not an error.
	Stopped
	// Copied means a structural copy (Clone or Copy) completed.
	Copied
	// OutOfMemory means an allocation failed partway through a
	// mutation; the tree is left in its pre-call state. No operation in
	// this package currently returns it: original_source/bgen.h takes
	// an injectable allocator pair and every node/slice allocation site
	// checks for and propagates a null return, because C has no other
	// way to signal allocation failure. Go's make/append/new have no
	// recoverable failure mode to hook an injectable allocator into —
	// exhaustion is a fatal, unrecoverable runtime panic, not a value a
	// caller can react to — so there is no allocator pair in Options and
	// no call site has anything to check. The constant is kept so a
	// caller migrating from (or cross-referencing) the original can
	// still exhaustively switch over every Status the design names; see
	// DESIGN.md's Open Question decisions for the full rationale.
	OutOfMemory
	// Unsupported means the operation does not apply to this tree's
	// configuration, e.g. Insert on an unordered tree or Intersects on
	// a non-spatial tree.
	Unsupported
)

func (s Status) String() string {
	switch s {
	case Inserted:
		return "INSERTED"
	case Replaced:
		return "REPLACED"
	case Deleted:
		return "DELETED"
	case Found:
		return "FOUND"
	case NotFound:
		return "NOT_FOUND"
	case OutOfOrder:
		return "OUT_OF_ORDER"
	case Finished:
		return "FINISHED"
	case Stopped:
		return "STOPPED"
	case Copied:
		return "COPIED"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case Unsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}
