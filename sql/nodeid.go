package sql

import "sync/atomic"

// NodeID identifies a plan node. Ids are unique within one plan tree.
type NodeID uint64

// IDAllocator mints fresh node ids for nodes synthesized during a rewrite,
// such as domain projections and domain joins. Each rewrite owns its own
// allocator, seeded past the highest id of the tree being rewritten, so
// fresh ids never collide with existing ones. It is safe for concurrent
// use.
type IDAllocator struct {
	next uint64
}

// NewIDAllocator returns an allocator whose first allocated id is next.
func NewIDAllocator(next NodeID) *IDAllocator {
	return &IDAllocator{next: uint64(next)}
}

// Next returns a fresh, previously unused id.
func (a *IDAllocator) Next() NodeID {
	return NodeID(atomic.AddUint64(&a.next, 1) - 1)
}
