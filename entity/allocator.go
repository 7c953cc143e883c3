package entity

import "errors"

// ErrOutOfActiveHandles is returned by Create when the index space for this
// allocator's Traits is exhausted (append_cursor would reach IndexSentinel).
var ErrOutOfActiveHandles = errors.New("entity: out of active handles")

// ErrRemovedInvalidHandle is returned by Remove when given a handle that is
// not currently alive (double free, or a stale/garbage handle).
var ErrRemovedInvalidHandle = errors.New("entity: removed invalid handle")

// HandleAllocator produces versioned Entity handles and recycles freed
// slots through an intrusive free list, the way the teacher's World hands
// out entity ids from a monotonic counter (engine/world.go's
// nextEntityID) but generalized with generation tracking so a freed index
// can be safely reused without aliasing a handle a caller still holds.
type HandleAllocator struct {
	traits       Traits
	handles      []Entity
	appendCursor uint64
	freeSlot     uint64 // index of head of free list, or traits.IndexSentinel() if empty
}

// NewHandleAllocator creates an allocator for the given Traits with an
// empty handle table.
func NewHandleAllocator(traits Traits) *HandleAllocator {
	return &HandleAllocator{
		traits:   traits,
		handles:  make([]Entity, 0, 256),
		freeSlot: traits.IndexSentinel(),
	}
}

// Traits returns the entity size profile this allocator was built with.
func (a *HandleAllocator) Traits() Traits {
	return a.traits
}

// Len returns the number of slots ever allocated (append_cursor), not the
// number of currently-alive handles.
func (a *HandleAllocator) Len() int {
	return int(a.appendCursor)
}

// grow ensures len(a.handles) >= minLen, reslicing within existing
// capacity when there's room and only reallocating (doubling capacity)
// when there isn't — so a run of Create calls that never shrinks the
// table back down reallocates O(log n) times, not once per call.
func (a *HandleAllocator) grow(minLen uint64) {
	if uint64(cap(a.handles)) >= minLen {
		a.handles = a.handles[:minLen]
		return
	}
	newCap := uint64(cap(a.handles))
	if newCap == 0 {
		newCap = 256
	}
	for newCap < minLen {
		newCap *= 2
	}
	if newCap > a.traits.IndexSentinel() {
		newCap = a.traits.IndexSentinel()
	}
	grown := make([]Entity, minLen, newCap)
	copy(grown, a.handles)
	a.handles = grown
}

// Reserve pre-grows the backing handle table to at least n slots, so the
// first n calls to Create need not reallocate. A capacity hint only; it
// does not allocate any handles.
func (a *HandleAllocator) Reserve(n int) {
	a.grow(uint64(n))
}

// Create allocates a new live Entity, popping the free list when it is
// non-empty and otherwise appending a fresh slot at version 0.
func (a *HandleAllocator) Create() (Entity, error) {
	if a.freeSlot != a.traits.IndexSentinel() {
		index := a.freeSlot
		recycled := a.handles[index]
		// The freed slot's index field was overloaded to hold the next
		// free slot (or the sentinel); its version field is the
		// generation this handle will carry.
		a.freeSlot = a.traits.Index(recycled)
		version := a.traits.Version(recycled)
		h := a.traits.Construct(index, version)
		a.handles[index] = h
		return h, nil
	}

	if a.appendCursor >= a.traits.IndexSentinel() {
		return Entity(0), ErrOutOfActiveHandles
	}

	index := a.appendCursor
	a.grow(index + 1)
	h := a.traits.Construct(index, 0)
	a.handles[index] = h
	a.appendCursor++
	return h, nil
}

// Remove retires h, bumping its slot's version and threading it onto the
// free list. Returns ErrRemovedInvalidHandle if h is not currently alive.
func (a *HandleAllocator) Remove(h Entity) error {
	if !a.Alive(h) {
		return ErrRemovedInvalidHandle
	}
	index := a.traits.Index(h)
	nextVersion := (a.traits.Version(h) + 1) & a.traits.VersionMask()
	a.handles[index] = a.traits.Construct(a.freeSlot, nextVersion)
	a.freeSlot = index
	return nil
}

// Alive reports whether h is the handle currently occupying its index —
// full value comparison, so a stale or double-freed handle is rejected
// even if some other live entity now shares its index.
func (a *HandleAllocator) Alive(h Entity) bool {
	index := a.traits.Index(h)
	if index >= a.appendCursor {
		return false
	}
	return a.handles[index] == h
}
