// Package sparseset implements the paged sparse-set index that backs
// every per-component storage in package ecs: O(1) add/remove/contains
// plus stable, packed dense iteration.
//
// The teacher's own component stores (engine/store.go's Store[T],
// engine/position_store.go's PositionStore) get the "dense array +
// O(1) lookup" property from a plain Go map keyed by Entity rather than
// a paged index table, which is the idiomatic Go shortcut for the same
// invariant. spec.md calls for the page-table variant specifically
// (fixed-size pages, lazily allocated, so memory tracks the sparse index
// range rather than its maximum value) — that shape is grounded instead
// on the pack's Swedeachu-go_ecs example, whose SparseSet[T] grows a flat
// sparse array in fixed-size aligned chunks (see its nextAlignedCapacity
// and alignment constant). Set combines both lineages: the teacher's
// dense-slice-of-Entity iteration shape, paged the way Swedeachu-go_ecs
// grows its sparse table, but split into real fixed pages (not one
// ever-growing array) so unused index ranges allocate nothing, per
// spec.md §4.1 ("pages are lazily allocated; unused pages remain
// absent").
package sparseset

import "github.com/lixenwraith/goecs/entity"

// PageSize is the number of index slots per sparse page, per spec.md.
const PageSize = 4096

const tombstone = ^uint32(0)

// Set is the paged sparse/dense index for one component type. It knows
// nothing about component values — package ecs's ComponentStorage pairs
// one Set with a parallel instances slice, keeping both in lockstep.
type Set struct {
	traits entity.Traits
	dense  []entity.Entity // packed, order-significant list of live entities
	sparse [][]uint32      // sparse[page][offset] -> position in dense, or tombstone
}

// New creates an empty Set for entities built under the given Traits.
func New(traits entity.Traits) *Set {
	return &Set{traits: traits}
}

func (s *Set) page(index uint64) uint64   { return index / PageSize }
func (s *Set) offset(index uint64) uint64 { return index % PageSize }

func (s *Set) ensurePage(p uint64) []uint32 {
	for uint64(len(s.sparse)) <= p {
		s.sparse = append(s.sparse, nil)
	}
	if s.sparse[p] == nil {
		pg := make([]uint32, PageSize)
		for i := range pg {
			pg[i] = tombstone
		}
		s.sparse[p] = pg
	}
	return s.sparse[p]
}

// Contains reports whether e's index currently has a dense slot.
func (s *Set) Contains(e entity.Entity) bool {
	idx := s.traits.Index(e)
	p := s.page(idx)
	if p >= uint64(len(s.sparse)) || s.sparse[p] == nil {
		return false
	}
	return s.sparse[p][s.offset(idx)] != tombstone
}

// Index returns the dense-array position of e. Undefined if e is absent
// (it returns the tombstone value, or panics when e's page was never
// allocated); callers must check Contains first.
func (s *Set) Index(e entity.Entity) int {
	idx := s.traits.Index(e)
	return int(s.sparse[s.page(idx)][s.offset(idx)])
}

// At returns the entity currently stored at dense position i.
func (s *Set) At(i int) entity.Entity {
	return s.dense[i]
}

// Len returns the number of live entries.
func (s *Set) Len() int {
	return len(s.dense)
}

// Dense returns the packed slice of live entities, in current dense
// order. The caller must not retain it across a mutating call.
func (s *Set) Dense() []entity.Entity {
	return s.dense
}

// Add inserts e, which must not already be present, appending it to the
// end of the dense array. Returns the new dense position.
func (s *Set) Add(e entity.Entity) int {
	idx := s.traits.Index(e)
	pg := s.ensurePage(s.page(idx))
	pos := len(s.dense)
	s.dense = append(s.dense, e)
	pg[s.offset(idx)] = uint32(pos)
	return pos
}

// Remove swap-deletes e: the last dense entry takes its slot, that
// entry's back-pointer is fixed up, and the vacated sparse slot is
// tombstoned. e must be present. Returns the dense position that was
// vacated (where the swapped-in entry now lives) and the entity that was
// moved into it, or didMove == false if e was already the last entry.
func (s *Set) Remove(e entity.Entity) (pos int, moved entity.Entity, didMove bool) {
	idx := s.traits.Index(e)
	p, off := s.page(idx), s.offset(idx)
	pos = int(s.sparse[p][off])
	lastPos := len(s.dense) - 1
	last := s.dense[lastPos]

	s.sparse[p][off] = tombstone

	if pos != lastPos {
		s.dense[pos] = last
		lastIdx := s.traits.Index(last)
		s.sparse[s.page(lastIdx)][s.offset(lastIdx)] = uint32(pos)
		moved, didMove = last, true
	}
	s.dense = s.dense[:lastPos]
	return pos, moved, didMove
}

// Swap exchanges the dense positions of a and b, both of which must be
// present, fixing up both sparse back-pointers.
func (s *Set) Swap(a, b entity.Entity) {
	if a == b {
		return
	}
	s.SwapByPosition(s.Index(a), s.Index(b))
}

// SwapByPosition exchanges the two dense positions i and j directly,
// without the caller needing to know which entities occupy them. Used by
// Arrange and by owning groups, which already have positions in hand.
func (s *Set) SwapByPosition(i, j int) {
	if i == j {
		return
	}
	ei, ej := s.dense[i], s.dense[j]
	s.dense[i], s.dense[j] = s.dense[j], s.dense[i]

	iIdx, jIdx := s.traits.Index(ei), s.traits.Index(ej)
	s.sparse[s.page(iIdx)][s.offset(iIdx)] = uint32(j)
	s.sparse[s.page(jIdx)][s.offset(jIdx)] = uint32(i)
}

// Clear empties the set. Pages are released so memory does not linger
// for index ranges no longer in use.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
	s.sparse = nil
}

// Sort reorders the whole dense array according to less, using a stable
// insertion sort — spec.md notes this is acceptable for the sizes
// involved — and calls swapCB(i, j) for every transposition so a
// parallel array can be kept in lockstep. Rewrites sparse back-pointers
// for every element touched.
func (s *Set) Sort(less func(a, b entity.Entity) bool, swapCB func(i, j int)) {
	s.Arrange(len(s.dense), less, swapCB)
}

// Arrange sorts dense[0:prefixLen] by less, the same way Sort does, but
// limits comparisons/swaps to that prefix — used by owning groups to
// reorder only the portion of a storage they own.
func (s *Set) Arrange(prefixLen int, less func(a, b entity.Entity) bool, swapCB func(i, j int)) {
	for i := 1; i < prefixLen; i++ {
		for j := i; j > 0 && less(s.dense[j], s.dense[j-1]); j-- {
			s.SwapByPosition(j, j-1)
			if swapCB != nil {
				swapCB(j, j-1)
			}
		}
	}
}

// Respect reorders s so that entities common to other appear in the same
// relative order as other.Dense(), the way entt's sparse_set::respect
// keeps one set's layout in sync with another's. Entities present only
// in s end up after the respected prefix; their relative order among
// themselves is not preserved.
func (s *Set) Respect(other *Set, swapCB func(i, j int)) {
	pos := 0
	for _, e := range other.dense {
		if !s.Contains(e) {
			continue
		}
		curPos := s.Index(e)
		if curPos != pos {
			s.SwapByPosition(pos, curPos)
			if swapCB != nil {
				swapCB(pos, curPos)
			}
		}
		pos++
	}
}
