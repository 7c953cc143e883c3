package ecs

import (
	"fmt"

	"github.com/lixenwraith/goecs/entity"
	"github.com/lixenwraith/goecs/signal"
	"github.com/lixenwraith/goecs/sparseset"
)

// ComponentStorage holds every live instance of component type T, keyed
// by entity through a sparseset.Set, plus the three lifecycle signals
// (construct/update/destruct) spec.md §4.3 requires. It generalizes the
// teacher's Store[T] (engine/store.go) — same dense/sparse shape, same
// Add/Get/Remove/Has surface — from a map-backed index to the paged
// sparseset.Set, and adds the signal publishing Store[T] has no
// equivalent for (vi-fighter doesn't need component-lifecycle
// observers; groups do).
type ComponentStorage[T any] struct {
	registry  *Registry
	set       *sparseset.Set
	instances []T
	superN    int

	onConstruct signal.Signal[Event]
	onUpdate    signal.Signal[Event]
	onDestruct  signal.Signal[Event]
}

func newComponentStorage[T any](r *Registry) *ComponentStorage[T] {
	return &ComponentStorage[T]{
		registry: r,
		set:      sparseset.New(r.traits),
	}
}

// Has reports whether e currently carries a component of type T.
func (s *ComponentStorage[T]) Has(e entity.Entity) bool {
	return s.set.Contains(e)
}

// Get returns a pointer to e's component. Panics if e does not have one —
// spec.md §7 classes this as programmer error, same as the teacher's
// EntityBuilder/QueryBuilder panics on misuse.
func (s *ComponentStorage[T]) Get(e entity.Entity) *T {
	if !s.set.Contains(e) {
		panic(fmt.Sprintf("ecs: get of absent component %T on entity %v", *new(T), e))
	}
	return &s.instances[s.set.Index(e)]
}

// TryGet returns a pointer to e's component and true, or (nil, false) if
// e does not have one.
func (s *ComponentStorage[T]) TryGet(e entity.Entity) (*T, bool) {
	if !s.set.Contains(e) {
		return nil, false
	}
	return &s.instances[s.set.Index(e)], true
}

// Add inserts v as e's component. Panics if e already has one — a
// duplicate add is programmer error per spec.md §7, not an upsert; use
// Replace or AddOrReplace for that.
func (s *ComponentStorage[T]) Add(e entity.Entity, v T) {
	if s.set.Contains(e) {
		panic(fmt.Sprintf("ecs: add of duplicate component %T on entity %v", v, e))
	}
	s.set.Add(e)
	s.instances = append(s.instances, v)
	s.onConstruct.Publish(Event{Registry: s.registry, Entity: e})
}

// Replace overwrites e's existing component with v. Panics if e has no
// such component.
func (s *ComponentStorage[T]) Replace(e entity.Entity, v T) {
	if !s.set.Contains(e) {
		panic(fmt.Sprintf("ecs: replace of absent component %T on entity %v", v, e))
	}
	s.instances[s.set.Index(e)] = v
	s.onUpdate.Publish(Event{Registry: s.registry, Entity: e})
}

// AddOrReplace inserts v if e has no component of type T, or overwrites
// the existing one otherwise, publishing the matching signal in each
// case.
func (s *ComponentStorage[T]) AddOrReplace(e entity.Entity, v T) {
	if s.set.Contains(e) {
		s.Replace(e, v)
		return
	}
	s.Add(e, v)
}

// Remove deletes e's component. Panics if e has none; spec.md §7 treats
// this as programmer error. Construction/update signals fire after the
// state change; destruction fires before it, per spec.md §4.3, so
// listeners can still read the value being removed.
func (s *ComponentStorage[T]) Remove(e entity.Entity) {
	if !s.set.Contains(e) {
		panic(fmt.Sprintf("ecs: remove of absent component %T on entity %v", *new(T), e))
	}
	s.removeExisting(e)
}

// RemoveIfExists deletes e's component if present, a no-op otherwise.
func (s *ComponentStorage[T]) RemoveIfExists(e entity.Entity) bool {
	if !s.set.Contains(e) {
		return false
	}
	s.removeExisting(e)
	return true
}

func (s *ComponentStorage[T]) removeExisting(e entity.Entity) {
	s.onDestruct.Publish(Event{Registry: s.registry, Entity: e})

	pos, _, didMove := s.set.Remove(e)
	last := len(s.instances) - 1
	if didMove {
		s.instances[pos] = s.instances[last]
	}
	var zero T
	s.instances[last] = zero
	s.instances = s.instances[:last]
}

// Len returns the number of entities currently holding this component.
func (s *ComponentStorage[T]) Len() int {
	return s.set.Len()
}

// Raw returns the dense, packed slice of component instances — the
// fastest access path, matching spec.md §4.5's single-view raw(). The
// slice's order matches Dense()'s; index i of each corresponds to the
// same entity.
func (s *ComponentStorage[T]) Raw() []T {
	return s.instances
}

// Dense returns the live entity set in current dense order.
func (s *ComponentStorage[T]) Dense() []entity.Entity {
	return s.set.Dense()
}

// OnConstruct returns the sink used to observe component insertions.
func (s *ComponentStorage[T]) OnConstruct() signal.Sink[Event] { return s.onConstruct.Sink() }

// OnUpdate returns the sink used to observe component replacements.
func (s *ComponentStorage[T]) OnUpdate() signal.Sink[Event] { return s.onUpdate.Sink() }

// OnDestruct returns the sink used to observe component removals.
func (s *ComponentStorage[T]) OnDestruct() signal.Sink[Event] { return s.onDestruct.Sink() }

// SortByEntity reorders the storage by entity identity, delegating to
// the sparse set with a parallel-array swap callback so instances stay
// aligned with dense. Panics if any owning group currently constrains
// this storage's order (super != 0), per spec.md §7.
func (s *ComponentStorage[T]) SortByEntity(less func(a, b entity.Entity) bool) {
	s.guardSortable()
	s.set.Sort(less, s.swapInstances)
}

// SortByValue reorders the storage by component value, wrapping cmp so
// it reads through the sparse set before delegating to the same sort.
// Panics if any owning group currently constrains this storage's order.
func (s *ComponentStorage[T]) SortByValue(less func(a, b T) bool) {
	s.guardSortable()
	s.set.Sort(func(a, b entity.Entity) bool {
		return less(s.instances[s.set.Index(a)], s.instances[s.set.Index(b)])
	}, s.swapInstances)
}

func (s *ComponentStorage[T]) guardSortable() {
	if s.superN != 0 {
		panic("ecs: sort of a storage constrained by an owning group")
	}
}

func (s *ComponentStorage[T]) swapInstances(i, j int) {
	s.instances[i], s.instances[j] = s.instances[j], s.instances[i]
}

// --- erasedStorage ---

func (s *ComponentStorage[T]) has(e entity.Entity) bool { return s.Has(e) }

func (s *ComponentStorage[T]) removeIfContains(e entity.Entity) { s.RemoveIfExists(e) }

func (s *ComponentStorage[T]) clear() {
	s.set.Clear()
	s.instances = s.instances[:0]
}

func (s *ComponentStorage[T]) len() int { return s.Len() }

func (s *ComponentStorage[T]) dense() []entity.Entity { return s.set.Dense() }

func (s *ComponentStorage[T]) indexOf(e entity.Entity) int { return s.set.Index(e) }

func (s *ComponentStorage[T]) swapByPosition(i, j int) {
	s.set.SwapByPosition(i, j)
	s.swapInstances(i, j)
}

func (s *ComponentStorage[T]) bumpSuper(delta int) int {
	s.superN += delta
	return s.superN
}

func (s *ComponentStorage[T]) super() int { return s.superN }

func (s *ComponentStorage[T]) onConstructSink() signal.Sink[Event] { return s.OnConstruct() }
func (s *ComponentStorage[T]) onUpdateSink() signal.Sink[Event]    { return s.OnUpdate() }
func (s *ComponentStorage[T]) onDestructSink() signal.Sink[Event]  { return s.OnDestruct() }
