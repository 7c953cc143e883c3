package ecs

import (
	"fmt"
	"reflect"

	"github.com/lixenwraith/goecs/entity"
)

// NonOwningGroup is a persistent query cache over an include/exclude set
// with no owned types: it keeps its own sparse set of matching entities
// (spec.md §4.6) rather than permuting any storage.
type NonOwningGroup struct {
	data *groupData
}

// Group creates (or returns the already-created) non-owning group over
// the given include/exclude component-type identities. Included storages
// must already exist (call Assure[T] for each type beforehand) — the
// same requirement the teacher's QueryBuilder.With places on its store
// arguments.
func (r *Registry) Group(included, excluded []reflect.Type) NonOwningGroup {
	return NonOwningGroup{data: r.createGroup(nil, included, excluded)}
}

// Len returns the number of entities currently matching the group.
func (g NonOwningGroup) Len() int { return g.data.Len() }

// Each invokes fn for every matching entity.
func (g NonOwningGroup) Each(fn func(e entity.Entity)) {
	for _, e := range g.data.Entities() {
		fn(e)
	}
}

// --- Owning groups ---

// OwningGroup1 is a persistent, single-owned-type group: the owned
// storage's dense array is permuted so its first Len() entries are
// exactly the matching set, per spec.md §4.6's prefix invariant.
type OwningGroup1[A any] struct {
	data *groupData
	a    *ComponentStorage[A]
}

// Group1Owning creates (or returns) the owning group that owns component
// type A and additionally requires/excludes the given types.
func Group1Owning[A any](r *Registry, included, excluded []reflect.Type) OwningGroup1[A] {
	sa := Assure[A](r)
	data := r.createGroup([]reflect.Type{typeKeyOf[A]()}, included, excluded)
	return OwningGroup1[A]{data: data, a: sa}
}

// Len returns the number of entities currently matching the group.
func (g OwningGroup1[A]) Len() int { return g.data.Len() }

// Each invokes fn for every matching entity, walking the owned storage's
// prefix directly — no per-entity predicate, just a bounded loop over
// the first Len() dense positions.
func (g OwningGroup1[A]) Each(fn func(e entity.Entity, a *A)) {
	n := g.data.current
	dense := g.a.Dense()
	raw := g.a.Raw()
	for i := 0; i < n; i++ {
		fn(dense[i], &raw[i])
	}
}

// Sort permutes the owned storage's prefix by component value. Permitted
// only when this is the most specific owning group touching its owned
// storage (spec.md §4.6); panics otherwise.
func (g OwningGroup1[A]) Sort(less func(a, b A) bool) {
	if !g.data.sortable() {
		panic(fmt.Sprintf("ecs: sort of owning group on %T is not the most specific group for its owned storage", *new(A)))
	}
	n := g.data.current
	g.a.set.Arrange(n, func(x, y entity.Entity) bool {
		return less(g.a.instances[g.a.set.Index(x)], g.a.instances[g.a.set.Index(y)])
	}, g.a.swapInstances)
}

// OwningGroup2 is a persistent, two-owned-type group.
type OwningGroup2[A, B any] struct {
	data *groupData
	a    *ComponentStorage[A]
	b    *ComponentStorage[B]
}

// Group2Owning creates (or returns) the owning group that owns component
// types A and B and additionally requires/excludes the given types.
func Group2Owning[A, B any](r *Registry, included, excluded []reflect.Type) OwningGroup2[A, B] {
	sa, sb := Assure[A](r), Assure[B](r)
	data := r.createGroup([]reflect.Type{typeKeyOf[A](), typeKeyOf[B]()}, included, excluded)
	return OwningGroup2[A, B]{data: data, a: sa, b: sb}
}

// Len returns the number of entities currently matching the group.
func (g OwningGroup2[A, B]) Len() int { return g.data.Len() }

// Each invokes fn for every matching entity. Both owned storages' dense
// positions 0..Len() refer to the same entities in the same order, per
// the prefix invariant, so component pointers are resolved by plain
// index rather than a second sparse lookup.
func (g OwningGroup2[A, B]) Each(fn func(e entity.Entity, a *A, b *B)) {
	n := g.data.current
	dense := g.a.Dense()
	rawA, rawB := g.a.Raw(), g.b.Raw()
	for i := 0; i < n; i++ {
		fn(dense[i], &rawA[i], &rawB[i])
	}
}

// Sort permutes both owned storages' prefixes by a component-A value,
// keeping B in lockstep via the swap callback. Permitted only when this
// is the most specific owning group touching its owned storages.
func (g OwningGroup2[A, B]) Sort(less func(a, b A) bool) {
	if !g.data.sortable() {
		panic(fmt.Sprintf("ecs: sort of owning group on (%T,%T) is not the most specific group for its owned storages", *new(A), *new(B)))
	}
	n := g.data.current
	g.a.set.Arrange(n, func(x, y entity.Entity) bool {
		return less(g.a.instances[g.a.set.Index(x)], g.a.instances[g.a.set.Index(y)])
	}, func(i, j int) {
		g.a.swapInstances(i, j)
		g.b.swapByPosition(i, j)
	})
}
