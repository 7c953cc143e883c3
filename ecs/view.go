package ecs

import (
	"reflect"
	"sort"

	"github.com/lixenwraith/goecs/entity"
)

// View is a stateless, on-the-fly query over a dynamic set of include
// and exclude component types, identified by reflect.Type — the runtime
// analogue of spec.md §4.5's multi-view. It is grounded on the teacher's
// engine/query.go QueryBuilder, generalized from QueryBuilder's
// AND-only, no-exclusion semantics to include/exclude sets, and from
// eagerly executed (and cached) results to a live query whose Each walks
// the storages' current contents on every call.
//
// Construct one with Registry.View; iterate with Each or collect with
// Entities. Single-component queries that need typed, allocation-free
// component access should use View1 instead, which exposes Raw() the way
// spec.md's single view does.
type View struct {
	includes []erasedStorage // sorted ascending by size; includes[0] is the driver
	excludes []erasedStorage
	empty    bool // true when an include type has never been touched (assure would be wrong: an untouched storage has zero entities, not "doesn't exist")
}

// View builds a View over the given include and exclude component-type
// identities. Include and exclude sets must be disjoint — spec.md §4.5
// requires this checked at view-construction time, not deferred to
// iteration.
func (r *Registry) View(includes, excludes []reflect.Type) *View {
	for _, in := range includes {
		for _, ex := range excludes {
			if in == ex {
				panic("ecs: view include/exclude sets overlap")
			}
		}
	}

	v := &View{}
	for _, k := range includes {
		st, ok := r.storages[k]
		if !ok {
			return &View{empty: true}
		}
		v.includes = append(v.includes, st)
	}
	for _, k := range excludes {
		if st, ok := r.storages[k]; ok {
			v.excludes = append(v.excludes, st)
		}
	}
	v.sortDriverFirst()
	return v
}

// sortDriverFirst orders includes ascending by current size so the
// smallest storage drives iteration. It runs when a view is built
// (Registry.View, Each2/Each3/Each4); Each itself does not re-sort, so a
// view that is kept and iterated again keeps the driver chosen at build
// time while still reading each storage's current contents.
func (v *View) sortDriverFirst() {
	sort.Slice(v.includes, func(i, j int) bool {
		return v.includes[i].len() < v.includes[j].len()
	})
}

func (v *View) matches(e entity.Entity) bool {
	for _, st := range v.includes[1:] {
		if !st.has(e) {
			return false
		}
	}
	for _, st := range v.excludes {
		if st.has(e) {
			return false
		}
	}
	return true
}

// Each invokes fn for every entity matching the view, walking the
// driver's dense array in reverse — spec.md §4.5/§4.1's canonical
// direction, which makes swap-remove of the entity currently being
// visited safe: the entity swapped into the visited slot has already
// been passed.
func (v *View) Each(fn func(e entity.Entity)) {
	if v.empty || len(v.includes) == 0 {
		return
	}
	driver := v.includes[0]
	dense := driver.dense()
	for i := len(dense) - 1; i >= 0; i-- {
		e := dense[i]
		if v.matches(e) {
			fn(e)
		}
	}
}

// Entities collects every matching entity into a slice. Prefer Each for
// hot paths; Entities is for callers that need a concrete slice (e.g. to
// sort, or hand to another API).
func (v *View) Entities() []entity.Entity {
	var out []entity.Entity
	v.Each(func(e entity.Entity) { out = append(out, e) })
	return out
}

// Count returns the number of entities currently matching the view.
// O(driver length), same cost as a full Each.
func (v *View) Count() int {
	n := 0
	v.Each(func(entity.Entity) { n++ })
	return n
}

// --- Single-type fast view ---

// ViewSingle is the fast path over exactly one component type: iteration
// is a plain reverse walk of the storage's own dense array, with no
// per-entity membership checks, and Raw gives direct slice access to the
// component instances — spec.md §4.5's "fastest raw access".
type ViewSingle[T any] struct {
	storage *ComponentStorage[T]
}

// View1 builds the fast single-type view over component type T.
func View1[T any](r *Registry) ViewSingle[T] {
	return ViewSingle[T]{storage: Assure[T](r)}
}

// Each invokes fn for every entity holding a T, in reverse-dense order,
// passing a pointer directly into the storage's instance array.
func (v ViewSingle[T]) Each(fn func(e entity.Entity, c *T)) {
	dense := v.storage.Dense()
	raw := v.storage.Raw()
	for i := len(dense) - 1; i >= 0; i-- {
		fn(dense[i], &raw[i])
	}
}

// Raw returns the packed component-instance slice directly.
func (v ViewSingle[T]) Raw() []T { return v.storage.Raw() }

// Len returns the number of entities in the view.
func (v ViewSingle[T]) Len() int { return v.storage.Len() }
