package ecs

import (
	"fmt"
	"reflect"

	"github.com/lixenwraith/goecs/entity"
	"github.com/lixenwraith/goecs/signal"
	"github.com/lixenwraith/goecs/sparseset"
)

// groupData is the runtime, type-erased record backing one created
// group — spec.md §3's GroupData. It tracks the disjoint owned/included/
// excluded type-identity lists, wires signal listeners that keep the
// group consistent as components come and go, and — for an owning group
// — the `current` prefix-length counter spec.md §4.6 describes.
//
// Go's lack of variadic generics means GroupData itself must be
// type-erased (it operates purely through the erasedStorage interface);
// the typed, ergonomic OwningGroup1/OwningGroup2/NonOwningGroup wrappers
// in group_typed.go hand back structured,
// compile-time-typed component access built on top of this core.
type groupData struct {
	registry *Registry

	owned    []reflect.Type
	included []reflect.Type
	excluded []reflect.Type

	ownedStorages    []erasedStorage
	includedStorages []erasedStorage
	excludedStorages []erasedStorage

	owning bool
	current int // owning only: size of the matching contiguous prefix

	cache *sparseset.Set // non-owning only: cached match set

	specificity int

	maybeValidHandler func(Event)
	discardHandler    func(Event)
}

func typeSetsOverlap(a, b []reflect.Type) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func sameTypeSet(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func resolveStorages(r *Registry, types []reflect.Type) []erasedStorage {
	out := make([]erasedStorage, 0, len(types))
	for _, t := range types {
		st, ok := r.storages[t]
		if !ok {
			panic(fmt.Sprintf("ecs: group references component type %v with no storage; call Assure[T] first", t))
		}
		out = append(out, st)
	}
	return out
}

// findGroup returns an existing groupData with identical owned/included/
// excluded type sets, if one was already created.
func (r *Registry) findGroup(owned, included, excluded []reflect.Type) *groupData {
	for _, g := range r.groups {
		if sameTypeSet(g.owned, owned) && sameTypeSet(g.included, included) && sameTypeSet(g.excluded, excluded) {
			return g
		}
	}
	return nil
}

// createGroup validates and wires a brand-new groupData. Callers
// (group_typed.go's typed constructors) are responsible for having
// already called Assure on every owned/included/excluded type.
func (r *Registry) createGroup(owned, included, excluded []reflect.Type) *groupData {
	if existing := r.findGroup(owned, included, excluded); existing != nil {
		return existing
	}

	if typeSetsOverlap(owned, included) || typeSetsOverlap(owned, excluded) || typeSetsOverlap(included, excluded) {
		panic("ecs: group owned/included/excluded type sets must be disjoint")
	}

	g := &groupData{
		registry:         r,
		owned:            owned,
		included:         included,
		excluded:         excluded,
		ownedStorages:    resolveStorages(r, owned),
		includedStorages: resolveStorages(r, included),
		excludedStorages: resolveStorages(r, excluded),
		owning:           len(owned) > 0,
		specificity:      len(owned) + len(included) + len(excluded),
	}

	if g.owning {
		r.validateNesting(g)
	} else {
		g.cache = sparseset.New(r.traits)
	}

	g.maybeValidHandler = func(ev Event) { g.maybeValidIf(ev.Entity) }
	g.discardHandler = func(ev Event) { g.discardIf(ev.Entity) }

	// maybeValidIf on construction of each owned/included type, and on
	// destruction of each excluded type.
	for _, st := range append(append([]erasedStorage{}, g.ownedStorages...), g.includedStorages...) {
		r.connectOrdered(st, true, g, g.maybeValidHandler, true)
	}
	for _, st := range g.excludedStorages {
		r.connectOrdered(st, false, g, g.maybeValidHandler, true)
	}

	// discardIf on destruction of each owned/included type, and on
	// construction of each excluded type.
	for _, st := range append(append([]erasedStorage{}, g.ownedStorages...), g.includedStorages...) {
		r.connectOrdered(st, false, g, g.discardHandler, false)
	}
	for _, st := range g.excludedStorages {
		r.connectOrdered(st, true, g, g.discardHandler, false)
	}

	for _, st := range g.ownedStorages {
		st.bumpSuper(1)
	}

	r.groups = append(r.groups, g)
	g.backfill()
	return g
}

// validateNesting enforces spec.md §4.4/§4.6's rule: a new owning group
// is only accepted if, for every existing owning group it shares an
// owned storage with, one group's (owned ∪ included) set is a subset of
// the other's. Without this, the two groups could not agree on a single
// contiguous-prefix ordering for the shared storage.
func (r *Registry) validateNesting(g *groupData) {
	mine := append(append([]reflect.Type{}, g.owned...), g.included...)
	for _, other := range r.groups {
		if !other.owning || !typeSetsOverlap(g.owned, other.owned) {
			continue
		}
		theirs := append(append([]reflect.Type{}, other.owned...), other.included...)
		if !(isSubset(mine, theirs) || isSubset(theirs, mine)) {
			panic("ecs: owning group nesting violation: owned∪included sets are not chained by subset relation")
		}
	}
}

func isSubset(a, b []reflect.Type) bool {
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// orderedConn is one entry in a per-signal ordering chain used to keep
// nested owning groups' maintenance running in specificity order
// regardless of the order the groups were created in.
type orderedConn struct {
	group *groupData
	token signal.Token
}

// connectOrdered wires fn to sink, inserting it at the position its
// specificity demands relative to other groups already connected to the
// same signal — ascending (least specific first) for promotion triggers,
// descending (most specific first) for eviction triggers — using
// Sink.Before so the relative order holds no matter which group was
// registered first. spec.md §4.6's closing note ("sorting the
// owning-group chain by specificity and applying maintenance in order")
// is implemented here, against the actual per-signal connection order
// rather than a separate explicit pass, since Signal already guarantees
// publish-in-connection-order.
type ordKey struct {
	storage     erasedStorage
	isConstruct bool
}

func (r *Registry) connectOrdered(st erasedStorage, isConstruct bool, g *groupData, fn func(Event), ascending bool) {
	key := ordKey{storage: st, isConstruct: isConstruct}
	list := r.groupOrder[key]

	pos := 0
	for pos < len(list) {
		before := list[pos].group.specificity <= g.specificity
		if !ascending {
			before = list[pos].group.specificity >= g.specificity
		}
		if !before {
			break
		}
		pos++
	}

	var sink SinkEvent
	if isConstruct {
		sink = st.onConstructSink()
	} else {
		sink = st.onDestructSink()
	}

	var token signal.Token
	if pos == len(list) {
		token = sink.Connect(fn)
	} else {
		token = sink.Before(list[pos].token, fn)
	}

	list = append(list, orderedConn{})
	copy(list[pos+1:], list[pos:])
	list[pos] = orderedConn{group: g, token: token}
	if r.groupOrder == nil {
		r.groupOrder = make(map[ordKey][]orderedConn)
	}
	r.groupOrder[key] = list
}

// backfill scans the smallest relevant storage and offers every one of
// its entities to maybeValidIf, the way Registry.group's factory
// back-fills matches for components added before the group existed
// (spec.md §4.4, scenario S3).
func (g *groupData) backfill() {
	candidates := g.ownedStorages
	if len(candidates) == 0 {
		candidates = g.includedStorages
	}
	if len(candidates) == 0 {
		return
	}
	smallest := candidates[0]
	for _, st := range candidates[1:] {
		if st.len() < smallest.len() {
			smallest = st
		}
	}
	for _, e := range append([]entity.Entity{}, smallest.dense()...) {
		g.maybeValidIf(e)
	}
}

func (g *groupData) allSatisfied(e entity.Entity) bool {
	for _, st := range g.ownedStorages {
		if !st.has(e) {
			return false
		}
	}
	for _, st := range g.includedStorages {
		if !st.has(e) {
			return false
		}
	}
	for _, st := range g.excludedStorages {
		if st.has(e) {
			return false
		}
	}
	return true
}

// maybeValidIf admits e into the group if it now satisfies the full
// predicate and was not already counted.
func (g *groupData) maybeValidIf(e entity.Entity) {
	if !g.allSatisfied(e) {
		return
	}
	if g.owning {
		if g.ownedStorages[0].indexOf(e) >= g.current {
			g.promote(e)
		}
	} else {
		if !g.cache.Contains(e) {
			g.cache.Add(e)
		}
	}
}

// discardIf evicts e from the group if it is currently counted.
func (g *groupData) discardIf(e entity.Entity) {
	if g.owning {
		if st := g.ownedStorages[0]; st.has(e) && st.indexOf(e) < g.current {
			g.demote(e)
		}
	} else {
		if g.cache.Contains(e) {
			g.cache.Remove(e)
		}
	}
}

// promote moves e into the contiguous owned-storage prefix, swapping it
// into position `current` in every owned storage if it is not already
// there, then grows current. Matches spec.md §4.6's owning-group
// maintenance rule.
func (g *groupData) promote(e entity.Entity) {
	for _, st := range g.ownedStorages {
		if pos := st.indexOf(e); pos >= g.current {
			st.swapByPosition(pos, g.current)
		}
	}
	g.current++
}

// demote swaps e out of the prefix (into the boundary slot being
// vacated) and shrinks current, the mirror image of promote.
func (g *groupData) demote(e entity.Entity) {
	g.current--
	for _, st := range g.ownedStorages {
		if pos := st.indexOf(e); pos != g.current {
			st.swapByPosition(pos, g.current)
		}
	}
}

// Len returns the number of entities currently matching the group.
func (g *groupData) Len() int {
	if g.owning {
		return g.current
	}
	return g.cache.Len()
}

// Entities returns the matching entity set. For owning groups this is
// the owned prefix of the first owned storage; for non-owning groups
// it's the cached set.
func (g *groupData) Entities() []entity.Entity {
	if g.owning {
		return append([]entity.Entity{}, g.ownedStorages[0].dense()[:g.current]...)
	}
	return append([]entity.Entity{}, g.cache.Dense()...)
}

// sortable reports whether this group may be sorted: only the most
// specific owning group touching each of its owned storages may, per
// spec.md §4.6 ("permitted only when this group is the most specific
// one").
func (g *groupData) sortable() bool {
	if !g.owning {
		return false
	}
	for _, st := range g.ownedStorages {
		if st.super() != 1 {
			// More than one owning group constrains this storage;
			// confirm this group is the most specific among them by
			// checking none of the other owning groups sharing the
			// storage has a strictly larger specificity.
			for _, other := range g.registry.groups {
				if other == g || !other.owning {
					continue
				}
				if typeSetsOverlap(g.owned, other.owned) && other.specificity > g.specificity {
					return false
				}
			}
		}
	}
	return true
}
