package ecs

import (
	"fmt"
	"reflect"

	"github.com/lixenwraith/goecs/entity"
)

// Registry owns the entity handle allocator, every component storage,
// the per-type context slot, and the group cache list. It is the single
// entry point client code uses, the same role the teacher's World /
// WorldGeneric play (engine/world.go, engine/world_generic.go) — Registry
// generalizes those from a fixed, hand-enumerated set of component
// stores to the dynamically-assured-on-first-use storages spec.md calls
// for.
//
// Go has no generic methods, so operations parametrized by component
// type T are free functions taking *Registry as their first argument
// (Add[T], Get[T], Each2[A, B], ...) — exactly the shape the teacher
// already uses for its own generic helpers (AddResource[T], GetStore[T],
// the EntityBuilder's With[T]).
type Registry struct {
	traits     entity.Traits
	allocator  *entity.HandleAllocator
	storages   map[reflect.Type]erasedStorage
	context    map[reflect.Type]any
	groups     []*groupData
	groupOrder map[ordKey][]orderedConn
}

// New creates an empty Registry using the given entity size profile
// (entity.Small, entity.Medium, or entity.Large).
func New(traits entity.Traits) *Registry {
	return &Registry{
		traits:    traits,
		allocator: entity.NewHandleAllocator(traits),
		storages:  make(map[reflect.Type]erasedStorage),
		context:   make(map[reflect.Type]any),
	}
}

// Deinit releases every storage. The Registry is unusable afterward.
func (r *Registry) Deinit() {
	for _, st := range r.storages {
		st.clear()
	}
	r.storages = nil
	r.context = nil
	r.groups = nil
}

func typeKeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Assure returns the ComponentStorage for T, lazily creating it on first
// use. Idempotent — repeated calls for the same T return the same
// storage.
func Assure[T any](r *Registry) *ComponentStorage[T] {
	key := typeKeyOf[T]()
	if st, ok := r.storages[key]; ok {
		return st.(*ComponentStorage[T])
	}
	cs := newComponentStorage[T](r)
	r.storages[key] = cs
	return cs
}

func lookupErased[T any](r *Registry) (erasedStorage, bool) {
	st, ok := r.storages[typeKeyOf[T]()]
	return st, ok
}

// --- Entity lifecycle ---

// Create allocates a new live entity. Panics if the allocator's index
// space is exhausted — the teacher's own CreateEntity never fails
// (it grows a counter without bound), but spec.md §6 documents
// OutOfActiveHandles as a genuine recoverable condition the caller
// should have to handle explicitly; CreateChecked surfaces that.
func (r *Registry) Create() entity.Entity {
	e, err := r.allocator.Create()
	if err != nil {
		panic(err)
	}
	return e
}

// CreateChecked allocates a new live entity, returning
// entity.ErrOutOfActiveHandles instead of panicking when the index space
// is exhausted.
func (r *Registry) CreateChecked() (entity.Entity, error) {
	return r.allocator.Create()
}

// Valid reports whether e is currently a live entity.
func (r *Registry) Valid(e entity.Entity) bool {
	return r.allocator.Alive(e)
}

// Destroy removes every component from e (publishing destruction signals
// along the way, so groups stay consistent) and then frees its handle.
// Panics if e is not currently alive.
func (r *Registry) Destroy(e entity.Entity) {
	if !r.allocator.Alive(e) {
		panic(fmt.Sprintf("ecs: destroy of invalid entity %v", e))
	}
	for _, st := range r.storages {
		st.removeIfContains(e)
	}
	if err := r.allocator.Remove(e); err != nil {
		panic(err)
	}
}

// RemoveAll strips every component from e without freeing its handle —
// the entity remains alive but bare afterward.
func (r *Registry) RemoveAll(e entity.Entity) {
	for _, st := range r.storages {
		st.removeIfContains(e)
	}
}

// --- Component operations ---

// Add inserts v as e's component of type T. Panics if e is not alive, or
// already has a component of type T.
func Add[T any](r *Registry, e entity.Entity, v T) {
	assertAlive(r, e)
	Assure[T](r).Add(e, v)
}

// Replace overwrites e's existing component of type T with v. Panics if
// e is not alive, or has no such component.
func Replace[T any](r *Registry, e entity.Entity, v T) {
	assertAlive(r, e)
	Assure[T](r).Replace(e, v)
}

// AddOrReplace inserts or overwrites e's component of type T. Panics if e
// is not alive.
func AddOrReplace[T any](r *Registry, e entity.Entity, v T) {
	assertAlive(r, e)
	Assure[T](r).AddOrReplace(e, v)
}

// Remove deletes e's component of type T. Panics if e is not alive, or
// has no such component.
func Remove[T any](r *Registry, e entity.Entity) {
	assertAlive(r, e)
	Assure[T](r).Remove(e)
}

// RemoveIfExists deletes e's component of type T if present. Returns
// whether a component was removed. Panics if e is not alive.
func RemoveIfExists[T any](r *Registry, e entity.Entity) bool {
	assertAlive(r, e)
	return Assure[T](r).RemoveIfExists(e)
}

// Has reports whether e has a component of type T.
func Has[T any](r *Registry, e entity.Entity) bool {
	st, ok := lookupErased[T](r)
	return ok && st.has(e)
}

// Get returns a pointer to e's component of type T. Panics if absent.
func Get[T any](r *Registry, e entity.Entity) *T {
	return Assure[T](r).Get(e)
}

// GetConst returns a copy of e's component of type T, for read-only
// callers that want to avoid holding a pointer past the current
// statement (see spec.md §5's aliasing rule). Panics if absent.
func GetConst[T any](r *Registry, e entity.Entity) T {
	return *Assure[T](r).Get(e)
}

// TryGet returns a pointer to e's component of type T and true, or
// (nil, false) if absent.
func TryGet[T any](r *Registry, e entity.Entity) (*T, bool) {
	return Assure[T](r).TryGet(e)
}

// GetOrAdd returns e's component of type T, adding a zero-valued one
// first if e does not already have one.
func GetOrAdd[T any](r *Registry, e entity.Entity) *T {
	assertAlive(r, e)
	st := Assure[T](r)
	if p, ok := st.TryGet(e); ok {
		return p
	}
	var zero T
	st.Add(e, zero)
	return st.Get(e)
}

func assertAlive(r *Registry, e entity.Entity) {
	if !r.allocator.Alive(e) {
		panic(fmt.Sprintf("ecs: operation on invalid entity %v", e))
	}
}

// --- Context ---

// SetContext installs v as the sole instance of type T in the registry's
// context map — a per-type slot for shared resources, the same role the
// teacher's ResourceStore (engine/resources.go) plays for Time/Config/
// GameState, keyed by reflect.Type exactly as ResourceStore is.
func SetContext[T any](r *Registry, v T) {
	r.context[typeKeyOf[T]()] = v
}

// GetContext retrieves the context value of type T, and whether it was
// set.
func GetContext[T any](r *Registry) (T, bool) {
	v, ok := r.context[typeKeyOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// UnsetContext removes the context value of type T, if any.
func UnsetContext[T any](r *Registry) {
	delete(r.context, typeKeyOf[T]())
}

// --- Lifecycle signals ---

// OnConstruct returns the sink used to observe insertions of component
// type T.
func OnConstruct[T any](r *Registry) SinkEvent { return Assure[T](r).OnConstruct() }

// OnUpdate returns the sink used to observe replacements of component
// type T.
func OnUpdate[T any](r *Registry) SinkEvent { return Assure[T](r).OnUpdate() }

// OnDestruct returns the sink used to observe removals of component
// type T.
func OnDestruct[T any](r *Registry) SinkEvent { return Assure[T](r).OnDestruct() }
