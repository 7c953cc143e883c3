package ecs

import (
	"github.com/lixenwraith/goecs/entity"
	"github.com/lixenwraith/goecs/signal"
)

// erasedStorage is the v-table record spec.md's design notes (§9.1) call
// for: a minimal set of operations the Registry and Group machinery can
// invoke against a ComponentStorage[T] without knowing T. Every
// ComponentStorage[T] implements it directly — Go interfaces give us the
// v-table spec.md asks the source to fake with raw function pointers, so
// no separate wrapper struct is needed the way a C or Zig port would.
type erasedStorage interface {
	// has reports whether e currently has a component in this storage.
	has(e entity.Entity) bool

	// removeIfContains removes e's component if present. Used by
	// Registry.Destroy, which must clear every storage without knowing
	// which ones actually hold a component for the entity being
	// destroyed.
	removeIfContains(e entity.Entity)

	// clear empties the storage, used by Registry.Deinit.
	clear()

	// len returns the number of entities currently in the storage.
	len() int

	// dense returns the live entity set in current dense order. The
	// caller must not retain the slice across a mutating call.
	dense() []entity.Entity

	// indexOf returns e's dense position; e must be present.
	indexOf(e entity.Entity) int

	// swapByPosition exchanges dense positions i and j, keeping any
	// parallel instances array in lockstep. Used by owning groups to
	// maintain the prefix invariant.
	swapByPosition(i, j int)

	// bumpSuper adjusts the storage's super counter — the number of
	// owning groups currently constraining this storage's prefix order
	// — and returns the new value.
	bumpSuper(delta int) int

	super() int

	onConstructSink() signal.Sink[Event]
	onUpdateSink() signal.Sink[Event]
	onDestructSink() signal.Sink[Event]
}
