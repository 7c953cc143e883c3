// Package signal implements the construction/update/destruction
// notification mechanism ComponentStorage and Group rely on: an ordered
// list of listener functions (Signal), published in connection order, with
// Sink as the only handle clients use to connect or disconnect.
//
// The teacher has no direct analogue to entt's Delegate/Signal/Sink
// trio — vi-fighter's engine/events.go instead polls a lock-free ring
// buffer (EventQueue) once per frame. That shape doesn't fit: group
// bookkeeping needs synchronous, ordered, in-process callbacks fired the
// instant a component is constructed or destroyed, not a buffered queue a
// consumer drains later. The closest in-repo precedent for "an ordered,
// keyed table of registered callbacks" is registry/registry.go's
// RegisterSystem/RegisterRenderer/RegisterService maps, so Signal borrows
// that package's plain-map-of-callbacks shape and its doc-comment voice,
// adapted to the ordered-slice + identity-key semantics spec.md asks for.
package signal

// Token identifies one connected listener. Sink.Connect and Sink.Before
// each mint a fresh Token for the delegate they add, and it's the only
// thing Sink.Before (as the target) and Sink.Disconnect accept to name a
// specific connection.
//
// An earlier version of this package identified a listener by
// reflect.ValueOf(fn).Pointer(), the function's code pointer. The stdlib
// is explicit that this "is not guaranteed to be an accurate identifier
// for the function": two closures instantiated from the same
// source-level function literal return the identical code pointer no
// matter what each one captures. ecs.createGroup does exactly that —
// every groupData's maybeValidHandler is a distinct closure built from
// one shared `func(ev Event) { g.maybeValidIf(ev.Entity) }` literal — so
// the first time two groups attached to the same signal, the reflect key
// collided and a legitimate second connection read as a duplicate of the
// first. A Token sidesteps the question of function identity entirely:
// it names the connection, not the value connected.
type Token uint64

// Delegate wraps a single listener function together with the Token that
// identifies this specific connection.
type Delegate[Args any] struct {
	fn    func(Args)
	token Token
}

// Invoke calls the wrapped function with args.
func (d Delegate[Args]) Invoke(args Args) {
	d.fn(args)
}
