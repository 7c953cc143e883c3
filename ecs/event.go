// Package ecs implements the component storage, type erasure, registry,
// view, and group machinery described by spec.md — the heart of the
// runtime. It is grounded throughout on the teacher's engine package
// (World, Store[T], WorldGeneric, QueryBuilder, EntityBuilder), adapted
// from the teacher's map-backed, reflect-keyed stores to the paged
// sparse-set storage and prefix-owning groups spec.md calls for.
package ecs

import (
	"github.com/lixenwraith/goecs/entity"
	"github.com/lixenwraith/goecs/signal"
)

// SinkEvent is the sink type every lifecycle signal in package ecs
// exposes, named for readability at call sites like
// OnConstruct[T](r).Connect(handler).
type SinkEvent = signal.Sink[Event]

// Event is the payload every ComponentStorage signal publishes: the
// registry the change happened in, and the entity it happened to.
// spec.md §4.7 describes the C++-style delegate payload as
// "(registry*, entity)"; collapsing that pair into one struct keeps the
// signal package's Signal[Args] generic over a single concrete type
// instead of requiring variadic type parameters Go does not support.
type Event struct {
	Registry *Registry
	Entity   entity.Entity
}
