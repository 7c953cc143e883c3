package ecs

import "github.com/lixenwraith/goecs/entity"

// EntityBuilder provides a fluent interface for constructing an entity with
// several components in one chained expression. Each With adds its
// component immediately, so it is visible to views and groups (and its
// construction signal has fired) before Build is called — directly grounded on the teacher's EntityBuilder (engine/entity_builder.go),
// generalized from the teacher's two hand-enumerated With/WithPosition
// helpers to a single generic With[T] that works for any component type,
// since Registry's storages are assured on demand rather than declared as
// named fields on World.
type EntityBuilder struct {
	registry *Registry
	entity   entity.Entity
	built    bool
}

// NewEntity reserves a new entity handle and returns a builder for it. The
// handle is live immediately, and every With inserts its component at once;
// the builder adds only the fluent chain and the built guard, keeping the
// teacher's contract that With panics once Build() has been called.
func (r *Registry) NewEntity() *EntityBuilder {
	return &EntityBuilder{registry: r, entity: r.Create()}
}

// With adds a component of type T to the entity under construction. Panics
// if called after Build(), or if the entity already has a component of type
// T.
func With[T any](eb *EntityBuilder, v T) *EntityBuilder {
	if eb.built {
		panic("ecs: entity already built - cannot add components after Build()")
	}
	Add[T](eb.registry, eb.entity, v)
	return eb
}

// Build finalizes construction and returns the entity handle. No further
// components may be added to this builder afterward.
func (eb *EntityBuilder) Build() entity.Entity {
	eb.built = true
	return eb.entity
}
