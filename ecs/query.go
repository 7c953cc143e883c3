package ecs

import (
	"reflect"

	"github.com/lixenwraith/goecs/entity"
)

// QueryBuilder is a fluent wrapper over View, grounded on the teacher's
// QueryBuilder (engine/query.go) — With()-chain then Execute(). It
// generalizes the teacher's AND-only filter to also accept Without() exclude
// terms, since View already supports them. Execute builds a fresh View over
// the registry's current storages on every call; once Execute has run,
// further QueryWith/QueryWithout calls panic, as in the teacher's builder.
type QueryBuilder struct {
	registry *Registry
	includes []reflect.Type
	excludes []reflect.Type
	executed bool
	view     *View
}

// Query creates a new QueryBuilder. Use QueryWith/QueryWithout to add filter terms,
// then Execute to run it.
func (r *Registry) Query() *QueryBuilder {
	return &QueryBuilder{registry: r}
}

// QueryWith requires component type T to be present. Panics if called after
// Execute().
func QueryWith[T any](qb *QueryBuilder) *QueryBuilder {
	if qb.executed {
		panic("ecs: query already executed - cannot modify after Execute()")
	}
	qb.includes = append(qb.includes, typeKeyOf[T]())
	return qb
}

// QueryWithout requires component type T to be absent. Panics if called after
// Execute().
func QueryWithout[T any](qb *QueryBuilder) *QueryBuilder {
	if qb.executed {
		panic("ecs: query already executed - cannot modify after Execute()")
	}
	qb.excludes = append(qb.excludes, typeKeyOf[T]())
	return qb
}

// Execute runs the query and returns the matching entities. Each call builds
// a new View, so calling Execute more than once reflects whatever the
// registry looks like now (including storages created since the previous
// call) rather than the teacher's frozen once-only snapshot.
func (qb *QueryBuilder) Execute() []entity.Entity {
	qb.executed = true
	qb.view = qb.registry.View(qb.includes, qb.excludes)
	return qb.view.Entities()
}
