package ecs

import (
	"testing"

	"github.com/lixenwraith/goecs/entity"
)

func TestQueryBuilder(t *testing.T) {
	r := New(entity.Medium)

	e1 := r.Create()
	Add(r, e1, I32{1})
	Add(r, e1, U32{1})

	e2 := r.Create()
	Add(r, e2, I32{2})

	e3 := r.Create()
	Add(r, e3, U32{3})

	results := QueryWith[U32](QueryWith[I32](r.Query())).Execute()
	if len(results) != 1 || results[0] != e1 {
		t.Fatalf("expected [%v], got %v", e1, results)
	}

	posResults := QueryWith[I32](r.Query()).Execute()
	if len(posResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(posResults))
	}

	empty := r.Query().Execute()
	if len(empty) != 0 {
		t.Fatalf("expected 0 results for empty query, got %d", len(empty))
	}
}

func TestQueryBuilderWithout(t *testing.T) {
	r := New(entity.Medium)
	e1 := r.Create()
	Add(r, e1, I32{1})

	e2 := r.Create()
	Add(r, e2, I32{2})
	Add(r, e2, U32{9})

	results := QueryWithout[U32](QueryWith[I32](r.Query())).Execute()
	if len(results) != 1 || results[0] != e1 {
		t.Fatalf("expected [%v], got %v", e1, results)
	}
}

func TestQueryBuilderPanicsAfterExecute(t *testing.T) {
	r := New(entity.Medium)
	qb := QueryWith[I32](r.Query())
	qb.Execute()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic modifying query after Execute()")
		}
	}()
	QueryWith[U32](qb)
}
