package ecs

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/goecs/entity"
)

type I32 struct{ V int32 }
type U32 struct{ V uint32 }
type U8 struct{ V uint8 }

func types(keys ...reflect.Type) []reflect.Type { return keys }

// TestViewBasic is scenario S1: view over two include types counts only
// entities holding both, and tracks removal.
func TestViewBasic(t *testing.T) {
	r := New(entity.Medium)
	e0, e1, e2 := r.Create(), r.Create(), r.Create()

	Add(r, e0, I32{0})
	Add(r, e1, I32{-1})
	Add(r, e2, I32{-2})

	Add(r, e0, U32{0})
	Add(r, e2, U32{2})

	v := r.View(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)
	if got := v.Count(); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}

	Remove[U32](r, e0)
	v = r.View(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)
	if got := v.Count(); got != 1 {
		t.Fatalf("after removal expected count 1, got %d", got)
	}
}

// TestViewExclusion is scenario S2.
func TestViewExclusion(t *testing.T) {
	r := New(entity.Medium)
	e0, e1, e2 := r.Create(), r.Create(), r.Create()

	Add(r, e0, I32{0})
	Add(r, e1, I32{-1})
	Add(r, e2, I32{-2})
	Add(r, e0, U32{0})
	Add(r, e2, U32{2})
	Add(r, e2, U8{255})

	v := r.View(types(typeKeyOf[I32](), typeKeyOf[U32]()), types(typeKeyOf[U8]()))
	if got := v.Count(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}

	Remove[U8](r, e2)
	v = r.View(types(typeKeyOf[I32](), typeKeyOf[U32]()), types(typeKeyOf[U8]()))
	if got := v.Count(); got != 2 {
		t.Fatalf("after removing U8 expected count 2, got %d", got)
	}
}

// TestViewIterationExactlyOnce is invariant 8.
func TestViewIterationExactlyOnce(t *testing.T) {
	r := New(entity.Medium)
	seen := map[entity.Entity]int{}
	for i := 0; i < 10; i++ {
		e := r.Create()
		Add(r, e, I32{int32(i)})
		if i%2 == 0 {
			Add(r, e, U32{uint32(i)})
		}
	}

	v := r.View(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)
	v.Each(func(e entity.Entity) { seen[e]++ })

	if len(seen) != 5 {
		t.Fatalf("expected 5 matching entities, got %d", len(seen))
	}
	for e, n := range seen {
		if n != 1 {
			t.Fatalf("entity %v visited %d times, want 1", e, n)
		}
	}
}

// TestEach2MatchesView checks the typed sugar agrees with the erased View.
func TestEach2MatchesView(t *testing.T) {
	r := New(entity.Medium)
	for i := 0; i < 5; i++ {
		e := r.Create()
		Add(r, e, I32{int32(i)})
		if i < 3 {
			Add(r, e, U32{uint32(i)})
		}
	}

	count := 0
	Each2(r, func(e entity.Entity, a *I32, b *U32) {
		count++
		if a.V != int32(b.V) {
			t.Fatalf("mismatched pair: I32=%d U32=%d", a.V, b.V)
		}
	})
	if count != 3 {
		t.Fatalf("expected 3 pairs, got %d", count)
	}
}
