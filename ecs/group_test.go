package ecs

import (
	"testing"

	"github.com/lixenwraith/goecs/entity"
)

type Sprite struct{ X int }
type Renderable struct{}
type Transform struct{ X int }
type Rotation struct{ Deg int }

// TestNonOwningGroupLateBinding is scenario S3: a non-owning group created
// after matching components already exist back-fills correctly, and
// tracks subsequent removal.
func TestNonOwningGroupLateBinding(t *testing.T) {
	r := New(entity.Medium)
	e0 := r.Create()
	Add(r, e0, I32{44})
	Add(r, e0, U32{55})

	g := r.Group(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)
	if got := g.Len(); got != 1 {
		t.Fatalf("expected backfilled len 1, got %d", got)
	}

	Remove[I32](r, e0)
	if got := g.Len(); got != 0 {
		t.Fatalf("after removing I32 expected len 0, got %d", got)
	}
}

// TestOwningGroupSort is scenario S4.
func TestOwningGroupSort(t *testing.T) {
	r := New(entity.Medium)
	for i := 0; i < 5; i++ {
		e := r.Create()
		Add(r, e, Sprite{X: i})
		Add(r, e, Renderable{})
	}

	g := Group2Owning[Sprite, Renderable](r, nil, nil)
	if got := g.Len(); got != 5 {
		t.Fatalf("expected len 5, got %d", got)
	}

	g.Sort(func(a, b Sprite) bool { return a.X > b.X })

	var got []int
	g.Each(func(e entity.Entity, sp *Sprite, _ *Renderable) {
		got = append(got, sp.X)
	})
	want := []int{4, 3, 2, 1, 0}
	for i, x := range want {
		if got[i] != x {
			t.Fatalf("position %d: got %d, want %d (full: %v)", i, got[i], x, got)
		}
	}
}

// TestNestedOwningGroups is scenario S5.
func TestNestedOwningGroups(t *testing.T) {
	r := New(entity.Medium)
	Assure[Renderable](r)
	Assure[Rotation](r)

	g1 := Group1Owning[Sprite](r, types(typeKeyOf[Renderable]()), nil)
	g2 := Group2Owning[Sprite, Transform](r, types(typeKeyOf[Renderable]()), nil)
	g3 := Group2Owning[Sprite, Transform](r, types(typeKeyOf[Renderable](), typeKeyOf[Rotation]()), nil)

	e := r.Create()
	Add(r, e, Sprite{})
	Add(r, e, Renderable{})
	Add(r, e, Rotation{})

	if g1.Len() != 1 {
		t.Fatalf("g1 expected len 1, got %d", g1.Len())
	}
	if g2.Len() != 0 {
		t.Fatalf("g2 expected len 0, got %d", g2.Len())
	}
	if g3.Len() != 0 {
		t.Fatalf("g3 expected len 0, got %d", g3.Len())
	}

	Add(r, e, Transform{})
	if g3.Len() != 1 {
		t.Fatalf("after adding Transform, g3 expected len 1, got %d", g3.Len())
	}
	if g2.Len() != 1 {
		t.Fatalf("after adding Transform, g2 expected len 1, got %d", g2.Len())
	}

	Remove[Sprite](r, e)
	if g1.Len() != 0 || g2.Len() != 0 || g3.Len() != 0 {
		t.Fatalf("after removing Sprite expected all groups empty: g1=%d g2=%d g3=%d", g1.Len(), g2.Len(), g3.Len())
	}
}

// TestGroupNestingViolationPanics checks the subset-chain invariant is
// enforced at creation time, per spec.md's "reject incompatible group
// creation at registration time" design note.
func TestGroupNestingViolationPanics(t *testing.T) {
	r := New(entity.Medium)
	Assure[Renderable](r)
	Assure[Rotation](r)
	Group1Owning[Sprite](r, types(typeKeyOf[Renderable]()), nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on incompatible owning group nesting")
		}
	}()
	Group1Owning[Sprite](r, types(typeKeyOf[Rotation]()), nil)
}

// TestGroupIteratorCountMatchesLen is invariant 7.
func TestGroupIteratorCountMatchesLen(t *testing.T) {
	r := New(entity.Medium)
	for i := 0; i < 4; i++ {
		e := r.Create()
		Add(r, e, I32{int32(i)})
		Add(r, e, U32{uint32(i)})
	}
	g := r.Group(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)

	n := 0
	g.Each(func(entity.Entity) { n++ })
	if n != g.Len() {
		t.Fatalf("iterator count %d != Len() %d", n, g.Len())
	}
}
