package ecs

import "github.com/lixenwraith/goecs/entity"

// Each2, Each3, and Each4 are typed convenience wrappers over View for
// the common case of a fixed, compile-time-known set of include types
// with no exclusions — directly grounded on the pack's secondary
// source, Swedeachu-go_ecs (its Iterate2/Iterate3/Iterate4: pick the smallest storage, walk its dense
// array, skip entities missing any other required component). Each
// drives off the real View (so it gets the same reverse-iteration safety
// and driver resampling spec.md requires) instead of the pack example's
// raw dense-slice walk, then resolves typed pointers via Get.
func Each2[A, B any](r *Registry, fn func(e entity.Entity, a *A, b *B)) {
	sa, sb := Assure[A](r), Assure[B](r)
	v := &View{includes: []erasedStorage{sa, sb}}
	v.sortDriverFirst()
	v.Each(func(e entity.Entity) {
		fn(e, sa.Get(e), sb.Get(e))
	})
}

// Each3 iterates entities that have A, B, and C.
func Each3[A, B, C any](r *Registry, fn func(e entity.Entity, a *A, b *B, c *C)) {
	sa, sb, sc := Assure[A](r), Assure[B](r), Assure[C](r)
	v := &View{includes: []erasedStorage{sa, sb, sc}}
	v.sortDriverFirst()
	v.Each(func(e entity.Entity) {
		fn(e, sa.Get(e), sb.Get(e), sc.Get(e))
	})
}

// Each4 iterates entities that have A, B, C, and D.
func Each4[A, B, C, D any](r *Registry, fn func(e entity.Entity, a *A, b *B, c *C, d *D)) {
	sa, sb, sc, sd := Assure[A](r), Assure[B](r), Assure[C](r), Assure[D](r)
	v := &View{includes: []erasedStorage{sa, sb, sc, sd}}
	v.sortDriverFirst()
	v.Each(func(e entity.Entity) {
		fn(e, sa.Get(e), sb.Get(e), sc.Get(e), sd.Get(e))
	})
}
