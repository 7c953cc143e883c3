package ecs

import (
	"testing"

	"github.com/lixenwraith/goecs/entity"
)

// TestConcurrentIndependentRegistries documents, under the race detector,
// that Registry carries no shared mutable state across instances — the
// single-threaded-per-registry contract (spec.md §5's Non-goal on
// multithreaded concurrent registry access) only forbids sharing one
// Registry across goroutines, not running several registries in
// parallel. Grounded on the teacher's ecs_race_test.go/audio_race_test.go
// pattern of exercising `go test -race`, adapted here to many private
// registries instead of one shared World guarded by a mutex, since this
// package deliberately has no such mutex.
func TestConcurrentIndependentRegistries(t *testing.T) {
	for i := 0; i < 8; i++ {
		t.Run("", func(t *testing.T) {
			t.Parallel()
			r := New(entity.Medium)
			for j := 0; j < 200; j++ {
				e := r.Create()
				Add(r, e, I32{int32(j)})
				if j%2 == 0 {
					Add(r, e, U32{uint32(j)})
				}
			}
			g := r.Group(types(typeKeyOf[I32](), typeKeyOf[U32]()), nil)
			if got, want := g.Len(), 100; got != want {
				t.Fatalf("expected %d matches, got %d", want, got)
			}
		})
	}
}
