package entity

import "testing"

func TestCreateAssignsSequentialIndices(t *testing.T) {
	a := NewHandleAllocator(Large)
	for i := uint64(0); i < 5; i++ {
		h, err := a.Create()
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if Large.Index(h) != i {
			t.Fatalf("index %d: got %d", i, Large.Index(h))
		}
		if Large.Version(h) != 0 {
			t.Fatalf("index %d: expected version 0, got %d", i, Large.Version(h))
		}
	}
}

func TestAliveTracksCreateAndRemove(t *testing.T) {
	a := NewHandleAllocator(Large)
	h, _ := a.Create()
	if !a.Alive(h) {
		t.Fatalf("expected freshly created handle to be alive")
	}
	if err := a.Remove(h); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if a.Alive(h) {
		t.Fatalf("expected removed handle to be dead")
	}
}

func TestRemoveInvalidHandleFails(t *testing.T) {
	a := NewHandleAllocator(Large)
	h, _ := a.Create()
	if err := a.Remove(h); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := a.Remove(h); err != ErrRemovedInvalidHandle {
		t.Fatalf("expected ErrRemovedInvalidHandle on double-free, got %v", err)
	}
}

// TestHandleRecycle mirrors spec scenario S6: with a 4-bit index / 4-bit
// version profile, creating 15 handles, freeing the 3rd, then creating one
// more yields index==3, version==1.
func TestHandleRecycle(t *testing.T) {
	traits := Traits{IndexBits: 4, VersionBits: 4}
	a := NewHandleAllocator(traits)

	handles := make([]Entity, 0, 15)
	for i := 0; i < 15; i++ {
		h, err := a.Create()
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		handles = append(handles, h)
	}

	if err := a.Remove(handles[3]); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	recycled, err := a.Create()
	if err != nil {
		t.Fatalf("Create after free: %v", err)
	}
	if traits.Index(recycled) != 3 {
		t.Fatalf("expected recycled index 3, got %d", traits.Index(recycled))
	}
	if traits.Version(recycled) != 1 {
		t.Fatalf("expected recycled version 1, got %d", traits.Version(recycled))
	}

	// Free all handles including the just-recycled one, then recreate:
	// second-generation handles come back LIFO with incremented version.
	handles[3] = recycled
	for i := len(handles) - 1; i >= 0; i-- {
		if err := a.Remove(handles[i]); err != nil {
			t.Fatalf("Remove during drain %d: %v", i, err)
		}
	}

	for i := 0; i < len(handles); i++ {
		h, err := a.Create()
		if err != nil {
			t.Fatalf("Create during LIFO replay %d: %v", i, err)
		}
		wantIndex := traits.Index(handles[i])
		if traits.Index(h) != wantIndex {
			t.Fatalf("LIFO order violated: expected index %d, got %d", wantIndex, traits.Index(h))
		}
	}
}

func TestCreateFailsWhenExhausted(t *testing.T) {
	traits := Traits{IndexBits: 2, VersionBits: 4} // index sentinel at 3, so indices 0,1,2 usable
	a := NewHandleAllocator(traits)
	for i := 0; i < 3; i++ {
		if _, err := a.Create(); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if _, err := a.Create(); err != ErrOutOfActiveHandles {
		t.Fatalf("expected ErrOutOfActiveHandles, got %v", err)
	}
}
