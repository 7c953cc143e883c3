package signal

import "testing"

func TestPublishInvokesInConnectionOrder(t *testing.T) {
	var s Signal[int]
	var order []int

	listenerA := func(v int) { order = append(order, v*10+1) }
	listenerB := func(v int) { order = append(order, v*10+2) }

	sink := s.Sink()
	sink.Connect(listenerA)
	sink.Connect(listenerB)

	s.Publish(7)

	want := []int{71, 72}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("got %v, want %v", order, want)
	}
}

func TestBeforeInsertsAheadOfTarget(t *testing.T) {
	var s Signal[int]
	var order []string

	second := func(int) { order = append(order, "second") }
	first := func(int) { order = append(order, "first") }

	sink := s.Sink()
	target := sink.Connect(second)
	sink.Before(target, first)

	s.Publish(0)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("got %v", order)
	}
}

// Two listeners built from the same source-level function literal used to
// collide: the old identity key was the closure's reflect.Value.Pointer(),
// which the stdlib documents as shared by every closure instantiated from
// one literal regardless of what each captures. ecs.createGroup hits this
// exactly (two groupData's maybeValidHandler both come from one literal),
// so both connections here must succeed as distinct listeners.
func TestConnectSameLiteralTwiceDoesNotCollide(t *testing.T) {
	var s Signal[int]
	calls := 0

	newListener := func(tag int) func(int) {
		return func(int) { calls += tag }
	}

	sink := s.Sink()
	sink.Connect(newListener(1))
	sink.Connect(newListener(10))

	s.Publish(0)

	if calls != 11 {
		t.Fatalf("expected both listeners invoked (calls=11), got %d", calls)
	}
}

func TestDisconnectRemovesListener(t *testing.T) {
	var s Signal[int]
	calls := 0
	listener := func(int) { calls++ }

	sink := s.Sink()
	token := sink.Connect(listener)
	s.Publish(0)
	sink.Disconnect(token)
	s.Publish(0)

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBeforePanicsOnUnconnectedTarget(t *testing.T) {
	var s Signal[int]
	sink := s.Sink()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on Before with unconnected target token")
		}
	}()
	sink.Before(Token(999), func(int) {})
}
