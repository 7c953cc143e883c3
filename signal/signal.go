package signal

// Signal holds an ordered list of Delegates and publishes to all of them
// in order whenever an event occurs. ComponentStorage owns one Signal
// each for construction, update, and destruction.
type Signal[Args any] struct {
	delegates []Delegate[Args]
	lastToken Token
}

// Publish invokes every connected delegate, in connection order (or the
// order established by Sink.Before), passing args to each.
//
// Reentrancy is undefined per spec.md's open questions: a listener that
// mutates the same Signal's connection list during Publish (by calling
// Connect/Disconnect from within its own callback) sees an unspecified
// snapshot, not a guaranteed-consistent one. Conservative callers should
// not do this.
func (s *Signal[Args]) Publish(args Args) {
	for _, d := range s.delegates {
		d.Invoke(args)
	}
}

// Sink returns the connect/disconnect handle for this signal. Sink is the
// only type client code uses to manage listeners; Signal itself exposes
// no public mutation methods, matching spec.md §4.7 ("Sink is the only
// handle exposed to clients for connect/disconnect").
func (s *Signal[Args]) Sink() Sink[Args] {
	return Sink[Args]{signal: s}
}

func (s *Signal[Args]) indexOf(t Token) int {
	for i, d := range s.delegates {
		if d.token == t {
			return i
		}
	}
	return -1
}

// nextTok mints a Token unique within this Signal's lifetime.
func (s *Signal[Args]) nextTok() Token {
	s.lastToken++
	return s.lastToken
}
