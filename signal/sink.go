package signal

// Sink is a thin, copyable handle onto a Signal's connection list. It is
// the only way client code connects or disconnects listeners — Signal
// itself has no public Connect/Disconnect methods.
type Sink[Args any] struct {
	signal *Signal[Args]
}

// Connect appends fn to the signal's listener list, at the end (lowest
// priority), and returns the Token identifying this connection — the
// only thing later Before/Disconnect calls can use to refer back to it.
func (s Sink[Args]) Connect(fn func(Args)) Token {
	t := s.signal.nextTok()
	s.signal.delegates = append(s.signal.delegates, Delegate[Args]{fn: fn, token: t})
	return t
}

// Before connects fn ahead of the listener previously identified by
// target, rather than appending it at the end, and returns the new
// connection's Token. target must still be connected; panics otherwise.
func (s Sink[Args]) Before(target Token, fn func(Args)) Token {
	pos := s.signal.indexOf(target)
	if pos == -1 {
		panic("signal: Before target is not connected")
	}
	t := s.signal.nextTok()
	d := Delegate[Args]{fn: fn, token: t}
	s.signal.delegates = append(s.signal.delegates, Delegate[Args]{})
	copy(s.signal.delegates[pos+1:], s.signal.delegates[pos:])
	s.signal.delegates[pos] = d
	return t
}

// Disconnect removes the listener identified by t. A no-op if t does not
// name a currently-connected listener.
func (s Sink[Args]) Disconnect(t Token) {
	pos := s.signal.indexOf(t)
	if pos == -1 {
		return
	}
	s.signal.delegates = append(s.signal.delegates[:pos], s.signal.delegates[pos+1:]...)
}

// Empty reports whether this signal has no connected listeners.
func (s Sink[Args]) Empty() bool {
	return len(s.signal.delegates) == 0
}
