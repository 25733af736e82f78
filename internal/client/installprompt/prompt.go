// Package installprompt models the deferred install-prompt state: a
// process-wide, at-most-one-pending-event cache. It is an explicitly owned
// object handed to whoever renders the install UI, not an ambient global.
package installprompt

import "sync"

// Event describes a pending install offer.
type Event struct {
	Platforms []string
	UserAgent string
}

// Slot holds at most one pending event. Offering a new event replaces the
// previous one; consuming empties the slot.
type Slot struct {
	mu      sync.Mutex
	pending *Event
}

func NewSlot() *Slot {
	return &Slot{}
}

// Offer stores e as the pending event, replacing any prior one.
func (s *Slot) Offer(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &e
}

// Available reports whether an event is waiting.
func (s *Slot) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Consume returns the pending event and empties the slot. The second return
// is false when nothing was pending.
func (s *Slot) Consume() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Event{}, false
	}
	e := *s.pending
	s.pending = nil
	return e, true
}
