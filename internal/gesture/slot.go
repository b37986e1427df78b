package gesture

import (
	"sync"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Slot holds the latest gesture target. Writers overwrite; the frame driver
// reads once per tick. An open hand is latched until taken.
type Slot struct {
	mu     sync.Mutex
	target *core.Target
	palm   bool
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Publish replaces the current target.
func (s *Slot) Publish(t core.Target) {
	s.mu.Lock()
	s.target = &t
	s.mu.Unlock()
}

// Clear drops the current target.
func (s *Slot) Clear() {
	s.mu.Lock()
	s.target = nil
	s.mu.Unlock()
}

// Latest returns a copy of the current target, or nil.
func (s *Slot) Latest() *core.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return nil
	}
	t := *s.target
	return &t
}

// TakePalm reports whether an open hand arrived since the last call.
func (s *Slot) TakePalm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	palm := s.palm
	s.palm = false
	return palm
}

// Apply folds one producer frame into the slot.
func (s *Slot) Apply(msg Message, arena core.Size) {
	switch msg.Type {
	case KindPointing:
		s.Publish(msg.Target(arena))
	case KindOpenHand:
		s.mu.Lock()
		s.target = nil
		s.palm = true
		s.mu.Unlock()
	case KindNone:
		s.Clear()
	}
}
