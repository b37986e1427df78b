package tui

import (
	"time"

	"github.com/vovakirdan/space-dash/internal/core"
)

// KeyHold turns key press events into held state. Terminals report presses
// and auto-repeat but no releases, so a key counts as held until hold
// elapses without a repeat.
type KeyHold struct {
	hold    time.Duration
	now     func() time.Time
	expires map[string]time.Time
}

// NewKeyHold creates a table with the given hold duration.
func NewKeyHold(hold time.Duration) *KeyHold {
	return &KeyHold{
		hold:    hold,
		now:     time.Now,
		expires: make(map[string]time.Time),
	}
}

// Press marks a key held from now.
func (k *KeyHold) Press(name string) {
	k.expires[name] = k.now().Add(k.hold)
}

// Fill marks the keys still held on the frame and forgets expired ones.
func (k *KeyHold) Fill(f *core.InputFrame) {
	now := k.now()
	for name, until := range k.expires {
		if now.After(until) {
			delete(k.expires, name)
			continue
		}
		f.Hold(name)
	}
}

// Release forgets every key.
func (k *KeyHold) Release() {
	clear(k.expires)
}
