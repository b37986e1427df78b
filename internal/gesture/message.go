// Package gesture bridges an external hand-tracking producer into the game.
// The producer publishes normalized pointing positions over a WebSocket; the
// bridge converts them to arena targets and keeps only the latest one.
package gesture

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Kind is the recognized hand pose.
type Kind string

const (
	KindPointing Kind = "pointing"
	KindOpenHand Kind = "open_hand"
	KindNone     Kind = "none" // no hand in view
)

// Message is one frame from the producer. X and Y are normalized to [0,1]
// in camera space and only meaningful for pointing frames.
type Message struct {
	Type Kind    `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Decode parses a producer frame.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("gesture: invalid message: %w", err)
	}
	switch msg.Type {
	case KindPointing:
		msg.X = core.ClampF(msg.X, 0, 1)
		msg.Y = core.ClampF(msg.Y, 0, 1)
	case KindOpenHand, KindNone:
	default:
		return Message{}, fmt.Errorf("gesture: unknown type %q", msg.Type)
	}
	return msg, nil
}

// Target maps a pointing frame to arena space. The camera faces the player,
// so x is mirrored.
func (m Message) Target(arena core.Size) core.Target {
	return core.Target{
		X:      arena.W - m.X*arena.W,
		Y:      m.Y * arena.H,
		Active: true,
	}
}
