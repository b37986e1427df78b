package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Toggle names a setting flipped from inside the game.
type Toggle int

const (
	ToggleNone Toggle = iota
	ToggleLives
	ToggleTrail
	ToggleParticles
	ToggleShake
)

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// KeyInput is the meaning of one key press.
type KeyInput struct {
	Action core.Action
	Steer  string // steering key name, empty if none
	Toggle Toggle
	Quit   bool
}

// MapKey translates a key message.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) KeyInput {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return KeyInput{Action: core.ActionQuit, Quit: true}
	}

	switch key {
	case core.KeyW, core.KeyA, core.KeyS, core.KeyD,
		core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight:
		return KeyInput{Steer: key}
	case " ", "enter":
		return KeyInput{Action: core.ActionConfirm}
	case "p", "esc":
		return KeyInput{Action: core.ActionPause}
	case "r":
		return KeyInput{Action: core.ActionRestart}
	case "l":
		return KeyInput{Action: core.ActionLevels}
	case "v":
		return KeyInput{Toggle: ToggleLives}
	case "t":
		return KeyInput{Toggle: ToggleTrail}
	case "f":
		return KeyInput{Toggle: ToggleParticles}
	case "z":
		return KeyInput{Toggle: ToggleShake}
	}

	return KeyInput{}
}

// MapKeyToFrame applies a key press to the frame and the hold table.
// It returns the decoded input so the caller can handle quit and toggles.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, hold *KeyHold) KeyInput {
	in := km.MapKey(msg)
	if in.Steer != "" && hold != nil {
		hold.Press(in.Steer)
	}
	if in.Action != core.ActionNone && !in.Quit {
		frame.Set(in.Action)
	}
	return in
}
