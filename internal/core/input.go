package core

// Action represents a discrete game command, abstracted from physical key presses.
// Continuous steering travels through KeyTable and the input targets instead.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R, or Space after game over
	ActionConfirm        // Enter - confirm selection in menu
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionLevels         // L - open the level menu
	ActionTap            // touch press (mouse button down)
	ActionPalm           // open-hand gesture
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	case ActionLevels:
		return "Levels"
	case ActionTap:
		return "Tap"
	case ActionPalm:
		return "Palm"
	default:
		return "Unknown"
	}
}

// Key names recognized by the steering keyboard channel.
const (
	KeyW     = "w"
	KeyA     = "a"
	KeyS     = "s"
	KeyD     = "d"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
)

// KeyTable maps key names to whether they are currently held.
type KeyTable map[string]bool

// Pressed reports whether any of the named keys is held.
func (k KeyTable) Pressed(names ...string) bool {
	for _, n := range names {
		if k[n] {
			return true
		}
	}
	return false
}

// Target is a point in arena pixel space produced by the gesture or touch channel.
type Target struct {
	X, Y   float64
	Active bool
}

// Point returns the target as a vector.
func (t Target) Point() Vec {
	return Vec{X: t.X, Y: t.Y}
}

// InputFrame represents the input state for a single simulation tick.
type InputFrame struct {
	// Actions maps discrete commands to whether they were triggered this frame.
	Actions map[Action]bool
	// Keys holds the steering keys currently held.
	Keys KeyTable
	// Gesture is the latest pointing target, nil when no hand is tracked.
	Gesture *Target
	// Touch is the active touch target, nil when nothing is pressed.
	Touch *Target
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Keys:    make(KeyTable),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Hold marks a steering key as held for this frame.
func (f *InputFrame) Hold(name string) {
	if f.Keys == nil {
		f.Keys = make(KeyTable)
	}
	f.Keys[name] = true
}

// Clear resets all actions, keys and targets for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Keys)
	f.Gesture = nil
	f.Touch = nil
}
