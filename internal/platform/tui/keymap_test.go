package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-dash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want KeyInput
	}{
		{"steer w", runeKey('w'), KeyInput{Steer: core.KeyW}},
		{"steer arrow", tea.KeyMsg{Type: tea.KeyLeft}, KeyInput{Steer: core.KeyLeft}},
		{"space confirms", tea.KeyMsg{Type: tea.KeySpace}, KeyInput{Action: core.ActionConfirm}},
		{"pause", runeKey('p'), KeyInput{Action: core.ActionPause}},
		{"escape pauses", tea.KeyMsg{Type: tea.KeyEsc}, KeyInput{Action: core.ActionPause}},
		{"restart", runeKey('r'), KeyInput{Action: core.ActionRestart}},
		{"levels", runeKey('l'), KeyInput{Action: core.ActionLevels}},
		{"lives toggle", runeKey('v'), KeyInput{Toggle: ToggleLives}},
		{"quit", runeKey('q'), KeyInput{Action: core.ActionQuit, Quit: true}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, KeyInput{Action: core.ActionQuit, Quit: true}},
		{"unbound", runeKey('y'), KeyInput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Fatalf("MapKey(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	hold := NewKeyHold(time.Second)

	km.MapKeyToFrame(runeKey('d'), &frame, hold)
	km.MapKeyToFrame(runeKey('p'), &frame, hold)
	if in := km.MapKeyToFrame(runeKey('q'), &frame, hold); !in.Quit {
		t.Fatal("q should request quit")
	}

	if !frame.Has(core.ActionPause) {
		t.Error("pause should be set on the frame")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is handled by the model, not the frame")
	}
	hold.Fill(&frame)
	if !frame.Keys.Pressed(core.KeyD) {
		t.Error("d should be held")
	}
}

func TestKeyHoldExpires(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	hold := NewKeyHold(120 * time.Millisecond)
	hold.now = func() time.Time { return now }

	hold.Press(core.KeyUp)

	frame := core.NewInputFrame()
	now = base.Add(100 * time.Millisecond)
	hold.Fill(&frame)
	if !frame.Keys[core.KeyUp] {
		t.Fatal("key should be held inside the hold window")
	}

	// Auto-repeat extends the hold.
	hold.Press(core.KeyUp)
	frame.Clear()
	now = base.Add(200 * time.Millisecond)
	hold.Fill(&frame)
	if !frame.Keys[core.KeyUp] {
		t.Fatal("repeat should extend the hold")
	}

	frame.Clear()
	now = base.Add(400 * time.Millisecond)
	hold.Fill(&frame)
	if frame.Keys[core.KeyUp] {
		t.Fatal("key should expire after the hold window")
	}
	if len(hold.expires) != 0 {
		t.Fatal("expired keys should be forgotten")
	}
}
