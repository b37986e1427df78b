package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/core"
	"github.com/vovakirdan/space-dash/internal/games/spacedash"
	"github.com/vovakirdan/space-dash/internal/gesture"
	"github.com/vovakirdan/space-dash/internal/progress"
	"github.com/vovakirdan/space-dash/internal/storage"
)

type testRig struct {
	model   Model
	game    *spacedash.Game
	tracker *progress.Tracker
	store   *storage.MemoryStore
	slot    *gesture.Slot
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	store := storage.NewMemory()
	cfg := config.DefaultGameConfig()
	tracker := progress.NewTracker(store, cfg.Gameplay.MaxLevel)

	settings := config.DefaultSettings()
	settings.ParticlesEnabled = false
	settings.ScreenShakeEnabled = false
	game := spacedash.New(cfg, tracker, spacedash.WithSettings(settings))

	slot := gesture.NewSlot()
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(Options{
		Game:    game,
		Tracker: tracker,
		Store:   store,
		Gesture: slot,
		KeyHold: time.Hour,
	}, rc)
	m.Init()

	return &testRig{model: m, game: game, tracker: tracker, store: store, slot: slot}
}

func (r *testRig) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	next, _ := r.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	r.model = m
}

func (r *testRig) tick(t *testing.T) {
	r.send(t, TickMsg(time.Now()))
}

func TestModelSteersWithHeldKeys(t *testing.T) {
	r := newRig(t)
	start := r.game.Snapshot().Player

	r.send(t, runeKey('d'))
	r.tick(t)
	r.tick(t)

	got := r.game.Snapshot().Player
	if got.X <= start.X {
		t.Fatalf("player should move right, x %v -> %v", start.X, got.X)
	}
	if got.Y != start.Y {
		t.Fatalf("player should not move vertically, y %v -> %v", start.Y, got.Y)
	}
}

func TestModelPauseKey(t *testing.T) {
	r := newRig(t)
	r.send(t, runeKey('p'))
	r.tick(t)
	if r.game.State() != spacedash.StatePaused {
		t.Fatalf("state = %v, want paused", r.game.State())
	}
}

func TestModelGesturePalm(t *testing.T) {
	r := newRig(t)
	r.slot.Apply(gesture.Message{Type: gesture.KindOpenHand}, r.game.Arena())
	r.tick(t)
	if r.game.State() != spacedash.StatePaused {
		t.Fatalf("open hand should pause, state = %v", r.game.State())
	}
	r.tick(t)
	if r.game.State() != spacedash.StatePaused {
		t.Fatal("palm must be consumed once")
	}
}

func TestModelMouseTouch(t *testing.T) {
	r := newRig(t)
	start := r.game.Snapshot().Player

	// Press near the right edge of the arena frame and hold.
	r.send(t, tea.MouseMsg{X: 70, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	r.tick(t)
	r.tick(t)
	moved := r.game.Snapshot().Player
	if moved.X <= start.X {
		t.Fatalf("touch should pull the player right, x %v -> %v", start.X, moved.X)
	}

	r.send(t, tea.MouseMsg{X: 70, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	r.tick(t)
	after := r.game.Snapshot().Player
	r.tick(t)
	if got := r.game.Snapshot().Player; got != after {
		t.Fatalf("player moved after release: %v -> %v", after, got)
	}
}

func TestModelLevelsMenu(t *testing.T) {
	r := newRig(t)
	if err := r.tracker.Complete(1, 0, 10); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	r.send(t, runeKey('l'))
	if !r.model.Levels() {
		t.Fatal("level menu should open")
	}
	if r.game.State() != spacedash.StatePaused {
		t.Fatal("opening the menu should pause the game")
	}
	if view := r.model.View(); !strings.Contains(view, "MISSIONS") {
		t.Fatalf("menu view missing title:\n%s", view)
	}

	r.send(t, tea.KeyMsg{Type: tea.KeyDown})
	r.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if r.model.Levels() {
		t.Fatal("selecting an open level should close the menu")
	}
	if r.game.Level() != 2 || r.game.State() != spacedash.StatePlaying {
		t.Fatalf("level %d state %v, want level 2 playing", r.game.Level(), r.game.State())
	}
}

func TestModelLevelsMenuBackResumes(t *testing.T) {
	r := newRig(t)
	r.send(t, runeKey('l'))
	r.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if r.model.Levels() {
		t.Fatal("esc should close the menu")
	}
	if r.game.State() != spacedash.StatePlaying {
		t.Fatalf("state = %v, want playing", r.game.State())
	}
}

func TestModelLockedLevel(t *testing.T) {
	r := newRig(t)
	r.send(t, runeKey('l'))
	r.send(t, tea.KeyMsg{Type: tea.KeyDown})
	r.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if !r.model.Levels() {
		t.Fatal("locked level should keep the menu open")
	}
	if !strings.Contains(r.model.View(), "Level locked") {
		t.Fatal("expected a locked notice")
	}
}

func TestModelTogglePersistsSettings(t *testing.T) {
	r := newRig(t)
	r.send(t, runeKey('v'))
	if !r.game.Settings().LivesEnabled {
		t.Fatal("v should enable lives mode")
	}
	saved, err := progress.LoadSettings(r.store)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if !saved.LivesEnabled {
		t.Fatal("toggle should be persisted")
	}
}

func TestModelQuit(t *testing.T) {
	r := newRig(t)
	r.send(t, runeKey('q'))
	if !r.model.IsQuitting() {
		t.Fatal("q should quit")
	}
	if r.model.View() != "" {
		t.Fatal("quitting model should render nothing")
	}
}

func TestFormatLevels(t *testing.T) {
	tracker := progress.NewTracker(storage.NewMemory(), 3)
	_ = tracker.Complete(1, 2, 40)
	out := FormatLevels(tracker.Levels())
	for _, want := range []string{"Completed", "Open", "Locked", "40s"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatLevels() missing %q:\n%s", want, out)
		}
	}
}

func TestModelStartAt(t *testing.T) {
	store := storage.NewMemory()
	cfg := config.DefaultGameConfig()
	tracker := progress.NewTracker(store, cfg.Gameplay.MaxLevel)
	_ = tracker.Complete(1, 0, 10)
	_ = tracker.Complete(2, 0, 10)

	game := spacedash.New(cfg, tracker)
	m := NewModel(Options{Game: game, Tracker: tracker}, core.DefaultConfig()).StartAt(3)
	m.Init()
	if game.Level() != 3 {
		t.Fatalf("level = %d, want 3", game.Level())
	}

	locked := spacedash.New(cfg, tracker)
	m = NewModel(Options{Game: locked, Tracker: tracker}, core.DefaultConfig()).StartAt(9)
	m.Init()
	if locked.Level() != 1 {
		t.Fatalf("locked start level should fall back to 1, got %d", locked.Level())
	}
}
