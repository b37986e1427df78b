package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/core"
	"github.com/vovakirdan/space-dash/internal/games/spacedash"
	"github.com/vovakirdan/space-dash/internal/gesture"
	"github.com/vovakirdan/space-dash/internal/progress"
)

// Options wires a Model to its collaborators. Only Game is required.
type Options struct {
	Game    *spacedash.Game
	Tracker *progress.Tracker // level menu; nil hides it
	Store   progress.KeyValue // settings persistence; nil keeps toggles in memory
	Gesture *gesture.Slot     // nil when no bridge is running
	Logger  *log.Logger
	KeyHold time.Duration // zero selects the config default
	// ScreenshotDir receives ctrl+s dumps; empty disables screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model driving one Space Dash session.
type Model struct {
	opts       Options
	game       *spacedash.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	keys       *KeyHold
	touch      *core.Target
	levels     *LevelsModel
	pausedByUI bool // the level menu paused a running game
	startLevel int
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the game.
func NewModel(opts Options, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	hold := opts.KeyHold
	if hold <= 0 {
		hold = time.Duration(config.DefaultGameConfig().Input.KeyHoldMS) * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		opts:       opts,
		game:       opts.Game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		keys:       NewKeyHold(hold),
		logger:     logger,
	}
}

// StartAt makes the session begin on the given unlocked level instead of level 1.
func (m Model) StartAt(level int) Model {
	m.startLevel = level
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.startLevel > 1 && !m.game.SelectLevel(m.startLevel) {
		m.logger.Warn("start level is locked", "level", m.startLevel)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.levels != nil {
			return m.updateLevels(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.levels != nil {
			return m.updateLevels(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	in := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.keys)
	if in.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if in.Toggle != ToggleNone {
		m.applyToggle(in.Toggle)
	}
	if in.Action == core.ActionLevels {
		m.openLevels()
	}
	return m, nil
}

// handleMouse maps the mouse onto the touch channel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.levels != nil {
		return m, nil
	}
	vp := spacedash.NewViewport(m.game.Arena(), m.screen.Width(), m.screen.Height())

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.inputFrame.Set(core.ActionTap)
		m.touch = touchTarget(vp, msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.touch != nil {
			if t := touchTarget(vp, msg.X, msg.Y); t != nil {
				m.touch = t
			}
		}
	case tea.MouseActionRelease:
		m.touch = nil
	}
	return m, nil
}

func touchTarget(vp spacedash.Viewport, x, y int) *core.Target {
	p, ok := vp.ToArena(x, y)
	if !ok {
		return nil
	}
	return &core.Target{X: p.X, Y: p.Y, Active: true}
}

// handleTick gathers the continuous channels and advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.levels == nil {
		m.keys.Fill(&m.inputFrame)
		if m.touch != nil {
			t := *m.touch
			m.inputFrame.Touch = &t
		}
		if m.opts.Gesture != nil {
			m.inputFrame.Gesture = m.opts.Gesture.Latest()
			if m.opts.Gesture.TakePalm() {
				m.inputFrame.Set(core.ActionPalm)
			}
		}

		result := m.game.Step(m.inputFrame)
		if result.Events.Has(spacedash.EventLevelUp) || result.Events.Has(spacedash.EventVictory) {
			m.logger.Info("level complete", "level", m.game.Level(), "state", result.State)
		}
	}

	if err := m.game.Err(); err != nil {
		m.logger.Warn("could not save progress", "error", err)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// applyToggle flips one setting and persists the new snapshot.
func (m *Model) applyToggle(t Toggle) {
	s := m.game.Settings()
	switch t {
	case ToggleLives:
		s.LivesEnabled = !s.LivesEnabled
	case ToggleTrail:
		s.TrailEnabled = !s.TrailEnabled
	case ToggleParticles:
		s.ParticlesEnabled = !s.ParticlesEnabled
	case ToggleShake:
		s.ScreenShakeEnabled = !s.ScreenShakeEnabled
	}
	m.game.ApplySettings(s)

	if m.opts.Store != nil {
		if err := progress.SaveSettings(m.opts.Store, m.game.Settings()); err != nil {
			m.logger.Warn("could not save settings", "error", err)
		}
	}
}

func (m *Model) openLevels() {
	if m.opts.Tracker == nil {
		return
	}
	if m.game.State() == spacedash.StatePlaying {
		m.game.TogglePause()
		m.pausedByUI = true
	}
	m.keys.Release()
	m.touch = nil
	lm := NewLevelsModel(m.opts.Tracker.Levels(), m.game.Level(), m.screen.Width(), m.screen.Height())
	m.levels = &lm
}

func (m *Model) closeLevels() {
	m.levels = nil
	if m.pausedByUI && m.game.State() == spacedash.StatePaused {
		m.game.TogglePause()
	}
	m.pausedByUI = false
}

// updateLevels routes input to the level menu and acts on its choice.
func (m Model) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "ctrl+c" || km.String() == "q") {
		m.quitting = true
		return m, tea.Quit
	}

	lm, cmd := m.levels.Update(msg)
	m.levels = &lm

	switch lm.Choice() {
	case LevelsBack:
		m.closeLevels()
	case LevelsPlay:
		if l, ok := lm.Selected(); ok && m.game.SelectLevel(l.Level) {
			m.pausedByUI = false
		}
		m.closeLevels()
	case LevelsReset:
		m.game.ResetProgress()
		m.pausedByUI = false
		m.closeLevels()
	}
	return m, cmd
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.levels != nil {
		return m.levels.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Levels reports whether the level menu is open.
func (m Model) Levels() bool {
	return m.levels != nil
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options, cfg core.RuntimeConfig) error {
	return RunModel(NewModel(opts, cfg))
}

// RunModel starts the Bubble Tea program for a prepared model.
func RunModel(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // mouse drives the touch channel
	)

	_, err := p.Run()
	return err
}
