package spacedash

import (
	"fmt"
	"time"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/core"
)

// State is the level lifecycle state.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver // lives exhausted; waits for restart
	StateVictory  // final level completed
)

// String returns a lowercase state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Event flags what happened during a tick.
type Event uint8

const (
	EventDied Event = 1 << iota
	EventCollected
	EventLevelUp
	EventGameOver
	EventVictory
)

// Has reports whether e includes flag.
func (e Event) Has(flag Event) bool {
	return e&flag != 0
}

// StepResult is returned from every Step.
type StepResult struct {
	State  State
	Events Event
}

// Progress receives level completions and supplies the unlock watermark.
type Progress interface {
	Watermark() int
	Complete(level, deaths, seconds int) error
	Reset() error
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock used for completion times.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithSettings sets the initial settings snapshot.
func WithSettings(s config.Settings) Option {
	return func(g *Game) { g.settings = s.Normalize() }
}

// Game is the complete simulation state of one play session.
type Game struct {
	cfg      config.GameConfig
	settings config.Settings
	arena    core.Size
	fusion   Fusion
	progress Progress
	gen      *Generator
	now      func() time.Time
	runtime  core.RuntimeConfig

	player       Player
	obstacles    []Obstacle
	collectibles []Collectible
	goal         core.Rect
	effects      *Effects

	state     State
	level     int
	deaths    int
	lives     int
	elapsed   float64 // simulated seconds at the current game speed
	startedAt time.Time
	tickCount uint64

	err error
}

// New creates a game over the given static config and progress tracker.
// Call Reset before the first Step.
func New(cfg config.GameConfig, progress Progress, opts ...Option) *Game {
	cfg.Normalize()
	g := &Game{
		cfg:      cfg,
		settings: config.DefaultSettings(),
		progress: progress,
		now:      time.Now,
		arena:    core.Size{W: cfg.Arena.Width, H: cfg.Arena.Height},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.fusion = Fusion{
		Arena:            g.arena,
		GestureDeadzone:  cfg.Gesture.DeadzoneBase,
		TouchSensitivity: cfg.Touch.Sensitivity,
		TouchDeadzone:    cfg.Touch.Deadzone,
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "spacedash"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Dash"
}

// Reset starts a fresh session on level 1.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.gen = NewGenerator(g.arena, core.Vec{X: g.cfg.Orbit.CenterX, Y: g.cfg.Orbit.CenterY}, runtime.Seed)
	g.effects = newEffects(runtime.Seed)
	g.player = Player{
		Size:  core.Size{W: g.cfg.Player.Size, H: g.cfg.Player.Size},
		Speed: g.settings.PlayerSpeed,
	}
	g.goal = GoalRect(g.arena)
	g.level = 1
	g.tickCount = 0
	g.restart()
}

// ApplySettings swaps the settings snapshot. It takes effect on the next tick.
func (g *Game) ApplySettings(s config.Settings) {
	s = s.Normalize()
	if s.LivesEnabled && !g.settings.LivesEnabled {
		g.lives = g.cfg.Gameplay.MaxLives
	}
	g.settings = s
	g.player.Speed = s.PlayerSpeed
	if !s.TrailEnabled {
		g.player.Trail = g.player.Trail[:0]
	}
	if !s.ParticlesEnabled && g.effects != nil {
		g.effects.Particles = g.effects.Particles[:0]
	}
}

// Settings returns the active settings snapshot.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) StepResult {
	var ev Event

	if in.Has(core.ActionRestart) {
		g.Restart()
	}
	if in.Has(core.ActionPalm) {
		if g.state == StateGameOver {
			g.Restart()
		} else {
			g.TogglePause()
		}
	}
	if in.Has(core.ActionConfirm) && g.state == StateGameOver {
		g.Restart()
	}
	if in.Has(core.ActionTap) {
		switch g.state {
		case StateGameOver:
			g.Restart()
		case StatePaused:
			g.state = StatePlaying
		}
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	if g.state != StatePlaying {
		return StepResult{State: g.state}
	}

	dt := g.cfg.Gameplay.TickSeconds * g.settings.GameSpeed
	g.elapsed += dt
	g.tickCount++

	g.effects.decay()
	g.effects.tickBanner(dt)

	g.player.Pos = g.fusion.Fuse(&g.player, Intent{
		Keys:               in.Keys,
		KeyboardEnabled:    g.settings.KeyboardEnabled,
		Gesture:            in.Gesture,
		GestureSensitivity: g.settings.GesturesSensitivity,
		Touch:              in.Touch,
	})
	if g.settings.TrailEnabled {
		g.player.pushTrail()
	}

	mult := g.settings.ObstacleSpeed()
	for _, o := range g.obstacles {
		o.Advance(mult, g.arena)
	}

	if g.settings.ParticlesEnabled {
		g.effects.updateParticles(g.player.Bounds().Center())
	}

	ev |= g.checkCollisions()
	if g.state == StatePlaying {
		ev |= g.checkWin()
	}

	return StepResult{State: g.state, Events: ev}
}

// checkCollisions kills the player on obstacle overlap and collects items.
// Each obstacle is tested against the player's current position, so a
// respawn partway through is observed by the remaining obstacles.
func (g *Game) checkCollisions() Event {
	var ev Event
	for _, o := range g.obstacles {
		if g.player.Bounds().Overlaps(o.Bounds()) {
			ev |= g.die()
			if g.state != StatePlaying {
				return ev
			}
		}
	}

	for i := range g.collectibles {
		c := &g.collectibles[i]
		if !c.Collected && g.player.Bounds().Overlaps(c.Rect) {
			c.Collected = true
			ev |= EventCollected
			if g.settings.ParticlesEnabled {
				g.effects.burst(g.player.Bounds().Center(), collectBurst, g.settings.Particles(), 8, 3, 6, core.ColorBrightCyan)
			}
		}
	}
	return ev
}

// die applies one death.
func (g *Game) die() Event {
	g.deaths++
	if g.settings.ScreenShakeEnabled {
		g.effects.Shake = deathShake
	}
	g.effects.Flash = 1
	if g.settings.ParticlesEnabled {
		g.effects.burst(g.player.Bounds().Center(), deathBurst, g.settings.Particles(), 12, 4, 8, core.ColorOrange)
	}

	if g.settings.LivesEnabled {
		g.lives--
		if g.lives > 0 {
			g.respawn()
			g.effects.notify(fmt.Sprintf("Lives left: %d", g.lives))
			return EventDied
		}
		g.lives = 0
		g.state = StateGameOver
		return EventDied | EventGameOver
	}

	g.respawn()
	for i := range g.collectibles {
		g.collectibles[i].Collected = false
	}
	return EventDied
}

// checkWin completes the level when every item is collected and the player is in the goal.
func (g *Game) checkWin() Event {
	if !AllCollected(g.collectibles) || !g.player.Bounds().Overlaps(g.goal) {
		return 0
	}
	return g.completeLevel()
}

func (g *Game) completeLevel() Event {
	seconds := int(g.now().Sub(g.startedAt) / time.Second)
	if g.progress != nil {
		if err := g.progress.Complete(g.level, g.deaths, seconds); err != nil {
			g.err = err
		}
	}

	if g.level >= g.cfg.Gameplay.MaxLevel {
		g.state = StateVictory
		g.effects.notify("All missions complete!")
		return EventVictory
	}

	g.level++
	g.deaths = 0
	g.resetTimers()
	if g.settings.LivesEnabled {
		g.lives = g.cfg.Gameplay.MaxLives
	}
	g.loadLevel()
	g.effects.notify(fmt.Sprintf("Level %d", g.level))
	return EventLevelUp
}

// Restart replays the current level from scratch with full lives.
func (g *Game) Restart() {
	g.restart()
}

func (g *Game) restart() {
	g.state = StatePlaying
	g.deaths = 0
	g.resetTimers()
	g.lives = g.cfg.Gameplay.MaxLives
	g.effects.clear()
	g.loadLevel()
}

// TogglePause switches between playing and paused. Terminal states are unaffected.
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.state = StatePaused
	case StatePaused:
		g.state = StatePlaying
	}
}

// SelectLevel jumps to an unlocked level. It reports false for locked or invalid levels.
// Leaving game over or victory this way starts a fresh run with full lives.
func (g *Game) SelectLevel(level int) bool {
	if level < 1 || level > g.Watermark() {
		return false
	}
	if g.state == StateGameOver || g.state == StateVictory {
		g.lives = g.cfg.Gameplay.MaxLives
	}
	g.level = level
	g.deaths = 0
	g.resetTimers()
	g.state = StatePlaying
	g.loadLevel()
	return true
}

// ResetProgress wipes the watermark and stats and returns to level 1.
func (g *Game) ResetProgress() {
	if g.progress != nil {
		if err := g.progress.Reset(); err != nil {
			g.err = err
		}
	}
	g.level = 1
	g.restart()
	g.effects.notify("Progress reset")
}

// Watermark returns the highest unlocked level.
func (g *Game) Watermark() int {
	if g.progress == nil {
		return 1
	}
	return g.progress.Watermark()
}

// Err returns and clears the last persistence error.
func (g *Game) Err() error {
	err := g.err
	g.err = nil
	return err
}

func (g *Game) resetTimers() {
	g.elapsed = 0
	g.startedAt = g.now()
}

func (g *Game) respawn() {
	g.player.Pos = core.Vec{X: g.cfg.Player.SpawnX, Y: g.cfg.Player.SpawnY}
	g.player.Trail = g.player.Trail[:0]
}

// loadLevel replaces every entity with a fresh layout for the current level.
func (g *Game) loadLevel() {
	layout := g.gen.Generate(g.level)
	g.obstacles = layout.Obstacles
	g.collectibles = layout.Collectibles
	g.respawn()
}

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Level returns the current level number.
func (g *Game) Level() int { return g.level }

// Deaths returns deaths on the current level attempt.
func (g *Game) Deaths() int { return g.deaths }

// Lives returns remaining lives; meaningful only in lives mode.
func (g *Game) Lives() int { return g.lives }

// Elapsed returns simulated seconds on the current level.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Arena returns the arena size in pixels.
func (g *Game) Arena() core.Size { return g.arena }

// Effects exposes decorative state to renderers.
func (g *Game) Effects() *Effects { return g.effects }
