package spacedash

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/core"
)

type completion struct {
	level, deaths, seconds int
}

type fakeProgress struct {
	watermark int
	maxLevel  int
	done      []completion
	resets    int
	err       error
}

func (p *fakeProgress) Watermark() int { return p.watermark }

func (p *fakeProgress) Complete(level, deaths, seconds int) error {
	p.done = append(p.done, completion{level, deaths, seconds})
	if level == p.watermark && level < p.maxLevel {
		p.watermark++
	}
	return p.err
}

func (p *fakeProgress) Reset() error {
	p.resets++
	p.watermark = 1
	return p.err
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestGame(t *testing.T, settings config.Settings) (*Game, *fakeProgress, *fakeClock) {
	t.Helper()
	progress := &fakeProgress{watermark: 1, maxLevel: 10}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := New(config.DefaultGameConfig(), progress, WithSettings(settings), WithClock(clock.now))
	rc := core.DefaultConfig()
	rc.Seed = 12345
	g.Reset(rc)
	return g, progress, clock
}

func quietSettings() config.Settings {
	s := config.DefaultSettings()
	s.ParticlesEnabled = false
	s.TrailEnabled = false
	return s
}

// parkPlayerOnObstacle replaces every obstacle with a single static one and puts the player on it.
func (g *Game) parkPlayerOnObstacle() {
	g.obstacles = []Obstacle{&Linear{Pos: core.Vec{X: 200, Y: 200}, Size: core.Size{W: 20, H: 20}}}
	g.player.Pos = core.Vec{X: 205, Y: 205}
}

func TestGameReset(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())

	if g.State() != StatePlaying || g.Level() != 1 || g.Deaths() != 0 {
		t.Errorf("after Reset: state=%v level=%d deaths=%d", g.State(), g.Level(), g.Deaths())
	}
	snap := g.Snapshot()
	if snap.Player != core.NewRect(50, 300, 22, 22) {
		t.Errorf("player = %+v, want spawn (50,300) 22x22", snap.Player)
	}
	if snap.Goal != core.NewRect(720, 260, 60, 80) {
		t.Errorf("goal = %+v, want (720,260) 60x80", snap.Goal)
	}
	if len(snap.Obstacles) != 5 || len(snap.Collectibles) != 2 {
		t.Errorf("level 1 layout: %d obstacles, %d collectibles", len(snap.Obstacles), len(snap.Collectibles))
	}
}

func TestLivesModeDeaths(t *testing.T) {
	s := quietSettings()
	s.LivesEnabled = true
	g, _, _ := newTestGame(t, s)

	if g.Lives() != 3 {
		t.Fatalf("lives = %d, want 3", g.Lives())
	}
	g.collectibles[0].Collected = true

	for i, wantLives := range []int{2, 1} {
		g.parkPlayerOnObstacle()
		res := g.Step(core.NewInputFrame())
		if !res.Events.Has(EventDied) || res.State != StatePlaying {
			t.Fatalf("death %d: result %+v", i+1, res)
		}
		if g.Lives() != wantLives {
			t.Errorf("death %d: lives = %d, want %d", i+1, g.Lives(), wantLives)
		}
		if !g.collectibles[0].Collected {
			t.Errorf("death %d: collectible reset in lives mode", i+1)
		}
		if g.player.Pos != (core.Vec{X: 50, Y: 300}) {
			t.Errorf("death %d: player at %v, want spawn", i+1, g.player.Pos)
		}
	}

	g.parkPlayerOnObstacle()
	res := g.Step(core.NewInputFrame())
	if !res.Events.Has(EventGameOver) || g.State() != StateGameOver {
		t.Fatalf("third death: result %+v state %v", res, g.State())
	}
	if g.Lives() != 0 || g.Deaths() != 3 {
		t.Errorf("after game over: lives=%d deaths=%d, want 0 and 3", g.Lives(), g.Deaths())
	}

	// Game over freezes the tick body.
	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("state changed while game over")
	}
}

func TestLivesModeMultipleOverlapsStopAtGameOver(t *testing.T) {
	s := quietSettings()
	s.LivesEnabled = true
	g, _, _ := newTestGame(t, s)
	g.lives = 1

	g.obstacles = []Obstacle{
		&Linear{Pos: core.Vec{X: 200, Y: 200}, Size: core.Size{W: 20, H: 20}},
		&Linear{Pos: core.Vec{X: 200, Y: 200}, Size: core.Size{W: 20, H: 20}},
	}
	g.player.Pos = core.Vec{X: 205, Y: 205}
	g.Step(core.NewInputFrame())

	if g.Lives() != 0 || g.Deaths() != 1 {
		t.Errorf("lives=%d deaths=%d, want 0 and 1", g.Lives(), g.Deaths())
	}
}

func TestNonLivesDeathResetsCollectibles(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	for i := range g.collectibles {
		g.collectibles[i].Collected = true
	}

	g.parkPlayerOnObstacle()
	res := g.Step(core.NewInputFrame())

	if !res.Events.Has(EventDied) || g.State() != StatePlaying {
		t.Fatalf("result %+v", res)
	}
	for i, c := range g.collectibles {
		if c.Collected {
			t.Errorf("collectible %d still collected after death", i)
		}
	}
	if g.player.Pos != (core.Vec{X: 50, Y: 300}) {
		t.Errorf("player at %v, want (50, 300)", g.player.Pos)
	}
	if g.Deaths() != 1 {
		t.Errorf("deaths = %d, want 1", g.Deaths())
	}
}

func TestRespawnObservedByLaterObstacles(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	g.obstacles = []Obstacle{
		&Linear{Pos: core.Vec{X: 200, Y: 200}, Size: core.Size{W: 20, H: 20}},
		&Linear{Pos: core.Vec{X: 55, Y: 305}, Size: core.Size{W: 5, H: 5}}, // covers spawn
	}
	g.player.Pos = core.Vec{X: 205, Y: 205}
	g.Step(core.NewInputFrame())

	if g.Deaths() != 2 {
		t.Errorf("deaths = %d, want 2 (respawn onto second obstacle)", g.Deaths())
	}
}

func TestCollectItem(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	g.obstacles = nil
	c := g.collectibles[0].Rect
	g.player.Pos = core.Vec{X: c.X - 5, Y: c.Y - 5}

	res := g.Step(core.NewInputFrame())
	if !res.Events.Has(EventCollected) || !g.collectibles[0].Collected {
		t.Fatalf("collectible not collected: %+v", res)
	}
	res = g.Step(core.NewInputFrame())
	if res.Events.Has(EventCollected) {
		t.Error("collectible collected twice")
	}
}

func TestWinRequiresAllCollected(t *testing.T) {
	g, progress, _ := newTestGame(t, quietSettings())
	g.obstacles = nil
	g.collectibles[0].Collected = true

	for range 50 {
		g.player.Pos = core.Vec{X: 730, Y: 290}
		res := g.Step(core.NewInputFrame())
		if res.Events.Has(EventLevelUp) || g.Level() != 1 {
			t.Fatal("level advanced with an uncollected item")
		}
	}
	if len(progress.done) != 0 {
		t.Errorf("completions recorded: %v", progress.done)
	}
}

func TestWinAdvancesLevel(t *testing.T) {
	s := quietSettings()
	s.LivesEnabled = true
	g, progress, clock := newTestGame(t, s)
	g.obstacles = nil
	g.deaths = 2
	g.lives = 1
	for i := range g.collectibles {
		g.collectibles[i].Collected = true
	}
	clock.t = clock.t.Add(12700 * time.Millisecond)
	g.player.Pos = core.Vec{X: 730, Y: 290}

	res := g.Step(core.NewInputFrame())
	if !res.Events.Has(EventLevelUp) {
		t.Fatalf("expected level up, got %+v", res)
	}
	if g.Level() != 2 || g.Deaths() != 0 || g.Lives() != 3 || g.Elapsed() != 0 {
		t.Errorf("after win: level=%d deaths=%d lives=%d elapsed=%v", g.Level(), g.Deaths(), g.Lives(), g.Elapsed())
	}
	if want := []completion{{1, 2, 12}}; len(progress.done) != 1 || progress.done[0] != want[0] {
		t.Errorf("completions = %v, want %v", progress.done, want)
	}
	if progress.watermark != 2 {
		t.Errorf("watermark = %d, want 2", progress.watermark)
	}
	if g.player.Pos != (core.Vec{X: 50, Y: 300}) || len(g.obstacles) != 9 {
		t.Errorf("level 2 not loaded: player %v, %d obstacles", g.player.Pos, len(g.obstacles))
	}
	if b := g.Effects().Banner; b == nil || b.Text != "Level 2" {
		t.Errorf("banner = %+v, want Level 2", b)
	}
}

func TestWinEmptyLevelNeedsOnlyGoal(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	g.obstacles = nil
	g.collectibles = nil
	g.player.Pos = core.Vec{X: 730, Y: 290}
	if res := g.Step(core.NewInputFrame()); !res.Events.Has(EventLevelUp) {
		t.Errorf("expected level up with no collectibles, got %+v", res)
	}
}

func TestVictoryOnFinalLevel(t *testing.T) {
	g, progress, _ := newTestGame(t, quietSettings())
	progress.watermark = 10
	if !g.SelectLevel(10) {
		t.Fatal("SelectLevel(10) failed")
	}
	g.obstacles = nil
	for i := range g.collectibles {
		g.collectibles[i].Collected = true
	}
	g.player.Pos = core.Vec{X: 730, Y: 290}

	res := g.Step(core.NewInputFrame())
	if !res.Events.Has(EventVictory) || g.State() != StateVictory {
		t.Fatalf("expected victory, got %+v", res)
	}
	if g.Level() != 10 || progress.watermark != 10 {
		t.Errorf("level=%d watermark=%d, want 10 and 10", g.Level(), progress.watermark)
	}

	g.Step(core.InputFrame{Actions: map[core.Action]bool{core.ActionRestart: true}})
	if g.State() != StatePlaying || g.Level() != 10 {
		t.Errorf("restart after victory: state=%v level=%d", g.State(), g.Level())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	g.Step(core.NewInputFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if res := g.Step(pause); res.State != StatePaused {
		t.Fatalf("state = %v, want paused", res.State)
	}

	before := g.Snapshot()
	in := core.NewInputFrame()
	in.Hold(core.KeyRight)
	for range 30 {
		g.Step(in)
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() || before.Elapsed != after.Elapsed {
		t.Error("simulation advanced while paused")
	}

	g.Step(pause)
	if g.State() != StatePlaying {
		t.Errorf("state = %v, want playing after second pause", g.State())
	}
}

func TestTapAndPalmActions(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())

	palm := core.NewInputFrame()
	palm.Set(core.ActionPalm)
	g.Step(palm)
	if g.State() != StatePaused {
		t.Fatalf("palm should pause, state = %v", g.State())
	}

	tap := core.NewInputFrame()
	tap.Set(core.ActionTap)
	g.Step(tap)
	if g.State() != StatePlaying {
		t.Fatalf("tap should unpause, state = %v", g.State())
	}

	g.state = StateGameOver
	g.deaths = 4
	g.Step(palm)
	if g.State() != StatePlaying || g.Deaths() != 0 {
		t.Errorf("palm on game over should restart: state=%v deaths=%d", g.State(), g.Deaths())
	}

	g.state = StateGameOver
	g.Step(tap)
	if g.State() != StatePlaying {
		t.Errorf("tap on game over should restart: state=%v", g.State())
	}

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	g.Step(confirm)
	if g.State() != StatePlaying {
		t.Errorf("confirm while playing changed state to %v", g.State())
	}
	g.state = StateGameOver
	g.Step(confirm)
	if g.State() != StatePlaying {
		t.Errorf("confirm on game over should restart: state=%v", g.State())
	}
}

func TestSelectLevel(t *testing.T) {
	g, progress, _ := newTestGame(t, quietSettings())
	progress.watermark = 3

	if g.SelectLevel(4) {
		t.Error("SelectLevel(4) should fail with watermark 3")
	}
	if g.SelectLevel(0) {
		t.Error("SelectLevel(0) should fail")
	}
	g.deaths = 5
	if !g.SelectLevel(3) {
		t.Fatal("SelectLevel(3) should succeed")
	}
	if g.Level() != 3 || g.Deaths() != 0 || len(g.obstacles) != 9 {
		t.Errorf("level=%d deaths=%d obstacles=%d", g.Level(), g.Deaths(), len(g.obstacles))
	}
}

func TestSelectLevelAfterGameOverRefillsLives(t *testing.T) {
	s := quietSettings()
	s.LivesEnabled = true
	g, _, _ := newTestGame(t, s)

	for i := 0; i < 3; i++ {
		g.parkPlayerOnObstacle()
		g.Step(core.NewInputFrame())
	}
	if g.State() != StateGameOver || g.Lives() != 0 {
		t.Fatalf("setup: state=%v lives=%d", g.State(), g.Lives())
	}

	if !g.SelectLevel(1) {
		t.Fatal("SelectLevel(1) failed")
	}
	if g.State() != StatePlaying || g.Lives() != 3 {
		t.Errorf("after SelectLevel: state=%v lives=%d, want playing and 3", g.State(), g.Lives())
	}

	g.parkPlayerOnObstacle()
	g.Step(core.NewInputFrame())
	if g.State() != StatePlaying || g.Lives() != 2 {
		t.Errorf("one death after SelectLevel: state=%v lives=%d, want playing and 2", g.State(), g.Lives())
	}
}

func TestSelectLevelMidRunKeepsLives(t *testing.T) {
	s := quietSettings()
	s.LivesEnabled = true
	g, _, _ := newTestGame(t, s)

	g.parkPlayerOnObstacle()
	g.Step(core.NewInputFrame())
	if !g.SelectLevel(1) || g.Lives() != 2 {
		t.Errorf("lives = %d after mid-run SelectLevel, want 2", g.Lives())
	}
}

func TestResetProgress(t *testing.T) {
	g, progress, _ := newTestGame(t, quietSettings())
	progress.watermark = 6
	g.SelectLevel(6)

	g.ResetProgress()
	if progress.resets != 1 || g.Level() != 1 || g.Watermark() != 1 {
		t.Errorf("resets=%d level=%d watermark=%d", progress.resets, g.Level(), g.Watermark())
	}
}

func TestPersistenceErrorSurfaced(t *testing.T) {
	g, progress, _ := newTestGame(t, quietSettings())
	progress.err = errors.New("disk full")
	g.obstacles = nil
	g.collectibles = nil
	g.player.Pos = core.Vec{X: 730, Y: 290}

	g.Step(core.NewInputFrame())
	if g.Level() != 2 {
		t.Errorf("level = %d, a storage failure must not stop the game", g.Level())
	}
	if err := g.Err(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Err() = %v, want disk full", err)
	}
	if g.Err() != nil {
		t.Error("Err() should clear after read")
	}
}

func TestApplySettings(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	g.obstacles = nil
	g.lives = 1

	s := quietSettings()
	s.PlayerSpeed = 10
	s.LivesEnabled = true
	s.KeyboardEnabled = true
	g.ApplySettings(s)
	if g.Lives() != 3 {
		t.Errorf("enabling lives should refill: lives = %d", g.Lives())
	}

	in := core.NewInputFrame()
	in.Hold(core.KeyD)
	g.Step(in)
	if g.player.Pos.X != 60 {
		t.Errorf("player x = %v, want 60 with speed 10", g.player.Pos.X)
	}

	s.KeyboardEnabled = false
	g.ApplySettings(s)
	g.Step(in)
	if g.player.Pos.X != 60 {
		t.Errorf("keyboard disabled but player moved to %v", g.player.Pos.X)
	}
}

func TestObstacleSpeedMultiplier(t *testing.T) {
	s := quietSettings()
	s.GameSpeed = 2
	s.DifficultyLevel = config.DifficultyExtreme
	g, _, _ := newTestGame(t, s)
	lin := &Linear{Pos: core.Vec{X: 400, Y: 100}, Size: core.Size{W: 10, H: 10}, Vel: core.Vec{X: 1, Y: 0}}
	g.obstacles = []Obstacle{lin}

	g.Step(core.NewInputFrame())
	if want := 400 + 2*1.6; math.Abs(lin.Pos.X-want) > 1e-9 {
		t.Errorf("x = %v, want %v", lin.Pos.X, want)
	}
	if want := 0.016 * 2; g.Elapsed() != want {
		t.Errorf("elapsed = %v, want %v", g.Elapsed(), want)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() uint64 {
		g, progress, _ := newTestGame(t, config.DefaultSettings())
		progress.watermark = 7
		g.SelectLevel(7)
		in := core.NewInputFrame()
		for i := range 300 {
			in.Clear()
			if i%40 < 20 {
				in.Hold(core.KeyDown)
			} else {
				in.Hold(core.KeyRight)
			}
			g.Step(in)
		}
		snap := g.Snapshot()
		return snap.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("hash mismatch: %x vs %x", a, b)
	}
}

func TestTrailLength(t *testing.T) {
	s := quietSettings()
	s.TrailEnabled = true
	g, _, _ := newTestGame(t, s)
	g.obstacles = nil
	for range 25 {
		g.Step(core.NewInputFrame())
	}
	if n := len(g.Snapshot().Trail); n != 10 {
		t.Errorf("trail length = %d, want 10", n)
	}
}

func TestParticlesOnDeath(t *testing.T) {
	s := config.DefaultSettings()
	s.QualityLevel = config.QualityHigh
	g, _, _ := newTestGame(t, s)
	g.parkPlayerOnObstacle()
	g.Step(core.NewInputFrame())

	if n := len(g.Effects().Particles); n < 30 {
		t.Errorf("particles = %d, want at least the death burst of 30", n)
	}
	if g.Effects().Shake != deathShake || g.Effects().Flash != 1 {
		t.Errorf("shake=%v flash=%v after death", g.Effects().Shake, g.Effects().Flash)
	}
}

func TestRender(t *testing.T) {
	g, _, _ := newTestGame(t, quietSettings())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, CollectibleChar) || !strings.ContainsRune(out, GoalChar) {
		t.Error("collectibles or goal not drawn")
	}
	if !strings.Contains(screen.Row(0), "Level: 1/10") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	small := core.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected too-small message")
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(testArena, 82, 24)
	p, ok := vp.ToArena(vp.Inner.X, vp.Inner.Y)
	if !ok {
		t.Fatal("inner corner should map into arena")
	}
	if x, y := vp.Cell(p); x != vp.Inner.X || y != vp.Inner.Y {
		t.Errorf("Cell(ToArena) = (%d, %d), want (%d, %d)", x, y, vp.Inner.X, vp.Inner.Y)
	}
	if _, ok := vp.ToArena(0, 0); ok {
		t.Error("frame cell should not map into arena")
	}
}
