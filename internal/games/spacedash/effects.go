package spacedash

import (
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Visual effect tuning.
const (
	deathShake     = 15
	shakeDecay     = 0.9
	flashDecay     = 0.95
	particleFade   = 0.02
	particleShrink = 0.98
	ambientChance  = 0.3
	collectBurst   = 15
	deathBurst     = 30
	bannerSeconds  = 3
)

// Particle is a short-lived decorative dot.
type Particle struct {
	Pos   core.Vec
	Vel   core.Vec
	Size  float64
	Life  float64 // 1 when spawned, removed at 0
	Color core.Color
}

// Banner is a timed notification that fades out.
type Banner struct {
	Text  string
	Alpha float32

	fade *gween.Tween
}

// Effects holds decorative state. It draws from its own random source so
// that effects never perturb level generation.
type Effects struct {
	Shake     float64
	Flash     float64
	Particles []Particle
	Banner    *Banner

	rng *rand.Rand
}

func newEffects(seed int64) *Effects {
	return &Effects{
		rng: rand.New(rand.NewSource(seed ^ 0x5eed)), //#nosec G404 -- decorative randomness
	}
}

// decay runs once per unpaused tick before the player moves.
func (e *Effects) decay() {
	e.Shake *= shakeDecay
	e.Flash *= flashDecay
}

// tickBanner advances the notification fade by dt seconds.
func (e *Effects) tickBanner(dt float64) {
	if e.Banner == nil {
		return
	}
	alpha, done := e.Banner.fade.Update(float32(dt))
	e.Banner.Alpha = alpha
	if done {
		e.Banner = nil
	}
}

// notify replaces the current banner.
func (e *Effects) notify(text string) {
	e.Banner = &Banner{
		Text:  text,
		Alpha: 1,
		fade:  gween.New(1, 0, bannerSeconds, ease.InQuad),
	}
}

// updateParticles moves and fades particles, then maybe spawns a trail dot at origin.
func (e *Effects) updateParticles(origin core.Vec) {
	alive := e.Particles[:0]
	for _, p := range e.Particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life -= particleFade
		p.Size *= particleShrink
		if p.Life > 0 && p.Size > 0.5 {
			alive = append(alive, p)
		}
	}
	e.Particles = alive

	if e.rng.Float64() < ambientChance {
		e.spawn(origin, 1, 2, 2, 4, core.ColorBrightGreen)
	}
}

// burst spawns floor(base*quality) particles at origin.
func (e *Effects) burst(origin core.Vec, base int, quality float64, spread, minSize, sizeJitter float64, c core.Color) {
	e.spawn(origin, int(float64(base)*quality), spread, minSize, sizeJitter, c)
}

func (e *Effects) spawn(origin core.Vec, n int, spread, minSize, sizeJitter float64, c core.Color) {
	for range n {
		e.Particles = append(e.Particles, Particle{
			Pos:   origin,
			Vel:   core.Vec{X: (e.rng.Float64() - 0.5) * spread, Y: (e.rng.Float64() - 0.5) * spread},
			Size:  e.rng.Float64()*sizeJitter + minSize,
			Life:  1,
			Color: c,
		})
	}
}

// ShakeOffset returns a random displacement in arena pixels for the current shake.
func (e *Effects) ShakeOffset() core.Vec {
	if e.Shake < 0.5 {
		return core.Vec{}
	}
	return core.Vec{
		X: (e.rng.Float64() - 0.5) * e.Shake,
		Y: (e.rng.Float64() - 0.5) * e.Shake,
	}
}

func (e *Effects) clear() {
	e.Particles = e.Particles[:0]
	e.Shake = 0
	e.Flash = 0
}
