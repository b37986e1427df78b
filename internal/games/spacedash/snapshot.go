package spacedash

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/space-dash/internal/core"
)

// ObstacleKind distinguishes obstacle variants in a snapshot.
type ObstacleKind uint8

const (
	KindLinear ObstacleKind = iota
	KindOrbital
)

// ObstacleView is the read-only state of one obstacle.
type ObstacleView struct {
	Kind  ObstacleKind
	Rect  core.Rect
	Color core.Color
}

// Snapshot is a read-only copy of everything a renderer or test needs.
type Snapshot struct {
	Tick      uint64
	State     State
	Level     int
	Deaths    int
	Lives     int
	LivesMode bool
	Elapsed   float64

	Player       core.Rect
	Trail        []core.Vec
	Obstacles    []ObstacleView
	Collectibles []Collectible
	Goal         core.Rect
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	obs := make([]ObstacleView, len(g.obstacles))
	for i, o := range g.obstacles {
		v := ObstacleView{Rect: o.Bounds()}
		switch o := o.(type) {
		case *Linear:
			v.Kind, v.Color = KindLinear, o.Color
		case *Orbital:
			v.Kind, v.Color = KindOrbital, o.Color
		}
		obs[i] = v
	}

	items := make([]Collectible, len(g.collectibles))
	copy(items, g.collectibles)

	trail := make([]core.Vec, len(g.player.Trail))
	copy(trail, g.player.Trail)

	return Snapshot{
		Tick:         g.tickCount,
		State:        g.state,
		Level:        g.level,
		Deaths:       g.deaths,
		Lives:        g.lives,
		LivesMode:    g.settings.LivesEnabled,
		Elapsed:      g.elapsed,
		Player:       g.player.Bounds(),
		Trail:        trail,
		Obstacles:    obs,
		Collectibles: items,
		Goal:         g.goal,
	}
}

// Hash returns an FNV-1a hash of the simulation-relevant fields for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck
	}
	putF := func(f float64) { putU(math.Float64bits(f)) }
	putR := func(r core.Rect) {
		putF(r.X)
		putF(r.Y)
		putF(r.W)
		putF(r.H)
	}

	putU(snap.Tick)
	putU(uint64(snap.State))
	putU(uint64(snap.Level))  //#nosec G115 -- hash input
	putU(uint64(snap.Deaths)) //#nosec G115 -- hash input
	putU(uint64(snap.Lives))  //#nosec G115 -- hash input
	putR(snap.Player)
	for _, o := range snap.Obstacles {
		putU(uint64(o.Kind))
		putR(o.Rect)
	}
	for _, c := range snap.Collectibles {
		putR(c.Rect)
		if c.Collected {
			putU(1)
		} else {
			putU(0)
		}
	}
	return h.Sum64()
}
