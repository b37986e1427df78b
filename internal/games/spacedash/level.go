package spacedash

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/space-dash/internal/core"
)

// FixedLevels is the number of hand-authored levels; later levels are procedural.
const FixedLevels = 5

const (
	obstacleColor    = core.ColorBrightRed
	collectibleColor = core.ColorBrightBlue
)

// ramp is the value Base + Step*i for the i-th member of a formation.
type ramp struct {
	Base, Step float64
}

func (r ramp) at(i int) float64 {
	return r.Base + float64(i)*r.Step
}

// alternate returns 1 for even i and -1 for odd i.
func alternate(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// formation appends one group of entities to a layout.
type formation interface {
	place(l *Layout)
}

// linearRow is a row of bouncing obstacles.
type linearRow struct {
	Count     int
	X, Y      ramp
	Wave      float64 // adds Wave*sin(0.8*i) to Y
	Size      float64
	VX, VY    ramp
	Alternate bool // flips velocity sign on odd members
}

func (f linearRow) place(l *Layout) {
	for i := range f.Count {
		y := f.Y.at(i)
		if f.Wave != 0 {
			y += math.Sin(float64(i)*0.8) * f.Wave
		}
		vel := core.Vec{X: f.VX.at(i), Y: f.VY.at(i)}
		if f.Alternate {
			vel = vel.Scale(alternate(i))
		}
		l.Obstacles = append(l.Obstacles, &Linear{
			Pos:   core.Vec{X: f.X.at(i), Y: y},
			Size:  core.Size{W: f.Size, H: f.Size},
			Vel:   vel,
			Color: obstacleColor,
		})
	}
}

// orbitRing is a ring of obstacles orbiting the default centre.
// Member i starts at angle Phase + i*pi/Div.
type orbitRing struct {
	Count  int
	Phase  float64
	Div    float64
	Radius ramp
	Speed  ramp
	Size   float64
}

func (f orbitRing) place(l *Layout) {
	for i := range f.Count {
		l.Obstacles = append(l.Obstacles, &Orbital{
			Angle:        float64(i)*math.Pi/f.Div + f.Phase,
			Radius:       f.Radius.at(i),
			AngularSpeed: f.Speed.at(i),
			Size:         core.Size{W: f.Size, H: f.Size},
			Color:        obstacleColor,
		})
	}
}

// collectibleRow is a run of collectibles; odd members are shifted down by Stagger.
type collectibleRow struct {
	Count   int
	X, Y    ramp
	Stagger float64
	Size    float64
}

func (f collectibleRow) place(l *Layout) {
	for i := range f.Count {
		y := f.Y.at(i) + float64(i%2)*f.Stagger
		l.Collectibles = append(l.Collectibles, Collectible{
			Rect:  core.NewRect(f.X.at(i), y, f.Size, f.Size),
			Color: collectibleColor,
		})
	}
}

// fixedLevels holds the formations of levels 1 to FixedLevels, in spawn order.
var fixedLevels = [FixedLevels][]formation{
	{
		linearRow{Count: 5, X: ramp{180, 120}, Y: ramp{150, 60}, Size: 18, VX: ramp{3.5, 0.7}, VY: ramp{2, 0.5}},
		collectibleRow{Count: 2, X: ramp{350, 150}, Y: ramp{250, 100}, Size: 9},
	},
	{
		linearRow{Count: 7, X: ramp{140, 90}, Y: ramp{120, 0}, Wave: 80, Size: 16, VX: ramp{4.5, 0}, VY: ramp{3, 0}, Alternate: true},
		orbitRing{Count: 2, Div: 1, Radius: ramp{60, 30}, Speed: ramp{0.08, 0.02}, Size: 14},
		collectibleRow{Count: 3, X: ramp{280, 160}, Y: ramp{200, 80}, Size: 8},
	},
	{
		orbitRing{Count: 6, Div: 3, Radius: ramp{80, 25}, Speed: ramp{0.07, 0.015}, Size: 17},
		linearRow{Count: 3, X: ramp{150, 200}, Y: ramp{100, 150}, Size: 16, VX: ramp{5, 0}, VY: ramp{3.5, 0}, Alternate: true},
		collectibleRow{Count: 2, X: ramp{295, 155}, Y: ramp{295, -95}, Size: 8},
	},
	{
		orbitRing{Count: 8, Div: 4, Radius: ramp{100, 15}, Speed: ramp{0.05, 0.01}, Size: 15},
		linearRow{Count: 4, X: ramp{100, 150}, Y: ramp{100, 100}, Size: 20, VX: ramp{4, 0}, VY: ramp{-3, 0}, Alternate: true},
		collectibleRow{Count: 3, X: ramp{200, 200}, Y: ramp{150, 100}, Size: 8},
	},
	{
		orbitRing{Count: 6, Div: 3, Radius: ramp{80, 20}, Speed: ramp{0.06, 0.01}, Size: 14},
		orbitRing{Count: 6, Phase: math.Pi, Div: 3, Radius: ramp{80, 20}, Speed: ramp{-0.06, -0.01}, Size: 14},
		linearRow{Count: 3, X: ramp{350, 50}, Y: ramp{250, 50}, Size: 18, VX: ramp{3, 0}, VY: ramp{-4, 0}, Alternate: true},
		collectibleRow{Count: 4, X: ramp{150, 150}, Y: ramp{200, 0}, Stagger: 200, Size: 7},
	},
}

// Generator produces level layouts.
type Generator struct {
	arena  core.Size
	center core.Vec
	rng    *rand.Rand
	fixed  map[int]Layout
}

// NewGenerator creates a generator for an arena. Orbital obstacles circle
// center; seed drives the procedural levels only.
func NewGenerator(arena core.Size, center core.Vec, seed int64) *Generator {
	return &Generator{
		arena:  arena,
		center: center,
		rng:    rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness
		fixed:  make(map[int]Layout, FixedLevels),
	}
}

// Generate builds the layout for a level. Levels below 1 are treated as 1.
// Fixed levels are built once and handed out as independent copies.
func (g *Generator) Generate(level int) Layout {
	if level < 1 {
		level = 1
	}

	if level <= FixedLevels {
		if l, ok := g.fixed[level]; ok {
			return l.Clone()
		}
	}

	var l Layout
	if level <= FixedLevels {
		for _, f := range fixedLevels[level-1] {
			f.place(&l)
		}
	} else {
		g.procedural(level, &l)
	}

	for _, o := range l.Obstacles {
		if orb, ok := o.(*Orbital); ok {
			orb.Place(g.center)
		}
	}
	if level <= FixedLevels {
		g.fixed[level] = l
		return l.Clone()
	}
	return l
}

// procedural fills a random layout whose density and speed grow with level.
func (g *Generator) procedural(level int, l *Layout) {
	r := g.rng.Float64
	mult := 1 + float64(level-6)*0.3
	half := (8 + 2*level) / 2

	for range half {
		w, h := 15+r()*5, 15+r()*5
		l.Obstacles = append(l.Obstacles, &Orbital{
			Size:         core.Size{W: w, H: h},
			Angle:        r() * math.Pi * 2,
			Radius:       80 + r()*100,
			AngularSpeed: (0.05 + r()*0.05) * mult,
			Color:        obstacleColor,
		})
	}

	for range half {
		x := r()*(g.arena.W-120) + 60
		y := r()*(g.arena.H-120) + 60
		w, h := 14+r()*8, 14+r()*8
		vx := (r() - 0.5) * 8 * mult
		vy := (r() - 0.5) * 8 * mult
		l.Obstacles = append(l.Obstacles, &Linear{
			Pos:   core.Vec{X: x, Y: y},
			Size:  core.Size{W: w, H: h},
			Vel:   core.Vec{X: vx, Y: vy},
			Color: obstacleColor,
		})
	}

	count := min(5, level/2+2)
	size := float64(max(6, 9-level/4))
	for range count {
		x := r()*(g.arena.W-250) + 125
		y := r()*(g.arena.H-150) + 75
		l.Collectibles = append(l.Collectibles, Collectible{
			Rect:  core.NewRect(x, y, size, size),
			Color: collectibleColor,
		})
	}
}
