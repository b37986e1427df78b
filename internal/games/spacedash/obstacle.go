// Package spacedash implements the Space Dash level simulation: obstacle
// motion, input fusion, collisions, level generation and the tick loop.
package spacedash

import (
	"math"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Obstacle is a moving hazard. The only implementations are *Linear and
// *Orbital; callers switch on the concrete type to render them.
type Obstacle interface {
	// Bounds returns the obstacle's bounding box in arena pixels.
	Bounds() core.Rect
	// Advance moves the obstacle by one tick scaled by multiplier.
	Advance(multiplier float64, arena core.Size)
	// Clone returns an independent copy.
	Clone() Obstacle

	obstacle()
}

// Linear is an obstacle that travels in a straight line and bounces off arena edges.
type Linear struct {
	Pos   core.Vec
	Size  core.Size
	Vel   core.Vec
	Color core.Color
}

func (*Linear) obstacle() {}

// Bounds returns the current bounding box.
func (l *Linear) Bounds() core.Rect {
	return core.NewRect(l.Pos.X, l.Pos.Y, l.Size.W, l.Size.H)
}

// Advance moves the obstacle by its velocity, then negates the velocity on
// any axis where the box reached an edge. Position is not clamped.
func (l *Linear) Advance(multiplier float64, arena core.Size) {
	l.Pos.X += l.Vel.X * multiplier
	l.Pos.Y += l.Vel.Y * multiplier

	if l.Pos.X <= 0 || l.Pos.X >= arena.W-l.Size.W {
		l.Vel.X = -l.Vel.X
	}
	if l.Pos.Y <= 0 || l.Pos.Y >= arena.H-l.Size.H {
		l.Vel.Y = -l.Vel.Y
	}
}

// Clone returns a copy of the obstacle.
func (l *Linear) Clone() Obstacle {
	c := *l
	return &c
}

// Orbital is an obstacle circling a centre point.
type Orbital struct {
	Center       core.Vec
	Radius       float64
	Angle        float64 // radians
	AngularSpeed float64 // radians per tick at multiplier 1
	Size         core.Size
	Color        core.Color

	pos core.Vec
}

func (*Orbital) obstacle() {}

// Place substitutes def for any zero centre axis and computes the position.
func (o *Orbital) Place(def core.Vec) {
	if o.Center.X == 0 {
		o.Center.X = def.X
	}
	if o.Center.Y == 0 {
		o.Center.Y = def.Y
	}
	o.recompute()
}

func (o *Orbital) recompute() {
	o.pos = core.Vec{
		X: o.Center.X + math.Cos(o.Angle)*o.Radius - o.Size.W/2,
		Y: o.Center.Y + math.Sin(o.Angle)*o.Radius - o.Size.H/2,
	}
}

// Pos returns the top-left corner derived from centre, radius and angle.
func (o *Orbital) Pos() core.Vec {
	return o.pos
}

// Bounds returns the current bounding box.
func (o *Orbital) Bounds() core.Rect {
	return core.NewRect(o.pos.X, o.pos.Y, o.Size.W, o.Size.H)
}

// Advance rotates the obstacle. The angle grows without wrapping.
func (o *Orbital) Advance(multiplier float64, _ core.Size) {
	o.Angle += o.AngularSpeed * multiplier
	o.recompute()
}

// Clone returns a copy of the obstacle.
func (o *Orbital) Clone() Obstacle {
	c := *o
	return &c
}
