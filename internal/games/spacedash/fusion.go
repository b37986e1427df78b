package spacedash

import "github.com/vovakirdan/space-dash/internal/core"

// Fusion merges the keyboard, gesture and touch channels into one player move.
type Fusion struct {
	Arena            core.Size
	GestureDeadzone  float64 // divided by the gesture sensitivity
	TouchSensitivity float64
	TouchDeadzone    float64
}

// Intent is the per-tick input the fusion unit consumes.
type Intent struct {
	Keys               core.KeyTable
	KeyboardEnabled    bool
	Gesture            *core.Target
	GestureSensitivity float64
	Touch              *core.Target
}

// Fuse returns the player's next position. The three contributions are
// summed; on each axis the sum is accepted only if it keeps the box inside
// the arena, otherwise that axis keeps its old coordinate.
func (f Fusion) Fuse(p *Player, in Intent) core.Vec {
	next := p.Pos

	if in.KeyboardEnabled {
		if in.Keys.Pressed(core.KeyW, core.KeyUp) {
			next.Y -= p.Speed
		}
		if in.Keys.Pressed(core.KeyS, core.KeyDown) {
			next.Y += p.Speed
		}
		if in.Keys.Pressed(core.KeyA, core.KeyLeft) {
			next.X -= p.Speed
		}
		if in.Keys.Pressed(core.KeyD, core.KeyRight) {
			next.X += p.Speed
		}
	}

	center := p.Bounds().Center()

	if in.Gesture != nil {
		sens := in.GestureSensitivity
		if sens <= 0 {
			sens = 1
		}
		next = next.Add(steer(center, in.Gesture.Point(), p.Speed*sens, f.GestureDeadzone/sens))
	}

	if in.Touch != nil {
		next = next.Add(steer(center, in.Touch.Point(), p.Speed*f.TouchSensitivity, f.TouchDeadzone))
	}

	out := p.Pos
	if next.X >= 0 && next.X <= f.Arena.W-p.Size.W {
		out.X = next.X
	}
	if next.Y >= 0 && next.Y <= f.Arena.H-p.Size.H {
		out.Y = next.Y
	}
	return out
}

// steer returns a step of length step from 'from' toward 'to', or zero when
// the target is within deadzone.
func steer(from, to core.Vec, step, deadzone float64) core.Vec {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= deadzone {
		return core.Vec{}
	}
	return d.Scale(step / dist)
}
