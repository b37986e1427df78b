package spacedash

import (
	"math"
	"testing"

	"github.com/vovakirdan/space-dash/internal/core"
)

func testFusion(w, h float64) Fusion {
	return Fusion{
		Arena:            core.Size{W: w, H: h},
		GestureDeadzone:  5,
		TouchSensitivity: 0.8,
		TouchDeadzone:    10,
	}
}

func newPlayer(x, y float64) *Player {
	return &Player{Pos: core.Vec{X: x, Y: y}, Size: core.Size{W: 22, H: 22}, Speed: 7}
}

func keys(names ...string) core.KeyTable {
	k := make(core.KeyTable)
	for _, n := range names {
		k[n] = true
	}
	return k
}

func near(a, b core.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestFuseKeyboardMoveRight(t *testing.T) {
	f := testFusion(640, 480)
	got := f.Fuse(newPlayer(45, 300), Intent{Keys: keys(core.KeyRight), KeyboardEnabled: true})
	if got != (core.Vec{X: 52, Y: 300}) {
		t.Errorf("Fuse() = %v, want (52, 300)", got)
	}
}

func TestFuseKeyboard(t *testing.T) {
	tests := []struct {
		name string
		pos  core.Vec
		keys core.KeyTable
		on   bool
		want core.Vec
	}{
		{"up via w", core.Vec{X: 100, Y: 100}, keys(core.KeyW), true, core.Vec{X: 100, Y: 93}},
		{"down arrow", core.Vec{X: 100, Y: 100}, keys(core.KeyDown), true, core.Vec{X: 100, Y: 107}},
		{"left via a", core.Vec{X: 100, Y: 100}, keys(core.KeyA), true, core.Vec{X: 93, Y: 100}},
		{"diagonal not normalized", core.Vec{X: 100, Y: 100}, keys(core.KeyD, core.KeyS), true, core.Vec{X: 107, Y: 107}},
		{"opposite keys cancel", core.Vec{X: 100, Y: 100}, keys(core.KeyA, core.KeyD), true, core.Vec{X: 100, Y: 100}},
		{"w and up count once", core.Vec{X: 100, Y: 100}, keys(core.KeyW, core.KeyUp), true, core.Vec{X: 100, Y: 93}},
		{"keyboard disabled", core.Vec{X: 100, Y: 100}, keys(core.KeyRight), false, core.Vec{X: 100, Y: 100}},
		{"left wall rejects x only", core.Vec{X: 3, Y: 100}, keys(core.KeyA, core.KeyS), true, core.Vec{X: 3, Y: 107}},
		{"right wall rejects x", core.Vec{X: 615, Y: 100}, keys(core.KeyRight), true, core.Vec{X: 615, Y: 100}},
		{"exact right bound accepted", core.Vec{X: 611, Y: 100}, keys(core.KeyRight), true, core.Vec{X: 618, Y: 100}},
		{"top wall to zero accepted", core.Vec{X: 100, Y: 7}, keys(core.KeyUp), true, core.Vec{X: 100, Y: 0}},
	}

	f := testFusion(640, 480)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Fuse(newPlayer(tc.pos.X, tc.pos.Y), Intent{Keys: tc.keys, KeyboardEnabled: tc.on})
			if got != tc.want {
				t.Errorf("Fuse() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFuseGesture(t *testing.T) {
	f := testFusion(800, 600)
	// Player centre is (111, 111).
	tests := []struct {
		name   string
		target core.Target
		sens   float64
		want   core.Vec
	}{
		{"inside deadzone", core.Target{X: 115, Y: 111, Active: true}, 1, core.Vec{X: 100, Y: 100}},
		{"on deadzone edge", core.Target{X: 116, Y: 111, Active: true}, 1, core.Vec{X: 100, Y: 100}},
		{"beyond deadzone", core.Target{X: 211, Y: 111, Active: true}, 1, core.Vec{X: 107, Y: 100}},
		{"higher sensitivity shrinks deadzone", core.Target{X: 115, Y: 111, Active: true}, 2, core.Vec{X: 114, Y: 100}},
		{"zero sensitivity treated as one", core.Target{X: 111, Y: 211, Active: true}, 0, core.Vec{X: 100, Y: 107}},
		{"diagonal unit step", core.Target{X: 211, Y: 211, Active: true}, 1, core.Vec{X: 100 + 7/math.Sqrt2, Y: 100 + 7/math.Sqrt2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			got := f.Fuse(newPlayer(100, 100), Intent{Gesture: &target, GestureSensitivity: tc.sens})
			if !near(got, tc.want) {
				t.Errorf("Fuse() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFuseTouch(t *testing.T) {
	f := testFusion(800, 600)

	inside := core.Target{X: 121, Y: 111, Active: true} // distance 10
	if got := f.Fuse(newPlayer(100, 100), Intent{Touch: &inside}); got != (core.Vec{X: 100, Y: 100}) {
		t.Errorf("touch within deadzone moved player to %v", got)
	}

	far := core.Target{X: 111, Y: 11, Active: true}
	got := f.Fuse(newPlayer(100, 100), Intent{Touch: &far})
	if !near(got, core.Vec{X: 100, Y: 100 - 7*0.8}) {
		t.Errorf("touch step = %v, want y=%v", got, 100-7*0.8)
	}
}

func TestFuseChannelsSum(t *testing.T) {
	f := testFusion(800, 600)
	gesture := core.Target{X: 411, Y: 111, Active: true}
	touch := core.Target{X: 411, Y: 111, Active: true}

	got := f.Fuse(newPlayer(100, 100), Intent{
		Keys:               keys(core.KeyRight),
		KeyboardEnabled:    true,
		Gesture:            &gesture,
		GestureSensitivity: 1,
		Touch:              &touch,
	})
	want := core.Vec{X: 100 + 7 + 7 + 7*0.8, Y: 100}
	if !near(got, want) {
		t.Errorf("Fuse() = %v, want %v", got, want)
	}
}

func TestFuseStaysInBounds(t *testing.T) {
	f := testFusion(640, 480)
	p := newPlayer(50, 300)
	corners := []core.Target{{X: -500, Y: -500}, {X: 2000, Y: -500}, {X: 2000, Y: 2000}, {X: -500, Y: 2000}}

	for _, c := range corners {
		target := c
		for range 300 {
			p.Pos = f.Fuse(p, Intent{
				Keys:               keys(core.KeyUp, core.KeyRight),
				KeyboardEnabled:    true,
				Gesture:            &target,
				GestureSensitivity: 3,
				Touch:              &target,
			})
			if p.Pos.X < 0 || p.Pos.X > 640-22 || p.Pos.Y < 0 || p.Pos.Y > 480-22 {
				t.Fatalf("player left arena: %v", p.Pos)
			}
		}
	}
}
