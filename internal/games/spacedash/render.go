package spacedash

import (
	"fmt"
	"math"

	"github.com/vovakirdan/space-dash/internal/core"
)

// Glyphs used by the terminal renderer.
const (
	PlayerChar      = '█'
	LinearChar      = '■'
	OrbitalChar     = '●'
	CollectibleChar = '◆'
	GoalChar        = '░'
	TrailChar       = '·'
	ParticleChar    = '*'
)

// Minimum terminal size the arena can be drawn in.
const (
	MinScreenW = 40
	MinScreenH = 15
)

// hudRows is the number of rows above the arena frame.
const hudRows = 1

// Viewport maps arena pixels onto the cells inside the arena frame.
type Viewport struct {
	Inner  core.Area
	Arena  core.Size
	offset core.Vec
}

// NewViewport fits the arena into a screen of w x h cells below the HUD.
func NewViewport(arena core.Size, w, h int) Viewport {
	return Viewport{
		Inner: core.NewArea(1, hudRows+1, core.Max(1, w-2), core.Max(1, h-hudRows-2)),
		Arena: arena,
	}
}

func (v Viewport) sx() float64 { return float64(v.Inner.W) / v.Arena.W }
func (v Viewport) sy() float64 { return float64(v.Inner.H) / v.Arena.H }

// CellArea converts an arena rectangle into the cells it covers, at least one.
func (v Viewport) CellArea(r core.Rect) core.Area {
	r.X += v.offset.X
	r.Y += v.offset.Y
	x0 := int(math.Floor(r.X * v.sx()))
	y0 := int(math.Floor(r.Y * v.sy()))
	x1 := int(math.Ceil(r.Right() * v.sx()))
	y1 := int(math.Ceil(r.Bottom() * v.sy()))
	return core.NewArea(
		v.Inner.X+x0,
		v.Inner.Y+y0,
		core.Max(1, x1-x0),
		core.Max(1, y1-y0),
	)
}

// Cell converts an arena point into a screen cell.
func (v Viewport) Cell(p core.Vec) (int, int) {
	return v.Inner.X + int((p.X+v.offset.X)*v.sx()), v.Inner.Y + int((p.Y+v.offset.Y)*v.sy())
}

// ToArena converts a screen cell to the arena point at the cell's centre.
// ok is false when the cell is outside the arena frame.
func (v Viewport) ToArena(x, y int) (core.Vec, bool) {
	if x < v.Inner.X || x >= v.Inner.Right() || y < v.Inner.Y || y >= v.Inner.Bottom() {
		return core.Vec{}, false
	}
	return core.Vec{
		X: (float64(x-v.Inner.X) + 0.5) / v.sx(),
		Y: (float64(y-v.Inner.Y) + 0.5) / v.sy(),
	}, true
}

// Render draws the current state onto the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	snap := g.Snapshot()
	vp := NewViewport(g.arena, dst.Width(), dst.Height())
	if g.settings.ScreenShakeEnabled {
		vp.offset = g.effects.ShakeOffset()
	}

	g.renderHUD(dst, &snap)

	frame := core.NewArea(0, hudRows, dst.Width(), dst.Height()-hudRows)
	frameColor := core.ColorGray
	if g.effects.Flash > 0.3 {
		frameColor = core.ColorBrightRed
	}
	dst.DrawBox(frame, frameColor)

	dst.DrawRect(vp.CellArea(snap.Goal), GoalChar, core.ColorBrightYellow)

	for _, p := range snap.Trail {
		x, y := vp.Cell(p)
		dst.SetColor(x, y, TrailChar, core.ColorGreen)
	}

	if g.settings.ParticlesEnabled {
		for _, p := range g.effects.Particles {
			x, y := vp.Cell(p.Pos)
			dst.SetColor(x, y, ParticleChar, p.Color)
		}
	}

	for _, c := range snap.Collectibles {
		if c.Collected {
			continue
		}
		dst.DrawRect(vp.CellArea(c.Rect), CollectibleChar, c.Color)
	}

	for _, o := range snap.Obstacles {
		glyph := LinearChar
		color := o.Color
		if o.Kind == KindOrbital {
			glyph = OrbitalChar
			color = core.ColorMagenta
		}
		dst.DrawRect(vp.CellArea(o.Rect), glyph, color)
	}

	dst.DrawRect(vp.CellArea(snap.Player), PlayerChar, core.ColorBrightGreen)

	g.renderOverlay(dst, &snap)
}

// renderHUD draws level, deaths, lives and time on the top row.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	left := fmt.Sprintf("Level: %d/%d", snap.Level, g.cfg.Gameplay.MaxLevel)
	dst.DrawText(1, 0, left)

	collected := 0
	for _, c := range snap.Collectibles {
		if c.Collected {
			collected++
		}
	}
	mid := fmt.Sprintf("Items: %d/%d  Deaths: %d", collected, len(snap.Collectibles), snap.Deaths)
	if snap.LivesMode {
		mid += fmt.Sprintf("  Lives: %d", snap.Lives)
	}
	dst.DrawTextCentered(0, mid, core.ColorDefault)

	right := fmt.Sprintf("Time: %.1fs", snap.Elapsed)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

// renderOverlay draws state messages and the current banner.
func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	cy := dst.Height() / 2
	switch snap.State {
	case StatePaused:
		dst.DrawTextCentered(cy, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(cy+1, " P to resume, L for levels ", core.ColorGray)
	case StateGameOver:
		dst.DrawTextCentered(cy, " GAME OVER ", core.ColorBrightRed)
		dst.DrawTextCentered(cy+1, " Space or R to restart ", core.ColorGray)
	case StateVictory:
		dst.DrawTextCentered(cy, " ALL MISSIONS COMPLETE ", core.ColorBrightGreen)
		dst.DrawTextCentered(cy+1, " R to replay, L for levels ", core.ColorGray)
	}

	if b := g.effects.Banner; b != nil && b.Alpha > 0.05 {
		color := core.ColorBrightYellow
		if b.Alpha < 0.4 {
			color = core.ColorGray
		}
		dst.DrawTextCentered(dst.Height()-2, " "+b.Text+" ", color)
	}
}
