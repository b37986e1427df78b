package spacedash

import "github.com/vovakirdan/space-dash/internal/core"

// trailLength is how many centre points the player trail keeps.
const trailLength = 10

// Player is the steerable sprite.
type Player struct {
	Pos   core.Vec
	Size  core.Size
	Speed float64
	Trail []core.Vec // oldest first
}

// Bounds returns the player's bounding box.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.Pos.X, p.Pos.Y, p.Size.W, p.Size.H)
}

func (p *Player) pushTrail() {
	p.Trail = append(p.Trail, p.Bounds().Center())
	if len(p.Trail) > trailLength {
		p.Trail = p.Trail[len(p.Trail)-trailLength:]
	}
}

// Collectible is an item the player must pick up before the goal counts.
type Collectible struct {
	Rect      core.Rect
	Collected bool
	Color     core.Color
}

// Layout is the set of entities a level starts with.
type Layout struct {
	Obstacles    []Obstacle
	Collectibles []Collectible
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	c := Layout{
		Obstacles:    make([]Obstacle, len(l.Obstacles)),
		Collectibles: make([]Collectible, len(l.Collectibles)),
	}
	for i, o := range l.Obstacles {
		c.Obstacles[i] = o.Clone()
	}
	copy(c.Collectibles, l.Collectibles)
	return c
}

// GoalRect returns the goal zone for an arena.
func GoalRect(arena core.Size) core.Rect {
	return core.NewRect(arena.W-80, arena.H/2-40, 60, 80)
}

// AllCollected reports whether every collectible has been picked up.
// A level without collectibles counts as fully collected.
func AllCollected(items []Collectible) bool {
	for _, c := range items {
		if !c.Collected {
			return false
		}
	}
	return true
}
