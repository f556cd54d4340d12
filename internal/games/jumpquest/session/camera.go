package session

import "github.com/vovakirdan/jump-quest/internal/core"

// Camera is a horizontal scroll offset in world units.
type Camera struct {
	X float64
}

// Follow centres the view on centerX, clamped so the view never leaves
// the world.
func (c *Camera) Follow(centerX, viewW, worldW float64) {
	maxX := worldW - viewW
	if maxX < 0 {
		maxX = 0
	}
	c.X = core.ClampF(centerX-viewW/2, 0, maxX)
}
