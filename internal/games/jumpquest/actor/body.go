package actor

import "github.com/vovakirdan/jump-quest/internal/core"

// Body is the kinematic state shared by players and enemies.
type Body struct {
	X, Y        float64
	W, H        float64
	VX, VY      float64
	OnGround    bool
	FacingRight bool
}

// Box returns the body's bounding box.
func (b Body) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// clampFall caps downward speed.
func (b *Body) clampFall(terminal float64) {
	if b.VY > terminal {
		b.VY = terminal
	}
}

// ClampX keeps the body inside [0, width], stopping horizontal motion at a wall.
func (b *Body) ClampX(width float64) {
	if b.X < 0 {
		b.X = 0
		b.VX = 0
	}
	if b.X+b.W > width {
		b.X = width - b.W
		b.VX = 0
	}
}
