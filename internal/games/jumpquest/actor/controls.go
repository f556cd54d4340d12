package actor

// Controls is one player's sampled intent for a frame.
type Controls struct {
	Left, Right, Jump bool
}

// Drive applies horizontal intent and integrates one step.
func (pl *Player) Drive(c Controls, dt float64) {
	pl.Move(c.Left, c.Right)
	pl.Update(dt)
}

// Reset places the player at rest and grounded with its top-left at (x, y).
func (pl *Player) Reset(x, y float64) {
	pl.X, pl.Y = x, y
	pl.VX, pl.VY = 0, 0
	pl.OnGround = true
	pl.FacingRight = true
	pl.AnimFrame = 0
	pl.animTimer = 0
}
