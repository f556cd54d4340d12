// Package physics resolves axis-aligned collisions between moving actors
// and static platforms. All functions are pure.
package physics

import "github.com/vovakirdan/jump-quest/internal/core"

// DefaultMargin is the broad-phase distance beyond which platforms are skipped.
const DefaultMargin = 100.0

// Kind classifies how an actor met a platform.
type Kind int

const (
	None     Kind = iota
	Land          // actor came down onto the platform top
	HeadBump      // actor hit the platform underside while rising
	Side          // actor pushed out horizontally
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Land:
		return "land"
	case HeadBump:
		return "head-bump"
	case Side:
		return "side"
	default:
		return "none"
	}
}

// Resolution is the corrected actor position for one actor/platform pair.
type Resolution struct {
	Kind Kind
	X, Y float64
}

// Overlaps reports strict AABB overlap.
func Overlaps(a, b core.Box) bool {
	return a.Intersects(b)
}

// Nearby is the broad-phase test: it reports whether b touches a grown by
// margin on every side. Edges count as touching.
func Nearby(a, b core.Box, margin float64) bool {
	return b.Right() >= a.X-margin &&
		b.X <= a.Right()+margin &&
		b.Bottom() >= a.Y-margin &&
		b.Y <= a.Bottom()+margin
}

// Resolve computes the minimum-penetration correction of actor against
// platform. vy is the actor's vertical velocity; a top contact only lands
// while falling or resting and a bottom contact only bumps while rising.
// Non-overlapping pairs resolve to None.
func Resolve(actor, platform core.Box, vy float64) Resolution {
	if !Overlaps(actor, platform) {
		return Resolution{Kind: None, X: actor.X, Y: actor.Y}
	}

	left := actor.Right() - platform.X
	right := platform.Right() - actor.X
	top := actor.Bottom() - platform.Y
	bottom := platform.Bottom() - actor.Y

	least := min(left, right, top, bottom)

	land := Resolution{Kind: Land, X: actor.X, Y: platform.Y - actor.H}

	switch {
	case least == top && vy >= 0:
		return land
	case least == bottom && vy < 0:
		return Resolution{Kind: HeadBump, X: actor.X, Y: platform.Bottom()}
	case least == left:
		return Resolution{Kind: Side, X: platform.X - actor.W, Y: actor.Y}
	case least == right:
		return Resolution{Kind: Side, X: platform.Right(), Y: actor.Y}
	case top < bottom:
		return land
	default:
		return Resolution{Kind: None, X: actor.X, Y: actor.Y}
	}
}
