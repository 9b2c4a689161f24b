package systems

import "github.com/pthm-cable/genepool/components"

// Mate is the view of an agent the eligibility predicate needs.
type Mate struct {
	Pos      components.Position
	Sex      components.Sex
	Cooldown float64
	Alive    bool
}

// CanMate reports whether a and b may reproduce: both alive, opposite sexes,
// closer than radius and both out of cooldown.
func CanMate(a, b Mate, radius float64) bool {
	if !a.Alive || !b.Alive {
		return false
	}
	if a.Sex == b.Sex {
		return false
	}
	if a.Cooldown > 0 || b.Cooldown > 0 {
		return false
	}
	return Distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y) < radius
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b components.Position) components.Position {
	return components.Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
