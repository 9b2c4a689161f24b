// Package systems contains the per-agent rules of the simulation: movement,
// aging and mating eligibility. Systems only mutate the components handed to them.
package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/genepool/components"
)

// BoundaryPolicy decides what happens to agents leaving the world.
type BoundaryPolicy uint8

const (
	BoundaryClamp BoundaryPolicy = iota // stop at the edge
	BoundaryWrap                        // reappear on the opposite edge
)

func (p BoundaryPolicy) String() string {
	if p == BoundaryWrap {
		return "wrap"
	}
	return "clamp"
}

// ParseBoundary parses "clamp" or "wrap".
func ParseBoundary(v string) (BoundaryPolicy, error) {
	switch v {
	case "clamp":
		return BoundaryClamp, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return 0, fmt.Errorf("unknown boundary policy %q", v)
}

// Bounds represents the simulation bounds and the policy applied at them.
type Bounds struct {
	Width, Height float64
	Policy        BoundaryPolicy
}

// Apply brings pos back inside the world.
func (b Bounds) Apply(pos *components.Position) {
	if b.Policy == BoundaryWrap {
		pos.X = wrap(pos.X, b.Width)
		pos.Y = wrap(pos.Y, b.Height)
		return
	}
	pos.X = clamp(pos.X, 0, b.Width)
	pos.Y = clamp(pos.Y, 0, b.Height)
}

// Contains reports whether pos lies inside the world under this policy.
func (b Bounds) Contains(pos components.Position) bool {
	if b.Policy == BoundaryWrap {
		return pos.X >= 0 && pos.X < b.Width && pos.Y >= 0 && pos.Y < b.Height
	}
	return pos.X >= 0 && pos.X <= b.Width && pos.Y >= 0 && pos.Y <= b.Height
}

// Wander re-draws the velocity uniformly within ±speed*scale/2 on each axis.
// The walk is memoryless; the previous velocity is discarded.
func Wander(vel *components.Velocity, speed, scale float64, rng *rand.Rand) {
	bound := speed * scale
	vel.X = (rng.Float64() - 0.5) * bound
	vel.Y = (rng.Float64() - 0.5) * bound
}

// Integrate moves pos by vel over dt seconds.
func Integrate(pos *components.Position, vel components.Velocity, dt float64) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}
