package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/genepool/components"
)

// Age advances life by dt. Returns true if the agent died during this call.
// Exceeding the lifespan is the only cause of death.
func Age(life *components.Life, dt float64) bool {
	if !life.Alive {
		return false
	}
	life.Age += dt
	if life.Age > life.Lifespan {
		life.Alive = false
		return true
	}
	return false
}

// Cooldown decrements the reproduction cooldown, flooring at zero.
func Cooldown(org *components.Organism, dt float64) {
	if org.ReproCooldown > 0 {
		org.ReproCooldown -= dt
		if org.ReproCooldown < 0 {
			org.ReproCooldown = 0
		}
	}
}

// Agent groups the mutable components of one agent for Advance.
type Agent struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Org    *components.Organism
	Life   *components.Life
	Genome *components.Genome
}

// Advance runs one tick for a live agent: wander, move, bound, age, cool down.
// Returns true if the agent died this tick.
func Advance(a Agent, bounds Bounds, moveScale, dt float64, rng *rand.Rand) bool {
	if !a.Life.Alive {
		return false
	}

	Wander(a.Vel, a.Genome.Traits.Speed, moveScale, rng)
	Integrate(a.Pos, *a.Vel, dt)
	bounds.Apply(a.Pos)

	died := Age(a.Life, dt)
	Cooldown(a.Org, dt)
	return died
}
