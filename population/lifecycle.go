package population

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genepool/components"
	"github.com/pthm-cable/genepool/genetics"
)

// AgentSpec describes an agent to place. Zero fields take defaults:
// Lifespan is drawn, Generation becomes 1 and Traits are drawn at random
// with the sex's display color.
type AgentSpec struct {
	Sex        components.Sex
	X, Y       float64
	Age        float64
	Lifespan   float64
	Generation int
	Cooldown   float64
	Traits     genetics.Traits
}

// Populate creates the configured seed population: the explicit seed list if
// one is configured, otherwise Initial agents at random.
func (m *Manager) Populate() {
	if len(m.seeds) == 0 {
		m.Seed(m.initial)
		return
	}
	for _, s := range m.seeds {
		sex, err := components.ParseSex(s.Sex)
		if err != nil {
			// Config validation rejects these; skip rather than halt
			slog.Warn("skipping seed agent", "error", err)
			continue
		}
		m.Spawn(AgentSpec{Sex: sex, X: s.X, Y: s.Y})
	}
}

// Seed creates n generation-1 agents at random positions with alternating
// sexes, starting with A.
func (m *Manager) Seed(n int) {
	for i := 0; i < n; i++ {
		sex := components.SexA
		if i%2 == 1 {
			sex = components.SexB
		}
		m.Spawn(AgentSpec{
			Sex: sex,
			X:   m.rng.Float64() * m.bounds.Width,
			Y:   m.rng.Float64() * m.bounds.Height,
		})
	}
}

// Spawn places one agent and returns its identity.
func (m *Manager) Spawn(spec AgentSpec) uint32 {
	id := m.nextID
	m.nextID++
	m.create(id, spec)
	return id
}

// create adds the entity for an already-assigned identity.
func (m *Manager) create(id uint32, spec AgentSpec) ecs.Entity {
	if spec.Lifespan <= 0 {
		spec.Lifespan = m.lifespan.Rand()
	}
	if spec.Generation < 1 {
		spec.Generation = 1
	}
	if spec.Traits == (genetics.Traits{}) {
		spec.Traits = genetics.Random(m.rng, m.traitBounds, spec.Sex.Color())
	}

	pos := components.Position{X: spec.X, Y: spec.Y}
	m.bounds.Apply(&pos)

	vel := components.Velocity{}
	body := components.Body{Radius: m.bodyRadius}
	org := components.Organism{
		ID:            id,
		Sex:           spec.Sex,
		Generation:    spec.Generation,
		ReproCooldown: spec.Cooldown,
	}
	life := components.Life{Age: spec.Age, Lifespan: spec.Lifespan, Alive: true}
	genome := components.Genome{Traits: spec.Traits}

	entity := m.agentMapper.NewEntity(&pos, &vel, &body, &org, &life, &genome)
	m.index[id] = entity
	return entity
}

// pruneDead removes every agent whose Alive flag is false.
func (m *Manager) pruneDead(res *StepResult) {
	// First pass: collect dead entities (must complete before modifying)
	type deadInfo struct {
		entity ecs.Entity
		death  Death
	}
	var toRemove []deadInfo

	query := m.agentFilter.Query()
	for query.Next() {
		_, _, _, org, life, _ := query.Get()
		if life.Alive {
			continue
		}
		toRemove = append(toRemove, deadInfo{
			entity: query.Entity(),
			death: Death{
				ID:         org.ID,
				Age:        life.Age,
				Lifespan:   life.Lifespan,
				Generation: org.Generation,
			},
		})
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		delete(m.index, dead.death.ID)
		m.world.RemoveEntity(dead.entity)
		res.Deaths = append(res.Deaths, dead.death)
	}
}

// discard marks an agent dead so the next prune removes it.
func (m *Manager) discard(entity ecs.Entity) {
	if life := m.lifeMap.Get(entity); life != nil {
		life.Alive = false
	}
}
