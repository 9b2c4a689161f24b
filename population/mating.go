package population

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genepool/components"
	"github.com/pthm-cable/genepool/genetics"
	"github.com/pthm-cable/genepool/systems"
)

// liveAgent is the per-tick view of an agent used by the mating scan.
type liveAgent struct {
	entity     ecs.Entity
	id         uint32
	pos        components.Position
	sex        components.Sex
	cooldown   float64
	generation int
	traits     genetics.Traits
}

func (a *liveAgent) mate() systems.Mate {
	return systems.Mate{Pos: a.pos, Sex: a.sex, Cooldown: a.cooldown, Alive: true}
}

// pendingBirth is a child conceived during the scan, created after it.
type pendingBirth struct {
	id   uint32
	spec AgentSpec
}

// collectLive snapshots the live agents ordered by identity.
func (m *Manager) collectLive() {
	m.live = m.live[:0]

	query := m.agentFilter.Query()
	for query.Next() {
		pos, _, _, org, life, genome := query.Get()
		if !life.Alive {
			continue
		}
		m.live = append(m.live, liveAgent{
			entity:     query.Entity(),
			id:         org.ID,
			pos:        *pos,
			sex:        org.Sex,
			cooldown:   org.ReproCooldown,
			generation: org.Generation,
			traits:     genome.Traits,
		})
	}

	slices.SortFunc(m.live, func(a, b liveAgent) int {
		return cmp.Compare(a.id, b.id)
	})
}

// scanMating visits every unordered pair once. An agent that mated is
// consumed for the rest of the scan, so it parents at most one child per tick.
// The scan stops conceiving once the population reaches its cap.
func (m *Manager) scanMating(res *StepResult) {
	n := len(m.live)
	m.consumed = slices.Grow(m.consumed[:0], n)[:n]
	clear(m.consumed)
	m.pending = m.pending[:0]

	for i := 0; i < n; i++ {
		if m.full() {
			return
		}
		if m.consumed[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if m.consumed[j] {
				continue
			}
			a, b := &m.live[i], &m.live[j]
			if !systems.CanMate(a.mate(), b.mate(), m.matingRadius) {
				continue
			}
			if m.fertilityGate && !m.conceives(a, b) {
				continue
			}

			child, err := m.mixer.Combine(a.traits, b.traits)
			if err != nil {
				m.reject(i, j, err, res)
				if m.consumed[i] {
					break
				}
				continue
			}

			m.conceive(a, b, child)
			res.Births = append(res.Births, Birth{
				ChildID:    m.pending[len(m.pending)-1].id,
				ParentA:    a.id,
				ParentB:    b.id,
				Generation: max(a.generation, b.generation) + 1,
				Mutations:  child.Mutations,
			})
			m.consumed[i], m.consumed[j] = true, true
			break
		}
	}
}

// full reports whether the live agents plus queued children reached the cap.
func (m *Manager) full() bool {
	return m.maxPop > 0 && len(m.live)+len(m.pending) >= m.maxPop
}

// conceives rolls the fertility gate for an eligible pair.
func (m *Manager) conceives(a, b *liveAgent) bool {
	p := min((a.traits.Fertility+b.traits.Fertility)/2, 1)
	return m.rng.Float64() < p
}

// conceive queues the child and puts both parents into cooldown.
func (m *Manager) conceive(a, b *liveAgent, child genetics.Offspring) {
	id := m.nextID
	m.nextID++

	sex := components.SexA
	if m.rng.IntN(2) == 1 {
		sex = components.SexB
	}
	mid := systems.Midpoint(a.pos, b.pos)

	m.pending = append(m.pending, pendingBirth{
		id: id,
		spec: AgentSpec{
			Sex:        sex,
			X:          mid.X,
			Y:          mid.Y,
			Lifespan:   m.lifespan.Rand(),
			Generation: max(a.generation, b.generation) + 1,
			Traits:     child.Traits,
		},
	})

	for _, p := range [...]*liveAgent{a, b} {
		p.cooldown = m.refractory
		if org := m.orgMap.Get(p.entity); org != nil {
			org.ReproCooldown = m.refractory
		}
	}
}

// reject discards whichever parent carries a malformed trait set.
func (m *Manager) reject(i, j int, err error, res *StepResult) {
	res.Rejected++
	slog.Warn("discarding agent with malformed traits",
		"parent_a", m.live[i].id,
		"parent_b", m.live[j].id,
		"error", err,
	)

	for _, k := range [...]int{i, j} {
		if verr := m.live[k].traits.Validate(); verr != nil {
			m.discard(m.live[k].entity)
			m.consumed[k] = true
		}
	}
}

// applyBirths creates the queued children.
func (m *Manager) applyBirths() {
	for _, p := range m.pending {
		m.create(p.id, p.spec)
	}
	m.pending = m.pending[:0]
}
