package population

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/genepool/components"
	"github.com/pthm-cable/genepool/genetics"
)

// AgentView is a read-only copy of one live agent, taken after a tick.
type AgentView struct {
	ID         uint32
	Sex        components.Sex
	X, Y       float64
	Radius     float64
	Color      genetics.Color
	Generation int
	Age        float64
	Lifespan   float64
	Cooldown   float64
	Speed      float64
	Fertility  float64
}

// Snapshot copies every live agent, ordered by identity.
// An empty population yields an empty slice.
func (m *Manager) Snapshot() []AgentView {
	return m.AppendSnapshot(nil)
}

// AppendSnapshot appends the live agents to dst and returns it, so callers
// can reuse a buffer across ticks.
func (m *Manager) AppendSnapshot(dst []AgentView) []AgentView {
	start := len(dst)

	query := m.agentFilter.Query()
	for query.Next() {
		pos, _, body, org, life, genome := query.Get()
		if !life.Alive {
			continue
		}
		dst = append(dst, view(pos, body, org, life, genome))
	}

	slices.SortFunc(dst[start:], func(a, b AgentView) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return dst
}

// Agent returns the view of one agent by identity.
func (m *Manager) Agent(id uint32) (AgentView, bool) {
	entity, ok := m.index[id]
	if !ok || !m.world.Alive(entity) {
		return AgentView{}, false
	}
	return view(
		m.posMap.Get(entity),
		m.bodyMap.Get(entity),
		m.orgMap.Get(entity),
		m.lifeMap.Get(entity),
		m.genomeMap.Get(entity),
	), true
}

func view(pos *components.Position, body *components.Body, org *components.Organism, life *components.Life, genome *components.Genome) AgentView {
	return AgentView{
		ID:         org.ID,
		Sex:        org.Sex,
		X:          pos.X,
		Y:          pos.Y,
		Radius:     body.Radius,
		Color:      genome.Traits.Color,
		Generation: org.Generation,
		Age:        life.Age,
		Lifespan:   life.Lifespan,
		Cooldown:   org.ReproCooldown,
		Speed:      genome.Traits.Speed,
		Fertility:  genome.Traits.Fertility,
	}
}
