// Package population owns the live agents and advances them tick by tick:
// movement and aging, the pairwise mating scan, births and death pruning.
package population

import (
	"fmt"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/genepool/components"
	"github.com/pthm-cable/genepool/config"
	"github.com/pthm-cable/genepool/genetics"
	"github.com/pthm-cable/genepool/systems"
)

// Birth records one reproduction event.
type Birth struct {
	ChildID    uint32
	ParentA    uint32
	ParentB    uint32
	Generation int
	Mutations  int // numeric traits that mutated in the child
}

// Death records one agent removed by the prune phase.
type Death struct {
	ID         uint32
	Age        float64
	Lifespan   float64
	Generation int
}

// StepResult summarizes what happened during one tick.
type StepResult struct {
	Births   []Birth
	Deaths   []Death
	Rejected int // pairs whose trait sets failed validation
}

// Manager owns the agent collection. Nothing else mutates it.
type Manager struct {
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	agentMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Organism,
		components.Life,
		components.Genome,
	]
	agentFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Organism,
		components.Life,
		components.Genome,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	bodyMap   *ecs.Map1[components.Body]
	orgMap    *ecs.Map1[components.Organism]
	lifeMap   *ecs.Map1[components.Life]
	genomeMap *ecs.Map1[components.Genome]

	// id -> entity for live agents
	index map[uint32]ecs.Entity

	mixer       *genetics.Mixer
	bounds      systems.Bounds
	lifespan    distuv.Uniform
	traitBounds genetics.Bounds

	moveScale     float64
	bodyRadius    float64
	matingRadius  float64
	refractory    float64
	fertilityGate bool
	maxPop        int
	seeds         []config.SeedConfig
	initial       int

	nextID uint32

	// Scratch buffers reused across ticks
	live     []liveAgent
	consumed []bool
	pending  []pendingBirth
}

// New creates an empty population using the given config and random source.
func New(cfg *config.Config, rng *rand.Rand) (*Manager, error) {
	policy, err := systems.ParseBoundary(cfg.World.Boundary)
	if err != nil {
		return nil, fmt.Errorf("creating population: %w", err)
	}

	world := ecs.NewWorld()

	m := &Manager{
		world: world,
		rng:   rng,
		agentMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Organism,
			components.Life,
			components.Genome,
		](world),
		agentFilter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Organism,
			components.Life,
			components.Genome,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		orgMap:    ecs.NewMap1[components.Organism](world),
		lifeMap:   ecs.NewMap1[components.Life](world),
		genomeMap: ecs.NewMap1[components.Genome](world),
		index:     make(map[uint32]ecs.Entity),
		mixer: genetics.NewMixer(genetics.MutationParams{
			Rate:      cfg.Mutation.Rate,
			FactorMin: cfg.Mutation.FactorMin,
			FactorMax: cfg.Mutation.FactorMax,
		}, rng),
		bounds: systems.Bounds{
			Width:  cfg.Derived.WorldW,
			Height: cfg.Derived.WorldH,
			Policy: policy,
		},
		lifespan: distuv.Uniform{Min: cfg.Lifespan.Min, Max: cfg.Lifespan.Max, Src: rng},
		traitBounds: genetics.Bounds{
			SpeedMin:     cfg.Traits.SpeedMin,
			SpeedMax:     cfg.Traits.SpeedMax,
			FertilityMin: cfg.Traits.FertilityMin,
			FertilityMax: cfg.Traits.FertilityMax,
		},
		moveScale:     cfg.Movement.Scale,
		bodyRadius:    cfg.Entity.BodyRadius,
		matingRadius:  cfg.Reproduction.MatingRadius,
		refractory:    cfg.Reproduction.RefractorySec,
		fertilityGate: cfg.Reproduction.FertilityGate,
		maxPop:        cfg.Population.Max,
		seeds:         cfg.Population.Seeds,
		initial:       cfg.Population.Initial,
		nextID:        1,
	}

	return m, nil
}

// Step runs one tick. The phases run strictly in order:
// update, mating scan, birth application, prune.
func (m *Manager) Step(dt float64) StepResult {
	var res StepResult

	// 1. Advance every live agent
	m.updateAgents(dt)

	// 2. Scan all unordered pairs of live agents
	m.collectLive()
	m.scanMating(&res)

	// 3. Children join only after the scan
	m.applyBirths()

	// 4. Remove the dead
	m.pruneDead(&res)

	return res
}

// updateAgents moves, ages and cools down every live agent.
func (m *Manager) updateAgents(dt float64) {
	query := m.agentFilter.Query()
	for query.Next() {
		pos, vel, _, org, life, genome := query.Get()
		if !life.Alive {
			continue
		}
		systems.Advance(systems.Agent{
			Pos:    pos,
			Vel:    vel,
			Org:    org,
			Life:   life,
			Genome: genome,
		}, m.bounds, m.moveScale, dt, m.rng)
	}
}

// Len returns the number of agents in the world, dead or alive.
// After Step it equals the live count.
func (m *Manager) Len() int {
	return len(m.index)
}

// NextID returns the identity the next agent will receive.
func (m *Manager) NextID() uint32 {
	return m.nextID
}

// Bounds returns the world bounds and policy.
func (m *Manager) Bounds() systems.Bounds {
	return m.bounds
}
