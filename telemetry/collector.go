package telemetry

import "github.com/pthm-cable/genepool/population"

// windowEpsilon absorbs float drift when summing many dt steps.
const windowEpsilon = 1e-9

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in simulated seconds, so a speed multiplier changes
// how many ticks a window spans, not how much simulated time it covers.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartTime float64

	// Event counters for current window
	births    int
	deaths    int
	mutations int
	rejected  int

	// Per-death values for current window
	deathAges      []float64
	deathLifespans []float64
	deathChildren  []float64

	// Scratch for trait distributions at flush
	speeds []float64
	ferts  []float64
}

// NewCollector creates a collector whose windows last windowDurationSec
// simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordStep folds one tick's result into the current window.
// children returns the lifetime child count for a dead agent.
func (c *Collector) RecordStep(res population.StepResult, children func(id uint32) int) {
	c.births += len(res.Births)
	c.rejected += res.Rejected
	for _, b := range res.Births {
		c.mutations += b.Mutations
	}
	for _, d := range res.Deaths {
		c.deaths++
		c.deathAges = append(c.deathAges, d.Age)
		c.deathLifespans = append(c.deathLifespans, d.Lifespan)
		if children != nil {
			c.deathChildren = append(c.deathChildren, float64(children(d.ID)))
		}
	}
}

// ShouldFlush returns true once the window has covered its simulated duration.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec-windowEpsilon
}

// Flush produces a WindowStats ending at sample and resets counters for the
// next window. agents are the live agents.
func (c *Collector) Flush(sample Sample, agents []population.AgentView) WindowStats {
	c.speeds = c.speeds[:0]
	c.ferts = c.ferts[:0]
	for _, a := range agents {
		c.speeds = append(c.speeds, a.Speed)
		c.ferts = append(c.ferts, a.Fertility)
	}

	meanAge, stdAge := MeanStd(c.deathAges)
	speedMean, speedStd := MeanStd(c.speeds)
	fertMean, fertStd := MeanStd(c.ferts)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   sample.Tick,
		SimTimeSec:      sample.SimTime,

		Population:    sample.Population,
		AvgGeneration: sample.AvgGeneration,
		MaxGeneration: sample.MaxGeneration,

		Births:    c.births,
		Deaths:    c.deaths,
		Mutations: c.mutations,
		Rejected:  c.rejected,

		MeanAgeAtDeath:    meanAge,
		StdAgeAtDeath:     stdAge,
		MeanChildren:      Mean(c.deathChildren),
		MeanDeathLifespan: Mean(c.deathLifespans),

		SpeedMean:     speedMean,
		SpeedStd:      speedStd,
		FertilityMean: fertMean,
		FertilityStd:  fertStd,
	}

	// Reset for next window
	c.windowStartTick = sample.Tick
	c.windowStartTime = sample.SimTime
	c.births = 0
	c.deaths = 0
	c.mutations = 0
	c.rejected = 0
	c.deathAges = c.deathAges[:0]
	c.deathLifespans = c.deathLifespans[:0]
	c.deathChildren = c.deathChildren[:0]

	return stats
}
