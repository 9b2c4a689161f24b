// Package game assembles one simulation run: the population, its clock,
// telemetry and the sinks that observe it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/genepool/clock"
	"github.com/pthm-cable/genepool/config"
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
	"github.com/pthm-cable/genepool/world"
)

// Options configures a run beyond what the config file holds.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // log window stats and bookmarks via slog
	StatsWindowSec float64 // stats window in sim seconds (0 = config value)
	OutputDir      string  // CSV and config output (empty = disabled)
	StepsPerUpdate int     // ticks per UpdateHeadless call

	// OnWindow, if set, receives every flushed stats window.
	OnWindow func(telemetry.WindowStats)
}

// Game holds the complete state of one run. Nothing in it is global.
type Game struct {
	cfg  *config.Config
	seed int64

	pop   *population.Manager
	zones *world.Zones

	// Pacing
	sched *clock.FrameScheduler
	clock *clock.Clock

	// Telemetry
	recorder         *telemetry.Recorder
	collector        *telemetry.Collector
	lifetimes        *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	onWindow         func(telemetry.WindowStats)
	logStats         bool

	// Observers
	renderSinks []RenderSink
	statsSinks  []StatsSink

	// State
	tick           int64
	simTime        float64
	snapshot       []population.AgentView // live agents after the last tick
	stepsPerUpdate int
	closed         bool
}

// NewGame builds a run from cfg and seeds the initial population.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))

	pop, err := population.New(cfg, rng)
	if err != nil {
		return nil, err
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	stepsPerUpdate := max(opts.StepsPerUpdate, 1)

	g := &Game{
		cfg:              cfg,
		seed:             seed,
		pop:              pop,
		sched:            clock.NewFrameScheduler(),
		recorder:         telemetry.NewRecorder(cfg.Telemetry.HistoryCap),
		collector:        telemetry.NewCollector(statsWindow),
		lifetimes:        telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		perfCollector:    telemetry.NewPerfCollector(cfg.Physics.TargetTPS),
		outputManager:    outputManager,
		onWindow:         opts.OnWindow,
		logStats:         opts.LogStats,
		stepsPerUpdate:   stepsPerUpdate,
	}

	g.zones = world.Generate(
		cfg.World.Zones.Cols, cfg.World.Zones.Rows,
		cfg.Derived.WorldW, cfg.Derived.WorldH,
		cfg.World.Zones.Scale, seed,
	)

	g.clock = clock.New(g.sched, clock.Config{
		TargetTPS: cfg.Physics.TargetTPS,
		BaseDT:    cfg.Physics.DT,
		Speed:     cfg.Clock.Speed,
		MinSpeed:  cfg.Clock.MinSpeed,
		MaxSpeed:  cfg.Clock.MaxSpeed,
	}, g.Step)

	// Initial population and the tick-0 sample
	pop.Populate()
	g.snapshot = pop.AppendSnapshot(g.snapshot[:0])
	for _, a := range g.snapshot {
		g.lifetimes.Register(a.ID, 0, a.Generation, 0, 0)
	}
	g.recorder.Record(0, 0, g.snapshot)

	g.clock.Start()

	slog.Debug("game created",
		"seed", seed,
		"population", len(g.snapshot),
		"world_w", cfg.Derived.WorldW,
		"world_h", cfg.Derived.WorldH,
	)

	return g, nil
}

// Close stops the clock, writes the sample history and closes output files.
// Calling it again does nothing.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.clock.Stop()
	if err := g.outputManager.WriteHistory(g.recorder.History()); err != nil {
		g.outputManager.Close()
		return err
	}
	return g.outputManager.Close()
}

// Tick returns the number of ticks run.
func (g *Game) Tick() int64 {
	return g.tick
}

// SimTime returns the simulated seconds elapsed.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Population returns the live agent count.
func (g *Game) Population() int {
	return len(g.snapshot)
}

// Snapshot returns a copy of the live agents after the last tick.
func (g *Game) Snapshot() []population.AgentView {
	return append([]population.AgentView(nil), g.snapshot...)
}

// Agent returns one live agent by identity.
func (g *Game) Agent(id uint32) (population.AgentView, bool) {
	return g.pop.Agent(id)
}

// Recorder returns the per-tick sample history.
func (g *Game) Recorder() *telemetry.Recorder {
	return g.recorder
}

// Lifetime returns the lifetime record of a live agent, or nil.
func (g *Game) Lifetime(id uint32) *telemetry.LifetimeStats {
	return g.lifetimes.Get(id)
}

// Zones returns the cosmetic terrain grid.
func (g *Game) Zones() *world.Zones {
	return g.zones
}

// Config returns the run's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Perf returns timing statistics over the recent ticks.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perfCollector.Stats()
}
