package main

import (
	"log"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/genepool/config"
	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/telemetry"
)

// warmupSec of simulated time is excluded from the stability score.
const warmupSec = 5.0

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	maxPop      int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	lastSurvive float64 // survival fraction from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, maxPop int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		maxPop:      maxPop,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// Last returns the survival fraction and quality of the most recent evaluation.
func (fe *FitnessEvaluator) Last() (survival, quality float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvive, fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	ticks       int64 // ticks before extinction or overflow (maxTicks if neither)
	overflow    bool
	windowStats []telemetry.WindowStats
}

type seedResult struct {
	fitness  float64
	survival float64
	quality  float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel and their fitness is averaged.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			res, err := fe.runSimulation(x, s)
			if err != nil {
				log.Printf("seed %d: %v", s, err)
				return
			}
			survival := float64(res.ticks) / float64(fe.maxTicks)
			quality := computeQuality(res.windowStats)
			results[idx] = seedResult{
				fitness:  computeFitness(survival, quality, res.overflow),
				survival: survival,
				quality:  quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalSurvival += r.survival
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastSurvive = totalSurvival / n
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one headless run until extinction, overflow or
// maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, err
	}
	// The cap would hide the overflow this run is meant to detect
	cfg.Population.Max = 0

	result := &runResult{}
	g, err := game.NewGame(cfg, game.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		OnWindow: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Close()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		pop := g.Population()
		if pop == 0 {
			break
		}
		if fe.maxPop > 0 && pop > fe.maxPop {
			result.overflow = true
			break
		}
	}
	result.ticks = g.Tick()
	return result, nil
}

// computeQuality scores how steady the population was across stats
// windows after warmup, in (0, 1]. Fewer than two windows score 0.
func computeQuality(windows []telemetry.WindowStats) float64 {
	var pops []float64
	for _, w := range windows {
		if w.SimTimeSec < warmupSec {
			continue
		}
		pops = append(pops, float64(w.Population))
	}
	if len(pops) < 2 {
		return 0
	}

	mean, std := stat.MeanStdDev(pops, nil)
	if mean == 0 {
		return 0
	}
	return 1 / (1 + std/mean)
}

// computeFitness combines survival and steadiness. Runs that overflow the
// population cap keep half their credit.
func computeFitness(survival, quality float64, overflow bool) float64 {
	f := -survival * (1 + quality)
	if overflow {
		f *= 0.5
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}
