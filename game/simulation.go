package game

import (
	"time"

	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
)

// Step runs exactly one tick advancing the simulation by dt seconds, then
// publishes the result to every sink. The clock calls it; tests and headless
// runs may call it directly.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	// 1. Population: update, mating, births, prune
	g.perfCollector.StartPhase(telemetry.PhasePopulation)
	res := g.pop.Step(dt)
	g.tick++
	g.simTime += dt

	// 2. Bookkeeping and the per-tick sample
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.trackLifetimes(res)
	g.snapshot = g.pop.AppendSnapshot(g.snapshot[:0])
	sample := g.recorder.Record(g.tick, g.simTime, g.snapshot)

	// 3. Observers see the state after the tick
	g.perfCollector.StartPhase(telemetry.PhaseSinks)
	g.publish(sample)

	g.perfCollector.EndTick()

	g.flushTelemetry(sample)
}

// trackLifetimes registers children, credits parents and retires the dead.
func (g *Game) trackLifetimes(res population.StepResult) {
	for _, b := range res.Births {
		g.lifetimes.Register(b.ChildID, g.tick, b.Generation, b.ParentA, b.ParentB)
		g.lifetimes.RecordChild(b.ParentA)
		g.lifetimes.RecordChild(b.ParentB)
	}

	g.collector.RecordStep(res, g.lifetimes.Children)

	for _, d := range res.Deaths {
		g.lifetimes.Remove(d.ID)
	}
}

// Frame delivers one display frame to the clock, which ticks if due.
// Window and terminal loops call it once per refresh.
func (g *Game) Frame(now time.Time) {
	g.perfCollector.RecordFrame()
	g.sched.Fire(now)
}

// UpdateHeadless runs StepsPerUpdate ticks back to back, without frame
// pacing. Paused games do not advance.
func (g *Game) UpdateHeadless() {
	if g.clock.Paused() {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.clock.DT())
	}
}

// Pause suspends ticking after the current tick.
func (g *Game) Pause() { g.clock.Pause() }

// Resume re-enables ticking.
func (g *Game) Resume() { g.clock.Resume() }

// TogglePause flips the paused state.
func (g *Game) TogglePause() { g.clock.Toggle() }

// Paused reports whether ticking is suspended.
func (g *Game) Paused() bool { return g.clock.Paused() }

// SetSpeed sets the simulation speed multiplier, clamped to the configured
// range. It scales dt per tick, not the tick rate.
func (g *Game) SetSpeed(s float64) { g.clock.SetSpeed(s) }

// Speed returns the simulation speed multiplier.
func (g *Game) Speed() float64 { return g.clock.Speed() }

// SpeedRange returns the allowed speed multiplier range.
func (g *Game) SpeedRange() (lo, hi float64) { return g.clock.SpeedRange() }

// TickInterval returns the wall-clock time between ticks at the target rate.
func (g *Game) TickInterval() time.Duration { return g.clock.Interval() }
