package game

import (
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
)

// RenderSink receives the live agents after every tick. The slice is only
// valid until the next tick; sinks that keep it must copy.
type RenderSink interface {
	Render(agents []population.AgentView)
}

// HistoryView is read access to the sample history, oldest first.
// *telemetry.Recorder implements it.
type HistoryView interface {
	Len() int
	At(i int) telemetry.Sample
}

// StatsSink receives the newest sample and the bounded history after every tick.
type StatsSink interface {
	Stats(latest telemetry.Sample, history HistoryView)
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(agents []population.AgentView)

// Render implements RenderSink.
func (f RenderFunc) Render(agents []population.AgentView) { f(agents) }

// StatsFunc adapts a function to StatsSink.
type StatsFunc func(latest telemetry.Sample, history HistoryView)

// Stats implements StatsSink.
func (f StatsFunc) Stats(latest telemetry.Sample, history HistoryView) { f(latest, history) }

// AddRenderSink registers a sink. It immediately receives the current agents.
func (g *Game) AddRenderSink(s RenderSink) {
	g.renderSinks = append(g.renderSinks, s)
	s.Render(g.snapshot)
}

// AddStatsSink registers a sink. It immediately receives the newest sample.
func (g *Game) AddStatsSink(s StatsSink) {
	g.statsSinks = append(g.statsSinks, s)
	if latest, ok := g.recorder.Latest(); ok {
		s.Stats(latest, g.recorder)
	}
}

func (g *Game) publish(sample telemetry.Sample) {
	for _, s := range g.renderSinks {
		s.Render(g.snapshot)
	}
	for _, s := range g.statsSinks {
		s.Stats(sample, g.recorder)
	}
}
