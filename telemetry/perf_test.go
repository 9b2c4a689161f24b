package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollector_PhaseBreakdown(t *testing.T) {
	pc, clk := newTestPerf(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePopulation)
		clk.advance(300 * time.Microsecond)
		pc.StartPhase(PhaseTelemetry)
		clk.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseSinks)
		clk.advance(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 500*time.Microsecond {
		t.Errorf("avg tick = %v, want 500µs", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhasePopulation] != 300*time.Microsecond {
		t.Errorf("population avg = %v, want 300µs", stats.PhaseAvg[PhasePopulation])
	}
	if stats.PhasePct[PhasePopulation] != 60 {
		t.Errorf("population pct = %v, want 60", stats.PhasePct[PhasePopulation])
	}
	if stats.TicksPerSecond != 2000 {
		t.Errorf("ticks/sec = %v, want 2000", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newTestPerf(3)

	for i := 1; i <= 6; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePopulation)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Only ticks 4, 5 and 6 remain
	if stats.MinTickDuration != 4*time.Millisecond {
		t.Errorf("min = %v, want 4ms", stats.MinTickDuration)
	}
	if stats.MaxTickDuration != 6*time.Millisecond {
		t.Errorf("max = %v, want 6ms", stats.MaxTickDuration)
	}
	if stats.AvgTickDuration != 5*time.Millisecond {
		t.Errorf("avg = %v, want 5ms", stats.AvgTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc, _ := newTestPerf(10)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector stats = %+v, want zeros", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clk := newTestPerf(10)

	pc.RecordFrame()
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame duration = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("fps = %v, want 50", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseSinks.String() != "sinks" {
		t.Errorf("PhaseSinks = %q", PhaseSinks.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42) = %q", Phase(42).String())
	}
}
