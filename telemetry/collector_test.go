package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/genepool/population"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1)

	if c.ShouldFlush(0.75) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(1) {
		t.Error("should flush at the window end")
	}
}

func TestCollectorWindowFollowsSimulatedTime(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		ticks int
		want  int
	}{
		{"normal speed", 1, 120, 2},
		{"fast", 4, 120, 8},
		{"slow", 0.5, 240, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(1)
			dt := tt.speed / 60

			var windows []WindowStats
			simTime := 0.0
			for tick := 1; tick <= tt.ticks; tick++ {
				simTime += dt
				if c.ShouldFlush(simTime) {
					windows = append(windows, c.Flush(Sample{Tick: int64(tick), SimTime: simTime}, nil))
				}
			}

			if len(windows) != tt.want {
				t.Fatalf("windows = %d, want %d", len(windows), tt.want)
			}
			last := windows[len(windows)-1]
			if math.Abs(last.SimTimeSec-simTime) > 1e-6 {
				t.Errorf("last window ends at %v, want %v", last.SimTimeSec, simTime)
			}
			for i := 1; i < len(windows); i++ {
				span := windows[i].SimTimeSec - windows[i-1].SimTimeSec
				if math.Abs(span-1) > 1e-6 {
					t.Errorf("window %d spans %v s, want 1", i, span)
				}
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	children := map[uint32]int{7: 2, 8: 0}
	c.RecordStep(population.StepResult{
		Births: []population.Birth{
			{ChildID: 10, Mutations: 1},
			{ChildID: 11, Mutations: 0},
		},
		Deaths: []population.Death{
			{ID: 7, Age: 60, Lifespan: 59},
			{ID: 8, Age: 100, Lifespan: 99},
		},
		Rejected: 1,
	}, func(id uint32) int { return children[id] })
	c.RecordStep(population.StepResult{
		Births: []population.Birth{{ChildID: 12, Mutations: 2}},
	}, nil)

	agents := []population.AgentView{
		{Speed: 1, Fertility: 0.5},
		{Speed: 3, Fertility: 0.5},
	}
	sample := Sample{Tick: 600, SimTime: 10, Population: 2, AvgGeneration: 1.5, MaxGeneration: 2}
	stats := c.Flush(sample, agents)

	if stats.Births != 3 || stats.Deaths != 2 || stats.Rejected != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", stats.Births, stats.Deaths, stats.Rejected)
	}
	if stats.Mutations != 3 {
		t.Errorf("mutations = %d, want 3", stats.Mutations)
	}
	if stats.MeanAgeAtDeath != 80 {
		t.Errorf("mean age at death = %v, want 80", stats.MeanAgeAtDeath)
	}
	if stats.MeanChildren != 1 {
		t.Errorf("mean children = %v, want 1", stats.MeanChildren)
	}
	if stats.SpeedMean != 2 {
		t.Errorf("speed mean = %v, want 2", stats.SpeedMean)
	}
	if stats.Population != 2 || stats.MaxGeneration != 2 {
		t.Errorf("population/max gen = %d/%d, want 2/2", stats.Population, stats.MaxGeneration)
	}
	if math.Abs(stats.SimTimeSec-10) > 1e-9 {
		t.Errorf("sim time = %v, want 10", stats.SimTimeSec)
	}

	// Counters reset for the next window
	next := c.Flush(Sample{Tick: 1200, SimTime: 20}, nil)
	if next.Births != 0 || next.Deaths != 0 || next.Mutations != 0 || next.MeanAgeAtDeath != 0 {
		t.Errorf("second window not reset: %+v", next)
	}
	if next.WindowStartTick != 600 {
		t.Errorf("window start = %d, want 600", next.WindowStartTick)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, 1, 0, 0)
	lt.Register(2, 0, 1, 0, 0)
	lt.Register(3, 50, 2, 1, 2)

	lt.RecordChild(1)
	lt.RecordChild(2)
	lt.RecordChild(99) // unknown parents are ignored

	if lt.Children(1) != 1 {
		t.Errorf("children(1) = %d, want 1", lt.Children(1))
	}
	if s := lt.Get(3); s == nil || s.ParentA != 1 || s.ParentB != 2 || s.Generation != 2 {
		t.Errorf("child stats = %+v", s)
	}

	removed := lt.Remove(1)
	if removed == nil || removed.Children != 1 {
		t.Errorf("removed = %+v", removed)
	}
	if lt.Count() != 2 {
		t.Errorf("count = %d, want 2", lt.Count())
	}
	if lt.Children(1) != 0 {
		t.Error("removed agent should report no children")
	}
}
