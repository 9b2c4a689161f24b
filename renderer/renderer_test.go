package renderer

import (
	"testing"

	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/genetics"
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
)

// Compile-time checks that the sinks plug into the game.
var (
	_ game.RenderSink = (*Scene)(nil)
	_ game.StatsSink  = (*Charts)(nil)
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		wantY  []float32
	}{
		{"rising from zero", []float64{0, 5, 10}, []float32{100, 50, 0}},
		{"flat zero", []float64{0, 0}, []float32{100, 100}},
		{"negative floor", []float64{-10, 0, 10}, []float32{100, 50, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := sparkline(tt.values, 10, 0, 200, 100)
			if len(pts) != len(tt.values) {
				t.Fatalf("got %d points, want %d", len(pts), len(tt.values))
			}
			if pts[0].X != 10 || pts[len(pts)-1].X != 210 {
				t.Errorf("x span = %v..%v, want 10..210", pts[0].X, pts[len(pts)-1].X)
			}
			for i, want := range tt.wantY {
				if pts[i].Y != want {
					t.Errorf("point %d y = %v, want %v", i, pts[i].Y, want)
				}
			}
		})
	}
}

func TestChartsKeepsTail(t *testing.T) {
	rec := telemetry.NewRecorder(100)
	for i := 1; i <= 10; i++ {
		agents := make([]population.AgentView, i)
		for j := range agents {
			agents[j] = population.AgentView{ID: uint32(j + 1), Generation: 1}
		}
		rec.Record(int64(i), float64(i), agents)
	}

	c := NewCharts(4)
	latest, _ := rec.Latest()
	c.Stats(latest, rec)

	pop := c.Series()[0].Values
	want := []float64{7, 8, 9, 10}
	if len(pop) != len(want) {
		t.Fatalf("population series = %v, want %v", pop, want)
	}
	for i := range want {
		if pop[i] != want[i] {
			t.Errorf("population[%d] = %v, want %v", i, pop[i], want[i])
		}
	}
	if gen := c.Series()[1].Values; gen[0] != 1 {
		t.Errorf("avg generation = %v, want 1", gen[0])
	}
}

func TestSceneCopiesAgents(t *testing.T) {
	s := NewScene(nil)
	agents := []population.AgentView{{ID: 1}, {ID: 2}}

	s.Render(agents)
	agents[0].ID = 99

	if got := s.Agents(); len(got) != 2 || got[0].ID != 1 {
		t.Errorf("scene agents = %+v, want a copy of the originals", got)
	}
}

func TestAgentColor(t *testing.T) {
	a := population.AgentView{Color: genetics.Color{R: 10, G: 20, B: 30}, Cooldown: 1}

	if c := agentColor(&a, false); c.A != 255 || c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("color = %+v", c)
	}
	if c := agentColor(&a, true); c.A == 255 {
		t.Error("agent in cooldown should be dimmed")
	}
	a.Cooldown = 0
	if c := agentColor(&a, true); c.A != 255 {
		t.Error("agent ready to mate should not be dimmed")
	}
}
