package telemetry

import (
	"testing"

	"github.com/pthm-cable/genepool/population"
)

func TestRecorderHistoryBound(t *testing.T) {
	r := NewRecorder(5)

	for tick := int64(1); tick <= 12; tick++ {
		r.Record(tick, float64(tick)/60, nil)
		if r.Len() > r.Cap() {
			t.Fatalf("tick %d: len %d exceeds cap %d", tick, r.Len(), r.Cap())
		}
	}

	if r.Len() != 5 {
		t.Fatalf("len = %d, want 5", r.Len())
	}

	history := r.History()
	for i, s := range history {
		if want := int64(8 + i); s.Tick != want {
			t.Errorf("history[%d].Tick = %d, want %d", i, s.Tick, want)
		}
	}

	latest, ok := r.Latest()
	if !ok || latest.Tick != 12 {
		t.Errorf("Latest() = %d, %v; want 12, true", latest.Tick, ok)
	}
}

func TestRecorderPartialFill(t *testing.T) {
	r := NewRecorder(10)

	if _, ok := r.Latest(); ok {
		t.Error("Latest() on empty recorder should report false")
	}
	if len(r.History()) != 0 {
		t.Error("empty recorder should have no history")
	}

	agents := []population.AgentView{{ID: 1, Generation: 1}, {ID: 2, Generation: 3}}
	for tick := int64(1); tick <= 3; tick++ {
		r.Record(tick, 0, agents)
	}

	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	if r.At(0).Tick != 1 || r.At(2).Tick != 3 {
		t.Errorf("At order wrong: first %d, last %d", r.At(0).Tick, r.At(2).Tick)
	}
	if got := r.At(1).AvgGeneration; got != 2 {
		t.Errorf("avg generation = %v, want 2", got)
	}
}

func TestRecorderDefaultCapacity(t *testing.T) {
	r := NewRecorder(0)
	if r.Cap() != DefaultHistoryCap {
		t.Errorf("cap = %d, want %d", r.Cap(), DefaultHistoryCap)
	}
}

func TestRecorderAtOutOfRangePanics(t *testing.T) {
	r := NewRecorder(3)
	r.Record(1, 0, nil)

	defer func() {
		if recover() == nil {
			t.Error("At(1) on a single-sample recorder should panic")
		}
	}()
	r.At(1)
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder(3)
	for tick := int64(0); tick < 5; tick++ {
		r.Record(tick, 0, nil)
	}
	r.Reset()

	if r.Len() != 0 {
		t.Errorf("len after reset = %d, want 0", r.Len())
	}
	r.Record(9, 0, nil)
	if latest, _ := r.Latest(); latest.Tick != 9 {
		t.Errorf("latest after reset = %d, want 9", latest.Tick)
	}
}
