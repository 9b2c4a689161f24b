package telemetry

import (
	"github.com/pthm-cable/genepool/population"
)

// DefaultHistoryCap is the number of samples kept when no capacity is given.
const DefaultHistoryCap = 1000

// Recorder samples the population once per tick and keeps a bounded history.
// Once full, each new sample evicts the oldest.
type Recorder struct {
	buf   []Sample
	head  int // index of the oldest sample
	count int

	// Scratch for the mean computations
	gens   []float64
	speeds []float64
	ferts  []float64
}

// NewRecorder creates a recorder holding at most capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 1 {
		capacity = DefaultHistoryCap
	}
	return &Recorder{buf: make([]Sample, capacity)}
}

// Record computes the sample for the given live agents and appends it.
// An empty population yields zero population, generation and mutations.
func (r *Recorder) Record(tick int64, simTime float64, agents []population.AgentView) Sample {
	s := Summarize(tick, simTime, agents, r)
	r.push(s)
	return s
}

// Summarize computes a sample without recording it. scratch may be nil.
func Summarize(tick int64, simTime float64, agents []population.AgentView, scratch *Recorder) Sample {
	if scratch == nil {
		scratch = &Recorder{}
	}
	gens := scratch.gens[:0]
	speeds := scratch.speeds[:0]
	ferts := scratch.ferts[:0]

	s := Sample{Tick: tick, SimTime: simTime, Population: len(agents)}
	for _, a := range agents {
		gens = append(gens, float64(a.Generation))
		speeds = append(speeds, a.Speed)
		ferts = append(ferts, a.Fertility)
		if a.Generation > 1 {
			s.Mutations++
		}
		s.MaxGeneration = max(s.MaxGeneration, a.Generation)
	}
	s.AvgGeneration = Mean(gens)
	s.MeanSpeed = Mean(speeds)
	s.MeanFertility = Mean(ferts)

	scratch.gens, scratch.speeds, scratch.ferts = gens, speeds, ferts
	return s
}

func (r *Recorder) push(s Sample) {
	n := len(r.buf)
	if r.count < n {
		r.buf[(r.head+r.count)%n] = s
		r.count++
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % n
}

// Len returns the number of samples held.
func (r *Recorder) Len() int {
	return r.count
}

// Cap returns the maximum number of samples held.
func (r *Recorder) Cap() int {
	return len(r.buf)
}

// At returns the i-th sample, oldest first. It panics if i is out of range.
func (r *Recorder) At(i int) Sample {
	if i < 0 || i >= r.count {
		panic("telemetry: history index out of range")
	}
	return r.buf[(r.head+i)%len(r.buf)]
}

// Latest returns the newest sample, or false if nothing was recorded.
func (r *Recorder) Latest() (Sample, bool) {
	if r.count == 0 {
		return Sample{}, false
	}
	return r.At(r.count - 1), true
}

// History copies the held samples, oldest first.
func (r *Recorder) History() []Sample {
	out := make([]Sample, r.count)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Reset drops all samples.
func (r *Recorder) Reset() {
	r.head, r.count = 0, 0
}
