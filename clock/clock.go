// Package clock drives the simulation at a target tick rate from frame
// callbacks, with pause and a speed multiplier.
package clock

import (
	"time"
)

// Scheduler delivers a callback on the next display refresh or host frame.
type Scheduler interface {
	RequestNextTick(fn func(now time.Time))
}

// FrameScheduler holds at most one pending callback. The host loop calls
// Fire once per frame. A second request before Fire replaces the first.
type FrameScheduler struct {
	pending func(now time.Time)
}

// NewFrameScheduler returns an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestNextTick implements Scheduler.
func (s *FrameScheduler) RequestNextTick(fn func(now time.Time)) {
	s.pending = fn
}

// Fire runs the pending callback, if any. Reports whether one ran.
func (s *FrameScheduler) Fire(now time.Time) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}

// Pending reports whether a callback is waiting.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Config holds the clock's rate and speed settings.
type Config struct {
	TargetTPS int     // ticks per wall-clock second at speed 1
	BaseDT    float64 // simulated seconds per tick at speed 1
	Speed     float64
	MinSpeed  float64
	MaxSpeed  float64
}

// Clock calls step at most once per frame, when at least one tick interval
// has elapsed since the previous tick. The speed multiplier scales the dt
// passed to step, never the tick rate. Clock holds no simulation state.
type Clock struct {
	sched Scheduler
	step  func(dt float64)

	interval time.Duration
	baseDT   float64
	speed    float64
	minSpeed float64
	maxSpeed float64

	running bool
	paused  bool
	last    time.Time
	ticks   int64

	// Bumped by Stop so callbacks queued before it do nothing
	epoch uint64
}

// New creates a stopped clock.
func New(sched Scheduler, cfg Config, step func(dt float64)) *Clock {
	tps := cfg.TargetTPS
	if tps <= 0 {
		tps = 60
	}
	c := &Clock{
		sched:    sched,
		step:     step,
		interval: time.Second / time.Duration(tps),
		baseDT:   cfg.BaseDT,
		minSpeed: cfg.MinSpeed,
		maxSpeed: cfg.MaxSpeed,
	}
	if c.minSpeed <= 0 {
		c.minSpeed = 0.1
	}
	if c.maxSpeed <= 0 {
		c.maxSpeed = 10
	}
	c.maxSpeed = max(c.maxSpeed, c.minSpeed)

	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}
	c.SetSpeed(speed)
	return c
}

// Start begins requesting frames. Starting a running clock does nothing.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.last = time.Time{}
	c.request()
}

// Stop cancels all future ticks, including an already requested frame.
func (c *Clock) Stop() {
	c.running = false
	c.epoch++
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool { return c.running }

// Pause suspends ticking. Frames keep arriving; they just don't tick.
func (c *Clock) Pause() { c.paused = true }

// Resume re-enables ticking.
func (c *Clock) Resume() { c.paused = false }

// Toggle flips the paused state.
func (c *Clock) Toggle() { c.paused = !c.paused }

// Paused reports whether ticking is suspended.
func (c *Clock) Paused() bool { return c.paused }

// SetSpeed sets the dt multiplier, clamped to the configured range.
func (c *Clock) SetSpeed(s float64) {
	c.speed = min(max(s, c.minSpeed), c.maxSpeed)
}

// Speed returns the current dt multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// SpeedRange returns the allowed multiplier range.
func (c *Clock) SpeedRange() (lo, hi float64) { return c.minSpeed, c.maxSpeed }

// Ticks returns the number of ticks run since creation.
func (c *Clock) Ticks() int64 { return c.ticks }

// Interval returns the wall-clock time between ticks.
func (c *Clock) Interval() time.Duration { return c.interval }

// DT returns the simulated seconds the next tick will advance.
func (c *Clock) DT() float64 { return c.baseDT * c.speed }

func (c *Clock) request() {
	epoch := c.epoch
	c.sched.RequestNextTick(func(now time.Time) {
		c.onFrame(epoch, now)
	})
}

func (c *Clock) onFrame(epoch uint64, now time.Time) {
	if !c.running || epoch != c.epoch {
		return
	}

	// Frames arrive with jitter; allow a tenth of an interval early
	due := c.last.IsZero() || now.Sub(c.last) >= c.interval-c.interval/10
	if !c.paused && due {
		c.last = now
		c.ticks++
		c.step(c.DT())
	}

	// step may have stopped the clock
	if c.running && epoch == c.epoch {
		c.request()
	}
}
