package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  int64
	Generation int
	ParentA    uint32 // zero for seed agents
	ParentB    uint32
	Children   int
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, birthTick int64, generation int, parentA, parentB uint32) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
		ParentA:    parentA,
		ParentB:    parentB,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// Children returns the child count for an agent still being tracked.
func (lt *LifetimeTracker) Children(id uint32) int {
	if s := lt.stats[id]; s != nil {
		return s.Children
	}
	return 0
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
