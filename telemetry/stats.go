// Package telemetry samples the population each tick, aggregates windowed
// event statistics and writes run output.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Sample is one per-tick summary of the population.
type Sample struct {
	Tick          int64   `csv:"tick"`
	SimTime       float64 `csv:"sim_time"`
	Population    int     `csv:"population"`
	AvgGeneration float64 `csv:"avg_generation"`
	MaxGeneration int     `csv:"max_generation"`

	// Agents with generation > 1. A proxy that counts descendants,
	// not mutation events; WindowStats carries the literal count.
	Mutations int `csv:"mutations"`

	MeanSpeed     float64 `csv:"mean_speed"`
	MeanFertility float64 `csv:"mean_fertility"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", s.Tick),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("population", s.Population),
		slog.Float64("avg_generation", s.AvgGeneration),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("mutations", s.Mutations),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("mean_fertility", s.MeanFertility),
	)
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population    int     `csv:"population"`
	AvgGeneration float64 `csv:"avg_generation"`
	MaxGeneration int     `csv:"max_generation"`

	// Events during window
	Births    int `csv:"births"`
	Deaths    int `csv:"deaths"`
	Mutations int `csv:"mutations"` // mutated traits across all births
	Rejected  int `csv:"rejected"`

	// Deaths during window
	MeanAgeAtDeath    float64 `csv:"mean_age_at_death"`
	StdAgeAtDeath     float64 `csv:"std_age_at_death"`
	MeanChildren      float64 `csv:"mean_children"`
	MeanDeathLifespan float64 `csv:"mean_death_lifespan"`

	// Trait distribution at window end
	SpeedMean     float64 `csv:"speed_mean"`
	SpeedStd      float64 `csv:"speed_std"`
	FertilityMean float64 `csv:"fertility_mean"`
	FertilityStd  float64 `csv:"fertility_std"`
}

// MeanStd returns the mean and standard deviation of values, or zeros for an
// empty slice.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Mean returns the mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Float64("avg_generation", s.AvgGeneration),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("mutations", s.Mutations),
		slog.Int("rejected", s.Rejected),
		slog.Float64("mean_age_at_death", s.MeanAgeAtDeath),
		slog.Float64("std_age_at_death", s.StdAgeAtDeath),
		slog.Float64("mean_children", s.MeanChildren),
		slog.Float64("mean_death_lifespan", s.MeanDeathLifespan),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("fertility_mean", s.FertilityMean),
		slog.Float64("fertility_std", s.FertilityStd),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"avg_generation", s.AvgGeneration,
		"max_generation", s.MaxGeneration,
		"births", s.Births,
		"deaths", s.Deaths,
		"mutations", s.Mutations,
		"rejected", s.Rejected,
		"mean_age_at_death", s.MeanAgeAtDeath,
		"mean_children", s.MeanChildren,
		"speed_mean", s.SpeedMean,
		"fertility_mean", s.FertilityMean,
	)
}
