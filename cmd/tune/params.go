package main

import (
	"github.com/pthm-cable/genepool/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// Parameter order, shared by Specs and ApplyToConfig.
const (
	paramMatingRadius = iota
	paramRefractory
	paramLifespanMin
	paramLifespanSpan
	paramMutationRate
)

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			paramMatingRadius: {Name: "mating_radius", Path: "reproduction.mating_radius", Min: 5, Max: 40, Default: 15},
			paramRefractory:   {Name: "refractory_sec", Path: "reproduction.refractory_sec", Min: 2, Max: 30, Default: 15},
			paramLifespanMin:  {Name: "lifespan_min", Path: "lifespan.min", Min: 10, Max: 100, Default: 50},
			// Max is min plus span so the range stays ordered
			paramLifespanSpan: {Name: "lifespan_span", Path: "lifespan.max", Min: 0, Max: 150, Default: 100},
			paramMutationRate: {Name: "mutation_rate", Path: "mutation.rate", Min: 0, Max: 0.3, Default: 0.05},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to cfg and refreshes its
// derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	cfg.Reproduction.MatingRadius = clamped[paramMatingRadius]
	cfg.Reproduction.RefractorySec = clamped[paramRefractory]
	cfg.Lifespan.Min = clamped[paramLifespanMin]
	cfg.Lifespan.Max = clamped[paramLifespanMin] + clamped[paramLifespanSpan]
	cfg.Mutation.Rate = clamped[paramMutationRate]

	return cfg.Recompute()
}
