package genetics

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// MutationParams controls multiplicative mutation of averaged traits.
type MutationParams struct {
	Rate      float64 // per-trait probability of mutating
	FactorMin float64 // lower bound of the scale factor
	FactorMax float64 // upper bound of the scale factor
}

// Offspring is the result of combining two parents.
type Offspring struct {
	Traits    Traits
	Mutations int // number of numeric traits that mutated
}

// Mixer combines parent trait sets. It holds no state besides its
// parameters and random source.
type Mixer struct {
	params MutationParams
	rng    *rand.Rand
	factor distuv.Uniform
}

// NewMixer creates a mixer drawing from rng.
func NewMixer(params MutationParams, rng *rand.Rand) *Mixer {
	return &Mixer{
		params: params,
		rng:    rng,
		factor: distuv.Uniform{Min: params.FactorMin, Max: params.FactorMax, Src: rng},
	}
}

// Combine produces a fresh child trait set from two parents.
// Numeric traits are averaged and then, independently per trait, scaled by a
// random factor with probability Rate. Color is the channel midpoint.
func (m *Mixer) Combine(a, b Traits) (Offspring, error) {
	if err := a.Validate(); err != nil {
		return Offspring{}, fmt.Errorf("first parent: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Offspring{}, fmt.Errorf("second parent: %w", err)
	}

	speed, speedMutated := m.inherit(a.Speed, b.Speed)
	fertility, fertilityMutated := m.inherit(a.Fertility, b.Fertility)

	return Offspring{
		Traits: Traits{
			Speed:     speed,
			Fertility: fertility,
			Color:     MixColors(a.Color, b.Color),
		},
		Mutations: speedMutated + fertilityMutated,
	}, nil
}

// inherit averages one numeric trait and maybe mutates it.
func (m *Mixer) inherit(a, b float64) (float64, int) {
	v := (a + b) / 2
	if m.params.Rate > 0 && m.rng.Float64() < m.params.Rate {
		return v * m.factor.Rand(), 1
	}
	return v, 0
}
