package components

import (
	"fmt"

	"github.com/pthm-cable/genepool/genetics"
)

// Sex is the two-valued mating category.
type Sex uint8

const (
	SexA Sex = iota
	SexB
)

// Other returns the opposite category.
func (s Sex) Other() Sex {
	if s == SexA {
		return SexB
	}
	return SexA
}

func (s Sex) String() string {
	if s == SexA {
		return "A"
	}
	return "B"
}

// Color returns the display color seed agents of this sex start with.
func (s Sex) Color() genetics.Color {
	if s == SexA {
		return genetics.ColorA
	}
	return genetics.ColorB
}

// ParseSex parses "A" or "B".
func ParseSex(v string) (Sex, error) {
	switch v {
	case "A":
		return SexA, nil
	case "B":
		return SexB, nil
	}
	return 0, fmt.Errorf("unknown sex %q", v)
}

// Organism bundles identity and reproduction state.
type Organism struct {
	ID            uint32
	Sex           Sex
	Generation    int     // 1 for seed agents
	ReproCooldown float64 // seconds until the agent may mate again
}

// Life tracks aging. Age and Lifespan are in simulated seconds.
type Life struct {
	Age      float64
	Lifespan float64
	Alive    bool
}

// Genome holds the agent's trait set, fixed at birth.
type Genome struct {
	Traits genetics.Traits
}
