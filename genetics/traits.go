// Package genetics defines heritable traits and how two parents combine them.
package genetics

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrMissingTrait marks a trait set with an unset numeric trait.
	ErrMissingTrait = errors.New("missing trait")
	// ErrInvalidTrait marks a numeric trait that is NaN, infinite or negative.
	ErrInvalidTrait = errors.New("invalid trait")
)

// Color is a display color. It is inherited but has no effect on behavior.
type Color struct {
	R, G, B uint8
}

// Display colors of the two seed sexes.
var (
	ColorA = Color{R: 0x4a, G: 0x8c, B: 0xff}
	ColorB = Color{R: 0xff, G: 0x69, B: 0xb4}
)

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MixColors returns the per-channel midpoint of two colors, rounding down.
func MixColors(a, b Color) Color {
	return Color{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
	}
}

// Traits is the complete heritable trait set of an agent.
// Numeric traits are strictly positive; zero means unset.
type Traits struct {
	Speed     float64 // scales the random walk velocity bound
	Fertility float64 // conception probability when the fertility gate is on
	Color     Color
}

// Validate fails fast on unset or corrupt numeric traits.
func (t Traits) Validate() error {
	numeric := [...]struct {
		name  string
		value float64
	}{
		{"speed", t.Speed},
		{"fertility", t.Fertility},
	}

	for _, n := range numeric {
		switch {
		case math.IsNaN(n.value) || math.IsInf(n.value, 0) || n.value < 0:
			return fmt.Errorf("%w: %s=%v", ErrInvalidTrait, n.name, n.value)
		case n.value == 0:
			return fmt.Errorf("%w: %s", ErrMissingTrait, n.name)
		}
	}
	return nil
}

// Bounds holds the uniform ranges seed traits are drawn from.
type Bounds struct {
	SpeedMin, SpeedMax         float64
	FertilityMin, FertilityMax float64
}

// Random draws a seed trait set with the given display color.
func Random(rng *rand.Rand, b Bounds, color Color) Traits {
	speed := distuv.Uniform{Min: b.SpeedMin, Max: b.SpeedMax, Src: rng}
	fertility := distuv.Uniform{Min: b.FertilityMin, Max: b.FertilityMax, Src: rng}
	return Traits{
		Speed:     speed.Rand(),
		Fertility: fertility.Rand(),
		Color:     color,
	}
}
