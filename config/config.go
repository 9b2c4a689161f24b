// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Entity       EntityConfig       `yaml:"entity"`
	Movement     MovementConfig     `yaml:"movement"`
	Population   PopulationConfig   `yaml:"population"`
	Lifespan     LifespanConfig     `yaml:"lifespan"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Traits       TraitsConfig       `yaml:"traits"`
	Clock        ClockConfig        `yaml:"clock"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions and the boundary policy.
type WorldConfig struct {
	Width    float64     `yaml:"width"`    // World width in world units (0 = use screen width)
	Height   float64     `yaml:"height"`   // World height in world units (0 = use screen height)
	Boundary string      `yaml:"boundary"` // "clamp" or "wrap"
	Zones    ZonesConfig `yaml:"zones"`
}

// ZonesConfig holds the cosmetic zone backdrop layout.
type ZonesConfig struct {
	Cols  int     `yaml:"cols"`
	Rows  int     `yaml:"rows"`
	Scale float64 `yaml:"scale"` // noise frequency per zone
}

// PhysicsConfig holds tick timing.
type PhysicsConfig struct {
	DT        float64 `yaml:"dt"`         // simulated seconds per tick at speed 1
	TargetTPS int     `yaml:"target_tps"` // ticks per real second
}

// EntityConfig holds entity display parameters.
type EntityConfig struct {
	BodyRadius float64 `yaml:"body_radius"`
}

// MovementConfig holds random walk parameters.
type MovementConfig struct {
	Scale float64 `yaml:"scale"` // velocity bound per unit of speed trait, world units/s
}

// SeedConfig places one seed agent explicitly.
type SeedConfig struct {
	Sex string  `yaml:"sex"` // "A" or "B"
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
}

// PopulationConfig holds initial population parameters.
type PopulationConfig struct {
	Initial int          `yaml:"initial"` // random seed agents, ignored when Seeds is set
	Max     int          `yaml:"max"`     // no conceptions at or above this many live agents (0 = no cap)
	Seeds   []SeedConfig `yaml:"seeds"`
}

// LifespanConfig bounds the uniform lifespan distribution.
type LifespanConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ReproductionConfig holds mating parameters.
type ReproductionConfig struct {
	MatingRadius  float64 `yaml:"mating_radius"`
	RefractorySec float64 `yaml:"refractory_sec"`
	FertilityGate bool    `yaml:"fertility_gate"` // eligible pairs conceive with mean fertility probability
}

// MutationConfig holds multiplicative mutation parameters.
type MutationConfig struct {
	Rate      float64 `yaml:"rate"`
	FactorMin float64 `yaml:"factor_min"`
	FactorMax float64 `yaml:"factor_max"`
}

// TraitsConfig bounds the seed trait distributions.
type TraitsConfig struct {
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	FertilityMin float64 `yaml:"fertility_min"`
	FertilityMax float64 `yaml:"fertility_max"`
}

// ClockConfig holds the speed multiplier range.
type ClockConfig struct {
	Speed    float64 `yaml:"speed"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// TelemetryConfig holds statistics parameters.
type TelemetryConfig struct {
	HistoryCap  int     `yaml:"history_cap"`
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64       // Effective world width
	WorldH       float64       // Effective world height
	TickInterval time.Duration // 1 / TargetTPS
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}

	if c.Physics.TargetTPS > 0 {
		c.Derived.TickInterval = time.Second / time.Duration(c.Physics.TargetTPS)
	}
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	c.computeDerived()
	return c.Validate()
}

// Validate reports the first inconsistent value, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Derived.WorldW <= 0 || c.Derived.WorldH <= 0:
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidConfig, c.Derived.WorldW, c.Derived.WorldH)
	case c.World.Boundary != "clamp" && c.World.Boundary != "wrap":
		return fmt.Errorf("%w: world.boundary %q (want clamp or wrap)", ErrInvalidConfig, c.World.Boundary)
	case c.Physics.DT <= 0:
		return fmt.Errorf("%w: physics.dt must be positive", ErrInvalidConfig)
	case c.Physics.TargetTPS <= 0:
		return fmt.Errorf("%w: physics.target_tps must be positive", ErrInvalidConfig)
	case c.Lifespan.Min <= 0 || c.Lifespan.Min > c.Lifespan.Max:
		return fmt.Errorf("%w: lifespan range [%v, %v]", ErrInvalidConfig, c.Lifespan.Min, c.Lifespan.Max)
	case c.Reproduction.MatingRadius <= 0:
		return fmt.Errorf("%w: reproduction.mating_radius must be positive", ErrInvalidConfig)
	case c.Reproduction.RefractorySec < 0:
		return fmt.Errorf("%w: reproduction.refractory_sec must not be negative", ErrInvalidConfig)
	case c.Mutation.Rate < 0 || c.Mutation.Rate > 1:
		return fmt.Errorf("%w: mutation.rate %v outside [0, 1]", ErrInvalidConfig, c.Mutation.Rate)
	case c.Mutation.FactorMin <= 0 || c.Mutation.FactorMin > c.Mutation.FactorMax:
		return fmt.Errorf("%w: mutation factor range [%v, %v]", ErrInvalidConfig, c.Mutation.FactorMin, c.Mutation.FactorMax)
	case c.Traits.SpeedMin <= 0 || c.Traits.SpeedMin > c.Traits.SpeedMax:
		return fmt.Errorf("%w: traits speed range [%v, %v]", ErrInvalidConfig, c.Traits.SpeedMin, c.Traits.SpeedMax)
	case c.Traits.FertilityMin <= 0 || c.Traits.FertilityMin > c.Traits.FertilityMax:
		return fmt.Errorf("%w: traits fertility range [%v, %v]", ErrInvalidConfig, c.Traits.FertilityMin, c.Traits.FertilityMax)
	case c.Clock.MinSpeed <= 0 || c.Clock.MinSpeed > c.Clock.MaxSpeed:
		return fmt.Errorf("%w: clock speed range [%v, %v]", ErrInvalidConfig, c.Clock.MinSpeed, c.Clock.MaxSpeed)
	case c.Telemetry.HistoryCap <= 0:
		return fmt.Errorf("%w: telemetry.history_cap must be positive", ErrInvalidConfig)
	case c.Population.Initial < 0:
		return fmt.Errorf("%w: population.initial must not be negative", ErrInvalidConfig)
	case c.Population.Max < 0:
		return fmt.Errorf("%w: population.max must not be negative", ErrInvalidConfig)
	}

	for i, s := range c.Population.Seeds {
		if s.Sex != "A" && s.Sex != "B" {
			return fmt.Errorf("%w: population.seeds[%d].sex %q (want A or B)", ErrInvalidConfig, i, s.Sex)
		}
	}
	return nil
}

// Clone returns a deep copy that can be changed independently.
func (c *Config) Clone() *Config {
	out := *c
	out.Population.Seeds = append([]SeedConfig(nil), c.Population.Seeds...)
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
