package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Reproduction.MatingRadius != 15 {
		t.Errorf("mating radius = %v, want 15", cfg.Reproduction.MatingRadius)
	}
	if cfg.Reproduction.RefractorySec != 15 {
		t.Errorf("refractory = %v, want 15", cfg.Reproduction.RefractorySec)
	}
	if cfg.Population.Max != 400 {
		t.Errorf("population max = %d, want 400", cfg.Population.Max)
	}
	if cfg.Telemetry.HistoryCap != 1000 {
		t.Errorf("history cap = %d, want 1000", cfg.Telemetry.HistoryCap)
	}

	// World falls back to screen size
	if cfg.Derived.WorldW != 800 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 800x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if want := time.Second / 60; cfg.Derived.TickInterval != want {
		t.Errorf("tick interval = %v, want %v", cfg.Derived.TickInterval, want)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("world:\n  boundary: wrap\n  width: 400\nreproduction:\n  mating_radius: 30\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.World.Boundary != "wrap" {
		t.Errorf("boundary = %q, want wrap", cfg.World.Boundary)
	}
	if cfg.Reproduction.MatingRadius != 30 {
		t.Errorf("mating radius = %v, want 30", cfg.Reproduction.MatingRadius)
	}
	if cfg.Derived.WorldW != 400 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 400x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	// Untouched fields keep defaults
	if cfg.Lifespan.Min != 50 || cfg.Lifespan.Max != 150 {
		t.Errorf("lifespan = [%v, %v], want [50, 150]", cfg.Lifespan.Min, cfg.Lifespan.Max)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown boundary", func(c *Config) { c.World.Boundary = "bounce" }},
		{"inverted lifespan", func(c *Config) { c.Lifespan.Min, c.Lifespan.Max = 100, 10 }},
		{"zero radius", func(c *Config) { c.Reproduction.MatingRadius = 0 }},
		{"negative refractory", func(c *Config) { c.Reproduction.RefractorySec = -1 }},
		{"mutation rate above one", func(c *Config) { c.Mutation.Rate = 1.5 }},
		{"zero mutation factor", func(c *Config) { c.Mutation.FactorMin = 0 }},
		{"zero history", func(c *Config) { c.Telemetry.HistoryCap = 0 }},
		{"bad seed sex", func(c *Config) { c.Population.Seeds = []SeedConfig{{Sex: "male"}} }},
		{"zero tps", func(c *Config) { c.Physics.TargetTPS = 0 }},
		{"negative population cap", func(c *Config) { c.Population.Max = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MustLoad("")
			tt.mutate(cfg)
			err := cfg.Recompute()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Recompute() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := MustLoad("")
	cfg.Reproduction.RefractorySec = 7.5
	cfg.Population.Max = 250

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config failed: %v", err)
	}
	if back.Reproduction.RefractorySec != 7.5 {
		t.Errorf("refractory = %v, want 7.5", back.Reproduction.RefractorySec)
	}
	if back.Population.Max != 250 {
		t.Errorf("population max = %d, want 250", back.Population.Max)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := MustLoad("")
	cfg.Population.Seeds = []SeedConfig{{Sex: "A", X: 1, Y: 2}}

	c := cfg.Clone()
	c.Reproduction.MatingRadius = 99
	c.Population.Seeds[0].X = 50

	if cfg.Reproduction.MatingRadius == 99 {
		t.Error("clone shares scalar fields")
	}
	if cfg.Population.Seeds[0].X != 1 {
		t.Error("clone shares the seeds slice")
	}
}
