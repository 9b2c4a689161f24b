package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/genepool/components"
	"github.com/pthm-cable/genepool/genetics"
)

func TestBoundsApply(t *testing.T) {
	tests := []struct {
		name   string
		policy BoundaryPolicy
		in     components.Position
		want   components.Position
	}{
		{"clamp inside", BoundaryClamp, components.Position{X: 10, Y: 20}, components.Position{X: 10, Y: 20}},
		{"clamp low", BoundaryClamp, components.Position{X: -5, Y: -1}, components.Position{X: 0, Y: 0}},
		{"clamp high", BoundaryClamp, components.Position{X: 805, Y: 601}, components.Position{X: 800, Y: 600}},
		{"clamp edge", BoundaryClamp, components.Position{X: 800, Y: 600}, components.Position{X: 800, Y: 600}},
		{"wrap low", BoundaryWrap, components.Position{X: -5, Y: -1}, components.Position{X: 795, Y: 599}},
		{"wrap high", BoundaryWrap, components.Position{X: 805, Y: 601}, components.Position{X: 5, Y: 1}},
		{"wrap edge", BoundaryWrap, components.Position{X: 800, Y: 600}, components.Position{X: 0, Y: 0}},
		{"wrap far", BoundaryWrap, components.Position{X: 1650, Y: -1250}, components.Position{X: 50, Y: 550}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bounds{Width: 800, Height: 600, Policy: tt.policy}
			pos := tt.in
			b.Apply(&pos)
			if math.Abs(pos.X-tt.want.X) > 1e-9 || math.Abs(pos.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.in, pos, tt.want)
			}
			if !b.Contains(pos) {
				t.Errorf("Apply(%+v) = %+v, outside bounds", tt.in, pos)
			}
		})
	}
}

func TestParseBoundary(t *testing.T) {
	if p, err := ParseBoundary("wrap"); err != nil || p != BoundaryWrap {
		t.Errorf("ParseBoundary(wrap) = %v, %v", p, err)
	}
	if p, err := ParseBoundary("clamp"); err != nil || p != BoundaryClamp {
		t.Errorf("ParseBoundary(clamp) = %v, %v", p, err)
	}
	if _, err := ParseBoundary("bounce"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestWanderBoundedBySpeed(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	var vel components.Velocity

	for i := 0; i < 1000; i++ {
		Wander(&vel, 2.0, 60, rng)
		// bound = 2*60, components within ±60
		if math.Abs(vel.X) > 60 || math.Abs(vel.Y) > 60 {
			t.Fatalf("velocity %+v exceeds ±60", vel)
		}
	}
}

func TestAdvanceKeepsAgentsInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for _, policy := range []BoundaryPolicy{BoundaryClamp, BoundaryWrap} {
		t.Run(policy.String(), func(t *testing.T) {
			bounds := Bounds{Width: 50, Height: 40, Policy: policy}
			pos := components.Position{X: 1, Y: 1}
			vel := components.Velocity{}
			org := components.Organism{}
			life := components.Life{Lifespan: 1e9, Alive: true}
			genome := components.Genome{Traits: genetics.Traits{Speed: 3, Fertility: 1}}

			for i := 0; i < 5000; i++ {
				Advance(Agent{Pos: &pos, Vel: &vel, Org: &org, Life: &life, Genome: &genome}, bounds, 60, 1.0/60, rng)
				if !bounds.Contains(pos) {
					t.Fatalf("tick %d: position %+v left the world", i, pos)
				}
			}
		})
	}
}

func TestAgeDeath(t *testing.T) {
	life := components.Life{Age: 9.9, Lifespan: 10, Alive: true}

	if Age(&life, 0.05) {
		t.Fatal("died before exceeding lifespan")
	}
	if !life.Alive {
		t.Fatal("agent should still be alive at age <= lifespan")
	}
	if !Age(&life, 0.1) {
		t.Fatal("expected death once age > lifespan")
	}
	if life.Alive {
		t.Fatal("agent should be dead")
	}
	// Dead agents do not age further
	age := life.Age
	if Age(&life, 1) || life.Age != age {
		t.Error("dead agent aged")
	}
}

func TestCooldownFloorsAtZero(t *testing.T) {
	org := components.Organism{ReproCooldown: 0.5}
	Cooldown(&org, 0.3)
	if math.Abs(org.ReproCooldown-0.2) > 1e-12 {
		t.Errorf("cooldown = %v, want 0.2", org.ReproCooldown)
	}
	Cooldown(&org, 1)
	if org.ReproCooldown != 0 {
		t.Errorf("cooldown = %v, want 0", org.ReproCooldown)
	}
}

func TestCanMate(t *testing.T) {
	base := func() (Mate, Mate) {
		return Mate{Pos: components.Position{X: 0, Y: 0}, Sex: components.SexA, Alive: true},
			Mate{Pos: components.Position{X: 3, Y: 4}, Sex: components.SexB, Alive: true}
	}

	tests := []struct {
		name   string
		mutate func(a, b *Mate)
		want   bool
	}{
		{"eligible", func(a, b *Mate) {}, true},
		{"same sex", func(a, b *Mate) { b.Sex = components.SexA }, false},
		{"too far", func(a, b *Mate) { b.Pos = components.Position{X: 15, Y: 0} }, false},
		{"just inside", func(a, b *Mate) { b.Pos = components.Position{X: 14.999, Y: 0} }, true},
		{"first cooling", func(a, b *Mate) { a.Cooldown = 0.01 }, false},
		{"second cooling", func(a, b *Mate) { b.Cooldown = 2 }, false},
		{"first dead", func(a, b *Mate) { a.Alive = false }, false},
		{"second dead", func(a, b *Mate) { b.Alive = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base()
			tt.mutate(&a, &b)
			if got := CanMate(a, b, 15); got != tt.want {
				t.Errorf("CanMate = %v, want %v", got, tt.want)
			}
			// Predicate is symmetric
			if got := CanMate(b, a, 15); got != tt.want {
				t.Errorf("CanMate (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(components.Position{X: 100, Y: 100}, components.Position{X: 150, Y: 150})
	if got.X != 125 || got.Y != 125 {
		t.Errorf("Midpoint = %+v, want {125 125}", got)
	}
}
