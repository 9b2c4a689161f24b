package world

import (
	"math"
	"testing"
)

func TestGenerateCoversWorld(t *testing.T) {
	z := Generate(8, 6, 800, 600, 0.35, 42)

	if len(z.Cells) != 48 {
		t.Fatalf("cells = %d, want 48", len(z.Cells))
	}

	var area float64
	for i, c := range z.Cells {
		if c.W != 100 || c.H != 100 {
			t.Errorf("cell %d size = %vx%v, want 100x100", i, c.W, c.H)
		}
		if c.Kind >= numKinds {
			t.Errorf("cell %d has invalid kind %v", i, c.Kind)
		}
		area += c.W * c.H
	}
	if math.Abs(area-800*600) > 1e-6 {
		t.Errorf("covered area = %v, want %v", area, 800*600)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(8, 6, 800, 600, 0.35, 7)
	b := Generate(8, 6, 800, 600, 0.35, 7)

	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs between runs with the same seed", i)
		}
	}
}

func TestZonesAt(t *testing.T) {
	z := Generate(8, 6, 800, 600, 0.35, 1)

	tests := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"origin", 0, 0, 0, 0},
		{"interior", 250, 130, 2, 1},
		{"far corner", 799.9, 599.9, 7, 5},
		{"on edge", 800, 600, 7, 5},
		{"outside", -50, 1000, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := z.At(tt.x, tt.y)
			if got.Col != tt.col || got.Row != tt.row {
				t.Errorf("At(%v, %v) = cell (%d, %d), want (%d, %d)",
					tt.x, tt.y, got.Col, got.Row, tt.col, tt.row)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Fertile, "fertile"},
		{Barren, "barren"},
		{Water, "water"},
		{Volcanic, "volcanic"},
		{Kind(9), "Kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCounts(t *testing.T) {
	z := Generate(4, 4, 400, 400, 1.3, 3)

	total := 0
	for _, n := range z.Counts() {
		total += n
	}
	if total != 16 {
		t.Errorf("counts sum to %d, want 16", total)
	}
}
