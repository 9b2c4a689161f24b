// Package world lays out the cosmetic terrain zones drawn behind the agents.
// Zones have no effect on the simulation.
package world

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Kind is a zone's terrain type.
type Kind uint8

const (
	Fertile Kind = iota
	Barren
	Water
	Volcanic
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Fertile:
		return "fertile"
	case Barren:
		return "barren"
	case Water:
		return "water"
	case Volcanic:
		return "volcanic"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tint is a translucent RGBA fill.
type Tint struct {
	R, G, B, A uint8
}

// Tint returns the overlay color for the kind, at 20% opacity.
func (k Kind) Tint() Tint {
	switch k {
	case Fertile:
		return Tint{0, 255, 0, 51}
	case Barren:
		return Tint{139, 69, 19, 51}
	case Water:
		return Tint{0, 0, 255, 51}
	case Volcanic:
		return Tint{255, 0, 0, 51}
	}
	return Tint{}
}

// Zone is one rectangular cell of the grid.
type Zone struct {
	Col, Row   int
	X, Y, W, H float64
	Kind       Kind
}

// Zones is a cols×rows grid covering the world.
type Zones struct {
	Cols, Rows    int
	Width, Height float64
	Cells         []Zone // row-major
}

// Generate builds the grid, picking each cell's kind from simplex noise
// sampled at the cell index times scale. The same seed gives the same layout.
func Generate(cols, rows int, width, height, scale float64, seed int64) *Zones {
	cols, rows = max(cols, 1), max(rows, 1)
	noise := opensimplex.NewNormalized(seed)

	z := &Zones{
		Cols:   cols,
		Rows:   rows,
		Width:  width,
		Height: height,
		Cells:  make([]Zone, 0, cols*rows),
	}
	cw, ch := width/float64(cols), height/float64(rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := noise.Eval2(float64(col)*scale, float64(row)*scale)
			kind := Kind(min(int(v*float64(numKinds)), int(numKinds)-1))
			z.Cells = append(z.Cells, Zone{
				Col: col, Row: row,
				X: float64(col) * cw, Y: float64(row) * ch,
				W: cw, H: ch,
				Kind: kind,
			})
		}
	}
	return z
}

// At returns the zone containing the point. Points outside the world map to
// the nearest edge cell.
func (z *Zones) At(x, y float64) Zone {
	col := int(x / z.Width * float64(z.Cols))
	row := int(y / z.Height * float64(z.Rows))
	col = min(max(col, 0), z.Cols-1)
	row = min(max(row, 0), z.Rows-1)
	return z.Cells[row*z.Cols+col]
}

// Counts returns how many cells have each kind.
func (z *Zones) Counts() map[Kind]int {
	out := make(map[Kind]int, numKinds)
	for _, c := range z.Cells {
		out[c.Kind]++
	}
	return out
}
