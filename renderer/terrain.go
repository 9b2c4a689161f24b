package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/camera"
	"github.com/pthm-cable/genepool/world"
)

// ZoneRenderer tints the terrain zones behind the agents.
type ZoneRenderer struct {
	zones *world.Zones
	grid  rl.Color
}

// NewZoneRenderer creates a renderer for the given zone grid.
func NewZoneRenderer(zones *world.Zones) *ZoneRenderer {
	return &ZoneRenderer{
		zones: zones,
		grid:  rl.Color{R: 255, G: 255, B: 255, A: 18},
	}
}

// Draw fills every zone with its kind's tint and outlines the grid.
func (r *ZoneRenderer) Draw(cam *camera.Camera) {
	if r.zones == nil {
		return
	}

	for _, z := range r.zones.Cells {
		x0, y0, x1, y1 := zoneRect(cam, z)
		w, h := x1-x0, y1-y0
		if w <= 0 || h <= 0 {
			continue
		}
		t := z.Kind.Tint()
		rl.DrawRectangle(x0, y0, w, h, rl.Color{R: t.R, G: t.G, B: t.B, A: t.A})
		rl.DrawRectangleLines(x0, y0, w, h, r.grid)
	}
}

// zoneRect maps a zone to screen pixels. Edges are rounded independently so
// neighbouring zones share a border without gaps.
func zoneRect(cam *camera.Camera, z world.Zone) (x0, y0, x1, y1 int32) {
	sx, sy := cam.WorldToScreen(float32(z.X), float32(z.Y))
	ex := sx + float32(z.W)*cam.Zoom
	ey := sy + float32(z.H)*cam.Zoom
	return int32(sx + 0.5), int32(sy + 0.5), int32(ex + 0.5), int32(ey + 0.5)
}
