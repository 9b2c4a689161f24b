// Package renderer draws the simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/camera"
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/world"
)

// SceneOptions selects what the scene draws besides the agents.
type SceneOptions struct {
	Zones        bool
	MatingRadius float64 // ring radius in world units (0 = off)
	DimCooldown  bool    // fade agents in their refractory period
	Selected     uint32
	HasSelected  bool
}

// Scene receives agent snapshots from the game and draws the latest one.
type Scene struct {
	agents  []population.AgentView
	zones   *ZoneRenderer
	outline rl.Color
}

// NewScene creates a scene over the given zone grid.
func NewScene(zones *world.Zones) *Scene {
	return &Scene{
		zones:   NewZoneRenderer(zones),
		outline: rl.Color{R: 255, G: 255, B: 255, A: 200},
	}
}

// Render copies the agents for the next Draw.
func (s *Scene) Render(agents []population.AgentView) {
	s.agents = append(s.agents[:0], agents...)
}

// Agents returns the agents the scene last received.
func (s *Scene) Agents() []population.AgentView {
	return s.agents
}

// Draw renders the backdrop and every agent through cam.
func (s *Scene) Draw(cam *camera.Camera, opts SceneOptions) {
	rl.BeginScissorMode(int32(cam.OriginX), int32(cam.OriginY), int32(cam.ViewportW), int32(cam.ViewportH))
	defer rl.EndScissorMode()

	if opts.Zones {
		s.zones.Draw(cam)
	}

	for i := range s.agents {
		a := &s.agents[i]
		r := float32(a.Radius)
		if !cam.IsVisible(float32(a.X), float32(a.Y), max(r, float32(opts.MatingRadius))) {
			continue
		}

		sx, sy := cam.WorldToScreen(float32(a.X), float32(a.Y))
		s.drawAgent(cam, a, sx, sy, opts)
		for _, g := range cam.GhostPositions(float32(a.X), float32(a.Y), r) {
			s.drawAgent(cam, a, g.X, g.Y, opts)
		}
	}
}

func (s *Scene) drawAgent(cam *camera.Camera, a *population.AgentView, sx, sy float32, opts SceneOptions) {
	radius := max(float32(a.Radius)*cam.Zoom, 1)
	color := agentColor(a, opts.DimCooldown)
	center := rl.Vector2{X: sx, Y: sy}

	rl.DrawCircleV(center, radius, color)

	if opts.MatingRadius > 0 {
		rl.DrawCircleLinesV(center, float32(opts.MatingRadius)*cam.Zoom, rl.Fade(color, 0.35))
	}
	if opts.HasSelected && a.ID == opts.Selected {
		rl.DrawCircleLinesV(center, radius+3, s.outline)
	}
}

// agentColor returns the display color, faded while the agent cannot mate.
func agentColor(a *population.AgentView, dimCooldown bool) rl.Color {
	c := rl.Color{R: a.Color.R, G: a.Color.G, B: a.Color.B, A: 255}
	if dimCooldown && a.Cooldown > 0 {
		c.A = 90
	}
	return c
}
