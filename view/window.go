// Package view runs the raylib window: the world viewport, the side panel
// and the chart strip.
package view

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/camera"
	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/renderer"
	"github.com/pthm-cable/genepool/ui"
)

// Layout sizes around the world viewport, in pixels.
const (
	SidebarWidth = 240
	ChartsHeight = 150
)

// Window draws one game. The world viewport is the configured screen size;
// the window adds the sidebar and the chart strip.
type Window struct {
	game *game.Game

	cam       *camera.Camera
	scene     *renderer.Scene
	charts    *renderer.Charts
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	perf      *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	width, height int32
	viewW, viewH  int32
	dragging      bool
}

// WindowSize returns the window dimensions for a world viewport of w by h.
func WindowSize(w, h int) (int32, int32) {
	return int32(w) + SidebarWidth, int32(h) + ChartsHeight
}

// New attaches a window to g. The raylib window must already be open.
func New(g *game.Game) *Window {
	cfg := g.Config()
	viewW, viewH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	width, height := WindowSize(cfg.Screen.Width, cfg.Screen.Height)

	w := &Window{
		game:      g,
		cam:       camera.New(float32(viewW), float32(viewH), float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH), cfg.World.Boundary == "wrap"),
		scene:     renderer.NewScene(g.Zones()),
		charts:    renderer.NewCharts(int(width - SidebarWidth)),
		hud:       ui.NewHUD(),
		controls:  ui.NewControlsPanel(viewW+10, 10, SidebarWidth-20),
		inspector: ui.NewInspector(viewW+10, 0, SidebarWidth-20),
		perf:      ui.NewPerfPanel(viewW-200, 10),
		overlays:  ui.NewOverlayRegistry(),
		width:     width,
		height:    height,
		viewW:     viewW,
		viewH:     viewH,
	}

	g.AddRenderSink(w.scene)
	g.AddStatsSink(w.charts)
	return w
}

// Run drives the game once per displayed frame until the window closes or
// maxTicks ticks have run (0 = unlimited).
func (w *Window) Run(maxTicks int64) {
	for !rl.WindowShouldClose() {
		w.Update(time.Now())
		w.Draw()

		if maxTicks > 0 && w.game.Tick() >= maxTicks {
			return
		}
	}
}

// Update handles input, then lets the clock tick if a tick is due.
func (w *Window) Update(now time.Time) {
	w.controls.HandleKeys(w.game, w.overlays)
	w.handleCamera()
	w.handleSelection()

	w.game.Frame(now)
}

func (w *Window) handleCamera() {
	mouse := rl.GetMousePosition()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && w.cam.Contains(mouse.X, mouse.Y) {
		// Keep the point under the cursor fixed while zooming
		wx, wy := w.cam.ScreenToWorld(mouse.X, mouse.Y)
		w.cam.ZoomBy(1 + wheel*0.1)
		nx, ny := w.cam.ScreenToWorld(mouse.X, mouse.Y)
		w.cam.Pan((wx-nx)*w.cam.Zoom, (wy-ny)*w.cam.Zoom)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && w.cam.Contains(mouse.X, mouse.Y) {
		w.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		w.dragging = false
	}
	if w.dragging {
		delta := rl.GetMouseDelta()
		w.cam.Pan(-delta.X, -delta.Y)
	}

	if rl.IsKeyPressed(rl.KeyZero) {
		w.cam.Reset()
	}
}

func (w *Window) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if !w.cam.Contains(mouse.X, mouse.Y) {
		return
	}

	wx, wy := w.cam.ScreenToWorld(mouse.X, mouse.Y)
	if id, ok := ui.Pick(w.scene.Agents(), float64(wx), float64(wy), float64(4/w.cam.Zoom)); ok {
		w.inspector.Select(id)
	} else {
		w.inspector.Clear()
	}
}

// Draw renders one frame.
func (w *Window) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

	selected, hasSelected := w.inspector.Selected()
	opts := renderer.SceneOptions{
		Zones:       w.overlays.IsEnabled(ui.OverlayZones),
		DimCooldown: w.overlays.IsEnabled(ui.OverlayCooldown),
		Selected:    selected,
		HasSelected: hasSelected,
	}
	if w.overlays.IsEnabled(ui.OverlayMating) {
		opts.MatingRadius = w.game.Config().Reproduction.MatingRadius
	}
	w.scene.Draw(w.cam, opts)

	if w.overlays.IsEnabled(ui.OverlayCharts) {
		w.charts.Draw(0, w.viewH, w.width-SidebarWidth, ChartsHeight)
	}

	if w.overlays.IsEnabled(ui.OverlayHUD) {
		w.hud.Draw(w.hudData())
		w.hud.DrawControls(w.viewH, "[Space] pause  [,/.] speed  [wheel/right drag] camera  [0] reset  [Tab] panel")
	}

	if w.overlays.IsEnabled(ui.OverlayPerf) {
		w.perf.Draw(ui.PerfDataFrom(w.game.Perf()))
	}

	// Sidebar
	rl.DrawRectangle(w.viewW, 0, SidebarWidth, w.height, rl.Color{R: 16, G: 19, B: 24, A: 255})
	y := w.controls.Draw(w.game, w.overlays)

	if !w.overlays.IsEnabled(ui.OverlayInspector) || !hasSelected {
		return
	}
	agent, ok := w.game.Agent(selected)
	if !ok {
		// Died since it was picked
		w.inspector.Clear()
		return
	}
	w.inspector.SetPosition(w.viewW+10, y+10)
	w.inspector.Draw(ui.InspectorData{
		Agent:    agent,
		Lifetime: w.game.Lifetime(selected),
	})
}

func (w *Window) hudData() ui.HUDData {
	latest, _ := w.game.Recorder().Latest()
	return ui.HUDData{
		Title:         "Genepool",
		Population:    latest.Population,
		AvgGeneration: latest.AvgGeneration,
		MaxGeneration: latest.MaxGeneration,
		Mutations:     latest.Mutations,
		Tick:          latest.Tick,
		SimTime:       latest.SimTime,
		Speed:         w.game.Speed(),
		FPS:           rl.GetFPS(),
		Paused:        w.game.Paused(),
		Seed:          w.game.Seed(),
	}
}
