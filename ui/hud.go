package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Population    int
	AvgGeneration float64
	MaxGeneration int
	Mutations     int
	Tick          int64
	SimTime       float64
	Speed         float64
	FPS           int32
	Paused        bool
	Seed          int64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top left of the screen.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Population: %d | Avg gen: %.2f | Max gen: %d | Mutations: %d",
			data.Population, data.AvgGeneration, data.MaxGeneration, data.Mutations),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | Speed: %.1fx | FPS: %d | Seed: %d",
			data.Tick, data.SimTime, data.Speed, data.FPS, data.Seed),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds tick timing for display.
type PerfPanelData struct {
	AvgTickUS   float64
	MaxTickUS   float64
	TicksPerSec float64
	FrameRate   float64
	Phases      map[string]float64 // share of tick time, percent
	PhaseOrder  []string
}

// PerfDataFrom converts collector stats into panel data.
func PerfDataFrom(s telemetry.PerfStats) PerfPanelData {
	data := PerfPanelData{
		AvgTickUS:   float64(s.AvgTickDuration.Microseconds()),
		MaxTickUS:   float64(s.MaxTickDuration.Microseconds()),
		TicksPerSec: s.TicksPerSecond,
		FrameRate:   s.FPS,
		Phases:      make(map[string]float64, len(s.PhasePct)),
	}
	for _, ph := range []telemetry.Phase{telemetry.PhasePopulation, telemetry.PhaseTelemetry, telemetry.PhaseSinks} {
		data.PhaseOrder = append(data.PhaseOrder, ph.String())
		data.Phases[ph.String()] = s.PhasePct[ph]
	}
	return data
}

// PerfPanel renders the tick performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %.0fus | Max: %.0fus", data.AvgTickUS, data.MaxTickUS), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("TPS: %.1f | Frames/s: %.1f", data.TicksPerSec, data.FrameRate), x, y, 12, rl.LightGray)
	y += 16

	for _, name := range data.PhaseOrder {
		pct := data.Phases[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", name, pct), x, y, 12, color)
		y += 14
	}
}
