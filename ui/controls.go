package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controller is the run control surface the panel drives.
type Controller interface {
	TogglePause()
	Paused() bool
	SetSpeed(s float64)
	Speed() float64
	SpeedRange() (lo, hi float64)
}

// speedStep is the multiplier change per keyboard press.
const speedStep = 0.25

// ControlsPanel renders the pause button, the speed slider and the overlay
// toggles, and applies keyboard shortcuts.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// HandleKeys applies the run shortcuts: space pauses, comma and period
// step the speed down and up, Tab shows or hides the panel and the overlay
// keys toggle their overlays.
func (c *ControlsPanel) HandleKeys(ctl Controller, overlays *OverlayRegistry) {
	if rl.IsKeyPressed(rl.KeySpace) {
		ctl.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		ctl.SetSpeed(ctl.Speed() - speedStep)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		ctl.SetSpeed(ctl.Speed() + speedStep)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		c.Toggle()
	}
	for _, desc := range overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			overlays.Toggle(desc.ID)
		}
	}
}

// Height returns the panel height for the given overlays.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	lineHeight := c.renderer.Theme.LineHeight
	totalItems := 0
	for _, cat := range overlays.Categories() {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	return int32(totalItems)*lineHeight + c.renderer.Theme.Padding*3 + lineHeight + 80
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(ctl Controller, overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := float32(c.x + padding)
	y := float32(c.y + padding)

	label := "Pause"
	if ctl.Paused() {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 24}, label) {
		ctl.TogglePause()
	}
	y += 32

	lo, hi := ctl.SpeedRange()
	rl.DrawText(fmt.Sprintf("Speed %.2fx", ctl.Speed()), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 24, Y: y, Width: inner - 56, Height: 16},
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.0f", hi),
		float32(ctl.Speed()), float32(lo), float32(hi),
	)
	if speed != float32(ctl.Speed()) {
		ctl.SetSpeed(float64(speed))
	}
	y += 28

	cy := int32(y)
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, cy, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		cy += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, cy, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			cy += lineHeight
		}

		cy += 4 // Gap between categories
	}

	return cy
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "view":
		return "View"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
