package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Agent    population.AgentView
	Lifetime *telemetry.LifetimeStats // nil if untracked
}

// Inspector renders the panel for the selected agent.
type Inspector struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32

	selected    uint32
	hasSelected bool
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	panel := AgentPanel()
	panel.Width = width
	return &Inspector{
		renderer: NewRenderer(),
		panel:    panel,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Select marks an agent as the inspected one.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Clear drops the selection.
func (ins *Inspector) Clear() {
	ins.hasSelected = false
}

// Selected returns the inspected agent, if any.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	return ins.renderer.DrawDescribedPanel(ins.x, ins.y, ins.panel, data)
}

// Pick returns the agent whose body contains (wx, wy), widened by slack.
// The nearest such agent wins.
func Pick(agents []population.AgentView, wx, wy, slack float64) (uint32, bool) {
	best := math.Inf(1)
	var id uint32
	found := false
	for _, a := range agents {
		d := math.Hypot(a.X-wx, a.Y-wy)
		if d <= a.Radius+slack && d < best {
			best, id, found = d, a.ID, true
		}
	}
	return id, found
}

// AgentPanel returns the inspector layout for one agent.
func AgentPanel() PanelDescriptor {
	agent := func(data any) population.AgentView { return data.(InspectorData).Agent }
	lifetime := func(data any) *telemetry.LifetimeStats { return data.(InspectorData).Lifetime }
	tracked := func(data any) bool { return lifetime(data) != nil }

	return PanelDescriptor{
		ID:    "agent",
		Title: "Agent",
		Sections: []SectionDescriptor{
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{
						ID: "id", Label: "ID", Widget: WidgetText,
						TextGetter: func(d any) string { return fmt.Sprintf("#%d", agent(d).ID) },
					},
					{
						ID: "sex", Label: "Sex", Widget: WidgetText,
						TextGetter: func(d any) string { return agent(d).Sex.String() },
					},
					{
						ID: "generation", Label: "Generation", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(agent(d).Generation) },
					},
					{
						ID: "color", Label: "Color", Widget: WidgetColorSwatch,
						ColorGetter: func(d any) rl.Color {
							c := agent(d).Color
							return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
						},
						TextGetter: func(d any) string { return agent(d).Color.Hex() },
					},
				},
			},
			{
				ID:    "life",
				Title: "Life",
				Fields: []FieldDescriptor{
					{
						ID: "age", Label: "Age", Widget: WidgetBar, Range: DefaultRange(),
						Getter: func(d any) float32 {
							a := agent(d)
							if a.Lifespan <= 0 {
								return 0
							}
							return float32(a.Age / a.Lifespan)
						},
						TextGetter: func(d any) string {
							a := agent(d)
							return fmt.Sprintf("%.0f/%.0fs", a.Age, a.Lifespan)
						},
					},
					{
						ID: "cooldown", Label: "Cooldown", Widget: WidgetText, Format: "%.2fs",
						Getter: func(d any) float32 { return float32(agent(d).Cooldown) },
					},
				},
			},
			{
				ID:    "traits",
				Title: "Traits",
				Fields: []FieldDescriptor{
					{
						ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.3f",
						Getter: func(d any) float32 { return float32(agent(d).Speed) },
					},
					{
						ID: "fertility", Label: "Fertility", Widget: WidgetBar, Range: DefaultRange(), Format: "%.2f",
						Getter: func(d any) float32 { return float32(agent(d).Fertility) },
					},
				},
			},
			{
				ID:      "lineage",
				Title:   "Lineage",
				Visible: tracked,
				Fields: []FieldDescriptor{
					{
						ID: "parents", Label: "Parents", Widget: WidgetText,
						TextGetter: func(d any) string {
							lt := lifetime(d)
							if lt.ParentA == 0 && lt.ParentB == 0 {
								return "seed"
							}
							return fmt.Sprintf("#%d x #%d", lt.ParentA, lt.ParentB)
						},
					},
					{
						ID: "born", Label: "Born", Widget: WidgetText,
						TextGetter: func(d any) string { return fmt.Sprintf("tick %d", lifetime(d).BirthTick) },
					},
					{
						ID: "children", Label: "Children", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(lifetime(d).Children) },
					},
				},
			},
		},
	}
}
