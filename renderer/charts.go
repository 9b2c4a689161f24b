package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/telemetry"
)

// Series is one plotted metric.
type Series struct {
	Label  string
	Color  rl.Color
	Values []float64
}

// Charts receives the sample history and draws population, average
// generation and mutation sparklines.
type Charts struct {
	maxPoints int
	series    [3]Series
	latest    telemetry.Sample
}

// NewCharts creates charts plotting at most maxPoints recent samples.
func NewCharts(maxPoints int) *Charts {
	return &Charts{
		maxPoints: max(maxPoints, 2),
		series: [3]Series{
			{Label: "Population", Color: rl.Color{R: 120, G: 200, B: 120, A: 255}},
			{Label: "Avg generation", Color: rl.Color{R: 120, G: 170, B: 240, A: 255}},
			{Label: "Mutations", Color: rl.Color{R: 240, G: 150, B: 90, A: 255}},
		},
	}
}

// Stats copies the tail of history into the plotted series.
func (c *Charts) Stats(latest telemetry.Sample, history game.HistoryView) {
	c.latest = latest

	n := history.Len()
	start := max(n-c.maxPoints, 0)
	for i := range c.series {
		c.series[i].Values = c.series[i].Values[:0]
	}
	for i := start; i < n; i++ {
		s := history.At(i)
		c.series[0].Values = append(c.series[0].Values, float64(s.Population))
		c.series[1].Values = append(c.series[1].Values, s.AvgGeneration)
		c.series[2].Values = append(c.series[2].Values, float64(s.Mutations))
	}
}

// Series returns the plotted series in display order.
func (c *Charts) Series() []Series {
	return c.series[:]
}

// Draw renders the three sparklines stacked in the given rectangle.
func (c *Charts) Draw(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, rl.Color{R: 20, G: 25, B: 30, A: 220})
	rl.DrawRectangleLines(x, y, width, height, rl.Color{R: 60, G: 70, B: 80, A: 255})

	rowH := height / int32(len(c.series))
	current := [3]string{
		fmt.Sprintf("%d", c.latest.Population),
		fmt.Sprintf("%.2f", c.latest.AvgGeneration),
		fmt.Sprintf("%d", c.latest.Mutations),
	}

	for i, s := range c.series {
		top := y + int32(i)*rowH
		rl.DrawText(s.Label+": "+current[i], x+6, top+4, 12, rl.LightGray)
		drawSparkline(s, float32(x+6), float32(top+20), float32(width-12), float32(rowH-26))
	}
}

func drawSparkline(s Series, x, y, w, h float32) {
	if len(s.Values) < 2 || w <= 0 || h <= 0 {
		return
	}
	pts := sparkline(s.Values, x, y, w, h)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineV(pts[i-1], pts[i], s.Color)
	}
}

// sparkline maps values onto a w by h box at (x, y). The vertical axis runs
// from zero, or the smallest value if negative, up to the largest value.
func sparkline(values []float64, x, y, w, h float32) []rl.Vector2 {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := w / float32(max(len(values)-1, 1))
	pts := make([]rl.Vector2, len(values))
	for i, v := range values {
		frac := float32((v - lo) / span)
		pts[i] = rl.Vector2{X: x + float32(i)*step, Y: y + h - frac*h}
	}
	return pts
}
