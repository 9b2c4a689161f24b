// Package tui draws the simulation as a character grid in a terminal.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
	"github.com/pthm-cable/genepool/world"
)

// Controller is the run control surface the terminal drives.
type Controller interface {
	TogglePause()
	Paused() bool
	SetSpeed(s float64)
	Speed() float64
	SpeedRange() (lo, hi float64)
}

// speedStep is the multiplier change per key press.
const speedStep = 0.25

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Terminal is a render and stats sink that paints agents onto a tcell screen.
// The bottom row is a status line.
type Terminal struct {
	screen         tcell.Screen
	zones          *world.Zones
	worldW, worldH float64

	agents []population.AgentView
	latest telemetry.Sample
	pops   []float64 // population tail for the status sparkline
	counts []int     // agents per cell, reused across draws
}

// New creates a terminal sink over an initialized screen.
func New(screen tcell.Screen, zones *world.Zones, worldW, worldH float64) *Terminal {
	return &Terminal{
		screen: screen,
		zones:  zones,
		worldW: worldW,
		worldH: worldH,
	}
}

// Render copies the agents for the next Draw.
func (t *Terminal) Render(agents []population.AgentView) {
	t.agents = append(t.agents[:0], agents...)
}

// Stats keeps the newest sample and the population tail.
func (t *Terminal) Stats(latest telemetry.Sample, history game.HistoryView) {
	t.latest = latest

	w, _ := t.screen.Size()
	n := history.Len()
	t.pops = t.pops[:0]
	for i := max(n-max(w/4, 1), 0); i < n; i++ {
		t.pops = append(t.pops, float64(history.At(i).Population))
	}
}

// Draw paints the grid and the status line.
func (t *Terminal) Draw(ctl Controller) {
	t.screen.Clear()
	w, h := t.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		t.screen.Show()
		return
	}

	t.drawZones(w, rows)
	t.drawAgents(w, rows)
	t.drawStatus(w, h-1, ctl)

	t.screen.Show()
}

func (t *Terminal) drawZones(cols, rows int) {
	if t.zones == nil {
		return
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := (float64(c) + 0.5) / float64(cols) * t.worldW
			y := (float64(r) + 0.5) / float64(rows) * t.worldH
			tint := t.zones.At(x, y).Kind.Tint()
			bg := tcell.NewRGBColor(
				int32(tint.R)*int32(tint.A)/255,
				int32(tint.G)*int32(tint.A)/255,
				int32(tint.B)*int32(tint.A)/255,
			)
			t.screen.SetContent(c, r, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

func (t *Terminal) drawAgents(cols, rows int) {
	need := cols * rows
	if cap(t.counts) < need {
		t.counts = make([]int, need)
	}
	t.counts = t.counts[:need]
	clear(t.counts)

	for i := range t.agents {
		a := &t.agents[i]
		c, r := Cell(a.X, a.Y, t.worldW, t.worldH, cols, rows)
		idx := r*cols + c
		t.counts[idx]++

		_, _, style, _ := t.screen.GetContent(c, r)
		if t.counts[idx] == 1 {
			// Lowest identity in the cell sets the color
			fg := tcell.NewRGBColor(int32(a.Color.R), int32(a.Color.G), int32(a.Color.B))
			style = style.Foreground(fg)
		}
		t.screen.SetContent(c, r, Glyph(t.counts[idx]), nil, style)
	}
}

func (t *Terminal) drawStatus(width, row int, ctl Controller) {
	state := "running"
	if ctl.Paused() {
		state = "PAUSED"
	}
	s := t.latest
	text := fmt.Sprintf(" tick %d | pop %d | gen %.2f (max %d) | mut %d | %.2fx %s | space pause  < > speed  q quit ",
		s.Tick, s.Population, s.AvgGeneration, s.MaxGeneration, s.Mutations, ctl.Speed(), state)

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}

	spark := Sparkline(t.pops)
	if width-col < len(spark)+1 {
		spark = spark[max(len(spark)-(width-col-1), 0):]
	}
	col = width - len(spark)
	for _, r := range spark {
		t.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		col++
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (t *Terminal) HandleEvent(ev tcell.Event, ctl Controller) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				ctl.TogglePause()
			case '<', ',':
				ctl.SetSpeed(ctl.Speed() - speedStep)
			case '>', '.':
				ctl.SetSpeed(ctl.Speed() + speedStep)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Run attaches the terminal to g and drives it one frame per refresh until
// the user quits or ctx is done.
func Run(ctx context.Context, t *Terminal, g *game.Game, refresh time.Duration) error {
	g.AddRenderSink(t)
	g.AddStatsSink(t)

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	t.Draw(g)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !t.HandleEvent(ev, g) {
				return nil
			}
		case now := <-ticker.C:
			g.Frame(now)
			t.Draw(g)
		}
	}
}

// Cell maps a world position onto a cols by rows grid.
func Cell(x, y, worldW, worldH float64, cols, rows int) (c, r int) {
	c = int(x / worldW * float64(cols))
	r = int(y / worldH * float64(rows))
	return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
}

// Glyph returns the rune for a cell holding n agents.
func Glyph(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n == 1:
		return '●'
	case n <= 9:
		return rune('0' + n)
	}
	return '+'
}

// Sparkline renders values as block characters scaled to the largest value.
func Sparkline(values []float64) []rune {
	out := make([]rune, len(values))
	hi := 0.0
	for _, v := range values {
		hi = max(hi, v)
	}
	for i, v := range values {
		level := 0
		if hi > 0 {
			level = int(v / hi * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[min(max(level, 0), len(sparkRunes)-1)]
	}
	return out
}
