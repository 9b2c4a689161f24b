package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/genetics"
	"github.com/pthm-cable/genepool/population"
	"github.com/pthm-cable/genepool/telemetry"
)

var (
	_ game.RenderSink = (*Terminal)(nil)
	_ game.StatsSink  = (*Terminal)(nil)
)

type fakeControl struct {
	paused  bool
	speed   float64
	toggles int
}

func (f *fakeControl) TogglePause()                 { f.paused = !f.paused; f.toggles++ }
func (f *fakeControl) Paused() bool                 { return f.paused }
func (f *fakeControl) SetSpeed(s float64)           { f.speed = min(max(s, 0.1), 10) }
func (f *fakeControl) Speed() float64               { return f.speed }
func (f *fakeControl) SpeedRange() (lo, hi float64) { return 0.1, 10 }

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestCell(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantC, wantR int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 400, 300, 40, 11},
		{"far edge clamps", 800, 600, 79, 22},
		{"negative clamps", -5, -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := Cell(tt.x, tt.y, 800, 600, 80, 23)
			if c != tt.wantC || r != tt.wantR {
				t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, c, r, tt.wantC, tt.wantR)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		n    int
		want rune
	}{
		{0, ' '},
		{1, '●'},
		{2, '2'},
		{9, '9'},
		{10, '+'},
	}
	for _, tt := range tests {
		if got := Glyph(tt.n); got != tt.want {
			t.Errorf("Glyph(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	got := string(Sparkline([]float64{0, 7, 14}))
	if got != "▁▄█" {
		t.Errorf("Sparkline = %q, want %q", got, "▁▄█")
	}
	if got := Sparkline([]float64{0, 0}); string(got) != "▁▁" {
		t.Errorf("flat zero sparkline = %q", string(got))
	}
}

func TestDrawPlacesAgents(t *testing.T) {
	screen := newScreen(t)
	term := New(screen, nil, 800, 600)

	term.Render([]population.AgentView{
		{ID: 1, X: 10, Y: 10, Color: genetics.ColorA},
		{ID: 2, X: 400, Y: 300, Color: genetics.ColorB},
		{ID: 3, X: 401, Y: 301, Color: genetics.ColorA},
	})
	rec := telemetry.NewRecorder(10)
	sample := rec.Record(5, 1, term.agents)
	term.Stats(sample, rec)

	term.Draw(&fakeControl{speed: 1})

	if r, _, _, _ := screen.GetContent(1, 0); r != '●' {
		t.Errorf("single agent cell = %q, want ●", r)
	}
	if r, _, _, _ := screen.GetContent(40, 11); r != '2' {
		t.Errorf("shared cell = %q, want 2", r)
	}
	if r, _, _, _ := screen.GetContent(1, 23); r != 't' {
		t.Errorf("status line starts with %q, want tick", r)
	}
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t)
	term := New(screen, nil, 800, 600)
	ctl := &fakeControl{speed: 1}

	key := func(r rune) tcell.Event { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

	if !term.HandleEvent(key(' '), ctl) || !ctl.paused {
		t.Error("space should pause and keep running")
	}
	term.HandleEvent(key('>'), ctl)
	if ctl.speed != 1.25 {
		t.Errorf("speed after > = %v, want 1.25", ctl.speed)
	}
	term.HandleEvent(key('<'), ctl)
	term.HandleEvent(key(','), ctl)
	if ctl.speed != 0.75 {
		t.Errorf("speed after < , = %v, want 0.75", ctl.speed)
	}
	if term.HandleEvent(key('q'), ctl) {
		t.Error("q should quit")
	}
	if term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ctl) {
		t.Error("escape should quit")
	}
}
