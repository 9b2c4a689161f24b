package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	tests := []struct {
		name           string
		vw, vh, ww, wh float32
		wantZoom       float32
	}{
		{"same size", 800, 600, 800, 600, 1},
		{"world twice as big", 800, 600, 1600, 1200, 0.5},
		{"wide world", 800, 600, 1600, 600, 0.5},
		{"tall world", 800, 600, 800, 1200, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh, false)
			if !near(cam.Zoom, tt.wantZoom) {
				t.Errorf("zoom = %f, want %f", cam.Zoom, tt.wantZoom)
			}
			if cam.X != tt.ww/2 || cam.Y != tt.wh/2 {
				t.Errorf("center = (%f, %f), want (%f, %f)", cam.X, cam.Y, tt.ww/2, tt.wh/2)
			}
		})
	}
}

func TestWorldToScreenWithOrigin(t *testing.T) {
	cam := New(800, 600, 800, 600, false)
	cam.SetViewport(100, 50, 800, 600)

	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 100) || !near(sy, 50) {
		t.Errorf("world origin at (%f, %f), want (100, 50)", sx, sy)
	}
	if !cam.Contains(150, 60) || cam.Contains(50, 60) {
		t.Error("Contains ignores the viewport origin")
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		cam := New(1280, 720, 2560, 1440, wrap)
		cam.SetZoom(1)
		cam.SetViewport(20, 10, 1280, 720)

		for _, p := range []struct{ sx, sy float32 }{
			{660, 370},
			{100, 100},
			{1200, 600},
		} {
			wx, wy := cam.ScreenToWorld(p.sx, p.sy)
			sx, sy := cam.WorldToScreen(wx, wy)
			if !near(sx, p.sx) || !near(sy, p.sy) {
				t.Errorf("wrap=%v roundtrip (%f,%f) -> (%f,%f) -> (%f,%f)",
					wrap, p.sx, p.sy, wx, wy, sx, sy)
			}
		}
	}
}

func TestToroidalShortestPath(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)
	cam.SetZoom(1)
	cam.X = 100

	// Right edge is closer going left
	sx, _ := cam.WorldToScreen(2500, 720)
	if sx >= 640 {
		t.Errorf("expected entity on left of screen, got x=%f", sx)
	}
}

func TestBoundedWorldHasNoShortcut(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, false)
	cam.SetZoom(1)
	cam.Pan(-10000, 0)

	sx, _ := cam.WorldToScreen(2500, 720)
	if sx <= 640 {
		t.Errorf("bounded world wrapped entity to x=%f", sx)
	}
	if got := cam.GhostPositions(0, 720, 10); got != nil {
		t.Errorf("bounded world ghosts = %v, want none", got)
	}
}

func TestPan(t *testing.T) {
	t.Run("wraps", func(t *testing.T) {
		cam := New(1280, 720, 2560, 1440, true)
		cam.SetZoom(1)
		cam.X = 100
		cam.Pan(-200, 0)
		if cam.X < 2000 {
			t.Errorf("expected X to wrap around, got %f", cam.X)
		}
	})

	t.Run("clamps", func(t *testing.T) {
		cam := New(1280, 720, 2560, 1440, false)
		cam.SetZoom(1)
		cam.Pan(-5000, -5000)
		if !near(cam.X, 640) || !near(cam.Y, 360) {
			t.Errorf("center = (%f, %f), want (640, 360)", cam.X, cam.Y)
		}
	})

	t.Run("fit view stays centered", func(t *testing.T) {
		cam := New(800, 600, 800, 600, false)
		cam.Pan(300, 300)
		if cam.X != 400 || cam.Y != 300 {
			t.Errorf("center = (%f, %f), want (400, 300)", cam.X, cam.Y)
		}
	})
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)

	if cam.MinZoom != 0.5 {
		t.Errorf("MinZoom = %f, want 0.5", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("zoom = %f, want clamp to 0.5", cam.Zoom)
	}

	cam.SetZoom(10)
	if cam.Zoom != 4 {
		t.Errorf("zoom = %f, want clamp to 4", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, false)
	cam.SetZoom(1)

	// Visible range is (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestGhostPositionsAtSeam(t *testing.T) {
	cam := New(800, 600, 800, 600, true)

	// Agent straddling the left seam shows again at the right edge
	ghosts := cam.GhostPositions(2, 300, 5)
	if len(ghosts) != 1 {
		t.Fatalf("ghosts = %v, want 1", ghosts)
	}
	if !near(ghosts[0].X, 802) {
		t.Errorf("ghost x = %f, want 802", ghosts[0].X)
	}

	if got := cam.GhostPositions(400, 300, 5); len(got) != 0 {
		t.Errorf("interior agent ghosts = %v", got)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440, true)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("position = (%f, %f), want (1280, 720)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("zoom = %f, want 0.5", cam.Zoom)
	}
}
