// Package camera maps world coordinates to a screen viewport with pan and zoom.
package camera

import "math"

// Camera controls the viewport into the simulation world. In a wrapping
// world it takes the shortest toroidal path; in a bounded world the view is
// kept over the world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (screen pixels per world unit)
	Zoom float32

	// Viewport rectangle on screen
	OriginX, OriginY     float32
	ViewportW, ViewportH float32

	WorldW, WorldH float32
	Wrap           bool

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole world inside the viewport.
func New(viewportW, viewportH, worldW, worldH float32, wrap bool) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		Wrap:      wrap,
	}
	c.Reset()
	return c
}

// Fit returns the zoom at which the whole world just fits the viewport.
func (c *Camera) Fit() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx, dy := c.delta(wx, wy)
	return c.OriginX + c.ViewportW/2 + dx*c.Zoom, c.OriginY + c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := (sx - c.OriginX - c.ViewportW/2) / c.Zoom
	dy := (sy - c.OriginY - c.ViewportH/2) / c.Zoom

	wx, wy = c.X+dx, c.Y+dy
	if c.Wrap {
		wx, wy = mod(wx, c.WorldW), mod(wy, c.WorldH)
	}
	return wx, wy
}

// Contains reports whether a screen point lies inside the viewport.
func (c *Camera) Contains(sx, sy float32) bool {
	return sx >= c.OriginX && sx < c.OriginX+c.ViewportW &&
		sy >= c.OriginY && sy < c.OriginY+c.ViewportH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx, dy := c.delta(wx, wy)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Point is a screen position.
type Point struct{ X, Y float32 }

// GhostPositions returns extra screen positions for a circle straddling the
// seam of a wrapping world, so it shows on both sides. Bounded worlds have none.
func (c *Camera) GhostPositions(wx, wy, radius float32) []Point {
	if !c.Wrap {
		return nil
	}

	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	dx, dy := c.delta(wx, wy)
	cx, cy := c.OriginX+c.ViewportW/2, c.OriginY+c.ViewportH/2

	var ghostX, ghostY float32
	hGhost, vGhost := false, false
	switch {
	case dx > halfW-radius && dx < halfW+radius:
		hGhost, ghostX = true, cx+(dx-c.WorldW)*c.Zoom
	case dx < -halfW+radius && dx > -halfW-radius:
		hGhost, ghostX = true, cx+(dx+c.WorldW)*c.Zoom
	}
	switch {
	case dy > halfH-radius && dy < halfH+radius:
		vGhost, ghostY = true, cy+(dy-c.WorldH)*c.Zoom
	case dy < -halfH+radius && dy > -halfH-radius:
		vGhost, ghostY = true, cy+(dy+c.WorldH)*c.Zoom
	}

	sx, sy := cx+dx*c.Zoom, cy+dy*c.Zoom
	var ghosts []Point
	if hGhost {
		ghosts = append(ghosts, Point{ghostX, sy})
	}
	if vGhost {
		ghosts = append(ghosts, Point{sx, ghostY})
	}
	if hGhost && vGhost {
		ghosts = append(ghosts, Point{ghostX, ghostY})
	}
	return ghosts
}

// SetViewport moves and resizes the on-screen viewport.
func (c *Camera) SetViewport(x, y, w, h float32) {
	c.OriginX, c.OriginY = x, y
	if w == c.ViewportW && h == c.ViewportH {
		return
	}
	c.ViewportW, c.ViewportH = w, h
	c.MinZoom = c.Fit()
	c.MaxZoom = c.MinZoom * 8
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.settle()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.settle()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and fits the whole world.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.MinZoom = c.Fit()
	c.MaxZoom = c.MinZoom * 8
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// In a wrapping world min may be negative or max may exceed the world size.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// settle wraps the center in a toroidal world, or keeps the view over a
// bounded one. An axis wider than the world is centered.
func (c *Camera) settle() {
	if c.Wrap {
		c.X = mod(c.X, c.WorldW)
		c.Y = mod(c.Y, c.WorldH)
		return
	}
	c.X = settleAxis(c.X, c.ViewportW/(2*c.Zoom), c.WorldW)
	c.Y = settleAxis(c.Y, c.ViewportH/(2*c.Zoom), c.WorldH)
}

func settleAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

func (c *Camera) delta(wx, wy float32) (dx, dy float32) {
	if c.Wrap {
		return toroidalDelta(wx, c.X, c.WorldW), toroidalDelta(wy, c.Y, c.WorldH)
	}
	return wx - c.X, wy - c.Y
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
