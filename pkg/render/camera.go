// Package render draws a generated antenna board with Gio for the preview
// window: filled copper shapes, the mask cutouts, and the board outline.
package render

import (
	"github.com/rflabs/patchcad/pkg/board"
)

// Camera is a viewport onto the board plane. World coordinates are board
// millimeters, screen coordinates are pixels.
type Camera struct {
	// CenterX/CenterY is the world position at the middle of the screen.
	CenterX float64
	CenterY float64

	// Zoom is pixels per millimeter.
	Zoom float64

	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera with a neutral zoom.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts board millimeters to screen pixels.
func (c *Camera) WorldToScreen(pos board.Position) (float64, float64) {
	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2
	return x, y
}

// ScreenToWorld converts screen pixels back to board millimeters.
func (c *Camera) ScreenToWorld(screenX, screenY float64) board.Position {
	return board.Position{
		X: (screenX-float64(c.ScreenWidth)/2)/c.Zoom + c.CenterX,
		Y: (screenY-float64(c.ScreenHeight)/2)/c.Zoom + c.CenterY,
	}
}

// Pan moves the camera by screen pixel offsets.
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in or out around a screen position; factor > 1 zooms in. The
// world point under the cursor stays put.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 1000.0 {
		c.Zoom = 1000.0
	}

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centers the camera on the given bounds and zooms so the whole board
// fills 90% of the screen.
func (c *Camera) Fit(min, max board.Position) {
	width := max.X - min.X
	height := max.Y - min.Y
	if width <= 0 || height <= 0 {
		return
	}

	c.CenterX = (min.X + max.X) / 2
	c.CenterY = (min.Y + max.Y) / 2

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	if zoomX < zoomY {
		c.Zoom = zoomX
	} else {
		c.Zoom = zoomY
	}
}

// UpdateScreenSize updates the camera when the window is resized.
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}
