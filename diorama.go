package diorama

import (
	"image/color"
	"log"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication, where a backend requires it, happens at draw time.
type Color struct {
	R, G, B, A float64
}

// toNRGBA converts a Color to a straight-alpha color.NRGBA, clamping each
// component to [0, 1] first.
func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and edge endpoints
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// SetDebug enables or disables debug logging. When enabled, non-fatal
// irregularities (unknown preset names, degenerate sprites) are reported
// via the standard logger with a "diorama:" prefix.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

var globalDebug bool

func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf("diorama: "+format, args...)
	}
}
