package diorama

import "image"

// Canvas is the drawing surface consumed by the tile renderer and the
// composer. Rendering code depends only on this interface, never on a
// concrete backend.
//
// Paths follow the familiar immediate-mode model: MoveTo starts a subpath,
// LineTo extends it, ClosePath closes it. Fill and Stroke consume the
// accumulated path and reset it.
//
// ReadPixels and WritePixels expose the backing store as straight
// (non-premultiplied) RGBA bytes in row-major order, four bytes per pixel,
// over a rectangular region.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)

	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)
	// LineTo extends the current subpath with a line to (x, y).
	LineTo(x, y float64)
	// ClosePath closes the current subpath back to its starting point.
	ClosePath()
	// Fill fills the accumulated path with a solid color and resets the path.
	Fill(c Color)
	// Stroke outlines the accumulated path with a solid color and the given
	// line width, then resets the path.
	Stroke(c Color, width float64)

	// FillEllipse fills an axis-aligned ellipse centered at (cx, cy) with
	// radii rx and ry.
	FillEllipse(cx, cy, rx, ry float64, c Color)

	// DrawImage draws src scaled into the destination rectangle using
	// source-over blending.
	DrawImage(src image.Image, dst Rect)

	// ReadPixels returns a copy of the straight-RGBA bytes within r,
	// clipped to the canvas bounds.
	ReadPixels(r image.Rectangle) []byte
	// WritePixels replaces the straight-RGBA bytes within r, clipped to the
	// canvas bounds. pix must hold 4*r.Dx()*r.Dy() bytes.
	WritePixels(r image.Rectangle, pix []byte)
}

// ellipseSegments is the number of polygon segments used to approximate an
// ellipse on backends without a native ellipse primitive.
const ellipseSegments = 48
