package diorama

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ImageCanvas is a software Canvas backend over an in-memory *image.NRGBA.
// It is the backend used for offline output: the backing store is straight
// RGBA, so pixel reads feed the anchor detector and the filter engine without
// conversion, and the finished image encodes directly to PNG.
//
// An ImageCanvas is not safe for concurrent use; render each canvas from a
// single goroutine.
type ImageCanvas struct {
	img *image.NRGBA

	// Path accumulation state. subpaths holds completed subpaths; current
	// is the subpath being built. closed tracks whether each completed
	// subpath ended with ClosePath (stroking needs the distinction, filling
	// does not).
	subpaths [][]Vec2
	closed   []bool
	current  []Vec2

	// Scratch buffers reused across draw calls.
	ribbonBuf []Vec2
	maskPix   []byte
}

// NewImageCanvas creates a software canvas of the given size, initially fully
// transparent.
func NewImageCanvas(w, h int) *ImageCanvas {
	return &ImageCanvas{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// NewImageCanvasFor wraps an existing NRGBA image as a canvas. The image is
// drawn to in place.
func NewImageCanvasFor(img *image.NRGBA) *ImageCanvas {
	return &ImageCanvas{img: img}
}

// Image returns the backing image for direct access or encoding.
func (c *ImageCanvas) Image() *image.NRGBA {
	return c.img
}

// Size returns the canvas dimensions in pixels.
func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// MoveTo starts a new subpath at (x, y).
func (c *ImageCanvas) MoveTo(x, y float64) {
	c.flushSubpath(false)
	c.current = append(c.current, Vec2{X: x, Y: y})
}

// LineTo extends the current subpath with a line to (x, y).
func (c *ImageCanvas) LineTo(x, y float64) {
	c.current = append(c.current, Vec2{X: x, Y: y})
}

// ClosePath closes the current subpath back to its starting point.
func (c *ImageCanvas) ClosePath() {
	c.flushSubpath(true)
}

func (c *ImageCanvas) flushSubpath(closed bool) {
	if len(c.current) > 0 {
		c.subpaths = append(c.subpaths, c.current)
		c.closed = append(c.closed, closed)
		c.current = nil
	}
}

func (c *ImageCanvas) resetPath() {
	c.subpaths = c.subpaths[:0]
	c.closed = c.closed[:0]
	c.current = nil
}

// Fill fills the accumulated path with a solid color and resets the path.
// Subpaths are closed implicitly; winding determines coverage.
func (c *ImageCanvas) Fill(col Color) {
	c.flushSubpath(true)
	c.fillPolygons(c.subpaths, col)
	c.resetPath()
}

// Stroke outlines the accumulated path with the given width and resets the
// path. Each subpath is expanded into a miter-joined ribbon polygon and
// filled; closed subpaths gain the closing segment first.
func (c *ImageCanvas) Stroke(col Color, width float64) {
	c.flushSubpath(false)
	if len(c.subpaths) == 0 || width <= 0 {
		c.resetPath()
		return
	}

	ribbons := make([][]Vec2, 0, len(c.subpaths))
	for i, sp := range c.subpaths {
		pts := sp
		if c.closed[i] && len(sp) >= 2 {
			pts = append(append(c.ribbonBuf[:0], sp...), sp[0])
		}
		if ribbon := strokeRibbon(pts, width); len(ribbon) >= 3 {
			ribbons = append(ribbons, ribbon)
		}
	}
	c.fillPolygons(ribbons, col)
	c.resetPath()
}

// fillPolygons rasterizes a set of closed polygons into a coverage mask over
// their bounding box and composites the color through it. The rasterizer only
// draws onto Alpha and RGBA destinations directly, so the straight-alpha
// backing store goes through draw.DrawMask instead.
func (c *ImageCanvas) fillPolygons(polys [][]Vec2, col Color) {
	bbox, ok := polygonBounds(polys)
	if !ok {
		return
	}
	bbox = bbox.Intersect(c.img.Bounds())
	if bbox.Empty() {
		return
	}

	bw, bh := bbox.Dx(), bbox.Dy()
	if need := bw * bh; cap(c.maskPix) < need {
		c.maskPix = make([]byte, need)
	}
	mask := &image.Alpha{Pix: c.maskPix[:bw*bh], Stride: bw, Rect: image.Rect(0, 0, bw, bh)}

	z := vector.NewRasterizer(bw, bh)
	z.DrawOp = draw.Src
	ox := float32(bbox.Min.X)
	oy := float32(bbox.Min.Y)
	for _, sp := range polys {
		if len(sp) < 2 {
			continue
		}
		z.MoveTo(float32(sp[0].X)-ox, float32(sp[0].Y)-oy)
		for _, p := range sp[1:] {
			z.LineTo(float32(p.X)-ox, float32(p.Y)-oy)
		}
		z.ClosePath()
	}
	z.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	draw.DrawMask(c.img, bbox, image.NewUniform(col.toNRGBA()), image.Point{},
		mask, image.Point{}, draw.Over)
}

// polygonBounds returns the integer bounding box of the polygons, grown by a
// pixel to cover anti-aliased edges.
func polygonBounds(polys [][]Vec2) (image.Rectangle, bool) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, sp := range polys {
		for _, p := range sp {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if first {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	), true
}

// FillEllipse fills an axis-aligned ellipse approximated by a polygon.
func (c *ImageCanvas) FillEllipse(cx, cy, rx, ry float64, col Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	c.MoveTo(cx+rx, cy)
	for i := 1; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		c.LineTo(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	c.ClosePath()
	c.Fill(col)
}

// DrawImage draws src scaled into dst using source-over blending.
// Unscaled draws copy directly; scaled draws resample with Catmull-Rom.
func (c *ImageCanvas) DrawImage(src image.Image, dst Rect) {
	sb := src.Bounds()
	dr := image.Rect(
		int(math.Round(dst.X)),
		int(math.Round(dst.Y)),
		int(math.Round(dst.X+dst.Width)),
		int(math.Round(dst.Y+dst.Height)),
	)
	if dr.Dx() <= 0 || dr.Dy() <= 0 {
		return
	}
	if dr.Dx() == sb.Dx() && dr.Dy() == sb.Dy() {
		draw.Draw(c.img, dr, src, sb.Min, draw.Over)
		return
	}
	xdraw.CatmullRom.Scale(c.img, dr, src, sb, xdraw.Over, nil)
}

// ReadPixels returns a copy of the straight-RGBA bytes within r, clipped to
// the canvas bounds.
func (c *ImageCanvas) ReadPixels(r image.Rectangle) []byte {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return nil
	}
	out := make([]byte, 4*r.Dx()*r.Dy())
	rowLen := 4 * r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := c.img.Pix[c.img.PixOffset(r.Min.X, y):]
		copy(out[(y-r.Min.Y)*rowLen:], src[:rowLen])
	}
	return out
}

// WritePixels replaces the straight-RGBA bytes within r, clipped to the
// canvas bounds.
func (c *ImageCanvas) WritePixels(r image.Rectangle, pix []byte) {
	clipped := r.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}
	rowLen := 4 * r.Dx()
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		srcOff := (y-r.Min.Y)*rowLen + 4*(clipped.Min.X-r.Min.X)
		dst := c.img.Pix[c.img.PixOffset(clipped.Min.X, y):]
		copy(dst[:4*clipped.Dx()], pix[srcOff:])
	}
}

// strokeRibbon expands a polyline into a closed ribbon polygon of the given
// width: one side offset along the averaged segment normals, the other side
// reversed. Interior joins are mitered with the extension clamped to 2x to
// avoid spikes at sharp corners.
func strokeRibbon(pts []Vec2, width float64) []Vec2 {
	n := len(pts)
	if n < 2 {
		return nil
	}
	halfW := width / 2
	ribbon := make([]Vec2, 0, 2*n)
	normals := make([]Vec2, n)

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0:
			nx, ny = perpendicular(pts[0], pts[1])
		case i == n-1:
			nx, ny = perpendicular(pts[n-2], pts[n-1])
		default:
			nx0, ny0 := perpendicular(pts[i-1], pts[i])
			nx1, ny1 := perpendicular(pts[i], pts[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			// Miter: maintain width at the join, clamped to 2x extension.
			dot := nx0*nx + ny0*ny
			if dot > 0.1 {
				scale := 1.0 / dot
				if scale > 2.0 {
					scale = 2.0
				}
				nx *= scale
				ny *= scale
			}
		}
		normals[i] = Vec2{X: nx, Y: ny}
	}

	for i := 0; i < n; i++ {
		ribbon = append(ribbon, Vec2{
			X: pts[i].X + normals[i].X*halfW,
			Y: pts[i].Y + normals[i].Y*halfW,
		})
	}
	for i := n - 1; i >= 0; i-- {
		ribbon = append(ribbon, Vec2{
			X: pts[i].X - normals[i].X*halfW,
			Y: pts[i].Y - normals[i].Y*halfW,
		})
	}
	return ribbon
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
