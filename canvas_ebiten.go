package diorama

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteImage backs untextured triangle fills. A 3x3 image with a 1x1 center
// sub-image avoids texture bleeding at triangle edges.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// EbitenCanvas is a Canvas backend over an *ebiten.Image, for previewing
// dioramas inside an Ebitengine game loop. Paths are filled and stroked as
// triangle meshes against a shared white pixel, with the color applied via
// premultiplied vertex colors.
//
// Ebitengine stores premultiplied alpha; ReadPixels and WritePixels convert
// to and from the straight RGBA the rest of the pipeline expects.
type EbitenCanvas struct {
	img  *ebiten.Image
	path vector.Path

	// Scratch buffers reused across draw calls.
	verts []ebiten.Vertex
	inds  []uint16
	pix   []byte
}

// NewEbitenCanvas wraps an ebiten image as a drawing surface. The image is
// drawn to in place.
func NewEbitenCanvas(img *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{img: img}
}

// Image returns the underlying ebiten image.
func (c *EbitenCanvas) Image() *ebiten.Image {
	return c.img
}

// Size returns the canvas dimensions in pixels.
func (c *EbitenCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// MoveTo starts a new subpath at (x, y).
func (c *EbitenCanvas) MoveTo(x, y float64) {
	c.path.MoveTo(float32(x), float32(y))
}

// LineTo extends the current subpath with a line to (x, y).
func (c *EbitenCanvas) LineTo(x, y float64) {
	c.path.LineTo(float32(x), float32(y))
}

// ClosePath closes the current subpath back to its starting point.
func (c *EbitenCanvas) ClosePath() {
	c.path.Close()
}

// Fill fills the accumulated path with a solid color and resets the path.
func (c *EbitenCanvas) Fill(col Color) {
	c.verts, c.inds = c.path.AppendVerticesAndIndicesForFilling(c.verts[:0], c.inds[:0])
	c.drawTriangles(col)
	c.path.Reset()
}

// Stroke outlines the accumulated path with the given line width and resets
// the path.
func (c *EbitenCanvas) Stroke(col Color, width float64) {
	if width <= 0 {
		c.path.Reset()
		return
	}
	op := &vector.StrokeOptions{
		Width:      float32(width),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 2,
	}
	c.verts, c.inds = c.path.AppendVerticesAndIndicesForStroke(c.verts[:0], c.inds[:0], op)
	c.drawTriangles(col)
	c.path.Reset()
}

// FillEllipse fills an axis-aligned ellipse approximated by a polygon.
func (c *EbitenCanvas) FillEllipse(cx, cy, rx, ry float64, col Color) {
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

// drawTriangles submits the scratch vertex/index buffers tinted with col.
func (c *EbitenCanvas) drawTriangles(col Color) {
	if len(c.inds) == 0 {
		return
	}
	// Premultiplied vertex colors against the white pixel.
	a := float32(clamp01(col.A))
	cr := float32(clamp01(col.R)) * a
	cg := float32(clamp01(col.G)) * a
	cb := float32(clamp01(col.B)) * a
	for i := range c.verts {
		c.verts[i].SrcX = 1
		c.verts[i].SrcY = 1
		c.verts[i].ColorR = cr
		c.verts[i].ColorG = cg
		c.verts[i].ColorB = cb
		c.verts[i].ColorA = a
	}
	c.img.DrawTriangles(c.verts, c.inds, ensureWhiteSubImage(), &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.FillRuleNonZero,
		AntiAlias: true,
	})
}

// DrawImage draws src scaled into dst using source-over blending with
// bilinear filtering.
func (c *EbitenCanvas) DrawImage(src image.Image, dst Rect) {
	if dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	eimg, ok := src.(*ebiten.Image)
	if !ok {
		eimg = ebiten.NewImageFromImage(src)
	}
	sb := eimg.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width/float64(sb.Dx()), dst.Height/float64(sb.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterLinear
	c.img.DrawImage(eimg, &op)
}

// ReadPixels returns a copy of the region's pixels converted from
// Ebitengine's premultiplied storage to straight RGBA.
func (c *EbitenCanvas) ReadPixels(r image.Rectangle) []byte {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return nil
	}
	n := 4 * r.Dx() * r.Dy()
	if cap(c.pix) < n {
		c.pix = make([]byte, n)
	}
	c.pix = c.pix[:n]
	c.img.SubImage(r).(*ebiten.Image).ReadPixels(c.pix)

	out := make([]byte, n)
	for i := 0; i < n; i += 4 {
		pr, pg, pb, pa := c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3]
		if pa > 0 && pa < 255 {
			pr = uint8(min(int(pr)*255/int(pa), 255))
			pg = uint8(min(int(pg)*255/int(pa), 255))
			pb = uint8(min(int(pb)*255/int(pa), 255))
		}
		out[i] = pr
		out[i+1] = pg
		out[i+2] = pb
		out[i+3] = pa
	}
	return out
}

// WritePixels replaces the region's pixels, converting from straight RGBA to
// Ebitengine's premultiplied storage.
func (c *EbitenCanvas) WritePixels(r image.Rectangle, pix []byte) {
	clipped := r.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}
	rowLen := 4 * r.Dx()
	n := 4 * clipped.Dx() * clipped.Dy()
	if cap(c.pix) < n {
		c.pix = make([]byte, n)
	}
	c.pix = c.pix[:n]
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		srcOff := (y-r.Min.Y)*rowLen + 4*(clipped.Min.X-r.Min.X)
		dstOff := (y - clipped.Min.Y) * 4 * clipped.Dx()
		for x := 0; x < clipped.Dx(); x++ {
			si := srcOff + 4*x
			di := dstOff + 4*x
			sr, sg, sb, sa := pix[si], pix[si+1], pix[si+2], pix[si+3]
			c.pix[di] = uint8(int(sr) * int(sa) / 255)
			c.pix[di+1] = uint8(int(sg) * int(sa) / 255)
			c.pix[di+2] = uint8(int(sb) * int(sa) / 255)
			c.pix[di+3] = sa
		}
	}
	c.img.SubImage(clipped).(*ebiten.Image).WritePixels(c.pix)
}
