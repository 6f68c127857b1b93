package diorama

import "math"

// TileRenderOptions controls the optional pieces of a single tile draw call.
// Passed per call, never stored.
type TileRenderOptions struct {
	// HasShadow draws a grounding shadow ellipse on the top face, used under
	// a placed sprite.
	HasShadow bool
	// ShadowWidth overrides the shadow's horizontal diameter in pixels.
	// Zero means a fixed fraction of the tile width.
	ShadowWidth float64
	// DrawDecoration allows a grass tuft on this tile. Tufts only appear on
	// tiles without a shadow (unoccupied tiles), and only when the tile's
	// deterministic hash selects it.
	DrawDecoration bool
}

// Tile palette. Left faces are lit slightly brighter than right faces.
var (
	colorGrassTop       = Color{R: 0.45, G: 0.78, B: 0.32, A: 1}
	colorGrassTopStroke = Color{R: 0.33, G: 0.62, B: 0.22, A: 1}
	colorGrassLeft      = Color{R: 0.36, G: 0.66, B: 0.25, A: 1}
	colorGrassRight     = Color{R: 0.30, G: 0.56, B: 0.21, A: 1}
	colorSoilLeft       = Color{R: 0.47, G: 0.33, B: 0.20, A: 1}
	colorSoilRight      = Color{R: 0.40, G: 0.27, B: 0.16, A: 1}
	colorShadow         = Color{R: 0, G: 0, B: 0, A: 0.18}
	colorTuft           = Color{R: 0.28, G: 0.52, B: 0.18, A: 1}
)

// shadowWidthFraction sizes the default shadow diameter relative to the tile
// width when TileRenderOptions.ShadowWidth is zero.
const shadowWidthFraction = 0.6

// RenderTile draws one tile of the diorama at the given position. The six
// visual pieces are painted back to front: right soil face, left soil face,
// right grass face, left grass face, top face, then the optional shadow and
// tuft. Each grass face's bottom edge and the soil face below it are
// generated from the same seam endpoints and wave parameters, so the two
// faces mesh without a visible gap.
func RenderTile(c Canvas, pos GridPosition, cfg GridConfig, opts TileRenderOptions) {
	px := float64(pos.PixelX)
	py := float64(pos.PixelY)
	halfW := cfg.TileWidth / 2
	halfH := cfg.TileWidth / 4

	// Top-face diamond corners.
	top := Vec2{X: px, Y: py - halfH}
	right := Vec2{X: px + halfW, Y: py}
	bottom := Vec2{X: px, Y: py + halfH}
	left := Vec2{X: px - halfW, Y: py}

	// Seam endpoints: the grass/soil boundary sits GrassHeight below the
	// top-face edge.
	leftSeamA := Vec2{X: left.X, Y: left.Y + cfg.GrassHeight}
	leftSeamB := Vec2{X: bottom.X, Y: bottom.Y + cfg.GrassHeight}
	rightSeamA := Vec2{X: bottom.X, Y: bottom.Y + cfg.GrassHeight}
	rightSeamB := Vec2{X: right.X, Y: right.Y + cfg.GrassHeight}

	amplitude := seamAmplitudeScale * cfg.ScaleFactor
	leftSeam := SeamPoints(leftSeamA, leftSeamB, amplitude, seamFrequency, seamSegments)
	rightSeam := SeamPoints(rightSeamA, rightSeamB, amplitude, seamFrequency, seamSegments)

	drawSoilFace(c, rightSeam, cfg.SoilHeight, colorSoilRight)
	drawSoilFace(c, leftSeam, cfg.SoilHeight, colorSoilLeft)
	drawGrassFace(c, bottom, right, rightSeam, colorGrassRight)
	drawGrassFace(c, left, bottom, leftSeam, colorGrassLeft)

	// Top face, painted last so it sits atop the prism.
	c.MoveTo(top.X, top.Y)
	c.LineTo(right.X, right.Y)
	c.LineTo(bottom.X, bottom.Y)
	c.LineTo(left.X, left.Y)
	c.ClosePath()
	c.Fill(colorGrassTop)
	c.MoveTo(top.X, top.Y)
	c.LineTo(right.X, right.Y)
	c.LineTo(bottom.X, bottom.Y)
	c.LineTo(left.X, left.Y)
	c.ClosePath()
	c.Stroke(colorGrassTopStroke, cfg.ScaleFactor)

	if opts.HasShadow {
		w := opts.ShadowWidth
		if w <= 0 {
			w = shadowWidthFraction * cfg.TileWidth
		}
		rx := w / 2
		c.FillEllipse(px, py, rx, rx/2.5, colorShadow)
	}

	if opts.DrawDecoration && !opts.HasShadow {
		drawTuft(c, pos, cfg)
	}
}

// drawGrassFace fills a grass side face: the straight top edge from a to b
// plus the wavy bottom seam walked in reverse.
func drawGrassFace(c Canvas, a, b Vec2, seam []Vec2, col Color) {
	c.MoveTo(a.X, a.Y)
	c.LineTo(b.X, b.Y)
	for i := len(seam) - 1; i >= 0; i-- {
		c.LineTo(seam[i].X, seam[i].Y)
	}
	c.ClosePath()
	c.Fill(col)
}

// drawSoilFace fills a soil side face: the wavy top seam (identical to the
// grass face's bottom edge) plus a straight bottom edge soilHeight below the
// seam endpoints.
func drawSoilFace(c Canvas, seam []Vec2, soilHeight float64, col Color) {
	c.MoveTo(seam[0].X, seam[0].Y)
	for _, p := range seam[1:] {
		c.LineTo(p.X, p.Y)
	}
	last := seam[len(seam)-1]
	first := seam[0]
	c.LineTo(last.X, last.Y+soilHeight)
	c.LineTo(first.X, first.Y+soilHeight)
	c.ClosePath()
	c.Fill(col)
}

// tileHash is the deterministic pseudo-random draw for tile decoration:
// the fractional part of a scaled sine of the tile address. The same grid
// always produces the same decoration pattern without a stored seed.
// Changing these constants changes every rendered diorama.
func tileHash(gridX, gridY int, salt float64) float64 {
	v := math.Sin(float64(gridX)*12.9898+float64(gridY)*78.233+salt*37.719) * 43758.5453
	return math.Abs(v) - math.Floor(math.Abs(v))
}

// drawTuft draws a small cluster of grass blades on an unoccupied tile.
// Visibility, position jitter, and blade shapes all derive from tileHash, so
// roughly half of eligible tiles receive a tuft at a reproducible spot.
func drawTuft(c Canvas, pos GridPosition, cfg GridConfig) {
	if tileHash(pos.GridX, pos.GridY, 0) >= 0.5 {
		return
	}

	baseX := float64(pos.PixelX) + (tileHash(pos.GridX, pos.GridY, 1)-0.5)*cfg.TileWidth*0.5
	baseY := float64(pos.PixelY) + (tileHash(pos.GridX, pos.GridY, 2)-0.5)*cfg.TileWidth*0.25

	blades := 3 + int(tileHash(pos.GridX, pos.GridY, 3)*3)
	for i := 0; i < blades; i++ {
		fi := float64(i)
		rootX := baseX + (fi-float64(blades)/2)*3*cfg.ScaleFactor
		angle := -math.Pi/2 + (tileHash(pos.GridX, pos.GridY, 4+fi)-0.5)*1.2
		length := (8 + tileHash(pos.GridX, pos.GridY, 11+fi)*8) * cfg.ScaleFactor
		c.MoveTo(rootX, baseY)
		c.LineTo(rootX+math.Cos(angle)*length, baseY+math.Sin(angle)*length)
		c.Stroke(colorTuft, 2*cfg.ScaleFactor)
	}
}

// PlacementRect computes the draw rectangle that lands a sprite's detected
// visual anchor on the tile's pixel center: the content's horizontal center
// over PixelX and the content's bottom row on PixelY, correcting both the
// horizontal offset and the transparent bottom padding reported by the
// anchor.
func PlacementRect(spriteW, spriteH int, anchor ContentAnchor, scale float64, pos GridPosition) Rect {
	drawW := float64(spriteW) * scale
	drawH := float64(spriteH) * scale
	return Rect{
		X:      float64(pos.PixelX) - drawW/2 - anchor.XOffset*scale,
		Y:      float64(pos.PixelY) - drawH + float64(anchor.YPadding)*scale,
		Width:  drawW,
		Height: drawH,
	}
}
