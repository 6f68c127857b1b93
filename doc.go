// Package diorama composes isometric "tile diorama" images: a diamond grid of
// grass-over-soil blocks onto which sprite images are placed, optionally
// finished with a color-grading pass.
//
// # Quick start
//
// The simplest way to produce a diorama is [ComposeImage], which sizes a
// canvas, renders every tile back to front, places sprites, and grades the
// result:
//
//	cfg := diorama.DefaultGridConfig()
//	img, err := diorama.ComposeImage(cfg, 4, placements, diorama.ComposeOptions{
//		Decorations: true,
//		Filter:      "autumn",
//	})
//
// For full control, create a [Canvas] yourself and drive the pipeline stage
// by stage:
//
//	w, h, _ := diorama.CanvasDimensions(4, cfg)
//	c := diorama.NewImageCanvas(w, h)
//	positions, _ := diorama.TilePositions(4, w, cfg)
//	for _, pos := range diorama.PaintOrder(positions) {
//		diorama.RenderTile(c, pos, cfg, diorama.TileRenderOptions{DrawDecoration: true})
//	}
//
// # Drawing surfaces
//
// All rendering goes through the [Canvas] interface: polygon path
// construction, solid fill and stroke, ellipse fill, image draw, and raw
// pixel access. Two backends are provided: [ImageCanvas] renders to an
// in-memory *image.NRGBA for offline output, and [EbitenCanvas] renders to an
// *ebiten.Image for interactive preview inside an [Ebitengine] game loop.
//
// # Sprite anchoring
//
// Sprites usually carry asymmetric transparent margins, so centering their
// bounding box on a tile looks wrong. [DetectAnchor] scans a sprite's alpha
// channel for its visual base (the darkest, most opaque band near the bottom,
// typically a trunk or stem) and [PlacementRect] uses that anchor to land the
// sprite on the tile's pixel center.
//
// # Color grading
//
// [PresetByName] looks up one of eight fixed grading presets. Each preset
// carries both a per-pixel raster transform ([ApplyToRaster]) and an
// equivalent encoder filter-graph fragment ([GraphFor]) so the same look can
// be applied to a finished image or to a video stream produced elsewhere.
// [GradeTransition] interpolates between two presets over time (via [gween])
// for animated grading of frame sequences.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package diorama
