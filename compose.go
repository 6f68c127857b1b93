package diorama

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
)

// Placement puts one sprite raster on a tile. Sprites use straight
// (non-premultiplied) RGBA.
type Placement struct {
	GridX, GridY int
	Sprite       *image.NRGBA
	// Scale is a uniform scale factor for the sprite. Zero means 1.
	Scale float64
}

// ComposeOptions controls the finishing stages of a composed diorama.
type ComposeOptions struct {
	// Decorations allows grass tufts on unoccupied tiles.
	Decorations bool
	// Filter names a grading preset applied to the finished raster.
	// Empty or unknown names mean no grading.
	Filter string
	// Caption is optional text rendered under the diorama. Requires
	// CaptionFont.
	Caption string
	// CaptionFont is TrueType font data for the caption.
	CaptionFont []byte
	// CaptionStyle adjusts caption rendering. The zero value uses defaults.
	CaptionStyle CaptionStyle
}

// Compose renders a complete diorama onto the canvas: tile positions are
// computed from the canvas width, sorted back to front, and each tile is
// drawn with its sprite (if any) anchored on the tile center. Occupied tiles
// get a shadow sized to the sprite's detected content width; unoccupied
// tiles may get a deterministic tuft. The optional grading and caption
// passes run over the finished pixels.
//
// Compose holds no shared mutable state: independent canvases may be
// composed concurrently.
func Compose(c Canvas, cfg GridConfig, gridSize int, placements []Placement, opts ComposeOptions) error {
	width, height := c.Size()
	positions, err := TilePositions(gridSize, width, cfg)
	if err != nil {
		return err
	}

	occupied := make(map[[2]int]*Placement, len(placements))
	for i := range placements {
		p := &placements[i]
		if p.GridX < 0 || p.GridX >= gridSize || p.GridY < 0 || p.GridY >= gridSize {
			return fmt.Errorf("diorama: placement at (%d,%d) outside %dx%d grid",
				p.GridX, p.GridY, gridSize, gridSize)
		}
		occupied[[2]int{p.GridX, p.GridY}] = p
	}

	// Anchors are derived once per distinct sprite raster.
	anchors := make(map[*image.NRGBA]ContentAnchor)

	for _, pos := range PaintOrder(positions) {
		p := occupied[[2]int{pos.GridX, pos.GridY}]

		tileOpts := TileRenderOptions{DrawDecoration: opts.Decorations}
		var anchor ContentAnchor
		var scale float64
		if p != nil && p.Sprite != nil {
			var ok bool
			anchor, ok = anchors[p.Sprite]
			if !ok {
				anchor = DetectAnchor(p.Sprite)
				anchors[p.Sprite] = anchor
			}
			scale = p.Scale
			if scale == 0 {
				scale = 1
			}
			tileOpts.HasShadow = true
			if anchor.ContentWidth > 0 {
				tileOpts.ShadowWidth = float64(anchor.ContentWidth) * scale
			}
		}

		RenderTile(c, pos, cfg, tileOpts)

		if p != nil && p.Sprite != nil {
			sb := p.Sprite.Bounds()
			c.DrawImage(p.Sprite, PlacementRect(sb.Dx(), sb.Dy(), anchor, scale, pos))
		}
	}

	preset := PresetByName(opts.Filter)
	needGrade := !preset.Adjustments.isIdentity()
	needCaption := opts.Caption != "" && len(opts.CaptionFont) > 0
	if !needGrade && !needCaption {
		return nil
	}

	bounds := image.Rect(0, 0, width, height)
	pix := c.ReadPixels(bounds)
	if needGrade {
		ApplyToPixels(pix, preset)
	}
	if needCaption {
		img := &image.NRGBA{Pix: pix, Stride: 4 * width, Rect: bounds}
		if err := DrawCaption(img, opts.Caption, opts.CaptionFont, opts.CaptionStyle); err != nil {
			return err
		}
	}
	c.WritePixels(bounds, pix)
	return nil
}

// ComposeImage sizes a square canvas for the grid, composes the diorama onto
// a software canvas, and returns the finished image.
func ComposeImage(cfg GridConfig, gridSize int, placements []Placement, opts ComposeOptions) (*image.NRGBA, error) {
	w, h, err := CanvasDimensions(gridSize, cfg)
	if err != nil {
		return nil, err
	}
	c := NewImageCanvas(w, h)
	if err := Compose(c, cfg, gridSize, placements, opts); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// RenderToFile composes the diorama and writes it as a PNG to path.
func RenderToFile(path string, cfg GridConfig, gridSize int, placements []Placement, opts ComposeOptions) (RenderResult, error) {
	img, err := ComposeImage(cfg, gridSize, placements, opts)
	if err != nil {
		return RenderResult{}, err
	}
	if err := SavePNG(path, img); err != nil {
		return RenderResult{}, err
	}
	return ImageResult(path), nil
}

// RenderToBuffer composes the diorama and returns it as PNG bytes in memory.
func RenderToBuffer(cfg GridConfig, gridSize int, placements []Placement, opts ComposeOptions) (RenderResult, error) {
	img, err := ComposeImage(cfg, gridSize, placements, opts)
	if err != nil {
		return RenderResult{}, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return RenderResult{}, fmt.Errorf("diorama: failed to encode PNG: %w", err)
	}
	return BufferResult(buf.Bytes()), nil
}

// ComposeScene composes a diorama from a loaded scene description. Sprite
// names in the scene are resolved through the sprites map; a name with no
// entry is an error. CaptionFont supplies the font data when the scene has a
// caption.
func ComposeScene(scene *SceneConfig, sprites map[string]*image.NRGBA, captionFont []byte) (*image.NRGBA, error) {
	placements := make([]Placement, 0, len(scene.Placements))
	for _, pc := range scene.Placements {
		sprite, ok := sprites[pc.Sprite]
		if !ok {
			return nil, fmt.Errorf("diorama: scene references unknown sprite %q", pc.Sprite)
		}
		placements = append(placements, Placement{
			GridX:  pc.GridX,
			GridY:  pc.GridY,
			Sprite: sprite,
			Scale:  pc.Scale,
		})
	}
	return ComposeImage(scene.GridConfig(), scene.GridSize, placements, ComposeOptions{
		Decorations: scene.Decorations,
		Filter:      scene.Filter,
		Caption:     scene.Caption,
		CaptionFont: captionFont,
	})
}

// SavePNG encodes an image to a PNG file at the given path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diorama: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("diorama: encode %s: %w", path, err)
	}
	return f.Close()
}
