package diorama

import (
	"fmt"
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// CaptionStyle controls caption text rendering.
type CaptionStyle struct {
	// Color is the text color. The zero value renders near-black.
	Color Color
	// Size is the font size in points. Zero means 48.
	Size float64
	// BottomMargin is the distance from the canvas bottom to the text
	// baseline in pixels. Zero means 60.
	BottomMargin float64
}

const (
	defaultCaptionSize   = 48
	defaultCaptionMargin = 60
)

// DrawCaption renders the text horizontally centered near the bottom of the
// image, for labeling a diorama with its entity name. fontData must be a
// parseable TrueType font.
func DrawCaption(img *image.NRGBA, text string, fontData []byte, style CaptionStyle) error {
	if text == "" {
		return nil
	}
	f, err := truetype.Parse(fontData)
	if err != nil {
		return fmt.Errorf("diorama: failed to parse caption font: %w", err)
	}

	size := style.Size
	if size == 0 {
		size = defaultCaptionSize
	}
	margin := style.BottomMargin
	if margin == 0 {
		margin = defaultCaptionMargin
	}
	col := style.Color
	if col.A == 0 {
		col = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetSrc(image.NewUniform(col.toNRGBA()))
	c.SetHinting(font.HintingFull)

	// Measure by drawing against an empty clip, then center for real.
	c.SetClip(image.Rectangle{})
	c.SetDst(img)
	end, err := c.DrawString(text, freetype.Pt(0, 0))
	if err != nil {
		return fmt.Errorf("diorama: failed to measure caption: %w", err)
	}
	textW := end.X.Round()

	b := img.Bounds()
	x := (b.Dx() - textW) / 2
	y := b.Dy() - int(margin)

	c.SetClip(b)
	if _, err := c.DrawString(text, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("diorama: failed to draw caption: %w", err)
	}
	return nil
}
