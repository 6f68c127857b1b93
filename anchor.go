package diorama

import "image"

// ContentAnchor describes where a sprite's visual content sits inside its
// raster: the horizontal distance of the content's center from the raster's
// geometric center, the transparent margin below the content, and the
// content's width on the anchor row. Derived once per sprite and cached by
// the caller; never mutated.
type ContentAnchor struct {
	// XOffset is the horizontal distance from the raster's center to the
	// content's center on the anchor row. Negative means content sits left
	// of center.
	XOffset float64
	// YPadding is the number of fully transparent rows below the anchor row.
	YPadding int
	// ContentWidth is the span between the leftmost and rightmost solid
	// pixels of the anchor row, inclusive.
	ContentWidth int
}

// solidAlphaThreshold separates solid pixels from anti-aliased edges: only
// pixels with alpha strictly above this count as content.
const solidAlphaThreshold = 200

// anchorScanFraction bounds the scan to the bottom fraction of rows. Anchors
// sit near a sprite's visual base, so scanning higher is wasted work.
const anchorScanFraction = 0.3

// DetectAnchor scans a sprite's alpha channel for its visual base. Rows are
// scanned from the bottom up, restricted to the bottom 30% of the raster.
// Each candidate row (one with at least one solid pixel) is scored by its
// mean perceptual darkness weighted by opacity; the darkest row wins. Trunks
// and stems are typically the darkest, most opaque band near a sprite's
// base, which distinguishes them from lighter foliage that may droop lower.
//
// A raster with no solid pixel in the scan window yields the zero anchor.
// That is a valid result for an empty sprite, not an error.
func DetectAnchor(img *image.NRGBA) ContentAnchor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return ContentAnchor{}
	}

	limit := h - int(float64(h)*anchorScanFraction)
	if limit >= h {
		// Tiny rasters: always scan at least the bottom row.
		limit = h - 1
	}

	bestRow := -1
	bestScore := 0.0
	bestLeft, bestRight := 0, 0

	for row := h - 1; row >= limit; row-- {
		rowOff := img.PixOffset(b.Min.X, b.Min.Y+row)
		sum := 0.0
		count := 0
		left, right := -1, -1
		for x := 0; x < w; x++ {
			i := rowOff + 4*x
			a := img.Pix[i+3]
			if a <= solidAlphaThreshold {
				continue
			}
			r := int(img.Pix[i])
			g := int(img.Pix[i+1])
			bl := int(img.Pix[i+2])
			sum += float64(765-(r+g+bl)) * float64(a) / 255
			count++
			if left < 0 {
				left = x
			}
			right = x
		}
		if count == 0 {
			continue
		}
		score := sum / float64(count)
		if score > bestScore || bestRow < 0 {
			bestRow = row
			bestScore = score
			bestLeft = left
			bestRight = right
		}
	}

	if bestRow < 0 {
		debugf("anchor: no solid pixels in bottom %d rows of %dx%d sprite", h-limit, w, h)
		return ContentAnchor{}
	}

	return ContentAnchor{
		XOffset:      float64(bestLeft+bestRight)/2 - float64(w)/2,
		YPadding:     h - bestRow - 1,
		ContentWidth: bestRight - bestLeft + 1,
	}
}
