package diorama

import (
	"fmt"
	"math"
)

// Fixed canvas margins in pixels. The horizontal margin leaves room for
// shadow bleed past the outermost tiles; the vertical margin reserves
// headroom above the back tile for tall sprites and space below the front
// tile's soil face.
const (
	canvasMarginX   = 400
	canvasMarginY   = 800
	canvasMarginTop = 600
)

// GridPosition is one tile's logical address and the screen-space center of
// its top face. Positions are immutable once computed; create them in batches
// with TilePositions.
type GridPosition struct {
	GridX, GridY   int
	PixelX, PixelY int
}

// CanvasDimensions computes the minimal square canvas that fits a
// diamond-shaped grid of gridSize x gridSize tiles plus fixed margins.
// The returned width and height are always equal: the canvas is sized to the
// larger of the two extents so the diamond is never clipped.
func CanvasDimensions(gridSize int, cfg GridConfig) (width, height int, err error) {
	if gridSize <= 0 {
		return 0, 0, fmt.Errorf("diorama: grid size must be positive, got %d", gridSize)
	}
	if err := cfg.Validate(); err != nil {
		return 0, 0, err
	}

	w := int(math.Round(float64(2*gridSize)*cfg.TileWidth/2)) + canvasMarginX
	h := int(math.Round(float64(gridSize)*cfg.TileWidth/2+2*(cfg.SoilHeight+cfg.GrassHeight))) + canvasMarginY
	if w > h {
		return w, w, nil
	}
	return h, h, nil
}

// TilePositions projects every logical tile address of a gridSize x gridSize
// grid to isometric screen coordinates on a canvas of the given width.
// Positions are generated in row-major order; run them through PaintOrder
// before compositing. For a fixed grid size and config the mapping between
// logical addresses and pixel centers is a bijection.
func TilePositions(gridSize, canvasWidth int, cfg GridConfig) ([]GridPosition, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("diorama: grid size must be positive, got %d", gridSize)
	}
	if canvasWidth <= 0 {
		return nil, fmt.Errorf("diorama: canvas width must be positive, got %d", canvasWidth)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	positions := make([]GridPosition, 0, gridSize*gridSize)
	halfW := cfg.TileWidth / 2
	halfH := cfg.TileWidth / 4
	centerX := float64(canvasWidth) / 2

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			isoX := float64(x-y) * halfW
			isoY := float64(x+y) * halfH
			positions = append(positions, GridPosition{
				GridX:  x,
				GridY:  y,
				PixelX: int(math.Round(centerX + isoX)),
				PixelY: int(math.Round(canvasMarginTop + isoY + halfH)),
			})
		}
	}
	return positions, nil
}
