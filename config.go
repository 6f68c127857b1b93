package diorama

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GridConfig holds the tile metrics for a diorama grid. It is an immutable
// value: construct it once and pass it through every geometry and render
// call. All geometry formulas are pure functions of a GridConfig plus a grid
// size.
type GridConfig struct {
	// TileWidth is the full width of a tile's top-face diamond in pixels.
	// The diamond's half-height is TileWidth/4.
	TileWidth float64
	// GrassHeight is the vertical extent of the grass side faces in pixels.
	GrassHeight float64
	// SoilHeight is the vertical extent of the soil side faces in pixels.
	SoilHeight float64
	// ScaleFactor scales stroke widths, seam amplitude, and decoration
	// geometry. 1.0 matches the reference tile metrics.
	ScaleFactor float64
}

// DefaultGridConfig returns the reference tile metrics: 400px tiles with a
// 60px grass band over a 160px soil band at scale 1.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		TileWidth:   400,
		GrassHeight: 60,
		SoilHeight:  160,
		ScaleFactor: 1,
	}
}

// Validate reports the first configuration error, or nil. Downstream geometry
// is undefined for non-positive tile metrics, so they are rejected here
// rather than producing a silently broken canvas.
func (c GridConfig) Validate() error {
	if c.TileWidth <= 0 {
		return fmt.Errorf("diorama: tile width must be positive, got %v", c.TileWidth)
	}
	if c.GrassHeight <= 0 {
		return fmt.Errorf("diorama: grass height must be positive, got %v", c.GrassHeight)
	}
	if c.SoilHeight <= 0 {
		return fmt.Errorf("diorama: soil height must be positive, got %v", c.SoilHeight)
	}
	if c.ScaleFactor <= 0 {
		return fmt.Errorf("diorama: scale factor must be positive, got %v", c.ScaleFactor)
	}
	return nil
}

// SceneConfig describes a complete diorama scene as loaded from YAML: grid
// size and metrics, sprite placements by name, and finishing options.
type SceneConfig struct {
	GridSize    int     `yaml:"gridSize"`
	TileWidth   float64 `yaml:"tileWidth"`
	GrassHeight float64 `yaml:"grassHeight"`
	SoilHeight  float64 `yaml:"soilHeight"`
	ScaleFactor float64 `yaml:"scaleFactor"`

	// Filter names a grading preset. Empty or unknown names resolve to the
	// identity preset.
	Filter string `yaml:"filter"`
	// Caption is optional text rendered under the diorama.
	Caption string `yaml:"caption"`
	// Decorations enables grass tufts on unoccupied tiles.
	Decorations bool `yaml:"decorations"`

	Placements []PlacementConfig `yaml:"placements"`
}

// PlacementConfig places one named sprite on a tile. The sprite name is
// resolved by the caller (sprite generation is outside this package).
type PlacementConfig struct {
	GridX  int     `yaml:"gridX"`
	GridY  int     `yaml:"gridY"`
	Sprite string  `yaml:"sprite"`
	Scale  float64 `yaml:"scale"`
}

// LoadSceneConfig parses and validates a YAML scene description. Zero tile
// metrics are filled from DefaultGridConfig before validation, so a minimal
// scene needs only a grid size and placements.
func LoadSceneConfig(data []byte) (*SceneConfig, error) {
	var sc SceneConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("diorama: failed to parse scene config: %w", err)
	}

	def := DefaultGridConfig()
	if sc.TileWidth == 0 {
		sc.TileWidth = def.TileWidth
	}
	if sc.GrassHeight == 0 {
		sc.GrassHeight = def.GrassHeight
	}
	if sc.SoilHeight == 0 {
		sc.SoilHeight = def.SoilHeight
	}
	if sc.ScaleFactor == 0 {
		sc.ScaleFactor = def.ScaleFactor
	}

	if sc.GridSize <= 0 {
		return nil, fmt.Errorf("diorama: scene grid size must be positive, got %d", sc.GridSize)
	}
	if err := sc.GridConfig().Validate(); err != nil {
		return nil, err
	}
	for i, p := range sc.Placements {
		if p.GridX < 0 || p.GridX >= sc.GridSize || p.GridY < 0 || p.GridY >= sc.GridSize {
			return nil, fmt.Errorf("diorama: placement %d at (%d,%d) outside %dx%d grid",
				i, p.GridX, p.GridY, sc.GridSize, sc.GridSize)
		}
		if p.Sprite == "" {
			return nil, fmt.Errorf("diorama: placement %d has no sprite name", i)
		}
		if p.Scale < 0 {
			return nil, fmt.Errorf("diorama: placement %d has negative scale %v", i, p.Scale)
		}
	}
	return &sc, nil
}

// GridConfig returns the tile metrics portion of the scene as an immutable
// GridConfig value.
func (s *SceneConfig) GridConfig() GridConfig {
	return GridConfig{
		TileWidth:   s.TileWidth,
		GrassHeight: s.GrassHeight,
		SoilHeight:  s.SoilHeight,
		ScaleFactor: s.ScaleFactor,
	}
}
