package diorama

import (
	"image"
	"math"
)

// OverlayColor is a flat color alpha-blended over every pixel as the final
// grading step of a preset.
type OverlayColor struct {
	R, G, B uint8
	// Opacity is the blend weight in [0, 1]. Zero disables the overlay.
	Opacity float64
}

// Adjustments holds the raster-side parameters of a grading preset.
// Brightness and Contrast are in -100..100, Saturation is a multiplier
// (1 = unchanged), Hue is degrees (applied only in the encoder graph),
// Temperature is -100 (cool) .. 100 (warm).
type Adjustments struct {
	Brightness  float64
	Contrast    float64
	Saturation  float64
	Hue         float64
	Temperature float64
	Overlay     *OverlayColor
}

// FilterPreset is a named, immutable bundle of equivalent raster and
// encoder-side color grading. The raster transform and the filter-graph
// fragment produce the same look; which one runs depends on whether the
// output is a still image or a video stream.
type FilterPreset struct {
	Name        string
	Adjustments Adjustments
	// Graph is the encoder filter-graph fragment without input/output
	// labels. Empty means identity: skip the stage entirely.
	Graph string
}

// isIdentity reports whether applying the preset would leave every pixel
// unchanged.
func (a Adjustments) isIdentity() bool {
	return a.Brightness == 0 && a.Contrast == 0 && a.Saturation == 1 &&
		a.Temperature == 0 && (a.Overlay == nil || a.Overlay.Opacity == 0)
}

// PresetNone is the name of the identity preset.
const PresetNone = "none"

// presetCatalog is the fixed grading catalog. Looked up, never mutated.
var presetCatalog = map[string]FilterPreset{
	"none": {
		Name:        "none",
		Adjustments: Adjustments{Saturation: 1},
	},
	"winter": {
		Name: "winter",
		Adjustments: Adjustments{
			Brightness:  5,
			Contrast:    5,
			Saturation:  0.75,
			Temperature: -40,
			Overlay:     &OverlayColor{R: 200, G: 220, B: 255, Opacity: 0.10},
		},
		Graph: "eq=brightness=0.05:contrast=1.05:saturation=0.75,colorbalance=bs=0.25:ms=0.1",
	},
	"autumn": {
		Name: "autumn",
		Adjustments: Adjustments{
			Brightness:  2,
			Contrast:    8,
			Saturation:  1.2,
			Temperature: 35,
			Overlay:     &OverlayColor{R: 210, G: 120, B: 40, Opacity: 0.08},
		},
		Graph: "eq=brightness=0.02:contrast=1.08:saturation=1.2,colorbalance=rs=0.2:rm=0.1",
	},
	"spring": {
		Name: "spring",
		Adjustments: Adjustments{
			Brightness:  8,
			Contrast:    4,
			Saturation:  1.25,
			Hue:         5,
			Temperature: 10,
		},
		Graph: "eq=brightness=0.08:contrast=1.04:saturation=1.25,hue=h=5",
	},
	"summer": {
		Name: "summer",
		Adjustments: Adjustments{
			Brightness:  5,
			Contrast:    10,
			Saturation:  1.35,
			Temperature: 25,
		},
		Graph: "eq=brightness=0.05:contrast=1.1:saturation=1.35,colorbalance=rs=0.12",
	},
	"night": {
		Name: "night",
		Adjustments: Adjustments{
			Brightness:  -30,
			Contrast:    10,
			Saturation:  0.6,
			Temperature: -20,
			Overlay:     &OverlayColor{R: 20, G: 30, B: 80, Opacity: 0.25},
		},
		Graph: "eq=brightness=-0.3:contrast=1.1:saturation=0.6,colorbalance=bs=0.3",
	},
	"sepia": {
		Name: "sepia",
		Adjustments: Adjustments{
			Brightness:  3,
			Contrast:    5,
			Saturation:  0.25,
			Temperature: 30,
			Overlay:     &OverlayColor{R: 112, G: 66, B: 20, Opacity: 0.18},
		},
		Graph: "colorchannelmixer=.393:.769:.189:0:.349:.686:.168:0:.272:.534:.131",
	},
	"vintage": {
		Name: "vintage",
		Adjustments: Adjustments{
			Brightness:  4,
			Contrast:    -8,
			Saturation:  0.8,
			Hue:         -3,
			Temperature: 15,
			Overlay:     &OverlayColor{R: 255, G: 240, B: 200, Opacity: 0.12},
		},
		Graph: "curves=vintage,eq=saturation=0.8,hue=h=-3",
	},
}

// PresetNames returns the catalog names in a fixed order, identity first.
func PresetNames() []string {
	return []string{"none", "winter", "autumn", "spring", "summer", "night", "sepia", "vintage"}
}

// PresetByName looks up a grading preset. Unrecognized names resolve to the
// identity preset so the renderer stays usable with unknown or
// forward-compatible preset names; lookup never fails.
func PresetByName(name string) FilterPreset {
	if p, ok := presetCatalog[name]; ok {
		return p
	}
	if name != "" {
		debugf("filter: unknown preset %q, using %q", name, PresetNone)
	}
	return presetCatalog[PresetNone]
}

// GraphFor returns the preset's encoder filter-graph fragment wrapped with
// the given input and output labels, or an empty string for the identity
// preset. An empty result means "omit this stage from the filter chain", not
// an error.
func GraphFor(name, inputLabel, outputLabel string) string {
	p := PresetByName(name)
	if p.Graph == "" {
		return ""
	}
	return "[" + inputLabel + "]" + p.Graph + "[" + outputLabel + "]"
}

// ApplyToRaster applies a preset's raster transform to a straight-RGBA image
// in place. The identity preset is a pixel-exact no-op. See ApplyToPixels
// for the per-pixel operation order.
func ApplyToRaster(img *image.NRGBA, p FilterPreset) {
	ApplyToPixels(img.Pix, p)
}

// ApplyToPixels applies a preset's raster transform to raw straight-RGBA
// bytes in place, skipping fully transparent pixels. The per-pixel operation
// order is fixed and not commutative:
//
//  1. temperature shift (asymmetric warm/cool channel offsets)
//  2. saturation about the pixel's luma
//  3. additive brightness
//  4. contrast gain about the midpoint
//  5. overlay alpha-blend
//  6. clamp to [0, 255] and round
func ApplyToPixels(pix []byte, p FilterPreset) {
	adj := p.Adjustments
	if adj.isIdentity() {
		return
	}

	tf := adj.Temperature / 100
	gain := (259 * (adj.Contrast + 255)) / (255 * (259 - adj.Contrast))
	var ovR, ovG, ovB, ovOp float64
	if adj.Overlay != nil && adj.Overlay.Opacity > 0 {
		ovR = float64(adj.Overlay.R)
		ovG = float64(adj.Overlay.G)
		ovB = float64(adj.Overlay.B)
		ovOp = adj.Overlay.Opacity
	}

	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])

		// 1. Temperature: warm pushes red and a little green, pulls blue;
		// cool pushes blue harder than it pulls red.
		if tf > 0 {
			r += 30 * tf
			g += 10 * tf
			b -= 20 * tf
		} else if tf < 0 {
			r += 20 * tf
			b -= 30 * tf
		}

		// 2. Saturation about luma.
		if adj.Saturation != 1 {
			y := 0.299*r + 0.587*g + 0.114*b
			r = y + adj.Saturation*(r-y)
			g = y + adj.Saturation*(g-y)
			b = y + adj.Saturation*(b-y)
		}

		// 3. Brightness: -100..100 mapped to an additive -255..255.
		if adj.Brightness != 0 {
			r += adj.Brightness * 2.55
			g += adj.Brightness * 2.55
			b += adj.Brightness * 2.55
		}

		// 4. Contrast gain about the midpoint.
		if adj.Contrast != 0 {
			r = gain*(r-128) + 128
			g = gain*(g-128) + 128
			b = gain*(b-128) + 128
		}

		// 5. Overlay blend.
		if ovOp > 0 {
			r = r*(1-ovOp) + ovR*ovOp
			g = g*(1-ovOp) + ovG*ovOp
			b = b*(1-ovOp) + ovB*ovOp
		}

		// 6. Clamp and round.
		pix[i] = clampByte(r)
		pix[i+1] = clampByte(g)
		pix[i+2] = clampByte(b)
	}
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(math.Round(v))
}
