package diorama

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// gradeFieldCount is the number of tweened adjustment fields: brightness,
// contrast, saturation, hue, temperature, overlay R/G/B/opacity.
const gradeFieldCount = 9

// GradeTransition interpolates between two grading presets' raster
// adjustments over time, for animated grading of frame sequences (a
// day-to-night fade, for example). Call Update each frame and apply the
// returned preset to that frame's raster.
//
// The transition starts exactly at the first preset's adjustments and ends
// exactly at the second's. When either side lacks an overlay, its overlay is
// treated as the other side's color at zero opacity, so opacity fades in or
// out without a color jump.
type GradeTransition struct {
	tweens [gradeFieldCount]*gween.Tween
	fields [gradeFieldCount]*float64

	current Adjustments
	overlay OverlayColor
	ovr     [4]float64 // overlay R, G, B, opacity as tweened floats
	useOv   bool

	// Done reports whether the transition has reached the target preset.
	Done bool
}

// NewGradeTransition creates a transition from one preset to another over
// duration seconds using the given easing function.
func NewGradeTransition(from, to FilterPreset, duration float32, fn ease.TweenFunc) *GradeTransition {
	g := &GradeTransition{current: from.Adjustments}

	fa := from.Adjustments
	ta := to.Adjustments
	g.tweens[0] = gween.New(float32(fa.Brightness), float32(ta.Brightness), duration, fn)
	g.fields[0] = &g.current.Brightness
	g.tweens[1] = gween.New(float32(fa.Contrast), float32(ta.Contrast), duration, fn)
	g.fields[1] = &g.current.Contrast
	g.tweens[2] = gween.New(float32(fa.Saturation), float32(ta.Saturation), duration, fn)
	g.fields[2] = &g.current.Saturation
	g.tweens[3] = gween.New(float32(fa.Hue), float32(ta.Hue), duration, fn)
	g.fields[3] = &g.current.Hue
	g.tweens[4] = gween.New(float32(fa.Temperature), float32(ta.Temperature), duration, fn)
	g.fields[4] = &g.current.Temperature

	fromOv := overlayOrZero(fa.Overlay, ta.Overlay)
	toOv := overlayOrZero(ta.Overlay, fa.Overlay)
	g.useOv = fa.Overlay != nil || ta.Overlay != nil
	g.ovr = [4]float64{float64(fromOv.R), float64(fromOv.G), float64(fromOv.B), fromOv.Opacity}
	g.tweens[5] = gween.New(float32(fromOv.R), float32(toOv.R), duration, fn)
	g.fields[5] = &g.ovr[0]
	g.tweens[6] = gween.New(float32(fromOv.G), float32(toOv.G), duration, fn)
	g.fields[6] = &g.ovr[1]
	g.tweens[7] = gween.New(float32(fromOv.B), float32(toOv.B), duration, fn)
	g.fields[7] = &g.ovr[2]
	g.tweens[8] = gween.New(float32(fromOv.Opacity), float32(toOv.Opacity), duration, fn)
	g.fields[8] = &g.ovr[3]

	g.syncOverlay()
	return g
}

// overlayOrZero returns ov, or the other side's color at zero opacity when ov
// is nil (both nil yields black at zero opacity).
func overlayOrZero(ov, other *OverlayColor) OverlayColor {
	if ov != nil {
		return *ov
	}
	if other != nil {
		return OverlayColor{R: other.R, G: other.G, B: other.B}
	}
	return OverlayColor{}
}

// Update advances the transition by dt seconds and returns the interpolated
// preset for the current moment. After the transition finishes it keeps
// returning the target adjustments.
func (g *GradeTransition) Update(dt float32) FilterPreset {
	if !g.Done {
		allDone := true
		for i, tw := range g.tweens {
			val, finished := tw.Update(dt)
			*g.fields[i] = float64(val)
			if !finished {
				allDone = false
			}
		}
		g.Done = allDone
		g.syncOverlay()
	}
	return g.Preset()
}

// Preset returns the transition's current interpolated state as an unnamed
// preset suitable for ApplyToRaster. The encoder graph is empty: transitions
// are a raster-side effect.
func (g *GradeTransition) Preset() FilterPreset {
	adj := g.current
	if g.useOv && g.overlay.Opacity > 0 {
		ov := g.overlay
		adj.Overlay = &ov
	} else {
		adj.Overlay = nil
	}
	return FilterPreset{Adjustments: adj}
}

func (g *GradeTransition) syncOverlay() {
	g.overlay = OverlayColor{
		R:       clampByte(g.ovr[0]),
		G:       clampByte(g.ovr[1]),
		B:       clampByte(g.ovr[2]),
		Opacity: clamp01(g.ovr[3]),
	}
}
