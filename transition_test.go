package diorama

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertAdjustmentsNear(t *testing.T, got, want Adjustments) {
	t.Helper()
	const tol = 1e-4 // tween math runs in float32
	near := func(name string, g, w float64) {
		if math.Abs(g-w) > tol {
			t.Errorf("%s = %v, want %v", name, g, w)
		}
	}
	near("Brightness", got.Brightness, want.Brightness)
	near("Contrast", got.Contrast, want.Contrast)
	near("Saturation", got.Saturation, want.Saturation)
	near("Hue", got.Hue, want.Hue)
	near("Temperature", got.Temperature, want.Temperature)
}

func TestGradeTransitionStartsAtFrom(t *testing.T) {
	from := PresetByName("summer")
	to := PresetByName("night")
	g := NewGradeTransition(from, to, 2, ease.Linear)
	assertAdjustmentsNear(t, g.Preset().Adjustments, from.Adjustments)
}

func TestGradeTransitionEndsAtTo(t *testing.T) {
	from := PresetByName("summer")
	to := PresetByName("night")
	g := NewGradeTransition(from, to, 2, ease.Linear)
	p := g.Update(2)
	if !g.Done {
		t.Fatal("transition not done after full duration")
	}
	assertAdjustmentsNear(t, p.Adjustments, to.Adjustments)
	if p.Adjustments.Overlay == nil {
		t.Fatal("night overlay missing at the end of the transition")
	}
	want := *to.Adjustments.Overlay
	got := *p.Adjustments.Overlay
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("overlay color = %+v, want %+v", got, want)
	}
	if math.Abs(got.Opacity-want.Opacity) > 1e-4 {
		t.Errorf("overlay opacity = %v, want %v", got.Opacity, want.Opacity)
	}
}

func TestGradeTransitionMidpoint(t *testing.T) {
	from := PresetByName("none")
	to := FilterPreset{Adjustments: Adjustments{Brightness: 40, Saturation: 2}}
	g := NewGradeTransition(from, to, 2, ease.Linear)
	p := g.Update(1)
	assertAdjustmentsNear(t, p.Adjustments, Adjustments{Brightness: 20, Saturation: 1.5})
}

func TestGradeTransitionOverlayFadesIn(t *testing.T) {
	// From a preset without an overlay: the overlay should appear as the
	// target color fading in from zero opacity, not snap in.
	from := PresetByName("none")
	to := PresetByName("night")
	g := NewGradeTransition(from, to, 2, ease.Linear)

	if ov := g.Preset().Adjustments.Overlay; ov != nil {
		t.Fatalf("overlay present at start: %+v", ov)
	}
	p := g.Update(1)
	ov := p.Adjustments.Overlay
	if ov == nil {
		t.Fatal("overlay missing at midpoint")
	}
	want := to.Adjustments.Overlay
	if ov.R != want.R || ov.G != want.G || ov.B != want.B {
		t.Errorf("overlay color = %+v, want the target color %+v", ov, want)
	}
	if math.Abs(ov.Opacity-want.Opacity/2) > 1e-4 {
		t.Errorf("overlay opacity = %v, want %v", ov.Opacity, want.Opacity/2)
	}
}

func TestGradeTransitionHoldsAfterDone(t *testing.T) {
	from := PresetByName("none")
	to := PresetByName("sepia")
	g := NewGradeTransition(from, to, 1, ease.Linear)
	g.Update(5)
	p := g.Update(5)
	assertAdjustmentsNear(t, p.Adjustments, to.Adjustments)
}

func TestGradeTransitionPresetIsUnnamed(t *testing.T) {
	g := NewGradeTransition(PresetByName("none"), PresetByName("winter"), 1, ease.Linear)
	p := g.Update(0.5)
	if p.Name != "" || p.Graph != "" {
		t.Errorf("interpolated preset carries name %q graph %q, want neither", p.Name, p.Graph)
	}
}
