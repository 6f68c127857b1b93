package diorama

import (
	"math"
	"testing"
)

func TestSeamPointsEndpoints(t *testing.T) {
	a := Vec2{X: 100, Y: 200}
	b := Vec2{X: 500, Y: 200}
	pts := SeamPoints(a, b, 3, 2, 16)
	if len(pts) != 17 {
		t.Fatalf("got %d points, want 17", len(pts))
	}
	// sin is zero at t=0 and at t=1 for integer frequencies, so the wave
	// starts and ends exactly on the straight edge.
	assertNear(t, "first.X", pts[0].X, a.X)
	assertNear(t, "first.Y", pts[0].Y, a.Y)
	assertNear(t, "last.X", pts[16].X, b.X)
	assertNear(t, "last.Y", pts[16].Y, b.Y)
}

func TestSeamPointsDeterministic(t *testing.T) {
	a := Vec2{X: 10, Y: 40}
	b := Vec2{X: 210, Y: 140}
	p1 := SeamPoints(a, b, 3, 2, 16)
	p2 := SeamPoints(a, b, 3, 2, 16)
	for i := range p1 {
		if math.Abs(p1[i].X-p2[i].X) > epsilon || math.Abs(p1[i].Y-p2[i].Y) > epsilon {
			t.Fatalf("point %d differs between runs: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}

func TestSeamPointsAmplitudeBound(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 400, Y: 0}
	const amp = 5.0
	pts := SeamPoints(a, b, amp, 2, 64)
	for i, p := range pts {
		if math.Abs(p.Y) > amp+epsilon {
			t.Errorf("point %d displaced %v, beyond amplitude %v", i, p.Y, amp)
		}
	}
}

func TestSeamPointsPerpendicularDisplacement(t *testing.T) {
	// On a diagonal edge the displacement must be perpendicular: every
	// point's projection onto the edge direction advances monotonically
	// while its perpendicular distance stays within the amplitude.
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 300, Y: 150}
	dx, dy := b.X-a.X, b.Y-a.Y
	ln := math.Hypot(dx, dy)
	ux, uy := dx/ln, dy/ln

	pts := SeamPoints(a, b, 3, 2, 16)
	prevAlong := math.Inf(-1)
	for i, p := range pts {
		along := (p.X-a.X)*ux + (p.Y-a.Y)*uy
		across := (p.X-a.X)*(-uy) + (p.Y-a.Y)*ux
		if along < prevAlong-epsilon {
			t.Errorf("point %d moves backwards along the edge", i)
		}
		if math.Abs(across) > 3+epsilon {
			t.Errorf("point %d is %v off the edge, beyond amplitude 3", i, across)
		}
		prevAlong = along
	}
}

func TestSeamPointsZeroAmplitudeIsStraight(t *testing.T) {
	a := Vec2{X: 5, Y: 5}
	b := Vec2{X: 105, Y: 55}
	pts := SeamPoints(a, b, 0, 2, 8)
	for i, p := range pts {
		tt := float64(i) / 8
		assertNear(t, "x", p.X, a.X+(b.X-a.X)*tt)
		assertNear(t, "y", p.Y, a.Y+(b.Y-a.Y)*tt)
	}
}

func TestAppendSeamPointsReusesBuffer(t *testing.T) {
	buf := make([]Vec2, 0, 64)
	out := AppendSeamPoints(buf, Vec2{}, Vec2{X: 100}, 3, 2, 16)
	if len(out) != 17 {
		t.Fatalf("got %d points, want 17", len(out))
	}
	if &out[0] != &buf[:1][0] {
		t.Error("backing array not reused despite sufficient capacity")
	}
}

func TestSeamPointsMinimumSegments(t *testing.T) {
	pts := SeamPoints(Vec2{}, Vec2{X: 10}, 3, 2, 0)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2 for clamped segment count", len(pts))
	}
}
