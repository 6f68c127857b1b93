package diorama

import "testing"

func TestPaintOrderNonDecreasingDepth(t *testing.T) {
	positions, err := TilePositions(5, 3000, DefaultGridConfig())
	if err != nil {
		t.Fatalf("TilePositions: %v", err)
	}
	ordered := PaintOrder(positions)
	if len(ordered) != len(positions) {
		t.Fatalf("got %d positions, want %d", len(ordered), len(positions))
	}
	for i := 1; i < len(ordered); i++ {
		prev := ordered[i-1].GridX + ordered[i-1].GridY
		cur := ordered[i].GridX + ordered[i].GridY
		if cur < prev {
			t.Fatalf("depth decreases at %d: %d after %d", i, cur, prev)
		}
	}
}

func TestPaintOrderStableOnTies(t *testing.T) {
	// All four positions share depth 3; their input order must survive.
	in := []GridPosition{
		{GridX: 3, GridY: 0},
		{GridX: 0, GridY: 3},
		{GridX: 2, GridY: 1},
		{GridX: 1, GridY: 2},
	}
	ordered := PaintOrder(in)
	for i := range in {
		if ordered[i] != in[i] {
			t.Fatalf("tie order changed at %d: got %+v, want %+v", i, ordered[i], in[i])
		}
	}
}

func TestPaintOrderDoesNotModifyInput(t *testing.T) {
	in := []GridPosition{
		{GridX: 2, GridY: 2},
		{GridX: 0, GridY: 0},
		{GridX: 1, GridY: 1},
	}
	snapshot := make([]GridPosition, len(in))
	copy(snapshot, in)
	PaintOrder(in)
	for i := range in {
		if in[i] != snapshot[i] {
			t.Fatalf("input slice modified at %d", i)
		}
	}
}

func TestPaintOrderEmpty(t *testing.T) {
	if got := PaintOrder(nil); len(got) != 0 {
		t.Errorf("got %d positions from nil input", len(got))
	}
}
