package diorama

// PaintOrder returns the positions sorted back to front for painter's
// algorithm compositing: ascending by GridX+GridY, ties keeping their input
// order. This single global ordering is sufficient for correct occlusion
// because a tile's isometric footprint only interacts with its diagonal
// neighbors, and those always differ in the sum by the tile step.
// The input slice is not modified.
func PaintOrder(positions []GridPosition) []GridPosition {
	ordered := make([]GridPosition, len(positions))
	copy(ordered, positions)

	// Stable insertion sort: positions arrive nearly sorted (row-major
	// generation order), making this O(n) in practice.
	for i := 1; i < len(ordered); i++ {
		key := ordered[i]
		depth := key.GridX + key.GridY
		j := i - 1
		for j >= 0 && ordered[j].GridX+ordered[j].GridY > depth {
			ordered[j+1] = ordered[j]
			j--
		}
		ordered[j+1] = key
	}
	return ordered
}
