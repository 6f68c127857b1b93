package diorama

import "math"

// Wave parameters shared by the grass and soil faces of a tile. Both faces
// must generate their shared edge from the same endpoints and parameters so
// the point sequences agree coordinate for coordinate and no seam shows.
const (
	seamAmplitudeScale = 3 // amplitude = 3 * GridConfig.ScaleFactor
	seamFrequency      = 2 // full waves per edge
	seamSegments       = 16
)

// SeamPoints generates segments+1 points along the straight line from a to b,
// each displaced perpendicular to the edge direction by
// amplitude*sin(2*pi*frequency*t). The sequence is deterministic: identical
// arguments always produce identical coordinates.
func SeamPoints(a, b Vec2, amplitude, frequency float64, segments int) []Vec2 {
	return AppendSeamPoints(nil, a, b, amplitude, frequency, segments)
}

// AppendSeamPoints appends the wave points to buf and returns the extended
// slice, reusing buf's backing array when it has capacity.
func AppendSeamPoints(buf []Vec2, a, b Vec2, amplitude, frequency float64, segments int) []Vec2 {
	if segments < 1 {
		segments = 1
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	var px, py float64 // perpendicular unit vector
	if ln > 1e-10 {
		px = -dy / ln
		py = dx / ln
	}

	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		off := amplitude * math.Sin(frequency*2*math.Pi*t)
		buf = append(buf, Vec2{
			X: a.X + dx*t + px*off,
			Y: a.Y + dy*t + py*off,
		})
	}
	return buf
}
