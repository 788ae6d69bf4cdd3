package geom

// Fan triangulates ring as a fan from its first point, three points per
// triangle. Degenerate triangles are skipped. The triangles overlap for
// concave rings; their signed coverage sums to the ring's winding number.
func Fan(ring []Point) []Point {
	if len(ring) < 3 {
		return nil
	}
	out := make([]Point, 0, 3*(len(ring)-2))
	for i := 1; i+1 < len(ring); i++ {
		if cross(ring[0], ring[i], ring[i+1]) == 0 {
			continue
		}
		out = append(out, ring[0], ring[i], ring[i+1])
	}
	return out
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
