package geom

// ClipRect clips a ring against the rectangle [minX, maxX] x [minY, maxY]
// with Sutherland-Hodgman. The ring keeps its orientation. A ring entirely
// outside yields nil.
func ClipRect(ring []Point, minX, minY, maxX, maxY float64) []Point {
	type edge struct {
		inside func(Point) bool
		cut    func(a, b Point) Point
	}
	edges := [4]edge{
		{
			inside: func(p Point) bool { return p.X >= minX },
			cut:    func(a, b Point) Point { return atX(a, b, minX) },
		},
		{
			inside: func(p Point) bool { return p.X <= maxX },
			cut:    func(a, b Point) Point { return atX(a, b, maxX) },
		},
		{
			inside: func(p Point) bool { return p.Y >= minY },
			cut:    func(a, b Point) Point { return atY(a, b, minY) },
		},
		{
			inside: func(p Point) bool { return p.Y <= maxY },
			cut:    func(a, b Point) Point { return atY(a, b, maxY) },
		},
	}

	out := ring
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cut(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cut(prev, cur))
			}
			prev = cur
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func atX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}
