package geom

import (
	"math"

	"github.com/gogpu/sketch/element"
)

// Stroke returns polygons whose union is the stroke of the polyline pts
// with the given width. Segments become quads, interior vertices get round
// joins, and open polylines get the requested caps. Every returned polygon
// has the same orientation, so a nonzero or absolute-coverage rasterizer
// fills their union.
func Stroke(pts []Point, closed bool, width float64, lineCap element.LineCap, tol float64) []Polygon {
	pts = dedupe(pts)
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	hw := width / 2
	if hw <= 0 || len(pts) == 0 {
		return nil
	}
	if len(pts) == 1 {
		// A zero-length open stroke only shows its caps.
		if closed {
			return nil
		}
		switch lineCap.OrDefault() {
		case element.CapRound:
			return []Polygon{Oriented(Circle(pts[0].X, pts[0].Y, hw, tol))}
		case element.CapSquare:
			p := pts[0]
			return []Polygon{Oriented(Rect(p.X-hw, p.Y-hw, width, width, 0, tol))}
		}
		return nil
	}

	var out []Polygon
	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		if !closed {
			if i == 0 && lineCap.OrDefault() == element.CapSquare {
				a = extend(b, a, hw)
			}
			if i == segs-1 && lineCap.OrDefault() == element.CapSquare {
				b = extend(a, b, hw)
			}
		}
		out = append(out, Oriented(segmentQuad(a, b, hw)))
	}

	for i := range pts {
		interior := closed || (i > 0 && i < n-1)
		if interior || lineCap.OrDefault() == element.CapRound {
			out = append(out, Oriented(Circle(pts[i].X, pts[i].Y, hw, tol)))
		}
	}
	return out
}

// segmentQuad returns the rectangle of half-width hw around segment ab.
func segmentQuad(a, b Point, hw float64) Polygon {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	nx, ny := -dy/l*hw, dx/l*hw
	return Polygon{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// extend moves to past from by d along the direction from -> to.
func extend(from, to Point, d float64) Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	return Point{X: to.X + dx/l*d, Y: to.Y + dy/l*d}
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]Point, 1, len(pts))
	out[0] = pts[0]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
