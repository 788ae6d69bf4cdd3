// Package geom converts element geometry into polygons: shape outlines,
// flattened curves, stroke outlines and triangles.
//
// All functions work in whatever space their input is in. Callers either
// flatten in user space with a tolerance divided by the transform scale, or
// transform control points first and flatten in device space.
package geom

import (
	"math"

	"github.com/gogpu/sketch/element"
)

// Point is a 2D point.
type Point = element.Point

// Tolerance is the default flattening tolerance in device pixels.
const Tolerance = 0.25

const (
	minArcSegments = 8
	maxArcSegments = 1024
)

// Polygon is a closed ring of points. The last point does not repeat the
// first.
type Polygon []Point

// Area returns the signed area of p. It is positive for rings that turn
// counter-clockwise in a y-up frame.
func Area(p []Point) float64 {
	var a float64
	n := len(p)
	for i := range p {
		j := (i + 1) % n
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a / 2
}

// Reverse reverses p in place and returns it.
func Reverse(p []Point) []Point {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Oriented returns p with a non-positive signed area, reversing it if needed.
// Strokes made of overlapping pieces must share one orientation so that
// their coverage adds instead of cancelling.
func Oriented(p []Point) []Point {
	if Area(p) > 0 {
		return Reverse(p)
	}
	return p
}

// Transform maps every point through m into a new slice.
func Transform(pts []Point, m element.Matrix) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// ArcSegments returns how many segments approximate a full circle of
// radius r within tol.
func ArcSegments(r, tol float64) int {
	if r <= tol || tol <= 0 {
		return minArcSegments
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tol/r)))
	return max(minArcSegments, min(maxArcSegments, n))
}

// Ellipse returns the outline of an axis-aligned ellipse.
func Ellipse(cx, cy, rx, ry, tol float64) Polygon {
	n := ArcSegments(math.Max(rx, ry), tol)
	out := make(Polygon, n)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i] = Point{X: cx + rx*c, Y: cy + ry*s}
	}
	return out
}

// Circle returns the outline of a circle.
func Circle(cx, cy, r, tol float64) Polygon {
	return Ellipse(cx, cy, r, r, tol)
}

// Rect returns the outline of a rectangle. The corner radius is clamped to
// half the shorter side; zero gives sharp corners.
func Rect(x, y, w, h, radius, tol float64) Polygon {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		return Polygon{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}

	quarter := max(2, ArcSegments(radius, tol)/4)
	corners := [4]struct{ cx, cy, start float64 }{
		{x + w - radius, y + radius, -math.Pi / 2},
		{x + w - radius, y + h - radius, 0},
		{x + radius, y + h - radius, math.Pi / 2},
		{x + radius, y + radius, math.Pi},
	}
	out := make(Polygon, 0, 4*(quarter+1))
	for _, c := range corners {
		for i := 0; i <= quarter; i++ {
			s, co := math.Sincos(c.start + math.Pi/2*float64(i)/float64(quarter))
			out = append(out, Point{X: c.cx + radius*co, Y: c.cy + radius*s})
		}
	}
	return out
}

// Subpath is a flattened contour.
type Subpath struct {
	Points []Point
	Closed bool
}

// FlattenPath converts path commands, or the point polyline when there are
// no commands, into flattened subpaths. Commands that appear before the
// first move start at the origin.
func FlattenPath(p *element.Path, tol float64) []Subpath {
	if len(p.Commands) == 0 {
		if len(p.Points) == 0 {
			return nil
		}
		return []Subpath{{Points: append([]Point(nil), p.Points...), Closed: p.Closed}}
	}

	var (
		out []Subpath
		cur []Point
		pos Point
	)
	flush := func(closed bool) {
		if len(cur) > 0 {
			out = append(out, Subpath{Points: cur, Closed: closed})
		}
		cur = nil
	}
	for _, c := range p.Commands {
		a := c.Args
		switch c.Op {
		case element.OpMove:
			flush(false)
			pos = Point{X: a[0], Y: a[1]}
			cur = []Point{pos}
		case element.OpLine:
			if cur == nil {
				cur = []Point{pos}
			}
			pos = Point{X: a[0], Y: a[1]}
			cur = append(cur, pos)
		case element.OpQuad:
			if cur == nil {
				cur = []Point{pos}
			}
			end := Point{X: a[2], Y: a[3]}
			cur = flattenQuad(cur, pos, Point{X: a[0], Y: a[1]}, end, tol)
			pos = end
		case element.OpCubic:
			if cur == nil {
				cur = []Point{pos}
			}
			end := Point{X: a[4], Y: a[5]}
			cur = flattenCubic(cur, pos, Point{X: a[0], Y: a[1]}, Point{X: a[2], Y: a[3]}, end, tol)
			pos = end
		case element.OpClose:
			if len(cur) > 0 {
				pos = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return out
}

// flattenQuad appends the flattened quadratic from p0 to p1, excluding p0.
// Recursive de Casteljau subdivision at t=0.5.
func flattenQuad(dst []Point, p0, c, p1 Point, tol float64) []Point {
	mid := Point{X: 0.25*p0.X + 0.5*c.X + 0.25*p1.X, Y: 0.25*p0.Y + 0.5*c.Y + 0.25*p1.Y}
	dx := mid.X - 0.5*(p0.X+p1.X)
	dy := mid.Y - 0.5*(p0.Y+p1.Y)
	if dx*dx+dy*dy <= tol*tol {
		return append(dst, p1)
	}
	a := lerp(p0, c, 0.5)
	b := lerp(c, p1, 0.5)
	m := lerp(a, b, 0.5)
	dst = flattenQuad(dst, p0, a, m, tol)
	return flattenQuad(dst, m, b, p1, tol)
}

// flattenCubic appends the flattened cubic from p0 to p1, excluding p0.
func flattenCubic(dst []Point, p0, c1, c2, p1 Point, tol float64) []Point {
	ux := 3*c1.X - 2*p0.X - p1.X
	uy := 3*c1.Y - 2*p0.Y - p1.Y
	vx := 3*c2.X - p0.X - 2*p1.X
	vy := 3*c2.Y - p0.Y - 2*p1.Y
	if math.Max(ux*ux+uy*uy, vx*vx+vy*vy) <= 16*tol*tol {
		return append(dst, p1)
	}
	ab1 := lerp(p0, c1, 0.5)
	ab2 := lerp(c1, c2, 0.5)
	ab3 := lerp(c2, p1, 0.5)
	bc1 := lerp(ab1, ab2, 0.5)
	bc2 := lerp(ab2, ab3, 0.5)
	m := lerp(bc1, bc2, 0.5)
	dst = flattenCubic(dst, p0, ab1, bc1, m, tol)
	return flattenCubic(dst, m, bc2, ab3, p1, tol)
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
