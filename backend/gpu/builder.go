// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/backend/canvas"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/internal/geom"
	"github.com/gogpu/sketch/internal/paint"
	"github.com/gogpu/sketch/internal/textshape"
)

// sdfMargin is the anti-aliasing margin around ellipse quads, in pixels.
const sdfMargin = 1.0

type state struct {
	m       element.Matrix
	opacity float64
}

// builder turns elements into frame geometry. It implements backend.Drawer.
type builder struct {
	frame    *Frame
	defaults backend.Defaults
	shaper   *textshape.Shaper

	// w and h are the target size as float32, for NDC conversion.
	w, h float32

	cur   state
	stack []state
}

func newBuilder(f *Frame, d backend.Defaults, shaper *textshape.Shaper) *builder {
	return &builder{
		frame:    f,
		defaults: d,
		shaper:   shaper,
		w:        float32(f.Width),
		h:        float32(f.Height),
		cur:      state{m: element.Identity(), opacity: 1},
	}
}

func (b *builder) Save() { b.stack = append(b.stack, b.cur) }

func (b *builder) Restore() {
	if n := len(b.stack); n > 0 {
		b.cur = b.stack[n-1]
		b.stack = b.stack[:n-1]
	}
}

func (b *builder) ApplyTransform(t element.Transform) {
	b.cur.m = b.cur.m.Multiply(t.Matrix())
}

func (b *builder) ApplyOpacity(o float64) { b.cur.opacity *= o }

func (b *builder) tolerance() float64 {
	s := b.cur.m.ScaleFactor()
	if s <= 1e-9 {
		return geom.Tolerance
	}
	return geom.Tolerance / s
}

// ndc maps a device pixel position to normalized device coordinates.
func (b *builder) ndc(p geom.Point) (float32, float32) {
	if b.w == 0 || b.h == 0 {
		return 0, 0
	}
	return 2*float32(p.X)/b.w - 1, 1 - 2*float32(p.Y)/b.h
}

func (b *builder) paints(el element.Element) (fill, stroke *paint.RGBA, err error) {
	opacity := b.cur.opacity * b.defaults.OpacityOf(el)
	if s := b.defaults.FillOf(el); s != "" {
		col, err := paint.Parse(s)
		if err != nil {
			return nil, nil, fmt.Errorf("fill: %w", err)
		}
		col = col.WithOpacity(opacity)
		fill = &col
	}
	if s := b.defaults.StrokeOf(el); s != "" {
		col, err := paint.Parse(s)
		if err != nil {
			return nil, nil, fmt.Errorf("stroke: %w", err)
		}
		col = col.WithOpacity(opacity)
		stroke = &col
	}
	return fill, stroke, nil
}

var emptyBounds = [4]float32{math.MaxFloat32, math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

func grow(b *[4]float32, x, y float32) {
	b[0] = math32.Min(b[0], x)
	b[1] = math32.Min(b[1], y)
	b[2] = math32.Max(b[2], x)
	b[3] = math32.Max(b[3], y)
}

func premultiplied(c paint.RGBA) [4]float32 {
	p := c.Premultiply()
	return [4]float32{float32(p.R), float32(p.G), float32(p.B), float32(p.A)}
}

// fillRings appends one fill batch for the user-space rings. Each ring is
// fanned from its first vertex; the stencil pass resolves winding. It
// returns the batch index, or -1 when no triangle was emitted.
func (b *builder) fillRings(rings [][]geom.Point, col paint.RGBA) int {
	if col.IsTransparent() {
		return -1
	}
	f := b.frame
	start := len(f.Fill)
	bounds := emptyBounds

	for _, ring := range rings {
		tris := geom.Fan(geom.Transform(ring, b.cur.m))
		if len(tris) == 0 {
			continue
		}
		for _, p := range tris {
			x, y := b.ndc(p)
			f.Fill = append(f.Fill, x, y)
		}
		minX, minY, maxX, maxY := geom.Bounds(tris)
		x0, y0 := b.ndc(geom.Point{X: minX, Y: minY})
		x1, y1 := b.ndc(geom.Point{X: maxX, Y: maxY})
		grow(&bounds, x0, y0)
		grow(&bounds, x1, y1)
	}
	if len(f.Fill) == start {
		return -1
	}
	f.Batches = append(f.Batches, Batch{
		Kind:   BatchFill,
		First:  start / 2,
		Count:  (len(f.Fill) - start) / 2,
		Color:  premultiplied(col),
		Bounds: bounds,
	})
	return len(f.Batches) - 1
}

// fillEllipse appends one SDF quad covering the ellipse plus a one pixel
// margin. The quad follows the current matrix, so rotated and skewed
// ellipses stay exact.
func (b *builder) fillEllipse(cx, cy, rx, ry float64, col paint.RGBA) {
	s := b.cur.m.ScaleFactor()
	if rx <= 0 || ry <= 0 || s <= 1e-9 || col.IsTransparent() {
		return
	}
	m := sdfMargin / s
	ex, ey := rx+m, ry+m
	color := premultiplied(col)
	radii := [2]float32{float32(rx), float32(ry)}

	corner := func(lx, ly float64) SDFVertex {
		x, y := b.ndc(b.cur.m.TransformPoint(geom.Point{X: cx + lx, Y: cy + ly}))
		return SDFVertex{
			Position: [2]float32{x, y},
			Local:    [2]float32{float32(lx), float32(ly)},
			Radii:    radii,
			Color:    color,
		}
	}
	tl, tr := corner(-ex, -ey), corner(ex, -ey)
	bl, br := corner(-ex, ey), corner(ex, ey)

	f := b.frame
	start := len(f.SDF)
	f.SDF = append(f.SDF, tl, tr, bl, tr, br, bl)

	bounds := emptyBounds
	for _, v := range [...]SDFVertex{tl, tr, bl, br} {
		grow(&bounds, v.Position[0], v.Position[1])
	}
	f.Batches = append(f.Batches, Batch{
		Kind:   BatchSDF,
		First:  start,
		Count:  sdfVerticesPerQuad,
		Color:  color,
		Bounds: bounds,
	})
}

// stroke appends the stroke outline of rings as one fill batch.
func (b *builder) stroke(el element.Element, rings []geom.Subpath, lineCap element.LineCap, col paint.RGBA) {
	w := b.defaults.StrokeWidthOf(el)
	var polys [][]geom.Point
	for _, r := range rings {
		for _, p := range geom.Stroke(r.Points, r.Closed, w, lineCap, b.tolerance()) {
			polys = append(polys, p)
		}
	}
	b.fillRings(polys, col)
}

func (b *builder) shape(el element.Element, rings []geom.Subpath, lineCap element.LineCap) error {
	fill, stroke, err := b.paints(el)
	if err != nil {
		return err
	}
	if fill != nil {
		polys := make([][]geom.Point, 0, len(rings))
		for _, r := range rings {
			polys = append(polys, r.Points)
		}
		b.fillRings(polys, *fill)
	}
	if stroke != nil {
		b.stroke(el, rings, lineCap, *stroke)
	}
	return nil
}

func (b *builder) ellipse(el element.Element, cx, cy, rx, ry float64) error {
	fill, stroke, err := b.paints(el)
	if err != nil {
		return err
	}
	if fill != nil {
		b.fillEllipse(cx, cy, rx, ry, *fill)
	}
	if stroke != nil {
		ring := geom.Ellipse(cx, cy, rx, ry, b.tolerance())
		b.stroke(el, []geom.Subpath{{Points: ring, Closed: true}}, element.CapButt, *stroke)
	}
	return nil
}

func (b *builder) DrawCircle(e *element.Circle) error {
	return b.ellipse(e, e.X, e.Y, e.Radius, e.Radius)
}

func (b *builder) DrawEllipse(e *element.Ellipse) error {
	return b.ellipse(e, e.X, e.Y, e.RX, e.RY)
}

func (b *builder) DrawRect(e *element.Rect) error {
	ring := geom.Rect(e.X, e.Y, e.Width, e.Height, e.CornerRadius, b.tolerance())
	return b.shape(e, []geom.Subpath{{Points: ring, Closed: true}}, element.CapButt)
}

func (b *builder) DrawLine(e *element.Line) error {
	seg := []geom.Point{{X: e.X1, Y: e.Y1}, {X: e.X2, Y: e.Y2}}
	return b.shape(e, []geom.Subpath{{Points: seg}}, e.Cap)
}

func (b *builder) DrawPolygon(e *element.Polygon) error {
	return b.shape(e, []geom.Subpath{{Points: e.Points, Closed: true}}, element.CapButt)
}

func (b *builder) DrawPath(e *element.Path) error {
	return b.shape(e, geom.FlattenPath(e, b.tolerance()), element.CapButt)
}

// DrawText fills the glyph outlines and records a TextRun.
func (b *builder) DrawText(e *element.Text) error {
	if e.Text == "" {
		return nil
	}
	fill, stroke, err := b.paints(e)
	if err != nil {
		return err
	}
	l := canvas.LayoutText(e, b.defaults, b.shaper, b.tolerance())
	scale := float32(b.cur.m.ScaleFactor())
	anchor := b.cur.m.TransformPoint(geom.Point{X: l.X, Y: l.Y})
	run := TextRun{
		Text:    e.Text,
		Anchor:  [2]float32{float32(anchor.X), float32(anchor.Y)},
		Size:    float32(l.Run.Size) * scale,
		Advance: float32(l.Run.Advance) * scale,
		RTL:     l.Run.RTL,
		Batch:   -1,
	}
	if fill != nil {
		run.Color = premultiplied(*fill)
		polys := make([][]geom.Point, 0, len(l.Outline))
		for _, r := range l.Outline {
			polys = append(polys, r.Points)
		}
		run.Batch = b.fillRings(polys, *fill)
	}
	if stroke != nil {
		b.stroke(e, l.Outline, element.CapButt, *stroke)
	}
	b.frame.Text = append(b.frame.Text, run)
	return nil
}

var _ backend.Drawer = (*builder)(nil)
