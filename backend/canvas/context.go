// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/internal/geom"
	"github.com/gogpu/sketch/internal/paint"
	"github.com/gogpu/sketch/internal/textshape"
)

// state is one entry of the save/restore stack.
type state struct {
	m       element.Matrix
	opacity float64
}

// Context draws elements into an *image.RGBA. It implements backend.Drawer.
//
// A Context is not safe for concurrent use.
type Context struct {
	img      *image.RGBA
	ras      *vector.Rasterizer
	defaults backend.Defaults
	shaper   *textshape.Shaper

	cur   state
	stack []state
}

// NewContext creates a context drawing into img. A nil shaper uses
// textshape.Default().
func NewContext(img *image.RGBA, d backend.Defaults, shaper *textshape.Shaper) *Context {
	size := img.Bounds().Size()
	return &Context{
		img:      img,
		ras:      vector.NewRasterizer(size.X, size.Y),
		defaults: d,
		shaper:   shaper,
		cur:      state{m: element.Identity(), opacity: 1},
	}
}

// Save pushes the current matrix and opacity.
func (c *Context) Save() {
	c.stack = append(c.stack, c.cur)
}

// Restore pops the state saved by the matching Save.
func (c *Context) Restore() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// ApplyTransform composes t onto the current matrix.
func (c *Context) ApplyTransform(t element.Transform) {
	c.cur.m = c.cur.m.Multiply(t.Matrix())
}

// ApplyOpacity multiplies the current opacity by o.
func (c *Context) ApplyOpacity(o float64) {
	c.cur.opacity *= o
}

// Matrix returns the current transform.
func (c *Context) Matrix() element.Matrix { return c.cur.m }

// tolerance returns the flattening tolerance in user space.
func (c *Context) tolerance() float64 {
	s := c.cur.m.ScaleFactor()
	if s <= 1e-9 {
		return geom.Tolerance
	}
	return geom.Tolerance / s
}

// paints resolves the fill and stroke of el, with opacity applied. A nil
// color means no pass.
func (c *Context) paints(el element.Element) (fill, stroke *paint.RGBA, err error) {
	opacity := c.cur.opacity * c.defaults.OpacityOf(el)
	if s := c.defaults.FillOf(el); s != "" {
		col, err := paint.Parse(s)
		if err != nil {
			return nil, nil, fmt.Errorf("fill: %w", err)
		}
		col = col.WithOpacity(opacity)
		fill = &col
	}
	if s := c.defaults.StrokeOf(el); s != "" {
		col, err := paint.Parse(s)
		if err != nil {
			return nil, nil, fmt.Errorf("stroke: %w", err)
		}
		col = col.WithOpacity(opacity)
		stroke = &col
	}
	return fill, stroke, nil
}

// shape fills and strokes outline rings given in user space.
func (c *Context) shape(el element.Element, rings []geom.Subpath, lineCap element.LineCap) error {
	fill, stroke, err := c.paints(el)
	if err != nil {
		return err
	}
	if fill != nil {
		polys := make([][]geom.Point, 0, len(rings))
		for _, r := range rings {
			if len(r.Points) >= 3 {
				polys = append(polys, r.Points)
			}
		}
		c.FillPolygons(polys, *fill)
	}
	if stroke != nil {
		w := c.defaults.StrokeWidthOf(el)
		var polys [][]geom.Point
		for _, r := range rings {
			for _, p := range geom.Stroke(r.Points, r.Closed, w, lineCap, c.tolerance()) {
				polys = append(polys, p)
			}
		}
		c.FillPolygons(polys, *stroke)
	}
	return nil
}

// FillPolygons transforms user-space rings by the current matrix and
// fills their union with col. Overlapping rings of the same orientation
// merge; a ring of opposite orientation inside another cuts a hole.
func (c *Context) FillPolygons(polys [][]geom.Point, col paint.RGBA) {
	if len(polys) == 0 || col.IsTransparent() {
		return
	}
	b := c.img.Bounds()
	w, h := b.Dx(), b.Dy()
	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Over

	drawn := false
	for _, p := range polys {
		dev := geom.Transform(p, c.cur.m)
		for i := range dev {
			dev[i].X -= float64(b.Min.X)
			dev[i].Y -= float64(b.Min.Y)
		}
		dev = geom.ClipRect(dev, -1, -1, float64(w+1), float64(h+1))
		if len(dev) < 3 {
			continue
		}
		c.ras.MoveTo(float32(dev[0].X), float32(dev[0].Y))
		for _, q := range dev[1:] {
			c.ras.LineTo(float32(q.X), float32(q.Y))
		}
		c.ras.ClosePath()
		drawn = true
	}
	if drawn {
		c.ras.Draw(c.img, b, image.NewUniform(col.NRGBA()), image.Point{})
	}
}

// DrawCircle implements backend.Drawer.
func (c *Context) DrawCircle(e *element.Circle) error {
	ring := geom.Circle(e.X, e.Y, e.Radius, c.tolerance())
	return c.shape(e, []geom.Subpath{{Points: ring, Closed: true}}, element.CapButt)
}

// DrawRect implements backend.Drawer.
func (c *Context) DrawRect(e *element.Rect) error {
	ring := geom.Rect(e.X, e.Y, e.Width, e.Height, e.CornerRadius, c.tolerance())
	return c.shape(e, []geom.Subpath{{Points: ring, Closed: true}}, element.CapButt)
}

// DrawLine implements backend.Drawer.
func (c *Context) DrawLine(e *element.Line) error {
	seg := []geom.Point{{X: e.X1, Y: e.Y1}, {X: e.X2, Y: e.Y2}}
	return c.shape(e, []geom.Subpath{{Points: seg}}, e.Cap)
}

// DrawEllipse implements backend.Drawer.
func (c *Context) DrawEllipse(e *element.Ellipse) error {
	ring := geom.Ellipse(e.X, e.Y, e.RX, e.RY, c.tolerance())
	return c.shape(e, []geom.Subpath{{Points: ring, Closed: true}}, element.CapButt)
}

// DrawPolygon implements backend.Drawer.
func (c *Context) DrawPolygon(e *element.Polygon) error {
	return c.shape(e, []geom.Subpath{{Points: e.Points, Closed: true}}, element.CapButt)
}

// DrawPath implements backend.Drawer.
func (c *Context) DrawPath(e *element.Path) error {
	return c.shape(e, geom.FlattenPath(e, c.tolerance()), element.CapButt)
}

// DrawText implements backend.Drawer. Glyph outlines are filled with the
// text's fill color, so text follows the current transform exactly.
func (c *Context) DrawText(e *element.Text) error {
	if e.Text == "" {
		return nil
	}
	rings := c.TextOutline(e)
	return c.shape(e, rings, element.CapButt)
}

// TextOutline lays out e with its resolved style and returns the glyph
// outlines in user space.
func (c *Context) TextOutline(e *element.Text) []geom.Subpath {
	return LayoutText(e, c.defaults, c.shaper, c.tolerance()).Outline
}

// TextLayout is a text element resolved to a positioned glyph run.
type TextLayout struct {
	Run textshape.Run

	// X and Y are the pen origin after alignment and baseline shifts.
	X, Y float64

	// Outline holds the flattened glyph contours in user space.
	Outline []geom.Subpath
}

// LayoutText shapes e with the style resolved from d and flattens its
// glyph outlines to tol. A nil shaper uses textshape.Default().
func LayoutText(e *element.Text, d backend.Defaults, shaper *textshape.Shaper, tol float64) TextLayout {
	if shaper == nil {
		shaper = textshape.Default()
	}
	ts := d.TextStyleOf(e)
	v := textshape.VariantOf(ts.Font, ts.Weight)
	run := shaper.Shape(e.Text, ts.Size, v)
	ascent, descent := shaper.Metrics(ts.Size, v)
	dx, dy := textshape.Origin(ts.Align, ts.Baseline, run.Advance, ascent, descent, run.RTL)

	l := TextLayout{Run: run, X: e.X + dx, Y: e.Y + dy}
	if cmds := shaper.Outline(run, l.X, l.Y); len(cmds) > 0 {
		l.Outline = geom.FlattenPath(&element.Path{Commands: cmds}, tol)
	}
	return l
}

var _ backend.Drawer = (*Context)(nil)
