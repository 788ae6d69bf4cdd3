// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package svg implements the vector backend. It writes each element as an
// SVG tag into a Document; transforms and group opacity become wrapping
// <g> elements.
package svg

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/internal/textshape"
	"github.com/gogpu/sketch/scene"
	"github.com/gogpu/sketch/validate"
)

func init() {
	backend.Register(backend.NameSVG, func() backend.Backend { return New() })
}

// Backend is the SVG backend.
type Backend struct {
	defaults backend.Defaults
	skip     backend.SkipFunc
}

// New creates an SVG backend.
func New() *Backend {
	return &Backend{defaults: backend.Default}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameSVG }

// SetSkipFunc implements backend.SkipReporter.
func (b *Backend) SetSkipFunc(fn backend.SkipFunc) { b.skip = fn }

// Render replaces the content of t, which must be a *Document, with s.
func (b *Backend) Render(s *scene.Scene, t backend.Target) (backend.Target, error) {
	if t == nil {
		return nil, backend.ErrNilTarget
	}
	doc, ok := t.(*Document)
	if !ok {
		return nil, backend.ErrUnsupportedTarget
	}
	doc.Reset()
	if s == nil {
		return t, nil
	}
	w := &writer{doc: doc, defaults: b.defaults}
	backend.Walk(s.Elements(), w, b.skip)
	return t, nil
}

// frame is a pending or open <g> element.
type frame struct {
	attrs  []string
	opened bool
}

// writer implements backend.Drawer over a Document.
type writer struct {
	doc      *Document
	defaults backend.Defaults
	frames   []frame
}

func (w *writer) Save() { w.frames = append(w.frames, frame{}) }

func (w *writer) Restore() {
	n := len(w.frames)
	if n == 0 {
		return
	}
	if w.frames[n-1].opened {
		w.doc.body.WriteString("</g>")
	}
	w.frames = w.frames[:n-1]
}

func (w *writer) top() *frame {
	if len(w.frames) == 0 {
		w.Save()
	}
	return &w.frames[len(w.frames)-1]
}

func (w *writer) ApplyTransform(t element.Transform) {
	if s := transformAttr(t); s != "" {
		f := w.top()
		f.attrs = append(f.attrs, attr("transform", s))
	}
}

func (w *writer) ApplyOpacity(o float64) {
	if o != 1 {
		f := w.top()
		f.attrs = append(f.attrs, attr("opacity", num(o)))
	}
}

// open writes the start tags of pending groups that carry attributes.
func (w *writer) open() {
	for i := range w.frames {
		f := &w.frames[i]
		if f.opened || len(f.attrs) == 0 {
			continue
		}
		w.doc.body.WriteString("<g")
		for _, a := range f.attrs {
			w.doc.body.WriteString(a)
		}
		w.doc.body.WriteString(">")
		f.opened = true
	}
}

// tag writes a self-closing element with geometry and paint attributes.
func (w *writer) tag(name string, el element.Element, geometry ...string) {
	w.open()
	b := &w.doc.body
	b.WriteString("<" + name)
	for _, a := range geometry {
		b.WriteString(a)
	}
	w.paint(el)
	b.WriteString("/>")
}

func (w *writer) paint(el element.Element) {
	b := &w.doc.body
	if f := w.defaults.FillOf(el); f != "" {
		b.WriteString(attr("fill", f))
	} else {
		b.WriteString(attr("fill", "none"))
	}
	if s := w.defaults.StrokeOf(el); s != "" {
		b.WriteString(attr("stroke", s))
		b.WriteString(attr("stroke-width", num(w.defaults.StrokeWidthOf(el))))
	}
	if o := w.defaults.OpacityOf(el); o != 1 {
		b.WriteString(attr("opacity", num(o)))
	}
}

func (w *writer) DrawCircle(e *element.Circle) error {
	w.tag("circle", e, attr("cx", num(e.X)), attr("cy", num(e.Y)), attr("r", num(e.Radius)))
	return nil
}

func (w *writer) DrawRect(e *element.Rect) error {
	geo := []string{attr("x", num(e.X)), attr("y", num(e.Y)), attr("width", num(e.Width)), attr("height", num(e.Height))}
	if r := math.Min(e.CornerRadius, math.Min(e.Width, e.Height)/2); r > 0 {
		geo = append(geo, attr("rx", num(r)), attr("ry", num(r)))
	}
	w.tag("rect", e, geo...)
	return nil
}

func (w *writer) DrawLine(e *element.Line) error {
	w.tag("line", e,
		attr("x1", num(e.X1)), attr("y1", num(e.Y1)),
		attr("x2", num(e.X2)), attr("y2", num(e.Y2)),
		attr("stroke-linecap", string(e.Cap.OrDefault())))
	return nil
}

func (w *writer) DrawEllipse(e *element.Ellipse) error {
	w.tag("ellipse", e, attr("cx", num(e.X)), attr("cy", num(e.Y)), attr("rx", num(e.RX)), attr("ry", num(e.RY)))
	return nil
}

func (w *writer) DrawPolygon(e *element.Polygon) error {
	w.tag("polygon", e, attr("points", points(e.Points)))
	return nil
}

func (w *writer) DrawPath(e *element.Path) error {
	w.tag("path", e, attr("d", pathData(e)))
	return nil
}

func (w *writer) DrawText(e *element.Text) error {
	ts := w.defaults.TextStyleOf(e)
	rtl := textshape.IsRTL(e.Text)

	w.open()
	b := &w.doc.body
	b.WriteString("<text")
	b.WriteString(attr("x", num(e.X)))
	b.WriteString(attr("y", num(e.Y)))
	b.WriteString(attr("font-family", ts.Font))
	b.WriteString(attr("font-size", num(ts.Size)))
	b.WriteString(attr("font-weight", ts.Weight))
	if a := textAnchor(ts.Align, rtl); a != "start" {
		b.WriteString(attr("text-anchor", a))
	}
	if db := dominantBaseline(ts.Baseline); db != "" {
		b.WriteString(attr("dominant-baseline", db))
	}
	if rtl {
		b.WriteString(attr("direction", "rtl"))
	}
	w.paint(e)
	b.WriteString(">")
	b.WriteString(escape(e.Text))
	b.WriteString("</text>")
	return nil
}

var ampEscaper = strings.NewReplacer("&", "&amp;")

// escape makes s safe as XML character data or a quoted attribute value.
// Ampersands go first so the entities SanitizeInput adds stay intact.
func escape(s string) string {
	return validate.SanitizeInput(ampEscaper.Replace(s))
}

// attr formats an escaped attribute with a leading space.
func attr(name, value string) string {
	return " " + name + `="` + escape(value) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func points(pts []element.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func pathData(p *element.Path) string {
	var parts []string
	if len(p.Commands) == 0 {
		for i, pt := range p.Points {
			op := "L"
			if i == 0 {
				op = "M"
			}
			parts = append(parts, op+" "+num(pt.X)+" "+num(pt.Y))
		}
		if p.Closed {
			parts = append(parts, "Z")
		}
		return strings.Join(parts, " ")
	}
	for _, c := range p.Commands {
		s := c.Op.String()
		for _, a := range c.Args {
			s += " " + num(a)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// transformAttr renders t in translate, rotate, scale order. SVG applies
// the rightmost function first, which matches Transform.Matrix.
func transformAttr(t element.Transform) string {
	var parts []string
	if t.Translate != nil {
		parts = append(parts, "translate("+num(t.Translate.X)+" "+num(t.Translate.Y)+")")
	}
	if t.Rotate != 0 {
		parts = append(parts, "rotate("+num(t.Rotate)+")")
	}
	if t.Scale != nil {
		sx, sy := t.Scale.X, t.Scale.Y
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		parts = append(parts, "scale("+num(sx)+" "+num(sy)+")")
	}
	return strings.Join(parts, " ")
}

func textAnchor(align string, rtl bool) string {
	switch align {
	case "center":
		return "middle"
	case "left":
		if rtl {
			return "end"
		}
		return "start"
	case "right":
		if rtl {
			return "start"
		}
		return "end"
	case "end":
		return "end"
	}
	return "start"
}

func dominantBaseline(baseline string) string {
	switch baseline {
	case "top":
		return "text-before-edge"
	case "bottom":
		return "text-after-edge"
	case "middle", "hanging", "ideographic":
		return baseline
	}
	return ""
}

var (
	_ backend.Backend      = (*Backend)(nil)
	_ backend.SkipReporter = (*Backend)(nil)
	_ backend.Drawer       = (*writer)(nil)
	_ backend.Target       = (*Document)(nil)
)
