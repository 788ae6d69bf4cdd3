package backend

import "github.com/gogpu/sketch/element"

// Defaults are the draw-time fallbacks for unset style fields. They apply
// whether or not an element passed through the shape factory.
type Defaults struct {
	StrokeWidth float64
	Opacity     float64

	// Fill is used for kinds with a natural fill when Fill is empty.
	Fill string

	// LineStroke is used for a line with no stroke.
	LineStroke string

	TextSize float64
	Font     string
	Weight   string
	Align    string
	Baseline string
}

// Default holds the standard draw-time fallbacks.
var Default = Defaults{
	StrokeWidth: 1,
	Opacity:     1,
	Fill:        element.DefaultFill,
	LineStroke:  element.DefaultFill,
	TextSize:    16,
	Font:        "sans-serif",
	Weight:      "normal",
	Align:       "left",
	Baseline:    "alphabetic",
}

// FillOf returns the fill paint for el, or "" when el has no fill pass.
// Groups and lines have no natural fill.
func (d Defaults) FillOf(el element.Element) string {
	switch el.Kind() {
	case element.KindGroup, element.KindLine:
		return ""
	}
	f := el.Common().Fill
	if f == "" {
		f = d.Fill
	}
	if element.IsNoPaint(f) {
		return ""
	}
	return f
}

// StrokeOf returns the stroke paint for el, or "" when el has no stroke
// pass. A line without a stroke is stroked with LineStroke so that it
// remains visible.
func (d Defaults) StrokeOf(el element.Element) string {
	s := el.Common().Stroke
	if s == "" && el.Kind() == element.KindLine {
		s = d.LineStroke
	}
	if element.IsNoPaint(s) {
		return ""
	}
	return s
}

// StrokeWidthOf returns the stroke width of el.
func (d Defaults) StrokeWidthOf(el element.Element) float64 {
	return el.Common().StrokeWidthOr(d.StrokeWidth)
}

// OpacityOf returns the opacity of el.
func (d Defaults) OpacityOf(el element.Element) float64 {
	return el.Common().OpacityOr(d.Opacity)
}

// TextStyle is a text element with every field resolved.
type TextStyle struct {
	Size     float64
	Font     string
	Weight   string
	Align    string
	Baseline string
}

// TextStyleOf resolves the text fields of t.
func (d Defaults) TextStyleOf(t *element.Text) TextStyle {
	ts := TextStyle{
		Size:     t.SizeOr(d.TextSize),
		Font:     t.Font,
		Weight:   t.Weight,
		Align:    t.Align,
		Baseline: t.Baseline,
	}
	if ts.Font == "" {
		ts.Font = d.Font
	}
	if ts.Weight == "" {
		ts.Weight = d.Weight
	}
	if ts.Align == "" {
		ts.Align = d.Align
	}
	if ts.Baseline == "" {
		ts.Baseline = d.Baseline
	}
	return ts
}
