// Package textshape measures and outlines single lines of text using the
// Go fonts.
//
// Shaping goes through go-text/typesetting's HarfBuzz port, so advances
// include kerning and ligatures. Glyph outlines come from the same font
// files through golang.org/x/image/font/sfnt and are returned as path
// commands, which lets callers transform and rasterize text like any other
// path.
package textshape

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/sketch/element"
)

// Variant selects one of the bundled fonts.
type Variant struct {
	Bold bool
	Mono bool
}

// VariantOf picks the font for a CSS-style family and weight. Families
// containing "mono" map to Go Mono; everything else maps to Go Regular.
func VariantOf(family, weight string) Variant {
	return Variant{
		Bold: IsBold(weight),
		Mono: strings.Contains(strings.ToLower(family), "mono"),
	}
}

// IsBold reports whether a CSS font-weight selects a bold face.
func IsBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(weight))
	return err == nil && n >= 600
}

type face struct {
	sfnt   *opentype.Font
	shaped *gotext.Font
}

// Shaper shapes and outlines text. It is safe for concurrent use.
type Shaper struct {
	faces map[Variant]face

	// HarfbuzzShaper is not safe for concurrent use.
	pool sync.Pool
}

// New parses the bundled fonts.
func New() (*Shaper, error) {
	sources := map[Variant][]byte{
		{}:                      goregular.TTF,
		{Bold: true}:            gobold.TTF,
		{Mono: true}:            gomono.TTF,
		{Mono: true, Bold: true}: gomonobold.TTF,
	}
	s := &Shaper{
		faces: make(map[Variant]face, len(sources)),
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	for v, data := range sources {
		sf, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("textshape: parse font: %w", err)
		}
		gf, err := gotext.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("textshape: parse font: %w", err)
		}
		s.faces[v] = face{sfnt: sf, shaped: gf.Font}
	}
	return s, nil
}

var defaultShaper = sync.OnceValues(New)

// Default returns a process-wide Shaper. The bundled fonts always parse, so
// it only panics if the font data is corrupt.
func Default() *Shaper {
	s, err := defaultShaper()
	if err != nil {
		panic(err)
	}
	return s
}

// Glyph is one positioned glyph. X and Y are relative to the run origin on
// the baseline, with y growing downwards.
type Glyph struct {
	ID   sfnt.GlyphIndex
	X, Y float64
}

// Run is a shaped line of text in visual order.
type Run struct {
	Glyphs  []Glyph
	Advance float64
	Size    float64
	RTL     bool
	Variant Variant
}

// Shape lays out text at size pixels.
func (s *Shaper) Shape(text string, size float64, v Variant) Run {
	run := Run{Size: size, Variant: v, RTL: IsRTL(text)}
	if text == "" || size <= 0 {
		return run
	}
	f := s.faces[v]

	runes := []rune(text)
	dir := di.DirectionLTR
	if run.RTL {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gotext.NewFace(f.shaped),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	var x float64
	run.Glyphs = make([]Glyph, 0, len(out.Glyphs))
	for _, g := range out.Glyphs {
		run.Glyphs = append(run.Glyphs, Glyph{
			ID: sfnt.GlyphIndex(g.GlyphID), //nolint:gosec // glyph ids of the bundled fonts fit in 16 bits
			X:  x + fixedToFloat(g.XOffset),
			Y:  -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	run.Advance = x
	return run
}

// Advance returns the shaped width of text.
func (s *Shaper) Advance(text string, size float64, v Variant) float64 {
	return s.Shape(text, size, v).Advance
}

// Metrics returns the ascent and descent of the font at size pixels. Both
// are positive distances from the baseline.
func (s *Shaper) Metrics(size float64, v Variant) (ascent, descent float64) {
	var buf sfnt.Buffer
	m, err := s.faces[v].sfnt.Metrics(&buf, fixed.Int26_6(size*64), xfont.HintingNone)
	if err != nil {
		return size * 0.8, size * 0.2
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// Outline converts a shaped run into path commands with the run origin at
// (x, y). Glyphs without an outline, such as spaces, contribute nothing.
func (s *Shaper) Outline(run Run, x, y float64) []element.PathCommand {
	f := s.faces[run.Variant].sfnt
	ppem := fixed.Int26_6(run.Size * 64)

	var (
		buf  sfnt.Buffer
		cmds []element.PathCommand
	)
	for _, g := range run.Glyphs {
		segs, err := f.LoadGlyph(&buf, g.ID, ppem, nil)
		if err != nil {
			continue
		}
		ox, oy := x+g.X, y+g.Y
		pt := func(p fixed.Point26_6) (float64, float64) {
			return ox + fixedToFloat(p.X), oy + fixedToFloat(p.Y)
		}
		open := false
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					cmds = append(cmds, element.Close())
				}
				px, py := pt(seg.Args[0])
				cmds = append(cmds, element.MoveTo(px, py))
				open = true
			case sfnt.SegmentOpLineTo:
				px, py := pt(seg.Args[0])
				cmds = append(cmds, element.LineTo(px, py))
			case sfnt.SegmentOpQuadTo:
				cx, cy := pt(seg.Args[0])
				px, py := pt(seg.Args[1])
				cmds = append(cmds, element.QuadTo(cx, cy, px, py))
			case sfnt.SegmentOpCubeTo:
				c1x, c1y := pt(seg.Args[0])
				c2x, c2y := pt(seg.Args[1])
				px, py := pt(seg.Args[2])
				cmds = append(cmds, element.CubicTo(c1x, c1y, c2x, c2y, px, py))
			}
		}
		if open {
			cmds = append(cmds, element.Close())
		}
	}
	return cmds
}

// Origin returns the offset from the anchor point to the run origin for
// the given CSS-style alignment and baseline.
func Origin(align, baseline string, advance, ascent, descent float64, rtl bool) (dx, dy float64) {
	switch align {
	case "center":
		dx = -advance / 2
	case "right":
		dx = -advance
	case "start":
		if rtl {
			dx = -advance
		}
	case "end":
		if !rtl {
			dx = -advance
		}
	}

	switch baseline {
	case "top", "hanging":
		dy = ascent
	case "middle":
		dy = (ascent - descent) / 2
	case "bottom", "ideographic":
		dy = -descent
	}
	return dx, dy
}

// IsRTL reports whether text starts with a right-to-left run.
func IsRTL(text string) bool {
	if text == "" {
		return false
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil {
		return false
	}
	// run.Pos() returns rune indices, end inclusive.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if start, _ := run.Pos(); start == 0 {
			return run.Direction() == bidi.RightToLeft
		}
	}
	return false
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
