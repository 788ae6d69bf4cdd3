// Package paint resolves color strings into colors at draw time.
package paint

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnresolvable is returned for a color string that passes the syntax
// check but names no actual color, such as an unknown color name.
var ErrUnresolvable = errors.New("paint: unresolvable color")

// RGBA is a color with straight (non-premultiplied) components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Transparent is the zero color.
var Transparent = RGBA{}

// Black is opaque black.
var Black = RGBA{A: 1}

// Parse resolves s. It accepts "none" and "transparent", hex in the
// #RGB, #RGBA, #RRGGBB and #RRGGBBAA forms, rgb()/rgba() with comma or
// space separated channels, and the SVG color names.
func Parse(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "none" || s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return Hex(s)
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return fromColor(c), nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrUnresolvable, s)
}

// Hex parses a hex color string with a leading '#'.
func Hex(hex string) (RGBA, error) {
	h := strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	ok := true
	switch len(h) {
	case 3: // RGB
		ok = parseHex(h[0:1], &r) && parseHex(h[1:2], &g) && parseHex(h[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(h[0:1], &r) && parseHex(h[1:2], &g) && parseHex(h[2:3], &b) && parseHex(h[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(h[0:2], &r) && parseHex(h[2:4], &g) && parseHex(h[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(h[0:2], &r) && parseHex(h[2:4], &g) && parseHex(h[4:6], &b) && parseHex(h[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnresolvable, hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// parseHex parses s into val and reports whether every digit was valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// parseFunc parses rgb(r, g, b) and rgba(r, g, b, a). Channels are 0-255 or
// percentages; alpha is 0-1 or a percentage. Out-of-range values clamp.
func parseFunc(s string) (RGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnresolvable, s)
	}
	body := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : len(s)-1])
	fields := strings.Fields(body)
	if len(fields) != 3 && len(fields) != 4 {
		return RGBA{}, fmt.Errorf("%w: %q has %d channels", ErrUnresolvable, s, len(fields))
	}

	var ch [4]float64
	ch[3] = 1
	for i, f := range fields {
		scale := 255.0
		if i == 3 {
			scale = 1
		}
		pct := strings.HasSuffix(f, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil || math.IsNaN(v) {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnresolvable, s)
		}
		if pct {
			v = v / 100
		} else {
			v = v / scale
		}
		ch[i] = clamp01(v)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func fromColor(c color.RGBA) RGBA {
	return RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// WithOpacity returns c with its alpha multiplied by o.
func (c RGBA) WithOpacity(o float64) RGBA {
	c.A *= clamp01(o)
	return c
}

// IsTransparent reports whether c paints nothing.
func (c RGBA) IsTransparent() bool { return c.A <= 0 }

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// NRGBA converts c to an 8-bit straight-alpha color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
