package element

// Kind identifies the shape variant of an Element.
type Kind string

// Known element kinds.
const (
	KindCircle  Kind = "circle"
	KindRect    Kind = "rect"
	KindLine    Kind = "line"
	KindEllipse Kind = "ellipse"
	KindPolygon Kind = "polygon"
	KindText    Kind = "text"
	KindGroup   Kind = "group"
	KindPath    Kind = "path"
)

// Known reports whether k is one of the kinds defined by this package.
func (k Kind) Known() bool {
	switch k {
	case KindCircle, KindRect, KindLine, KindEllipse, KindPolygon,
		KindText, KindGroup, KindPath:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// Element is one drawable unit of a scene.
//
// The concrete types in this package (*Circle, *Rect, ...) are the known
// variants. Other implementations are allowed so that elements from any
// source can be checked by the validator, which rejects kinds it does not
// know; the render walk skips them.
type Element interface {
	// Kind returns the variant discriminant.
	Kind() Kind

	// Common returns the style fields shared by every variant.
	Common() *Style
}

// Style holds the fields present on every element.
type Style struct {
	// Fill is a color string, "none" or "transparent". Empty means unset.
	Fill string

	// Stroke is a color string. Empty means no stroke pass.
	Stroke string

	// StrokeWidth is the stroke width in user units. Nil means 1.
	StrokeWidth *float64

	// Opacity in [0, 1]. Nil means 1.
	Opacity *float64

	// Transform is applied before the element is drawn and undone afterwards.
	Transform *Transform
}

// Common implements Element for every type that embeds Style.
func (s *Style) Common() *Style { return s }

// StrokeWidthOr returns the stroke width, or def when unset.
func (s *Style) StrokeWidthOr(def float64) float64 {
	if s.StrokeWidth == nil {
		return def
	}
	return *s.StrokeWidth
}

// OpacityOr returns the opacity, or def when unset.
func (s *Style) OpacityOr(def float64) float64 {
	if s.Opacity == nil {
		return def
	}
	return *s.Opacity
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Ptr returns a pointer to v. It is used for optional numeric fields.
func Ptr[T any](v T) *T { return &v }

// Circle is a circle centered at (X, Y).
type Circle struct {
	Style
	X, Y   float64
	Radius float64
}

// Kind implements Element.
func (*Circle) Kind() Kind { return KindCircle }

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	Style
	X, Y          float64
	Width, Height float64

	// CornerRadius rounds the corners. It is clamped at draw time to half
	// the shorter side.
	CornerRadius float64
}

// Kind implements Element.
func (*Rect) Kind() Kind { return KindRect }

// LineCap is the shape at the ends of an open stroke.
type LineCap string

// Line caps.
const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

// Valid reports whether c is a known cap. The empty cap is valid and
// resolves to CapButt.
func (c LineCap) Valid() bool {
	switch c {
	case "", CapButt, CapRound, CapSquare:
		return true
	}
	return false
}

// OrDefault returns c, or CapButt when c is empty.
func (c LineCap) OrDefault() LineCap {
	if c == "" {
		return CapButt
	}
	return c
}

// Line is a straight segment from (X1, Y1) to (X2, Y2).
type Line struct {
	Style
	X1, Y1 float64
	X2, Y2 float64
	Cap    LineCap
}

// Kind implements Element.
func (*Line) Kind() Kind { return KindLine }

// Ellipse is an axis-aligned ellipse centered at (X, Y).
type Ellipse struct {
	Style
	X, Y   float64
	RX, RY float64
}

// Kind implements Element.
func (*Ellipse) Kind() Kind { return KindEllipse }

// Polygon is a closed shape through Points.
type Polygon struct {
	Style
	Points []Point
}

// Kind implements Element.
func (*Polygon) Kind() Kind { return KindPolygon }

// Text is a single line of text anchored at (X, Y).
type Text struct {
	Style
	Text string
	X, Y float64

	// Size is the font size in pixels. Nil means the draw-time default.
	Size *float64

	Font     string
	Weight   string
	Align    string
	Baseline string
}

// Kind implements Element.
func (*Text) Kind() Kind { return KindText }

// SizeOr returns the font size, or def when unset.
func (t *Text) SizeOr(def float64) float64 {
	if t.Size == nil {
		return def
	}
	return *t.Size
}

// Group owns an ordered list of children. A group has no paint of its own;
// its Transform and Opacity apply to every descendant.
type Group struct {
	Style
	Children []Element
}

// Kind implements Element.
func (*Group) Kind() Kind { return KindGroup }

// Path is an arbitrary outline given as commands, or as a polyline of
// points when Commands is empty.
type Path struct {
	Style
	Commands []PathCommand
	Points   []Point

	// Closed closes a Points polyline. It is ignored for Commands, which
	// close with OpClose.
	Closed bool
}

// Kind implements Element.
func (*Path) Kind() Kind { return KindPath }
