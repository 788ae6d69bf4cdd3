package element

import "fmt"

// DefaultFill is the fill given to shapes built without one.
const DefaultFill = "#000000"

// Options holds the recognized style keys for the shape constructors.
// Fields that do not apply to a kind are ignored.
type Options struct {
	Fill        string
	Stroke      string
	StrokeWidth *float64
	Opacity     *float64
	Transform   *Transform

	// CornerRadius applies to rectangles.
	CornerRadius float64

	// Cap applies to lines.
	Cap LineCap

	// Text settings.
	Font     string
	Size     *float64
	Weight   string
	Align    string
	Baseline string
}

// style builds the common fields with constructor defaults. defFill is
// used when Fill is empty.
func (o Options) style(defFill string) Style {
	s := Style{
		Fill:        o.Fill,
		Stroke:      o.Stroke,
		StrokeWidth: Ptr(1.0),
		Opacity:     Ptr(1.0),
		Transform:   o.Transform,
	}
	if s.Fill == "" {
		s.Fill = defFill
	}
	if o.StrokeWidth != nil {
		s.StrokeWidth = Ptr(*o.StrokeWidth)
	}
	if o.Opacity != nil {
		s.Opacity = Ptr(*o.Opacity)
	}
	return s
}

// NewCircle returns a validated circle.
func NewCircle(x, y, radius float64, opts Options) (*Circle, error) {
	c := &Circle{Style: opts.style(DefaultFill), X: x, Y: y, Radius: radius}
	if err := checkBuilt(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewRect returns a validated rectangle.
func NewRect(x, y, width, height float64, opts Options) (*Rect, error) {
	r := &Rect{
		Style:        opts.style(DefaultFill),
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		CornerRadius: opts.CornerRadius,
	}
	if err := checkBuilt(r); err != nil {
		return nil, err
	}
	return r, nil
}

// NewLine returns a validated line. Lines have no fill.
func NewLine(x1, y1, x2, y2 float64, opts Options) (*Line, error) {
	l := &Line{
		Style: opts.style(""),
		X1:    x1, Y1: y1,
		X2: x2, Y2: y2,
		Cap: opts.Cap.OrDefault(),
	}
	if err := checkBuilt(l); err != nil {
		return nil, err
	}
	return l, nil
}

// NewEllipse returns a validated ellipse.
func NewEllipse(x, y, rx, ry float64, opts Options) (*Ellipse, error) {
	e := &Ellipse{Style: opts.style(DefaultFill), X: x, Y: y, RX: rx, RY: ry}
	if err := checkBuilt(e); err != nil {
		return nil, err
	}
	return e, nil
}

// NewPolygon returns a validated polygon. The points are copied.
func NewPolygon(points []Point, opts Options) (*Polygon, error) {
	p := &Polygon{Style: opts.style(DefaultFill), Points: append([]Point(nil), points...)}
	if err := checkBuilt(p); err != nil {
		return nil, err
	}
	return p, nil
}

// NewText returns a validated text element anchored at (x, y).
func NewText(content string, x, y float64, opts Options) (*Text, error) {
	t := &Text{
		Style:    opts.style(DefaultFill),
		Text:     content,
		X:        x,
		Y:        y,
		Font:     opts.Font,
		Weight:   opts.Weight,
		Align:    opts.Align,
		Baseline: opts.Baseline,
	}
	if opts.Size != nil {
		t.Size = Ptr(*opts.Size)
	}
	if err := checkBuilt(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewPath returns a validated path built from commands. The commands are
// copied.
func NewPath(commands []PathCommand, opts Options) (*Path, error) {
	p := &Path{Style: opts.style(DefaultFill)}
	for _, c := range commands {
		p.Commands = append(p.Commands, PathCommand{Op: c.Op, Args: append([]float64(nil), c.Args...)})
	}
	if err := checkBuilt(p); err != nil {
		return nil, err
	}
	return p, nil
}

// NewGroup returns a group owning children. Only Opacity and Transform of
// opts are meaningful for a group.
func NewGroup(opts Options, children ...Element) (*Group, error) {
	g := &Group{Style: opts.style(""), Children: append([]Element(nil), children...)}
	g.Fill = ""
	g.Stroke = ""
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: group child %d is nil", ErrInvalidGeometry, i)
		}
	}
	if err := checkBuilt(g); err != nil {
		return nil, err
	}
	return g, nil
}

// checkBuilt runs the geometry rules and the color syntax check on a freshly
// constructed element, so every factory product also passes the validator.
func checkBuilt(el Element) error {
	if err := CheckGeometry(el); err != nil {
		return err
	}
	s := el.Common()
	if s.Fill != "" && !IsValidColor(s.Fill) {
		return fmt.Errorf("%w: fill %q", ErrInvalidColor, s.Fill)
	}
	if s.Stroke != "" && !IsValidColor(s.Stroke) {
		return fmt.Errorf("%w: stroke %q", ErrInvalidColor, s.Stroke)
	}
	return nil
}
