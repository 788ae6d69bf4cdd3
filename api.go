package sketch

import "github.com/gogpu/sketch/element"

// MidLevel constructs elements through the element factory and appends
// them to the owning Sketch's scene. When construction fails the error is
// returned and the scene is left unchanged.
type MidLevel struct {
	s *Sketch
}

func appendBuilt[T element.Element](m *MidLevel, el T, err error) (T, error) {
	if err != nil {
		m.s.log.Debug("sketch: element rejected", "error", err)
		var zero T
		return zero, err
	}
	m.s.scene.Append(el)
	return el, nil
}

// Circle appends a circle centered at (x, y).
func (m *MidLevel) Circle(x, y, radius float64, opts element.Options) (*element.Circle, error) {
	el, err := element.NewCircle(x, y, radius, opts)
	return appendBuilt(m, el, err)
}

// Rect appends a rectangle with its top-left corner at (x, y).
func (m *MidLevel) Rect(x, y, width, height float64, opts element.Options) (*element.Rect, error) {
	el, err := element.NewRect(x, y, width, height, opts)
	return appendBuilt(m, el, err)
}

// Line appends a line segment.
func (m *MidLevel) Line(x1, y1, x2, y2 float64, opts element.Options) (*element.Line, error) {
	el, err := element.NewLine(x1, y1, x2, y2, opts)
	return appendBuilt(m, el, err)
}

// Ellipse appends an axis-aligned ellipse centered at (x, y).
func (m *MidLevel) Ellipse(x, y, rx, ry float64, opts element.Options) (*element.Ellipse, error) {
	el, err := element.NewEllipse(x, y, rx, ry, opts)
	return appendBuilt(m, el, err)
}

// Polygon appends a closed polygon of at least three points.
func (m *MidLevel) Polygon(points []element.Point, opts element.Options) (*element.Polygon, error) {
	el, err := element.NewPolygon(points, opts)
	return appendBuilt(m, el, err)
}

// Text appends a single line of text anchored at (x, y).
func (m *MidLevel) Text(content string, x, y float64, opts element.Options) (*element.Text, error) {
	el, err := element.NewText(content, x, y, opts)
	return appendBuilt(m, el, err)
}

// Path appends a path built from commands.
func (m *MidLevel) Path(commands []element.PathCommand, opts element.Options) (*element.Path, error) {
	el, err := element.NewPath(commands, opts)
	return appendBuilt(m, el, err)
}

// Group appends a group of children. The children are owned by the group
// and must not also be appended to the scene.
func (m *MidLevel) Group(opts element.Options, children ...element.Element) (*element.Group, error) {
	el, err := element.NewGroup(opts, children...)
	return appendBuilt(m, el, err)
}

// LowLevel is a positional shorthand over MidLevel. A zero stroke width
// means the default of 1; an empty color means unset.
type LowLevel struct {
	mid *MidLevel
}

func strokeWidth(sw float64) *float64 {
	if sw == 0 {
		return nil
	}
	return element.Ptr(sw)
}

// C appends a circle.
func (l *LowLevel) C(x, y, r float64, fill, stroke string, sw float64) (*element.Circle, error) {
	return l.mid.Circle(x, y, r, element.Options{Fill: fill, Stroke: stroke, StrokeWidth: strokeWidth(sw)})
}

// R appends a rectangle.
func (l *LowLevel) R(x, y, w, h float64, fill, stroke string, sw float64) (*element.Rect, error) {
	return l.mid.Rect(x, y, w, h, element.Options{Fill: fill, Stroke: stroke, StrokeWidth: strokeWidth(sw)})
}

// T appends text of the given size and color. A zero size means the
// default.
func (l *LowLevel) T(text string, x, y, size float64, color string) (*element.Text, error) {
	opts := element.Options{Fill: color}
	if size != 0 {
		opts.Size = element.Ptr(size)
	}
	return l.mid.Text(text, x, y, opts)
}
