package backend

import (
	"fmt"

	"github.com/gogpu/sketch/element"
)

// Drawer is the per-element draw contract a backend implements for Walk.
//
// Save and Restore bracket every element. ApplyTransform and ApplyOpacity
// compose onto the current state and are undone by the matching Restore.
// A draw method returning an error skips that element; the walk continues.
type Drawer interface {
	Save()
	Restore()
	ApplyTransform(t element.Transform)
	ApplyOpacity(o float64)

	DrawCircle(c *element.Circle) error
	DrawRect(r *element.Rect) error
	DrawLine(l *element.Line) error
	DrawEllipse(e *element.Ellipse) error
	DrawPolygon(p *element.Polygon) error
	DrawText(t *element.Text) error
	DrawPath(p *element.Path) error
}

// SkipFunc observes an element the walk did not draw, and why.
type SkipFunc func(el element.Element, reason error)

// Walk draws elements in order onto d.
//
// A group is drawn as Save, ApplyTransform, ApplyOpacity, its children,
// Restore; it has no paint of its own. Every other element is drawn as
// Save, ApplyTransform, draw, Restore. ApplyTransform is only called for
// elements with a transform.
//
// Elements of an unknown kind and groups that contain one of their
// ancestors are not drawn. They, and elements whose draw method failed, are
// passed to skip when it is non-nil.
func Walk(elements []element.Element, d Drawer, skip SkipFunc) {
	w := walker{d: d, skip: skip}
	for _, el := range elements {
		w.visit(el)
	}
}

type walker struct {
	d    Drawer
	skip SkipFunc
	path []*element.Group
}

func (w *walker) report(el element.Element, reason error) {
	if w.skip != nil {
		w.skip(el, reason)
	}
}

func (w *walker) visit(el element.Element) {
	if el == nil {
		w.report(nil, fmt.Errorf("%w: nil element", element.ErrUnknownElementType))
		return
	}
	if !el.Kind().Known() {
		w.report(el, fmt.Errorf("%w: %q", element.ErrUnknownElementType, el.Kind()))
		return
	}

	st := el.Common()
	if st == nil {
		st = &element.Style{}
	}
	if g, ok := el.(*element.Group); ok {
		w.visitGroup(g, st)
		return
	}

	w.d.Save()
	if st.Transform != nil {
		w.d.ApplyTransform(*st.Transform)
	}
	err := w.draw(el)
	w.d.Restore()
	if err != nil {
		w.report(el, err)
	}
}

func (w *walker) visitGroup(g *element.Group, st *element.Style) {
	for _, a := range w.path {
		if a == g {
			w.report(g, element.ErrCycle)
			return
		}
	}

	w.d.Save()
	if st.Transform != nil {
		w.d.ApplyTransform(*st.Transform)
	}
	if st.Opacity != nil {
		w.d.ApplyOpacity(*st.Opacity)
	}
	w.path = append(w.path, g)
	for _, c := range g.Children {
		w.visit(c)
	}
	w.path = w.path[:len(w.path)-1]
	w.d.Restore()
}

func (w *walker) draw(el element.Element) error {
	switch e := el.(type) {
	case *element.Circle:
		return w.d.DrawCircle(e)
	case *element.Rect:
		return w.d.DrawRect(e)
	case *element.Line:
		return w.d.DrawLine(e)
	case *element.Ellipse:
		return w.d.DrawEllipse(e)
	case *element.Polygon:
		return w.d.DrawPolygon(e)
	case *element.Text:
		return w.d.DrawText(e)
	case *element.Path:
		return w.d.DrawPath(e)
	}
	// A type outside this package reporting a known kind.
	return fmt.Errorf("%w: %T reports kind %q", element.ErrUnknownElementType, el, el.Kind())
}
