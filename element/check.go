package element

import (
	"fmt"
	"math"
)

// CheckGeometry verifies the numeric invariants of a known element kind:
// finite coordinates, non-negative sizes, at least three polygon points,
// a positive text size when set, and path data present. It also checks the
// shared stroke width and opacity ranges. Group children are not visited;
// the validator walks groups itself.
//
// Elements of an unknown kind yield ErrUnknownElementType.
func CheckGeometry(el Element) error {
	if el == nil {
		return fmt.Errorf("%w: nil element", ErrUnknownElementType)
	}

	var err error
	switch e := el.(type) {
	case *Circle:
		err = firstErr(
			finite("circle x", e.X),
			finite("circle y", e.Y),
			nonNegative("circle radius", e.Radius),
		)
	case *Rect:
		err = firstErr(
			finite("rect x", e.X),
			finite("rect y", e.Y),
			nonNegative("rect width", e.Width),
			nonNegative("rect height", e.Height),
			nonNegative("rect cornerRadius", e.CornerRadius),
		)
	case *Line:
		err = firstErr(
			finite("line x1", e.X1),
			finite("line y1", e.Y1),
			finite("line x2", e.X2),
			finite("line y2", e.Y2),
		)
		if err == nil && !e.Cap.Valid() {
			err = fmt.Errorf("%w: line cap %q is not butt, round or square", ErrInvalidGeometry, e.Cap)
		}
	case *Ellipse:
		err = firstErr(
			finite("ellipse x", e.X),
			finite("ellipse y", e.Y),
			nonNegative("ellipse rx", e.RX),
			nonNegative("ellipse ry", e.RY),
		)
	case *Polygon:
		err = checkPoints("polygon", e.Points, 3)
	case *Text:
		err = firstErr(
			finite("text x", e.X),
			finite("text y", e.Y),
		)
		if err == nil && e.Size != nil {
			if s := *e.Size; !(s > 0) || math.IsInf(s, 0) {
				err = fmt.Errorf("%w: text size must be a positive number, got %v", ErrInvalidGeometry, s)
			}
		}
	case *Path:
		err = checkPath(e)
	case *Group:
		// Children are checked by the caller.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownElementType, el.Kind())
	}
	if err != nil {
		return err
	}
	return CheckStyle(el.Common())
}

// CheckStyle verifies the numeric style fields shared by every kind.
func CheckStyle(s *Style) error {
	if s == nil {
		return nil
	}
	if s.StrokeWidth != nil {
		if err := nonNegative("strokeWidth", *s.StrokeWidth); err != nil {
			return err
		}
	}
	if s.Opacity != nil {
		if o := *s.Opacity; math.IsNaN(o) || o < 0 || o > 1 {
			return fmt.Errorf("%w: opacity must be between 0 and 1, got %v", ErrInvalidOpacity, o)
		}
	}
	if t := s.Transform; t != nil {
		var errs []error
		if t.Translate != nil {
			errs = append(errs, finite("translate x", t.Translate.X), finite("translate y", t.Translate.Y))
		}
		errs = append(errs, finite("rotate", t.Rotate))
		if t.Scale != nil {
			errs = append(errs, finite("scale x", t.Scale.X), finite("scale y", t.Scale.Y))
		}
		return firstErr(errs...)
	}
	return nil
}

func checkPath(p *Path) error {
	if len(p.Commands) == 0 && len(p.Points) == 0 {
		return ErrMissingPathData
	}
	for i, c := range p.Commands {
		n := c.Op.Arity()
		if n < 0 {
			return fmt.Errorf("%w: path command %d has unknown verb %q", ErrInvalidGeometry, i, c.Op)
		}
		if len(c.Args) != n {
			return fmt.Errorf("%w: path command %d (%s) takes %d arguments, got %d",
				ErrInvalidGeometry, i, c.Op, n, len(c.Args))
		}
		for _, v := range c.Args {
			if err := finite(fmt.Sprintf("path command %d argument", i), v); err != nil {
				return err
			}
		}
	}
	return checkPoints("path", p.Points, 0)
}

func checkPoints(what string, pts []Point, minLen int) error {
	if len(pts) < minLen {
		return fmt.Errorf("%w: %s must have at least %d points, got %d", ErrInvalidGeometry, what, minLen, len(pts))
	}
	for i, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: %s point %d (%v, %v) is not finite", ErrInvalidGeometry, what, i, p.X, p.Y)
		}
	}
	return nil
}

func finite(name string, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidGeometry, name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if !isFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidGeometry, name, v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
