// Package validate re-checks element records against the per-kind
// invariants before they are rendered or handed on.
//
// The validator is the strict half of the "strict at validation time,
// lenient at render time" split: it rejects unknown kinds, bad geometry,
// out-of-range opacity and malformed colors, where the render walk simply
// skips what it cannot draw.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/sketch/element"
)

// Validator checks elements. The zero value is ready to use; it holds no
// state and is safe for concurrent use.
type Validator struct{}

// New returns a Validator.
func New() *Validator { return &Validator{} }

// ValidateElement returns nil if el satisfies every invariant of its kind,
// or an error wrapping one of the element sentinels:
// ErrUnknownElementType, ErrInvalidGeometry, ErrInvalidOpacity,
// ErrInvalidColor, ErrMissingPathData or ErrCycle.
func (v *Validator) ValidateElement(el element.Element) error {
	return v.validate(el, nil)
}

// ValidateAll validates every element and joins the failures. Each failure
// is prefixed with the element's index.
func (v *Validator) ValidateAll(elements []element.Element) error {
	var errs []error
	for i, el := range elements {
		if err := v.ValidateElement(el); err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// validate checks el; ancestors holds the groups currently being visited.
func (v *Validator) validate(el element.Element, ancestors []*element.Group) error {
	if el == nil {
		return fmt.Errorf("%w: nil element", element.ErrUnknownElementType)
	}
	if !el.Kind().Known() {
		return fmt.Errorf("%w: %q", element.ErrUnknownElementType, el.Kind())
	}
	if err := element.CheckGeometry(el); err != nil {
		return err
	}
	if err := checkColors(el.Common()); err != nil {
		return err
	}

	g, ok := el.(*element.Group)
	if !ok {
		return nil
	}
	for _, a := range ancestors {
		if a == g {
			return element.ErrCycle
		}
	}
	ancestors = append(ancestors, g)
	for i, c := range g.Children {
		if err := v.validate(c, ancestors); err != nil {
			return fmt.Errorf("group child %d: %w", i, err)
		}
	}
	return nil
}

func checkColors(s *element.Style) error {
	if s.Fill != "" && !IsValidColor(s.Fill) {
		return fmt.Errorf("%w: invalid fill color: %s", element.ErrInvalidColor, s.Fill)
	}
	if s.Stroke != "" && !IsValidColor(s.Stroke) {
		return fmt.Errorf("%w: invalid stroke color: %s", element.ErrInvalidColor, s.Stroke)
	}
	return nil
}

// IsValidColor reports whether s passes the color syntax check. See
// element.IsValidColor for the accepted forms.
func IsValidColor(s string) bool {
	return element.IsValidColor(s)
}

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeInput escapes <, >, " and ' so that user text can be embedded in
// markup. Every other character, including &, is left unchanged.
func SanitizeInput(s string) string {
	return htmlEscaper.Replace(s)
}
