// Package element defines the drawable data model and the shape factory.
//
// An Element is a tagged union: each kind (circle, rect, line, ellipse,
// polygon, text, group, path) is its own struct carrying only its geometry,
// with the shared style fields embedded through Style.
//
// The New* constructors apply defaults (fill #000000 except for lines,
// stroke width 1, opacity 1) and validate synchronously; they never return a
// partially built element:
//
//	c, err := element.NewCircle(100, 100, 50, element.Options{Fill: "#3498db"})
//	if err != nil {
//	    // errors.Is(err, element.ErrInvalidGeometry)
//	}
//
// Elements may also be built as plain struct literals and checked later
// with package validate.
package element
