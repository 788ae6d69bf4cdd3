package element

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the shape factory and the validator.
// Detail errors wrap one of these; match with errors.Is.
var (
	// ErrInvalidGeometry is returned for a missing, non-finite or
	// out-of-range numeric field.
	ErrInvalidGeometry = errors.New("element: invalid geometry")

	// ErrInvalidOpacity is returned when opacity is outside [0, 1].
	ErrInvalidOpacity = errors.New("element: invalid opacity")

	// ErrInvalidColor is returned when fill or stroke fails the color syntax check.
	ErrInvalidColor = errors.New("element: invalid color")

	// ErrUnknownElementType is returned by the validator for a kind it does not know.
	ErrUnknownElementType = errors.New("element: unknown element type")

	// ErrMissingPathData is returned for a path with neither commands nor points.
	ErrMissingPathData = errors.New("element: path must have commands or points")

	// ErrCycle is returned for a group that contains one of its ancestors.
	// It wraps ErrInvalidGeometry.
	ErrCycle = fmt.Errorf("%w: group contains its own ancestor", ErrInvalidGeometry)
)
